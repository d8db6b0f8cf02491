// Package media models Instagram media items and normalizes them into
// best-quality asset descriptors.
package media

// Variant is one quality/resolution rendition of a photo or video asset.
type Variant struct {
	Width  int
	Height int
	URL    string
}

// Single is one photo-or-video unit. Images is present for photos and
// videos; Videos only for videos.
type Single struct {
	Images []Variant
	Videos []Variant
}

// Item is one feed unit: a single unit, or a carousel of ordered children.
// Children holds the carousel entries in display order; when it is empty
// the item is the Media unit itself.
type Item struct {
	Media    Single
	Children []Single
}

// IsCarousel reports whether the item is a multi-media carousel post.
func (it Item) IsCarousel() bool {
	return len(it.Children) > 0
}

// Feed is an ordered page of media items, newest first.
type Feed []Item

// ResolvedAsset is the chosen best-quality variant for one single unit.
type ResolvedAsset struct {
	URL    string
	Width  int
	Height int
	Video  bool
}
