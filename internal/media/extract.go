package media

// Extract normalizes one media item into its best-quality assets: one
// element for a single post, one per child in display order for a carousel.
// Callers never need to distinguish the two shapes.
func Extract(item Item) []ResolvedAsset {
	if !item.IsCarousel() {
		if asset, ok := Resolve(item.Media); ok {
			return []ResolvedAsset{asset}
		}
		return nil
	}

	assets := make([]ResolvedAsset, 0, len(item.Children))
	for _, child := range item.Children {
		if asset, ok := Resolve(child); ok {
			assets = append(assets, asset)
		}
	}
	return assets
}

// Representative returns the single asset that stands for the whole item:
// the item's own asset, or the first child's for a carousel.
func Representative(item Item) (ResolvedAsset, bool) {
	assets := Extract(item)
	if len(assets) == 0 {
		return ResolvedAsset{}, false
	}
	return assets[0], true
}

// Resolve picks the best-quality variant of one single unit. Video variants
// take precedence over images whenever any exist, regardless of size. Among
// the candidates the largest width*height wins; ties keep the earliest.
func Resolve(s Single) (ResolvedAsset, bool) {
	candidates := s.Images
	video := false
	if len(s.Videos) > 0 {
		candidates = s.Videos
		video = true
	}
	if len(candidates) == 0 {
		return ResolvedAsset{}, false
	}

	best := candidates[0]
	for _, v := range candidates[1:] {
		if v.Width*v.Height > best.Width*best.Height {
			best = v
		}
	}
	return ResolvedAsset{
		URL:    best.URL,
		Width:  best.Width,
		Height: best.Height,
		Video:  video,
	}, true
}
