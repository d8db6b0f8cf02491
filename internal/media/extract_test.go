package media

import "testing"

func TestResolvePicksLargestArea(t *testing.T) {
	t.Parallel()

	single := Single{
		Images: []Variant{
			{Width: 100, Height: 100, URL: "small"},
			{Width: 400, Height: 300, URL: "big"},
			{Width: 200, Height: 200, URL: "medium"},
		},
	}
	asset, ok := Resolve(single)
	if !ok {
		t.Fatal("expected an asset")
	}
	if asset.URL != "big" {
		t.Fatalf("chose %q, want %q", asset.URL, "big")
	}
	if asset.Video {
		t.Fatal("image asset flagged as video")
	}
}

func TestResolveTieKeepsFirst(t *testing.T) {
	t.Parallel()

	single := Single{
		Images: []Variant{
			{Width: 200, Height: 200, URL: "first"},
			{Width: 400, Height: 100, URL: "second"},
		},
	}
	asset, ok := Resolve(single)
	if !ok {
		t.Fatal("expected an asset")
	}
	if asset.URL != "first" {
		t.Fatalf("tie broke to %q, want first occurrence", asset.URL)
	}
}

func TestResolveVideoPrecedence(t *testing.T) {
	t.Parallel()

	single := Single{
		Images: []Variant{{Width: 1000, Height: 1000, URL: "huge-image"}},
		Videos: []Variant{{Width: 100, Height: 100, URL: "small-video"}},
	}
	asset, ok := Resolve(single)
	if !ok {
		t.Fatal("expected an asset")
	}
	if asset.URL != "small-video" {
		t.Fatalf("chose %q, want the video even though it is smaller", asset.URL)
	}
	if !asset.Video {
		t.Fatal("video asset not flagged as video")
	}
}

func TestResolveEmpty(t *testing.T) {
	t.Parallel()

	if _, ok := Resolve(Single{}); ok {
		t.Fatal("resolved an asset from an empty unit")
	}
}

func TestExtractSingle(t *testing.T) {
	t.Parallel()

	item := Item{Media: Single{Images: []Variant{{Width: 10, Height: 10, URL: "only"}}}}
	assets := Extract(item)
	if len(assets) != 1 {
		t.Fatalf("got %d assets, want 1", len(assets))
	}
	if assets[0].URL != "only" {
		t.Fatalf("got %q", assets[0].URL)
	}
}

func TestExtractCarouselFlattensInOrder(t *testing.T) {
	t.Parallel()

	item := Item{
		Children: []Single{
			{Images: []Variant{{Width: 10, Height: 10, URL: "a"}}},
			{Images: []Variant{{Width: 10, Height: 10, URL: "b"}}},
			{Images: []Variant{{Width: 10, Height: 10, URL: "c"}}},
		},
	}
	assets := Extract(item)
	if len(assets) != 3 {
		t.Fatalf("got %d assets, want 3", len(assets))
	}
	for i, want := range []string{"a", "b", "c"} {
		if assets[i].URL != want {
			t.Fatalf("asset %d = %q, want %q", i, assets[i].URL, want)
		}
	}
}

func TestRepresentative(t *testing.T) {
	t.Parallel()

	carousel := Item{
		Children: []Single{
			{Images: []Variant{{Width: 10, Height: 10, URL: "first-child"}}},
			{Images: []Variant{{Width: 10, Height: 10, URL: "second-child"}}},
		},
	}
	asset, ok := Representative(carousel)
	if !ok {
		t.Fatal("expected an asset")
	}
	if asset.URL != "first-child" {
		t.Fatalf("representative = %q, want the first child's asset", asset.URL)
	}

	if _, ok := Representative(Item{}); ok {
		t.Fatal("empty item produced a representative")
	}
}
