package instagram

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
)

func TestWireFeedDecoding(t *testing.T) {
	t.Parallel()

	payload := `{
		"items": [
			{
				"id": "111",
				"media_type": 1,
				"image_versions2": {"candidates": [
					{"width": 1080, "height": 1350, "url": "https://cdn/img-big.jpg"},
					{"width": 640, "height": 800, "url": "https://cdn/img-small.jpg"}
				]}
			},
			{
				"id": "222",
				"media_type": 2,
				"image_versions2": {"candidates": [{"width": 720, "height": 720, "url": "https://cdn/poster.jpg"}]},
				"video_versions": [{"width": 720, "height": 720, "url": "https://cdn/clip.mp4"}]
			},
			{
				"id": "333",
				"media_type": 8,
				"carousel_media": [
					{"media_type": 1, "image_versions2": {"candidates": [{"width": 10, "height": 10, "url": "https://cdn/c1.jpg"}]}},
					{"media_type": 2, "video_versions": [{"width": 10, "height": 10, "url": "https://cdn/c2.mp4"}]}
				]
			}
		]
	}`

	var feed wireFeed
	if err := json.Unmarshal([]byte(payload), &feed); err != nil {
		t.Fatalf("decode: %v", err)
	}
	items := toItems(feed.Items)
	if len(items) != 3 {
		t.Fatalf("got %d items, want 3", len(items))
	}

	if items[0].IsCarousel() {
		t.Fatal("photo decoded as carousel")
	}
	if got := len(items[0].Media.Images); got != 2 {
		t.Fatalf("photo has %d image variants, want 2", got)
	}
	if len(items[1].Media.Videos) != 1 {
		t.Fatal("video item lost its video variants")
	}
	if !items[2].IsCarousel() || len(items[2].Children) != 2 {
		t.Fatalf("carousel decoded as %+v", items[2])
	}
	if len(items[2].Children[1].Videos) != 1 {
		t.Fatal("carousel video child lost its video variants")
	}
}

func TestMapAPIError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		body   wireError
		want   error
	}{
		{
			name:   "404 is not found",
			status: http.StatusNotFound,
			body:   wireError{Message: "Not found", Status: "fail"},
			want:   ErrAccountNotFound,
		},
		{
			name:   "user not found message",
			status: http.StatusBadRequest,
			body:   wireError{Message: "User not found", Status: "fail"},
			want:   ErrAccountNotFound,
		},
		{
			name:   "private account",
			status: http.StatusBadRequest,
			body:   wireError{Message: "Not authorized to view user", Status: "fail"},
			want:   ErrAccountPrivate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := mapAPIError(tt.status, tt.body); got != tt.want {
				t.Fatalf("mapAPIError = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMapAPIErrorUnexpected(t *testing.T) {
	t.Parallel()

	err := mapAPIError(http.StatusInternalServerError, wireError{Message: "oops"})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("got %T, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status = %d", apiErr.StatusCode)
	}
}
