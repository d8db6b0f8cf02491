package media

import "testing"

func TestStreamerInfersNameAndMime(t *testing.T) {
	t.Parallel()

	streamer := NewStreamer(0)

	tests := []struct {
		name     string
		url      string
		wantName string
		wantMime string
	}{
		{
			name:     "jpeg photo",
			url:      "https://cdn.example.com/v/t51/12345_n.jpg?efg=abc&se=7",
			wantName: "12345_n.jpg",
			wantMime: "image/jpeg",
		},
		{
			name:     "mp4 video",
			url:      "https://cdn.example.com/o1/v/t16/clip.mp4?_nc_cat=108",
			wantName: "clip.mp4",
			wantMime: "video/mp4",
		},
		{
			name:     "no extension falls back to octet-stream",
			url:      "https://cdn.example.com/media/abcdef",
			wantName: "abcdef",
			wantMime: "application/octet-stream",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			stream := streamer.Stream(ResolvedAsset{URL: tt.url})
			if stream.Name != tt.wantName {
				t.Fatalf("name = %q, want %q", stream.Name, tt.wantName)
			}
			if stream.Mime != tt.wantMime {
				t.Fatalf("mime = %q, want %q", stream.Mime, tt.wantMime)
			}
			if stream.URL != tt.url {
				t.Fatalf("url = %q, want %q", stream.URL, tt.url)
			}
		})
	}
}
