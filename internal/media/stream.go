package media

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/doyensec/safeurl"
)

const defaultStreamTimeout = 60 * time.Second

func init() {
	// The stdlib builtin table lacks the video types the CDN serves.
	_ = mime.AddExtensionType(".mp4", "video/mp4")
	_ = mime.AddExtensionType(".m4v", "video/mp4")
	_ = mime.AddExtensionType(".mov", "video/quicktime")
}

// Stream is a lazily-opened byte stream for one resolved asset. Nothing is
// fetched until Open is called; Name and Mime are inferred from the asset
// URL's path segment.
type Stream struct {
	Name string
	Mime string
	URL  string

	client *http.Client
}

// Open fetches the asset and returns its body. The caller must close it.
func (s Stream) Open(ctx context.Context) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch asset: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("fetch asset: unexpected status %d", resp.StatusCode)
	}
	return resp.Body, nil
}

// Streamer turns resolved assets into lazily-fetched attachment streams.
// Asset URLs come from an external media graph, so fetching goes through an
// SSRF-guarded client that refuses private and link-local destinations.
type Streamer struct {
	client *http.Client
}

// NewStreamer builds a Streamer with the given fetch timeout; zero means a
// 60s default.
func NewStreamer(timeout time.Duration) *Streamer {
	if timeout <= 0 {
		timeout = defaultStreamTimeout
	}
	cfg := safeurl.GetConfigBuilder().
		SetTimeout(timeout).
		SetAllowedSchemes("http", "https").
		SetAllowedPorts(80, 443).
		Build()
	return &Streamer{client: safeurl.Client(cfg).Client}
}

// Stream wraps one resolved asset as a lazy stream.
func (st *Streamer) Stream(asset ResolvedAsset) Stream {
	name := "asset"
	contentType := ""
	if u, err := url.Parse(asset.URL); err == nil && u.Path != "" {
		if base := path.Base(u.Path); base != "." && base != "/" {
			name = base
		}
		contentType = mime.TypeByExtension(path.Ext(u.Path))
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return Stream{
		Name:   name,
		Mime:   contentType,
		URL:    asset.URL,
		client: st.client,
	}
}
