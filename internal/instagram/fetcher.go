package instagram

import (
	"context"
	"fmt"

	"github.com/igpeek/igpeek/internal/media"
)

// Fetcher retrieves one page of media for an account or a hashtag. "No
// content" is normalized into ErrEmptyFeed rather than an empty success.
type Fetcher struct {
	clients ClientSource
}

// NewFetcher builds a Fetcher on top of the shared client source.
func NewFetcher(clients ClientSource) *Fetcher {
	return &Fetcher{clients: clients}
}

// ByUser fetches one feed page for the given account id.
func (f *Fetcher) ByUser(ctx context.Context, userID string) (media.Feed, error) {
	client, err := f.clients.Client(ctx)
	if err != nil {
		return nil, fmt.Errorf("instagram session: %w", err)
	}
	items, err := client.UserFeed(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyFeed
	}
	return media.Feed(items), nil
}

// ByHashtag fetches one feed page for the given tag.
func (f *Fetcher) ByHashtag(ctx context.Context, tag string) (media.Feed, error) {
	client, err := f.clients.Client(ctx)
	if err != nil {
		return nil, fmt.Errorf("instagram session: %w", err)
	}
	items, err := client.TagFeed(ctx, tag)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyFeed
	}
	return media.Feed(items), nil
}
