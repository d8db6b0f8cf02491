// Package instagram talks to the Instagram private mobile API: session
// management, identity resolution, and single-page feed retrieval.
package instagram

import (
	"context"

	"github.com/igpeek/igpeek/internal/media"
)

// Account is a resolved canonical identity.
type Account struct {
	ID     string
	Handle string
}

// Client exposes the private-API operations the pipeline needs. A Session
// implements it; tests substitute fakes.
type Client interface {
	// LookupUser performs an exact-match lookup of one handle.
	LookupUser(ctx context.Context, handle string) (Account, error)
	// SearchUsers performs a fuzzy search, returning candidates in the
	// API's rank order.
	SearchUsers(ctx context.Context, query string) ([]Account, error)
	// UserFeed returns one page of an account's media, newest first.
	UserFeed(ctx context.Context, userID string) ([]media.Item, error)
	// TagFeed returns one page of a hashtag's media, newest first.
	TagFeed(ctx context.Context, tag string) ([]media.Item, error)
}

// ClientSource yields the shared API client, constructing the underlying
// session on first use. Every pipeline invocation goes through it so that
// concurrent invocations share one in-flight login.
type ClientSource interface {
	Client(ctx context.Context) (Client, error)
}
