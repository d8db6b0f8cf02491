package instagram

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/igpeek/igpeek/internal/media"
)

func photoItem(url string) media.Item {
	return media.Item{Media: media.Single{Images: []media.Variant{{Width: 10, Height: 10, URL: url}}}}
}

func TestFetcherByUser(t *testing.T) {
	t.Parallel()

	client := &fakeClient{
		userFeed: func(userID string) ([]media.Item, error) {
			require.Equal(t, "42", userID)
			return []media.Item{photoItem("a"), photoItem("b")}, nil
		},
	}
	fetcher := NewFetcher(client)

	feed, err := fetcher.ByUser(context.Background(), "42")
	require.NoError(t, err)
	require.Len(t, feed, 2)
}

func TestFetcherByUserEmptyFeed(t *testing.T) {
	t.Parallel()

	client := &fakeClient{
		userFeed: func(string) ([]media.Item, error) {
			return nil, nil
		},
	}
	fetcher := NewFetcher(client)

	_, err := fetcher.ByUser(context.Background(), "42")
	require.ErrorIs(t, err, ErrEmptyFeed, "a zero-item page is a terminal condition, not an empty success")
}

func TestFetcherByHashtagEmptyFeed(t *testing.T) {
	t.Parallel()

	client := &fakeClient{
		tagFeed: func(string) ([]media.Item, error) {
			return []media.Item{}, nil
		},
	}
	fetcher := NewFetcher(client)

	_, err := fetcher.ByHashtag(context.Background(), "sunset")
	require.ErrorIs(t, err, ErrEmptyFeed)
}

func TestFetcherByHashtag(t *testing.T) {
	t.Parallel()

	client := &fakeClient{
		tagFeed: func(tag string) ([]media.Item, error) {
			require.Equal(t, "sunset", tag)
			return []media.Item{photoItem("a")}, nil
		},
	}
	fetcher := NewFetcher(client)

	feed, err := fetcher.ByHashtag(context.Background(), "sunset")
	require.NoError(t, err)
	require.Len(t, feed, 1)
}
