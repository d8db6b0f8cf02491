// Package pipeline composes intent parsing, identity resolution, feed
// fetching and asset extraction under the two delivery contracts: a
// synchronous command that reports failures back to the chat, and a
// detached sneak-peek that never blocks or fails its caller.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/igpeek/igpeek/internal/channel"
	"github.com/igpeek/igpeek/internal/instagram"
	"github.com/igpeek/igpeek/internal/intent"
	"github.com/igpeek/igpeek/internal/media"
)

// AccountResolver resolves a handle to a canonical account.
type AccountResolver interface {
	Resolve(ctx context.Context, handle string) (instagram.Account, error)
}

// FeedSource retrieves one page of media for an account or a hashtag.
type FeedSource interface {
	ByUser(ctx context.Context, userID string) (media.Feed, error)
	ByHashtag(ctx context.Context, tag string) (media.Feed, error)
}

// AssetStreamer wraps resolved assets as lazy attachment streams.
type AssetStreamer interface {
	Stream(asset media.ResolvedAsset) media.Stream
}

// Pipeline is the media-resolution and delivery pipeline. It holds no
// per-request state; concurrent invocations interleave freely.
type Pipeline struct {
	resolver  AccountResolver
	feeds     FeedSource
	streamer  AssetStreamer
	logger    *slog.Logger
	maxPhotos int

	// randIndex draws a uniform index in [0, n); swappable in tests.
	randIndex func(n int) int
}

// New builds a Pipeline. maxPhotos bounds passive-mode fan-out; values
// below one fall back to the default of 3.
func New(resolver AccountResolver, feeds FeedSource, streamer AssetStreamer, maxPhotos int, log *slog.Logger) *Pipeline {
	if log == nil {
		log = slog.Default()
	}
	if maxPhotos < 1 {
		maxPhotos = 3
	}
	return &Pipeline{
		resolver:  resolver,
		feeds:     feeds,
		streamer:  streamer,
		logger:    log.With(slog.String("component", "pipeline")),
		maxPhotos: maxPhotos,
		randIndex: rand.IntN,
	}
}

// RunCommand executes the synchronous contract for one `ig` invocation:
// parse, resolve, fetch, extract, select, send — one awaited sequence. A
// parse failure is returned to the caller (the command surface decides how
// to reject it); every taxonomy failure past parsing is mapped to a chat
// message and consumed. Unexpected errors are returned.
func (p *Pipeline) RunCommand(ctx context.Context, sender channel.Sender, chatID, args string) error {
	in, err := intent.Parse(args)
	if err != nil {
		return err
	}

	log := p.logger.With(slog.String("request_id", uuid.NewString()), slog.String("chat_id", chatID))

	feed, label, err := p.fetch(ctx, in)
	if err != nil {
		if text, ok := failureText(label, err); ok {
			log.Info("command failed", slog.String("target", label), slog.Any("error", err))
			return sender.Send(ctx, channel.OutboundMessage{ChatID: chatID, Text: text})
		}
		return err
	}

	item := feed[p.pick(in.Selection, len(feed))]
	assets := media.Extract(item)
	log.Info("command resolved", slog.String("target", label), slog.Int("assets", len(assets)))

	return sender.Send(ctx, channel.OutboundMessage{
		ChatID:      chatID,
		Attachments: p.attachments(assets),
	})
}

func (p *Pipeline) fetch(ctx context.Context, in intent.Intent) (media.Feed, string, error) {
	if in.IsUser() {
		label := "@" + in.Handle
		account, err := p.resolver.Resolve(ctx, in.Handle)
		if err != nil {
			return nil, label, err
		}
		feed, err := p.feeds.ByUser(ctx, account.ID)
		return feed, label, err
	}

	label := "#" + in.Tag
	feed, err := p.feeds.ByHashtag(ctx, in.Tag)
	return feed, label, err
}

// pick selects the feed index per the command's selection mode: first for
// latest, uniformly random otherwise.
func (p *Pipeline) pick(sel intent.Selection, n int) int {
	if sel == intent.SelectionLatest || n == 1 {
		return 0
	}
	return p.randIndex(n)
}

func (p *Pipeline) attachments(assets []media.ResolvedAsset) []channel.Attachment {
	atts := make([]channel.Attachment, 0, len(assets))
	for _, asset := range assets {
		stream := p.streamer.Stream(asset)
		atts = append(atts, channel.Attachment{
			Name: stream.Name,
			Mime: stream.Mime,
			Open: stream.Open,
		})
	}
	return atts
}

// failureText maps taxonomy errors to their user-facing messages. Unknown
// errors yield ok=false and are not surfaced to the chat.
func failureText(label string, err error) (string, bool) {
	switch {
	case errors.Is(err, instagram.ErrAccountNotFound):
		return "No such Instagram user.", true
	case errors.Is(err, instagram.ErrAccountPrivate):
		return fmt.Sprintf("%s's profile is private.", label), true
	case errors.Is(err, instagram.ErrEmptyFeed):
		return fmt.Sprintf("%s has no photos", label), true
	}
	return "", false
}
