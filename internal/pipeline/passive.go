package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"

	"github.com/google/uuid"

	"github.com/igpeek/igpeek/internal/channel"
	"github.com/igpeek/igpeek/internal/media"
)

const maxHandleLen = 30

// linkPattern recognizes profile links in ordinary conversation. Same
// username shape as the intent parser, anchored on the instagram.com host.
var linkPattern = regexp.MustCompile(`instagram\.com/([A-Za-z0-9_](?:\.?[A-Za-z0-9_])*)`)

// nonProfileSegments are well-known instagram.com path segments that must
// never be read as usernames.
var nonProfileSegments = map[string]struct{}{
	"p":        {},
	"reel":     {},
	"reels":    {},
	"tv":       {},
	"explore":  {},
	"stories":  {},
	"accounts": {},
}

// RunPassive scans arbitrary conversation text for a profile link and, when
// one is found, launches the sneak-peek chain in the background. It returns
// before any network I/O starts; every failure in the chain ends in a log
// line and nowhere else.
func (p *Pipeline) RunPassive(ctx context.Context, sender channel.Sender, chatID, body string) {
	handle, ok := MatchProfileLink(body)
	if !ok {
		return
	}

	log := p.logger.With(
		slog.String("request_id", uuid.NewString()),
		slog.String("chat_id", chatID),
		slog.String("handle", handle),
	)

	// Detach from the inbound message's context: the filter stage returns
	// immediately and must not be able to cancel or observe this chain.
	bg := context.WithoutCancel(ctx)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Error("sneak peek panicked", slog.Any("panic", r))
			}
		}()
		if err := p.sneakPeek(bg, sender, chatID, handle); err != nil {
			log.Error("sneak peek failed", slog.Any("error", err))
		}
	}()
}

// MatchProfileLink extracts the profile handle from a recognized
// instagram.com link, rejecting non-profile path segments.
func MatchProfileLink(body string) (string, bool) {
	m := linkPattern.FindStringSubmatch(body)
	if m == nil {
		return "", false
	}
	handle := m[1]
	if len(handle) > maxHandleLen {
		return "", false
	}
	if _, skip := nonProfileSegments[handle]; skip {
		return "", false
	}
	return handle, true
}

// sneakPeek resolves the handle, takes the first min(maxPhotos, len) feed
// items in feed order, and sends one representative asset per item.
func (p *Pipeline) sneakPeek(ctx context.Context, sender channel.Sender, chatID, handle string) error {
	account, err := p.resolver.Resolve(ctx, handle)
	if err != nil {
		return err
	}
	feed, err := p.feeds.ByUser(ctx, account.ID)
	if err != nil {
		return err
	}

	n := min(p.maxPhotos, len(feed))
	assets := make([]media.ResolvedAsset, 0, n)
	for _, item := range feed[:n] {
		if asset, ok := media.Representative(item); ok {
			assets = append(assets, asset)
		}
	}

	return sender.Send(ctx, channel.OutboundMessage{
		ChatID:      chatID,
		Text:        fmt.Sprintf("Here's a sneak peek of @%s", account.Handle),
		Attachments: p.attachments(assets),
	})
}
