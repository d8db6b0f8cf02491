// Package bot routes inbound chat messages to the command pipeline or the
// passive sneak-peek filter.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/igpeek/igpeek/internal/channel"
	"github.com/igpeek/igpeek/internal/intent"
	"github.com/igpeek/igpeek/internal/pipeline"
)

const (
	commandWord = "ig"
	usageText   = "Usage: ig [latest] <@user | #hashtag>"
)

// Router dispatches inbound messages. Messages that invoke the command word
// run the synchronous pipeline and reply in the same chat; everything else
// passes through the passive filter, which returns immediately.
type Router struct {
	pipeline *pipeline.Pipeline
	senders  map[channel.Type]channel.Sender
	logger   *slog.Logger
}

// NewRouter builds a Router over the given senders, keyed by channel type.
func NewRouter(p *pipeline.Pipeline, senders map[channel.Type]channel.Sender, log *slog.Logger) *Router {
	if log == nil {
		log = slog.Default()
	}
	return &Router{
		pipeline: p,
		senders:  senders,
		logger:   log.With(slog.String("component", "router")),
	}
}

// Handle is the channel.InboundHandler for every connected adapter.
func (r *Router) Handle(ctx context.Context, msg channel.InboundMessage) error {
	sender, ok := r.senders[msg.Channel]
	if !ok {
		return fmt.Errorf("no sender for channel %q", msg.Channel)
	}

	if args, ok := CommandArgs(msg.Text); ok {
		err := r.pipeline.RunCommand(ctx, sender, msg.ChatID, args)
		if errors.Is(err, intent.ErrNoIntent) || errors.Is(err, intent.ErrAmbiguousIntent) {
			r.logger.Debug("command rejected", slog.String("chat_id", msg.ChatID), slog.Any("error", err))
			return sender.Send(ctx, channel.OutboundMessage{ChatID: msg.ChatID, Text: usageText})
		}
		return err
	}

	r.pipeline.RunPassive(ctx, sender, msg.ChatID, msg.Text)
	return nil
}

// CommandArgs reports whether text invokes the ig command and returns its
// argument string. Accepted forms: "ig ...", "/ig ...", "!ig ..." and the
// Telegram group form "/ig@botname ...".
func CommandArgs(text string) (string, bool) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return "", false
	}
	word := strings.ToLower(fields[0])
	word = strings.TrimLeft(word, "/!")
	if at := strings.IndexByte(word, '@'); at >= 0 {
		word = word[:at]
	}
	if word != commandWord {
		return "", false
	}
	return strings.Join(fields[1:], " "), true
}
