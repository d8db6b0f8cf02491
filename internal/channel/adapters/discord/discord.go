// Package discord implements the channel contracts for Discord bots.
package discord

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/igpeek/igpeek/internal/channel"
)

// Type is the Discord channel type.
const Type = channel.Type("discord")

// Adapter implements channel.Adapter for one Discord bot token.
type Adapter struct {
	logger *slog.Logger
	token  string

	session *discordgo.Session
}

// New creates a Discord adapter. The gateway session is established lazily.
func New(token string, log *slog.Logger) *Adapter {
	if log == nil {
		log = slog.Default()
	}
	return &Adapter{
		logger: log.With(slog.String("adapter", "discord")),
		token:  token,
	}
}

// Type returns the Discord channel type.
func (a *Adapter) Type() channel.Type {
	return Type
}

func (a *Adapter) getOrCreateSession() (*discordgo.Session, error) {
	if a.session != nil {
		return a.session, nil
	}
	session, err := discordgo.New("Bot " + a.token)
	if err != nil {
		a.logger.Error("create session failed", slog.Any("error", err))
		return nil, err
	}
	session.Identify.Intents = discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentMessageContent
	a.session = session
	return session, nil
}

// Connect opens the gateway and feeds message-create events to handler.
func (a *Adapter) Connect(ctx context.Context, handler channel.InboundHandler) (channel.Connection, error) {
	a.logger.Info("start")
	session, err := a.getOrCreateSession()
	if err != nil {
		return nil, err
	}

	connCtx, cancel := context.WithCancel(ctx)
	remove := session.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		if m.Author == nil || (s.State != nil && s.State.User != nil && m.Author.ID == s.State.User.ID) {
			return
		}
		text := strings.TrimSpace(m.Content)
		if text == "" {
			return
		}
		msg := channel.InboundMessage{
			Channel:    Type,
			ID:         m.ID,
			ChatID:     m.ChannelID,
			Sender:     m.Author.Username,
			Text:       text,
			ReceivedAt: time.Now().UTC(),
		}
		go func() {
			if err := handler(connCtx, msg); err != nil {
				a.logger.Error("handle inbound failed",
					slog.String("chat_id", msg.ChatID), slog.Any("error", err))
			}
		}()
	})

	if err := session.Open(); err != nil {
		remove()
		cancel()
		a.logger.Error("open gateway failed", slog.Any("error", err))
		return nil, err
	}

	stop := func(_ context.Context) error {
		a.logger.Info("stop")
		remove()
		cancel()
		return session.Close()
	}
	return channel.NewConnection(Type, stop), nil
}

// Send delivers text and attachments to a Discord channel in one message.
func (a *Adapter) Send(ctx context.Context, msg channel.OutboundMessage) error {
	session, err := a.getOrCreateSession()
	if err != nil {
		return err
	}
	if strings.TrimSpace(msg.ChatID) == "" {
		return fmt.Errorf("discord target is required")
	}

	files := make([]*discordgo.File, 0, len(msg.Attachments))
	defer func() {
		for _, f := range files {
			if closer, ok := f.Reader.(interface{ Close() error }); ok {
				closer.Close()
			}
		}
	}()
	for _, att := range msg.Attachments {
		body, err := att.Open(ctx)
		if err != nil {
			return err
		}
		files = append(files, &discordgo.File{
			Name:        att.Name,
			ContentType: att.Mime,
			Reader:      body,
		})
	}

	if msg.Text == "" && len(files) == 0 {
		return fmt.Errorf("message is required")
	}
	_, err = session.ChannelMessageSendComplex(msg.ChatID, &discordgo.MessageSend{
		Content: msg.Text,
		Files:   files,
	}, discordgo.WithContext(ctx))
	return err
}
