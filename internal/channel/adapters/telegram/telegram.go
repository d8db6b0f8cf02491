// Package telegram implements the channel contracts for Telegram bots.
package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/igpeek/igpeek/internal/channel"
)

// Type is the Telegram channel type.
const Type = channel.Type("telegram")

// Adapter implements channel.Adapter for one Telegram bot token.
type Adapter struct {
	logger *slog.Logger
	token  string

	bot *tgbotapi.BotAPI
}

// New creates a Telegram adapter. The bot session is established lazily.
func New(token string, log *slog.Logger) *Adapter {
	if log == nil {
		log = slog.Default()
	}
	return &Adapter{
		logger: log.With(slog.String("adapter", "telegram")),
		token:  token,
	}
}

// Type returns the Telegram channel type.
func (a *Adapter) Type() channel.Type {
	return Type
}

func (a *Adapter) getOrCreateBot() (*tgbotapi.BotAPI, error) {
	if a.bot != nil {
		return a.bot, nil
	}
	bot, err := tgbotapi.NewBotAPI(a.token)
	if err != nil {
		a.logger.Error("create bot failed", slog.Any("error", err))
		return nil, err
	}
	a.bot = bot
	return bot, nil
}

// Connect starts a long-poll update loop and feeds messages to handler.
func (a *Adapter) Connect(ctx context.Context, handler channel.InboundHandler) (channel.Connection, error) {
	a.logger.Info("start")
	bot, err := a.getOrCreateBot()
	if err != nil {
		return nil, err
	}

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 30
	updates := bot.GetUpdatesChan(updateConfig)
	connCtx, cancel := context.WithCancel(ctx)

	go func() {
		for {
			select {
			case <-connCtx.Done():
				return
			case update, ok := <-updates:
				if !ok {
					a.logger.Info("updates channel closed")
					return
				}
				if update.Message == nil {
					continue
				}
				text := strings.TrimSpace(update.Message.Text)
				if text == "" {
					text = strings.TrimSpace(update.Message.Caption)
				}
				if text == "" || update.Message.Chat == nil {
					continue
				}
				msg := channel.InboundMessage{
					Channel:    Type,
					ID:         strconv.Itoa(update.Message.MessageID),
					ChatID:     strconv.FormatInt(update.Message.Chat.ID, 10),
					Sender:     senderName(update.Message),
					Text:       text,
					ReceivedAt: time.Unix(int64(update.Message.Date), 0).UTC(),
				}
				go func() {
					if err := handler(connCtx, msg); err != nil {
						a.logger.Error("handle inbound failed",
							slog.String("chat_id", msg.ChatID), slog.Any("error", err))
					}
				}()
			}
		}
	}()

	stop := func(_ context.Context) error {
		a.logger.Info("stop")
		bot.StopReceivingUpdates()
		cancel()
		// Drain remaining updates so the library's polling goroutine can
		// finish writing and exit.
		for range updates {
		}
		return nil
	}
	return channel.NewConnection(Type, stop), nil
}

// Send delivers text and attachments to a Telegram chat. The first
// attachment carries the message text as its caption.
func (a *Adapter) Send(ctx context.Context, msg channel.OutboundMessage) error {
	bot, err := a.getOrCreateBot()
	if err != nil {
		return err
	}
	chatID, err := strconv.ParseInt(strings.TrimSpace(msg.ChatID), 10, 64)
	if err != nil {
		return fmt.Errorf("telegram target must be a chat id: %w", err)
	}

	if len(msg.Attachments) == 0 {
		if strings.TrimSpace(msg.Text) == "" {
			return fmt.Errorf("message is required")
		}
		_, err := bot.Send(tgbotapi.NewMessage(chatID, msg.Text))
		return err
	}

	caption := msg.Text
	for _, att := range msg.Attachments {
		if err := a.sendAttachment(ctx, bot, chatID, att, caption); err != nil {
			a.logger.Error("send attachment failed",
				slog.String("chat_id", msg.ChatID),
				slog.String("name", att.Name),
				slog.Any("error", err))
			return err
		}
		caption = ""
	}
	return nil
}

func (a *Adapter) sendAttachment(ctx context.Context, bot *tgbotapi.BotAPI, chatID int64, att channel.Attachment, caption string) error {
	body, err := att.Open(ctx)
	if err != nil {
		return err
	}
	defer body.Close()

	file := tgbotapi.FileReader{Name: att.Name, Reader: body}
	switch {
	case strings.HasPrefix(att.Mime, "image/"):
		photo := tgbotapi.NewPhoto(chatID, file)
		photo.Caption = caption
		_, err = bot.Send(photo)
	case strings.HasPrefix(att.Mime, "video/"):
		video := tgbotapi.NewVideo(chatID, file)
		video.Caption = caption
		_, err = bot.Send(video)
	default:
		document := tgbotapi.NewDocument(chatID, file)
		document.Caption = caption
		_, err = bot.Send(document)
	}
	return err
}

func senderName(msg *tgbotapi.Message) string {
	if msg.From == nil {
		return ""
	}
	if name := strings.TrimSpace(msg.From.UserName); name != "" {
		return name
	}
	return strings.TrimSpace(msg.From.FirstName + " " + msg.From.LastName)
}
