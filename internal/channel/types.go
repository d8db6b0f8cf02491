// Package channel provides a unified abstraction for the chat platforms the
// bot speaks to. It defines message types, adapter interfaces, and a base
// connection used by the Telegram and Discord adapters.
package channel

import (
	"context"
	"io"
	"time"
)

// Type identifies a messaging platform (e.g., "telegram", "discord").
type Type string

// String returns the channel type as a plain string.
func (t Type) String() string {
	return string(t)
}

// Attachment is a lazily-opened binary payload for an outbound message.
// Open is called by the adapter at send time; the adapter closes the reader.
type Attachment struct {
	Name string
	Mime string
	Open func(ctx context.Context) (io.ReadCloser, error)
}

// InboundMessage is a message received from a chat platform.
type InboundMessage struct {
	Channel    Type
	ID         string
	ChatID     string
	Sender     string
	Text       string
	ReceivedAt time.Time
}

// OutboundMessage is a message to deliver to a chat platform. Text and
// Attachments may both be set; attachments are sent in order.
type OutboundMessage struct {
	ChatID      string
	Text        string
	Attachments []Attachment
}
