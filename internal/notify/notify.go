// Package notify delivers quotes to the configured chat.
package notify

import (
	"context"

	"quotebot/internal/source"
)

// Message is one formatted notification.
type Message struct {
	// Text is the full message body, already formatted for the
	// notifier's parse mode.
	Text string
}

// Notifier sends a message to the destination chat.
type Notifier interface {
	Send(ctx context.Context, msg Message) error
}

// NewQuoteMessage formats a quote for delivery.
func NewQuoteMessage(q source.Quote) Message {
	return Message{Text: FormatQuoteHTML(q)}
}
