// Package notify hands rendered order summaries to the WhatsApp relay.
package notify

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode"

	"github.com/gordopods/storefront/internal/events"
)

type Notifier interface {
	Notify(ctx context.Context, destination, message string) error
}

type OutboxMessage struct {
	Destination string    `json:"destination"`
	Message     string    `json:"message"`
	QueuedAt    time.Time `json:"queued_at"`
}

// KafkaNotifier writes to the outbox topic consumed by the relay.
type KafkaNotifier struct {
	Publisher events.Publisher
	Topic     string
}

func (n *KafkaNotifier) Notify(ctx context.Context, destination, message string) error {
	phone := Digits(destination)
	if phone == "" {
		return fmt.Errorf("notify: empty destination")
	}
	msg := OutboxMessage{Destination: phone, Message: message, QueuedAt: time.Now().UTC()}
	if err := n.Publisher.PublishEvent(ctx, n.Topic, phone, msg); err != nil {
		return fmt.Errorf("notify: %w", err)
	}
	return nil
}

func Digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// WhatsAppLink builds a wa.me deep link. Local Brazilian numbers (10 or 11
// digits) get the 55 country code.
func WhatsAppLink(phone, message string) string {
	d := Digits(phone)
	if len(d) == 10 || len(d) == 11 {
		d = "55" + d
	}
	return "https://wa.me/" + d + "?text=" + url.QueryEscape(message)
}
