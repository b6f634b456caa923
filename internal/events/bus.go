// Package events carries change notifications from the core stores to
// whatever wants to react to them. The core never knows who is listening;
// subscribers redraw, log or count as they see fit.
package events

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Event describes a single state change.
type Event struct {
	Topic      string
	OccurredAt time.Time
	Fields     map[string]string
}

// Notifier reacts to emitted events.
type Notifier interface {
	Notify(ctx context.Context, event Event) error
}

// Bus fans events out to the configured notifiers synchronously.
type Bus struct {
	Notifiers []Notifier
	Now       func() time.Time
}

func (b *Bus) now() time.Time {
	if b != nil && b.Now != nil {
		return b.Now()
	}
	return time.Now()
}

// Emit dispatches the event to all configured notifiers. Notifier failures
// are joined and returned but never stop the fan-out.
func (b *Bus) Emit(ctx context.Context, topic string, fields map[string]string) error {
	if b == nil {
		return nil
	}
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return errors.New("events: topic is required")
	}
	ev := Event{Topic: topic, OccurredAt: b.now(), Fields: fields}
	var joined error
	for _, notifier := range b.Notifiers {
		if notifier == nil {
			continue
		}
		if err := notifier.Notify(ctx, ev); err != nil {
			joined = errors.Join(joined, fmt.Errorf("events: notifier: %w", err))
		}
	}
	return joined
}

// LogNotifier writes every event to the structured log.
type LogNotifier struct {
	Logger zerolog.Logger
}

// Notify implements Notifier.
func (l LogNotifier) Notify(_ context.Context, event Event) error {
	evt := l.Logger.Info().Str("topic", event.Topic).Time("occurred_at", event.OccurredAt)
	for key, value := range event.Fields {
		evt = evt.Str(key, value)
	}
	evt.Msg("domain_event")
	return nil
}
