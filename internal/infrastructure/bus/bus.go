// Package bus provides the in-process publish/subscribe mechanism booking
// lifecycle events travel on. Subscribers register at startup and live for the
// process lifetime; there is no persistence, no replay, and no delivery
// guarantee beyond "call order equals subscribe order, at the moment of
// publish".
package bus

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/roamly/tour-booking-api/internal/api/metrics"
)

// Handler reacts to a published event. A handler's failure is not swallowed by
// the bus; Publish returns it to the caller.
type Handler func(ctx context.Context, payload any) error

// Subscription identifies one registered handler so it can be removed again.
type Subscription struct {
	event   string
	id      uint64
	handler Handler
}

// Bus is a process-wide event bus keyed by event name. Safe for concurrent use.
type Bus struct {
	log zerolog.Logger

	mu   sync.RWMutex
	next uint64
	subs map[string][]*Subscription
}

func New(log zerolog.Logger) *Bus {
	return &Bus{
		log:  log,
		subs: make(map[string][]*Subscription),
	}
}

// Subscribe registers handler for event. Handlers fire in subscription order.
func (b *Bus) Subscribe(event string, handler Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.next++
	sub := &Subscription{event: event, id: b.next, handler: handler}
	b.subs[event] = append(b.subs[event], sub)
	return sub
}

// Unsubscribe removes a previously registered handler. Unknown subscriptions
// are ignored.
func (b *Bus) Unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	list := b.subs[sub.event]
	for i, s := range list {
		if s.id == sub.id {
			b.subs[sub.event] = append(list[:i:i], list[i+1:]...)
			return
		}
	}
}

// Publish invokes every handler currently subscribed to event, synchronously
// and in subscription order, passing the same payload to each. All handlers
// run even when an earlier one fails; the joined errors are returned so the
// publisher decides whether a failed notification matters.
func (b *Bus) Publish(ctx context.Context, event string, payload any) error {
	b.mu.RLock()
	handlers := make([]*Subscription, len(b.subs[event]))
	copy(handlers, b.subs[event])
	b.mu.RUnlock()

	metrics.EventsPublishedTotal.WithLabelValues(event).Inc()

	var errs []error
	for _, sub := range handlers {
		if err := sub.handler(ctx, payload); err != nil {
			b.log.Error().Err(err).Str("event", event).Msg("event handler failed")
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
