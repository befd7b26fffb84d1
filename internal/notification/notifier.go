// Package notification reacts to booking lifecycle events. The notifier is
// the stand-in for the mail/push collaborator, which is an external concern:
// it emits structured log notifications and keeps Prometheus counters. A
// Redis-backed dedup guard ensures a replayed event notifies at most once.
package notification

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/roamly/tour-booking-api/internal/api/metrics"
	"github.com/roamly/tour-booking-api/internal/core/domain"
	"github.com/roamly/tour-booking-api/internal/infrastructure/bus"
)

// DedupGuard abstracts the notification idempotency store (Redis).
type DedupGuard interface {
	Seen(ctx context.Context, event, id string) (bool, error)
	Mark(ctx context.Context, event, id string) error
}

// Notifier subscribes to booking events and notifies interested parties.
type Notifier struct {
	dedup DedupGuard
	log   zerolog.Logger
}

func NewNotifier(dedup DedupGuard, log zerolog.Logger) *Notifier {
	return &Notifier{dedup: dedup, log: log}
}

// SubscribeAll registers the notifier for every booking event. Called once at
// startup; the subscriptions live for the process lifetime.
func (n *Notifier) SubscribeAll(b *bus.Bus) {
	b.Subscribe(domain.EventBookingCreated, n.HandleBookingCreated)
	b.Subscribe(domain.EventBookingStatusChanged, n.HandleStatusChanged)
	b.Subscribe(domain.EventBookingDeleted, n.HandleBookingDeleted)
}

// HandleBookingCreated notifies about a new booking.
func (n *Notifier) HandleBookingCreated(ctx context.Context, payload any) error {
	p, ok := payload.(domain.BookingCreated)
	if !ok {
		return fmt.Errorf("notify: unexpected payload %T for %s", payload, domain.EventBookingCreated)
	}

	if n.isDuplicate(ctx, domain.EventBookingCreated, p.ID) {
		return nil
	}

	n.log.Info().
		Str("event", domain.EventBookingCreated).
		Str("booking_id", p.ID).
		Str("reference", p.Booking.Reference).
		Str("email", p.Booking.Email).
		Str("package_ref", p.Booking.PackageRef).
		Msg("booking notification")

	n.mark(ctx, domain.EventBookingCreated, p.ID)
	metrics.NotificationsSentTotal.WithLabelValues(domain.EventBookingCreated).Inc()
	return nil
}

// HandleStatusChanged notifies about a booking status transition.
func (n *Notifier) HandleStatusChanged(ctx context.Context, payload any) error {
	p, ok := payload.(domain.BookingStatusChanged)
	if !ok {
		return fmt.Errorf("notify: unexpected payload %T for %s", payload, domain.EventBookingStatusChanged)
	}

	// Status can change repeatedly; the dedup key includes the status so each
	// transition notifies once.
	key := p.ID + ":" + string(p.Status)
	if n.isDuplicate(ctx, domain.EventBookingStatusChanged, key) {
		return nil
	}

	n.log.Info().
		Str("event", domain.EventBookingStatusChanged).
		Str("booking_id", p.ID).
		Str("status", string(p.Status)).
		Msg("booking notification")

	n.mark(ctx, domain.EventBookingStatusChanged, key)
	metrics.NotificationsSentTotal.WithLabelValues(domain.EventBookingStatusChanged).Inc()
	return nil
}

// HandleBookingDeleted notifies about a deleted booking. Booking is nil when
// the record had already vanished before the delete.
func (n *Notifier) HandleBookingDeleted(ctx context.Context, payload any) error {
	p, ok := payload.(domain.BookingDeleted)
	if !ok {
		return fmt.Errorf("notify: unexpected payload %T for %s", payload, domain.EventBookingDeleted)
	}

	if n.isDuplicate(ctx, domain.EventBookingDeleted, p.ID) {
		return nil
	}

	evt := n.log.Info().
		Str("event", domain.EventBookingDeleted).
		Str("booking_id", p.ID)
	if p.Booking != nil {
		evt = evt.Str("email", p.Booking.Email).Str("reference", p.Booking.Reference)
	} else {
		evt = evt.Bool("booking_missing", true)
	}
	evt.Msg("booking notification")

	n.mark(ctx, domain.EventBookingDeleted, p.ID)
	metrics.NotificationsSentTotal.WithLabelValues(domain.EventBookingDeleted).Inc()
	return nil
}

// isDuplicate consults the dedup guard; a guard failure is logged and the
// notification proceeds anyway.
func (n *Notifier) isDuplicate(ctx context.Context, event, key string) bool {
	seen, err := n.dedup.Seen(ctx, event, key)
	if err != nil {
		n.log.Warn().Err(err).Str("event", event).Msg("dedup check failed, notifying anyway")
		return false
	}
	if seen {
		n.log.Debug().Str("event", event).Str("key", key).Msg("duplicate notification skipped")
		metrics.NotificationsDedupedTotal.WithLabelValues(event).Inc()
	}
	return seen
}

func (n *Notifier) mark(ctx context.Context, event, key string) {
	if err := n.dedup.Mark(ctx, event, key); err != nil {
		n.log.Warn().Err(err).Str("event", event).Msg("failed to set dedup key")
	}
}
