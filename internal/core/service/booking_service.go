package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/roamly/tour-booking-api/internal/api/metrics"
	"github.com/roamly/tour-booking-api/internal/core/domain"
	"github.com/roamly/tour-booking-api/internal/core/ports"
)

// BookingService orchestrates the booking repository and the event bus. Event
// publication is synchronous but non-fatal: a failed subscriber is logged and
// never fails the booking mutation itself.
type BookingService struct {
	repo ports.BookingRepository
	bus  ports.Publisher
	log  zerolog.Logger
}

func NewBookingService(repo ports.BookingRepository, bus ports.Publisher, log zerolog.Logger) *BookingService {
	return &BookingService{repo: repo, bus: bus, log: log}
}

// Create persists the booking and publishes booking:created with the inserted
// id and the booking data. An empty status defaults to Pending; anything
// outside the enumerated set is rejected.
func (s *BookingService) Create(ctx context.Context, input ports.CreateBookingInput) (string, error) {
	status := input.Status
	if status == "" {
		status = domain.StatusPending
	}
	if !domain.ValidStatus(status) {
		return "", domain.ErrInvalidStatus
	}

	now := time.Now().UTC()
	booking := domain.Booking{
		Reference:  newReference(),
		Email:      input.Email,
		PackageRef: input.PackageRef,
		GuestCount: input.GuestCount,
		TourDate:   input.TourDate,
		Status:     status,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	id, err := s.repo.Create(ctx, bson.M{
		"reference":   booking.Reference,
		"email":       booking.Email,
		"package_ref": booking.PackageRef,
		"guest_count": booking.GuestCount,
		"tour_date":   booking.TourDate,
		"status":      booking.Status,
		"created_at":  booking.CreatedAt,
		"updated_at":  booking.UpdatedAt,
	})
	if err != nil {
		s.log.Error().Err(err).Str("email", input.Email).Msg("failed to create booking")
		return "", err
	}
	booking.ID = id

	metrics.BookingsCreatedTotal.WithLabelValues(string(status)).Inc()
	s.log.Info().Str("booking_id", id).Str("reference", booking.Reference).Str("package_ref", booking.PackageRef).Msg("booking created")

	if err := s.bus.Publish(ctx, domain.EventBookingCreated, domain.BookingCreated{ID: id, Booking: booking}); err != nil {
		s.log.Warn().Err(err).Str("booking_id", id).Msg("booking:created subscribers failed")
	}
	return id, nil
}

// UpdateStatus moves the booking to one of {Pending, Accepted, Rejected} and
// publishes booking:statusChanged.
func (s *BookingService) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) (int64, error) {
	if !domain.ValidStatus(status) {
		return 0, domain.ErrInvalidStatus
	}

	modified, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return 0, err
	}

	if err := s.bus.Publish(ctx, domain.EventBookingStatusChanged, domain.BookingStatusChanged{ID: id, Status: status}); err != nil {
		s.log.Warn().Err(err).Str("booking_id", id).Msg("booking:statusChanged subscribers failed")
	}
	return modified, nil
}

// Delete removes the booking and publishes booking:deleted. The record is
// fetched before the delete so the event payload can carry it; if it vanished
// in between, the payload's Booking is nil and the delete itself is an
// idempotent no-op.
func (s *BookingService) Delete(ctx context.Context, id string) (int64, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return 0, err
	}

	if err := s.bus.Publish(ctx, domain.EventBookingDeleted, domain.BookingDeleted{ID: id, Booking: existing}); err != nil {
		s.log.Warn().Err(err).Str("booking_id", id).Msg("booking:deleted subscribers failed")
	}
	return deleted, nil
}

// FindByEmail lists all bookings made under an email.
func (s *BookingService) FindByEmail(ctx context.Context, email string) ([]domain.Booking, error) {
	return s.repo.FindByEmail(ctx, email)
}

// newReference returns a short human-facing booking code, e.g. TRB-9F2C41AB.
func newReference() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return fmt.Sprintf("TRB-%s", raw[:8])
}
