package ports

import (
	"context"
	"time"

	"github.com/roamly/tour-booking-api/internal/core/domain"
)

// CreateBookingInput carries the data needed to create a booking. Status is
// optional; it defaults to Pending.
type CreateBookingInput struct {
	Email      string
	PackageRef string
	GuestCount int
	TourDate   time.Time
	Status     domain.BookingStatus
}

// BookingService orchestrates the booking repository and the event bus.
type BookingService interface {
	Create(ctx context.Context, input CreateBookingInput) (string, error)
	UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
	FindByEmail(ctx context.Context, email string) ([]domain.Booking, error)
}

// Publisher is the slice of the event bus the services depend on.
type Publisher interface {
	Publish(ctx context.Context, event string, payload any) error
}
