package ports

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/roamly/tour-booking-api/internal/core/domain"
)

// Repository is the uniform CRUD contract every collection exposes to the
// service and handler layers, independent of caching or storage details.
// FindByID returns (nil, nil) for a missing document and domain.ErrInvalidID
// for a malformed identifier.
type Repository interface {
	FindAll(ctx context.Context, filter bson.M) ([]bson.M, error)
	FindByID(ctx context.Context, id string) (bson.M, error)
	Create(ctx context.Context, doc bson.M) (string, error)
	Update(ctx context.Context, id string, doc bson.M) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
}

// UserRepository adds the user-specific queries the auth chain and the auth
// service need.
type UserRepository interface {
	Repository
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateRole(ctx context.Context, id, role string) (int64, error)
}

// BookingRepository adds the booking-specific queries.
type BookingRepository interface {
	Repository
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	FindByEmail(ctx context.Context, email string) ([]domain.Booking, error)
	UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) (int64, error)
}

// WishlistRepository adds the user-email lookup wish-lists are keyed on.
type WishlistRepository interface {
	Repository
	FindByUserEmail(ctx context.Context, email string) ([]bson.M, error)
}
