package ports

import (
	"context"

	"github.com/roamly/tour-booking-api/internal/core/domain"
)

// RegisterInput carries the data needed to create an account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// RegisterResult reports the outcome of a registration. InsertedID is nil when
// the email was already registered: duplicate registration is an idempotent
// no-op, not an error.
type RegisterResult struct {
	InsertedID *string
}

// AuthService implements account registration, login, and role management.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*RegisterResult, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	GenerateToken(email, role string) (string, error)
	CheckRole(ctx context.Context, email, role string) (bool, error)
	UpdateRole(ctx context.Context, id, role string) (int64, error)
}
