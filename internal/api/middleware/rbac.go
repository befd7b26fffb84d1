package middleware

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/roamly/tour-booking-api/internal/api/metrics"
	"github.com/roamly/tour-booking-api/internal/core/domain"
)

// UserReader is the slice of the user repository the authorization gate needs.
// Lookups go through the repository so they respect its caching proxy.
type UserReader interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}

// RequireRole is an authorization gate: it reads the decoded claim's email,
// loads the current user record, and compares its role to the required one.
// A mismatch — including "user not found" — ends the chain with
// domain.ErrForbidden, which the central error handler renders as a 403.
// Store failures propagate the same way and surface as 500s.
func RequireRole(users UserReader, role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			email, _ := c.Get("email").(string)

			user, err := users.FindByEmail(c.Request().Context(), email)
			if err != nil {
				return err
			}
			if user == nil || user.Role != role {
				metrics.AuthRejectionsTotal.WithLabelValues("role_mismatch").Inc()
				return domain.ErrForbidden
			}

			return next(c)
		}
	}
}
