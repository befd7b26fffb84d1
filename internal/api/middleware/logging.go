package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Trail is the logging gate: it records method, path, and timestamp before
// delegating. It never rejects.
func Trail(log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log.Info().
				Str("method", c.Request().Method).
				Str("path", c.Request().URL.Path).
				Time("at", time.Now().UTC()).
				Msg("request")
			return next(c)
		}
	}
}
