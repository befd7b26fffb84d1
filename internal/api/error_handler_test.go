package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/roamly/tour-booking-api/internal/core/domain"
)

func renderError(t *testing.T, err error) (int, string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	return rec.Code, body["message"]
}

func TestHTTPErrorHandler_Forbidden(t *testing.T) {
	code, msg := renderError(t, domain.ErrForbidden)
	if code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", code)
	}
	if msg != "Forbidden access" {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestHTTPErrorHandler_DomainSentinels(t *testing.T) {
	if code, msg := renderError(t, domain.ErrInvalidID); code != http.StatusBadRequest || msg != "invalid identifier" {
		t.Fatalf("ErrInvalidID: got %d %q", code, msg)
	}
	if code, _ := renderError(t, domain.ErrInvalidStatus); code != http.StatusUnprocessableEntity {
		t.Fatalf("ErrInvalidStatus: got %d", code)
	}
	if code, msg := renderError(t, domain.ErrInvalidCredentials); code != http.StatusUnauthorized || msg != "invalid credentials" {
		t.Fatalf("ErrInvalidCredentials: got %d %q", code, msg)
	}
	if code, msg := renderError(t, domain.ErrUserNotFound); code != http.StatusNotFound || msg != "user not found" {
		t.Fatalf("ErrUserNotFound: got %d %q", code, msg)
	}
}

func TestHTTPErrorHandler_StoreErrorsUndifferentiated(t *testing.T) {
	code, msg := renderError(t, errors.New("mongo: connection reset"))
	if code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}
	if msg != "internal server error" {
		t.Fatalf("store error detail must not leak, got %q", msg)
	}
}

func TestHTTPErrorHandler_EchoErrorsPassThrough(t *testing.T) {
	code, msg := renderError(t, echo.NewHTTPError(http.StatusBadRequest, "invalid payload"))
	if code != http.StatusBadRequest || msg != "invalid payload" {
		t.Fatalf("got %d %q", code, msg)
	}
}
