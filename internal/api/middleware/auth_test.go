package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/roamly/tour-booking-api/internal/api/metrics"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func invokeAuth(t *testing.T, header string, next echo.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/bookings", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := Auth(testSecret)(next)(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	return rec
}

func assertUnauthorized(t *testing.T, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if body["message"] != "Forbidden Access" {
		t.Fatalf("unexpected message: %q", body["message"])
	}
}

func TestAuth_MissingHeader(t *testing.T) {
	before := testutil.ToFloat64(metrics.AuthRejectionsTotal.WithLabelValues("missing_header"))

	nextCalled := false
	rec := invokeAuth(t, "", func(c echo.Context) error {
		nextCalled = true
		return nil
	})

	assertUnauthorized(t, rec)
	if nextCalled {
		t.Fatalf("next handler must not run without credentials")
	}
	if got := testutil.ToFloat64(metrics.AuthRejectionsTotal.WithLabelValues("missing_header")) - before; got != 1 {
		t.Fatalf("expected one missing_header rejection, got %v", got)
	}
}

func TestAuth_MalformedHeader(t *testing.T) {
	before := testutil.ToFloat64(metrics.AuthRejectionsTotal.WithLabelValues("malformed_header"))
	missingBefore := testutil.ToFloat64(metrics.AuthRejectionsTotal.WithLabelValues("missing_header"))

	rec := invokeAuth(t, "Token abc", func(c echo.Context) error { return nil })
	assertUnauthorized(t, rec)

	// A present-but-unusable header is not a missing one; the two rejection
	// causes count separately.
	if got := testutil.ToFloat64(metrics.AuthRejectionsTotal.WithLabelValues("malformed_header")) - before; got != 1 {
		t.Fatalf("expected one malformed_header rejection, got %v", got)
	}
	if got := testutil.ToFloat64(metrics.AuthRejectionsTotal.WithLabelValues("missing_header")) - missingBefore; got != 0 {
		t.Fatalf("malformed header must not count as missing_header, got %v", got)
	}
}

func TestAuth_InvalidSignature(t *testing.T) {
	token := signToken(t, "wrong-secret", jwt.MapClaims{
		"email": "a@x.com",
		"role":  "user",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	rec := invokeAuth(t, "Bearer "+token, func(c echo.Context) error { return nil })
	assertUnauthorized(t, rec)
}

func TestAuth_ExpiredToken(t *testing.T) {
	token := signToken(t, testSecret, jwt.MapClaims{
		"email": "a@x.com",
		"role":  "user",
		"exp":   time.Now().Add(-time.Minute).Unix(),
	})

	rec := invokeAuth(t, "Bearer "+token, func(c echo.Context) error { return nil })
	assertUnauthorized(t, rec)
}

func TestAuth_ValidTokenDecodesClaims(t *testing.T) {
	token := signToken(t, testSecret, jwt.MapClaims{
		"email": "a@x.com",
		"role":  "admin",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	var gotEmail, gotRole any
	rec := invokeAuth(t, "Bearer "+token, func(c echo.Context) error {
		gotEmail = c.Get("email")
		gotRole = c.Get("role")
		return c.NoContent(http.StatusOK)
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if gotEmail != "a@x.com" || gotRole != "admin" {
		t.Fatalf("expected decoded claims on context, got email=%v role=%v", gotEmail, gotRole)
	}
}

func TestAuth_BearerIsCaseInsensitive(t *testing.T) {
	token := signToken(t, testSecret, jwt.MapClaims{
		"email": "a@x.com",
		"role":  "user",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	rec := invokeAuth(t, strings.ToLower("bearer ")+token, func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
