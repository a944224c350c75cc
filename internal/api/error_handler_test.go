package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/enrollhub/enrollment-api/internal/core/domain"
	"github.com/enrollhub/enrollment-api/internal/pkg/token"
)

func renderError(t *testing.T, err error) (*httptest.ResponseRecorder, string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid error envelope: %v", err)
	}
	return rec, body["error"]
}

func TestErrorHandler_DomainMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{domain.ErrEmailTaken, http.StatusConflict},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{domain.ErrAccountInactive, http.StatusForbidden},
		{domain.ErrInvalidToken, http.StatusUnauthorized},
		{token.ErrMalformed, http.StatusUnauthorized},
		{token.ErrSignature, http.StatusUnauthorized},
		{token.ErrExpired, http.StatusUnauthorized},
		{domain.ErrUnknownRole, http.StatusBadRequest},
		{domain.ErrUserNotFound, http.StatusNotFound},
		{domain.ErrNewsNotFound, http.StatusNotFound},
		{domain.ErrHashingFailure, http.StatusInternalServerError},
		{errors.New("database exploded"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		rec, _ := renderError(t, tc.err)
		if rec.Code != tc.code {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.code, rec.Code)
		}
	}
}

func TestErrorHandler_WrappedErrors(t *testing.T) {
	rec, _ := renderError(t, fmt.Errorf("%w: expected refresh token", domain.ErrInvalidToken))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("wrapped ErrInvalidToken: expected 401, got %d", rec.Code)
	}
}

func TestErrorHandler_NoCredentialLeak(t *testing.T) {
	// Unknown email and wrong password produce byte-identical responses.
	recA, msgA := renderError(t, domain.ErrInvalidCredentials)
	recB, msgB := renderError(t, fmt.Errorf("login: %w", domain.ErrInvalidCredentials))

	if recA.Code != recB.Code || msgA != msgB {
		t.Fatalf("credential errors differ: %d/%q vs %d/%q", recA.Code, msgA, recB.Code, msgB)
	}
}

func TestErrorHandler_InternalDetailHidden(t *testing.T) {
	_, msg := renderError(t, errors.New("pq: connection refused on 10.0.0.3"))
	if msg != "internal server error" {
		t.Fatalf("internal detail leaked to client: %q", msg)
	}
}

func TestErrorHandler_EchoHTTPError(t *testing.T) {
	rec, msg := renderError(t, echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header"))
	if rec.Code != http.StatusUnauthorized || msg != "missing authorization header" {
		t.Fatalf("echo error not passed through: %d %q", rec.Code, msg)
	}
}
