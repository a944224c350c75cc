package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/enrollhub/enrollment-api/internal/core/domain"
	"github.com/enrollhub/enrollment-api/internal/pkg/token"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Keeps diagnostic detail in the server log; the client sees only the
//     minimal class of failure (unauthorized vs forbidden vs conflict).
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, middleware errors).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	switch {
	case errors.Is(err, domain.ErrEmailTaken):
		return http.StatusConflict, "email already registered"
	case errors.Is(err, domain.ErrInvalidCredentials):
		// One message for unknown email and wrong password: responses must
		// not reveal whether the email exists.
		return http.StatusUnauthorized, "incorrect email or password"
	case errors.Is(err, domain.ErrAccountInactive):
		return http.StatusForbidden, "user account is inactive"
	case errors.Is(err, domain.ErrInvalidToken),
		errors.Is(err, token.ErrMalformed),
		errors.Is(err, token.ErrSignature),
		errors.Is(err, token.ErrExpired):
		log.Warn().Err(err).Str("path", c.Path()).Msg("rejected token")
		return http.StatusUnauthorized, "invalid or expired token"
	case errors.Is(err, domain.ErrUnknownRole):
		return http.StatusBadRequest, "role must be one of: applicant, centre, admin"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "user not found"
	case errors.Is(err, domain.ErrNewsNotFound):
		return http.StatusNotFound, "news item not found"
	case errors.Is(err, domain.ErrHashingFailure):
		log.Error().Err(err).Msg("credential hashing failure")
		return http.StatusInternalServerError, "internal server error"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
