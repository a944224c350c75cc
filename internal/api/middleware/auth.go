package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/enrollhub/enrollment-api/internal/api/metrics"
	"github.com/enrollhub/enrollment-api/internal/core/domain"
	"github.com/enrollhub/enrollment-api/internal/core/ports"
	"github.com/enrollhub/enrollment-api/internal/pkg/token"
)

const identityKey = "auth.identity"

// Identity returns the authenticated user injected by Auth. Handlers never
// re-derive identity; they receive it already validated.
func Identity(c echo.Context) (*domain.User, bool) {
	user, ok := c.Get(identityKey).(*domain.User)
	return user, ok
}

// Auth resolves the bearer token into a user entity and injects it into the
// request context. The token must be access-typed, carry an integer subject,
// and belong to an existing active user. Every failure collapses to 401; the
// precise reason goes to the log and the rejection counter only.
func Auth(codec *token.Codec, users ports.UserRepository, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := codec.Verify(parts[1])
			if err != nil {
				logRejectedToken(log, c, parts[1], err)
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			if claims.Type != token.TypeAccess {
				metrics.TokenRejectionsTotal.WithLabelValues("wrong_type").Inc()
				log.Warn().Str("path", c.Path()).Str("token_type", string(claims.Type)).
					Msg("non-access token presented as access token")
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			if claims.Subject == "" {
				metrics.TokenRejectionsTotal.WithLabelValues("bad_subject").Inc()
				log.Warn().Str("path", c.Path()).Msg("token payload missing subject")
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}
			id, err := strconv.ParseInt(claims.Subject, 10, 64)
			if err != nil {
				metrics.TokenRejectionsTotal.WithLabelValues("bad_subject").Inc()
				log.Warn().Str("path", c.Path()).Msg("token subject is not a valid user id")
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			user, err := users.FindByID(c.Request().Context(), id)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					metrics.TokenRejectionsTotal.WithLabelValues("user_not_found").Inc()
					log.Warn().Int64("user_id", id).Msg("token subject no longer exists")
					return echo.NewHTTPError(http.StatusUnauthorized, "user not found or inactive")
				}
				return err
			}
			if !user.IsActive {
				metrics.TokenRejectionsTotal.WithLabelValues("inactive").Inc()
				log.Warn().Int64("user_id", id).Msg("token subject is inactive")
				return echo.NewHTTPError(http.StatusUnauthorized, "user not found or inactive")
			}

			c.Set(identityKey, user)
			return next(c)
		}
	}
}

// logRejectedToken records why a token failed verification. On signature
// failure the payload is re-parsed WITHOUT verification purely to aid
// debugging (typically a SECRET_KEY mismatch between environments); those
// claims are attacker-controlled and are logged as untrusted, never acted on.
func logRejectedToken(log zerolog.Logger, c echo.Context, raw string, err error) {
	evt := log.Warn().Err(err).Str("path", c.Path())

	switch {
	case errors.Is(err, token.ErrSignature):
		metrics.TokenRejectionsTotal.WithLabelValues("signature").Inc()
		if untrusted, peekErr := token.PeekUnverified(raw); peekErr == nil {
			evt = evt.Interface("untrusted_claims", untrusted)
		}
		evt.Msg("token signature verification failed")
	case errors.Is(err, token.ErrExpired):
		metrics.TokenRejectionsTotal.WithLabelValues("expired").Inc()
		evt.Msg("token is expired")
	default:
		metrics.TokenRejectionsTotal.WithLabelValues("malformed").Inc()
		evt.Msg("token is malformed")
	}
}
