package auth

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// LogoutHandler revokes the caller's current token. It must run behind
// JWTMiddleware.
func LogoutHandler(store RevocationStore, logger zerolog.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		claims := ClaimsFromContext(ctx)
		if claims == nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
		}

		// Default to 1 hour from now if the token carries no expiry
		expiresAt := time.Now().Add(time.Hour)
		if claims.ExpiresAt != nil {
			expiresAt = claims.ExpiresAt.Time
		}
		if err := store.Revoke(ctx, claims.ID, claims.Subject, expiresAt); err != nil {
			logger.Error().Err(err).Str("user_id", claims.Subject).Msg("logout failed")
			return echo.NewHTTPError(http.StatusServiceUnavailable, "logout unavailable")
		}

		logger.Info().Str("user_id", claims.Subject).Str("jti", claims.ID).Msg("token revoked")
		return c.NoContent(http.StatusNoContent)
	}
}
