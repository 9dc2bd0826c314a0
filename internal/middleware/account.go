package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// AccountChecker confirms that a token subject still maps to a stored account.
type AccountChecker interface {
	AccountExists(ctx context.Context, subject string) (bool, error)
}

// RequireAccount rejects authenticated requests whose account has been removed
// since the token was issued. It must run after JWT.
func RequireAccount(accounts AccountChecker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			subject := UserIDFromContext(c)
			if subject == "" {
				return c.JSON(http.StatusUnauthorized, errorBody("missing authenticated user"))
			}

			ok, err := accounts.AccountExists(c.Request().Context(), subject)
			if err != nil {
				zerolog.Ctx(c.Request().Context()).Error().Err(err).Str("user_id", subject).Msg("account lookup failed")
				return c.JSON(http.StatusInternalServerError, errorBody("internal server error"))
			}
			if !ok {
				return c.JSON(http.StatusUnauthorized, errorBody("user not found"))
			}
			return next(c)
		}
	}
}
