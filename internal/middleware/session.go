package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"arbatai/internal/services"
)

// RequireSession rejects requests without a valid backoffice session cookie.
// Authentication failures are a plain 401; the reason (missing cookie, bad
// signature, expired token) is never surfaced to the client.
func RequireSession(authSvc services.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(services.SessionCookieName)
			if err != nil || !authSvc.IsAuthenticated(cookie.Value) {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
			}
			return next(c)
		}
	}
}
