package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"arbatai/internal/services"
)

// AuthHandlers handles backoffice login and logout
type AuthHandlers struct {
	authSvc services.AuthService
}

// NewAuthHandlers creates a new auth handlers instance
func NewAuthHandlers(authSvc services.AuthService) *AuthHandlers {
	return &AuthHandlers{authSvc: authSvc}
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	Password string `json:"password"`
}

// Login verifies the shared admin secret and issues a session cookie
func (h *AuthHandlers) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if !h.authSvc.VerifyPassword(req.Password) {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid password")
	}

	c.SetCookie(h.authSvc.IssueSession())
	return c.NoContent(http.StatusNoContent)
}

// Logout clears the session cookie
func (h *AuthHandlers) Logout(c echo.Context) error {
	c.SetCookie(h.authSvc.ClearSession())
	return c.NoContent(http.StatusNoContent)
}
