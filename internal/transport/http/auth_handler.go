package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/civicdesk/civicdesk-api/internal/service"
)

type AuthHandler struct {
	auth *service.AuthService
}

func RegisterAuth(e *echo.Echo, auth *service.AuthService) {
	handler := &AuthHandler{auth: auth}

	e.GET("/register", servePage(registerPage))
	e.POST("/register", handler.register)
	e.GET("/login", servePage(loginPage))
	e.POST("/login", handler.login)
	e.GET("/logout", handler.logout)
}

func (h *AuthHandler) register(c echo.Context) error {
	email := strings.TrimSpace(c.FormValue("email"))
	password := c.FormValue("password")
	confirm := c.FormValue("confirm")

	if email == "" || password == "" {
		return redirectWithFlash(c, "/register", "Email and password are required")
	}
	if password != confirm {
		return redirectWithFlash(c, "/register", "Passwords do not match")
	}

	if _, err := h.auth.Register(c.Request().Context(), email, password); err != nil {
		if errors.Is(err, service.ErrEmailAlreadyUsed) {
			return redirectWithFlash(c, "/register", "User already exists")
		}
		return err
	}
	return redirectWithFlash(c, "/login", "Registration successful. Please login.")
}

func (h *AuthHandler) login(c echo.Context) error {
	email := c.FormValue("email")
	password := c.FormValue("password")

	result, err := h.auth.Login(c.Request().Context(), email, password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return redirectWithFlash(c, "/login", "Invalid email or password")
		}
		return err
	}

	// A successful login replaces whatever session the browser still
	// carries; a failed attempt leaves it untouched.
	if prior := cookieValue(c, sessionCookieName); prior != "" {
		if err := h.auth.Logout(c.Request().Context(), prior); err != nil {
			return err
		}
	}

	setSessionCookie(c, sessionCookieName, result.Token, result.ExpiresAt)
	return c.Redirect(http.StatusSeeOther, "/dashboard")
}

func (h *AuthHandler) logout(c echo.Context) error {
	if token := cookieValue(c, sessionCookieName); token != "" {
		if err := h.auth.Logout(c.Request().Context(), token); err != nil {
			return err
		}
	}
	clearSessionCookie(c, sessionCookieName)
	return c.Redirect(http.StatusSeeOther, "/login")
}
