package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/civicdesk/civicdesk-api/internal/service"
)

type ResetHandler struct {
	auth  *service.AuthService
	reset *service.ResetService
}

func RegisterReset(e *echo.Echo, auth *service.AuthService, reset *service.ResetService) {
	handler := &ResetHandler{auth: auth, reset: reset}

	e.GET("/forgot-password", servePage(forgotPasswordPage))
	e.POST("/forgot-password", handler.forgotPassword)
	e.GET("/verify-otp", servePage(verifyOTPPage))
	e.POST("/verify-otp", handler.verifyOTP)
	e.POST("/resend-otp", handler.resendOTP)
	e.GET("/reset-password", handler.resetPasswordPage)
	e.POST("/reset-password", handler.resetPassword)
}

func (h *ResetHandler) forgotPassword(c echo.Context) error {
	email := c.FormValue("email")
	if err := h.reset.Start(c.Request().Context(), email); err != nil {
		if errors.Is(err, service.ErrUnknownEmail) {
			return redirectWithFlash(c, "/forgot-password", "Email not found")
		}
		return err
	}
	return redirectWithFlash(c, "/verify-otp", "OTP sent (check console)")
}

func (h *ResetHandler) verifyOTP(c echo.Context) error {
	email := c.FormValue("email")
	code := c.FormValue("otp")

	userID, err := h.reset.Verify(c.Request().Context(), email, code)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidOTP):
			return redirectWithFlash(c, "/verify-otp", "Invalid OTP")
		case errors.Is(err, service.ErrOTPExpired):
			return redirectWithFlash(c, "/forgot-password", "OTP expired")
		default:
			return err
		}
	}

	token, expiresAt, err := h.auth.BindResetSlot(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	setSessionCookie(c, resetCookieName, token, expiresAt)
	return c.Redirect(http.StatusSeeOther, "/reset-password")
}

// resendOTP re-issues a code. Deliberately reachable without a prior
// forgot-password submission, matching the flow it replaces.
func (h *ResetHandler) resendOTP(c echo.Context) error {
	email := c.FormValue("email")
	if err := h.reset.Resend(c.Request().Context(), email); err != nil {
		if errors.Is(err, service.ErrUnknownEmail) {
			return redirectWithFlash(c, "/forgot-password", "Email not found")
		}
		return err
	}
	return redirectWithFlash(c, "/verify-otp", "New OTP sent (check console)")
}

// resetPasswordPage requires a bound reset slot; without one the caller
// is silently sent to login rather than shown an error.
func (h *ResetHandler) resetPasswordPage(c echo.Context) error {
	token := cookieValue(c, resetCookieName)
	if _, err := h.auth.AuthenticateReset(c.Request().Context(), token); err != nil {
		return c.Redirect(http.StatusSeeOther, "/login")
	}
	return c.HTML(http.StatusOK, resetPasswordPage)
}

func (h *ResetHandler) resetPassword(c echo.Context) error {
	token := cookieValue(c, resetCookieName)
	userID, err := h.auth.AuthenticateReset(c.Request().Context(), token)
	if err != nil {
		return c.Redirect(http.StatusSeeOther, "/login")
	}

	password := c.FormValue("password")
	if password == "" {
		return redirectWithFlash(c, "/reset-password", "Password is required")
	}

	if err := h.reset.Complete(c.Request().Context(), userID, password); err != nil {
		return err
	}

	// Complete deactivated every session server-side; drop the cookies
	// too so the browser starts clean.
	clearSessionCookie(c, resetCookieName)
	clearSessionCookie(c, sessionCookieName)
	return redirectWithFlash(c, "/login", "Password reset successful. Please login.")
}
