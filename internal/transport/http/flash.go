package http

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
)

// redirectWithFlash answers a form POST with a 303 whose target carries
// the user-visible message as a query parameter; the pages render it
// where the original templates rendered flash().
func redirectWithFlash(c echo.Context, path, message string) error {
	target := path
	if message != "" {
		target += "?flash=" + url.QueryEscape(message)
	}
	return c.Redirect(http.StatusSeeOther, target)
}
