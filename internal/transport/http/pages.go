package http

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Minimal built-in pages for the form routes. The real frontend is the
// static dashboard app; these keep the flows usable from a bare browser.
const pageShell = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8" />
<meta name="viewport" content="width=device-width, initial-scale=1.0" />
<title>CivicDesk — %s</title>
<style>
body { font-family: Arial, sans-serif; max-width: 420px; margin: 60px auto; color: #333; }
input, textarea { width: 100%%; padding: 10px; margin: 8px 0; border: 1px solid #ccc; border-radius: 4px; box-sizing: border-box; }
button { padding: 10px 20px; border: none; border-radius: 4px; background: #4a90e2; color: #fff; cursor: pointer; }
.flash { padding: 10px; border-radius: 4px; background: #fdecea; color: #b71c1c; display: none; }
nav a { margin-right: 12px; }
</style>
</head>
<body>
<h1>%s</h1>
<p id="flash" class="flash"></p>
%s
<script>
const flash = new URLSearchParams(window.location.search).get('flash');
if (flash) {
  const el = document.getElementById('flash');
  el.textContent = flash;
  el.style.display = 'block';
}
</script>
</body>
</html>`

func formPage(title, body string) string {
	return fmt.Sprintf(pageShell, title, title, body)
}

var (
	registerPage = formPage("Register", `
<form method="POST" action="/register">
  <input type="text" name="name" placeholder="Name (optional)" />
  <input type="email" name="email" placeholder="Email" required />
  <input type="password" name="password" placeholder="Password" required />
  <input type="password" name="confirm" placeholder="Confirm password" required />
  <button type="submit">Register</button>
</form>
<nav><a href="/login">Login</a></nav>`)

	loginPage = formPage("Login", `
<form method="POST" action="/login">
  <input type="email" name="email" placeholder="Email" required />
  <input type="password" name="password" placeholder="Password" required />
  <button type="submit">Login</button>
</form>
<nav><a href="/register">Register</a> <a href="/forgot-password">Forgot password?</a></nav>`)

	forgotPasswordPage = formPage("Forgot password", `
<form method="POST" action="/forgot-password">
  <input type="email" name="email" placeholder="Email" required />
  <button type="submit">Send OTP</button>
</form>
<nav><a href="/login">Back to login</a></nav>`)

	verifyOTPPage = formPage("Verify OTP", `
<form method="POST" action="/verify-otp">
  <input type="email" name="email" placeholder="Email" required />
  <input type="text" name="otp" placeholder="6-digit code" required />
  <button type="submit">Verify</button>
</form>
<form method="POST" action="/resend-otp">
  <input type="hidden" name="email" value="" />
  <button type="submit">Resend OTP</button>
</form>`)

	resetPasswordPage = formPage("Reset password", `
<form method="POST" action="/reset-password">
  <input type="password" name="password" placeholder="New password" required />
  <button type="submit">Reset password</button>
</form>`)

	submitComplaintPage = formPage("Submit a complaint", `
<form method="POST" action="/">
  <input type="text" name="category" placeholder="Category" required />
  <textarea name="description" rows="5" placeholder="Describe the issue" required></textarea>
  <button type="submit">Submit</button>
</form>
<nav><a href="/dashboard">Dashboard</a> <a href="/logout">Logout</a></nav>`)
)

func servePage(page string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.HTML(http.StatusOK, page)
	}
}
