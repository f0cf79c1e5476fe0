package http

import (
	"encoding/json"
	"log"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/civicdesk/civicdesk-api/internal/service"
)

const (
	requestBodyLogKey = "http.request.body.summary"
	maxLoggedBody     = 2048
)

func registerLogging(e *echo.Echo) {
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogMethod:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			userID := "anonymous"
			if identity, ok := c.Get(contextIdentityKey).(*service.Identity); ok && identity != nil {
				userID = identity.UserID.String()
			}

			payload := struct {
				Time      string `json:"time"`
				UserID    string `json:"user_id"`
				Method    string `json:"method"`
				URI       string `json:"uri"`
				Status    int    `json:"status"`
				LatencyMS int64  `json:"latency_ms"`
				Body      any    `json:"body,omitempty"`
				Error     string `json:"error,omitempty"`
			}{
				Time:      v.StartTime.Format(time.RFC3339),
				UserID:    userID,
				Method:    v.Method,
				URI:       v.URI,
				Status:    v.Status,
				LatencyMS: v.Latency.Milliseconds(),
			}
			if summary := c.Get(requestBodyLogKey); summary != nil {
				payload.Body = summary
			}
			if v.Error != nil {
				payload.Error = v.Error.Error()
			}

			buf, err := json.Marshal(payload)
			if err != nil {
				return err
			}
			log.Println(string(buf))
			return nil
		},
	}))

	e.Use(middleware.BodyDump(func(c echo.Context, reqBody, _ []byte) {
		if summary := sanitizeBody(reqBody, c.Request().Header.Get(echo.HeaderContentType)); summary != nil {
			c.Set(requestBodyLogKey, summary)
		}
	}))
}

// sanitizeBody summarizes form and JSON request bodies for the access
// log. Credential-bearing fields are redacted, everything else clamped.
func sanitizeBody(body []byte, contentType string) any {
	if len(body) == 0 {
		return nil
	}
	lowered := strings.ToLower(strings.TrimSpace(contentType))

	if strings.HasPrefix(lowered, "application/x-www-form-urlencoded") {
		values, err := url.ParseQuery(string(body))
		if err != nil {
			return nil
		}
		out := make(map[string]any, len(values))
		for key, vals := range values {
			if isSensitiveField(key) {
				out[key] = "redacted"
				continue
			}
			if len(vals) == 1 {
				out[key] = clampString(vals[0])
			} else {
				out[key] = len(vals)
			}
		}
		return out
	}

	if strings.HasPrefix(lowered, "application/json") || json.Valid(body) {
		var data map[string]any
		if err := json.Unmarshal(body, &data); err != nil {
			return nil
		}
		for key := range data {
			if isSensitiveField(key) {
				data[key] = "redacted"
			} else if s, ok := data[key].(string); ok {
				data[key] = clampString(s)
			}
		}
		return data
	}

	return nil
}

func isSensitiveField(key string) bool {
	lowered := strings.ToLower(key)
	return strings.Contains(lowered, "password") ||
		strings.Contains(lowered, "confirm") ||
		strings.Contains(lowered, "otp")
}

func clampString(value string) string {
	if len(value) <= maxLoggedBody {
		return value
	}
	truncated := value[:maxLoggedBody]
	for !utf8.ValidString(truncated) && len(truncated) > 0 {
		truncated = truncated[:len(truncated)-1]
	}
	return truncated + "...(truncated)"
}
