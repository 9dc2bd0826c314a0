package middleware

import "github.com/labstack/echo/v4"

// Context keys used to store authentication metadata.
const (
	ContextKeyUserID    = "user_id"
	ContextKeyUserEmail = "user_email"
	ContextKeyUserName  = "user_name"
	ContextKeyRequestID = "request_id"
)

// UserIDFromContext returns the authenticated subject, or "" for anonymous requests.
func UserIDFromContext(c echo.Context) string {
	if val, ok := c.Get(ContextKeyUserID).(string); ok {
		return val
	}
	return ""
}

func errorBody(message string) map[string]string {
	return map[string]string{"status": "error", "message": message}
}
