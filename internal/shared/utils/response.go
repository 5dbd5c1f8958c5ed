package utils

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/voidlabs/void/internal/shared/errors"
)

// SessionHeader is the opaque per-client identity header. The server mints a
// value when absent and echoes it back so the client can persist it.
const SessionHeader = "X-Session-Id"

const (
	rateLimitRemainingHeader = "X-RateLimit-Remaining"
	rateLimitResetHeader     = "X-RateLimit-Reset"
)

// EchoSession writes the session header on the response when the identity was
// server-generated for this request.
func EchoSession(c *gin.Context) {
	if generated, ok := c.Get("session_generated"); ok && generated == true {
		if sessionID := c.GetString("session_id"); sessionID != "" {
			c.Header(SessionHeader, sessionID)
		}
	}
}

// SetRateLimitHeaders exposes the remaining quota and the window reset epoch.
func SetRateLimitHeaders(c *gin.Context, remaining int, resetEpoch int64) {
	c.Header(rateLimitRemainingHeader, strconv.Itoa(remaining))
	c.Header(rateLimitResetHeader, strconv.FormatInt(resetEpoch, 10))
}

// JSON writes payload with the session header echoed.
func JSON(c *gin.Context, statusCode int, payload any) {
	EchoSession(c)
	c.JSON(statusCode, payload)
}

// ErrorJSON writes the original API error shape: {"error": "..."}.
func ErrorJSON(c *gin.Context, statusCode int, message string) {
	EchoSession(c)
	c.JSON(statusCode, gin.H{"error": message})
}

// ErrorJSONFromError maps an error onto the API error shape. AppError types
// keep their status and message; anything else becomes an opaque 500 so
// storage and provider error text never leaks to clients.
func ErrorJSONFromError(c *gin.Context, err error) {
	appErr := errors.GetAppError(err)
	if appErr == nil {
		ErrorJSON(c, http.StatusInternalServerError, "Internal error.")
		return
	}

	if appErr.Type == errors.ErrorTypeRateLimited {
		SetRateLimitHeaders(c, appErr.Remaining, appErr.ResetAt.Unix())
	}

	ErrorJSON(c, appErr.Code, appErr.Message)
}
