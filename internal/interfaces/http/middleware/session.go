package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/voidlabs/void/internal/shared/utils"
)

// maxSessionIDLength caps client-supplied identities; anything longer is
// truncated rather than rejected since the value is opaque either way.
const maxSessionIDLength = 128

const (
	// SessionIDKey is the gin context key for the request's session identity.
	SessionIDKey = "session_id"
	// SessionGeneratedKey marks identities minted by the server this request.
	SessionGeneratedKey = "session_generated"
)

// Session resolves the caller's anonymous identity from the X-Session-Id
// header, minting a UUID when the header is absent or blank. The minted
// value is echoed on the response so the client can persist it.
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := strings.TrimSpace(c.GetHeader(utils.SessionHeader))
		if len(sessionID) > maxSessionIDLength {
			sessionID = sessionID[:maxSessionIDLength]
		}

		generated := false
		if sessionID == "" {
			sessionID = uuid.NewString()
			generated = true
		}

		c.Set(SessionIDKey, sessionID)
		c.Set(SessionGeneratedKey, generated)
		c.Next()
	}
}

// SessionID returns the request's session identity set by Session.
func SessionID(c *gin.Context) string {
	return c.GetString(SessionIDKey)
}
