package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/voidlabs/void/internal/infrastructure/ratelimit"
	"github.com/voidlabs/void/internal/shared/logger"
	"github.com/voidlabs/void/internal/shared/utils"
)

// RateLimit enforces the per-action quota for the request's session. Allowed
// requests carry the remaining quota headers; denied requests get the flat
// 429 error shape with the same headers. A limiter backend error fails open:
// losing a counter check must not take writes down with it.
func RateLimit(limiter ratelimit.Limiter, action ratelimit.Action, log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := limiter.Check(c.Request.Context(), action, SessionID(c))
		if err != nil {
			log.Errorw("rate limit check failed", "action", action, "error", err)
			c.Next()
			return
		}

		utils.SetRateLimitHeaders(c, result.Remaining, result.ResetAt.Unix())

		if !result.Allowed {
			utils.ErrorJSON(c, http.StatusTooManyRequests, "Rate limit exceeded. Try again later.")
			c.Abort()
			return
		}

		c.Next()
	}
}
