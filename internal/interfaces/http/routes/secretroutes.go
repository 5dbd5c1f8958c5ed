// Package routes wires handlers onto the gin engine. Paths match the
// original web client exactly; there is no API version prefix.
package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/voidlabs/void/internal/infrastructure/ratelimit"
	"github.com/voidlabs/void/internal/interfaces/http/handlers"
	"github.com/voidlabs/void/internal/interfaces/http/middleware"
	"github.com/voidlabs/void/internal/shared/logger"
)

// SecretRouteConfig holds dependencies for the secret exchange routes.
type SecretRouteConfig struct {
	SecretHandler *handlers.SecretHandler
	ReplyHandler  *handlers.ReplyHandler
	Limiter       ratelimit.Limiter
	Logger        logger.Interface
}

// SetupSecretRoutes configures the secret exchange routes.
func SetupSecretRoutes(engine *gin.Engine, cfg *SecretRouteConfig) {
	secrets := engine.Group("/secrets")
	{
		secrets.POST("",
			middleware.RateLimit(cfg.Limiter, ratelimit.ActionCreateSecret, cfg.Logger),
			cfg.SecretHandler.Create)
		secrets.GET("/random",
			middleware.RateLimit(cfg.Limiter, ratelimit.ActionPullSecret, cfg.Logger),
			cfg.SecretHandler.Pull)
		secrets.POST("/:id/reply",
			middleware.RateLimit(cfg.Limiter, ratelimit.ActionReplySecret, cfg.Logger),
			cfg.ReplyHandler.Create)
		secrets.POST("/:id/release", cfg.SecretHandler.Release)
		secrets.GET("/:id/replies", cfg.SecretHandler.ListReplies)
		secrets.POST("/:id/echo-opt-in", cfg.SecretHandler.EchoOptIn)
	}

	engine.DELETE("/replies/:id", cfg.ReplyHandler.Withdraw)
}
