package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/voidlabs/void/internal/interfaces/http/handlers"
)

// PaymentRouteConfig holds dependencies for the payment routes.
type PaymentRouteConfig struct {
	PaymentHandler *handlers.PaymentHandler
}

// SetupPaymentRoutes configures the payment routes.
func SetupPaymentRoutes(engine *gin.Engine, cfg *PaymentRouteConfig) {
	payments := engine.Group("/payments")
	{
		payments.POST("/create-payment-intent", cfg.PaymentHandler.CreateIntent)
		payments.POST("/confirm", cfg.PaymentHandler.Confirm)
		payments.POST("/webhook", cfg.PaymentHandler.Webhook)
		payments.POST("/sinetpay/callback", cfg.PaymentHandler.MobileMoneyCallback)
		payments.GET("/history", cfg.PaymentHandler.History)
	}
}
