// Package server implements the HTTP server command: configuration,
// dependency wiring and graceful shutdown.
package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	notificationUsecases "github.com/voidlabs/void/internal/application/notification/usecases"
	paymentUsecases "github.com/voidlabs/void/internal/application/payment/usecases"
	secretUsecases "github.com/voidlabs/void/internal/application/secret/usecases"
	"github.com/voidlabs/void/internal/domain/entitlement"
	"github.com/voidlabs/void/internal/infrastructure/config"
	"github.com/voidlabs/void/internal/infrastructure/database"
	paymentgw "github.com/voidlabs/void/internal/infrastructure/payment"
	"github.com/voidlabs/void/internal/infrastructure/persistence/migrations"
	"github.com/voidlabs/void/internal/infrastructure/push"
	"github.com/voidlabs/void/internal/infrastructure/ratelimit"
	"github.com/voidlabs/void/internal/infrastructure/repository"
	"github.com/voidlabs/void/internal/interfaces/http/handlers"
	"github.com/voidlabs/void/internal/interfaces/http/middleware"
	"github.com/voidlabs/void/internal/interfaces/http/routes"
	"github.com/voidlabs/void/internal/shared/accesstoken"
	"github.com/voidlabs/void/internal/shared/logger"
)

var (
	env         string
	autoMigrate bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the void HTTP server with the specified configuration.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", false, "Run database migrations on startup")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg.Server.Mode = mapEnvToGinMode(env)

	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("starting server", "environment", env, "auto_migrate", autoMigrate)

	gin.SetMode(cfg.Server.Mode)
	gin.DefaultWriter = io.Discard

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	if autoMigrate {
		if err := migrations.Up(database.Get()); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		logger.Info("migrations applied")
	}

	log := logger.NewLogger()
	engine := buildEngine(cfg, log)

	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", "address", cfg.Server.GetAddr(), "mode", cfg.Server.Mode)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		return err
	}

	logger.Info("server exited gracefully")
	return nil
}

// buildEngine wires every layer together: repositories over the shared gorm
// connection, the limiter with its fallback, the provider clients, then
// usecases, handlers and routes.
func buildEngine(cfg *config.Config, log logger.Interface) *gin.Engine {
	db := database.Get()

	secretRepo := repository.NewSecretRepository(db, log)
	replyRepo := repository.NewReplyRepository(db, log)
	entitlementRepo := repository.NewEntitlementRepository(db, log)
	purchaseRepo := repository.NewPurchaseRepository(db, log)
	registrationRepo := repository.NewPushRegistrationRepository(db, log)

	limiter := buildLimiter(cfg, log)

	gate := entitlement.NewService(entitlementRepo, log)
	tokens := accesstoken.NewService(cfg.Echo.SigningSecret,
		time.Duration(cfg.Echo.TokenTTLHours)*time.Hour)

	sender := push.NewWebPushSender(&cfg.Push, cfg.Echo.WebhookURL, log)
	notifyUC := notificationUsecases.NewNotifyFirstReplyUseCase(registrationRepo, sender, tokens, log)

	cardGateway := paymentgw.NewCardGatewayClient(&cfg.Payment.Card, log)
	mobileMoney := paymentgw.NewMobileMoneyClient(&cfg.Payment.MobileMoney, log)

	settleUC := paymentUsecases.NewSettlePurchaseUseCase(purchaseRepo, entitlementRepo, log)

	secretHandler := handlers.NewSecretHandler(
		secretUsecases.NewCreateSecretUseCase(secretRepo, gate, &cfg.Secret, log),
		secretUsecases.NewPullSecretUseCase(secretRepo, log),
		secretUsecases.NewReleaseSecretUseCase(secretRepo, log),
		secretUsecases.NewListRepliesUseCase(secretRepo, replyRepo, tokens, log),
		secretUsecases.NewEchoOptInUseCase(secretRepo, registrationRepo, log),
		log,
	)
	replyHandler := handlers.NewReplyHandler(
		secretUsecases.NewReplyToSecretUseCase(secretRepo, replyRepo, notifyUC, &cfg.Secret, log),
		secretUsecases.NewWithdrawReplyUseCase(replyRepo, &cfg.Secret, log),
		log,
	)
	paymentHandler := handlers.NewPaymentHandler(
		paymentUsecases.NewCreatePaymentIntentUseCase(cardGateway, mobileMoney, log),
		paymentUsecases.NewConfirmPaymentUseCase(cardGateway, settleUC, log),
		paymentUsecases.NewHandleCardWebhookUseCase(cardGateway, settleUC, log),
		paymentUsecases.NewHandleMobileMoneyCallbackUseCase(mobileMoney, settleUC, log),
		paymentUsecases.NewPaymentHistoryUseCase(purchaseRepo, log),
		log,
	)

	engine := gin.New()
	engine.Use(
		middleware.Recovery(),
		middleware.Logger(log),
		middleware.CORS(cfg.Server.AllowedOrigins),
		middleware.Session(),
	)

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.SetupSecretRoutes(engine, &routes.SecretRouteConfig{
		SecretHandler: secretHandler,
		ReplyHandler:  replyHandler,
		Limiter:       limiter,
		Logger:        log,
	})
	routes.SetupPaymentRoutes(engine, &routes.PaymentRouteConfig{
		PaymentHandler: paymentHandler,
	})

	return engine
}

// buildLimiter prefers the shared redis backend and keeps the in-memory
// limiter behind it; with redis disabled the in-memory limiter runs alone.
func buildLimiter(cfg *config.Config, log logger.Interface) ratelimit.Limiter {
	memory := ratelimit.NewMemoryLimiter(ratelimit.DefaultRules)
	if !cfg.Redis.Enabled {
		log.Warnw("redis disabled; rate limit counters are per-instance only")
		return memory
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	return ratelimit.NewFallbackLimiter(
		ratelimit.NewRedisLimiter(client, ratelimit.DefaultRules), memory, log)
}

func mapEnvToGinMode(env string) string {
	switch env {
	case "production":
		return gin.ReleaseMode
	case "test":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}
