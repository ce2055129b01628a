package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/outreach-api/internal/config"
	"github.com/jwalitptl/outreach-api/internal/handler"
	authHandler "github.com/jwalitptl/outreach-api/internal/handler/auth"
	contactHandler "github.com/jwalitptl/outreach-api/internal/handler/contact"
	messageHandler "github.com/jwalitptl/outreach-api/internal/handler/message"
	"github.com/jwalitptl/outreach-api/internal/middleware"
	"github.com/jwalitptl/outreach-api/internal/repository/postgres"
	redisRepo "github.com/jwalitptl/outreach-api/internal/repository/redis"
	"github.com/jwalitptl/outreach-api/internal/router"
	authService "github.com/jwalitptl/outreach-api/internal/service/auth"
	"github.com/jwalitptl/outreach-api/internal/service/composer"
	"github.com/jwalitptl/outreach-api/internal/service/dispatch"
	"github.com/jwalitptl/outreach-api/internal/service/roster"
	"github.com/jwalitptl/outreach-api/pkg/auth"
	"github.com/jwalitptl/outreach-api/pkg/logger"
	"github.com/jwalitptl/outreach-api/pkg/metrics"
	"github.com/jwalitptl/outreach-api/pkg/security"
	"github.com/jwalitptl/outreach-api/pkg/webhook"
)

func main() {
	appLog := logger.NewLogger(nil)

	cfg, err := config.LoadConfig()
	if err != nil {
		appLog.Fatal(err, "failed to load configuration")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		appLog.Fatal(err, "failed to connect to database")
	}
	defer db.Close()

	rdb, err := redisRepo.NewClient(cfg.Redis.URL)
	if err != nil {
		appLog.Fatal(err, "failed to connect to redis")
	}
	defer rdb.Close()

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	tokenRepo := redisRepo.NewTokenRepository(rdb)

	// Metrics
	appMetrics := metrics.NewMetrics("outreach")

	// Services
	jwtSvc := auth.NewJWTService(auth.JWTConfig{
		Secret:             cfg.JWT.Secret,
		RefreshSecret:      cfg.JWT.RefreshSecret,
		ExpiryHours:        cfg.JWT.ExpiryHours,
		RefreshExpiryHours: cfg.JWT.RefreshExpiryHours,
	})
	hasher := security.NewBcryptHasher(bcrypt.DefaultCost)
	authSvc := authService.NewService(userRepo, tokenRepo, jwtSvc, hasher)

	rosters := roster.NewManager()
	composerSvc := composer.NewService()

	webhookClient := webhook.NewClient(webhook.Config{
		URL:     cfg.Webhook.URL,
		Timeout: time.Duration(cfg.Webhook.TimeoutSeconds) * time.Second,
	})
	dispatchSvc := dispatch.NewService(webhookClient, rosters, appMetrics,
		time.Duration(cfg.Webhook.ResetSeconds)*time.Second)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(authSvc)

	// Handlers
	h := handler.NewHandler(db, rdb)
	authH := authHandler.NewHandler(authSvc)
	contactH := contactHandler.NewHandler(rosters, appMetrics)
	messageH := messageHandler.NewHandler(rosters, composerSvc, dispatchSvc)

	// Router
	r := router.NewRouter(
		authMiddleware,
		authH,
		contactH,
		messageH,
		h,
		appMetrics,
		router.RouterConfig{
			RateLimit:     rate.Limit(cfg.RateLimit.RequestsPerSecond),
			RateBurst:     cfg.RateLimit.Burst,
			Timeout:       time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
			MaxUploadSize: cfg.Upload.MaxSizeBytes,
			CORSConfig:    middleware.DefaultCORSConfig(),
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		appLog.Info("starting server", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.Fatal(err, "failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLog.Fatal(err, "server forced to shutdown")
	}

	appLog.Info("server exited properly")
}
