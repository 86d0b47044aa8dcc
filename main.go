package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/IlyaBatulin/lesopilka/cache"
	"github.com/IlyaBatulin/lesopilka/config"
	"github.com/IlyaBatulin/lesopilka/migrations"
	"github.com/IlyaBatulin/lesopilka/routes"
	"github.com/IlyaBatulin/lesopilka/services"
	"github.com/IlyaBatulin/lesopilka/utils"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		logrus.WithError(err).Fatal("failed to load config")
	}
	utils.InitLogger(cfg.Log)

	if err := utils.RegisterValidators(); err != nil {
		logrus.WithError(err).Fatal("failed to register validators")
	}

	// Connect to DB
	if err := config.InitDB(cfg.Database); err != nil {
		logrus.WithError(err).Fatal("failed to connect to database")
	}
	defer config.CloseDB()

	if err := migrations.Up(config.DB); err != nil {
		logrus.WithError(err).Fatal("failed to apply migrations")
	}

	// Redis connection. The shop keeps working without it.
	if err := config.ConnectRedis(cfg.Redis); err != nil {
		logrus.WithError(err).Warn("redis unavailable, continuing without it")
	}
	defer config.CloseRedis()

	// Initialize JWT Service for Admin Auth
	if cfg.IsProduction() && cfg.JWT.Secret == "" {
		logrus.Fatal("JWT_SECRET environment variable not set")
	}
	secret := cfg.JWT.Secret
	if secret == "" {
		secret = "dev-secret-key-change-in-production"
		logrus.Warn("JWT_SECRET not set, using development secret")
	}
	if err := services.InitJWTService(secret, time.Duration(cfg.JWT.ExpireHours)*time.Hour); err != nil {
		logrus.WithError(err).Fatal("failed to initialize JWT service")
	}

	cache.TTL = cfg.Catalog.CategoryCacheTTL
	services.SetResendClient(services.NewResendClient(cfg.Mail))

	gin.SetMode(cfg.Server.Mode)
	router := routes.NewRouter(*cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go cleanupSessions(ctx, time.Hour)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logrus.WithField("port", cfg.Server.Port).Info("server is running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	logrus.Info("shutting down")

	shutdownCtx, cancel := config.WithCustomTimeout(15 * time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("graceful shutdown failed")
	}
}

// cleanupSessions drops expired admin sessions every interval until ctx ends
func cleanupSessions(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runCtx, cancel := config.WithTimeout()
			if _, err := services.GetAdminSessionService().CleanupExpiredSessions(runCtx); err != nil {
				logrus.WithError(err).Warn("session cleanup failed")
			}
			cancel()
		}
	}
}
