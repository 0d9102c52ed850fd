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

	_ "github.com/joho/godotenv/autoload"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/bondspire/intake-api/internal/auth"
	"github.com/bondspire/intake-api/internal/config"
	"github.com/bondspire/intake-api/internal/database"
	"github.com/bondspire/intake-api/internal/handler"
	"github.com/bondspire/intake-api/internal/logging"
	middlewarepkg "github.com/bondspire/intake-api/internal/middleware"
	"github.com/bondspire/intake-api/internal/notify"
	"github.com/bondspire/intake-api/internal/repository"
	"github.com/bondspire/intake-api/internal/router"
	"github.com/bondspire/intake-api/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "intake-api: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := database.Connect(ctx, cfg.DatabaseURL, cfg.DatabasePool)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()

	if cfg.AutoMigrate {
		if err := database.Migrate(ctx, pool); err != nil {
			return fmt.Errorf("migrate database: %w", err)
		}
		logger.Info("database schema applied")
	}

	notifiers := notify.Multi{notify.NewLogNotifier(logger.Named("notify"))}
	if cfg.Notify.NATSURL != "" {
		conn, err := notify.ConnectNATS(cfg.Notify.NATSURL, logger.Named("nats"))
		if err != nil {
			return err
		}
		defer conn.Close()
		notifiers = append(notifiers, notify.NewNATSNotifier(conn, cfg.Notify.SubjectPrefix))
		logger.Info("nats notifications enabled", zap.String("subject_prefix", cfg.Notify.SubjectPrefix))
	}
	dispatcher := notify.NewDispatcher(notifiers, logger.Named("dispatch"), cfg.Notify.Timeout)

	submissionsRepo := repository.NewPGXSubmissionsRepository(pool)
	subscriptionsRepo := repository.NewPGXSubscriptionsRepository(pool)

	intakeService := service.NewIntakeService(submissionsRepo, subscriptionsRepo, dispatcher, service.WithPhoneRegion(cfg.PhoneRegion))
	adminService := service.NewAdminService(submissionsRepo, subscriptionsRepo)

	var jwtManager *auth.JWTManager
	if cfg.JWTSecret != "" {
		jwtManager = auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	} else {
		logger.Warn("JWT_SECRET not set, admin listings disabled")
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = handler.HTTPErrorHandler(logger)

	e.Use(middlewarepkg.RequestID())
	e.Use(middlewarepkg.Logging(logger.Named("http")))
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.BodyLimit(cfg.BodyLimit))
	e.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))

	if len(cfg.TrustedProxies) > 0 {
		logger.Info("client addresses taken from X-Forwarded-For", zap.Int("trusted_networks", len(cfg.TrustedProxies)))
	}
	router.Register(e, cfg, jwtManager, router.Handlers{
		Intake: handler.NewIntakeHandler(intakeService, logger.Named("intake")),
		Admin:  handler.NewAdminHandler(adminService, logger.Named("admin")),
	})

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting server", zap.String("port", cfg.Port))
		serverErr <- e.Start(":" + cfg.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
	if err := dispatcher.Wait(shutdownCtx); err != nil {
		logger.Warn("pending notifications dropped", zap.Error(err))
	}
	return nil
}
