package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/rune-metrics/player-tracker/internal/adapter"
	"github.com/rune-metrics/player-tracker/internal/api/middleware"
	"github.com/rune-metrics/player-tracker/internal/api/server"
	"github.com/rune-metrics/player-tracker/internal/auth"
	"github.com/rune-metrics/player-tracker/internal/config"
	"github.com/rune-metrics/player-tracker/internal/hiscores"
	"github.com/rune-metrics/player-tracker/internal/logger"
	"github.com/rune-metrics/player-tracker/internal/messaging"
	"github.com/rune-metrics/player-tracker/internal/namechange"
	"github.com/rune-metrics/player-tracker/internal/providers/jetstream"
	"github.com/rune-metrics/player-tracker/internal/ratelimit"
	"github.com/rune-metrics/player-tracker/internal/registry"
	"github.com/rune-metrics/player-tracker/internal/stats"
	"github.com/rune-metrics/player-tracker/internal/store"
	"github.com/rune-metrics/player-tracker/internal/webhook"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadAPIConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "api-server",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Player Tracker API")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("dsn", cfg.Database.DSN()))
	}

	// Configure connection pool
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database",
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
	)

	// Initialize store
	dataStore := store.NewPGStore(db)

	// Initialize adapters
	jsonAdapter := adapter.NewJSON()
	clock := adapter.NewClock()
	httpClient := adapter.NewHTTPClient(cfg.Hiscores.Timeout)

	// Initialize rate limiting for the hiscores upstream
	redisClient := adapter.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("Failed to close Redis client", zap.Error(err))
		}
	}()

	rateLimitProxy, err := ratelimit.NewProxy(cfg.RateLimiter, redisClient, clock)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to initialize rate limit proxy", zap.Error(err))
	}
	defer func() {
		if err := rateLimitProxy.Close(); err != nil {
			logger.Warn("Failed to close rate limit proxy", zap.Error(err))
		}
	}()

	// Initialize hiscores client
	hiscoresClient := hiscores.NewClient(httpClient, rateLimitProxy, cfg.Hiscores.BaseURL, clock)

	// Connect the lifecycle event sinks: NATS JetStream and, when configured,
	// signed webhook delivery
	var sinks []messaging.Publisher
	if cfg.NATS.URL != "" {
		jsPublisher, err := jetstream.NewPublisher(jetstream.Config{
			URL:            cfg.NATS.URL,
			StreamName:     cfg.NATS.StreamName,
			MaxReconnects:  cfg.NATS.MaxReconnects,
			ReconnectWait:  cfg.NATS.ReconnectWait,
			ConnectionName: cfg.NATS.ConnectionName,
		}, adapter.NewNatsJetStream(), jsonAdapter)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to connect to NATS", zap.Error(err))
		}
		sinks = append(sinks, jsPublisher)
		logger.InfoCtx(ctx, "Connected to NATS", zap.String("url", cfg.NATS.URL))
	}
	if cfg.Webhook.URL != "" {
		sinks = append(sinks, webhook.NewNotifier(webhook.Config{
			URL:       cfg.Webhook.URL,
			HexSecret: cfg.Webhook.HexSecret,
		}, httpClient))
		logger.InfoCtx(ctx, "Webhook delivery enabled", zap.String("url", cfg.Webhook.URL))
	}
	publisher := messaging.NewFanout(sinks...)
	if publisher != nil {
		defer publisher.Close()
	} else {
		logger.WarnCtx(ctx, "No event sink configured, lifecycle events will not be published")
	}

	// Load the blocked-names registry
	var blockedNames registry.BlockedNamesRegistry
	if cfg.BlockedNames.Path != "" {
		blockedNames, err = registry.LoadBlockedNames(cfg.BlockedNames.Path)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to load blocked names", zap.Error(err), zap.String("path", cfg.BlockedNames.Path))
		}
		logger.InfoCtx(ctx, "Loaded blocked names", zap.String("path", cfg.BlockedNames.Path))
	}

	// Assemble the name-change services
	verifier := auth.NewKeyVerifier(cfg.Auth.AdminAPIKeys)
	calculator := stats.NewCalculator()
	service := namechange.NewService(dataStore, verifier, blockedNames, publisher, clock)
	reporter := namechange.NewReporter(dataStore, hiscoresClient, calculator, jsonAdapter, clock)

	// Create server config
	serverConfig := server.Config{
		Debug:        cfg.Debug,
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		Auth: middleware.AuthConfig{
			JWTPublicKey: cfg.Auth.JWTPublicKey,
			APIKeys:      cfg.Auth.AdminAPIKeys,
		},
	}

	// Create and start server
	srv := server.New(serverConfig, service, reporter)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "server"))
		cancel()
	}

	// Create shutdown context with timeout (don't use canceled ctx)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	logger.InfoCtx(shutdownCtx, "Shutting down server...")

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.FatalCtx(shutdownCtx, "Server forced to shutdown", zap.Error(err))
	}

	// Use non-context logger for final message since original ctx is canceled
	logger.Info("API server stopped")
}
