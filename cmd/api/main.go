package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"

	httpadapter "github.com/savannawatch/climate-watch-api/internal/adapter/http"
	"github.com/savannawatch/climate-watch-api/internal/adapter/counties"
	"github.com/savannawatch/climate-watch-api/internal/adapter/postgres"
	"github.com/savannawatch/climate-watch-api/internal/adapter/sms"
	"github.com/savannawatch/climate-watch-api/internal/adapter/stream"
	"github.com/savannawatch/climate-watch-api/internal/config"
	"github.com/savannawatch/climate-watch-api/internal/observability"
	"github.com/savannawatch/climate-watch-api/internal/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(os.Stdout, cfg.LogFormat, cfg.LogLevel)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := postgres.Migrate(cfg.DatabaseURL); err != nil {
		logger.Error("migration failed", "error", err)
		os.Exit(1)
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to create connection pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	store := postgres.NewStore(pool)

	// Alert dispatch is feature-flagged via SMS_ENABLED / AT_API_KEY.
	var dispatcher report.AlertDispatcher
	if cfg.SMSEnabled {
		client := sms.NewClient(cfg.SMSAPIKey, cfg.SMSUsername, cfg.SMSSenderID, cfg.SMSTimeout, logger)
		dispatcher = sms.NewDispatcher(store, client, logger)
		logger.Info("sms alert dispatch enabled", "username", cfg.SMSUsername, "timeout", cfg.SMSTimeout)
	} else {
		logger.Info("sms alert dispatch disabled")
	}

	// Verified-report stream publishing is feature-flagged via KAFKA_ENABLED.
	var publisher report.EventPublisher
	var streamPublisher *stream.Publisher
	if cfg.KafkaEnabled {
		streamPublisher = stream.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
		publisher = streamPublisher
		logger.Info("verified-report stream enabled", "topic", cfg.KafkaTopic)
	} else {
		logger.Info("verified-report stream disabled")
	}

	locator := counties.NewLocator()
	service := report.New(store, dispatcher, publisher, locator, logger, metrics, cfg.FallbackCountyID)

	srv := httpadapter.NewServer(cfg.HTTPAddr, service, logger, metrics)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if streamPublisher != nil {
		if err := streamPublisher.Close(); err != nil {
			logger.Error("stream publisher close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
