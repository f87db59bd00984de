package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/flood-risk-dashboard/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/flood-risk-dashboard/internal/adapter/kafka"
	"github.com/couchcryptid/flood-risk-dashboard/internal/adapter/mapbox"
	"github.com/couchcryptid/flood-risk-dashboard/internal/config"
	"github.com/couchcryptid/flood-risk-dashboard/internal/domain"
	"github.com/couchcryptid/flood-risk-dashboard/internal/observability"
	"github.com/couchcryptid/flood-risk-dashboard/internal/pipeline"
	"github.com/couchcryptid/flood-risk-dashboard/internal/report"
	"github.com/joho/godotenv"
)

func main() {
	// A missing .env file is normal outside local development.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	// Initialize geocoder (feature-flagged via MAPBOX_ENABLED / MAPBOX_TOKEN).
	var geocoder domain.Geocoder
	if cfg.MapboxEnabled {
		client := mapbox.NewClient(cfg.MapboxToken, cfg.MapboxTimeout, logger, metrics)
		geocoder = mapbox.NewCachedGeocoder(client, cfg.MapboxCacheSize, metrics)
		metrics.GeocodeEnabled.Set(1)
		logger.Info("mapbox geocoding enabled", "cache_size", cfg.MapboxCacheSize, "timeout", cfg.MapboxTimeout)
	} else {
		logger.Info("mapbox geocoding disabled")
	}

	// Initialize report publisher (feature-flagged via KAFKA_ENABLED).
	var publisher pipeline.ReportPublisher
	var kafkaPublisher *kafkaadapter.Publisher
	if cfg.KafkaEnabled {
		kafkaPublisher = kafkaadapter.NewPublisher(cfg, logger)
		publisher = kafkaPublisher
		logger.Info("kafka report publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaReportTopic)
	} else {
		logger.Info("kafka report publishing disabled")
	}

	p := pipeline.New(geocoder, publisher, pipeline.Options{
		Map: report.MapOptions{
			Zoom:               cfg.MapZoom,
			FallbackLat:        cfg.MapFallbackLat,
			FallbackLon:        cfg.MapFallbackLon,
			PopupPreviewLength: cfg.PopupPreviewLength,
		},
		Summary: report.SummaryOptions{
			TopN:          cfg.TopSevere,
			PreviewRows:   cfg.PreviewRows,
			PreviewLength: cfg.PopupPreviewLength,
		},
		GeocodeBudget: cfg.GeocodeBudget,
	}, logger, metrics)

	// Build the example template up front; readiness waits on it.
	if _, err := p.Template(); err != nil {
		logger.Error("failed to build example template", "error", err)
		os.Exit(1)
	}

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, p, cfg.MaxUploadBytes, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

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
	if kafkaPublisher != nil {
		if err := kafkaPublisher.Close(); err != nil {
			logger.Error("kafka publisher close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
