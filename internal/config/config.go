package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/hashicorp/go-multierror"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
	MaxUploadBytes  int64

	// Report layout.
	PreviewRows        int
	TopSevere          int
	PopupPreviewLength int
	MapZoom            int
	MapFallbackLat     float64
	MapFallbackLon     float64

	// Mapbox reverse geocoding for posts without a place name.
	MapboxToken     string
	MapboxEnabled   bool
	MapboxTimeout   time.Duration
	MapboxCacheSize int
	GeocodeBudget   time.Duration

	// Kafka report publishing.
	KafkaEnabled     bool
	KafkaBrokers     []string
	KafkaReportTopic string
}

// Load reads configuration from environment variables, applying defaults where
// unset. Every invalid variable is reported, not just the first.
func Load() (*Config, error) {
	var errs *multierror.Error
	collect := func(err error) {
		errs = multierror.Append(errs, err)
	}

	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	collect(err)

	mapboxTimeout, err := time.ParseDuration(sharedcfg.EnvOrDefault("MAPBOX_TIMEOUT", "5s"))
	if err != nil || mapboxTimeout <= 0 {
		collect(errors.New("invalid MAPBOX_TIMEOUT"))
	}

	geocodeBudget, err := time.ParseDuration(sharedcfg.EnvOrDefault("GEOCODE_BUDGET", "30s"))
	if err != nil || geocodeBudget <= 0 {
		collect(errors.New("invalid GEOCODE_BUDGET"))
	}

	maxUpload, err := positiveInt("MAX_UPLOAD_BYTES", 10<<20)
	collect(err)
	previewRows, err := positiveInt("PREVIEW_ROWS", 20)
	collect(err)
	topSevere, err := positiveInt("TOP_SEVERE", 5)
	collect(err)
	popupLen, err := positiveInt("POPUP_PREVIEW_LENGTH", 60)
	collect(err)
	zoom, err := positiveInt("MAP_ZOOM", 13)
	collect(err)
	if zoom > 20 {
		collect(errors.New("invalid MAP_ZOOM: must be at most 20"))
	}

	fallbackLat, err := coordinate("MAP_FALLBACK_LAT", 37.4979, 90)
	collect(err)
	fallbackLon, err := coordinate("MAP_FALLBACK_LON", 127.0276, 180)
	collect(err)

	mapboxToken := os.Getenv("MAPBOX_TOKEN")
	mapboxEnabled := mapboxToken != ""
	if v := os.Getenv("MAPBOX_ENABLED"); v != "" {
		mapboxEnabled = v == "true"
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
		MaxUploadBytes:  int64(maxUpload),

		PreviewRows:        previewRows,
		TopSevere:          topSevere,
		PopupPreviewLength: popupLen,
		MapZoom:            zoom,
		MapFallbackLat:     fallbackLat,
		MapFallbackLon:     fallbackLon,

		MapboxToken:     mapboxToken,
		MapboxEnabled:   mapboxEnabled,
		MapboxTimeout:   mapboxTimeout,
		MapboxCacheSize: parseMapboxCacheSize(),
		GeocodeBudget:   geocodeBudget,

		KafkaEnabled:     os.Getenv("KAFKA_ENABLED") == "true",
		KafkaBrokers:     sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaReportTopic: sharedcfg.EnvOrDefault("KAFKA_REPORT_TOPIC", "flood-risk-reports"),
	}

	if cfg.MapboxEnabled && cfg.MapboxToken == "" {
		collect(errors.New("MAPBOX_ENABLED is true but MAPBOX_TOKEN is not set"))
	}
	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		collect(errors.New("KAFKA_BROKERS is required when KAFKA_ENABLED is true"))
	}
	if cfg.KafkaEnabled && cfg.KafkaReportTopic == "" {
		collect(errors.New("KAFKA_REPORT_TOPIC is required when KAFKA_ENABLED is true"))
	}

	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func positiveInt(name string, def int) (int, error) {
	s := os.Getenv(name)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s: must be a positive integer", name)
	}
	return n, nil
}

func coordinate(name string, def, limit float64) (float64, error) {
	s := os.Getenv(name)
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < -limit || v > limit {
		return 0, fmt.Errorf("invalid %s: must be within ±%g", name, limit)
	}
	return v, nil
}

func parseMapboxCacheSize() int {
	if s := os.Getenv("MAPBOX_CACHE_SIZE"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return 1000
}
