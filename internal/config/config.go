package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Catalog and recommender.
	CatalogPath    string
	RecommendLimit int
	CacheSize      int
	SessionTTL     time.Duration

	// HTTP API guards.
	CORSAllowedOrigins []string
	RateLimitRequests  int
	RateLimitWindow    time.Duration

	// Recommendation event sink.
	KafkaEnabled       bool
	KafkaBrokers       []string
	KafkaTopic         string
	BatchSize          int
	BatchFlushInterval time.Duration
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	batchSize, err := sharedcfg.ParseBatchSize()
	if err != nil {
		return nil, err
	}

	flushInterval, err := sharedcfg.ParseBatchFlushInterval()
	if err != nil {
		return nil, err
	}

	sessionTTL, err := parsePositiveDuration("SESSION_TTL", "30m")
	if err != nil {
		return nil, err
	}

	rateLimitWindow, err := parsePositiveDuration("RATE_LIMIT_WINDOW", "1m")
	if err != nil {
		return nil, err
	}

	recommendLimit, err := parsePositiveInt("RECOMMEND_LIMIT", 4)
	if err != nil {
		return nil, err
	}

	cacheSize, err := parsePositiveInt("CACHE_SIZE", 1024)
	if err != nil {
		return nil, err
	}

	rateLimitRequests, err := parseNonNegativeInt("RATE_LIMIT_REQUESTS", 100)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		CatalogPath:    os.Getenv("CATALOG_PATH"),
		RecommendLimit: recommendLimit,
		CacheSize:      cacheSize,
		SessionTTL:     sessionTTL,

		CORSAllowedOrigins: splitList(sharedcfg.EnvOrDefault("CORS_ALLOWED_ORIGINS", "*")),
		RateLimitRequests:  rateLimitRequests,
		RateLimitWindow:    rateLimitWindow,

		KafkaEnabled:       os.Getenv("KAFKA_ENABLED") == "true",
		KafkaBrokers:       sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaTopic:         sharedcfg.EnvOrDefault("KAFKA_TOPIC", "station-recommendations"),
		BatchSize:          batchSize,
		BatchFlushInterval: flushInterval,
	}

	if len(cfg.CORSAllowedOrigins) == 0 {
		return nil, errors.New("CORS_ALLOWED_ORIGINS must list at least one origin")
	}
	if cfg.KafkaEnabled {
		if len(cfg.KafkaBrokers) == 0 {
			return nil, errors.New("KAFKA_BROKERS is required when KAFKA_ENABLED is true")
		}
		if cfg.KafkaTopic == "" {
			return nil, errors.New("KAFKA_TOPIC is required when KAFKA_ENABLED is true")
		}
	}

	return cfg, nil
}

func parsePositiveDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(sharedcfg.EnvOrDefault(key, def))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parsePositiveInt(key string, def int) (int, error) {
	n, err := parseInt(key, def)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s: must be a positive integer", key)
	}
	return n, nil
}

// parseNonNegativeInt allows 0, which disables the guarded feature.
func parseNonNegativeInt(key string, def int) (int, error) {
	n, err := parseInt(key, def)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %s: must be zero or a positive integer", key)
	}
	return n, nil
}

func parseInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	return strconv.Atoi(s)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
