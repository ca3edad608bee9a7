package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	DatabaseURL string

	// FallbackCountyID is assigned when coordinates resolve to no county.
	FallbackCountyID int

	// SMS alert dispatch configuration (Africa's Talking).
	SMSEnabled  bool
	SMSAPIKey   string
	SMSUsername string
	SMSSenderID string
	SMSTimeout  time.Duration

	// Verified-report event stream configuration.
	KafkaEnabled bool
	KafkaBrokers []string
	KafkaTopic   string
}

// Load reads configuration from environment variables, applying defaults
// where unset. A .env file in the working directory is loaded first when
// present (development convenience, absent in production).
func Load() (*Config, error) {
	_ = godotenv.Load()

	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	smsTimeout, err := parseDuration("SMS_TIMEOUT", "5s")
	if err != nil {
		return nil, err
	}

	fallbackCounty, err := parseInt("FALLBACK_COUNTY_ID", 1)
	if err != nil {
		return nil, err
	}

	smsAPIKey := os.Getenv("AT_API_KEY")
	smsEnabled := smsAPIKey != ""
	if v := os.Getenv("SMS_ENABLED"); v != "" {
		smsEnabled = v == "true"
	}

	kafkaEnabled := os.Getenv("KAFKA_ENABLED") == "true"

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		DatabaseURL: envOrDefault("DATABASE_URL", "postgres://localhost:5432/climate_watch"),

		FallbackCountyID: fallbackCounty,

		SMSEnabled:  smsEnabled,
		SMSAPIKey:   smsAPIKey,
		SMSUsername: envOrDefault("AT_USERNAME", "sandbox"),
		SMSSenderID: envOrDefault("SMS_SENDER_ID", "CLIMATEWATCH"),
		SMSTimeout:  smsTimeout,

		KafkaEnabled: kafkaEnabled,
		KafkaBrokers: splitList(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaTopic:   envOrDefault("KAFKA_TOPIC", "verified-climate-reports"),
	}

	if cfg.FallbackCountyID < 1 || cfg.FallbackCountyID > 47 {
		return nil, errors.New("FALLBACK_COUNTY_ID must be a county id between 1 and 47")
	}
	if cfg.SMSEnabled && cfg.SMSAPIKey == "" {
		return nil, errors.New("SMS_ENABLED is true but AT_API_KEY is not set")
	}
	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is empty")
	}
	if cfg.KafkaEnabled && cfg.KafkaTopic == "" {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_TOPIC is empty")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDuration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, fallback))
	if err != nil || d <= 0 {
		return 0, errors.New("invalid " + key)
	}
	return d, nil
}

func parseInt(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New("invalid " + key)
	}
	return n, nil
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
