package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/i474232898/skywatch/internal/lco"
)

type AppConfig struct {
	// LCOToken is optional; without it only public endpoints are usable.
	LCOToken      string
	LCOBaseURL    string
	LCOArchiveURL string
	HTTPTimeout   time.Duration

	// BreakerFailures is the number of consecutive failures that opens the
	// circuit breaker. The default 0 leaves it off.
	BreakerFailures int

	Port     string
	LogLevel slog.Level
	AppEnv   string

	// Sites rebuilt by the watch command, and how often.
	ReportSites    []string
	ReportInterval time.Duration
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found or error loading it", "err", err)
	}
	cfg := &AppConfig{}

	cfg.LCOToken = os.Getenv("LCO_API_TOKEN")
	cfg.LCOBaseURL = getenvDefault("LCO_BASE_URL", lco.DefaultBaseURL)
	cfg.LCOArchiveURL = getenvDefault("LCO_ARCHIVE_URL", lco.DefaultArchiveURL)

	timeout, err := time.ParseDuration(getenvDefault("HTTP_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: must be positive")
	}
	cfg.HTTPTimeout = timeout

	failures, err := strconv.Atoi(getenvDefault("BREAKER_FAILURES", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid BREAKER_FAILURES: %w", err)
	}
	cfg.BreakerFailures = failures

	cfg.Port = getenvDefault("PORT", "8080")
	cfg.AppEnv = getenvDefault("APP_ENV", "dev")

	if err := cfg.LogLevel.UnmarshalText([]byte(getenvDefault("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	cfg.ReportSites = splitList(getenvDefault("REPORT_SITES", "ogg"))

	interval, err := time.ParseDuration(getenvDefault("REPORT_INTERVAL", "15m"))
	if err != nil {
		return nil, fmt.Errorf("invalid REPORT_INTERVAL: %w", err)
	}
	cfg.ReportInterval = interval

	return cfg, nil
}

// LCO returns the remote client configuration.
func (c *AppConfig) LCO() lco.Config {
	return lco.Config{
		BaseURL:    c.LCOBaseURL,
		ArchiveURL: c.LCOArchiveURL,
		Token:      c.LCOToken,
		Timeout:    c.HTTPTimeout,
	}
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

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
