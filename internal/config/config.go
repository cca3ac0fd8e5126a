// Package config loads service settings from environment variables, applying
// defaults and validating the result.
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

const defaultWelcome = "Welcome to Calculator by HoneyBadger."

// OTELConfig controls whether the OTLP exporters are started. Endpoints and
// headers are read by the exporters themselves from the standard OTEL_* vars.
type OTELConfig struct {
	Enabled     bool   // OTEL_ENABLED
	ServiceName string // OTEL_SERVICE_NAME
}

// Config holds all configuration values for the service.
type Config struct {
	// Server
	Port              string
	ReadTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
	MaxBodyBytes      int64

	// Logging
	LogLevel string // debug|info|warn|error

	// Calculator
	EnrichErrors   bool   // add operand_1/operand_2/operation to failure envelopes
	WelcomeMessage string // METADATA output for GET /

	OTEL OTELConfig
}

// Addr returns the listen address for http.Server.
func (c Config) Addr() string {
	return ":" + c.Port
}

// MustLoad loads the configuration and panics if validation fails.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads configuration from the environment, applies defaults,
// normalizes values and validates the result.
func Load() (Config, error) {
	cfg := Config{
		Port:              getenv("PORT", "8080"),
		ReadTimeout:       getdur("READ_TIMEOUT", 15*time.Second),
		ReadHeaderTimeout: getdur("READ_HEADER_TIMEOUT", 10*time.Second),
		WriteTimeout:      getdur("WRITE_TIMEOUT", 20*time.Second),
		IdleTimeout:       getdur("IDLE_TIMEOUT", 60*time.Second),
		ShutdownTimeout:   getdur("SHUTDOWN_TIMEOUT", 5*time.Second),
		MaxBodyBytes:      int64(getint("MAX_BODY_BYTES", 1<<20)),

		LogLevel: strings.ToLower(getenv("LOG_LEVEL", "info")),

		EnrichErrors:   getbool("ENRICH_ERRORS", false),
		WelcomeMessage: getenv("WELCOME_MESSAGE", defaultWelcome),

		OTEL: OTELConfig{
			Enabled:     getbool("OTEL_ENABLED", false),
			ServiceName: getenv("OTEL_SERVICE_NAME", "go-chi-calculator"),
		},
	}

	if cfg.LogLevel == "warning" {
		cfg.LogLevel = "warn"
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return cfg, errors.New("LOG_LEVEL must be one of: debug, info, warn, error")
	}
	if strings.TrimSpace(cfg.Port) == "" {
		return cfg, errors.New("PORT must not be empty")
	}
	if cfg.ReadTimeout <= 0 || cfg.ReadHeaderTimeout <= 0 || cfg.WriteTimeout <= 0 || cfg.IdleTimeout <= 0 {
		return cfg, errors.New("timeouts must be positive durations")
	}
	if cfg.ShutdownTimeout <= 0 {
		return cfg, errors.New("SHUTDOWN_TIMEOUT must be > 0")
	}
	if cfg.MaxBodyBytes <= 0 {
		return cfg, errors.New("MAX_BODY_BYTES must be > 0")
	}

	return cfg, nil
}

func getenv(k, def string) string {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		return v
	}
	return def
}

func getint(k string, def int) int {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getbool(k string, def bool) bool {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return def
}

func getdur(k string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
