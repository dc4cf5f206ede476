package config

import (
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/spf13/viper"
)

// Config holds the full application configuration loaded from environment variables or .env file.
//
// It is composed of smaller structs that represent different concerns of the system,
// such as server settings, the upstream market-data provider, and logging.
//
// Example ENV equivalent:
//
//	SERVER_PORT=8080
//	SERVER_REQUEST_TIMEOUT=70s
//	RATE_LIMIT_PER_MINUTE=60
//	ALPHAVANTAGE_API_KEY=demo
//	ALPHAVANTAGE_BASE_URL=https://www.alphavantage.co/query
//	ALPHAVANTAGE_TIMEOUT=30s
//	ALPHAVANTAGE_INTERVAL=15min
//	LOG_LEVEL=info
//	LOG_PRETTY=false
type Config struct {
	Server       ServerConfig       // HTTP server configuration
	AlphaVantage AlphaVantageConfig // Upstream provider settings
	Log          LogConfig          // Logger settings
}

// ServerConfig holds HTTP server settings.
//
// Fields:
//   - Port: TCP port the HTTP server listens on (e.g., "8080").
//   - RequestTimeout: upper bound for one inbound request; must cover two upstream attempts.
//   - RateLimitPerMinute: inbound requests allowed per client IP per minute.
type ServerConfig struct {
	Port               string
	RequestTimeout     time.Duration
	RateLimitPerMinute int
}

// AlphaVantageConfig defines how the upstream provider is reached.
//
// Fields:
//   - APIKey: credential sent with every request. May be empty at startup;
//     requests then fail with a configuration error.
//   - BaseURL: query endpoint.
//   - Timeout: bounded wait for a single upstream call.
//   - Interval: intraday bar size.
type AlphaVantageConfig struct {
	APIKey   string
	BaseURL  string
	Timeout  time.Duration
	Interval string
}

// LogConfig controls the zerolog output.
type LogConfig struct {
	Level  string
	Pretty bool
}

// AppConfig is the globally accessible configuration instance.
//
// It is populated once via LoadConfig() and used throughout the application.
var AppConfig Config

// validIntervals lists the bar sizes the intraday endpoint accepts.
var validIntervals = map[string]struct{}{
	"1min":  {},
	"5min":  {},
	"15min": {},
	"30min": {},
	"60min": {},
}

// LoadConfig initializes the global AppConfig by reading from .env file
// or directly from environment variables.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// Fatal exit:
//   - If structural settings are missing or invalid, validateConfig() will terminate the app
//     with a descriptive log message. A missing API key is not fatal here.
func LoadConfig() {
	// Default values
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_REQUEST_TIMEOUT", "70s")
	viper.SetDefault("RATE_LIMIT_PER_MINUTE", 60)

	viper.SetDefault("ALPHAVANTAGE_API_KEY", "")
	viper.SetDefault("ALPHAVANTAGE_BASE_URL", "https://www.alphavantage.co/query")
	viper.SetDefault("ALPHAVANTAGE_TIMEOUT", "30s")
	viper.SetDefault("ALPHAVANTAGE_INTERVAL", "15min")

	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_PRETTY", false)

	// Optionally read from .env if present (common in local dev)
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	_ = viper.ReadInConfig() // ignore error if no .env

	// Read environment variables automatically
	viper.AutomaticEnv()

	AppConfig = Config{
		Server: ServerConfig{
			Port:               viper.GetString("SERVER_PORT"),
			RequestTimeout:     viper.GetDuration("SERVER_REQUEST_TIMEOUT"),
			RateLimitPerMinute: viper.GetInt("RATE_LIMIT_PER_MINUTE"),
		},
		AlphaVantage: AlphaVantageConfig{
			APIKey:   viper.GetString("ALPHAVANTAGE_API_KEY"),
			BaseURL:  viper.GetString("ALPHAVANTAGE_BASE_URL"),
			Timeout:  viper.GetDuration("ALPHAVANTAGE_TIMEOUT"),
			Interval: viper.GetString("ALPHAVANTAGE_INTERVAL"),
		},
		Log: LogConfig{
			Level:  viper.GetString("LOG_LEVEL"),
			Pretty: viper.GetBool("LOG_PRETTY"),
		},
	}

	if problems := validateConfig(AppConfig); len(problems) > 0 {
		log.Fatalf("❌ Invalid configuration: %v\n", problems)
	}
}

// validateConfig lists every structural problem in cfg.
//
// The API key is deliberately absent from the checks: its absence is reported
// per request so that the service can still start and answer health probes.
func validateConfig(cfg Config) []string {
	var problems []string

	if cfg.Server.Port == "" {
		problems = append(problems, "SERVER_PORT is required")
	} else if p, err := strconv.Atoi(cfg.Server.Port); err != nil || p < 0 || p > 65535 {
		problems = append(problems, fmt.Sprintf("SERVER_PORT %q is not a valid port", cfg.Server.Port))
	}
	if cfg.Server.RequestTimeout <= 0 {
		problems = append(problems, "SERVER_REQUEST_TIMEOUT must be positive")
	}
	if cfg.Server.RateLimitPerMinute <= 0 {
		problems = append(problems, "RATE_LIMIT_PER_MINUTE must be positive")
	}
	if cfg.AlphaVantage.BaseURL == "" {
		problems = append(problems, "ALPHAVANTAGE_BASE_URL is required")
	}
	if cfg.AlphaVantage.Timeout <= 0 {
		problems = append(problems, "ALPHAVANTAGE_TIMEOUT must be positive")
	}
	if _, ok := validIntervals[cfg.AlphaVantage.Interval]; !ok {
		problems = append(problems, fmt.Sprintf("ALPHAVANTAGE_INTERVAL %q must be one of 1min, 5min, 15min, 30min, 60min", cfg.AlphaVantage.Interval))
	}

	return problems
}
