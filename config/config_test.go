package config

import (
	"os"
	"os/exec"
	"testing"
	"time"
)

// TestLoadConfig_Defaults verifies that defaults are loaded when no env vars are set.
func TestLoadConfig_Defaults(t *testing.T) {
	for _, k := range []string{
		"SERVER_PORT", "SERVER_REQUEST_TIMEOUT", "RATE_LIMIT_PER_MINUTE",
		"ALPHAVANTAGE_API_KEY", "ALPHAVANTAGE_BASE_URL", "ALPHAVANTAGE_TIMEOUT", "ALPHAVANTAGE_INTERVAL",
		"LOG_LEVEL", "LOG_PRETTY",
	} {
		_ = os.Unsetenv(k)
	}

	LoadConfig()

	if AppConfig.Server.Port != "8080" {
		t.Fatalf("expected default SERVER_PORT=8080, got %q", AppConfig.Server.Port)
	}
	if AppConfig.Server.RequestTimeout != 70*time.Second || AppConfig.Server.RateLimitPerMinute != 60 {
		t.Fatalf("unexpected server defaults: %+v", AppConfig.Server)
	}
	av := AppConfig.AlphaVantage
	if av.APIKey != "" || av.BaseURL != "https://www.alphavantage.co/query" || av.Timeout != 30*time.Second || av.Interval != "15min" {
		t.Fatalf("unexpected alpha vantage defaults: %+v", av)
	}
	if AppConfig.Log.Level != "info" || AppConfig.Log.Pretty {
		t.Fatalf("unexpected log defaults: %+v", AppConfig.Log)
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("ALPHAVANTAGE_API_KEY", "abc123")
	t.Setenv("ALPHAVANTAGE_TIMEOUT", "5s")
	t.Setenv("ALPHAVANTAGE_INTERVAL", "5min")
	t.Setenv("SERVER_PORT", "9090")

	LoadConfig()

	if AppConfig.AlphaVantage.APIKey != "abc123" {
		t.Fatalf("api key not read from env: %q", AppConfig.AlphaVantage.APIKey)
	}
	if AppConfig.AlphaVantage.Timeout != 5*time.Second || AppConfig.AlphaVantage.Interval != "5min" {
		t.Fatalf("unexpected overrides: %+v", AppConfig.AlphaVantage)
	}
	if AppConfig.Server.Port != "9090" {
		t.Fatalf("unexpected port: %q", AppConfig.Server.Port)
	}
}

func TestValidateConfig(t *testing.T) {
	good := Config{
		Server:       ServerConfig{Port: "8080", RequestTimeout: time.Minute, RateLimitPerMinute: 10},
		AlphaVantage: AlphaVantageConfig{BaseURL: "http://x", Timeout: time.Second, Interval: "15min"},
	}

	cases := []struct {
		name   string
		mutate func(c *Config)
		want   int
	}{
		{name: "valid without api key", mutate: func(c *Config) {}, want: 0},
		{name: "bad port", mutate: func(c *Config) { c.Server.Port = "http" }, want: 1},
		{name: "bad interval", mutate: func(c *Config) { c.AlphaVantage.Interval = "2min" }, want: 1},
		{name: "zero timeouts", mutate: func(c *Config) { c.AlphaVantage.Timeout = 0; c.Server.RequestTimeout = 0 }, want: 2},
		{name: "empty", mutate: func(c *Config) { *c = Config{} }, want: 6},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := good
			tc.mutate(&cfg)
			if got := validateConfig(cfg); len(got) != tc.want {
				t.Fatalf("want %d problems, got %d: %v", tc.want, len(got), got)
			}
		})
	}
}

// TestLoadConfig_Fatal uses a subprocess to assert that LoadConfig triggers a fatal exit
// when a structural setting is invalid.
func TestLoadConfig_Fatal(t *testing.T) {
	if os.Getenv("RUN_LOAD_FATAL") == "1" {
		_ = os.Setenv("ALPHAVANTAGE_INTERVAL", "7min")
		LoadConfig()
		t.Fatalf("LoadConfig should have exited the process")
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run", "TestLoadConfig_Fatal")
	cmd.Env = append(os.Environ(), "RUN_LOAD_FATAL=1")
	err := cmd.Run()
	if err == nil {
		t.Fatalf("expected process to exit with error, got nil")
	}
}
