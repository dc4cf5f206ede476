package app

import (
	"fmt"
	"net/url"

	"github.com/guttosm/intradaypulse/config"
	"github.com/guttosm/intradaypulse/internal/alphavantage"
	"github.com/guttosm/intradaypulse/internal/service"
)

// NewIntradayService wires the Alpha Vantage client and the tiered fetch
// orchestrator from cfg. It is shared by the API and the one-shot CLI mode.
//
// Returns:
//   - service.IntradayService: ready to serve requests.
//   - *alphavantage.Client: the underlying transport, for cleanup.
//   - error: if the upstream base URL is not an absolute http(s) URL.
func NewIntradayService(cfg config.Config) (service.IntradayService, *alphavantage.Client, error) {
	u, err := url.ParseRequestURI(cfg.AlphaVantage.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, nil, fmt.Errorf("invalid ALPHAVANTAGE_BASE_URL %q", cfg.AlphaVantage.BaseURL)
	}

	client := alphavantage.NewClient(cfg.AlphaVantage.BaseURL, cfg.AlphaVantage.Timeout)
	svc := service.NewIntradayService(client, service.Options{
		APIKey:   cfg.AlphaVantage.APIKey,
		Interval: cfg.AlphaVantage.Interval,
	})
	return svc, client, nil
}

// credentialCheck reports whether an upstream credential is configured.
func credentialCheck(cfg config.Config) func() error {
	return func() error {
		if cfg.AlphaVantage.APIKey == "" {
			return service.ErrConfiguration
		}
		return nil
	}
}
