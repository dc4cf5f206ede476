package alphavantage

import (
	"net/url"
	"time"

	"github.com/guttosm/intradaypulse/internal/domain/models"
)

const (
	intradayFunction  = "TIME_SERIES_INTRADAY"
	outputSizeFull    = "full"
	outputSizeCompact = "compact"
	monthLayout       = "2006-01"
	redacted          = "REDACTED"
)

// Request describes one TIME_SERIES_INTRADAY call.
//
// Fields:
//   - Tier: service level the request targets.
//   - Symbol: upper-cased ticker (e.g. "IBM").
//   - Interval: bar size (e.g. "15min").
//   - OutputSize: "full" or "compact".
//   - Month: "YYYY-MM" scope; empty for the most recent window.
//   - APIKey: credential sent as the "apikey" query parameter.
type Request struct {
	Tier       models.Tier
	Symbol     string
	Interval   string
	OutputSize string
	Month      string
	APIKey     string
}

// PremiumRequest builds the rich request: full output scoped to the most
// recently completed calendar month relative to now.
func PremiumRequest(symbol, interval, apiKey string, now time.Time) Request {
	return Request{
		Tier:       models.TierPremium,
		Symbol:     symbol,
		Interval:   interval,
		OutputSize: outputSizeFull,
		Month:      PreviousMonth(now),
		APIKey:     apiKey,
	}
}

// FreeRequest builds the degraded request: compact output, no month scope.
func FreeRequest(symbol, interval, apiKey string) Request {
	return Request{
		Tier:       models.TierFree,
		Symbol:     symbol,
		Interval:   interval,
		OutputSize: outputSizeCompact,
		APIKey:     apiKey,
	}
}

// PreviousMonth returns "YYYY-MM" of the calendar month before now's month,
// evaluated in UTC. It steps back from the first of the month so that, e.g.,
// March 31 maps to February rather than overflowing into March.
func PreviousMonth(now time.Time) string {
	now = now.UTC()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	return first.AddDate(0, -1, 0).Format(monthLayout)
}

// Query encodes the request as URL query parameters.
func (r Request) Query() url.Values {
	q := url.Values{}
	q.Set("function", intradayFunction)
	q.Set("symbol", r.Symbol)
	q.Set("interval", r.Interval)
	if r.Month != "" {
		q.Set("month", r.Month)
	}
	q.Set("outputsize", r.OutputSize)
	q.Set("apikey", r.APIKey)
	return q
}

// URL returns the full request URL against baseURL.
func (r Request) URL(baseURL string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", err
	}
	u.RawQuery = r.Query().Encode()
	return u.String(), nil
}

// RedactedURL is URL with the credential masked; safe to log.
func (r Request) RedactedURL(baseURL string) string {
	masked := r
	if masked.APIKey != "" {
		masked.APIKey = redacted
	}
	s, err := masked.URL(baseURL)
	if err != nil {
		return baseURL
	}
	return s
}
