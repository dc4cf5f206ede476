package alphavantage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultBaseURL is the public Alpha Vantage query endpoint.
const DefaultBaseURL = "https://www.alphavantage.co/query"

// maxBodyBytes bounds how much of a response is read into memory.
const maxBodyBytes = 32 << 20

// Client performs GET requests against the Alpha Vantage query endpoint.
// It knows nothing about tiers or classification; it only moves bytes.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Client. A zero timeout leaves the http.Client unbounded,
// so callers should always pass one (30s in production).
//
// Parameters:
//   - baseURL: query endpoint; DefaultBaseURL when empty.
//   - timeout: bounded wait for each call, including reading the body.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// BaseURL returns the endpoint the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// Fetch issues the request and returns the raw body.
//
// Errors:
//   - context cancellation or client timeout.
//   - connection failures.
//   - *StatusError for any non-2xx status.
//   - bodies larger than 32 MiB.
func (c *Client) Fetch(ctx context.Context, r Request) ([]byte, error) {
	u, err := r.URL(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("build url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// *url.Error embeds the full URL, credential included.
		return nil, fmt.Errorf("alpha vantage %s request failed: %w", r.Tier, unwrapURLError(err))
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(body) > maxBodyBytes {
		return nil, fmt.Errorf("response body exceeds %d bytes", maxBodyBytes)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: truncate(string(body), 512)}
	}

	return body, nil
}

// CloseIdleConnections releases pooled keep-alive connections.
func (c *Client) CloseIdleConnections() { c.httpClient.CloseIdleConnections() }
