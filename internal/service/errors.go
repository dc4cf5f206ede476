package service

import (
	"errors"
	"fmt"

	"github.com/guttosm/intradaypulse/internal/domain/models"
)

// ErrConfiguration is returned when the upstream credential is missing.
// No network call is made in that case.
var ErrConfiguration = errors.New("alpha vantage API key is not configured; set ALPHAVANTAGE_API_KEY")

// UpstreamError is a terminal failure of the fetch: a HardError, SoftNote or
// second TierDenied classification, a transport failure, or an undecodable
// payload (Err then wraps the underlying cause).
type UpstreamError struct {
	Tier    models.Tier
	Outcome models.Outcome
	Message string
	Err     error
}

func (e *UpstreamError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("upstream %s attempt failed: %v", e.Tier, e.Err)
	default:
		return fmt.Sprintf("upstream %s attempt returned %s: %s", e.Tier, e.Outcome, e.Message)
	}
}

func (e *UpstreamError) Unwrap() error { return e.Err }
