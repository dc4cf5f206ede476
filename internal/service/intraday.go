package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/guttosm/intradaypulse/internal/aggregation"
	"github.com/guttosm/intradaypulse/internal/alphavantage"
	"github.com/guttosm/intradaypulse/internal/domain/models"
	"github.com/guttosm/intradaypulse/internal/logger"
)

// IntradayService fetches an intraday series for a symbol and reduces it to
// daily aggregates. It decouples HTTP handlers and the CLI from the upstream.
type IntradayService interface {
	GetDailyAggregates(ctx context.Context, symbol string) (*models.IntradayResult, error)
}

// Upstream is the transport used by the service. *alphavantage.Client
// satisfies it.
type Upstream interface {
	Fetch(ctx context.Context, r alphavantage.Request) ([]byte, error)
	BaseURL() string
}

// Options configures the service.
//
// Fields:
//   - APIKey: upstream credential; empty means every call fails with ErrConfiguration.
//   - Interval: bar size requested from the provider (e.g. "15min").
//   - Now: clock used to pick last month; time.Now when nil.
type Options struct {
	APIKey   string
	Interval string
	Now      func() time.Time
}

type intradayService struct {
	upstream Upstream
	apiKey   string
	interval string
	now      func() time.Time
}

// NewIntradayService builds the tiered fetch orchestrator.
func NewIntradayService(upstream Upstream, opts Options) IntradayService {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &intradayService{
		upstream: upstream,
		apiKey:   opts.APIKey,
		interval: opts.Interval,
		now:      now,
	}
}

// fetchState is a state of the two-attempt fetch. The only path to
// stateAttemptDegraded is a TierDenied classification in stateAttemptRich, so
// at most two upstream calls are ever made.
type fetchState int

const (
	stateAttemptRich fetchState = iota
	stateAttemptDegraded
	stateDone
	stateFailed
)

// transition returns the state that follows a classification.
func transition(current fetchState, tier models.Tier, cls models.Classification) (fetchState, error) {
	if !cls.Outcome.Terminal() {
		switch cls.Outcome {
		case models.OutcomeValid, models.OutcomeEmpty:
			return stateDone, nil
		case models.OutcomeTierDenied:
			if current == stateAttemptRich {
				return stateAttemptDegraded, nil
			}
		}
	}
	return stateFailed, &UpstreamError{Tier: tier, Outcome: cls.Outcome, Message: cls.Message}
}

// GetDailyAggregates runs the fetch state machine:
//
//	AttemptRich     --Valid|Empty-->       Done
//	AttemptRich     --TierDenied-->        AttemptDegraded
//	AttemptRich     --HardError|SoftNote-> Failed
//	AttemptDegraded --Valid|Empty-->       Done
//	AttemptDegraded --anything else-->     Failed
//
// Transport and decode failures move to Failed from either attempt. On Done
// the series of the last attempt is aggregated; an Empty outcome yields an
// empty, non-nil Days slice.
func (s *intradayService) GetDailyAggregates(ctx context.Context, symbol string) (*models.IntradayResult, error) {
	if s.apiKey == "" {
		return nil, ErrConfiguration
	}

	log := logger.FromContext(ctx).With().Str("symbol", symbol).Logger()
	result := &models.IntradayResult{Symbol: symbol}

	var (
		series  models.TimeSeries
		failure error
	)

	state := stateAttemptRich
	for state != stateDone && state != stateFailed {
		var req alphavantage.Request
		if state == stateAttemptRich {
			req = alphavantage.PremiumRequest(symbol, s.interval, s.apiKey, s.now())
		} else {
			req = alphavantage.FreeRequest(symbol, s.interval, s.apiKey)
		}

		cls, err := s.attempt(ctx, &log, req, result)
		if err != nil {
			state, failure = stateFailed, err
			continue
		}

		previous := state
		state, failure = transition(state, req.Tier, cls)
		switch state {
		case stateDone:
			series = cls.Series
			result.Tier = req.Tier
		case stateAttemptDegraded:
			log.Warn().
				Str("from_tier", string(models.TierPremium)).
				Str("to_tier", string(models.TierFree)).
				Msg("premium tier unavailable, falling back to compact output (most recent data points only)")
		case stateFailed:
			if previous == stateAttemptDegraded {
				log.Error().Err(failure).Msg("fallback attempt failed")
			}
		}
	}

	if state == stateFailed {
		return nil, failure
	}

	report := aggregation.Reduce(series)
	if len(report.Skipped) > 0 {
		log.Warn().Int("skipped", len(report.Skipped)).Strs("timestamps", report.Skipped).Msg("timestamps without a valid date were ignored")
	}
	result.Days = report.Days

	log.Info().
		Int("days", len(result.Days)).
		Str("tier", string(result.Tier)).
		Int("attempts", len(result.Attempts)).
		Msg("intraday data aggregated")

	return result, nil
}

// attempt performs one upstream call and classifies the response. Transport
// and decode failures are returned as *UpstreamError; all other outcomes are
// returned as a Classification for the state machine to decide on.
func (s *intradayService) attempt(ctx context.Context, log *zerolog.Logger, req alphavantage.Request, result *models.IntradayResult) (models.Classification, error) {
	start := time.Now()
	safeURL := req.RedactedURL(s.upstream.BaseURL())

	body, err := s.upstream.Fetch(ctx, req)
	if err != nil {
		result.Attempts = append(result.Attempts, models.FetchAttempt{Tier: req.Tier, URL: safeURL})
		ev := log.Error().Err(err).Str("tier", string(req.Tier)).Str("url", safeURL).Dur("elapsed", time.Since(start))
		var se *alphavantage.StatusError
		if errors.As(err, &se) {
			ev = ev.Int("status", se.StatusCode).Str("upstream_body", se.Body)
		}
		ev.Msg("upstream request failed")
		return models.Classification{}, &UpstreamError{Tier: req.Tier, Err: err}
	}

	cls, err := alphavantage.Classify(body, req.Interval)
	if err != nil {
		result.Attempts = append(result.Attempts, models.FetchAttempt{Tier: req.Tier, URL: safeURL})
		log.Error().Err(err).Str("tier", string(req.Tier)).Int("bytes", len(body)).Msg("upstream response undecodable")
		return models.Classification{}, &UpstreamError{Tier: req.Tier, Err: err}
	}

	result.Attempts = append(result.Attempts, models.FetchAttempt{Tier: req.Tier, URL: safeURL, Outcome: cls.Outcome})

	ev := log.Info()
	if cls.Outcome != models.OutcomeValid {
		ev = log.Warn()
	}
	ev.Str("tier", string(req.Tier)).
		Str("url", safeURL).
		Str("outcome", cls.Outcome.String()).
		Str("message", cls.Message).
		Str("information", cls.Information).
		Int("bytes", len(body)).
		Int("observations", len(cls.Series)).
		Dur("elapsed", time.Since(start)).
		Msg("upstream attempt classified")

	return cls, nil
}
