// Basketminer - Market Basket Analysis and Association Rule Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketminer

package dataset

import (
	"context"
	"errors"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/basketminer/internal/config"
	"github.com/tomtom215/basketminer/internal/logging"
	"github.com/tomtom215/basketminer/internal/metrics"
	"github.com/tomtom215/basketminer/internal/recommend"
)

// BreakerProvider wraps a basket source with a circuit breaker so a failing
// database or file is not hammered by every training run.
//
// The breaker uses real time for its interval and timeout; tests that need
// to observe recovery must wait for the configured timeout.
type BreakerProvider struct {
	inner recommend.DataProvider
	cb    *gobreaker.CircuitBreaker[[]recommend.Basket]
	name  string
}

// NewBreakerProvider wraps inner. The circuit opens after
// cfg.FailureThreshold consecutive failures and probes again after
// cfg.Timeout.
func NewBreakerProvider(inner recommend.DataProvider, name string, cfg config.BreakerConfig) *BreakerProvider {
	threshold := cfg.FailureThreshold
	if threshold == 0 {
		threshold = 1
	}

	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[[]recommend.Basket](gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			trip := counts.ConsecutiveFailures >= threshold
			if trip {
				logging.Warn().
					Str("breaker", name).
					Uint32("consecutive_failures", counts.ConsecutiveFailures).
					Msg("[CIRCUIT BREAKER] Opening circuit")
			}
			return trip
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)

			logging.Info().
				Str("breaker", name).
				Str("from", fromStr).
				Str("to", toStr).
				Msg("[CIRCUIT BREAKER] State transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
		},

		// A cancelled training run says nothing about the source's health.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	})

	return &BreakerProvider{inner: inner, cb: cb, name: name}
}

// GetBaskets implements recommend.DataProvider.
func (p *BreakerProvider) GetBaskets(ctx context.Context) ([]recommend.Basket, error) {
	baskets, err := p.cb.Execute(func() ([]recommend.Basket, error) {
		return p.inner.GetBaskets(ctx)
	})

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(p.name, "rejected").Inc()
			logging.Warn().Err(err).Str("breaker", p.name).Msg("[CIRCUIT BREAKER] Request rejected")
		} else {
			metrics.CircuitBreakerRequests.WithLabelValues(p.name, "failure").Inc()
		}
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(p.name, "success").Inc()
	return baskets, nil
}

// State returns the breaker state as a string.
func (p *BreakerProvider) State() string {
	return stateToString(p.cb.State())
}

// stateToFloat converts circuit breaker state to numeric value for metrics
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// stateToString converts circuit breaker state to string for logging
func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

var _ recommend.DataProvider = (*BreakerProvider)(nil)
