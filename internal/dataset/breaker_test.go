// Basketminer - Market Basket Analysis and Association Rule Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketminer

package dataset

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/basketminer/internal/config"
	"github.com/tomtom215/basketminer/internal/recommend"
)

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

type flakyProvider struct {
	calls atomic.Int32
	err   error
}

func (p *flakyProvider) GetBaskets(_ context.Context) ([]recommend.Basket, error) {
	p.calls.Add(1)
	if p.err != nil {
		return nil, p.err
	}
	return []recommend.Basket{{ID: "1", Items: []string{"Milk"}}}, nil
}

func breakerConfig() config.BreakerConfig {
	return config.BreakerConfig{
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          time.Minute,
		FailureThreshold: 2,
	}
}

func TestBreakerProvider_PassesThrough(t *testing.T) {
	t.Parallel()

	inner := &flakyProvider{}
	p := NewBreakerProvider(inner, "test-pass", breakerConfig())

	baskets, err := p.GetBaskets(context.Background())
	if err != nil {
		t.Fatalf("GetBaskets() error = %v", err)
	}
	if len(baskets) != 1 {
		t.Errorf("len(baskets) = %d, want 1", len(baskets))
	}
	if p.State() != "closed" {
		t.Errorf("State() = %q, want closed", p.State())
	}
}

func TestBreakerProvider_OpensAfterThreshold(t *testing.T) {
	t.Parallel()

	inner := &flakyProvider{err: errors.New("connection refused")}
	p := NewBreakerProvider(inner, "test-open", breakerConfig())

	for i := 0; i < 2; i++ {
		if _, err := p.GetBaskets(context.Background()); err == nil {
			t.Fatalf("call %d: GetBaskets() = nil error, want failure", i)
		}
	}
	if p.State() != "open" {
		t.Fatalf("State() = %q after 2 failures, want open", p.State())
	}

	_, err := p.GetBaskets(context.Background())
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("GetBaskets() on open circuit error = %v, want ErrOpenState", err)
	}
	if got := inner.calls.Load(); got != 2 {
		t.Errorf("inner calls = %d, want 2 (open circuit must not call the source)", got)
	}
}

func TestBreakerProvider_CancellationIsNotAFailure(t *testing.T) {
	t.Parallel()

	inner := &flakyProvider{err: context.Canceled}
	cfg := breakerConfig()
	cfg.FailureThreshold = 1
	p := NewBreakerProvider(inner, "test-cancel", cfg)

	for i := 0; i < 3; i++ {
		if _, err := p.GetBaskets(context.Background()); !errors.Is(err, context.Canceled) {
			t.Fatalf("GetBaskets() error = %v, want context.Canceled", err)
		}
	}
	if p.State() != "closed" {
		t.Errorf("State() = %q, want closed after cancellations", p.State())
	}
}

func TestStateToString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		state gobreaker.State
		str   string
		num   float64
	}{
		{gobreaker.StateClosed, "closed", 0},
		{gobreaker.StateHalfOpen, "half-open", 1},
		{gobreaker.StateOpen, "open", 2},
		{gobreaker.State(99), "unknown", -1},
	}
	for _, tt := range tests {
		if got := stateToString(tt.state); got != tt.str {
			t.Errorf("stateToString(%v) = %q, want %q", tt.state, got, tt.str)
		}
		if got := stateToFloat(tt.state); got != tt.num {
			t.Errorf("stateToFloat(%v) = %v, want %v", tt.state, got, tt.num)
		}
	}
}
