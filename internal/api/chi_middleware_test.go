// Basketminer - Market Basket Analysis and Association Rule Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketminer

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/basketminer/internal/config"
	"github.com/tomtom215/basketminer/internal/models"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestNewChiMiddlewareConfig(t *testing.T) {
	t.Parallel()

	cfg := NewChiMiddlewareConfig(config.SecurityConfig{
		CORSOrigins:       []string{"https://shop.example"},
		RateLimitReqs:     42,
		RateLimitWindow:   30 * time.Second,
		RateLimitDisabled: true,
		MineRateLimitReqs: 3,
	})

	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "https://shop.example" {
		t.Errorf("CORSAllowedOrigins = %v", cfg.CORSAllowedOrigins)
	}
	if cfg.RateLimitRequests != 42 {
		t.Errorf("RateLimitRequests = %d, want 42", cfg.RateLimitRequests)
	}
	if cfg.RateLimitWindow != 30*time.Second {
		t.Errorf("RateLimitWindow = %v, want 30s", cfg.RateLimitWindow)
	}
	if !cfg.RateLimitDisabled {
		t.Error("RateLimitDisabled = false, want true")
	}
	if cfg.MineRateLimitRequests != 3 {
		t.Errorf("MineRateLimitRequests = %d, want 3", cfg.MineRateLimitRequests)
	}
}

func TestRateLimitCustom(t *testing.T) {
	t.Parallel()

	m := NewChiMiddleware(DefaultChiMiddlewareConfig())
	h := m.RateLimitCustom(RateLimitConfig{Requests: 2, Window: time.Minute})(okHandler())

	codes := make([]int, 3)
	for i := range codes {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "203.0.113.7:5000"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes[i] = rec.Code

		if i == 2 {
			var resp models.APIResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("429 body is not JSON: %v", err)
			}
			if resp.Error == nil || resp.Error.Code != ErrCodeTooManyRequests {
				t.Errorf("Error = %+v, want %s", resp.Error, ErrCodeTooManyRequests)
			}
		}
	}

	want := []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}
	for i := range want {
		if codes[i] != want[i] {
			t.Errorf("request %d status = %d, want %d", i, codes[i], want[i])
		}
	}
}

func TestRateLimitCustom_PerClient(t *testing.T) {
	t.Parallel()

	m := NewChiMiddleware(nil)
	h := m.RateLimitCustom(RateLimitConfig{Requests: 1, Window: time.Minute})(okHandler())

	for _, addr := range []string{"203.0.113.1:1", "203.0.113.2:1"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("%s status = %d, want %d", addr, rec.Code, http.StatusOK)
		}
	}
}

func TestRateLimitCustom_Disabled(t *testing.T) {
	t.Parallel()

	cfg := DefaultChiMiddlewareConfig()
	cfg.RateLimitDisabled = true
	h := NewChiMiddleware(cfg).RateLimitCustom(RateLimitConfig{Requests: 1, Window: time.Minute})(okHandler())

	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d status = %d, want %d", i, rec.Code, http.StatusOK)
		}
	}
}

func TestMineRateLimit(t *testing.T) {
	t.Parallel()

	handler := NewHandler(newTestEngine(t, false), testMiningConfig())
	cfg := DefaultChiMiddlewareConfig()
	cfg.MineRateLimitRequests = 1
	router := NewRouter(handler, cfg).SetupChi()

	body := `{"transactions":[["a","b"]]}`
	first, _ := doRequest(t, router, http.MethodPost, "/api/v1/mine", body)
	second, _ := doRequest(t, router, http.MethodPost, "/api/v1/mine", body)

	if first.Code != http.StatusOK {
		t.Errorf("first status = %d, want %d", first.Code, http.StatusOK)
	}
	if second.Code != http.StatusTooManyRequests {
		t.Errorf("second status = %d, want %d", second.Code, http.StatusTooManyRequests)
	}

	// Other endpoints keep their own budget.
	stats, _ := doRequest(t, router, http.MethodGet, "/api/v1/stats", "")
	if stats.Code != http.StatusOK {
		t.Errorf("stats status = %d, want %d", stats.Code, http.StatusOK)
	}
}

func TestCORS(t *testing.T) {
	t.Parallel()

	handler := NewHandler(newTestEngine(t, false), testMiningConfig())
	cfg := DefaultChiMiddlewareConfig()
	cfg.CORSAllowedOrigins = []string{"https://shop.example"}
	router := NewRouter(handler, cfg).SetupChi()

	tests := []struct {
		name   string
		origin string
		want   string
	}{
		{"allowed origin", "https://shop.example", "https://shop.example"},
		{"other origin", "https://evil.example", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodOptions, "/api/v1/mine", nil)
			req.Header.Set("Origin", tt.origin)
			req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.want {
				t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAPISecurityHeaders_HSTS(t *testing.T) {
	t.Parallel()

	h := APISecurityHeaders()(okHandler())
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Header().Get("Strict-Transport-Security") == "" {
		t.Error("HSTS not set for a forwarded HTTPS request")
	}
}
