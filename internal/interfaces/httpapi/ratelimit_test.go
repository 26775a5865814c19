package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNewRateLimiter_DisabledForNonPositiveSettings(t *testing.T) {
	t.Parallel()

	if NewRateLimiter(0, time.Minute) != nil {
		t.Fatalf("expected nil limiter for zero requests")
	}
	if NewRateLimiter(10, 0) != nil {
		t.Fatalf("expected nil limiter for zero window")
	}
}

func TestRateLimiter_AllowsBurstThenRefills(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(3, time.Minute)
	limiter.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		if ok, _ := limiter.allow("203.0.113.9"); !ok {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}

	ok, retryAfter := limiter.allow("203.0.113.9")
	if ok {
		t.Fatalf("fourth request should be limited")
	}
	if retryAfter <= 0 || retryAfter > 20*time.Second {
		t.Fatalf("unexpected retry after %s", retryAfter)
	}

	if ok, _ := limiter.allow("198.51.100.4"); !ok {
		t.Fatalf("other clients keep their own bucket")
	}

	now = now.Add(20 * time.Second)
	if ok, _ := limiter.allow("203.0.113.9"); !ok {
		t.Fatalf("one token should have refilled after 20s")
	}
}

func TestRateLimiter_SweepsIdleClients(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(1, time.Minute)
	limiter.now = func() time.Time { return now }

	limiter.allow("203.0.113.9")
	now = now.Add(2 * time.Minute)
	limiter.allow("198.51.100.4")

	if _, ok := limiter.clients["203.0.113.9"]; ok {
		t.Fatalf("expected idle client to be swept")
	}
}

func TestRateLimit_RespondsTooManyRequests(t *testing.T) {
	t.Parallel()

	handler := RateLimit(NewRateLimiter(1, time.Minute), okHandler())

	first := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/portal/matches", nil)
	req.RemoteAddr = "192.0.2.1:1234"
	handler.ServeHTTP(first, req)
	if first.Code != http.StatusOK {
		t.Fatalf("expected first request to pass, got %d", first.Code)
	}

	second := httptest.NewRecorder()
	handler.ServeHTTP(second, req)
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("expected status 429, got %d", second.Code)
	}
	if second.Header().Get("Retry-After") == "" {
		t.Fatalf("expected Retry-After header")
	}
	if got := errorReason(t, decodeEnvelope(t, second)); got != "rateLimitExceeded" {
		t.Fatalf("expected reason rateLimitExceeded, got %q", got)
	}
}

func TestRateLimit_NilLimiterPassesThrough(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	RateLimit(nil, okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}
