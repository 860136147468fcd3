package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ferdiebergado/devlink/internal/middleware"
)

func TestRateLimit(t *testing.T) {
	t.Parallel()

	limiter := middleware.NewIPRateLimiter(0.001, 2)
	handler := middleware.RateLimit(limiter)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func(ip string) int {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", http.NoBody)
		req.Header.Set("X-Real-IP", ip)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	wantCodes := []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}
	for i, want := range wantCodes {
		if got := send("10.0.0.1"); got != want {
			t.Errorf("request %d from 10.0.0.1: code = %d, want: %d", i+1, got, want)
		}
	}

	if got := send("10.0.0.2"); got != http.StatusOK {
		t.Errorf("first request from 10.0.0.2: code = %d, want: %d", got, http.StatusOK)
	}
}

func TestClientIP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"real ip header", map[string]string{"X-Real-IP": "1.1.1.1"}, "9.9.9.9:1234", "1.1.1.1"},
		{"forwarded for", map[string]string{"X-Forwarded-For": "2.2.2.2, 3.3.3.3"}, "9.9.9.9:1234", "2.2.2.2"},
		{"remote addr", nil, "9.9.9.9:1234", "9.9.9.9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}

			if got := middleware.ClientIP(req); got != tt.want {
				t.Errorf("middleware.ClientIP(req) = %q, want: %q", got, tt.want)
			}
		})
	}
}
