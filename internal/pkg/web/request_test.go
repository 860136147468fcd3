package web_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ferdiebergado/devlink/internal/pkg/web"
)

func TestPathID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		value   string
		want    int64
		wantErr error
	}{
		{"valid id", "42", 42, nil},
		{"zero", "0", 0, web.ErrInvalidID},
		{"negative", "-3", 0, web.ErrInvalidID},
		{"not a number", "abc", 0, web.ErrInvalidID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/users/"+tt.value, nil)
			req.SetPathValue("id", tt.value)

			got, err := web.PathID(req, "id")
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("web.PathID(req, %q) = %v, want: %v", "id", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("web.PathID(req, %q) = %d, want: %d", "id", got, tt.want)
			}
		})
	}
}

func TestQueryInt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		url     string
		want    int
		wantErr bool
	}{
		{"absent uses default", "/matches", 10, false},
		{"present", "/matches?take=5", 5, false},
		{"malformed", "/matches?take=five", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			got, err := web.QueryInt(req, "take", 10)
			if (err != nil) != tt.wantErr {
				t.Fatalf("web.QueryInt() error = %v, wantErr: %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("web.QueryInt() = %d, want: %d", got, tt.want)
			}
		})
	}
}
