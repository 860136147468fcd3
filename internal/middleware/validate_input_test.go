package middleware_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ferdiebergado/devlink/internal/middleware"
	"github.com/ferdiebergado/devlink/internal/pkg/web"
	"github.com/ferdiebergado/devlink/internal/platform/validation"
)

func TestValidateInput(t *testing.T) {
	t.Parallel()

	const (
		headerCalled = "X-Handler-Called"
		emailErr     = "email must be a valid email address"
	)

	type profile struct {
		Name  string `json:"name" validate:"required"`
		Email string `json:"email" validate:"required,email"`
	}

	tests := []struct {
		name               string
		code               int
		payload            any
		valFunc            func(any) map[string]string
		body, headerCalled string
	}{
		{"Valid input", http.StatusOK, profile{"fely", "fely@example.com"}, func(_ any) map[string]string { return nil },
			`{"name":"fely","email":"fely@example.com"}`, "true"},
		{"Invalid input", http.StatusUnprocessableEntity, profile{"fely", "fely@example"}, func(_ any) map[string]string {
			return map[string]string{"email": emailErr}
		}, `{"message":"Invalid input.","errors":{"email":"email must be a valid email address"}}`, ""},
		{"Invalid type", http.StatusBadRequest, struct{}{}, func(_ any) map[string]string {
			return nil
		}, `{"message":"Invalid input."}`, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				p, err := web.ParamsFromContext[profile](r.Context())
				if err != nil {
					http.Error(w, err.Error(), http.StatusBadRequest)
					return
				}
				w.Header().Set(web.HeaderContentType, web.MimeJSON)
				w.Header().Set(headerCalled, "true")
				w.WriteHeader(http.StatusOK)
				_ = json.NewEncoder(w).Encode(&p)
			})

			ctx := web.NewContextWithParams(context.Background(), tc.payload)
			req := httptest.NewRequestWithContext(ctx, http.MethodPost, "/", http.NoBody)
			rec := httptest.NewRecorder()
			valdtr := &validation.StubValidator{ValidateStructFunc: tc.valFunc}
			middleware.ValidateInput[profile](valdtr)(handler).ServeHTTP(rec, req)

			if gotCode, wantCode := rec.Code, tc.code; gotCode != wantCode {
				t.Errorf("rec.Code = %d, want: %d", gotCode, wantCode)
			}

			if got := rec.Header().Get(web.HeaderContentType); !strings.HasPrefix(got, web.MimeJSON) {
				t.Errorf("rec.Header().Get(%q) = %q, want: %q", web.HeaderContentType, got, web.MimeJSON)
			}

			if got, want := rec.Header().Get(headerCalled), tc.headerCalled; got != want {
				t.Errorf("rec.Header().Get(%q) = %q, want: %q", headerCalled, got, want)
			}

			if got, want := strings.TrimSuffix(rec.Body.String(), "\n"), tc.body; got != want {
				t.Errorf("rec.Body.String() = %q, want: %q", got, want)
			}
		})
	}
}
