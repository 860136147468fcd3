package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ferdiebergado/devlink/internal/middleware"
	"github.com/ferdiebergado/devlink/internal/pkg/web"
)

func TestMiddleware_CheckContentType(t *testing.T) {
	t.Parallel()

	const (
		defaultContent = "test"
		errContent     = `{"message":"Invalid input."}`
	)

	var tests = []struct {
		name, method, contentType, wantBody string
		wantCode                            int
	}{
		{"Correct Content-Type Post", http.MethodPost, web.MimeJSON, defaultContent, http.StatusOK},
		{"Correct Content-Type Put", http.MethodPut, web.MimeJSON, defaultContent, http.StatusOK},
		{"Correct Content-Type Patch", http.MethodPatch, web.MimeJSON, defaultContent, http.StatusOK},
		{"Correct Content-Type with charset", http.MethodPost, "application/json; charset=utf-8", defaultContent, http.StatusOK},
		{"Other Content-Type", http.MethodPost, "text/html; charset=utf-8", errContent, http.StatusUnsupportedMediaType},
		{"Empty Content-Type", http.MethodPost, "", errContent, http.StatusUnsupportedMediaType},
		{"Get request", http.MethodGet, "", defaultContent, http.StatusOK},
		{"Delete request", http.MethodDelete, "", defaultContent, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(defaultContent))
			})

			req, rec := httptest.NewRequest(tt.method, "/test", http.NoBody), httptest.NewRecorder()
			req.Header.Set(web.HeaderContentType, tt.contentType)

			middleware.CheckContentType(handler).ServeHTTP(rec, req)

			if gotCode, wantCode := rec.Code, tt.wantCode; gotCode != wantCode {
				t.Errorf("rec.Code = %d, want: %d", gotCode, wantCode)
			}

			if gotBody, wantBody := strings.TrimSuffix(rec.Body.String(), "\n"), tt.wantBody; gotBody != wantBody {
				t.Errorf("rec.Body.String() = %q, want: %q", gotBody, wantBody)
			}
		})
	}
}
