package middleware

import (
	"net/http"

	"github.com/ferdiebergado/devlink/internal/pkg/web"
)

// ContextGuard stops requests whose context is already done.
func ContextGuard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.Context().Err(); err != nil {
			web.RespondRequestTimeout(w, err, "Request cancelled or timeout", nil)
			return
		}

		next.ServeHTTP(w, r)
	})
}
