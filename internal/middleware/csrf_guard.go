package middleware

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/ferdiebergado/devlink/internal/config"
	"github.com/ferdiebergado/devlink/internal/pkg/message"
	"github.com/ferdiebergado/devlink/internal/pkg/web"
)

var ErrCSRFMismatch = errors.New("csrf token from cookie and header did not match")

// CookieChecker verifies a signed cookie.
type CookieChecker interface {
	Check(*http.Cookie) error
}

// CSRFGuard enforces the double-submit pattern: the signed token cookie must
// be echoed in the configured header.
func CSRFGuard(cfg *config.CSRF, checker CookieChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(cfg.CookieName)
			if err != nil || cookie.Value == "" {
				web.RespondForbidden(w, errors.New("csrf cookie missing"), message.InvalidToken, nil)
				return
			}

			headerToken := r.Header.Get(cfg.HeaderName)
			if subtle.ConstantTimeCompare([]byte(cookie.Value), []byte(headerToken)) == 0 {
				web.RespondForbidden(w, ErrCSRFMismatch, message.InvalidToken, nil)
				return
			}

			if err := checker.Check(cookie); err != nil {
				web.RespondForbidden(w, err, message.InvalidToken, nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
