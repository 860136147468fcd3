package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/ferdiebergado/devlink/internal/pkg/message"
	"github.com/ferdiebergado/devlink/internal/pkg/security"
	"github.com/ferdiebergado/devlink/internal/pkg/web"
	"github.com/ferdiebergado/devlink/internal/platform/jwt"
	"github.com/ferdiebergado/devlink/internal/user"
)

// RequireToken verifies the Bearer access token and puts its user ID in the
// request context. Websocket handshakes cannot set headers from browsers, so
// they may pass the token in the token query parameter instead.
func RequireToken(signer jwt.Signer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := security.ExtractBearerToken(r)
			if errors.Is(err, security.ErrMissingAuthHeader) && isWebsocketUpgrade(r) {
				token, err = r.URL.Query().Get("token"), nil
			}

			if err != nil || token == "" {
				web.RespondUnauthorized(w, err, message.InvalidToken, nil)
				return
			}

			userID, err := VerifyUserToken(signer, token, AudienceAccess)
			if err != nil {
				web.RespondUnauthorized(w, err, message.InvalidToken, nil)
				return
			}

			ctx := user.NewContextWithID(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func isWebsocketUpgrade(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get("Upgrade"), "websocket")
}
