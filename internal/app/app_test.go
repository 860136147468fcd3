package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ferdiebergado/devlink/internal/auth"
	"github.com/ferdiebergado/devlink/internal/config"
	"github.com/ferdiebergado/devlink/internal/middleware"
	"github.com/ferdiebergado/devlink/internal/pkg/message"
	"github.com/ferdiebergado/devlink/internal/pkg/security"
	timex "github.com/ferdiebergado/devlink/internal/pkg/time"
	"github.com/ferdiebergado/devlink/internal/pkg/web"
	"github.com/ferdiebergado/devlink/internal/platform/db"
	"github.com/ferdiebergado/devlink/internal/platform/email"
	"github.com/ferdiebergado/devlink/internal/platform/hash"
	"github.com/ferdiebergado/devlink/internal/platform/jwt"
	"github.com/ferdiebergado/devlink/internal/platform/router"
	"github.com/ferdiebergado/devlink/internal/platform/validation"
)

const testKey = "testsecret"

func newTestApp(t *testing.T) (*App, jwt.Signer) {
	t.Helper()

	cfg := &config.Config{
		App:       &config.App{Env: "testing", Key: testKey},
		Server:    &config.Server{Port: 0, MaxBodyBytes: 1 << 20, ShutdownTimeout: timex.Duration{Duration: time.Second}},
		DB:        &config.DB{Driver: "pgx"},
		JWT:       &config.JWT{JTILength: 8, Issuer: "devlink", TTL: timex.Duration{Duration: time.Minute}},
		Cookie:    &config.Cookie{Name: "refresh_token"},
		CSRF:      &config.CSRF{CookieName: "csrf_token", HeaderName: "X-CSRF-Token", TokenLen: 32},
		Argon2:    &config.Argon2{},
		Email:     &config.Email{},
		SMTP:      &config.SMTP{},
		Chat:      &config.Chat{DefaultPageSize: 20, MaxPageSize: 100, MaxFramesPerSecond: 20, MaxFrameBytes: 4096},
		Match:     &config.Match{DefaultTake: 10, MaxTake: 50, Workers: 2},
		Upload:    &config.Upload{MaxPhotoBytes: 1 << 20},
		RateLimit: &config.RateLimit{RequestsPerSecond: 100, Burst: 100},
	}

	signer := jwt.NewGolangJWTSigner(cfg.JWT, testKey)
	provider := &Provider{
		Signer:    signer,
		Mailer:    &email.StubMailer{},
		Validator: validation.NewGoPlaygroundValidator(),
		Hasher:    &hash.StubHasher{},
		Router:    router.NewGoexpressRouter(),
		CSRFBaker: security.NewCSRFCookieBaker(cfg.CSRF, testKey),
		TxMgr:     &db.StubTxManager{RunInTxFunc: db.PassthroughTx},
		Limiter:   middleware.NewIPRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst),
	}

	api := New(cfg, provider, globalMiddlewares(cfg))
	api.registerMiddlewares()
	api.setupRoutes()
	return api, signer
}

func TestApp_Health(t *testing.T) {
	t.Parallel()

	api, _ := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	api.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf(message.FmtErrStatusCode, rec.Code, http.StatusOK)
	}

	var res web.OKResponse[HealthData]
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatal(err)
	}
	if res.Data.Status != "healthy" {
		t.Errorf("status = %q, want: %q", res.Data.Status, "healthy")
	}
	if res.Data.Timestamp.IsZero() {
		t.Error("timestamp is zero")
	}
}

func TestApp_Routes(t *testing.T) {
	t.Parallel()

	api, signer := newTestApp(t)
	token, err := signer.Sign("5", []string{auth.AudienceAccess}, time.Minute)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name        string
		method      string
		target      string
		token       string
		contentType string
		code        int
	}{
		{"Dashboard needs a token", http.MethodGet, "/dashboard", "", "", http.StatusUnauthorized},
		{"Suggestions need a token", http.MethodGet, "/matches/suggestions", "", "", http.StatusUnauthorized},
		{"Chat needs a token", http.MethodGet, "/chat/ws", "", "", http.StatusUnauthorized},
		{"Bad token", http.MethodGet, "/conversations", "garbage", "", http.StatusUnauthorized},
		{"Repository body must be json", http.MethodPost, "/code/repos", token, "text/plain", http.StatusUnsupportedMediaType},
		{"Invalid repository id", http.MethodGet, "/code/repos/abc", token, "", http.StatusBadRequest},
		{"Invalid compatibility query", http.MethodGet, "/matches/compatibility?user1=0&user2=1", token, "", http.StatusBadRequest},
		{"Refresh needs the csrf cookie", http.MethodPost, "/auth/refresh", "", "", http.StatusForbidden},
		{"Unknown route", http.MethodGet, "/nowhere", token, "", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(tt.method, tt.target, strings.NewReader("{}"))
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			if tt.contentType != "" {
				req.Header.Set(web.HeaderContentType, tt.contentType)
			}
			rec := httptest.NewRecorder()
			api.router.ServeHTTP(rec, req)

			if rec.Code != tt.code {
				t.Errorf(message.FmtErrStatusCode, rec.Code, tt.code)
			}
		})
	}
}
