package app

import (
	"database/sql"
	"fmt"

	"github.com/ferdiebergado/devlink/internal/config"
	"github.com/ferdiebergado/devlink/internal/middleware"
	"github.com/ferdiebergado/devlink/internal/pkg/security"
	"github.com/ferdiebergado/devlink/internal/platform/db"
	"github.com/ferdiebergado/devlink/internal/platform/email"
	"github.com/ferdiebergado/devlink/internal/platform/hash"
	"github.com/ferdiebergado/devlink/internal/platform/jwt"
	"github.com/ferdiebergado/devlink/internal/platform/router"
	"github.com/ferdiebergado/devlink/internal/platform/validation"
)

// Provider holds the shared infrastructure the modules are built from.
type Provider struct {
	DB        *sql.DB
	Signer    jwt.Signer
	Mailer    email.Mailer
	Validator validation.Validator
	Hasher    hash.Hasher
	Router    router.Router
	CSRFBaker *security.CSRFCookieBaker
	TxMgr     db.TxManager
	Limiter   *middleware.IPRateLimiter
}

func NewProvider(cfg *config.Config, dbConn *sql.DB) (*Provider, error) {
	securityKey := cfg.App.Key
	mailer, err := email.NewSMTPMailer(cfg.SMTP, cfg.Email)
	if err != nil {
		return nil, fmt.Errorf("new smtp mailer: %w", err)
	}

	return &Provider{
		DB:        dbConn,
		Signer:    jwt.NewGolangJWTSigner(cfg.JWT, securityKey),
		Mailer:    mailer,
		Validator: validation.NewGoPlaygroundValidator(),
		Hasher:    hash.NewArgon2Hasher(cfg.Argon2, securityKey),
		Router:    router.NewGoexpressRouter(),
		CSRFBaker: security.NewCSRFCookieBaker(cfg.CSRF, securityKey),
		TxMgr:     db.NewSQLTxManager(dbConn),
		Limiter:   middleware.NewIPRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst),
	}, nil
}
