// Package auth registers users and issues their access and refresh tokens.
package auth

import (
	"github.com/ferdiebergado/devlink/internal/config"
	"github.com/ferdiebergado/devlink/internal/pkg/security"
	"github.com/ferdiebergado/devlink/internal/platform/hash"
	"github.com/ferdiebergado/devlink/internal/platform/jwt"
	"github.com/ferdiebergado/devlink/internal/user"
)

type Provider struct {
	Cfg       *config.Config
	Hasher    hash.Hasher
	Signer    jwt.Signer
	CSRFBaker *security.CSRFCookieBaker
	UserSvc   user.Service
}

type Module struct {
	svc     Service
	handler *Handler
}

func (m *Module) Handler() *Handler {
	return m.handler
}

func (m *Module) Service() Service {
	return m.svc
}

func NewModule(provider *Provider) *Module {
	svc := NewService(provider.UserSvc, provider.Hasher, provider.Signer, provider.Cfg.JWT)
	handler := NewHandler(svc, provider)
	return &Module{
		svc:     svc,
		handler: handler,
	}
}
