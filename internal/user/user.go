// Package user manages developer profiles with their skills, interests and photos.
package user

import (
	"github.com/ferdiebergado/devlink/internal/config"
	"github.com/ferdiebergado/devlink/internal/platform/db"
)

type Provider struct {
	Cfg   *config.Config
	DB    db.Executor
	TxMgr db.TxManager
}

type Module struct {
	repo    Repository
	svc     Service
	handler *Handler
}

func (m *Module) Repository() Repository {
	return m.repo
}

func (m *Module) Service() Service {
	return m.svc
}

func (m *Module) Handler() *Handler {
	return m.handler
}

func NewModule(provider *Provider) *Module {
	repo := NewRepository(provider.DB)
	svc := NewService(repo, provider.TxMgr)
	handler := NewHandler(svc, provider.Cfg.Upload)
	return &Module{
		repo:    repo,
		svc:     svc,
		handler: handler,
	}
}
