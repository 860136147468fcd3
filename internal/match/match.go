// Package match scores developer compatibility and suggests new connections.
package match

import (
	"github.com/ferdiebergado/devlink/internal/config"
	"github.com/ferdiebergado/devlink/internal/platform/db"
)

type Provider struct {
	Cfg       *config.Config
	DB        db.Executor
	Relations Relations
	Profiles  ProfileFinder
}

type Module struct {
	svc     Service
	handler *Handler
}

func (m *Module) Service() Service {
	return m.svc
}

func (m *Module) Handler() *Handler {
	return m.handler
}

func NewModule(provider *Provider) *Module {
	cfg := provider.Cfg.Match
	repo := NewRepository(provider.DB)
	svc := NewService(repo, provider.Relations, provider.Profiles, cfg.Workers)
	return &Module{
		svc:     svc,
		handler: NewHandler(svc, cfg),
	}
}
