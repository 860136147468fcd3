// Package code manages code repositories, their folder and file tree, and
// personal snippets.
package code

import (
	"github.com/ferdiebergado/devlink/internal/platform/db"
)

type Provider struct {
	DB    db.Executor
	TxMgr db.TxManager
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
	svc := NewService(NewRepository(provider.DB), provider.TxMgr)
	return &Module{
		svc:     svc,
		handler: NewHandler(svc),
	}
}
