// Package friend handles friend requests, friendships and blocks between users.
package friend

import (
	"github.com/ferdiebergado/devlink/internal/config"
	"github.com/ferdiebergado/devlink/internal/platform/db"
	"github.com/ferdiebergado/devlink/internal/platform/email"
	"github.com/ferdiebergado/devlink/internal/user"
)

type Provider struct {
	Cfg     *config.Config
	DB      db.Executor
	TxMgr   db.TxManager
	Mailer  email.Mailer
	UserSvc user.Service
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
	repo := NewRepository(provider.DB)
	svc := NewService(repo, provider.UserSvc, provider.TxMgr, provider.Mailer, provider.Cfg.Server.URL)
	return &Module{
		svc:     svc,
		handler: NewHandler(svc),
	}
}
