// Package chat handles direct conversations, their messages and the
// realtime websocket hub.
package chat

import (
	"github.com/ferdiebergado/devlink/internal/config"
	"github.com/ferdiebergado/devlink/internal/platform/db"
)

type Provider struct {
	Cfg       *config.Config
	DB        db.Executor
	Relations Relations
}

type Module struct {
	svc     Service
	handler *Handler
	hub     *Hub
}

func (m *Module) Service() Service {
	return m.svc
}

func (m *Module) Handler() *Handler {
	return m.handler
}

func (m *Module) Hub() *Hub {
	return m.hub
}

func NewModule(provider *Provider) *Module {
	broker := NewBroker()
	svc := NewService(NewRepository(provider.DB), provider.Relations, broker)
	return &Module{
		svc:     svc,
		handler: NewHandler(svc, provider.Cfg.Chat),
		hub:     NewHub(svc, broker, provider.Cfg.Chat, provider.Cfg.Server.AllowedOrigin),
	}
}
