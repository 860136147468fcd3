// Package dashboard summarizes the activity of a user across the other modules.
package dashboard

type Provider struct {
	Friends       Friends
	Messages      Messages
	Repositories  Repositories
	Compatibility Compatibility
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
	svc := NewService(provider.Friends, provider.Messages, provider.Repositories, provider.Compatibility)
	return &Module{
		svc:     svc,
		handler: NewHandler(svc),
	}
}
