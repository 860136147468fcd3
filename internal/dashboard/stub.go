package dashboard

import (
	"context"
	"errors"
)

type StubService struct {
	DashboardFunc func(ctx context.Context, userID int64) (*Dashboard, error)
}

var _ Service = (*StubService)(nil)

func (s *StubService) Dashboard(ctx context.Context, userID int64) (*Dashboard, error) {
	if s.DashboardFunc == nil {
		return nil, errors.New("Dashboard not implemented by stub")
	}
	return s.DashboardFunc(ctx, userID)
}

