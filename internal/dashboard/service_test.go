package dashboard_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ferdiebergado/devlink/internal/chat"
	"github.com/ferdiebergado/devlink/internal/code"
	"github.com/ferdiebergado/devlink/internal/dashboard"
	"github.com/ferdiebergado/devlink/internal/friend"
	"github.com/ferdiebergado/devlink/internal/match"
	"github.com/google/go-cmp/cmp"
)

func newService(friends *friend.StubService, average float64) dashboard.Service {
	description := "a networking app"
	messages := &chat.StubService{
		UnreadCountFunc: func(_ context.Context, _ int64) (int, error) {
			return 7, nil
		},
	}
	repos := &code.StubService{
		RepositoriesFunc: func(_ context.Context, userID int64) ([]code.Repo, error) {
			return []code.Repo{
				{ID: 1, OwnerID: userID, Name: "devlink", Description: &description},
				{ID: 2, OwnerID: userID, Name: "Code Snippets"},
			}, nil
		},
	}
	compatibility := &match.StubService{
		AverageCompatibilityFunc: func(_ context.Context, _ int64, otherIDs []int64) (float64, error) {
			if len(otherIDs) == 0 {
				return 0, nil
			}
			return average, nil
		},
	}
	return dashboard.NewService(friends, messages, repos, compatibility)
}

func TestService_Dashboard(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		friendIDs   []int64
		average     float64
		wantAverage float64
		wantPercent float64
	}{
		{"No friends", nil, 0.5, 0, 0},
		{"Rounded", []int64{3, 4}, 0.123456, 0.1235, 12.35},
		{"Exact", []int64{3}, 0.8, 0.8, 80},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			friends := &friend.StubService{
				CountPendingFunc: func(_ context.Context, _ int64) (int, error) {
					return 2, nil
				},
				FriendIDsFunc: func(_ context.Context, _ int64) ([]int64, error) {
					return tt.friendIDs, nil
				},
			}

			got, err := newService(friends, tt.average).Dashboard(context.Background(), 1)
			if err != nil {
				t.Fatal(err)
			}

			want := &dashboard.Dashboard{
				UserID:                1,
				PendingFriendRequests: 2,
				UnreadMessages:        7,
				Repositories: []dashboard.RepoSummary{
					{ID: 1, Name: "devlink", Description: "a networking app"},
					{ID: 2, Name: "Code Snippets"},
				},
				AverageCompatibilityToFriends: tt.wantAverage,
				PercentCompatibilityToFriends: tt.wantPercent,
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("Dashboard() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestService_DashboardError(t *testing.T) {
	t.Parallel()

	errDB := errors.New("connection refused")
	friends := &friend.StubService{
		CountPendingFunc: func(_ context.Context, _ int64) (int, error) {
			return 0, errDB
		},
		FriendIDsFunc: func(_ context.Context, _ int64) ([]int64, error) {
			return nil, nil
		},
	}

	_, err := newService(friends, 0).Dashboard(context.Background(), 1)
	if !errors.Is(err, errDB) {
		t.Errorf("Dashboard() err = %v, want: %v", err, errDB)
	}
}
