package dashboard_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ferdiebergado/devlink/internal/dashboard"
	"github.com/ferdiebergado/devlink/internal/pkg/message"
	"github.com/ferdiebergado/devlink/internal/pkg/web"
	"github.com/ferdiebergado/devlink/internal/user"
)

func TestHandler_Dashboard(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		userID int64
		err    error
		code   int
	}{
		{"Success", 4, nil, http.StatusOK},
		{"No user", 0, nil, http.StatusUnauthorized},
		{"Service error", 4, errors.New("query failed"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := &dashboard.StubService{
				DashboardFunc: func(_ context.Context, userID int64) (*dashboard.Dashboard, error) {
					if tt.err != nil {
						return nil, tt.err
					}
					return &dashboard.Dashboard{
						UserID:                        userID,
						PendingFriendRequests:         1,
						Repositories:                  []dashboard.RepoSummary{{ID: 9, Name: "devlink"}},
						AverageCompatibilityToFriends: 0.75,
						PercentCompatibilityToFriends: 75,
					}, nil
				},
			}
			h := dashboard.NewHandler(svc)

			ctx := context.Background()
			if tt.userID != 0 {
				ctx = user.NewContextWithID(ctx, tt.userID)
			}
			req := httptest.NewRequestWithContext(ctx, http.MethodGet, "/dashboard", nil)
			rec := httptest.NewRecorder()
			h.Dashboard(rec, req)

			if rec.Code != tt.code {
				t.Fatalf(message.FmtErrStatusCode, rec.Code, tt.code)
			}
			if tt.code != http.StatusOK {
				return
			}

			var res web.OKResponse[dashboard.DashboardData]
			if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
				t.Fatal(err)
			}
			if res.Data.UserID != tt.userID || res.Data.PercentCompatibilityToFriends != 75 {
				t.Errorf("data = %+v, want user %d with 75 percent", res.Data, tt.userID)
			}
			if len(res.Data.Repositories) != 1 || res.Data.Repositories[0].Name != "devlink" {
				t.Errorf("repositories = %+v, want: [devlink]", res.Data.Repositories)
			}
		})
	}
}
