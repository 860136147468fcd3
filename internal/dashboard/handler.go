package dashboard

import (
	"net/http"

	"github.com/ferdiebergado/devlink/internal/pkg/message"
	"github.com/ferdiebergado/devlink/internal/pkg/web"
	"github.com/ferdiebergado/devlink/internal/user"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

type RepoSummaryData struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type DashboardData struct {
	UserID                        int64             `json:"user_id"`
	PendingFriendRequests         int               `json:"pending_friend_requests"`
	UnreadMessages                int               `json:"unread_messages"`
	Repositories                  []RepoSummaryData `json:"repositories"`
	AverageCompatibilityToFriends float64           `json:"average_compatibility_to_friends"`
	PercentCompatibilityToFriends float64           `json:"percent_compatibility_to_friends"`
}

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	userID, err := user.IDFromContext(r.Context())
	if err != nil {
		web.RespondUnauthorized(w, err, message.InvalidToken, nil)
		return
	}

	d, err := h.svc.Dashboard(r.Context(), userID)
	if err != nil {
		web.RespondInternalServerError(w, err)
		return
	}

	repos := make([]RepoSummaryData, 0, len(d.Repositories))
	for _, r := range d.Repositories {
		repos = append(repos, RepoSummaryData(r))
	}

	web.RespondOK(w, nil, &DashboardData{
		UserID:                        d.UserID,
		PendingFriendRequests:         d.PendingFriendRequests,
		UnreadMessages:                d.UnreadMessages,
		Repositories:                  repos,
		AverageCompatibilityToFriends: d.AverageCompatibilityToFriends,
		PercentCompatibilityToFriends: d.PercentCompatibilityToFriends,
	})
}
