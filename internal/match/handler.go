package match

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/ferdiebergado/devlink/internal/config"
	"github.com/ferdiebergado/devlink/internal/pkg/message"
	"github.com/ferdiebergado/devlink/internal/pkg/web"
	"github.com/ferdiebergado/devlink/internal/user"
)

type Handler struct {
	svc Service
	cfg *config.Match
}

func NewHandler(svc Service, cfg *config.Match) *Handler {
	return &Handler{svc: svc, cfg: cfg}
}

type SuggestionData struct {
	Score   float64               `json:"compatibility_score"`
	Profile *user.ProfileResponse `json:"profile"`
}

func (h *Handler) Suggestions(w http.ResponseWriter, r *http.Request) {
	userID, err := user.IDFromContext(r.Context())
	if err != nil {
		web.RespondUnauthorized(w, err, message.InvalidToken, nil)
		return
	}

	page, err := h.page(r)
	if err != nil {
		web.RespondBadRequest(w, err, message.InvalidQuery, nil)
		return
	}

	suggestions, err := h.svc.Suggestions(r.Context(), userID, page)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrNotFound):
			web.RespondNotFound(w, err, "User not found.", nil)
		case errors.Is(err, ErrInvalidPage):
			web.RespondBadRequest(w, err, message.InvalidQuery, nil)
		default:
			web.RespondInternalServerError(w, err)
		}
		return
	}

	data := make([]SuggestionData, 0, len(suggestions))
	for _, s := range suggestions {
		data = append(data, SuggestionData{
			Score:   s.Score,
			Profile: user.NewProfileResponse(s.Profile),
		})
	}
	web.RespondOK(w, nil, &data)
}

// page reads skip and take, defaulting take and capping it at the configured maximum.
func (h *Handler) page(r *http.Request) (Page, error) {
	skip, err := web.QueryInt(r, "skip", 0)
	if err != nil {
		return Page{}, err
	}
	if skip < 0 {
		return Page{}, fmt.Errorf("%w: negative skip %d", ErrInvalidPage, skip)
	}

	take, err := web.QueryInt(r, "take", h.cfg.DefaultTake)
	if err != nil {
		return Page{}, err
	}
	if take < 1 {
		take = h.cfg.DefaultTake
	}

	return Page{Skip: skip, Take: min(take, h.cfg.MaxTake)}, nil
}

type CompatibilityResponse struct {
	User1ID int64   `json:"user1_id"`
	User2ID int64   `json:"user2_id"`
	Score   float64 `json:"compatibility_score"`
}

func (h *Handler) Compatibility(w http.ResponseWriter, r *http.Request) {
	user1, err1 := web.QueryInt64(r, "user1", 0)
	user2, err2 := web.QueryInt64(r, "user2", 0)
	if err := errors.Join(err1, err2); err != nil || user1 <= 0 || user2 <= 0 {
		if err == nil {
			err = fmt.Errorf("user ids must be positive: user1=%d user2=%d", user1, user2)
		}
		web.RespondBadRequest(w, err, "Valid user ids are required.", nil)
		return
	}

	score, err := h.svc.Compatibility(r.Context(), user1, user2)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			web.RespondNotFound(w, err, "User not found.", nil)
			return
		}
		web.RespondInternalServerError(w, err)
		return
	}

	web.RespondOK(w, nil, &CompatibilityResponse{User1ID: user1, User2ID: user2, Score: score})
}
