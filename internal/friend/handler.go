package friend

import (
	"context"
	"errors"
	"net/http"
	"time"

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

type RequestData struct {
	ID           int64      `json:"id"`
	SenderID     int64      `json:"sender_id"`
	SenderNick   string     `json:"sender_nick"`
	ReceiverID   int64      `json:"receiver_id"`
	ReceiverNick string     `json:"receiver_nick"`
	Message      *string    `json:"message"`
	Status       string     `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	RespondedAt  *time.Time `json:"responded_at,omitempty"`
}

func newRequestData(req *Request) *RequestData {
	return &RequestData{
		ID:           req.ID,
		SenderID:     req.SenderID,
		SenderNick:   req.SenderNick,
		ReceiverID:   req.ReceiverID,
		ReceiverNick: req.ReceiverNick,
		Message:      req.Message,
		Status:       req.Status.String(),
		CreatedAt:    req.CreatedAt,
		RespondedAt:  req.RespondedAt,
	}
}

type FriendData struct {
	UserID int64     `json:"user_id"`
	Nick   string    `json:"nick"`
	Since  time.Time `json:"since"`
}

type SendRequestRequest struct {
	ReceiverID int64   `json:"receiver_id" validate:"required,gt=0"`
	Message    *string `json:"message,omitempty" validate:"omitempty,max=500"`
}

func (h *Handler) SendRequest(w http.ResponseWriter, r *http.Request) {
	userID, err := user.IDFromContext(r.Context())
	if err != nil {
		web.RespondUnauthorized(w, err, message.InvalidToken, nil)
		return
	}

	req, err := web.ParamsFromContext[SendRequestRequest](r.Context())
	if err != nil {
		web.RespondBadRequest(w, err, message.InvalidInput, nil)
		return
	}

	sent, err := h.svc.SendRequest(r.Context(), userID, SendRequestParams(req))
	if err != nil {
		switch {
		case errors.Is(err, ErrSelfRequest):
			web.RespondBadRequest(w, err, "You cannot send a friend request to yourself.", nil)
		case errors.Is(err, user.ErrNotFound):
			web.RespondNotFound(w, err, "User not found.", nil)
		case errors.Is(err, ErrBlocked):
			web.RespondForbidden(w, err, "You cannot send a friend request to this user.", nil)
		case errors.Is(err, ErrAlreadyFriends):
			web.RespondConflict(w, err, "You are already friends.", nil)
		case errors.Is(err, ErrRequestPending):
			web.RespondConflict(w, err, "A friend request is already pending.", nil)
		default:
			web.RespondInternalServerError(w, err)
		}
		return
	}

	msg := "Friend request sent."
	web.RespondCreated(w, &msg, newRequestData(sent))
}

func (h *Handler) ListRequests(w http.ResponseWriter, r *http.Request) {
	userID, err := user.IDFromContext(r.Context())
	if err != nil {
		web.RespondUnauthorized(w, err, message.InvalidToken, nil)
		return
	}

	dir := Direction(r.URL.Query().Get("direction"))
	if dir == "" {
		dir = Incoming
	}

	requests, err := h.svc.Requests(r.Context(), userID, dir)
	if err != nil {
		if errors.Is(err, ErrInvalidDirection) {
			web.RespondBadRequest(w, err, message.InvalidQuery, map[string]string{"direction": "direction must be one of incoming outgoing"})
			return
		}
		web.RespondInternalServerError(w, err)
		return
	}

	data := make([]*RequestData, 0, len(requests))
	for i := range requests {
		data = append(data, newRequestData(&requests[i]))
	}
	web.RespondOK(w, nil, &data)
}

func (h *Handler) AcceptRequest(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, h.svc.Accept, "Friend request accepted.")
}

func (h *Handler) RejectRequest(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, h.svc.Reject, "Friend request rejected.")
}

type respondFunc func(ctx context.Context, userID, requestID int64) (*Request, error)

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, fn respondFunc, okMsg string) {
	userID, err := user.IDFromContext(r.Context())
	if err != nil {
		web.RespondUnauthorized(w, err, message.InvalidToken, nil)
		return
	}

	requestID, err := web.PathID(r, "id")
	if err != nil {
		web.RespondBadRequest(w, err, message.InvalidID, nil)
		return
	}

	req, err := fn(r.Context(), userID, requestID)
	if err != nil {
		switch {
		case errors.Is(err, ErrRequestNotFound):
			web.RespondNotFound(w, err, "Friend request not found.", nil)
		case errors.Is(err, ErrNotReceiver):
			web.RespondForbidden(w, err, message.Forbidden, nil)
		case errors.Is(err, ErrNotPending):
			web.RespondConflict(w, err, "Friend request was already answered.", nil)
		default:
			web.RespondInternalServerError(w, err)
		}
		return
	}

	web.RespondOK(w, &okMsg, newRequestData(req))
}

func (h *Handler) ListFriends(w http.ResponseWriter, r *http.Request) {
	userID, err := user.IDFromContext(r.Context())
	if err != nil {
		web.RespondUnauthorized(w, err, message.InvalidToken, nil)
		return
	}

	friends, err := h.svc.Friends(r.Context(), userID)
	if err != nil {
		web.RespondInternalServerError(w, err)
		return
	}

	data := make([]FriendData, 0, len(friends))
	for _, f := range friends {
		data = append(data, FriendData(f))
	}
	web.RespondOK(w, nil, &data)
}

func (h *Handler) Unfriend(w http.ResponseWriter, r *http.Request) {
	userID, err := user.IDFromContext(r.Context())
	if err != nil {
		web.RespondUnauthorized(w, err, message.InvalidToken, nil)
		return
	}

	friendID, err := web.PathID(r, "id")
	if err != nil {
		web.RespondBadRequest(w, err, message.InvalidID, nil)
		return
	}

	if err := h.svc.Unfriend(r.Context(), userID, friendID); err != nil {
		if errors.Is(err, ErrNotFriends) {
			web.RespondNotFound(w, err, "Friend not found.", nil)
			return
		}
		web.RespondInternalServerError(w, err)
		return
	}

	web.RespondNoContent(w)
}

func (h *Handler) Block(w http.ResponseWriter, r *http.Request) {
	userID, err := user.IDFromContext(r.Context())
	if err != nil {
		web.RespondUnauthorized(w, err, message.InvalidToken, nil)
		return
	}

	targetID, err := web.PathID(r, "id")
	if err != nil {
		web.RespondBadRequest(w, err, message.InvalidID, nil)
		return
	}

	if err := h.svc.Block(r.Context(), userID, targetID); err != nil {
		switch {
		case errors.Is(err, ErrSelfBlock):
			web.RespondBadRequest(w, err, "You cannot block yourself.", nil)
		case errors.Is(err, user.ErrNotFound):
			web.RespondNotFound(w, err, "User not found.", nil)
		default:
			web.RespondInternalServerError(w, err)
		}
		return
	}

	msg := "User blocked."
	web.RespondOK(w, &msg, &struct{}{})
}

func (h *Handler) Unblock(w http.ResponseWriter, r *http.Request) {
	userID, err := user.IDFromContext(r.Context())
	if err != nil {
		web.RespondUnauthorized(w, err, message.InvalidToken, nil)
		return
	}

	targetID, err := web.PathID(r, "id")
	if err != nil {
		web.RespondBadRequest(w, err, message.InvalidID, nil)
		return
	}

	if err := h.svc.Unblock(r.Context(), userID, targetID); err != nil {
		if errors.Is(err, ErrNotBlocked) {
			web.RespondNotFound(w, err, "User is not blocked.", nil)
			return
		}
		web.RespondInternalServerError(w, err)
		return
	}

	web.RespondNoContent(w)
}
