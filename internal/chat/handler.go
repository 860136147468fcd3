package chat

import (
	"errors"
	"net/http"
	"time"

	"github.com/ferdiebergado/devlink/internal/config"
	"github.com/ferdiebergado/devlink/internal/pkg/message"
	"github.com/ferdiebergado/devlink/internal/pkg/web"
	"github.com/ferdiebergado/devlink/internal/user"
)

type Handler struct {
	svc Service
	cfg *config.Chat
}

func NewHandler(svc Service, cfg *config.Chat) *Handler {
	return &Handler{svc: svc, cfg: cfg}
}

type ConversationData struct {
	ID            int64      `json:"id"`
	OtherUserID   int64      `json:"other_user_id"`
	OtherUserNick string     `json:"other_user_nick"`
	CreatedAt     time.Time  `json:"created_at"`
	LastMessageAt *time.Time `json:"last_message_at"`
	UnreadCount   int        `json:"unread_count"`
}

func newConversationData(s *Summary) ConversationData {
	return ConversationData{
		ID:            s.ID,
		OtherUserID:   s.OtherUserID,
		OtherUserNick: s.OtherUserNick,
		CreatedAt:     s.CreatedAt,
		LastMessageAt: s.LastMessageAt,
		UnreadCount:   s.UnreadCount,
	}
}

type MessagesResponse struct {
	Messages   []MessageData `json:"messages"`
	NextCursor int64         `json:"next_cursor"`
}

type SendMessageRequest struct {
	MessageType string `json:"message_type"`
	Content     string `json:"content" validate:"required"`
}

type EditMessageRequest struct {
	Content string `json:"content" validate:"required"`
}

func (h *Handler) DirectConversation(w http.ResponseWriter, r *http.Request) {
	userID, err := user.IDFromContext(r.Context())
	if err != nil {
		web.RespondUnauthorized(w, err, message.InvalidToken, nil)
		return
	}

	otherUserID, err := web.PathID(r, "otherUserID")
	if err != nil {
		web.RespondBadRequest(w, err, message.InvalidID, nil)
		return
	}

	summary, err := h.svc.DirectConversation(r.Context(), userID, otherUserID)
	if err != nil {
		switch {
		case errors.Is(err, ErrSelfConversation):
			web.RespondBadRequest(w, err, "You cannot message yourself.", nil)
		case errors.Is(err, ErrNotFriends):
			web.RespondBadRequest(w, err, "You can only message your friends.", nil)
		case errors.Is(err, ErrBlocked):
			web.RespondBadRequest(w, err, "You cannot message this user.", nil)
		default:
			web.RespondInternalServerError(w, err)
		}
		return
	}

	data := newConversationData(summary)
	web.RespondOK(w, nil, &data)
}

func (h *Handler) ListConversations(w http.ResponseWriter, r *http.Request) {
	userID, err := user.IDFromContext(r.Context())
	if err != nil {
		web.RespondUnauthorized(w, err, message.InvalidToken, nil)
		return
	}

	summaries, err := h.svc.Conversations(r.Context(), userID)
	if err != nil {
		web.RespondInternalServerError(w, err)
		return
	}

	data := make([]ConversationData, 0, len(summaries))
	for i := range summaries {
		data = append(data, newConversationData(&summaries[i]))
	}
	web.RespondOK(w, nil, &data)
}

func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, err := user.IDFromContext(ctx)
	if err != nil {
		web.RespondUnauthorized(w, err, message.InvalidToken, nil)
		return
	}

	conversationID, err := web.PathID(r, "id")
	if err != nil {
		web.RespondBadRequest(w, err, message.InvalidID, nil)
		return
	}

	req, err := web.ParamsFromContext[SendMessageRequest](ctx)
	if err != nil {
		web.RespondUnprocessableEntity(w, err, message.InvalidInput, nil)
		return
	}

	params := SendMessageParams{Type: ParseMessageType(req.MessageType), Content: req.Content}
	msg, err := h.svc.SendMessage(ctx, userID, conversationID, params)
	if err != nil {
		respondMessageError(w, err)
		return
	}

	web.RespondCreated(w, nil, NewMessageData(msg))
}

func (h *Handler) ListMessages(w http.ResponseWriter, r *http.Request) {
	userID, err := user.IDFromContext(r.Context())
	if err != nil {
		web.RespondUnauthorized(w, err, message.InvalidToken, nil)
		return
	}

	conversationID, err := web.PathID(r, "id")
	if err != nil {
		web.RespondBadRequest(w, err, message.InvalidID, nil)
		return
	}

	page, err := h.page(r)
	if err != nil {
		web.RespondBadRequest(w, err, message.InvalidQuery, nil)
		return
	}

	messages, err := h.svc.Messages(r.Context(), userID, conversationID, page)
	if err != nil {
		respondMessageError(w, err)
		return
	}

	res := MessagesResponse{Messages: make([]MessageData, 0, len(messages))}
	for i := range messages {
		res.Messages = append(res.Messages, *NewMessageData(&messages[i]))
	}
	if len(messages) == page.Limit {
		res.NextCursor = messages[0].ID
	}

	web.RespondOK(w, nil, &res)
}

// page reads cursor and limit, defaulting limit and capping it at the configured maximum.
func (h *Handler) page(r *http.Request) (Page, error) {
	cursor, err := web.QueryInt64(r, "cursor", 0)
	if err != nil {
		return Page{}, err
	}

	limit, err := web.QueryInt(r, "limit", h.cfg.DefaultPageSize)
	if err != nil {
		return Page{}, err
	}
	if limit < 1 {
		limit = h.cfg.DefaultPageSize
	}

	return Page{Cursor: cursor, Limit: min(limit, h.cfg.MaxPageSize)}, nil
}

func (h *Handler) EditMessage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, err := user.IDFromContext(ctx)
	if err != nil {
		web.RespondUnauthorized(w, err, message.InvalidToken, nil)
		return
	}

	messageID, err := web.PathID(r, "id")
	if err != nil {
		web.RespondBadRequest(w, err, message.InvalidID, nil)
		return
	}

	req, err := web.ParamsFromContext[EditMessageRequest](ctx)
	if err != nil {
		web.RespondUnprocessableEntity(w, err, message.InvalidInput, nil)
		return
	}

	msg, err := h.svc.EditMessage(ctx, userID, messageID, req.Content)
	if err != nil {
		respondMessageError(w, err)
		return
	}

	web.RespondOK(w, nil, NewMessageData(msg))
}

func (h *Handler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	userID, err := user.IDFromContext(r.Context())
	if err != nil {
		web.RespondUnauthorized(w, err, message.InvalidToken, nil)
		return
	}

	messageID, err := web.PathID(r, "id")
	if err != nil {
		web.RespondBadRequest(w, err, message.InvalidID, nil)
		return
	}

	if err := h.svc.DeleteMessage(r.Context(), userID, messageID); err != nil {
		respondMessageError(w, err)
		return
	}

	web.RespondNoContent(w)
}

func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID, err := user.IDFromContext(r.Context())
	if err != nil {
		web.RespondUnauthorized(w, err, message.InvalidToken, nil)
		return
	}

	messageID, err := web.PathID(r, "id")
	if err != nil {
		web.RespondBadRequest(w, err, message.InvalidID, nil)
		return
	}

	if err := h.svc.MarkRead(r.Context(), userID, messageID); err != nil {
		respondMessageError(w, err)
		return
	}

	web.RespondNoContent(w)
}

func respondMessageError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrConversationNotFound):
		web.RespondNotFound(w, err, "Conversation not found.", nil)
	case errors.Is(err, ErrMessageNotFound):
		web.RespondNotFound(w, err, "Message not found.", nil)
	case errors.Is(err, ErrNotParticipant), errors.Is(err, ErrNotSender):
		web.RespondForbidden(w, err, message.Forbidden, nil)
	case errors.Is(err, ErrNotEditable):
		web.RespondBadRequest(w, err, "Only text messages can be edited.", nil)
	case errors.Is(err, ErrInvalidContent):
		web.RespondBadRequest(w, err, "Content must be base64 encoded.", nil)
	case errors.Is(err, ErrInvalidLimit):
		web.RespondBadRequest(w, err, message.InvalidQuery, nil)
	default:
		web.RespondInternalServerError(w, err)
	}
}
