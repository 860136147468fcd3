package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ferdiebergado/devlink/internal/config"
	"github.com/ferdiebergado/devlink/internal/user"
	"github.com/google/uuid"
	"golang.org/x/net/websocket"
	"golang.org/x/time/rate"
)

const (
	sendBuffer             = 32
	maxDecodeErrorsPerConn = 5
)

var ErrOriginNotAllowed = errors.New("chat hub: origin not allowed")

// Frame is a command sent by a websocket client.
type Frame struct {
	Type           string          `json:"type"`
	ConversationID int64           `json:"conversation_id"`
	Payload        json.RawMessage `json:"payload,omitempty"`
}

type sendMessagePayload struct {
	MessageType string `json:"message_type"`
	Content     string `json:"content"`
}

type typingPayload struct {
	IsTyping bool `json:"is_typing"`
}

type readReceiptPayload struct {
	MessageID int64 `json:"message_id"`
}

// Hub serves the chat websocket. Clients join the conversations they take
// part in and receive the events published to them.
type Hub struct {
	svc           Service
	broker        *Broker
	cfg           *config.Chat
	allowedOrigin string
	server        websocket.Server
}

var _ http.Handler = (*Hub)(nil)

func NewHub(svc Service, broker *Broker, cfg *config.Chat, allowedOrigin string) *Hub {
	h := &Hub{
		svc:           svc,
		broker:        broker,
		cfg:           cfg,
		allowedOrigin: strings.TrimSuffix(allowedOrigin, "/"),
	}
	h.server = websocket.Server{Handshake: h.handshake, Handler: h.serve}
	return h
}

func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if _, err := user.IDFromContext(r.Context()); err != nil {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}
	h.server.ServeHTTP(w, r)
}

func (h *Hub) handshake(cfg *websocket.Config, r *http.Request) error {
	origin, err := websocket.Origin(cfg, r)
	if err != nil {
		return err
	}
	cfg.Origin = origin

	if h.allowedOrigin == "" || h.allowedOrigin == "*" {
		return nil
	}
	if origin == nil || origin.Scheme+"://"+origin.Host != h.allowedOrigin {
		return fmt.Errorf("%w: %v", ErrOriginNotAllowed, origin)
	}
	return nil
}

type client struct {
	userID  int64
	conn    *websocket.Conn
	sub     *subscriber
	limiter *rate.Limiter
	rooms   map[int64]struct{}
}

// reply sends ev to this client only.
func (c *client) reply(ev Event) {
	select {
	case c.sub.send <- ev:
	default:
		slog.Warn("Dropping chat reply for slow client", "user_id", c.userID, "type", ev.Type)
	}
}

func (c *client) writeLoop(done chan<- struct{}) {
	defer close(done)

	failed := false
	for ev := range c.sub.send {
		if failed {
			continue
		}
		if err := websocket.JSON.Send(c.conn, ev); err != nil {
			slog.Debug("Chat write failed", "user_id", c.userID, "error", err)
			failed = true
		}
	}
}

func (h *Hub) serve(conn *websocket.Conn) {
	defer conn.Close()

	ctx := conn.Request().Context()
	userID, err := user.IDFromContext(ctx)
	if err != nil {
		slog.Warn("Chat connection without user", "error", err)
		return
	}

	conn.MaxPayloadBytes = h.cfg.MaxFrameBytes
	// The server read and write timeouts would otherwise close idle connections.
	if err := conn.SetDeadline(time.Time{}); err != nil {
		slog.Warn("Chat connection deadline not cleared", "user_id", userID, "error", err)
	}
	perSecond := max(h.cfg.MaxFramesPerSecond, 1)
	c := &client{
		userID:  userID,
		conn:    conn,
		sub:     &subscriber{userID: userID, send: make(chan Event, sendBuffer)},
		limiter: rate.NewLimiter(rate.Limit(perSecond), perSecond),
		rooms:   make(map[int64]struct{}),
	}

	done := make(chan struct{})
	go c.writeLoop(done)
	defer func() {
		h.broker.unsubscribeAll(c.sub)
		close(c.sub.send)
		<-done
	}()

	slog.Info("Chat client connected", "user_id", userID)

	decodeErrors := 0
	for {
		var frame Frame
		if err := websocket.JSON.Receive(conn, &frame); err != nil {
			if errors.Is(err, io.EOF) {
				slog.Info("Chat client disconnected", "user_id", userID)
				return
			}
			if !isFrameError(err) {
				slog.Debug("Chat read failed", "user_id", userID, "error", err)
				return
			}

			decodeErrors++
			c.reply(errorEvent(0, "invalid frame"))
			if decodeErrors >= maxDecodeErrorsPerConn {
				return
			}
			continue
		}
		decodeErrors = 0

		if !c.limiter.Allow() {
			c.reply(errorEvent(frame.ConversationID, "rate limit exceeded"))
			continue
		}

		h.dispatch(ctx, c, &frame)
	}
}

func isFrameError(err error) bool {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	return errors.Is(err, websocket.ErrFrameTooLarge) || errors.As(err, &syntaxErr) || errors.As(err, &typeErr)
}

func (h *Hub) dispatch(ctx context.Context, c *client, f *Frame) {
	switch f.Type {
	case CmdJoin:
		h.join(ctx, c, f.ConversationID)
	case CmdLeave:
		h.broker.unsubscribe(f.ConversationID, c.sub)
		delete(c.rooms, f.ConversationID)
		c.reply(Event{Type: EventLeft, ConversationID: f.ConversationID})
	case CmdSendMessage:
		h.sendMessage(ctx, c, f)
	case CmdTyping:
		h.typing(c, f)
	case CmdReadReceipt:
		h.readReceipt(ctx, c, f)
	case CmdStartVoiceCall:
		h.startCall(c, f.ConversationID, EventVoiceCallStarted, "")
	case CmdStartVideoCall:
		h.startCall(c, f.ConversationID, EventVideoCallStarted, videoRoomURL)
	default:
		c.reply(errorEvent(f.ConversationID, "unsupported frame type"))
	}
}

func (h *Hub) join(ctx context.Context, c *client, conversationID int64) {
	ok, err := h.svc.IsParticipant(ctx, c.userID, conversationID)
	if err != nil {
		slog.Error("Chat membership check failed", "user_id", c.userID, "conversation_id", conversationID, "error", err)
		c.reply(errorEvent(conversationID, "membership verification unavailable"))
		return
	}
	if !ok {
		c.reply(errorEvent(conversationID, "not a participant of this conversation"))
		return
	}

	h.broker.subscribe(conversationID, c.sub)
	c.rooms[conversationID] = struct{}{}
	c.reply(Event{Type: EventJoined, ConversationID: conversationID})
}

func (c *client) joined(conversationID int64) bool {
	if _, ok := c.rooms[conversationID]; ok {
		return true
	}
	c.reply(errorEvent(conversationID, "join the conversation first"))
	return false
}

func (h *Hub) sendMessage(ctx context.Context, c *client, f *Frame) {
	var p sendMessagePayload
	if err := json.Unmarshal(f.Payload, &p); err != nil || p.Content == "" {
		c.reply(errorEvent(f.ConversationID, "invalid message payload"))
		return
	}

	params := SendMessageParams{Type: ParseMessageType(p.MessageType), Content: p.Content}
	if _, err := h.svc.SendMessage(ctx, c.userID, f.ConversationID, params); err != nil {
		c.reply(errorEvent(f.ConversationID, clientMessage(err)))
	}
}

func (h *Hub) typing(c *client, f *Frame) {
	var p typingPayload
	if err := json.Unmarshal(f.Payload, &p); err != nil {
		c.reply(errorEvent(f.ConversationID, "invalid typing payload"))
		return
	}
	if !c.joined(f.ConversationID) {
		return
	}

	h.broker.Publish(f.ConversationID, Event{
		Type:    EventUserTyping,
		Payload: TypingData{UserID: c.userID, IsTyping: p.IsTyping},
	})
}

func (h *Hub) readReceipt(ctx context.Context, c *client, f *Frame) {
	var p readReceiptPayload
	if err := json.Unmarshal(f.Payload, &p); err != nil || p.MessageID <= 0 {
		c.reply(errorEvent(f.ConversationID, "invalid read receipt payload"))
		return
	}

	if err := h.svc.MarkRead(ctx, c.userID, p.MessageID); err != nil {
		c.reply(errorEvent(f.ConversationID, clientMessage(err)))
	}
}

// startCall announces a call. No media session is set up.
func (h *Hub) startCall(c *client, conversationID int64, eventType, roomURL string) {
	if !c.joined(conversationID) {
		return
	}

	h.broker.Publish(conversationID, Event{
		Type: eventType,
		Payload: CallData{
			CallerID:     c.userID,
			CallID:       uuid.NewString(),
			VideoRoomURL: roomURL,
			StartedAt:    time.Now().UTC(),
		},
	})
}

func clientMessage(err error) string {
	switch {
	case errors.Is(err, ErrConversationNotFound):
		return "conversation not found"
	case errors.Is(err, ErrMessageNotFound):
		return "message not found"
	case errors.Is(err, ErrNotParticipant):
		return "not a participant of this conversation"
	case errors.Is(err, ErrInvalidContent):
		return "content must be base64 encoded"
	default:
		slog.Error("Chat command failed", "error", err)
		return "unexpected error"
	}
}
