package chat

import "time"

// Commands sent by websocket clients.
const (
	CmdJoin           = "join"
	CmdLeave          = "leave"
	CmdSendMessage    = "send_message"
	CmdTyping         = "typing"
	CmdReadReceipt    = "read_receipt"
	CmdStartVoiceCall = "start_voice_call"
	CmdStartVideoCall = "start_video_call"
)

// Events delivered to websocket clients.
const (
	EventMessageReceived  = "message.received"
	EventMessageEdited    = "message.edited"
	EventMessageDeleted   = "message.deleted"
	EventMessageRead      = "message.read"
	EventUserTyping       = "user.typing"
	EventVoiceCallStarted = "call.voice_started"
	EventVideoCallStarted = "call.video_started"
	EventJoined           = "conversation.joined"
	EventLeft             = "conversation.left"
	EventError            = "error"
)

const videoRoomURL = "https://placeholder-video-room.com"

type Event struct {
	Type           string `json:"type"`
	ConversationID int64  `json:"conversation_id,omitempty"`
	Payload        any    `json:"payload,omitempty"`
}

// Publisher fans an event out to everyone in a conversation.
type Publisher interface {
	Publish(conversationID int64, ev Event)
}

type MessageData struct {
	ID             int64     `json:"id"`
	ConversationID int64     `json:"conversation_id"`
	SenderID       int64     `json:"sender_id"`
	SenderNick     string    `json:"sender_nick"`
	ReceiverID     int64     `json:"receiver_id"`
	ReceiverNick   string    `json:"receiver_nick"`
	MessageType    string    `json:"message_type"`
	Content        string    `json:"content"`
	SentAt         time.Time `json:"sent_at"`
	IsRead         bool      `json:"is_read"`
}

func NewMessageData(m *Message) *MessageData {
	return &MessageData{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		SenderID:       m.SenderID,
		SenderNick:     m.SenderNick,
		ReceiverID:     m.ReceiverID,
		ReceiverNick:   m.ReceiverNick,
		MessageType:    m.Type.String(),
		Content:        m.EncodedContent(),
		SentAt:         m.SentAt,
		IsRead:         m.IsRead,
	}
}

type MessageRefData struct {
	MessageID int64 `json:"message_id"`
}

type ReadData struct {
	MessageID int64     `json:"message_id"`
	UserID    int64     `json:"user_id"`
	ReadAt    time.Time `json:"read_at"`
}

type TypingData struct {
	UserID   int64 `json:"user_id"`
	IsTyping bool  `json:"is_typing"`
}

type CallData struct {
	CallerID     int64     `json:"caller_id"`
	CallID       string    `json:"call_id"`
	VideoRoomURL string    `json:"video_room_url,omitempty"`
	StartedAt    time.Time `json:"started_at"`
}

type ErrorData struct {
	Message string `json:"message"`
}

func errorEvent(conversationID int64, msg string) Event {
	return Event{Type: EventError, ConversationID: conversationID, Payload: ErrorData{Message: msg}}
}
