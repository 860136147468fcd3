package chat

import (
	"encoding/base64"
	"strconv"
	"strings"
	"time"
)

type MessageType int

const (
	Text MessageType = iota
	ImageJPEG
	ImageJPG
	ImagePNG
	ImageWEBP
	Link
	Voice
	FileTXT
	Folder
	ZIP
)

var messageTypeNames = [...]string{
	Text:      "Text",
	ImageJPEG: "ImageJPEG",
	ImageJPG:  "ImageJPG",
	ImagePNG:  "ImagePNG",
	ImageWEBP: "ImageWEBP",
	Link:      "Link",
	Voice:     "Voice",
	FileTXT:   "FileTXT",
	Folder:    "Folder",
	ZIP:       "ZIP",
}

func (t MessageType) String() string {
	if t >= 0 && int(t) < len(messageTypeNames) {
		return messageTypeNames[t]
	}
	return "MessageType(" + strconv.Itoa(int(t)) + ")"
}

// ParseMessageType matches a type name case-insensitively and falls back to Text.
func ParseMessageType(s string) MessageType {
	s = strings.TrimSpace(s)
	for i, name := range messageTypeNames {
		if strings.EqualFold(name, s) {
			return MessageType(i)
		}
	}
	return Text
}

type Conversation struct {
	ID        int64
	User1ID   int64
	User2ID   int64
	CreatedAt time.Time
}

// Has reports whether userID takes part in the conversation.
func (c *Conversation) Has(userID int64) bool {
	return c.User1ID == userID || c.User2ID == userID
}

// Other returns the participant that is not userID.
func (c *Conversation) Other(userID int64) int64 {
	if c.User1ID == userID {
		return c.User2ID
	}
	return c.User1ID
}

// Summary is a conversation as seen by one of its participants.
type Summary struct {
	ID            int64
	OtherUserID   int64
	OtherUserNick string
	CreatedAt     time.Time
	LastMessageAt *time.Time
	UnreadCount   int
}

type Message struct {
	ID             int64
	ConversationID int64
	SenderID       int64
	SenderNick     string
	ReceiverID     int64
	ReceiverNick   string
	Type           MessageType
	Content        []byte
	SentAt         time.Time
	EditedAt       *time.Time
	IsRead         bool
}

// EncodedContent renders the content as UTF-8 for text messages and base64 otherwise.
func (m *Message) EncodedContent() string {
	if m.Type == Text {
		return string(m.Content)
	}
	return base64.StdEncoding.EncodeToString(m.Content)
}

// normalize orders a pair of user ids so that the smaller comes first.
func normalize(a, b int64) (int64, int64) {
	if a < b {
		return a, b
	}
	return b, a
}
