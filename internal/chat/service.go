package chat

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"time"
)

var (
	ErrSelfConversation = errors.New("chat service: cannot start a conversation with yourself")
	ErrNotFriends       = errors.New("chat service: users are not friends")
	ErrBlocked          = errors.New("chat service: one user blocked the other")
	ErrNotParticipant   = errors.New("chat service: user is not part of the conversation")
	ErrNotSender        = errors.New("chat service: only the sender can change a message")
	ErrNotEditable      = errors.New("chat service: only text messages can be edited")
	ErrInvalidContent   = errors.New("chat service: content is not valid base64")
	ErrInvalidLimit     = errors.New("chat service: limit must be positive")
)

// Relations reports whether two users may talk to each other.
type Relations interface {
	IsFriend(ctx context.Context, userA, userB int64) (bool, error)
	IsBlocked(ctx context.Context, userA, userB int64) (bool, error)
}

type Service interface {
	DirectConversation(ctx context.Context, userID, otherUserID int64) (*Summary, error)
	Conversations(ctx context.Context, userID int64) ([]Summary, error)
	IsParticipant(ctx context.Context, userID, conversationID int64) (bool, error)

	SendMessage(ctx context.Context, senderID, conversationID int64, params SendMessageParams) (*Message, error)
	Messages(ctx context.Context, userID, conversationID int64, page Page) ([]Message, error)
	EditMessage(ctx context.Context, userID, messageID int64, content string) (*Message, error)
	DeleteMessage(ctx context.Context, userID, messageID int64) error
	MarkRead(ctx context.Context, userID, messageID int64) error
	UnreadCount(ctx context.Context, userID int64) (int, error)
}

type SendMessageParams struct {
	Type    MessageType
	Content string
}

// Page selects messages older than Cursor. A zero Cursor starts from the newest.
type Page struct {
	Cursor int64
	Limit  int
}

type service struct {
	repo      Repository
	relations Relations
	publisher Publisher
}

var _ Service = (*service)(nil)

func NewService(repo Repository, relations Relations, publisher Publisher) Service {
	return &service{
		repo:      repo,
		relations: relations,
		publisher: publisher,
	}
}

func (s *service) DirectConversation(ctx context.Context, userID, otherUserID int64) (*Summary, error) {
	if userID == otherUserID {
		return nil, ErrSelfConversation
	}

	user1ID, user2ID := normalize(userID, otherUserID)
	conv, err := s.repo.FindConversationBetween(ctx, user1ID, user2ID)
	switch {
	case err == nil:
		return s.repo.Summary(ctx, conv.ID, userID)
	case !errors.Is(err, ErrConversationNotFound):
		return nil, err
	}

	friends, err := s.relations.IsFriend(ctx, userID, otherUserID)
	if err != nil {
		return nil, fmt.Errorf("check friendship of %d and %d: %w", userID, otherUserID, err)
	}
	if !friends {
		return nil, ErrNotFriends
	}

	blocked, err := s.relations.IsBlocked(ctx, userID, otherUserID)
	if err != nil {
		return nil, fmt.Errorf("check blocks between %d and %d: %w", userID, otherUserID, err)
	}
	if blocked {
		return nil, ErrBlocked
	}

	conv, err = s.repo.CreateConversation(ctx, user1ID, user2ID)
	if err != nil {
		return nil, err
	}
	return s.repo.Summary(ctx, conv.ID, userID)
}

func (s *service) Conversations(ctx context.Context, userID int64) ([]Summary, error) {
	return s.repo.ListSummaries(ctx, userID)
}

func (s *service) IsParticipant(ctx context.Context, userID, conversationID int64) (bool, error) {
	conv, err := s.repo.FindConversation(ctx, conversationID)
	if err != nil {
		if errors.Is(err, ErrConversationNotFound) {
			return false, nil
		}
		return false, err
	}
	return conv.Has(userID), nil
}

// participating loads the conversation and checks that userID belongs to it.
func (s *service) participating(ctx context.Context, userID, conversationID int64) (*Conversation, error) {
	conv, err := s.repo.FindConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !conv.Has(userID) {
		return nil, fmt.Errorf("user %d in conversation %d: %w", userID, conversationID, ErrNotParticipant)
	}
	return conv, nil
}

func (s *service) SendMessage(ctx context.Context, senderID, conversationID int64, params SendMessageParams) (*Message, error) {
	conv, err := s.participating(ctx, senderID, conversationID)
	if err != nil {
		return nil, err
	}

	content, err := decodeContent(params.Type, params.Content)
	if err != nil {
		return nil, err
	}

	msg, err := s.repo.CreateMessage(ctx, &Message{
		ConversationID: conv.ID,
		SenderID:       senderID,
		ReceiverID:     conv.Other(senderID),
		Type:           params.Type,
		Content:        content,
	})
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(conv.ID, Event{Type: EventMessageReceived, Payload: NewMessageData(msg)})
	return msg, nil
}

func decodeContent(t MessageType, content string) ([]byte, error) {
	if t == Text {
		return []byte(content), nil
	}

	decoded, err := base64.StdEncoding.DecodeString(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidContent, err)
	}
	return decoded, nil
}

func (s *service) Messages(ctx context.Context, userID, conversationID int64, page Page) ([]Message, error) {
	if page.Limit < 1 {
		return nil, ErrInvalidLimit
	}

	if _, err := s.participating(ctx, userID, conversationID); err != nil {
		return nil, err
	}

	return s.repo.ListMessages(ctx, conversationID, page.Cursor, page.Limit)
}

// sent loads a message and checks that userID sent it.
func (s *service) sent(ctx context.Context, userID, messageID int64) (*Message, error) {
	msg, err := s.repo.FindMessage(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if msg.SenderID != userID {
		return nil, fmt.Errorf("user %d on message %d: %w", userID, messageID, ErrNotSender)
	}
	return msg, nil
}

func (s *service) EditMessage(ctx context.Context, userID, messageID int64, content string) (*Message, error) {
	msg, err := s.sent(ctx, userID, messageID)
	if err != nil {
		return nil, err
	}

	if msg.Type != Text {
		return nil, fmt.Errorf("message %d is %s: %w", messageID, msg.Type, ErrNotEditable)
	}

	if err := s.repo.UpdateContent(ctx, messageID, []byte(content)); err != nil {
		return nil, err
	}

	now := time.Now()
	msg.Content = []byte(content)
	msg.EditedAt = &now

	s.publisher.Publish(msg.ConversationID, Event{Type: EventMessageEdited, Payload: NewMessageData(msg)})
	return msg, nil
}

func (s *service) DeleteMessage(ctx context.Context, userID, messageID int64) error {
	msg, err := s.sent(ctx, userID, messageID)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteMessage(ctx, messageID); err != nil {
		return err
	}

	s.publisher.Publish(msg.ConversationID, Event{Type: EventMessageDeleted, Payload: MessageRefData{MessageID: messageID}})
	return nil
}

// MarkRead marks a message read. Messages received by someone else are reported as not found.
func (s *service) MarkRead(ctx context.Context, userID, messageID int64) error {
	msg, err := s.repo.FindMessage(ctx, messageID)
	if err != nil {
		return err
	}
	if msg.ReceiverID != userID {
		return fmt.Errorf("message %d not received by user %d: %w", messageID, userID, ErrMessageNotFound)
	}

	if err := s.repo.MarkRead(ctx, messageID); err != nil {
		return err
	}

	s.publisher.Publish(msg.ConversationID, Event{
		Type:    EventMessageRead,
		Payload: ReadData{MessageID: messageID, UserID: userID, ReadAt: time.Now().UTC()},
	})
	return nil
}

func (s *service) UnreadCount(ctx context.Context, userID int64) (int, error) {
	return s.repo.CountUnread(ctx, userID)
}
