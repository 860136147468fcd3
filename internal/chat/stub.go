package chat

import (
	"context"
	"errors"
)

type StubRepo struct {
	FindConversationFunc        func(ctx context.Context, conversationID int64) (*Conversation, error)
	FindConversationBetweenFunc func(ctx context.Context, user1ID, user2ID int64) (*Conversation, error)
	CreateConversationFunc      func(ctx context.Context, user1ID, user2ID int64) (*Conversation, error)
	SummaryFunc                 func(ctx context.Context, conversationID, userID int64) (*Summary, error)
	ListSummariesFunc           func(ctx context.Context, userID int64) ([]Summary, error)
	CreateMessageFunc           func(ctx context.Context, msg *Message) (*Message, error)
	FindMessageFunc             func(ctx context.Context, messageID int64) (*Message, error)
	ListMessagesFunc            func(ctx context.Context, conversationID, cursor int64, limit int) ([]Message, error)
	UpdateContentFunc           func(ctx context.Context, messageID int64, content []byte) error
	DeleteMessageFunc           func(ctx context.Context, messageID int64) error
	MarkReadFunc                func(ctx context.Context, messageID int64) error
	CountUnreadFunc             func(ctx context.Context, userID int64) (int, error)
}

var _ Repository = (*StubRepo)(nil)

func (r *StubRepo) FindConversation(ctx context.Context, conversationID int64) (*Conversation, error) {
	if r.FindConversationFunc == nil {
		return nil, errors.New("FindConversation not implemented by stub")
	}
	return r.FindConversationFunc(ctx, conversationID)
}

func (r *StubRepo) FindConversationBetween(ctx context.Context, user1ID, user2ID int64) (*Conversation, error) {
	if r.FindConversationBetweenFunc == nil {
		return nil, errors.New("FindConversationBetween not implemented by stub")
	}
	return r.FindConversationBetweenFunc(ctx, user1ID, user2ID)
}

func (r *StubRepo) CreateConversation(ctx context.Context, user1ID, user2ID int64) (*Conversation, error) {
	if r.CreateConversationFunc == nil {
		return nil, errors.New("CreateConversation not implemented by stub")
	}
	return r.CreateConversationFunc(ctx, user1ID, user2ID)
}

func (r *StubRepo) Summary(ctx context.Context, conversationID, userID int64) (*Summary, error) {
	if r.SummaryFunc == nil {
		return nil, errors.New("Summary not implemented by stub")
	}
	return r.SummaryFunc(ctx, conversationID, userID)
}

func (r *StubRepo) ListSummaries(ctx context.Context, userID int64) ([]Summary, error) {
	if r.ListSummariesFunc == nil {
		return nil, errors.New("ListSummaries not implemented by stub")
	}
	return r.ListSummariesFunc(ctx, userID)
}

func (r *StubRepo) CreateMessage(ctx context.Context, msg *Message) (*Message, error) {
	if r.CreateMessageFunc == nil {
		return nil, errors.New("CreateMessage not implemented by stub")
	}
	return r.CreateMessageFunc(ctx, msg)
}

func (r *StubRepo) FindMessage(ctx context.Context, messageID int64) (*Message, error) {
	if r.FindMessageFunc == nil {
		return nil, errors.New("FindMessage not implemented by stub")
	}
	return r.FindMessageFunc(ctx, messageID)
}

func (r *StubRepo) ListMessages(ctx context.Context, conversationID, cursor int64, limit int) ([]Message, error) {
	if r.ListMessagesFunc == nil {
		return nil, errors.New("ListMessages not implemented by stub")
	}
	return r.ListMessagesFunc(ctx, conversationID, cursor, limit)
}

func (r *StubRepo) UpdateContent(ctx context.Context, messageID int64, content []byte) error {
	if r.UpdateContentFunc == nil {
		return errors.New("UpdateContent not implemented by stub")
	}
	return r.UpdateContentFunc(ctx, messageID, content)
}

func (r *StubRepo) DeleteMessage(ctx context.Context, messageID int64) error {
	if r.DeleteMessageFunc == nil {
		return errors.New("DeleteMessage not implemented by stub")
	}
	return r.DeleteMessageFunc(ctx, messageID)
}

func (r *StubRepo) MarkRead(ctx context.Context, messageID int64) error {
	if r.MarkReadFunc == nil {
		return errors.New("MarkRead not implemented by stub")
	}
	return r.MarkReadFunc(ctx, messageID)
}

func (r *StubRepo) CountUnread(ctx context.Context, userID int64) (int, error) {
	if r.CountUnreadFunc == nil {
		return 0, errors.New("CountUnread not implemented by stub")
	}
	return r.CountUnreadFunc(ctx, userID)
}

type StubService struct {
	DirectConversationFunc func(ctx context.Context, userID, otherUserID int64) (*Summary, error)
	ConversationsFunc      func(ctx context.Context, userID int64) ([]Summary, error)
	IsParticipantFunc      func(ctx context.Context, userID, conversationID int64) (bool, error)
	SendMessageFunc        func(ctx context.Context, senderID, conversationID int64, params SendMessageParams) (*Message, error)
	MessagesFunc           func(ctx context.Context, userID, conversationID int64, page Page) ([]Message, error)
	EditMessageFunc        func(ctx context.Context, userID, messageID int64, content string) (*Message, error)
	DeleteMessageFunc      func(ctx context.Context, userID, messageID int64) error
	MarkReadFunc           func(ctx context.Context, userID, messageID int64) error
	UnreadCountFunc        func(ctx context.Context, userID int64) (int, error)
}

var _ Service = (*StubService)(nil)

func (s *StubService) DirectConversation(ctx context.Context, userID, otherUserID int64) (*Summary, error) {
	if s.DirectConversationFunc == nil {
		return nil, errors.New("DirectConversation not implemented by stub")
	}
	return s.DirectConversationFunc(ctx, userID, otherUserID)
}

func (s *StubService) Conversations(ctx context.Context, userID int64) ([]Summary, error) {
	if s.ConversationsFunc == nil {
		return nil, errors.New("Conversations not implemented by stub")
	}
	return s.ConversationsFunc(ctx, userID)
}

func (s *StubService) IsParticipant(ctx context.Context, userID, conversationID int64) (bool, error) {
	if s.IsParticipantFunc == nil {
		return false, errors.New("IsParticipant not implemented by stub")
	}
	return s.IsParticipantFunc(ctx, userID, conversationID)
}

func (s *StubService) SendMessage(ctx context.Context, senderID, conversationID int64, params SendMessageParams) (*Message, error) {
	if s.SendMessageFunc == nil {
		return nil, errors.New("SendMessage not implemented by stub")
	}
	return s.SendMessageFunc(ctx, senderID, conversationID, params)
}

func (s *StubService) Messages(ctx context.Context, userID, conversationID int64, page Page) ([]Message, error) {
	if s.MessagesFunc == nil {
		return nil, errors.New("Messages not implemented by stub")
	}
	return s.MessagesFunc(ctx, userID, conversationID, page)
}

func (s *StubService) EditMessage(ctx context.Context, userID, messageID int64, content string) (*Message, error) {
	if s.EditMessageFunc == nil {
		return nil, errors.New("EditMessage not implemented by stub")
	}
	return s.EditMessageFunc(ctx, userID, messageID, content)
}

func (s *StubService) DeleteMessage(ctx context.Context, userID, messageID int64) error {
	if s.DeleteMessageFunc == nil {
		return errors.New("DeleteMessage not implemented by stub")
	}
	return s.DeleteMessageFunc(ctx, userID, messageID)
}

func (s *StubService) MarkRead(ctx context.Context, userID, messageID int64) error {
	if s.MarkReadFunc == nil {
		return errors.New("MarkRead not implemented by stub")
	}
	return s.MarkReadFunc(ctx, userID, messageID)
}

func (s *StubService) UnreadCount(ctx context.Context, userID int64) (int, error) {
	if s.UnreadCountFunc == nil {
		return 0, errors.New("UnreadCount not implemented by stub")
	}
	return s.UnreadCountFunc(ctx, userID)
}

