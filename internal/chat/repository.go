package chat

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ferdiebergado/devlink/internal/platform/db"
)

const unknownNick = "Unknown"

var (
	ErrQueryFailed          = errors.New("chat repository: query failed")
	ErrConversationNotFound = errors.New("chat repository: conversation not found")
	ErrMessageNotFound      = errors.New("chat repository: message not found")
)

type Repository interface {
	FindConversation(ctx context.Context, conversationID int64) (*Conversation, error)
	FindConversationBetween(ctx context.Context, user1ID, user2ID int64) (*Conversation, error)
	CreateConversation(ctx context.Context, user1ID, user2ID int64) (*Conversation, error)
	Summary(ctx context.Context, conversationID, userID int64) (*Summary, error)
	ListSummaries(ctx context.Context, userID int64) ([]Summary, error)

	CreateMessage(ctx context.Context, msg *Message) (*Message, error)
	FindMessage(ctx context.Context, messageID int64) (*Message, error)
	ListMessages(ctx context.Context, conversationID, cursor int64, limit int) ([]Message, error)
	UpdateContent(ctx context.Context, messageID int64, content []byte) error
	DeleteMessage(ctx context.Context, messageID int64) error
	MarkRead(ctx context.Context, messageID int64) error
	CountUnread(ctx context.Context, userID int64) (int, error)
}

type sqlRepository struct {
	db db.Executor
}

var _ Repository = (*sqlRepository)(nil)

func NewRepository(dbExec db.Executor) Repository {
	return &sqlRepository{db: dbExec}
}

func (r *sqlRepository) exec(ctx context.Context) db.Executor {
	return db.ExecutorFromContext(ctx, r.db)
}

const conversationColumns = "id, user1_id, user2_id, created_at"

func scanConversation(row *sql.Row, c *Conversation) error {
	return row.Scan(&c.ID, &c.User1ID, &c.User2ID, &c.CreatedAt)
}

const queryFindConversation = "SELECT " + conversationColumns + " FROM conversations WHERE id = $1"

func (r *sqlRepository) FindConversation(ctx context.Context, conversationID int64) (*Conversation, error) {
	var c Conversation
	if err := scanConversation(r.exec(ctx).QueryRowContext(ctx, queryFindConversation, conversationID), &c); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrConversationNotFound
		}
		return nil, fmt.Errorf("%w: find conversation %d: %v", ErrQueryFailed, conversationID, err)
	}
	return &c, nil
}

const queryFindConversationBetween = "SELECT " + conversationColumns + " FROM conversations WHERE user1_id = $1 AND user2_id = $2"

func (r *sqlRepository) FindConversationBetween(ctx context.Context, user1ID, user2ID int64) (*Conversation, error) {
	var c Conversation
	if err := scanConversation(r.exec(ctx).QueryRowContext(ctx, queryFindConversationBetween, user1ID, user2ID), &c); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrConversationNotFound
		}
		return nil, fmt.Errorf("%w: find conversation between %d and %d: %v", ErrQueryFailed, user1ID, user2ID, err)
	}
	return &c, nil
}

// The no-op update makes RETURNING yield the existing row when two requests race.
const queryCreateConversation = `
INSERT INTO conversations (user1_id, user2_id)
VALUES ($1, $2)
ON CONFLICT (user1_id, user2_id) DO UPDATE SET user1_id = EXCLUDED.user1_id
RETURNING ` + conversationColumns

func (r *sqlRepository) CreateConversation(ctx context.Context, user1ID, user2ID int64) (*Conversation, error) {
	var c Conversation
	if err := scanConversation(r.exec(ctx).QueryRowContext(ctx, queryCreateConversation, user1ID, user2ID), &c); err != nil {
		return nil, fmt.Errorf("%w: create conversation between %d and %d: %v", ErrQueryFailed, user1ID, user2ID, err)
	}
	return &c, nil
}

// $1 is the viewing user.
const summarySelect = `
SELECT c.id,
	CASE WHEN c.user1_id = $1 THEN c.user2_id ELSE c.user1_id END,
	COALESCE(u.nick, '` + unknownNick + `'),
	c.created_at,
	(SELECT MAX(m.sent_at) FROM messages m WHERE m.conversation_id = c.id),
	(SELECT COUNT(*) FROM messages m WHERE m.conversation_id = c.id AND m.receiver_id = $1 AND NOT m.is_read)
FROM conversations c
LEFT JOIN users u ON u.id = CASE WHEN c.user1_id = $1 THEN c.user2_id ELSE c.user1_id END`

const (
	querySummary       = summarySelect + " WHERE c.id = $2"
	queryListSummaries = summarySelect + `
WHERE c.user1_id = $1 OR c.user2_id = $1
ORDER BY COALESCE((SELECT MAX(m.sent_at) FROM messages m WHERE m.conversation_id = c.id), c.created_at) DESC, c.id DESC`
)

func scanSummary(row interface{ Scan(dest ...any) error }, s *Summary) error {
	return row.Scan(&s.ID, &s.OtherUserID, &s.OtherUserNick, &s.CreatedAt, &s.LastMessageAt, &s.UnreadCount)
}

func (r *sqlRepository) Summary(ctx context.Context, conversationID, userID int64) (*Summary, error) {
	var s Summary
	if err := scanSummary(r.exec(ctx).QueryRowContext(ctx, querySummary, userID, conversationID), &s); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrConversationNotFound
		}
		return nil, fmt.Errorf("%w: summarize conversation %d: %v", ErrQueryFailed, conversationID, err)
	}
	return &s, nil
}

func (r *sqlRepository) ListSummaries(ctx context.Context, userID int64) ([]Summary, error) {
	rows, err := r.exec(ctx).QueryContext(ctx, queryListSummaries, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: list conversations of user %d: %v", ErrQueryFailed, userID, err)
	}
	defer rows.Close()

	summaries := make([]Summary, 0)
	for rows.Next() {
		var s Summary
		if err := scanSummary(rows, &s); err != nil {
			return nil, fmt.Errorf("chat repository: scan conversation row: %w", err)
		}
		summaries = append(summaries, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("chat repository: iterate over conversation rows: %w", err)
	}
	return summaries, nil
}

const messageColumns = `
m.id, m.conversation_id, m.sender_id, COALESCE(s.nick, '` + unknownNick + `') AS sender_nick,
m.receiver_id, COALESCE(rc.nick, '` + unknownNick + `') AS receiver_nick,
m.message_type, m.content, m.sent_at, m.edited_at, m.is_read`

const messageJoins = `
LEFT JOIN users s ON s.id = m.sender_id
LEFT JOIN users rc ON rc.id = m.receiver_id`

func scanMessage(row interface{ Scan(dest ...any) error }, m *Message) error {
	return row.Scan(&m.ID, &m.ConversationID, &m.SenderID, &m.SenderNick, &m.ReceiverID, &m.ReceiverNick,
		&m.Type, &m.Content, &m.SentAt, &m.EditedAt, &m.IsRead)
}

const queryCreateMessage = `
WITH m AS (
	INSERT INTO messages (conversation_id, sender_id, receiver_id, message_type, content)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING *
)
SELECT ` + messageColumns + " FROM m" + messageJoins

func (r *sqlRepository) CreateMessage(ctx context.Context, msg *Message) (*Message, error) {
	var created Message
	row := r.exec(ctx).QueryRowContext(ctx, queryCreateMessage,
		msg.ConversationID, msg.SenderID, msg.ReceiverID, int(msg.Type), msg.Content)
	if err := scanMessage(row, &created); err != nil {
		return nil, fmt.Errorf("%w: create message in conversation %d: %v", ErrQueryFailed, msg.ConversationID, err)
	}
	return &created, nil
}

const queryFindMessage = "SELECT " + messageColumns + " FROM messages m" + messageJoins + " WHERE m.id = $1"

func (r *sqlRepository) FindMessage(ctx context.Context, messageID int64) (*Message, error) {
	var m Message
	if err := scanMessage(r.exec(ctx).QueryRowContext(ctx, queryFindMessage, messageID), &m); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMessageNotFound
		}
		return nil, fmt.Errorf("%w: find message %d: %v", ErrQueryFailed, messageID, err)
	}
	return &m, nil
}

// Takes the newest $3 messages older than the cursor and returns them oldest first.
const queryListMessages = `
SELECT * FROM (
	SELECT ` + messageColumns + `
	FROM messages m` + messageJoins + `
	WHERE m.conversation_id = $1 AND ($2::bigint <= 0 OR m.id < $2::bigint)
	ORDER BY m.id DESC
	LIMIT $3
) page
ORDER BY 1`

func (r *sqlRepository) ListMessages(ctx context.Context, conversationID, cursor int64, limit int) ([]Message, error) {
	rows, err := r.exec(ctx).QueryContext(ctx, queryListMessages, conversationID, cursor, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: list messages of conversation %d: %v", ErrQueryFailed, conversationID, err)
	}
	defer rows.Close()

	messages := make([]Message, 0, limit)
	for rows.Next() {
		var m Message
		if err := scanMessage(rows, &m); err != nil {
			return nil, fmt.Errorf("chat repository: scan message row: %w", err)
		}
		messages = append(messages, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("chat repository: iterate over message rows: %w", err)
	}
	return messages, nil
}

const queryUpdateContent = "UPDATE messages SET content = $2, edited_at = NOW() WHERE id = $1"

func (r *sqlRepository) UpdateContent(ctx context.Context, messageID int64, content []byte) error {
	res, err := r.exec(ctx).ExecContext(ctx, queryUpdateContent, messageID, content)
	if err != nil {
		return fmt.Errorf("%w: update message %d: %v", ErrQueryFailed, messageID, err)
	}
	return requireAffected(res, ErrMessageNotFound)
}

const queryDeleteMessage = "DELETE FROM messages WHERE id = $1"

func (r *sqlRepository) DeleteMessage(ctx context.Context, messageID int64) error {
	res, err := r.exec(ctx).ExecContext(ctx, queryDeleteMessage, messageID)
	if err != nil {
		return fmt.Errorf("%w: delete message %d: %v", ErrQueryFailed, messageID, err)
	}
	return requireAffected(res, ErrMessageNotFound)
}

const queryMarkRead = "UPDATE messages SET is_read = TRUE WHERE id = $1"

func (r *sqlRepository) MarkRead(ctx context.Context, messageID int64) error {
	res, err := r.exec(ctx).ExecContext(ctx, queryMarkRead, messageID)
	if err != nil {
		return fmt.Errorf("%w: mark message %d read: %v", ErrQueryFailed, messageID, err)
	}
	return requireAffected(res, ErrMessageNotFound)
}

const queryCountUnread = "SELECT COUNT(*) FROM messages WHERE receiver_id = $1 AND NOT is_read"

func (r *sqlRepository) CountUnread(ctx context.Context, userID int64) (int, error) {
	var n int
	if err := r.exec(ctx).QueryRowContext(ctx, queryCountUnread, userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("%w: count unread messages of user %d: %v", ErrQueryFailed, userID, err)
	}
	return n, nil
}

func requireAffected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: rows affected: %v", ErrQueryFailed, err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}
