package friend

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ferdiebergado/devlink/internal/platform/db"
)

var (
	ErrQueryFailed     = errors.New("friend repository: query failed")
	ErrRequestNotFound = errors.New("friend repository: friend request not found")
	ErrNotPending      = errors.New("friend repository: friend request is no longer pending")
	ErrNotFriends      = errors.New("friend repository: users are not friends")
	ErrNotBlocked      = errors.New("friend repository: user is not blocked")
)

type Repository interface {
	CreateRequest(ctx context.Context, senderID, receiverID int64, message *string) (*Request, error)
	FindRequest(ctx context.Context, requestID int64) (*Request, error)
	PendingExists(ctx context.Context, userA, userB int64) (bool, error)
	ListPending(ctx context.Context, userID int64, dir Direction) ([]Request, error)
	CountPending(ctx context.Context, receiverID int64) (int, error)
	Respond(ctx context.Context, requestID int64, status RequestStatus) error

	AddFriendship(ctx context.Context, userA, userB int64) error
	RemoveFriendship(ctx context.Context, userA, userB int64) error
	AreFriends(ctx context.Context, userA, userB int64) (bool, error)
	ListFriends(ctx context.Context, userID int64) ([]Friend, error)
	FriendIDs(ctx context.Context, userID int64) ([]int64, error)

	Block(ctx context.Context, userID, blockedID int64) error
	Unblock(ctx context.Context, userID, blockedID int64) error
	IsBlocked(ctx context.Context, userA, userB int64) (bool, error)
	BlockedIDs(ctx context.Context, userID int64) ([]int64, error)
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

const queryCreateRequest = `
INSERT INTO friend_requests (sender_id, receiver_id, message)
VALUES ($1, $2, $3)
RETURNING id, status, created_at`

func (r *sqlRepository) CreateRequest(ctx context.Context, senderID, receiverID int64, message *string) (*Request, error) {
	req := &Request{SenderID: senderID, ReceiverID: receiverID, Message: message}
	row := r.exec(ctx).QueryRowContext(ctx, queryCreateRequest, senderID, receiverID, message)
	if err := row.Scan(&req.ID, &req.Status, &req.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: create request from %d to %d: %v", ErrQueryFailed, senderID, receiverID, err)
	}
	return req, nil
}

const requestColumns = `
fr.id, fr.sender_id, s.nick, fr.receiver_id, rc.nick, fr.message, fr.status, fr.created_at, fr.responded_at
FROM friend_requests fr
JOIN users s ON s.id = fr.sender_id
JOIN users rc ON rc.id = fr.receiver_id`

func scanRequest(row interface{ Scan(dest ...any) error }, req *Request) error {
	return row.Scan(&req.ID, &req.SenderID, &req.SenderNick, &req.ReceiverID, &req.ReceiverNick,
		&req.Message, &req.Status, &req.CreatedAt, &req.RespondedAt)
}

const queryFindRequest = "SELECT " + requestColumns + " WHERE fr.id = $1"

func (r *sqlRepository) FindRequest(ctx context.Context, requestID int64) (*Request, error) {
	var req Request
	if err := scanRequest(r.exec(ctx).QueryRowContext(ctx, queryFindRequest, requestID), &req); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRequestNotFound
		}
		return nil, fmt.Errorf("%w: find request %d: %v", ErrQueryFailed, requestID, err)
	}
	return &req, nil
}

const queryPendingExists = `
SELECT EXISTS (
	SELECT 1 FROM friend_requests
	WHERE status = 0
	AND ((sender_id = $1 AND receiver_id = $2) OR (sender_id = $2 AND receiver_id = $1))
)`

func (r *sqlRepository) PendingExists(ctx context.Context, userA, userB int64) (bool, error) {
	return r.exists(ctx, queryPendingExists, userA, userB)
}

const (
	queryListIncoming = "SELECT " + requestColumns + " WHERE fr.receiver_id = $1 AND fr.status = 0 ORDER BY fr.created_at DESC, fr.id DESC"
	queryListOutgoing = "SELECT " + requestColumns + " WHERE fr.sender_id = $1 AND fr.status = 0 ORDER BY fr.created_at DESC, fr.id DESC"
)

func (r *sqlRepository) ListPending(ctx context.Context, userID int64, dir Direction) ([]Request, error) {
	query := queryListIncoming
	if dir == Outgoing {
		query = queryListOutgoing
	}

	rows, err := r.exec(ctx).QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: list %s requests of user %d: %v", ErrQueryFailed, dir, userID, err)
	}
	defer rows.Close()

	requests := make([]Request, 0)
	for rows.Next() {
		var req Request
		if err := scanRequest(rows, &req); err != nil {
			return nil, fmt.Errorf("friend repository: scan request row: %w", err)
		}
		requests = append(requests, req)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("friend repository: iterate over request rows: %w", err)
	}
	return requests, nil
}

const queryCountPending = "SELECT COUNT(*) FROM friend_requests WHERE receiver_id = $1 AND status = 0"

func (r *sqlRepository) CountPending(ctx context.Context, receiverID int64) (int, error) {
	var n int
	if err := r.exec(ctx).QueryRowContext(ctx, queryCountPending, receiverID).Scan(&n); err != nil {
		return 0, fmt.Errorf("%w: count pending requests of user %d: %v", ErrQueryFailed, receiverID, err)
	}
	return n, nil
}

const queryRespond = "UPDATE friend_requests SET status = $2, responded_at = NOW() WHERE id = $1 AND status = 0"

func (r *sqlRepository) Respond(ctx context.Context, requestID int64, status RequestStatus) error {
	res, err := r.exec(ctx).ExecContext(ctx, queryRespond, requestID, int(status))
	if err != nil {
		return fmt.Errorf("%w: respond to request %d: %v", ErrQueryFailed, requestID, err)
	}
	return requireAffected(res, ErrNotPending)
}

const queryAddFriendship = `
INSERT INTO user_friends (user_id, friend_id)
VALUES ($1, $2), ($2, $1)
ON CONFLICT DO NOTHING`

func (r *sqlRepository) AddFriendship(ctx context.Context, userA, userB int64) error {
	if _, err := r.exec(ctx).ExecContext(ctx, queryAddFriendship, userA, userB); err != nil {
		return fmt.Errorf("%w: befriend %d and %d: %v", ErrQueryFailed, userA, userB, err)
	}
	return nil
}

const queryRemoveFriendship = `
DELETE FROM user_friends
WHERE (user_id = $1 AND friend_id = $2) OR (user_id = $2 AND friend_id = $1)`

func (r *sqlRepository) RemoveFriendship(ctx context.Context, userA, userB int64) error {
	res, err := r.exec(ctx).ExecContext(ctx, queryRemoveFriendship, userA, userB)
	if err != nil {
		return fmt.Errorf("%w: unfriend %d and %d: %v", ErrQueryFailed, userA, userB, err)
	}
	return requireAffected(res, ErrNotFriends)
}

const queryAreFriends = "SELECT EXISTS (SELECT 1 FROM user_friends WHERE user_id = $1 AND friend_id = $2)"

func (r *sqlRepository) AreFriends(ctx context.Context, userA, userB int64) (bool, error) {
	return r.exists(ctx, queryAreFriends, userA, userB)
}

const queryListFriends = `
SELECT u.id, u.nick, f.created_at
FROM user_friends f JOIN users u ON u.id = f.friend_id
WHERE f.user_id = $1
ORDER BY u.nick, u.id`

func (r *sqlRepository) ListFriends(ctx context.Context, userID int64) ([]Friend, error) {
	rows, err := r.exec(ctx).QueryContext(ctx, queryListFriends, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: list friends of user %d: %v", ErrQueryFailed, userID, err)
	}
	defer rows.Close()

	friends := make([]Friend, 0)
	for rows.Next() {
		var f Friend
		if err := rows.Scan(&f.UserID, &f.Nick, &f.Since); err != nil {
			return nil, fmt.Errorf("friend repository: scan friend row: %w", err)
		}
		friends = append(friends, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("friend repository: iterate over friend rows: %w", err)
	}
	return friends, nil
}

const queryFriendIDs = "SELECT friend_id FROM user_friends WHERE user_id = $1 ORDER BY friend_id"

func (r *sqlRepository) FriendIDs(ctx context.Context, userID int64) ([]int64, error) {
	return r.ids(ctx, queryFriendIDs, userID)
}

const queryBlock = "INSERT INTO user_blocks (user_id, blocked_id) VALUES ($1, $2) ON CONFLICT DO NOTHING"

func (r *sqlRepository) Block(ctx context.Context, userID, blockedID int64) error {
	if _, err := r.exec(ctx).ExecContext(ctx, queryBlock, userID, blockedID); err != nil {
		return fmt.Errorf("%w: user %d block %d: %v", ErrQueryFailed, userID, blockedID, err)
	}
	return nil
}

const queryUnblock = "DELETE FROM user_blocks WHERE user_id = $1 AND blocked_id = $2"

func (r *sqlRepository) Unblock(ctx context.Context, userID, blockedID int64) error {
	res, err := r.exec(ctx).ExecContext(ctx, queryUnblock, userID, blockedID)
	if err != nil {
		return fmt.Errorf("%w: user %d unblock %d: %v", ErrQueryFailed, userID, blockedID, err)
	}
	return requireAffected(res, ErrNotBlocked)
}

const queryIsBlocked = `
SELECT EXISTS (
	SELECT 1 FROM user_blocks
	WHERE (user_id = $1 AND blocked_id = $2) OR (user_id = $2 AND blocked_id = $1)
)`

func (r *sqlRepository) IsBlocked(ctx context.Context, userA, userB int64) (bool, error) {
	return r.exists(ctx, queryIsBlocked, userA, userB)
}

// Users blocked by userID and users who blocked userID.
const queryBlockedIDs = `
SELECT blocked_id FROM user_blocks WHERE user_id = $1
UNION
SELECT user_id FROM user_blocks WHERE blocked_id = $1
ORDER BY 1`

func (r *sqlRepository) BlockedIDs(ctx context.Context, userID int64) ([]int64, error) {
	return r.ids(ctx, queryBlockedIDs, userID)
}

func (r *sqlRepository) exists(ctx context.Context, query string, args ...any) (bool, error) {
	var ok bool
	if err := r.exec(ctx).QueryRowContext(ctx, query, args...).Scan(&ok); err != nil {
		return false, fmt.Errorf("%w: %v", ErrQueryFailed, err)
	}
	return ok, nil
}

func (r *sqlRepository) ids(ctx context.Context, query string, userID int64) ([]int64, error) {
	rows, err := r.exec(ctx).QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: list ids for user %d: %v", ErrQueryFailed, userID, err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("friend repository: scan id row: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("friend repository: iterate over id rows: %w", err)
	}
	return ids, nil
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
