package friend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ferdiebergado/devlink/internal/platform/db"
	"github.com/ferdiebergado/devlink/internal/platform/email"
	"github.com/ferdiebergado/devlink/internal/user"
)

const requestTemplate = "friend_request"

var (
	ErrSelfRequest      = errors.New("friend service: cannot befriend yourself")
	ErrSelfBlock        = errors.New("friend service: cannot block yourself")
	ErrAlreadyFriends   = errors.New("friend service: users are already friends")
	ErrBlocked          = errors.New("friend service: one user blocked the other")
	ErrRequestPending   = errors.New("friend service: a pending request already exists")
	ErrNotReceiver      = errors.New("friend service: only the receiver can respond")
	ErrInvalidDirection = errors.New("friend service: invalid direction")
)

type Service interface {
	SendRequest(ctx context.Context, senderID int64, params SendRequestParams) (*Request, error)
	Requests(ctx context.Context, userID int64, dir Direction) ([]Request, error)
	CountPending(ctx context.Context, userID int64) (int, error)
	Accept(ctx context.Context, userID, requestID int64) (*Request, error)
	Reject(ctx context.Context, userID, requestID int64) (*Request, error)

	Friends(ctx context.Context, userID int64) ([]Friend, error)
	Unfriend(ctx context.Context, userID, friendID int64) error
	IsFriend(ctx context.Context, userA, userB int64) (bool, error)
	FriendIDs(ctx context.Context, userID int64) ([]int64, error)

	Block(ctx context.Context, userID, targetID int64) error
	Unblock(ctx context.Context, userID, targetID int64) error
	IsBlocked(ctx context.Context, userA, userB int64) (bool, error)
	BlockedIDs(ctx context.Context, userID int64) ([]int64, error)
}

type SendRequestParams struct {
	ReceiverID int64
	Message    *string
}

type service struct {
	repo    Repository
	userSvc user.Service
	txMgr   db.TxManager
	mailer  email.Mailer
	appURL  string
}

var _ Service = (*service)(nil)

func NewService(repo Repository, userSvc user.Service, txMgr db.TxManager, mailer email.Mailer, appURL string) Service {
	return &service{
		repo:    repo,
		userSvc: userSvc,
		txMgr:   txMgr,
		mailer:  mailer,
		appURL:  appURL,
	}
}

func (s *service) SendRequest(ctx context.Context, senderID int64, params SendRequestParams) (*Request, error) {
	receiverID := params.ReceiverID
	if senderID == receiverID {
		return nil, ErrSelfRequest
	}

	sender, err := s.userSvc.Find(ctx, senderID)
	if err != nil {
		return nil, fmt.Errorf("find sender %d: %w", senderID, err)
	}

	receiver, err := s.userSvc.Find(ctx, receiverID)
	if err != nil {
		return nil, fmt.Errorf("find receiver %d: %w", receiverID, err)
	}

	if !receiver.IsActive {
		return nil, fmt.Errorf("receiver %d is inactive: %w", receiverID, user.ErrNotFound)
	}

	var req *Request
	err = s.txMgr.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.checkRequestable(txCtx, senderID, receiverID); err != nil {
			return err
		}

		var err error
		req, err = s.repo.CreateRequest(txCtx, senderID, receiverID, params.Message)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("send friend request from %d to %d: %w", senderID, receiverID, err)
	}

	req.SenderNick = sender.Nick
	req.ReceiverNick = receiver.Nick

	go s.notify(receiver.Email, req)

	return req, nil
}

func (s *service) checkRequestable(ctx context.Context, senderID, receiverID int64) error {
	blocked, err := s.repo.IsBlocked(ctx, senderID, receiverID)
	if err != nil {
		return err
	}
	if blocked {
		return ErrBlocked
	}

	friends, err := s.repo.AreFriends(ctx, senderID, receiverID)
	if err != nil {
		return err
	}
	if friends {
		return ErrAlreadyFriends
	}

	pending, err := s.repo.PendingExists(ctx, senderID, receiverID)
	if err != nil {
		return err
	}
	if pending {
		return ErrRequestPending
	}
	return nil
}

func (s *service) notify(to string, req *Request) {
	data := map[string]string{
		"Title":  "New friend request",
		"Header": req.SenderNick + " wants to connect with you",
		"Link":   s.appURL + "/friends/requests?direction=incoming",
	}
	if req.Message != nil {
		data["Message"] = *req.Message
	}

	subject := "New friend request from " + req.SenderNick
	if err := s.mailer.SendHTML([]string{to}, subject, requestTemplate, data); err != nil {
		slog.Error("failed to send friend request email", "request_id", req.ID, "reason", err)
		return
	}
	slog.Debug("friend request email sent", "request_id", req.ID)
}

func (s *service) Requests(ctx context.Context, userID int64, dir Direction) ([]Request, error) {
	if dir != Incoming && dir != Outgoing {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDirection, dir)
	}

	requests, err := s.repo.ListPending(ctx, userID, dir)
	if err != nil {
		return nil, fmt.Errorf("list %s requests of user %d: %w", dir, userID, err)
	}
	return requests, nil
}

func (s *service) CountPending(ctx context.Context, userID int64) (int, error) {
	return s.repo.CountPending(ctx, userID)
}

func (s *service) Accept(ctx context.Context, userID, requestID int64) (*Request, error) {
	return s.respond(ctx, userID, requestID, Accepted)
}

func (s *service) Reject(ctx context.Context, userID, requestID int64) (*Request, error) {
	return s.respond(ctx, userID, requestID, Rejected)
}

func (s *service) respond(ctx context.Context, userID, requestID int64, status RequestStatus) (*Request, error) {
	var req *Request
	err := s.txMgr.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		req, err = s.repo.FindRequest(txCtx, requestID)
		if err != nil {
			return err
		}

		if req.ReceiverID != userID {
			return ErrNotReceiver
		}

		if req.Status != Pending {
			return ErrNotPending
		}

		if err := s.repo.Respond(txCtx, requestID, status); err != nil {
			return err
		}

		if status == Accepted {
			return s.repo.AddFriendship(txCtx, req.SenderID, req.ReceiverID)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("mark request %d as %s: %w", requestID, status, err)
	}

	req.Status = status
	return req, nil
}

func (s *service) Friends(ctx context.Context, userID int64) ([]Friend, error) {
	friends, err := s.repo.ListFriends(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list friends of user %d: %w", userID, err)
	}
	return friends, nil
}

func (s *service) Unfriend(ctx context.Context, userID, friendID int64) error {
	if err := s.repo.RemoveFriendship(ctx, userID, friendID); err != nil {
		return fmt.Errorf("unfriend %d and %d: %w", userID, friendID, err)
	}
	return nil
}

func (s *service) IsFriend(ctx context.Context, userA, userB int64) (bool, error) {
	return s.repo.AreFriends(ctx, userA, userB)
}

func (s *service) FriendIDs(ctx context.Context, userID int64) ([]int64, error) {
	return s.repo.FriendIDs(ctx, userID)
}

func (s *service) Block(ctx context.Context, userID, targetID int64) error {
	if userID == targetID {
		return ErrSelfBlock
	}

	if _, err := s.userSvc.Find(ctx, targetID); err != nil {
		return fmt.Errorf("find user %d: %w", targetID, err)
	}

	err := s.txMgr.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.Block(txCtx, userID, targetID); err != nil {
			return err
		}

		if err := s.repo.RemoveFriendship(txCtx, userID, targetID); err != nil && !errors.Is(err, ErrNotFriends) {
			return err
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("user %d block %d: %w", userID, targetID, err)
	}

	slog.Info("user blocked", "user_id", userID, "blocked_id", targetID)
	return nil
}

func (s *service) Unblock(ctx context.Context, userID, targetID int64) error {
	if err := s.repo.Unblock(ctx, userID, targetID); err != nil {
		return fmt.Errorf("user %d unblock %d: %w", userID, targetID, err)
	}
	return nil
}

func (s *service) IsBlocked(ctx context.Context, userA, userB int64) (bool, error) {
	return s.repo.IsBlocked(ctx, userA, userB)
}

func (s *service) BlockedIDs(ctx context.Context, userID int64) ([]int64, error) {
	return s.repo.BlockedIDs(ctx, userID)
}
