package friend

import (
	"context"
	"errors"
)

type StubRepo struct {
	CreateRequestFunc    func(ctx context.Context, senderID, receiverID int64, message *string) (*Request, error)
	FindRequestFunc      func(ctx context.Context, requestID int64) (*Request, error)
	PendingExistsFunc    func(ctx context.Context, userA, userB int64) (bool, error)
	ListPendingFunc      func(ctx context.Context, userID int64, dir Direction) ([]Request, error)
	CountPendingFunc     func(ctx context.Context, receiverID int64) (int, error)
	RespondFunc          func(ctx context.Context, requestID int64, status RequestStatus) error
	AddFriendshipFunc    func(ctx context.Context, userA, userB int64) error
	RemoveFriendshipFunc func(ctx context.Context, userA, userB int64) error
	AreFriendsFunc       func(ctx context.Context, userA, userB int64) (bool, error)
	ListFriendsFunc      func(ctx context.Context, userID int64) ([]Friend, error)
	FriendIDsFunc        func(ctx context.Context, userID int64) ([]int64, error)
	BlockFunc            func(ctx context.Context, userID, blockedID int64) error
	UnblockFunc          func(ctx context.Context, userID, blockedID int64) error
	IsBlockedFunc        func(ctx context.Context, userA, userB int64) (bool, error)
	BlockedIDsFunc       func(ctx context.Context, userID int64) ([]int64, error)
}

var _ Repository = (*StubRepo)(nil)

func (r *StubRepo) CreateRequest(ctx context.Context, senderID, receiverID int64, message *string) (*Request, error) {
	if r.CreateRequestFunc == nil {
		return nil, errors.New("CreateRequest not implemented by stub")
	}
	return r.CreateRequestFunc(ctx, senderID, receiverID, message)
}

func (r *StubRepo) FindRequest(ctx context.Context, requestID int64) (*Request, error) {
	if r.FindRequestFunc == nil {
		return nil, errors.New("FindRequest not implemented by stub")
	}
	return r.FindRequestFunc(ctx, requestID)
}

func (r *StubRepo) PendingExists(ctx context.Context, userA, userB int64) (bool, error) {
	if r.PendingExistsFunc == nil {
		return false, errors.New("PendingExists not implemented by stub")
	}
	return r.PendingExistsFunc(ctx, userA, userB)
}

func (r *StubRepo) ListPending(ctx context.Context, userID int64, dir Direction) ([]Request, error) {
	if r.ListPendingFunc == nil {
		return nil, errors.New("ListPending not implemented by stub")
	}
	return r.ListPendingFunc(ctx, userID, dir)
}

func (r *StubRepo) CountPending(ctx context.Context, receiverID int64) (int, error) {
	if r.CountPendingFunc == nil {
		return 0, errors.New("CountPending not implemented by stub")
	}
	return r.CountPendingFunc(ctx, receiverID)
}

func (r *StubRepo) Respond(ctx context.Context, requestID int64, status RequestStatus) error {
	if r.RespondFunc == nil {
		return errors.New("Respond not implemented by stub")
	}
	return r.RespondFunc(ctx, requestID, status)
}

func (r *StubRepo) AddFriendship(ctx context.Context, userA, userB int64) error {
	if r.AddFriendshipFunc == nil {
		return errors.New("AddFriendship not implemented by stub")
	}
	return r.AddFriendshipFunc(ctx, userA, userB)
}

func (r *StubRepo) RemoveFriendship(ctx context.Context, userA, userB int64) error {
	if r.RemoveFriendshipFunc == nil {
		return errors.New("RemoveFriendship not implemented by stub")
	}
	return r.RemoveFriendshipFunc(ctx, userA, userB)
}

func (r *StubRepo) AreFriends(ctx context.Context, userA, userB int64) (bool, error) {
	if r.AreFriendsFunc == nil {
		return false, errors.New("AreFriends not implemented by stub")
	}
	return r.AreFriendsFunc(ctx, userA, userB)
}

func (r *StubRepo) ListFriends(ctx context.Context, userID int64) ([]Friend, error) {
	if r.ListFriendsFunc == nil {
		return nil, errors.New("ListFriends not implemented by stub")
	}
	return r.ListFriendsFunc(ctx, userID)
}

func (r *StubRepo) FriendIDs(ctx context.Context, userID int64) ([]int64, error) {
	if r.FriendIDsFunc == nil {
		return nil, errors.New("FriendIDs not implemented by stub")
	}
	return r.FriendIDsFunc(ctx, userID)
}

func (r *StubRepo) Block(ctx context.Context, userID, blockedID int64) error {
	if r.BlockFunc == nil {
		return errors.New("Block not implemented by stub")
	}
	return r.BlockFunc(ctx, userID, blockedID)
}

func (r *StubRepo) Unblock(ctx context.Context, userID, blockedID int64) error {
	if r.UnblockFunc == nil {
		return errors.New("Unblock not implemented by stub")
	}
	return r.UnblockFunc(ctx, userID, blockedID)
}

func (r *StubRepo) IsBlocked(ctx context.Context, userA, userB int64) (bool, error) {
	if r.IsBlockedFunc == nil {
		return false, errors.New("IsBlocked not implemented by stub")
	}
	return r.IsBlockedFunc(ctx, userA, userB)
}

func (r *StubRepo) BlockedIDs(ctx context.Context, userID int64) ([]int64, error) {
	if r.BlockedIDsFunc == nil {
		return nil, errors.New("BlockedIDs not implemented by stub")
	}
	return r.BlockedIDsFunc(ctx, userID)
}

type StubService struct {
	SendRequestFunc  func(ctx context.Context, senderID int64, params SendRequestParams) (*Request, error)
	RequestsFunc     func(ctx context.Context, userID int64, dir Direction) ([]Request, error)
	CountPendingFunc func(ctx context.Context, userID int64) (int, error)
	AcceptFunc       func(ctx context.Context, userID, requestID int64) (*Request, error)
	RejectFunc       func(ctx context.Context, userID, requestID int64) (*Request, error)
	FriendsFunc      func(ctx context.Context, userID int64) ([]Friend, error)
	UnfriendFunc     func(ctx context.Context, userID, friendID int64) error
	IsFriendFunc     func(ctx context.Context, userA, userB int64) (bool, error)
	FriendIDsFunc    func(ctx context.Context, userID int64) ([]int64, error)
	BlockFunc        func(ctx context.Context, userID, targetID int64) error
	UnblockFunc      func(ctx context.Context, userID, targetID int64) error
	IsBlockedFunc    func(ctx context.Context, userA, userB int64) (bool, error)
	BlockedIDsFunc   func(ctx context.Context, userID int64) ([]int64, error)
}

var _ Service = (*StubService)(nil)

func (s *StubService) SendRequest(ctx context.Context, senderID int64, params SendRequestParams) (*Request, error) {
	if s.SendRequestFunc == nil {
		return nil, errors.New("SendRequest not implemented by stub")
	}
	return s.SendRequestFunc(ctx, senderID, params)
}

func (s *StubService) Requests(ctx context.Context, userID int64, dir Direction) ([]Request, error) {
	if s.RequestsFunc == nil {
		return nil, errors.New("Requests not implemented by stub")
	}
	return s.RequestsFunc(ctx, userID, dir)
}

func (s *StubService) CountPending(ctx context.Context, userID int64) (int, error) {
	if s.CountPendingFunc == nil {
		return 0, errors.New("CountPending not implemented by stub")
	}
	return s.CountPendingFunc(ctx, userID)
}

func (s *StubService) Accept(ctx context.Context, userID, requestID int64) (*Request, error) {
	if s.AcceptFunc == nil {
		return nil, errors.New("Accept not implemented by stub")
	}
	return s.AcceptFunc(ctx, userID, requestID)
}

func (s *StubService) Reject(ctx context.Context, userID, requestID int64) (*Request, error) {
	if s.RejectFunc == nil {
		return nil, errors.New("Reject not implemented by stub")
	}
	return s.RejectFunc(ctx, userID, requestID)
}

func (s *StubService) Friends(ctx context.Context, userID int64) ([]Friend, error) {
	if s.FriendsFunc == nil {
		return nil, errors.New("Friends not implemented by stub")
	}
	return s.FriendsFunc(ctx, userID)
}

func (s *StubService) Unfriend(ctx context.Context, userID, friendID int64) error {
	if s.UnfriendFunc == nil {
		return errors.New("Unfriend not implemented by stub")
	}
	return s.UnfriendFunc(ctx, userID, friendID)
}

func (s *StubService) IsFriend(ctx context.Context, userA, userB int64) (bool, error) {
	if s.IsFriendFunc == nil {
		return false, errors.New("IsFriend not implemented by stub")
	}
	return s.IsFriendFunc(ctx, userA, userB)
}

func (s *StubService) FriendIDs(ctx context.Context, userID int64) ([]int64, error) {
	if s.FriendIDsFunc == nil {
		return nil, errors.New("FriendIDs not implemented by stub")
	}
	return s.FriendIDsFunc(ctx, userID)
}

func (s *StubService) Block(ctx context.Context, userID, targetID int64) error {
	if s.BlockFunc == nil {
		return errors.New("Block not implemented by stub")
	}
	return s.BlockFunc(ctx, userID, targetID)
}

func (s *StubService) Unblock(ctx context.Context, userID, targetID int64) error {
	if s.UnblockFunc == nil {
		return errors.New("Unblock not implemented by stub")
	}
	return s.UnblockFunc(ctx, userID, targetID)
}

func (s *StubService) IsBlocked(ctx context.Context, userA, userB int64) (bool, error) {
	if s.IsBlockedFunc == nil {
		return false, errors.New("IsBlocked not implemented by stub")
	}
	return s.IsBlockedFunc(ctx, userA, userB)
}

func (s *StubService) BlockedIDs(ctx context.Context, userID int64) ([]int64, error) {
	if s.BlockedIDsFunc == nil {
		return nil, errors.New("BlockedIDs not implemented by stub")
	}
	return s.BlockedIDsFunc(ctx, userID)
}
