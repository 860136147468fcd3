package dashboard

import (
	"context"
	"fmt"

	"github.com/ferdiebergado/devlink/internal/code"
	"github.com/ferdiebergado/devlink/internal/match"
	"golang.org/x/sync/errgroup"
)

// Friends reports pending requests and friendships of a user.
type Friends interface {
	CountPending(ctx context.Context, userID int64) (int, error)
	FriendIDs(ctx context.Context, userID int64) ([]int64, error)
}

type Messages interface {
	UnreadCount(ctx context.Context, userID int64) (int, error)
}

type Repositories interface {
	Repositories(ctx context.Context, userID int64) ([]code.Repo, error)
}

type Compatibility interface {
	AverageCompatibility(ctx context.Context, userID int64, otherIDs []int64) (float64, error)
}

type Service interface {
	Dashboard(ctx context.Context, userID int64) (*Dashboard, error)
}

type RepoSummary struct {
	ID          int64
	Name        string
	Description string
}

type Dashboard struct {
	UserID                        int64
	PendingFriendRequests         int
	UnreadMessages                int
	Repositories                  []RepoSummary
	AverageCompatibilityToFriends float64
	PercentCompatibilityToFriends float64
}

type service struct {
	friends       Friends
	messages      Messages
	repos         Repositories
	compatibility Compatibility
}

var _ Service = (*service)(nil)

func NewService(friends Friends, messages Messages, repos Repositories, compatibility Compatibility) Service {
	return &service{
		friends:       friends,
		messages:      messages,
		repos:         repos,
		compatibility: compatibility,
	}
}

// Dashboard gathers the overview of userID. The sections are loaded concurrently.
func (s *service) Dashboard(ctx context.Context, userID int64) (*Dashboard, error) {
	d := &Dashboard{UserID: userID}

	var average float64
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.friends.CountPending(gctx, userID)
		if err != nil {
			return fmt.Errorf("count pending requests of user %d: %w", userID, err)
		}
		d.PendingFriendRequests = n
		return nil
	})
	g.Go(func() error {
		n, err := s.messages.UnreadCount(gctx, userID)
		if err != nil {
			return fmt.Errorf("count unread messages of user %d: %w", userID, err)
		}
		d.UnreadMessages = n
		return nil
	})
	g.Go(func() error {
		repos, err := s.repos.Repositories(gctx, userID)
		if err != nil {
			return fmt.Errorf("list repositories of user %d: %w", userID, err)
		}
		d.Repositories = summarize(repos)
		return nil
	})
	g.Go(func() error {
		friendIDs, err := s.friends.FriendIDs(gctx, userID)
		if err != nil {
			return fmt.Errorf("list friends of user %d: %w", userID, err)
		}
		average, err = s.compatibility.AverageCompatibility(gctx, userID, friendIDs)
		if err != nil {
			return fmt.Errorf("average compatibility of user %d: %w", userID, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	d.AverageCompatibilityToFriends = match.Round(average, 4)
	d.PercentCompatibilityToFriends = match.Round(average*100, 2)
	return d, nil
}

func summarize(repos []code.Repo) []RepoSummary {
	summaries := make([]RepoSummary, 0, len(repos))
	for _, r := range repos {
		summary := RepoSummary{ID: r.ID, Name: r.Name}
		if r.Description != nil {
			summary.Description = *r.Description
		}
		summaries = append(summaries, summary)
	}
	return summaries
}
