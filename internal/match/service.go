package match

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/ferdiebergado/devlink/internal/user"
	"golang.org/x/sync/errgroup"
)

var ErrInvalidPage = errors.New("match service: invalid page")

// Relations reports who a user is connected to.
type Relations interface {
	FriendIDs(ctx context.Context, userID int64) ([]int64, error)
	BlockedIDs(ctx context.Context, userID int64) ([]int64, error)
}

// ProfileFinder loads the profiles shown with suggestions.
type ProfileFinder interface {
	BasicProfile(ctx context.Context, userID int64) (*user.Profile, error)
}

type Service interface {
	Suggestions(ctx context.Context, userID int64, page Page) ([]Suggestion, error)
	Compatibility(ctx context.Context, userA, userB int64) (float64, error)
	AverageCompatibility(ctx context.Context, userID int64, otherIDs []int64) (float64, error)
}

type Page struct {
	Skip int
	Take int
}

type Suggestion struct {
	Score   float64
	Profile *user.Profile
}

type service struct {
	repo      Repository
	relations Relations
	profiles  ProfileFinder
	workers   int
}

var _ Service = (*service)(nil)

func NewService(repo Repository, relations Relations, profiles ProfileFinder, workers int) Service {
	if workers < 1 {
		workers = 1
	}
	return &service{
		repo:      repo,
		relations: relations,
		profiles:  profiles,
		workers:   workers,
	}
}

type scored struct {
	userID int64
	score  float64
}

func (s *service) Suggestions(ctx context.Context, userID int64, page Page) ([]Suggestion, error) {
	if page.Skip < 0 || page.Take < 1 {
		return nil, fmt.Errorf("%w: skip=%d take=%d", ErrInvalidPage, page.Skip, page.Take)
	}

	self, err := s.features(ctx, userID)
	if err != nil {
		return nil, err
	}

	excluded, err := s.excluded(ctx, userID)
	if err != nil {
		return nil, err
	}

	candidates, err := s.repo.Candidates(ctx, excluded)
	if err != nil {
		return nil, fmt.Errorf("load candidates for user %d: %w", userID, err)
	}

	ranked := make([]scored, 0, len(candidates))
	for i := range candidates {
		score := Compatibility(self, &candidates[i])
		if score > 0 {
			ranked = append(ranked, scored{userID: candidates[i].UserID, score: score})
		}
	}

	slices.SortFunc(ranked, func(a, b scored) int {
		if c := cmp.Compare(b.score, a.score); c != 0 {
			return c
		}
		return cmp.Compare(a.userID, b.userID)
	})

	start := min(page.Skip, len(ranked))
	end := min(start+page.Take, len(ranked))
	return s.withProfiles(ctx, ranked[start:end])
}

// excluded returns the user itself, its friends and everyone blocked in either direction.
func (s *service) excluded(ctx context.Context, userID int64) ([]int64, error) {
	var friendIDs, blockedIDs []int64

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		friendIDs, err = s.relations.FriendIDs(gctx, userID)
		if err != nil {
			return fmt.Errorf("list friends of user %d: %w", userID, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		blockedIDs, err = s.relations.BlockedIDs(gctx, userID)
		if err != nil {
			return fmt.Errorf("list blocks of user %d: %w", userID, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	excluded := make([]int64, 0, 1+len(friendIDs)+len(blockedIDs))
	excluded = append(excluded, userID)
	excluded = append(excluded, friendIDs...)
	excluded = append(excluded, blockedIDs...)
	slices.Sort(excluded)
	return slices.Compact(excluded), nil
}

// withProfiles loads the profile of each ranked user, preserving order.
func (s *service) withProfiles(ctx context.Context, ranked []scored) ([]Suggestion, error) {
	suggestions := make([]Suggestion, len(ranked))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, r := range ranked {
		g.Go(func() error {
			profile, err := s.profiles.BasicProfile(gctx, r.userID)
			if err != nil {
				return fmt.Errorf("load profile of user %d: %w", r.userID, err)
			}
			suggestions[i] = Suggestion{Score: r.score, Profile: profile}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return suggestions, nil
}

func (s *service) Compatibility(ctx context.Context, userA, userB int64) (float64, error) {
	features, err := s.repo.Features(ctx, []int64{userA, userB})
	if err != nil {
		return 0, fmt.Errorf("load features of users %d and %d: %w", userA, userB, err)
	}

	a, err := find(features, userA)
	if err != nil {
		return 0, err
	}

	b, err := find(features, userB)
	if err != nil {
		return 0, err
	}

	return Compatibility(a, b), nil
}

// AverageCompatibility averages the scores between userID and each of otherIDs.
// It is 0 when otherIDs is empty.
func (s *service) AverageCompatibility(ctx context.Context, userID int64, otherIDs []int64) (float64, error) {
	if len(otherIDs) == 0 {
		return 0, nil
	}

	ids := append([]int64{userID}, otherIDs...)
	features, err := s.repo.Features(ctx, ids)
	if err != nil {
		return 0, fmt.Errorf("load features of user %d and %d others: %w", userID, len(otherIDs), err)
	}

	self, err := find(features, userID)
	if err != nil {
		return 0, err
	}

	var (
		sum   float64
		count int
	)
	for i := range features {
		if features[i].UserID == userID {
			continue
		}
		sum += Compatibility(self, &features[i])
		count++
	}

	if count == 0 {
		return 0, nil
	}
	return sum / float64(count), nil
}

func (s *service) features(ctx context.Context, userID int64) (*Features, error) {
	features, err := s.repo.Features(ctx, []int64{userID})
	if err != nil {
		return nil, fmt.Errorf("load features of user %d: %w", userID, err)
	}
	return find(features, userID)
}

func find(features []Features, userID int64) (*Features, error) {
	for i := range features {
		if features[i].UserID == userID {
			return &features[i], nil
		}
	}
	return nil, fmt.Errorf("features of user %d: %w", userID, user.ErrNotFound)
}
