package match

import (
	"context"
	"errors"
)

type StubRepo struct {
	FeaturesFunc   func(ctx context.Context, userIDs []int64) ([]Features, error)
	CandidatesFunc func(ctx context.Context, excluded []int64) ([]Features, error)
}

var _ Repository = (*StubRepo)(nil)

func (r *StubRepo) Features(ctx context.Context, userIDs []int64) ([]Features, error) {
	if r.FeaturesFunc == nil {
		return nil, errors.New("Features not implemented by stub")
	}
	return r.FeaturesFunc(ctx, userIDs)
}

func (r *StubRepo) Candidates(ctx context.Context, excluded []int64) ([]Features, error) {
	if r.CandidatesFunc == nil {
		return nil, errors.New("Candidates not implemented by stub")
	}
	return r.CandidatesFunc(ctx, excluded)
}

type StubService struct {
	SuggestionsFunc          func(ctx context.Context, userID int64, page Page) ([]Suggestion, error)
	CompatibilityFunc        func(ctx context.Context, userA, userB int64) (float64, error)
	AverageCompatibilityFunc func(ctx context.Context, userID int64, otherIDs []int64) (float64, error)
}

var _ Service = (*StubService)(nil)

func (s *StubService) Suggestions(ctx context.Context, userID int64, page Page) ([]Suggestion, error) {
	if s.SuggestionsFunc == nil {
		return nil, errors.New("Suggestions not implemented by stub")
	}
	return s.SuggestionsFunc(ctx, userID, page)
}

func (s *StubService) Compatibility(ctx context.Context, userA, userB int64) (float64, error) {
	if s.CompatibilityFunc == nil {
		return 0, errors.New("Compatibility not implemented by stub")
	}
	return s.CompatibilityFunc(ctx, userA, userB)
}

func (s *StubService) AverageCompatibility(ctx context.Context, userID int64, otherIDs []int64) (float64, error) {
	if s.AverageCompatibilityFunc == nil {
		return 0, errors.New("AverageCompatibility not implemented by stub")
	}
	return s.AverageCompatibilityFunc(ctx, userID, otherIDs)
}
