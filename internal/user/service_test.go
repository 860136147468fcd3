package user_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ferdiebergado/devlink/internal/model"
	"github.com/ferdiebergado/devlink/internal/platform/db"
	"github.com/ferdiebergado/devlink/internal/user"
	"github.com/google/go-cmp/cmp"
)

func activeUser(id int64) *user.User {
	return &user.User{Model: model.Model{ID: id}, Nick: "dev", IsActive: true}
}

func TestService_Profile(t *testing.T) {
	t.Parallel()

	categories := []user.Category{{ID: 1, Name: "Backend", Type: "Technology"}}
	skills := []user.UserSkill{{Skill: user.Skill{ID: 2, Name: "Go", Category: "Language"}, Level: user.Expert}}
	interests := []user.Interest{{ID: 3, Name: "Distributed systems"}}

	tests := []struct {
		name     string
		findFunc func(ctx context.Context, userID int64) (*user.User, error)
		want     *user.Profile
		err      error
	}{
		{"Active user",
			func(_ context.Context, userID int64) (*user.User, error) {
				return activeUser(userID), nil
			},
			&user.Profile{User: *activeUser(1), Skills: skills, Interests: interests, Categories: categories},
			nil,
		},
		{"Inactive user",
			func(_ context.Context, userID int64) (*user.User, error) {
				u := activeUser(userID)
				u.IsActive = false
				return u, nil
			},
			nil,
			user.ErrNotFound,
		},
		{"Missing user",
			func(_ context.Context, _ int64) (*user.User, error) {
				return nil, user.ErrNotFound
			},
			nil,
			user.ErrNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := &user.StubRepo{
				FindFunc: tt.findFunc,
				ListUserSkillsFunc: func(_ context.Context, _ int64) ([]user.UserSkill, error) {
					return skills, nil
				},
				ListUserInterestsFunc: func(_ context.Context, _ int64) ([]user.Interest, error) {
					return interests, nil
				},
				ListCategoriesFunc: func(_ context.Context) ([]user.Category, error) {
					return categories, nil
				},
			}
			svc := user.NewService(repo, &db.StubTxManager{RunInTxFunc: db.PassthroughTx})

			got, err := svc.Profile(context.Background(), 1)
			if !errors.Is(err, tt.err) {
				t.Fatalf("svc.Profile(ctx, 1) = %v, want: %v", err, tt.err)
			}

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("svc.Profile(ctx, 1) mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestService_AddSkill(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		level     string
		skillErr  error
		addErr    error
		wantLevel user.SkillLevel
		err       error
	}{
		{"Named level", "advanced", nil, nil, user.Advanced, nil},
		{"Unknown level defaults to beginner", "wizard", nil, nil, user.Beginner, nil},
		{"Unknown skill", "Expert", user.ErrSkillNotFound, nil, 0, user.ErrSkillNotFound},
		{"Skill already added", "Expert", nil, user.ErrSkillExists, user.Expert, user.ErrSkillExists},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var gotLevel user.SkillLevel
			repo := &user.StubRepo{
				FindFunc: func(_ context.Context, userID int64) (*user.User, error) {
					return activeUser(userID), nil
				},
				FindSkillFunc: func(_ context.Context, skillID int64) (*user.Skill, error) {
					if tt.skillErr != nil {
						return nil, tt.skillErr
					}
					return &user.Skill{ID: skillID, Name: "Go"}, nil
				},
				AddSkillFunc: func(_ context.Context, _, _ int64, level user.SkillLevel) error {
					gotLevel = level
					return tt.addErr
				},
			}
			svc := user.NewService(repo, &db.StubTxManager{})

			err := svc.AddSkill(context.Background(), 1, user.AddSkillParams{SkillID: 5, Level: tt.level})
			if !errors.Is(err, tt.err) {
				t.Fatalf("svc.AddSkill() = %v, want: %v", err, tt.err)
			}

			if gotLevel != tt.wantLevel {
				t.Errorf("level = %v, want: %v", gotLevel, tt.wantLevel)
			}
		})
	}
}

func TestService_SetInterests(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		ids     []int64
		known   int
		wantIDs []int64
		err     error
	}{
		{"Duplicates removed", []int64{3, 1, 3, 2}, 3, []int64{1, 2, 3}, nil},
		{"Empty set clears interests", []int64{}, 0, []int64{}, nil},
		{"Unknown interest", []int64{1, 99}, 1, nil, user.ErrUnknownInterest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var (
				replaced []int64
				inTx     bool
			)
			repo := &user.StubRepo{
				CountInterestsFunc: func(_ context.Context, _ []int64) (int, error) {
					return tt.known, nil
				},
				ReplaceInterestsFunc: func(_ context.Context, _ int64, ids []int64) error {
					replaced = ids
					return nil
				},
				ListUserInterestsFunc: func(_ context.Context, _ int64) ([]user.Interest, error) {
					interests := make([]user.Interest, 0, len(replaced))
					for _, id := range replaced {
						interests = append(interests, user.Interest{ID: id})
					}
					return interests, nil
				},
			}
			txMgr := &db.StubTxManager{
				RunInTxFunc: func(ctx context.Context, fn func(ctx context.Context) error) error {
					inTx = true
					return fn(ctx)
				},
			}
			svc := user.NewService(repo, txMgr)

			_, err := svc.SetInterests(context.Background(), 1, tt.ids)
			if !errors.Is(err, tt.err) {
				t.Fatalf("svc.SetInterests() = %v, want: %v", err, tt.err)
			}

			if !inTx {
				t.Error("SetInterests did not run in a transaction")
			}

			if diff := cmp.Diff(tt.wantIDs, replaced); diff != "" {
				t.Errorf("replaced ids mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestService_UploadPhoto(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		contentType string
		err         error
	}{
		{"PNG accepted", "image/png", nil},
		{"WEBP accepted", "image/webp", nil},
		{"GIF rejected", "image/gif", user.ErrUnsupportedPhotoType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			saved := false
			repo := &user.StubRepo{
				SavePhotoFunc: func(_ context.Context, _ *user.Photo) error {
					saved = true
					return nil
				},
			}
			svc := user.NewService(repo, &db.StubTxManager{})

			photo := &user.Photo{UserID: 1, ContentType: tt.contentType, Data: []byte{1, 2, 3}}
			err := svc.UploadPhoto(context.Background(), photo)
			if !errors.Is(err, tt.err) {
				t.Fatalf("svc.UploadPhoto() = %v, want: %v", err, tt.err)
			}

			if wantSaved := tt.err == nil; saved != wantSaved {
				t.Errorf("saved = %t, want: %t", saved, wantSaved)
			}
		})
	}
}

func TestService_SearchSkipsInactive(t *testing.T) {
	t.Parallel()

	users := map[int64]*user.User{1: activeUser(1), 2: {Model: model.Model{ID: 2}}}
	repo := &user.StubRepo{
		SearchFunc: func(_ context.Context, params user.SearchParams, limit int) ([]user.User, error) {
			if params.Skill != "go" {
				t.Errorf("params.Skill = %q, want: %q", params.Skill, "go")
			}
			if limit != 50 {
				t.Errorf("limit = %d, want: %d", limit, 50)
			}
			return []user.User{*users[1], *users[2]}, nil
		},
		FindFunc: func(_ context.Context, userID int64) (*user.User, error) {
			return users[userID], nil
		},
		ListUserSkillsFunc: func(_ context.Context, _ int64) ([]user.UserSkill, error) {
			return nil, nil
		},
		ListUserInterestsFunc: func(_ context.Context, _ int64) ([]user.Interest, error) {
			return nil, nil
		},
	}
	svc := user.NewService(repo, &db.StubTxManager{})

	profiles, err := svc.Search(context.Background(), user.SearchParams{Skill: "go"})
	if err != nil {
		t.Fatalf("svc.Search() = %v", err)
	}

	if len(profiles) != 1 || profiles[0].ID != 1 {
		t.Errorf("svc.Search() = %+v, want only user 1", profiles)
	}

	for _, p := range profiles {
		if p.Categories != nil {
			t.Errorf("profile %d has categories, want none", p.ID)
		}
	}
}
