package user

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/ferdiebergado/devlink/internal/platform/db"
)

const searchLimit = 50

var ErrUnsupportedPhotoType = errors.New("user service: unsupported photo type")

// AllowedPhotoTypes lists the accepted profile photo content types.
var AllowedPhotoTypes = []string{"image/jpeg", "image/jpg", "image/png", "image/webp"}

type Service interface {
	Create(ctx context.Context, params CreateParams) (*User, error)
	Find(ctx context.Context, userID int64) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	Profile(ctx context.Context, userID int64) (*Profile, error)
	BasicProfile(ctx context.Context, userID int64) (*Profile, error)
	Update(ctx context.Context, userID int64, params UpdateParams) (*Profile, error)
	Search(ctx context.Context, params SearchParams) ([]Profile, error)

	AddSkill(ctx context.Context, userID int64, params AddSkillParams) error
	RemoveSkill(ctx context.Context, userID, skillID int64) error
	SetInterests(ctx context.Context, userID int64, interestIDs []int64) ([]Interest, error)

	UploadPhoto(ctx context.Context, photo *Photo) error
	Photo(ctx context.Context, userID int64) (*Photo, error)

	Skills(ctx context.Context) ([]Skill, error)
	Interests(ctx context.Context) ([]Interest, error)
	Categories(ctx context.Context) ([]Category, error)
}

type AddSkillParams struct {
	SkillID int64
	Level   string
}

type service struct {
	repo  Repository
	txMgr db.TxManager
}

var _ Service = (*service)(nil)

func NewService(repo Repository, txMgr db.TxManager) Service {
	return &service{
		repo:  repo,
		txMgr: txMgr,
	}
}

func (s *service) Create(ctx context.Context, params CreateParams) (*User, error) {
	u, err := s.repo.Create(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("create user %s: %w", params.Email, err)
	}
	return u, nil
}

func (s *service) Find(ctx context.Context, userID int64) (*User, error) {
	u, err := s.repo.Find(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user %d: %w", userID, err)
	}
	return u, nil
}

func (s *service) FindByEmail(ctx context.Context, email string) (*User, error) {
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return u, nil
}

func (s *service) Profile(ctx context.Context, userID int64) (*Profile, error) {
	profile, err := s.profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	profile.Categories = categories

	return profile, nil
}

// BasicProfile returns an active user with its skills and interests, without the category catalog.
func (s *service) BasicProfile(ctx context.Context, userID int64) (*Profile, error) {
	return s.profile(ctx, userID)
}

func (s *service) profile(ctx context.Context, userID int64) (*Profile, error) {
	u, err := s.repo.Find(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user %d: %w", userID, err)
	}

	if !u.IsActive {
		return nil, fmt.Errorf("user %d is inactive: %w", userID, ErrNotFound)
	}

	skills, err := s.repo.ListUserSkills(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list skills of user %d: %w", userID, err)
	}

	interests, err := s.repo.ListUserInterests(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list interests of user %d: %w", userID, err)
	}

	return &Profile{User: *u, Skills: skills, Interests: interests}, nil
}

func (s *service) Update(ctx context.Context, userID int64, params UpdateParams) (*Profile, error) {
	if err := s.repo.Update(ctx, userID, params); err != nil {
		return nil, fmt.Errorf("update user %d: %w", userID, err)
	}
	return s.Profile(ctx, userID)
}

// Search returns the active users matching every non-empty filter, without the category catalog.
func (s *service) Search(ctx context.Context, params SearchParams) ([]Profile, error) {
	users, err := s.repo.Search(ctx, params, searchLimit)
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}

	profiles := make([]Profile, 0, len(users))
	for _, u := range users {
		p, err := s.profile(ctx, u.ID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return nil, err
		}
		profiles = append(profiles, *p)
	}
	return profiles, nil
}

func (s *service) AddSkill(ctx context.Context, userID int64, params AddSkillParams) error {
	if _, err := s.repo.Find(ctx, userID); err != nil {
		return fmt.Errorf("find user %d: %w", userID, err)
	}

	if _, err := s.repo.FindSkill(ctx, params.SkillID); err != nil {
		return fmt.Errorf("find skill %d: %w", params.SkillID, err)
	}

	level := ParseSkillLevel(params.Level)
	if err := s.repo.AddSkill(ctx, userID, params.SkillID, level); err != nil {
		return fmt.Errorf("add skill %d to user %d: %w", params.SkillID, userID, err)
	}
	return nil
}

func (s *service) RemoveSkill(ctx context.Context, userID, skillID int64) error {
	if err := s.repo.RemoveSkill(ctx, userID, skillID); err != nil {
		return fmt.Errorf("remove skill %d from user %d: %w", skillID, userID, err)
	}
	return nil
}

func (s *service) SetInterests(ctx context.Context, userID int64, interestIDs []int64) ([]Interest, error) {
	ids := slices.Clone(interestIDs)
	slices.Sort(ids)
	ids = slices.Compact(ids)

	var interests []Interest
	err := s.txMgr.RunInTx(ctx, func(txCtx context.Context) error {
		if len(ids) > 0 {
			n, err := s.repo.CountInterests(txCtx, ids)
			if err != nil {
				return err
			}
			if n != len(ids) {
				return ErrUnknownInterest
			}
		}

		if err := s.repo.ReplaceInterests(txCtx, userID, ids); err != nil {
			return err
		}

		var err error
		interests, err = s.repo.ListUserInterests(txCtx, userID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("set interests of user %d: %w", userID, err)
	}

	return interests, nil
}

func (s *service) UploadPhoto(ctx context.Context, photo *Photo) error {
	if !slices.Contains(AllowedPhotoTypes, photo.ContentType) {
		return fmt.Errorf("%w: %q", ErrUnsupportedPhotoType, photo.ContentType)
	}

	if err := s.repo.SavePhoto(ctx, photo); err != nil {
		return fmt.Errorf("save photo of user %d: %w", photo.UserID, err)
	}
	return nil
}

func (s *service) Photo(ctx context.Context, userID int64) (*Photo, error) {
	p, err := s.repo.FindPhoto(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find photo of user %d: %w", userID, err)
	}
	return p, nil
}

func (s *service) Skills(ctx context.Context) ([]Skill, error) {
	return s.repo.ListSkills(ctx)
}

func (s *service) Interests(ctx context.Context) ([]Interest, error) {
	return s.repo.ListInterests(ctx)
}

func (s *service) Categories(ctx context.Context) ([]Category, error) {
	return s.repo.ListCategories(ctx)
}
