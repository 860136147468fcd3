package user

import (
	"context"
	"errors"
)

type StubRepo struct {
	CreateFunc            func(ctx context.Context, params CreateParams) (*User, error)
	FindFunc              func(ctx context.Context, userID int64) (*User, error)
	FindByEmailFunc       func(ctx context.Context, email string) (*User, error)
	UpdateFunc            func(ctx context.Context, userID int64, params UpdateParams) error
	SearchFunc            func(ctx context.Context, params SearchParams, limit int) ([]User, error)
	FindSkillFunc         func(ctx context.Context, skillID int64) (*Skill, error)
	ListUserSkillsFunc    func(ctx context.Context, userID int64) ([]UserSkill, error)
	AddSkillFunc          func(ctx context.Context, userID, skillID int64, level SkillLevel) error
	RemoveSkillFunc       func(ctx context.Context, userID, skillID int64) error
	ListUserInterestsFunc func(ctx context.Context, userID int64) ([]Interest, error)
	CountInterestsFunc    func(ctx context.Context, interestIDs []int64) (int, error)
	ReplaceInterestsFunc  func(ctx context.Context, userID int64, interestIDs []int64) error
	SavePhotoFunc         func(ctx context.Context, photo *Photo) error
	FindPhotoFunc         func(ctx context.Context, userID int64) (*Photo, error)
	ListSkillsFunc        func(ctx context.Context) ([]Skill, error)
	ListInterestsFunc     func(ctx context.Context) ([]Interest, error)
	ListCategoriesFunc    func(ctx context.Context) ([]Category, error)
}

var _ Repository = (*StubRepo)(nil)

func (r *StubRepo) Create(ctx context.Context, params CreateParams) (*User, error) {
	if r.CreateFunc == nil {
		return nil, errors.New("Create not implemented by stub")
	}
	return r.CreateFunc(ctx, params)
}

func (r *StubRepo) Find(ctx context.Context, userID int64) (*User, error) {
	if r.FindFunc == nil {
		return nil, errors.New("Find not implemented by stub")
	}
	return r.FindFunc(ctx, userID)
}

func (r *StubRepo) FindByEmail(ctx context.Context, email string) (*User, error) {
	if r.FindByEmailFunc == nil {
		return nil, errors.New("FindByEmail not implemented by stub")
	}
	return r.FindByEmailFunc(ctx, email)
}

func (r *StubRepo) Update(ctx context.Context, userID int64, params UpdateParams) error {
	if r.UpdateFunc == nil {
		return errors.New("Update not implemented by stub")
	}
	return r.UpdateFunc(ctx, userID, params)
}

func (r *StubRepo) Search(ctx context.Context, params SearchParams, limit int) ([]User, error) {
	if r.SearchFunc == nil {
		return nil, errors.New("Search not implemented by stub")
	}
	return r.SearchFunc(ctx, params, limit)
}

func (r *StubRepo) FindSkill(ctx context.Context, skillID int64) (*Skill, error) {
	if r.FindSkillFunc == nil {
		return nil, errors.New("FindSkill not implemented by stub")
	}
	return r.FindSkillFunc(ctx, skillID)
}

func (r *StubRepo) ListUserSkills(ctx context.Context, userID int64) ([]UserSkill, error) {
	if r.ListUserSkillsFunc == nil {
		return nil, errors.New("ListUserSkills not implemented by stub")
	}
	return r.ListUserSkillsFunc(ctx, userID)
}

func (r *StubRepo) AddSkill(ctx context.Context, userID, skillID int64, level SkillLevel) error {
	if r.AddSkillFunc == nil {
		return errors.New("AddSkill not implemented by stub")
	}
	return r.AddSkillFunc(ctx, userID, skillID, level)
}

func (r *StubRepo) RemoveSkill(ctx context.Context, userID, skillID int64) error {
	if r.RemoveSkillFunc == nil {
		return errors.New("RemoveSkill not implemented by stub")
	}
	return r.RemoveSkillFunc(ctx, userID, skillID)
}

func (r *StubRepo) ListUserInterests(ctx context.Context, userID int64) ([]Interest, error) {
	if r.ListUserInterestsFunc == nil {
		return nil, errors.New("ListUserInterests not implemented by stub")
	}
	return r.ListUserInterestsFunc(ctx, userID)
}

func (r *StubRepo) CountInterests(ctx context.Context, interestIDs []int64) (int, error) {
	if r.CountInterestsFunc == nil {
		return 0, errors.New("CountInterests not implemented by stub")
	}
	return r.CountInterestsFunc(ctx, interestIDs)
}

func (r *StubRepo) ReplaceInterests(ctx context.Context, userID int64, interestIDs []int64) error {
	if r.ReplaceInterestsFunc == nil {
		return errors.New("ReplaceInterests not implemented by stub")
	}
	return r.ReplaceInterestsFunc(ctx, userID, interestIDs)
}

func (r *StubRepo) SavePhoto(ctx context.Context, photo *Photo) error {
	if r.SavePhotoFunc == nil {
		return errors.New("SavePhoto not implemented by stub")
	}
	return r.SavePhotoFunc(ctx, photo)
}

func (r *StubRepo) FindPhoto(ctx context.Context, userID int64) (*Photo, error) {
	if r.FindPhotoFunc == nil {
		return nil, errors.New("FindPhoto not implemented by stub")
	}
	return r.FindPhotoFunc(ctx, userID)
}

func (r *StubRepo) ListSkills(ctx context.Context) ([]Skill, error) {
	if r.ListSkillsFunc == nil {
		return nil, errors.New("ListSkills not implemented by stub")
	}
	return r.ListSkillsFunc(ctx)
}

func (r *StubRepo) ListInterests(ctx context.Context) ([]Interest, error) {
	if r.ListInterestsFunc == nil {
		return nil, errors.New("ListInterests not implemented by stub")
	}
	return r.ListInterestsFunc(ctx)
}

func (r *StubRepo) ListCategories(ctx context.Context) ([]Category, error) {
	if r.ListCategoriesFunc == nil {
		return nil, errors.New("ListCategories not implemented by stub")
	}
	return r.ListCategoriesFunc(ctx)
}

type StubService struct {
	CreateFunc       func(ctx context.Context, params CreateParams) (*User, error)
	FindFunc         func(ctx context.Context, userID int64) (*User, error)
	FindByEmailFunc  func(ctx context.Context, email string) (*User, error)
	ProfileFunc      func(ctx context.Context, userID int64) (*Profile, error)
	BasicProfileFunc func(ctx context.Context, userID int64) (*Profile, error)
	UpdateFunc       func(ctx context.Context, userID int64, params UpdateParams) (*Profile, error)
	SearchFunc       func(ctx context.Context, params SearchParams) ([]Profile, error)
	AddSkillFunc     func(ctx context.Context, userID int64, params AddSkillParams) error
	RemoveSkillFunc  func(ctx context.Context, userID, skillID int64) error
	SetInterestsFunc func(ctx context.Context, userID int64, interestIDs []int64) ([]Interest, error)
	UploadPhotoFunc  func(ctx context.Context, photo *Photo) error
	PhotoFunc        func(ctx context.Context, userID int64) (*Photo, error)
	SkillsFunc       func(ctx context.Context) ([]Skill, error)
	InterestsFunc    func(ctx context.Context) ([]Interest, error)
	CategoriesFunc   func(ctx context.Context) ([]Category, error)
}

var _ Service = (*StubService)(nil)

func (s *StubService) Create(ctx context.Context, params CreateParams) (*User, error) {
	if s.CreateFunc == nil {
		return nil, errors.New("Create not implemented by stub")
	}
	return s.CreateFunc(ctx, params)
}

func (s *StubService) Find(ctx context.Context, userID int64) (*User, error) {
	if s.FindFunc == nil {
		return nil, errors.New("Find not implemented by stub")
	}
	return s.FindFunc(ctx, userID)
}

func (s *StubService) FindByEmail(ctx context.Context, email string) (*User, error) {
	if s.FindByEmailFunc == nil {
		return nil, errors.New("FindByEmail not implemented by stub")
	}
	return s.FindByEmailFunc(ctx, email)
}

func (s *StubService) Profile(ctx context.Context, userID int64) (*Profile, error) {
	if s.ProfileFunc == nil {
		return nil, errors.New("Profile not implemented by stub")
	}
	return s.ProfileFunc(ctx, userID)
}

func (s *StubService) BasicProfile(ctx context.Context, userID int64) (*Profile, error) {
	if s.BasicProfileFunc == nil {
		return nil, errors.New("BasicProfile not implemented by stub")
	}
	return s.BasicProfileFunc(ctx, userID)
}

func (s *StubService) Update(ctx context.Context, userID int64, params UpdateParams) (*Profile, error) {
	if s.UpdateFunc == nil {
		return nil, errors.New("Update not implemented by stub")
	}
	return s.UpdateFunc(ctx, userID, params)
}

func (s *StubService) Search(ctx context.Context, params SearchParams) ([]Profile, error) {
	if s.SearchFunc == nil {
		return nil, errors.New("Search not implemented by stub")
	}
	return s.SearchFunc(ctx, params)
}

func (s *StubService) AddSkill(ctx context.Context, userID int64, params AddSkillParams) error {
	if s.AddSkillFunc == nil {
		return errors.New("AddSkill not implemented by stub")
	}
	return s.AddSkillFunc(ctx, userID, params)
}

func (s *StubService) RemoveSkill(ctx context.Context, userID, skillID int64) error {
	if s.RemoveSkillFunc == nil {
		return errors.New("RemoveSkill not implemented by stub")
	}
	return s.RemoveSkillFunc(ctx, userID, skillID)
}

func (s *StubService) SetInterests(ctx context.Context, userID int64, interestIDs []int64) ([]Interest, error) {
	if s.SetInterestsFunc == nil {
		return nil, errors.New("SetInterests not implemented by stub")
	}
	return s.SetInterestsFunc(ctx, userID, interestIDs)
}

func (s *StubService) UploadPhoto(ctx context.Context, photo *Photo) error {
	if s.UploadPhotoFunc == nil {
		return errors.New("UploadPhoto not implemented by stub")
	}
	return s.UploadPhotoFunc(ctx, photo)
}

func (s *StubService) Photo(ctx context.Context, userID int64) (*Photo, error) {
	if s.PhotoFunc == nil {
		return nil, errors.New("Photo not implemented by stub")
	}
	return s.PhotoFunc(ctx, userID)
}

func (s *StubService) Skills(ctx context.Context) ([]Skill, error) {
	if s.SkillsFunc == nil {
		return nil, errors.New("Skills not implemented by stub")
	}
	return s.SkillsFunc(ctx)
}

func (s *StubService) Interests(ctx context.Context) ([]Interest, error) {
	if s.InterestsFunc == nil {
		return nil, errors.New("Interests not implemented by stub")
	}
	return s.InterestsFunc(ctx)
}

func (s *StubService) Categories(ctx context.Context) ([]Category, error) {
	if s.CategoriesFunc == nil {
		return nil, errors.New("Categories not implemented by stub")
	}
	return s.CategoriesFunc(ctx)
}
