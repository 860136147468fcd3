package code

import (
	"context"
	"errors"
)

type StubRepo struct {
	CreateRepositoryFunc     func(ctx context.Context, ownerID int64, params CreateRepositoryParams) (*Repo, error)
	FindRepositoryFunc       func(ctx context.Context, repoID int64) (*Repo, error)
	SnippetsRepositoryFunc   func(ctx context.Context, ownerID int64, params CreateRepositoryParams) (*Repo, error)
	ListRepositoriesFunc     func(ctx context.Context, ownerID int64) ([]Repo, error)
	DeleteRepositoryFunc     func(ctx context.Context, repoID int64) error
	RecomputeMetadataFunc    func(ctx context.Context, repoID int64) error
	CreateEntryFunc          func(ctx context.Context, entry *Entry) (*Entry, error)
	FindEntryFunc            func(ctx context.Context, entryID int64) (*Entry, error)
	ListChildrenFunc         func(ctx context.Context, repoID, parentID int64) ([]Entry, error)
	ListSubtreeFunc          func(ctx context.Context, repoID int64, rootID *int64) ([]Entry, error)
	UpdateContentFunc        func(ctx context.Context, entry *Entry) error
	DeleteEntryFunc          func(ctx context.Context, entryID int64) error
}

var _ Repository = (*StubRepo)(nil)

func (r *StubRepo) CreateRepository(ctx context.Context, ownerID int64, params CreateRepositoryParams) (*Repo, error) {
	if r.CreateRepositoryFunc == nil {
		return nil, errors.New("CreateRepository not implemented by stub")
	}
	return r.CreateRepositoryFunc(ctx, ownerID, params)
}

func (r *StubRepo) FindRepository(ctx context.Context, repoID int64) (*Repo, error) {
	if r.FindRepositoryFunc == nil {
		return nil, errors.New("FindRepository not implemented by stub")
	}
	return r.FindRepositoryFunc(ctx, repoID)
}

func (r *StubRepo) SnippetsRepository(ctx context.Context, ownerID int64, params CreateRepositoryParams) (*Repo, error) {
	if r.SnippetsRepositoryFunc == nil {
		return nil, errors.New("SnippetsRepository not implemented by stub")
	}
	return r.SnippetsRepositoryFunc(ctx, ownerID, params)
}

func (r *StubRepo) ListRepositories(ctx context.Context, ownerID int64) ([]Repo, error) {
	if r.ListRepositoriesFunc == nil {
		return nil, errors.New("ListRepositories not implemented by stub")
	}
	return r.ListRepositoriesFunc(ctx, ownerID)
}

func (r *StubRepo) DeleteRepository(ctx context.Context, repoID int64) error {
	if r.DeleteRepositoryFunc == nil {
		return errors.New("DeleteRepository not implemented by stub")
	}
	return r.DeleteRepositoryFunc(ctx, repoID)
}

func (r *StubRepo) RecomputeMetadata(ctx context.Context, repoID int64) error {
	if r.RecomputeMetadataFunc == nil {
		return errors.New("RecomputeMetadata not implemented by stub")
	}
	return r.RecomputeMetadataFunc(ctx, repoID)
}

func (r *StubRepo) CreateEntry(ctx context.Context, entry *Entry) (*Entry, error) {
	if r.CreateEntryFunc == nil {
		return nil, errors.New("CreateEntry not implemented by stub")
	}
	return r.CreateEntryFunc(ctx, entry)
}

func (r *StubRepo) FindEntry(ctx context.Context, entryID int64) (*Entry, error) {
	if r.FindEntryFunc == nil {
		return nil, errors.New("FindEntry not implemented by stub")
	}
	return r.FindEntryFunc(ctx, entryID)
}

func (r *StubRepo) ListChildren(ctx context.Context, repoID, parentID int64) ([]Entry, error) {
	if r.ListChildrenFunc == nil {
		return nil, errors.New("ListChildren not implemented by stub")
	}
	return r.ListChildrenFunc(ctx, repoID, parentID)
}

func (r *StubRepo) ListSubtree(ctx context.Context, repoID int64, rootID *int64) ([]Entry, error) {
	if r.ListSubtreeFunc == nil {
		return nil, errors.New("ListSubtree not implemented by stub")
	}
	return r.ListSubtreeFunc(ctx, repoID, rootID)
}

func (r *StubRepo) UpdateContent(ctx context.Context, entry *Entry) error {
	if r.UpdateContentFunc == nil {
		return errors.New("UpdateContent not implemented by stub")
	}
	return r.UpdateContentFunc(ctx, entry)
}

func (r *StubRepo) DeleteEntry(ctx context.Context, entryID int64) error {
	if r.DeleteEntryFunc == nil {
		return errors.New("DeleteEntry not implemented by stub")
	}
	return r.DeleteEntryFunc(ctx, entryID)
}


type StubService struct {
	CreateRepositoryFunc  func(ctx context.Context, userID int64, params CreateRepositoryParams) (*Repo, error)
	RepositoryFunc        func(ctx context.Context, userID, repoID int64) (*Repo, error)
	RepositoriesFunc      func(ctx context.Context, userID int64) ([]Repo, error)
	DeleteRepositoryFunc  func(ctx context.Context, userID, repoID int64) error
	CreateFolderFunc      func(ctx context.Context, userID int64, params CreateFolderParams) (*Entry, error)
	FolderFunc            func(ctx context.Context, userID, folderID int64) (*Node, error)
	DeleteFolderFunc      func(ctx context.Context, userID, folderID int64) error
	CreateFileFunc        func(ctx context.Context, userID int64, params CreateFileParams) (*Entry, error)
	FileFunc              func(ctx context.Context, userID, fileID int64) (*Entry, error)
	UpdateFileContentFunc func(ctx context.Context, userID, fileID int64, content string) (*Entry, error)
	DeleteFileFunc        func(ctx context.Context, userID, fileID int64) error
	TreeFunc              func(ctx context.Context, userID, repoID int64, folderID *int64) ([]*Node, error)
	CreateSnippetFunc     func(ctx context.Context, userID int64, params CreateSnippetParams) (*Entry, error)
	SnippetFunc           func(ctx context.Context, userID, snippetID int64) (*Entry, error)
}

var _ Service = (*StubService)(nil)

func (s *StubService) CreateRepository(ctx context.Context, userID int64, params CreateRepositoryParams) (*Repo, error) {
	if s.CreateRepositoryFunc == nil {
		return nil, errors.New("CreateRepository not implemented by stub")
	}
	return s.CreateRepositoryFunc(ctx, userID, params)
}

func (s *StubService) Repository(ctx context.Context, userID, repoID int64) (*Repo, error) {
	if s.RepositoryFunc == nil {
		return nil, errors.New("Repository not implemented by stub")
	}
	return s.RepositoryFunc(ctx, userID, repoID)
}

func (s *StubService) Repositories(ctx context.Context, userID int64) ([]Repo, error) {
	if s.RepositoriesFunc == nil {
		return nil, errors.New("Repositories not implemented by stub")
	}
	return s.RepositoriesFunc(ctx, userID)
}

func (s *StubService) DeleteRepository(ctx context.Context, userID, repoID int64) error {
	if s.DeleteRepositoryFunc == nil {
		return errors.New("DeleteRepository not implemented by stub")
	}
	return s.DeleteRepositoryFunc(ctx, userID, repoID)
}

func (s *StubService) CreateFolder(ctx context.Context, userID int64, params CreateFolderParams) (*Entry, error) {
	if s.CreateFolderFunc == nil {
		return nil, errors.New("CreateFolder not implemented by stub")
	}
	return s.CreateFolderFunc(ctx, userID, params)
}

func (s *StubService) Folder(ctx context.Context, userID, folderID int64) (*Node, error) {
	if s.FolderFunc == nil {
		return nil, errors.New("Folder not implemented by stub")
	}
	return s.FolderFunc(ctx, userID, folderID)
}

func (s *StubService) DeleteFolder(ctx context.Context, userID, folderID int64) error {
	if s.DeleteFolderFunc == nil {
		return errors.New("DeleteFolder not implemented by stub")
	}
	return s.DeleteFolderFunc(ctx, userID, folderID)
}

func (s *StubService) CreateFile(ctx context.Context, userID int64, params CreateFileParams) (*Entry, error) {
	if s.CreateFileFunc == nil {
		return nil, errors.New("CreateFile not implemented by stub")
	}
	return s.CreateFileFunc(ctx, userID, params)
}

func (s *StubService) File(ctx context.Context, userID, fileID int64) (*Entry, error) {
	if s.FileFunc == nil {
		return nil, errors.New("File not implemented by stub")
	}
	return s.FileFunc(ctx, userID, fileID)
}

func (s *StubService) UpdateFileContent(ctx context.Context, userID, fileID int64, content string) (*Entry, error) {
	if s.UpdateFileContentFunc == nil {
		return nil, errors.New("UpdateFileContent not implemented by stub")
	}
	return s.UpdateFileContentFunc(ctx, userID, fileID, content)
}

func (s *StubService) DeleteFile(ctx context.Context, userID, fileID int64) error {
	if s.DeleteFileFunc == nil {
		return errors.New("DeleteFile not implemented by stub")
	}
	return s.DeleteFileFunc(ctx, userID, fileID)
}

func (s *StubService) Tree(ctx context.Context, userID, repoID int64, folderID *int64) ([]*Node, error) {
	if s.TreeFunc == nil {
		return nil, errors.New("Tree not implemented by stub")
	}
	return s.TreeFunc(ctx, userID, repoID, folderID)
}

func (s *StubService) CreateSnippet(ctx context.Context, userID int64, params CreateSnippetParams) (*Entry, error) {
	if s.CreateSnippetFunc == nil {
		return nil, errors.New("CreateSnippet not implemented by stub")
	}
	return s.CreateSnippetFunc(ctx, userID, params)
}

func (s *StubService) Snippet(ctx context.Context, userID, snippetID int64) (*Entry, error) {
	if s.SnippetFunc == nil {
		return nil, errors.New("Snippet not implemented by stub")
	}
	return s.SnippetFunc(ctx, userID, snippetID)
}

