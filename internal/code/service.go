package code

import (
	"context"
	"errors"
	"fmt"

	"github.com/ferdiebergado/devlink/internal/platform/db"
)

const (
	snippetsRepoName        = "Code Snippets"
	snippetsRepoDescription = "Personal code snippets collection"
)

var (
	ErrAccessDenied  = errors.New("code service: only the owner can change this repository")
	ErrInvalidParent = errors.New("code service: parent must be a folder in the same repository")
)

type Service interface {
	CreateRepository(ctx context.Context, userID int64, params CreateRepositoryParams) (*Repo, error)
	Repository(ctx context.Context, userID, repoID int64) (*Repo, error)
	Repositories(ctx context.Context, userID int64) ([]Repo, error)
	DeleteRepository(ctx context.Context, userID, repoID int64) error

	CreateFolder(ctx context.Context, userID int64, params CreateFolderParams) (*Entry, error)
	Folder(ctx context.Context, userID, folderID int64) (*Node, error)
	DeleteFolder(ctx context.Context, userID, folderID int64) error

	CreateFile(ctx context.Context, userID int64, params CreateFileParams) (*Entry, error)
	File(ctx context.Context, userID, fileID int64) (*Entry, error)
	UpdateFileContent(ctx context.Context, userID, fileID int64, content string) (*Entry, error)
	DeleteFile(ctx context.Context, userID, fileID int64) error

	Tree(ctx context.Context, userID, repoID int64, folderID *int64) ([]*Node, error)

	CreateSnippet(ctx context.Context, userID int64, params CreateSnippetParams) (*Entry, error)
	Snippet(ctx context.Context, userID, snippetID int64) (*Entry, error)
}

type CreateRepositoryParams struct {
	Name        string
	Description *string
	License     *string
	Visibility  Visibility
}

type CreateFolderParams struct {
	Name         string
	RepositoryID int64
	ParentID     *int64
}

type CreateFileParams struct {
	Name         string
	RepositoryID int64
	ParentID     *int64
	Extension    Extension
	Content      string
}

type CreateSnippetParams struct {
	Name      string
	Extension Extension
	Content   string
}

type service struct {
	repo  Repository
	txMgr db.TxManager
}

var _ Service = (*service)(nil)

func NewService(repo Repository, txMgr db.TxManager) Service {
	return &service{repo: repo, txMgr: txMgr}
}

// readable reports whether userID may see repo. Private repositories look missing to others.
func readable(repo *Repo, userID int64) error {
	if repo.OwnerID != userID && repo.Metadata.Visibility == Private {
		return fmt.Errorf("repository %d for user %d: %w", repo.ID, userID, ErrRepoNotFound)
	}
	return nil
}

// writable reports whether userID may change repo.
func writable(repo *Repo, userID int64) error {
	if err := readable(repo, userID); err != nil {
		return err
	}
	if repo.OwnerID != userID {
		return fmt.Errorf("repository %d for user %d: %w", repo.ID, userID, ErrAccessDenied)
	}
	return nil
}

func (s *service) CreateRepository(ctx context.Context, userID int64, params CreateRepositoryParams) (*Repo, error) {
	var repo *Repo
	err := s.txMgr.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		repo, err = s.repo.CreateRepository(txCtx, userID, params)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("create repository for user %d: %w", userID, err)
	}
	return repo, nil
}

func (s *service) Repository(ctx context.Context, userID, repoID int64) (*Repo, error) {
	repo, err := s.repo.FindRepository(ctx, repoID)
	if err != nil {
		return nil, err
	}
	if err := readable(repo, userID); err != nil {
		return nil, err
	}
	return repo, nil
}

func (s *service) Repositories(ctx context.Context, userID int64) ([]Repo, error) {
	return s.repo.ListRepositories(ctx, userID)
}

// DeleteRepository removes a repository of userID. Repositories of other users look missing.
func (s *service) DeleteRepository(ctx context.Context, userID, repoID int64) error {
	repo, err := s.repo.FindRepository(ctx, repoID)
	if err != nil {
		return err
	}
	if repo.OwnerID != userID {
		return fmt.Errorf("delete repository %d by user %d: %w", repoID, userID, ErrRepoNotFound)
	}
	return s.repo.DeleteRepository(ctx, repoID)
}

// checkParent verifies that parentID, when set, is a folder of repoID.
func (s *service) checkParent(ctx context.Context, repoID int64, parentID *int64) error {
	if parentID == nil {
		return nil
	}

	parent, err := s.repo.FindEntry(ctx, *parentID)
	if err != nil {
		if errors.Is(err, ErrEntryNotFound) {
			return fmt.Errorf("parent %d: %w", *parentID, ErrInvalidParent)
		}
		return err
	}
	if !parent.IsDirectory || parent.RepositoryID != repoID {
		return fmt.Errorf("parent %d: %w", *parentID, ErrInvalidParent)
	}
	return nil
}

// mutate runs fn in a transaction after checking that userID may write to repoID,
// then recomputes the repository metadata in the same transaction.
func (s *service) mutate(ctx context.Context, userID, repoID int64, fn func(ctx context.Context) error) error {
	return s.txMgr.RunInTx(ctx, func(txCtx context.Context) error {
		repo, err := s.repo.FindRepository(txCtx, repoID)
		if err != nil {
			return err
		}
		if err := writable(repo, userID); err != nil {
			return err
		}

		if err := fn(txCtx); err != nil {
			return err
		}
		return s.repo.RecomputeMetadata(txCtx, repoID)
	})
}

func (s *service) CreateFolder(ctx context.Context, userID int64, params CreateFolderParams) (*Entry, error) {
	var folder *Entry
	err := s.mutate(ctx, userID, params.RepositoryID, func(txCtx context.Context) error {
		if err := s.checkParent(txCtx, params.RepositoryID, params.ParentID); err != nil {
			return err
		}

		var err error
		folder, err = s.repo.CreateEntry(txCtx, &Entry{
			RepositoryID: params.RepositoryID,
			ParentID:     params.ParentID,
			Name:         params.Name,
			IsDirectory:  true,
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("create folder %q: %w", params.Name, err)
	}
	return folder, nil
}

func (s *service) CreateFile(ctx context.Context, userID int64, params CreateFileParams) (*Entry, error) {
	var file *Entry
	err := s.mutate(ctx, userID, params.RepositoryID, func(txCtx context.Context) error {
		if err := s.checkParent(txCtx, params.RepositoryID, params.ParentID); err != nil {
			return err
		}

		var err error
		file, err = s.createFile(txCtx, params)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("create file %q: %w", params.Name, err)
	}
	return file, nil
}

func (s *service) createFile(ctx context.Context, params CreateFileParams) (*Entry, error) {
	entry := &Entry{
		RepositoryID: params.RepositoryID,
		ParentID:     params.ParentID,
		Name:         params.Name,
		Extension:    params.Extension,
	}
	entry.setContent(params.Content)
	return s.repo.CreateEntry(ctx, entry)
}

// visibleEntry loads an entry of the wanted kind that userID can read.
func (s *service) visibleEntry(ctx context.Context, userID, entryID int64, directory bool) (*Entry, *Repo, error) {
	entry, err := s.repo.FindEntry(ctx, entryID)
	if err != nil {
		return nil, nil, err
	}
	if entry.IsDirectory != directory {
		return nil, nil, fmt.Errorf("entry %d kind: %w", entryID, ErrEntryNotFound)
	}

	repo, err := s.repo.FindRepository(ctx, entry.RepositoryID)
	if err != nil {
		return nil, nil, err
	}
	if err := readable(repo, userID); err != nil {
		return nil, nil, fmt.Errorf("entry %d: %w", entryID, ErrEntryNotFound)
	}
	return entry, repo, nil
}

func (s *service) Folder(ctx context.Context, userID, folderID int64) (*Node, error) {
	folder, _, err := s.visibleEntry(ctx, userID, folderID, true)
	if err != nil {
		return nil, err
	}

	children, err := s.repo.ListChildren(ctx, folder.RepositoryID, folder.ID)
	if err != nil {
		return nil, err
	}

	node := &Node{Entry: *folder, Children: make([]*Node, 0, len(children))}
	for i := range children {
		node.Children = append(node.Children, &Node{Entry: children[i], Children: []*Node{}})
	}
	return node, nil
}

func (s *service) File(ctx context.Context, userID, fileID int64) (*Entry, error) {
	file, _, err := s.visibleEntry(ctx, userID, fileID, false)
	return file, err
}

func (s *service) UpdateFileContent(ctx context.Context, userID, fileID int64, content string) (*Entry, error) {
	file, repo, err := s.visibleEntry(ctx, userID, fileID, false)
	if err != nil {
		return nil, err
	}

	file.setContent(content)
	err = s.mutate(ctx, userID, repo.ID, func(txCtx context.Context) error {
		return s.repo.UpdateContent(txCtx, file)
	})
	if err != nil {
		return nil, fmt.Errorf("update file %d: %w", fileID, err)
	}
	return file, nil
}

func (s *service) DeleteFolder(ctx context.Context, userID, folderID int64) error {
	return s.deleteEntry(ctx, userID, folderID, true)
}

func (s *service) DeleteFile(ctx context.Context, userID, fileID int64) error {
	return s.deleteEntry(ctx, userID, fileID, false)
}

func (s *service) deleteEntry(ctx context.Context, userID, entryID int64, directory bool) error {
	entry, _, err := s.visibleEntry(ctx, userID, entryID, directory)
	if err != nil {
		return err
	}

	err = s.mutate(ctx, userID, entry.RepositoryID, func(txCtx context.Context) error {
		return s.repo.DeleteEntry(txCtx, entryID)
	})
	if err != nil {
		return fmt.Errorf("delete entry %d: %w", entryID, err)
	}
	return nil
}

// Tree returns the entries under folderID, or the whole repository when folderID is nil.
func (s *service) Tree(ctx context.Context, userID, repoID int64, folderID *int64) ([]*Node, error) {
	if _, err := s.Repository(ctx, userID, repoID); err != nil {
		return nil, err
	}

	if err := s.checkParent(ctx, repoID, folderID); err != nil {
		return nil, err
	}

	entries, err := s.repo.ListSubtree(ctx, repoID, folderID)
	if err != nil {
		return nil, err
	}
	return buildTree(entries, folderID), nil
}

func (s *service) CreateSnippet(ctx context.Context, userID int64, params CreateSnippetParams) (*Entry, error) {
	var snippet *Entry
	err := s.txMgr.RunInTx(ctx, func(txCtx context.Context) error {
		repo, err := s.snippetsRepo(txCtx, userID)
		if err != nil {
			return err
		}

		snippet, err = s.createFile(txCtx, CreateFileParams{
			Name:         params.Name,
			RepositoryID: repo.ID,
			Extension:    params.Extension,
			Content:      params.Content,
		})
		if err != nil {
			return err
		}
		return s.repo.RecomputeMetadata(txCtx, repo.ID)
	})
	if err != nil {
		return nil, fmt.Errorf("create snippet for user %d: %w", userID, err)
	}
	return snippet, nil
}

// snippetsRepo returns the snippets repository of userID, creating it on first use.
func (s *service) snippetsRepo(ctx context.Context, userID int64) (*Repo, error) {
	description := snippetsRepoDescription
	return s.repo.SnippetsRepository(ctx, userID, CreateRepositoryParams{
		Name:        snippetsRepoName,
		Description: &description,
		Visibility:  Private,
	})
}

func (s *service) Snippet(ctx context.Context, userID, snippetID int64) (*Entry, error) {
	return s.File(ctx, userID, snippetID)
}
