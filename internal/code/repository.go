package code

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ferdiebergado/devlink/internal/platform/db"
)

var (
	ErrQueryFailed   = errors.New("code repository: query failed")
	ErrRepoNotFound  = errors.New("code repository: repository not found")
	ErrEntryNotFound = errors.New("code repository: entry not found")
)

type Repository interface {
	CreateRepository(ctx context.Context, ownerID int64, params CreateRepositoryParams) (*Repo, error)
	FindRepository(ctx context.Context, repoID int64) (*Repo, error)
	// SnippetsRepository returns the snippets repository of ownerID, creating it from params if absent.
	SnippetsRepository(ctx context.Context, ownerID int64, params CreateRepositoryParams) (*Repo, error)
	ListRepositories(ctx context.Context, ownerID int64) ([]Repo, error)
	DeleteRepository(ctx context.Context, repoID int64) error
	RecomputeMetadata(ctx context.Context, repoID int64) error

	CreateEntry(ctx context.Context, entry *Entry) (*Entry, error)
	FindEntry(ctx context.Context, entryID int64) (*Entry, error)
	ListChildren(ctx context.Context, repoID, parentID int64) ([]Entry, error)
	ListSubtree(ctx context.Context, repoID int64, rootID *int64) ([]Entry, error)
	UpdateContent(ctx context.Context, entry *Entry) error
	DeleteEntry(ctx context.Context, entryID int64) error
}

type sqlRepository struct {
	db db.Executor
}

var _ Repository = (*sqlRepository)(nil)

func NewRepository(dbExec db.Executor) Repository {
	return &sqlRepository{db: dbExec}
}

func (r *sqlRepository) exec(ctx context.Context) db.Executor {
	return db.ExecutorFromContext(ctx, r.db)
}

const (
	queryCreateRepository = `
INSERT INTO repositories (owner_id, name, description)
VALUES ($1, $2, $3)
RETURNING id, created_at`

	queryCreateMetadata = `
INSERT INTO repository_metadata (repository_id, license, visibility)
VALUES ($1, $2, $3)
RETURNING last_modified`
)

// CreateRepository inserts the repository and its empty metadata. Callers run it in a transaction.
func (r *sqlRepository) CreateRepository(ctx context.Context, ownerID int64, params CreateRepositoryParams) (*Repo, error) {
	repo := &Repo{
		OwnerID:     ownerID,
		Name:        params.Name,
		Description: params.Description,
	}

	if err := r.exec(ctx).QueryRowContext(ctx, queryCreateRepository, ownerID, params.Name, params.Description).
		Scan(&repo.ID, &repo.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: create repository %q: %v", ErrQueryFailed, params.Name, err)
	}

	if err := r.createMetadata(ctx, repo, params); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *sqlRepository) createMetadata(ctx context.Context, repo *Repo, params CreateRepositoryParams) error {
	repo.Metadata = Metadata{
		License:    params.License,
		Visibility: params.Visibility,
	}
	if err := r.exec(ctx).QueryRowContext(ctx, queryCreateMetadata, repo.ID, params.License, int(params.Visibility)).
		Scan(&repo.Metadata.LastModified); err != nil {
		return fmt.Errorf("%w: create metadata of repository %d: %v", ErrQueryFailed, repo.ID, err)
	}
	return nil
}

// A concurrent insert for the same owner waits on the unique index and then does nothing.
const queryCreateSnippetsRepository = `
INSERT INTO repositories (owner_id, name, description, is_snippets)
VALUES ($1, $2, $3, TRUE)
ON CONFLICT (owner_id) WHERE is_snippets DO NOTHING
RETURNING id, created_at`

func (r *sqlRepository) SnippetsRepository(ctx context.Context, ownerID int64, params CreateRepositoryParams) (*Repo, error) {
	repo := &Repo{
		OwnerID:     ownerID,
		Name:        params.Name,
		Description: params.Description,
	}

	err := r.exec(ctx).QueryRowContext(ctx, queryCreateSnippetsRepository, ownerID, params.Name, params.Description).
		Scan(&repo.ID, &repo.CreatedAt)
	switch {
	case err == nil:
		if err := r.createMetadata(ctx, repo, params); err != nil {
			return nil, err
		}
		return repo, nil
	case errors.Is(err, sql.ErrNoRows):
		return r.findSnippetsRepository(ctx, ownerID)
	default:
		return nil, fmt.Errorf("%w: create snippets repository of user %d: %v", ErrQueryFailed, ownerID, err)
	}
}

const repositoryColumns = `
r.id, r.owner_id, r.name, r.description, r.created_at,
m.total_files, m.total_folders, m.total_size, m.last_modified, m.license, m.visibility
FROM repositories r
JOIN repository_metadata m ON m.repository_id = r.id`

func scanRepository(row interface{ Scan(dest ...any) error }, repo *Repo) error {
	m := &repo.Metadata
	return row.Scan(&repo.ID, &repo.OwnerID, &repo.Name, &repo.Description, &repo.CreatedAt,
		&m.TotalFiles, &m.TotalFolders, &m.TotalSize, &m.LastModified, &m.License, &m.Visibility)
}

const queryFindRepository = "SELECT " + repositoryColumns + " WHERE r.id = $1"

func (r *sqlRepository) FindRepository(ctx context.Context, repoID int64) (*Repo, error) {
	var repo Repo
	if err := scanRepository(r.exec(ctx).QueryRowContext(ctx, queryFindRepository, repoID), &repo); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRepoNotFound
		}
		return nil, fmt.Errorf("%w: find repository %d: %v", ErrQueryFailed, repoID, err)
	}
	return &repo, nil
}

const queryFindSnippetsRepository = "SELECT " + repositoryColumns + " WHERE r.owner_id = $1 AND r.is_snippets"

func (r *sqlRepository) findSnippetsRepository(ctx context.Context, ownerID int64) (*Repo, error) {
	var repo Repo
	if err := scanRepository(r.exec(ctx).QueryRowContext(ctx, queryFindSnippetsRepository, ownerID), &repo); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRepoNotFound
		}
		return nil, fmt.Errorf("%w: find snippets repository of user %d: %v", ErrQueryFailed, ownerID, err)
	}
	return &repo, nil
}

const queryListRepositories = "SELECT " + repositoryColumns + " WHERE r.owner_id = $1 ORDER BY r.created_at DESC, r.id DESC"

func (r *sqlRepository) ListRepositories(ctx context.Context, ownerID int64) ([]Repo, error) {
	rows, err := r.exec(ctx).QueryContext(ctx, queryListRepositories, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%w: list repositories of user %d: %v", ErrQueryFailed, ownerID, err)
	}
	defer rows.Close()

	repos := make([]Repo, 0)
	for rows.Next() {
		var repo Repo
		if err := scanRepository(rows, &repo); err != nil {
			return nil, fmt.Errorf("code repository: scan repository row: %w", err)
		}
		repos = append(repos, repo)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("code repository: iterate over repository rows: %w", err)
	}
	return repos, nil
}

const queryDeleteRepository = "DELETE FROM repositories WHERE id = $1"

func (r *sqlRepository) DeleteRepository(ctx context.Context, repoID int64) error {
	res, err := r.exec(ctx).ExecContext(ctx, queryDeleteRepository, repoID)
	if err != nil {
		return fmt.Errorf("%w: delete repository %d: %v", ErrQueryFailed, repoID, err)
	}
	return requireAffected(res, ErrRepoNotFound)
}

const queryRecomputeMetadata = `
UPDATE repository_metadata m SET
	total_files = s.files,
	total_folders = s.folders,
	total_size = s.size,
	last_modified = NOW()
FROM (
	SELECT
		COUNT(*) FILTER (WHERE NOT is_directory) AS files,
		COUNT(*) FILTER (WHERE is_directory) AS folders,
		COALESCE(SUM(size) FILTER (WHERE NOT is_directory), 0) AS size
	FROM repo_entries
	WHERE repository_id = $1
) s
WHERE m.repository_id = $1`

func (r *sqlRepository) RecomputeMetadata(ctx context.Context, repoID int64) error {
	res, err := r.exec(ctx).ExecContext(ctx, queryRecomputeMetadata, repoID)
	if err != nil {
		return fmt.Errorf("%w: recompute metadata of repository %d: %v", ErrQueryFailed, repoID, err)
	}
	return requireAffected(res, ErrRepoNotFound)
}

const queryCreateEntry = `
INSERT INTO repo_entries (repository_id, parent_id, name, is_directory, extension, content, number_of_lines, size)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id, created_at, updated_at`

func (r *sqlRepository) CreateEntry(ctx context.Context, entry *Entry) (*Entry, error) {
	created := *entry
	row := r.exec(ctx).QueryRowContext(ctx, queryCreateEntry,
		entry.RepositoryID, entry.ParentID, entry.Name, entry.IsDirectory, int(entry.Extension),
		entry.Content, entry.NumberOfLines, entry.Size)
	if err := row.Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%w: create entry %q in repository %d: %v", ErrQueryFailed, entry.Name, entry.RepositoryID, err)
	}
	return &created, nil
}

// Listings leave out file content.
const (
	entryColumns     = "id, repository_id, parent_id, name, is_directory, extension, content, number_of_lines, size, created_at, updated_at"
	entryColumnsBare = "id, repository_id, parent_id, name, is_directory, extension, '' AS content, number_of_lines, size, created_at, updated_at"
)

func scanEntry(row interface{ Scan(dest ...any) error }, e *Entry) error {
	return row.Scan(&e.ID, &e.RepositoryID, &e.ParentID, &e.Name, &e.IsDirectory, &e.Extension,
		&e.Content, &e.NumberOfLines, &e.Size, &e.CreatedAt, &e.UpdatedAt)
}

const queryFindEntry = "SELECT " + entryColumns + " FROM repo_entries WHERE id = $1"

func (r *sqlRepository) FindEntry(ctx context.Context, entryID int64) (*Entry, error) {
	var e Entry
	if err := scanEntry(r.exec(ctx).QueryRowContext(ctx, queryFindEntry, entryID), &e); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEntryNotFound
		}
		return nil, fmt.Errorf("%w: find entry %d: %v", ErrQueryFailed, entryID, err)
	}
	return &e, nil
}

const queryListChildren = `
SELECT ` + entryColumnsBare + `
FROM repo_entries
WHERE repository_id = $1 AND parent_id = $2
ORDER BY is_directory DESC, name, id`

func (r *sqlRepository) ListChildren(ctx context.Context, repoID, parentID int64) ([]Entry, error) {
	return r.entries(ctx, queryListChildren, repoID, parentID)
}

// $2 NULL selects the whole repository.
const queryListSubtree = `
WITH RECURSIVE tree AS (
	SELECT * FROM repo_entries
	WHERE repository_id = $1 AND parent_id IS NOT DISTINCT FROM $2::bigint
	UNION ALL
	SELECT e.* FROM repo_entries e
	JOIN tree t ON e.parent_id = t.id
)
SELECT ` + entryColumnsBare + `
FROM tree
ORDER BY is_directory DESC, name, id`

func (r *sqlRepository) ListSubtree(ctx context.Context, repoID int64, rootID *int64) ([]Entry, error) {
	return r.entries(ctx, queryListSubtree, repoID, rootID)
}

func (r *sqlRepository) entries(ctx context.Context, query string, args ...any) ([]Entry, error) {
	rows, err := r.exec(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: list entries: %v", ErrQueryFailed, err)
	}
	defer rows.Close()

	entries := make([]Entry, 0)
	for rows.Next() {
		var e Entry
		if err := scanEntry(rows, &e); err != nil {
			return nil, fmt.Errorf("code repository: scan entry row: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("code repository: iterate over entry rows: %w", err)
	}
	return entries, nil
}

const queryUpdateContent = `
UPDATE repo_entries
SET content = $2, number_of_lines = $3, size = $4, updated_at = NOW()
WHERE id = $1 AND NOT is_directory
RETURNING updated_at`

func (r *sqlRepository) UpdateContent(ctx context.Context, entry *Entry) error {
	row := r.exec(ctx).QueryRowContext(ctx, queryUpdateContent, entry.ID, entry.Content, entry.NumberOfLines, entry.Size)
	if err := row.Scan(&entry.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrEntryNotFound
		}
		return fmt.Errorf("%w: update content of entry %d: %v", ErrQueryFailed, entry.ID, err)
	}
	return nil
}

const queryDeleteEntry = "DELETE FROM repo_entries WHERE id = $1"

// DeleteEntry removes the entry. Descendants go with it through the foreign key.
func (r *sqlRepository) DeleteEntry(ctx context.Context, entryID int64) error {
	res, err := r.exec(ctx).ExecContext(ctx, queryDeleteEntry, entryID)
	if err != nil {
		return fmt.Errorf("%w: delete entry %d: %v", ErrQueryFailed, entryID, err)
	}
	return requireAffected(res, ErrEntryNotFound)
}

func requireAffected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: rows affected: %v", ErrQueryFailed, err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}
