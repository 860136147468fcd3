package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/ferdiebergado/devlink/internal/platform/db"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound        = errors.New("user repository: user not found")
	ErrQueryFailed     = errors.New("user repository: query failed")
	ErrDuplicateEmail  = errors.New("user repository: email already taken")
	ErrSkillNotFound   = errors.New("user repository: skill not found")
	ErrSkillExists     = errors.New("user repository: user already has the skill")
	ErrPhotoNotFound   = errors.New("user repository: photo not found")
	ErrUnknownInterest = errors.New("user repository: unknown interest")
)

const pgUniqueViolation = "23505"

type Repository interface {
	Create(ctx context.Context, params CreateParams) (*User, error)
	Find(ctx context.Context, userID int64) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, userID int64, params UpdateParams) error
	Search(ctx context.Context, params SearchParams, limit int) ([]User, error)

	FindSkill(ctx context.Context, skillID int64) (*Skill, error)
	ListUserSkills(ctx context.Context, userID int64) ([]UserSkill, error)
	AddSkill(ctx context.Context, userID, skillID int64, level SkillLevel) error
	RemoveSkill(ctx context.Context, userID, skillID int64) error

	ListUserInterests(ctx context.Context, userID int64) ([]Interest, error)
	CountInterests(ctx context.Context, interestIDs []int64) (int, error)
	ReplaceInterests(ctx context.Context, userID int64, interestIDs []int64) error

	SavePhoto(ctx context.Context, photo *Photo) error
	FindPhoto(ctx context.Context, userID int64) (*Photo, error)

	ListSkills(ctx context.Context) ([]Skill, error)
	ListInterests(ctx context.Context) ([]Interest, error)
	ListCategories(ctx context.Context) ([]Category, error)
}

type CreateParams struct {
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Nick         string
	Bio          *string
	Age          *int
}

type UpdateParams struct {
	FirstName string
	LastName  string
	Nick      string
	Bio       *string
	Age       *int
}

type SearchParams struct {
	Skill    string
	Interest string
	Category string
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

const userColumns = "id, email, password_hash, first_name, last_name, nick, bio, age, is_active, created_at, updated_at"

func scanUser(row interface{ Scan(dest ...any) error }, u *User) error {
	return row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Nick,
		&u.Bio, &u.Age, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
}

const queryCreate = `
INSERT INTO users (email, password_hash, first_name, last_name, nick, bio, age)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING ` + userColumns

func (r *sqlRepository) Create(ctx context.Context, params CreateParams) (*User, error) {
	row := r.exec(ctx).QueryRowContext(ctx, queryCreate, params.Email, params.PasswordHash,
		params.FirstName, params.LastName, params.Nick, params.Bio, params.Age)

	var u User
	if err := scanUser(row, &u); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("%w: create user with email %s: %v", ErrQueryFailed, params.Email, err)
	}
	return &u, nil
}

const queryFind = "SELECT " + userColumns + " FROM users WHERE id = $1"

func (r *sqlRepository) Find(ctx context.Context, userID int64) (*User, error) {
	var u User
	if err := scanUser(r.exec(ctx).QueryRowContext(ctx, queryFind, userID), &u); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: find user with id %d: %v", ErrQueryFailed, userID, err)
	}
	return &u, nil
}

const queryFindByEmail = "SELECT " + userColumns + " FROM users WHERE LOWER(email) = LOWER($1) LIMIT 1"

func (r *sqlRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	if err := scanUser(r.exec(ctx).QueryRowContext(ctx, queryFindByEmail, email), &u); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: find user with email %s: %v", ErrQueryFailed, email, err)
	}
	return &u, nil
}

// Empty strings and nil pointers keep the stored value.
const queryUpdate = `
UPDATE users SET
	first_name = COALESCE(NULLIF($2, ''), first_name),
	last_name = COALESCE(NULLIF($3, ''), last_name),
	nick = COALESCE(NULLIF($4, ''), nick),
	bio = CASE WHEN $5::boolean THEN $6 ELSE bio END,
	age = CASE WHEN $7::boolean THEN $8 ELSE age END,
	updated_at = NOW()
WHERE id = $1`

func (r *sqlRepository) Update(ctx context.Context, userID int64, params UpdateParams) error {
	res, err := r.exec(ctx).ExecContext(ctx, queryUpdate, userID,
		params.FirstName, params.LastName, params.Nick,
		params.Bio != nil, params.Bio, params.Age != nil, params.Age)
	if err != nil {
		return fmt.Errorf("%w: update user %d: %v", ErrQueryFailed, userID, err)
	}
	return requireAffected(res, ErrNotFound)
}

const querySearch = `
SELECT ` + userColumns + ` FROM users u
WHERE u.is_active
AND ($1 = '' OR EXISTS (
	SELECT 1 FROM user_skills us JOIN skills s ON s.id = us.skill_id
	WHERE us.user_id = u.id AND s.name ILIKE '%' || $1 || '%'))
AND ($2 = '' OR EXISTS (
	SELECT 1 FROM user_interests ui JOIN interests i ON i.id = ui.interest_id
	WHERE ui.user_id = u.id AND i.name ILIKE '%' || $2 || '%'))
AND ($3 = '' OR EXISTS (
	SELECT 1 FROM user_interests ui
	JOIN interests i ON i.id = ui.interest_id
	JOIN categories c ON c.id = i.category_id
	WHERE ui.user_id = u.id AND c.name ILIKE '%' || $3 || '%'))
ORDER BY u.id
LIMIT $4`

func (r *sqlRepository) Search(ctx context.Context, params SearchParams, limit int) ([]User, error) {
	rows, err := r.exec(ctx).QueryContext(ctx, querySearch,
		escapeLike(params.Skill), escapeLike(params.Interest), escapeLike(params.Category), limit)
	if err != nil {
		return nil, fmt.Errorf("%w: search users: %v", ErrQueryFailed, err)
	}
	defer rows.Close()

	//nolint:prealloc // The number of rows is unknown.
	var users []User
	for rows.Next() {
		var u User
		if err := scanUser(rows, &u); err != nil {
			return nil, fmt.Errorf("user repository: scan user row: %w", err)
		}
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("user repository: iterate over user rows: %w", err)
	}

	return users, nil
}

const queryFindSkill = "SELECT id, name, description, category FROM skills WHERE id = $1"

func (r *sqlRepository) FindSkill(ctx context.Context, skillID int64) (*Skill, error) {
	var s Skill
	row := r.exec(ctx).QueryRowContext(ctx, queryFindSkill, skillID)
	if err := row.Scan(&s.ID, &s.Name, &s.Description, &s.Category); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSkillNotFound
		}
		return nil, fmt.Errorf("%w: find skill %d: %v", ErrQueryFailed, skillID, err)
	}
	return &s, nil
}

const queryListUserSkills = `
SELECT s.id, s.name, s.description, s.category, us.level, us.added_at
FROM user_skills us JOIN skills s ON s.id = us.skill_id
WHERE us.user_id = $1
ORDER BY s.name`

func (r *sqlRepository) ListUserSkills(ctx context.Context, userID int64) ([]UserSkill, error) {
	rows, err := r.exec(ctx).QueryContext(ctx, queryListUserSkills, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: list skills of user %d: %v", ErrQueryFailed, userID, err)
	}
	defer rows.Close()

	skills := make([]UserSkill, 0)
	for rows.Next() {
		var s UserSkill
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.Category, &s.Level, &s.AddedAt); err != nil {
			return nil, fmt.Errorf("user repository: scan user skill row: %w", err)
		}
		skills = append(skills, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("user repository: iterate over user skill rows: %w", err)
	}

	return skills, nil
}

const queryAddSkill = "INSERT INTO user_skills (user_id, skill_id, level) VALUES ($1, $2, $3)"

func (r *sqlRepository) AddSkill(ctx context.Context, userID, skillID int64, level SkillLevel) error {
	if _, err := r.exec(ctx).ExecContext(ctx, queryAddSkill, userID, skillID, int(level)); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return ErrSkillExists
		}
		return fmt.Errorf("%w: add skill %d to user %d: %v", ErrQueryFailed, skillID, userID, err)
	}
	return nil
}

const queryRemoveSkill = "DELETE FROM user_skills WHERE user_id = $1 AND skill_id = $2"

func (r *sqlRepository) RemoveSkill(ctx context.Context, userID, skillID int64) error {
	res, err := r.exec(ctx).ExecContext(ctx, queryRemoveSkill, userID, skillID)
	if err != nil {
		return fmt.Errorf("%w: remove skill %d from user %d: %v", ErrQueryFailed, skillID, userID, err)
	}
	return requireAffected(res, ErrSkillNotFound)
}

const queryListUserInterests = `
SELECT i.id, i.name, i.description, i.category_id
FROM user_interests ui JOIN interests i ON i.id = ui.interest_id
WHERE ui.user_id = $1
ORDER BY i.name`

func (r *sqlRepository) ListUserInterests(ctx context.Context, userID int64) ([]Interest, error) {
	return r.listInterests(ctx, queryListUserInterests, userID)
}

const queryCountInterests = "SELECT COUNT(*) FROM interests WHERE id = ANY($1)"

func (r *sqlRepository) CountInterests(ctx context.Context, interestIDs []int64) (int, error) {
	var n int
	if err := r.exec(ctx).QueryRowContext(ctx, queryCountInterests, interestIDs).Scan(&n); err != nil {
		return 0, fmt.Errorf("%w: count interests: %v", ErrQueryFailed, err)
	}
	return n, nil
}

const (
	queryClearInterests = "DELETE FROM user_interests WHERE user_id = $1"
	queryAddInterests   = "INSERT INTO user_interests (user_id, interest_id) SELECT $1, UNNEST($2::bigint[])"
)

// ReplaceInterests must run inside a transaction.
func (r *sqlRepository) ReplaceInterests(ctx context.Context, userID int64, interestIDs []int64) error {
	exec := r.exec(ctx)
	if _, err := exec.ExecContext(ctx, queryClearInterests, userID); err != nil {
		return fmt.Errorf("%w: clear interests of user %d: %v", ErrQueryFailed, userID, err)
	}

	if len(interestIDs) == 0 {
		return nil
	}

	if _, err := exec.ExecContext(ctx, queryAddInterests, userID, interestIDs); err != nil {
		return fmt.Errorf("%w: add interests to user %d: %v", ErrQueryFailed, userID, err)
	}
	return nil
}

const querySavePhoto = `
INSERT INTO user_profile_photos (user_id, content_type, data, uploaded_at)
VALUES ($1, $2, $3, NOW())
ON CONFLICT (user_id) DO UPDATE
SET content_type = EXCLUDED.content_type, data = EXCLUDED.data, uploaded_at = EXCLUDED.uploaded_at
RETURNING uploaded_at`

func (r *sqlRepository) SavePhoto(ctx context.Context, photo *Photo) error {
	row := r.exec(ctx).QueryRowContext(ctx, querySavePhoto, photo.UserID, photo.ContentType, photo.Data)
	if err := row.Scan(&photo.UploadedAt); err != nil {
		return fmt.Errorf("%w: save photo of user %d: %v", ErrQueryFailed, photo.UserID, err)
	}
	return nil
}

const queryFindPhoto = "SELECT user_id, content_type, data, uploaded_at FROM user_profile_photos WHERE user_id = $1"

func (r *sqlRepository) FindPhoto(ctx context.Context, userID int64) (*Photo, error) {
	var p Photo
	row := r.exec(ctx).QueryRowContext(ctx, queryFindPhoto, userID)
	if err := row.Scan(&p.UserID, &p.ContentType, &p.Data, &p.UploadedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPhotoNotFound
		}
		return nil, fmt.Errorf("%w: find photo of user %d: %v", ErrQueryFailed, userID, err)
	}
	return &p, nil
}

const queryListSkills = "SELECT id, name, description, category FROM skills ORDER BY name"

func (r *sqlRepository) ListSkills(ctx context.Context) ([]Skill, error) {
	rows, err := r.exec(ctx).QueryContext(ctx, queryListSkills)
	if err != nil {
		return nil, fmt.Errorf("%w: list skills: %v", ErrQueryFailed, err)
	}
	defer rows.Close()

	skills := make([]Skill, 0)
	for rows.Next() {
		var s Skill
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.Category); err != nil {
			return nil, fmt.Errorf("user repository: scan skill row: %w", err)
		}
		skills = append(skills, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("user repository: iterate over skill rows: %w", err)
	}
	return skills, nil
}

const queryListInterests = "SELECT id, name, description, category_id FROM interests ORDER BY name"

func (r *sqlRepository) ListInterests(ctx context.Context) ([]Interest, error) {
	return r.listInterests(ctx, queryListInterests)
}

func (r *sqlRepository) listInterests(ctx context.Context, query string, args ...any) ([]Interest, error) {
	rows, err := r.exec(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: list interests: %v", ErrQueryFailed, err)
	}
	defer rows.Close()

	interests := make([]Interest, 0)
	for rows.Next() {
		var i Interest
		if err := rows.Scan(&i.ID, &i.Name, &i.Description, &i.CategoryID); err != nil {
			return nil, fmt.Errorf("user repository: scan interest row: %w", err)
		}
		interests = append(interests, i)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("user repository: iterate over interest rows: %w", err)
	}
	return interests, nil
}

const queryListCategories = "SELECT id, name, description, type FROM categories ORDER BY name"

func (r *sqlRepository) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := r.exec(ctx).QueryContext(ctx, queryListCategories)
	if err != nil {
		return nil, fmt.Errorf("%w: list categories: %v", ErrQueryFailed, err)
	}
	defer rows.Close()

	categories := make([]Category, 0)
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Type); err != nil {
			return nil, fmt.Errorf("user repository: scan category row: %w", err)
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("user repository: iterate over category rows: %w", err)
	}
	return categories, nil
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

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(strings.TrimSpace(s))
}
