package match

import (
	"context"
	"errors"
	"fmt"

	"github.com/ferdiebergado/devlink/internal/platform/db"
	"github.com/jackc/pgx/v5/pgtype"
)

var ErrQueryFailed = errors.New("match repository: query failed")

type Repository interface {
	// Features returns the features of the given users, active or not.
	Features(ctx context.Context, userIDs []int64) ([]Features, error)
	// Candidates returns the features of every active user outside excluded.
	Candidates(ctx context.Context, excluded []int64) ([]Features, error)
}

type sqlRepository struct {
	db db.Executor
}

var _ Repository = (*sqlRepository)(nil)

func NewRepository(dbExec db.Executor) Repository {
	return &sqlRepository{db: dbExec}
}

const featureColumns = `
SELECT u.id, u.age,
	COALESCE((SELECT array_agg(us.skill_id ORDER BY us.skill_id) FROM user_skills us WHERE us.user_id = u.id), '{}'),
	COALESCE((SELECT array_agg(ui.interest_id ORDER BY ui.interest_id) FROM user_interests ui WHERE ui.user_id = u.id), '{}')
FROM users u`

const (
	queryFeatures   = featureColumns + " WHERE u.id = ANY($1) ORDER BY u.id"
	queryCandidates = featureColumns + " WHERE u.is_active AND NOT (u.id = ANY($1)) ORDER BY u.id"
)

func (r *sqlRepository) Features(ctx context.Context, userIDs []int64) ([]Features, error) {
	return r.query(ctx, queryFeatures, userIDs)
}

func (r *sqlRepository) Candidates(ctx context.Context, excluded []int64) ([]Features, error) {
	if excluded == nil {
		excluded = []int64{}
	}
	return r.query(ctx, queryCandidates, excluded)
}

func (r *sqlRepository) query(ctx context.Context, query string, ids []int64) ([]Features, error) {
	rows, err := db.ExecutorFromContext(ctx, r.db).QueryContext(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("%w: load features: %v", ErrQueryFailed, err)
	}
	defer rows.Close()

	// Postgres arrays need the type map to decode into Go slices.
	typeMap := pgtype.NewMap()

	features := make([]Features, 0)
	for rows.Next() {
		var f Features
		if err := rows.Scan(&f.UserID, &f.Age, typeMap.SQLScanner(&f.SkillIDs), typeMap.SQLScanner(&f.InterestIDs)); err != nil {
			return nil, fmt.Errorf("match repository: scan feature row: %w", err)
		}
		features = append(features, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("match repository: iterate over feature rows: %w", err)
	}
	return features, nil
}
