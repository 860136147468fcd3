package db

import (
	"context"
	"database/sql"
	"errors"
)

var ErrQueryFailed = errors.New("query failed")

// Executor is the subset of *sql.DB and *sql.Tx used by the repositories.
type Executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type TxManager interface {
	// RunInTx executes fn within a database transaction.
	// The transaction travels in the context passed to fn; repositories pick
	// it up through ExecutorFromContext. It is committed when fn returns nil
	// and rolled back otherwise.
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ExecutorFromContext returns the transaction stored in ctx, or fallback when there is none.
//
//nolint:ireturn // Callers need either a *sql.Tx or a *sql.DB.
func ExecutorFromContext(ctx context.Context, fallback Executor) Executor {
	if tx := TxFromContext(ctx); tx != nil {
		return tx
	}
	return fallback
}
