package user

import (
	"context"
	"errors"
)

type ctxKey int

const userCtxKey ctxKey = iota + 1

var ErrNoUserInContext = errors.New("no user ID in context")

// NewContextWithID returns a context carrying the authenticated user's ID.
//
//nolint:ireturn // returning context.Context is intentional.
func NewContextWithID(baseCtx context.Context, userID int64) context.Context {
	return context.WithValue(baseCtx, userCtxKey, userID)
}

// IDFromContext returns the authenticated user's ID.
func IDFromContext(ctx context.Context) (int64, error) {
	userID, ok := ctx.Value(userCtxKey).(int64)
	if !ok || userID <= 0 {
		return 0, ErrNoUserInContext
	}
	return userID, nil
}
