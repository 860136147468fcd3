package web

import (
	"context"
	"errors"
	"fmt"
)

// ErrNoParams is returned when the request context has no decoded payload of the wanted type.
var ErrNoParams = errors.New("no request params in context")

type paramsKey struct{}

// NewContextWithParams stores the decoded request payload.
//
//nolint:ireturn // returning context.Context is intentional.
func NewContextWithParams(baseCtx context.Context, params any) context.Context {
	return context.WithValue(baseCtx, paramsKey{}, params)
}

// ParamsFromContext returns the decoded request payload as a T.
func ParamsFromContext[T any](ctx context.Context) (T, error) {
	params, ok := ctx.Value(paramsKey{}).(T)
	if !ok {
		return params, fmt.Errorf("%w: want %T", ErrNoParams, params)
	}
	return params, nil
}
