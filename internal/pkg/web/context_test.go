package web_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ferdiebergado/devlink/internal/pkg/web"
)

type loginParams struct {
	Email string
}

func TestParamsFromContext(t *testing.T) {
	t.Parallel()

	ctx := web.NewContextWithParams(context.Background(), loginParams{Email: "dev@example.com"})
	params, err := web.ParamsFromContext[loginParams](ctx)
	if err != nil {
		t.Fatal(err)
	}
	if params.Email != "dev@example.com" {
		t.Errorf("params.Email = %q, want: %q", params.Email, "dev@example.com")
	}

	if _, err := web.ParamsFromContext[*loginParams](ctx); !errors.Is(err, web.ErrNoParams) {
		t.Errorf("ParamsFromContext[*loginParams]() err = %v, want: %v", err, web.ErrNoParams)
	}
	if _, err := web.ParamsFromContext[loginParams](context.Background()); !errors.Is(err, web.ErrNoParams) {
		t.Errorf("ParamsFromContext() on empty context err = %v, want: %v", err, web.ErrNoParams)
	}
}
