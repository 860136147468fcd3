package web_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ferdiebergado/devlink/internal/pkg/web"
)

func TestRespondOK(t *testing.T) {
	t.Parallel()

	type payload struct {
		ID int64 `json:"id"`
	}

	rec := httptest.NewRecorder()
	msg := "Done."
	web.RespondOK(rec, &msg, &payload{ID: 7})

	res := rec.Result()
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		t.Errorf("res.StatusCode = %d, want: %d", res.StatusCode, http.StatusOK)
	}

	if ct := res.Header.Get(web.HeaderContentType); !strings.HasPrefix(ct, web.MimeJSON) {
		t.Errorf("res.Header.Get(%q) = %q, want: %q", web.HeaderContentType, ct, web.MimeJSON)
	}

	var body web.OKResponse[payload]
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}

	if body.Message != msg || body.Data.ID != 7 {
		t.Errorf("body = %+v, want message %q and id 7", body, msg)
	}
}

func TestRespondBadRequest(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	errs := map[string]string{"email": "must be a valid email address"}
	web.RespondBadRequest(rec, errors.New("boom"), "Invalid input.", errs)

	res := rec.Result()
	defer res.Body.Close()

	if res.StatusCode != http.StatusBadRequest {
		t.Errorf("res.StatusCode = %d, want: %d", res.StatusCode, http.StatusBadRequest)
	}

	var body web.ErrorResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}

	if body.Message != "Invalid input." || body.Errors["email"] == "" {
		t.Errorf("body = %+v, want the validation errors", body)
	}

	if strings.Contains(rec.Body.String(), "boom") {
		t.Error("response leaked the failure reason")
	}
}

func TestRespondInternalServerError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		code int
	}{
		{"Server failure", errors.New("connection reset"), http.StatusInternalServerError},
		{"Cancelled", fmt.Errorf("list friends: %w", context.Canceled), http.StatusRequestTimeout},
		{"Deadline", fmt.Errorf("query: %w", context.DeadlineExceeded), http.StatusRequestTimeout},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			web.RespondInternalServerError(rec, tt.err)

			if rec.Code != tt.code {
				t.Errorf("rec.Code = %d, want: %d", rec.Code, tt.code)
			}
		})
	}
}
