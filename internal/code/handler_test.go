package code_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ferdiebergado/devlink/internal/code"
	"github.com/ferdiebergado/devlink/internal/pkg/message"
	"github.com/ferdiebergado/devlink/internal/pkg/web"
	"github.com/ferdiebergado/devlink/internal/user"
	"github.com/google/go-cmp/cmp"
)

func TestHandler_CreateRepository(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		visibility     string
		wantVisibility code.Visibility
	}{
		{"Public", "Public", code.Public},
		{"Default is private", "", code.Private},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got code.CreateRepositoryParams
			svc := &code.StubService{
				CreateRepositoryFunc: func(_ context.Context, userID int64, params code.CreateRepositoryParams) (*code.Repo, error) {
					got = params
					return &code.Repo{ID: 3, OwnerID: userID, Name: params.Name, Metadata: code.Metadata{Visibility: params.Visibility}}, nil
				},
			}
			h := code.NewHandler(svc)

			ctx := user.NewContextWithID(context.Background(), ownerID)
			ctx = web.NewContextWithParams(ctx, code.CreateRepositoryRequest{Name: "devlink", Visibility: tt.visibility})
			req := httptest.NewRequestWithContext(ctx, http.MethodPost, "/code/repos", nil)
			rec := httptest.NewRecorder()
			h.CreateRepository(rec, req)

			if rec.Code != http.StatusCreated {
				t.Fatalf(message.FmtErrStatusCode, rec.Code, http.StatusCreated)
			}
			if got.Visibility != tt.wantVisibility {
				t.Errorf("params.Visibility = %v, want: %v", got.Visibility, tt.wantVisibility)
			}

			var res web.OKResponse[code.RepositoryData]
			if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
				t.Fatal(err)
			}
			if res.Data.UserID != ownerID || res.Data.Visibility != tt.wantVisibility.String() {
				t.Errorf("data = %+v, want owner %d visibility %v", res.Data, ownerID, tt.wantVisibility)
			}
		})
	}
}

func TestHandler_GetRepository(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		id   string
		err  error
		code int
	}{
		{"Found", "1", nil, http.StatusOK},
		{"Hidden or missing", "1", code.ErrRepoNotFound, http.StatusNotFound},
		{"Bad id", "abc", nil, http.StatusBadRequest},
		{"Zero id", "0", nil, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := &code.StubService{
				RepositoryFunc: func(_ context.Context, _, repoID int64) (*code.Repo, error) {
					if tt.err != nil {
						return nil, fmt.Errorf("repository %d: %w", repoID, tt.err)
					}
					return &code.Repo{ID: repoID}, nil
				},
			}
			h := code.NewHandler(svc)

			ctx := user.NewContextWithID(context.Background(), ownerID)
			req := httptest.NewRequestWithContext(ctx, http.MethodGet, "/code/repos/"+tt.id, nil)
			req.SetPathValue("id", tt.id)
			rec := httptest.NewRecorder()
			h.GetRepository(rec, req)

			if rec.Code != tt.code {
				t.Errorf(message.FmtErrStatusCode, rec.Code, tt.code)
			}
		})
	}
}

func TestHandler_Unauthorized(t *testing.T) {
	t.Parallel()

	h := code.NewHandler(&code.StubService{})
	handlers := map[string]http.HandlerFunc{
		"ListRepositories": h.ListRepositories,
		"GetFile":          h.GetFile,
		"CreateSnippet":    h.CreateSnippet,
		"Tree":             h.Tree,
	}
	for name, handler := range handlers {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/code", nil)
			req.SetPathValue("id", "1")
			rec := httptest.NewRecorder()
			handler(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf(message.FmtErrStatusCode, rec.Code, http.StatusUnauthorized)
			}
		})
	}
}

func TestHandler_CreateFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		code int
	}{
		{"Created", nil, http.StatusCreated},
		{"Not the owner", code.ErrAccessDenied, http.StatusForbidden},
		{"Bad parent", code.ErrInvalidParent, http.StatusBadRequest},
		{"Private repository", code.ErrRepoNotFound, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got code.CreateFileParams
			svc := &code.StubService{
				CreateFileFunc: func(_ context.Context, _ int64, params code.CreateFileParams) (*code.Entry, error) {
					if tt.err != nil {
						return nil, fmt.Errorf("create file: %w", tt.err)
					}
					got = params
					return &code.Entry{
						ID:            9,
						RepositoryID:  params.RepositoryID,
						ParentID:      params.ParentID,
						Name:          params.Name,
						Extension:     params.Extension,
						Content:       params.Content,
						NumberOfLines: code.CountLines(params.Content),
						Size:          int64(len(params.Content)),
					}, nil
				},
			}
			h := code.NewHandler(svc)

			parentID := int64(4)
			ctx := user.NewContextWithID(context.Background(), ownerID)
			ctx = web.NewContextWithParams(ctx, code.CreateFileRequest{
				Name:         "main",
				RepositoryID: 1,
				ParentID:     &parentID,
				Extension:    ".py",
				Content:      "print(1)\n",
			})
			req := httptest.NewRequestWithContext(ctx, http.MethodPost, "/code/files", nil)
			rec := httptest.NewRecorder()
			h.CreateFile(rec, req)

			if rec.Code != tt.code {
				t.Fatalf(message.FmtErrStatusCode, rec.Code, tt.code)
			}
			if tt.err != nil {
				return
			}

			if got.Extension != code.PY {
				t.Errorf("params.Extension = %v, want: %v", got.Extension, code.PY)
			}

			var res web.OKResponse[code.FileData]
			if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
				t.Fatal(err)
			}
			if res.Data.NumberOfLines != 2 || res.Data.Content != "print(1)\n" {
				t.Errorf("lines, content = %d, %q, want: 2, %q", res.Data.NumberOfLines, res.Data.Content, "print(1)\n")
			}
			if res.Data.Extension == nil || *res.Data.Extension != "py" {
				t.Errorf("extension = %v, want: py", res.Data.Extension)
			}
			if res.Data.ParentID == nil || *res.Data.ParentID != parentID {
				t.Errorf("parent_id = %v, want: %d", res.Data.ParentID, parentID)
			}
		})
	}
}

func TestHandler_Tree(t *testing.T) {
	t.Parallel()

	folderID := int64(100)
	tree := []*code.Node{
		{Entry: code.Entry{ID: 101, Name: "notes"}, Children: []*code.Node{}},
		{Entry: code.Entry{ID: 102, Name: "pkg", IsDirectory: true}, Children: []*code.Node{
			{Entry: code.Entry{ID: 103, Name: "main", Extension: code.PY}, Children: []*code.Node{}},
		}},
	}

	tests := []struct {
		name       string
		query      string
		code       int
		wantFolder *int64
	}{
		{"Whole repository", "", http.StatusOK, nil},
		{"Under folder", "?folder_id=100", http.StatusOK, &folderID},
		{"Bad folder", "?folder_id=abc", http.StatusBadRequest, nil},
		{"Zero folder", "?folder_id=0", http.StatusBadRequest, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var gotFolder *int64
			svc := &code.StubService{
				TreeFunc: func(_ context.Context, _, _ int64, folderID *int64) ([]*code.Node, error) {
					gotFolder = folderID
					return tree, nil
				},
			}
			h := code.NewHandler(svc)

			ctx := user.NewContextWithID(context.Background(), ownerID)
			req := httptest.NewRequestWithContext(ctx, http.MethodGet, "/code/repos/1/tree"+tt.query, nil)
			req.SetPathValue("id", "1")
			rec := httptest.NewRecorder()
			h.Tree(rec, req)

			if rec.Code != tt.code {
				t.Fatalf(message.FmtErrStatusCode, rec.Code, tt.code)
			}
			if tt.code != http.StatusOK {
				return
			}

			if diff := cmp.Diff(tt.wantFolder, gotFolder); diff != "" {
				t.Errorf("folder mismatch (-want +got):\n%s", diff)
			}

			var res web.OKResponse[[]code.TreeNodeData]
			if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
				t.Fatal(err)
			}

			py := "py"
			txt := "txt"
			want := []code.TreeNodeData{
				{ID: 101, Name: "notes", Extension: &txt, Children: []code.TreeNodeData{}},
				{ID: 102, Name: "pkg", IsDirectory: true, Children: []code.TreeNodeData{
					{ID: 103, Name: "main", Extension: &py, Children: []code.TreeNodeData{}},
				}},
			}
			if diff := cmp.Diff(want, res.Data); diff != "" {
				t.Errorf("tree mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestHandler_DeleteFolder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		code int
	}{
		{"Deleted", nil, http.StatusNoContent},
		{"Not a folder", code.ErrEntryNotFound, http.StatusNotFound},
		{"Not the owner", code.ErrAccessDenied, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := &code.StubService{
				DeleteFolderFunc: func(_ context.Context, _, _ int64) error {
					return tt.err
				},
			}
			h := code.NewHandler(svc)

			ctx := user.NewContextWithID(context.Background(), ownerID)
			req := httptest.NewRequestWithContext(ctx, http.MethodDelete, "/code/folders/100", nil)
			req.SetPathValue("id", "100")
			rec := httptest.NewRecorder()
			h.DeleteFolder(rec, req)

			if rec.Code != tt.code {
				t.Errorf(message.FmtErrStatusCode, rec.Code, tt.code)
			}
		})
	}
}
