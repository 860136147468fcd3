package user_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/ferdiebergado/devlink/internal/config"
	"github.com/ferdiebergado/devlink/internal/model"
	"github.com/ferdiebergado/devlink/internal/pkg/message"
	"github.com/ferdiebergado/devlink/internal/pkg/web"
	"github.com/ferdiebergado/devlink/internal/user"
	"github.com/google/go-cmp/cmp"
)

var uploadCfg = &config.Upload{MaxPhotoBytes: 1 << 10}

func TestHandler_GetProfile(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC().Truncate(time.Second)
	desc := "Systems programming"

	tests := []struct {
		name        string
		pathID      string
		profileFunc func(ctx context.Context, userID int64) (*user.Profile, error)
		code        int
		want        *user.ProfileResponse
	}{
		{"Existing user", "7",
			func(_ context.Context, userID int64) (*user.Profile, error) {
				return &user.Profile{
					User: user.User{
						Model:    model.Model{ID: userID, CreatedAt: now},
						Email:    "ada@example.com",
						Nick:     "ada",
						IsActive: true,
					},
					Skills: []user.UserSkill{
						{Skill: user.Skill{ID: 1, Name: "Go", Description: &desc, Category: "Language"}, Level: user.Advanced},
					},
					Categories: []user.Category{{ID: 4, Name: "Backend", Type: "Technology"}},
				}, nil
			},
			http.StatusOK,
			&user.ProfileResponse{
				UserData: user.UserData{ID: 7, Email: "ada@example.com", Nick: "ada", IsActive: true, CreatedAt: now},
				Skills: []user.SkillData{
					{ID: 1, Name: "Go", Description: &desc, Category: "Language", Level: "Advanced"},
				},
				Interests:  []user.InterestData{},
				Categories: []user.CategoryData{{ID: 4, Name: "Backend", Type: "Technology"}},
			},
		},
		{"Missing user", "8",
			func(_ context.Context, _ int64) (*user.Profile, error) {
				return nil, user.ErrNotFound
			},
			http.StatusNotFound,
			nil,
		},
		{"Invalid id", "abc", nil, http.StatusBadRequest, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := &user.StubService{ProfileFunc: tt.profileFunc}
			h := user.NewHandler(svc, uploadCfg)

			req := httptest.NewRequest(http.MethodGet, "/users/"+tt.pathID, nil)
			req.SetPathValue("id", tt.pathID)
			rec := httptest.NewRecorder()
			h.GetProfile(rec, req)

			if rec.Code != tt.code {
				t.Errorf(message.FmtErrStatusCode, rec.Code, tt.code)
			}

			if tt.want != nil {
				var res web.OKResponse[*user.ProfileResponse]
				if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
					t.Fatal(err)
				}

				if diff := cmp.Diff(tt.want, res.Data); diff != "" {
					t.Errorf("res.Data mismatch (-want +got):\n%s", diff)
				}
			}
		})
	}
}

func TestHandler_GetMe_Unauthenticated(t *testing.T) {
	t.Parallel()

	h := user.NewHandler(&user.StubService{}, uploadCfg)
	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	rec := httptest.NewRecorder()
	h.GetMe(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf(message.FmtErrStatusCode, rec.Code, http.StatusUnauthorized)
	}
}

func TestHandler_AddSkill(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		code int
	}{
		{"Added", nil, http.StatusCreated},
		{"Unknown skill", user.ErrSkillNotFound, http.StatusNotFound},
		{"Duplicate skill", user.ErrSkillExists, http.StatusConflict},
		{"Query failure", user.ErrQueryFailed, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got user.AddSkillParams
			svc := &user.StubService{
				AddSkillFunc: func(_ context.Context, _ int64, params user.AddSkillParams) error {
					got = params
					return tt.err
				},
			}
			h := user.NewHandler(svc, uploadCfg)

			ctx := user.NewContextWithID(context.Background(), 1)
			ctx = web.NewContextWithParams(ctx, user.AddSkillRequest{SkillID: 3, Level: "Expert"})
			req := httptest.NewRequestWithContext(ctx, http.MethodPost, "/users/me/skills", nil)
			rec := httptest.NewRecorder()
			h.AddSkill(rec, req)

			if rec.Code != tt.code {
				t.Errorf(message.FmtErrStatusCode, rec.Code, tt.code)
			}

			want := user.AddSkillParams{SkillID: 3, Level: "Expert"}
			if got != want {
				t.Errorf("params = %+v, want: %+v", got, want)
			}
		})
	}
}

func TestHandler_SetInterests_Unknown(t *testing.T) {
	t.Parallel()

	svc := &user.StubService{
		SetInterestsFunc: func(_ context.Context, _ int64, _ []int64) ([]user.Interest, error) {
			return nil, user.ErrUnknownInterest
		},
	}
	h := user.NewHandler(svc, uploadCfg)

	ctx := user.NewContextWithID(context.Background(), 1)
	ctx = web.NewContextWithParams(ctx, user.SetInterestsRequest{InterestIDs: []int64{42}})
	req := httptest.NewRequestWithContext(ctx, http.MethodPut, "/users/me/interests", nil)
	rec := httptest.NewRecorder()
	h.SetInterests(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf(message.FmtErrStatusCode, rec.Code, http.StatusUnprocessableEntity)
	}
}

func multipartPhoto(t *testing.T, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="file"; filename="me.img"`)
	header.Set("Content-Type", contentType)
	part, err := mw.CreatePart(header)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatal(err)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	return body, mw.FormDataContentType()
}

func TestHandler_UploadPhoto(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		contentType string
		data        []byte
		svcErr      error
		code        int
	}{
		{"PNG upload", "image/png", []byte("png-bytes"), nil, http.StatusOK},
		{"Unsupported type", "image/gif", []byte("gif-bytes"), user.ErrUnsupportedPhotoType, http.StatusUnsupportedMediaType},
		{"Too large", "image/png", bytes.Repeat([]byte{1}, 4<<10), nil, http.StatusRequestEntityTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var saved *user.Photo
			svc := &user.StubService{
				UploadPhotoFunc: func(_ context.Context, photo *user.Photo) error {
					saved = photo
					return tt.svcErr
				},
			}
			h := user.NewHandler(svc, uploadCfg)

			body, contentType := multipartPhoto(t, tt.contentType, tt.data)
			ctx := user.NewContextWithID(context.Background(), 9)
			req := httptest.NewRequestWithContext(ctx, http.MethodPost, "/users/me/photo", body)
			req.Header.Set(web.HeaderContentType, contentType)
			rec := httptest.NewRecorder()
			h.UploadPhoto(rec, req)

			if rec.Code != tt.code {
				t.Fatalf(message.FmtErrStatusCode, rec.Code, tt.code)
			}

			if tt.code == http.StatusOK {
				if saved.UserID != 9 || saved.ContentType != tt.contentType || !bytes.Equal(saved.Data, tt.data) {
					t.Errorf("saved photo = %+v, want user 9 with %s", saved, tt.contentType)
				}
			}
		})
	}
}

func TestHandler_GetPhoto(t *testing.T) {
	t.Parallel()

	data := []byte{0x89, 'P', 'N', 'G'}
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"Stored photo", nil, http.StatusOK},
		{"No photo", user.ErrPhotoNotFound, http.StatusNotFound},
		{"Failure", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := &user.StubService{
				PhotoFunc: func(_ context.Context, userID int64) (*user.Photo, error) {
					if tt.err != nil {
						return nil, tt.err
					}
					return &user.Photo{UserID: userID, ContentType: "image/png", Data: data, UploadedAt: time.Now()}, nil
				},
			}
			h := user.NewHandler(svc, uploadCfg)

			req := httptest.NewRequest(http.MethodGet, "/users/3/photo", nil)
			req.SetPathValue("id", "3")
			rec := httptest.NewRecorder()
			h.GetPhoto(rec, req)

			if rec.Code != tt.code {
				t.Fatalf(message.FmtErrStatusCode, rec.Code, tt.code)
			}

			if tt.err == nil {
				if got := rec.Header().Get(web.HeaderContentType); got != "image/png" {
					t.Errorf("Content-Type = %q, want: %q", got, "image/png")
				}
				if !bytes.Equal(rec.Body.Bytes(), data) {
					t.Errorf("body = %v, want: %v", rec.Body.Bytes(), data)
				}
			}
		})
	}
}
