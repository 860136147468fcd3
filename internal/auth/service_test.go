package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ferdiebergado/devlink/internal/auth"
	"github.com/ferdiebergado/devlink/internal/config"
	"github.com/ferdiebergado/devlink/internal/model"
	timex "github.com/ferdiebergado/devlink/internal/pkg/time"
	"github.com/ferdiebergado/devlink/internal/platform/hash"
	"github.com/ferdiebergado/devlink/internal/platform/jwt"
	"github.com/ferdiebergado/devlink/internal/user"
)

var jwtCfg = &config.JWT{
	JTILength:  8,
	Issuer:     "devlink",
	TTL:        timex.Duration{Duration: 15 * time.Minute},
	RefreshTTL: timex.Duration{Duration: 24 * time.Hour},
}

var plainHasher = &hash.StubHasher{
	HashFunc: func(plain string) (string, error) {
		return "hashed:" + plain, nil
	},
	VerifyFunc: func(plain, hashed string) (bool, error) {
		return "hashed:"+plain == hashed, nil
	},
}

func TestService_Register(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		findFunc   func(ctx context.Context, email string) (*user.User, error)
		createErr  error
		wantCreate bool
		err        error
	}{
		{"New user",
			func(_ context.Context, _ string) (*user.User, error) { return nil, user.ErrNotFound },
			nil, true, nil,
		},
		{"Existing user",
			func(_ context.Context, email string) (*user.User, error) { return &user.User{Email: email}, nil },
			nil, false, auth.ErrUserExists,
		},
		{"Concurrent duplicate",
			func(_ context.Context, _ string) (*user.User, error) { return nil, user.ErrNotFound },
			user.ErrDuplicateEmail, true, auth.ErrUserExists,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var created *user.CreateParams
			userSvc := &user.StubService{
				FindByEmailFunc: tt.findFunc,
				CreateFunc: func(_ context.Context, params user.CreateParams) (*user.User, error) {
					created = &params
					if tt.createErr != nil {
						return nil, tt.createErr
					}
					return &user.User{Model: model.Model{ID: 1}, Email: params.Email, IsActive: true}, nil
				},
			}
			svc := auth.NewService(userSvc, plainHasher, &jwt.StubSigner{}, jwtCfg)

			params := auth.RegisterParams{Email: "ada@example.com", Password: "s3cretpass", Nick: "ada"}
			_, err := svc.Register(context.Background(), params)
			if !errors.Is(err, tt.err) {
				t.Fatalf("svc.Register() = %v, want: %v", err, tt.err)
			}

			if gotCreate := created != nil; gotCreate != tt.wantCreate {
				t.Fatalf("create called = %t, want: %t", gotCreate, tt.wantCreate)
			}

			if created != nil && created.PasswordHash != "hashed:s3cretpass" {
				t.Errorf("PasswordHash = %q, want: %q", created.PasswordHash, "hashed:s3cretpass")
			}
		})
	}
}

func TestService_Login(t *testing.T) {
	t.Parallel()

	stored := &user.User{Model: model.Model{ID: 42}, Email: "ada@example.com", PasswordHash: "hashed:right", IsActive: true}

	tests := []struct {
		name     string
		password string
		stored   *user.User
		err      error
	}{
		{"Valid credentials", "right", stored, nil},
		{"Wrong password", "wrong", stored, auth.ErrInvalidCredentials},
		{"Unknown email", "right", nil, auth.ErrInvalidCredentials},
		{"Inactive user", "right", &user.User{Model: model.Model{ID: 43}, PasswordHash: "hashed:right"}, auth.ErrInvalidCredentials},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			userSvc := &user.StubService{
				FindByEmailFunc: func(_ context.Context, _ string) (*user.User, error) {
					if tt.stored == nil {
						return nil, user.ErrNotFound
					}
					return tt.stored, nil
				},
			}
			signer := jwt.NewGolangJWTSigner(jwtCfg, "key")
			svc := auth.NewService(userSvc, plainHasher, signer, jwtCfg)

			tokens, err := svc.Login(context.Background(), auth.LoginParams{Email: "ada@example.com", Password: tt.password})
			if !errors.Is(err, tt.err) {
				t.Fatalf("svc.Login() = %v, want: %v", err, tt.err)
			}

			if tt.err != nil {
				return
			}

			accessID, err := auth.VerifyUserToken(signer, tokens.AccessToken, auth.AudienceAccess)
			if err != nil || accessID != 42 {
				t.Errorf("VerifyUserToken(access) = %d, %v, want: 42, nil", accessID, err)
			}

			if _, err := auth.VerifyUserToken(signer, tokens.RefreshToken, auth.AudienceAccess); !errors.Is(err, auth.ErrInvalidToken) {
				t.Errorf("refresh token accepted as access token: %v", err)
			}
		})
	}
}

func TestService_Refresh(t *testing.T) {
	t.Parallel()

	signer := jwt.NewGolangJWTSigner(jwtCfg, "key")
	refresh, err := signer.Sign("7", []string{auth.AudienceRefresh}, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	access, err := signer.Sign("7", []string{auth.AudienceAccess}, time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		token  string
		active bool
		err    error
	}{
		{"Valid refresh token", refresh, true, nil},
		{"Access token rejected", access, true, auth.ErrInvalidToken},
		{"Garbage token", "not-a-jwt", true, auth.ErrInvalidToken},
		{"Deactivated user", refresh, false, auth.ErrInvalidToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			userSvc := &user.StubService{
				FindFunc: func(_ context.Context, userID int64) (*user.User, error) {
					return &user.User{Model: model.Model{ID: userID}, IsActive: tt.active}, nil
				},
			}
			svc := auth.NewService(userSvc, plainHasher, signer, jwtCfg)

			got, err := svc.Refresh(context.Background(), tt.token)
			if !errors.Is(err, tt.err) {
				t.Fatalf("svc.Refresh() = %v, want: %v", err, tt.err)
			}

			if tt.err == nil {
				userID, err := auth.VerifyUserToken(signer, got, auth.AudienceAccess)
				if err != nil || userID != 7 {
					t.Errorf("VerifyUserToken(new access) = %d, %v, want: 7, nil", userID, err)
				}
			}
		})
	}
}
