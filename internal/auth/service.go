package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"

	"github.com/ferdiebergado/devlink/internal/config"
	"github.com/ferdiebergado/devlink/internal/platform/hash"
	"github.com/ferdiebergado/devlink/internal/platform/jwt"
	"github.com/ferdiebergado/devlink/internal/user"
)

// Token audiences keep refresh tokens from being accepted as access tokens.
const (
	AudienceAccess  = "access"
	AudienceRefresh = "refresh"
)

var (
	ErrUserExists         = errors.New("auth service: user already exists")
	ErrInvalidCredentials = errors.New("auth service: invalid credentials")
	ErrInvalidToken       = errors.New("auth service: invalid token")
)

type Service interface {
	Register(ctx context.Context, params RegisterParams) (*user.User, error)
	Login(ctx context.Context, params LoginParams) (*Tokens, error)
	Refresh(ctx context.Context, refreshToken string) (accessToken string, err error)
}

type RegisterParams struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Nick      string
	Bio       *string
	Age       *int
}

func (p RegisterParams) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("email", maskChar),
		slog.String("password", maskChar),
		slog.String("nick", p.Nick),
	)
}

type LoginParams struct {
	Email    string
	Password string
}

func (p LoginParams) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("email", maskChar),
		slog.String("password", maskChar),
	)
}

type Tokens struct {
	UserID       int64
	AccessToken  string
	RefreshToken string
}

type service struct {
	userSvc user.Service
	hasher  hash.Hasher
	signer  jwt.Signer
	cfg     *config.JWT
}

var _ Service = (*service)(nil)

func NewService(userSvc user.Service, hasher hash.Hasher, signer jwt.Signer, cfg *config.JWT) Service {
	return &service{
		userSvc: userSvc,
		hasher:  hasher,
		signer:  signer,
		cfg:     cfg,
	}
}

func (s *service) Register(ctx context.Context, params RegisterParams) (*user.User, error) {
	existing, err := s.userSvc.FindByEmail(ctx, params.Email)
	if err != nil && !errors.Is(err, user.ErrNotFound) {
		return nil, fmt.Errorf("find user with email %s: %w", params.Email, err)
	}

	if existing != nil {
		return nil, ErrUserExists
	}

	passwordHash, err := s.hasher.Hash(params.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	newUser, err := s.userSvc.Create(ctx, user.CreateParams{
		Email:        params.Email,
		PasswordHash: passwordHash,
		FirstName:    params.FirstName,
		LastName:     params.LastName,
		Nick:         params.Nick,
		Bio:          params.Bio,
		Age:          params.Age,
	})
	if err != nil {
		if errors.Is(err, user.ErrDuplicateEmail) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("create user %s: %w", params.Email, err)
	}

	slog.Info("user registered", "user_id", newUser.ID)
	return newUser, nil
}

func (s *service) Login(ctx context.Context, params LoginParams) (*Tokens, error) {
	u, err := s.userSvc.FindByEmail(ctx, params.Email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}

	if !u.IsActive {
		return nil, ErrInvalidCredentials
	}

	ok, err := s.hasher.Verify(params.Password, u.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verify password of user %d: %w", u.ID, err)
	}

	if !ok {
		return nil, ErrInvalidCredentials
	}

	subject := strconv.FormatInt(u.ID, 10)
	accessToken, err := s.signer.Sign(subject, []string{AudienceAccess}, s.cfg.TTL.Duration)
	if err != nil {
		return nil, fmt.Errorf("sign access token for user %d: %w", u.ID, err)
	}

	refreshToken, err := s.signer.Sign(subject, []string{AudienceRefresh}, s.cfg.RefreshTTL.Duration)
	if err != nil {
		return nil, fmt.Errorf("sign refresh token for user %d: %w", u.ID, err)
	}

	return &Tokens{UserID: u.ID, AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (s *service) Refresh(ctx context.Context, refreshToken string) (string, error) {
	userID, err := VerifyUserToken(s.signer, refreshToken, AudienceRefresh)
	if err != nil {
		return "", err
	}

	// A deactivated user keeps no session.
	u, err := s.userSvc.Find(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return "", ErrInvalidToken
		}
		return "", fmt.Errorf("find user %d: %w", userID, err)
	}

	if !u.IsActive {
		return "", ErrInvalidToken
	}

	accessToken, err := s.signer.Sign(strconv.FormatInt(userID, 10), []string{AudienceAccess}, s.cfg.TTL.Duration)
	if err != nil {
		return "", fmt.Errorf("sign access token for user %d: %w", userID, err)
	}
	return accessToken, nil
}

// VerifyUserToken verifies token and returns the user ID in its subject.
// The token must carry the given audience.
func VerifyUserToken(signer jwt.Signer, token, audience string) (int64, error) {
	claims, err := signer.Verify(token)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if !slices.Contains(claims.Audience, audience) {
		return 0, fmt.Errorf("%w: audience %v lacks %q", ErrInvalidToken, claims.Audience, audience)
	}

	userID, err := strconv.ParseInt(claims.UserID, 10, 64)
	if err != nil || userID <= 0 {
		return 0, fmt.Errorf("%w: subject %q", ErrInvalidToken, claims.UserID)
	}
	return userID, nil
}
