package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/ferdiebergado/devlink/internal/config"
	"github.com/ferdiebergado/devlink/internal/pkg/message"
	"github.com/ferdiebergado/devlink/internal/pkg/security"
	"github.com/ferdiebergado/devlink/internal/pkg/web"
	"github.com/ferdiebergado/devlink/internal/user"
)

const maskChar = "*"

type Handler struct {
	svc   Service
	cfg   *config.Config
	baker *security.CSRFCookieBaker
}

func NewHandler(svc Service, provider *Provider) *Handler {
	return &Handler{
		svc:   svc,
		cfg:   provider.Cfg,
		baker: provider.CSRFBaker,
	}
}

type RegisterUserRequest struct {
	Email           string  `json:"email,omitempty" validate:"required,email,max=255"`
	Password        string  `json:"password,omitempty" validate:"required,min=8,max=128"`
	PasswordConfirm string  `json:"password_confirm,omitempty" validate:"required,eqfield=Password"`
	FirstName       string  `json:"first_name,omitempty" validate:"required,max=100"`
	LastName        string  `json:"last_name,omitempty" validate:"required,max=100"`
	Nick            string  `json:"nick,omitempty" validate:"required,max=50"`
	Bio             *string `json:"bio,omitempty" validate:"omitempty,max=2000"`
	Age             *int    `json:"age,omitempty" validate:"omitempty,gte=0,lte=150"`
}

func (r RegisterUserRequest) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("email", maskChar),
		slog.String("password", maskChar),
		slog.String("password_confirm", maskChar),
		slog.String("nick", r.Nick),
	)
}

func (h *Handler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	req, err := web.ParamsFromContext[RegisterUserRequest](r.Context())
	if err != nil {
		web.RespondBadRequest(w, err, message.InvalidInput, nil)
		return
	}

	params := RegisterParams{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Nick:      req.Nick,
		Bio:       req.Bio,
		Age:       req.Age,
	}
	newUser, err := h.svc.Register(r.Context(), params)
	if err != nil {
		if errors.Is(err, ErrUserExists) {
			web.RespondConflict(w, err, "User already exists.", nil)
			return
		}

		web.RespondInternalServerError(w, err)
		return
	}

	msg := "Thank you for registering."
	data := user.NewUserData(newUser)
	web.RespondCreated(w, &msg, &data)
}

type UserLoginRequest struct {
	Email    string `json:"email,omitempty" validate:"required,email"`
	Password string `json:"password,omitempty" validate:"required"`
}

func (r UserLoginRequest) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("email", maskChar),
		slog.String("password", maskChar),
	)
}

type UserLoginResponse struct {
	UserID      int64  `json:"user_id,omitempty"`
	AccessToken string `json:"access_token,omitempty"`
}

func (h *Handler) LoginUser(w http.ResponseWriter, r *http.Request) {
	req, err := web.ParamsFromContext[UserLoginRequest](r.Context())
	if err != nil {
		web.RespondUnauthorized(w, err, message.InvalidUser, nil)
		return
	}

	tokens, err := h.svc.Login(r.Context(), LoginParams(req))
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			web.RespondUnauthorized(w, err, message.InvalidUser, nil)
			return
		}

		web.RespondInternalServerError(w, err)
		return
	}

	refreshCookieCfg := h.cfg.Cookie
	refreshCookie := security.NewSecureCookie(refreshCookieCfg.Name, tokens.RefreshToken, refreshCookieCfg.MaxAge.Duration)
	http.SetCookie(w, refreshCookie)

	csrfCookie, err := h.baker.Bake()
	if err != nil {
		web.RespondInternalServerError(w, err)
		return
	}
	http.SetCookie(w, csrfCookie)

	msg := "Logged in."
	data := &UserLoginResponse{
		UserID:      tokens.UserID,
		AccessToken: tokens.AccessToken,
	}
	web.RespondOK(w, &msg, data)
}

// RefreshToken expects the CSRF guard to have run.
func (h *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	refreshCookie, err := r.Cookie(h.cfg.Cookie.Name)
	if err != nil || refreshCookie.Value == "" {
		web.RespondUnauthorized(w, errors.New("refresh cookie missing"), message.InvalidToken, nil)
		return
	}

	accessToken, err := h.svc.Refresh(r.Context(), refreshCookie.Value)
	if err != nil {
		if errors.Is(err, ErrInvalidToken) {
			web.RespondUnauthorized(w, err, message.InvalidToken, nil)
			return
		}
		web.RespondInternalServerError(w, err)
		return
	}

	msg := "Token refreshed."
	data := &UserLoginResponse{
		AccessToken: accessToken,
	}
	web.RespondOK(w, &msg, data)
}

func (h *Handler) LogoutUser(w http.ResponseWriter, r *http.Request) {
	cookieName := h.cfg.Cookie.Name
	if _, err := r.Cookie(cookieName); err != nil {
		web.RespondUnauthorized(w, err, message.InvalidToken, nil)
		return
	}

	http.SetCookie(w, security.ExpiredCookie(cookieName))

	csrfCookie := security.ExpiredCookie(h.baker.Name())
	csrfCookie.HttpOnly = false
	http.SetCookie(w, csrfCookie)

	msg := "Logged out."
	web.RespondOK(w, &msg, &struct{}{})
}
