package user

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/ferdiebergado/devlink/internal/config"
	"github.com/ferdiebergado/devlink/internal/pkg/message"
	"github.com/ferdiebergado/devlink/internal/pkg/web"
)

const photoField = "file"

type Handler struct {
	svc           Service
	maxPhotoBytes int64
}

func NewHandler(svc Service, cfg *config.Upload) *Handler {
	return &Handler{
		svc:           svc,
		maxPhotoBytes: cfg.MaxPhotoBytes,
	}
}

type UserData struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Nick      string    `json:"nick"`
	Bio       *string   `json:"bio"`
	Age       *int      `json:"age"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

type SkillData struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Category    string  `json:"category"`
	Level       string  `json:"level,omitempty"`
}

type InterestData struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	CategoryID  *int64  `json:"category_id"`
}

type CategoryData struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Type        string  `json:"type"`
}

type ProfileResponse struct {
	UserData
	Skills     []SkillData    `json:"skills"`
	Interests  []InterestData `json:"interests"`
	Categories []CategoryData `json:"categories,omitempty"`
}

func NewUserData(u *User) UserData {
	return UserData{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Nick:      u.Nick,
		Bio:       u.Bio,
		Age:       u.Age,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

func NewProfileResponse(p *Profile) *ProfileResponse {
	res := &ProfileResponse{
		UserData:  NewUserData(&p.User),
		Skills:    make([]SkillData, 0, len(p.Skills)),
		Interests: newInterestList(p.Interests),
	}

	for _, s := range p.Skills {
		data := newSkillData(&s.Skill)
		data.Level = s.Level.String()
		res.Skills = append(res.Skills, data)
	}

	if len(p.Categories) > 0 {
		res.Categories = newCategoryList(p.Categories)
	}

	return res
}

func newSkillData(s *Skill) SkillData {
	return SkillData{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Category:    s.Category,
	}
}

func newInterestList(interests []Interest) []InterestData {
	data := make([]InterestData, 0, len(interests))
	for _, i := range interests {
		data = append(data, InterestData{
			ID:          i.ID,
			Name:        i.Name,
			Description: i.Description,
			CategoryID:  i.CategoryID,
		})
	}
	return data
}

func newCategoryList(categories []Category) []CategoryData {
	data := make([]CategoryData, 0, len(categories))
	for _, c := range categories {
		data = append(data, CategoryData{
			ID:          c.ID,
			Name:        c.Name,
			Description: c.Description,
			Type:        c.Type,
		})
	}
	return data
}

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := web.PathID(r, "id")
	if err != nil {
		web.RespondBadRequest(w, err, message.InvalidID, nil)
		return
	}

	h.respondProfile(w, r, userID)
}

func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID, err := IDFromContext(r.Context())
	if err != nil {
		web.RespondUnauthorized(w, err, message.InvalidToken, nil)
		return
	}

	h.respondProfile(w, r, userID)
}

func (h *Handler) respondProfile(w http.ResponseWriter, r *http.Request, userID int64) {
	profile, err := h.svc.Profile(r.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			web.RespondNotFound(w, err, "User not found.", nil)
			return
		}
		web.RespondInternalServerError(w, err)
		return
	}

	web.RespondOK(w, nil, NewProfileResponse(profile))
}

type UpdateProfileRequest struct {
	FirstName string  `json:"first_name,omitempty" validate:"omitempty,max=100"`
	LastName  string  `json:"last_name,omitempty" validate:"omitempty,max=100"`
	Nick      string  `json:"nick,omitempty" validate:"omitempty,max=50"`
	Bio       *string `json:"bio,omitempty" validate:"omitempty,max=2000"`
	Age       *int    `json:"age,omitempty" validate:"omitempty,gte=0,lte=150"`
}

func (h *Handler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userID, err := IDFromContext(r.Context())
	if err != nil {
		web.RespondUnauthorized(w, err, message.InvalidToken, nil)
		return
	}

	req, err := web.ParamsFromContext[UpdateProfileRequest](r.Context())
	if err != nil {
		web.RespondBadRequest(w, err, message.InvalidInput, nil)
		return
	}

	profile, err := h.svc.Update(r.Context(), userID, UpdateParams(req))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			web.RespondNotFound(w, err, "User not found.", nil)
			return
		}
		web.RespondInternalServerError(w, err)
		return
	}

	msg := "Profile updated."
	web.RespondOK(w, &msg, NewProfileResponse(profile))
}

type AddSkillRequest struct {
	SkillID int64  `json:"skill_id" validate:"required,gt=0"`
	Level   string `json:"level,omitempty" validate:"max=32"`
}

func (h *Handler) AddSkill(w http.ResponseWriter, r *http.Request) {
	userID, err := IDFromContext(r.Context())
	if err != nil {
		web.RespondUnauthorized(w, err, message.InvalidToken, nil)
		return
	}

	req, err := web.ParamsFromContext[AddSkillRequest](r.Context())
	if err != nil {
		web.RespondBadRequest(w, err, message.InvalidInput, nil)
		return
	}

	if err := h.svc.AddSkill(r.Context(), userID, AddSkillParams(req)); err != nil {
		switch {
		case errors.Is(err, ErrNotFound), errors.Is(err, ErrSkillNotFound):
			web.RespondNotFound(w, err, "User or skill not found.", nil)
		case errors.Is(err, ErrSkillExists):
			web.RespondConflict(w, err, "Skill already added.", nil)
		default:
			web.RespondInternalServerError(w, err)
		}
		return
	}

	msg := "Skill added."
	web.RespondCreated[struct{}](w, &msg, nil)
}

func (h *Handler) RemoveSkill(w http.ResponseWriter, r *http.Request) {
	userID, err := IDFromContext(r.Context())
	if err != nil {
		web.RespondUnauthorized(w, err, message.InvalidToken, nil)
		return
	}

	skillID, err := web.PathID(r, "skillID")
	if err != nil {
		web.RespondBadRequest(w, err, message.InvalidID, nil)
		return
	}

	if err := h.svc.RemoveSkill(r.Context(), userID, skillID); err != nil {
		if errors.Is(err, ErrSkillNotFound) {
			web.RespondNotFound(w, err, "Skill not found.", nil)
			return
		}
		web.RespondInternalServerError(w, err)
		return
	}

	web.RespondNoContent(w)
}

type SetInterestsRequest struct {
	InterestIDs []int64 `json:"interest_ids" validate:"required,max=100,dive,gt=0"`
}

func (h *Handler) SetInterests(w http.ResponseWriter, r *http.Request) {
	userID, err := IDFromContext(r.Context())
	if err != nil {
		web.RespondUnauthorized(w, err, message.InvalidToken, nil)
		return
	}

	req, err := web.ParamsFromContext[SetInterestsRequest](r.Context())
	if err != nil {
		web.RespondBadRequest(w, err, message.InvalidInput, nil)
		return
	}

	interests, err := h.svc.SetInterests(r.Context(), userID, req.InterestIDs)
	if err != nil {
		if errors.Is(err, ErrUnknownInterest) {
			web.RespondUnprocessableEntity(w, err, message.InvalidInput, map[string]string{"interest_ids": "interest_ids contains an unknown interest"})
			return
		}
		web.RespondInternalServerError(w, err)
		return
	}

	msg := "Interests updated."
	data := newInterestList(interests)
	web.RespondOK(w, &msg, &data)
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := SearchParams{
		Skill:    q.Get("skill"),
		Interest: q.Get("interest"),
		Category: q.Get("category"),
	}

	profiles, err := h.svc.Search(r.Context(), params)
	if err != nil {
		web.RespondInternalServerError(w, err)
		return
	}

	data := make([]*ProfileResponse, 0, len(profiles))
	for i := range profiles {
		data = append(data, NewProfileResponse(&profiles[i]))
	}
	web.RespondOK(w, nil, &data)
}

type PhotoResponse struct {
	UserID      int64     `json:"user_id"`
	ContentType string    `json:"content_type"`
	Size        int       `json:"size"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

func (h *Handler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	userID, err := IDFromContext(r.Context())
	if err != nil {
		web.RespondUnauthorized(w, err, message.InvalidToken, nil)
		return
	}

	if r.ContentLength > h.maxPhotoBytes {
		web.RespondRequestEntityTooLarge(w, fmt.Errorf("content length %d exceeds %d", r.ContentLength, h.maxPhotoBytes), "Photo is too large.", nil)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxPhotoBytes)
	file, header, err := r.FormFile(photoField)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			web.RespondRequestEntityTooLarge(w, err, "Photo is too large.", nil)
			return
		}
		web.RespondBadRequest(w, err, "No file uploaded.", map[string]string{photoField: "file is required"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		web.RespondBadRequest(w, err, "Unable to read file.", nil)
		return
	}

	if len(data) == 0 {
		web.RespondBadRequest(w, errors.New("empty upload"), "No file uploaded.", map[string]string{photoField: "file is empty"})
		return
	}

	contentType := header.Header.Get(web.HeaderContentType)
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	photo := &Photo{UserID: userID, ContentType: contentType, Data: data}
	if err := h.svc.UploadPhoto(r.Context(), photo); err != nil {
		if errors.Is(err, ErrUnsupportedPhotoType) {
			web.RespondUnsupportedMediaType(w, err, "Unsupported image type.", nil)
			return
		}
		web.RespondInternalServerError(w, err)
		return
	}

	msg := "Photo uploaded."
	res := &PhotoResponse{
		UserID:      photo.UserID,
		ContentType: photo.ContentType,
		Size:        len(photo.Data),
		UploadedAt:  photo.UploadedAt,
	}
	web.RespondOK(w, &msg, res)
}

func (h *Handler) GetPhoto(w http.ResponseWriter, r *http.Request) {
	userID, err := web.PathID(r, "id")
	if err != nil {
		web.RespondBadRequest(w, err, message.InvalidID, nil)
		return
	}

	photo, err := h.svc.Photo(r.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrPhotoNotFound) {
			web.RespondNotFound(w, err, "Photo not found.", nil)
			return
		}
		web.RespondInternalServerError(w, err)
		return
	}

	w.Header().Set(web.HeaderContentType, photo.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(photo.Data)))
	w.Header().Set("Last-Modified", photo.UploadedAt.UTC().Format(http.TimeFormat))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(photo.Data); err != nil {
		slog.Error("write photo", "user_id", userID, "reason", err)
	}
}

func (h *Handler) ListSkills(w http.ResponseWriter, r *http.Request) {
	skills, err := h.svc.Skills(r.Context())
	if err != nil {
		web.RespondInternalServerError(w, err)
		return
	}

	data := make([]SkillData, 0, len(skills))
	for i := range skills {
		data = append(data, newSkillData(&skills[i]))
	}
	web.RespondOK(w, nil, &data)
}

func (h *Handler) ListInterests(w http.ResponseWriter, r *http.Request) {
	interests, err := h.svc.Interests(r.Context())
	if err != nil {
		web.RespondInternalServerError(w, err)
		return
	}

	data := newInterestList(interests)
	web.RespondOK(w, nil, &data)
}

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.Categories(r.Context())
	if err != nil {
		web.RespondInternalServerError(w, err)
		return
	}

	data := newCategoryList(categories)
	web.RespondOK(w, nil, &data)
}
