package code

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ferdiebergado/devlink/internal/pkg/message"
	"github.com/ferdiebergado/devlink/internal/pkg/web"
	"github.com/ferdiebergado/devlink/internal/user"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

type RepositoryData struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	Name         string    `json:"name"`
	Description  *string   `json:"description"`
	Visibility   string    `json:"visibility"`
	License      *string   `json:"license,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	LastModified time.Time `json:"last_modified"`
	TotalFiles   int       `json:"total_files"`
	TotalFolders int       `json:"total_folders"`
	TotalSize    int64     `json:"total_size"`
}

func newRepositoryData(r *Repo) *RepositoryData {
	return &RepositoryData{
		ID:           r.ID,
		UserID:       r.OwnerID,
		Name:         r.Name,
		Description:  r.Description,
		Visibility:   r.Metadata.Visibility.String(),
		License:      r.Metadata.License,
		CreatedAt:    r.CreatedAt,
		LastModified: r.Metadata.LastModified,
		TotalFiles:   r.Metadata.TotalFiles,
		TotalFolders: r.Metadata.TotalFolders,
		TotalSize:    r.Metadata.TotalSize,
	}
}

type TreeNodeData struct {
	ID           int64          `json:"id"`
	Name         string         `json:"name"`
	IsDirectory  bool           `json:"is_directory"`
	Extension    *string        `json:"extension,omitempty"`
	Size         int64          `json:"size"`
	LastModified time.Time      `json:"last_modified"`
	Children     []TreeNodeData `json:"children"`
}

func newTreeNodeData(e *Entry) TreeNodeData {
	data := TreeNodeData{
		ID:           e.ID,
		Name:         e.Name,
		IsDirectory:  e.IsDirectory,
		Size:         e.Size,
		LastModified: e.UpdatedAt,
		Children:     []TreeNodeData{},
	}
	if !e.IsDirectory {
		ext := e.Extension.String()
		data.Extension = &ext
	}
	return data
}

// NewTree converts nodes and all their descendants.
func NewTree(nodes []*Node) []TreeNodeData {
	tree := make([]TreeNodeData, 0, len(nodes))
	for _, n := range nodes {
		data := newTreeNodeData(&n.Entry)
		data.Children = NewTree(n.Children)
		tree = append(tree, data)
	}
	return tree
}

type FileData struct {
	TreeNodeData
	RepositoryID  int64  `json:"repository_id"`
	ParentID      *int64 `json:"parent_id"`
	Content       string `json:"content"`
	NumberOfLines int    `json:"number_of_lines"`
}

func newFileData(e *Entry) *FileData {
	return &FileData{
		TreeNodeData:  newTreeNodeData(e),
		RepositoryID:  e.RepositoryID,
		ParentID:      e.ParentID,
		Content:       e.Content,
		NumberOfLines: e.NumberOfLines,
	}
}

type CreateRepositoryRequest struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=1000"`
	Visibility  string  `json:"visibility,omitempty"`
	License     *string `json:"license,omitempty" validate:"omitempty,max=100"`
}

type CreateFolderRequest struct {
	Name         string `json:"name" validate:"required,max=255"`
	RepositoryID int64  `json:"repository_id" validate:"required,gt=0"`
	ParentID     *int64 `json:"parent_id,omitempty" validate:"omitempty,gt=0"`
}

type CreateFileRequest struct {
	Name         string `json:"name" validate:"required,max=255"`
	RepositoryID int64  `json:"repository_id" validate:"required,gt=0"`
	ParentID     *int64 `json:"parent_id,omitempty" validate:"omitempty,gt=0"`
	Extension    string `json:"extension,omitempty"`
	Content      string `json:"content"`
}

type UpdateContentRequest struct {
	Content string `json:"content"`
}

type CreateSnippetRequest struct {
	Name      string `json:"name" validate:"required,max=255"`
	Extension string `json:"extension,omitempty"`
	Content   string `json:"content"`
}

func (h *Handler) CreateRepository(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, err := user.IDFromContext(ctx)
	if err != nil {
		web.RespondUnauthorized(w, err, message.InvalidToken, nil)
		return
	}

	req, err := web.ParamsFromContext[CreateRepositoryRequest](ctx)
	if err != nil {
		web.RespondUnprocessableEntity(w, err, message.InvalidInput, nil)
		return
	}

	repo, err := h.svc.CreateRepository(ctx, userID, CreateRepositoryParams{
		Name:        req.Name,
		Description: req.Description,
		License:     req.License,
		Visibility:  ParseVisibility(req.Visibility),
	})
	if err != nil {
		web.RespondInternalServerError(w, err)
		return
	}

	msg := "Repository created."
	web.RespondCreated(w, &msg, newRepositoryData(repo))
}

func (h *Handler) GetRepository(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := identify(w, r)
	if !ok {
		return
	}

	repo, err := h.svc.Repository(r.Context(), userID, id)
	if err != nil {
		respondError(w, err)
		return
	}

	web.RespondOK(w, nil, newRepositoryData(repo))
}

func (h *Handler) ListRepositories(w http.ResponseWriter, r *http.Request) {
	userID, err := user.IDFromContext(r.Context())
	if err != nil {
		web.RespondUnauthorized(w, err, message.InvalidToken, nil)
		return
	}

	repos, err := h.svc.Repositories(r.Context(), userID)
	if err != nil {
		web.RespondInternalServerError(w, err)
		return
	}

	data := make([]RepositoryData, 0, len(repos))
	for i := range repos {
		data = append(data, *newRepositoryData(&repos[i]))
	}
	web.RespondOK(w, nil, &data)
}

func (h *Handler) DeleteRepository(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := identify(w, r)
	if !ok {
		return
	}

	if err := h.svc.DeleteRepository(r.Context(), userID, id); err != nil {
		respondError(w, err)
		return
	}

	web.RespondNoContent(w)
}

func (h *Handler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, err := user.IDFromContext(ctx)
	if err != nil {
		web.RespondUnauthorized(w, err, message.InvalidToken, nil)
		return
	}

	req, err := web.ParamsFromContext[CreateFolderRequest](ctx)
	if err != nil {
		web.RespondUnprocessableEntity(w, err, message.InvalidInput, nil)
		return
	}

	folder, err := h.svc.CreateFolder(ctx, userID, CreateFolderParams(req))
	if err != nil {
		respondError(w, err)
		return
	}

	data := newTreeNodeData(folder)
	web.RespondCreated(w, nil, &data)
}

func (h *Handler) GetFolder(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := identify(w, r)
	if !ok {
		return
	}

	folder, err := h.svc.Folder(r.Context(), userID, id)
	if err != nil {
		respondError(w, err)
		return
	}

	data := NewTree([]*Node{folder})[0]
	web.RespondOK(w, nil, &data)
}

func (h *Handler) DeleteFolder(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := identify(w, r)
	if !ok {
		return
	}

	if err := h.svc.DeleteFolder(r.Context(), userID, id); err != nil {
		respondError(w, err)
		return
	}

	web.RespondNoContent(w)
}

func (h *Handler) CreateFile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, err := user.IDFromContext(ctx)
	if err != nil {
		web.RespondUnauthorized(w, err, message.InvalidToken, nil)
		return
	}

	req, err := web.ParamsFromContext[CreateFileRequest](ctx)
	if err != nil {
		web.RespondUnprocessableEntity(w, err, message.InvalidInput, nil)
		return
	}

	file, err := h.svc.CreateFile(ctx, userID, CreateFileParams{
		Name:         req.Name,
		RepositoryID: req.RepositoryID,
		ParentID:     req.ParentID,
		Extension:    ParseExtension(req.Extension),
		Content:      req.Content,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	web.RespondCreated(w, nil, newFileData(file))
}

func (h *Handler) GetFile(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := identify(w, r)
	if !ok {
		return
	}

	file, err := h.svc.File(r.Context(), userID, id)
	if err != nil {
		respondError(w, err)
		return
	}

	web.RespondOK(w, nil, newFileData(file))
}

func (h *Handler) UpdateFileContent(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := identify(w, r)
	if !ok {
		return
	}

	req, err := web.ParamsFromContext[UpdateContentRequest](r.Context())
	if err != nil {
		web.RespondUnprocessableEntity(w, err, message.InvalidInput, nil)
		return
	}

	file, err := h.svc.UpdateFileContent(r.Context(), userID, id, req.Content)
	if err != nil {
		respondError(w, err)
		return
	}

	web.RespondOK(w, nil, newFileData(file))
}

func (h *Handler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := identify(w, r)
	if !ok {
		return
	}

	if err := h.svc.DeleteFile(r.Context(), userID, id); err != nil {
		respondError(w, err)
		return
	}

	web.RespondNoContent(w)
}

// folderQuery reads the optional folder_id query parameter. Nil means the repository roots.
func folderQuery(r *http.Request) (*int64, error) {
	if !r.URL.Query().Has("folder_id") {
		return nil, nil
	}

	id, err := web.QueryInt64(r, "folder_id", 0)
	if err != nil {
		return nil, err
	}
	if id <= 0 {
		return nil, fmt.Errorf("invalid folder_id %d", id)
	}
	return &id, nil
}

func (h *Handler) Tree(w http.ResponseWriter, r *http.Request) {
	userID, repoID, ok := identify(w, r)
	if !ok {
		return
	}

	folderID, err := folderQuery(r)
	if err != nil {
		web.RespondBadRequest(w, err, message.InvalidQuery, nil)
		return
	}

	nodes, err := h.svc.Tree(r.Context(), userID, repoID, folderID)
	if err != nil {
		respondError(w, err)
		return
	}

	tree := NewTree(nodes)
	web.RespondOK(w, nil, &tree)
}

func (h *Handler) CreateSnippet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, err := user.IDFromContext(ctx)
	if err != nil {
		web.RespondUnauthorized(w, err, message.InvalidToken, nil)
		return
	}

	req, err := web.ParamsFromContext[CreateSnippetRequest](ctx)
	if err != nil {
		web.RespondUnprocessableEntity(w, err, message.InvalidInput, nil)
		return
	}

	snippet, err := h.svc.CreateSnippet(ctx, userID, CreateSnippetParams{
		Name:      req.Name,
		Extension: ParseExtension(req.Extension),
		Content:   req.Content,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	web.RespondCreated(w, nil, newFileData(snippet))
}

func (h *Handler) GetSnippet(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := identify(w, r)
	if !ok {
		return
	}

	snippet, err := h.svc.Snippet(r.Context(), userID, id)
	if err != nil {
		respondError(w, err)
		return
	}

	web.RespondOK(w, nil, newFileData(snippet))
}

// identify reads the caller and the id path value, responding on failure.
func identify(w http.ResponseWriter, r *http.Request) (userID, id int64, ok bool) {
	userID, err := user.IDFromContext(r.Context())
	if err != nil {
		web.RespondUnauthorized(w, err, message.InvalidToken, nil)
		return 0, 0, false
	}

	id, err = web.PathID(r, "id")
	if err != nil {
		web.RespondBadRequest(w, err, message.InvalidID, nil)
		return 0, 0, false
	}
	return userID, id, true
}

func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrRepoNotFound):
		web.RespondNotFound(w, err, "Repository not found.", nil)
	case errors.Is(err, ErrEntryNotFound):
		web.RespondNotFound(w, err, message.NotFound, nil)
	case errors.Is(err, ErrAccessDenied):
		web.RespondForbidden(w, err, message.Forbidden, nil)
	case errors.Is(err, ErrInvalidParent):
		web.RespondBadRequest(w, err, "Parent must be a folder in the same repository.", nil)
	default:
		web.RespondInternalServerError(w, err)
	}
}
