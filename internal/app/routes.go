package app

import (
	"net/http"
	"time"

	"github.com/ferdiebergado/devlink/internal/auth"
	"github.com/ferdiebergado/devlink/internal/chat"
	"github.com/ferdiebergado/devlink/internal/code"
	"github.com/ferdiebergado/devlink/internal/dashboard"
	"github.com/ferdiebergado/devlink/internal/friend"
	"github.com/ferdiebergado/devlink/internal/match"
	"github.com/ferdiebergado/devlink/internal/middleware"
	"github.com/ferdiebergado/devlink/internal/pkg/web"
	"github.com/ferdiebergado/devlink/internal/platform/router"
	"github.com/ferdiebergado/devlink/internal/platform/validation"
	"github.com/ferdiebergado/devlink/internal/user"
)

// jsonBody decodes and validates a JSON request body of type T.
func jsonBody[T any](maxBodySize int64, validator validation.Validator) []router.Middleware {
	return []router.Middleware{
		middleware.CheckContentType,
		middleware.DecodePayload[T](maxBodySize),
		middleware.ValidateInput[T](validator),
	}
}

type HealthData struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

func health(w http.ResponseWriter, _ *http.Request) {
	web.RespondOK(w, nil, &HealthData{Status: "healthy", Timestamp: time.Now().UTC()})
}

func mountAuthRoutes(r router.Router, handler *auth.Handler, a *App) {
	maxBodySize := a.config.Server.MaxBodyBytes
	validator := a.provider.Validator
	rateLimit := middleware.RateLimit(a.provider.Limiter)

	r.Group("/auth", func(gr router.Router) {
		gr.Post("/register", handler.RegisterUser,
			append([]router.Middleware{rateLimit}, jsonBody[auth.RegisterUserRequest](maxBodySize, validator)...)...)
		gr.Post("/login", handler.LoginUser,
			append([]router.Middleware{rateLimit}, jsonBody[auth.UserLoginRequest](maxBodySize, validator)...)...)
		gr.Post("/refresh", handler.RefreshToken, middleware.CSRFGuard(a.config.CSRF, a.provider.CSRFBaker))
		gr.Post("/logout", handler.LogoutUser)
	})
}

func mountUserRoutes(r router.Router, handler *user.Handler, a *App, requireToken router.Middleware) {
	maxBodySize := a.config.Server.MaxBodyBytes
	validator := a.provider.Validator

	r.Group("/users", func(gr router.Router) {
		gr.Get("/search", handler.Search)
		gr.Get("/me", handler.GetMe)
		gr.Patch("/me", handler.UpdateMe, jsonBody[user.UpdateProfileRequest](maxBodySize, validator)...)
		gr.Post("/me/skills", handler.AddSkill, jsonBody[user.AddSkillRequest](maxBodySize, validator)...)
		gr.Delete("/me/skills/{skillID}", handler.RemoveSkill)
		gr.Put("/me/interests", handler.SetInterests, jsonBody[user.SetInterestsRequest](maxBodySize, validator)...)
		gr.Post("/me/photo", handler.UploadPhoto)
		gr.Get("/{id}", handler.GetProfile)
		gr.Get("/{id}/photo", handler.GetPhoto)
	}, requireToken)

	r.Get("/skills", handler.ListSkills, requireToken)
	r.Get("/interests", handler.ListInterests, requireToken)
	r.Get("/categories", handler.ListCategories, requireToken)
}

func mountFriendRoutes(r router.Router, handler *friend.Handler, a *App, requireToken router.Middleware) {
	maxBodySize := a.config.Server.MaxBodyBytes
	validator := a.provider.Validator

	r.Get("/friends", handler.ListFriends, requireToken)
	r.Group("/friends", func(gr router.Router) {
		gr.Delete("/{id}", handler.Unfriend)
		gr.Get("/requests", handler.ListRequests)
		gr.Post("/requests", handler.SendRequest, jsonBody[friend.SendRequestRequest](maxBodySize, validator)...)
		gr.Post("/requests/{id}/accept", handler.AcceptRequest)
		gr.Post("/requests/{id}/reject", handler.RejectRequest)
	}, requireToken)

	r.Group("/blocks", func(gr router.Router) {
		gr.Post("/{id}", handler.Block)
		gr.Delete("/{id}", handler.Unblock)
	}, requireToken)
}

func mountMatchRoutes(r router.Router, handler *match.Handler, requireToken router.Middleware) {
	r.Group("/matches", func(gr router.Router) {
		gr.Get("/suggestions", handler.Suggestions)
		gr.Get("/compatibility", handler.Compatibility)
	}, requireToken)
}

func mountChatRoutes(r router.Router, module *chat.Module, a *App, requireToken router.Middleware) {
	maxBodySize := a.config.Server.MaxBodyBytes
	validator := a.provider.Validator
	handler := module.Handler()

	r.Get("/conversations", handler.ListConversations, requireToken)
	r.Group("/conversations", func(gr router.Router) {
		gr.Put("/direct/{otherUserID}", handler.DirectConversation)
		gr.Get("/{id}/messages", handler.ListMessages)
		gr.Post("/{id}/messages", handler.SendMessage, jsonBody[chat.SendMessageRequest](maxBodySize, validator)...)
	}, requireToken)

	r.Group("/messages", func(gr router.Router) {
		gr.Patch("/{id}", handler.EditMessage, jsonBody[chat.EditMessageRequest](maxBodySize, validator)...)
		gr.Delete("/{id}", handler.DeleteMessage)
		gr.Post("/{id}/read", handler.MarkRead)
	}, requireToken)

	r.Get("/chat/ws", module.Hub().ServeHTTP, requireToken)
}

func mountCodeRoutes(r router.Router, handler *code.Handler, a *App, requireToken router.Middleware) {
	maxBodySize := a.config.Server.MaxBodyBytes
	validator := a.provider.Validator

	r.Group("/code", func(gr router.Router) {
		gr.Get("/repos", handler.ListRepositories)
		gr.Post("/repos", handler.CreateRepository, jsonBody[code.CreateRepositoryRequest](maxBodySize, validator)...)
		gr.Get("/repos/{id}", handler.GetRepository)
		gr.Delete("/repos/{id}", handler.DeleteRepository)
		gr.Get("/repos/{id}/tree", handler.Tree)

		gr.Post("/folders", handler.CreateFolder, jsonBody[code.CreateFolderRequest](maxBodySize, validator)...)
		gr.Get("/folders/{id}", handler.GetFolder)
		gr.Delete("/folders/{id}", handler.DeleteFolder)

		gr.Post("/files", handler.CreateFile, jsonBody[code.CreateFileRequest](maxBodySize, validator)...)
		gr.Get("/files/{id}", handler.GetFile)
		gr.Put("/files/{id}/content", handler.UpdateFileContent, jsonBody[code.UpdateContentRequest](maxBodySize, validator)...)
		gr.Delete("/files/{id}", handler.DeleteFile)

		gr.Post("/snippets", handler.CreateSnippet, jsonBody[code.CreateSnippetRequest](maxBodySize, validator)...)
		gr.Get("/snippets/{id}", handler.GetSnippet)
	}, requireToken)
}

func mountDashboardRoutes(r router.Router, handler *dashboard.Handler, requireToken router.Middleware) {
	r.Get("/dashboard", handler.Dashboard, requireToken)
}
