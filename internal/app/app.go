package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/ferdiebergado/devlink/internal/auth"
	"github.com/ferdiebergado/devlink/internal/chat"
	"github.com/ferdiebergado/devlink/internal/code"
	"github.com/ferdiebergado/devlink/internal/config"
	"github.com/ferdiebergado/devlink/internal/dashboard"
	"github.com/ferdiebergado/devlink/internal/friend"
	"github.com/ferdiebergado/devlink/internal/match"
	"github.com/ferdiebergado/devlink/internal/platform/router"
	"github.com/ferdiebergado/devlink/internal/user"
)

type App struct {
	server          *http.Server
	config          *config.Config
	provider        *Provider
	router          router.Router
	middlewares     []router.Middleware
	stop            context.CancelFunc
	shutdownTimeout time.Duration
}

func (a *App) registerMiddlewares() {
	for _, mw := range a.middlewares {
		a.router.Use(mw)
	}
}

func (a *App) setupRoutes() {
	cfg := a.config
	p := a.provider
	requireToken := auth.RequireToken(p.Signer)

	userModule := user.NewModule(&user.Provider{
		Cfg:   cfg,
		DB:    p.DB,
		TxMgr: p.TxMgr,
	})
	userSvc := userModule.Service()

	authModule := auth.NewModule(&auth.Provider{
		Cfg:       cfg,
		Hasher:    p.Hasher,
		Signer:    p.Signer,
		CSRFBaker: p.CSRFBaker,
		UserSvc:   userSvc,
	})

	friendModule := friend.NewModule(&friend.Provider{
		Cfg:     cfg,
		DB:      p.DB,
		TxMgr:   p.TxMgr,
		Mailer:  p.Mailer,
		UserSvc: userSvc,
	})
	friendSvc := friendModule.Service()

	matchModule := match.NewModule(&match.Provider{
		Cfg:       cfg,
		DB:        p.DB,
		Relations: friendSvc,
		Profiles:  userSvc,
	})

	chatModule := chat.NewModule(&chat.Provider{
		Cfg:       cfg,
		DB:        p.DB,
		Relations: friendSvc,
	})

	codeModule := code.NewModule(&code.Provider{
		DB:    p.DB,
		TxMgr: p.TxMgr,
	})

	dashboardModule := dashboard.NewModule(&dashboard.Provider{
		Friends:       friendSvc,
		Messages:      chatModule.Service(),
		Repositories:  codeModule.Service(),
		Compatibility: matchModule.Service(),
	})

	a.router.Get("/health", health)
	mountAuthRoutes(a.router, authModule.Handler(), a)
	mountUserRoutes(a.router, userModule.Handler(), a, requireToken)
	mountFriendRoutes(a.router, friendModule.Handler(), a, requireToken)
	mountMatchRoutes(a.router, matchModule.Handler(), requireToken)
	mountChatRoutes(a.router, chatModule, a, requireToken)
	mountCodeRoutes(a.router, codeModule.Handler(), a, requireToken)
	mountDashboardRoutes(a.router, dashboardModule.Handler(), requireToken)
}

// Start serves requests until ctx is done or the server fails.
func (a *App) Start(ctx context.Context) error {
	a.registerMiddlewares()
	a.setupRoutes()

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server listening...", "address", a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- fmt.Errorf("listen and serve: %w", err)
			return
		}
		slog.Info("Server has stopped.")
		serverErr <- nil
	}()

	select {
	case <-ctx.Done():
		slog.Info("Shutdown signal received.")
		return nil
	case err := <-serverErr:
		return err
	}
}

// Shutdown cancels in-flight requests and waits for them within the configured timeout.
func (a *App) Shutdown() error {
	slog.Info("Shutting down server...")
	a.stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown server: %w", err)
	}
	return nil
}

func New(cfg *config.Config, provider *Provider, middlewares []router.Middleware) *App {
	serverCtx, stop := context.WithCancel(context.Background())
	serverCfg := cfg.Server
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", serverCfg.Port),
		Handler: provider.Router,
		BaseContext: func(_ net.Listener) context.Context {
			return serverCtx
		},
		ReadTimeout:  serverCfg.ReadTimeout.Duration,
		WriteTimeout: serverCfg.WriteTimeout.Duration,
		IdleTimeout:  serverCfg.IdleTimeout.Duration,
	}

	return &App{
		config:          cfg,
		provider:        provider,
		router:          provider.Router,
		server:          server,
		middlewares:     middlewares,
		stop:            stop,
		shutdownTimeout: serverCfg.ShutdownTimeout.Duration,
	}
}
