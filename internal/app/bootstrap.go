package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ferdiebergado/devlink/internal/config"
	"github.com/ferdiebergado/devlink/internal/middleware"
	"github.com/ferdiebergado/devlink/internal/pkg/logging"
	"github.com/ferdiebergado/devlink/internal/platform/db"
	"github.com/ferdiebergado/devlink/internal/platform/router"
	"github.com/ferdiebergado/goexpress"
	"github.com/ferdiebergado/gopherkit/env"
)

const (
	envFile    = ".env"
	configFile = "config.json"
)

// Run loads the configuration, connects to the database and serves the API
// until an interrupt or termination signal arrives.
func Run(baseCtx context.Context) error {
	slog.Info("Initializing...")

	signalCtx, stop := signal.NotifyContext(baseCtx, os.Interrupt, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	if os.Getenv("ENV") != "production" {
		if err := env.Load(envFile); err != nil {
			return fmt.Errorf("load env: %w", err)
		}
	}

	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}

	logging.SetupLogger(cfg.App, os.Stdout)

	dbConn, err := db.NewConnection(signalCtx, cfg.DB)
	if err != nil {
		return err
	}
	defer dbConn.Close()

	if cfg.DB.Migrate {
		if err := db.Migrate(signalCtx, dbConn); err != nil {
			return err
		}
	}

	provider, err := NewProvider(cfg, dbConn)
	if err != nil {
		return err
	}

	api := New(cfg, provider, globalMiddlewares(cfg))
	if err := api.Start(signalCtx); err != nil {
		return fmt.Errorf("start server: %w", err)
	}

	return api.Shutdown()
}

func globalMiddlewares(cfg *config.Config) []router.Middleware {
	return []router.Middleware{
		goexpress.RecoverFromPanic,
		middleware.InjectWriter,
		middleware.LogRequest,
		middleware.CORS(cfg.Server.AllowedOrigin),
		middleware.ContextGuard,
	}
}
