package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/aussiebroadwan/eventpass/internal/passes/http"
	"github.com/aussiebroadwan/eventpass/internal/passes/media"
	"github.com/aussiebroadwan/eventpass/internal/passes/service"
	"github.com/aussiebroadwan/eventpass/internal/passes/store"
	"github.com/aussiebroadwan/eventpass/internal/passes/store/drivers/sqlite"
	"github.com/aussiebroadwan/eventpass/pkg/jwtx"
	"github.com/aussiebroadwan/eventpass/pkg/slogx"
	"github.com/aussiebroadwan/eventpass/pkg/whatsapp"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the pass service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db     store.Store
	tokens *jwtx.HS256
	media  media.Store
	redis  *media.RedisStore // Optional: only when REDIS_ADDR is set

	// Services
	userService     *service.UserService
	eventService    *service.EventService
	passService     *service.PassService
	dispatchService *service.DispatchService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "pass-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	tokens, err := jwtx.NewHS256([]byte(cfg.JWTSecret), cfg.Issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token signer: %w", err)
	}
	app.tokens = tokens

	if err := app.initDatabase(); err != nil {
		return nil, err
	}
	if err := app.initMedia(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Handler returns the root HTTP handler.
func (app *Application) Handler() http.Handler {
	return app.router
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.logger.Info("pass service starting", "port", app.cfg.Port, "version", BuildVersion)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a shutdown signal or server error
	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down pass service...")

	// Give outstanding requests a deadline for completion. Batch dispatches
	// in flight see their context cancelled and report the rest as failed.
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error("error closing redis", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("pass service stopped")
	return nil
}

// initDatabase initializes the database and applies migrations
func (app *Application) initDatabase() error {
	db, err := sqlite.NewStore(sqlite.DSN(app.cfg.DatabaseFile))
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", "file", app.cfg.DatabaseFile)
	return nil
}

// initMedia selects where uploaded pass images live
func (app *Application) initMedia() error {
	if app.cfg.RedisAddr != "" {
		rs := media.NewRedisStore(app.cfg.RedisAddr, app.cfg.RedisPassword, app.cfg.MediaTTL)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rs.Ping(ctx); err != nil {
			_ = rs.Close()
			return fmt.Errorf("failed to connect to redis: %w", err)
		}

		app.redis = rs
		app.media = rs
		app.logger.Info("media store: redis", "addr", app.cfg.RedisAddr, "ttl", app.cfg.MediaTTL)
		return nil
	}

	ds, err := media.NewDirStore(app.cfg.MediaDir, app.cfg.MediaTTL)
	if err != nil {
		return fmt.Errorf("failed to initialize media directory: %w", err)
	}
	app.media = ds
	app.logger.Info("media store: directory", "dir", app.cfg.MediaDir, "ttl", app.cfg.MediaTTL)
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.userService = &service.UserService{
		Store:    app.db,
		Signer:   app.tokens,
		Issuer:   app.cfg.Issuer,
		TokenTTL: app.cfg.TokenTTL,
	}
	app.eventService = &service.EventService{Store: app.db}
	app.passService = &service.PassService{
		Store:          app.db,
		OnePassPerUser: app.cfg.OnePassPerUser,
	}

	app.dispatchService = &service.DispatchService{
		Store:     app.db,
		Messenger: app.messenger(),
		TempDir:   app.cfg.TempDir,
		MinDelay:  app.cfg.DispatchMinDelay,
		MaxDelay:  app.cfg.DispatchMaxDelay,
	}

	// Without a public URL the channel cannot fetch images, fall back to the template
	if app.cfg.PublicBaseURL != "" {
		app.dispatchService.Uploader = &media.Uploader{
			Store:   app.media,
			BaseURL: app.cfg.PublicBaseURL,
		}
	} else {
		app.logger.Warn("PUBLIC_BASE_URL not set, passes are announced by template only")
	}
}

func (app *Application) messenger() service.Messenger {
	if !app.cfg.WhatsAppEnabled() {
		app.logger.Warn("whatsapp credentials not set, pass delivery disabled")
		return disabledMessenger{}
	}

	client := whatsapp.NewClient(app.cfg.WhatsAppAPIURL, app.cfg.WhatsAppPhoneNumberID, app.cfg.WhatsAppAccessToken)
	client.Template = app.cfg.WhatsAppTemplate
	return &whatsappMessenger{client: client}
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.tokens,
		BuildVersion,
		app.db,
		app.logger,
	)

	// Wire services to router
	router.UserService = app.userService
	router.EventService = app.eventService
	router.PassService = app.passService
	router.DispatchService = app.dispatchService
	router.Media = app.media
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
