// Package internal provides the main application initialization and runtime logic.
package internal

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

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/starford/notetodo/internal/api"
	"github.com/starford/notetodo/internal/auth"
	"github.com/starford/notetodo/internal/mcpserver"
	"github.com/starford/notetodo/internal/noteservice"
	"github.com/starford/notetodo/internal/store"
	"github.com/starford/notetodo/internal/userservice"
	"github.com/starford/notetodo/internal/weightservice"
	pkgconfig "github.com/starford/notetodo/pkg/config"
)

type services struct {
	auth    *auth.Service
	notes   *noteservice.Service
	weights *weightservice.Service
	users   *userservice.Service
}

func newApplication(opts []Option) (*application, error) {
	app := &application{logOutput: os.Stdout, version: "dev"}
	for _, opt := range opts {
		opt(app)
	}
	if app.config == nil {
		return nil, fmt.Errorf("config is required")
	}
	return app, nil
}

// logger builds the JSON logger. The returned LevelVar lets the config
// watcher change verbosity at runtime.
func (a *application) logger() (*slog.Logger, *slog.LevelVar) {
	level := new(slog.LevelVar)
	level.Set(a.config.App.LogLevel)
	logger := slog.New(slog.NewJSONHandler(a.logOutput, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
	return logger, level
}

func (a *application) services(db *store.DB) (*services, error) {
	loc, err := a.config.Weights.Location()
	if err != nil {
		return nil, err
	}
	return &services{
		auth:    auth.NewService(db, a.config.Auth.Service()),
		notes:   noteservice.NewService(db),
		weights: weightservice.NewService(db, loc),
		users:   userservice.NewService(db),
	}, nil
}

// Run starts the HTTP server with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	cfg := app.config
	logger, level := app.logger()

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("sqlite_path", cfg.SQLite.Path),
		slog.String("weights_timezone", cfg.Weights.Timezone),
		slog.String("log_level", cfg.App.LogLevel.String()))

	db, err := store.Open(cfg.SQLite.Path)
	if err != nil {
		return fmt.Errorf("init store: %w", err)
	}
	defer db.Close()

	svc, err := app.services(db)
	if err != nil {
		return fmt.Errorf("init services: %w", err)
	}

	h := api.NewHandler(svc.auth, svc.notes, svc.weights, svc.users)
	apiRouter := api.NewRouter(h, cfg.Auth.LoginRate.API())

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	if cfg.App.HTTP.RequestTimeout > 0 {
		r.Use(middleware.Timeout(cfg.App.HTTP.RequestTimeout))
	}

	// Health check endpoints (unauthenticated).
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		writeStatus(w, http.StatusOK, "ok")
	})
	r.Get("/health/ready", func(w http.ResponseWriter, req *http.Request) {
		if err := db.Ping(req.Context()); err != nil {
			logger.Warn("readiness check failed", slog.String("error", err.Error()))
			writeStatus(w, http.StatusServiceUnavailable, "unavailable")
			return
		}
		writeStatus(w, http.StatusOK, "ok")
	})

	// Mount API routes under /api.
	r.Mount("/api", apiRouter)

	httpServer := &http.Server{
		Addr:              cfg.App.HTTP.Address(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)

	// Hot-reload the log level when the config file changes.
	if app.configFile != "" {
		g.Go(func() error {
			err := pkgconfig.Watch(gCtx, app.configFile, NewDefaultConfig, func(next *Config) {
				if next.App.LogLevel != level.Level() {
					logger.Info("log level changed",
						slog.String("from", level.Level().String()),
						slog.String("to", next.App.LogLevel.String()))
					level.Set(next.App.LogLevel)
				}
			})
			if err != nil {
				logger.Warn("config watcher disabled", slog.String("error", err.Error()))
			}
			return nil
		})
	}

	// Start HTTP server.
	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout(cfg))
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		// Stops the config watcher once the server is down.
		return errShutdown
	})

	if err := g.Wait(); err != nil && !errors.Is(err, errShutdown) {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

var errShutdown = errors.New("shutdown")

func shutdownTimeout(cfg *Config) time.Duration {
	if cfg.App.HTTP.ShutdownTimeout > 0 {
		return cfg.App.HTTP.ShutdownTimeout
	}
	return 10 * time.Second
}

func writeStatus(w http.ResponseWriter, code int, status string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = fmt.Fprintf(w, `{"status":%q}`, status)
}

// RunMCP serves the MCP tools over stdio on behalf of the user that token
// belongs to. Logs go to the configured output, which must not be stdout.
func RunMCP(ctx context.Context, token string, opts ...Option) error {
	app, err := newApplication(append([]Option{WithLogOutput(os.Stderr)}, opts...))
	if err != nil {
		return err
	}
	logger, _ := app.logger()

	db, err := store.Open(app.config.SQLite.Path)
	if err != nil {
		return fmt.Errorf("init store: %w", err)
	}
	defer db.Close()

	svc, err := app.services(db)
	if err != nil {
		return fmt.Errorf("init services: %w", err)
	}

	user, err := svc.auth.Resolve(ctx, token)
	if err != nil {
		return fmt.Errorf("resolve token: %w", err)
	}

	logger.Info("MCP server starting", slog.String("user", user.Username))
	return mcpserver.New(user, svc.notes, svc.weights, app.version).ServeStdio()
}

// Migrate applies pending schema migrations and exits.
func Migrate(_ context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	logger, _ := app.logger()

	// Open applies migrations.
	db, err := store.Open(app.config.SQLite.Path)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	defer db.Close()

	logger.Info("Migrations applied", slog.String("sqlite_path", app.config.SQLite.Path))
	return nil
}
