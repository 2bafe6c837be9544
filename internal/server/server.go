// Package server is the composition root: it opens the database, picks
// the storage backend, wires services to handlers, and defines every
// route. main.go stays minimal — load config, build a Server, Start it.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	gorilla "github.com/gorilla/handlers"

	"github.com/sakif/portfolio-server/internal/auth"
	"github.com/sakif/portfolio-server/internal/config"
	"github.com/sakif/portfolio-server/internal/handler"
	"github.com/sakif/portfolio-server/internal/middleware"
	sqliteRepo "github.com/sakif/portfolio-server/internal/repository/sqlite"
	"github.com/sakif/portfolio-server/internal/service"
	"github.com/sakif/portfolio-server/internal/storage"
	"github.com/sakif/portfolio-server/internal/upload"
)

// Server owns the router and the resources that must be released on
// shutdown — today that is the database connection.
type Server struct {
	router *chi.Mux
	cfg    *config.Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New assembles the full dependency chain: database, file store, upload
// processor, services, handlers, routes. Each layer receives only the
// interfaces it needs; handlers never see the database and services never
// see HTTP.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DB.Path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		cfg:    cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// newFileStore selects the configured storage backend.
func (s *Server) newFileStore(ctx context.Context) (storage.FileStore, error) {
	switch s.cfg.Storage.Backend {
	case config.StorageS3:
		return storage.NewS3(ctx, storage.S3Options{
			Bucket:  s.cfg.Storage.S3Bucket,
			Region:  s.cfg.Storage.S3Region,
			Prefix:  s.cfg.Storage.S3Prefix,
			BaseURL: s.cfg.Storage.S3BaseURL,
		})
	default:
		return storage.NewLocal(s.cfg.Storage.UploadDir)
	}
}

// setupRoutes configures middleware and every route.
//
// ROUTE STRUCTURE:
//
//	GET    /healthz                  → liveness probe
//	GET    /api/projects             → public project list
//	POST   /api/projects             → create project (JSON)
//	POST   /api/contact              → contact-form submission
//	POST   /admin/login              → credential check, returns token
//	POST   /admin/projects           → create project (multipart, token)
//	PUT    /admin/projects/{id}      → partial update (multipart, token)
//	DELETE /admin/projects/{id}      → delete project (token)
//	GET    /uploads/*                → stored images (local backend only)
//
// Middleware order matters: request ID first so the logger can include
// it, Recoverer before the handlers so panics become 500s, CORS outermost
// of the route-level concerns so preflights are answered for everything.
func (s *Server) setupRoutes(ctx context.Context) error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(chimiddleware.Recoverer)

	// The admin frontend sends the session token in x-auth-token, which
	// is not a CORS-safelisted header and must be allowed explicitly.
	s.router.Use(gorilla.CORS(
		gorilla.AllowedOrigins(s.cfg.Server.AllowedOrigins),
		gorilla.AllowedMethods([]string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete,
		}),
		gorilla.AllowedHeaders([]string{"Content-Type", auth.TokenHeader}),
	))

	store, err := s.newFileStore(ctx)
	if err != nil {
		return fmt.Errorf("creating file store: %w", err)
	}

	tokens, err := auth.NewTokenService(s.cfg.Admin.JWTSecret)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}
	passwords := auth.NewPasswordService()

	uploads := upload.NewProcessor(store, s.logger)
	authService := service.NewAuthService(s.cfg.Admin, tokens, passwords, s.logger)
	projectService := service.NewProjectService(s.db, uploads, s.logger)
	messageService := service.NewMessageService(s.db, s.logger)

	authHandler := handler.NewAuthHandler(authService, s.logger)
	projectHandler := handler.NewProjectHandler(projectService, s.logger)
	contactHandler := handler.NewContactHandler(messageService, s.logger)

	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/projects", projectHandler.HandleList)
		r.Post("/projects", projectHandler.HandlePublicCreate)
		r.Post("/contact", contactHandler.HandleSubmit)
	})

	s.router.Route("/admin", func(r chi.Router) {
		r.Post("/login", authHandler.HandleLogin)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAdmin(tokens))
			r.Post("/projects", projectHandler.HandleAdminCreate)
			r.Put("/projects/{id}", projectHandler.HandleAdminUpdate)
			r.Delete("/projects/{id}", projectHandler.HandleAdminDelete)
		})
	})

	// Locally stored images are served straight off disk. The S3 backend
	// hands out absolute URLs instead, so there is nothing to serve.
	if local, ok := store.(*storage.Local); ok {
		fileServer := http.FileServer(http.Dir(local.Dir()))
		s.router.Handle("/uploads/*", http.StripPrefix("/uploads/", fileServer))
	}

	return nil
}

// Router exposes the configured mux, mostly for tests driving the server
// through httptest.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully: stop accepting connections, give in-flight requests 30
// seconds, close the database so the WAL is flushed.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.cfg.Server.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.cfg.Server.Port),
			slog.String("database", s.cfg.DB.Path),
			slog.String("storage", s.cfg.Storage.Backend),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
