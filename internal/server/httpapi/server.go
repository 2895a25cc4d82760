// Package httpapi exposes the JSON API: auth, profile, tasks, and the
// description suggestion endpoint. Sessions ride in a sealed cookie; API
// clients without a cookie jar can send the bearer token instead.
package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/sanjaympqwer/TASK-MASTER/internal/logging"
	"github.com/sanjaympqwer/TASK-MASTER/internal/server/config"
	"github.com/sanjaympqwer/TASK-MASTER/internal/server/services"
	"github.com/sanjaympqwer/TASK-MASTER/internal/server/session"
)

type Server struct {
	address     string
	logger      logging.Logger
	users       *services.UserService
	tasks       *services.TaskService
	suggestions *services.SuggestionService
	sessions    *session.Manager
	jwtSecret   []byte
	corsOrigins []string
}

func NewServer(cfg *config.Config, l logging.Logger, us *services.UserService,
	ts *services.TaskService, ss *services.SuggestionService, sm *session.Manager) *Server {

	var origins []string
	for _, p := range strings.Split(cfg.CORSAllowedOrigin, ",") {
		if o := strings.TrimRight(strings.TrimSpace(p), "/"); o != "" {
			origins = append(origins, o)
		}
	}

	return &Server{
		address:     cfg.EndpointAddrHTTP,
		logger:      l.With("module", "http_server"),
		users:       us,
		tasks:       ts,
		suggestions: ss,
		sessions:    sm,
		jwtSecret:   []byte(cfg.AuthSecret),
		corsOrigins: origins,
	}
}

func (s *Server) router() http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Set-Cookie"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/api/auth/signup", s.handleSignup)
	r.Post("/api/auth/login", s.handleLogin)
	r.Post("/api/auth/logout", s.handleLogout)

	r.Group(func(r chi.Router) {
		r.Use(s.requireAuth)

		r.Get("/api/me", s.handleMe)
		r.Patch("/api/me", s.handleUpdateProfile)
		r.Post("/api/me/avatar", s.handleAvatarUpload)

		r.Get("/api/tasks", s.handleListTasks)
		r.Post("/api/tasks", s.handleCreateTask)
		r.Patch("/api/tasks/{id}", s.handleUpdateTask)
		r.Delete("/api/tasks/{id}", s.handleDeleteTask)
		r.Post("/api/tasks/suggest-description", s.handleSuggestDescription)
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP server shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
