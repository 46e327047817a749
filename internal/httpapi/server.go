// Package httpapi exposes the service contract over JSON HTTP. Handlers
// stay thin: parameter parsing, service call, envelope.
package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/CamiloBarros/todolist/internal/auth"
	"github.com/CamiloBarros/todolist/internal/category"
	"github.com/CamiloBarros/todolist/internal/logger"
	"github.com/CamiloBarros/todolist/internal/stats"
	"github.com/CamiloBarros/todolist/internal/tag"
	"github.com/CamiloBarros/todolist/internal/task"
)

// Server routes API requests to the underlying services.
type Server struct {
	mux        *http.ServeMux
	auth       *auth.Service
	tasks      *task.Service
	stats      *stats.Service
	categories *category.Service
	tags       *tag.Service
	log        *slog.Logger
}

// NewServer wires the route table.
func NewServer(authSvc *auth.Service, tasks *task.Service, statsSvc *stats.Service, categories *category.Service, tags *tag.Service) *Server {
	s := &Server{
		mux:        http.NewServeMux(),
		auth:       authSvc,
		tasks:      tasks,
		stats:      statsSvc,
		categories: categories,
		tags:       tags,
		log:        logger.HTTP(),
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /health", s.handleHealth)

	s.mux.HandleFunc("POST /api/v1/auth/register", s.handleRegister)
	s.mux.HandleFunc("POST /api/v1/auth/login", s.handleLogin)

	s.mux.HandleFunc("GET /api/v1/tasks", s.requireAuth(s.handleListTasks))
	s.mux.HandleFunc("POST /api/v1/tasks", s.requireAuth(s.handleCreateTask))
	s.mux.HandleFunc("GET /api/v1/tasks/statistics", s.requireAuth(s.handleStatistics))
	s.mux.HandleFunc("GET /api/v1/tasks/{id}", s.requireAuth(s.handleGetTask))
	s.mux.HandleFunc("PUT /api/v1/tasks/{id}", s.requireAuth(s.handleUpdateTask))
	s.mux.HandleFunc("DELETE /api/v1/tasks/{id}", s.requireAuth(s.handleDeleteTask))

	s.mux.HandleFunc("GET /api/v1/categories", s.requireAuth(s.handleListCategories))
	s.mux.HandleFunc("POST /api/v1/categories", s.requireAuth(s.handleCreateCategory))
	s.mux.HandleFunc("GET /api/v1/categories/{id}", s.requireAuth(s.handleGetCategory))
	s.mux.HandleFunc("PUT /api/v1/categories/{id}", s.requireAuth(s.handleUpdateCategory))
	s.mux.HandleFunc("DELETE /api/v1/categories/{id}", s.requireAuth(s.handleDeleteCategory))

	s.mux.HandleFunc("GET /api/v1/tags", s.requireAuth(s.handleListTags))
	s.mux.HandleFunc("POST /api/v1/tags", s.requireAuth(s.handleCreateTag))
	s.mux.HandleFunc("GET /api/v1/tags/{id}", s.requireAuth(s.handleGetTag))
	s.mux.HandleFunc("PUT /api/v1/tags/{id}", s.requireAuth(s.handleUpdateTag))
	s.mux.HandleFunc("DELETE /api/v1/tags/{id}", s.requireAuth(s.handleDeleteTag))
}

// Handler returns the full middleware chain.
func (s *Server) Handler() http.Handler {
	return s.withRequestID(s.withLogging(s.mux))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
