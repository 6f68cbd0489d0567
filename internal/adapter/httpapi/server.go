// Package httpapi serves the dashboard's JSON API plus the operational
// health, readiness, and metrics endpoints.
package httpapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/familyhub/family-hub/internal/checklist"
	"github.com/familyhub/family-hub/internal/domain"
	"github.com/familyhub/family-hub/internal/hub"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MenuFetcher is the resolver operation behind GET /api/lunch.
type MenuFetcher interface {
	GetWeeklyMenu(ctx context.Context, identifier string) (domain.RawMenuFeed, error)
}

// ViewState exposes the refresher's committed snapshots.
type ViewState interface {
	WeekMenu() (hub.MenuSnapshot, bool)
	Weather() (hub.WeatherSnapshot, bool)
	CheckReadiness(ctx context.Context) error
}

// RefreshTrigger starts an on-demand fetch cycle.
type RefreshTrigger interface {
	Refresh(ctx context.Context)
}

// Authenticator is the PIN gate.
type Authenticator interface {
	Login(pin string) (string, error)
	Verify(token string) error
	FamilyName() string
}

// Deps bundles everything the server serves.
type Deps struct {
	Menu       MenuFetcher
	Identifier string
	State      ViewState
	Trigger    RefreshTrigger
	Auth       Authenticator
	Todos      *checklist.Store
	Chores     *checklist.Store
	Kids       []domain.Kid
	CityName   string
	Logger     *slog.Logger
}

// Server exposes the dashboard API.
type Server struct {
	httpServer *http.Server
	deps       Deps
	logger     *slog.Logger
}

// NewServer creates the dashboard HTTP server.
//
// /api/login and /api/lunch are unauthenticated: login is the way in, and
// lunch is the fixed provider passthrough. Every other /api route requires
// a session token. Health, readiness, and metrics stay open for operators.
func NewServer(addr string, deps Deps) *Server {
	s := &Server{
		deps:   deps,
		logger: deps.Logger,
	}

	r := mux.NewRouter()
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/readyz", s.handleReady).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	r.HandleFunc("/api/login", s.handleLogin).Methods(http.MethodPost)
	r.HandleFunc("/api/lunch", s.handleLunch).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(s.requireSession)
	api.HandleFunc("/menu", s.handleMenu).Methods(http.MethodGet)
	api.HandleFunc("/weather", s.handleWeather).Methods(http.MethodGet)
	api.HandleFunc("/schedule", s.handleSchedule).Methods(http.MethodGet)
	api.HandleFunc("/refresh", s.handleRefresh).Methods(http.MethodPost)
	s.registerChecklist(api, "/todos", deps.Todos)
	s.registerChecklist(api, "/chores", deps.Chores)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

func (s *Server) registerChecklist(api *mux.Router, prefix string, store *checklist.Store) {
	api.HandleFunc(prefix, s.handleChecklistList(store)).Methods(http.MethodGet)
	api.HandleFunc(prefix, s.handleChecklistAdd(store)).Methods(http.MethodPost)
	api.HandleFunc(prefix+"/{id}/toggle", s.handleChecklistToggle(store)).Methods(http.MethodPost)
	api.HandleFunc(prefix+"/{id}", s.handleChecklistDelete(store)).Methods(http.MethodDelete)
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

// requireSession rejects requests without a valid Bearer session token.
func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || s.deps.Auth.Verify(token) != nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
