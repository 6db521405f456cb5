// Package httpapi serves the read-only status endpoints of the bot: a
// health check and the recent journal entries. It exists for operators;
// the poll loop never depends on it.
package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"github.com/afanasev-ilia/check-status-homework-bot/internal/journal"
)

const (
	defaultHistoryLimit = 20
	shutdownTimeout     = 5 * time.Second
)

// Server serves the status HTTP API over the journal.
type Server struct {
	httpServer *http.Server
	store      journal.Store
	logger     *slog.Logger
}

type healthResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type cyclesResponse struct {
	Cycles []journal.Cycle `json:"cycles"`
}

type notificationsResponse struct {
	Notifications []journal.Notification `json:"notifications"`
}

// NewServer creates the status server listening on addr.
func NewServer(addr string, store journal.Store, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		store:  store,
		logger: logger.With("component", "httpapi"),
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)

	router.Get("/healthz", s.handleHealth)
	router.Get("/api/v1/cycles", s.handleCycles)
	router.Get("/api/v1/notifications", s.handleNotifications)

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return s
}

// Run starts the listener and blocks until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("Status server listening", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("Error shutting down status server", "error", err)
		return err
	}

	s.logger.Info("Status server stopped gracefully.")
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		s.logger.Error("Health check failed", "error", err)
		render.Status(r, http.StatusServiceUnavailable)
		render.JSON(w, r, healthResponse{Status: "unhealthy", Error: err.Error()})
		return
	}

	render.JSON(w, r, healthResponse{Status: "ok"})
}

func (s *Server) handleCycles(w http.ResponseWriter, r *http.Request) {
	cycles, err := s.store.RecentCycles(r.Context(), defaultHistoryLimit)
	if err != nil {
		s.logger.Error("Failed to load recent cycles", "error", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, healthResponse{Status: "error", Error: err.Error()})
		return
	}

	render.JSON(w, r, cyclesResponse{Cycles: cycles})
}

func (s *Server) handleNotifications(w http.ResponseWriter, r *http.Request) {
	notifications, err := s.store.RecentNotifications(r.Context(), defaultHistoryLimit)
	if err != nil {
		s.logger.Error("Failed to load recent notifications", "error", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, healthResponse{Status: "error", Error: err.Error()})
		return
	}

	render.JSON(w, r, notificationsResponse{Notifications: notifications})
}
