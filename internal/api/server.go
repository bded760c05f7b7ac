// SPDX-License-Identifier: MIT

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"path/filepath"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jcastrom/dedupetv/internal/config"
	"github.com/jcastrom/dedupetv/internal/jobs"
	"github.com/jcastrom/dedupetv/internal/log"
)

// RefreshFunc runs one refresh cycle. Separated from jobs.Refresh so tests
// can stub the pipeline.
type RefreshFunc func(ctx context.Context) (*jobs.Status, error)

// Server exposes the daemon over HTTP: health, playlist download, refresh
// trigger, status, and Prometheus metrics.
type Server struct {
	cfg     config.Config
	refresh RefreshFunc

	mu     sync.RWMutex
	status *jobs.Status
}

func New(cfg config.Config, refresh RefreshFunc) *Server {
	return &Server{cfg: cfg, refresh: refresh}
}

// SetStatus records the outcome of a refresh run for /api/status.
func (s *Server) SetStatus(st *jobs.Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = st
}

// Handler builds the route tree.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestLogger)

	r.Get("/healthz", s.handleHealth)
	r.Get("/playlist.m3u", s.handlePlaylist)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/status", s.handleStatus)
		r.With(refreshRateLimit()).Post("/refresh", s.handleRefresh)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handlePlaylist(w http.ResponseWriter, r *http.Request) {
	path := filepath.Join(s.cfg.DataDir, s.cfg.PlaylistFilename)
	w.Header().Set("Content-Type", "audio/x-mpegurl")
	http.ServeFile(w, r, path)
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	st := s.status
	s.mu.RUnlock()

	if st == nil {
		writeJSON(w, http.StatusOK, map[string]string{"state": "pending"})
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	logger := log.WithComponent("api")

	st, err := s.refresh(r.Context())
	if err != nil {
		logger.Error().
			Err(err).
			Str("event", "refresh.api_failed").
			Msg("refresh via API failed")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	s.SetStatus(st)
	writeJSON(w, http.StatusOK, st)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger := log.WithComponent("api")
		logger.Error().Err(err).Msg("encode response")
	}
}
