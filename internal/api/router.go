// Package api serves the champion roster and counters over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	"github.com/wrcounter/internal/champdata"
	"github.com/wrcounter/internal/services/scraper"
	"github.com/wrcounter/internal/storage"
	"github.com/wrcounter/pkg/healthcheck"
)

// UnavailableMessage is the single error returned while no roster is loaded.
const UnavailableMessage = "could not load champion data"

// WinRateSource looks up community win-rate counters.
type WinRateSource interface {
	GetCounters(ctx context.Context, champion string, lane champdata.Role) ([]*scraper.CounterStats, error)
}

// Server holds the HTTP server dependencies
type Server struct {
	roster   *champdata.Roster
	stats    *storage.LookupStats
	winRates WinRateSource
	log      logrus.FieldLogger
	router   chi.Router
}

// New creates a new API server. A nil roster puts every /api route into the
// unavailable state; stats and winRates may be nil.
func New(roster *champdata.Roster, stats *storage.LookupStats, winRates WinRateSource, log logrus.FieldLogger) *Server {
	s := &Server{
		roster:   roster,
		stats:    stats,
		winRates: winRates,
		log:      log,
		router:   chi.NewRouter(),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
}

func (s *Server) setupRoutes() {
	s.router.Route("/api", func(r chi.Router) {
		r.Use(s.requireRoster)

		r.Get("/champions", s.handleSearch)
		r.Get("/champions/{name}", s.handleGetChampion)
		r.Get("/champions/{name}/counters", s.handleGetCounters)
		r.Get("/champions/{name}/winrates", s.handleGetWinRates)

		r.Get("/diagnostics", s.handleDiagnostics)
		r.Get("/stats/top", s.handleTopLookups)
	})

	// Health check
	s.router.Method(http.MethodGet, "/health", healthcheck.Handler(s.ready))
}

func (s *Server) ready() error {
	if s.roster == nil {
		return errors.New(UnavailableMessage)
	}
	return nil
}

func (s *Server) requireRoster(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.roster == nil {
			respondError(w, http.StatusServiceUnavailable, UnavailableMessage)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// --- Response helpers ---

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
