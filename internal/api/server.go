// Package api serves the read-mostly HTTP surface over the analysis store.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"

	"sinister-snare/internal/config"
	"sinister-snare/internal/db"
	"sinister-snare/internal/tracker"
)

// FeedHealth reports upstream reachability for the status endpoint.
type FeedHealth interface {
	Ping(ctx context.Context) bool
}

// Server is the HTTP API server over the store, feed, and tracker.
type Server struct {
	cfg     *config.Config
	store   *db.DB
	feed    FeedHealth
	tracker *tracker.Tracker
	started time.Time
}

// NewServer wires the API around an opened store and a running tracker.
func NewServer(cfg *config.Config, store *db.DB, feedHealth FeedHealth, tr *tracker.Tracker) *Server {
	return &Server{
		cfg:     cfg,
		store:   store,
		feed:    feedHealth,
		tracker: tr,
		started: time.Now().UTC(),
	}
}

// Handler returns the chi router with CORS and rate limiting applied.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.API.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	r.Use(rateLimit(rate.NewLimiter(rate.Limit(50), 100)))

	r.Route("/api", func(r chi.Router) {
		r.Get("/routes/analyze", s.handleRoutesAnalyze)
		r.Get("/targets/priority", s.handlePriorityTargets)
		r.Get("/interception/points", s.handleInterceptionPoints)
		r.Get("/analysis/hourly", s.handleHourly)
		r.Get("/trends/historical", s.handleTrends)
		r.Get("/snare/now", s.handleSnareNow)
		r.Get("/snare/commodity", s.handleCommoditySnare)
		r.Post("/snare/commodity", s.handleCommoditySnare)
		r.Get("/alerts", s.handleListAlerts)
		r.Post("/alerts/{id}/acknowledge", s.handleAcknowledgeAlert)
		r.Post("/refresh/manual", s.handleManualRefresh)
		r.Get("/tracking/status", s.handleTrackingStatus)
		r.Post("/tracking/start", s.handleTrackingStart)
		r.Post("/tracking/stop", s.handleTrackingStop)
		r.Get("/export/routes", s.handleExportRoutes)
		r.Get("/status", s.handleStatus)
	})
	return r
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return fmt.Sprintf("%s:%d", s.cfg.API.Host, s.cfg.API.Port)
}

// rateLimit rejects requests beyond the shared limiter with 429.
func rateLimit(l *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !l.Allow() {
				writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// writeJSON writes a success envelope: the payload fields plus status.
func writeJSON(w http.ResponseWriter, payload map[string]interface{}) {
	payload["status"] = "success"
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(payload)
}

func writeBody(w http.ResponseWriter, v interface{}) {
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"status": "error", "error": msg})
}

// queryInt parses an optional integer query parameter. ok is false on a
// malformed or negative value.
func queryInt(r *http.Request, key string, def int) (int, bool) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func queryFloat(r *http.Request, key string, def float64) (float64, bool) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def, true
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f < 0 {
		return 0, false
	}
	return f, true
}
