package api

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

func (s *Server) handleManualRefresh(w http.ResponseWriter, r *http.Request) {
	logs, err := s.tracker.RunRefresh(r.Context())
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		writeBody(w, map[string]interface{}{
			"status": "error",
			"error":  err.Error(),
			"log":    logs,
		})
		return
	}
	writeJSON(w, map[string]interface{}{
		"log":   logs,
		"state": s.tracker.Status(),
	})
}

func (s *Server) handleTrackingStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]interface{}{"tracking": s.tracker.Status()})
}

func (s *Server) handleTrackingStart(w http.ResponseWriter, r *http.Request) {
	s.tracker.Start()
	writeJSON(w, map[string]interface{}{"tracking": s.tracker.Status()})
}

func (s *Server) handleTrackingStop(w http.ResponseWriter, r *http.Request) {
	s.tracker.Stop()
	writeJSON(w, map[string]interface{}{"tracking": s.tracker.Status()})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var dbHealthy, feedHealthy bool
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		dbHealthy = s.store.Ping(gctx) == nil
		return nil
	})
	g.Go(func() error {
		feedHealthy = s.feed.Ping(gctx)
		return nil
	})
	g.Wait()

	analysisCount, _ := s.store.CountAnalyses()
	openAlerts, _ := s.store.CountUnacknowledgedSince(time.Now().Add(-24 * time.Hour))

	writeJSON(w, map[string]interface{}{
		"components": map[string]string{
			"database": healthLabel(dbHealthy),
			"feed":     healthLabel(feedHealthy),
		},
		"statistics": map[string]interface{}{
			"analyzed_routes":       analysisCount,
			"unacknowledged_alerts": openAlerts,
			"uptime_seconds":        int(time.Since(s.started).Seconds()),
		},
		"tracking": s.tracker.Status(),
	})
}

func healthLabel(ok bool) string {
	if ok {
		return "healthy"
	}
	return "unreachable"
}
