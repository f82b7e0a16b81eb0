package api

import (
	"fmt"
	"net/http"
	"time"

	"sinister-snare/internal/db"
	"sinister-snare/internal/engine"
)

func (s *Server) handlePriorityTargets(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryInt(r, "limit", 0)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid limit")
		return
	}
	minScore, ok := queryFloat(r, "min_piracy_score", s.cfg.Refresh.MinPiracyScore)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid min_piracy_score")
		return
	}

	analyses, source := s.loadAnalyses(r, db.AnalysisFilter{})
	targets := engine.PriorityTargets(analyses, minScore, limit, time.Now().UTC())

	writeJSON(w, map[string]interface{}{
		"targets":     targets,
		"count":       len(targets),
		"data_source": source,
	})
}

func (s *Server) handleInterceptionPoints(w http.ResponseWriter, r *http.Request) {
	minProb, ok := queryFloat(r, "min_probability", engine.DefaultClusterMinProbability)
	if !ok || minProb > 1 {
		writeError(w, http.StatusBadRequest, "invalid min_probability")
		return
	}
	system := r.URL.Query().Get("system")

	analyses, source := s.loadAnalyses(r, db.AnalysisFilter{})
	points := engine.InterceptionClusters(analyses, system, minProb)

	writeJSON(w, map[string]interface{}{
		"interception_points": points,
		"count":               len(points),
		"data_source":         source,
	})
}

func (s *Server) handleHourly(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC()
	trends, err := s.store.TrendsForWindow("", "", 24, now)
	if err != nil {
		trends = nil
	}
	profile := engine.HourlyProfile(trends, now)

	writeJSON(w, map[string]interface{}{
		"hourly_profile":  profile,
		"recommendations": hourlyRecommendations(profile),
	})
}

// hourlyRecommendations turns the profile into short operator guidance.
func hourlyRecommendations(profile []engine.HourlyActivity) []string {
	best := 0
	for h, e := range profile {
		if e.AvgPiracyRating > profile[best].AvgPiracyRating {
			best = h
		}
	}
	return []string{
		fmt.Sprintf("Best interception hour: %02d:00-%02d:00 UTC", best, (best+1)%24),
		"Evening window 18:00-23:00 UTC carries the heaviest hauler traffic",
		"Small hours 02:00-07:00 UTC run light; expect escorted or no traffic",
	}
}

func (s *Server) handleTrends(w http.ResponseWriter, r *http.Request) {
	hoursBack, ok := queryInt(r, "hours_back", 24)
	if !ok || hoursBack == 0 {
		writeError(w, http.StatusBadRequest, "invalid hours_back")
		return
	}
	if hoursBack > engine.MaxTrendWindowHours {
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("hours_back must be at most %d", engine.MaxTrendWindowHours))
		return
	}
	routeCode := r.URL.Query().Get("route_code")
	commodity := r.URL.Query().Get("commodity")

	trends, err := s.store.TrendsForWindow(routeCode, commodity, hoursBack, time.Now().UTC())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "store unavailable")
		return
	}

	writeJSON(w, map[string]interface{}{
		"trends":     engine.TrendRollups(trends),
		"points":     len(trends),
		"hours_back": hoursBack,
	})
}
