package api

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"sinister-snare/internal/db"
	"sinister-snare/internal/engine"
	"sinister-snare/internal/galaxy"
	"sinister-snare/internal/logger"
)

// Data source labels reported alongside route payloads.
const (
	dataSourceReal      = "real"
	dataSourceSimulated = "simulated"
)

// routeView controls coordinate visibility on the wire. With nil overrides
// the embedded fields are shadowed and omitted.
type routeView struct {
	engine.RouteAnalysis
	CoordinatesOrigin *galaxy.Coordinates           `json:"coordinates_origin,omitempty"`
	CoordinatesDest   *galaxy.Coordinates           `json:"coordinates_destination,omitempty"`
	InterceptionZones []engine.InterceptionWaypoint `json:"interception_zones,omitempty"`
}

func toRouteViews(analyses []engine.RouteAnalysis, includeCoords bool) []routeView {
	views := make([]routeView, 0, len(analyses))
	for _, a := range analyses {
		v := routeView{RouteAnalysis: a}
		if includeCoords {
			origin, dest := a.CoordinatesOrigin, a.CoordinatesDest
			v.CoordinatesOrigin = &origin
			v.CoordinatesDest = &dest
			v.InterceptionZones = a.InterceptionZones
		}
		views = append(views, v)
	}
	return views
}

func (s *Server) handleRoutesAnalyze(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryInt(r, "limit", 0)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid limit")
		return
	}
	minProfit, ok := queryFloat(r, "min_profit", 0)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid min_profit")
		return
	}
	minScore, ok := queryFloat(r, "min_score", 0)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid min_score")
		return
	}
	includeCoords := r.URL.Query().Get("include_coordinates") == "true"

	analyses, source := s.loadAnalyses(r, db.AnalysisFilter{
		MinRating: minScore,
		MinProfit: minProfit,
		Limit:     limit,
	})

	writeJSON(w, map[string]interface{}{
		"routes":      toRouteViews(analyses, includeCoords),
		"count":       len(analyses),
		"data_source": source,
	})
}

// loadAnalyses reads from the store, falling back to a live refresh when it
// is empty and to the canned simulated set when the feed is down too.
func (s *Server) loadAnalyses(r *http.Request, f db.AnalysisFilter) ([]engine.RouteAnalysis, string) {
	analyses, err := s.store.FindAnalyses(f)
	if err != nil {
		logger.Error("API", fmt.Sprintf("Store read failed: %v", err))
		return simulatedAnalyses(f), dataSourceSimulated
	}
	if len(analyses) > 0 {
		return analyses, dataSourceReal
	}

	if _, err := s.tracker.RunRefresh(r.Context()); err != nil {
		return simulatedAnalyses(f), dataSourceSimulated
	}
	analyses, err = s.store.FindAnalyses(f)
	if err != nil || len(analyses) == 0 {
		return simulatedAnalyses(f), dataSourceSimulated
	}
	return analyses, dataSourceReal
}

func (s *Server) handleExportRoutes(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}
	if format != "json" && format != "csv" {
		writeError(w, http.StatusBadRequest, "format must be json or csv")
		return
	}

	analyses, err := s.store.FindAnalyses(db.AnalysisFilter{})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "store unavailable")
		return
	}
	if codes := r.URL.Query().Get("route_codes"); codes != "" {
		wanted := make(map[string]bool)
		for _, c := range strings.Split(codes, ",") {
			wanted[strings.TrimSpace(c)] = true
		}
		var filtered []engine.RouteAnalysis
		for _, a := range analyses {
			if wanted[a.RouteCode] {
				filtered = append(filtered, a)
			}
		}
		analyses = filtered
	}

	if format == "json" {
		writeJSON(w, map[string]interface{}{
			"routes": toRouteViews(analyses, true),
			"count":  len(analyses),
		})
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="routes.csv"`)
	cw := csv.NewWriter(w)
	cw.Write([]string{
		"route_code", "commodity", "origin_terminal", "origin_system",
		"destination_terminal", "destination_system", "profit", "roi",
		"piracy_rating", "risk_level", "traffic_score", "distance",
	})
	for _, a := range analyses {
		cw.Write([]string{
			a.RouteCode, a.CommodityName, a.OriginTerminal, a.OriginSystem,
			a.DestinationTerminal, a.DestinationSystem,
			strconv.FormatFloat(a.Profit, 'f', 2, 64),
			strconv.FormatFloat(a.ROI, 'f', 2, 64),
			strconv.FormatFloat(a.PiracyRating, 'f', 2, 64),
			a.RiskLevel,
			strconv.FormatFloat(a.TrafficScore, 'f', 2, 64),
			strconv.FormatFloat(a.Distance, 'f', 0, 64),
		})
	}
	cw.Flush()
}
