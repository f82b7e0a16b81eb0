package api

import (
	"net/http"
	"time"

	"sinister-snare/internal/db"
	"sinister-snare/internal/engine"
)

func (s *Server) handleSnareNow(w http.ResponseWriter, r *http.Request) {
	analyses, source := s.loadAnalyses(r, db.AnalysisFilter{})
	result := engine.SnareNow(analyses, time.Now().UTC())
	if result == nil {
		writeError(w, http.StatusNotFound, "no routes available to snare")
		return
	}

	writeJSON(w, map[string]interface{}{
		"target":             result.Target,
		"interception_point": result.InterceptionPoint,
		"live":               result.Live,
		"alternatives":       result.Alternatives,
		"data_source":        source,
	})
}

func (s *Server) handleCommoditySnare(w http.ResponseWriter, r *http.Request) {
	commodity := r.URL.Query().Get("commodity_name")
	if commodity == "" && r.Method == http.MethodPost {
		var body struct {
			CommodityName string `json:"commodity_name"`
		}
		if err := decodeBody(r, &body); err == nil {
			commodity = body.CommodityName
		}
	}
	if commodity == "" {
		writeError(w, http.StatusBadRequest, "commodity_name is required")
		return
	}

	analyses, source := s.loadAnalyses(r, db.AnalysisFilter{})
	routes := engine.CommoditySnare(analyses, commodity)

	writeJSON(w, map[string]interface{}{
		"commodity":   commodity,
		"routes":      routes,
		"count":       len(routes),
		"data_source": source,
	})
}
