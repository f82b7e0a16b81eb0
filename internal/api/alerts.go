package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"sinister-snare/internal/db"
)

func decodeBody(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

func (s *Server) handleListAlerts(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryInt(r, "limit", 0)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid limit")
		return
	}

	filter := db.AlertFilter{
		Priority: r.URL.Query().Get("priority"),
		Limit:    limit,
	}
	switch r.URL.Query().Get("acknowledged") {
	case "":
	case "true":
		acked := true
		filter.Acknowledged = &acked
	case "false":
		acked := false
		filter.Acknowledged = &acked
	default:
		writeError(w, http.StatusBadRequest, "acknowledged must be true or false")
		return
	}

	alerts, err := s.store.ListAlerts(filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "store unavailable")
		return
	}
	writeJSON(w, map[string]interface{}{
		"alerts": alerts,
		"count":  len(alerts),
	})
}

func (s *Server) handleAcknowledgeAlert(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.store.AcknowledgeAlert(id); err != nil {
		if errors.Is(err, db.ErrAlertNotFound) {
			writeError(w, http.StatusNotFound, "alert not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "store unavailable")
		return
	}
	writeJSON(w, map[string]interface{}{"id": id, "acknowledged": true})
}
