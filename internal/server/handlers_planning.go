package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handlePlanned(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.journal.Planned())
}

func (s *Server) handlePlanDay(w http.ResponseWriter, r *http.Request) {
	var body struct {
		DayID string `json:"dayId"`
		Date  string `json:"date"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	entry, err := s.journal.PlanDay(r.Context(), body.DayID, body.Date)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (s *Server) handlePlanWeek(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Week        string   `json:"week"`
		Pattern     string   `json:"pattern"`
		CustomDates []string `json:"customDates"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	entries, err := s.journal.PlanWeek(r.Context(), body.Week, body.Pattern, body.CustomDates)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entries)
}

func (s *Server) handleCopyWeek(w http.ResponseWriter, r *http.Request) {
	var body struct {
		From string `json:"from"`
		To   string `json:"to"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	n, err := s.journal.CopyWeek(r.Context(), body.From, body.To)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"copied": n})
}

func (s *Server) handleStartFromPlan(w http.ResponseWriter, r *http.Request) {
	active, err := s.journal.StartFromPlan(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, active)
}

func (s *Server) handleRemovePlanned(w http.ResponseWriter, r *http.Request) {
	if err := s.journal.RemovePlanned(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
