package server

import (
	"net/http"

	"github.com/claude/ironpulse/internal/metrics"
	"github.com/go-chi/chi/v5"
)

// handleSessions returns the filtered session report. Query parameters:
// from, to (YYYY-MM-DD), exercise (exercise key) and group (muscle group).
func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	report, err := s.journal.Report(metrics.Filter{
		From:        q.Get("from"),
		To:          q.Get("to"),
		ExerciseKey: q.Get("exercise"),
		MuscleGroup: q.Get("group"),
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.journal.Summary()
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.journal.Catalog())
}

func (s *Server) handleExerciseHistory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.journal.ExerciseHistory(chi.URLParam(r, "key")))
}

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.journal.Progress(chi.URLParam(r, "key")))
}
