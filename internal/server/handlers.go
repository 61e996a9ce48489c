package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/claude/ironpulse/internal/ingest/program"
	"github.com/claude/ironpulse/internal/journal"
	"github.com/claude/ironpulse/internal/models"
	"github.com/go-chi/chi/v5"
)

const defaultImportLogLimit = 50

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.journal.Snapshot())
}

func (s *Server) handleCurrentProgram(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.journal.CurrentProgram())
}

func (s *Server) handlePrograms(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.journal.Programs())
}

func (s *Server) handlePatterns(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.journal.Patterns())
}

func (s *Server) handleSetProgramMode(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Mode models.ProgramMode `json:"mode"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	mode, err := s.journal.SetProgramMode(r.Context(), body.Mode)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]models.ProgramMode{"mode": mode})
}

// handleProgramImport reads the request body as a tabular program document.
func (s *Server) handleProgramImport(w http.ResponseWriter, r *http.Request) {
	source := r.URL.Query().Get("source")
	if source == "" {
		source = "api"
	}
	result, err := s.importer.Ingest(r.Context(), r.Body, source)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleImportLogs(w http.ResponseWriter, r *http.Request) {
	limit := defaultImportLogLimit
	if l := r.URL.Query().Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	logs, err := s.imports.QueryImportLogs(r.Context(), limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, logs)
}

func (s *Server) handleActiveSession(w http.ResponseWriter, r *http.Request) {
	active, ok := s.journal.ActiveSession()
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no active session"})
		return
	}
	writeJSON(w, http.StatusOK, active)
}

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	var body struct {
		DayID string `json:"dayId"`
		Date  string `json:"date"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	active, err := s.journal.StartSession(r.Context(), body.DayID, body.Date)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, active)
}

func (s *Server) handleDuplicateLast(w http.ResponseWriter, r *http.Request) {
	active, err := s.journal.DuplicateLastSession(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, active)
}

func (s *Server) handleUpdateSet(w http.ResponseWriter, r *http.Request) {
	var body struct {
		InstanceID string           `json:"instanceId"`
		SetIndex   int              `json:"setIndex"`
		Field      journal.SetField `json:"field"`
		Value      string           `json:"value"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	active, err := s.journal.UpdateSet(r.Context(), body.InstanceID, body.SetIndex, body.Field, body.Value)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, active)
}

func (s *Server) handleExerciseComment(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Comment string `json:"comment"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	active, err := s.journal.UpdateExerciseComment(r.Context(), chi.URLParam(r, "instanceID"), body.Comment)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, active)
}

func (s *Server) handleFillFromPrevious(w http.ResponseWriter, r *http.Request) {
	active, err := s.journal.FillFromPrevious(r.Context(), chi.URLParam(r, "instanceID"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, active)
}

func (s *Server) handleCopyFirstSet(w http.ResponseWriter, r *http.Request) {
	active, err := s.journal.CopyFirstSet(r.Context(), chi.URLParam(r, "instanceID"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, active)
}

func (s *Server) handleSaveSession(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Online bool `json:"online"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	saved, err := s.journal.SaveActiveSession(r.Context(), body.Online)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

func (s *Server) handleCancelSession(w http.ResponseWriter, r *http.Request) {
	if err := s.journal.CancelActiveSession(r.Context()); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSync(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Online bool `json:"online"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	n, err := s.journal.Sync(r.Context(), body.Online)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"synced": n})
}

// writeError maps journal and import errors to HTTP status codes.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	var importErr *program.ImportError
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, journal.ErrValidation), errors.As(err, &importErr):
		status = http.StatusBadRequest
	case errors.Is(err, journal.ErrNotFound):
		status = http.StatusNotFound
	default:
		s.log.Error("request failed", "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// decodeBody decodes a JSON request body into v. An empty body leaves v unchanged.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if r.Body == nil || r.ContentLength == 0 {
		return true
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("invalid JSON: %v", err)})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
