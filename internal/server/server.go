package server

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/claude/ironpulse/internal/ingest"
	"github.com/claude/ironpulse/internal/journal"
	"github.com/claude/ironpulse/internal/storage"
	"github.com/go-chi/chi/v5"
)

// ProgramImporter imports a tabular program document.
type ProgramImporter interface {
	Ingest(ctx context.Context, r io.Reader, source string) (*ingest.Result, error)
}

// ImportLogReader lists recorded program imports, newest first.
type ImportLogReader interface {
	QueryImportLogs(ctx context.Context, limit int) ([]storage.ImportLog, error)
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	journal  *journal.Journal
	importer ProgramImporter
	imports  ImportLogReader
	log      *slog.Logger
	router   chi.Router
}

// New creates a new Server with all routes configured.
func New(j *journal.Journal, importer ProgramImporter, imports ImportLogReader, log *slog.Logger) *Server {
	s := &Server{
		journal:  j,
		importer: importer,
		imports:  imports,
		log:      log,
		router:   chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// MountMCP serves an MCP transport under /mcp.
func (s *Server) MountMCP(h http.Handler) {
	s.router.Handle("/mcp", h)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/state", s.handleState)

		r.Get("/program", s.handleCurrentProgram)
		r.Get("/programs", s.handlePrograms)
		r.Put("/program/mode", s.handleSetProgramMode)
		r.Post("/program/import", s.handleProgramImport)
		r.Get("/imports", s.handleImportLogs)
		r.Get("/patterns", s.handlePatterns)

		r.Route("/session", func(r chi.Router) {
			r.Get("/", s.handleActiveSession)
			r.Delete("/", s.handleCancelSession)
			r.Post("/start", s.handleStartSession)
			r.Post("/duplicate-last", s.handleDuplicateLast)
			r.Patch("/sets", s.handleUpdateSet)
			r.Patch("/exercises/{instanceID}/comment", s.handleExerciseComment)
			r.Post("/exercises/{instanceID}/fill-last", s.handleFillFromPrevious)
			r.Post("/exercises/{instanceID}/copy-first-set", s.handleCopyFirstSet)
			r.Post("/save", s.handleSaveSession)
		})

		r.Get("/sessions", s.handleSessions)
		r.Get("/summary", s.handleSummary)
		r.Get("/exercises", s.handleCatalog)
		r.Get("/exercises/{key}/history", s.handleExerciseHistory)
		r.Get("/exercises/{key}/progress", s.handleProgress)
		r.Post("/sync", s.handleSync)

		r.Route("/planned", func(r chi.Router) {
			r.Get("/", s.handlePlanned)
			r.Post("/", s.handlePlanDay)
			r.Post("/week", s.handlePlanWeek)
			r.Post("/copy", s.handleCopyWeek)
			r.Post("/{id}/start", s.handleStartFromPlan)
			r.Delete("/{id}", s.handleRemovePlanned)
		})
	})
}
