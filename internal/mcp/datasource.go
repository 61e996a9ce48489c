package mcp

import (
	"context"

	"github.com/claude/ironpulse/internal/journal"
	"github.com/claude/ironpulse/internal/metrics"
	"github.com/claude/ironpulse/internal/models"
)

// DataSource abstracts the journal for MCP tools. Local (in-process journal)
// and HTTPClient (remote via REST API) both satisfy this interface.
type DataSource interface {
	CurrentProgram(ctx context.Context) (models.Program, error)
	Catalog(ctx context.Context) (metrics.Catalog, error)
	ExerciseHistory(ctx context.Context, key string) ([]metrics.HistoryEntry, error)
	Progress(ctx context.Context, key string) (metrics.ProgressStats, error)
	Sessions(ctx context.Context, f metrics.Filter) (metrics.Report, error)
	Planned(ctx context.Context) ([]models.PlannedEntry, error)
	Summary(ctx context.Context) (metrics.Summary, error)
}

// Local serves MCP queries from a journal in the same process.
type Local struct {
	j *journal.Journal
}

// Compile-time check: Local satisfies DataSource.
var _ DataSource = Local{}

// NewLocal wraps j as a DataSource.
func NewLocal(j *journal.Journal) Local {
	return Local{j: j}
}

func (l Local) CurrentProgram(context.Context) (models.Program, error) {
	return l.j.CurrentProgram(), nil
}

func (l Local) Catalog(context.Context) (metrics.Catalog, error) {
	return l.j.Catalog(), nil
}

func (l Local) ExerciseHistory(_ context.Context, key string) ([]metrics.HistoryEntry, error) {
	return l.j.ExerciseHistory(key), nil
}

func (l Local) Progress(_ context.Context, key string) (metrics.ProgressStats, error) {
	return l.j.Progress(key), nil
}

func (l Local) Sessions(_ context.Context, f metrics.Filter) (metrics.Report, error) {
	return l.j.Report(f)
}

func (l Local) Planned(context.Context) ([]models.PlannedEntry, error) {
	return l.j.Planned(), nil
}

func (l Local) Summary(context.Context) (metrics.Summary, error) {
	return l.j.Summary()
}
