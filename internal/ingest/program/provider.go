package program

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/claude/ironpulse/internal/ingest"
	"github.com/claude/ironpulse/internal/models"
	"github.com/claude/ironpulse/internal/storage"
)

// Installer replaces the stored custom program.
type Installer interface {
	ReplaceCustomProgram(ctx context.Context, p models.Program) error
}

// ImportLogger records import outcomes.
type ImportLogger interface {
	InsertImportLog(ctx context.Context, log storage.ImportLog) (int64, error)
}

// Provider imports program documents into a journal.
type Provider struct {
	target Installer
	logs   ImportLogger
	log    *slog.Logger
}

// NewProvider creates a program import provider. logs may be nil.
func NewProvider(target Installer, logs ImportLogger, log *slog.Logger) *Provider {
	return &Provider{target: target, logs: logs, log: log}
}

// Ingest reads a whole document, parses it and installs the program. The
// import is all-or-nothing: on any error the current program is untouched.
func (p *Provider) Ingest(ctx context.Context, r io.Reader, source string) (*ingest.Result, error) {
	start := time.Now()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading program: %w", err)
	}

	result := &ingest.Result{}
	prog, err := Parse(string(data))
	if err == nil {
		err = p.target.ReplaceCustomProgram(ctx, prog)
	}
	if err != nil {
		p.record(ctx, source, start, result, err)
		var ie *ImportError
		if errors.As(err, &ie) {
			return nil, err
		}
		return nil, fmt.Errorf("installing program: %w", err)
	}

	result = ingest.Summarize(prog)
	p.record(ctx, source, start, result, nil)

	p.log.Info("program imported",
		"source", source,
		"days", result.DaysImported,
		"exercises", result.ExercisesImported,
	)
	return result, nil
}

func (p *Provider) record(ctx context.Context, source string, start time.Time, result *ingest.Result, importErr error) {
	if p.logs == nil {
		return
	}
	ms := int(time.Since(start).Milliseconds())
	entry := storage.ImportLog{
		Source:            source,
		Status:            storage.ImportSuccess,
		DaysImported:      result.DaysImported,
		ExercisesImported: result.ExercisesImported,
		DurationMs:        &ms,
	}
	if importErr != nil {
		msg := importErr.Error()
		entry.Status = storage.ImportError
		entry.ErrorMessage = &msg
	}
	id, err := p.logs.InsertImportLog(ctx, entry)
	if err != nil {
		p.log.Warn("failed to record import log", "source", source, "error", err)
		return
	}
	result.LogID = id
}
