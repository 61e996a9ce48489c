package storage

import (
	"context"
	"time"
)

// Store persists the journal blob under string keys and keeps a log of program imports.
// Put overwrites unconditionally.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Put(ctx context.Context, key, value string) error
	InsertImportLog(ctx context.Context, log ImportLog) (int64, error)
	QueryImportLogs(ctx context.Context, limit int) ([]ImportLog, error)
	Close() error
}

// ImportLog represents a single program import's outcome.
type ImportLog struct {
	ID                int64     `json:"id"`
	CreatedAt         time.Time `json:"created_at"`
	Source            string    `json:"source"`
	Status            string    `json:"status"`
	DaysImported      int       `json:"days_imported"`
	ExercisesImported int       `json:"exercises_imported"`
	DurationMs        *int      `json:"duration_ms"`
	ErrorMessage      *string   `json:"error_message"`
}

// Import log statuses.
const (
	ImportSuccess = "success"
	ImportError   = "error"
)

const defaultImportLogLimit = 50
