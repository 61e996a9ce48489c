package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// SQLite is the single-file Store used for a local journal.
type SQLite struct {
	db *sql.DB
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS kv_store (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS import_logs (
	id                 INTEGER PRIMARY KEY AUTOINCREMENT,
	created_at         TEXT NOT NULL,
	source             TEXT NOT NULL,
	status             TEXT NOT NULL,
	days_imported      INTEGER NOT NULL DEFAULT 0,
	exercises_imported INTEGER NOT NULL DEFAULT 0,
	duration_ms        INTEGER,
	error_message      TEXT
);`

// OpenSQLite opens (or creates) the SQLite database at path.
func OpenSQLite(path string) (*SQLite, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating data dir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}
	// One writer; avoids SQLITE_BUSY between pooled connections.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating tables: %w", err)
	}
	return &SQLite{db: db}, nil
}

// Get returns the value stored under key.
func (s *SQLite) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv_store WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading %s: %w", key, err)
	}
	return value, true, nil
}

// Put stores value under key, replacing any previous value.
func (s *SQLite) Put(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO kv_store (key, value, updated_at) VALUES (?, ?, ?)`,
		key, value, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}

// InsertImportLog records an import outcome and returns its ID.
func (s *SQLite) InsertImportLog(ctx context.Context, log ImportLog) (int64, error) {
	created := log.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO import_logs (created_at, source, status, days_imported, exercises_imported, duration_ms, error_message)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		created.UTC().Format(time.RFC3339Nano), log.Source, log.Status,
		log.DaysImported, log.ExercisesImported, log.DurationMs, log.ErrorMessage,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting import log: %w", err)
	}
	return res.LastInsertId()
}

// QueryImportLogs returns the most recent import logs.
func (s *SQLite) QueryImportLogs(ctx context.Context, limit int) ([]ImportLog, error) {
	if limit <= 0 {
		limit = defaultImportLogLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, source, status, days_imported, exercises_imported, duration_ms, error_message
		 FROM import_logs
		 ORDER BY id DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying import logs: %w", err)
	}
	defer rows.Close()

	var result []ImportLog
	for rows.Next() {
		var (
			l        ImportLog
			created  string
			duration sql.NullInt64
			message  sql.NullString
		)
		if err := rows.Scan(&l.ID, &created, &l.Source, &l.Status,
			&l.DaysImported, &l.ExercisesImported, &duration, &message); err != nil {
			return nil, fmt.Errorf("scanning import log: %w", err)
		}
		if t, err := time.Parse(time.RFC3339Nano, created); err == nil {
			l.CreatedAt = t
		}
		if duration.Valid {
			d := int(duration.Int64)
			l.DurationMs = &d
		}
		if message.Valid {
			m := message.String
			l.ErrorMessage = &m
		}
		result = append(result, l)
	}
	return result, rows.Err()
}

// Close closes the database.
func (s *SQLite) Close() error {
	return s.db.Close()
}
