package storage

import (
	"context"
	"fmt"
)

// InsertImportLog records an import outcome and returns its ID.
func (db *DB) InsertImportLog(ctx context.Context, log ImportLog) (int64, error) {
	var id int64
	err := db.Pool.QueryRow(ctx,
		`INSERT INTO import_logs (source, status, days_imported, exercises_imported, duration_ms, error_message)
		 VALUES ($1,$2,$3,$4,$5,$6)
		 RETURNING id`,
		log.Source, log.Status, log.DaysImported, log.ExercisesImported, log.DurationMs, log.ErrorMessage,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting import log: %w", err)
	}
	return id, nil
}

// QueryImportLogs returns the most recent import logs.
func (db *DB) QueryImportLogs(ctx context.Context, limit int) ([]ImportLog, error) {
	if limit <= 0 {
		limit = defaultImportLogLimit
	}
	rows, err := db.Pool.Query(ctx,
		`SELECT id, created_at, source, status, days_imported, exercises_imported, duration_ms, error_message
		 FROM import_logs
		 ORDER BY created_at DESC, id DESC
		 LIMIT $1`,
		limit)
	if err != nil {
		return nil, fmt.Errorf("querying import logs: %w", err)
	}
	defer rows.Close()

	var result []ImportLog
	for rows.Next() {
		var l ImportLog
		if err := rows.Scan(&l.ID, &l.CreatedAt, &l.Source, &l.Status,
			&l.DaysImported, &l.ExercisesImported, &l.DurationMs, &l.ErrorMessage); err != nil {
			return nil, fmt.Errorf("scanning import log: %w", err)
		}
		result = append(result, l)
	}
	return result, rows.Err()
}
