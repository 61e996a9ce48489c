package journal

import (
	"context"
	"fmt"

	"github.com/claude/ironpulse/internal/calendar"
	"github.com/claude/ironpulse/internal/metrics"
	"github.com/claude/ironpulse/internal/models"
)

// ExerciseHistory returns the per-session history of an exercise, most recent first.
func (j *Journal) ExerciseHistory(key string) []metrics.HistoryEntry {
	var out []metrics.HistoryEntry
	j.read(func(s *models.State) { out = metrics.ExerciseHistory(s.Sessions, key) })
	if out == nil {
		out = []metrics.HistoryEntry{}
	}
	return out
}

// Progress returns the progression stats of an exercise.
func (j *Journal) Progress(key string) metrics.ProgressStats {
	return metrics.ComputeProgressStats(j.ExerciseHistory(key))
}

// Report returns the filtered history with its totals.
func (j *Journal) Report(f metrics.Filter) (metrics.Report, error) {
	for _, d := range []string{f.From, f.To} {
		if d == "" {
			continue
		}
		if _, err := calendar.ParseDate(d); err != nil {
			return metrics.Report{}, fmt.Errorf("%w: %w", ErrValidation, err)
		}
	}
	var out metrics.Report
	j.read(func(s *models.State) { out = metrics.BuildReport(s.Clone().Sessions, f) })
	return out, nil
}

// Summary totals the last seven days ending today.
func (j *Journal) Summary() (metrics.Summary, error) {
	var (
		out metrics.Summary
		err error
	)
	j.read(func(s *models.State) { out, err = metrics.Summarize(s.Sessions, j.today()) })
	return out, err
}

// Catalog lists the exercises of the current program and of history.
func (j *Journal) Catalog() metrics.Catalog {
	var out metrics.Catalog
	j.read(func(s *models.State) { out = metrics.BuildCatalog(j.currentProgram(s), s.Sessions) })
	return out
}

// Sync marks every unsynced session as synced when online and returns how
// many changed. The last sync time moves only when something changed.
func (j *Journal) Sync(ctx context.Context, online bool) (int, error) {
	if !online {
		return 0, nil
	}
	var n int
	err := j.update(ctx, func(s *models.State) (bool, error) {
		for i := range s.Sessions {
			if !s.Sessions[i].Synced {
				s.Sessions[i].Synced = true
				n++
			}
		}
		if n == 0 {
			return false, nil
		}
		now := j.now().UTC()
		s.LastSyncAt = &now
		return true, nil
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}
