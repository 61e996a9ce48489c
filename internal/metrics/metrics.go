// Package metrics derives aggregates, personal records and progression from journal history.
package metrics

import (
	"math"
	"sort"
	"time"

	"github.com/claude/ironpulse/internal/calendar"
	"github.com/claude/ironpulse/internal/models"
	"github.com/claude/ironpulse/internal/normalize"
)

// SessionMetrics are the aggregates stored on a saved session.
type SessionMetrics struct {
	TotalVolume         float64 `json:"totalVolume"`
	TotalReps           float64 `json:"totalReps"`
	PersonalRecordCount int     `json:"personalRecordCount"`
}

// HistoryEntry is one session's performance on a single exercise.
type HistoryEntry struct {
	Date      string    `json:"date"`
	SavedAt   time.Time `json:"savedAt"`
	Volume    float64   `json:"volume"`
	MaxWeight float64   `json:"maxWeight"`
	TotalReps float64   `json:"totalReps"`
}

// ProgressStats compares the latest history entry with the one before it.
type ProgressStats struct {
	LastWeight  float64 `json:"lastWeight"`
	LastReps    float64 `json:"lastReps"`
	LastVolume  float64 `json:"lastVolume"`
	BestWeight  float64 `json:"bestWeight"`
	DeltaWeight float64 `json:"deltaWeight"`
	DeltaReps   float64 `json:"deltaReps"`
	DeltaVolume float64 `json:"deltaVolume"`
}

// ExerciseTotals sums the sets of one exercise. MaxWeight is never below zero.
// Results saturate at the largest finite float so they always encode.
func ExerciseTotals(sets []models.SetEntry) (volume, reps, maxWeight float64) {
	for _, s := range sets {
		r := normalize.ToNumber(s.Reps)
		w := normalize.ToNumber(s.Weight)
		volume = saturate(volume + saturate(r*w))
		reps = saturate(reps + r)
		if w > maxWeight {
			maxWeight = w
		}
	}
	return volume, reps, maxWeight
}

// ComputeSessionMetrics aggregates exercises and counts personal records
// against history. An exercise counts once when its max weight or its volume
// strictly beats every saved session sharing its key, whatever the program.
func ComputeSessionMetrics(exercises []models.SessionExercise, history []models.Session) SessionMetrics {
	var m SessionMetrics
	for _, ex := range exercises {
		volume, reps, maxWeight := ExerciseTotals(ex.Sets)
		m.TotalVolume = saturate(m.TotalVolume + volume)
		m.TotalReps = saturate(m.TotalReps + reps)

		var bestWeight, bestVolume float64
		for _, h := range ExerciseHistory(history, ex.Key) {
			if h.MaxWeight > bestWeight {
				bestWeight = h.MaxWeight
			}
			if h.Volume > bestVolume {
				bestVolume = h.Volume
			}
		}
		if maxWeight > bestWeight || volume > bestVolume {
			m.PersonalRecordCount++
		}
	}
	return m
}

// ExerciseHistory returns one entry per session containing key, most recent first.
func ExerciseHistory(sessions []models.Session, key string) []HistoryEntry {
	var out []HistoryEntry
	for _, s := range SortSessions(sessions) {
		for _, ex := range s.Exercises {
			if ex.Key != key {
				continue
			}
			volume, reps, maxWeight := ExerciseTotals(ex.Sets)
			out = append(out, HistoryEntry{
				Date:      s.Date,
				SavedAt:   s.SavedAt,
				Volume:    volume,
				MaxWeight: maxWeight,
				TotalReps: reps,
			})
			break
		}
	}
	return out
}

// ComputeProgressStats derives stats from a most-recent-first history.
// Empty history yields zero stats.
func ComputeProgressStats(history []HistoryEntry) ProgressStats {
	if len(history) == 0 {
		return ProgressStats{}
	}
	last := history[0]
	stats := ProgressStats{
		LastWeight: last.MaxWeight,
		LastReps:   last.TotalReps,
		LastVolume: last.Volume,
	}
	for _, h := range history {
		if h.MaxWeight > stats.BestWeight {
			stats.BestWeight = h.MaxWeight
		}
	}
	if len(history) > 1 {
		prev := history[1]
		stats.DeltaWeight = saturate(last.MaxWeight - prev.MaxWeight)
		stats.DeltaReps = saturate(last.TotalReps - prev.TotalReps)
		stats.DeltaVolume = saturate(last.Volume - prev.Volume)
	}
	return stats
}

// saturate clamps an overflowed sum to the largest finite float of its sign.
func saturate(x float64) float64 {
	switch {
	case math.IsInf(x, 1):
		return math.MaxFloat64
	case math.IsInf(x, -1):
		return -math.MaxFloat64
	}
	return x
}

// SortSessions returns a copy of sessions ordered most recent first by save
// time, or by date at midnight when the save time is missing.
func SortSessions(sessions []models.Session) []models.Session {
	out := make([]models.Session, len(sessions))
	copy(out, sessions)
	sort.SliceStable(out, func(i, j int) bool {
		return sortTime(out[i]).After(sortTime(out[j]))
	})
	return out
}

func sortTime(s models.Session) time.Time {
	if !s.SavedAt.IsZero() {
		return s.SavedAt
	}
	t, err := calendar.ParseDate(s.Date)
	if err != nil {
		return time.Time{}
	}
	return t
}
