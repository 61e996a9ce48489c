package ingest

import (
	"fmt"

	"github.com/claude/ironpulse/internal/models"
)

// Result holds the outcome of an ingest operation.
type Result struct {
	DaysImported      int    `json:"days_imported"`
	TrainingDays      int    `json:"training_days"`
	RestDays          int    `json:"rest_days"`
	ExercisesImported int    `json:"exercises_imported"`
	LogID             int64  `json:"log_id,omitempty"`
	Message           string `json:"message,omitempty"`
}

// Summarize counts the days and exercises of an imported program.
func Summarize(p models.Program) *Result {
	r := &Result{}
	for _, d := range p.Days {
		r.DaysImported++
		if d.IsRestDay {
			r.RestDays++
		} else {
			r.TrainingDays++
		}
		r.ExercisesImported += len(d.Exercises)
	}
	r.Message = fmt.Sprintf("%d seances, %d exercices", r.TrainingDays, r.ExercisesImported)
	return r
}
