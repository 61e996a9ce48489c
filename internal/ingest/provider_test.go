package ingest

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/claude/ironpulse/internal/models"
)

// TestSummarize verifies day and exercise counts split by rest and training days.
func TestSummarize(t *testing.T) {
	p := models.Program{Days: []models.Day{
		{ID: "a", Exercises: []models.ExerciseTemplate{{Key: "squat"}, {Key: "row"}}},
		{ID: "b", IsRestDay: true, Exercises: []models.ExerciseTemplate{}},
		{ID: "c", Exercises: []models.ExerciseTemplate{{Key: "bench"}}},
	}}
	want := &Result{
		DaysImported:      3,
		TrainingDays:      2,
		RestDays:          1,
		ExercisesImported: 3,
		Message:           "2 seances, 3 exercices",
	}
	if diff := cmp.Diff(want, Summarize(p)); diff != "" {
		t.Errorf("Summarize (-want +got):\n%s", diff)
	}
}
