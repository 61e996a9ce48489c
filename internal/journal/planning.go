package journal

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/claude/ironpulse/internal/calendar"
	"github.com/claude/ironpulse/internal/models"
	"github.com/claude/ironpulse/internal/normalize"
	"github.com/claude/ironpulse/internal/planner"
)

// Planned returns the planned entries ordered by date.
func (j *Journal) Planned() []models.PlannedEntry {
	var out []models.PlannedEntry
	j.read(func(s *models.State) { out = s.Clone().Planned })
	sort.SliceStable(out, func(a, b int) bool { return out[a].Date < out[b].Date })
	return out
}

// PlanDay plans one training day of the current program on date.
func (j *Journal) PlanDay(ctx context.Context, dayID, date string) (models.PlannedEntry, error) {
	if date == "" {
		return models.PlannedEntry{}, fmt.Errorf("%w: date is required", ErrValidation)
	}
	date, err := j.validDate(date)
	if err != nil {
		return models.PlannedEntry{}, err
	}
	var out models.PlannedEntry
	err = j.update(ctx, func(s *models.State) (bool, error) {
		program := j.currentProgram(s)
		day, ok := program.FindDay(dayID)
		if !ok {
			return false, fmt.Errorf("%w: day %q", ErrNotFound, dayID)
		}
		if day.IsRestDay {
			return false, fmt.Errorf("%w: day %q is a rest day", ErrValidation, dayID)
		}
		out = planner.NewEntry(program.ID, day, date, fmt.Sprintf("Planifie (%s)", program.Name))
		s.Planned = planner.Upsert(s.Planned, out)
		return true, nil
	})
	return out, err
}

// PlanWeek plans every training day of the current program in ISO week
// using the pattern patternID. The custom pattern takes one date per
// training day from customDates and only needs week, when given, for the notes.
func (j *Journal) PlanWeek(ctx context.Context, week, patternID string, customDates []string) ([]models.PlannedEntry, error) {
	var start string
	if patternID != planner.CustomPatternID || week != "" {
		var err error
		if start, err = calendar.WeekStart(week); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrValidation, err)
		}
	}
	notes := "Planifie"
	if week != "" {
		notes = fmt.Sprintf("Planifie (%s)", week)
	}
	var out []models.PlannedEntry
	err := j.update(ctx, func(s *models.State) (bool, error) {
		program := j.currentProgram(s)
		days := program.TrainingDays()
		pattern, err := planner.FindPattern(len(days), patternID)
		if err != nil {
			return false, fmt.Errorf("%w: %w", ErrValidation, err)
		}
		dates, err := planner.ResolveDates(pattern, start, len(days), customDates)
		if err != nil {
			return false, fmt.Errorf("%w: %w", ErrValidation, err)
		}
		for i, day := range days {
			e := planner.NewEntry(program.ID, day, dates[i], notes)
			s.Planned = planner.Upsert(s.Planned, e)
			out = append(out, e)
		}
		return len(out) > 0, nil
	})
	return out, err
}

// CopyWeek copies the entries planned in ISO week from into ISO week to.
// It returns the number of entries copied.
func (j *Journal) CopyWeek(ctx context.Context, from, to string) (int, error) {
	var n int
	err := j.update(ctx, func(s *models.State) (bool, error) {
		planned, copied, err := planner.CopyWeek(s.Planned, from, to)
		switch {
		case errors.Is(err, planner.ErrEmptyWeek):
			return false, fmt.Errorf("%w: %w", ErrNotFound, err)
		case err != nil:
			return false, fmt.Errorf("%w: %w", ErrValidation, err)
		}
		s.Planned = planned
		n = copied
		return true, nil
	})
	return n, err
}

// StartFromPlan starts an active session from a planned entry's snapshot and
// consumes the entry.
func (j *Journal) StartFromPlan(ctx context.Context, planID string) (models.ActiveSession, error) {
	var out models.ActiveSession
	err := j.update(ctx, func(s *models.State) (bool, error) {
		idx := findPlanned(s.Planned, planID)
		if idx < 0 {
			return false, fmt.Errorf("%w: planned session %q", ErrNotFound, planID)
		}
		plan := s.Planned[idx]
		snapshot := normalize.DayOf(plan.DaySnapshot)
		if snapshot.IsRestDay || len(snapshot.Exercises) == 0 {
			return false, fmt.Errorf("%w: planned session has no exercises", ErrValidation)
		}
		programID := plan.ProgramID
		if programID == "" {
			programID = j.currentProgram(s).ID
		}
		out = newActiveSession(programID, snapshot, plan.Date, j.now())
		s.ActiveSession = &out
		s.Planned = append(s.Planned[:idx], s.Planned[idx+1:]...)
		return true, nil
	})
	return out, err
}

// RemovePlanned deletes a planned entry.
func (j *Journal) RemovePlanned(ctx context.Context, planID string) error {
	return j.update(ctx, func(s *models.State) (bool, error) {
		idx := findPlanned(s.Planned, planID)
		if idx < 0 {
			return false, fmt.Errorf("%w: planned session %q", ErrNotFound, planID)
		}
		s.Planned = append(s.Planned[:idx], s.Planned[idx+1:]...)
		return true, nil
	})
}

func findPlanned(planned []models.PlannedEntry, id string) int {
	for i, p := range planned {
		if p.ID == id {
			return i
		}
	}
	return -1
}
