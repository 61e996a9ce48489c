// Package planner schedules program days onto calendar weeks.
package planner

import (
	"errors"
	"fmt"

	"github.com/claude/ironpulse/internal/calendar"
	"github.com/claude/ironpulse/internal/ident"
	"github.com/claude/ironpulse/internal/models"
	"github.com/claude/ironpulse/internal/normalize"
)

// CustomPatternID selects caller-supplied dates instead of fixed offsets.
const CustomPatternID = "custom"

var (
	// ErrUnknownPattern is returned when a pattern id is not in the catalog.
	ErrUnknownPattern = errors.New("unknown plan pattern")
	// ErrDateCount is returned when resolved dates do not cover every training day.
	ErrDateCount = errors.New("planned dates do not match the number of sessions")
	// ErrSameWeek is returned when copying a week onto itself.
	ErrSameWeek = errors.New("source and target weeks must differ")
	// ErrEmptyWeek is returned when the source week holds no planned sessions.
	ErrEmptyWeek = errors.New("no planned sessions in source week")
)

// Pattern places training days on weekdays. Offsets are days from Monday.
type Pattern struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Offsets []int  `json:"offsets"`
}

// BuildPatterns returns the patterns offered for a program training dayCount
// days a week, always ending with the custom pattern.
func BuildPatterns(dayCount int) []Pattern {
	custom := Pattern{ID: CustomPatternID, Label: "Choisir les dates", Offsets: []int{}}
	if dayCount >= 4 {
		return []Pattern{
			{ID: "mon-tue-thu-fri", Label: "Lun / Mar / Jeu / Ven", Offsets: []int{0, 1, 3, 4}},
			{ID: "mon-wed-fri-sat", Label: "Lun / Mer / Ven / Sam", Offsets: []int{0, 2, 4, 5}},
			custom,
		}
	}
	return []Pattern{
		{ID: "mon-wed-fri", Label: "Lun / Mer / Ven", Offsets: []int{0, 2, 4}},
		{ID: "tue-thu-sat", Label: "Mar / Jeu / Sam", Offsets: []int{1, 3, 5}},
		custom,
	}
}

// FindPattern looks up id among the patterns for dayCount.
func FindPattern(dayCount int, id string) (Pattern, error) {
	for _, p := range BuildPatterns(dayCount) {
		if p.ID == id {
			return p, nil
		}
	}
	return Pattern{}, fmt.Errorf("%w: %q", ErrUnknownPattern, id)
}

// ResolveDates turns a pattern into dayCount concrete dates. The custom
// pattern uses customDates, ignoring blanks, and requires exactly dayCount of them.
// Fixed patterns are truncated to dayCount and fail when they offer fewer dates.
func ResolveDates(p Pattern, weekStart string, dayCount int, customDates []string) ([]string, error) {
	if p.ID == CustomPatternID {
		var dates []string
		for _, d := range customDates {
			if d == "" {
				continue
			}
			if _, err := calendar.ParseDate(d); err != nil {
				return nil, err
			}
			dates = append(dates, d)
		}
		if len(dates) != dayCount {
			return nil, fmt.Errorf("%w: got %d, want %d", ErrDateCount, len(dates), dayCount)
		}
		return dates, nil
	}

	offsets := p.Offsets
	if len(offsets) > dayCount {
		offsets = offsets[:dayCount]
	}
	if len(offsets) != dayCount {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrDateCount, len(offsets), dayCount)
	}
	dates := make([]string, 0, len(offsets))
	for _, off := range offsets {
		d, err := calendar.AddDays(weekStart, off)
		if err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	return dates, nil
}

// NewEntry plans day of programID on date with a frozen copy of the day.
func NewEntry(programID string, day models.Day, date, notes string) models.PlannedEntry {
	if notes == "" {
		notes = normalize.DefaultPlannedNotes
	}
	return models.PlannedEntry{
		ID:           ident.New(),
		Date:         date,
		ProgramID:    programID,
		ProgramDayID: day.ID,
		DayLabel:     day.Label,
		Notes:        notes,
		DaySnapshot:  normalize.DayOf(day),
	}
}

// Upsert adds entry, replacing any entry with the same date and day label.
func Upsert(planned []models.PlannedEntry, entry models.PlannedEntry) []models.PlannedEntry {
	for i := range planned {
		if planned[i].Date == entry.Date && planned[i].DayLabel == entry.DayLabel {
			planned[i] = entry
			return planned
		}
	}
	return append(planned, entry)
}

// InWeek returns the entries dated within the seven days starting at weekStart.
func InWeek(planned []models.PlannedEntry, weekStart string) []models.PlannedEntry {
	var out []models.PlannedEntry
	for _, p := range planned {
		if calendar.InWeek(p.Date, weekStart) {
			out = append(out, p)
		}
	}
	return out
}

// CopyWeek re-plans every entry of ISO week from into ISO week to, keeping
// each entry's weekday. Copies get fresh ids and are upserted.
func CopyWeek(planned []models.PlannedEntry, from, to string) ([]models.PlannedEntry, int, error) {
	if from == to {
		return planned, 0, ErrSameWeek
	}
	sourceStart, err := calendar.WeekStart(from)
	if err != nil {
		return planned, 0, err
	}
	targetStart, err := calendar.WeekStart(to)
	if err != nil {
		return planned, 0, err
	}

	source := InWeek(planned, sourceStart)
	if len(source) == 0 {
		return planned, 0, fmt.Errorf("%w: %s", ErrEmptyWeek, from)
	}

	for _, p := range source {
		offset, err := calendar.DiffDays(sourceStart, p.Date)
		if err != nil {
			return planned, 0, err
		}
		date, err := calendar.AddDays(targetStart, offset)
		if err != nil {
			return planned, 0, err
		}
		copied := p
		copied.ID = ident.New()
		copied.Date = date
		copied.Notes = "Copie de " + from
		copied.DaySnapshot = normalize.DayOf(p.DaySnapshot)
		planned = Upsert(planned, copied)
	}
	return planned, len(source), nil
}
