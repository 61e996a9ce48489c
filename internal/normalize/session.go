package normalize

import (
	"fmt"
	"time"

	"github.com/claude/ironpulse/internal/ident"
	"github.com/claude/ironpulse/internal/models"
)

// Defaults for sessions and planned entries.
const (
	DefaultSessionProgramID = "3x"
	DefaultPlannedLabel     = "Seance"
	DefaultPlannedNotes     = "Planifie"
)

// Session normalizes a saved session. ok is false when the record has no date.
// now stamps missing timestamps.
func Session(r Raw, now time.Time) (models.Session, bool) {
	date := str(r, "", "date")
	if r == nil || date == "" {
		return models.Session{}, false
	}

	savedAt, ok := timestamp(r, "savedAt")
	if !ok {
		savedAt = now.UTC()
	}
	updatedAt, ok := timestamp(r, "updatedAt")
	if !ok {
		updatedAt = savedAt
	}
	createdAt, ok := timestamp(r, "createdAt")
	if !ok {
		createdAt = savedAt
	}

	prs, _ := pick(r, "personalRecordCount", "prCount")
	return models.Session{
		ID:                  str(r, ident.New(), "id"),
		Date:                date,
		ProgramID:           str(r, DefaultSessionProgramID, "programId"),
		ProgramDayID:        str(r, "", "programDayId"),
		ProgramDayLabel:     str(r, "", "programDayLabel"),
		Exercises:           sessionExercises(r["exercises"]),
		TotalVolume:         ToNumber(r["totalVolume"]),
		TotalReps:           ToNumber(r["totalReps"]),
		PersonalRecordCount: int(ToNumber(prs)),
		Synced:              truthy(r["synced"]),
		CreatedAt:           createdAt,
		UpdatedAt:           updatedAt,
		SavedAt:             savedAt,
	}, true
}

// ActiveSession normalizes an in-progress session. ok is false when the record has no date.
func ActiveSession(r Raw, now time.Time) (models.ActiveSession, bool) {
	s, ok := Session(r, now)
	if !ok {
		return models.ActiveSession{}, false
	}
	return models.ActiveSession{
		ID:              s.ID,
		Date:            s.Date,
		ProgramID:       s.ProgramID,
		ProgramDayID:    s.ProgramDayID,
		ProgramDayLabel: s.ProgramDayLabel,
		Exercises:       s.Exercises,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}, true
}

// Planned normalizes a planned entry. ok is false when the record has no date.
func Planned(r Raw) (models.PlannedEntry, bool) {
	date := str(r, "", "date")
	if r == nil || date == "" {
		return models.PlannedEntry{}, false
	}

	p := models.PlannedEntry{
		ID:           str(r, ident.New(), "id"),
		Date:         date,
		ProgramID:    str(r, DefaultSessionProgramID, "programId"),
		ProgramDayID: str(r, "", "programDayId"),
		DayLabel:     str(r, DefaultPlannedLabel, "dayLabel"),
		Notes:        str(r, DefaultPlannedNotes, "notes"),
	}
	snap := record(r["daySnapshot"])
	if snap == nil {
		snap = Raw{"id": r["programDayId"], "label": r["dayLabel"], "isRestDay": false}
	}
	p.DaySnapshot = Day(snap)
	return p, true
}

func sessionExercises(v any) []models.SessionExercise {
	out := []models.SessionExercise{}
	items, ok := list(v)
	if !ok {
		return out
	}
	for i, item := range items {
		r := record(item)
		if r == nil {
			continue
		}
		out = append(out, sessionExercise(r, i))
	}
	return out
}

func sessionExercise(r Raw, index int) models.SessionExercise {
	name := str(r, fmt.Sprintf("Exercice %d", index+1), "name")
	rawSets, _ := list(r["sets"])

	target, ok := pick(r, "targetSetCount", "targetSets")
	if !ok && len(rawSets) > 0 {
		target, ok = len(rawSets), true
	}
	if !ok {
		target, _ = pick(r, "sets")
	}
	count := ClampPositiveInt(target, 1)

	sets := make([]models.SetEntry, 0, len(rawSets))
	for _, s := range rawSets {
		sr := record(s)
		sets = append(sets, models.SetEntry{
			Reps:      str(sr, "", "reps"),
			Weight:    str(sr, "", "weight"),
			RestTaken: str(sr, "", "restTaken", "rest"),
			Comment:   str(sr, "", "comment"),
		})
	}

	templateID := str(r, "", "templateExerciseId", "id")
	instancePrefix := str(r, "ex", "id")
	if templateID == "" {
		templateID = fmt.Sprintf("ex-%d", index+1)
	}
	e := models.SessionExercise{
		InstanceID:         str(r, fmt.Sprintf("%s-%d-%s", instancePrefix, index, ident.Suffix()), "instanceId"),
		TemplateExerciseID: templateID,
		Key:                str(r, "", "key"),
		Name:               name,
		MuscleGroup:        str(r, DefaultGroup, "muscleGroup", "group", "groupe"),
		TargetSetCount:     count,
		TargetReps:         str(r, "", "targetReps", "reps"),
		TargetRIR:          str(r, "", "targetRIR", "targetRir", "rir"),
		TargetRest:         str(r, "", "targetRest", "rest"),
		Sets:               ResizeSets(sets, count),
		Comment:            str(r, "", "comment"),
	}
	if e.Key == "" {
		e.Key = ExerciseKey(name)
	}
	return e
}

// ResizeSets returns a copy of sets with exactly n entries, padding with blank
// sets and dropping any extras.
func ResizeSets(sets []models.SetEntry, n int) []models.SetEntry {
	if n < 0 {
		n = 0
	}
	out := make([]models.SetEntry, n)
	copy(out, sets)
	return out
}
