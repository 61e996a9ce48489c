// Package normalize turns loosely shaped records into strict journal entities.
//
// Every entry point accepts canonical field names as well as the aliases
// written by earlier schemas and by the tabular importer. When both are set
// the canonical name wins. Normalization never fails: missing values get
// defaults, and unrecoverable records are reported with ok=false so callers
// can drop them.
package normalize

import (
	"fmt"

	"github.com/claude/ironpulse/internal/ident"
	"github.com/claude/ironpulse/internal/models"
)

// Defaults substituted for missing values.
const (
	DefaultGroup       = "Autre"
	DefaultDayLabel    = "Jour"
	DefaultProgramName = "Programme"
	DefaultProgramID   = "program"
)

// Program normalizes a program record. fallbackID is used when the record has no id.
func Program(r Raw, fallbackID string) models.Program {
	if fallbackID == "" {
		fallbackID = DefaultProgramID
	}
	p := models.Program{
		ID:   str(r, fallbackID, "id"),
		Name: str(r, DefaultProgramName, "name", "nom"),
		Days: []models.Day{},
	}
	if days, ok := list(r["days"]); ok {
		for _, d := range days {
			if dr := record(d); dr != nil {
				p.Days = append(p.Days, Day(dr))
			}
		}
	}
	return p
}

// Day normalizes a program day. A day without exercises is always a rest day.
func Day(r Raw) models.Day {
	d := models.Day{
		ID:        str(r, "", "id"),
		Label:     str(r, DefaultDayLabel, "label", "jour"),
		Exercises: []models.ExerciseTemplate{},
	}
	if exercises, ok := list(r["exercises"]); ok {
		for i, e := range exercises {
			if er := record(e); er != nil {
				d.Exercises = append(d.Exercises, ExerciseTemplate(er, i, d.ID))
			}
		}
	}
	if d.ID == "" {
		d.ID = "day-" + ident.Short(4)
	}
	rest, _ := pick(r, "isRestDay", "rest", "repos")
	d.IsRestDay = truthy(rest) || len(d.Exercises) == 0
	return d
}

// ExerciseTemplate normalizes the exercise at position index of day dayID.
func ExerciseTemplate(r Raw, index int, dayID string) models.ExerciseTemplate {
	name := str(r, fmt.Sprintf("Exercice %d", index+1), "name", "exercice")
	if dayID == "" {
		dayID = "day"
	}
	sets, _ := pick(r, "targetSetCount", "sets", "series")
	e := models.ExerciseTemplate{
		ID:             str(r, fmt.Sprintf("%s-ex-%d", dayID, index+1), "id"),
		Key:            str(r, "", "key"),
		Name:           name,
		MuscleGroup:    str(r, DefaultGroup, "muscleGroup", "group", "groupe"),
		WarmupSetCount: str(r, "", "warmupSetCount", "warmup", "echauffement"),
		TargetSetCount: ClampPositiveInt(sets, 1),
		TargetReps:     str(r, "", "targetReps", "reps"),
		TargetRIR:      str(r, "", "targetRIR", "rir"),
		TargetRest:     str(r, "", "targetRest", "rest", "repos"),
		Notes:          str(r, "", "notes"),
		VideoRef:       str(r, "", "videoRef", "video"),
		VariantsText:   str(r, "", "variantsText", "variants", "variantes"),
	}
	if e.Key == "" {
		e.Key = ExerciseKey(name)
	}
	return e
}

// DayOf re-normalizes a typed day, restoring its invariants.
func DayOf(d models.Day) models.Day {
	return Day(ToRaw(d))
}
