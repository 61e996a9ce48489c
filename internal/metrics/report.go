package metrics

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/claude/ironpulse/internal/calendar"
	"github.com/claude/ironpulse/internal/models"
)

// Filter narrows the session history. Empty fields match everything.
type Filter struct {
	From        string `json:"from,omitempty"`
	To          string `json:"to,omitempty"`
	ExerciseKey string `json:"exercise,omitempty"`
	MuscleGroup string `json:"group,omitempty"`
}

// Match reports whether s passes every set criterion. Dates compare as YYYY-MM-DD text.
func (f Filter) Match(s models.Session) bool {
	if f.From != "" && s.Date < f.From {
		return false
	}
	if f.To != "" && s.Date > f.To {
		return false
	}
	if f.ExerciseKey != "" && !hasExercise(s, func(e models.SessionExercise) bool { return e.Key == f.ExerciseKey }) {
		return false
	}
	if f.MuscleGroup != "" && !hasExercise(s, func(e models.SessionExercise) bool { return e.MuscleGroup == f.MuscleGroup }) {
		return false
	}
	return true
}

func hasExercise(s models.Session, pred func(models.SessionExercise) bool) bool {
	for _, e := range s.Exercises {
		if pred(e) {
			return true
		}
	}
	return false
}

// FilterSessions returns the sorted history entries matching f.
func FilterSessions(sessions []models.Session, f Filter) []models.Session {
	out := []models.Session{}
	for _, s := range SortSessions(sessions) {
		if f.Match(s) {
			out = append(out, s)
		}
	}
	return out
}

// Totals sums the stored aggregates of a set of sessions.
type Totals struct {
	Sessions            int     `json:"sessions"`
	TotalVolume         float64 `json:"totalVolume"`
	TotalReps           float64 `json:"totalReps"`
	PersonalRecordCount int     `json:"personalRecordCount"`
}

// Sum adds up the stored session aggregates.
func Sum(sessions []models.Session) Totals {
	t := Totals{Sessions: len(sessions)}
	for _, s := range sessions {
		t.TotalVolume = saturate(t.TotalVolume + s.TotalVolume)
		t.TotalReps = saturate(t.TotalReps + s.TotalReps)
		t.PersonalRecordCount += s.PersonalRecordCount
	}
	return t
}

// Report is the filtered history handed to the export collaborator.
type Report struct {
	Filter   Filter           `json:"filter"`
	Sessions []models.Session `json:"sessions"`
	Totals   Totals           `json:"totals"`
}

// BuildReport filters sessions and totals the result.
func BuildReport(sessions []models.Session, f Filter) Report {
	filtered := FilterSessions(sessions, f)
	return Report{Filter: f, Sessions: filtered, Totals: Sum(filtered)}
}

// Summary covers the seven days ending today.
type Summary struct {
	From        string `json:"from"`
	To          string `json:"to"`
	Totals      `json:"totals"`
	PendingSync int `json:"pendingSync"`
}

// Summarize totals the sessions dated today-6 through today. PendingSync counts
// every unsynced session regardless of date.
func Summarize(sessions []models.Session, today string) (Summary, error) {
	days, err := calendar.Range(today, 7)
	if err != nil {
		return Summary{}, err
	}
	sum := Summary{From: days[0], To: today}
	var recent []models.Session
	for _, s := range sessions {
		if s.Date >= sum.From && s.Date <= sum.To {
			recent = append(recent, s)
		}
		if !s.Synced {
			sum.PendingSync++
		}
	}
	sum.Totals = Sum(recent)
	return sum, nil
}

// CatalogEntry is one known exercise.
type CatalogEntry struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	MuscleGroup string `json:"muscleGroup"`
}

// Catalog lists known exercises and their muscle groups.
type Catalog struct {
	Exercises []CatalogEntry `json:"exercises"`
	Groups    []string       `json:"groups"`
}

// BuildCatalog lists the exercises of program, then any other keys found in
// history, ordered by French collation of the name.
func BuildCatalog(program models.Program, sessions []models.Session) Catalog {
	seen := map[string]bool{}
	var entries []CatalogEntry
	add := func(key, name, group string) {
		if seen[key] {
			return
		}
		seen[key] = true
		if group == "" {
			group = "Autre"
		}
		entries = append(entries, CatalogEntry{Key: key, Name: name, MuscleGroup: group})
	}

	for _, d := range program.Days {
		for _, e := range d.Exercises {
			add(e.Key, e.Name, e.MuscleGroup)
		}
	}
	for _, s := range sessions {
		for _, e := range s.Exercises {
			add(e.Key, e.Name, e.MuscleGroup)
		}
	}

	col := collate.New(language.French)
	sort.SliceStable(entries, func(i, j int) bool {
		return col.CompareString(entries[i].Name, entries[j].Name) < 0
	})

	groupSet := map[string]bool{}
	groups := []string{}
	for _, e := range entries {
		if !groupSet[e.MuscleGroup] {
			groupSet[e.MuscleGroup] = true
			groups = append(groups, e.MuscleGroup)
		}
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return col.CompareString(groups[i], groups[j]) < 0
	})

	if entries == nil {
		entries = []CatalogEntry{}
	}
	return Catalog{Exercises: entries, Groups: groups}
}
