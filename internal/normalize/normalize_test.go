package normalize

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/claude/ironpulse/internal/models"
)

var fixedNow = time.Date(2024, 3, 6, 18, 30, 0, 0, time.UTC)

// TestExerciseKey verifies diacritics are stripped and runs collapse to single hyphens.
func TestExerciseKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Développé Incliné", "developpe-incline"},
		{"  Squat  ", "squat"},
		{"Tirage -- poulie (haute)", "tirage-poulie-haute"},
		{"Élévations latérales", "elevations-laterales"},
		{"Curl 21s", "curl-21s"},
	}
	for _, tt := range tests {
		if got := ExerciseKey(tt.in); got != tt.want {
			t.Errorf("ExerciseKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// TestExerciseKeyFallback verifies names without usable characters get a random key.
func TestExerciseKeyFallback(t *testing.T) {
	got := ExerciseKey("!!!")
	if !strings.HasPrefix(got, "exercise-") || len(got) != len("exercise-")+6 {
		t.Errorf("ExerciseKey(!!!) = %q, want exercise-XXXXXX", got)
	}
}

// TestHeader verifies column titles fold to bare alphanumerics.
func TestHeader(t *testing.T) {
	tests := map[string]string{
		"Échauffement":   "echauffement",
		" Série(s) ":     "series",
		"Lien vidéo":     "lienvideo",
		"Variantes exo.": "variantesexo",
		"RIR":            "rir",
	}
	for in, want := range tests {
		if got := Header(in); got != want {
			t.Errorf("Header(%q) = %q, want %q", in, got, want)
		}
	}
}

// TestParseNumber verifies comma decimals, blanks, and garbage.
func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   any
		want float64
		ok   bool
	}{
		{"80,5", 80.5, true},
		{"12", 12, true},
		{" 7 ", 7, true},
		{"", 0, true},
		{"abc", 0, false},
		{nil, 0, false},
		{42.0, 42, true},
	}
	for _, tt := range tests {
		got, ok := ParseNumber(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseNumber(%v) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
	if got := ToNumber("x"); got != 0 {
		t.Errorf("ToNumber(x) = %v, want 0", got)
	}
}

// TestClampPositiveInt verifies rounding and fallback for non-positive values.
func TestClampPositiveInt(t *testing.T) {
	tests := []struct {
		in   any
		want int
	}{
		{"4", 4},
		{"2,6", 3},
		{0.0, 1},
		{"-3", 1},
		{"", 1},
		{"trois", 1},
		{nil, 1},
	}
	for _, tt := range tests {
		if got := ClampPositiveInt(tt.in, 1); got != tt.want {
			t.Errorf("ClampPositiveInt(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

// TestDayRestDerived verifies an empty day is a rest day even when stored as training.
func TestDayRestDerived(t *testing.T) {
	d := Day(Raw{"id": "d1", "isRestDay": false})
	if !d.IsRestDay {
		t.Error("expected empty day to be rest")
	}
	if d.Label != DefaultDayLabel {
		t.Errorf("Label = %q, want %q", d.Label, DefaultDayLabel)
	}

	d = Day(Raw{"id": "d2", "rest": true, "exercises": []any{Raw{"name": "Squat"}}})
	if !d.IsRestDay {
		t.Error("expected stored rest flag to be kept")
	}
}

// TestExerciseTemplateAliases verifies legacy and localized names and canonical priority.
func TestExerciseTemplateAliases(t *testing.T) {
	got := ExerciseTemplate(Raw{
		"exercice":     "Développé couché",
		"groupe":       "Pecs",
		"series":       "4",
		"echauffement": "2",
		"repos":        "2min",
		"variantes":    "Haltères",
		"group":        "Pectoraux",
	}, 0, "j1")

	want := models.ExerciseTemplate{
		ID:             "j1-ex-1",
		Key:            "developpe-couche",
		Name:           "Développé couché",
		MuscleGroup:    "Pectoraux",
		WarmupSetCount: "2",
		TargetSetCount: 4,
		TargetRest:     "2min",
		VariantsText:   "Haltères",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ExerciseTemplate mismatch (-want +got):\n%s", diff)
	}
}

// TestExerciseTemplateDefaults verifies names, groups and set counts fall back.
func TestExerciseTemplateDefaults(t *testing.T) {
	got := ExerciseTemplate(Raw{"sets": "0"}, 2, "")
	if got.Name != "Exercice 3" || got.ID != "day-ex-3" || got.MuscleGroup != "Autre" || got.TargetSetCount != 1 {
		t.Errorf("unexpected defaults: %+v", got)
	}
	if got.Key != "exercice-3" {
		t.Errorf("Key = %q, want exercice-3", got.Key)
	}
}

// TestSessionSetCountInvariant verifies sets are padded or truncated to the target.
func TestSessionSetCountInvariant(t *testing.T) {
	tests := []struct {
		name     string
		exercise Raw
		want     int
	}{
		{"fewer", Raw{"name": "Squat", "targetSetCount": 3.0, "sets": []any{Raw{"reps": "5"}}}, 3},
		{"more", Raw{"name": "Squat", "targetSetCount": 2.0, "sets": []any{Raw{}, Raw{}, Raw{}, Raw{}}}, 2},
		{"none", Raw{"name": "Squat", "targetSetCount": 4.0}, 4},
		{"from length", Raw{"name": "Squat", "sets": []any{Raw{}, Raw{}}}, 2},
		{"empty", Raw{"name": "Squat", "sets": []any{}}, 1},
		{"invalid target", Raw{"name": "Squat", "targetSets": "abc", "sets": []any{Raw{}, Raw{}}}, 1},
	}
	for _, tt := range tests {
		s, ok := Session(Raw{"date": "2024-03-01", "exercises": []any{tt.exercise}}, fixedNow)
		if !ok {
			t.Fatalf("%s: session dropped", tt.name)
		}
		ex := s.Exercises[0]
		if ex.TargetSetCount != tt.want || len(ex.Sets) != tt.want {
			t.Errorf("%s: target=%d len(sets)=%d, want %d", tt.name, ex.TargetSetCount, len(ex.Sets), tt.want)
		}
	}
}

// TestSessionLegacyShape verifies a legacy session picks up aliases and timestamp fallbacks.
func TestSessionLegacyShape(t *testing.T) {
	s, ok := Session(Raw{
		"date":    "2024-02-10",
		"prCount": 2.0,
		"savedAt": "2024-02-10T09:15:00.000Z",
		"exercises": []any{Raw{
			"id":    "ex-squat",
			"name":  "Squat",
			"group": "Jambes",
			"reps":  "5",
			"rir":   "2",
			"rest":  "3min",
			"sets":  []any{Raw{"reps": "5", "weight": "100", "rest": "180"}},
		}},
	}, fixedNow)
	if !ok {
		t.Fatal("session dropped")
	}
	saved := time.Date(2024, 2, 10, 9, 15, 0, 0, time.UTC)
	if !s.SavedAt.Equal(saved) || !s.CreatedAt.Equal(saved) || !s.UpdatedAt.Equal(saved) {
		t.Errorf("timestamps = %v/%v/%v, want %v", s.SavedAt, s.CreatedAt, s.UpdatedAt, saved)
	}
	if s.PersonalRecordCount != 2 || s.ProgramID != "3x" {
		t.Errorf("prs=%d program=%q", s.PersonalRecordCount, s.ProgramID)
	}
	ex := s.Exercises[0]
	if ex.TemplateExerciseID != "ex-squat" || ex.MuscleGroup != "Jambes" || ex.TargetRIR != "2" || ex.TargetRest != "3min" {
		t.Errorf("unexpected exercise: %+v", ex)
	}
	if !strings.HasPrefix(ex.InstanceID, "ex-squat-0-") {
		t.Errorf("InstanceID = %q, want ex-squat-0- prefix", ex.InstanceID)
	}
	if ex.Sets[0].RestTaken != "180" || ex.Sets[0].Weight != "100" {
		t.Errorf("set = %+v", ex.Sets[0])
	}
}

// TestSessionWithoutDateDropped verifies unrecoverable records report ok=false.
func TestSessionWithoutDateDropped(t *testing.T) {
	if _, ok := Session(Raw{"id": "x"}, fixedNow); ok {
		t.Error("expected session without date to be dropped")
	}
	if _, ok := Planned(Raw{"id": "x"}); ok {
		t.Error("expected plan without date to be dropped")
	}
	if _, ok := ActiveSession(nil, fixedNow); ok {
		t.Error("expected nil active session to be dropped")
	}
}

// TestPlannedDefaults verifies default labels and the synthesized snapshot.
func TestPlannedDefaults(t *testing.T) {
	p, ok := Planned(Raw{"date": "2024-03-06", "programDayId": "a-day1"})
	if !ok {
		t.Fatal("plan dropped")
	}
	if p.DayLabel != DefaultPlannedLabel || p.Notes != DefaultPlannedNotes || p.ProgramID != "3x" {
		t.Errorf("unexpected plan: %+v", p)
	}
	if p.DaySnapshot.ID != "a-day1" || !p.DaySnapshot.IsRestDay {
		t.Errorf("snapshot = %+v", p.DaySnapshot)
	}
}

// TestSessionIdempotent verifies normalizing an already normalized session changes nothing.
func TestSessionIdempotent(t *testing.T) {
	first, _ := Session(Raw{
		"date":      "2024-03-01",
		"exercises": []any{Raw{"name": "Rowing", "sets": []any{Raw{"reps": "8", "weight": "60"}}}},
	}, fixedNow)
	second, ok := Session(ToRaw(first), fixedNow.Add(time.Hour))
	if !ok {
		t.Fatal("session dropped")
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("second pass changed session (-first +second):\n%s", diff)
	}
}

// TestResizeSets verifies padding and truncation keep the original entries.
func TestResizeSets(t *testing.T) {
	in := []models.SetEntry{{Reps: "1"}, {Reps: "2"}, {Reps: "3"}}
	if got := ResizeSets(in, 2); len(got) != 2 || got[1].Reps != "2" {
		t.Errorf("truncate = %+v", got)
	}
	got := ResizeSets(in, 5)
	if len(got) != 5 || got[4] != (models.SetEntry{}) {
		t.Errorf("pad = %+v", got)
	}
	got[0].Reps = "9"
	if in[0].Reps != "1" {
		t.Error("ResizeSets aliased its input")
	}
}
