package planner

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/claude/ironpulse/internal/calendar"
	"github.com/claude/ironpulse/internal/models"
)

func day(id, label string) models.Day {
	return models.Day{ID: id, Label: label, Exercises: []models.ExerciseTemplate{
		{ID: id + "-ex-1", Key: "squat", Name: "Squat", MuscleGroup: "Jambes", TargetSetCount: 3},
	}}
}

// TestBuildPatterns verifies pattern catalogs by training-day count.
func TestBuildPatterns(t *testing.T) {
	three := BuildPatterns(3)
	if len(three) != 3 || three[0].ID != "mon-wed-fri" || three[2].ID != CustomPatternID {
		t.Errorf("BuildPatterns(3) = %+v", three)
	}
	four := BuildPatterns(5)
	if four[0].ID != "mon-tue-thu-fri" || four[1].ID != "mon-wed-fri-sat" {
		t.Errorf("BuildPatterns(5) = %+v", four)
	}
	if _, err := FindPattern(3, "mon-tue-thu-fri"); !errors.Is(err, ErrUnknownPattern) {
		t.Errorf("FindPattern error = %v, want ErrUnknownPattern", err)
	}
}

// TestResolveDates verifies offsets from Monday and truncation to the day count.
func TestResolveDates(t *testing.T) {
	p, _ := FindPattern(3, "tue-thu-sat")
	got, err := ResolveDates(p, "2024-02-26", 3, nil)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"2024-02-27", "2024-02-29", "2024-03-02"}, got); diff != "" {
		t.Errorf("dates mismatch (-want +got):\n%s", diff)
	}

	got, err = ResolveDates(p, "2024-02-26", 2, nil)
	if err != nil || len(got) != 2 {
		t.Errorf("truncated = %v, %v", got, err)
	}

	if _, err := ResolveDates(p, "2024-02-26", 5, nil); !errors.Is(err, ErrDateCount) {
		t.Errorf("short pattern error = %v, want ErrDateCount", err)
	}
}

// TestResolveCustomDates verifies the custom pattern needs exactly one date per day.
func TestResolveCustomDates(t *testing.T) {
	custom, _ := FindPattern(3, CustomPatternID)

	got, err := ResolveDates(custom, "", 2, []string{"2024-03-05", "", "2024-03-07"})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"2024-03-05", "2024-03-07"}, got); diff != "" {
		t.Errorf("custom dates mismatch (-want +got):\n%s", diff)
	}

	if _, err := ResolveDates(custom, "", 3, []string{"2024-03-05"}); !errors.Is(err, ErrDateCount) {
		t.Errorf("count error = %v, want ErrDateCount", err)
	}
	if _, err := ResolveDates(custom, "", 1, []string{"05/03/2024"}); !errors.Is(err, calendar.ErrInvalidDate) {
		t.Errorf("format error = %v, want ErrInvalidDate", err)
	}
}

// TestUpsertByPair verifies a second entry with the same date and label replaces the first.
func TestUpsertByPair(t *testing.T) {
	var planned []models.PlannedEntry
	planned = Upsert(planned, NewEntry("3x", day("d1", "Jour 1"), "2024-03-04", "premier"))
	planned = Upsert(planned, NewEntry("3x", day("d2", "Jour 2"), "2024-03-04", ""))
	planned = Upsert(planned, NewEntry("3x", day("d1", "Jour 1"), "2024-03-04", "second"))

	if len(planned) != 2 {
		t.Fatalf("len(planned) = %d, want 2", len(planned))
	}
	if planned[0].Notes != "second" {
		t.Errorf("Notes = %q, want second", planned[0].Notes)
	}
	if planned[1].Notes != "Planifie" {
		t.Errorf("default Notes = %q, want Planifie", planned[1].Notes)
	}
}

// TestNewEntrySnapshotIsolated verifies later edits to the live day do not reach the snapshot.
func TestNewEntrySnapshotIsolated(t *testing.T) {
	d := day("d1", "Jour 1")
	e := NewEntry("custom", d, "2024-03-04", "")
	d.Exercises[0].Name = "Front squat"
	if e.DaySnapshot.Exercises[0].Name != "Squat" {
		t.Errorf("snapshot changed with live day: %q", e.DaySnapshot.Exercises[0].Name)
	}
	if e.ProgramDayID != "d1" || e.DayLabel != "Jour 1" || e.ProgramID != "custom" {
		t.Errorf("entry = %+v", e)
	}
}

// TestCopyWeekPreservesWeekday verifies a Wednesday in week W lands on the Wednesday of W+3.
func TestCopyWeekPreservesWeekday(t *testing.T) {
	planned := []models.PlannedEntry{
		NewEntry("3x", day("d1", "Jour 1"), "2024-03-06", ""),
		NewEntry("3x", day("d2", "Jour 2"), "2024-03-10", ""),
		NewEntry("3x", day("d3", "Jour 3"), "2024-03-11", ""),
	}
	sourceID := planned[0].ID

	got, n, err := CopyWeek(planned, "2024-W10", "2024-W13")
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 || len(got) != 5 {
		t.Fatalf("copied %d, len %d; want 2, 5", n, len(got))
	}

	wed := got[3]
	if wed.Date != "2024-03-27" || wed.DayLabel != "Jour 1" || wed.Notes != "Copie de 2024-W10" {
		t.Errorf("copied entry = %+v", wed)
	}
	if wed.ID == sourceID {
		t.Error("copy reused the source id")
	}
	if got[4].Date != "2024-03-31" {
		t.Errorf("Sunday copy date = %q, want 2024-03-31", got[4].Date)
	}
}

// TestCopyWeekErrors verifies same-week, malformed and empty source weeks are rejected.
func TestCopyWeekErrors(t *testing.T) {
	planned := []models.PlannedEntry{NewEntry("3x", day("d1", "Jour 1"), "2024-03-06", "")}

	if _, _, err := CopyWeek(planned, "2024-W10", "2024-W10"); !errors.Is(err, ErrSameWeek) {
		t.Errorf("same week error = %v", err)
	}
	if _, _, err := CopyWeek(planned, "2024-10", "2024-W11"); !errors.Is(err, calendar.ErrInvalidWeek) {
		t.Errorf("malformed error = %v", err)
	}
	if _, _, err := CopyWeek(planned, "2024-W20", "2024-W21"); !errors.Is(err, ErrEmptyWeek) {
		t.Errorf("empty week error = %v", err)
	}
}
