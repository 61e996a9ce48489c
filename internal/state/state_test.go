package state

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/claude/ironpulse/internal/models"
	"github.com/claude/ironpulse/internal/normalize"
	"github.com/claude/ironpulse/internal/storage"
)

var fixedNow = time.Date(2024, 3, 6, 12, 0, 0, 0, time.UTC)

const legacyBlob = `{
  "programMode": "4x",
  "program": {
    "name": "Mon programme",
    "days": [
      {"id": "d1", "label": "Jour 1", "exercises": [
        {"exercice": "Squat", "groupe": "Jambes", "series": "4", "repos": "3min"}
      ]},
      {"id": "d2", "label": "Repos"}
    ]
  },
  "sessions": [
    {"id": "s1", "date": "2024-03-01", "savedAt": "2024-03-01T10:00:00.000Z", "prCount": 1,
     "exercises": [{"id": "d1-ex-1", "name": "Squat", "sets": [{"reps": "5", "weight": "100"}, {"reps": "5", "weight": "100"}]}]},
    {"id": "broken"}
  ],
  "planned": [
    {"date": "2024-03-08", "dayLabel": "Jour 1", "programDayId": "d1"},
    {"dayLabel": "no date"}
  ],
  "activeSession": {"date": "2024-03-06", "exercises": [{"name": "Squat", "targetSets": 3}]},
  "lastSyncAt": "2024-03-01T10:05:00Z"
}`

func newRepo(t *testing.T) (*Repository, storage.Store) {
	t.Helper()
	s, err := storage.OpenSQLite(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := NewRepository(s, "ironpulse.v1", []string{"forgetrack.v2", "forgetrack.v1"}, log)
	r.now = func() time.Time { return fixedNow }
	return r, s
}

func decode(t *testing.T, blob string) normalize.Raw {
	t.Helper()
	doc, err := Decode([]byte(blob))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	return doc
}

// TestMigrateLegacyShape verifies the legacy program field becomes the custom program
// and unrecoverable records are dropped.
func TestMigrateLegacyShape(t *testing.T) {
	s := Migrate(decode(t, legacyBlob), fixedNow)

	if s.ProgramMode != models.ModeCustom {
		t.Errorf("ProgramMode = %q, want custom", s.ProgramMode)
	}
	if s.CustomProgram == nil || s.CustomProgram.ID != "custom" || s.CustomProgram.Name != "Mon programme" {
		t.Fatalf("CustomProgram = %+v", s.CustomProgram)
	}
	squat := s.CustomProgram.Days[0].Exercises[0]
	if squat.MuscleGroup != "Jambes" || squat.TargetSetCount != 4 || squat.TargetRest != "3min" || squat.Key != "squat" {
		t.Errorf("exercise = %+v", squat)
	}
	if !s.CustomProgram.Days[1].IsRestDay {
		t.Error("empty day should be rest")
	}
	if len(s.Sessions) != 1 || s.Sessions[0].PersonalRecordCount != 1 {
		t.Errorf("sessions = %+v", s.Sessions)
	}
	if len(s.Planned) != 1 || s.Planned[0].Notes != "Planifie" {
		t.Errorf("planned = %+v", s.Planned)
	}
	if s.ActiveSession == nil || len(s.ActiveSession.Exercises[0].Sets) != 3 {
		t.Errorf("active = %+v", s.ActiveSession)
	}
	if s.LastSyncAt == nil || !s.LastSyncAt.Equal(time.Date(2024, 3, 1, 10, 5, 0, 0, time.UTC)) {
		t.Errorf("LastSyncAt = %v", s.LastSyncAt)
	}
}

// TestMigrateIdempotent verifies migrating an already migrated document is a no-op.
func TestMigrateIdempotent(t *testing.T) {
	inputs := map[string]string{
		"legacy":  legacyBlob,
		"empty":   `{}`,
		"current": `{"schemaVersion":2,"programMode":"4x","sessions":[{"date":"2024-01-02","exercises":[{"name":"Rowing","targetSetCount":2,"sets":[{"reps":"8"}]}]}]}`,
	}
	for name, blob := range inputs {
		once := Migrate(decode(t, blob), fixedNow)
		data, err := Encode(once)
		if err != nil {
			t.Fatal(err)
		}
		twice := Migrate(decode(t, string(data)), fixedNow.Add(time.Hour))
		if diff := cmp.Diff(once, twice); diff != "" {
			t.Errorf("%s: migrate not idempotent (-once +twice):\n%s", name, diff)
		}
	}
}

// TestEncodeTagsVersion verifies written documents carry the schema tag.
func TestEncodeTagsVersion(t *testing.T) {
	data, err := Encode(models.DefaultState())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"schemaVersion":2`) {
		t.Errorf("encoded = %s, want schemaVersion tag", data)
	}
}

// TestMigrateReconcilesMode verifies invalid modes and custom without a program fall back to 3x.
func TestMigrateReconcilesMode(t *testing.T) {
	tests := map[string]models.ProgramMode{
		`{"programMode":"custom"}`:                                          models.ModeThreeDay,
		`{"programMode":"5x"}`:                                              models.ModeThreeDay,
		`{"programMode":"4x"}`:                                              models.ModeFourDay,
		`{"programMode":"custom","customProgram":{"id":"c"}}`:               models.ModeCustom,
		`{"schemaVersion":2,"programMode":"custom","program":{"name":"x"}}`: models.ModeThreeDay,
	}
	for blob, want := range tests {
		if got := Migrate(decode(t, blob), fixedNow).ProgramMode; got != want {
			t.Errorf("Migrate(%s).ProgramMode = %q, want %q", blob, got, want)
		}
	}
}

// TestLoadDefault verifies an empty store yields the default state.
func TestLoadDefault(t *testing.T) {
	r, _ := newRepo(t)
	got, err := r.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(models.DefaultState(), got); diff != "" {
		t.Errorf("Load mismatch (-want +got):\n%s", diff)
	}
}

// TestLoadLegacyRepersists verifies a legacy document is copied under the current key.
func TestLoadLegacyRepersists(t *testing.T) {
	ctx := context.Background()
	r, store := newRepo(t)
	if err := store.Put(ctx, "forgetrack.v1", legacyBlob); err != nil {
		t.Fatal(err)
	}

	first, err := r.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := store.Get(ctx, "ironpulse.v1"); !ok {
		t.Fatal("legacy state was not re-persisted under the current key")
	}

	second, err := r.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("second load differs (-first +second):\n%s", diff)
	}
}

// TestLoadSkipsCorrupt verifies a corrupt current document falls through to legacy keys.
func TestLoadSkipsCorrupt(t *testing.T) {
	ctx := context.Background()
	r, store := newRepo(t)
	store.Put(ctx, "ironpulse.v1", "{not json")
	store.Put(ctx, "forgetrack.v2", "null")
	store.Put(ctx, "forgetrack.v1", `{"programMode":"4x"}`)

	got, err := r.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if got.ProgramMode != models.ModeFourDay {
		t.Errorf("ProgramMode = %q, want 4x from forgetrack.v1", got.ProgramMode)
	}
}

// TestSaveLoadRoundTrip verifies a saved state loads back unchanged.
func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	r, _ := newRepo(t)

	in := Migrate(decode(t, legacyBlob), fixedNow)
	if err := r.Save(ctx, in); err != nil {
		t.Fatal(err)
	}
	out, err := r.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("round trip mismatch (-saved +loaded):\n%s", diff)
	}
}
