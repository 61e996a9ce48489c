package programs

import (
	"testing"

	"github.com/claude/ironpulse/internal/models"
)

// TestBuiltinTemplates verifies both embedded templates load with their rest days derived.
func TestBuiltinTemplates(t *testing.T) {
	c, err := Builtin()
	if err != nil {
		t.Fatalf("Builtin: %v", err)
	}

	tests := []struct {
		mode     models.ProgramMode
		training int
	}{
		{models.ModeThreeDay, 3},
		{models.ModeFourDay, 4},
	}
	for _, tt := range tests {
		p, ok := c.Get(tt.mode)
		if !ok {
			t.Fatalf("template %q missing", tt.mode)
		}
		if len(p.Days) != 7 {
			t.Errorf("%s: len(Days) = %d, want 7", tt.mode, len(p.Days))
		}
		if got := len(p.TrainingDays()); got != tt.training {
			t.Errorf("%s: training days = %d, want %d", tt.mode, got, tt.training)
		}
		for _, d := range p.Days {
			for _, e := range d.Exercises {
				if e.Key == "" {
					t.Errorf("%s/%s: empty key", d.ID, e.ID)
				}
			}
		}
	}

	if got := len(c.All()); got != 2 {
		t.Errorf("len(All()) = %d, want 2", got)
	}
}

// TestCurrentFallback verifies custom mode without a stored program resolves to 3x.
func TestCurrentFallback(t *testing.T) {
	c, err := Builtin()
	if err != nil {
		t.Fatal(err)
	}
	if got := c.Current(models.ModeCustom, nil); got.ID != "3x" {
		t.Errorf("Current(custom, nil).ID = %q, want 3x", got.ID)
	}
	custom := &models.Program{ID: "custom", Name: "Mine"}
	if got := c.Current(models.ModeCustom, custom); got.ID != "custom" {
		t.Errorf("Current(custom).ID = %q, want custom", got.ID)
	}
	if got := c.Current("bogus", nil); got.ID != "3x" {
		t.Errorf("Current(bogus).ID = %q, want 3x", got.ID)
	}
}

// TestParseRejectsUnknownID verifies template ids must name a built-in mode.
func TestParseRejectsUnknownID(t *testing.T) {
	if _, err := Parse([]byte("- id: weird\n  name: X\n")); err == nil {
		t.Error("expected error for unknown template id")
	}
	if _, err := Parse([]byte("- id: 4x\n  name: X\n")); err == nil {
		t.Error("expected error when 3x is missing")
	}
}
