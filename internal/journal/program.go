package journal

import (
	"context"
	"fmt"

	"github.com/claude/ironpulse/internal/models"
	"github.com/claude/ironpulse/internal/planner"
)

// CurrentProgram returns the program selected by the current mode.
func (j *Journal) CurrentProgram() models.Program {
	var p models.Program
	j.read(func(s *models.State) { p = j.currentProgram(s) })
	return p
}

// Programs lists the selectable programs: the built-in templates, then the
// custom program when one is stored.
func (j *Journal) Programs() []models.Program {
	out := j.templates.All()
	j.read(func(s *models.State) {
		if s.CustomProgram != nil {
			out = append(out, *s.CustomProgram)
		}
	})
	return out
}

// SetProgramMode selects the current program. Selecting custom without a
// stored custom program selects the first template instead.
func (j *Journal) SetProgramMode(ctx context.Context, mode models.ProgramMode) (models.ProgramMode, error) {
	if !mode.Valid() {
		return "", fmt.Errorf("%w: unknown program mode %q", ErrValidation, mode)
	}
	var applied models.ProgramMode
	err := j.update(ctx, func(s *models.State) (bool, error) {
		if mode == models.ModeCustom && s.CustomProgram == nil {
			mode = models.ModeThreeDay
		}
		applied = mode
		if s.ProgramMode == mode {
			return false, nil
		}
		s.ProgramMode = mode
		return true, nil
	})
	return applied, err
}

// ReplaceCustomProgram stores p as the custom program and selects it.
func (j *Journal) ReplaceCustomProgram(ctx context.Context, p models.Program) error {
	err := j.update(ctx, func(s *models.State) (bool, error) {
		s.CustomProgram = &p
		s.ProgramMode = models.ModeCustom
		return true, nil
	})
	if err == nil {
		j.log.Info("custom program installed", "days", len(p.Days))
	}
	return err
}

// Patterns returns the week patterns offered for the current program.
func (j *Journal) Patterns() []planner.Pattern {
	return planner.BuildPatterns(len(j.CurrentProgram().TrainingDays()))
}
