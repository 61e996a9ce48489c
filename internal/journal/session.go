package journal

import (
	"context"
	"fmt"
	"time"

	"github.com/claude/ironpulse/internal/ident"
	"github.com/claude/ironpulse/internal/metrics"
	"github.com/claude/ironpulse/internal/models"
	"github.com/claude/ironpulse/internal/normalize"
)

// SetField names an editable field of a set.
type SetField string

// Editable set fields.
const (
	FieldReps      SetField = "reps"
	FieldWeight    SetField = "weight"
	FieldRestTaken SetField = "restTaken"
	FieldComment   SetField = "comment"
)

const duplicatedLabel = "Seance dupliquee"

// newActiveSession builds an empty session for day. Each exercise gets blank
// sets sized to its target.
func newActiveSession(programID string, day models.Day, date string, now time.Time) models.ActiveSession {
	now = now.UTC()
	a := models.ActiveSession{
		ID:              ident.New(),
		Date:            date,
		ProgramID:       programID,
		ProgramDayID:    day.ID,
		ProgramDayLabel: day.Label,
		Exercises:       make([]models.SessionExercise, 0, len(day.Exercises)),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	for i, ex := range day.Exercises {
		count := ex.TargetSetCount
		if count < 1 {
			count = 1
		}
		key := ex.Key
		if key == "" {
			key = normalize.ExerciseKey(ex.Name)
		}
		group := ex.MuscleGroup
		if group == "" {
			group = normalize.DefaultGroup
		}
		a.Exercises = append(a.Exercises, models.SessionExercise{
			InstanceID:         fmt.Sprintf("%s-%d-%s", ex.ID, i, ident.Suffix()),
			TemplateExerciseID: ex.ID,
			Key:                key,
			Name:               ex.Name,
			MuscleGroup:        group,
			TargetSetCount:     count,
			TargetReps:         ex.TargetReps,
			TargetRIR:          ex.TargetRIR,
			TargetRest:         ex.TargetRest,
			Sets:               make([]models.SetEntry, count),
		})
	}
	return a
}

// StartSession starts an active session from a training day of the current
// program, replacing any session in progress. An empty date means today.
func (j *Journal) StartSession(ctx context.Context, dayID, date string) (models.ActiveSession, error) {
	date, err := j.validDate(date)
	if err != nil {
		return models.ActiveSession{}, err
	}
	var out models.ActiveSession
	err = j.update(ctx, func(s *models.State) (bool, error) {
		program := j.currentProgram(s)
		day, ok := program.FindDay(dayID)
		if !ok {
			return false, fmt.Errorf("%w: day %q", ErrNotFound, dayID)
		}
		if day.IsRestDay {
			return false, fmt.Errorf("%w: day %q is a rest day", ErrValidation, dayID)
		}
		out = newActiveSession(program.ID, day, date, j.now())
		s.ActiveSession = &out
		return true, nil
	})
	return out, err
}

// ActiveSession returns the session in progress, if any.
func (j *Journal) ActiveSession() (models.ActiveSession, bool) {
	var (
		out models.ActiveSession
		ok  bool
	)
	j.read(func(s *models.State) {
		if s.ActiveSession != nil {
			out = *s.Clone().ActiveSession
			ok = true
		}
	})
	return out, ok
}

// editExercise runs fn on an exercise of the active session and stamps updatedAt.
func (j *Journal) editExercise(ctx context.Context, instanceID string, fn func(s *models.State, ex *models.SessionExercise) error) (models.ActiveSession, error) {
	var out models.ActiveSession
	err := j.update(ctx, func(s *models.State) (bool, error) {
		if s.ActiveSession == nil {
			return false, fmt.Errorf("%w: no active session", ErrNotFound)
		}
		ex := s.ActiveSession.FindExercise(instanceID)
		if ex == nil {
			return false, fmt.Errorf("%w: exercise %q", ErrNotFound, instanceID)
		}
		if err := fn(s, ex); err != nil {
			return false, err
		}
		s.ActiveSession.UpdatedAt = j.now().UTC()
		out = *s.ActiveSession
		return true, nil
	})
	return out, err
}

// UpdateSet sets one field of one set. Values are stored as typed.
func (j *Journal) UpdateSet(ctx context.Context, instanceID string, setIndex int, field SetField, value string) (models.ActiveSession, error) {
	return j.editExercise(ctx, instanceID, func(_ *models.State, ex *models.SessionExercise) error {
		if setIndex < 0 || setIndex >= len(ex.Sets) {
			return fmt.Errorf("%w: set %d out of range", ErrValidation, setIndex)
		}
		set := &ex.Sets[setIndex]
		switch field {
		case FieldReps:
			set.Reps = value
		case FieldWeight:
			set.Weight = value
		case FieldRestTaken:
			set.RestTaken = value
		case FieldComment:
			set.Comment = value
		default:
			return fmt.Errorf("%w: unknown set field %q", ErrValidation, field)
		}
		return nil
	})
}

// UpdateExerciseComment replaces the free-text comment of an exercise.
func (j *Journal) UpdateExerciseComment(ctx context.Context, instanceID, comment string) (models.ActiveSession, error) {
	return j.editExercise(ctx, instanceID, func(_ *models.State, ex *models.SessionExercise) error {
		ex.Comment = comment
		return nil
	})
}

// FillFromPrevious copies set values from the most recent saved session
// containing the same exercise key. Sets beyond the source are left as they
// are. The exercise comment is copied when the source has one.
func (j *Journal) FillFromPrevious(ctx context.Context, instanceID string) (models.ActiveSession, error) {
	return j.editExercise(ctx, instanceID, func(s *models.State, ex *models.SessionExercise) error {
		var source *models.SessionExercise
		for i := range s.Sessions {
			for k := range s.Sessions[i].Exercises {
				if s.Sessions[i].Exercises[k].Key == ex.Key {
					source = &s.Sessions[i].Exercises[k]
					break
				}
			}
			if source != nil {
				break
			}
		}
		if source == nil {
			return fmt.Errorf("%w: no previous data for %q", ErrNotFound, ex.Key)
		}
		for i := range ex.Sets {
			if i < len(source.Sets) {
				ex.Sets[i] = source.Sets[i]
			}
		}
		if source.Comment != "" {
			ex.Comment = source.Comment
		}
		return nil
	})
}

// CopyFirstSet copies reps, weight and rest of the first set to every other
// set. Per-set comments are kept.
func (j *Journal) CopyFirstSet(ctx context.Context, instanceID string) (models.ActiveSession, error) {
	return j.editExercise(ctx, instanceID, func(_ *models.State, ex *models.SessionExercise) error {
		if len(ex.Sets) == 0 || ex.Sets[0].Blank() {
			return fmt.Errorf("%w: first set is empty", ErrValidation)
		}
		first := ex.Sets[0]
		for i := 1; i < len(ex.Sets); i++ {
			ex.Sets[i].Reps = first.Reps
			ex.Sets[i].Weight = first.Weight
			ex.Sets[i].RestTaken = first.RestTaken
		}
		return nil
	})
}

// DuplicateLastSession starts a session dated today with the exercises and
// values of the most recently saved session.
func (j *Journal) DuplicateLastSession(ctx context.Context) (models.ActiveSession, error) {
	var out models.ActiveSession
	err := j.update(ctx, func(s *models.State) (bool, error) {
		if len(s.Sessions) == 0 {
			return false, fmt.Errorf("%w: no previous session", ErrNotFound)
		}
		last := s.Sessions[0]
		now := j.now().UTC()

		programID := last.ProgramID
		if programID == "" {
			programID = j.currentProgram(s).ID
		}
		label := last.ProgramDayLabel
		if label == "" {
			label = duplicatedLabel
		}
		out = models.ActiveSession{
			ID:              ident.New(),
			Date:            j.today(),
			ProgramID:       programID,
			ProgramDayID:    last.ProgramDayID,
			ProgramDayLabel: label,
			Exercises:       make([]models.SessionExercise, 0, len(last.Exercises)),
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		for i, ex := range last.Exercises {
			templateID := ex.TemplateExerciseID
			if templateID == "" {
				templateID = fmt.Sprintf("dup-%d", i)
			}
			ex.InstanceID = fmt.Sprintf("%s-%d-%s", templateID, i, ident.Suffix())
			ex.TemplateExerciseID = templateID
			ex.Sets = normalize.ResizeSets(ex.Sets, ex.TargetSetCount)
			out.Exercises = append(out.Exercises, ex)
		}
		s.ActiveSession = &out
		return true, nil
	})
	return out, err
}

// SaveActiveSession computes the session aggregates against existing history,
// prepends the session to history and clears the active session. online marks
// the session synced and stamps the last sync time.
func (j *Journal) SaveActiveSession(ctx context.Context, online bool) (models.Session, error) {
	var out models.Session
	err := j.update(ctx, func(s *models.State) (bool, error) {
		a := s.ActiveSession
		if a == nil {
			return false, fmt.Errorf("%w: no active session", ErrNotFound)
		}
		m := metrics.ComputeSessionMetrics(a.Exercises, s.Sessions)
		savedAt := j.now().UTC()
		out = models.Session{
			ID:                  a.ID,
			Date:                a.Date,
			ProgramID:           a.ProgramID,
			ProgramDayID:        a.ProgramDayID,
			ProgramDayLabel:     a.ProgramDayLabel,
			Exercises:           a.Exercises,
			TotalVolume:         m.TotalVolume,
			TotalReps:           m.TotalReps,
			PersonalRecordCount: m.PersonalRecordCount,
			Synced:              online,
			CreatedAt:           a.CreatedAt,
			UpdatedAt:           savedAt,
			SavedAt:             savedAt,
		}
		s.Sessions = append([]models.Session{out}, s.Sessions...)
		s.ActiveSession = nil
		if online {
			s.LastSyncAt = &savedAt
		}
		return true, nil
	})
	if err == nil {
		j.log.Info("session saved", "id", out.ID, "date", out.Date, "volume", out.TotalVolume, "records", out.PersonalRecordCount)
	}
	return out, err
}

// CancelActiveSession discards the session in progress.
func (j *Journal) CancelActiveSession(ctx context.Context) error {
	return j.update(ctx, func(s *models.State) (bool, error) {
		if s.ActiveSession == nil {
			return false, nil
		}
		s.ActiveSession = nil
		return true, nil
	})
}
