package models

import "time"

// SetEntry is one logged set. Values are kept as typed by the user.
type SetEntry struct {
	Reps      string `json:"reps"`
	Weight    string `json:"weight"`
	RestTaken string `json:"restTaken"`
	Comment   string `json:"comment"`
}

// Blank reports whether none of the performance fields of the set are filled in.
func (s SetEntry) Blank() bool {
	return s.Reps == "" && s.Weight == "" && s.RestTaken == ""
}

// SessionExercise is one logged occurrence of an exercise within a session.
// len(Sets) always equals TargetSetCount.
type SessionExercise struct {
	InstanceID         string     `json:"instanceId"`
	TemplateExerciseID string     `json:"templateExerciseId"`
	Key                string     `json:"key"`
	Name               string     `json:"name"`
	MuscleGroup        string     `json:"muscleGroup"`
	TargetSetCount     int        `json:"targetSetCount"`
	TargetReps         string     `json:"targetReps"`
	TargetRIR          string     `json:"targetRIR"`
	TargetRest         string     `json:"targetRest"`
	Sets               []SetEntry `json:"sets"`
	Comment            string     `json:"comment"`
}

// Session is a saved workout.
type Session struct {
	ID                  string            `json:"id"`
	Date                string            `json:"date"`
	ProgramID           string            `json:"programId"`
	ProgramDayID        string            `json:"programDayId"`
	ProgramDayLabel     string            `json:"programDayLabel"`
	Exercises           []SessionExercise `json:"exercises"`
	TotalVolume         float64           `json:"totalVolume"`
	TotalReps           float64           `json:"totalReps"`
	PersonalRecordCount int               `json:"personalRecordCount"`
	Synced              bool              `json:"synced"`
	CreatedAt           time.Time         `json:"createdAt"`
	UpdatedAt           time.Time         `json:"updatedAt"`
	SavedAt             time.Time         `json:"savedAt"`
}

// ActiveSession is a session still being edited. It carries no aggregates.
type ActiveSession struct {
	ID              string            `json:"id"`
	Date            string            `json:"date"`
	ProgramID       string            `json:"programId"`
	ProgramDayID    string            `json:"programDayId"`
	ProgramDayLabel string            `json:"programDayLabel"`
	Exercises       []SessionExercise `json:"exercises"`
	CreatedAt       time.Time         `json:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt"`
}

// FindExercise returns a pointer to the exercise with the given instance id.
func (a *ActiveSession) FindExercise(instanceID string) *SessionExercise {
	for i := range a.Exercises {
		if a.Exercises[i].InstanceID == instanceID {
			return &a.Exercises[i]
		}
	}
	return nil
}

// PlannedEntry is a future session with a frozen snapshot of its day.
type PlannedEntry struct {
	ID           string `json:"id"`
	Date         string `json:"date"`
	ProgramID    string `json:"programId"`
	ProgramDayID string `json:"programDayId"`
	DayLabel     string `json:"dayLabel"`
	Notes        string `json:"notes"`
	DaySnapshot  Day    `json:"daySnapshot"`
}
