package models

// ProgramMode selects which program is current.
type ProgramMode string

const (
	// ModeThreeDay selects the built-in 3 sessions/week template (template-A).
	ModeThreeDay ProgramMode = "3x"
	// ModeFourDay selects the built-in 4 sessions/week template (template-B).
	ModeFourDay ProgramMode = "4x"
	// ModeCustom selects the imported custom program.
	ModeCustom ProgramMode = "custom"
)

// Valid reports whether m is one of the recognized modes.
func (m ProgramMode) Valid() bool {
	switch m {
	case ModeThreeDay, ModeFourDay, ModeCustom:
		return true
	}
	return false
}

// Program is a named weekly training plan of ordered days.
type Program struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Days []Day  `json:"days"`
}

// Day is one slot in a program. A day without exercises is always a rest day.
type Day struct {
	ID        string             `json:"id"`
	Label     string             `json:"label"`
	IsRestDay bool               `json:"isRestDay"`
	Exercises []ExerciseTemplate `json:"exercises"`
}

// ExerciseTemplate describes a prescribed exercise inside a program day.
//
// Prescription fields other than TargetSetCount are free text as entered by the coach
// ("6-8", "2min30", "2-1-0").
type ExerciseTemplate struct {
	ID             string `json:"id"`
	Key            string `json:"key"`
	Name           string `json:"name"`
	MuscleGroup    string `json:"muscleGroup"`
	WarmupSetCount string `json:"warmupSetCount"`
	TargetSetCount int    `json:"targetSetCount"`
	TargetReps     string `json:"targetReps"`
	TargetRIR      string `json:"targetRIR"`
	TargetRest     string `json:"targetRest"`
	Notes          string `json:"notes"`
	VideoRef       string `json:"videoRef"`
	VariantsText   string `json:"variantsText"`
}

// TrainingDays returns the days of p that are not rest days, in program order.
func (p Program) TrainingDays() []Day {
	days := make([]Day, 0, len(p.Days))
	for _, d := range p.Days {
		if !d.IsRestDay {
			days = append(days, d)
		}
	}
	return days
}

// FindDay returns the day with the given id.
func (p Program) FindDay(id string) (Day, bool) {
	for _, d := range p.Days {
		if d.ID == id {
			return d, true
		}
	}
	return Day{}, false
}
