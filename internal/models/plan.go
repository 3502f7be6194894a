package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Exercise is a single named movement within a set. It carries no duration
// of its own; the plan-wide exercise duration applies at timeline-build time.
type Exercise struct {
	Name     string `json:"name" yaml:"name"`
	Position int    `json:"position" yaml:"-"`
}

// ExerciseSet is a named, ordered group of exercises repeated back-to-back.
type ExerciseSet struct {
	Name      string     `json:"name" yaml:"name"`
	Exercises []Exercise `json:"exercises" yaml:"exercises"`
	Repeats   int        `json:"repeats" yaml:"repeats"`
}

// Snapshot is the immutable workout definition handed to the engine when a
// session is created. Durations apply globally: every exercise runs for
// ExerciseSecs, every rest between exercises for BreakSecs, and so on.
type Snapshot struct {
	Sets             SetList
	ExerciseSecs     Duration
	BreakSecs        Duration
	SetBreakSecs     Duration
	CountdownSecs    Duration
	CountdownEnabled bool
}

// PlanSpec is the wire form of a workout plan, as accepted by the HTTP API
// and by pacer-run's YAML plan files. Sets are an ordered array; positions
// are assigned from array order.
type PlanSpec struct {
	Name             string        `json:"name" yaml:"name"`
	Sets             []ExerciseSet `json:"sets" yaml:"sets"`
	ExerciseSecs     int           `json:"exercise_secs" yaml:"exercise_secs"`
	BreakSecs        int           `json:"break_secs" yaml:"break_secs"`
	SetBreakSecs     int           `json:"set_break_secs" yaml:"set_break_secs"`
	CountdownSecs    int           `json:"countdown_secs" yaml:"countdown_secs"`
	CountdownEnabled bool          `json:"countdown_enabled" yaml:"countdown_enabled"`
}

// Validate checks a plan spec for fields the engine relies on.
func (p PlanSpec) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("name is required")
	}
	if p.ExerciseSecs <= 0 {
		return fmt.Errorf("exercise_secs must be positive")
	}
	if p.BreakSecs < 0 || p.SetBreakSecs < 0 || p.CountdownSecs < 0 {
		return fmt.Errorf("durations must not be negative")
	}
	for i, set := range p.Sets {
		if set.Repeats < 1 {
			return fmt.Errorf("set %d (%q): repeats must be at least 1", i, set.Name)
		}
	}
	return nil
}

// Snapshot builds the engine-facing configuration from the wire form. The
// spec itself is left untouched: exercises are copied before positions are
// assigned.
func (p PlanSpec) Snapshot() Snapshot {
	sets := NewSetList()
	for _, set := range p.Sets {
		exercises := make([]Exercise, len(set.Exercises))
		copy(exercises, set.Exercises)
		for i := range exercises {
			exercises[i].Position = i
		}
		set.Exercises = exercises
		sets.Append(set)
	}
	return Snapshot{
		Sets:             sets,
		ExerciseSecs:     Duration(p.ExerciseSecs),
		BreakSecs:        Duration(p.BreakSecs),
		SetBreakSecs:     Duration(p.SetBreakSecs),
		CountdownSecs:    Duration(p.CountdownSecs),
		CountdownEnabled: p.CountdownEnabled,
	}
}

// Plan is a stored workout plan.
type Plan struct {
	ID        uuid.UUID `json:"id"`
	Spec      PlanSpec  `json:"spec"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PlanSummary is the list view of a stored plan.
type PlanSummary struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	SetCount  int       `json:"set_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
