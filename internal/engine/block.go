package engine

// Cue is an audio signal produced by a state transition. Every transition
// yields at most one cue; dispatching it to an actual sound is the caller's
// job.
type Cue string

const (
	CueNone    Cue = ""
	CueWhistle Cue = "whistle"
	CueTick    Cue = "tick"
	CueTada    Cue = "tada"
)

// urgencyThreshold is the remaining-seconds value at or below which a tick
// produces CueTick instead of a block-boundary whistle.
const urgencyThreshold = 3

// BlockKind identifies a timeline block variant.
type BlockKind string

const (
	KindExercise  BlockKind = "exercise"
	KindBreak     BlockKind = "break"
	KindSetBreak  BlockKind = "set_break"
	KindCountdown BlockKind = "countdown"
)

// Block is one atomic countdown-timed unit of a workout timeline. The
// variant set is closed: exercises, rests between exercises, rests between
// sets, and the optional pre-workout countdown.
type Block interface {
	Kind() BlockKind
	Remaining() int
	Total() int
	// Label is the block's display text: the exercise name for exercise
	// blocks, a fixed caption for the rest.
	Label() string
	// elapse returns the block with one second consumed. ok is false when
	// the block is exhausted.
	elapse() (next Block, ok bool)
}

// ExerciseBlock is an active work interval. SetName is the owning set's
// name, carried along for display.
type ExerciseBlock struct {
	SetName  string
	Name     string
	Duration int
	Left     int
}

func (b ExerciseBlock) Kind() BlockKind { return KindExercise }
func (b ExerciseBlock) Remaining() int  { return b.Left }
func (b ExerciseBlock) Total() int      { return b.Duration }
func (b ExerciseBlock) Label() string   { return b.Name }

func (b ExerciseBlock) elapse() (Block, bool) {
	if b.Left <= 1 {
		return nil, false
	}
	b.Left--
	return b, true
}

// BreakBlock is a rest between two exercises within a set.
type BreakBlock struct {
	Duration int
	Left     int
}

func (b BreakBlock) Kind() BlockKind { return KindBreak }
func (b BreakBlock) Remaining() int  { return b.Left }
func (b BreakBlock) Total() int      { return b.Duration }
func (b BreakBlock) Label() string   { return "Break" }

func (b BreakBlock) elapse() (Block, bool) {
	if b.Left <= 1 {
		return nil, false
	}
	b.Left--
	return b, true
}

// SetBreakBlock is a rest between two sets.
type SetBreakBlock struct {
	Duration int
	Left     int
}

func (b SetBreakBlock) Kind() BlockKind { return KindSetBreak }
func (b SetBreakBlock) Remaining() int  { return b.Left }
func (b SetBreakBlock) Total() int      { return b.Duration }
func (b SetBreakBlock) Label() string   { return "Set break" }

func (b SetBreakBlock) elapse() (Block, bool) {
	if b.Left <= 1 {
		return nil, false
	}
	b.Left--
	return b, true
}

// CountdownBlock is the optional pre-workout countdown.
type CountdownBlock struct {
	Duration int
	Left     int
}

func (b CountdownBlock) Kind() BlockKind { return KindCountdown }
func (b CountdownBlock) Remaining() int  { return b.Left }
func (b CountdownBlock) Total() int      { return b.Duration }
func (b CountdownBlock) Label() string   { return "Get ready" }

func (b CountdownBlock) elapse() (Block, bool) {
	if b.Left <= 1 {
		return nil, false
	}
	b.Left--
	return b, true
}
