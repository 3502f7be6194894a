package engine

import (
	"testing"

	"github.com/claude/pacer/internal/models"
)

// inProgressData wraps a hand-built timeline in a running state.
func inProgressData(playing bool, head Block, tail ...Block) Data {
	return Data{state: inProgress{timeline: Timeline{Head: head, Tail: tail}}, playing: playing}
}

// TestStartFromStaged verifies start moves a staged workout into progress,
// playing, with a whistle.
func TestStartFromStaged(t *testing.T) {
	d := Build(models.PlanSpec{
		Sets:         []models.ExerciseSet{{Name: "s", Exercises: []models.Exercise{{Name: "e"}}, Repeats: 1}},
		ExerciseSecs: 30,
	}.Snapshot())

	next, cue := d.Start()
	if !next.IsExercising() {
		t.Fatal("IsExercising = false after start")
	}
	if !next.Playing() {
		t.Error("Playing = false after start")
	}
	if cue != CueWhistle {
		t.Errorf("cue = %q, want whistle", cue)
	}
}

// TestStartIgnoredElsewhere verifies start is a no-op outside the staged
// phase.
func TestStartIgnoredElsewhere(t *testing.T) {
	for _, d := range []Data{
		{state: neverStarted{}},
		{state: finished{}},
		inProgressData(true, ExerciseBlock{Name: "e", Duration: 30, Left: 30}),
	} {
		next, cue := d.Start()
		if next.Phase() != d.Phase() {
			t.Errorf("start from %s changed phase to %s", d.Phase(), next.Phase())
		}
		if cue != CueNone {
			t.Errorf("start from %s produced cue %q", d.Phase(), cue)
		}
	}
}

// TestTogglePlay verifies pause is silent and resume whistles, and that the
// toggle is ignored outside in_progress.
func TestTogglePlay(t *testing.T) {
	d := inProgressData(true, ExerciseBlock{Name: "e", Duration: 30, Left: 30})

	paused, cue := d.TogglePlay()
	if paused.Playing() {
		t.Error("still playing after pause")
	}
	if cue != CueNone {
		t.Errorf("pause cue = %q, want none", cue)
	}

	resumed, cue := paused.TogglePlay()
	if !resumed.Playing() {
		t.Error("not playing after resume")
	}
	if cue != CueWhistle {
		t.Errorf("resume cue = %q, want whistle", cue)
	}

	staged := Build(models.PlanSpec{
		Sets:         []models.ExerciseSet{{Name: "s", Exercises: []models.Exercise{{Name: "e"}}, Repeats: 1}},
		ExerciseSecs: 30,
	}.Snapshot())
	same, cue := staged.TogglePlay()
	if same.Playing() || cue != CueNone {
		t.Error("toggle outside in_progress must be a no-op")
	}
}

// TestTickDecrement verifies an ordinary mid-block tick decrements the head
// and stays silent above the urgency threshold.
func TestTickDecrement(t *testing.T) {
	d := inProgressData(true, ExerciseBlock{Name: "e", Duration: 30, Left: 30})

	next, cue := d.Tick()
	block, _ := next.Current()
	if block.Remaining() != 29 {
		t.Errorf("remaining = %d, want 29", block.Remaining())
	}
	if block.Total() != 30 {
		t.Errorf("total = %d, want 30 (immutable)", block.Total())
	}
	if cue != CueNone {
		t.Errorf("cue = %q, want none", cue)
	}
}

// TestTickUrgency verifies the urgency cue fires when the resulting block
// drops to three seconds or fewer.
func TestTickUrgency(t *testing.T) {
	d := inProgressData(true,
		ExerciseBlock{Name: "e", Duration: 30, Left: 4},
		SetBreakBlock{Duration: 20, Left: 20})

	next, cue := d.Tick()
	block, _ := next.Current()
	if block.Remaining() != 3 {
		t.Errorf("remaining = %d, want 3", block.Remaining())
	}
	if cue != CueTick {
		t.Errorf("cue = %q, want tick", cue)
	}
}

// TestTickAdvance verifies crossing a block boundary whistles and the next
// block becomes the head untouched.
func TestTickAdvance(t *testing.T) {
	d := inProgressData(true,
		ExerciseBlock{Name: "e", Duration: 30, Left: 1},
		SetBreakBlock{Duration: 20, Left: 20},
		ExerciseBlock{Name: "f", Duration: 30, Left: 30})

	next, cue := d.Tick()
	block, _ := next.Current()
	if block.Kind() != KindSetBreak || block.Remaining() != 20 {
		t.Errorf("head = %s/%d, want set_break/20", block.Kind(), block.Remaining())
	}
	if cue != CueWhistle {
		t.Errorf("cue = %q, want whistle", cue)
	}
	tl, _ := next.Timeline()
	if tl.Len() != 2 {
		t.Errorf("remaining blocks = %d, want 2", tl.Len())
	}
}

// TestTickAdvanceIntoShortBlock verifies the urgency cue replaces the
// whistle when the incoming block is already at or under the threshold.
func TestTickAdvanceIntoShortBlock(t *testing.T) {
	d := inProgressData(true,
		ExerciseBlock{Name: "e", Duration: 30, Left: 1},
		BreakBlock{Duration: 3, Left: 3})

	next, cue := d.Tick()
	block, _ := next.Current()
	if block.Kind() != KindBreak || block.Remaining() != 3 {
		t.Errorf("head = %s/%d, want break/3", block.Kind(), block.Remaining())
	}
	if cue != CueTick {
		t.Errorf("cue = %q, want tick (urgency wins over whistle)", cue)
	}
}

// TestTickFinish verifies exhausting the last block finishes the workout
// with the completion cue and remaining time never goes negative.
func TestTickFinish(t *testing.T) {
	d := inProgressData(true, ExerciseBlock{Name: "e", Duration: 30, Left: 1})

	next, cue := d.Tick()
	if next.Phase() != PhaseFinished {
		t.Fatalf("phase = %s, want finished", next.Phase())
	}
	if cue != CueTada {
		t.Errorf("cue = %q, want tada", cue)
	}
	if _, ok := next.Current(); ok {
		t.Error("finished state should carry no current block")
	}
}

// TestTickIgnoredOutsideProgress verifies ticks on any other phase return
// the input unchanged. A late scheduler tick must be harmless.
func TestTickIgnoredOutsideProgress(t *testing.T) {
	staged := Build(models.PlanSpec{
		Sets:         []models.ExerciseSet{{Name: "s", Exercises: []models.Exercise{{Name: "e"}}, Repeats: 1}},
		ExerciseSecs: 30,
	}.Snapshot())

	for _, d := range []Data{
		{state: neverStarted{}},
		staged,
		{state: finished{}},
	} {
		next, cue := d.Tick()
		if next.Phase() != d.Phase() || cue != CueNone {
			t.Errorf("tick on %s: phase %s cue %q, want unchanged and silent",
				d.Phase(), next.Phase(), cue)
		}
		if before, ok := d.Timeline(); ok {
			after, _ := next.Timeline()
			if after.TotalRemaining() != before.TotalRemaining() {
				t.Errorf("tick on %s changed remaining time", d.Phase())
			}
		}
	}
}

// TestTickMonotonic verifies repeated ticks strictly decrease total
// remaining time until the workout finishes.
func TestTickMonotonic(t *testing.T) {
	d := Build(models.PlanSpec{
		Sets: []models.ExerciseSet{{
			Name:      "s",
			Exercises: []models.Exercise{{Name: "a"}, {Name: "b"}},
			Repeats:   2,
		}},
		ExerciseSecs: 5,
		BreakSecs:    2,
	}.Snapshot())
	d, _ = d.Start()

	tl, _ := d.Timeline()
	prev := tl.TotalRemaining()
	steps := 0
	for d.IsExercising() {
		d, _ = d.Tick()
		if tl, ok := d.Timeline(); ok {
			cur := tl.TotalRemaining()
			if cur >= prev {
				t.Fatalf("remaining went %d -> %d, want strict decrease", prev, cur)
			}
			prev = cur
		}
		steps++
		if steps > 1000 {
			t.Fatal("workout never finished")
		}
	}
	// 4 exercises x 5s + 3 breaks x 2s
	if steps != 26 {
		t.Errorf("ticks to finish = %d, want 26", steps)
	}
}

// TestEndIdempotent verifies aborting is unconditional and repeatable.
func TestEndIdempotent(t *testing.T) {
	d := inProgressData(true, ExerciseBlock{Name: "e", Duration: 30, Left: 12})

	once := d.End()
	if once.Phase() != PhaseFinished || once.Playing() {
		t.Errorf("End = %s playing=%v, want finished playing=false", once.Phase(), once.Playing())
	}

	twice := once.End()
	if twice != once {
		t.Error("End is not idempotent")
	}

	if got := (Data{state: neverStarted{}}).End(); got.Phase() != PhaseFinished {
		t.Errorf("End from never_started = %s, want finished", got.Phase())
	}
}

// TestIsExercising verifies the query is true only while in progress.
func TestIsExercising(t *testing.T) {
	running := inProgressData(false, ExerciseBlock{Name: "e", Duration: 30, Left: 30})
	if !running.IsExercising() {
		t.Error("IsExercising = false while in progress (paused still counts)")
	}
	for _, d := range []Data{{state: neverStarted{}}, {state: finished{}}, {}} {
		if d.IsExercising() {
			t.Errorf("IsExercising = true in phase %s", d.Phase())
		}
	}
}
