package engine

// Phase identifies where a workout is in its lifecycle. Phases move strictly
// forward: starting → in_progress → finished, or never_started with no
// further transitions.
type Phase string

const (
	PhaseNeverStarted Phase = "never_started"
	PhaseStarting     Phase = "starting"
	PhaseInProgress   Phase = "in_progress"
	PhaseFinished     Phase = "finished"
)

// appState is the closed set of lifecycle variants. Only the two active
// variants carry a timeline.
type appState interface {
	phase() Phase
}

type neverStarted struct{}
type starting struct{ timeline Timeline }
type inProgress struct{ timeline Timeline }
type finished struct{}

func (neverStarted) phase() Phase { return PhaseNeverStarted }
func (starting) phase() Phase     { return PhaseStarting }
func (inProgress) phase() Phase   { return PhaseInProgress }
func (finished) phase() Phase     { return PhaseFinished }

// Data is one immutable snapshot of a live workout: the lifecycle state plus
// the play/pause flag. Transitions return a new Data; the old value is never
// mutated, so a spurious tick or a UI race can at worst observe a stale
// snapshot, never a partial one.
type Data struct {
	state   appState
	playing bool
}

// Phase returns the current lifecycle phase.
func (d Data) Phase() Phase {
	if d.state == nil {
		return PhaseNeverStarted
	}
	return d.state.phase()
}

// Playing reports the play/pause flag. It is meaningful only while the
// workout is in progress.
func (d Data) Playing() bool {
	return d.playing
}

// Current returns the active block while the workout is staged or running.
func (d Data) Current() (Block, bool) {
	switch st := d.state.(type) {
	case starting:
		return st.timeline.Head, true
	case inProgress:
		return st.timeline.Head, true
	}
	return nil, false
}

// Timeline returns the remaining timeline while the workout is staged or
// running.
func (d Data) Timeline() (Timeline, bool) {
	switch st := d.state.(type) {
	case starting:
		return st.timeline, true
	case inProgress:
		return st.timeline, true
	}
	return Timeline{}, false
}

// IsExercising reports whether the workout is actively running.
func (d Data) IsExercising() bool {
	_, ok := d.state.(inProgress)
	return ok
}

// Start begins a staged workout and starts playing. Calls in any other
// phase are ignored.
func (d Data) Start() (Data, Cue) {
	st, ok := d.state.(starting)
	if !ok {
		return d, CueNone
	}
	return Data{state: inProgress{timeline: st.timeline}, playing: true}, CueWhistle
}

// TogglePlay flips the play/pause flag of a running workout. Resuming
// whistles; pausing is silent. A no-op outside in_progress.
func (d Data) TogglePlay() (Data, Cue) {
	if _, ok := d.state.(inProgress); !ok {
		return d, CueNone
	}
	d.playing = !d.playing
	if d.playing {
		return d, CueWhistle
	}
	return d, CueNone
}

// Tick advances a running workout by one second. Outside in_progress it
// returns the input unchanged, which makes a late tick from the scheduler
// harmless.
//
// A single tick yields exactly one cue: tada when the last block expires,
// a whistle when crossing into the next block, or the urgency tick when the
// resulting block has three seconds or fewer left. The urgency tick wins
// over the whistle at block boundaries.
func (d Data) Tick() (Data, Cue) {
	st, ok := d.state.(inProgress)
	if !ok {
		return d, CueNone
	}

	next, ok := st.timeline.Head.elapse()
	if !ok {
		// Head exhausted: finish or advance.
		if len(st.timeline.Tail) == 0 {
			return Data{state: finished{}}, CueTada
		}
		tl := Timeline{Head: st.timeline.Tail[0], Tail: st.timeline.Tail[1:]}
		cue := CueWhistle
		if tl.Head.Remaining() <= urgencyThreshold {
			cue = CueTick
		}
		return Data{state: inProgress{timeline: tl}, playing: d.playing}, cue
	}

	cue := CueNone
	if next.Remaining() <= urgencyThreshold {
		cue = CueTick
	}
	tl := Timeline{Head: next, Tail: st.timeline.Tail}
	return Data{state: inProgress{timeline: tl}, playing: d.playing}, cue
}

// End aborts the workout, forcing the finished phase with playing off.
// Idempotent, and valid from any phase.
func (d Data) End() Data {
	return Data{state: finished{}}
}
