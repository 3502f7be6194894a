package engine

import (
	"sync"
	"time"
)

// EventType identifies the kind of runner event.
type EventType string

const (
	EventStateChange EventType = "state_change"
	EventProgress    EventType = "progress"
)

// Event is a runner update for observers.
type Event struct {
	Type      EventType
	Phase     Phase
	Playing   bool
	Block     Block // nil outside starting/in_progress
	Remaining int   // seconds left in the current block
	Cue       Cue
	At        time.Time
}

// Summary describes a finished or aborted run.
type Summary struct {
	StartedAt   time.Time
	EndedAt     time.Time
	PlannedSecs int
	BlocksTotal int
	Completed   bool
}

// Config contains runtime options for a Runner.
type Config struct {
	// TickInterval is the scheduler cadence. Defaults to one second; tests
	// shorten it.
	TickInterval time.Duration
}

// Runner drives a workout state machine in real time. While the workout is
// in progress and playing it applies one tick per interval; when paused or
// outside an active run the loop idles and the machine ignores anything
// that slips through.
type Runner struct {
	mu          sync.Mutex
	data        Data
	lastCue     Cue
	interval    time.Duration
	events      []chan Event
	stopCh      chan struct{}
	running     bool
	startedAt   time.Time
	plannedSecs int
	blocksTotal int
	onFinish    func(Summary)
}

// NewRunner creates a runner over a freshly built workout state.
func NewRunner(data Data, cfg Config) *Runner {
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = time.Second
	}
	r := &Runner{
		data:     data,
		interval: cfg.TickInterval,
		stopCh:   make(chan struct{}),
	}
	if tl, ok := data.Timeline(); ok {
		r.plannedSecs = tl.TotalRemaining()
		r.blocksTotal = tl.Len()
	}
	return r
}

// OnFinish registers a callback invoked once when the run finishes or is
// aborted. Must be set before Start.
func (r *Runner) OnFinish(fn func(Summary)) {
	r.mu.Lock()
	r.onFinish = fn
	r.mu.Unlock()
}

// Subscribe registers a new observer channel. Events are delivered
// best-effort: a full channel drops the event rather than stalling the
// tick loop.
func (r *Runner) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	r.mu.Lock()
	r.events = append(r.events, ch)
	r.mu.Unlock()
	return ch
}

// Snapshot returns the current workout state and the cue produced by the
// most recent transition.
func (r *Runner) Snapshot() (Data, Cue) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.data, r.lastCue
}

// Start applies the start transition and launches the tick loop. Calling it
// on anything but a staged workout does nothing.
func (r *Runner) Start() {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return
	}
	next, cue := r.data.Start()
	if !next.IsExercising() {
		r.mu.Unlock()
		return
	}
	r.data = next
	r.lastCue = cue
	r.running = true
	r.startedAt = time.Now()
	r.mu.Unlock()

	r.emit(r.event(EventStateChange, next, cue))
	go r.run()
}

// TogglePlay flips play/pause on a running workout.
func (r *Runner) TogglePlay() {
	r.mu.Lock()
	next, cue := r.data.TogglePlay()
	changed := next.Playing() != r.data.Playing()
	r.data = next
	if changed {
		r.lastCue = cue
	}
	r.mu.Unlock()

	if changed {
		r.emit(r.event(EventStateChange, next, cue))
	}
}

// End aborts the run. Safe to call at any time, including after the run
// already finished.
func (r *Runner) End() {
	r.mu.Lock()
	wasActive := r.data.IsExercising()
	r.data = r.data.End()
	r.lastCue = CueNone
	next := r.data
	r.mu.Unlock()

	if wasActive {
		r.emit(r.event(EventStateChange, next, CueNone))
		r.finish(false)
	}
	r.Stop()
}

// Stop terminates the tick loop and closes observer channels. The state
// remains queryable through Snapshot.
func (r *Runner) Stop() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	close(r.stopCh)
	r.running = false
	// Close under the lock: emit sends while holding it, so a send can
	// never race a close.
	for _, ch := range r.events {
		close(ch)
	}
	r.events = nil
	r.mu.Unlock()
}

func (r *Runner) run() {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stopCh:
			return
		case <-ticker.C:
			if done := r.tick(); done {
				return
			}
		}
	}
}

// tick applies one scheduler tick. Returns true when the run finished and
// the loop should exit.
func (r *Runner) tick() bool {
	r.mu.Lock()
	if !r.data.Playing() || !r.data.IsExercising() {
		r.mu.Unlock()
		return false
	}
	next, cue := r.data.Tick()
	r.data = next
	r.lastCue = cue
	r.mu.Unlock()

	if next.Phase() == PhaseFinished {
		r.emit(r.event(EventStateChange, next, cue))
		r.finish(true)
		r.Stop()
		return true
	}

	typ := EventProgress
	if cue == CueWhistle {
		typ = EventStateChange
	}
	r.emit(r.event(typ, next, cue))
	return false
}

func (r *Runner) finish(completed bool) {
	r.mu.Lock()
	fn := r.onFinish
	r.onFinish = nil
	summary := Summary{
		StartedAt:   r.startedAt,
		EndedAt:     time.Now(),
		PlannedSecs: r.plannedSecs,
		BlocksTotal: r.blocksTotal,
		Completed:   completed,
	}
	r.mu.Unlock()

	if fn != nil {
		fn(summary)
	}
}

func (r *Runner) event(typ EventType, d Data, cue Cue) Event {
	ev := Event{
		Type:    typ,
		Phase:   d.Phase(),
		Playing: d.Playing(),
		Cue:     cue,
		At:      time.Now(),
	}
	if block, ok := d.Current(); ok {
		ev.Block = block
		ev.Remaining = block.Remaining()
	}
	return ev
}

func (r *Runner) emit(ev Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ch := range r.events {
		select {
		case ch <- ev:
		default:
		}
	}
}
