package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/claude/pacer/internal/engine"
	"github.com/claude/pacer/internal/models"
	"github.com/google/uuid"
)

// HistoryRecorder persists finished sessions. *storage.DB satisfies it.
type HistoryRecorder interface {
	InsertSessionRecord(ctx context.Context, rec models.SessionRecord) error
}

// Session is one live workout run.
type Session struct {
	ID       uuid.UUID
	PlanID   uuid.UUID
	PlanName string
	Runner   *engine.Runner
}

// Manager owns all live sessions and records their outcomes.
type Manager struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
	recorder HistoryRecorder
	log      *slog.Logger
	interval time.Duration
}

// NewManager creates a session registry. recorder may be nil, in which case
// finished sessions are not persisted.
func NewManager(recorder HistoryRecorder, log *slog.Logger) *Manager {
	return &Manager{
		sessions: map[uuid.UUID]*Session{},
		recorder: recorder,
		log:      log,
		interval: time.Second,
	}
}

// SetTickInterval overrides the scheduler cadence. Used by tests.
func (m *Manager) SetTickInterval(d time.Duration) {
	m.mu.Lock()
	m.interval = d
	m.mu.Unlock()
}

// Create builds the timeline for a plan and registers a session for it.
// Returns a nil session when the plan yields an empty workout; the returned
// state still describes that outcome.
func (m *Manager) Create(plan models.Plan) (*Session, engine.Data) {
	data := engine.Build(plan.Spec.Snapshot())
	if data.Phase() == engine.PhaseNeverStarted {
		return nil, data
	}

	m.mu.Lock()
	interval := m.interval
	m.mu.Unlock()

	sess := &Session{
		ID:       uuid.New(),
		PlanID:   plan.ID,
		PlanName: plan.Spec.Name,
		Runner:   engine.NewRunner(data, engine.Config{TickInterval: interval}),
	}
	sess.Runner.OnFinish(func(s engine.Summary) {
		m.record(sess, s)
	})

	m.mu.Lock()
	m.sessions[sess.ID] = sess
	m.mu.Unlock()

	return sess, data
}

// Get returns the session with the given ID.
func (m *Manager) Get(id uuid.UUID) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[id]
	return sess, ok
}

// Shutdown stops every live session's tick loop.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.mu.Unlock()

	for _, s := range sessions {
		s.Runner.Stop()
	}
}

func (m *Manager) record(sess *Session, s engine.Summary) {
	elapsed := int(s.EndedAt.Sub(s.StartedAt).Round(time.Second) / time.Second)
	if s.Completed {
		elapsed = s.PlannedSecs
	}

	m.log.Info("session finished",
		"session_id", sess.ID,
		"plan", sess.PlanName,
		"completed", s.Completed,
		"elapsed_secs", elapsed,
	)

	if m.recorder == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	rec := models.SessionRecord{
		ID:          sess.ID,
		PlanID:      sess.PlanID,
		PlanName:    sess.PlanName,
		StartedAt:   s.StartedAt,
		FinishedAt:  s.EndedAt,
		TotalSecs:   elapsed,
		BlocksTotal: s.BlocksTotal,
		Completed:   s.Completed,
	}
	if err := m.recorder.InsertSessionRecord(ctx, rec); err != nil {
		m.log.Error("failed to record session", "session_id", sess.ID, "error", err)
	}
}
