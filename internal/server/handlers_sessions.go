package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/claude/pacer/internal/session"
	"github.com/claude/pacer/internal/storage"
	"github.com/google/uuid"
)

type createSessionRequest struct {
	PlanID uuid.UUID `json:"plan_id"`
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if req.PlanID == uuid.Nil {
		writeError(w, http.StatusBadRequest, "plan_id is required")
		return
	}

	plan, err := s.db.GetPlan(r.Context(), req.PlanID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "plan not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	sess, data := s.sessions.Create(*plan)
	if sess == nil {
		// Empty workout: a defined outcome, not an error.
		writeJSON(w, http.StatusOK, viewState(uuid.Nil, data, ""))
		return
	}

	s.log.Info("session created", "session_id", sess.ID, "plan", plan.Spec.Name)
	writeJSON(w, http.StatusCreated, viewState(sess.ID, data, ""))
}

// lookupSession fetches the session for the {id} route parameter, writing
// the error response on failure.
func (s *Server) lookupSession(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id, ok := urlUUID(w, r)
	if !ok {
		return nil, false
	}
	sess, ok := s.sessions.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "session not found")
		return nil, false
	}
	return sess, true
}

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookupSession(w, r)
	if !ok {
		return
	}
	sess.Runner.Start()
	data, cue := sess.Runner.Snapshot()
	writeJSON(w, http.StatusOK, viewState(sess.ID, data, cue))
}

func (s *Server) handleToggleSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookupSession(w, r)
	if !ok {
		return
	}
	sess.Runner.TogglePlay()
	data, cue := sess.Runner.Snapshot()
	writeJSON(w, http.StatusOK, viewState(sess.ID, data, cue))
}

func (s *Server) handleEndSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookupSession(w, r)
	if !ok {
		return
	}
	sess.Runner.End()
	data, cue := sess.Runner.Snapshot()
	writeJSON(w, http.StatusOK, viewState(sess.ID, data, cue))
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookupSession(w, r)
	if !ok {
		return
	}
	data, cue := sess.Runner.Snapshot()
	writeJSON(w, http.StatusOK, viewState(sess.ID, data, cue))
}

func (s *Server) handleGetSessionTimeline(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookupSession(w, r)
	if !ok {
		return
	}
	data, _ := sess.Runner.Snapshot()

	blocks := []*blockView{}
	if tl, ok := data.Timeline(); ok {
		for _, b := range tl.Blocks() {
			blocks = append(blocks, viewBlock(b))
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"session_id": sess.ID,
		"phase":      string(data.Phase()),
		"blocks":     blocks,
	})
}
