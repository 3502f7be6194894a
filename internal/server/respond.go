package server

import (
	"encoding/json"
	"net/http"

	"github.com/claude/pacer/internal/engine"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// urlUUID parses the {id} route parameter. Writes a 400 and returns false on
// malformed IDs.
func urlUUID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid ID")
		return uuid.Nil, false
	}
	return id, true
}

// blockView is the wire form of a timeline block.
type blockView struct {
	Kind      string `json:"kind"`
	Label     string `json:"label"`
	SetName   string `json:"set_name,omitempty"`
	Remaining int    `json:"remaining"`
	Total     int    `json:"total"`
}

// stateView is the wire form of a session's live state.
type stateView struct {
	SessionID      uuid.UUID  `json:"session_id,omitempty"`
	Phase          string     `json:"phase"`
	Playing        bool       `json:"playing"`
	Cue            string     `json:"cue,omitempty"`
	Block          *blockView `json:"block,omitempty"`
	BlocksLeft     int        `json:"blocks_left"`
	TotalRemaining int        `json:"total_remaining"`
}

func viewBlock(b engine.Block) *blockView {
	v := &blockView{
		Kind:      string(b.Kind()),
		Label:     b.Label(),
		Remaining: b.Remaining(),
		Total:     b.Total(),
	}
	if ex, ok := b.(engine.ExerciseBlock); ok {
		v.SetName = ex.SetName
	}
	return v
}

func viewState(id uuid.UUID, data engine.Data, cue engine.Cue) stateView {
	v := stateView{
		SessionID: id,
		Phase:     string(data.Phase()),
		Playing:   data.Playing(),
		Cue:       string(cue),
	}
	if tl, ok := data.Timeline(); ok {
		v.Block = viewBlock(tl.Head)
		v.BlocksLeft = tl.Len()
		v.TotalRemaining = tl.TotalRemaining()
	}
	return v
}
