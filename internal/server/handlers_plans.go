package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/claude/pacer/internal/models"
	"github.com/claude/pacer/internal/storage"
	"github.com/google/uuid"
)

// applyDefaults fills omitted durations from the server-wide fallbacks.
func (s *Server) applyDefaults(spec *models.PlanSpec) {
	if spec.ExerciseSecs == 0 {
		spec.ExerciseSecs = s.defaults.ExerciseSecs
	}
	if spec.BreakSecs == 0 {
		spec.BreakSecs = s.defaults.BreakSecs
	}
	if spec.SetBreakSecs == 0 {
		spec.SetBreakSecs = s.defaults.SetBreakSecs
	}
	if spec.CountdownEnabled && spec.CountdownSecs == 0 {
		spec.CountdownSecs = s.defaults.CountdownSecs
	}
}

func (s *Server) handleCreatePlan(w http.ResponseWriter, r *http.Request) {
	var spec models.PlanSpec
	if err := json.NewDecoder(r.Body).Decode(&spec); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	s.applyDefaults(&spec)
	if err := spec.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	now := time.Now().UTC()
	plan := models.Plan{ID: uuid.New(), Spec: spec, CreatedAt: now, UpdatedAt: now}
	if err := s.db.InsertPlan(r.Context(), plan); err != nil {
		s.log.Error("plan insert failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, plan)
}

func (s *Server) handleUpdatePlan(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r)
	if !ok {
		return
	}

	var spec models.PlanSpec
	if err := json.NewDecoder(r.Body).Decode(&spec); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	s.applyDefaults(&spec)
	if err := spec.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	plan := models.Plan{ID: id, Spec: spec}
	if err := s.db.UpdatePlan(r.Context(), plan); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "plan not found")
			return
		}
		s.log.Error("plan update failed", "plan_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, plan)
}

func (s *Server) handleListPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := s.db.ListPlans(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if plans == nil {
		plans = []models.PlanSummary{}
	}
	writeJSON(w, http.StatusOK, plans)
}

func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r)
	if !ok {
		return
	}

	plan, err := s.db.GetPlan(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "plan not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func (s *Server) handleDeletePlan(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r)
	if !ok {
		return
	}

	if err := s.db.DeletePlan(r.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "plan not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
