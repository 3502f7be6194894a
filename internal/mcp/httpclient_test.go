package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/claude/pacer/internal/models"
	"github.com/claude/pacer/internal/storage"
	"github.com/google/uuid"
)

// newTestServer creates an httptest server that routes requests to handler
// functions keyed by path. Verifies the HTTP client sends correct paths and
// query params.
func newTestServer(t *testing.T, handlers map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := handlers[r.URL.Path]
		if !ok {
			t.Errorf("unexpected request path: %s", r.URL.Path)
			http.NotFound(w, r)
			return
		}
		h(w, r)
	}))
}

func writeTestJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Fatal(err)
	}
}

// TestListPlans verifies the client parses the plan summary array.
func TestListPlans(t *testing.T) {
	id := uuid.New()
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/plans": func(w http.ResponseWriter, r *http.Request) {
			writeTestJSON(t, w, []models.PlanSummary{
				{ID: id, Name: "Morning", SetCount: 2},
			})
		},
	})
	defer ts.Close()

	plans, err := NewHTTPClient(ts.URL).ListPlans(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(plans) != 1 {
		t.Fatalf("got %d plans, want 1", len(plans))
	}
	if plans[0].ID != id || plans[0].SetCount != 2 {
		t.Errorf("plan = %+v, want id %s with 2 sets", plans[0], id)
	}
}

// TestGetPlanByID verifies the client hits the per-plan path and parses the
// nested spec.
func TestGetPlanByID(t *testing.T) {
	id := uuid.New()
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/plans/" + id.String(): func(w http.ResponseWriter, r *http.Request) {
			writeTestJSON(t, w, models.Plan{
				ID: id,
				Spec: models.PlanSpec{
					Name:         "Morning",
					ExerciseSecs: 30,
					Sets: []models.ExerciseSet{
						{Name: "Core", Exercises: []models.Exercise{{Name: "Plank"}}, Repeats: 2},
					},
				},
			})
		},
	})
	defer ts.Close()

	plan, err := NewHTTPClient(ts.URL).GetPlan(context.Background(), id)
	if err != nil {
		t.Fatal(err)
	}
	if plan.Spec.Name != "Morning" || len(plan.Spec.Sets) != 1 {
		t.Errorf("plan = %+v, want Morning with 1 set", plan.Spec)
	}
	if plan.Spec.Sets[0].Repeats != 2 {
		t.Errorf("repeats = %d, want 2", plan.Spec.Sets[0].Repeats)
	}
}

// TestQuerySessionHistoryLimit verifies the limit query parameter is sent.
func TestQuerySessionHistoryLimit(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/history": func(w http.ResponseWriter, r *http.Request) {
			if got := r.URL.Query().Get("limit"); got != "10" {
				t.Errorf("limit=%q, want 10", got)
			}
			writeTestJSON(t, w, []models.SessionRecord{
				{ID: uuid.New(), PlanName: "Morning", TotalSecs: 120, Completed: true,
					StartedAt: time.Date(2026, 8, 30, 7, 0, 0, 0, time.UTC)},
			})
		},
	})
	defer ts.Close()

	records, err := NewHTTPClient(ts.URL).QuerySessionHistory(context.Background(), 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 || !records[0].Completed {
		t.Errorf("records = %+v, want one completed record", records)
	}
}

// TestGetHistoryStatsError verifies non-200 responses surface as errors.
func TestGetHistoryStatsError(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/history/stats": func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":"boom"}`, http.StatusInternalServerError)
		},
	})
	defer ts.Close()

	_, err := NewHTTPClient(ts.URL).GetHistoryStats(context.Background())
	if err == nil {
		t.Fatal("expected error for 500 response")
	}
}

// TestGetHistoryStats verifies a struct response round-trips.
func TestGetHistoryStats(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/history/stats": func(w http.ResponseWriter, r *http.Request) {
			writeTestJSON(t, w, storage.HistoryStats{
				TotalSessions:     12,
				CompletedSessions: 10,
				TotalSeconds:      3600,
			})
		},
	})
	defer ts.Close()

	stats, err := NewHTTPClient(ts.URL).GetHistoryStats(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if stats.TotalSessions != 12 || stats.CompletedSessions != 10 {
		t.Errorf("stats = %+v, want 12/10", stats)
	}
}
