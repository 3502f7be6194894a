package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/claude/pacer/internal/models"
	"github.com/claude/pacer/internal/storage"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
)

// fakeDataSource serves canned data for handler tests.
type fakeDataSource struct {
	plans   map[uuid.UUID]*models.Plan
	history []models.SessionRecord
	stats   *storage.HistoryStats
}

func (f *fakeDataSource) ListPlans(_ context.Context) ([]models.PlanSummary, error) {
	summaries := make([]models.PlanSummary, 0, len(f.plans))
	for _, p := range f.plans {
		summaries = append(summaries, models.PlanSummary{ID: p.ID, Name: p.Spec.Name, SetCount: len(p.Spec.Sets)})
	}
	return summaries, nil
}

func (f *fakeDataSource) GetPlan(_ context.Context, id uuid.UUID) (*models.Plan, error) {
	p, ok := f.plans[id]
	if !ok {
		return nil, errors.New("plan not found")
	}
	return p, nil
}

func (f *fakeDataSource) QuerySessionHistory(_ context.Context, limit int) ([]models.SessionRecord, error) {
	if limit < len(f.history) {
		return f.history[:limit], nil
	}
	return f.history, nil
}

func (f *fakeDataSource) GetHistoryStats(_ context.Context) (*storage.HistoryStats, error) {
	return f.stats, nil
}

func toolRequest(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("result has no content")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content is %T, want TextContent", result.Content[0])
	}
	return text.Text
}

// TestParsePlanID verifies UUID validation of the plan_id argument.
func TestParsePlanID(t *testing.T) {
	id := uuid.New()
	parsed, err := parsePlanID(id.String())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parsed != id {
		t.Errorf("parsed = %s, want %s", parsed, id)
	}

	if _, err := parsePlanID("not-a-uuid"); err == nil {
		t.Error("expected error for malformed plan_id")
	}
}

// TestPreviewTimeline verifies the preview tool expands a plan into its block
// sequence with the correct total.
func TestPreviewTimeline(t *testing.T) {
	id := uuid.New()
	ds := &fakeDataSource{plans: map[uuid.UUID]*models.Plan{
		id: {
			ID: id,
			Spec: models.PlanSpec{
				Name:         "Morning",
				ExerciseSecs: 30,
				BreakSecs:    10,
				SetBreakSecs: 60,
				Sets: []models.ExerciseSet{
					{Name: "Core", Repeats: 1, Exercises: []models.Exercise{
						{Name: "Plank"}, {Name: "Crunches"},
					}},
					{Name: "Cooldown", Repeats: 1, Exercises: []models.Exercise{
						{Name: "Stretch"},
					}},
				},
			},
		},
	}}
	h := &handlers{ds: ds, log: slog.Default()}

	result, err := h.previewTimeline(context.Background(), toolRequest(map[string]any{"plan_id": id.String()}))
	if err != nil {
		t.Fatal(err)
	}
	if result.IsError {
		t.Fatalf("tool error: %s", resultText(t, result))
	}

	var preview struct {
		Plan      string          `json:"plan"`
		Phase     string          `json:"phase"`
		Blocks    []timelineEntry `json:"blocks"`
		TotalSecs int             `json:"total_secs"`
	}
	if err := json.Unmarshal([]byte(resultText(t, result)), &preview); err != nil {
		t.Fatal(err)
	}

	// Plank, break, Crunches, set break, Stretch: 30+10+30+60+30.
	if len(preview.Blocks) != 5 {
		t.Fatalf("got %d blocks, want 5", len(preview.Blocks))
	}
	if preview.TotalSecs != 160 {
		t.Errorf("total_secs = %d, want 160", preview.TotalSecs)
	}
	if preview.Blocks[0].Kind != "exercise" || preview.Blocks[0].Label != "Plank" {
		t.Errorf("first block = %+v, want Plank exercise", preview.Blocks[0])
	}
	if preview.Blocks[0].SetName != "Core" {
		t.Errorf("set_name = %q, want Core", preview.Blocks[0].SetName)
	}
	if preview.Blocks[3].Kind != "set_break" {
		t.Errorf("blocks[3] kind = %q, want set_break", preview.Blocks[3].Kind)
	}
	if preview.Blocks[4].SetName != "Cooldown" {
		t.Errorf("blocks[4] set_name = %q, want Cooldown", preview.Blocks[4].SetName)
	}
}

// TestPreviewTimelineEmptyPlan verifies a plan with no exercises previews as
// an empty sequence rather than an error.
func TestPreviewTimelineEmptyPlan(t *testing.T) {
	id := uuid.New()
	ds := &fakeDataSource{plans: map[uuid.UUID]*models.Plan{
		id: {ID: id, Spec: models.PlanSpec{Name: "Empty", ExerciseSecs: 30}},
	}}
	h := &handlers{ds: ds, log: slog.Default()}

	result, err := h.previewTimeline(context.Background(), toolRequest(map[string]any{"plan_id": id.String()}))
	if err != nil {
		t.Fatal(err)
	}
	if result.IsError {
		t.Fatalf("tool error: %s", resultText(t, result))
	}

	var preview struct {
		Phase     string          `json:"phase"`
		Blocks    []timelineEntry `json:"blocks"`
		TotalSecs int             `json:"total_secs"`
	}
	if err := json.Unmarshal([]byte(resultText(t, result)), &preview); err != nil {
		t.Fatal(err)
	}
	if preview.Phase != "never_started" {
		t.Errorf("phase = %q, want never_started", preview.Phase)
	}
	if len(preview.Blocks) != 0 || preview.TotalSecs != 0 {
		t.Errorf("blocks = %+v total = %d, want empty", preview.Blocks, preview.TotalSecs)
	}
}

// TestGetSessionHistoryLimit verifies limit parsing and rejection of bad input.
func TestGetSessionHistoryLimit(t *testing.T) {
	ds := &fakeDataSource{history: []models.SessionRecord{
		{ID: uuid.New(), PlanName: "Morning", Completed: true},
		{ID: uuid.New(), PlanName: "Evening", Completed: false},
	}}
	h := &handlers{ds: ds, log: slog.Default()}

	result, err := h.getSessionHistory(context.Background(), toolRequest(map[string]any{"limit": "1"}))
	if err != nil {
		t.Fatal(err)
	}
	var records []models.SessionRecord
	if err := json.Unmarshal([]byte(resultText(t, result)), &records); err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Errorf("got %d records, want 1", len(records))
	}

	result, err = h.getSessionHistory(context.Background(), toolRequest(map[string]any{"limit": "zero"}))
	if err != nil {
		t.Fatal(err)
	}
	if !result.IsError {
		t.Error("expected tool error for non-numeric limit")
	}
}
