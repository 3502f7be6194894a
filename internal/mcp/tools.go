package mcp

import (
	"context"
	"strconv"

	"github.com/claude/pacer/internal/engine"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
)

// parsePlanID validates the plan_id tool argument.
func parsePlanID(raw string) (uuid.UUID, error) {
	return uuid.Parse(raw)
}

// --- Tool definitions ---

var toolListPlans = mcp.NewTool("list_plans",
	mcp.WithDescription("List all stored workout plans with their set counts."),
)

var toolGetPlan = mcp.NewTool("get_plan",
	mcp.WithDescription("Retrieve a workout plan in full: sets, exercises, repeat counts, and the configured interval durations."),
	mcp.WithString("plan_id", mcp.Required(), mcp.Description("Plan UUID, as returned by list_plans")),
)

var toolPreviewTimeline = mcp.NewTool("preview_timeline",
	mcp.WithDescription("Compute the timed block sequence a plan produces: exercises, breaks, set breaks, and the optional countdown, each with its duration. Returns an empty sequence for plans with no exercises."),
	mcp.WithString("plan_id", mcp.Required(), mcp.Description("Plan UUID")),
)

var toolGetSessionHistory = mcp.NewTool("get_session_history",
	mcp.WithDescription("List recent workout sessions, newest first, including whether each was completed or aborted."),
	mcp.WithString("limit", mcp.Description("Maximum rows to return. Defaults to 50.")),
)

var toolGetHistoryStats = mcp.NewTool("get_history_stats",
	mcp.WithDescription("Aggregate training statistics: session counts, completion counts, total exercised time, and per-plan breakdowns."),
)

// --- Tool handlers ---

func (h *handlers) listPlans(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	plans, err := h.ds.ListPlans(ctx)
	if err != nil {
		h.log.Error("mcp list_plans", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(plans)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getPlan(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	planID, err := parsePlanID(req.GetString("plan_id", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid plan_id: " + err.Error()), nil
	}

	plan, err := h.ds.GetPlan(ctx, planID)
	if err != nil {
		h.log.Error("mcp get_plan", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(plan)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

// timelineEntry is the preview wire form of one block.
type timelineEntry struct {
	Kind     string `json:"kind"`
	Label    string `json:"label"`
	SetName  string `json:"set_name,omitempty"`
	Duration int    `json:"duration_secs"`
}

func (h *handlers) previewTimeline(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	planID, err := parsePlanID(req.GetString("plan_id", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid plan_id: " + err.Error()), nil
	}

	plan, err := h.ds.GetPlan(ctx, planID)
	if err != nil {
		h.log.Error("mcp preview_timeline", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	data := engine.Build(plan.Spec.Snapshot())

	entries := []timelineEntry{}
	totalSecs := 0
	if tl, ok := data.Timeline(); ok {
		for _, b := range tl.Blocks() {
			entry := timelineEntry{
				Kind:     string(b.Kind()),
				Label:    b.Label(),
				Duration: b.Total(),
			}
			if ex, isEx := b.(engine.ExerciseBlock); isEx {
				entry.SetName = ex.SetName
			}
			entries = append(entries, entry)
			totalSecs += b.Total()
		}
	}

	result, err := mcp.NewToolResultJSON(map[string]any{
		"plan":       plan.Spec.Name,
		"phase":      string(data.Phase()),
		"blocks":     entries,
		"total_secs": totalSecs,
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getSessionHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := 50
	if raw := req.GetString("limit", ""); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return mcp.NewToolResultError("invalid limit: must be a positive integer"), nil
		}
		limit = parsed
	}

	records, err := h.ds.QuerySessionHistory(ctx, limit)
	if err != nil {
		h.log.Error("mcp get_session_history", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(records)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getHistoryStats(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats, err := h.ds.GetHistoryStats(ctx)
	if err != nil {
		h.log.Error("mcp get_history_stats", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(stats)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
