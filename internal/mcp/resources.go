package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
)

// --- Resource definitions ---

var resPlans = mcp.NewResource(
	"pacer://plans",
	"Workout Plans",
	mcp.WithResourceDescription("All stored workout plans with set counts"),
	mcp.WithMIMEType("application/json"),
)

var resRecentSessions = mcp.NewResource(
	"pacer://recent_sessions",
	"Recent Sessions",
	mcp.WithResourceDescription("The 20 most recent workout sessions with completion status"),
	mcp.WithMIMEType("application/json"),
)

func (h *handlers) plansResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	plans, err := h.ds.ListPlans(ctx)
	if err != nil {
		return nil, err
	}
	return jsonResource(req.Params.URI, plans)
}

func (h *handlers) recentSessionsResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	records, err := h.ds.QuerySessionHistory(ctx, 20)
	if err != nil {
		return nil, err
	}
	return jsonResource(req.Params.URI, records)
}

func jsonResource(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
