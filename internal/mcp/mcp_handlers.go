package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/huangsam/racechart/core"
	"github.com/huangsam/racechart/core/timefmt"
	"github.com/huangsam/racechart/internal/contract"
	"github.com/huangsam/racechart/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.CacheManager
}

// timeConversion is the format_time result.
type timeConversion struct {
	Seconds int    `json:"seconds"`
	Label   string `json:"label"`
}

func (h *toolHandler) handleGetChartPoints(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if s := request.GetString("source", ""); s != "" {
		cfg.Source = s
	}
	limit := request.GetInt("limit", 0)
	if limit < 0 {
		return mcp.NewToolResultError(fmt.Sprintf("limit must not be negative (received %d)", limit)), nil
	}

	chart, err := core.LoadChart(core.Quiet(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("chart failed: %v", err)), nil
	}

	result := chart.Result()
	if request.GetBool("allegations_only", false) {
		filtered := result.Points[:0:0]
		for _, p := range result.Points {
			if p.HasAllegation {
				filtered = append(filtered, p)
			}
		}
		result.Points = filtered
	}
	if limit > 0 && limit < len(result.Points) {
		result.Points = result.Points[:limit]
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handlePlaceTooltip(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	x, err := request.RequireFloat("x")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	y, err := request.RequireFloat("y")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	viewport := schema.Size{
		Width:  request.GetFloat("viewport_width", h.baseCfg.Viewport.Width),
		Height: request.GetFloat("viewport_height", h.baseCfg.Viewport.Height),
	}
	if viewport.Width <= 0 || viewport.Height <= 0 {
		return mcp.NewToolResultError(fmt.Sprintf("viewport must be positive (received %.0fx%.0f)", viewport.Width, viewport.Height)), nil
	}

	placement := core.PlaceTooltip(h.baseCfg.Layout, schema.Point{X: x, Y: y}, viewport)
	jsonData, _ := json.MarshalIndent(placement, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleFormatTime(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	_, hasSeconds := args["seconds"]
	label := request.GetString("label", "")

	var conv timeConversion
	switch {
	case hasSeconds && label != "":
		return mcp.NewToolResultError("pass either seconds or label, not both"), nil
	case hasSeconds:
		conv.Seconds = request.GetInt("seconds", 0)
		conv.Label = timefmt.FormatYAxisTime(conv.Seconds)
	case label != "":
		seconds, err := timefmt.ParseTimeLabel(label)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		conv.Seconds = seconds
		conv.Label = timefmt.FormatYAxisTime(seconds)
	default:
		return mcp.NewToolResultError("one of seconds or label is required"), nil
	}

	jsonData, _ := json.MarshalIndent(conv, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
