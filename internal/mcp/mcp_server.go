// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/racechart/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the Racechart MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.CacheManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Racechart Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: get_chart_points ---
	s.AddTool(mcp.NewTool("get_chart_points",
		mcp.WithDescription("Load the cyclist race-time dataset and return every record placed on the scatter chart."),
		mcp.WithString("source", mcp.Description("Dataset URL or local JSON file (defaults to the configured source).")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of points returned.")),
		mcp.WithBoolean("allegations_only", mcp.Description("Only return riders with doping allegations.")),
	), h.handleGetChartPoints)

	// --- 2. Tool: place_tooltip ---
	s.AddTool(mcp.NewTool("place_tooltip",
		mcp.WithDescription("Compute where the hover tooltip is drawn for a cursor position in page coordinates."),
		mcp.WithNumber("x", mcp.Description("Cursor x in page pixels."), mcp.Required()),
		mcp.WithNumber("y", mcp.Description("Cursor y in page pixels."), mcp.Required()),
		mcp.WithNumber("viewport_width", mcp.Description("Viewport width in pixels (defaults to the configured viewport).")),
		mcp.WithNumber("viewport_height", mcp.Description("Viewport height in pixels (defaults to the configured viewport).")),
	), h.handlePlaceTooltip)

	// --- 3. Tool: format_time ---
	s.AddTool(mcp.NewTool("format_time",
		mcp.WithDescription("Convert between a seconds count and an MM:SS climb time label."),
		mcp.WithNumber("seconds", mcp.Description("Seconds to format as MM:SS.")),
		mcp.WithString("label", mcp.Description("MM:SS label to parse into seconds.")),
	), h.handleFormatTime)

	return s
}

// StartMCPServer starts the Racechart MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.CacheManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
