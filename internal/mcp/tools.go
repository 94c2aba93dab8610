// ABOUTME: MCP tool definitions and registration for the tracker server
// ABOUTME: Exposes logging, stats, narrative, and note search tools
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/minakami/minakami/internal/narrative"
	"github.com/minakami/minakami/internal/storage/sqlite"
)

// RegisterTools registers all tracker tools with the server. The
// narrative generator is optional; without it generate_narrative is not
// registered.
func RegisterTools(server *mcpserver.MCPServer, tracker *sqlite.Tracker, generator *narrative.Generator) *Handlers {
	handlers := &Handlers{
		tracker:   tracker,
		generator: generator,
	}

	server.AddTool(mcp.Tool{
		Name:        "log_activity",
		Description: "Log a physical activity (walk, run, workout) for the user.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"type": map[string]interface{}{
					"type":        "string",
					"description": "Activity type, e.g. walking, running, cycling",
				},
				"duration_minutes": map[string]interface{}{
					"type":        "number",
					"description": "Duration in minutes",
				},
				"start_time": map[string]interface{}{
					"type":        "string",
					"description": "Start time in RFC3339 (default: now)",
				},
				"details": map[string]interface{}{
					"type":        "string",
					"description": "Optional free-text details",
				},
				"distance_meters": map[string]interface{}{
					"type":        "number",
					"description": "Optional distance in meters",
				},
			},
			Required: []string{"type", "duration_minutes"},
		},
	}, handlers.LogActivity)

	server.AddTool(mcp.Tool{
		Name:        "add_note",
		Description: "Add a free-text journal note for a day.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"content": map[string]interface{}{
					"type":        "string",
					"description": "Note content",
				},
				"date": map[string]interface{}{
					"type":        "string",
					"description": "Day as YYYY-MM-DD (default: today)",
				},
			},
			Required: []string{"content"},
		},
	}, handlers.AddNote)

	server.AddTool(mcp.Tool{
		Name:        "get_daily_stats",
		Description: "Get aggregate activity, call, and screen-time statistics for one day.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"date": map[string]interface{}{
					"type":        "string",
					"description": "Day as YYYY-MM-DD",
				},
			},
			Required: []string{"date"},
		},
	}, handlers.GetDailyStats)

	server.AddTool(mcp.Tool{
		Name:        "get_narrative",
		Description: "Get the stored narrative summary for one day, if any.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"date": map[string]interface{}{
					"type":        "string",
					"description": "Day as YYYY-MM-DD",
				},
			},
			Required: []string{"date"},
		},
	}, handlers.GetNarrative)

	server.AddTool(mcp.Tool{
		Name:        "save_narrative",
		Description: "Store a narrative summary for one day, replacing any existing one.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"date": map[string]interface{}{
					"type":        "string",
					"description": "Day as YYYY-MM-DD",
				},
				"summary": map[string]interface{}{
					"type":        "string",
					"description": "Narrative text for the day",
				},
			},
			Required: []string{"date", "summary"},
		},
	}, handlers.SaveNarrative)

	server.AddTool(mcp.Tool{
		Name:        "search_notes",
		Description: "Search journal notes by substring, newest first.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Text to search for",
				},
				"max_results": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of results to return (default: 10)",
					"default":     10,
				},
			},
			Required: []string{"query"},
		},
	}, handlers.SearchNotes)

	if generator != nil {
		server.AddTool(mcp.Tool{
			Name:        "generate_narrative",
			Description: "Generate (or regenerate) the AI narrative summary for one day and store it.",
			InputSchema: mcp.ToolInputSchema{
				Type: "object",
				Properties: map[string]interface{}{
					"date": map[string]interface{}{
						"type":        "string",
						"description": "Day as YYYY-MM-DD",
					},
				},
				Required: []string{"date"},
			},
		}, handlers.GenerateNarrative)
	}

	return handlers
}
