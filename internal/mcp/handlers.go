// ABOUTME: MCP tool handler implementations for the tracker server
// ABOUTME: Thin adapters from tool arguments onto storage and narrative operations
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/minakami/minakami/internal/models"
	"github.com/minakami/minakami/internal/narrative"
	"github.com/minakami/minakami/internal/storage/sqlite"
)

// Handlers contains the handler functions for all MCP tools.
type Handlers struct {
	tracker   *sqlite.Tracker
	generator *narrative.Generator
}

// LogActivity handles the log_activity tool.
func (h *Handlers) LogActivity(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	actType, err := request.RequireString("type")
	if err != nil {
		return mcp.NewToolResultError("type argument is required and must be a string"), nil
	}
	minutes := request.GetFloat("duration_minutes", 0)
	if minutes <= 0 {
		return mcp.NewToolResultError("duration_minutes must be a positive number"), nil
	}

	start := time.Now()
	if s := request.GetString("start_time", ""); s != "" {
		start, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid start_time: %v", err)), nil
		}
	}

	duration := int64(minutes * 60)
	activity := &models.Activity{
		Type:      actType,
		StartTime: start.UnixMilli(),
		EndTime:   start.UnixMilli() + duration*1000,
		Duration:  duration,
		Details:   request.GetString("details", ""),
		Distance:  request.GetFloat("distance_meters", 0),
		Source:    models.SourceManual,
	}

	id, err := h.tracker.AddActivity(activity)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to log activity: %v", err)), nil
	}

	return jsonResult(map[string]interface{}{
		"id":   id,
		"type": actType,
		"date": start.Local().Format("2006-01-02"),
	})
}

// AddNote handles the add_note tool.
func (h *Handlers) AddNote(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	content, err := request.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError("content argument is required and must be a string"), nil
	}

	date := request.GetString("date", time.Now().Local().Format("2006-01-02"))
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid date: %v", err)), nil
	}

	id, err := h.tracker.AddNote(&models.UserDailyNote{
		Date:      date,
		Content:   content,
		Timestamp: time.Now().UnixMilli(),
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to add note: %v", err)), nil
	}

	return jsonResult(map[string]interface{}{"id": id, "date": date})
}

// GetDailyStats handles the get_daily_stats tool.
func (h *Handlers) GetDailyStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date, err := request.RequireString("date")
	if err != nil {
		return mcp.NewToolResultError("date argument is required and must be a string"), nil
	}

	snap, err := narrative.Collect(h.tracker, date)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to collect stats: %v", err)), nil
	}

	return jsonResult(map[string]interface{}{
		"date":         date,
		"activities":   snap.ActivityStats,
		"calls":        snap.CallStats,
		"screen_time":  snap.AppStats,
		"top_apps":     snap.TopApps,
		"top_contacts": snap.TopContacts,
		"note_count":   len(snap.Notes),
	})
}

// GetNarrative handles the get_narrative tool.
func (h *Handlers) GetNarrative(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date, err := request.RequireString("date")
	if err != nil {
		return mcp.NewToolResultError("date argument is required and must be a string"), nil
	}

	summary, err := h.tracker.GetNarrativeSummary(date)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load narrative: %v", err)), nil
	}
	if summary == nil {
		return mcp.NewToolResultError(fmt.Sprintf("no narrative stored for %s", date)), nil
	}

	return jsonResult(map[string]interface{}{
		"date":    summary.Date,
		"summary": summary.Summary,
	})
}

// SaveNarrative handles the save_narrative tool. It lets an external
// assistant act as the narrative writer instead of the built-in
// generator.
func (h *Handlers) SaveNarrative(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date, err := request.RequireString("date")
	if err != nil {
		return mcp.NewToolResultError("date argument is required and must be a string"), nil
	}
	summary, err := request.RequireString("summary")
	if err != nil {
		return mcp.NewToolResultError("summary argument is required and must be a string"), nil
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid date: %v", err)), nil
	}

	if err := h.tracker.SaveNarrativeSummary(date, summary); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to save narrative: %v", err)), nil
	}

	return jsonResult(map[string]interface{}{"date": date, "saved": true})
}

// GenerateNarrative handles the generate_narrative tool.
func (h *Handlers) GenerateNarrative(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date, err := request.RequireString("date")
	if err != nil {
		return mcp.NewToolResultError("date argument is required and must be a string"), nil
	}

	text, err := h.generator.GenerateDaily(ctx, date)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("narrative generation failed: %v", err)), nil
	}

	return jsonResult(map[string]interface{}{
		"date":    date,
		"summary": text,
	})
}

// SearchNotes handles the search_notes tool.
func (h *Handlers) SearchNotes(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}
	maxResults := request.GetInt("max_results", 10)

	notes, err := h.tracker.SearchNotes(query, maxResults)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("note search failed: %v", err)), nil
	}

	results := make([]map[string]interface{}, 0, len(notes))
	for _, n := range notes {
		results = append(results, map[string]interface{}{
			"id":      n.ID,
			"date":    n.Date,
			"content": n.Content,
		})
	}

	return jsonResult(map[string]interface{}{"notes": results})
}

func jsonResult(response map[string]interface{}) (*mcp.CallToolResult, error) {
	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}
