// ABOUTME: MCP tool handler implementations for the course assistant server
// ABOUTME: Thin adapters from MCP requests onto the pipeline
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/classpilot/classpilot/internal/rag"
	"github.com/classpilot/classpilot/internal/tools"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	system  *rag.System
	search  *tools.SearchTool
	outline *tools.OutlineTool
}

// SearchCourseContent handles the search_course_content tool
func (h *Handlers) SearchCourseContent(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}

	args := map[string]any{"query": query}
	if courseName := request.GetString("course_name", ""); courseName != "" {
		args["course_name"] = courseName
	}
	if lesson := request.GetInt("lesson_number", 0); lesson != 0 {
		args["lesson_number"] = float64(lesson)
	}

	text, citations, err := h.search.Execute(ctx, args)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}

	return toolResultJSON(map[string]any{
		"content": text,
		"sources": citations,
	})
}

// GetCourseOutline handles the get_course_outline tool
func (h *Handlers) GetCourseOutline(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	courseName, err := request.RequireString("course_name")
	if err != nil {
		return mcp.NewToolResultError("course_name argument is required and must be a string"), nil
	}

	text, _, err := h.outline.Execute(ctx, map[string]any{"course_name": courseName})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("outline lookup failed: %v", err)), nil
	}
	return mcp.NewToolResultText(text), nil
}

// AskCourseQuestion handles the ask_course_question tool
func (h *Handlers) AskCourseQuestion(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}
	sessionID := request.GetString("session_id", "")

	answer, err := h.system.Answer(ctx, query, sessionID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("answer generation failed: %v", err)), nil
	}

	return toolResultJSON(map[string]any{
		"answer":     answer.Text,
		"sources":    answer.Citations,
		"session_id": answer.SessionID,
	})
}

// AddCourseFolder handles the add_course_folder tool
func (h *Handlers) AddCourseFolder(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("path argument is required and must be a string"), nil
	}

	courses, chunks, err := h.system.AddCourseFolder(ctx, path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("ingestion failed: %v", err)), nil
	}

	return toolResultJSON(map[string]any{
		"courses_added": courses,
		"chunks_added":  chunks,
	})
}

// GetCourseAnalytics handles the get_course_analytics tool
func (h *Handlers) GetCourseAnalytics(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	analytics, err := h.system.Analytics(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analytics failed: %v", err)), nil
	}
	return toolResultJSON(analytics)
}

func toolResultJSON(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
