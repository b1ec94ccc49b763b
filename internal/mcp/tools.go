// ABOUTME: MCP tool definitions and registration for the course assistant server
// ABOUTME: Exposes search, outline, ask, ingest, and analytics over MCP
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/classpilot/classpilot/internal/rag"
	"github.com/classpilot/classpilot/internal/tools"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, system *rag.System) *Handlers {
	handlers := &Handlers{
		system:  system,
		search:  tools.NewSearchTool(system.Index()),
		outline: tools.NewOutlineTool(system.Index()),
	}

	// 1. search_course_content - Semantic search over indexed transcripts
	server.AddTool(mcp.Tool{
		Name:        "search_course_content",
		Description: "Search course materials with smart course name matching and lesson filtering.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "What to search for in course content",
				},
				"course_name": map[string]interface{}{
					"type":        "string",
					"description": "Course title, partial matches work (e.g. 'MCP')",
				},
				"lesson_number": map[string]interface{}{
					"type":        "number",
					"description": "Specific lesson number to search within",
				},
			},
			Required: []string{"query"},
		},
	}, handlers.SearchCourseContent)

	// 2. get_course_outline - Course structure lookup
	server.AddTool(mcp.Tool{
		Name:        "get_course_outline",
		Description: "Get the outline of a course including its title, link, and complete lesson list.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"course_name": map[string]interface{}{
					"type":        "string",
					"description": "Course title, partial matches work",
				},
			},
			Required: []string{"course_name"},
		},
	}, handlers.GetCourseOutline)

	// 3. ask_course_question - Full retrieval-augmented answer
	server.AddTool(mcp.Tool{
		Name:        "ask_course_question",
		Description: "Ask a question about course materials and get a generated answer with citations. Pass session_id to continue a conversation.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "The question to answer",
				},
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session id from a previous answer, for follow-up questions",
				},
			},
			Required: []string{"query"},
		},
	}, handlers.AskCourseQuestion)

	// 4. add_course_folder - Ingest a directory of transcripts
	server.AddTool(mcp.Tool{
		Name:        "add_course_folder",
		Description: "Index every course transcript in a folder. Courses already indexed are skipped.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Directory containing .txt course transcripts",
				},
			},
			Required: []string{"path"},
		},
	}, handlers.AddCourseFolder)

	// 5. get_course_analytics - Corpus summary
	server.AddTool(mcp.Tool{
		Name:        "get_course_analytics",
		Description: "Get the number of indexed courses and their titles.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.GetCourseAnalytics)

	return handlers
}
