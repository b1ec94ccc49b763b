// ABOUTME: Semantic search tool over indexed course content
// ABOUTME: Formats matches with course/lesson headers and collects citations

package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/classpilot/classpilot/internal/index"
	"github.com/classpilot/classpilot/internal/models"
)

// SearchTool lets the model search course materials with optional
// course and lesson filters.
type SearchTool struct {
	index *index.Index
}

// NewSearchTool creates a search tool over the given index.
func NewSearchTool(ix *index.Index) *SearchTool {
	return &SearchTool{index: ix}
}

func (t *SearchTool) Schema() Schema {
	return Schema{
		Name:        "search_course_content",
		Description: "Search course materials with smart course name matching and lesson filtering",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"query": map[string]any{
					"type":        "string",
					"description": "What to search for in course content",
				},
				"course_name": map[string]any{
					"type":        "string",
					"description": "Course title (partial matches work, e.g. 'MCP', 'Introduction')",
				},
				"lesson_number": map[string]any{
					"type":        "integer",
					"description": "Specific lesson number to search within (e.g. 1, 2, 3)",
				},
			},
			"required": []string{"query"},
		},
	}
}

func (t *SearchTool) Execute(ctx context.Context, args map[string]any) (string, []models.Citation, error) {
	query, _ := args["query"].(string)
	if query == "" {
		return "", nil, fmt.Errorf("search_course_content: missing required argument 'query'")
	}
	courseName, _ := args["course_name"].(string)
	var lessonNumber *int
	if v, ok := args["lesson_number"].(float64); ok {
		n := int(v)
		lessonNumber = &n
	}

	results := t.index.Search(ctx, query, courseName, lessonNumber, 0)
	if results.Err != "" {
		return results.Err, nil, nil
	}
	if results.IsEmpty() {
		var filter strings.Builder
		if courseName != "" {
			fmt.Fprintf(&filter, " in course '%s'", courseName)
		}
		if lessonNumber != nil {
			fmt.Fprintf(&filter, " in lesson %d", *lessonNumber)
		}
		return fmt.Sprintf("No relevant content found%s.", filter.String()), nil, nil
	}
	return t.formatResults(ctx, results)
}

// formatResults renders each match under a "[Course - Lesson N]" header
// and builds one citation per match.
func (t *SearchTool) formatResults(ctx context.Context, results *models.SearchResults) (string, []models.Citation, error) {
	var formatted []string
	var citations []models.Citation

	for i, doc := range results.Documents {
		meta := results.Metadata[i]

		label := meta.CourseTitle
		if meta.LessonNumber != nil {
			label = fmt.Sprintf("%s - Lesson %d", meta.CourseTitle, *meta.LessonNumber)
		}
		formatted = append(formatted, fmt.Sprintf("[%s]\n%s", label, doc))

		citation := models.Citation{Label: label}
		if meta.LessonNumber != nil {
			citation.URL = t.index.LessonLink(ctx, meta.CourseTitle, *meta.LessonNumber)
		}
		citations = append(citations, citation)
	}

	return strings.Join(formatted, "\n\n"), citations, nil
}
