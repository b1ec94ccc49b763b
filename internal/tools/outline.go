// ABOUTME: Course outline tool returning title, link, and lesson list
// ABOUTME: Resolves partial course names the same way search does

package tools

import (
	"context"
	"fmt"

	"github.com/classpilot/classpilot/internal/index"
	"github.com/classpilot/classpilot/internal/models"
)

// OutlineTool lets the model fetch a course's structure.
type OutlineTool struct {
	index *index.Index
}

// NewOutlineTool creates an outline tool over the given index.
func NewOutlineTool(ix *index.Index) *OutlineTool {
	return &OutlineTool{index: ix}
}

func (t *OutlineTool) Schema() Schema {
	return Schema{
		Name:        "get_course_outline",
		Description: "Get the outline of a course including its title, link, and complete lesson list",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"course_name": map[string]any{
					"type":        "string",
					"description": "Course title (partial matches work, e.g. 'MCP', 'Introduction')",
				},
			},
			"required": []string{"course_name"},
		},
	}
}

func (t *OutlineTool) Execute(ctx context.Context, args map[string]any) (string, []models.Citation, error) {
	courseName, _ := args["course_name"].(string)
	if courseName == "" {
		return "", nil, fmt.Errorf("get_course_outline: missing required argument 'course_name'")
	}

	course, err := t.index.ResolveCourse(ctx, courseName)
	if err != nil {
		return fmt.Sprintf("No course found matching '%s'", courseName), nil, nil
	}
	citations := []models.Citation{{Label: course.Title, URL: course.CourseLink}}
	return index.FormatOutline(course), citations, nil
}
