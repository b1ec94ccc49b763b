// ABOUTME: Tests for the search and outline tools and the registry
// ABOUTME: Exercises result formatting, filters, citations, and dispatch

package tools

import (
	"context"
	"errors"
	"hash/fnv"
	"strings"
	"testing"

	"github.com/classpilot/classpilot/internal/index"
	"github.com/classpilot/classpilot/internal/index/memory"
	"github.com/classpilot/classpilot/internal/models"
)

type wordBagEmbedder struct{}

func (wordBagEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vec := make([]float32, 64)
	for _, w := range strings.Fields(strings.ToLower(text)) {
		h := fnv.New32a()
		_, _ = h.Write([]byte(w))
		vec[h.Sum32()%64]++
	}
	return vec, nil
}

func (e wordBagEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i], _ = e.Embed(ctx, t)
	}
	return out, nil
}

func intPtr(n int) *int { return &n }

func seedIndex(t *testing.T) *index.Index {
	t.Helper()
	ix := index.New(wordBagEmbedder{}, memory.New(), 5, nil)
	ctx := context.Background()

	course := &models.Course{
		Title:      "Python Testing Course",
		CourseLink: "https://example.com/course",
		Lessons: []models.Lesson{
			{Number: 1, Title: "Introduction to Testing", Link: "https://example.com/course/lesson1"},
			{Number: 2, Title: "Unit Testing Basics", Link: "https://example.com/course/lesson2"},
		},
	}
	chunks := []models.Chunk{
		{Content: "Testing is essential for software quality.", CourseTitle: course.Title, LessonNumber: intPtr(1), ChunkIndex: 0},
		{Content: "Unit testing focuses on isolated components.", CourseTitle: course.Title, LessonNumber: intPtr(2), ChunkIndex: 1},
	}
	if err := ix.AddCourse(ctx, course, chunks); err != nil {
		t.Fatalf("AddCourse() error = %v", err)
	}
	return ix
}

func TestSearchTool_FormatsResults(t *testing.T) {
	tool := NewSearchTool(seedIndex(t))

	text, citations, err := tool.Execute(context.Background(), map[string]any{
		"query": "Testing essential software quality.",
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(text, "[Python Testing Course - Lesson 1]") {
		t.Errorf("missing header in %q", text)
	}
	if !strings.Contains(text, "Testing is essential") {
		t.Errorf("missing content in %q", text)
	}
	if len(citations) == 0 {
		t.Fatal("expected citations")
	}
	if citations[0].Label != "Python Testing Course - Lesson 1" {
		t.Errorf("citation label = %q", citations[0].Label)
	}
	if citations[0].URL != "https://example.com/course/lesson1" {
		t.Errorf("citation url = %q", citations[0].URL)
	}
}

func TestSearchTool_EmptyNoFilters(t *testing.T) {
	tool := NewSearchTool(index.New(wordBagEmbedder{}, memory.New(), 5, nil))

	text, citations, err := tool.Execute(context.Background(), map[string]any{"query": "anything"})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if text != "No relevant content found." {
		t.Errorf("text = %q", text)
	}
	if len(citations) != 0 {
		t.Errorf("citations = %v, want none", citations)
	}
}

func TestSearchTool_EmptyWithFilters(t *testing.T) {
	tool := NewSearchTool(seedIndex(t))

	// lesson 5 exists in no course, so the filtered search comes back
	// empty even though the course resolves
	text, _, err := tool.Execute(context.Background(), map[string]any{
		"query":         "anything at all",
		"course_name":   "Python Testing Course",
		"lesson_number": float64(5),
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	want := "No relevant content found in course 'Python Testing Course' in lesson 5."
	if text != want {
		t.Errorf("text = %q, want %q", text, want)
	}
}

func TestSearchTool_UnresolvableCourse(t *testing.T) {
	tool := NewSearchTool(index.New(wordBagEmbedder{}, memory.New(), 5, nil))

	text, _, err := tool.Execute(context.Background(), map[string]any{
		"query":       "anything",
		"course_name": "Nonexistent Course",
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if text != "No course found matching 'Nonexistent Course'" {
		t.Errorf("text = %q", text)
	}
}

func TestSearchTool_MissingQuery(t *testing.T) {
	tool := NewSearchTool(seedIndex(t))

	_, _, err := tool.Execute(context.Background(), map[string]any{})
	if err == nil {
		t.Fatal("expected error for missing query")
	}
}

func TestOutlineTool(t *testing.T) {
	tool := NewOutlineTool(seedIndex(t))

	text, citations, err := tool.Execute(context.Background(), map[string]any{"course_name": "Testing"})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	for _, want := range []string{
		"Course: Python Testing Course",
		"Course Link: https://example.com/course",
		"1. Introduction to Testing",
		"2. Unit Testing Basics",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("outline missing %q:\n%s", want, text)
		}
	}
	if len(citations) != 1 {
		t.Fatalf("len(citations) = %d, want 1", len(citations))
	}
	if citations[0].Label != "Python Testing Course" {
		t.Errorf("citation label = %q", citations[0].Label)
	}
	if citations[0].URL != "https://example.com/course" {
		t.Errorf("citation URL = %q", citations[0].URL)
	}
}

func TestOutlineTool_UnknownCourse(t *testing.T) {
	tool := NewOutlineTool(index.New(wordBagEmbedder{}, memory.New(), 5, nil))

	text, _, err := tool.Execute(context.Background(), map[string]any{"course_name": "Ghost"})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if text != "No course found matching 'Ghost'" {
		t.Errorf("text = %q", text)
	}
}

func TestRegistry_Dispatch(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register(NewSearchTool(seedIndex(t))); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	text, _, err := reg.Execute(context.Background(), "search_course_content", map[string]any{
		"query": "Unit testing isolated components.",
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(text, "Unit testing") {
		t.Errorf("text = %q", text)
	}
}

func TestRegistry_UnknownTool(t *testing.T) {
	reg := NewRegistry()

	_, _, err := reg.Execute(context.Background(), "nope", nil)
	if !errors.Is(err, ErrUnknownTool) {
		t.Errorf("error = %v, want ErrUnknownTool", err)
	}
}

func TestRegistry_DuplicateRegistration(t *testing.T) {
	reg := NewRegistry()
	ix := seedIndex(t)
	if err := reg.Register(NewSearchTool(ix)); err != nil {
		t.Fatal(err)
	}
	if err := reg.Register(NewSearchTool(ix)); err == nil {
		t.Error("expected error for duplicate registration")
	}
}

func TestRegistry_SchemasInRegistrationOrder(t *testing.T) {
	reg := NewRegistry()
	ix := seedIndex(t)
	_ = reg.Register(NewSearchTool(ix))
	_ = reg.Register(NewOutlineTool(ix))

	schemas := reg.Schemas()
	if len(schemas) != 2 {
		t.Fatalf("len(schemas) = %d", len(schemas))
	}
	if schemas[0].Name != "search_course_content" || schemas[1].Name != "get_course_outline" {
		t.Errorf("schema order = %s, %s", schemas[0].Name, schemas[1].Name)
	}
}
