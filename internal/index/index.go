// ABOUTME: Retrieval index combining an embedder with a vector store
// ABOUTME: Handles course ingestion, fuzzy name resolution, and search

package index

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/classpilot/classpilot/internal/models"
)

// Index is the retrieval layer. It embeds on write and on query, and
// resolves partial course names against the catalog before filtering.
type Index struct {
	embedder   Embedder
	store      Store
	maxResults int
	logger     *slog.Logger
}

// New creates an Index. maxResults bounds content queries when the
// caller does not supply a limit.
func New(embedder Embedder, store Store, maxResults int, logger *slog.Logger) *Index {
	if logger == nil {
		logger = slog.Default()
	}
	if maxResults <= 0 {
		maxResults = 5
	}
	return &Index{
		embedder:   embedder,
		store:      store,
		maxResults: maxResults,
		logger:     logger,
	}
}

// AddCourse embeds and stores a course and its chunks. The catalog
// vector is built from the course title so that partial name queries
// land near it.
func (ix *Index) AddCourse(ctx context.Context, course *models.Course, chunks []models.Chunk) error {
	titleVec, err := ix.embedder.Embed(ctx, course.Title)
	if err != nil {
		return fmt.Errorf("embedding course title: %w", err)
	}
	if err := ix.store.UpsertCourse(ctx, course, titleVec); err != nil {
		return fmt.Errorf("storing course %q: %w", course.Title, err)
	}

	if len(chunks) == 0 {
		return nil
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Content
	}
	vectors, err := ix.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return fmt.Errorf("embedding chunks for %q: %w", course.Title, err)
	}
	if err := ix.store.UpsertChunks(ctx, chunks, vectors); err != nil {
		return fmt.Errorf("storing chunks for %q: %w", course.Title, err)
	}

	ix.logger.Debug("course indexed", "course", course.Title, "chunks", len(chunks))
	return nil
}

// ResolveCourseName maps a partial or fuzzy course name to the nearest
// catalog title. It returns "" when the catalog is empty or the lookup
// fails.
func (ix *Index) ResolveCourseName(ctx context.Context, name string) string {
	vec, err := ix.embedder.Embed(ctx, name)
	if err != nil {
		ix.logger.Warn("course name embedding failed", "name", name, "error", err)
		return ""
	}
	matches, err := ix.store.QueryCatalog(ctx, vec, 1)
	if err != nil {
		ix.logger.Warn("catalog query failed", "name", name, "error", err)
		return ""
	}
	if len(matches) == 0 {
		return ""
	}
	return matches[0].Title
}

// Search runs a semantic query over chunk content. A non-empty
// courseName is resolved against the catalog first; a resolution miss
// is reported in the results' Err field rather than as a Go error, so
// the caller can surface it as tool output.
func (ix *Index) Search(ctx context.Context, query, courseName string, lessonNumber *int, limit int) *models.SearchResults {
	if limit <= 0 {
		limit = ix.maxResults
	}

	filter := Filter{LessonNumber: lessonNumber}
	if courseName != "" {
		resolved := ix.ResolveCourseName(ctx, courseName)
		if resolved == "" {
			return &models.SearchResults{Err: fmt.Sprintf("No course found matching '%s'", courseName)}
		}
		filter.CourseTitle = resolved
	}

	vec, err := ix.embedder.Embed(ctx, query)
	if err != nil {
		return &models.SearchResults{Err: fmt.Sprintf("Search error: %v", err)}
	}
	matches, err := ix.store.QueryContent(ctx, vec, filter, limit)
	if err != nil {
		return &models.SearchResults{Err: fmt.Sprintf("Search error: %v", err)}
	}

	results := &models.SearchResults{}
	for _, m := range matches {
		results.Documents = append(results.Documents, m.Content)
		results.Metadata = append(results.Metadata, m.Meta)
		results.Distances = append(results.Distances, m.Distance)
	}
	return results
}

// LessonLink returns the stored link for a lesson, or "" when the
// course or lesson is unknown.
func (ix *Index) LessonLink(ctx context.Context, courseTitle string, lessonNumber int) string {
	course, err := ix.store.GetCourse(ctx, courseTitle)
	if err != nil || course == nil {
		return ""
	}
	return course.LessonLink(lessonNumber)
}

// ResolveCourse resolves a partial name against the catalog and loads
// the stored course metadata.
func (ix *Index) ResolveCourse(ctx context.Context, courseName string) (*models.Course, error) {
	resolved := ix.ResolveCourseName(ctx, courseName)
	if resolved == "" {
		return nil, fmt.Errorf("no course found matching %q", courseName)
	}
	course, err := ix.store.GetCourse(ctx, resolved)
	if err != nil {
		return nil, fmt.Errorf("loading course %q: %w", resolved, err)
	}
	if course == nil {
		return nil, fmt.Errorf("no course found matching %q", courseName)
	}
	return course, nil
}

// CourseOutline resolves a course name and renders its outline with
// title, link, instructor, and numbered lesson list.
func (ix *Index) CourseOutline(ctx context.Context, courseName string) (string, error) {
	course, err := ix.ResolveCourse(ctx, courseName)
	if err != nil {
		return "", err
	}
	return FormatOutline(course), nil
}

// FormatOutline renders a course's structure as plain text.
func FormatOutline(course *models.Course) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Course: %s\n", course.Title)
	if course.CourseLink != "" {
		fmt.Fprintf(&b, "Course Link: %s\n", course.CourseLink)
	}
	if course.Instructor != "" {
		fmt.Fprintf(&b, "Instructor: %s\n", course.Instructor)
	}
	fmt.Fprintf(&b, "Lessons (%d):\n", len(course.Lessons))
	for _, l := range course.Lessons {
		fmt.Fprintf(&b, "%d. %s\n", l.Number, l.Title)
	}
	return strings.TrimRight(b.String(), "\n")
}

// CourseTitles lists stored course titles.
func (ix *Index) CourseTitles(ctx context.Context) ([]string, error) {
	return ix.store.CourseTitles(ctx)
}

// CourseCount returns the number of stored courses.
func (ix *Index) CourseCount(ctx context.Context) (int, error) {
	titles, err := ix.store.CourseTitles(ctx)
	if err != nil {
		return 0, err
	}
	return len(titles), nil
}

// HasCourse reports whether an exact title is already indexed.
func (ix *Index) HasCourse(ctx context.Context, title string) (bool, error) {
	course, err := ix.store.GetCourse(ctx, title)
	if err != nil {
		return false, err
	}
	return course != nil, nil
}

// Close releases the underlying store.
func (ix *Index) Close() error {
	return ix.store.Close()
}
