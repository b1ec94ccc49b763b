// ABOUTME: Storage and embedding interfaces backing the retrieval index
// ABOUTME: Implemented by the memory, sqlite, and qdrant backends

package index

import (
	"context"

	"github.com/classpilot/classpilot/internal/models"
)

// Embedder converts text into dense vectors for similarity search.
type Embedder interface {
	// Embed returns the vector for a single text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch returns one vector per input text, in order.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// Filter narrows a content query to a course and optionally a lesson.
// A nil field means no constraint.
type Filter struct {
	CourseTitle  string
	LessonNumber *int
}

// CatalogMatch is a course title scored against a query vector.
type CatalogMatch struct {
	Title    string
	Distance float64
}

// ContentMatch is a transcript chunk scored against a query vector.
type ContentMatch struct {
	Content  string
	Meta     models.ChunkMeta
	Distance float64
}

// Store persists course metadata and chunk vectors and answers
// nearest-neighbor queries over them.
type Store interface {
	// UpsertCourse stores course metadata keyed by title, along with the
	// catalog vector used for fuzzy course name resolution.
	UpsertCourse(ctx context.Context, course *models.Course, vector []float32) error

	// UpsertChunks stores chunks and their content vectors. Chunks and
	// vectors are parallel slices.
	UpsertChunks(ctx context.Context, chunks []models.Chunk, vectors [][]float32) error

	// QueryCatalog returns the course titles nearest to the query vector.
	QueryCatalog(ctx context.Context, vector []float32, limit int) ([]CatalogMatch, error)

	// QueryContent returns the chunks nearest to the query vector that
	// satisfy the filter.
	QueryContent(ctx context.Context, vector []float32, filter Filter, limit int) ([]ContentMatch, error)

	// CourseTitles lists all stored course titles.
	CourseTitles(ctx context.Context) ([]string, error)

	// GetCourse returns the stored metadata for an exact title, or nil
	// when absent.
	GetCourse(ctx context.Context, title string) (*models.Course, error)

	// Close releases backend resources.
	Close() error
}
