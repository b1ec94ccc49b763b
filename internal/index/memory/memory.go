// ABOUTME: In-memory vector store for tests and ephemeral runs
// ABOUTME: Brute-force cosine similarity over courses and chunks

package memory

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/classpilot/classpilot/internal/index"
	"github.com/classpilot/classpilot/internal/models"
)

type catalogEntry struct {
	course models.Course
	vector []float32
}

type chunkEntry struct {
	chunk  models.Chunk
	vector []float32
}

// Store keeps everything in process memory. Safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	catalog map[string]catalogEntry
	chunks  map[string]chunkEntry
}

var _ index.Store = (*Store)(nil)

// New returns an empty in-memory store.
func New() *Store {
	return &Store{
		catalog: make(map[string]catalogEntry),
		chunks:  make(map[string]chunkEntry),
	}
}

func (s *Store) UpsertCourse(ctx context.Context, course *models.Course, vector []float32) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog[course.Title] = catalogEntry{course: *course, vector: vector}
	return nil
}

func (s *Store) UpsertChunks(ctx context.Context, chunks []models.Chunk, vectors [][]float32) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range chunks {
		s.chunks[c.ID()] = chunkEntry{chunk: c, vector: vectors[i]}
	}
	return nil
}

func (s *Store) QueryCatalog(ctx context.Context, vector []float32, limit int) ([]index.CatalogMatch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := make([]index.CatalogMatch, 0, len(s.catalog))
	for title, entry := range s.catalog {
		matches = append(matches, index.CatalogMatch{
			Title:    title,
			Distance: 1 - cosineSimilarity(vector, entry.vector),
		})
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].Distance < matches[j].Distance })
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

func (s *Store) QueryContent(ctx context.Context, vector []float32, filter index.Filter, limit int) ([]index.ContentMatch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matches []index.ContentMatch
	for _, entry := range s.chunks {
		c := entry.chunk
		if filter.CourseTitle != "" && c.CourseTitle != filter.CourseTitle {
			continue
		}
		if filter.LessonNumber != nil {
			if c.LessonNumber == nil || *c.LessonNumber != *filter.LessonNumber {
				continue
			}
		}
		matches = append(matches, index.ContentMatch{
			Content: c.Content,
			Meta: models.ChunkMeta{
				CourseTitle:  c.CourseTitle,
				LessonNumber: c.LessonNumber,
				ChunkIndex:   c.ChunkIndex,
			},
			Distance: 1 - cosineSimilarity(vector, entry.vector),
		})
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].Distance < matches[j].Distance })
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

func (s *Store) CourseTitles(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	titles := make([]string, 0, len(s.catalog))
	for title := range s.catalog {
		titles = append(titles, title)
	}
	sort.Strings(titles)
	return titles, nil
}

func (s *Store) GetCourse(ctx context.Context, title string) (*models.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.catalog[title]
	if !ok {
		return nil, nil
	}
	course := entry.course
	return &course, nil
}

func (s *Store) Close() error {
	return nil
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
