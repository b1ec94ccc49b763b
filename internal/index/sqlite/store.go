// ABOUTME: SQLite-backed vector store for the retrieval index
// ABOUTME: Vectors are float32 BLOBs scored with in-Go cosine similarity
package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/classpilot/classpilot/internal/index"
	"github.com/classpilot/classpilot/internal/models"
)

// Store implements index.Store on top of a SQLite database. Similarity
// is computed in Go after loading candidate vectors, which is fine for
// the corpus sizes a course index sees.
type Store struct {
	db *DB
}

var _ index.Store = (*Store)(nil)

// NewStore wraps an open database.
func NewStore(db *DB) *Store {
	return &Store{db: db}
}

func (s *Store) UpsertCourse(ctx context.Context, course *models.Course, vector []float32) error {
	lessons, err := json.Marshal(course.Lessons)
	if err != nil {
		return fmt.Errorf("failed to marshal lessons: %w", err)
	}

	_, err = s.db.conn.ExecContext(ctx, `
		INSERT INTO courses (title, course_link, instructor, lessons, vector, updated_at)
		VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(title) DO UPDATE SET
			course_link = excluded.course_link,
			instructor = excluded.instructor,
			lessons = excluded.lessons,
			vector = excluded.vector,
			updated_at = CURRENT_TIMESTAMP`,
		course.Title, course.CourseLink, course.Instructor, string(lessons), vectorToBlob(vector))
	if err != nil {
		return fmt.Errorf("failed to upsert course: %w", err)
	}
	return nil
}

func (s *Store) UpsertChunks(ctx context.Context, chunks []models.Chunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return fmt.Errorf("chunk/vector count mismatch: %d != %d", len(chunks), len(vectors))
	}

	tx, err := s.db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks (id, course_title, lesson_number, chunk_index, content, vector)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			lesson_number = excluded.lesson_number,
			content = excluded.content,
			vector = excluded.vector`)
	if err != nil {
		return fmt.Errorf("failed to prepare chunk insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, c := range chunks {
		var lesson sql.NullInt64
		if c.LessonNumber != nil {
			lesson = sql.NullInt64{Int64: int64(*c.LessonNumber), Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, c.ID(), c.CourseTitle, lesson, c.ChunkIndex, c.Content, vectorToBlob(vectors[i])); err != nil {
			return fmt.Errorf("failed to insert chunk %s: %w", c.ID(), err)
		}
	}

	return tx.Commit()
}

func (s *Store) QueryCatalog(ctx context.Context, vector []float32, limit int) ([]index.CatalogMatch, error) {
	rows, err := s.db.conn.QueryContext(ctx, `SELECT title, vector FROM courses`)
	if err != nil {
		return nil, fmt.Errorf("failed to query catalog: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var matches []index.CatalogMatch
	for rows.Next() {
		var title string
		var blob []byte
		if err := rows.Scan(&title, &blob); err != nil {
			return nil, fmt.Errorf("failed to scan catalog row: %w", err)
		}
		matches = append(matches, index.CatalogMatch{
			Title:    title,
			Distance: 1 - cosineSimilarity(vector, blobToVector(blob)),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.Slice(matches, func(i, j int) bool { return matches[i].Distance < matches[j].Distance })
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

func (s *Store) QueryContent(ctx context.Context, vector []float32, filter index.Filter, limit int) ([]index.ContentMatch, error) {
	query := `SELECT content, course_title, lesson_number, chunk_index, vector FROM chunks`
	var args []any
	var where []string
	if filter.CourseTitle != "" {
		where = append(where, "course_title = ?")
		args = append(args, filter.CourseTitle)
	}
	if filter.LessonNumber != nil {
		where = append(where, "lesson_number = ?")
		args = append(args, *filter.LessonNumber)
	}
	for i, clause := range where {
		if i == 0 {
			query += " WHERE " + clause
		} else {
			query += " AND " + clause
		}
	}

	rows, err := s.db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query chunks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var matches []index.ContentMatch
	for rows.Next() {
		var content, courseTitle string
		var lesson sql.NullInt64
		var chunkIndex int
		var blob []byte
		if err := rows.Scan(&content, &courseTitle, &lesson, &chunkIndex, &blob); err != nil {
			return nil, fmt.Errorf("failed to scan chunk row: %w", err)
		}
		meta := models.ChunkMeta{CourseTitle: courseTitle, ChunkIndex: chunkIndex}
		if lesson.Valid {
			n := int(lesson.Int64)
			meta.LessonNumber = &n
		}
		matches = append(matches, index.ContentMatch{
			Content:  content,
			Meta:     meta,
			Distance: 1 - cosineSimilarity(vector, blobToVector(blob)),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.Slice(matches, func(i, j int) bool { return matches[i].Distance < matches[j].Distance })
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

func (s *Store) CourseTitles(ctx context.Context) ([]string, error) {
	rows, err := s.db.conn.QueryContext(ctx, `SELECT title FROM courses ORDER BY title`)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var titles []string
	for rows.Next() {
		var title string
		if err := rows.Scan(&title); err != nil {
			return nil, err
		}
		titles = append(titles, title)
	}
	return titles, rows.Err()
}

func (s *Store) GetCourse(ctx context.Context, title string) (*models.Course, error) {
	row := s.db.conn.QueryRowContext(ctx,
		`SELECT title, course_link, instructor, lessons FROM courses WHERE title = ?`, title)

	var course models.Course
	var lessons string
	err := row.Scan(&course.Title, &course.CourseLink, &course.Instructor, &lessons)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load course: %w", err)
	}
	if err := json.Unmarshal([]byte(lessons), &course.Lessons); err != nil {
		return nil, fmt.Errorf("failed to unmarshal lessons: %w", err)
	}
	return &course, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// vectorToBlob converts a float32 vector to a little-endian binary blob
func vectorToBlob(vector []float32) []byte {
	blob := make([]byte, len(vector)*4)
	for i, v := range vector {
		binary.LittleEndian.PutUint32(blob[i*4:], math.Float32bits(v))
	}
	return blob
}

// blobToVector converts a binary blob back to a float32 slice
func blobToVector(blob []byte) []float32 {
	count := len(blob) / 4
	vector := make([]float32, count)
	for i := 0; i < count; i++ {
		vector[i] = math.Float32frombits(binary.LittleEndian.Uint32(blob[i*4:]))
	}
	return vector
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
