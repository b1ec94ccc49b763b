// ABOUTME: Qdrant-backed vector store using the REST API
// ABOUTME: Maintains a catalog collection and a content collection with cosine distance

package qdrant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/classpilot/classpilot/internal/index"
	"github.com/classpilot/classpilot/internal/models"
)

// Store is a minimal REST client to Qdrant. It assumes cosine distance
// and creates both collections if missing.
type Store struct {
	url     string
	apiKey  string
	catalog string
	content string
	client  *http.Client
}

var _ index.Store = (*Store)(nil)

type Config struct {
	URL     string
	APIKey  string
	Prefix  string
	Timeout time.Duration
}

// NewStore creates a Qdrant client. Collections are named
// "<prefix>_catalog" and "<prefix>_content".
func NewStore(cfg Config) *Store {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	prefix := cfg.Prefix
	if prefix == "" {
		prefix = "classpilot"
	}
	return &Store{
		url:     cfg.URL,
		apiKey:  cfg.APIKey,
		catalog: prefix + "_catalog",
		content: prefix + "_content",
		client:  &http.Client{Timeout: timeout},
	}
}

// Init creates the collections for the given vector dimension.
// Qdrant returns 200 when a collection already exists with the same
// schema, so this is safe to call on every start.
func (s *Store) Init(ctx context.Context, dimension int) error {
	if dimension <= 0 {
		return errors.New("invalid dimension")
	}
	body := map[string]any{
		"vectors": map[string]any{
			"size":     dimension,
			"distance": "Cosine",
		},
	}
	for _, coll := range []string{s.catalog, s.content} {
		if err := s.putJSON(ctx, fmt.Sprintf("%s/collections/%s", s.url, coll), body, nil); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) UpsertCourse(ctx context.Context, course *models.Course, vector []float32) error {
	lessons, err := json.Marshal(course.Lessons)
	if err != nil {
		return fmt.Errorf("marshaling lessons: %w", err)
	}
	body := map[string]any{
		"points": []map[string]any{{
			"id":     pointID("course:" + course.Title),
			"vector": vector,
			"payload": map[string]any{
				"title":       course.Title,
				"course_link": course.CourseLink,
				"instructor":  course.Instructor,
				"lessons":     string(lessons),
			},
		}},
	}
	return s.putJSON(ctx, fmt.Sprintf("%s/collections/%s/points?wait=true", s.url, s.catalog), body, nil)
}

func (s *Store) UpsertChunks(ctx context.Context, chunks []models.Chunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return errors.New("chunks and vectors length mismatch")
	}
	points := make([]map[string]any, len(chunks))
	for i, c := range chunks {
		payload := map[string]any{
			"course_title": c.CourseTitle,
			"chunk_index":  c.ChunkIndex,
			"content":      c.Content,
		}
		if c.LessonNumber != nil {
			payload["lesson_number"] = *c.LessonNumber
		}
		points[i] = map[string]any{
			"id":      pointID(c.ID()),
			"vector":  vectors[i],
			"payload": payload,
		}
	}
	body := map[string]any{"points": points}
	return s.putJSON(ctx, fmt.Sprintf("%s/collections/%s/points?wait=true", s.url, s.content), body, nil)
}

func (s *Store) QueryCatalog(ctx context.Context, vector []float32, limit int) ([]index.CatalogMatch, error) {
	if limit <= 0 {
		limit = 5
	}
	req := map[string]any{
		"vector":       vector,
		"limit":        limit,
		"with_payload": true,
	}
	var resp searchResponse
	if err := s.postJSON(ctx, fmt.Sprintf("%s/collections/%s/points/search", s.url, s.catalog), req, &resp); err != nil {
		return nil, err
	}

	matches := make([]index.CatalogMatch, 0, len(resp.Result))
	for _, r := range resp.Result {
		title, _ := r.Payload["title"].(string)
		// Qdrant reports cosine similarity as score
		matches = append(matches, index.CatalogMatch{Title: title, Distance: 1 - r.Score})
	}
	return matches, nil
}

func (s *Store) QueryContent(ctx context.Context, vector []float32, filter index.Filter, limit int) ([]index.ContentMatch, error) {
	if limit <= 0 {
		limit = 5
	}
	req := map[string]any{
		"vector":       vector,
		"limit":        limit,
		"with_payload": true,
	}
	var must []map[string]any
	if filter.CourseTitle != "" {
		must = append(must, map[string]any{
			"key":   "course_title",
			"match": map[string]any{"value": filter.CourseTitle},
		})
	}
	if filter.LessonNumber != nil {
		must = append(must, map[string]any{
			"key":   "lesson_number",
			"match": map[string]any{"value": *filter.LessonNumber},
		})
	}
	if len(must) > 0 {
		req["filter"] = map[string]any{"must": must}
	}

	var resp searchResponse
	if err := s.postJSON(ctx, fmt.Sprintf("%s/collections/%s/points/search", s.url, s.content), req, &resp); err != nil {
		return nil, err
	}

	matches := make([]index.ContentMatch, 0, len(resp.Result))
	for _, r := range resp.Result {
		m := index.ContentMatch{Distance: 1 - r.Score}
		if v, ok := r.Payload["content"].(string); ok {
			m.Content = v
		}
		if v, ok := r.Payload["course_title"].(string); ok {
			m.Meta.CourseTitle = v
		}
		if v, ok := r.Payload["chunk_index"].(float64); ok {
			m.Meta.ChunkIndex = int(v)
		}
		if v, ok := r.Payload["lesson_number"].(float64); ok {
			n := int(v)
			m.Meta.LessonNumber = &n
		}
		matches = append(matches, m)
	}
	return matches, nil
}

func (s *Store) CourseTitles(ctx context.Context) ([]string, error) {
	req := map[string]any{
		"limit":        1000,
		"with_payload": []string{"title"},
	}
	var resp scrollResponse
	if err := s.postJSON(ctx, fmt.Sprintf("%s/collections/%s/points/scroll", s.url, s.catalog), req, &resp); err != nil {
		return nil, err
	}
	titles := make([]string, 0, len(resp.Result.Points))
	for _, p := range resp.Result.Points {
		if title, ok := p.Payload["title"].(string); ok {
			titles = append(titles, title)
		}
	}
	return titles, nil
}

func (s *Store) GetCourse(ctx context.Context, title string) (*models.Course, error) {
	req := map[string]any{
		"limit":        1,
		"with_payload": true,
		"filter": map[string]any{
			"must": []map[string]any{{
				"key":   "title",
				"match": map[string]any{"value": title},
			}},
		},
	}
	var resp scrollResponse
	if err := s.postJSON(ctx, fmt.Sprintf("%s/collections/%s/points/scroll", s.url, s.catalog), req, &resp); err != nil {
		return nil, err
	}
	if len(resp.Result.Points) == 0 {
		return nil, nil
	}

	payload := resp.Result.Points[0].Payload
	course := &models.Course{Title: title}
	if v, ok := payload["course_link"].(string); ok {
		course.CourseLink = v
	}
	if v, ok := payload["instructor"].(string); ok {
		course.Instructor = v
	}
	if v, ok := payload["lessons"].(string); ok && v != "" {
		if err := json.Unmarshal([]byte(v), &course.Lessons); err != nil {
			return nil, fmt.Errorf("unmarshaling lessons: %w", err)
		}
	}
	return course, nil
}

func (s *Store) Close() error {
	s.client.CloseIdleConnections()
	return nil
}

type searchResponse struct {
	Result []struct {
		Score   float64        `json:"score"`
		Payload map[string]any `json:"payload"`
	} `json:"result"`
}

type scrollResponse struct {
	Result struct {
		Points []struct {
			Payload map[string]any `json:"payload"`
		} `json:"points"`
	} `json:"result"`
}

// pointID derives a stable UUID for a logical key. Qdrant only accepts
// UUIDs or unsigned integers as point ids.
func pointID(key string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(key)).String()
}

func (s *Store) putJSON(ctx context.Context, url string, body, out any) error {
	return s.doJSON(ctx, http.MethodPut, url, body, out)
}

func (s *Store) postJSON(ctx context.Context, url string, body, out any) error {
	return s.doJSON(ctx, http.MethodPost, url, body, out)
}

func (s *Store) doJSON(ctx context.Context, method, url string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("api-key", s.apiKey)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("qdrant %s %s failed: %s", method, url, resp.Status)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
