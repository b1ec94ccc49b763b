// ABOUTME: Orchestrates ingestion, retrieval, generation, and sessions
// ABOUTME: The single entry point the CLI and MCP surfaces call into

package rag

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/classpilot/classpilot/internal/generator"
	"github.com/classpilot/classpilot/internal/index"
	"github.com/classpilot/classpilot/internal/ingest"
	"github.com/classpilot/classpilot/internal/models"
	"github.com/classpilot/classpilot/internal/session"
)

// Answer is a generated response with its citations and the session it
// belongs to.
type Answer struct {
	Text      string
	Citations []models.Citation
	SessionID string
}

// Analytics summarizes the indexed corpus.
type Analytics struct {
	TotalCourses int      `json:"total_courses"`
	CourseTitles []string `json:"course_titles"`
}

// System wires the pipeline together.
type System struct {
	processor *ingest.Processor
	index     *index.Index
	generator *generator.Generator
	sessions  session.Store
	logger    *slog.Logger
}

// New creates a System. The session store is injected so callers can
// swap persistence without touching the pipeline.
func New(processor *ingest.Processor, ix *index.Index, gen *generator.Generator, sessions session.Store, logger *slog.Logger) *System {
	if logger == nil {
		logger = slog.Default()
	}
	return &System{
		processor: processor,
		index:     ix,
		generator: gen,
		sessions:  sessions,
		logger:    logger,
	}
}

// Answer responds to a query. An empty sessionID starts a new session;
// the returned Answer carries the id to continue it.
func (s *System) Answer(ctx context.Context, query, sessionID string) (*Answer, error) {
	if sessionID == "" {
		sessionID = s.sessions.Create()
	}
	history := s.sessions.History(sessionID)

	prompt := fmt.Sprintf("Answer this question about course materials: %s", query)
	result, err := s.generator.Generate(ctx, prompt, history)
	if err != nil {
		return nil, err
	}

	s.sessions.Append(sessionID, models.RoleUser, query)
	s.sessions.Append(sessionID, models.RoleAssistant, result.Text)

	return &Answer{
		Text:      result.Text,
		Citations: result.Citations,
		SessionID: sessionID,
	}, nil
}

// AddCourseDocument ingests a single transcript file. It returns the
// parsed course and the number of chunks indexed.
func (s *System) AddCourseDocument(ctx context.Context, path string) (*models.Course, int, error) {
	course, chunks, err := s.processor.ProcessFile(path)
	if err != nil {
		return nil, 0, err
	}
	if err := s.index.AddCourse(ctx, course, chunks); err != nil {
		return nil, 0, err
	}
	return course, len(chunks), nil
}

// AddCourseFolder ingests every .txt transcript in a directory.
// Courses already in the index are skipped, so re-running over the same
// folder is idempotent. Malformed documents are logged and skipped.
// Returns the number of courses and chunks added.
func (s *System) AddCourseFolder(ctx context.Context, dir string) (int, int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, 0, fmt.Errorf("reading course folder: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".txt") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	coursesAdded, chunksAdded := 0, 0
	for _, name := range names {
		path := filepath.Join(dir, name)

		course, chunks, err := s.processor.ProcessFile(path)
		if err != nil {
			if errors.Is(err, ingest.ErrMalformedDocument) {
				s.logger.Warn("skipping malformed document", "file", name, "error", err)
				continue
			}
			return coursesAdded, chunksAdded, fmt.Errorf("processing %s: %w", name, err)
		}

		exists, err := s.index.HasCourse(ctx, course.Title)
		if err != nil {
			return coursesAdded, chunksAdded, fmt.Errorf("checking %q: %w", course.Title, err)
		}
		if exists {
			s.logger.Debug("course already indexed", "course", course.Title)
			continue
		}

		if err := s.index.AddCourse(ctx, course, chunks); err != nil {
			return coursesAdded, chunksAdded, fmt.Errorf("indexing %q: %w", course.Title, err)
		}
		coursesAdded++
		chunksAdded += len(chunks)
		s.logger.Info("course added", "course", course.Title, "chunks", len(chunks))
	}

	return coursesAdded, chunksAdded, nil
}

// Analytics reports what the index holds.
func (s *System) Analytics(ctx context.Context) (*Analytics, error) {
	titles, err := s.index.CourseTitles(ctx)
	if err != nil {
		return nil, err
	}
	return &Analytics{TotalCourses: len(titles), CourseTitles: titles}, nil
}

// Index exposes the retrieval index for direct tool access.
func (s *System) Index() *index.Index {
	return s.index
}

// ClearSession drops a session's history.
func (s *System) ClearSession(sessionID string) {
	s.sessions.Clear(sessionID)
}

// Close releases index resources.
func (s *System) Close() error {
	return s.index.Close()
}
