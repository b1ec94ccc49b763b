// ABOUTME: Processor parses course transcripts into metadata-tagged chunks
// ABOUTME: Splits lesson bodies on sentence boundaries with sentence-aligned overlap
package ingest

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/classpilot/classpilot/internal/models"
)

// ErrMalformedDocument signals a transcript whose header block is unusable
var ErrMalformedDocument = errors.New("malformed course document")

var (
	lessonMarker = regexp.MustCompile(`^Lesson\s+(\d+):\s*(.*)$`)
	sentenceExpr = regexp.MustCompile(`[^.!?]+[.!?]+["')\]]*\s*|[^.!?]+$`)
)

// Processor turns one raw course document into a Course and its Chunks
type Processor struct {
	chunkSize    int
	chunkOverlap int
}

// NewProcessor creates a Processor with the given chunk budget and overlap,
// both measured in characters of the pre-context chunk text.
func NewProcessor(chunkSize, chunkOverlap int) *Processor {
	if chunkSize <= 0 {
		chunkSize = 800
	}
	if chunkOverlap < 0 || chunkOverlap >= chunkSize {
		chunkOverlap = 0
	}
	return &Processor{chunkSize: chunkSize, chunkOverlap: chunkOverlap}
}

// ProcessFile reads and processes a transcript file
func (p *Processor) ProcessFile(path string) (*models.Course, []models.Chunk, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", path, err)
	}
	course, chunks, err := p.Process(string(data))
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return course, chunks, nil
}

// Process parses a transcript into a Course and its content chunks.
// The header block (Course:, optional Link:, optional Instructor:) is
// followed by lesson sections introduced by "Lesson N: Title" markers.
// A lesson with no body yields zero chunks without failing the document.
func (p *Processor) Process(raw string) (*models.Course, []models.Chunk, error) {
	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")

	course, rest, err := parseHeader(lines)
	if err != nil {
		return nil, nil, err
	}

	var chunks []models.Chunk
	chunkIndex := 0

	appendChunks := func(body []string, lessonNumber *int) {
		text := strings.TrimSpace(strings.Join(body, "\n"))
		if text == "" {
			return
		}
		for _, piece := range p.chunkText(text) {
			chunks = append(chunks, models.Chunk{
				Content:      chunkContext(course.Title, lessonNumber) + piece,
				CourseTitle:  course.Title,
				LessonNumber: lessonNumber,
				ChunkIndex:   chunkIndex,
			})
			chunkIndex++
		}
	}

	var body []string
	var current *models.Lesson

	flush := func() {
		if current == nil {
			// Text before the first lesson marker is indexed without a
			// lesson number.
			appendChunks(body, nil)
		} else {
			n := current.Number
			appendChunks(body, &n)
			course.Lessons = append(course.Lessons, *current)
		}
		body = nil
	}

	for i := 0; i < len(rest); i++ {
		line := rest[i]
		if m := lessonMarker.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			flush()
			number, _ := strconv.Atoi(m[1])
			current = &models.Lesson{Number: number, Title: strings.TrimSpace(m[2])}
			// Optional link line directly after the marker
			if i+1 < len(rest) {
				if link, ok := parseLinkLine(rest[i+1]); ok {
					current.Link = link
					i++
				}
			}
			continue
		}
		body = append(body, line)
	}
	flush()

	return course, chunks, nil
}

// parseHeader consumes the leading Course/Link/Instructor block and
// returns the remaining lines. The course title is required.
func parseHeader(lines []string) (*models.Course, []string, error) {
	course := &models.Course{}
	i := 0
	for ; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			if course.Title != "" {
				i++
				break
			}
			continue
		}
		if lessonMarker.MatchString(line) {
			break
		}
		switch {
		case strings.HasPrefix(line, "Course:"):
			course.Title = strings.TrimSpace(strings.TrimPrefix(line, "Course:"))
		case strings.HasPrefix(line, "Link:"):
			course.CourseLink = strings.TrimSpace(strings.TrimPrefix(line, "Link:"))
		case strings.HasPrefix(line, "Instructor:"):
			course.Instructor = strings.TrimSpace(strings.TrimPrefix(line, "Instructor:"))
		default:
			// Unknown header line ends the header block
			if course.Title != "" {
				goto done
			}
			return nil, nil, fmt.Errorf("%w: missing 'Course:' title line", ErrMalformedDocument)
		}
	}
done:
	if course.Title == "" {
		return nil, nil, fmt.Errorf("%w: missing 'Course:' title line", ErrMalformedDocument)
	}
	return course, lines[i:], nil
}

// parseLinkLine recognizes "Link: <url>" and "Lesson Link: <url>" lines
func parseLinkLine(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	for _, prefix := range []string{"Lesson Link:", "Link:"} {
		if strings.HasPrefix(trimmed, prefix) {
			return strings.TrimSpace(strings.TrimPrefix(trimmed, prefix)), true
		}
	}
	return "", false
}

// chunkContext builds the retrieval prefix injected into every chunk
func chunkContext(courseTitle string, lessonNumber *int) string {
	if lessonNumber != nil {
		return fmt.Sprintf("Course %s Lesson %d content: ", courseTitle, *lessonNumber)
	}
	return fmt.Sprintf("Course %s content: ", courseTitle)
}

// chunkText splits text into chunks no longer than chunkSize, except when
// a single sentence alone exceeds the budget (emitted whole). Consecutive
// chunks re-include trailing sentences of their predecessor up to the
// overlap budget, so overlap never cuts a sentence in half.
func (p *Processor) chunkText(text string) []string {
	sentences := splitSentences(text)
	if len(sentences) == 0 {
		return nil
	}

	var chunks []string
	i := 0
	for i < len(sentences) {
		var current []string
		length := 0
		j := i
		for j < len(sentences) {
			add := len(sentences[j])
			if length > 0 {
				add++ // joining space
			}
			if length+add > p.chunkSize && len(current) > 0 {
				break
			}
			current = append(current, sentences[j])
			length += add
			j++
		}
		chunks = append(chunks, strings.Join(current, " "))
		if j >= len(sentences) {
			break
		}

		// Walk back over the tail of this chunk to build the overlap
		next := j
		budget := 0
		for next > i+1 {
			add := len(sentences[next-1])
			if budget > 0 {
				add++
			}
			if budget+add > p.chunkOverlap {
				break
			}
			budget += add
			next--
		}
		i = next
	}
	return chunks
}

// splitSentences breaks text on sentence-ending punctuation, folding
// internal whitespace so chunk lengths are stable.
func splitSentences(text string) []string {
	collapsed := strings.Join(strings.Fields(text), " ")
	if collapsed == "" {
		return nil
	}
	matches := sentenceExpr.FindAllString(collapsed, -1)
	var sentences []string
	for _, m := range matches {
		if s := strings.TrimSpace(m); s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}
