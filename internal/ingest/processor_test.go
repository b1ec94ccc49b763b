// ABOUTME: Tests for transcript parsing and sentence-aligned chunking
// ABOUTME: Verifies header parsing, chunk invariants, overlap, and error cases

package ingest

import (
	"errors"
	"strings"
	"testing"
)

const sampleDocument = `Course: Python Testing Course
Link: https://example.com/course
Instructor: Test Instructor

Lesson 1: Introduction to Testing
Link: https://example.com/course/lesson1

This is the introduction to testing. Testing is essential for software quality.
We will cover various testing approaches and methodologies.

Lesson 2: Unit Testing Basics
Link: https://example.com/course/lesson2

Unit testing focuses on testing individual components in isolation.
Each test should be independent and fast.
`

func TestProcess_Header(t *testing.T) {
	p := NewProcessor(800, 100)

	course, chunks, err := p.Process(sampleDocument)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if course.Title != "Python Testing Course" {
		t.Errorf("Title = %q, want Python Testing Course", course.Title)
	}
	if course.CourseLink != "https://example.com/course" {
		t.Errorf("CourseLink = %q", course.CourseLink)
	}
	if course.Instructor != "Test Instructor" {
		t.Errorf("Instructor = %q", course.Instructor)
	}
	if len(course.Lessons) != 2 {
		t.Fatalf("len(Lessons) = %d, want 2", len(course.Lessons))
	}
	if course.Lessons[0].Number != 1 || course.Lessons[0].Title != "Introduction to Testing" {
		t.Errorf("Lessons[0] = %+v", course.Lessons[0])
	}
	if course.Lessons[1].Link != "https://example.com/course/lesson2" {
		t.Errorf("Lessons[1].Link = %q", course.Lessons[1].Link)
	}
	if len(chunks) == 0 {
		t.Fatal("expected chunks")
	}
}

func TestProcess_ChunkInvariants(t *testing.T) {
	p := NewProcessor(800, 100)

	course, chunks, err := p.Process(sampleDocument)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	perLesson := make(map[int]int)
	for i, c := range chunks {
		if c.CourseTitle != course.Title {
			t.Errorf("chunk %d: CourseTitle = %q, want %q", i, c.CourseTitle, course.Title)
		}
		if c.ChunkIndex != i {
			t.Errorf("chunk %d: ChunkIndex = %d, want monotonic", i, c.ChunkIndex)
		}
		if c.LessonNumber == nil {
			t.Errorf("chunk %d: expected lesson number", i)
			continue
		}
		perLesson[*c.LessonNumber]++
	}

	total := 0
	for _, n := range perLesson {
		total += n
	}
	if total != len(chunks) {
		t.Errorf("sum of per-lesson chunks = %d, want %d", total, len(chunks))
	}
	if perLesson[1] == 0 || perLesson[2] == 0 {
		t.Errorf("expected chunks for lessons 1 and 2, got %v", perLesson)
	}
}

func TestProcess_ChunkContextPrefix(t *testing.T) {
	p := NewProcessor(800, 100)

	_, chunks, err := p.Process(sampleDocument)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	for i, c := range chunks {
		want := "Course Python Testing Course Lesson "
		if !strings.HasPrefix(c.Content, want) {
			t.Errorf("chunk %d content = %q, want prefix %q", i, c.Content, want)
		}
	}
}

func TestProcess_MissingTitle(t *testing.T) {
	p := NewProcessor(800, 100)

	tests := []struct {
		name string
		doc  string
	}{
		{"empty document", ""},
		{"no header at all", "just some text without a header"},
		{"link but no course", "Link: https://example.com\n\nLesson 1: Intro\nbody"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := p.Process(tt.doc)
			if !errors.Is(err, ErrMalformedDocument) {
				t.Errorf("Process() error = %v, want ErrMalformedDocument", err)
			}
		})
	}
}

func TestProcess_LessonWithoutBody(t *testing.T) {
	p := NewProcessor(800, 100)

	doc := "Course: Empty Course\n\nLesson 1: Nothing Here\n\nLesson 2: Something\n\nOne real sentence."
	course, chunks, err := p.Process(doc)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if len(course.Lessons) != 2 {
		t.Fatalf("len(Lessons) = %d, want 2", len(course.Lessons))
	}
	for _, c := range chunks {
		if c.LessonNumber == nil || *c.LessonNumber != 2 {
			t.Errorf("chunk %+v: expected all chunks from lesson 2", c)
		}
	}
	if len(chunks) != 1 {
		t.Errorf("len(chunks) = %d, want 1", len(chunks))
	}
}

func TestChunkText_SizeBudget(t *testing.T) {
	p := NewProcessor(100, 20)

	// 12 sentences of ~30 characters each
	var b strings.Builder
	for i := 0; i < 12; i++ {
		b.WriteString("This sentence is number ")
		b.WriteString(strings.Repeat("x", 5))
		b.WriteString(". ")
	}

	pieces := p.chunkText(b.String())
	if len(pieces) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(pieces))
	}
	for i, piece := range pieces {
		if len(piece) > 100 {
			t.Errorf("chunk %d length = %d, exceeds budget", i, len(piece))
		}
	}
}

func TestChunkText_OversizedSentenceEmittedWhole(t *testing.T) {
	p := NewProcessor(50, 10)

	long := strings.Repeat("word ", 30) + "end."
	pieces := p.chunkText(long)

	if len(pieces) != 1 {
		t.Fatalf("expected single oversized chunk, got %d", len(pieces))
	}
	if len(pieces[0]) <= 50 {
		t.Errorf("oversized sentence should be emitted whole, got length %d", len(pieces[0]))
	}
}

func TestChunkText_SentenceAlignedOverlap(t *testing.T) {
	p := NewProcessor(80, 40)

	text := "Alpha sentence one here. Beta sentence two here. Gamma sentence three here. Delta sentence four here."
	pieces := p.chunkText(text)
	if len(pieces) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(pieces))
	}

	for i := 1; i < len(pieces); i++ {
		prev := splitSentences(pieces[i-1])
		cur := splitSentences(pieces[i])
		if len(prev) == 0 || len(cur) == 0 {
			t.Fatal("unexpected empty chunk")
		}
		// The current chunk must start with a trailing sentence of the
		// previous chunk.
		shared := false
		for _, s := range prev {
			if s == cur[0] {
				shared = true
				break
			}
		}
		if !shared {
			t.Errorf("chunks %d and %d share no sentence: %q / %q", i-1, i, pieces[i-1], pieces[i])
		}
	}
}

func TestProcess_BodyBeforeFirstLesson(t *testing.T) {
	p := NewProcessor(800, 100)

	doc := "Course: Intro Course\n\nWelcome text with no lesson marker. It still gets indexed.\n\nLesson 1: Start\n\nLesson one body here."
	_, chunks, err := p.Process(doc)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if len(chunks) != 2 {
		t.Fatalf("len(chunks) = %d, want 2", len(chunks))
	}
	if chunks[0].LessonNumber != nil {
		t.Errorf("preamble chunk should have nil lesson number")
	}
	if !strings.HasPrefix(chunks[0].Content, "Course Intro Course content: ") {
		t.Errorf("preamble prefix = %q", chunks[0].Content)
	}
	if chunks[1].LessonNumber == nil || *chunks[1].LessonNumber != 1 {
		t.Errorf("lesson chunk metadata = %+v", chunks[1])
	}
}
