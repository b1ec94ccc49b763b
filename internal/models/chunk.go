// ABOUTME: Chunk is a metadata-tagged text fragment produced by ingestion
// ABOUTME: Chunk IDs are "<course title>:<chunk index>", unique within a course
package models

import "fmt"

// Chunk is one indexable piece of a course transcript
type Chunk struct {
	Content      string `json:"content"`
	CourseTitle  string `json:"course_title"`
	LessonNumber *int   `json:"lesson_number,omitempty"`
	ChunkIndex   int    `json:"chunk_index"`
}

// ID returns the chunk's identity key within the content collection
func (c *Chunk) ID() string {
	return fmt.Sprintf("%s:%d", c.CourseTitle, c.ChunkIndex)
}
