// ABOUTME: Search result and citation types returned by the retrieval index
// ABOUTME: Backend failures travel in SearchResults.Err, never as Go errors
package models

// ChunkMeta is the metadata stored alongside each content document
type ChunkMeta struct {
	CourseTitle  string `json:"course_title"`
	LessonNumber *int   `json:"lesson_number,omitempty"`
	ChunkIndex   int    `json:"chunk_index"`
}

// SearchResults holds ranked matches from a content query. An empty
// result with Err == "" means "no matches", which is distinct from a
// backend failure (Err != "").
type SearchResults struct {
	Documents []string    `json:"documents"`
	Metadata  []ChunkMeta `json:"metadata"`
	Distances []float64   `json:"distances"`
	Err       string      `json:"error,omitempty"`
}

// IsEmpty reports whether the results carry no documents
func (r *SearchResults) IsEmpty() bool {
	return len(r.Documents) == 0
}

// Citation points a user at the course material behind an answer
type Citation struct {
	Label string `json:"text"`
	URL   string `json:"url,omitempty"`
}
