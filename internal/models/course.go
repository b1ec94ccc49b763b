// ABOUTME: Course and Lesson metadata parsed from transcript headers
// ABOUTME: Courses are identified by title throughout the system
package models

// Lesson is one numbered section of a course
type Lesson struct {
	Number int    `json:"lesson_number"`
	Title  string `json:"lesson_title"`
	Link   string `json:"lesson_link,omitempty"`
}

// Course holds the metadata of one course transcript
type Course struct {
	Title      string   `json:"title"`
	CourseLink string   `json:"course_link,omitempty"`
	Instructor string   `json:"instructor,omitempty"`
	Lessons    []Lesson `json:"lessons"`
}

// LessonLink returns the link for a lesson number, or "" if the lesson
// is unknown or has no link
func (c *Course) LessonLink(number int) string {
	for _, l := range c.Lessons {
		if l.Number == number {
			return l.Link
		}
	}
	return ""
}
