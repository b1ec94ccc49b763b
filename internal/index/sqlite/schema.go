// ABOUTME: SQLite schema for course catalog and chunk vector storage
// ABOUTME: Creates tables and indexes for catalog and content collections
package sqlite

// Schema contains all SQL statements for database initialization
const Schema = `
-- Course catalog (one row per course, keyed by title)
CREATE TABLE IF NOT EXISTS courses (
    title TEXT PRIMARY KEY,
    course_link TEXT,
    instructor TEXT,
    lessons TEXT NOT NULL,
    vector BLOB NOT NULL,
    updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Transcript chunks with content vectors
CREATE TABLE IF NOT EXISTS chunks (
    id TEXT PRIMARY KEY,
    course_title TEXT NOT NULL REFERENCES courses(title) ON DELETE CASCADE,
    lesson_number INTEGER,
    chunk_index INTEGER NOT NULL,
    content TEXT NOT NULL,
    vector BLOB NOT NULL,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_chunks_course ON chunks(course_title);
CREATE INDEX IF NOT EXISTS idx_chunks_course_lesson ON chunks(course_title, lesson_number);
`
