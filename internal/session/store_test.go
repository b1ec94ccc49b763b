// ABOUTME: Tests for the in-memory session store
// ABOUTME: Covers history rendering, truncation, and isolation between sessions

package session

import (
	"strings"
	"testing"

	"github.com/classpilot/classpilot/internal/models"
)

func TestHistory_Rendering(t *testing.T) {
	s := NewMemoryStore(2)
	id := s.Create()

	s.Append(id, models.RoleUser, "What is MCP?")
	s.Append(id, models.RoleAssistant, "A tool protocol.")

	got := s.History(id)
	want := "User: What is MCP?\nAssistant: A tool protocol."
	if got != want {
		t.Errorf("History = %q, want %q", got, want)
	}
}

func TestHistory_UnknownSession(t *testing.T) {
	s := NewMemoryStore(2)
	if got := s.History("missing"); got != "" {
		t.Errorf("History = %q, want empty", got)
	}
}

func TestAppend_TruncatesOldest(t *testing.T) {
	maxHistory := 2
	s := NewMemoryStore(maxHistory)
	id := s.Create()

	// maxHistory+1 full exchanges, one more than the store keeps
	questions := []string{"q1", "q2", "q3"}
	for i, q := range questions {
		s.Append(id, models.RoleUser, q)
		s.Append(id, models.RoleAssistant, "a"+string(rune('1'+i)))
	}

	got := s.History(id)
	lines := strings.Split(got, "\n")
	if len(lines) != 2*maxHistory {
		t.Fatalf("kept %d lines, want %d:\n%s", len(lines), 2*maxHistory, got)
	}
	if strings.Contains(got, "q1") {
		t.Errorf("oldest exchange not dropped:\n%s", got)
	}
	if !strings.Contains(got, "q2") || !strings.Contains(got, "q3") {
		t.Errorf("recent exchanges missing:\n%s", got)
	}
	if lines[0] != "User: q2" {
		t.Errorf("first kept line = %q", lines[0])
	}
}

func TestAppend_ZeroHistory(t *testing.T) {
	s := NewMemoryStore(0)
	id := s.Create()

	s.Append(id, models.RoleUser, "hello")
	if got := s.History(id); got != "" {
		t.Errorf("History = %q, want empty with history disabled", got)
	}
}

func TestAppend_UnknownSessionCreates(t *testing.T) {
	s := NewMemoryStore(2)

	s.Append("adhoc", models.RoleUser, "hi")
	if got := s.History("adhoc"); got != "User: hi" {
		t.Errorf("History = %q", got)
	}
}

func TestClear(t *testing.T) {
	s := NewMemoryStore(2)
	id := s.Create()
	s.Append(id, models.RoleUser, "something")

	s.Clear(id)
	if got := s.History(id); got != "" {
		t.Errorf("History after Clear = %q", got)
	}
}

func TestCreate_UniqueIDs(t *testing.T) {
	s := NewMemoryStore(2)
	a, b := s.Create(), s.Create()
	if a == b {
		t.Error("Create returned duplicate ids")
	}

	s.Append(a, models.RoleUser, "in a")
	if got := s.History(b); got != "" {
		t.Errorf("session b sees session a's history: %q", got)
	}
}
