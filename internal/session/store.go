// ABOUTME: Conversation session storage with bounded history
// ABOUTME: Default in-memory implementation behind a small interface

package session

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/classpilot/classpilot/internal/models"
)

// Store keeps conversation sessions. History is bounded: each session
// retains at most 2*maxHistory exchanges, oldest dropped first.
type Store interface {
	// Create starts a new session and returns its id.
	Create() string

	// Append records an exchange in a session. Appending to an unknown
	// id creates the session.
	Append(sessionID string, role models.Role, content string)

	// History renders a session's exchanges as "User: ..." and
	// "Assistant: ..." lines joined by newlines. Unknown ids render
	// empty.
	History(sessionID string) string

	// Clear removes a session's exchanges.
	Clear(sessionID string)
}

// MemoryStore implements Store in process memory. Safe for
// concurrent use.
type MemoryStore struct {
	mu         sync.RWMutex
	maxHistory int
	sessions   map[string][]models.Exchange
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates a store keeping 2*maxHistory exchanges per
// session. maxHistory 0 disables history.
func NewMemoryStore(maxHistory int) *MemoryStore {
	return &MemoryStore{
		maxHistory: maxHistory,
		sessions:   make(map[string][]models.Exchange),
	}
}

func (s *MemoryStore) Create() string {
	id := uuid.NewString()
	s.mu.Lock()
	s.sessions[id] = nil
	s.mu.Unlock()
	return id
}

func (s *MemoryStore) Append(sessionID string, role models.Role, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	exchanges := append(s.sessions[sessionID], models.Exchange{Role: role, Content: content})
	if limit := 2 * s.maxHistory; len(exchanges) > limit {
		exchanges = exchanges[len(exchanges)-limit:]
	}
	s.sessions[sessionID] = exchanges
}

func (s *MemoryStore) History(sessionID string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	exchanges := s.sessions[sessionID]
	if len(exchanges) == 0 {
		return ""
	}

	lines := make([]string, 0, len(exchanges))
	for _, e := range exchanges {
		label := "User"
		if e.Role == models.RoleAssistant {
			label = "Assistant"
		}
		lines = append(lines, fmt.Sprintf("%s: %s", label, e.Content))
	}
	return strings.Join(lines, "\n")
}

func (s *MemoryStore) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}
