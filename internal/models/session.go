// ABOUTME: Conversation exchange types for session history
// ABOUTME: Sessions hold at most 2 x MaxHistory exchanges, oldest evicted first
package models

// Role identifies the author of a conversation exchange
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Exchange is one message in a session's history
type Exchange struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}
