// ABOUTME: Turn is one message in a conversation's ordered log.
// ABOUTME: Role, content, and lifecycle state live here.

package chat

import (
	"time"

	"github.com/bankdesk/console/internal/intent"
)

// Role identifies who authored a turn.
type Role string

const (
	RoleUser   Role = "user"
	RoleAgent  Role = "agent"
	RoleSystem Role = "system"
)

// Lifecycle tracks whether an outbound turn has been confirmed. A failed
// turn is removed from the log rather than kept in a failed state.
type Lifecycle string

const (
	LifecyclePending   Lifecycle = "pending"
	LifecycleCommitted Lifecycle = "committed"
)

// Turn is one message in a conversation. RawContent and Role never change
// after creation; Intent is resolved once for agent turns and is nil for
// user and system turns.
type Turn struct {
	ID             string
	Role           Role
	RawContent     string
	Intent         *intent.Classification
	ConversationID string
	CreatedAt      time.Time
	Lifecycle      Lifecycle
}
