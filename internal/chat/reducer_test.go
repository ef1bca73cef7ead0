// ABOUTME: Tests for the turn-log transition function.
// ABOUTME: Verifies append/commit/remove semantics and input immutability.

package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyLogEvent_Append(t *testing.T) {
	log := []Turn{{ID: "a", Role: RoleUser}}
	next := applyLogEvent(log, logEvent{kind: eventAppend, turn: Turn{ID: "b", Role: RoleAgent}})

	require.Len(t, next, 2)
	assert.Equal(t, "b", next[1].ID)
	assert.Len(t, log, 1, "input log must not be mutated")
}

func TestApplyLogEvent_Commit(t *testing.T) {
	log := []Turn{
		{ID: "a", Role: RoleUser, Lifecycle: LifecyclePending},
		{ID: "b", Role: RoleAgent, Lifecycle: LifecycleCommitted},
	}
	next := applyLogEvent(log, logEvent{kind: eventCommit, turnID: "a", conversationID: "c9"})

	assert.Equal(t, LifecycleCommitted, next[0].Lifecycle)
	assert.Equal(t, "c9", next[0].ConversationID)
	assert.Equal(t, LifecyclePending, log[0].Lifecycle, "input log must not be mutated")
}

func TestApplyLogEvent_Remove(t *testing.T) {
	log := []Turn{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	next := applyLogEvent(log, logEvent{kind: eventRemove, turnID: "b"})

	require.Len(t, next, 2)
	assert.Equal(t, "a", next[0].ID)
	assert.Equal(t, "c", next[1].ID)
	assert.Len(t, log, 3)
}

func TestApplyLogEvent_UnknownIDIsNoOp(t *testing.T) {
	log := []Turn{{ID: "a", Lifecycle: LifecyclePending}}

	committed := applyLogEvent(log, logEvent{kind: eventCommit, turnID: "missing"})
	assert.Equal(t, log, committed)

	removed := applyLogEvent(log, logEvent{kind: eventRemove, turnID: "missing"})
	assert.Equal(t, log, removed)
}

func TestFindTurn(t *testing.T) {
	log := []Turn{{ID: "a"}, {ID: "b"}}
	assert.Equal(t, 1, findTurn(log, "b"))
	assert.Equal(t, -1, findTurn(log, "z"))
	assert.Equal(t, -1, findTurn(nil, "a"))
}
