// ABOUTME: Pure state-transition function over the turn log.
// ABOUTME: Every log mutation flows through applyLogEvent against the current log.

package chat

// eventKind enumerates the only transitions a turn log supports.
type eventKind int

const (
	// eventAppend adds a turn to the end of the log.
	eventAppend eventKind = iota
	// eventCommit marks a pending turn committed and stamps the adopted
	// conversation id.
	eventCommit
	// eventRemove drops a turn from the log (send rollback).
	eventRemove
)

// logEvent is one transition request against the turn log.
type logEvent struct {
	kind           eventKind
	turn           Turn   // eventAppend
	turnID         string // eventCommit, eventRemove
	conversationID string // eventCommit
}

// applyLogEvent returns a new log with the event applied. It never closes
// over external state: the caller passes the current log and receives the
// next one, so appends and rollbacks always land on the latest log.
// Commit or remove of an id that is not present is a no-op.
func applyLogEvent(log []Turn, ev logEvent) []Turn {
	switch ev.kind {
	case eventAppend:
		next := make([]Turn, len(log), len(log)+1)
		copy(next, log)
		return append(next, ev.turn)

	case eventCommit:
		next := make([]Turn, len(log))
		copy(next, log)
		for i := range next {
			if next[i].ID == ev.turnID {
				next[i].Lifecycle = LifecycleCommitted
				next[i].ConversationID = ev.conversationID
				break
			}
		}
		return next

	case eventRemove:
		next := make([]Turn, 0, len(log))
		for _, t := range log {
			if t.ID == ev.turnID {
				continue
			}
			next = append(next, t)
		}
		return next

	default:
		return log
	}
}

// findTurn returns the index of the turn with the given id, or -1.
func findTurn(log []Turn, id string) int {
	for i := range log {
		if log[i].ID == id {
			return i
		}
	}
	return -1
}
