// Package chat manages the turn log for one agent conversation.
//
// # Overview
//
// A Session owns the ordered log of turns exchanged with one agent. Send
// follows the optimistic-append pattern:
//
//  1. The user turn is appended immediately with a pending lifecycle
//  2. The network send runs through the asyncop call lifecycle
//  3. On success the pending turn commits and the classified agent turn
//     is appended; the server's conversation id is adopted
//  4. On failure the pending turn is removed entirely and the notifier
//     is told
//
// # Serialized Sends
//
// At most one send may be outstanding per session. A second Send while one
// is pending returns ErrSendInFlight without appending a turn or issuing a
// network call. This is the sole ordering mechanism: because sends are
// serialized, committed turns appear in issue order.
//
// # State Transitions
//
// All log mutations go through a reducer-style transition function taking
// the current log and an event. The only per-turn transitions are
// pending -> committed and pending -> removed; a committed turn never
// changes role or content.
package chat
