// ABOUTME: Session owns the ordered turn log for one agent conversation.
// ABOUTME: Optimistic append on send, commit on success, rollback on failure.

package chat

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bankdesk/console/internal/api"
	"github.com/bankdesk/console/internal/asyncop"
	"github.com/bankdesk/console/internal/intent"
)

// ErrSendInFlight indicates a send was attempted while another is still
// outstanding. The attempt is a no-op: no turn is appended and no network
// call is issued. The UI is expected to disable the send affordance while
// a turn is pending, so this is not surfaced as a user-facing error.
var ErrSendInFlight = errors.New("a turn is already in flight")

// Sender is the outbound boundary: one turn out, envelope back.
type Sender interface {
	SendTurn(ctx context.Context, conversationID, text string) (asyncop.Envelope[api.TurnReply], error)
}

// Session coordinates one conversation with one agent: it appends the
// user's turn optimistically, runs the send through the call lifecycle,
// and reconciles the settlement into the log. At most one send is
// outstanding at a time.
//
// The session owns its log and conversation id exclusively; it is not
// persisted and is discarded when the agent selection changes.
type Session struct {
	mu             sync.Mutex
	turns          []Turn
	conversationID string
	sending        bool

	agent  api.AgentIdentity
	sender Sender
	notify Notifier
	logger *slog.Logger
}

// NewSession creates a session for talking to the given agent. notifier
// may be nil when the caller has no notification surface.
func NewSession(agent api.AgentIdentity, sender Sender, notifier Notifier, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	if notifier == nil {
		notifier = NotifierFunc(func(string, Severity) {})
	}
	return &Session{
		agent:  agent,
		sender: sender,
		notify: notifier,
		logger: logger.With("component", "chat", "agent_id", agent.ID),
	}
}

// Send appends text as a pending user turn, sends it, and reconciles the
// result. On success it returns the committed agent turn; on failure the
// pending turn is rolled back, the notifier is told, and the error is
// returned. While a send is outstanding, further calls return
// ErrSendInFlight without side effects.
func (s *Session) Send(ctx context.Context, text string) (*Turn, error) {
	s.mu.Lock()
	if s.sending {
		s.mu.Unlock()
		s.logger.Debug("send rejected, turn already in flight")
		return nil, ErrSendInFlight
	}
	s.sending = true

	userTurn := Turn{
		ID:             uuid.New().String(),
		Role:           RoleUser,
		RawContent:     text,
		ConversationID: s.conversationID,
		CreatedAt:      time.Now(),
		Lifecycle:      LifecyclePending,
	}
	s.turns = applyLogEvent(s.turns, logEvent{kind: eventAppend, turn: userTurn})
	conversationID := s.conversationID
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.sending = false
		s.mu.Unlock()
	}()

	var agentTurn *Turn
	call := asyncop.New(func(ctx context.Context) (asyncop.Envelope[api.TurnReply], error) {
		return s.sender.SendTurn(ctx, conversationID, text)
	}, asyncop.Options[api.TurnReply]{
		OnSuccess: func(reply api.TurnReply) {
			agentTurn = s.commitExchange(userTurn.ID, reply)
		},
		OnError: func(message string) {
			s.rollback(userTurn.ID, message)
		},
		Logger: s.logger,
	})

	if _, err := call.Execute(ctx); err != nil {
		return nil, err
	}
	return agentTurn, nil
}

// commitExchange marks the user turn committed, adopts the server's
// conversation id, and appends the classified agent turn.
func (s *Session) commitExchange(userTurnID string, reply api.TurnReply) *Turn {
	resolved := intent.Resolve(reply.Text, s.agent.Name)

	s.mu.Lock()
	if findTurn(s.turns, userTurnID) < 0 {
		// The session was reset while the send was in flight; the
		// reply has nowhere to land.
		s.mu.Unlock()
		s.logger.Debug("reply arrived after reset, dropping", "turn_id", userTurnID)
		return nil
	}

	if reply.ConversationID != "" {
		s.conversationID = reply.ConversationID
	}
	s.turns = applyLogEvent(s.turns, logEvent{
		kind:           eventCommit,
		turnID:         userTurnID,
		conversationID: s.conversationID,
	})

	agentTurn := Turn{
		ID:             uuid.New().String(),
		Role:           RoleAgent,
		RawContent:     reply.Text,
		Intent:         &resolved,
		ConversationID: s.conversationID,
		CreatedAt:      time.Now(),
		Lifecycle:      LifecycleCommitted,
	}
	s.turns = applyLogEvent(s.turns, logEvent{kind: eventAppend, turn: agentTurn})
	s.mu.Unlock()

	s.logger.Debug("turn committed",
		"conversation_id", agentTurn.ConversationID,
		"intent", resolved.Kind,
	)

	if resolved.Fallback {
		s.notify.Notify("agent reply looked structured but could not be classified; showing raw text", SeverityWarning)
	}
	return &agentTurn
}

// rollback removes the optimistic user turn and surfaces the failure. The
// conversation id is left untouched.
func (s *Session) rollback(userTurnID, message string) {
	s.mu.Lock()
	s.turns = applyLogEvent(s.turns, logEvent{kind: eventRemove, turnID: userTurnID})
	s.mu.Unlock()

	s.logger.Warn("send failed, turn rolled back",
		"turn_id", userTurnID,
		"error", message,
	)
	s.notify.Notify(message, SeverityError)
}

// Reset clears the turn log and conversation id, for switching agents.
func (s *Session) Reset() {
	s.mu.Lock()
	s.turns = nil
	s.conversationID = ""
	s.mu.Unlock()
	s.logger.Debug("session reset")
}

// Turns returns a snapshot of the log in insertion order.
func (s *Session) Turns() []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

// ConversationID returns the server-assigned conversation id, or "" before
// the first successful exchange.
func (s *Session) ConversationID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conversationID
}

// InFlight reports whether a send is outstanding, so the view layer can
// disable the send affordance.
func (s *Session) InFlight() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sending
}

// Agent returns the identity of the counterpart agent.
func (s *Session) Agent() api.AgentIdentity {
	return s.agent
}
