// ABOUTME: HTTP client for the banking-assistant platform's conversation API.
// ABOUTME: All endpoints speak the {status, data, message} envelope convention.

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/bankdesk/console/internal/asyncop"
)

// ErrMalformedEnvelope indicates a response outside the envelope
// convention. It is surfaced as a generic error by the call lifecycle.
var ErrMalformedEnvelope = errors.New("malformed response envelope")

// defaultTimeout bounds every request. There is no mid-flight user
// cancellation; a hung call surfaces through the normal error path.
const defaultTimeout = 30 * time.Second

// AgentIdentity describes one platform agent, used for display labels and
// the agent-type heuristic. Classification never requires it.
type AgentIdentity struct {
	ID           string   `json:"agent_id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Capabilities []string `json:"capabilities"`
}

// TurnReply is the data payload of a successful chat exchange. The
// conversation id is server-assigned on the first exchange and echoed on
// later ones.
type TurnReply struct {
	ConversationID string `json:"conversation_id"`
	Text           string `json:"message"`
}

// sendTurnRequest is the JSON body for POST /api/v1/conversation/chat.
type sendTurnRequest struct {
	ConversationID string `json:"conversation_id,omitempty"`
	UserID         string `json:"user_id"`
	Message        string `json:"message"`
}

// agentList is the data payload of the agent listing endpoint.
type agentList struct {
	Agents []AgentIdentity `json:"agents"`
}

// Options configures a Client.
type Options struct {
	// Timeout bounds each request; zero means defaultTimeout.
	Timeout time.Duration
	// Token, when set, is passed as a bearer token. Pass-through only;
	// the client does no token handling of its own.
	Token  string
	Logger *slog.Logger
}

// Client talks to the platform gateway.
type Client struct {
	baseURL string
	userID  string
	token   string
	httpc   *http.Client
	logger  *slog.Logger
}

// New creates a Client for the gateway at baseURL. Messages are attributed
// to userID.
func New(baseURL, userID string, opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: baseURL,
		userID:  userID,
		token:   opts.Token,
		httpc:   &http.Client{Timeout: timeout},
		logger:  logger.With("component", "api"),
	}
}

// SendTurn posts one user message. conversationID may be empty on the
// first exchange; the reply carries the id to adopt. The returned error
// covers transport and shape failures only; application failure arrives
// inside the envelope.
func (c *Client) SendTurn(ctx context.Context, conversationID, text string) (asyncop.Envelope[TurnReply], error) {
	body, err := json.Marshal(sendTurnRequest{
		ConversationID: conversationID,
		UserID:         c.userID,
		Message:        text,
	})
	if err != nil {
		return asyncop.Envelope[TurnReply]{}, fmt.Errorf("encoding request: %w", err)
	}

	env, err := roundTrip[TurnReply](ctx, c, http.MethodPost, "/api/v1/conversation/chat", body)
	if err != nil {
		return asyncop.Envelope[TurnReply]{}, err
	}
	c.logger.Debug("turn sent",
		"conversation_id", env.Data.ConversationID,
		"status", env.Status,
	)
	return env, nil
}

// ListAgents fetches the identities of the available platform agents.
func (c *Client) ListAgents(ctx context.Context) ([]AgentIdentity, error) {
	env, err := roundTrip[agentList](ctx, c, http.MethodGet, "/api/v1/agents/list", nil)
	if err != nil {
		return nil, err
	}
	if env.Status != asyncop.StatusSuccess {
		if env.Message != "" {
			return nil, errors.New(env.Message)
		}
		return nil, ErrMalformedEnvelope
	}
	return env.Data.Agents, nil
}

// roundTrip issues one envelope request. Any response that cannot be read
// as a {status, data, message} envelope yields ErrMalformedEnvelope.
func roundTrip[T any](ctx context.Context, c *Client, method, path string, body []byte) (asyncop.Envelope[T], error) {
	var env asyncop.Envelope[T]

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return env, fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return env, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return env, fmt.Errorf("gateway returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return env, ErrMalformedEnvelope
	}
	if env.Status == "" {
		return env, ErrMalformedEnvelope
	}
	return env, nil
}
