// ABOUTME: Generic pending/success/error lifecycle wrapper for envelope-returning operations.
// ABOUTME: Every network-touching component is built on this contract.

package asyncop

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

// Envelope status values used by all platform responses.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// genericErrorMessage is used when neither the transport error nor the
// envelope carries a usable message.
const genericErrorMessage = "request failed"

// Envelope is the {status, data, message} wrapper convention used by every
// platform endpoint. A response with any other shape is malformed.
type Envelope[T any] struct {
	Status  string `json:"status"`
	Data    T      `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// Operation is a zero-argument request. The returned error covers transport
// failure; application failure travels inside the envelope as StatusError.
type Operation[T any] func(ctx context.Context) (Envelope[T], error)

// State is a snapshot of a call's lifecycle. When Pending is false and at
// least one execution has settled, exactly one of Data/Error is set.
type State[T any] struct {
	Data    *T
	Error   string
	Pending bool
}

// Options configures a Call at construction.
type Options[T any] struct {
	// AutoFetch triggers one Execute in the background on creation.
	AutoFetch bool

	// OnSuccess and OnError run exactly once per settled execution, after
	// the call state has been updated.
	OnSuccess func(data T)
	OnError   func(message string)

	Logger *slog.Logger
}

// Call wraps an Operation in a uniform idle/pending/success/error lifecycle.
// Execute may be invoked repeatedly; each settlement overwrites the previous
// result. Overlapping executions are not cancelled, so the last one to
// settle wins.
type Call[T any] struct {
	mu       sync.Mutex
	op       Operation[T]
	data     *T
	errMsg   string
	inflight int

	onSuccess func(T)
	onError   func(string)
	logger    *slog.Logger
}

// New creates a Call around op. With Options.AutoFetch the first execution
// starts immediately in the background.
func New[T any](op Operation[T], opts Options[T]) *Call[T] {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	c := &Call[T]{
		op:        op,
		onSuccess: opts.OnSuccess,
		onError:   opts.OnError,
		logger:    logger.With("component", "asyncop"),
	}
	if opts.AutoFetch {
		go c.Execute(context.Background())
	}
	return c
}

// Execute runs the operation and settles the call state. A transport error
// and a StatusError envelope are normalized to the same error shape; an
// envelope with an unknown status is treated as malformed. The returned
// error carries the normalized message.
func (c *Call[T]) Execute(ctx context.Context) (T, error) {
	c.mu.Lock()
	c.inflight++
	c.mu.Unlock()

	env, opErr := c.op(ctx)
	data, errMsg := normalize(env, opErr)

	c.mu.Lock()
	c.inflight--
	if errMsg == "" {
		c.data = &data
		c.errMsg = ""
	} else {
		c.data = nil
		c.errMsg = errMsg
	}
	onSuccess, onError := c.onSuccess, c.onError
	c.mu.Unlock()

	if errMsg != "" {
		c.logger.Debug("call settled with error", "error", errMsg)
		if onError != nil {
			onError(errMsg)
		}
		var zero T
		return zero, errors.New(errMsg)
	}

	if onSuccess != nil {
		onSuccess(data)
	}
	return data, nil
}

// Refetch re-runs the operation. Alias for Execute, kept for call-site
// clarity at resource-loading sites.
func (c *Call[T]) Refetch(ctx context.Context) (T, error) {
	return c.Execute(ctx)
}

// State returns a snapshot of the current lifecycle state.
func (c *Call[T]) State() State[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State[T]{
		Data:    c.data,
		Error:   c.errMsg,
		Pending: c.inflight > 0,
	}
}

// normalize collapses the two failure channels into one message. An empty
// returned message means success.
func normalize[T any](env Envelope[T], opErr error) (T, string) {
	var zero T
	if opErr != nil {
		msg := opErr.Error()
		if msg == "" {
			msg = genericErrorMessage
		}
		return zero, msg
	}
	switch env.Status {
	case StatusSuccess:
		return env.Data, ""
	case StatusError:
		if env.Message != "" {
			return zero, env.Message
		}
		return zero, genericErrorMessage
	default:
		// Anything outside the envelope convention is malformed.
		return zero, genericErrorMessage
	}
}
