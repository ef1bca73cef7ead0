// Package asyncop provides a uniform lifecycle wrapper for asynchronous
// request operations.
//
// # Overview
//
// Every request in the console follows the same envelope convention:
//
//	{status: "success", data: ...} or {status: "error", message: "..."}
//
// A Call wraps one such operation and tracks its lifecycle:
//
//	idle -> pending -> success(data) | error(message)
//
// # Usage
//
//	call := asyncop.New(op, asyncop.Options[Reply]{
//		OnSuccess: func(r Reply) { ... },
//		OnError:   func(msg string) { ... },
//	})
//	data, err := call.Execute(ctx)
//
// # Error Normalization
//
// Transport failures (the operation returned an error) and envelope
// failures (status "error") settle into the same error-message shape. An
// envelope with an unrecognized status is treated as malformed and
// surfaced as a generic error.
//
// # Concurrency
//
// Execute may be called again while a prior execution is in flight; the
// earlier call is not cancelled and the last execution to settle wins.
// That race is accepted at this scale rather than corrected with request
// epochs.
package asyncop
