// Package api implements the HTTP client for the platform gateway.
//
// # Overview
//
// Two endpoints are consumed:
//
//   - POST /api/v1/conversation/chat: send one user message, receive the
//     agent's reply and the server-assigned conversation id
//   - GET /api/v1/agents/list: fetch agent identities for display labels
//
// Every response is wrapped in the platform envelope:
//
//	{"status": "success"|"error", "data": ..., "message": "..."}
//
// A response of any other shape is ErrMalformedEnvelope and surfaces as a
// generic error. Requests carry a fixed client-side timeout; there is no
// retry and no mid-flight cancellation.
package api
