// Package intent classifies raw agent reply text into a rendering intent.
//
// # Overview
//
// Agent replies arrive as untyped text that may or may not be a serialized
// structured result. Resolve decides which of four intents the text
// encodes, probing in a fixed priority order and short-circuiting at the
// first match:
//
//  1. Compliance result: a success envelope whose data carries both
//     compliance_status and document_type
//  2. Structured agent result: a success envelope with an object data
//     field and no compliance_status
//  3. Code-bearing text: markdown containing a fenced code block
//  4. Plain text: everything else
//
// # Totality
//
// Classification never fails outward. Malformed JSON, a non-success
// status, or a partially matching data object simply falls through to the
// next probe; the worst case is plain text. Every agent turn is therefore
// always renderable.
//
// # Determinism
//
// Resolve is a pure function of its inputs: no I/O, no clock, no
// randomness. Classifying the same content twice yields identical results.
//
// # Agent Type Inference
//
// InferAgentType attaches a best-effort badge label to structured results
// by matching the agent's display name against a keyword table, falling
// back to content marker fields. It is informational only.
package intent
