// ABOUTME: Resolves raw agent reply text into a rendering intent via an ordered probe table.
// ABOUTME: Classification is pure, deterministic, and total over all strings.

package intent

import (
	"encoding/json"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Kind identifies how a turn's content should be displayed.
type Kind string

const (
	// KindComplianceResult is a serialized compliance validation outcome.
	KindComplianceResult Kind = "compliance_result"
	// KindAgentResult is any other structured agent result envelope.
	KindAgentResult Kind = "agent_result"
	// KindCodeText is markdown prose carrying at least one fenced code block.
	KindCodeText Kind = "code_text"
	// KindPlainText is the terminal fallback: preformatted prose.
	KindPlainText Kind = "plain_text"
)

// Default display messages when a structured envelope omits one.
const (
	defaultComplianceMessage = "Compliance validation completed"
	defaultAgentMessage      = "Analysis completed"
)

// Marker fields that identify a compliance result inside the data object.
const (
	fieldComplianceStatus = "compliance_status"
	fieldDocumentType     = "document_type"
)

// CompliancePayload is the parsed payload for KindComplianceResult.
type CompliancePayload struct {
	Data    map[string]any
	Message string
}

// AgentPayload is the parsed payload for KindAgentResult.
type AgentPayload struct {
	Data      map[string]any
	Message   string
	AgentType AgentType
}

// Classification is the resolved rendering intent for one agent turn.
// Exactly one payload field is populated, matching Kind. Text holds the
// raw content for the two unstructured kinds.
type Classification struct {
	Kind       Kind
	Compliance *CompliancePayload
	Agent      *AgentPayload
	Text       string

	// Fallback is set when the content parsed as a JSON envelope but
	// qualified for no structured intent. Informational only; the
	// consumer may surface a notification.
	Fallback bool
}

// document is one parse attempt over raw content, shared by all probes so
// the JSON is decoded at most once per classification.
type document struct {
	raw     string
	isJSON  bool
	status  string
	message string
	data    map[string]any
	hasData bool
}

// probe pairs a predicate with the intent it selects. The probes slice
// below is the classification priority order; resolution short-circuits
// at the first match.
type probe struct {
	kind  Kind
	match func(d *document) bool
}

var probes = []probe{
	{KindComplianceResult, matchComplianceResult},
	{KindAgentResult, matchAgentResult},
	{KindCodeText, matchCodeText},
	{KindPlainText, func(*document) bool { return true }},
}

// Resolve classifies raw agent content. It never fails: malformed or
// partially matching JSON degrades to the next probe, terminating at
// plain text. Resolving the same input twice yields the same result.
func Resolve(raw, agentName string) Classification {
	d := parseDocument(raw)
	for _, p := range probes {
		if !p.match(d) {
			continue
		}
		return buildClassification(p.kind, d, agentName)
	}
	// Unreachable: the plain-text probe always matches.
	return Classification{Kind: KindPlainText, Text: raw}
}

func buildClassification(kind Kind, d *document, agentName string) Classification {
	switch kind {
	case KindComplianceResult:
		return Classification{
			Kind: kind,
			Compliance: &CompliancePayload{
				Data:    d.data,
				Message: messageOrDefault(d.message, defaultComplianceMessage),
			},
		}
	case KindAgentResult:
		return Classification{
			Kind: kind,
			Agent: &AgentPayload{
				Data:      d.data,
				Message:   messageOrDefault(d.message, defaultAgentMessage),
				AgentType: InferAgentType(agentName, d.raw),
			},
		}
	case KindCodeText:
		return Classification{Kind: kind, Text: d.raw}
	default:
		return Classification{
			Kind: KindPlainText,
			Text: d.raw,
			// A reply that carried an envelope but matched nothing
			// structured has silently lost fidelity.
			Fallback: d.isJSON && d.status != "",
		}
	}
}

func messageOrDefault(msg, fallback string) string {
	if msg == "" {
		return fallback
	}
	return msg
}

// matchComplianceResult requires a success envelope whose data object
// carries both compliance markers.
func matchComplianceResult(d *document) bool {
	if !d.isJSON || d.status != "success" || !d.hasData || d.data == nil {
		return false
	}
	_, hasStatus := d.data[fieldComplianceStatus]
	_, hasDocType := d.data[fieldDocumentType]
	return hasStatus && hasDocType
}

// matchAgentResult requires a success envelope with an object data field
// that does not qualify as a compliance result.
func matchAgentResult(d *document) bool {
	if !d.isJSON || d.status != "success" || !d.hasData || d.data == nil {
		return false
	}
	_, hasStatus := d.data[fieldComplianceStatus]
	return !hasStatus
}

func matchCodeText(d *document) bool {
	return hasFencedCode(d.raw)
}

// parseDocument attempts to read raw content as a serialized result
// envelope. Parse failures are not errors; they simply leave isJSON unset
// so the structured probes decline.
func parseDocument(raw string) *document {
	d := &document{raw: raw}

	var decoded map[string]any
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return d
	}
	d.isJSON = true

	if s, ok := decoded["status"].(string); ok {
		d.status = s
	}
	if m, ok := decoded["message"].(string); ok {
		d.message = m
	}
	if data, ok := decoded["data"]; ok {
		d.hasData = true
		if obj, ok := data.(map[string]any); ok {
			d.data = obj
		}
	}
	return d
}

// markdown is the shared goldmark instance used for fence detection and
// code-block extraction. Parsing only; no rendering.
var markdown = goldmark.New()

// hasFencedCode reports whether raw contains at least one fenced code
// block when read as markdown.
func hasFencedCode(raw string) bool {
	return len(CodeBlocks(raw)) > 0
}

// CodeBlock is one fenced block extracted from code-bearing content, used
// by the view layer for syntax-highlighted rendering.
type CodeBlock struct {
	Language string
	Source   string
}

// CodeBlocks extracts every fenced code block from raw markdown, in
// document order. Content outside fences is ignored.
func CodeBlocks(raw string) []CodeBlock {
	source := []byte(raw)
	root := markdown.Parser().Parse(text.NewReader(source))

	var blocks []CodeBlock
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fenced, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}

		var lang string
		if info := fenced.Language(source); info != nil {
			lang = string(info)
		}

		var body []byte
		lines := fenced.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			body = append(body, seg.Value(source)...)
		}

		blocks = append(blocks, CodeBlock{Language: lang, Source: string(body)})
		return ast.WalkContinue, nil
	})
	return blocks
}
