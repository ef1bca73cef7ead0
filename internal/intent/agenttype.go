// ABOUTME: Best-effort agent type inference from display names and content markers.
// ABOUTME: Informational only; drives a badge label, never correctness.

package intent

import "strings"

// AgentType labels which platform agent likely produced a structured
// result. Values mirror the platform's agent taxonomy.
type AgentType string

const (
	AgentTypeCompliance AgentType = "compliance_validation"
	AgentTypeCredit     AgentType = "credit_analysis"
	AgentTypeRisk       AgentType = "risk_assessment"
	AgentTypeDocument   AgentType = "document_intelligence"
	AgentTypeDecision   AgentType = "decision_synthesis"
	AgentTypeSupervisor AgentType = "supervisor_orchestrator"
	AgentTypeUnknown    AgentType = "unknown"
)

// nameKeywords maps substrings of a lowercased agent display name to a
// type. Order matters: the first hit wins.
var nameKeywords = []struct {
	keyword   string
	agentType AgentType
}{
	{"compliance", AgentTypeCompliance},
	{"credit", AgentTypeCredit},
	{"risk", AgentTypeRisk},
	{"document", AgentTypeDocument},
	{"ocr", AgentTypeDocument},
	{"decision", AgentTypeDecision},
	{"supervisor", AgentTypeSupervisor},
}

// contentMarkers maps companion field names found in raw content to a
// type, used when the display name is inconclusive.
var contentMarkers = []struct {
	marker    string
	agentType AgentType
}{
	{fieldComplianceStatus, AgentTypeCompliance},
	{"credit_score", AgentTypeCredit},
	{"risk_score", AgentTypeRisk},
	{"risk_level", AgentTypeRisk},
	{"extracted_text", AgentTypeDocument},
	{fieldDocumentType, AgentTypeDocument},
}

// InferAgentType guesses which agent produced a reply. The display name is
// checked first against the keyword table; if that misses, the raw content
// is scanned for marker fields. Returns AgentTypeUnknown when nothing
// matches. Never fails.
func InferAgentType(agentName, rawContent string) AgentType {
	name := strings.ToLower(agentName)
	for _, k := range nameKeywords {
		if strings.Contains(name, k.keyword) {
			return k.agentType
		}
	}
	for _, m := range contentMarkers {
		if strings.Contains(rawContent, m.marker) {
			return m.agentType
		}
	}
	return AgentTypeUnknown
}
