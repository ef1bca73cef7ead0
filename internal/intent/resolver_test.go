// ABOUTME: Tests for the rendering-intent resolver and probe ordering.
// ABOUTME: Exercises all four intents, fallthrough behavior, and determinism.

package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const complianceJSON = `{"status":"success","data":{"compliance_status":"COMPLIANT","document_type":"invoice","ucp_reference":"UCP600"}}`

func TestResolve_ComplianceResult(t *testing.T) {
	c := Resolve(complianceJSON, "Compliance Agent")

	require.Equal(t, KindComplianceResult, c.Kind)
	require.NotNil(t, c.Compliance)
	assert.Nil(t, c.Agent)
	assert.Equal(t, "COMPLIANT", c.Compliance.Data["compliance_status"])
	assert.Equal(t, "invoice", c.Compliance.Data["document_type"])
	assert.Equal(t, defaultComplianceMessage, c.Compliance.Message)
}

func TestResolve_ComplianceResult_ExplicitMessage(t *testing.T) {
	raw := `{"status":"success","message":"3 discrepancies found","data":{"compliance_status":"NON_COMPLIANT","document_type":"letter_of_credit"}}`
	c := Resolve(raw, "")

	require.Equal(t, KindComplianceResult, c.Kind)
	assert.Equal(t, "3 discrepancies found", c.Compliance.Message)
}

func TestResolve_AgentResult(t *testing.T) {
	raw := `{"status":"success","data":{"credit_score":712,"risk_level":"medium"}}`
	c := Resolve(raw, "Credit Analysis Agent")

	require.Equal(t, KindAgentResult, c.Kind)
	require.NotNil(t, c.Agent)
	assert.Nil(t, c.Compliance)
	assert.Equal(t, float64(712), c.Agent.Data["credit_score"])
	assert.Equal(t, defaultAgentMessage, c.Agent.Message)
	assert.Equal(t, AgentTypeCredit, c.Agent.AgentType)
}

func TestResolve_CodeText(t *testing.T) {
	raw := "Here is the calculation:\n\n```python\nscore = base - penalties\n```\n"
	c := Resolve(raw, "")

	require.Equal(t, KindCodeText, c.Kind)
	assert.Equal(t, raw, c.Text)

	blocks := CodeBlocks(raw)
	require.Len(t, blocks, 1)
	assert.Equal(t, "python", blocks[0].Language)
	assert.Equal(t, "score = base - penalties\n", blocks[0].Source)
}

func TestResolve_PlainText(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"plain prose", "Your balance inquiry is complete."},
		{"empty string", ""},
		{"malformed JSON", `{"status":"success","data":`},
		{"JSON array", `[1,2,3]`},
		{"JSON scalar", `42`},
		{"inline code only, no fence", "use the `balance` field"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Resolve(tt.raw, "Risk Agent")
			assert.Equal(t, KindPlainText, c.Kind)
			assert.Equal(t, tt.raw, c.Text)
			assert.Nil(t, c.Compliance)
			assert.Nil(t, c.Agent)
		})
	}
}

func TestResolve_PartialEnvelopeFallsThrough(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Kind
	}{
		{
			name: "error status is not structured",
			raw:  `{"status":"error","message":"failed"}`,
			want: KindPlainText,
		},
		{
			name: "success without data is not structured",
			raw:  `{"status":"success"}`,
			want: KindPlainText,
		},
		{
			name: "data is not an object",
			raw:  `{"status":"success","data":"done"}`,
			want: KindPlainText,
		},
		{
			name: "null data",
			raw:  `{"status":"success","data":null}`,
			want: KindPlainText,
		},
		{
			name: "compliance_status without document_type matches neither structured probe",
			raw:  `{"status":"success","data":{"compliance_status":"COMPLIANT"}}`,
			want: KindPlainText,
		},
		{
			name: "document_type alone is a plain agent result",
			raw:  `{"status":"success","data":{"document_type":"invoice"}}`,
			want: KindAgentResult,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Resolve(tt.raw, "")
			assert.Equal(t, tt.want, c.Kind)
		})
	}
}

func TestResolve_FallbackFlag(t *testing.T) {
	// Envelope-shaped input that degrades to plain text is flagged.
	degraded := Resolve(`{"status":"success","data":"done"}`, "")
	assert.Equal(t, KindPlainText, degraded.Kind)
	assert.True(t, degraded.Fallback)

	// Ordinary prose is not.
	prose := Resolve("hello there", "")
	assert.Equal(t, KindPlainText, prose.Kind)
	assert.False(t, prose.Fallback)
}

func TestResolve_FencedJSONIsCodeNotStructured(t *testing.T) {
	// A JSON payload wrapped in a fence is not valid JSON as a whole
	// string, so it lands on the code probe.
	raw := "```json\n{\"status\":\"success\",\"data\":{}}\n```"
	c := Resolve(raw, "")
	assert.Equal(t, KindCodeText, c.Kind)
}

func TestResolve_Deterministic(t *testing.T) {
	inputs := []string{
		complianceJSON,
		`{"status":"success","data":{"risk_score":4}}`,
		"```go\nfmt.Println()\n```",
		"plain",
		"",
	}
	for _, raw := range inputs {
		first := Resolve(raw, "Supervisor")
		second := Resolve(raw, "Supervisor")
		assert.Equal(t, first, second, "input %q", raw)
	}
}

func TestProbeOrder(t *testing.T) {
	// The priority order is a first-class artifact; a reordering is a
	// behavior change and must show up here.
	want := []Kind{KindComplianceResult, KindAgentResult, KindCodeText, KindPlainText}
	require.Len(t, probes, len(want))
	for i, p := range probes {
		assert.Equal(t, want[i], p.kind)
	}
}

func TestCodeBlocks_Multiple(t *testing.T) {
	raw := "```sql\nSELECT 1;\n```\ntext between\n```\nno language\n```\n"
	blocks := CodeBlocks(raw)
	require.Len(t, blocks, 2)
	assert.Equal(t, "sql", blocks[0].Language)
	assert.Equal(t, "SELECT 1;\n", blocks[0].Source)
	assert.Empty(t, blocks[1].Language)
	assert.Equal(t, "no language\n", blocks[1].Source)
}
