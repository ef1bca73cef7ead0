// ABOUTME: Terminal rendering for turns by resolved intent.
// ABOUTME: Compliance badges, structured summaries, highlighted code fences, plain prose.

package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/bankdesk/console/internal/chat"
	"github.com/bankdesk/console/internal/intent"
)

// consoleNotifier prints session notifications to the terminal.
type consoleNotifier struct{}

func (consoleNotifier) Notify(message string, severity chat.Severity) {
	switch severity {
	case chat.SeverityError:
		fmt.Printf("%s %s\n", color.New(color.FgRed, color.Bold).Sprint("[error]"), message)
	case chat.SeverityWarning:
		fmt.Printf("%s %s\n", color.YellowString("[warn]"), message)
	default:
		fmt.Printf("%s %s\n", color.CyanString("[info]"), message)
	}
}

// renderLog prints the whole conversation in insertion order.
func renderLog(turns []chat.Turn) {
	if len(turns) == 0 {
		fmt.Println("No messages yet")
		return
	}
	for _, t := range turns {
		renderTurn(t)
	}
}

// renderTurn prints one turn, selecting the display by resolved intent.
func renderTurn(t chat.Turn) {
	switch t.Role {
	case chat.RoleUser:
		prefix := color.BlueString("you>")
		if t.Lifecycle == chat.LifecyclePending {
			prefix = color.HiBlackString("you (sending)>")
		}
		fmt.Printf("%s %s\n", prefix, t.RawContent)
		return
	case chat.RoleSystem:
		fmt.Printf("%s %s\n", color.HiBlackString("sys>"), t.RawContent)
		return
	}

	if t.Intent == nil {
		fmt.Printf("%s %s\n", color.GreenString("agent>"), t.RawContent)
		return
	}

	switch t.Intent.Kind {
	case intent.KindComplianceResult:
		renderCompliance(t.Intent.Compliance)
	case intent.KindAgentResult:
		renderAgentResult(t.Intent.Agent)
	case intent.KindCodeText:
		renderCodeText(t.Intent.Text)
	default:
		fmt.Printf("%s %s\n", color.GreenString("agent>"), t.Intent.Text)
	}
}

func renderCompliance(p *intent.CompliancePayload) {
	status, _ := p.Data["compliance_status"].(string)
	docType, _ := p.Data["document_type"].(string)

	badge := color.New(color.FgGreen, color.Bold)
	if !strings.EqualFold(status, "COMPLIANT") {
		badge = color.New(color.FgRed, color.Bold)
	}

	fmt.Printf("%s %s\n", color.GreenString("agent>"), p.Message)
	fmt.Printf("  %s  document: %s\n", badge.Sprintf("[%s]", status), docType)
	renderFields(p.Data, "compliance_status", "document_type")
}

func renderAgentResult(p *intent.AgentPayload) {
	fmt.Printf("%s %s %s\n",
		color.GreenString("agent>"),
		p.Message,
		color.HiBlackString("(%s)", p.AgentType),
	)
	renderFields(p.Data)
}

// renderFields prints the remaining data fields in sorted order, skipping
// the ones already shown.
func renderFields(data map[string]any, shown ...string) {
	skip := make(map[string]bool, len(shown))
	for _, k := range shown {
		skip[k] = true
	}

	keys := make([]string, 0, len(data))
	for k := range data {
		if !skip[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	for _, k := range keys {
		fmt.Printf("  %s %v\n", color.HiBlackString(k+":"), data[k])
	}
}

// renderCodeText prints markdown prose, highlighting fenced blocks.
func renderCodeText(raw string) {
	blocks := intent.CodeBlocks(raw)
	fmt.Printf("%s\n", color.GreenString("agent>"))

	rest := raw
	for _, b := range blocks {
		// Print prose up to the block body, then the highlighted body.
		if idx := strings.Index(rest, b.Source); idx >= 0 {
			prose := stripFenceLines(rest[:idx])
			if prose != "" {
				fmt.Println(prose)
			}
			rest = rest[idx+len(b.Source):]
		}
		label := b.Language
		if label == "" {
			label = "code"
		}
		fmt.Println(color.HiBlackString("--- " + label))
		fmt.Print(color.New(color.FgHiWhite).Sprint(b.Source))
		fmt.Println(color.HiBlackString("---"))
	}
	if prose := stripFenceLines(rest); prose != "" {
		fmt.Println(prose)
	}
}

// stripFenceLines drops fence marker lines from a prose fragment.
func stripFenceLines(s string) string {
	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}
