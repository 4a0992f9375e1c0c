package report

import (
	"strings"

	"github.com/leapstack-labs/doccheck/pkg/lint"
)

// Line renders d as "path[:line]: severity: [subject: ]message [RULE]".
func Line(d lint.Diagnostic) string {
	var b strings.Builder
	if loc := d.Location.String(); loc != "" {
		b.WriteString(loc)
		b.WriteString(": ")
	}
	b.WriteString(d.Severity.String())
	b.WriteString(": ")
	b.WriteString(filterText(d))
	if d.RuleID != "" {
		b.WriteString(" [")
		b.WriteString(d.RuleID)
		b.WriteString("]")
	}
	return b.String()
}

// record is the json form of a diagnostic.
type record struct {
	RunID    string `json:"run_id,omitempty"`
	Rule     string `json:"rule,omitempty"`
	Severity string `json:"severity"`
	Path     string `json:"path,omitempty"`
	Line     int    `json:"line,omitempty"`
	Subject  string `json:"subject,omitempty"`
	Message  string `json:"message"`
}

func newRecord(runID string, d lint.Diagnostic) record {
	return record{
		RunID:    runID,
		Rule:     d.RuleID,
		Severity: d.Severity.String(),
		Path:     d.Location.Path,
		Line:     d.Location.Line,
		Subject:  d.Subject,
		Message:  d.Message,
	}
}
