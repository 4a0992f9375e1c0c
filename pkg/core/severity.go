package core

import (
	"fmt"
	"strings"
)

// =============================================================================
// Severity
// =============================================================================

// Severity indicates the importance of a diagnostic.
// None of the severities abort a check run.
type Severity int

// Severity levels for diagnostics.
const (
	// SeverityError indicates a confirmed documentation consistency violation.
	SeverityError Severity = iota
	// SeverityIssue indicates a code-level concern, such as a misplaced include.
	SeverityIssue
	// SeverityNote is informational and describes documentation tool quirks.
	SeverityNote
)

// String returns the string representation of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityIssue:
		return "issue"
	case SeverityNote:
		return "note"
	default:
		return "unknown"
	}
}

// Blocking reports whether diagnostics of this severity should fail a run.
func (s Severity) Blocking() bool {
	return s == SeverityError || s == SeverityIssue
}

// ParseSeverity converts a string to a Severity value.
// Returns the severity and true if valid, or SeverityError and false if invalid.
func ParseSeverity(s string) (Severity, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error":
		return SeverityError, true
	case "issue", "warning":
		return SeverityIssue, true
	case "note", "info":
		return SeverityNote, true
	default:
		return SeverityError, false
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Severity) UnmarshalText(text []byte) error {
	sev, ok := ParseSeverity(string(text))
	if !ok {
		return fmt.Errorf("unknown severity %q", string(text))
	}
	*s = sev
	return nil
}

// =============================================================================
// RuleInfo
// =============================================================================

// RuleInfo provides metadata about a check rule for documentation/tooling.
// This is a DTO (Data Transfer Object) - it carries data without behavior.
type RuleInfo struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Group           string   `json:"group"`
	Description     string   `json:"description"`
	DefaultSeverity Severity `json:"default_severity"`
	Rationale       string   `json:"rationale,omitempty"`
	Fix             string   `json:"fix,omitempty"`
}
