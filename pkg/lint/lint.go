package lint

import (
	"github.com/leapstack-labs/doccheck/pkg/core"
	"github.com/leapstack-labs/doccheck/pkg/tree"
)

// Reporter receives findings from checks. Every call carries the rule ID of
// the finding; the method decides its default severity.
type Reporter interface {
	// FileError reports a file-level violation (severity error).
	FileError(file *tree.File, ruleID, message string)
	// CodeIssue reports a problem with an include directive (severity issue).
	CodeIssue(include *tree.Include, ruleID, message string)
	// DocError reports a documentation violation on an entity (severity error).
	DocError(entity tree.Entity, ruleID, message string)
	// DocNote reports an informational finding on an entity (severity note).
	DocNote(entity tree.Entity, ruleID, message string)
}

// Sink consumes diagnostics produced by the Driver.
type Sink interface {
	// Emit receives one diagnostic, in traversal order.
	Emit(d Diagnostic)
	// Flush is called after each traversal phase.
	Flush() error
}

// Diagnostic represents one finding.
type Diagnostic struct {
	RuleID   string
	Severity core.Severity
	Location tree.Location
	Subject  string // entity name for documentation findings; empty otherwise
	Message  string
}

// NewFileError builds the diagnostic for Reporter.FileError.
func NewFileError(file *tree.File, ruleID, message string) Diagnostic {
	return Diagnostic{
		RuleID:   ruleID,
		Severity: core.SeverityError,
		Location: file.Location(),
		Message:  message,
	}
}

// NewCodeIssue builds the diagnostic for Reporter.CodeIssue.
func NewCodeIssue(include *tree.Include, ruleID, message string) Diagnostic {
	return Diagnostic{
		RuleID:   ruleID,
		Severity: core.SeverityIssue,
		Location: include.Location(),
		Message:  message,
	}
}

// NewDocError builds the diagnostic for Reporter.DocError.
func NewDocError(entity tree.Entity, ruleID, message string) Diagnostic {
	return Diagnostic{
		RuleID:   ruleID,
		Severity: core.SeverityError,
		Location: entity.Location(),
		Subject:  entity.DisplayName(),
		Message:  message,
	}
}

// NewDocNote builds the diagnostic for Reporter.DocNote.
func NewDocNote(entity tree.Entity, ruleID, message string) Diagnostic {
	d := NewDocError(entity, ruleID, message)
	d.Severity = core.SeverityNote
	return d
}

// Collector is a Reporter that records diagnostics in call order.
// The zero value is ready to use. A Collector is not safe for concurrent use;
// the Driver gives every entity its own.
type Collector struct {
	diags []Diagnostic
}

// FileError implements Reporter.
func (c *Collector) FileError(file *tree.File, ruleID, message string) {
	c.diags = append(c.diags, NewFileError(file, ruleID, message))
}

// CodeIssue implements Reporter.
func (c *Collector) CodeIssue(include *tree.Include, ruleID, message string) {
	c.diags = append(c.diags, NewCodeIssue(include, ruleID, message))
}

// DocError implements Reporter.
func (c *Collector) DocError(entity tree.Entity, ruleID, message string) {
	c.diags = append(c.diags, NewDocError(entity, ruleID, message))
}

// DocNote implements Reporter.
func (c *Collector) DocNote(entity tree.Entity, ruleID, message string) {
	c.diags = append(c.diags, NewDocNote(entity, ruleID, message))
}

// Diagnostics returns the recorded diagnostics.
func (c *Collector) Diagnostics() []Diagnostic {
	return c.diags
}

// Messages returns just the messages, mostly useful in tests.
func (c *Collector) Messages() []string {
	msgs := make([]string, len(c.diags))
	for i, d := range c.diags {
		msgs[i] = d.Message
	}
	return msgs
}

// Reset drops everything recorded so far.
func (c *Collector) Reset() {
	c.diags = c.diags[:0]
}

var _ Reporter = (*Collector)(nil)
