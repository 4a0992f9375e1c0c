package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/leapstack-labs/doccheck/pkg/core"
	"github.com/leapstack-labs/doccheck/pkg/lint"
	"github.com/leapstack-labs/doccheck/pkg/tree"
	"github.com/muesli/termenv"
)

// Format selects how diagnostics are written.
type Format string

// Output formats.
const (
	FormatText Format = "text"
	FormatJSON Format = "json" // one object per line
)

// ParseFormat parses a format name. Empty selects text.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown report format %q (want text or json)", s)
	}
}

// Options configures a Reporter.
type Options struct {
	Format Format
	Color  bool   // style text output; ignored for json
	RunID  string // stamped on json records; generated when empty
}

// Stats counts what a Reporter wrote and what its filters dropped.
type Stats struct {
	Errors   int
	Issues   int
	Notes    int
	Filtered int
}

// Blocking reports whether an error or issue was written.
func (s Stats) Blocking() bool {
	return s.Errors > 0 || s.Issues > 0
}

// Reporter filters, buffers and writes diagnostics.
type Reporter struct {
	mu      sync.Mutex
	out     io.Writer
	log     io.WriteCloser
	format  Format
	runID   string
	styles  severityStyles
	filters []*Filter
	pending []lint.Diagnostic
	stats   Stats
}

// New creates a Reporter writing to w.
func New(w io.Writer, opts Options) *Reporter {
	format := opts.Format
	if format == "" {
		format = FormatText
	}
	runID := opts.RunID
	if runID == "" && format == FormatJSON {
		runID = uuid.NewString()
	}
	return &Reporter{
		out:    w,
		format: format,
		runID:  runID,
		styles: newSeverityStyles(w, opts.Color),
	}
}

// RunID returns the identifier stamped on json records.
func (r *Reporter) RunID() string { return r.runID }

// AddFilters installs ignore filters.
func (r *Reporter) AddFilters(filters ...*Filter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.filters = append(r.filters, filters...)
}

// LoadFilters reads an ignore file and installs its filters.
func (r *Reporter) LoadFilters(path string) error {
	filters, err := LoadFilters(path)
	if err != nil {
		return err
	}
	r.AddFilters(filters...)
	return nil
}

// Filters returns the installed filters.
func (r *Reporter) Filters() []*Filter {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.filters)
}

// FilterMatches returns how many diagnostics each filter suppressed, in the
// order of Filters.
func (r *Reporter) FilterMatches() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make([]int, len(r.filters))
	for i, f := range r.filters {
		counts[i] = f.matches
	}
	return counts
}

// OpenLog copies every written line, unstyled, into the file at path.
func (r *Reporter) OpenLog(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.log != nil {
		_ = r.log.Close()
	}
	r.log = f
	return nil
}

// Close closes the log file, if any. Pending diagnostics are not written.
func (r *Reporter) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.log == nil {
		return nil
	}
	err := r.log.Close()
	r.log = nil
	return err
}

// FileError implements lint.Reporter.
func (r *Reporter) FileError(file *tree.File, ruleID, message string) {
	r.Emit(lint.NewFileError(file, ruleID, message))
}

// CodeIssue implements lint.Reporter.
func (r *Reporter) CodeIssue(include *tree.Include, ruleID, message string) {
	r.Emit(lint.NewCodeIssue(include, ruleID, message))
}

// DocError implements lint.Reporter.
func (r *Reporter) DocError(entity tree.Entity, ruleID, message string) {
	r.Emit(lint.NewDocError(entity, ruleID, message))
}

// DocNote implements lint.Reporter.
func (r *Reporter) DocNote(entity tree.Entity, ruleID, message string) {
	r.Emit(lint.NewDocNote(entity, ruleID, message))
}

// InputWarning reports a problem found while loading the tree. It is written
// as a note without a rule ID.
func (r *Reporter) InputWarning(w tree.Warning) {
	r.Emit(lint.Diagnostic{
		Severity: core.SeverityNote,
		Location: w.Location,
		Message:  w.Message,
	})
}

// Emit implements lint.Sink. Filtered diagnostics are dropped.
func (r *Reporter) Emit(d lint.Diagnostic) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.filters {
		if f.Matches(d) {
			f.matches++
			r.stats.Filtered++
			return
		}
	}
	r.pending = append(r.pending, d)
}

// ReportUnusedFilters queues a note for every filter that has not matched.
func (r *Reporter) ReportUnusedFilters() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.filters {
		if f.matches > 0 {
			continue
		}
		r.pending = append(r.pending, lint.Diagnostic{
			Severity: core.SeverityNote,
			Location: tree.Location{Path: f.Source, Line: f.Line},
			Message:  "unused filter: " + f.Text,
		})
	}
}

// Pending returns the number of buffered diagnostics.
func (r *Reporter) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending)
}

// Flush implements lint.Sink. It writes the pending diagnostics in the order
// they were emitted and empties the buffer.
func (r *Reporter) Flush() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var errs []error
	for _, d := range r.pending {
		plain := Line(d)
		var line string
		switch r.format {
		case FormatJSON:
			b, err := json.Marshal(newRecord(r.runID, d))
			if err != nil {
				errs = append(errs, err)
				continue
			}
			line = string(b)
		default:
			line = r.styles.format(d)
		}

		if _, err := fmt.Fprintln(r.out, line); err != nil {
			errs = append(errs, err)
		}
		if r.log != nil {
			if _, err := fmt.Fprintln(r.log, plain); err != nil {
				errs = append(errs, fmt.Errorf("log file: %w", err))
			}
		}
		r.count(d)
	}
	r.pending = r.pending[:0]
	return errors.Join(errs...)
}

func (r *Reporter) count(d lint.Diagnostic) {
	switch d.Severity {
	case core.SeverityError:
		r.stats.Errors++
	case core.SeverityIssue:
		r.stats.Issues++
	case core.SeverityNote:
		r.stats.Notes++
	}
}

// Stats returns counts of what has been written so far.
func (r *Reporter) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}

// Reset clears the pending buffer, statistics and filter usage so the
// Reporter can serve another run.
func (r *Reporter) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending = r.pending[:0]
	r.stats = Stats{}
	for _, f := range r.filters {
		f.matches = 0
	}
}

var (
	_ lint.Reporter = (*Reporter)(nil)
	_ lint.Sink     = (*Reporter)(nil)
)

// severityStyles colors the severity word of text lines.
type severityStyles struct {
	enabled bool
	error   lipgloss.Style
	issue   lipgloss.Style
	note    lipgloss.Style
	muted   lipgloss.Style
}

func newSeverityStyles(w io.Writer, color bool) severityStyles {
	re := lipgloss.NewRenderer(w)
	if color {
		re.SetColorProfile(termenv.ANSI256)
	} else {
		re.SetColorProfile(termenv.Ascii)
	}
	return severityStyles{
		enabled: color,
		error:   re.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		issue:   re.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		note:    re.NewStyle().Foreground(lipgloss.Color("39")),
		muted:   re.NewStyle().Foreground(lipgloss.Color("245")),
	}
}

func (s severityStyles) format(d lint.Diagnostic) string {
	if !s.enabled {
		return Line(d)
	}
	var sev lipgloss.Style
	switch d.Severity {
	case core.SeverityError:
		sev = s.error
	case core.SeverityIssue:
		sev = s.issue
	default:
		sev = s.note
	}
	var b strings.Builder
	if loc := d.Location.String(); loc != "" {
		b.WriteString(loc)
		b.WriteString(": ")
	}
	b.WriteString(sev.Render(d.Severity.String()))
	b.WriteString(": ")
	b.WriteString(filterText(d))
	if d.RuleID != "" {
		b.WriteString(" ")
		b.WriteString(s.muted.Render("[" + d.RuleID + "]"))
	}
	return b.String()
}
