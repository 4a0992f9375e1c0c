package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/leapstack-labs/doccheck/pkg/lint"
)

// Filter suppresses diagnostics matching a location glob and a message pattern.
type Filter struct {
	Source string // file the filter was read from
	Line   int
	Text   string // filter as written

	location string
	message  *regexp.Regexp
	matches  int // guarded by the owning Reporter's mutex
}

// ParseFilter parses one "<location-glob>: <message-glob>" filter.
func ParseFilter(text string) (*Filter, error) {
	loc, msg, ok := strings.Cut(text, ": ")
	if !ok {
		return nil, fmt.Errorf("filter %q: expected '<location>: <message>'", text)
	}
	loc = strings.TrimSpace(loc)
	msg = strings.TrimSpace(msg)
	if loc == "" || msg == "" {
		return nil, fmt.Errorf("filter %q: empty location or message", text)
	}
	if !doublestar.ValidatePattern(loc) {
		return nil, fmt.Errorf("filter %q: invalid location pattern", text)
	}
	return &Filter{
		Text:     text,
		location: loc,
		message:  wildcardRegexp(msg),
	}, nil
}

// wildcardRegexp turns a pattern where '*' matches anything into an anchored
// regexp; every other character is literal.
func wildcardRegexp(pattern string) *regexp.Regexp {
	parts := strings.Split(pattern, "*")
	for i, p := range parts {
		parts[i] = regexp.QuoteMeta(p)
	}
	return regexp.MustCompile("^" + strings.Join(parts, ".*") + "$")
}

// Matches reports whether d is suppressed by the filter.
func (f *Filter) Matches(d lint.Diagnostic) bool {
	ok, err := doublestar.Match(f.location, d.Location.Path)
	if err != nil || !ok {
		return false
	}
	return f.message.MatchString(filterText(d))
}

// Location returns where the filter was defined.
func (f *Filter) Location() string {
	if f.Source == "" {
		return ""
	}
	return fmt.Sprintf("%s:%d", f.Source, f.Line)
}

func filterText(d lint.Diagnostic) string {
	if d.Subject == "" {
		return d.Message
	}
	return d.Subject + ": " + d.Message
}

// ReadFilters parses filters from r. Blank lines and lines starting with '#'
// are skipped. source names the input in errors and in Filter.Source.
func ReadFilters(r io.Reader, source string) ([]*Filter, error) {
	var filters []*Filter
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		f, err := ParseFilter(line)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", source, lineNo, err)
		}
		f.Source = source
		f.Line = lineNo
		filters = append(filters, f)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", source, err)
	}
	return filters, nil
}

// LoadFilters reads filters from a file.
func LoadFilters(path string) ([]*Filter, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ignore file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return ReadFilters(f, path)
}
