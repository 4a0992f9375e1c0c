// Package testutil provides test utilities for CLI testing.
package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/leapstack-labs/doccheck/internal/cli/output"
)

// TestTree holds the paths of a project written by SetupTestTree.
type TestTree struct {
	Dir       string
	Tree      string
	Installed string
	Ignore    string
}

// SetupTestTree writes a small tree file, installed list and ignore file to a
// temporary directory. Checking it yields exactly one issue: the installed
// public header includes a non-installed internal header, which the ignore
// file does not cover.
func SetupTestTree(t *testing.T) *TestTree {
	t.Helper()

	dir := t.TempDir()
	tt := &TestTree{
		Dir:       dir,
		Tree:      filepath.Join(dir, "tree.yaml"),
		Installed: filepath.Join(dir, "installed.txt"),
		Ignore:    filepath.Join(dir, "doccheck.ignore"),
	}

	treeDoc := `modules:
  - name: analysis
    documented: true
files:
  - path: src/analysis/analysis.h
    documented: true
    doc_tier: public
    brief: true
    module: analysis
    doc_modules: [analysis]
    includes:
      - name: detail.h
        line: 9
        relative: true
        target: src/analysis/detail.h
  - path: src/analysis/detail.h
    documented: true
    doc_tier: public
    brief: true
    module: analysis
    doc_modules: [analysis]
`
	writeFile(t, tt.Tree, treeDoc)
	writeFile(t, tt.Installed, "src/analysis/analysis.h\n")
	writeFile(t, tt.Ignore, "src/analysis/detail.h: non-installed header has public documentation\n")
	return tt
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to create %s: %v", path, err)
	}
}

// TestRenderer wraps a Renderer for testing with captured output buffers.
type TestRenderer struct {
	*output.Renderer
	Out    *bytes.Buffer
	ErrOut *bytes.Buffer
}

// NewTestRenderer creates a new test renderer with the specified mode and TTY state.
// Output is captured in buffers for inspection.
func NewTestRenderer(mode output.Mode, isTTY bool) *TestRenderer {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return &TestRenderer{
		Renderer: output.NewRendererWithTTY(out, errOut, isTTY, mode),
		Out:      out,
		ErrOut:   errOut,
	}
}

// Output returns the stdout output as a string.
func (tr *TestRenderer) Output() string {
	return tr.Out.String()
}

// ErrorOutput returns the stderr output as a string.
func (tr *TestRenderer) ErrorOutput() string {
	return tr.ErrOut.String()
}

// ansiPattern matches ANSI escape codes.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// AssertNoANSI checks that a string contains no ANSI escape codes.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	if ansiPattern.MatchString(s) {
		t.Errorf("string contains ANSI escape codes: %q", s)
	}
}
