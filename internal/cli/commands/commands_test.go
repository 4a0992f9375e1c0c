package commands

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/leapstack-labs/doccheck/internal/cli/config"
	"github.com/leapstack-labs/doccheck/internal/cli/output"
	clitestutil "github.com/leapstack-labs/doccheck/internal/cli/testutil"
	"github.com/leapstack-labs/doccheck/internal/testutil"
	"github.com/leapstack-labs/doccheck/pkg/core"
	"github.com/leapstack-labs/doccheck/pkg/lint"
	"github.com/leapstack-labs/doccheck/pkg/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCheckCommand(t *testing.T) {
	cmd := NewCheckCommand()

	assert.Equal(t, "check [tree-file]", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Example)

	flags := []string{
		"source-root", "build-root", "installed", "log", "ignore", "check-ignored",
		"jobs", "disable", "format", "exit-zero", "watch", "summary",
	}
	for _, flag := range flags {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
	assert.Equal(t, "S", cmd.Flags().Lookup("source-root").Shorthand)
	assert.Equal(t, "j", cmd.Flags().Lookup("jobs").Shorthand)
}

func TestBuildLintConfig(t *testing.T) {
	assert.Empty(t, buildLintConfig(nil).DisabledRules)
	assert.Empty(t, buildLintConfig(config.Default()).DisabledRules)

	cfg := config.Default()
	cfg.Lint = &config.LintConfig{
		Disabled: []string{" df09 ", "DE01", ""},
		Severity: map[string]core.Severity{"di02": core.SeverityNote},
	}
	lintCfg := buildLintConfig(cfg)

	assert.True(t, lintCfg.IsDisabled(lint.RuleFileBrief))
	assert.True(t, lintCfg.IsDisabled(lint.RuleEntityBrief))
	assert.Len(t, lintCfg.DisabledRules, 2)
	assert.Equal(t, core.SeverityNote, lintCfg.GetSeverity(lint.RuleNonLocalAsLocal, core.SeverityIssue))
}

func TestReportFormat(t *testing.T) {
	text := output.NewRendererWithTTY(&bytes.Buffer{}, &bytes.Buffer{}, false, output.ModeText)
	js := output.NewRendererWithTTY(&bytes.Buffer{}, &bytes.Buffer{}, false, output.ModeJSON)

	f, err := reportFormat("", text)
	require.NoError(t, err)
	assert.Equal(t, report.FormatText, f)

	f, err = reportFormat("", js)
	require.NoError(t, err)
	assert.Equal(t, report.FormatJSON, f, "json output mode implies json report")

	f, err = reportFormat("text", js)
	require.NoError(t, err)
	assert.Equal(t, report.FormatText, f, "explicit format wins")

	_, err = reportFormat("yaml", text)
	assert.Error(t, err)
}

func TestWatchedInputs(t *testing.T) {
	cfg := config.Default()
	cfg.Tree = "/p/tree.yaml"
	cfg.Ignore = "/p/./ignore.txt"

	assert.Equal(t, map[string]bool{"/p/tree.yaml": true, "/p/ignore.txt": true}, watchedInputs(cfg))
}

func TestWatchLoop_RerunsOnChange(t *testing.T) {
	dir := t.TempDir()
	treePath := filepath.Join(dir, "tree.yaml")
	require.NoError(t, os.WriteFile(treePath, []byte("files: []\n"), 0600))

	watcher, err := fsnotify.NewWatcher()
	require.NoError(t, err)
	defer func() { _ = watcher.Close() }()
	require.NoError(t, watcher.Add(dir))

	ctx, cancel := context.WithCancel(context.Background())
	var runs atomic.Int32
	logger, logs := testutil.NewBufferLogger()
	done := make(chan struct{})
	go func() {
		defer close(done)
		watchLoop(ctx, watcher, map[string]bool{treePath: true}, 20*time.Millisecond,
			logger, func() { runs.Add(1) })
	}()

	// Unrelated files are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0600))
	require.NoError(t, os.WriteFile(treePath, []byte("files: []\n# edited\n"), 0600))

	assert.Eventually(t, func() bool { return runs.Load() >= 1 }, 5*time.Second, 10*time.Millisecond)
	assert.Contains(t, logs.String(), "file=tree.yaml")
	assert.NotContains(t, logs.String(), "other.txt")

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("watch loop did not stop after cancel")
	}
}

func TestWatchRun_ReportsFailure(t *testing.T) {
	tt := clitestutil.SetupTestTree(t)
	cfg := config.Default()
	cfg.Tree = tt.Tree

	r := clitestutil.NewTestRenderer(output.ModeText, false)
	cc := &CommandContext{Cfg: cfg, Logger: slog.New(slog.DiscardHandler), Renderer: r.Renderer}
	run := watchRun(context.Background(), cc, &CheckOptions{})

	require.NoError(t, os.WriteFile(tt.Tree, []byte("files: [\n"), 0600))
	run()
	assert.Contains(t, r.ErrorOutput(), "! check failed: ")
	assert.Contains(t, r.ErrorOutput(), "tree.yaml")
	clitestutil.AssertNoANSI(t, r.ErrorOutput())

	// A later successful pass writes its report and no new warning.
	r.ErrOut.Reset()
	require.NoError(t, os.WriteFile(tt.Tree, []byte("files: []\n"), 0600))
	run()
	assert.Empty(t, r.ErrorOutput())
}

func TestWatchRun_IgnoresCancellation(t *testing.T) {
	tt := clitestutil.SetupTestTree(t)
	cfg := config.Default()
	cfg.Tree = tt.Tree

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := clitestutil.NewTestRenderer(output.ModeText, false)
	cc := &CommandContext{Cfg: cfg, Logger: slog.New(slog.DiscardHandler), Renderer: r.Renderer}
	watchRun(ctx, cc, &CheckOptions{})()
	assert.Empty(t, r.ErrorOutput())
}

func TestCheckOnce(t *testing.T) {
	tt := clitestutil.SetupTestTree(t)
	cfg := config.Default()
	cfg.Tree = tt.Tree
	cfg.SourceRoot = tt.Dir
	cfg.Installed = tt.Installed
	cfg.Ignore = tt.Ignore

	r := clitestutil.NewTestRenderer(output.ModeText, false)
	cc := &CommandContext{Cfg: cfg, Logger: testutil.NewTestLogger(t), Renderer: r.Renderer}

	stats, err := checkOnce(context.Background(), cc, &CheckOptions{Summary: true})
	require.NoError(t, err)

	assert.Equal(t,
		`src/analysis/analysis.h:9: issue: installed header includes non-installed file: #include "detail.h" [DI04]`+"\n",
		r.Output())
	assert.Equal(t, report.Stats{Issues: 1, Filtered: 1}, stats)
	assert.Contains(t, r.ErrorOutput(), "0 errors, 1 issues, 0 notes (1 filtered, 0 disabled)")
	clitestutil.AssertNoANSI(t, r.Output())

	// The same inputs fail the command unless exit-zero is set.
	assert.ErrorIs(t, runCheck(context.Background(), cc, &CheckOptions{}), ErrIssuesFound)
	assert.NoError(t, runCheck(context.Background(), cc, &CheckOptions{ExitZero: true}))
}

func TestCheckOnce_BuildRootInstalledPaths(t *testing.T) {
	tt := clitestutil.SetupTestTree(t)
	buildRoot := filepath.Join(tt.Dir, "build")
	installed := filepath.Join(tt.Dir, "installed-build.txt")
	require.NoError(t, os.WriteFile(installed,
		[]byte(filepath.Join(buildRoot, "src", "analysis", "analysis.h")+"\n"), 0600))

	cfg := config.Default()
	cfg.Tree = tt.Tree
	cfg.SourceRoot = filepath.Join(tt.Dir, "source")
	cfg.BuildRoot = buildRoot
	cfg.Installed = installed
	cfg.Ignore = tt.Ignore

	r := clitestutil.NewTestRenderer(output.ModeText, false)
	cc := &CommandContext{Cfg: cfg, Logger: testutil.NewTestLogger(t), Renderer: r.Renderer}

	stats, err := checkOnce(context.Background(), cc, &CheckOptions{})
	require.NoError(t, err)
	assert.Equal(t,
		`src/analysis/analysis.h:9: issue: installed header includes non-installed file: #include "detail.h" [DI04]`+"\n",
		r.Output())
	assert.Equal(t, report.Stats{Issues: 1, Filtered: 1}, stats)
}

func TestCheckOnce_Canceled(t *testing.T) {
	tt := clitestutil.SetupTestTree(t)
	cfg := config.Default()
	cfg.Tree = tt.Tree

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := clitestutil.NewTestRenderer(output.ModeText, false)
	cc := &CommandContext{Cfg: cfg, Logger: testutil.NewTestLogger(t), Renderer: r.Renderer}
	_, err := checkOnce(ctx, cc, &CheckOptions{})
	assert.ErrorIs(t, err, context.Canceled)
}
