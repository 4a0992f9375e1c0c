package commands

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/leapstack-labs/doccheck/internal/cli/config"
	"github.com/leapstack-labs/doccheck/internal/cli/output"
	"github.com/leapstack-labs/doccheck/pkg/lint"
	"github.com/leapstack-labs/doccheck/pkg/report"
	"github.com/leapstack-labs/doccheck/pkg/tree"
	"github.com/spf13/cobra"
)

// ErrIssuesFound is returned when errors or issues were reported.
var ErrIssuesFound = errors.New("documentation issues found")

// CheckOptions holds options for the check command that are not part of the
// configuration file.
type CheckOptions struct {
	Format   string // Report format: text, json
	ExitZero bool   // Succeed even when issues are found
	Watch    bool   // Re-run when inputs change
	Summary  bool   // Print per-rule counts
}

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	opts := &CheckOptions{}
	cmd := &cobra.Command{
		Use:   "check [tree-file]",
		Short: "Check documentation tiers for consistency",
		Long: `Check the documentation tiers of a source tree for consistency.

The tree file (YAML, JSON or TOML) describes files, includes, classes and
members together with their documentation tier. Every file, include, class and
visible member is checked; findings are written as

  path[:line]: severity: [subject: ]message [RULE]

Errors and issues make the command fail unless --exit-zero is given.`,
		Example: `  # Check a tree produced by the scanner
  doccheck check build/doc-tree.yaml -S src --installed build/installed.txt

  # Suppress known findings and keep a log
  doccheck check tree.yaml --ignore doccheck.ignore -l doccheck.log

  # Machine-readable output
  doccheck check tree.yaml --format json

  # Re-run on every change
  doccheck check tree.yaml --watch`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc := NewCommandContext(cmd)
			if len(args) > 0 {
				abs, err := filepath.Abs(args[0])
				if err != nil {
					return err
				}
				cc.Cfg.Tree = abs
			}
			if err := cc.Cfg.ValidateForCheck(); err != nil {
				return err
			}
			if opts.Watch {
				return runWatch(cmd.Context(), cc, opts)
			}
			return runCheck(cmd.Context(), cc, opts)
		},
	}

	cmd.Flags().StringP("source-root", "S", "", "Source tree root; installed-list paths under it are made relative to it")
	cmd.Flags().StringP("build-root", "B", "", "Build tree root; installed-list paths under it are made relative to it")
	cmd.Flags().String("installed", "", "File listing installed headers, one per line")
	cmd.Flags().StringP("log", "l", "", "Also write all findings to this file")
	cmd.Flags().String("ignore", "", "File with filters for findings to suppress")
	cmd.Flags().Bool("check-ignored", false, "Also check members the documentation tool ignores")
	cmd.Flags().IntP("jobs", "j", 0, "Parallel check workers (0 = number of CPUs)")
	cmd.Flags().StringSlice("disable", nil, "Rule IDs to disable")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Report format: text, json")
	cmd.Flags().BoolVar(&opts.ExitZero, "exit-zero", false, "Exit successfully even when issues are found")
	cmd.Flags().BoolVar(&opts.Watch, "watch", false, "Re-run the check when inputs change")
	cmd.Flags().BoolVar(&opts.Summary, "summary", false, "Print a per-rule summary")

	_ = cmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"text", "json"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("disable", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		rules := lint.GetAll()
		ids := make([]string, len(rules))
		for i, r := range rules {
			ids[i] = r.ID + "\t" + r.Description
		}
		return ids, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runCheck(ctx context.Context, cc *CommandContext, opts *CheckOptions) error {
	stats, err := checkOnce(ctx, cc, opts)
	if err != nil {
		return err
	}
	if stats.Blocking() && !opts.ExitZero {
		return ErrIssuesFound
	}
	return nil
}

// checkOnce loads the inputs, runs every check and writes the report.
func checkOnce(ctx context.Context, cc *CommandContext, opts *CheckOptions) (report.Stats, error) {
	cfg := cc.Cfg
	logger := cc.Logger

	format, err := reportFormat(opts.Format, cc.Renderer)
	if err != nil {
		return report.Stats{}, err
	}

	logger.Info("Scanning source tree...", "tree", cfg.Tree)
	t, err := tree.Load(cfg.Tree)
	if err != nil {
		return report.Stats{}, err
	}
	if cfg.Installed != "" {
		installed, err := tree.LoadInstalledList(cfg.Installed)
		if err != nil {
			return report.Stats{}, err
		}
		t.MarkInstalled(installed, cfg.SourceRoot, cfg.BuildRoot)
		logger.Debug("marked installed files", "count", len(installed))
	}

	rep := report.New(cc.Renderer.Writer(), report.Options{
		Format: format,
		Color:  format == report.FormatText && cc.Renderer.ColorEnabled(),
	})
	if cfg.Ignore != "" {
		if err := rep.LoadFilters(cfg.Ignore); err != nil {
			return report.Stats{}, err
		}
	}
	if cfg.Log != "" {
		if err := rep.OpenLog(cfg.Log); err != nil {
			return report.Stats{}, err
		}
		defer func() { _ = rep.Close() }()
	}

	for _, w := range t.Warnings() {
		rep.InputWarning(w)
	}
	if err := rep.Flush(); err != nil {
		return report.Stats{}, fmt.Errorf("failed to write report: %w", err)
	}

	logger.Info("Checking...",
		"files", len(t.Files()), "classes", len(t.Classes()), "members", len(t.Members()))
	driver := lint.NewDriver(buildLintConfig(cfg), lint.Options{
		CheckIgnored: cfg.CheckIgnored,
		Jobs:         cfg.Jobs,
		Logger:       logger,
	})
	res, err := driver.Run(ctx, t, rep)
	if err != nil {
		return rep.Stats(), err
	}

	if cfg.Ignore != "" {
		rep.ReportUnusedFilters()
		if err := rep.Flush(); err != nil {
			return rep.Stats(), fmt.Errorf("failed to write report: %w", err)
		}
	}

	stats := rep.Stats()
	logger.Debug("check complete",
		"errors", stats.Errors, "issues", stats.Issues, "notes", stats.Notes,
		"filtered", stats.Filtered, "disabled", res.Suppressed)

	if opts.Summary {
		renderSummary(cc.Renderer, res, stats)
	}
	return stats, nil
}

func reportFormat(flag string, r *output.Renderer) (report.Format, error) {
	if flag == "" && r.EffectiveMode() == output.ModeJSON {
		return report.FormatJSON, nil
	}
	return report.ParseFormat(flag)
}

// buildLintConfig merges the config file's lint section; --disable arrives
// through the same key.
func buildLintConfig(cfg *config.Config) *lint.Config {
	lintCfg := lint.NewConfig()
	if cfg == nil || cfg.Lint == nil {
		return lintCfg
	}
	for _, id := range cfg.Lint.Disabled {
		if id = strings.ToUpper(strings.TrimSpace(id)); id != "" {
			lintCfg.Disable(id)
		}
	}
	for id, sev := range cfg.Lint.Severity {
		lintCfg.SetSeverity(strings.ToUpper(id), sev)
	}
	return lintCfg
}

// renderSummary writes per-rule counts to the diagnostic stream so that
// report output stays parseable.
func renderSummary(r *output.Renderer, res *lint.Result, stats report.Stats) {
	summary := output.NewRendererWithTTY(r.ErrWriter(), r.ErrWriter(), r.IsTTY(), output.ModeText)

	var rows [][]string
	for _, def := range lint.GetAll() {
		if n := res.ByRule[def.ID]; n > 0 {
			rows = append(rows, []string{def.ID, def.Name, strconv.Itoa(n)})
		}
	}
	if len(rows) > 0 {
		summary.Table([]string{"Rule", "Name", "Count"}, rows)
	}

	line := fmt.Sprintf("%d errors, %d issues, %d notes", stats.Errors, stats.Issues, stats.Notes)
	if stats.Filtered > 0 || res.Suppressed > 0 {
		line += fmt.Sprintf(" (%d filtered, %d disabled)", stats.Filtered, res.Suppressed)
	}
	if stats.Blocking() {
		summary.Println(summary.Styles().Error.Render(line))
	} else {
		summary.Success(line)
	}
}
