package commands

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/doccheck/internal/cli/output"
	"github.com/leapstack-labs/doccheck/pkg/core"
	"github.com/leapstack-labs/doccheck/pkg/lint"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// RulesOptions holds options for the rules command.
type RulesOptions struct {
	Group  string // Filter by group
	Format string // Output format
}

// ruleGroups lists groups in check order.
var ruleGroups = []string{"file", "include", "entity", "class", "member", "engine"}

// NewRulesCommand creates the rules command.
func NewRulesCommand() *cobra.Command {
	opts := &RulesOptions{}
	cmd := &cobra.Command{
		Use:   "rules [rule-id]",
		Short: "List documentation check rules",
		Long: `List all documentation check rules, or show one rule in detail.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # List all rules
  doccheck rules

  # Show details for a specific rule
  doccheck rules DI05

  # List include rules only
  doccheck rules --group include

  # Output as JSON
  doccheck rules --format json`,
		Args: cobra.MaximumNArgs(1),
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			var ids []string
			for _, r := range lint.GetAll() {
				ids = append(ids, r.ID+"\t"+r.Name)
			}
			return ids, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			r := NewCommandContext(cmd).Renderer
			if opts.Format != "" {
				mode, err := output.ParseMode(opts.Format)
				if err != nil {
					return err
				}
				r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)
			}
			if len(args) > 0 {
				return showRule(r, args[0])
			}
			return listRules(r, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Group, "group", "g", "", "Filter by group: "+strings.Join(ruleGroups, ", "))
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, json, markdown")

	_ = cmd.RegisterFlagCompletionFunc("group", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return ruleGroups, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func filterRules(rules []core.RuleInfo, group string) []core.RuleInfo {
	if group == "" {
		return rules
	}
	var filtered []core.RuleInfo
	for _, r := range rules {
		if r.Group == group {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

func listRules(r *output.Renderer, opts *RulesOptions) error {
	rules := filterRules(lint.AllRules(), opts.Group)
	if opts.Group != "" && len(rules) == 0 {
		return fmt.Errorf("unknown rule group %q (want one of %s)", opts.Group, strings.Join(ruleGroups, ", "))
	}

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(struct {
			Rules []core.RuleInfo `json:"rules"`
			Count int             `json:"count"`
		}{rules, len(rules)})
	}

	r.Header(1, fmt.Sprintf("Documentation Rules (%d)", len(rules)))
	titleCaser := cases.Title(language.English)
	for _, group := range ruleGroups {
		var rows [][]string
		for _, rule := range rules {
			if rule.Group == group {
				rows = append(rows, []string{rule.ID, rule.Name, rule.DefaultSeverity.String(), rule.Description})
			}
		}
		if len(rows) == 0 {
			continue
		}
		r.Println("")
		r.Header(2, titleCaser.String(group))
		r.Table([]string{"ID", "Name", "Severity", "Description"}, rows)
	}

	if r.EffectiveMode() == output.ModeText {
		r.Println("")
		r.Muted("Use 'doccheck rules <rule-id>' for detailed documentation")
	}
	return nil
}

func showRule(r *output.Renderer, ruleID string) error {
	def, ok := lint.GetByID(strings.ToUpper(ruleID))
	if !ok {
		return fmt.Errorf("rule %q not found", ruleID)
	}
	rule := def.Info()

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(rule)
	case output.ModeMarkdown:
		showRuleMarkdown(r, &rule)
	default:
		showRuleText(r, &rule)
	}
	return nil
}

// showRuleText displays detailed rule info in text format.
func showRuleText(r *output.Renderer, rule *core.RuleInfo) {
	styles := r.Styles()

	r.Println("")
	r.Println(styles.Header1.Render(fmt.Sprintf("%s - %s", rule.ID, rule.Name)))
	r.Println("")
	r.Printf("  %s: %s\n", styles.Bold.Render("Group"), rule.Group)
	r.Printf("  %s: %s\n", styles.Bold.Render("Severity"), rule.DefaultSeverity.String())
	r.Println("")

	r.Println(styles.Bold.Render("Description"))
	r.Println("  " + rule.Description)
	r.Println("")

	if rule.Rationale != "" {
		r.Println(styles.Bold.Render("Why This Matters"))
		r.Println("  " + rule.Rationale)
		r.Println("")
	}
	if rule.Fix != "" {
		r.Println(styles.Bold.Render("How to Fix"))
		r.Println("  " + rule.Fix)
		r.Println("")
	}
}

// showRuleMarkdown displays detailed rule info in markdown format.
func showRuleMarkdown(r *output.Renderer, rule *core.RuleInfo) {
	r.Printf("# %s - %s\n\n", rule.ID, rule.Name)
	r.Printf("**Group:** %s | **Severity:** `%s`\n\n", rule.Group, rule.DefaultSeverity.String())
	r.Println(rule.Description)
	r.Println("")

	if rule.Rationale != "" {
		r.Println("## Why This Matters")
		r.Println("")
		r.Println(rule.Rationale)
		r.Println("")
	}
	if rule.Fix != "" {
		r.Println("## How to Fix")
		r.Println("")
		r.Println(rule.Fix)
		r.Println("")
	}
}
