package lint

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/leapstack-labs/doccheck/pkg/core"
	"github.com/leapstack-labs/doccheck/pkg/tree"
	"golang.org/x/sync/errgroup"
)

// Phase is one stage of the traversal. The sink is flushed after each.
type Phase int

// Traversal phases, in run order.
const (
	PhaseFiles Phase = iota
	PhaseClasses
	PhaseMembers
)

func (p Phase) String() string {
	switch p {
	case PhaseFiles:
		return "files"
	case PhaseClasses:
		return "classes"
	case PhaseMembers:
		return "members"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Options controls the traversal.
type Options struct {
	// CheckIgnored also checks members the documentation tool ignores.
	CheckIgnored bool

	// Jobs bounds parallel evaluation. Zero or less uses GOMAXPROCS;
	// one runs serially. Output order does not depend on it.
	Jobs int

	Logger *slog.Logger
}

// Result summarizes a run.
type Result struct {
	Errors     int
	Issues     int
	Notes      int
	Suppressed int // dropped because their rule is disabled
	ByRule     map[string]int
}

// Total returns the number of emitted diagnostics.
func (r *Result) Total() int {
	return r.Errors + r.Issues + r.Notes
}

// Blocking reports whether any error or issue was emitted.
func (r *Result) Blocking() bool {
	return r.Errors > 0 || r.Issues > 0
}

func (r *Result) add(d Diagnostic) {
	switch d.Severity {
	case core.SeverityError:
		r.Errors++
	case core.SeverityIssue:
		r.Issues++
	case core.SeverityNote:
		r.Notes++
	}
	r.ByRule[d.RuleID]++
}

// Driver runs all checks over a tree.
type Driver struct {
	config *Config
	opts   Options
	logger *slog.Logger
}

// NewDriver creates a driver. A nil config enables every rule.
func NewDriver(config *Config, opts Options) *Driver {
	if config == nil {
		config = NewConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Driver{config: config, opts: opts, logger: logger}
}

// Run checks every file and its includes, every class, then every member
// (only visible ones unless CheckIgnored is set). Diagnostics reach the sink
// in traversal order, and the sink is flushed after each phase.
func (d *Driver) Run(ctx context.Context, t *tree.Tree, sink Sink) (*Result, error) {
	res := &Result{ByRule: make(map[string]int)}

	files := t.Files()
	err := d.runPhase(ctx, PhaseFiles, len(files), func(i int) tree.Entity {
		if files[i] == nil {
			return nil
		}
		return files[i]
	}, func(i int, r Reporter) {
		f := files[i]
		CheckFile(f, r)
		for _, inc := range f.Includes {
			CheckInclude(f, inc, r)
		}
	}, sink, res)
	if err != nil {
		return res, err
	}

	classes := t.Classes()
	err = d.runPhase(ctx, PhaseClasses, len(classes), func(i int) tree.Entity {
		if classes[i] == nil {
			return nil
		}
		return classes[i]
	}, func(i int, r Reporter) {
		CheckClass(classes[i], r)
	}, sink, res)
	if err != nil {
		return res, err
	}

	members := make([]*tree.Member, 0, len(t.Members()))
	for _, m := range t.Members() {
		if m != nil && (m.Visible || d.opts.CheckIgnored) {
			members = append(members, m)
		}
	}
	err = d.runPhase(ctx, PhaseMembers, len(members), func(i int) tree.Entity {
		if members[i] == nil {
			return nil
		}
		return members[i]
	}, func(i int, r Reporter) {
		CheckMember(members[i], r)
	}, sink, res)
	if err != nil {
		return res, err
	}

	return res, nil
}

// runPhase checks n entities. entity resolves an index to the entity being
// checked, which locates the diagnostic of a check that panics.
func (d *Driver) runPhase(ctx context.Context, phase Phase, n int, entity func(i int) tree.Entity,
	check func(i int, r Reporter), sink Sink, res *Result) error {
	// One collector per entity; indices are unique per goroutine.
	slots := make([]Collector, n)

	jobs := d.opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	if jobs == 1 || n < 2 {
		for i := 0; i < n; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			safeCheck(phase, i, entity(i), &slots[i], check)
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(min(jobs, n))
		for i := 0; i < n; i++ {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				safeCheck(phase, i, entity(i), &slots[i], check)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
	}

	before := res.Total()
	for i := range slots {
		for _, diag := range slots[i].Diagnostics() {
			if d.config.IsDisabled(diag.RuleID) {
				res.Suppressed++
				continue
			}
			diag.Severity = d.config.GetSeverity(diag.RuleID, diag.Severity)
			res.add(diag)
			sink.Emit(diag)
		}
	}

	d.logger.Debug("phase complete", "phase", phase.String(), "entities", n, "diagnostics", res.Total()-before)

	if err := sink.Flush(); err != nil {
		return fmt.Errorf("failed to flush %s diagnostics: %w", phase, err)
	}
	return nil
}

// safeCheck runs one entity's checks; a panic on a malformed entity becomes a
// DX01 diagnostic located at that entity instead of ending the run.
func safeCheck(phase Phase, i int, entity tree.Entity, c *Collector, check func(i int, r Reporter)) {
	defer func() {
		if p := recover(); p != nil {
			c.diags = append(c.diags, checkFailed(phase, i, entity, p))
		}
	}()
	check(i, c)
}

func checkFailed(phase Phase, i int, entity tree.Entity, p any) Diagnostic {
	msg := fmt.Sprintf("check failed in %s phase on entity #%d: %v", phase, i+1, p)
	switch e := entity.(type) {
	case nil:
		return Diagnostic{RuleID: RuleCheckFailed, Severity: core.SeverityError, Message: msg}
	case *tree.File:
		return NewFileError(e, RuleCheckFailed, msg)
	default:
		return NewDocError(e, RuleCheckFailed, msg)
	}
}
