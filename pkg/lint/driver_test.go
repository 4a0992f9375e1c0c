package lint

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/leapstack-labs/doccheck/pkg/core"
	"github.com/leapstack-labs/doccheck/pkg/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingSink records emitted diagnostics and the number emitted before
// each flush.
type recordingSink struct {
	diags    []Diagnostic
	flushes  []int
	flushErr error
}

func (s *recordingSink) Emit(d Diagnostic) { s.diags = append(s.diags, d) }

func (s *recordingSink) Flush() error {
	s.flushes = append(s.flushes, len(s.diags))
	return s.flushErr
}

func (s *recordingSink) ruleIDs() []string {
	ids := make([]string, len(s.diags))
	for i, d := range s.diags {
		ids[i] = d.RuleID
	}
	return ids
}

func fixtureTree(t *testing.T) *tree.Tree {
	t.Helper()
	tr := tree.New()
	sel := tr.AddModule("selection", true)

	a := &tree.File{Path: "src/a.h", Documented: true, DocTier: core.DocTierPublic, HasBrief: true, Module: sel}
	a.Includes = []*tree.Include{{File: a, Name: "b.h", Line: 3}}
	b := &tree.File{Path: "src/b.cpp", Documented: true, Source: true, Installed: true, DocTier: core.DocTierInternal, Module: sel}
	require.NoError(t, tr.AddFile(a))
	require.NoError(t, tr.AddFile(b))

	tr.AddClass(&tree.Class{Name: "C", Documented: true, HasBrief: true, DocTier: core.DocTierPublic, Files: []*tree.File{a}, Line: 10})
	tr.AddMember(&tree.Member{Name: "visible", Documented: true, Visible: true, File: a, Line: 20})
	tr.AddMember(&tree.Member{Name: "hidden", Documented: true, HasBrief: true, File: b, Line: 5})
	return tr
}

func TestDriver_TraversalOrder(t *testing.T) {
	sink := &recordingSink{}
	res, err := NewDriver(nil, Options{Jobs: 1}).Run(context.Background(), fixtureTree(t), sink)
	require.NoError(t, err)

	assert.Equal(t, []string{
		RuleNotInstalledPublicDoc,
		RuleNonLocalAsLocal,
		RuleSourceInstalled,
		RuleFileBrief,
		RulePublicClassNotInstalled,
		RuleEntityBrief,
	}, sink.ruleIDs())
	assert.Equal(t, []int{4, 5, 6}, sink.flushes)

	assert.Equal(t, 5, res.Errors)
	assert.Equal(t, 1, res.Issues)
	assert.Equal(t, 0, res.Notes)
	assert.Equal(t, 6, res.Total())
	assert.True(t, res.Blocking())
	assert.Equal(t, 1, res.ByRule[RuleFileBrief])
}

func TestDriver_Locations(t *testing.T) {
	sink := &recordingSink{}
	_, err := NewDriver(nil, Options{Jobs: 1}).Run(context.Background(), fixtureTree(t), sink)
	require.NoError(t, err)

	got := make([]string, len(sink.diags))
	for i, d := range sink.diags {
		got[i] = d.Location.String()
	}
	assert.Equal(t, []string{"src/a.h", "src/a.h:3", "src/b.cpp", "src/b.cpp", "src/a.h:10", "src/a.h:20"}, got)
}

func TestDriver_CheckIgnored(t *testing.T) {
	sink := &recordingSink{}
	res, err := NewDriver(nil, Options{Jobs: 1, CheckIgnored: true}).Run(context.Background(), fixtureTree(t), sink)
	require.NoError(t, err)

	require.Len(t, sink.diags, 7)
	last := sink.diags[6]
	assert.Equal(t, RuleIgnoredScope, last.RuleID)
	assert.Equal(t, "hidden", last.Subject)
	assert.Equal(t, 1, res.Notes)
}

func TestDriver_ParallelMatchesSerial(t *testing.T) {
	tr := tree.New()
	for i := 0; i < 200; i++ {
		f := &tree.File{
			Path:       fmt.Sprintf("src/f%03d.h", i),
			Documented: true,
			DocTier:    core.AllDocTiers()[1+i%3],
			HasBrief:   i%2 == 0,
			Installed:  i%5 == 0,
		}
		f.Includes = []*tree.Include{{File: f, Name: "missing.h", Line: i + 1}}
		require.NoError(t, tr.AddFile(f))
		tr.AddMember(&tree.Member{Name: fmt.Sprintf("m%d", i), Documented: true, Visible: i%3 != 0, File: f})
	}

	serial := &recordingSink{}
	_, err := NewDriver(nil, Options{Jobs: 1, CheckIgnored: true}).Run(context.Background(), tr, serial)
	require.NoError(t, err)

	for _, jobs := range []int{0, 2, 8, 64} {
		t.Run(fmt.Sprintf("jobs=%d", jobs), func(t *testing.T) {
			parallel := &recordingSink{}
			_, err := NewDriver(nil, Options{Jobs: jobs, CheckIgnored: true}).Run(context.Background(), tr, parallel)
			require.NoError(t, err)
			assert.Equal(t, serial.diags, parallel.diags)
			assert.Equal(t, serial.flushes, parallel.flushes)
		})
	}
}

func TestDriver_Idempotent(t *testing.T) {
	tr := fixtureTree(t)
	d := NewDriver(nil, Options{Jobs: 4})

	first := &recordingSink{}
	_, err := d.Run(context.Background(), tr, first)
	require.NoError(t, err)

	second := &recordingSink{}
	_, err = d.Run(context.Background(), tr, second)
	require.NoError(t, err)

	assert.Equal(t, first.diags, second.diags)
}

func TestDriver_Config(t *testing.T) {
	cfg := NewConfig().
		Disable(RuleFileBrief).
		Disable(RuleEntityBrief).
		SetSeverity(RuleNonLocalAsLocal, core.SeverityNote)

	sink := &recordingSink{}
	res, err := NewDriver(cfg, Options{Jobs: 1}).Run(context.Background(), fixtureTree(t), sink)
	require.NoError(t, err)

	assert.Equal(t, []string{
		RuleNotInstalledPublicDoc,
		RuleNonLocalAsLocal,
		RuleSourceInstalled,
		RulePublicClassNotInstalled,
	}, sink.ruleIDs())
	assert.Equal(t, core.SeverityNote, sink.diags[1].Severity)
	assert.Equal(t, 2, res.Suppressed)
	assert.Equal(t, 0, res.Issues)
	assert.Equal(t, 1, res.Notes)
}

func TestDriver_DisablingKeepsPrecedence(t *testing.T) {
	// Disabling the winning rule of a chain does not surface the next one.
	tr := tree.New()
	f := &tree.File{Path: "src/a.h", Documented: true, HasBrief: true, DocTier: core.DocTierPublic, APITier: core.DocTierPublic}
	require.NoError(t, tr.AddFile(f))

	sink := &recordingSink{}
	res, err := NewDriver(NewConfig().Disable(RuleNotInstalledPublicDoc), Options{}).Run(context.Background(), tr, sink)
	require.NoError(t, err)
	assert.Empty(t, sink.diags)
	assert.Equal(t, 1, res.Suppressed)
}

func TestDriver_EmptyTree(t *testing.T) {
	sink := &recordingSink{}
	res, err := NewDriver(nil, Options{}).Run(context.Background(), tree.New(), sink)
	require.NoError(t, err)
	assert.Empty(t, sink.diags)
	assert.Equal(t, []int{0, 0, 0}, sink.flushes)
	assert.False(t, res.Blocking())
}

func TestDriver_FlushError(t *testing.T) {
	sink := &recordingSink{flushErr: errors.New("disk full")}
	_, err := NewDriver(nil, Options{Jobs: 1}).Run(context.Background(), fixtureTree(t), sink)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to flush files diagnostics")
	assert.ErrorIs(t, err, sink.flushErr)
	assert.Len(t, sink.flushes, 1)
}

func TestDriver_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, jobs := range []int{1, 4} {
		sink := &recordingSink{}
		_, err := NewDriver(nil, Options{Jobs: jobs}).Run(ctx, fixtureTree(t), sink)
		assert.ErrorIs(t, err, context.Canceled, "jobs=%d", jobs)
		assert.Empty(t, sink.diags)
	}
}

func TestSafeCheck_RecoversPanic(t *testing.T) {
	file := &tree.File{Path: "src/a.h"}
	var c Collector
	safeCheck(PhaseFiles, 0, file, &c, func(i int, r Reporter) {
		CheckFile(file, r)
		r.FileError(file, RuleFileBrief, "before")
		panic("boom")
	})

	require.Len(t, c.Diagnostics(), 2)
	assert.Equal(t, "before", c.Diagnostics()[0].Message)

	failed := c.Diagnostics()[1]
	assert.Equal(t, RuleCheckFailed, failed.RuleID)
	assert.Equal(t, core.SeverityError, failed.Severity)
	assert.Equal(t, tree.Location{Path: "src/a.h"}, failed.Location)
	assert.Empty(t, failed.Subject)
	assert.Equal(t, "check failed in files phase on entity #1: boom", failed.Message)
}

func TestSafeCheck_LocatesEntity(t *testing.T) {
	header := &tree.File{Path: "src/a.h"}
	tests := []struct {
		name    string
		phase   Phase
		entity  tree.Entity
		want    tree.Location
		subject string
		message string
	}{
		{
			name:    "class",
			phase:   PhaseClasses,
			entity:  &tree.Class{Name: "C", Files: []*tree.File{header}, Line: 10},
			want:    tree.Location{Path: "src/a.h", Line: 10},
			subject: "C",
			message: "check failed in classes phase on entity #3: boom",
		},
		{
			name:    "member",
			phase:   PhaseMembers,
			entity:  &tree.Member{Name: "f", File: header, Line: 20},
			want:    tree.Location{Path: "src/a.h", Line: 20},
			subject: "f",
			message: "check failed in members phase on entity #3: boom",
		},
		{
			name:    "missing entity",
			phase:   PhaseFiles,
			entity:  nil,
			want:    tree.Location{},
			message: "check failed in files phase on entity #3: boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Collector
			safeCheck(tt.phase, 2, tt.entity, &c, func(int, Reporter) { panic("boom") })

			require.Len(t, c.Diagnostics(), 1)
			d := c.Diagnostics()[0]
			assert.Equal(t, RuleCheckFailed, d.RuleID)
			assert.Equal(t, tt.want, d.Location)
			assert.Equal(t, tt.subject, d.Subject)
			assert.Equal(t, tt.message, d.Message)
		})
	}
}

func TestDriver_SkipsNilMember(t *testing.T) {
	tr := fixtureTree(t)
	tr.AddMember(nil)

	want := &recordingSink{}
	_, err := NewDriver(nil, Options{Jobs: 1}).Run(context.Background(), fixtureTree(t), want)
	require.NoError(t, err)

	for _, checkIgnored := range []bool{false, true} {
		sink := &recordingSink{}
		_, err := NewDriver(nil, Options{Jobs: 1, CheckIgnored: checkIgnored}).Run(context.Background(), tr, sink)
		require.NoError(t, err)
		if !checkIgnored {
			assert.Equal(t, want.ruleIDs(), sink.ruleIDs())
		}
		assert.NotContains(t, sink.ruleIDs(), RuleCheckFailed)
	}
}

func TestPhase_String(t *testing.T) {
	assert.Equal(t, "files", PhaseFiles.String())
	assert.Equal(t, "classes", PhaseClasses.String())
	assert.Equal(t, "members", PhaseMembers.String())
	assert.Equal(t, "phase(7)", Phase(7).String())
}
