package tree

import (
	"testing"

	"github.com/leapstack-labs/doccheck/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanPath(t *testing.T) {
	tests := map[string]string{
		"":                "",
		"./src/a.h":       "src/a.h",
		`src\utility\a.h`: "src/utility/a.h",
		"src//b/../a.h":   "src/a.h",
		" src/a.h ":       "src/a.h",
	}
	for in, want := range tests {
		assert.Equal(t, want, CleanPath(in), "CleanPath(%q)", in)
	}
}

func TestTree_AddModule_Interns(t *testing.T) {
	tr := New()
	a := tr.AddModule("utility", false)
	b := tr.AddModule("utility", true)

	assert.Same(t, a, b)
	assert.True(t, a.Documented)
	assert.Len(t, tr.Modules(), 1)
}

func TestTree_AddFile_Duplicate(t *testing.T) {
	tr := New()
	require.NoError(t, tr.AddFile(&File{Path: "src/a.h"}))
	err := tr.AddFile(&File{Path: "./src/a.h"})
	assert.ErrorIs(t, err, ErrDuplicateFile)
}

func TestTree_MarkInstalled(t *testing.T) {
	tr := New()
	a := &File{Path: "src/a.h"}
	b := &File{Path: "src/b.h"}
	require.NoError(t, tr.AddFile(a))
	require.NoError(t, tr.AddFile(b))

	tr.MarkInstalled([]string{"/work/gromacs/src/a.h", "src/missing.h", ""}, "/work/gromacs")

	assert.True(t, a.Installed)
	assert.False(t, b.Installed)
	require.Len(t, tr.Warnings(), 1)
	assert.Equal(t, "src/missing.h", tr.Warnings()[0].Location.Path)
}

func TestTree_MarkInstalled_BuildRoot(t *testing.T) {
	tr := New()
	gen := &File{Path: "src/config.h"}
	src := &File{Path: "src/a.h"}
	require.NoError(t, tr.AddFile(gen))
	require.NoError(t, tr.AddFile(src))

	// The build tree lives inside the source tree; its prefix must win.
	tr.MarkInstalled([]string{"/work/gromacs/build/src/config.h", "/work/gromacs/src/a.h"},
		"/work/gromacs", "/work/gromacs/build", "", ".")

	assert.True(t, gen.Installed)
	assert.True(t, src.Installed)
	assert.Empty(t, tr.Warnings())
}

func TestClass_FileDocTier(t *testing.T) {
	internal := &File{Path: "a.h", Documented: true, DocTier: core.DocTierInternal}
	library := &File{Path: "b.h", Documented: true, DocTier: core.DocTierLibrary}
	undocumented := &File{Path: "c.h", DocTier: core.DocTierPublic, Installed: true}

	c := &Class{Files: []*File{internal, library, undocumented}}
	assert.Equal(t, core.DocTierLibrary, c.FileDocTier())
	assert.True(t, c.IsInInstalledFile())

	none := &Class{Files: []*File{undocumented}}
	assert.Equal(t, core.DocTierNone, none.FileDocTier())

	empty := &Class{Name: "Orphan", Line: 3}
	assert.False(t, empty.IsInInstalledFile())
	assert.Equal(t, ":3", empty.Location().String())
}

func TestFile_APIType(t *testing.T) {
	f := &File{DocTier: core.DocTierLibrary}
	assert.Equal(t, core.DocTierLibrary, f.APIType())

	f.APITier = core.DocTierInternal
	assert.Equal(t, core.DocTierInternal, f.APIType())
}

func TestModule_IsDocumented_Nil(t *testing.T) {
	var m *Module
	assert.False(t, m.IsDocumented())
}
