package tree

import (
	"fmt"
	"strconv"

	"github.com/leapstack-labs/doccheck/pkg/core"
)

// Location points at a place in the source tree. Line is zero when the
// location refers to a whole file.
type Location struct {
	Path string
	Line int
}

// String renders the location as path or path:line.
func (l Location) String() string {
	if l.Line <= 0 {
		return l.Path
	}
	return l.Path + ":" + strconv.Itoa(l.Line)
}

// Entity is the capability set shared by everything checks report on.
type Entity interface {
	IsDocumented() bool
	HasBriefDescription() bool
	Location() Location
	DisplayName() string
}

// Module is a named grouping of files used to scope library-level exposure.
// Modules are interned per Tree, so pointer equality is module equality.
type Module struct {
	Name       string
	Documented bool
}

// IsDocumented reports whether the module has its own documentation.
func (m *Module) IsDocumented() bool { return m != nil && m.Documented }

// File is one source or header file.
type File struct {
	Path       string
	Documented bool
	Source     bool // source file rather than a header
	Test       bool
	Installed  bool // ships as part of the public interface
	DocTier    core.DocTier
	// APITier is the tier from an explicit API annotation. The zero value
	// means the file has no annotation; use APIType for the effective tier.
	APITier  core.DocTier
	HasBrief bool

	Module         *Module   // module the file lives in
	ExpectedModule *Module   // module the file should be documented under
	DocModules     []*Module // modules the file is actually documented under
	Includes       []*Include
}

// APIType returns the declared API tier, falling back to the documentation
// tier when no API annotation is present.
func (f *File) APIType() core.DocTier {
	if f.APITier == core.DocTierNone {
		return f.DocTier
	}
	return f.APITier
}

// IsDocumented implements Entity.
func (f *File) IsDocumented() bool { return f.Documented }

// HasBriefDescription implements Entity.
func (f *File) HasBriefDescription() bool { return f.HasBrief }

// Location implements Entity.
func (f *File) Location() Location { return Location{Path: f.Path} }

// DisplayName implements Entity.
func (f *File) DisplayName() string { return f.Path }

// Include is an #include edge from File to another file.
type Include struct {
	File     *File  // including file
	Name     string // path as spelled in the directive
	Line     int
	System   bool // angle brackets rather than quotes
	Relative bool // path is relative to the including file
	Target   *File
}

// String renders the directive the way it appears in source.
func (i *Include) String() string {
	if i.System {
		return fmt.Sprintf("#include <%s>", i.Name)
	}
	return fmt.Sprintf("#include %q", i.Name)
}

// Location returns the position of the directive.
func (i *Include) Location() Location {
	if i.File == nil {
		return Location{Line: i.Line}
	}
	return Location{Path: i.File.Path, Line: i.Line}
}

// Class covers classes, structs and unions.
type Class struct {
	Name       string
	Kind       string
	Documented bool
	DocTier    core.DocTier
	HasBrief   bool
	Files      []*File // files the class is declared in
	Line       int
}

// IsInInstalledFile reports whether any file declaring the class is installed.
func (c *Class) IsInInstalledFile() bool {
	for _, f := range c.Files {
		if f != nil && f.Installed {
			return true
		}
	}
	return false
}

// FileDocTier returns the most exposed tier among the documented files that
// declare the class, or DocTierNone if none of them is documented.
func (c *Class) FileDocTier() core.DocTier {
	tier := core.DocTierNone
	for _, f := range c.Files {
		if f != nil && f.Documented {
			tier = tier.Max(f.DocTier)
		}
	}
	return tier
}

// IsDocumented implements Entity.
func (c *Class) IsDocumented() bool { return c.Documented }

// HasBriefDescription implements Entity.
func (c *Class) HasBriefDescription() bool { return c.HasBrief }

// Location implements Entity.
func (c *Class) Location() Location {
	if len(c.Files) == 0 || c.Files[0] == nil {
		return Location{Line: c.Line}
	}
	return Location{Path: c.Files[0].Path, Line: c.Line}
}

// DisplayName implements Entity.
func (c *Class) DisplayName() string { return c.Name }

// Member is any documentable construct inside a class or file: functions,
// variables, enumerators, typedefs and so on.
type Member struct {
	Name       string
	Kind       string
	Documented bool
	// Visible is false when the documentation tool hides the member, e.g.
	// because it lives in an anonymous namespace.
	Visible   bool
	HasBrief  bool
	HasInBody bool
	File      *File
	Line      int
}

// IsDocumented implements Entity.
func (m *Member) IsDocumented() bool { return m.Documented }

// HasBriefDescription implements Entity.
func (m *Member) HasBriefDescription() bool { return m.HasBrief }

// Location implements Entity.
func (m *Member) Location() Location {
	if m.File == nil {
		return Location{Line: m.Line}
	}
	return Location{Path: m.File.Path, Line: m.Line}
}

// DisplayName implements Entity.
func (m *Member) DisplayName() string { return m.Name }

var (
	_ Entity = (*File)(nil)
	_ Entity = (*Class)(nil)
	_ Entity = (*Member)(nil)
)
