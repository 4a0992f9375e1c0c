package tree

import (
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"
)

// Sentinel errors returned while building a tree.
var (
	ErrDuplicateFile = errors.New("duplicate file")
	ErrUnknownModule = errors.New("unknown module")
	ErrUnknownFormat = errors.New("unknown tree format")
)

// Warning is a non-fatal problem found while building a tree, such as a
// reference to a file that is not part of it.
type Warning struct {
	Location Location
	Message  string
}

// Tree is the entity graph of one source tree.
// Enumeration order is insertion order, which builders keep equal to scan
// order so that check output is reproducible.
type Tree struct {
	files   []*File
	classes []*Class
	members []*Member
	modules []*Module

	filesByPath   map[string]*File
	modulesByName map[string]*Module

	warnings []Warning
}

// New creates an empty tree.
func New() *Tree {
	return &Tree{
		filesByPath:   make(map[string]*File),
		modulesByName: make(map[string]*Module),
	}
}

// CleanPath normalizes a tree-relative path to slash-separated form.
func CleanPath(p string) string {
	p = strings.ReplaceAll(strings.TrimSpace(p), `\`, "/")
	if p == "" {
		return ""
	}
	return strings.TrimPrefix(path.Clean(p), "./")
}

// AddModule interns a module. Adding a name twice returns the existing module,
// upgraded to documented if either declaration was.
func (t *Tree) AddModule(name string, documented bool) *Module {
	if m, ok := t.modulesByName[name]; ok {
		m.Documented = m.Documented || documented
		return m
	}
	m := &Module{Name: name, Documented: documented}
	t.modules = append(t.modules, m)
	t.modulesByName[name] = m
	return m
}

// AddFile appends a file. Its path is normalized with CleanPath.
func (t *Tree) AddFile(f *File) error {
	f.Path = CleanPath(f.Path)
	if _, ok := t.filesByPath[f.Path]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateFile, f.Path)
	}
	t.files = append(t.files, f)
	t.filesByPath[f.Path] = f
	return nil
}

// AddClass appends a class.
func (t *Tree) AddClass(c *Class) {
	t.classes = append(t.classes, c)
}

// AddMember appends a member.
func (t *Tree) AddMember(m *Member) {
	t.members = append(t.members, m)
}

// Warn records a non-fatal build problem.
func (t *Tree) Warn(loc Location, format string, args ...any) {
	t.warnings = append(t.warnings, Warning{Location: loc, Message: fmt.Sprintf(format, args...)})
}

// Files returns all files in scan order.
func (t *Tree) Files() []*File { return t.files }

// Classes returns all classes in scan order.
func (t *Tree) Classes() []*Class { return t.classes }

// Members returns all members in scan order.
func (t *Tree) Members() []*Member { return t.members }

// Modules returns all modules in declaration order.
func (t *Tree) Modules() []*Module { return t.modules }

// Warnings returns the problems recorded while building the tree.
func (t *Tree) Warnings() []Warning { return t.warnings }

// FileByPath looks up a file by its tree-relative path.
func (t *Tree) FileByPath(p string) (*File, bool) {
	f, ok := t.filesByPath[CleanPath(p)]
	return f, ok
}

// ModuleByName looks up a module.
func (t *Tree) ModuleByName(name string) (*Module, bool) {
	m, ok := t.modulesByName[name]
	return m, ok
}

// MarkInstalled marks the listed files as installed. A path under one of
// roots (typically the source and build roots) is made relative to it; the
// deepest matching root wins. Paths that do not name a file of the tree are
// recorded as warnings.
func (t *Tree) MarkInstalled(paths []string, roots ...string) {
	var prefixes []string
	for _, r := range roots {
		if r = CleanPath(r); r != "" && r != "." {
			prefixes = append(prefixes, r+"/")
		}
	}
	sort.Slice(prefixes, func(i, j int) bool { return len(prefixes[i]) > len(prefixes[j]) })

	for _, p := range paths {
		rel := CleanPath(p)
		if rel == "" {
			continue
		}
		for _, prefix := range prefixes {
			if strings.HasPrefix(rel, prefix) {
				rel = strings.TrimPrefix(rel, prefix)
				break
			}
		}
		f, ok := t.filesByPath[rel]
		if !ok {
			t.Warn(Location{Path: rel}, "installed file not found in source tree")
			continue
		}
		f.Installed = true
	}
}
