package tree

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/leapstack-labs/doccheck/pkg/core"
	"gopkg.in/yaml.v3"
)

// Format identifies the serialization of a tree description.
type Format string

// Supported tree description formats. JSON is decoded by the YAML parser.
const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// FormatForPath picks the format from a file extension.
func FormatForPath(p string) (Format, error) {
	switch strings.ToLower(filepath.Ext(p)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, p)
	}
}

// document is the on-disk schema of a tree description.
type document struct {
	Modules []moduleDoc `yaml:"modules" toml:"modules"`
	Files   []fileDoc   `yaml:"files" toml:"files"`
	Classes []classDoc  `yaml:"classes" toml:"classes"`
	Members []memberDoc `yaml:"members" toml:"members"`
}

type moduleDoc struct {
	Name       string `yaml:"name" toml:"name"`
	Documented bool   `yaml:"documented" toml:"documented"`
}

type fileDoc struct {
	Path           string        `yaml:"path" toml:"path"`
	Documented     bool          `yaml:"documented" toml:"documented"`
	Source         bool          `yaml:"source" toml:"source"`
	Test           bool          `yaml:"test" toml:"test"`
	Installed      bool          `yaml:"installed" toml:"installed"`
	DocTier        core.DocTier  `yaml:"doc_tier" toml:"doc_tier"`
	APITier        *core.DocTier `yaml:"api_tier" toml:"api_tier"`
	Brief          bool          `yaml:"brief" toml:"brief"`
	Module         string        `yaml:"module" toml:"module"`
	ExpectedModule *string       `yaml:"expected_module" toml:"expected_module"`
	DocModules     []string      `yaml:"doc_modules" toml:"doc_modules"`
	Includes       []includeDoc  `yaml:"includes" toml:"includes"`
}

type includeDoc struct {
	Name     string `yaml:"name" toml:"name"`
	Line     int    `yaml:"line" toml:"line"`
	System   bool   `yaml:"system" toml:"system"`
	Relative bool   `yaml:"relative" toml:"relative"`
	Target   string `yaml:"target" toml:"target"`
}

type classDoc struct {
	Name       string       `yaml:"name" toml:"name"`
	Kind       string       `yaml:"kind" toml:"kind"`
	Documented bool         `yaml:"documented" toml:"documented"`
	DocTier    core.DocTier `yaml:"doc_tier" toml:"doc_tier"`
	Brief      bool         `yaml:"brief" toml:"brief"`
	Files      []string     `yaml:"files" toml:"files"`
	Line       int          `yaml:"line" toml:"line"`
}

type memberDoc struct {
	Name       string `yaml:"name" toml:"name"`
	Kind       string `yaml:"kind" toml:"kind"`
	Documented bool   `yaml:"documented" toml:"documented"`
	Visible    *bool  `yaml:"visible" toml:"visible"`
	Brief      bool   `yaml:"brief" toml:"brief"`
	InBody     bool   `yaml:"inbody" toml:"inbody"`
	File       string `yaml:"file" toml:"file"`
	Line       int    `yaml:"line" toml:"line"`
}

// Load reads a tree description from disk.
func Load(p string) (*Tree, error) {
	format, err := FormatForPath(p)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p) //nolint:gosec // path comes from the user on purpose
	if err != nil {
		return nil, fmt.Errorf("failed to read tree file: %w", err)
	}
	t, err := Decode(bytes.NewReader(data), format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p, err)
	}
	return t, nil
}

// Decode reads a tree description in the given format.
// Unknown keys are rejected so that typos do not silently disable checks.
func Decode(r io.Reader, format Format) (*Tree, error) {
	var doc document
	switch format {
	case FormatYAML, FormatJSON:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse %s: %w", format, err)
		}
	case FormatTOML:
		meta, err := toml.NewDecoder(r).Decode(&doc)
		if err != nil {
			return nil, fmt.Errorf("failed to parse TOML: %w", err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("failed to parse TOML: unknown key %q", undecoded[0].String())
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return build(&doc)
}

func build(doc *document) (*Tree, error) {
	t := New()

	for _, md := range doc.Modules {
		if md.Name == "" {
			return nil, fmt.Errorf("module without name")
		}
		t.AddModule(md.Name, md.Documented)
	}

	lookupModule := func(name string) (*Module, error) {
		if name == "" {
			return nil, nil
		}
		m, ok := t.ModuleByName(name)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownModule, name)
		}
		return m, nil
	}

	// Files first, so include targets can be resolved in a second pass.
	for i := range doc.Files {
		fd := &doc.Files[i]
		if fd.Path == "" {
			return nil, fmt.Errorf("file #%d has no path", i+1)
		}
		f := &File{
			Path:       fd.Path,
			Documented: fd.Documented,
			Source:     fd.Source,
			Test:       fd.Test,
			Installed:  fd.Installed,
			DocTier:    fd.DocTier,
			HasBrief:   fd.Brief,
		}
		if fd.APITier != nil {
			f.APITier = *fd.APITier
		}

		var err error
		if f.Module, err = lookupModule(fd.Module); err != nil {
			return nil, fmt.Errorf("file %s: %w", fd.Path, err)
		}
		f.ExpectedModule = f.Module
		if fd.ExpectedModule != nil {
			if f.ExpectedModule, err = lookupModule(*fd.ExpectedModule); err != nil {
				return nil, fmt.Errorf("file %s: %w", fd.Path, err)
			}
		}
		for _, name := range fd.DocModules {
			m, err := lookupModule(name)
			if err != nil {
				return nil, fmt.Errorf("file %s: %w", fd.Path, err)
			}
			f.DocModules = append(f.DocModules, m)
		}

		if err := t.AddFile(f); err != nil {
			return nil, err
		}
	}

	for i := range doc.Files {
		f := t.files[i]
		for _, id := range doc.Files[i].Includes {
			inc := &Include{
				File:     f,
				Name:     id.Name,
				Line:     id.Line,
				System:   id.System,
				Relative: id.Relative,
			}
			if id.Target != "" {
				target, ok := t.FileByPath(id.Target)
				if ok {
					inc.Target = target
				} else {
					t.Warn(inc.Location(), "include target %s not found in source tree", id.Target)
				}
			}
			f.Includes = append(f.Includes, inc)
		}
	}

	for _, cd := range doc.Classes {
		c := &Class{
			Name:       cd.Name,
			Kind:       cd.Kind,
			Documented: cd.Documented,
			DocTier:    cd.DocTier,
			HasBrief:   cd.Brief,
			Line:       cd.Line,
		}
		for _, p := range cd.Files {
			f, ok := t.FileByPath(p)
			if !ok {
				t.Warn(Location{Path: CleanPath(p), Line: cd.Line}, "class %s declared in unknown file", cd.Name)
				continue
			}
			c.Files = append(c.Files, f)
		}
		t.AddClass(c)
	}

	for _, md := range doc.Members {
		m := &Member{
			Name:       md.Name,
			Kind:       md.Kind,
			Documented: md.Documented,
			Visible:    md.Visible == nil || *md.Visible,
			HasBrief:   md.Brief,
			HasInBody:  md.InBody,
			Line:       md.Line,
		}
		if md.File != "" {
			f, ok := t.FileByPath(md.File)
			if ok {
				m.File = f
			} else {
				t.Warn(Location{Path: CleanPath(md.File), Line: md.Line}, "member %s declared in unknown file", md.Name)
			}
		}
		t.AddMember(m)
	}

	return t, nil
}

// ReadInstalledList reads an installed-file list: one path per line. Blank
// lines and lines starting with # are ignored.
func ReadInstalledList(r io.Reader) ([]string, error) {
	var paths []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		paths = append(paths, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read installed file list: %w", err)
	}
	return paths, nil
}

// LoadInstalledList reads an installed-file list from disk.
func LoadInstalledList(p string) ([]string, error) {
	f, err := os.Open(p) //nolint:gosec // path comes from the user on purpose
	if err != nil {
		return nil, fmt.Errorf("failed to open installed file list: %w", err)
	}
	defer func() { _ = f.Close() }()
	return ReadInstalledList(f)
}
