//go:build governance

package core_test

import (
	"go/types"
	"strings"
	"testing"

	"golang.org/x/tools/go/packages"
)

// =============================================================================
// COHESION TEST - Core types must be shared by multiple packages
// =============================================================================

// TestGovernance_CoreCohesion verifies that types in pkg/core are genuinely
// shared across multiple packages. Single-use types belong with their sole
// consumer.
func TestGovernance_CoreCohesion(t *testing.T) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedImports | packages.NeedTypes |
			packages.NeedTypesInfo | packages.NeedDeps,
	}
	pkgs, err := packages.Load(cfg, modulePath+"/...")
	if err != nil {
		t.Fatalf("Failed to load packages: %v", err)
	}

	coreTypes := make(map[types.Object]string)
	var corePkg *packages.Package
	for _, p := range pkgs {
		if p.PkgPath != modulePath+"/pkg/core" {
			continue
		}
		corePkg = p
		scope := p.Types.Scope()
		for _, name := range scope.Names() {
			if obj, ok := scope.Lookup(name).(*types.TypeName); ok && obj.Exported() {
				coreTypes[obj] = name
			}
		}
		break
	}
	if corePkg == nil {
		t.Fatal("Could not find pkg/core")
	}

	// CoreTypeName -> set of importing packages
	usage := make(map[string]map[string]bool)
	for _, name := range coreTypes {
		usage[name] = make(map[string]bool)
	}

	base := modulePath + "/"
	for _, p := range pkgs {
		if p.PkgPath == corePkg.PkgPath || strings.HasSuffix(p.PkgPath, "_test") || p.TypesInfo == nil {
			continue
		}
		for _, obj := range p.TypesInfo.Uses {
			if name, ok := coreTypes[obj]; ok {
				usage[name][strings.TrimPrefix(p.PkgPath, base)] = true
			}
		}
	}

	for typeName, importers := range usage {
		switch len(importers) {
		case 0:
			t.Logf("WARNING: Unused core type: %s (consider deleting)", typeName)
		case 1:
			var user string
			for k := range importers {
				user = k
			}
			t.Errorf("COHESION VIOLATION: 'core.%s' is used ONLY by '%s'.\n"+
				"   Fix: Move type from pkg/core to %s.", typeName, user, user)
		}
	}
}

// =============================================================================
// LAYERING TEST - Library packages never depend on the CLI
// =============================================================================

// TestGovernance_LibraryLayering walks the full dependency graph of every
// pkg/ package, so indirect imports of internal/ are caught too.
func TestGovernance_LibraryLayering(t *testing.T) {
	cfg := &packages.Config{Mode: packages.NeedName | packages.NeedImports | packages.NeedDeps}
	pkgs, err := packages.Load(cfg, modulePath+"/pkg/...")
	if err != nil {
		t.Fatalf("Failed to load packages: %v", err)
	}

	forbidden := map[string][]string{
		modulePath + "/pkg/lint": {modulePath + "/pkg/report"},
	}

	for _, p := range pkgs {
		seen := make(map[string]bool)
		var walk func(*packages.Package)
		walk = func(dep *packages.Package) {
			for path, imp := range dep.Imports {
				if seen[path] {
					continue
				}
				seen[path] = true
				if strings.HasPrefix(path, modulePath+"/internal/") {
					t.Errorf("LAYERING VIOLATION: '%s' depends on '%s'", p.PkgPath, path)
				}
				for _, f := range forbidden[p.PkgPath] {
					if path == f {
						t.Errorf("LAYERING VIOLATION: '%s' depends on '%s'", p.PkgPath, path)
					}
				}
				walk(imp)
			}
		}
		walk(p)
	}
}
