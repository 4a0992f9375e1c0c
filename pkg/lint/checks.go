package lint

import (
	"fmt"

	"github.com/leapstack-labs/doccheck/pkg/core"
	"github.com/leapstack-labs/doccheck/pkg/tree"
)

// CheckFile checks file-level documentation. Undocumented files are skipped.
func CheckFile(file *tree.File, r Reporter) {
	if file == nil || !file.IsDocumented() {
		return
	}

	docType := file.DocTier
	apiType := file.APIType()

	if file.Source {
		if file.Installed {
			r.FileError(file, RuleSourceInstalled, "source file is installed")
		}
		if docType != core.DocTierInternal {
			r.FileError(file, RuleSourceDocTier,
				"source file documentation appears outside full documentation")
		} else if apiType != core.DocTierInternal {
			r.FileError(file, RuleSourceAPITier, "source file marked as non-internal")
		}
	} else if file.Test && file.Installed {
		r.FileError(file, RuleTestInstalled, "test file is installed")
	} else if file.Installed {
		if docType != core.DocTierPublic {
			r.FileError(file, RuleInstalledNotPublic,
				"public header has non-public documentation")
		}
	} else if docType == core.DocTierPublic {
		r.FileError(file, RuleNotInstalledPublicDoc,
			"non-installed header has public documentation")
	} else if apiType == core.DocTierPublic {
		r.FileError(file, RuleNotInstalledPublicAPI,
			"non-installed header specified as part of public API")
	} else if docType < apiType {
		r.FileError(file, RuleAPIConflict,
			fmt.Sprintf("API type (%s) conflicts with documentation visibility (%s)", apiType, docType))
	}

	if !file.HasBriefDescription() {
		r.FileError(file, RuleFileBrief, "is documented, but does not have brief description")
	}

	checkFileModules(file, r)
}

// checkFileModules compares the modules a file is documented in with the
// module it is expected to belong to.
func checkFileModules(file *tree.File, r Reporter) {
	expected := file.ExpectedModule
	if expected == nil {
		return
	}
	if len(file.DocModules) > 0 {
		for _, m := range file.DocModules {
			if m != expected {
				r.FileError(file, RuleIncorrectModule,
					fmt.Sprintf("is documented in incorrect module: %s", moduleName(m)))
			}
		}
	} else if expected.IsDocumented() {
		r.FileError(file, RuleMissingModule,
			fmt.Sprintf("is not documented in any module, but %s exists", expected.Name))
	}
}

// CheckInclude checks one include directive of file. It runs whether or not
// the including file is documented.
func CheckInclude(file *tree.File, include *tree.Include, r Reporter) {
	if file == nil || include == nil {
		return
	}

	if include.System {
		if include.Target != nil {
			r.CodeIssue(include, RuleLocalAsSystem,
				fmt.Sprintf("includes local file as system include: %s", include))
		}
		return
	}

	other := include.Target
	if other == nil {
		r.CodeIssue(include, RuleNonLocalAsLocal,
			fmt.Sprintf("includes non-local file as local include: %s", include))
	} else if file.Installed && !include.Relative {
		r.CodeIssue(include, RuleNonRelativeInclude,
			fmt.Sprintf("installed header includes using non-relative path: %s", include))
	}
	if other == nil {
		return
	}

	if file.Installed && !other.Installed {
		r.CodeIssue(include, RuleIncludesNonInstalled,
			fmt.Sprintf("installed header includes non-installed file: %s", include))
	}

	if file.IsDocumented() && other.IsDocumented() {
		fileType := file.DocTier
		otherType := other.DocTier
		if fileType > otherType {
			r.CodeIssue(include, RuleTierInversion,
				fmt.Sprintf("%s file includes %s file: %s", fileType, otherType, include))
		}
	}

	otherModule := other.Module
	crossModule := otherModule.IsDocumented() && file.Module != otherModule
	if crossModule && other.APIType() < core.DocTierLibrary {
		r.CodeIssue(include, RuleCrossModuleAPI,
			fmt.Sprintf("included file is not documented as exposed outside its module: %s", include))
	}
}

// CheckEntity checks documentation rules shared by every code construct.
func CheckEntity(entity tree.Entity, r Reporter) {
	if entity.IsDocumented() && !entity.HasBriefDescription() {
		r.DocError(entity, RuleEntityBrief, "is documented, but does not have brief description")
	}
}

// CheckClass checks documentation for a class, struct or union.
func CheckClass(class *tree.Class, r Reporter) {
	if class == nil {
		return
	}
	CheckEntity(class, r)
	if !class.IsDocumented() {
		return
	}

	classType := class.DocTier
	fileType := class.FileDocTier()
	if classType == core.DocTierPublic && !class.IsInInstalledFile() {
		r.DocError(class, RulePublicClassNotInstalled,
			"has public documentation, but is not in installed header")
	} else if fileType != core.DocTierNone && classType > fileType {
		r.DocError(class, RuleClassExceedsFile,
			fmt.Sprintf("is in %s file(s), but appears in %s documentation", fileType, classType))
	}
}

// CheckMember checks documentation for a generic member.
func CheckMember(member *tree.Member, r Reporter) {
	if member == nil {
		return
	}
	CheckEntity(member, r)
	if !member.IsDocumented() {
		return
	}
	if !member.Visible {
		// Typically members in anonymous namespaces.
		r.DocNote(member, RuleIgnoredScope,
			"is documented, but is ignored by the documentation tool because its scope is not documented")
	}
	if member.HasInBody {
		r.DocNote(member, RuleInBodyComments, "has in-body comments, which are ignored")
	}
}

func moduleName(m *tree.Module) string {
	if m == nil {
		return "<none>"
	}
	return m.Name
}
