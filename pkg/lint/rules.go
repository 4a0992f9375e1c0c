package lint

import "github.com/leapstack-labs/doccheck/pkg/core"

// File rules.
const (
	RuleSourceInstalled       = "DF01"
	RuleSourceDocTier         = "DF02"
	RuleSourceAPITier         = "DF03"
	RuleTestInstalled         = "DF04"
	RuleInstalledNotPublic    = "DF05"
	RuleNotInstalledPublicDoc = "DF06"
	RuleNotInstalledPublicAPI = "DF07"
	RuleAPIConflict           = "DF08"
	RuleFileBrief             = "DF09"
	RuleIncorrectModule       = "DF10"
	RuleMissingModule         = "DF11"
)

// Include rules.
const (
	RuleLocalAsSystem        = "DI01"
	RuleNonLocalAsLocal      = "DI02"
	RuleNonRelativeInclude   = "DI03"
	RuleIncludesNonInstalled = "DI04"
	RuleTierInversion        = "DI05"
	RuleCrossModuleAPI       = "DI06"
)

// Entity, class and member rules.
const (
	RuleEntityBrief             = "DE01"
	RulePublicClassNotInstalled = "DC01"
	RuleClassExceedsFile        = "DC02"
	RuleIgnoredScope            = "DM01"
	RuleInBodyComments          = "DM02"
	RuleCheckFailed             = "DX01"
)

func init() {
	for _, r := range fileRules {
		Register(r)
	}
	for _, r := range includeRules {
		Register(r)
	}
	for _, r := range entityRules {
		Register(r)
	}
}

var fileRules = []RuleDef{
	{
		ID:          RuleSourceInstalled,
		Name:        "source-installed",
		Group:       "file",
		Description: "Source file is part of the installed headers",
		Severity:    core.SeverityError,
		Rationale:   "Source files are never part of the installable interface.",
		Fix:         "Remove the file from the installed file list.",
	},
	{
		ID:          RuleSourceDocTier,
		Name:        "source-doc-tier",
		Group:       "file",
		Description: "Source file documentation appears outside the full documentation",
		Severity:    core.SeverityError,
		Rationale:   "Source files must be wholly internal; their documentation only belongs in the developer docs.",
		Fix:         "Mark the file documentation \\internal.",
	},
	{
		ID:          RuleSourceAPITier,
		Name:        "source-api-tier",
		Group:       "file",
		Description: "Source file is annotated as part of a non-internal API",
		Severity:    core.SeverityError,
		Rationale:   "A source file cannot contribute to the library or public API.",
		Fix:         "Drop the API annotation or mark it internal.",
	},
	{
		ID:          RuleTestInstalled,
		Name:        "test-installed",
		Group:       "file",
		Description: "Test file is part of the installed headers",
		Severity:    core.SeverityError,
		Rationale:   "Test code never ships to consumers.",
		Fix:         "Remove the file from the installed file list.",
	},
	{
		ID:          RuleInstalledNotPublic,
		Name:        "installed-not-public",
		Group:       "file",
		Description: "Installed header has non-public documentation",
		Severity:    core.SeverityError,
		Rationale:   "Every installed header is part of the public API and must appear in the public documentation.",
		Fix:         "Document the header as public, or stop installing it.",
	},
	{
		ID:          RuleNotInstalledPublicDoc,
		Name:        "not-installed-public-doc",
		Group:       "file",
		Description: "Non-installed header has public documentation",
		Severity:    core.SeverityError,
		Rationale:   "Public documentation would describe a header consumers cannot include.",
		Fix:         "Lower the documentation tier, or install the header.",
	},
	{
		ID:          RuleNotInstalledPublicAPI,
		Name:        "not-installed-public-api",
		Group:       "file",
		Description: "Non-installed header is annotated as part of the public API",
		Severity:    core.SeverityError,
		Rationale:   "Only installed headers can be part of the public API.",
		Fix:         "Lower the API annotation, or install the header.",
	},
	{
		ID:          RuleAPIConflict,
		Name:        "api-doc-conflict",
		Group:       "file",
		Description: "API annotation is broader than the documentation visibility",
		Severity:    core.SeverityError,
		Rationale:   "Documentation cannot be more hidden than the API surface it describes.",
		Fix:         "Raise the documentation tier to at least the API tier.",
	},
	{
		ID:          RuleFileBrief,
		Name:        "file-brief",
		Group:       "file",
		Description: "Documented file has no brief description",
		Severity:    core.SeverityError,
		Rationale:   "File lists in the documentation show only the brief description.",
		Fix:         "Add a \\brief to the file comment.",
	},
	{
		ID:          RuleIncorrectModule,
		Name:        "incorrect-module",
		Group:       "file",
		Description: "File is documented in a module other than the one it belongs to",
		Severity:    core.SeverityError,
		Fix:         "Use \\ingroup with the module of the directory the file lives in.",
	},
	{
		ID:          RuleMissingModule,
		Name:        "missing-module",
		Group:       "file",
		Description: "File is not documented in any module although its module is documented",
		Severity:    core.SeverityError,
		Fix:         "Add \\ingroup for the file's module.",
	},
}

var includeRules = []RuleDef{
	{
		ID:          RuleLocalAsSystem,
		Name:        "local-as-system",
		Group:       "include",
		Description: "Local file included with angle brackets",
		Severity:    core.SeverityIssue,
		Rationale:   "Angle brackets are reserved for system and third-party headers.",
		Fix:         "Use quotes for files of the source tree.",
	},
	{
		ID:          RuleNonLocalAsLocal,
		Name:        "nonlocal-as-local",
		Group:       "include",
		Description: "Quoted include does not resolve to a file of the source tree",
		Severity:    core.SeverityIssue,
		Rationale:   "Quotes are reserved for files of the source tree.",
		Fix:         "Use angle brackets for system headers, or fix the path.",
	},
	{
		ID:          RuleNonRelativeInclude,
		Name:        "installed-nonrelative",
		Group:       "include",
		Description: "Installed header includes another file using a non-relative path",
		Severity:    core.SeverityIssue,
		Rationale:   "Installed headers must stay self-contained after installation.",
		Fix:         "Include the file relative to the including header.",
	},
	{
		ID:          RuleIncludesNonInstalled,
		Name:        "installed-includes-noninstalled",
		Group:       "include",
		Description: "Installed header includes a non-installed file",
		Severity:    core.SeverityIssue,
		Rationale:   "The included file will not exist in an installation.",
		Fix:         "Install the included file, or move the include to a source file.",
	},
	{
		ID:          RuleTierInversion,
		Name:        "tier-inversion",
		Group:       "include",
		Description: "File includes a file with narrower documentation",
		Severity:    core.SeverityIssue,
		Rationale:   "Readers of the broader documentation cannot see the documentation of what it depends on.",
		Fix:         "Raise the tier of the included file or drop the dependency.",
	},
	{
		ID:          RuleCrossModuleAPI,
		Name:        "cross-module-api",
		Group:       "include",
		Description: "Included file from another module is not exposed outside its module",
		Severity:    core.SeverityIssue,
		Rationale:   "Cross-module dependencies must go through at least library-level API.",
		Fix:         "Mark the included file \\libinternal or depend on a different header.",
	},
}

var entityRules = []RuleDef{
	{
		ID:          RuleEntityBrief,
		Name:        "entity-brief",
		Group:       "entity",
		Description: "Documented class or member has no brief description",
		Severity:    core.SeverityError,
		Rationale:   "Member and class lists show only the brief description.",
		Fix:         "Add a \\brief.",
	},
	{
		ID:          RulePublicClassNotInstalled,
		Name:        "public-class-not-installed",
		Group:       "class",
		Description: "Class has public documentation but is not in an installed header",
		Severity:    core.SeverityError,
		Fix:         "Lower the class documentation tier, or move it to an installed header.",
	},
	{
		ID:          RuleClassExceedsFile,
		Name:        "class-exceeds-file",
		Group:       "class",
		Description: "Class is documented more broadly than the file declaring it",
		Severity:    core.SeverityError,
		Rationale:   "A class cannot be visible where the file containing it is not.",
		Fix:         "Lower the class tier to the file tier.",
	},
	{
		ID:          RuleIgnoredScope,
		Name:        "ignored-scope",
		Group:       "member",
		Description: "Documented member is dropped because its scope is not documented",
		Severity:    core.SeverityNote,
		Rationale:   "Members in anonymous namespaces and undocumented scopes are silently ignored.",
	},
	{
		ID:          RuleInBodyComments,
		Name:        "inbody-comments",
		Group:       "member",
		Description: "Member has in-body documentation comments, which are ignored",
		Severity:    core.SeverityNote,
	},
	{
		ID:          RuleCheckFailed,
		Name:        "check-failed",
		Group:       "engine",
		Description: "A check could not complete on a malformed entity",
		Severity:    core.SeverityError,
		Rationale:   "A malformed entity must not stop the rest of the run.",
		Fix:         "Fix the scanner output for the reported entity.",
	},
}
