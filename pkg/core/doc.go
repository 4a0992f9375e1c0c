// Package core defines the shared language of doccheck.
//
// This package contains:
//   - The ordered documentation tier model (DocTier)
//   - Diagnostic severities (Severity)
//   - Rule metadata passed to tooling (RuleInfo)
//
// The Golden Rule: pkg/core imports ONLY stdlib.
// All other packages depend on core, not the reverse.
package core
