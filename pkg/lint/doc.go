// Package lint is the documentation visibility rule engine.
//
// # Architecture
//
// The engine has three layers:
//
//  1. Checks (checks.go): pure functions over one entity and its local
//     neighbourhood in a tree.Tree. They report through the Reporter
//     interface and never mutate the tree.
//  2. Catalog (rules.go, registry.go): every distinct finding has a stable
//     rule ID with metadata, registered in init().
//  3. Driver (driver.go): walks files (with their includes), classes and
//     visible members, applies Config, and forwards diagnostics to a Sink in
//     traversal order.
//
// # Rule Groups
//
//   - DF (file): tier of a file versus installed/source/test status and module
//   - DI (include): include directives versus the tiers of both ends
//   - DE (entity): brief descriptions on documented classes and members
//   - DC (class): class tier versus the files declaring it
//   - DM (member): members the documentation tool drops silently
//
// # Configuration
//
// Use Config to control which rules are reported and their severity:
//
//	config := lint.NewConfig()
//	config.Disable("DM02")
//	config.SetSeverity("DI05", core.SeverityError)
//
// Disabling a rule filters its diagnostics after the checks ran, so the
// precedence between related file rules is never altered.
package lint
