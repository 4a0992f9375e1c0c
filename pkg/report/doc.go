// Package report writes documentation diagnostics.
//
// A Reporter implements both lint.Reporter and lint.Sink. Diagnostics are held
// in a pending buffer and written, in the order they arrived, when Flush is
// called. Before buffering, every diagnostic is matched against the loaded
// ignore filters; a matching diagnostic is dropped and the filter is marked
// used.
//
// Ignore files contain one filter per line:
//
//	# comment
//	src/gromacs/legacy/**: *is documented in incorrect module*
//	src/*.cpp: source file is installed
//
// The part before ": " is a doublestar glob matched against the diagnostic
// path; the rest is matched against "[subject: ]message", where "*" matches
// any run of characters.
package report
