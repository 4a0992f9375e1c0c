// Package tree holds the entity graph that documentation checks run against.
//
// A Tree is populated once, either programmatically through its Add methods
// or by decoding a tree description produced by an external scanner (see
// Load), and is treated as read-only afterwards. Checks in pkg/lint only
// query it.
//
// # Tree descriptions
//
// Load accepts YAML, JSON and TOML documents with four top-level lists:
//
//	modules:
//	  - name: selection
//	    documented: true
//	files:
//	  - path: src/selection/selection.h
//	    documented: true
//	    installed: true
//	    doc_tier: public
//	    brief: true
//	    module: selection
//	    doc_modules: [selection]
//	    includes:
//	      - name: position.h
//	        line: 12
//	        relative: true
//	        target: src/selection/position.h
//	classes:
//	  - name: gmx::Selection
//	    documented: true
//	    doc_tier: public
//	    brief: true
//	    files: [src/selection/selection.h]
//	members:
//	  - name: gmx::Selection::name
//	    documented: true
//	    visible: true
//	    brief: true
//	    file: src/selection/selection.h
//
// api_tier defaults to doc_tier and expected_module defaults to module.
package tree
