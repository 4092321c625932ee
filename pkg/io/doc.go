// Package io provides tree import and diagram export.
//
// # Overview
//
// This package decodes caller-supplied hierarchies from JSON or TOML
// documents into [tree.Node] values and writes allocated diagrams back
// out as JSON. The format is designed for:
//
//   - Describing any hierarchy, not just file systems or dependencies
//   - Integration with external tools that produce tree data
//   - Round-trip workflows: describe a tree, allocate, export descriptors
//
// # JSON Format
//
// A tree document is a single nested node object:
//
//	{
//	  "name": "root",
//	  "children": [
//	    {"name": "a", "children": [{}, {}]},
//	    {"name": "b", "leaves": 3, "color": "#da7c30"},
//	    {"name": "pinned", "startAngle": 0, "endAngle": 1.5708}
//	  ]
//	}
//
// All node fields are optional. A node without "children" is a leaf with
// weight 1; "leaves" overrides the computed weight; "color" pins the
// fill; "startAngle"/"endAngle" (radians, both required together) pin a
// root-level child's interval.
//
// # TOML Format
//
// The same structure expressed with nested [[children]] tables:
//
//	name = "root"
//
//	[[children]]
//	name = "a"
//
//	[[children.children]]
//	name = "a1"
//
// # Import
//
// Use [Import] to read a tree from a file path (dispatching on the .json
// or .toml extension), or [ReadJSON]/[ReadTOML] to read from an
// io.Reader. Decoding failures carry the MISSING_STRUCTURE error code
// when the document shape is wrong (for example a "children" field that
// is not an array), and the decoded tree is validated before being
// returned.
//
// # Export
//
// Use [ExportJSON] to write an allocated diagram's shape descriptors to
// a file, or [WriteJSON] for any io.Writer.
package io
