// Package pkg provides the core libraries for Sunburst radial tree visualization.
//
// # Overview
//
// Sunburst transforms weighted hierarchies into radial partition diagrams
// where each node's angular span is proportional to the number of leaves in
// its subtree. The pkg directory is organized into four main areas:
//
//  1. [tree] - Input hierarchy model (nodes, weights, validation, metrics)
//  2. [sunburst] - Angle allocation and annular-sector geometry
//  3. [render] - Output sinks (SVG, PDF, PNG, JSON) and the nodelink view
//  4. [pipeline] - Orchestration (load → allocate → render) with caching
//
// # Architecture
//
// The typical data flow through Sunburst:
//
//	JSON/TOML tree file
//	         ↓
//	    [io] package (decode + validate)
//	         ↓
//	    [sunburst] package (angle allocation + sector geometry)
//	         ↓
//	    [sunburst/sink] package (SVG, PDF, PNG, JSON)
//	         ↓
//	    SVG/PDF/PNG/JSON output
//
// # Quick Start
//
// Allocate a diagram and render it to SVG:
//
//	import (
//	    "github.com/matzehuels/sunburst/pkg/io"
//	    "github.com/matzehuels/sunburst/pkg/sunburst"
//	    "github.com/matzehuels/sunburst/pkg/sunburst/sink"
//	)
//
//	// 1. Load the hierarchy
//	root, _ := io.Import("tree.json")
//
//	// 2. Allocate angles and geometry
//	d, _ := sunburst.Allocate(root, sunburst.Config{})
//
//	// 3. Render to SVG
//	svg := sink.RenderSVG(d, sunburst.Config{Wrap: true})
//
// # Main Packages
//
// ## Core Domain Logic
//
// [tree] - The input hierarchy: ordered children, explicit leaf-count
// overrides, per-node colors, and root-level angle pinning. Includes
// validation and memoized leaf-count metrics.
//
// [sunburst] - Angle allocation over the unit circle and annular-sector
// path construction. The allocator walks the tree once, splitting each
// node's interval among its children by leaf count.
//
// [sunburst/sink] - Output formats for diagrams (SVG, PDF, PNG, JSON).
// PDF and PNG rasterize the SVG output via rsvg-convert.
//
// [render/nodelink] - Traditional directed graph diagrams using Graphviz,
// as an alternative view of the same hierarchy.
//
// [render] - Top-level utilities for format conversion (SVG to PDF/PNG).
//
// ## Infrastructure
//
// [pipeline] - Complete visualization pipeline (load → allocate → render)
// used by CLI and API. Ensures consistent behavior across all entry points.
//
// [cache] - Content-addressed caching of diagrams and artifacts with file,
// Redis, and null backends, plus retry support for remote backends.
//
// [session] - Share-link sessions with memory and file-based stores.
//
// [observability] - Optional instrumentation hooks for pipeline stages and
// cache operations.
//
// [io] - Decoding (JSON, TOML) and geometry export.
//
// [errors] - Coded errors shared across the CLI and the HTTP API.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...            # All tests
//	go test ./pkg/sunburst/...   # Specific package
//	go test -run Example         # Examples only
//
// [tree]: https://pkg.go.dev/github.com/matzehuels/sunburst/pkg/tree
// [sunburst]: https://pkg.go.dev/github.com/matzehuels/sunburst/pkg/sunburst
// [sunburst/sink]: https://pkg.go.dev/github.com/matzehuels/sunburst/pkg/sunburst/sink
// [render]: https://pkg.go.dev/github.com/matzehuels/sunburst/pkg/render
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/sunburst/pkg/render/nodelink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/sunburst/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/sunburst/pkg/cache
// [session]: https://pkg.go.dev/github.com/matzehuels/sunburst/pkg/session
// [observability]: https://pkg.go.dev/github.com/matzehuels/sunburst/pkg/observability
// [io]: https://pkg.go.dev/github.com/matzehuels/sunburst/pkg/io
// [errors]: https://pkg.go.dev/github.com/matzehuels/sunburst/pkg/errors
package pkg
