// Package render provides shared output conversion helpers for the
// sunburst sinks: SVG to PNG and SVG to PDF via the rsvg-convert binary.
package render
