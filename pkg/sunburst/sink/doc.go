// Package sink serializes sunburst diagrams into output formats.
//
// The SVG sink is the primary target: it writes one element per shape
// descriptor (a circle for the inner disk, a path per annular sector) and
// optionally frames the sequence in a viewport sized to the diagram
// bound. JSON exports the raw descriptors for non-SVG consumers, and the
// PNG/PDF sinks rasterize the SVG output via rsvg-convert.
package sink
