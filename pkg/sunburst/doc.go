// Package sunburst converts a weighted hierarchy into the path geometry
// of a radial partition (sunburst) diagram.
//
// Each node is assigned an angular interval proportional to its leaf
// count relative to its siblings, then mapped to an annular sector at the
// ring for its depth. The output is a [Diagram]: an ordered sequence of
// [Sector] descriptors (one inner disk plus one sector per node with a
// non-degenerate interval) ready for a sink to serialize.
//
// The allocator is pure with respect to its input: the caller's tree is
// read but never annotated. Use the sibling sink package to turn a
// Diagram into SVG, JSON, PNG, or PDF output.
package sunburst
