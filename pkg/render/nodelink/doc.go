// Package nodelink renders the input hierarchy as a node-link diagram.
//
// This is a structural companion view to the sunburst: the same tree laid
// out top-down with Graphviz, useful for checking what the radial
// partition was built from. Node labels show the name (or path
// identifier) and, when requested, the computed leaf count that drives
// the angular allocation.
package nodelink
