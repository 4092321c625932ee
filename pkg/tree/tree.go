// Package tree defines the hierarchy consumed by the sunburst allocator.
//
// A tree is a caller-owned structure of [Node] values. The allocator never
// mutates it: computed leaf counts live in a [Metrics] side table keyed by
// node identity, and per-node output labels (path identifiers) are carried
// on the emitted sectors instead of being written back onto the input.
//
// # Weights
//
// Each node's angular share is driven by its leaf count. A positive
// Leaves value set by the caller is trusted verbatim and never re-derived,
// which allows irregular weighting. Otherwise the count is the sum of the
// children's counts, or 1 for a node without children. A node with a
// non-nil but empty Children slice counts zero leaves and produces no
// geometry.
//
// # Overrides
//
// A node may pin its angular interval by setting both StartAngle and
// EndAngle (radians). Overrides are honored for the root's direct children
// only; deeper nodes are always subdivided from their parent's interval.
// Setting only one of the two fields is a validation error.
package tree

import "strconv"

// RootPath is the path identifier assigned to the root node.
const RootPath = "0"

// Node is a single element of the input hierarchy.
//
// All fields are optional except that a non-leaf node carries its children
// in order. The zero value is a leaf with computed weight 1.
type Node struct {
	// Name is an optional display label used by sinks and the explorer.
	Name string `json:"name,omitempty" toml:"name"`

	// Children holds the ordered child nodes. nil means leaf; an empty
	// non-nil slice means a zero-weight node.
	Children []*Node `json:"children,omitempty" toml:"children"`

	// Leaves is an explicit weight override. Zero means "compute".
	// Negative values are rejected by Validate.
	Leaves int `json:"leaves,omitempty" toml:"leaves"`

	// Color is an explicit fill identifier. Empty means inherit from the
	// nearest ancestor's resolved color (root children cycle the palette).
	Color string `json:"color,omitempty" toml:"color"`

	// StartAngle and EndAngle pin this node's angular interval in radians.
	// Both must be set together. Honored at the root level only.
	StartAngle *float64 `json:"startAngle,omitempty" toml:"startAngle"`
	EndAngle   *float64 `json:"endAngle,omitempty" toml:"endAngle"`
}

// IsLeaf reports whether the node has no children slice at all.
// A node with an empty non-nil slice is not a leaf; it is zero-weight.
func (n *Node) IsLeaf() bool {
	return n.Children == nil
}

// HasAngleOverride reports whether both explicit interval bounds are set.
func (n *Node) HasAngleOverride() bool {
	return n.StartAngle != nil && n.EndAngle != nil
}

// Count returns the total number of nodes in the subtree rooted at n,
// including n itself.
func (n *Node) Count() int {
	total := 1
	for _, c := range n.Children {
		total += c.Count()
	}
	return total
}

// ChildPath returns the path identifier of the i-th child of a node with
// the given identifier: parent + ":" + index. The root's identifier is
// [RootPath].
func ChildPath(parent string, i int) string {
	return parent + ":" + strconv.Itoa(i)
}
