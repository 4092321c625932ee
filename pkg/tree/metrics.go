package tree

// Metrics memoizes per-node leaf counts without touching the input tree.
// Counts are keyed by node identity, so a Metrics value must only be used
// with nodes from a single tree and is not safe for concurrent use.
type Metrics struct {
	leaves map[*Node]int
}

// NewMetrics creates an empty metrics table.
func NewMetrics() *Metrics {
	return &Metrics{leaves: make(map[*Node]int)}
}

// LeafCount returns the angular weight of n.
//
// A positive explicit Leaves value is trusted and returned unchanged.
// Otherwise the count is the sum over children (which may be zero for an
// empty children slice), or 1 for a leaf. Results are memoized, so
// repeated calls are cheap and idempotent.
func (m *Metrics) LeafCount(n *Node) int {
	if n.Leaves > 0 {
		return n.Leaves
	}
	if v, ok := m.leaves[n]; ok {
		return v
	}

	total := 0
	if n.Children == nil {
		total = 1
	} else {
		for _, c := range n.Children {
			total += m.LeafCount(c)
		}
	}
	m.leaves[n] = total
	return total
}

// Depth returns the maximum number of edges from n to any descendant.
// A childless node has depth 0. Depth is pure and needs no memoization;
// it is evaluated once per render for bounding-box sizing.
func Depth(n *Node) int {
	d := 0
	for _, c := range n.Children {
		if cd := Depth(c) + 1; cd > d {
			d = cd
		}
	}
	return d
}
