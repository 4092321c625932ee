package sunburst

import "github.com/matzehuels/sunburst/pkg/tree"

// Kind distinguishes the two shapes a diagram is built from.
type Kind string

const (
	// KindDisk is the filled inner circle emitted for the root.
	KindDisk Kind = "disk"

	// KindSector is an annular ring slice emitted per node.
	KindSector Kind = "sector"
)

// Sector is one shape descriptor of a sunburst diagram.
//
// The disk descriptor carries R and no path data; sector descriptors
// carry the closed annular-sector boundary in PathData along with the
// interval and radii it was built from.
type Sector struct {
	// ID is the originating node's path identifier ("0", "0:2", ...).
	ID string `json:"id"`

	// Kind is disk for the root circle, sector otherwise.
	Kind Kind `json:"kind"`

	// Level is the ring depth: 0 for the disk, 1 for root children.
	Level int `json:"level"`

	// Color is the resolved fill for this shape.
	Color string `json:"color"`

	// Start and End bound the angular interval [Start, End) in radians.
	// Both are zero for the disk.
	Start float64 `json:"start,omitempty"`
	End   float64 `json:"end,omitempty"`

	// Inner and Outer are the bounding radii of the ring slice.
	Inner float64 `json:"inner,omitempty"`
	Outer float64 `json:"outer,omitempty"`

	// R is the disk radius; zero for ring sectors.
	R float64 `json:"r,omitempty"`

	// PathData is the SVG path tracing the sector boundary; empty for
	// the disk, which renders as a circle.
	PathData string `json:"path,omitempty"`

	// Node points at the originating input node so sinks can hand it to
	// per-sector hooks. Never serialized.
	Node *tree.Node `json:"-"`
}

// Width returns the subtended angle of the sector in radians.
func (s Sector) Width() float64 {
	return s.End - s.Start
}

// Diagram is the ordered output of an allocation: the inner disk followed
// by one descriptor per non-degenerate sector, plus the half-width of the
// square viewport that encloses every ring.
type Diagram struct {
	Sectors []Sector `json:"sectors"`

	// Bound is initialRadius + depth*levelStep: the viewport half-width.
	Bound float64 `json:"bound"`
}
