package sunburst

import (
	"math"

	"github.com/matzehuels/sunburst/pkg/errors"
	"github.com/matzehuels/sunburst/pkg/tree"
)

// Allocate walks the tree top-down and produces the diagram geometry.
//
// The root becomes the inner disk. Its children partition the full circle
// starting at cfg.StartAngle in proportion to their leaf counts; every
// deeper node subdivides its parent's interval the same way. A root-level
// child with both explicit angles pinned keeps them verbatim and does not
// advance the shared cursor (the partition guarantee is the caller's
// responsibility for that subtree). Zero-width nodes emit no geometry but
// their descendants are still visited.
//
// The input tree is validated first and never mutated; computed leaf
// counts live in a side table for the duration of the call.
func Allocate(root *tree.Node, cfg Config) (*Diagram, error) {
	if err := cfg.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if err := tree.Validate(root); err != nil {
		return nil, err
	}

	a := &allocator{cfg: cfg, metrics: tree.NewMetrics()}
	return a.run(root), nil
}

// allocator carries the allocation state for a single call.
type allocator struct {
	cfg     Config
	metrics *tree.Metrics
	out     []Sector
}

// span is the traversal frame for one node: its identifier, ring level,
// angular interval, and the color resolved so far. Threading the resolved
// style explicitly keeps the recursion free of hidden state.
type span struct {
	id         string
	level      int
	start, end float64
	color      string
}

func (a *allocator) run(root *tree.Node) *Diagram {
	a.out = make([]Sector, 0, root.Count())
	a.out = append(a.out, a.disk(root))

	total := a.metrics.LeafCount(root)
	angle := a.cfg.StartAngle
	for i, child := range root.Children {
		var start, end float64
		if child.HasAngleOverride() {
			// Verbatim interval; the shared cursor is not advanced.
			start, end = *child.StartAngle, *child.EndAngle
		} else {
			start = angle
			end = start + fraction(a.metrics.LeafCount(child), total)*2*math.Pi
			angle = end
		}

		color := child.Color
		if color == "" {
			color = a.cfg.Colors[i%len(a.cfg.Colors)]
		}
		a.descend(child, span{
			id:    tree.ChildPath(tree.RootPath, i),
			level: 1,
			start: start,
			end:   end,
			color: color,
		})
	}

	return &Diagram{
		Sectors: a.out,
		Bound:   float64(tree.Depth(root))*a.cfg.LevelStep + a.cfg.InitialRadius,
	}
}

// descend emits the sector for n (unless degenerate) and subdivides its
// interval among its children. Explicit angle overrides below the root
// are deliberately ignored: a pinned interval deeper down would have to
// be reconciled with the parent's interval, which the weight subdivision
// already owns.
func (a *allocator) descend(n *tree.Node, f span) {
	if f.start != f.end {
		a.out = append(a.out, a.sector(n, f))
	}

	parentLeaves := a.metrics.LeafCount(n)
	cursor := f.start
	for i, c := range n.Children {
		start := cursor
		end := start + fraction(a.metrics.LeafCount(c), parentLeaves)*(f.end-f.start)
		cursor = end

		color := c.Color
		if color == "" {
			color = f.color
		}
		a.descend(c, span{
			id:    tree.ChildPath(f.id, i),
			level: f.level + 1,
			start: start,
			end:   end,
			color: color,
		})
	}
}

// disk builds the descriptor for the innermost filled circle.
func (a *allocator) disk(root *tree.Node) Sector {
	color := root.Color
	if color == "" {
		color = "#ffffff"
	}
	return Sector{
		ID:    tree.RootPath,
		Kind:  KindDisk,
		Level: 0,
		Color: color,
		R:     a.cfg.InitialRadius,
		Node:  root,
	}
}

// sector builds the ring-slice descriptor for a node at the given frame.
// Ring radius at level d is initialRadius + (d-1)*levelStep.
func (a *allocator) sector(n *tree.Node, f span) Sector {
	inner := a.cfg.InitialRadius + float64(f.level-1)*a.cfg.LevelStep
	outer := inner + a.cfg.LevelStep
	return Sector{
		ID:       f.id,
		Kind:     KindSector,
		Level:    f.level,
		Color:    f.color,
		Start:    f.start,
		End:      f.end,
		Inner:    inner,
		Outer:    outer,
		PathData: annularPath(inner, outer, f.start, f.end),
		Node:     n,
	}
}

// fraction returns part/total guarding the zero-total case, which arises
// when every child of a node is zero-weight.
func fraction(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total)
}

// Bound returns the viewport half-width for a tree under this config:
// depth * levelStep + initialRadius. Allocate embeds the same value in
// the returned Diagram; Bound exists for callers that size a frame
// without running a full allocation.
func (c Config) Bound(root *tree.Node) (float64, error) {
	if err := c.ValidateAndSetDefaults(); err != nil {
		return 0, err
	}
	if root == nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "tree root must not be nil")
	}
	return float64(tree.Depth(root))*c.LevelStep + c.InitialRadius, nil
}
