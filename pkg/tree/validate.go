package tree

import (
	"math"

	"github.com/matzehuels/sunburst/pkg/errors"
)

// Validate checks the subtree rooted at n for malformed input and returns
// a coded error for the first problem found.
//
// Rejected inputs:
//   - negative explicit leaf counts (INVALID_WEIGHT)
//   - exactly one of StartAngle/EndAngle set, or a non-finite override
//     angle (INCONSISTENT_OVERRIDE)
//
// Explicit leaf counts that disagree with the children's sum are accepted:
// overrides exist precisely to allow irregular weighting and are never
// re-derived.
func Validate(n *Node) error {
	if n == nil {
		return errors.New(errors.ErrCodeInvalidInput, "tree root must not be nil")
	}
	return validate(n, "0")
}

func validate(n *Node, path string) error {
	if n == nil {
		return errors.New(errors.ErrCodeMissingStructure, "node %s: nil child", path)
	}
	if n.Leaves < 0 {
		return errors.New(errors.ErrCodeInvalidWeight, "node %s: leaf count %d is negative", path, n.Leaves)
	}
	if (n.StartAngle != nil) != (n.EndAngle != nil) {
		return errors.New(errors.ErrCodeInconsistentOverride,
			"node %s: startAngle and endAngle must be set together", path)
	}
	if n.HasAngleOverride() {
		if !isFinite(*n.StartAngle) || !isFinite(*n.EndAngle) {
			return errors.New(errors.ErrCodeInconsistentOverride,
				"node %s: override angles must be finite", path)
		}
	}

	for i, c := range n.Children {
		if err := validate(c, ChildPath(path, i)); err != nil {
			return err
		}
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
