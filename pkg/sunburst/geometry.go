package sunburst

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// point returns the Cartesian coordinates of the polar point (r, a),
// with the origin at the diagram center.
func point(r, a float64) (x, y float64) {
	return r * math.Cos(a), r * math.Sin(a)
}

// annularPath builds the closed SVG path for a ring slice between the
// radii inner and outer over the interval [start, end).
//
// The boundary runs: inner arc from start to end, radial segment out to
// the outer radius, outer arc back from end to start, implicit close back
// to the starting point. Each arc sets the large-arc flag when its
// subtended angle exceeds pi, so slices wider than a half turn render on
// the correct side.
func annularPath(inner, outer, start, end float64) string {
	large := 0
	if math.Abs(end-start) > math.Pi {
		large = 1
	}

	x0, y0 := point(inner, start)
	x1, y1 := point(inner, end)
	x2, y2 := point(outer, end)
	x3, y3 := point(outer, start)

	var b strings.Builder
	fmt.Fprintf(&b, "M%s,%s", num(x0), num(y0))
	fmt.Fprintf(&b, " A%s,%s 0 %d 1 %s,%s", num(inner), num(inner), large, num(x1), num(y1))
	fmt.Fprintf(&b, " L%s,%s", num(x2), num(y2))
	fmt.Fprintf(&b, " A%s,%s 0 %d 0 %s,%s", num(outer), num(outer), large, num(x3), num(y3))
	b.WriteString(" Z")
	return b.String()
}

// num formats a coordinate with enough precision for sub-pixel accuracy
// while keeping integral values short ("-0" collapses to "0").
func num(v float64) string {
	// Avoid "-0.0000" for values that round to zero.
	if math.Abs(v) < 5e-5 {
		v = 0
	}
	s := strconv.FormatFloat(v, 'f', 4, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	return s
}
