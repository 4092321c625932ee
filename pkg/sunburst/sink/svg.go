package sink

import (
	"bytes"
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/matzehuels/sunburst/pkg/sunburst"
)

// AttrFunc lets the caller inject extra attributes into an emitted shape
// element. It is invoked once per shape with the sector descriptor (whose
// Node field points at the originating input node); the returned string
// is written verbatim before the element is closed.
type AttrFunc func(s sunburst.Sector) string

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	cfg      sunburst.Config
	attrFunc AttrFunc
	idPrefix string
}

// WithAttrFunc installs a per-shape attribute hook.
func WithAttrFunc(fn AttrFunc) SVGOption {
	return func(r *svgRenderer) { r.attrFunc = fn }
}

// WithIDPrefix overrides the "sector-" prefix used for element ids.
func WithIDPrefix(p string) SVGOption {
	return func(r *svgRenderer) { r.idPrefix = p }
}

// RenderSVG serializes a diagram as SVG.
//
// When cfg.Wrap is set the output is a complete document with a square
// viewBox centered at the origin and half-width d.Bound; otherwise only
// the bare element sequence is returned, for embedding in a host
// document. cfg.Stroke, cfg.StrokeWidth, and cfg.CenterText pass through
// to the output.
func RenderSVG(d *sunburst.Diagram, cfg sunburst.Config, opts ...SVGOption) []byte {
	r := svgRenderer{cfg: cfg, idPrefix: "sector-"}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	if cfg.Wrap {
		b := d.Bound
		fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%s %s %s %s" width="%s" height="%s">`+"\n",
			fnum(-b), fnum(-b), fnum(2*b), fnum(2*b), fnum(2*b), fnum(2*b))
	}

	for _, s := range d.Sectors {
		r.renderShape(&buf, s)
	}

	if cfg.CenterText != "" {
		fmt.Fprintf(&buf, `  <text x="0" y="0" text-anchor="middle" dominant-baseline="middle">%s</text>`+"\n",
			html.EscapeString(cfg.CenterText))
	}

	if cfg.Wrap {
		buf.WriteString("</svg>\n")
	}
	return buf.Bytes()
}

// renderShape writes one shape element: a circle for the inner disk, a
// path for ring sectors.
func (r *svgRenderer) renderShape(buf *bytes.Buffer, s sunburst.Sector) {
	switch s.Kind {
	case sunburst.KindDisk:
		fmt.Fprintf(buf, `  <circle id="%s%s" cx="0" cy="0" r="%s" fill="%s"`,
			r.idPrefix, s.ID, fnum(s.R), s.Color)
	default:
		fmt.Fprintf(buf, `  <path id="%s%s" d="%s" fill="%s"`,
			r.idPrefix, s.ID, s.PathData, s.Color)
	}

	if r.cfg.Stroke != "" {
		fmt.Fprintf(buf, ` stroke="%s"`, r.cfg.Stroke)
	}
	if r.cfg.StrokeWidth > 0 {
		fmt.Fprintf(buf, ` stroke-width="%s"`, fnum(r.cfg.StrokeWidth))
	}
	if r.attrFunc != nil {
		if extra := r.attrFunc(s); extra != "" {
			buf.WriteString(" " + extra)
		}
	}
	buf.WriteString("/>\n")
}

// fnum formats viewport and style numbers compactly.
func fnum(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
