package sink

import (
	"github.com/matzehuels/sunburst/pkg/render"
	"github.com/matzehuels/sunburst/pkg/sunburst"
)

// RenderPDF renders a diagram as PDF via SVG conversion. The diagram is
// always framed (a bare fragment cannot be converted).
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(d *sunburst.Diagram, cfg sunburst.Config, opts ...SVGOption) ([]byte, error) {
	cfg.Wrap = true
	svg := RenderSVG(d, cfg, opts...)
	return render.ToPDF(svg)
}
