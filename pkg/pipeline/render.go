package pipeline

import (
	"fmt"

	"github.com/matzehuels/sunburst/pkg/render/nodelink"
	"github.com/matzehuels/sunburst/pkg/sunburst"
	"github.com/matzehuels/sunburst/pkg/sunburst/sink"
	"github.com/matzehuels/sunburst/pkg/tree"
)

// Render generates output artifacts in the requested formats.
func Render(d *sunburst.Diagram, root *tree.Node, opts Options) (map[string][]byte, error) {
	if opts.IsNodelink() {
		return renderNodelink(d, root, opts)
	}
	return renderSunburst(d, opts)
}

// renderSunburst generates radial partition outputs.
func renderSunburst(d *sunburst.Diagram, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(d, opts.Config)
		case FormatPNG:
			data, err = sink.RenderPNG(d, opts.Config, sink.WithScale(opts.Scale))
		case FormatPDF:
			data, err = sink.RenderPDF(d, opts.Config)
		case FormatJSON:
			data, err = sink.RenderJSON(d)
		default:
			return nil, fmt.Errorf("unsupported sunburst format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// renderNodelink generates node-link outputs.
// The DOT graph is generated on-demand from the tree.
func renderNodelink(d *sunburst.Diagram, root *tree.Node, opts Options) (map[string][]byte, error) {
	dot := nodelink.ToDOT(root, nodelink.Options{Detailed: opts.Detailed})

	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data, err = nodelink.RenderSVG(dot)
		case FormatPNG:
			data, err = nodelink.RenderPNG(dot, opts.Scale)
		case FormatPDF:
			data, err = nodelink.RenderPDF(dot)
		case FormatJSON:
			// JSON is the geometry export regardless of viz type.
			data, err = sink.RenderJSON(d)
		default:
			return nil, fmt.Errorf("unsupported nodelink format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}
