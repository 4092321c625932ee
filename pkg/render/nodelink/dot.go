package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/sunburst/pkg/render"
	"github.com/matzehuels/sunburst/pkg/tree"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed includes the computed leaf count in node labels.
	// When false, only the name (or path identifier) is shown.
	Detailed bool
}

// ToDOT converts a tree to Graphviz DOT format for node-link
// visualization. The resulting DOT string can be rendered using
// [RenderSVG], [RenderPDF], or [RenderPNG].
//
// Zero-weight nodes (empty children slices) are rendered with dashed
// outlines and grey fill to show that they occupy no angle in the
// sunburst view.
func ToDOT(root *tree.Node, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	m := tree.NewMetrics()
	writeNodes(&buf, m, root, tree.RootPath, opts)
	buf.WriteString("\n")
	writeEdges(&buf, root, tree.RootPath)

	buf.WriteString("}\n")
	return buf.String()
}

func writeNodes(buf *bytes.Buffer, m *tree.Metrics, n *tree.Node, path string, opts Options) {
	label := n.Name
	if label == "" {
		label = path
	}
	if opts.Detailed {
		label = fmt.Sprintf("%s\nleaves: %d", label, m.LeafCount(n))
	}

	attrs := fmt.Sprintf("label=%q", label)
	if n.Children != nil && len(n.Children) == 0 {
		attrs += `, style="rounded,filled,dashed", fillcolor=lightgrey`
	}
	fmt.Fprintf(buf, "  %q [%s];\n", path, attrs)

	for i, c := range n.Children {
		writeNodes(buf, m, c, tree.ChildPath(path, i), opts)
	}
}

func writeEdges(buf *bytes.Buffer, n *tree.Node, path string) {
	for i, c := range n.Children {
		child := tree.ChildPath(path, i)
		fmt.Fprintf(buf, "  %q -> %q;\n", path, child)
		writeEdges(buf, c, child)
	}
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with
// [render.ToPDF] or [render.ToPNG].
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPDF].
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(dot string) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPNG].
//
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
