package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sunburst/pkg/cache"
	"github.com/matzehuels/sunburst/pkg/pipeline"
	"github.com/matzehuels/sunburst/pkg/sunburst"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output      string   // output file path (or base path for multiple outputs)
	vizTypes    []string // visualization types: "sunburst", "nodelink"
	formats     []string // output formats: "svg", "pdf", "png", "json"
	detailed    bool     // annotate nodelink labels with leaf counts
	radius      float64  // inner disk radius
	step        float64  // ring thickness per level
	startAngle  float64  // angle where the root partition begins (radians)
	colors      []string // palette override
	centerText  string   // label rendered at the diagram center
	stroke      string   // sector outline color
	strokeWidth float64  // sector outline width
	wrap        bool     // wrap output in a standalone <svg> document
	scale       float64  // PNG raster scale
	refresh     bool     // bypass the cache
	noCache     bool     // disable caching entirely
}

// newRenderCmd creates the render command for generating diagrams.
// It supports multiple visualization types (sunburst, nodelink) and output
// formats (SVG, PDF, PNG, JSON).
func newRenderCmd() *cobra.Command {
	var vizTypesStr, formatsStr, colorsStr string
	opts := renderOpts{
		radius: sunburst.DefaultInitialRadius,
		step:   sunburst.DefaultLevelStep,
		scale:  2.0,
	}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a tree file to diagram(s)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.vizTypes = parseVizTypes(vizTypesStr)
			opts.formats = parseFormats(formatsStr)
			opts.colors = parseColors(colorsStr)
			// Config-file values only fill flags the user left unset, so
			// the flag strings must be parsed first.
			applyRenderConfig(cmd, &opts)
			for _, vt := range opts.vizTypes {
				if err := pipeline.ValidateVizType(vt); err != nil {
					return err
				}
			}
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single type/format) or base path (multiple)")
	cmd.Flags().StringVarP(&vizTypesStr, "type", "t", "", "visualization type(s): sunburst (default), nodelink (comma-separated)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), json, pdf, png (comma-separated)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show leaf counts in node labels (nodelink)")
	cmd.Flags().Float64Var(&opts.radius, "radius", opts.radius, "inner disk radius")
	cmd.Flags().Float64Var(&opts.step, "step", opts.step, "ring thickness per level")
	cmd.Flags().Float64Var(&opts.startAngle, "start-angle", 0, "starting angle in radians")
	cmd.Flags().StringVar(&colorsStr, "colors", "", "palette override (comma-separated hex colors)")
	cmd.Flags().StringVar(&opts.centerText, "center-text", "", "label rendered at the diagram center")
	cmd.Flags().StringVar(&opts.stroke, "stroke", "", "sector outline color")
	cmd.Flags().Float64Var(&opts.strokeWidth, "stroke-width", 0, "sector outline width")
	cmd.Flags().BoolVar(&opts.wrap, "wrap", false, "wrap output in a standalone <svg> document")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG raster scale factor")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even if cached")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")

	return cmd
}

// applyRenderConfig fills flags the user didn't set from the config file.
func applyRenderConfig(cmd *cobra.Command, opts *renderOpts) {
	cfg, err := loadFileConfig()
	if err != nil {
		loggerFromContext(cmd.Context()).Warn("ignoring config file", "error", err)
		return
	}
	if !cmd.Flags().Changed("radius") && cfg.Render.InitialRadius > 0 {
		opts.radius = cfg.Render.InitialRadius
	}
	if !cmd.Flags().Changed("step") && cfg.Render.LevelStep > 0 {
		opts.step = cfg.Render.LevelStep
	}
	if !cmd.Flags().Changed("colors") && len(cfg.Render.Colors) > 0 {
		opts.colors = cfg.Render.Colors
	}
	if !cmd.Flags().Changed("stroke") && cfg.Render.Stroke != "" {
		opts.stroke = cfg.Render.Stroke
	}
	if !cmd.Flags().Changed("stroke-width") && cfg.Render.StrokeWidth > 0 {
		opts.strokeWidth = cfg.Render.StrokeWidth
	}
	if !cmd.Flags().Changed("wrap") && cfg.Render.Wrap {
		opts.wrap = true
	}
}

// parseVizTypes parses the --type flag into a slice of visualization types.
// If empty, defaults to ["sunburst"].
func parseVizTypes(s string) []string {
	if s == "" {
		return []string{pipeline.VizTypeSunburst}
	}
	return strings.Split(s, ",")
}

// parseFormats parses the --format flag into a slice of output formats.
// If empty, defaults to ["svg"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}

// parseColors parses the --colors flag into a palette slice.
func parseColors(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .pdf, etc.), it strips that extension.
// This is used when generating multiple files (e.g., tree_sunburst.svg, tree_nodelink.svg).
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// inputFormat maps the input file extension to a pipeline input format.
func inputFormat(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return pipeline.InputTOML
	}
	return pipeline.InputJSON
}

// hasRasterFormat reports whether any requested format needs rsvg-convert.
func hasRasterFormat(formats []string) bool {
	for _, f := range formats {
		if f == pipeline.FormatPNG || f == pipeline.FormatPDF {
			return true
		}
	}
	return false
}

// buildConfig converts render flags to an allocation config.
func (o *renderOpts) buildConfig() sunburst.Config {
	return sunburst.Config{
		InitialRadius: o.radius,
		LevelStep:     o.step,
		StartAngle:    o.startAngle,
		Colors:        o.colors,
		CenterText:    o.centerText,
		Stroke:        o.stroke,
		StrokeWidth:   o.strokeWidth,
		Wrap:          o.wrap,
	}
}

// newRunner builds a pipeline runner backed by the file cache, or a null
// cache when --no-cache is set.
func newRunner(ctx context.Context, noCache bool) *pipeline.Runner {
	logger := loggerFromContext(ctx)
	if noCache {
		return pipeline.NewRunner(cache.NewNullCache(), nil, logger)
	}
	dir, err := cacheDir()
	if err != nil {
		logger.Debug("cache dir unavailable, caching disabled", "error", err)
		return pipeline.NewRunner(cache.NewNullCache(), nil, logger)
	}
	c, err := cache.NewFileCache(dir)
	if err != nil {
		logger.Debug("file cache unavailable, caching disabled", "error", err)
		return pipeline.NewRunner(cache.NewNullCache(), nil, logger)
	}
	return pipeline.NewRunner(c, nil, logger)
}

// runRender loads the tree from input and renders it to the requested
// visualization types and formats.
func runRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	logger.Infof("Rendering %s", input)

	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("read %s: %w", input, err)
	}

	runner := newRunner(ctx, opts.noCache)
	defer runner.Close()

	prog := newProgress(logger)
	var nodeCount, sectorCount int
	cached := true

	// Rasterizing shells out to rsvg-convert, which can take a moment.
	if hasRasterFormat(opts.formats) {
		sp := newSpinnerWithContext(ctx, "Rasterizing output")
		sp.Start()
		defer sp.Stop()
	}

	base := basePath(opts.output, input)
	for _, vizType := range opts.vizTypes {
		result, err := runner.Execute(ctx, pipeline.Options{
			Input:       data,
			InputFormat: inputFormat(input),
			Config:      opts.buildConfig(),
			VizType:     vizType,
			Formats:     opts.formats,
			Detailed:    opts.detailed,
			Scale:       opts.scale,
			Refresh:     opts.refresh,
			Logger:      logger,
		})
		if err != nil {
			return fmt.Errorf("%s: %w", vizType, err)
		}
		nodeCount = result.Stats.NodeCount
		sectorCount = result.Stats.SectorCount
		cached = cached && result.CacheInfo.RenderHit

		if err := writeArtifacts(ctx, result, vizType, base, input, opts); err != nil {
			return err
		}
	}

	prog.done(fmt.Sprintf("Rendered %d file(s)", len(opts.vizTypes)*len(opts.formats)))
	printStats(nodeCount, sectorCount, cached)
	return nil
}

// writeArtifacts writes each rendered format to its output path.
// A single type/format combination honors --output verbatim (or stdout
// semantics are approximated by deriving from the input name).
func writeArtifacts(ctx context.Context, result *pipeline.Result, vizType, base, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	single := len(opts.vizTypes) == 1 && len(opts.formats) == 1

	for _, format := range opts.formats {
		data := result.Artifacts[format]
		logger.Debugf("Generated %s/%s: %d bytes", vizType, format, len(data))

		var path string
		switch {
		case single && opts.output != "":
			path = opts.output
		case len(opts.vizTypes) == 1:
			path = fmt.Sprintf("%s.%s", base, format)
		default:
			path = fmt.Sprintf("%s_%s.%s", base, vizType, format)
		}

		out, err := openOutput(path)
		if err != nil {
			return err
		}
		if _, err := out.Write(data); err != nil {
			out.Close()
			return err
		}
		if err := out.Close(); err != nil {
			return err
		}
		printFile(path)
	}
	return nil
}

// nopCloser wraps an io.Writer with a no-op Close method.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is empty, it returns os.Stdout wrapped in nopCloser.
// Otherwise, it creates the file at path, overwriting if it exists.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
