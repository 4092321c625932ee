// Package pipeline provides the core visualization pipeline for Sunburst.
//
// This package implements the complete load → allocate → render pipeline
// that can be used by CLI and API components. By centralizing this logic,
// we ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Decode and validate the input tree (JSON or TOML)
//  2. Allocate: Compute angular spans and sector geometry for every node
//  3. Render: Generate output in various formats (SVG, PNG, PDF, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Input:   data,
//	    VizType: "sunburst",
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Load only
//	root, err := runner.Load(ctx, opts)
//
//	// Allocate with an existing tree
//	diagram, err := runner.Allocate(ctx, root, opts)
//
//	// Render with an existing diagram
//	artifacts, err := runner.Render(ctx, diagram, root, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/sunburst/pkg/cache"
	"github.com/matzehuels/sunburst/pkg/errors"
	"github.com/matzehuels/sunburst/pkg/sunburst"
	"github.com/matzehuels/sunburst/pkg/tree"
)

// Visualization type constants.
const (
	VizTypeSunburst = "sunburst"
	VizTypeNodelink = "nodelink"
)

// DefaultVizType is the default visualization type.
const DefaultVizType = VizTypeSunburst

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// Input format constants.
const (
	InputJSON = "json"
	InputTOML = "toml"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// ValidVizTypes is the set of supported visualization types.
var ValidVizTypes = map[string]bool{
	VizTypeSunburst: true,
	VizTypeNodelink: true,
}

// ValidInputFormats is the set of supported input encodings.
var ValidInputFormats = map[string]bool{
	InputJSON: true,
	InputTOML: true,
}

// Options contains all configuration for the visualization pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options. Either Tree or Input must be set; Tree wins.
	Tree        *tree.Node `json:"tree,omitempty"`
	Input       []byte     `json:"input,omitempty"`
	InputFormat string     `json:"input_format,omitempty"`

	// Allocate options
	Config sunburst.Config `json:"config"`

	// Render options
	VizType  string   `json:"viz_type,omitempty"`
	Formats  []string `json:"formats,omitempty"`
	Detailed bool     `json:"detailed,omitempty"` // Annotate nodelink labels with leaf counts
	Scale    float64  `json:"scale,omitempty"`    // PNG raster scale

	// Refresh bypasses the cache and recomputes everything.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Tree is the decoded input tree.
	Tree *tree.Node

	// TreeHash is the content hash of the canonical tree encoding.
	TreeHash string

	// Diagram holds the allocated sector geometry.
	Diagram *sunburst.Diagram

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount    int
	SectorCount  int
	LoadTime     time.Duration
	AllocateTime time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	AllocateHit bool // Whether the diagram came from cache
	RenderHit   bool // Whether all artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateVizType checks that a visualization type is valid.
func ValidateVizType(vizType string) error {
	if !ValidVizTypes[vizType] {
		return errors.New(errors.ErrCodeInvalidVizType, "invalid viz_type: %q (must be one of: sunburst, nodelink)", vizType)
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.Config.ValidateAndSetDefaults(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks required fields for the load stage.
func (o *Options) ValidateForLoad() error {
	if o.Tree == nil && len(o.Input) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "tree or input is required")
	}
	if o.InputFormat == "" {
		o.InputFormat = InputJSON
	}
	if !ValidInputFormats[o.InputFormat] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid input_format: %q (must be one of: json, toml)", o.InputFormat)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if o.VizType == "" {
		o.VizType = DefaultVizType
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = 2.0
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateVizType(o.VizType); err != nil {
		return err
	}
	return ValidateFormats(o.Formats)
}

// IsSunburst returns true for the radial partition visualization.
func (o *Options) IsSunburst() bool {
	return o.VizType == "" || o.VizType == VizTypeSunburst
}

// IsNodelink returns true for the node-link visualization.
func (o *Options) IsNodelink() bool {
	return o.VizType == VizTypeNodelink
}

// DiagramKeyOpts returns cache key options for the allocate stage.
func (o *Options) DiagramKeyOpts() cache.DiagramKeyOpts {
	return cache.DiagramKeyOpts{
		InitialRadius: o.Config.InitialRadius,
		LevelStep:     o.Config.LevelStep,
		StartAngle:    o.Config.StartAngle,
		Colors:        o.Config.Colors,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		VizType:     o.VizType,
		Format:      format,
		Wrap:        o.Config.Wrap,
		CenterText:  o.Config.CenterText,
		Stroke:      o.Config.Stroke,
		StrokeWidth: o.Config.StrokeWidth,
		Detailed:    o.Detailed,
		Scale:       o.Scale,
	}
}
