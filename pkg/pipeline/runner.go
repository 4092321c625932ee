package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/sunburst/pkg/cache"
	sbio "github.com/matzehuels/sunburst/pkg/io"
	"github.com/matzehuels/sunburst/pkg/observability"
	"github.com/matzehuels/sunburst/pkg/sunburst"
	"github.com/matzehuels/sunburst/pkg/tree"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → allocate → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Load
	loadStart := time.Now()
	observability.Pipeline().OnLoadStart(ctx, opts.InputFormat)
	root, err := r.Load(ctx, opts)
	if err != nil {
		observability.Pipeline().OnLoadComplete(ctx, opts.InputFormat, 0, time.Since(loadStart), err)
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Tree = root
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.NodeCount = root.Count()
	observability.Pipeline().OnLoadComplete(ctx, opts.InputFormat, result.Stats.NodeCount, result.Stats.LoadTime, nil)

	// Content hash of the canonical tree encoding, used for cache keys
	// and API responses.
	if treeData, err := marshalTree(root); err == nil {
		result.TreeHash = cache.Hash(treeData)
	}

	r.Logger.Info("loaded tree",
		"nodes", result.Stats.NodeCount,
		"duration", result.Stats.LoadTime)

	// Stage 2: Allocate
	allocStart := time.Now()
	observability.Pipeline().OnAllocateStart(ctx, result.Stats.NodeCount)
	diagram, allocHit, err := r.AllocateWithCacheInfo(ctx, root, opts)
	if err != nil {
		observability.Pipeline().OnAllocateComplete(ctx, 0, time.Since(allocStart), err)
		return nil, fmt.Errorf("allocate: %w", err)
	}
	result.Diagram = diagram
	result.Stats.AllocateTime = time.Since(allocStart)
	result.Stats.SectorCount = len(diagram.Sectors)
	result.CacheInfo.AllocateHit = allocHit
	observability.Pipeline().OnAllocateComplete(ctx, result.Stats.SectorCount, result.Stats.AllocateTime, nil)

	r.Logger.Info("allocated diagram",
		"sectors", result.Stats.SectorCount,
		"bound", diagram.Bound,
		"duration", result.Stats.AllocateTime)

	// Stage 3: Render
	renderStart := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.VizType, opts.Formats)
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, diagram, root, opts)
	if err != nil {
		observability.Pipeline().OnRenderComplete(ctx, opts.VizType, opts.Formats, time.Since(renderStart), err)
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit
	observability.Pipeline().OnRenderComplete(ctx, opts.VizType, opts.Formats, result.Stats.RenderTime, nil)

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load decodes and validates the input tree.
func (r *Runner) Load(ctx context.Context, opts Options) (*tree.Node, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, err
	}
	if opts.Tree != nil {
		if err := tree.Validate(opts.Tree); err != nil {
			return nil, err
		}
		return opts.Tree, nil
	}
	if opts.InputFormat == InputTOML {
		return sbio.ReadTOML(bytes.NewReader(opts.Input))
	}
	return sbio.ReadJSON(bytes.NewReader(opts.Input))
}

// AllocateWithCacheInfo computes the diagram with caching and returns cache hit info.
func (r *Runner) AllocateWithCacheInfo(ctx context.Context, root *tree.Node, opts Options) (*sunburst.Diagram, bool, error) {
	if err := opts.Config.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	treeData, err := marshalTree(root)
	if err != nil {
		return nil, false, fmt.Errorf("serialize tree for cache key: %w", err)
	}
	cacheKey := r.Keyer.DiagramKey(cache.Hash(treeData), opts.DiagramKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached sunburst.Diagram
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, "diagram")
				return &cached, true, nil // Cache hit
			}
			// If deserialization fails, fall through to recompute
		}
	}
	observability.Cache().OnCacheMiss(ctx, "diagram")

	diagram, err := sunburst.Allocate(root, opts.Config)
	if err != nil {
		return nil, false, err
	}

	if data, err := json.Marshal(diagram); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLDiagram)
		observability.Cache().OnCacheSet(ctx, "diagram", len(data))
	}

	return diagram, false, nil // Cache miss
}

// Allocate is a convenience wrapper that discards the cache hit info.
func (r *Runner) Allocate(ctx context.Context, root *tree.Node, opts Options) (*sunburst.Diagram, error) {
	d, _, err := r.AllocateWithCacheInfo(ctx, root, opts)
	return d, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, d *sunburst.Diagram, root *tree.Node, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	if err := opts.Config.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	diagramData, err := json.Marshal(d)
	if err != nil {
		return nil, false, fmt.Errorf("serialize diagram for cache key: %w", err)
	}
	diagramHash := cache.Hash(diagramData)

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	if !opts.Refresh {
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(diagramHash, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				artifacts[format] = data
			} else {
				allCached = false
				break
			}
		}
		if allCached && len(artifacts) == len(opts.Formats) {
			observability.Cache().OnCacheHit(ctx, "artifact")
			return artifacts, true, nil // All artifacts from cache
		}
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	rendered, err := Render(d, root, opts)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(diagramHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	return rendered, false, nil // Cache miss
}

// RenderArtifacts is a convenience wrapper that discards the cache hit info.
func (r *Runner) RenderArtifacts(ctx context.Context, d *sunburst.Diagram, root *tree.Node, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, d, root, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// marshalTree produces the canonical encoding used for content hashing.
func marshalTree(root *tree.Node) ([]byte, error) {
	return json.Marshal(root)
}
