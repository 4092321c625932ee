// Package cache provides artifact caching for the rendering pipeline.
//
// Rendering a diagram is cheap; rasterizing it through rsvg-convert and
// serving it over the HTTP API is not. The pipeline caches rendered
// artifacts keyed by the content hash of the input tree plus the render
// options, so identical requests are served from storage.
//
// Backends:
//   - file: directory-based storage for CLI usage
//   - redis: shared storage for multi-instance server deployments
//   - null: caching disabled
//
// Keys are produced by a [Keyer]; [ScopedKeyer] adds a namespace prefix
// for multi-tenant server deployments.
package cache

import (
	"context"
	"time"
)

// TTLs per pipeline stage. Trees and diagrams are cheap to recompute;
// rasterized artifacts go through rsvg-convert and are worth keeping.
const (
	TTLTree     = 24 * time.Hour
	TTLDiagram  = 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is the interface for cache backends.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A zero TTL means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer generates cache keys for pipeline stages.
type Keyer interface {
	// TreeKey generates a key for a decoded tree by content hash.
	TreeKey(treeHash string) string

	// DiagramKey generates a key for an allocated diagram.
	DiagramKey(treeHash string, opts DiagramKeyOpts) string

	// ArtifactKey generates a key for a rendered artifact.
	ArtifactKey(treeHash string, opts ArtifactKeyOpts) string
}

// DiagramKeyOpts captures the allocation options that change the stored
// diagram. Colors is included because resolved fills are baked into the
// cached sectors.
type DiagramKeyOpts struct {
	InitialRadius float64
	LevelStep     float64
	StartAngle    float64
	Colors        []string
}

// ArtifactKeyOpts captures the render options that change output bytes.
type ArtifactKeyOpts struct {
	VizType     string
	Format      string
	Wrap        bool
	CenterText  string
	Stroke      string
	StrokeWidth float64
	Detailed    bool
	Scale       float64
}

// DefaultKeyer produces hash-based keys with stage prefixes.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// TreeKey generates a key for a decoded tree by content hash.
func (k *DefaultKeyer) TreeKey(treeHash string) string {
	return "tree:" + treeHash
}

// DiagramKey generates a key for an allocated diagram.
func (k *DefaultKeyer) DiagramKey(treeHash string, opts DiagramKeyOpts) string {
	return hashKey("diagram", treeHash, opts)
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(treeHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", treeHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
