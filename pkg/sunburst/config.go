package sunburst

import (
	"math"

	"github.com/matzehuels/sunburst/pkg/errors"
)

// Default geometry values.
const (
	// DefaultInitialRadius is the radius of the innermost disk.
	DefaultInitialRadius = 100.0

	// DefaultLevelStep is the thickness of each ring.
	DefaultLevelStep = 10.0
)

// DefaultPalette is the fill cycle applied to root-level children that
// carry no explicit color.
var DefaultPalette = []string{
	"#396ab1", "#da7c30", "#3e9651", "#cc2529", "#535154", "#6b4c9a",
}

// Config controls angle allocation and sector geometry.
// The zero value is usable: ValidateAndSetDefaults fills in defaults.
type Config struct {
	// InitialRadius is the radius of the innermost disk (default 100).
	InitialRadius float64 `json:"initial_radius,omitempty" toml:"initial_radius"`

	// LevelStep is the ring thickness per depth level (default 10).
	LevelStep float64 `json:"level_step,omitempty" toml:"level_step"`

	// Colors is the palette cycled by root-child index (default 6 hex values).
	Colors []string `json:"colors,omitempty" toml:"colors"`

	// StartAngle is the initial rotation offset in radians (default 0).
	StartAngle float64 `json:"start_angle,omitempty" toml:"start_angle"`

	// CenterText is an optional label rendered at the origin.
	CenterText string `json:"center_text,omitempty" toml:"center_text"`

	// Stroke and StrokeWidth are passed through to each emitted shape.
	Stroke      string  `json:"stroke,omitempty" toml:"stroke"`
	StrokeWidth float64 `json:"stroke_width,omitempty" toml:"stroke_width"`

	// Wrap frames the output in a viewport sized to the diagram bound.
	// When false, sinks emit the bare element sequence.
	Wrap bool `json:"wrap,omitempty" toml:"wrap"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// ValidateAndSetDefaults checks the configuration and applies defaults.
// This method is idempotent; calling it multiple times has the same
// effect as calling it once.
func (c *Config) ValidateAndSetDefaults() error {
	if c.validated {
		return nil
	}

	if c.InitialRadius < 0 || math.IsNaN(c.InitialRadius) || math.IsInf(c.InitialRadius, 0) {
		return errors.New(errors.ErrCodeInvalidConfig, "initial radius must be a finite non-negative number")
	}
	if c.LevelStep < 0 || math.IsNaN(c.LevelStep) || math.IsInf(c.LevelStep, 0) {
		return errors.New(errors.ErrCodeInvalidConfig, "level step must be a finite non-negative number")
	}
	if c.StrokeWidth < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "stroke width must be non-negative")
	}
	if math.IsNaN(c.StartAngle) || math.IsInf(c.StartAngle, 0) {
		return errors.New(errors.ErrCodeInvalidConfig, "start angle must be finite")
	}

	if c.InitialRadius == 0 {
		c.InitialRadius = DefaultInitialRadius
	}
	if c.LevelStep == 0 {
		c.LevelStep = DefaultLevelStep
	}
	if len(c.Colors) == 0 {
		c.Colors = DefaultPalette
	}

	c.validated = true
	return nil
}
