package sink

import (
	"encoding/json"
	"fmt"

	"github.com/matzehuels/sunburst/pkg/sunburst"
)

// RenderJSON serializes a diagram's shape descriptors as indented JSON.
// The output carries each sector's path identifier, kind, level, resolved
// color, interval, radii, and path data, plus the diagram bound. It can
// be consumed by renderers that build their own markup.
func RenderJSON(d *sunburst.Diagram) ([]byte, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode diagram: %w", err)
	}
	return append(data, '\n'), nil
}
