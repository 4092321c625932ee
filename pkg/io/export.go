package io

import (
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/sunburst/pkg/sunburst"
	"github.com/matzehuels/sunburst/pkg/sunburst/sink"
)

// WriteJSON encodes an allocated diagram as JSON and writes it to w.
// The output carries every shape descriptor plus the diagram bound and
// can be consumed by renderers that build their own markup.
func WriteJSON(d *sunburst.Diagram, w io.Writer) error {
	data, err := sink.RenderJSON(d)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write diagram: %w", err)
	}
	return nil
}

// ExportJSON writes a diagram to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(d *sunburst.Diagram, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(d, f)
}
