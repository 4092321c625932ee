package pipeline

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/matzehuels/sunburst/pkg/cache"
	"github.com/matzehuels/sunburst/pkg/errors"
	"github.com/matzehuels/sunburst/pkg/sunburst"
	"github.com/matzehuels/sunburst/pkg/tree"
)

const sampleInput = `{
	"name": "root",
	"children": [
		{"name": "a"},
		{"name": "b", "children": [{"name": "c"}, {"name": "d"}]}
	]
}`

func TestRunnerExecute(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(nil, nil, nil)
	defer r.Close()

	result, err := r.Execute(ctx, Options{
		Input:   []byte(sampleInput),
		Formats: []string{FormatSVG, FormatJSON},
	})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}

	if result.Tree == nil {
		t.Fatal("result should carry the decoded tree")
	}
	if result.Stats.NodeCount != 5 {
		t.Errorf("NodeCount = %d, want 5", result.Stats.NodeCount)
	}
	if len(result.TreeHash) != 64 {
		t.Errorf("TreeHash length = %d, want 64", len(result.TreeHash))
	}

	// Disk plus four sectors
	if result.Stats.SectorCount != 5 {
		t.Errorf("SectorCount = %d, want 5", result.Stats.SectorCount)
	}

	svg, ok := result.Artifacts[FormatSVG]
	if !ok || len(svg) == 0 {
		t.Error("missing svg artifact")
	}
	if !bytes.Contains(svg, []byte("<circle")) {
		t.Error("svg artifact should contain the root disk")
	}

	jsonData, ok := result.Artifacts[FormatJSON]
	if !ok || !bytes.Contains(jsonData, []byte(`"sectors"`)) {
		t.Error("json artifact should contain the sector list")
	}
}

func TestRunnerExecuteInvalidInput(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(nil, nil, nil)
	defer r.Close()

	_, err := r.Execute(ctx, Options{
		Input: []byte(`{"name": "root", "leaves": -1}`),
	})
	if err == nil {
		t.Fatal("negative leaf count should fail")
	}
	if errors.GetCode(err) != errors.ErrCodeInvalidWeight {
		t.Errorf("error code = %s, want %s", errors.GetCode(err), errors.ErrCodeInvalidWeight)
	}
}

func TestRunnerExecuteTOML(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(nil, nil, nil)
	defer r.Close()

	input := "name = \"root\"\n\n[[children]]\nname = \"a\"\n\n[[children]]\nname = \"b\"\n"
	result, err := r.Execute(ctx, Options{
		Input:       []byte(input),
		InputFormat: InputTOML,
		Formats:     []string{FormatJSON},
	})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if result.Stats.NodeCount != 3 {
		t.Errorf("NodeCount = %d, want 3", result.Stats.NodeCount)
	}
}

func TestRunnerCaching(t *testing.T) {
	ctx := context.Background()
	c, err := cache.NewFileCache(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	r := NewRunner(c, nil, nil)
	defer r.Close()

	opts := Options{
		Input:   []byte(sampleInput),
		Formats: []string{FormatSVG},
	}

	first, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("first Execute error: %v", err)
	}
	if first.CacheInfo.AllocateHit || first.CacheInfo.RenderHit {
		t.Error("first run should not hit the cache")
	}

	second, err := r.Execute(ctx, Options{
		Input:   []byte(sampleInput),
		Formats: []string{FormatSVG},
	})
	if err != nil {
		t.Fatalf("second Execute error: %v", err)
	}
	if !second.CacheInfo.AllocateHit {
		t.Error("second run should hit the diagram cache")
	}
	if !second.CacheInfo.RenderHit {
		t.Error("second run should hit the artifact cache")
	}
	if !bytes.Equal(first.Artifacts[FormatSVG], second.Artifacts[FormatSVG]) {
		t.Error("cached artifact should match the rendered one")
	}

	// Refresh bypasses the cache
	third, err := r.Execute(ctx, Options{
		Input:   []byte(sampleInput),
		Formats: []string{FormatSVG},
		Refresh: true,
	})
	if err != nil {
		t.Fatalf("third Execute error: %v", err)
	}
	if third.CacheInfo.AllocateHit || third.CacheInfo.RenderHit {
		t.Error("refresh run should not hit the cache")
	}
}

func TestRunnerCachingPaletteVariation(t *testing.T) {
	ctx := context.Background()
	c, err := cache.NewFileCache(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	r := NewRunner(c, nil, nil)
	defer r.Close()

	red, err := r.Execute(ctx, Options{
		Input:   []byte(sampleInput),
		Formats: []string{FormatSVG},
		Config:  sunburst.Config{Colors: []string{"#aa0000"}},
	})
	if err != nil {
		t.Fatalf("red Execute error: %v", err)
	}

	// Same tree with a different palette must not reuse the red diagram:
	// resolved fills are part of the cached sectors.
	blue, err := r.Execute(ctx, Options{
		Input:   []byte(sampleInput),
		Formats: []string{FormatSVG},
		Config:  sunburst.Config{Colors: []string{"#0000aa"}},
	})
	if err != nil {
		t.Fatalf("blue Execute error: %v", err)
	}
	if blue.CacheInfo.AllocateHit {
		t.Error("palette change should miss the diagram cache")
	}
	for _, s := range blue.Diagram.Sectors {
		if s.Color == "#aa0000" {
			t.Fatalf("sector %s carries the previous run's palette", s.ID)
		}
	}
	if !bytes.Contains(blue.Artifacts[FormatSVG], []byte("#0000aa")) {
		t.Error("blue run's SVG should use the blue palette")
	}
	if bytes.Contains(blue.Artifacts[FormatSVG], []byte("#aa0000")) {
		t.Error("blue run's SVG should not carry the red palette")
	}

	// Unchanged palette still hits.
	again, err := r.Execute(ctx, Options{
		Input:   []byte(sampleInput),
		Formats: []string{FormatSVG},
		Config:  sunburst.Config{Colors: []string{"#aa0000"}},
	})
	if err != nil {
		t.Fatalf("repeat Execute error: %v", err)
	}
	if !again.CacheInfo.AllocateHit {
		t.Error("repeated palette should hit the diagram cache")
	}
	if !bytes.Equal(red.Artifacts[FormatSVG], again.Artifacts[FormatSVG]) {
		t.Error("repeated palette should reproduce the original artifact")
	}
}

func TestRunnerLoadPrefersTree(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(nil, nil, nil)
	defer r.Close()

	root := &tree.Node{Name: "root", Children: []*tree.Node{{Name: "a"}}}
	loaded, err := r.Load(ctx, Options{Tree: root, Input: []byte(`{"name": "ignored"}`)})
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if loaded != root {
		t.Error("Load should return the provided tree")
	}
}

func TestRenderUnsupportedFormat(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(nil, nil, nil)
	defer r.Close()

	_, err := r.Execute(ctx, Options{
		Input:   []byte(sampleInput),
		Formats: []string{"gif"},
	})
	if err == nil {
		t.Fatal("unsupported format should fail")
	}
}
