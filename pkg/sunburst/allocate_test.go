package sunburst

import (
	"math"
	"strings"
	"testing"

	"github.com/matzehuels/sunburst/pkg/errors"
	"github.com/matzehuels/sunburst/pkg/tree"
)

const tolerance = 1e-9

func leaf() *tree.Node { return &tree.Node{} }

func branch(children ...*tree.Node) *tree.Node { return &tree.Node{Children: children} }

func weighted(leaves int) *tree.Node { return &tree.Node{Leaves: leaves} }

// rootSectors returns the level-1 sectors of a diagram in emission order.
func rootSectors(d *Diagram) []Sector {
	var out []Sector
	for _, s := range d.Sectors {
		if s.Level == 1 {
			out = append(out, s)
		}
	}
	return out
}

func TestAllocateScenario112(t *testing.T) {
	// Root with leaf counts [1, 1, 2]: widths pi/2, pi/2, pi, cumulative
	// angle reaching exactly 2*pi.
	root := branch(weighted(1), weighted(1), weighted(2))

	d, err := Allocate(root, Config{})
	if err != nil {
		t.Fatalf("Allocate() error: %v", err)
	}

	secs := rootSectors(d)
	if len(secs) != 3 {
		t.Fatalf("got %d root sectors, want 3", len(secs))
	}

	wantWidths := []float64{math.Pi / 2, math.Pi / 2, math.Pi}
	cursor := 0.0
	for i, s := range secs {
		if math.Abs(s.Width()-wantWidths[i]) > tolerance {
			t.Errorf("sector %d width = %v, want %v", i, s.Width(), wantWidths[i])
		}
		if math.Abs(s.Start-cursor) > tolerance {
			t.Errorf("sector %d start = %v, want %v", i, s.Start, cursor)
		}
		cursor = s.End
	}
	if math.Abs(cursor-2*math.Pi) > tolerance {
		t.Errorf("cumulative angle = %v, want 2*pi", cursor)
	}
}

func TestAllocatePartitionLaw(t *testing.T) {
	// Root-level widths sum to 2*pi, and every internal node's width
	// equals the sum of its children's widths.
	root := branch(
		branch(leaf(), leaf(), leaf()),
		branch(leaf(), branch(leaf(), leaf())),
		leaf(),
	)

	d, err := Allocate(root, Config{})
	if err != nil {
		t.Fatalf("Allocate() error: %v", err)
	}

	byID := make(map[string]Sector)
	for _, s := range d.Sectors {
		byID[s.ID] = s
	}

	rootSum := 0.0
	for _, s := range rootSectors(d) {
		rootSum += s.Width()
	}
	if math.Abs(rootSum-2*math.Pi) > tolerance {
		t.Errorf("root widths sum = %v, want 2*pi", rootSum)
	}

	for id, s := range byID {
		if s.Kind == KindDisk {
			continue
		}
		childSum := 0.0
		children := 0
		for cid, c := range byID {
			if strings.HasPrefix(cid, id+":") && strings.Count(cid, ":") == strings.Count(id, ":")+1 {
				childSum += c.Width()
				children++
			}
		}
		if children == 0 {
			continue
		}
		if math.Abs(childSum-s.Width()) > tolerance {
			t.Errorf("sector %s: children widths sum %v, want %v", id, childSum, s.Width())
		}
	}
}

func TestAllocateLeafOnlyRoot(t *testing.T) {
	// A leaf-only root produces only the inner disk; bound is the
	// initial radius.
	d, err := Allocate(leaf(), Config{})
	if err != nil {
		t.Fatalf("Allocate() error: %v", err)
	}

	if len(d.Sectors) != 1 {
		t.Fatalf("got %d descriptors, want 1", len(d.Sectors))
	}
	disk := d.Sectors[0]
	if disk.Kind != KindDisk || disk.ID != "0" || disk.Level != 0 {
		t.Errorf("disk descriptor = %+v", disk)
	}
	if disk.R != DefaultInitialRadius {
		t.Errorf("disk radius = %v, want %v", disk.R, DefaultInitialRadius)
	}
	if d.Bound != DefaultInitialRadius {
		t.Errorf("bound = %v, want %v", d.Bound, DefaultInitialRadius)
	}
}

func TestAllocateBoundTwoLevels(t *testing.T) {
	// initialRadius=100, levelStep=10, two levels of depth: bound 120.
	root := branch(branch(leaf()))

	d, err := Allocate(root, Config{InitialRadius: 100, LevelStep: 10})
	if err != nil {
		t.Fatalf("Allocate() error: %v", err)
	}
	if d.Bound != 120 {
		t.Errorf("bound = %v, want 120", d.Bound)
	}
}

func TestAllocateZeroWeightOmission(t *testing.T) {
	// An empty-children node has zero width: no descriptor for it or its
	// descendants, but siblings absorb the full circle.
	zero := &tree.Node{Children: []*tree.Node{}}
	root := branch(zero, weighted(1))

	d, err := Allocate(root, Config{})
	if err != nil {
		t.Fatalf("Allocate() error: %v", err)
	}

	for _, s := range d.Sectors {
		if s.ID == "0:0" {
			t.Error("zero-weight child should emit no descriptor")
		}
	}

	secs := rootSectors(d)
	if len(secs) != 1 {
		t.Fatalf("got %d root sectors, want 1", len(secs))
	}
	if math.Abs(secs[0].Width()-2*math.Pi) > tolerance {
		t.Errorf("surviving sector width = %v, want 2*pi", secs[0].Width())
	}
}

func TestAllocateZeroWeightDescendantsVisited(t *testing.T) {
	// Descendants of a zero-width node are visited (path identifiers keep
	// advancing) and are themselves omitted.
	zero := branch(&tree.Node{Children: []*tree.Node{}})
	root := branch(zero, weighted(3))

	d, err := Allocate(root, Config{})
	if err != nil {
		t.Fatalf("Allocate() error: %v", err)
	}

	// Only the disk and the weighted sibling survive. The zero subtree
	// contributes nothing but does not shift the sibling's index.
	wantIDs := map[string]bool{"0": true, "0:1": true}
	for _, s := range d.Sectors {
		if !wantIDs[s.ID] {
			t.Errorf("unexpected descriptor %s", s.ID)
		}
		delete(wantIDs, s.ID)
	}
	for id := range wantIDs {
		t.Errorf("missing descriptor %s", id)
	}
}

func TestAllocatePathIdentifiers(t *testing.T) {
	// Every node's path equals its parent's path + ":" + sibling index.
	root := branch(
		branch(leaf(), leaf()),
		leaf(),
	)

	d, err := Allocate(root, Config{})
	if err != nil {
		t.Fatalf("Allocate() error: %v", err)
	}

	want := []string{"0", "0:0", "0:0:0", "0:0:1", "0:1"}
	if len(d.Sectors) != len(want) {
		t.Fatalf("got %d descriptors, want %d", len(d.Sectors), len(want))
	}
	for i, s := range d.Sectors {
		if s.ID != want[i] {
			t.Errorf("descriptor %d ID = %q, want %q", i, s.ID, want[i])
		}
	}
}

func TestAllocateStartAngleOffset(t *testing.T) {
	root := branch(weighted(1), weighted(1))

	offset := math.Pi / 4
	d, err := Allocate(root, Config{StartAngle: offset})
	if err != nil {
		t.Fatalf("Allocate() error: %v", err)
	}

	secs := rootSectors(d)
	if math.Abs(secs[0].Start-offset) > tolerance {
		t.Errorf("first start = %v, want %v", secs[0].Start, offset)
	}
	if math.Abs(secs[1].End-(offset+2*math.Pi)) > tolerance {
		t.Errorf("last end = %v, want %v", secs[1].End, offset+2*math.Pi)
	}
}

func TestAllocateExplicitOverride(t *testing.T) {
	// A root child with a pinned interval keeps it verbatim and does not
	// advance the shared cursor.
	start, end := math.Pi, 3*math.Pi/2
	pinned := &tree.Node{StartAngle: &start, EndAngle: &end}
	root := branch(weighted(1), pinned, weighted(1))

	d, err := Allocate(root, Config{})
	if err != nil {
		t.Fatalf("Allocate() error: %v", err)
	}

	secs := rootSectors(d)
	if len(secs) != 3 {
		t.Fatalf("got %d root sectors, want 3", len(secs))
	}
	if secs[1].Start != start || secs[1].End != end {
		t.Errorf("pinned sector = [%v, %v), want [%v, %v)", secs[1].Start, secs[1].End, start, end)
	}
	// The sibling after the pinned node continues from the cursor, which
	// the pinned node left untouched.
	if math.Abs(secs[2].Start-secs[0].End) > tolerance {
		t.Errorf("third start = %v, want %v", secs[2].Start, secs[0].End)
	}
}

func TestAllocateOverrideIgnoredBelowRoot(t *testing.T) {
	start, end := 0.0, 0.1
	deep := &tree.Node{StartAngle: &start, EndAngle: &end}
	root := branch(branch(deep))

	d, err := Allocate(root, Config{})
	if err != nil {
		t.Fatalf("Allocate() error: %v", err)
	}

	for _, s := range d.Sectors {
		if s.ID == "0:0:0" {
			if math.Abs(s.Width()-2*math.Pi) > tolerance {
				t.Errorf("deep sector width = %v, want full parent interval", s.Width())
			}
			return
		}
	}
	t.Fatal("deep sector not emitted")
}

func TestAllocateColorResolution(t *testing.T) {
	// Root children cycle the palette; explicit colors win and propagate
	// to descendants until overridden again.
	child := branch(leaf(), &tree.Node{Color: "#000000"})
	child.Color = "#123456"
	root := branch(child, leaf())

	d, err := Allocate(root, Config{Colors: []string{"#aaa", "#bbb"}})
	if err != nil {
		t.Fatalf("Allocate() error: %v", err)
	}

	colors := make(map[string]string)
	for _, s := range d.Sectors {
		colors[s.ID] = s.Color
	}

	if colors["0:0"] != "#123456" {
		t.Errorf("explicit color = %q, want #123456", colors["0:0"])
	}
	if colors["0:0:0"] != "#123456" {
		t.Errorf("inherited color = %q, want #123456", colors["0:0:0"])
	}
	if colors["0:0:1"] != "#000000" {
		t.Errorf("re-overridden color = %q, want #000000", colors["0:0:1"])
	}
	if colors["0:1"] != "#bbb" {
		t.Errorf("palette color = %q, want #bbb", colors["0:1"])
	}
}

func TestAllocatePaletteCycles(t *testing.T) {
	root := branch(weighted(1), weighted(1), weighted(1))

	d, err := Allocate(root, Config{Colors: []string{"#a", "#b"}})
	if err != nil {
		t.Fatalf("Allocate() error: %v", err)
	}

	secs := rootSectors(d)
	want := []string{"#a", "#b", "#a"}
	for i, s := range secs {
		if s.Color != want[i] {
			t.Errorf("sector %d color = %q, want %q", i, s.Color, want[i])
		}
	}
}

func TestAllocateRingRadii(t *testing.T) {
	root := branch(branch(leaf()))

	d, err := Allocate(root, Config{InitialRadius: 50, LevelStep: 5})
	if err != nil {
		t.Fatalf("Allocate() error: %v", err)
	}

	for _, s := range d.Sectors {
		switch s.ID {
		case "0:0":
			if s.Inner != 50 || s.Outer != 55 {
				t.Errorf("level 1 radii = [%v, %v], want [50, 55]", s.Inner, s.Outer)
			}
		case "0:0:0":
			if s.Inner != 55 || s.Outer != 60 {
				t.Errorf("level 2 radii = [%v, %v], want [55, 60]", s.Inner, s.Outer)
			}
		}
	}
}

func TestAllocateInvalidInput(t *testing.T) {
	tests := []struct {
		name     string
		root     *tree.Node
		cfg      Config
		wantCode errors.Code
	}{
		{"nil root", nil, Config{}, errors.ErrCodeInvalidInput},
		{"negative weight", branch(weighted(-1)), Config{}, errors.ErrCodeInvalidWeight},
		{"half override", branch(&tree.Node{StartAngle: new(float64)}), Config{}, errors.ErrCodeInconsistentOverride},
		{"negative radius", leaf(), Config{InitialRadius: -1}, errors.ErrCodeInvalidConfig},
		{"NaN start angle", leaf(), Config{StartAngle: math.NaN()}, errors.ErrCodeInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Allocate(tt.root, tt.cfg)
			if err == nil {
				t.Fatal("Allocate() = nil error, want failure")
			}
			if got := errors.GetCode(err); got != tt.wantCode {
				t.Errorf("code = %q, want %q", got, tt.wantCode)
			}
		})
	}
}

func TestAllocateDoesNotMutateInput(t *testing.T) {
	child := branch(leaf())
	root := branch(child, leaf())

	if _, err := Allocate(root, Config{}); err != nil {
		t.Fatalf("Allocate() error: %v", err)
	}

	for _, n := range []*tree.Node{root, child} {
		if n.Leaves != 0 {
			t.Errorf("input node annotated with Leaves = %d", n.Leaves)
		}
		if n.StartAngle != nil || n.EndAngle != nil {
			t.Error("input node annotated with angles")
		}
	}
}
