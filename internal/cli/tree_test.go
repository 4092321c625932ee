package cli

import (
	"bytes"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/sunburst/pkg/tree"
)

func sampleHierarchy() *tree.Node {
	return &tree.Node{
		Name: "root",
		Children: []*tree.Node{
			{Name: "a"},
			{Name: "b", Children: []*tree.Node{
				{Name: "c"},
				{Name: "d"},
			}},
		},
	}
}

func TestTreeModelRows(t *testing.T) {
	m := newTreeModel(sampleHierarchy())

	// Root is expanded by default, its children are not.
	if len(m.rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(m.rows))
	}
	if m.rows[0].path != tree.RootPath {
		t.Errorf("rows[0].path = %q, want %q", m.rows[0].path, tree.RootPath)
	}
	if m.rows[2].path != "0:1" {
		t.Errorf("rows[2].path = %q, want %q", m.rows[2].path, "0:1")
	}
}

func TestTreeModelExpand(t *testing.T) {
	m := newTreeModel(sampleHierarchy())

	// Move to "b" and expand it.
	m.cursor = 2
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(treeModel)

	if len(m.rows) != 5 {
		t.Fatalf("rows after expand = %d, want 5", len(m.rows))
	}

	// Collapse again.
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(treeModel)
	if len(m.rows) != 3 {
		t.Errorf("rows after collapse = %d, want 3", len(m.rows))
	}
}

func TestTreeModelQuit(t *testing.T) {
	m := newTreeModel(sampleHierarchy())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("q should produce a quit command")
	}
}

func TestTreeModelDescribe(t *testing.T) {
	m := newTreeModel(sampleHierarchy())

	// Root has 3 leaves spanning the full circle.
	got := m.describe(m.root)
	if !strings.Contains(got, "3 leaves") || !strings.Contains(got, "360.0") {
		t.Errorf("describe(root) = %q, want 3 leaves over 360.0°", got)
	}

	// "b" contributes two of three leaves.
	got = m.describe(m.root.Children[1])
	if !strings.Contains(got, "2 leaves") || !strings.Contains(got, "240.0") {
		t.Errorf("describe(b) = %q, want 2 leaves over 240.0°", got)
	}
}

func TestTreeModelDescribeZeroWeight(t *testing.T) {
	root := &tree.Node{
		Children: []*tree.Node{
			{Name: "kept"},
			{Name: "empty", Children: []*tree.Node{}},
		},
	}
	m := newTreeModel(root)

	got := m.describe(root.Children[1])
	if !strings.Contains(got, "omitted") {
		t.Errorf("describe(empty) = %q, want omitted marker", got)
	}
}

func TestPrintTree(t *testing.T) {
	var buf bytes.Buffer
	printTree(&buf, sampleHierarchy())

	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("printTree wrote %d lines, want 5:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "root") {
		t.Errorf("first line = %q, want root first", lines[0])
	}
	if !strings.Contains(out, "c") || !strings.Contains(out, "d") {
		t.Error("printTree should include every node")
	}
	if !strings.Contains(lines[0], "360.0") {
		t.Errorf("root line = %q, should show the full circle", lines[0])
	}
}
