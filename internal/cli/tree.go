package cli

import (
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	sbio "github.com/matzehuels/sunburst/pkg/io"
	"github.com/matzehuels/sunburst/pkg/tree"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// newTreeCmd creates the tree command for exploring an input hierarchy.
func newTreeCmd() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "tree <input>",
		Short: "Explore an input hierarchy interactively",
		Long: `Explore an input hierarchy without rendering it.

Shows every node with its leaf count and the angular span it would
receive in a sunburst diagram. Without --plain an interactive explorer
opens; expand and collapse branches with enter or space.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := sbio.Import(args[0])
			if err != nil {
				return err
			}
			if plain {
				printTree(cmd.OutOrStdout(), root)
				return nil
			}

			model := newTreeModel(root)
			p := tea.NewProgram(model)
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("explorer: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "print the hierarchy without the interactive explorer")

	return cmd
}

// =============================================================================
// TreeModel - Interactive hierarchy explorer
// =============================================================================

// treeRow is one visible line of the explorer: a node plus where it sits.
type treeRow struct {
	node  *tree.Node
	path  string
	depth int
}

// treeModel is the bubbletea model for the hierarchy explorer.
type treeModel struct {
	root     *tree.Node
	metrics  *tree.Metrics
	total    int
	expanded map[*tree.Node]bool
	rows     []treeRow
	cursor   int
	offset   int
	height   int
}

func newTreeModel(root *tree.Node) treeModel {
	m := treeModel{
		root:     root,
		metrics:  tree.NewMetrics(),
		expanded: map[*tree.Node]bool{root: true},
		height:   15,
	}
	m.total = m.metrics.LeafCount(root)
	m.rebuild()
	return m
}

// rebuild flattens the expanded portion of the tree into visible rows.
func (m *treeModel) rebuild() {
	m.rows = m.rows[:0]
	m.flatten(m.root, tree.RootPath, 0)
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
}

func (m *treeModel) flatten(n *tree.Node, path string, depth int) {
	m.rows = append(m.rows, treeRow{node: n, path: path, depth: depth})
	if !m.expanded[n] {
		return
	}
	for i, c := range n.Children {
		m.flatten(c, tree.ChildPath(path, i), depth+1)
	}
}

func (m treeModel) Init() tea.Cmd {
	return nil
}

func (m treeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(m.rows)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case "enter", " ":
			n := m.rows[m.cursor].node
			if len(n.Children) > 0 {
				m.expanded[n] = !m.expanded[n]
				m.rebuild()
			}
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 6
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

func (m treeModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Hierarchy Explorer"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ expand/collapse  q quit"))
	b.WriteString("\n\n")

	end := m.offset + m.height
	if end > len(m.rows) {
		end = len(m.rows)
	}

	for i := m.offset; i < end; i++ {
		r := m.rows[i]

		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}

		marker := "  "
		if len(r.node.Children) > 0 {
			if m.expanded[r.node] {
				marker = "▾ "
			} else {
				marker = "▸ "
			}
		}

		line := fmt.Sprintf("%s%s%s%s  %s",
			cursor,
			strings.Repeat("  ", r.depth),
			marker,
			nodeLabel(r.node, r.path),
			listDimStyle.Render(m.describe(r.node)))

		if i == m.cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.rows))))

	return b.String()
}

// describe summarizes a node's angular weight: leaf count plus the share
// of the full circle its subtree would subtend.
func (m treeModel) describe(n *tree.Node) string {
	leaves := m.metrics.LeafCount(n)
	if leaves == 0 {
		return "0 leaves, omitted"
	}
	degrees := 360 * float64(leaves) / float64(m.total)
	return fmt.Sprintf("%d leaves, %.1f°", leaves, degrees)
}

func nodeLabel(n *tree.Node, path string) string {
	if n.Name != "" {
		return n.Name
	}
	return path
}

// =============================================================================
// Plain output
// =============================================================================

// printTree writes the hierarchy as an indented listing, one node per line.
func printTree(w io.Writer, root *tree.Node) {
	metrics := tree.NewMetrics()
	total := metrics.LeafCount(root)
	var walk func(n *tree.Node, path string, depth int)
	walk = func(n *tree.Node, path string, depth int) {
		leaves := metrics.LeafCount(n)
		desc := "0 leaves, omitted"
		if leaves > 0 {
			desc = fmt.Sprintf("%d leaves, %.1f°", leaves, 360*float64(leaves)/float64(total))
		}
		fmt.Fprintf(w, "%s%s  (%s)\n", strings.Repeat("  ", depth), nodeLabel(n, path), desc)
		for i, c := range n.Children {
			walk(c, tree.ChildPath(path, i), depth+1)
		}
	}
	walk(root, tree.RootPath, 0)
}
