package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/mosaic/pkg/treemap"
)

// treemapColors cycles through tile foreground colors in the terminal preview.
var treemapColors = []lipgloss.Color{
	lipgloss.Color("75"),  // blue
	lipgloss.Color("214"), // orange
	lipgloss.Color("167"), // red
	lipgloss.Color("115"), // teal
	lipgloss.Color("114"), // green
	lipgloss.Color("221"), // yellow
	lipgloss.Color("176"), // purple
	lipgloss.Color("218"), // pink
}

// =============================================================================
// previewModel - Interactive treemap preview
// =============================================================================

// previewModel is the bubbletea model for the terminal treemap preview.
// The layout is computed up front; the model only maps data-space tile
// rectangles onto the character grid of the current terminal size.
type previewModel struct {
	tree   *treemap.Tree
	title  string
	cursor int
	width  int
	height int
}

func newPreviewModel(tree *treemap.Tree, title string) previewModel {
	return previewModel{tree: tree, title: title, width: 80, height: 24}
}

func (m previewModel) Init() tea.Cmd {
	return nil
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h", "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "right", "l", "down", "j", "tab":
			if m.cursor < len(m.leaves())-1 {
				m.cursor++
			}
		}
	}
	return m, nil
}

func (m previewModel) leaves() []*treemap.Group {
	return m.tree.Leaf().Groups
}

func (m previewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.title))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("←/→ select tile  q quit"))
	b.WriteString("\n")

	gridHeight := m.height - 5
	if gridHeight < 4 {
		gridHeight = 4
	}
	b.WriteString(renderTreemapGrid(m.tree, m.width, gridHeight, m.cursor))

	leaves := m.leaves()
	if m.cursor < len(leaves) {
		g := leaves[m.cursor]
		var total float64
		for _, leaf := range leaves {
			total += leaf.Area
		}
		share := 0.0
		if total > 0 {
			share = 100 * g.Area / total
		}
		b.WriteString(StyleValue.Render(g.ID()))
		b.WriteString(StyleDim.Render(fmt.Sprintf("  %.4g (%.1f%%)", g.Area, share)))
		b.WriteString("\n")
	}
	return b.String()
}

// =============================================================================
// Grid rendering
// =============================================================================

// cellRect is a tile rectangle snapped to terminal cells.
type cellRect struct {
	x, y, w, h int
}

// renderTreemapGrid draws the leaf tiles of a laid-out tree onto a character
// grid. Tile rectangles are in data coordinates with the origin at the lower
// left, so rows are flipped when mapping onto the grid. selected highlights
// the tile under the cursor (-1 for none).
func renderTreemapGrid(t *treemap.Tree, width, height, selected int) string {
	leaves := t.Leaf().Groups
	if len(leaves) == 0 || width < 4 || height < 2 {
		return "No data to display.\n"
	}

	// The layout box is the union of the root rectangles.
	var boxW, boxH float64
	for _, g := range t.Levels[0].Groups {
		if right := g.Rect.X + g.Rect.DX; right > boxW {
			boxW = right
		}
		if top := g.Rect.Y + g.Rect.DY; top > boxH {
			boxH = top
		}
	}
	if boxW <= 0 || boxH <= 0 {
		return "No data to display.\n"
	}

	grid := make([][]rune, height)
	colors := make([][]int, height)
	sel := make([][]bool, height)
	for y := 0; y < height; y++ {
		grid[y] = make([]rune, width)
		colors[y] = make([]int, width)
		sel[y] = make([]bool, width)
		for x := 0; x < width; x++ {
			grid[y][x] = ' '
			colors[y][x] = -1
		}
	}

	for gi, g := range leaves {
		r := snapToCells(g, boxW, boxH, width, height)
		if r.w < 1 || r.h < 1 {
			continue
		}
		colorIdx := gi % len(treemapColors)
		isSel := gi == selected

		for y := r.y; y < r.y+r.h && y < height; y++ {
			for x := r.x; x < r.x+r.w && x < width; x++ {
				grid[y][x] = '░'
				colors[y][x] = colorIdx
				sel[y][x] = isSel
			}
		}

		for x := r.x; x < r.x+r.w && x < width; x++ {
			if r.y < height {
				grid[r.y][x] = '─'
			}
			if r.y+r.h-1 < height {
				grid[r.y+r.h-1][x] = '─'
			}
		}
		for y := r.y; y < r.y+r.h && y < height; y++ {
			if r.x < width {
				grid[y][r.x] = '│'
			}
			if r.x+r.w-1 < width {
				grid[y][r.x+r.w-1] = '│'
			}
		}

		if r.w > 4 && r.h > 2 {
			label := truncateLabel(g.DisplayLabel(), r.w-3)
			writeText(grid, r.x+1, r.y+1, label, width, height)
			if r.h > 3 {
				writeText(grid, r.x+1, r.y+2, fmt.Sprintf("%.4g", g.Area), width, height)
			}
		}
	}

	var sb strings.Builder
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			ch := string(grid[y][x])
			ci := colors[y][x]
			switch {
			case sel[y][x]:
				style := lipgloss.NewStyle().Bold(true).Reverse(true)
				if ci >= 0 {
					style = style.Foreground(treemapColors[ci])
				}
				sb.WriteString(style.Render(ch))
			case ci >= 0:
				sb.WriteString(lipgloss.NewStyle().Foreground(treemapColors[ci]).Render(ch))
			default:
				sb.WriteString(ch)
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// snapToCells maps a tile rectangle from data space onto terminal cells,
// flipping the vertical axis.
func snapToCells(g *treemap.Group, boxW, boxH float64, width, height int) cellRect {
	x0 := int(g.Rect.X / boxW * float64(width))
	x1 := int((g.Rect.X + g.Rect.DX) / boxW * float64(width))
	yTop := int((boxH - g.Rect.Y - g.Rect.DY) / boxH * float64(height))
	yBot := int((boxH - g.Rect.Y) / boxH * float64(height))

	r := cellRect{x: x0, y: yTop, w: x1 - x0, h: yBot - yTop}
	if r.w < 1 {
		r.w = 1
	}
	if r.h < 1 {
		r.h = 1
	}
	return r
}

// truncateLabel shortens a label to max runes, using an ellipsis when cut.
func truncateLabel(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max > 1 {
		return string(runes[:max-1]) + "…"
	}
	if max == 1 {
		return string(runes[:1])
	}
	return ""
}

// writeText writes s into the grid at (x, y), clipped to the grid bounds.
func writeText(grid [][]rune, x, y int, s string, width, height int) {
	if y < 0 || y >= height {
		return
	}
	for _, r := range s {
		if x < 0 || x >= width {
			return
		}
		grid[y][x] = r
		x++
	}
}
