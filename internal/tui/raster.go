package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/icco/pianoviz/internal/timeline"
)

const (
	// Each terminal cell covers cellWidth x cellHeight viewport pixels, so a
	// note column is two cells wide.
	cellWidth  = timeline.NoteWidth / 2
	cellHeight = 20
)

// grid is a terminal-sized canvas of note colors. A nil entry is empty.
type grid [][]*timeline.Color

func newGrid(cols, rows int) grid {
	g := make(grid, rows)
	for i := range g {
		g[i] = make([]*timeline.Color, cols)
	}
	return g
}

// rasterize fills every cell whose center lies inside one of the rectangles
// described by vs, six vertices per rectangle.
func rasterize(vs []timeline.Vertex, cols, rows int) grid {
	g := newGrid(cols, rows)
	for i := 0; i+timeline.VerticesPerRect <= len(vs); i += timeline.VerticesPerRect {
		quad := vs[i : i+timeline.VerticesPerRect]
		x0, y0 := float32(math.MaxFloat32), float32(math.MaxFloat32)
		x1, y1 := -x0, -y0
		for _, v := range quad {
			x0, x1 = min(x0, v.Position[0]), max(x1, v.Position[0])
			y0, y1 = min(y0, v.Position[1]), max(y1, v.Position[1])
		}
		c := timeline.Color(quad[0].Color)

		firstCol := max(0, int(math.Ceil(float64(x0)/cellWidth-0.5)))
		lastCol := min(cols-1, int(math.Ceil(float64(x1)/cellWidth-0.5))-1)
		firstRow := max(0, int(math.Ceil(float64(y0)/cellHeight-0.5)))
		lastRow := min(rows-1, int(math.Ceil(float64(y1)/cellHeight-0.5))-1)
		for row := firstRow; row <= lastRow; row++ {
			for col := firstCol; col <= lastCol; col++ {
				g[row][col] = &c
			}
		}
	}
	return g
}

// render draws the grid, merging runs of equal color into one styled span.
func (g grid) render() string {
	var b strings.Builder
	for i, row := range g {
		if i > 0 {
			b.WriteString("\n")
		}
		for col := 0; col < len(row); {
			end := col + 1
			for end < len(row) && sameColor(row[col], row[end]) {
				end++
			}
			run := end - col
			if row[col] == nil {
				b.WriteString(strings.Repeat(" ", run))
			} else {
				style := lipgloss.NewStyle().Foreground(lipgloss.Color(row[col].Hex()))
				b.WriteString(style.Render(strings.Repeat("█", run)))
			}
			col = end
		}
	}
	return b.String()
}

func sameColor(a, b *timeline.Color) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
