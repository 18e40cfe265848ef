// Package table lays the wheel out as the racetrack grid found on a roulette
// table and marks requested pockets on it.
package table

import (
	"strconv"

	"github.com/MJE43/roulette-neighbors/internal/wheel"
)

const (
	Rows = 4
	Cols = 17
)

// blank marks a grid position with no pocket.
const blank = -1

// Layout is the racetrack: the top row runs 5..3 left to right, 26 sits on the
// right edge, the bottom row runs 8..0, and 23 and 10 climb the left edge.
// Walking the border clockwise from 0 gives the wheel order.
var Layout = [Rows][Cols]int{
	{5, 24, 16, 33, 1, 20, 14, 31, 9, 22, 18, 29, 7, 28, 12, 35, 3},
	{10, blank, blank, blank, blank, blank, blank, blank, blank, blank, blank, blank, blank, blank, blank, blank, 26},
	{23, blank, blank, blank, blank, blank, blank, blank, blank, blank, blank, blank, blank, blank, blank, blank, blank},
	{8, 30, 11, 36, 13, 27, 6, 34, 17, 25, 2, 21, 4, 19, 15, 32, 0},
}

// Cell is one grid position.
type Cell struct {
	Number      int         `json:"number"`
	Blank       bool        `json:"blank"`
	Highlighted bool        `json:"highlighted"`
	Color       wheel.Color `json:"color,omitempty"`
}

// Label is the text shown for the cell.
func (c Cell) Label() string {
	if c.Blank {
		return ""
	}
	return strconv.Itoa(c.Number)
}

// Grid is a rendered copy of Layout.
type Grid struct {
	Title string           `json:"title"`
	Cells [Rows][Cols]Cell `json:"cells"`
}

// Build marks every pocket in highlight on a fresh grid. Numbers that are not
// on the layout are ignored.
func Build(title string, highlight []int) Grid {
	marked := make(map[int]bool, len(highlight))
	for _, n := range highlight {
		marked[n] = true
	}

	g := Grid{Title: title}
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			n := Layout[r][c]
			if n == blank {
				g.Cells[r][c] = Cell{Number: blank, Blank: true}
				continue
			}
			g.Cells[r][c] = Cell{
				Number:      n,
				Highlighted: marked[n],
				Color:       wheel.ColorOf(n),
			}
		}
	}
	return g
}

// Highlighted returns the marked numbers in row-major order.
func (g Grid) Highlighted() []int {
	var out []int
	for r := range g.Cells {
		for _, cell := range g.Cells[r] {
			if !cell.Blank && cell.Highlighted {
				out = append(out, cell.Number)
			}
		}
	}
	return out
}

// Border walks the grid edge clockwise starting at 0 in the bottom-right corner.
func Border() []int {
	out := make([]int, 0, wheel.Size)
	// bottom row, right to left
	for c := Cols - 1; c >= 0; c-- {
		out = append(out, Layout[Rows-1][c])
	}
	// left edge, bottom to top
	for r := Rows - 2; r > 0; r-- {
		out = append(out, Layout[r][0])
	}
	// top row, left to right
	for c := 0; c < Cols; c++ {
		out = append(out, Layout[0][c])
	}
	// right edge, top to bottom
	for r := 1; r < Rows-1; r++ {
		if n := Layout[r][Cols-1]; n != blank {
			out = append(out, n)
		}
	}
	return out
}
