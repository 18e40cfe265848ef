package wheel

import "sort"

// Color is the felt colour of a pocket.
type Color string

const (
	Green Color = "green"
	Red   Color = "red"
	Black Color = "black"
)

// Red numbers: 1,3,5,7,9,12,14,16,18,19,21,23,25,27,30,32,34,36
var redNumbers = map[int]bool{
	1: true, 3: true, 5: true, 7: true, 9: true,
	12: true, 14: true, 16: true, 18: true, 19: true,
	21: true, 23: true, 25: true, 27: true, 30: true,
	32: true, 34: true, 36: true,
}

// Pocket describes a single wheel pocket.
type Pocket struct {
	Number   int   `json:"number"`
	Position int   `json:"position"`
	Color    Color `json:"color"`
}

// ColorOf returns the colour of pocket n. Numbers not on the wheel are reported
// as green like the zero.
func ColorOf(n int) Color {
	if n == 0 || !Contains(n) {
		return Green
	}
	if redNumbers[n] {
		return Red
	}
	return Black
}

// Pockets lists the wheel in order with colours.
func Pockets() []Pocket {
	out := make([]Pocket, 0, Size)
	for i, n := range Order {
		out = append(out, Pocket{Number: n, Position: i, Color: ColorOf(n)})
	}
	return out
}

// Highlight returns the distinct numbers found across all neighbor lists,
// sorted ascending.
func Highlight(result map[int][]int) []int {
	seen := make(map[int]struct{})
	for _, list := range result {
		for _, n := range list {
			seen[n] = struct{}{}
		}
	}
	out := make([]int, 0, len(seen))
	for n := range seen {
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}
