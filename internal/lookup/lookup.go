// Package lookup runs a request through the parser and the wheel resolver and
// derives what the presentation layers need from the result.
package lookup

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/MJE43/roulette-neighbors/internal/parser"
	"github.com/MJE43/roulette-neighbors/internal/table"
	"github.com/MJE43/roulette-neighbors/internal/wheel"
)

// Table titles, in the order Tables returns them.
const (
	TitleRequested = "Input Numbers Only"
	TitleNeighbors = "Input Numbers and Neighbors"
)

// Result is everything one request produces. It is built per call and not retained.
type Result struct {
	Input            string          `json:"input"`
	DefaultNeighbors int             `json:"default_neighbors"`
	Pairs            []wheel.Pair    `json:"pairs"`
	Requested        []int           `json:"requested"`
	Neighbors        map[int][]int   `json:"neighbors"`
	Highlight        []int           `json:"highlight"`
	Coverage         decimal.Decimal `json:"coverage_pct"`
	Colors           map[int]string  `json:"colors"`
}

// DefaultMaxRadius caps the radius Run accepts. Anything past 18 already
// covers the whole wheel, so a larger cap only repeats pockets.
const DefaultMaxRadius = 100

// ErrRadiusLimit is wrapped by *RadiusLimitError.
var ErrRadiusLimit = errors.New("neighbor count above limit")

// RadiusLimitError reports a pair whose radius exceeds the caller's cap.
type RadiusLimitError struct {
	Number int
	Radius int
	Max    int
}

func (e *RadiusLimitError) Error() string {
	return fmt.Sprintf("neighbor count for number %d must be at most %d, got %d", e.Number, e.Max, e.Radius)
}

func (e *RadiusLimitError) Unwrap() error {
	return ErrRadiusLimit
}

// Run is RunLimited with DefaultMaxRadius.
func Run(input string, defaultNeighbors int) (*Result, error) {
	return RunLimited(input, defaultNeighbors, DefaultMaxRadius)
}

// RunLimited parses input and resolves every pair, rejecting any radius above
// maxRadius. Parse and resolve errors are returned untouched so callers can
// classify them. Errors keep input order: a pair the resolver would reject
// ahead of an over-limit pair is reported by the resolver.
func RunLimited(input string, defaultNeighbors, maxRadius int) (*Result, error) {
	pairs, err := parser.Parse(input, defaultNeighbors)
	if err != nil {
		return nil, err
	}
	if err := checkRadii(pairs, maxRadius); err != nil {
		return nil, err
	}
	neighbors, err := wheel.Neighbors(pairs)
	if err != nil {
		return nil, err
	}

	requested := make([]int, 0, len(pairs))
	for _, p := range pairs {
		requested = append(requested, p.Number)
	}

	highlight := wheel.Highlight(neighbors)
	colors := make(map[int]string, len(highlight))
	for _, n := range highlight {
		colors[n] = string(wheel.ColorOf(n))
	}

	return &Result{
		Input:            input,
		DefaultNeighbors: defaultNeighbors,
		Pairs:            pairs,
		Requested:        requested,
		Neighbors:        neighbors,
		Highlight:        highlight,
		Coverage:         Coverage(len(highlight)),
		Colors:           colors,
	}, nil
}

func checkRadii(pairs []wheel.Pair, maxRadius int) error {
	for _, p := range pairs {
		if !wheel.Contains(p.Number) || p.Radius < 0 {
			return nil
		}
		if p.Radius > maxRadius {
			return &RadiusLimitError{Number: p.Number, Radius: p.Radius, Max: maxRadius}
		}
	}
	return nil
}

// Coverage is the share of the wheel covered by count pockets, as a
// percentage rounded to two places.
func Coverage(count int) decimal.Decimal {
	return decimal.NewFromInt(int64(count)).
		Mul(decimal.NewFromInt(100)).
		DivRound(decimal.NewFromInt(wheel.Size), 2)
}

// Tables returns the two grids shown for a result: the requested numbers
// alone, then the full highlight set.
func (r *Result) Tables() []table.Grid {
	return []table.Grid{
		table.Build(TitleRequested, r.Requested),
		table.Build(TitleNeighbors, r.Highlight),
	}
}
