package wheel

import (
	"fmt"
	"math"
)

// Size is the number of pockets on a single-zero wheel.
const Size = 37

// Order is the pocket sequence of a European roulette wheel, clockwise from zero.
var Order = [Size]int{
	0, 32, 15, 19, 4, 21, 2, 25, 17, 34, 6,
	27, 13, 36, 11, 30, 8, 23, 10, 5, 24,
	16, 33, 1, 20, 14, 31, 9, 22, 18, 29,
	7, 28, 12, 35, 3, 26,
}

// index maps a pocket number to its position in Order. Entries for values
// that are not on the wheel hold -1. Built once in init and only read afterwards.
var index [Size]int

func init() {
	for i := range index {
		index[i] = -1
	}
	for i, n := range Order {
		index[n] = i
	}
}

// Pair is a single request: a pocket number and how many neighbors to take on
// each side of it.
type Pair struct {
	Number int `json:"number"`
	Radius int `json:"radius"`
}

// IndexOf returns the position of n on the wheel.
func IndexOf(n int) (int, bool) {
	if n < 0 || n >= len(index) {
		return 0, false
	}
	i := index[n]
	return i, i >= 0
}

// Contains reports whether n is one of the pockets on the wheel.
func Contains(n int) bool {
	_, ok := IndexOf(n)
	return ok
}

// MaxRadius is the largest radius whose slice length 2*radius+1 fits in an int.
const MaxRadius = (math.MaxInt - 1) / 2

// Slice returns the 2*radius+1 pockets centred on number, in wheel order,
// wrapping past either end of Order.
func Slice(number, radius int) ([]int, error) {
	i, ok := IndexOf(number)
	if !ok {
		return nil, &PairError{Number: number, Radius: radius, Err: ErrNumberOutOfRange}
	}
	if radius < 0 {
		return nil, &PairError{Number: number, Radius: radius, Err: ErrNegativeNeighborCount}
	}
	if radius > MaxRadius {
		return nil, &PairError{Number: number, Radius: radius, Err: ErrRadiusTooLarge}
	}

	out := make([]int, 0, 2*radius+1)
	for off := -radius; off <= radius; off++ {
		out = append(out, Order[mod(i+off, Size)])
	}
	return out, nil
}

// Neighbors resolves every pair to its neighborhood on the wheel. A number
// requested more than once keeps the result of its last pair. The first
// invalid pair aborts the call and no partial result is returned.
func Neighbors(pairs []Pair) (map[int][]int, error) {
	result := make(map[int][]int, len(pairs))
	for _, p := range pairs {
		s, err := Slice(p.Number, p.Radius)
		if err != nil {
			return nil, err
		}
		result[p.Number] = s
	}
	return result, nil
}

// Validate checks that Order holds every pocket from 0 to 36 exactly once.
func Validate() error {
	var seen [Size]bool
	for i, n := range Order {
		if n < 0 || n >= Size {
			return fmt.Errorf("wheel position %d holds %d, outside 0-%d", i, n, Size-1)
		}
		if seen[n] {
			return fmt.Errorf("wheel pocket %d appears more than once", n)
		}
		seen[n] = true
	}
	return nil
}

func mod(a, m int) int {
	r := a % m
	if r < 0 {
		r += m
	}
	return r
}
