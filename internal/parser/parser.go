// Package parser turns the free-form request text ("3 3, 8 1, 12") into
// wheel pairs.
package parser

import (
	"strconv"
	"strings"

	"github.com/MJE43/roulette-neighbors/internal/wheel"
)

// Parse splits input on commas and reads each segment as either
// "number radius" or "number". Segments with a single number take
// defaultNeighbors as their radius; the value is passed through unchecked.
// Pairs come back in input order, duplicates included.
func Parse(input string, defaultNeighbors int) ([]wheel.Pair, error) {
	segments := strings.Split(input, ",")
	pairs := make([]wheel.Pair, 0, len(segments))

	for _, seg := range segments {
		parts := strings.Fields(seg)
		switch len(parts) {
		case 2:
			number, err1 := strconv.Atoi(parts[0])
			radius, err2 := strconv.Atoi(parts[1])
			if err1 != nil || err2 != nil {
				return nil, &SegmentError{Segment: seg, Err: ErrInvalidPairTokens}
			}
			pairs = append(pairs, wheel.Pair{Number: number, Radius: radius})
		case 1:
			number, err := strconv.Atoi(parts[0])
			if err != nil {
				return nil, &SegmentError{Segment: seg, Err: ErrInvalidSingleToken}
			}
			pairs = append(pairs, wheel.Pair{Number: number, Radius: defaultNeighbors})
		default:
			return nil, &SegmentError{Segment: seg, Err: ErrInvalidSegmentFormat}
		}
	}

	return pairs, nil
}
