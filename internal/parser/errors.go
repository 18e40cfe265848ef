package parser

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidSegmentFormat = errors.New("invalid format")
	ErrInvalidPairTokens    = errors.New("invalid input format")
	ErrInvalidSingleToken   = errors.New("invalid number format")
)

// SegmentError carries the raw segment, untrimmed, that failed to parse.
type SegmentError struct {
	Segment string
	Err     error
}

func (e *SegmentError) Error() string {
	switch e.Err {
	case ErrInvalidSegmentFormat:
		return fmt.Sprintf("invalid format for '%s'. Use 'number count' or 'number'", e.Segment)
	case ErrInvalidPairTokens:
		return fmt.Sprintf("invalid input format for pair '%s'. Ensure numbers and counts are integers", e.Segment)
	case ErrInvalidSingleToken:
		return fmt.Sprintf("invalid number format for '%s'. Ensure it's an integer", e.Segment)
	default:
		return fmt.Sprintf("segment '%s': %v", e.Segment, e.Err)
	}
}

func (e *SegmentError) Unwrap() error {
	return e.Err
}
