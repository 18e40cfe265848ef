package wheel

import (
	"errors"
	"fmt"
)

var (
	ErrNumberOutOfRange      = errors.New("number out of range")
	ErrNegativeNeighborCount = errors.New("negative neighbor count")
	ErrRadiusTooLarge        = errors.New("neighbor count too large")
)

// PairError reports a pair the resolver rejected.
type PairError struct {
	Number int
	Radius int
	Err    error
}

func (e *PairError) Error() string {
	switch e.Err {
	case ErrNumberOutOfRange:
		return fmt.Sprintf("invalid number: %d. Must be between 0 and 36", e.Number)
	case ErrNegativeNeighborCount:
		return fmt.Sprintf("neighbor count for number %d must be non-negative", e.Number)
	case ErrRadiusTooLarge:
		return fmt.Sprintf("neighbor count %d for number %d is too large", e.Radius, e.Number)
	default:
		return fmt.Sprintf("pair (%d, %d): %v", e.Number, e.Radius, e.Err)
	}
}

func (e *PairError) Unwrap() error {
	return e.Err
}
