package parser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MJE43/roulette-neighbors/internal/wheel"
)

func TestParseMixedSegments(t *testing.T) {
	pairs, err := Parse("3 3, 8 1, 12", 1)
	require.NoError(t, err)
	assert.Equal(t, []wheel.Pair{{Number: 3, Radius: 3}, {Number: 8, Radius: 1}, {Number: 12, Radius: 1}}, pairs)
}

func TestParseUsesDefaultAsGiven(t *testing.T) {
	pairs, err := Parse("12, 0 2", 3)
	require.NoError(t, err)
	assert.Equal(t, []wheel.Pair{{Number: 12, Radius: 3}, {Number: 0, Radius: 2}}, pairs)

	// The default is not range checked here.
	pairs, err = Parse("7", -4)
	require.NoError(t, err)
	assert.Equal(t, []wheel.Pair{{Number: 7, Radius: -4}}, pairs)
}

func TestParseKeepsOrderAndDuplicates(t *testing.T) {
	pairs, err := Parse("  5 2 ,3,5\t0,  99 ", 1)
	require.NoError(t, err)
	assert.Equal(t, []wheel.Pair{{Number: 5, Radius: 2}, {Number: 3, Radius: 1}, {Number: 5, Radius: 0}, {Number: 99, Radius: 1}}, pairs)
}

func TestParseSignedIntegers(t *testing.T) {
	pairs, err := Parse("+3 -1, -2", 1)
	require.NoError(t, err)
	assert.Equal(t, []wheel.Pair{{Number: 3, Radius: -1}, {Number: -2, Radius: 1}}, pairs)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    error
		segment string
		message string
	}{
		{
			name:    "single token not a number",
			input:   "abc",
			want:    ErrInvalidSingleToken,
			segment: "abc",
			message: "invalid number format for 'abc'. Ensure it's an integer",
		},
		{
			name:    "three tokens",
			input:   "3 3 3",
			want:    ErrInvalidSegmentFormat,
			segment: "3 3 3",
			message: "invalid format for '3 3 3'. Use 'number count' or 'number'",
		},
		{
			name:    "pair with bad radius",
			input:   "3 3, 8 x",
			want:    ErrInvalidPairTokens,
			segment: " 8 x",
			message: "invalid input format for pair ' 8 x'. Ensure numbers and counts are integers",
		},
		{
			name:    "pair with bad number",
			input:   "1.5 2",
			want:    ErrInvalidPairTokens,
			segment: "1.5 2",
		},
		{
			name:    "empty input",
			input:   "",
			want:    ErrInvalidSegmentFormat,
			segment: "",
		},
		{
			name:    "trailing comma",
			input:   "3 1,",
			want:    ErrInvalidSegmentFormat,
			segment: "",
		},
		{
			name:    "blank segment",
			input:   "3,   ,4",
			want:    ErrInvalidSegmentFormat,
			segment: "   ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pairs, err := Parse(tt.input, 1)
			require.Error(t, err)
			assert.Nil(t, pairs)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)

			var se *SegmentError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, tt.segment, se.Segment)
			if tt.message != "" {
				assert.Equal(t, tt.message, err.Error())
			}
		})
	}
}

func TestParseStopsAtFirstError(t *testing.T) {
	_, err := Parse("1, x, 3 3 3", 1)
	assert.ErrorIs(t, err, ErrInvalidSingleToken)
}
