package api

import (
	"github.com/shopspring/decimal"

	"github.com/MJE43/roulette-neighbors/internal/table"
	"github.com/MJE43/roulette-neighbors/internal/wheel"
)

// EngineError represents a structured error response with context
type EngineError struct {
	Type      string                 `json:"type"`
	Message   string                 `json:"message"`
	Context   map[string]interface{} `json:"context,omitempty"`
	RequestID string                 `json:"request_id,omitempty"`
	Timestamp string                 `json:"timestamp,omitempty"`
}

// Error implements the error interface
func (e EngineError) Error() string {
	return e.Message
}

// Error types with proper categorization
const (
	// Input parsing errors
	ErrTypeInvalidSegmentFormat = "invalid_segment_format"
	ErrTypeInvalidPairTokens    = "invalid_pair_tokens"
	ErrTypeInvalidSingleToken   = "invalid_single_token"

	// Wheel resolution errors
	ErrTypeNumberOutOfRange      = "number_out_of_range"
	ErrTypeNegativeNeighborCount = "negative_neighbor_count"
	ErrTypeRadiusTooLarge        = "radius_too_large"

	// Request validation errors
	ErrTypeValidation = "validation_error"

	// System errors
	ErrTypeTimeout  = "timeout"
	ErrTypeInternal = "internal_error"
)

// ErrorCategory represents error categories for monitoring
type ErrorCategory string

const (
	CategoryParse      ErrorCategory = "parse"
	CategoryWheel      ErrorCategory = "wheel"
	CategoryValidation ErrorCategory = "validation"
	CategorySystem     ErrorCategory = "system"
	CategoryTimeout    ErrorCategory = "timeout"
)

// GetErrorCategory returns the category for an error type
func GetErrorCategory(errType string) ErrorCategory {
	switch errType {
	case ErrTypeInvalidSegmentFormat, ErrTypeInvalidPairTokens, ErrTypeInvalidSingleToken:
		return CategoryParse
	case ErrTypeNumberOutOfRange, ErrTypeNegativeNeighborCount, ErrTypeRadiusTooLarge:
		return CategoryWheel
	case ErrTypeValidation:
		return CategoryValidation
	case ErrTypeTimeout:
		return CategoryTimeout
	default:
		return CategorySystem
	}
}

// isInputCategory reports whether the category is caused by caller input.
func isInputCategory(c ErrorCategory) bool {
	return c == CategoryParse || c == CategoryWheel || c == CategoryValidation
}

// Build information, set with
// -ldflags "-X github.com/MJE43/roulette-neighbors/internal/api.Version=v1.0.0".
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

// VersionInfo describes the running build.
type VersionInfo struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildTime string `json:"build_time,omitempty"`
}

// GetVersionInfo returns the build information of this binary.
func GetVersionInfo() VersionInfo {
	return VersionInfo{
		Version:   Version,
		GitCommit: GitCommit,
		BuildTime: BuildTime,
	}
}

// NeighborsRequest asks for the neighborhoods of the numbers in Input.
// DefaultNeighbors falls back to the configured default when omitted.
type NeighborsRequest struct {
	Input            string `json:"input"`
	DefaultNeighbors *int   `json:"default_neighbors,omitempty"`
}

// NeighborsResponse is the result of a neighbors lookup
type NeighborsResponse struct {
	Pairs     []wheel.Pair    `json:"pairs"`
	Requested []int           `json:"requested"`
	Neighbors map[int][]int   `json:"neighbors"`
	Highlight []int           `json:"highlight"`
	Coverage  decimal.Decimal `json:"coverage_pct"`
	Colors    map[int]string  `json:"colors"`
	Tables    []table.Grid    `json:"tables"`
	Version   string          `json:"version"`
	Echo      NeighborsEcho   `json:"echo"`
}

// NeighborsEcho repeats the effective request parameters
type NeighborsEcho struct {
	Input            string `json:"input"`
	DefaultNeighbors int    `json:"default_neighbors"`
}

// WheelResponse lists the wheel pockets in order
type WheelResponse struct {
	Pockets []wheel.Pocket `json:"pockets"`
	Version string         `json:"version"`
}

// LayoutResponse describes the racetrack grid; blank cells are null
type LayoutResponse struct {
	Rows    int      `json:"rows"`
	Cols    int      `json:"cols"`
	Cells   [][]*int `json:"cells"`
	Version string   `json:"version"`
}
