package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/MJE43/roulette-neighbors/internal/lookup"
	"github.com/MJE43/roulette-neighbors/internal/parser"
	"github.com/MJE43/roulette-neighbors/internal/wheel"
)

// ErrorBuilder helps construct structured errors with context
type ErrorBuilder struct {
	errType   string
	message   string
	context   map[string]interface{}
	requestID string
}

// NewError creates a new error builder
func NewError(errType, message string) *ErrorBuilder {
	return &ErrorBuilder{
		errType: errType,
		message: message,
		context: make(map[string]interface{}),
	}
}

// WithContext adds context information to the error
func (eb *ErrorBuilder) WithContext(key string, value interface{}) *ErrorBuilder {
	eb.context[key] = value
	return eb
}

// WithRequestID adds request ID to the error
func (eb *ErrorBuilder) WithRequestID(requestID string) *ErrorBuilder {
	eb.requestID = requestID
	return eb
}

// WithCause adds the underlying cause error
func (eb *ErrorBuilder) WithCause(err error) *ErrorBuilder {
	if err != nil {
		eb.context["cause"] = err.Error()
	}
	return eb
}

// Build creates the final EngineError
func (eb *ErrorBuilder) Build() EngineError {
	return EngineError{
		Type:      eb.errType,
		Message:   eb.message,
		Context:   eb.context,
		RequestID: eb.requestID,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// Classify maps a lookup error to its API error type.
func Classify(err error) string {
	switch {
	case errors.Is(err, parser.ErrInvalidSegmentFormat):
		return ErrTypeInvalidSegmentFormat
	case errors.Is(err, parser.ErrInvalidPairTokens):
		return ErrTypeInvalidPairTokens
	case errors.Is(err, parser.ErrInvalidSingleToken):
		return ErrTypeInvalidSingleToken
	case errors.Is(err, wheel.ErrNumberOutOfRange):
		return ErrTypeNumberOutOfRange
	case errors.Is(err, wheel.ErrNegativeNeighborCount):
		return ErrTypeNegativeNeighborCount
	case errors.Is(err, wheel.ErrRadiusTooLarge):
		return ErrTypeRadiusTooLarge
	case errors.Is(err, lookup.ErrRadiusLimit):
		return ErrTypeValidation
	case errors.Is(err, context.DeadlineExceeded):
		return ErrTypeTimeout
	default:
		return ErrTypeInternal
	}
}

// ErrorHandler provides centralized error handling with logging
type ErrorHandler struct {
	logger *zap.Logger
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(logger *zap.Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// HandleError processes an error and writes appropriate HTTP response
func (eh *ErrorHandler) HandleError(w http.ResponseWriter, r *http.Request, err error, defaultStatus int) {
	requestID := middleware.GetReqID(r.Context())

	// Check if it's already an EngineError
	var engineErr EngineError
	if errors.As(err, &engineErr) {
		if engineErr.RequestID == "" {
			engineErr.RequestID = requestID
		}
		eh.logError(r, engineErr, defaultStatus)
		eh.writeErrorResponse(w, defaultStatus, engineErr)
		return
	}

	engineErr = NewError(ErrTypeInternal, err.Error()).
		WithRequestID(requestID).
		WithContext("path", r.URL.Path).
		WithContext("method", r.Method).
		Build()

	eh.logError(r, engineErr, defaultStatus)
	eh.writeErrorResponse(w, defaultStatus, engineErr)
}

// HandleLookupError reports a parse or resolve failure. The message is the
// core error text, unchanged, so the client can show it verbatim.
func (eh *ErrorHandler) HandleLookupError(w http.ResponseWriter, r *http.Request, input string, err error) {
	requestID := middleware.GetReqID(r.Context())
	errType := Classify(err)

	status := http.StatusUnprocessableEntity
	switch GetErrorCategory(errType) {
	case CategoryValidation:
		status = http.StatusBadRequest
	case CategoryTimeout:
		status = http.StatusRequestTimeout
	case CategorySystem:
		status = http.StatusInternalServerError
	}

	b := NewError(errType, err.Error()).
		WithRequestID(requestID).
		WithContext("input", input).
		WithContext("path", r.URL.Path)

	var se *parser.SegmentError
	if errors.As(err, &se) {
		b.WithContext("segment", se.Segment)
	}
	var pe *wheel.PairError
	if errors.As(err, &pe) {
		b.WithContext("number", pe.Number).WithContext("radius", pe.Radius)
	}
	var le *lookup.RadiusLimitError
	if errors.As(err, &le) {
		b.WithContext("number", le.Number).WithContext("radius", le.Radius).WithContext("max_radius", le.Max)
	}

	engineErr := b.Build()
	eh.logError(r, engineErr, status)
	eh.writeErrorResponse(w, status, engineErr)
}

// HandleValidationError handles validation-specific errors
func (eh *ErrorHandler) HandleValidationError(w http.ResponseWriter, r *http.Request, field, message string) {
	requestID := middleware.GetReqID(r.Context())

	engineErr := NewError(ErrTypeValidation, fmt.Sprintf("Validation failed: %s", message)).
		WithRequestID(requestID).
		WithContext("field", field).
		WithContext("path", r.URL.Path).
		WithContext("method", r.Method).
		Build()

	eh.logError(r, engineErr, http.StatusBadRequest)
	eh.writeErrorResponse(w, http.StatusBadRequest, engineErr)
}

// logError logs the error with appropriate level and context
func (eh *ErrorHandler) logError(r *http.Request, engineErr EngineError, status int) {
	category := GetErrorCategory(engineErr.Type)

	fields := []zap.Field{
		zap.String("type", engineErr.Type),
		zap.String("category", string(category)),
		zap.Int("status", status),
		zap.String("request_id", engineErr.RequestID),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.String("remote_ip", r.RemoteAddr),
		zap.String("message", engineErr.Message),
	}
	for key, value := range engineErr.Context {
		if key == "path" || key == "method" {
			continue
		}
		fields = append(fields, zap.Any(key, value))
	}

	if isInputCategory(category) && status < 500 {
		eh.logger.Warn("error_occurred", fields...)
		return
	}
	eh.logger.Error("error_occurred", fields...)
}

// writeErrorResponse writes the error response as JSON
func (eh *ErrorHandler) writeErrorResponse(w http.ResponseWriter, status int, engineErr EngineError) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Roulette-Version", Version)
	w.Header().Set("X-Error-Type", engineErr.Type)
	w.Header().Set("X-Error-Category", string(GetErrorCategory(engineErr.Type)))
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(engineErr); err != nil {
		eh.logger.Error("encode error response", zap.Error(err))
	}
}

// RecoveryHandler provides panic recovery with structured error logging
func (eh *ErrorHandler) RecoveryHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rvr := recover(); rvr != nil {
				if rvr == http.ErrAbortHandler {
					panic(rvr)
				}
				requestID := middleware.GetReqID(r.Context())

				eh.logger.Error("panic_recovered",
					zap.String("request_id", requestID),
					zap.String("path", r.URL.Path),
					zap.String("method", r.Method),
					zap.Any("panic", rvr),
				)

				engineErr := NewError(ErrTypeInternal, "Internal server error").
					WithRequestID(requestID).
					WithContext("panic", fmt.Sprintf("%v", rvr)).
					WithContext("path", r.URL.Path).
					WithContext("method", r.Method).
					Build()

				eh.writeErrorResponse(w, http.StatusInternalServerError, engineErr)
			}
		}()

		next.ServeHTTP(w, r)
	})
}
