// Package errors defines custom error types and error handling utilities for the cadetops analytics service.
// This package provides structured error types that carry a machine-readable code, an HTTP status and metadata.
package errors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/turtacn/cadetops/pkg/constants"
)

// ================================================================================
// Base Error Interface
// ================================================================================

// DomainError represents a structured error with additional metadata
type DomainError interface {
	error

	// Code returns the machine-readable error code
	Code() constants.ErrorCode

	// HTTPStatus returns the HTTP status code
	HTTPStatus() int

	// Description returns a human-readable description
	Description() string

	// Unwrap returns the underlying error for error chain support
	Unwrap() error

	// WithCause adds a cause error to the error chain
	WithCause(cause error) DomainError

	// WithMetadata adds additional context metadata
	WithMetadata(key string, value interface{}) DomainError

	// Metadata returns all metadata
	Metadata() map[string]interface{}
}

// ================================================================================
// Base Error Implementation
// ================================================================================

// baseError is the internal implementation of DomainError
type baseError struct {
	code        constants.ErrorCode
	httpStatus  int
	description string
	message     string
	cause       error
	metadata    map[string]interface{}
}

// Error implements the error interface
func (e *baseError) Error() string {
	if e.message != "" {
		return e.message
	}
	return e.description
}

func (e *baseError) Code() constants.ErrorCode {
	return e.code
}

func (e *baseError) HTTPStatus() int {
	return e.httpStatus
}

func (e *baseError) Description() string {
	return e.description
}

func (e *baseError) Unwrap() error {
	return e.cause
}

func (e *baseError) WithCause(cause error) DomainError {
	e.cause = cause
	return e
}

func (e *baseError) WithMetadata(key string, value interface{}) DomainError {
	if e.metadata == nil {
		e.metadata = make(map[string]interface{})
	}
	e.metadata[key] = value
	return e
}

func (e *baseError) Metadata() map[string]interface{} {
	return e.metadata
}

// ================================================================================
// Error Constructor
// ================================================================================

// NewError creates a new DomainError with the specified parameters
func NewError(code constants.ErrorCode, httpStatus int, description string, message string) DomainError {
	return &baseError{
		code:        code,
		httpStatus:  httpStatus,
		description: description,
		message:     message,
		metadata:    make(map[string]interface{}),
	}
}

// ================================================================================
// Analytics Error Constructors
// ================================================================================

// ErrInvalidInput creates an invalid_input error for a field that failed validation
func ErrInvalidInput(field string, reason string) DomainError {
	return NewError(
		constants.ErrCodeInvalidInput,
		http.StatusUnprocessableEntity,
		"A required field is missing or outside its allowed range.",
		fmt.Sprintf("invalid %s: %s", field, reason),
	).WithMetadata("field", field)
}

// ErrMissingField creates an invalid_input error for an absent required field
func ErrMissingField(field string) DomainError {
	return ErrInvalidInput(field, "is required")
}

// ErrOutOfRange creates an invalid_input error for a value outside [min, max]
func ErrOutOfRange(field string, value interface{}, min interface{}, max interface{}) DomainError {
	return ErrInvalidInput(field, fmt.Sprintf("value %v outside [%v, %v]", value, min, max)).
		WithMetadata("value", value).
		WithMetadata("min", min).
		WithMetadata("max", max)
}

// ErrInsufficientData creates an insufficient_data error; the subject gets no numeric result
func ErrInsufficientData(subject string, reason string) DomainError {
	return NewError(
		constants.ErrCodeInsufficientData,
		http.StatusUnprocessableEntity,
		"Not enough data is available to compute a result.",
		fmt.Sprintf("insufficient data for %s: %s", subject, reason),
	).WithMetadata("subject", subject)
}

// ErrEmptyPopulation creates an empty_population error
func ErrEmptyPopulation(population string) DomainError {
	return NewError(
		constants.ErrCodeEmptyPopulation,
		http.StatusOK,
		"The population is empty; aggregates default to zero.",
		fmt.Sprintf("empty population: %s", population),
	).WithMetadata("population", population)
}

// ErrInvalidPolicy creates an invalid_policy error
func ErrInvalidPolicy(reason string) DomainError {
	return NewError(
		constants.ErrCodeInvalidPolicy,
		http.StatusInternalServerError,
		"The analytics policy is invalid.",
		fmt.Sprintf("invalid analytics policy: %s", reason),
	)
}

// ErrSnapshotUnavailable creates a snapshot_unavailable error
func ErrSnapshotUnavailable(reason string) DomainError {
	return NewError(
		constants.ErrCodeSnapshotUnavailable,
		http.StatusServiceUnavailable,
		"The data snapshot could not be acquired.",
		fmt.Sprintf("snapshot unavailable: %s", reason),
	)
}

// ErrNotFound creates a not_found error
func ErrNotFound(resource string, id string) DomainError {
	return NewError(
		constants.ErrCodeNotFound,
		http.StatusNotFound,
		"The requested resource was not found.",
		fmt.Sprintf("%s not found: %s", resource, id),
	).WithMetadata("resource", resource).
		WithMetadata("id", id)
}

// ErrServerError creates a server_error error
func ErrServerError(message string) DomainError {
	return NewError(
		constants.ErrCodeServerError,
		http.StatusInternalServerError,
		"The server encountered an unexpected condition.",
		message,
	)
}

// ================================================================================
// Error Validation Utilities
// ================================================================================

// AsDomainError finds the first DomainError in the error chain
func AsDomainError(err error) (DomainError, bool) {
	var de DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// HasCode reports whether the error chain carries the given code
func HasCode(err error, code constants.ErrorCode) bool {
	if de, ok := AsDomainError(err); ok {
		return de.Code() == code
	}
	return false
}

// IsInvalidInput checks if an error is an invalid_input error
func IsInvalidInput(err error) bool {
	return HasCode(err, constants.ErrCodeInvalidInput)
}

// IsInsufficientData checks if an error is an insufficient_data error
func IsInsufficientData(err error) bool {
	return HasCode(err, constants.ErrCodeInsufficientData)
}

// IsEmptyPopulation checks if an error is an empty_population error
func IsEmptyPopulation(err error) bool {
	return HasCode(err, constants.ErrCodeEmptyPopulation)
}

// WrapError wraps a generic error into a DomainError
func WrapError(err error, code constants.ErrorCode, message string) DomainError {
	var httpStatus int

	switch code {
	case constants.ErrCodeInvalidInput, constants.ErrCodeInsufficientData:
		httpStatus = http.StatusUnprocessableEntity
	case constants.ErrCodeNotFound:
		httpStatus = http.StatusNotFound
	case constants.ErrCodeSnapshotUnavailable:
		httpStatus = http.StatusServiceUnavailable
	default:
		httpStatus = http.StatusInternalServerError
	}

	return NewError(code, httpStatus, err.Error(), message).WithCause(err)
}

// ================================================================================
// Error Response Builder
// ================================================================================

// ErrorResponse represents the JSON structure for error responses
type ErrorResponse struct {
	Error            string                 `json:"error"`
	ErrorDescription string                 `json:"error_description"`
	Message          string                 `json:"message,omitempty"`
	Metadata         map[string]interface{} `json:"metadata,omitempty"`
}

// ToErrorResponse converts a DomainError to an ErrorResponse
func ToErrorResponse(err DomainError) *ErrorResponse {
	resp := &ErrorResponse{
		Error:            string(err.Code()),
		ErrorDescription: err.Description(),
		Message:          err.Error(),
	}
	if len(err.Metadata()) > 0 {
		resp.Metadata = err.Metadata()
	}
	return resp
}

// ToGenericErrorResponse converts any error to an ErrorResponse and its HTTP status
func ToGenericErrorResponse(err error) (*ErrorResponse, int) {
	if de, ok := AsDomainError(err); ok {
		return ToErrorResponse(de), de.HTTPStatus()
	}

	return &ErrorResponse{
		Error:            string(constants.ErrCodeServerError),
		ErrorDescription: "An unexpected error occurred",
	}, http.StatusInternalServerError
}

//Personal.AI order the ending
