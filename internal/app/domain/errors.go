package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnauthorized indicates a missing or incomplete shop session.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrBadRequest indicates missing required request input.
	ErrBadRequest = errors.New("bad request")
	// ErrUpstreamUnavailable indicates the commerce API could not be reached.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	// ErrUpstreamRequestFailed indicates the commerce API answered with a non-success status.
	ErrUpstreamRequestFailed = errors.New("upstream request failed")
	// ErrProductNotFound indicates a well-formed upstream answer without a product.
	ErrProductNotFound = errors.New("product not found")
	// ErrValidation indicates one or more invalid review fields.
	ErrValidation = errors.New("validation failed")
	// ErrPersistence indicates the review store could not durably record a review.
	ErrPersistence = errors.New("persistence failed")
)

// UpstreamStatusError carries the status code of a failed upstream call.
type UpstreamStatusError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamStatusError) Error() string {
	return fmt.Sprintf("upstream request failed with status %d", e.StatusCode)
}

// Is matches ErrUpstreamRequestFailed.
func (e *UpstreamStatusError) Is(target error) bool {
	return target == ErrUpstreamRequestFailed
}

// FieldError names one invalid submission field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every invalid field of a submission.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, field := range e.Fields {
		parts = append(parts, field.Field+": "+field.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Is matches ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// FieldNames returns the invalid field names in reporting order.
func (e *ValidationError) FieldNames() []string {
	names := make([]string, 0, len(e.Fields))
	for _, field := range e.Fields {
		names = append(names, field.Field)
	}
	return names
}
