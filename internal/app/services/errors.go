package services

import (
	"errors"

	"github.com/fr0stylo/shopreviews/internal/app/domain"
)

// ErrorKind classifies service failures for transport-specific mapping.
type ErrorKind string

const (
	// ErrorUnknown is used when error is nil or not classified.
	ErrorUnknown ErrorKind = "unknown"
	// ErrorUnauthorized indicates a missing or incomplete shop session.
	ErrorUnauthorized ErrorKind = "unauthorized"
	// ErrorBadRequest indicates missing required input.
	ErrorBadRequest ErrorKind = "bad_request"
	// ErrorUpstreamUnavailable indicates a network-level upstream failure.
	ErrorUpstreamUnavailable ErrorKind = "upstream_unavailable"
	// ErrorUpstreamRequestFailed indicates a non-success upstream status.
	ErrorUpstreamRequestFailed ErrorKind = "upstream_request_failed"
	// ErrorProductNotFound indicates the upstream has no such product.
	ErrorProductNotFound ErrorKind = "product_not_found"
	// ErrorValidation indicates invalid submission fields.
	ErrorValidation ErrorKind = "validation"
	// ErrorPersistence indicates the review could not be stored.
	ErrorPersistence ErrorKind = "persistence"
)

// ClassifyError classifies a returned service error.
func ClassifyError(err error) ErrorKind {
	switch {
	case err == nil:
		return ErrorUnknown
	case errors.Is(err, domain.ErrUnauthorized):
		return ErrorUnauthorized
	case errors.Is(err, domain.ErrBadRequest):
		return ErrorBadRequest
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		return ErrorUpstreamUnavailable
	case errors.Is(err, domain.ErrUpstreamRequestFailed):
		return ErrorUpstreamRequestFailed
	case errors.Is(err, domain.ErrProductNotFound):
		return ErrorProductNotFound
	case errors.Is(err, domain.ErrValidation):
		return ErrorValidation
	case errors.Is(err, domain.ErrPersistence):
		return ErrorPersistence
	default:
		return ErrorUnknown
	}
}
