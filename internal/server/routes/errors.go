package routes

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fr0stylo/shopreviews/internal/app/domain"
	appservices "github.com/fr0stylo/shopreviews/internal/app/services"
)

type errorResponse struct {
	Error  string              `json:"error"`
	Fields []domain.FieldError `json:"fields,omitempty"`
}

func statusForKind(kind appservices.ErrorKind) int {
	switch kind {
	case appservices.ErrorBadRequest, appservices.ErrorValidation:
		return http.StatusBadRequest
	case appservices.ErrorUnauthorized:
		return http.StatusUnauthorized
	case appservices.ErrorProductNotFound:
		return http.StatusNotFound
	case appservices.ErrorUpstreamUnavailable, appservices.ErrorUpstreamRequestFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func messageForKind(kind appservices.ErrorKind) string {
	switch kind {
	case appservices.ErrorBadRequest:
		return "Product ID is required"
	case appservices.ErrorValidation:
		return "Invalid review submission"
	case appservices.ErrorUnauthorized:
		return "Unauthorized"
	case appservices.ErrorProductNotFound:
		return "Product not found"
	case appservices.ErrorUpstreamUnavailable, appservices.ErrorUpstreamRequestFailed:
		return "Failed to fetch product details"
	case appservices.ErrorPersistence:
		return "Failed to save review"
	default:
		return "Internal Server Error"
	}
}

func respondError(c echo.Context, err error) error {
	kind := appservices.ClassifyError(err)
	status := statusForKind(kind)
	body := errorResponse{Error: messageForKind(kind)}

	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		body.Fields = validationErr.Fields
	}
	if status >= http.StatusInternalServerError {
		slog.ErrorContext(c.Request().Context(), "Request failed",
			"kind", string(kind),
			"status", status,
			"error", err,
		)
	}
	return c.JSON(status, body)
}
