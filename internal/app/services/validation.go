package services

import (
	"strconv"
	"strings"

	"github.com/fr0stylo/shopreviews/internal/app/domain"
)

// ReviewSubmission is the raw, transport-agnostic review input.
// Nil fields were absent from the request.
type ReviewSubmission struct {
	ProductID *string
	Rating    *string
	Comment   *string
}

// NewReviewSubmission builds a submission where every field is present.
func NewReviewSubmission(productID, rating, comment string) ReviewSubmission {
	return ReviewSubmission{ProductID: &productID, Rating: &rating, Comment: &comment}
}

// ReviewCandidate is a submission that passed validation.
type ReviewCandidate struct {
	ProductID string
	Rating    int
	Comment   string
}

// ValidateReview checks a submission and reports every invalid field.
func ValidateReview(raw ReviewSubmission) (ReviewCandidate, error) {
	var (
		candidate ReviewCandidate
		fields    []domain.FieldError
	)

	switch {
	case raw.ProductID == nil:
		fields = append(fields, domain.FieldError{Field: "productId", Message: "is required"})
	case strings.TrimSpace(*raw.ProductID) == "":
		fields = append(fields, domain.FieldError{Field: "productId", Message: "must not be empty"})
	default:
		candidate.ProductID = strings.TrimSpace(*raw.ProductID)
	}

	if raw.Rating == nil || strings.TrimSpace(*raw.Rating) == "" {
		fields = append(fields, domain.FieldError{Field: "rating", Message: "is required"})
	} else if rating, err := strconv.Atoi(strings.TrimSpace(*raw.Rating)); err != nil {
		fields = append(fields, domain.FieldError{Field: "rating", Message: "must be an integer"})
	} else if rating < domain.MinRating || rating > domain.MaxRating {
		fields = append(fields, domain.FieldError{Field: "rating", Message: "must be between 1 and 5"})
	} else {
		candidate.Rating = rating
	}

	switch {
	case raw.Comment == nil:
		fields = append(fields, domain.FieldError{Field: "comment", Message: "is required"})
	case strings.TrimSpace(*raw.Comment) == "":
		fields = append(fields, domain.FieldError{Field: "comment", Message: "must not be empty"})
	default:
		candidate.Comment = strings.TrimSpace(*raw.Comment)
	}

	if len(fields) > 0 {
		return ReviewCandidate{}, &domain.ValidationError{Fields: fields}
	}
	return candidate, nil
}
