package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/fr0stylo/shopreviews/internal/app/domain"
	"github.com/fr0stylo/shopreviews/internal/app/ports"
)

// ReviewIngestService validates submissions and appends them to the review store.
type ReviewIngestService struct {
	store ports.ReviewStore
}

// NewReviewIngestService constructs an ingestion service.
func NewReviewIngestService(store ports.ReviewStore) *ReviewIngestService {
	return &ReviewIngestService{store: store}
}

// SubmitReview validates raw input and stores it. Invalid input never reaches the store.
func (s *ReviewIngestService) SubmitReview(ctx context.Context, raw ReviewSubmission) (domain.Review, error) {
	candidate, err := ValidateReview(raw)
	if err != nil {
		return domain.Review{}, err
	}

	stored, err := s.store.Append(ctx, domain.Review{
		ProductID: candidate.ProductID,
		Rating:    candidate.Rating,
		Comment:   candidate.Comment,
	})
	if err != nil {
		slog.ErrorContext(ctx, "Failed to save review", "product_id", candidate.ProductID, "error", err)
		return domain.Review{}, persistenceError(err)
	}

	slog.InfoContext(ctx, "Review saved", "review_id", stored.ID, "product_id", stored.ProductID, "rating", stored.Rating)
	return stored, nil
}

// ListReviews returns every stored review in insertion order.
func (s *ReviewIngestService) ListReviews(ctx context.Context) ([]domain.Review, error) {
	reviews, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, persistenceError(err)
	}
	return reviews, nil
}

// ListProductReviews returns the stored reviews of one product in insertion order.
func (s *ReviewIngestService) ListProductReviews(ctx context.Context, productID string) ([]domain.Review, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return nil, fmt.Errorf("product id is required: %w", domain.ErrBadRequest)
	}
	reviews, err := s.store.ListByProduct(ctx, productID)
	if err != nil {
		return nil, persistenceError(err)
	}
	return reviews, nil
}

func persistenceError(err error) error {
	if errors.Is(err, domain.ErrPersistence) {
		return err
	}
	return fmt.Errorf("%w: %w", domain.ErrPersistence, err)
}
