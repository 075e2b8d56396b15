package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/fr0stylo/shopreviews/internal/app/domain"
	"github.com/fr0stylo/shopreviews/internal/app/ports"
)

// ProductLookupService resolves product details for an authenticated shop.
type ProductLookupService struct {
	fetcher ports.ProductFetcher
}

// NewProductLookupService constructs a lookup service.
func NewProductLookupService(fetcher ports.ProductFetcher) *ProductLookupService {
	return &ProductLookupService{fetcher: fetcher}
}

// LookupProduct checks the session, then asks the upstream client once.
// Upstream errors are returned as classified by the client.
func (s *ProductLookupService) LookupProduct(ctx context.Context, session domain.ShopSession, productID string) (domain.Product, error) {
	session.Shop = strings.TrimSpace(session.Shop)
	session.AccessToken = strings.TrimSpace(session.AccessToken)
	if !session.Complete() {
		return domain.Product{}, fmt.Errorf("invalid session: %w", domain.ErrUnauthorized)
	}

	productID = strings.TrimSpace(productID)
	if productID == "" {
		return domain.Product{}, fmt.Errorf("product id is required: %w", domain.ErrBadRequest)
	}

	product, err := s.fetcher.FetchProduct(ctx, session.Shop, session.AccessToken, productID)
	if err != nil {
		slog.WarnContext(ctx, "Product lookup failed",
			"shop", session.Shop,
			"product_id", productID,
			"kind", string(ClassifyError(err)),
			"error", err,
		)
		return domain.Product{}, err
	}
	return product, nil
}
