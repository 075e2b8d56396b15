package ports

import (
	"context"

	"github.com/fr0stylo/shopreviews/internal/app/domain"
)

// ReviewStore is the durable review collection.
//
// Append assigns the id and creation time, so callers pass only the
// submitted fields. Implementations serialize appends and never expose a
// partially written collection to readers.
type ReviewStore interface {
	Append(ctx context.Context, review domain.Review) (domain.Review, error)
	ListAll(ctx context.Context) ([]domain.Review, error)
	ListByProduct(ctx context.Context, productID string) ([]domain.Review, error)
	Close() error
}

// ReviewImporter stores reviews that already carry an id and creation time.
type ReviewImporter interface {
	Import(ctx context.Context, review domain.Review) error
}

// ProductFetcher resolves a product from the upstream commerce API.
type ProductFetcher interface {
	FetchProduct(ctx context.Context, shop, accessToken, productID string) (domain.Product, error)
}
