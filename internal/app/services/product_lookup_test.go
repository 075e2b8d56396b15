package services

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/fr0stylo/shopreviews/internal/app/domain"
	portmocks "github.com/fr0stylo/shopreviews/internal/app/ports/mocks"
)

var validSession = domain.ShopSession{Shop: "demo.myshopify.com", AccessToken: "shpat_test"}

func TestLookupProduct_RejectsIncompleteSession(t *testing.T) {
	fetcher := portmocks.NewMockProductFetcher(t)
	svc := NewProductLookupService(fetcher)

	for _, session := range []domain.ShopSession{
		{},
		{Shop: "demo.myshopify.com"},
		{AccessToken: "token"},
		{Shop: "  ", AccessToken: "  "},
	} {
		_, err := svc.LookupProduct(context.Background(), session, "123")
		if ClassifyError(err) != ErrorUnauthorized {
			t.Fatalf("session %+v: expected unauthorized, got %v", session, err)
		}
	}
	fetcher.AssertNotCalled(t, "FetchProduct", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestLookupProduct_RequiresProductID(t *testing.T) {
	fetcher := portmocks.NewMockProductFetcher(t)
	svc := NewProductLookupService(fetcher)

	_, err := svc.LookupProduct(context.Background(), validSession, "")
	if ClassifyError(err) != ErrorBadRequest {
		t.Fatalf("expected bad request, got %v", err)
	}
}

func TestLookupProduct_ReturnsProduct(t *testing.T) {
	fetcher := portmocks.NewMockProductFetcher(t)
	svc := NewProductLookupService(fetcher)

	want := domain.Product{ID: "gid://shopify/Product/123", Title: "Hat", Handle: "hat"}
	fetcher.EXPECT().FetchProduct(mock.Anything, "demo.myshopify.com", "shpat_test", "123").Return(want, nil)

	got, err := svc.LookupProduct(context.Background(), validSession, "123")
	if err != nil {
		t.Fatalf("LookupProduct returned error: %v", err)
	}
	if got != want {
		t.Fatalf("unexpected product: %+v", got)
	}
}

func TestLookupProduct_PassesUpstreamClassificationThrough(t *testing.T) {
	cases := []struct {
		err  error
		kind ErrorKind
	}{
		{err: fmt.Errorf("dial: %w", domain.ErrUpstreamUnavailable), kind: ErrorUpstreamUnavailable},
		{err: &domain.UpstreamStatusError{StatusCode: http.StatusForbidden}, kind: ErrorUpstreamRequestFailed},
		{err: domain.ErrProductNotFound, kind: ErrorProductNotFound},
	}

	for _, tc := range cases {
		fetcher := portmocks.NewMockProductFetcher(t)
		svc := NewProductLookupService(fetcher)
		fetcher.EXPECT().FetchProduct(mock.Anything, mock.Anything, mock.Anything, "123").Return(domain.Product{}, tc.err)

		_, err := svc.LookupProduct(context.Background(), validSession, "123")
		if got := ClassifyError(err); got != tc.kind {
			t.Fatalf("expected %s, got %s (%v)", tc.kind, got, err)
		}
	}
}
