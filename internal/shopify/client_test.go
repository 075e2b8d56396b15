package shopify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fr0stylo/shopreviews/internal/app/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, timeout time.Duration) (*Client, string) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := NewClient(Config{APIVersion: "2024-10", Timeout: timeout, Scheme: "http"})
	return client, strings.TrimPrefix(srv.URL, "http://")
}

func TestFetchProductSendsAuthenticatedQuery(t *testing.T) {
	t.Parallel()

	client, shop := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method: %s", r.Method)
		}
		if r.URL.Path != "/admin/api/2024-10/graphql.json" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get(AccessTokenHeader); got != "shpat_token" {
			t.Errorf("unexpected access token header: %q", got)
		}
		var payload graphQLRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		if payload.Variables["id"] != "gid://shopify/Product/123" {
			t.Errorf("unexpected id variable: %#v", payload.Variables["id"])
		}
		if !strings.Contains(payload.Query, "product(id: $id)") {
			t.Errorf("unexpected query: %s", payload.Query)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{
				"product": map[string]string{"id": "gid://shopify/Product/123", "title": "Wool Hat", "handle": "wool-hat"},
			},
		})
	}, time.Second)

	product, err := client.FetchProduct(context.Background(), shop, "shpat_token", "123")
	if err != nil {
		t.Fatalf("FetchProduct error = %v", err)
	}
	if product.ID != "gid://shopify/Product/123" || product.Title != "Wool Hat" || product.Handle != "wool-hat" {
		t.Fatalf("unexpected product: %+v", product)
	}
}

func TestFetchProductNullProductIsNotFound(t *testing.T) {
	t.Parallel()

	client, shop := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"product":null}}`))
	}, time.Second)

	_, err := client.FetchProduct(context.Background(), shop, "token", "404")
	if !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestFetchProductMissingDataIsNotFound(t *testing.T) {
	t.Parallel()

	client, shop := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"errors":[{"message":"Access denied"}]}`))
	}, time.Second)

	_, err := client.FetchProduct(context.Background(), shop, "token", "1")
	if !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestFetchProductNonSuccessStatusCarriesCode(t *testing.T) {
	t.Parallel()

	client, shop := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"errors":"[API] Invalid API key or access token"}`, http.StatusUnauthorized)
	}, time.Second)

	_, err := client.FetchProduct(context.Background(), shop, "bad", "1")
	var statusErr *domain.UpstreamStatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected UpstreamStatusError, got %v", err)
	}
	if statusErr.StatusCode != http.StatusUnauthorized {
		t.Fatalf("unexpected status: %d", statusErr.StatusCode)
	}
	if !errors.Is(err, domain.ErrUpstreamRequestFailed) {
		t.Fatal("expected error to match ErrUpstreamRequestFailed")
	}
}

func TestFetchProductTimeoutIsUnavailable(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	client, shop := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}, 50*time.Millisecond)
	defer close(release)

	_, err := client.FetchProduct(context.Background(), shop, "token", "1")
	if !errors.Is(err, domain.ErrUpstreamUnavailable) {
		t.Fatalf("expected ErrUpstreamUnavailable, got %v", err)
	}
}

func TestFetchProductConnectionRefusedIsUnavailable(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	shop := strings.TrimPrefix(srv.URL, "http://")
	srv.Close()

	client := NewClient(Config{Scheme: "http", Timeout: time.Second})
	_, err := client.FetchProduct(context.Background(), shop, "token", "1")
	if !errors.Is(err, domain.ErrUpstreamUnavailable) {
		t.Fatalf("expected ErrUpstreamUnavailable, got %v", err)
	}
}

func TestEndpointDefaultsToHTTPS(t *testing.T) {
	t.Parallel()

	client := NewClient(Config{})
	want := "https://demo.myshopify.com/admin/api/" + DefaultAPIVersion + "/graphql.json"
	if got := client.Endpoint("demo.myshopify.com"); got != want {
		t.Fatalf("Endpoint() = %q, want %q", got, want)
	}
}
