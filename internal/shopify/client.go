// Package shopify talks to the Shopify Admin GraphQL API.
package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/fr0stylo/shopreviews/internal/app/domain"
	"github.com/fr0stylo/shopreviews/internal/observability"
)

const (
	// AccessTokenHeader carries the shop's Admin API access token.
	AccessTokenHeader = "X-Shopify-Access-Token"
	// DefaultAPIVersion is the Admin API version used when none is configured.
	DefaultAPIVersion = "2024-10"

	defaultTimeout      = 10 * time.Second
	maxErrorBodyBytes   = 4 << 10
	maxResponseBodySize = 1 << 20
)

const productQuery = `query product($id: ID!) {
  product(id: $id) {
    id
    title
    handle
  }
}`

// Config configures the Admin API client.
type Config struct {
	APIVersion string
	Timeout    time.Duration
	// RateLimit caps outbound requests per second; zero disables limiting.
	RateLimit float64
	// Scheme defaults to https.
	Scheme    string
	Transport http.RoundTripper
}

// Client issues product queries against a shop's Admin API.
type Client struct {
	apiVersion string
	scheme     string
	timeout    time.Duration
	limiter    *rate.Limiter
	httpClient *http.Client
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type productResponse struct {
	Data *struct {
		Product *struct {
			ID     string `json:"id"`
			Title  string `json:"title"`
			Handle string `json:"handle"`
		} `json:"product"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// NewClient constructs an Admin API client.
func NewClient(cfg Config) *Client {
	apiVersion := strings.TrimSpace(cfg.APIVersion)
	if apiVersion == "" {
		apiVersion = DefaultAPIVersion
	}
	scheme := strings.TrimSpace(cfg.Scheme)
	if scheme == "" {
		scheme = "https"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		burst := int(cfg.RateLimit)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}
	return &Client{
		apiVersion: apiVersion,
		scheme:     scheme,
		timeout:    timeout,
		limiter:    limiter,
		httpClient: &http.Client{Transport: observability.InstrumentTransport(cfg.Transport)},
	}
}

// ProductGID builds the namespaced global id of a product.
func ProductGID(productID string) string {
	return "gid://shopify/Product/" + strings.TrimSpace(productID)
}

// Endpoint returns the GraphQL endpoint of a shop.
func (c *Client) Endpoint(shop string) string {
	return fmt.Sprintf("%s://%s/admin/api/%s/graphql.json", c.scheme, strings.TrimSpace(shop), c.apiVersion)
}

// FetchProduct resolves one product. It makes exactly one attempt.
func (c *Client) FetchProduct(ctx context.Context, shop, accessToken, productID string) (domain.Product, error) {
	ctx, span := observability.StartUpstreamSpan(ctx, "product", shop)
	defer span.End()

	product, err := c.fetchProduct(ctx, shop, accessToken, productID)
	span.RecordError(err)
	return product, err
}

func (c *Client) fetchProduct(ctx context.Context, shop, accessToken, productID string) (domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return domain.Product{}, fmt.Errorf("%w: rate limit wait: %w", domain.ErrUpstreamUnavailable, err)
		}
	}

	raw, err := json.Marshal(graphQLRequest{
		Query:     productQuery,
		Variables: map[string]any{"id": ProductGID(productID)},
	})
	if err != nil {
		return domain.Product{}, fmt.Errorf("encode product query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint(shop), bytes.NewReader(raw))
	if err != nil {
		return domain.Product{}, fmt.Errorf("%w: build request: %w", domain.ErrUpstreamUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(AccessTokenHeader, accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%w: %w", domain.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	slog.DebugContext(ctx, "Shopify API response", "status", resp.StatusCode, "product_id", productID)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		body := strings.TrimSpace(string(payload))
		slog.ErrorContext(ctx, "Shopify API error response", "status", resp.StatusCode, "body", body)
		return domain.Product{}, &domain.UpstreamStatusError{StatusCode: resp.StatusCode, Body: body}
	}

	var parsed productResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBodySize)).Decode(&parsed); err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return domain.Product{}, fmt.Errorf("%w: read body: %w", domain.ErrUpstreamUnavailable, err)
		}
		return domain.Product{}, fmt.Errorf("%w: undecodable response: %w", domain.ErrProductNotFound, err)
	}
	if len(parsed.Errors) > 0 {
		messages := make([]string, 0, len(parsed.Errors))
		for _, e := range parsed.Errors {
			messages = append(messages, e.Message)
		}
		slog.WarnContext(ctx, "Shopify API returned GraphQL errors", "errors", strings.Join(messages, "; "))
	}
	if parsed.Data == nil || parsed.Data.Product == nil {
		return domain.Product{}, fmt.Errorf("product %s: %w", productID, domain.ErrProductNotFound)
	}

	return domain.Product{
		ID:     parsed.Data.Product.ID,
		Title:  parsed.Data.Product.Title,
		Handle: parsed.Data.Product.Handle,
	}, nil
}
