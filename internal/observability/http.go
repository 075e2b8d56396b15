package observability

import (
	"strings"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
)

// EchoMiddleware returns the unified HTTP tracing middleware.
func EchoMiddleware(serviceName string) echo.MiddlewareFunc {
	if strings.TrimSpace(serviceName) == "" {
		serviceName = "shopreviews"
	}
	return otelecho.Middleware(serviceName, otelecho.WithSkipper(traceSkipper))
}

// EchoSpanEnrichmentMiddleware adds request attributes to the active root span.
func EchoSpanEnrichmentMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			ctx = WithRequestMetadata(ctx, c.Response().Header().Get(echo.HeaderXRequestID), resolvedRoute(c))
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

func traceSkipper(c echo.Context) bool {
	switch strings.TrimSpace(c.Request().URL.Path) {
	case "/health", "/healthz", "/favicon.ico", "/auth/shopify/callback":
		return true
	default:
		return false
	}
}

func resolvedRoute(c echo.Context) string {
	route := strings.TrimSpace(c.Path())
	if route != "" {
		return route
	}
	return strings.TrimSpace(c.Request().URL.Path)
}
