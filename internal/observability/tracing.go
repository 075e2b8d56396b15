package observability

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	dbTracerName       = "shopreviews/db"
	storeTracerName    = "shopreviews/reviewstore"
	upstreamTracerName = "shopreviews/shopify"
)

type contextKey string

const (
	shopContextKey contextKey = "observability.shop"
	requestIDKey   contextKey = "observability.request_id"
	routeKey       contextKey = "observability.route"
)

// Span is the application-level tracing span contract.
type Span interface {
	End()
	RecordError(error)
}

type otelSpan struct {
	inner trace.Span
}

// StartDBSpan starts a database tracing span for one query operation.
func StartDBSpan(ctx context.Context, queryName, operation string) (context.Context, Span) {
	queryName = strings.TrimSpace(queryName)
	if queryName == "" {
		queryName = "unknown"
	}
	attrs := []attribute.KeyValue{
		attribute.String("db.system.name", "sqlite"),
		attribute.String("db.query_name", queryName),
		attribute.String("db.operation", strings.TrimSpace(operation)),
	}
	attrs = appendShopAttribute(ctx, attrs)

	ctx, span := otel.Tracer(dbTracerName).Start(ctx, "db."+queryName,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attrs...),
	)
	return ctx, otelSpan{inner: span}
}

// StartStoreSpan starts a span around one review store operation.
func StartStoreSpan(ctx context.Context, medium, operation string) (context.Context, Span) {
	attrs := []attribute.KeyValue{
		attribute.String("reviewstore.medium", strings.TrimSpace(medium)),
		attribute.String("reviewstore.operation", strings.TrimSpace(operation)),
	}
	ctx, span := otel.Tracer(storeTracerName).Start(ctx, "reviewstore."+operation,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)
	return ctx, otelSpan{inner: span}
}

// StartUpstreamSpan starts a span around one commerce API call.
func StartUpstreamSpan(ctx context.Context, operation, shop string) (context.Context, Span) {
	attrs := []attribute.KeyValue{
		attribute.String("shopify.operation", strings.TrimSpace(operation)),
		attribute.String("shopify.shop", strings.TrimSpace(shop)),
	}
	ctx, span := otel.Tracer(upstreamTracerName).Start(ctx, "shopify."+operation,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attrs...),
	)
	return ctx, otelSpan{inner: span}
}

// WithShop enriches context and current span with the session shop domain.
func WithShop(ctx context.Context, shop string) context.Context {
	shop = strings.TrimSpace(shop)
	if shop == "" {
		return ctx
	}
	ctx = context.WithValue(ctx, shopContextKey, shop)
	if span := trace.SpanFromContext(ctx); span != nil {
		span.SetAttributes(attribute.String("shopify.shop", shop))
	}
	return ctx
}

// WithRequestMetadata enriches context and current span with request metadata.
func WithRequestMetadata(ctx context.Context, requestID, route string) context.Context {
	requestID = strings.TrimSpace(requestID)
	route = strings.TrimSpace(route)
	if requestID != "" {
		ctx = context.WithValue(ctx, requestIDKey, requestID)
	}
	if route != "" {
		ctx = context.WithValue(ctx, routeKey, route)
	}
	setSpanRequestAttributes(ctx, requestID, route)
	return ctx
}

// ShopFromContext extracts the session shop domain.
func ShopFromContext(ctx context.Context) (string, bool) {
	value, ok := ctx.Value(shopContextKey).(string)
	return value, ok && value != ""
}

// RequestIDFromContext extracts request id.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	value, ok := ctx.Value(requestIDKey).(string)
	value = strings.TrimSpace(value)
	return value, ok && value != ""
}

// RouteFromContext extracts normalized route path.
func RouteFromContext(ctx context.Context) (string, bool) {
	value, ok := ctx.Value(routeKey).(string)
	value = strings.TrimSpace(value)
	return value, ok && value != ""
}

func appendShopAttribute(ctx context.Context, attrs []attribute.KeyValue) []attribute.KeyValue {
	if shop, ok := ShopFromContext(ctx); ok {
		attrs = append(attrs, attribute.String("shopify.shop", shop))
	}
	return attrs
}

func setSpanRequestAttributes(ctx context.Context, requestID, route string) {
	span := trace.SpanFromContext(ctx)
	if span == nil {
		return
	}
	attrs := make([]attribute.KeyValue, 0, 2)
	if requestID != "" {
		attrs = append(attrs, attribute.String("request.id", requestID))
	}
	if route != "" {
		attrs = append(attrs, attribute.String("http.route", route))
	}
	if len(attrs) > 0 {
		span.SetAttributes(attrs...)
	}
}

func (s otelSpan) End() {
	if s.inner == nil {
		return
	}
	s.inner.End()
}

func (s otelSpan) RecordError(err error) {
	if s.inner == nil || err == nil {
		return
	}
	s.inner.RecordError(err)
	s.inner.SetStatus(codes.Error, err.Error())
}
