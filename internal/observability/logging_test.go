package observability

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestWrapSlogHandlerAddsRequestFields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := NewLogger(&buf, slog.LevelInfo)

	ctx := WithRequestMetadata(context.Background(), "req-1", "/app/products/:productId")
	ctx = WithShop(ctx, "demo.myshopify.com")
	log.InfoContext(ctx, "lookup")

	out := buf.String()
	for _, want := range []string{"request_id=req-1", "route=/app/products/:productId", "shop=demo.myshopify.com"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in log line %q", want, out)
		}
	}
}

func TestWrapSlogHandlerSkipsEmptyMetadata(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := NewLogger(&buf, slog.LevelInfo)

	log.InfoContext(WithShop(WithRequestMetadata(context.Background(), " ", ""), ""), "plain")
	if strings.Contains(buf.String(), "request_id=") || strings.Contains(buf.String(), "shop=") {
		t.Fatalf("unexpected metadata in %q", buf.String())
	}
}
