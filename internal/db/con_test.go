package db

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fr0stylo/shopreviews/internal/db/queries"
)

func TestNewAppliesMigrationsAndTracksLatency(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	database, err := New(filepath.Join(t.TempDir(), "nested", "reviews"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer database.Close()

	count, err := database.CountReviews(ctx)
	if err != nil {
		t.Fatalf("count reviews: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected empty table, got %d rows", count)
	}

	stats := database.QueryLatencyStats()
	if len(stats) != 1 || stats[0].Name != "CountReviews" || stats[0].Count != 1 {
		t.Fatalf("unexpected latency stats: %+v", stats)
	}
}

func TestWithTxRollsBackOnError(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	database, err := New(filepath.Join(t.TempDir(), "reviews"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer database.Close()

	boom := errors.New("boom")
	err = database.WithTx(ctx, func(q *queries.Queries) error {
		if err := q.InsertReview(ctx, queries.InsertReviewParams{
			ID:        "r-1",
			ProductID: "p-1",
			Rating:    4,
			Comment:   "rolled back",
			CreatedAt: time.Now().UTC().Format(time.RFC3339Nano),
		}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected callback error, got %v", err)
	}

	exists, err := database.ReviewIDExists(ctx, "r-1")
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if exists != 0 {
		t.Fatal("expected insert to be rolled back")
	}
}

func TestRatingConstraintRejectsOutOfRange(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	database, err := New(filepath.Join(t.TempDir(), "reviews"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer database.Close()

	err = database.InsertReview(ctx, queries.InsertReviewParams{
		ID:        "r-1",
		ProductID: "p-1",
		Rating:    9,
		Comment:   "too high",
		CreatedAt: time.Now().UTC().Format(time.RFC3339Nano),
	})
	if err == nil {
		t.Fatal("expected check constraint violation")
	}
}

func TestQueryName(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"-- name: ListReviews :many\nSELECT 1": "ListReviews",
		"SELECT 1":                             "unknown",
		"-- name:":                             "unknown",
	}
	for query, want := range cases {
		if got := queryName(query); got != want {
			t.Fatalf("queryName(%q) = %q, want %q", query, got, want)
		}
	}
}

func TestSQLiteDSNAddsExtraParams(t *testing.T) {
	t.Parallel()

	dsn := sqliteDSN("data/reviews", "&cache=shared", "broken", " ")
	if !strings.HasPrefix(dsn, "file:data/reviews.sqlite?") {
		t.Fatalf("unexpected dsn prefix: %s", dsn)
	}
	if !strings.Contains(dsn, "cache=shared") {
		t.Fatalf("expected extra param in dsn: %s", dsn)
	}
	if strings.Contains(dsn, "broken") {
		t.Fatalf("malformed param must be skipped: %s", dsn)
	}
}
