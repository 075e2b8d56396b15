package sqlite

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fr0stylo/shopreviews/internal/app/domain"
	"github.com/fr0stylo/shopreviews/internal/app/ports"
	"github.com/fr0stylo/shopreviews/internal/db"
	"github.com/fr0stylo/shopreviews/internal/db/queries"
	"github.com/fr0stylo/shopreviews/internal/observability"
)

const (
	medium        = "sqlite"
	maxIDAttempts = 8
)

type reviewDatabase interface {
	ListReviews(ctx context.Context) ([]queries.Review, error)
	ListReviewsByProduct(ctx context.Context, productID string) ([]queries.Review, error)
	WithTx(ctx context.Context, fn func(*queries.Queries) error) error
}

// Options tunes store behavior.
type Options struct {
	Now   func() time.Time
	NewID func() (string, error)
}

// ReviewStore keeps reviews in a SQLite table, one row per review.
type ReviewStore struct {
	db       reviewDatabase
	database *db.Database
	closeFn  func() error
	now     func() time.Time
	newID   func() (string, error)

	// Serializes id selection and insert within the process.
	mu sync.Mutex
}

// Open opens (and migrates) the database at path and returns a store owning it.
func Open(path string, opts Options) (*ReviewStore, error) {
	database, err := db.New(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}
	store := newReviewStore(database, database.Close, opts)
	store.database = database
	return store, nil
}

// NewSharedReviewStore wraps an existing handle. Close does not close it.
func NewSharedReviewStore(database *db.Database, opts Options) *ReviewStore {
	store := newReviewStore(database, nil, opts)
	store.database = database
	return store
}

func newReviewStore(database reviewDatabase, closeFn func() error, opts Options) *ReviewStore {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = func() (string, error) {
			id, err := uuid.NewV7()
			if err != nil {
				return "", err
			}
			return id.String(), nil
		}
	}
	return &ReviewStore{db: database, closeFn: closeFn, now: opts.Now, newID: opts.NewID}
}

func (s *ReviewStore) Append(ctx context.Context, review domain.Review) (domain.Review, error) {
	ctx, span := observability.StartStoreSpan(ctx, medium, "append")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.db.WithTx(ctx, func(q *queries.Queries) error {
		id, err := s.uniqueID(ctx, q)
		if err != nil {
			return err
		}
		review.ID = id
		review.CreatedAt = s.now().UTC()
		return q.InsertReview(ctx, toParams(review))
	})
	if err != nil {
		span.RecordError(err)
		return domain.Review{}, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}
	return review, nil
}

func (s *ReviewStore) Import(ctx context.Context, review domain.Review) error {
	ctx, span := observability.StartStoreSpan(ctx, medium, "import")
	defer span.End()

	if strings.TrimSpace(review.ID) == "" {
		return fmt.Errorf("%w: imported review has no id", domain.ErrPersistence)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.db.WithTx(ctx, func(q *queries.Queries) error {
		exists, err := q.ReviewIDExists(ctx, review.ID)
		if err != nil {
			return err
		}
		if exists != 0 {
			return fmt.Errorf("duplicate review id %s", review.ID)
		}
		return q.InsertReview(ctx, toParams(review))
	})
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}
	return nil
}

func (s *ReviewStore) ListAll(ctx context.Context) ([]domain.Review, error) {
	ctx, span := observability.StartStoreSpan(ctx, medium, "list_all")
	defer span.End()

	rows, err := s.db.ListReviews(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}
	return fromRows(rows)
}

func (s *ReviewStore) ListByProduct(ctx context.Context, productID string) ([]domain.Review, error) {
	ctx, span := observability.StartStoreSpan(ctx, medium, "list_by_product")
	defer span.End()

	rows, err := s.db.ListReviewsByProduct(ctx, productID)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}
	return fromRows(rows)
}

// LogQueryLatency logs per-query latency of the underlying database.
func (s *ReviewStore) LogQueryLatency(log *slog.Logger) {
	if s.database != nil {
		s.database.LogQueryLatency(log)
	}
}

func (s *ReviewStore) Close() error {
	if s.closeFn == nil {
		return nil
	}
	return s.closeFn()
}

func (s *ReviewStore) uniqueID(ctx context.Context, q *queries.Queries) (string, error) {
	for range maxIDAttempts {
		id, err := s.newID()
		if err != nil {
			return "", fmt.Errorf("generate review id: %w", err)
		}
		exists, err := q.ReviewIDExists(ctx, id)
		if err != nil {
			return "", err
		}
		if exists == 0 {
			return id, nil
		}
	}
	return "", errors.New("generate review id: exhausted attempts on collisions")
}

func toParams(review domain.Review) queries.InsertReviewParams {
	return queries.InsertReviewParams{
		ID:        review.ID,
		ProductID: review.ProductID,
		Rating:    int64(review.Rating),
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func fromRows(rows []queries.Review) ([]domain.Review, error) {
	reviews := make([]domain.Review, 0, len(rows))
	for _, row := range rows {
		createdAt, err := time.Parse(time.RFC3339Nano, row.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("%w: review %s has invalid created_at: %w", domain.ErrPersistence, row.ID, err)
		}
		reviews = append(reviews, domain.Review{
			ID:        row.ID,
			ProductID: row.ProductID,
			Rating:    int(row.Rating),
			Comment:   row.Comment,
			CreatedAt: createdAt,
		})
	}
	return reviews, nil
}

var (
	_ ports.ReviewStore    = (*ReviewStore)(nil)
	_ ports.ReviewImporter = (*ReviewStore)(nil)
)
