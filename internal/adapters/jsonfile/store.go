// Package jsonfile stores the review collection as one JSON document.
//
// Every append rewrites the whole document through a temporary file and
// a rename, so readers in this or any other process see either the old or
// the new collection. Appends are serialized in-process by the store lock.
//
// Unreadable or corrupt prior content is treated as an empty collection
// and logged, unless the store is opened in strict mode. In lenient mode
// the next append therefore replaces the corrupt document.
package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/fr0stylo/shopreviews/internal/app/domain"
	"github.com/fr0stylo/shopreviews/internal/observability"
)

const (
	medium         = "json"
	maxIDAttempts  = 8
	filePermission = 0o644
)

// Options tunes store behavior.
type Options struct {
	// Strict fails loads of corrupt content instead of treating it as empty.
	Strict bool
	Now    func() time.Time
	NewID  func() (string, error)
}

// Store is a file-backed review collection.
type Store struct {
	path   string
	strict bool
	now    func() time.Time
	newID  func() (string, error)

	mu sync.RWMutex
}

// NewStore prepares a store at path. The file itself is created by the first append.
func NewStore(path string, opts Options) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("review store path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create review store directory: %w", err)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = newUUIDv7
	}
	return &Store{path: path, strict: opts.Strict, now: opts.Now, newID: opts.NewID}, nil
}

// Path returns the collection file location.
func (s *Store) Path() string {
	return s.path
}

// Append stores a review, assigning its id and creation time.
func (s *Store) Append(ctx context.Context, review domain.Review) (domain.Review, error) {
	ctx, span := observability.StartStoreSpan(ctx, medium, "append")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	reviews, err := s.load(ctx)
	if err != nil {
		span.RecordError(err)
		return domain.Review{}, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}

	id, err := s.uniqueID(reviews)
	if err != nil {
		span.RecordError(err)
		return domain.Review{}, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}
	review.ID = id
	review.CreatedAt = s.now().UTC()

	if err := s.write(append(reviews, review)); err != nil {
		span.RecordError(err)
		return domain.Review{}, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}
	return review, nil
}

// Import stores a review keeping its id and creation time.
func (s *Store) Import(ctx context.Context, review domain.Review) error {
	ctx, span := observability.StartStoreSpan(ctx, medium, "import")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	reviews, err := s.load(ctx)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}
	if strings.TrimSpace(review.ID) == "" {
		return fmt.Errorf("%w: imported review has no id", domain.ErrPersistence)
	}
	if lo.ContainsBy(reviews, func(existing domain.Review) bool { return existing.ID == review.ID }) {
		return fmt.Errorf("%w: duplicate review id %s", domain.ErrPersistence, review.ID)
	}
	if err := s.write(append(reviews, review)); err != nil {
		span.RecordError(err)
		return fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}
	return nil
}

// ListAll returns every review in insertion order. A missing file is an empty collection.
func (s *Store) ListAll(ctx context.Context) ([]domain.Review, error) {
	ctx, span := observability.StartStoreSpan(ctx, medium, "list_all")
	defer span.End()

	s.mu.RLock()
	defer s.mu.RUnlock()

	reviews, err := s.load(ctx)
	span.RecordError(err)
	return reviews, err
}

// ListByProduct returns the reviews of one product in insertion order.
func (s *Store) ListByProduct(ctx context.Context, productID string) ([]domain.Review, error) {
	reviews, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return lo.Filter(reviews, func(review domain.Review, _ int) bool {
		return review.ProductID == productID
	}), nil
}

// Close releases nothing; the file is closed after every operation.
func (s *Store) Close() error {
	return nil
}

func (s *Store) load(ctx context.Context) ([]domain.Review, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []domain.Review{}, nil
		}
		return s.unreadable(ctx, fmt.Errorf("read review store: %w", err))
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []domain.Review{}, nil
	}

	var reviews []domain.Review
	if err := json.Unmarshal(data, &reviews); err != nil {
		return s.unreadable(ctx, fmt.Errorf("parse review store: %w", err))
	}
	if reviews == nil {
		reviews = []domain.Review{}
	}
	return reviews, nil
}

func (s *Store) unreadable(ctx context.Context, err error) ([]domain.Review, error) {
	if s.strict {
		return nil, err
	}
	slog.WarnContext(ctx, "Review store content unreadable, continuing with empty collection",
		"path", s.path,
		"error", err,
	)
	return []domain.Review{}, nil
}

func (s *Store) write(reviews []domain.Review) error {
	data, err := json.MarshalIndent(reviews, "", "  ")
	if err != nil {
		return fmt.Errorf("encode review store: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp review store: %w", err)
	}
	tmpPath := tmp.Name()
	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}

	if _, err := tmp.Write(data); err != nil {
		cleanup()
		return fmt.Errorf("write temp review store: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return fmt.Errorf("sync temp review store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close temp review store: %w", err)
	}
	if err := os.Chmod(tmpPath, filePermission); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("chmod temp review store: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replace review store: %w", err)
	}
	return nil
}

// uniqueID must be called with the write lock held.
func (s *Store) uniqueID(existing []domain.Review) (string, error) {
	taken := make(map[string]struct{}, len(existing))
	for _, review := range existing {
		taken[review.ID] = struct{}{}
	}
	for range maxIDAttempts {
		id, err := s.newID()
		if err != nil {
			return "", fmt.Errorf("generate review id: %w", err)
		}
		if _, ok := taken[id]; !ok {
			return id, nil
		}
	}
	return "", errors.New("generate review id: exhausted attempts on collisions")
}

func newUUIDv7() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
