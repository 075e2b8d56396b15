// Package storefactory opens the review store selected by configuration.
package storefactory

import (
	"fmt"
	"log/slog"

	"github.com/fr0stylo/shopreviews/internal/adapters/jsonfile"
	"github.com/fr0stylo/shopreviews/internal/adapters/sqlite"
	"github.com/fr0stylo/shopreviews/internal/app/ports"
	"github.com/fr0stylo/shopreviews/internal/config"
)

// Store is a review store that also accepts pre-identified imports.
type Store interface {
	ports.ReviewStore
	ports.ReviewImporter
}

// LatencyLogger is implemented by stores that track query latency.
type LatencyLogger interface {
	LogQueryLatency(log *slog.Logger)
}

// Open opens the configured medium.
func Open(cfg config.StoreConfig) (Store, error) {
	switch cfg.Driver {
	case config.StoreDriverJSON, "":
		store, err := jsonfile.NewStore(cfg.Path, jsonfile.Options{Strict: cfg.Strict})
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.StoreDriverSQLite:
		store, err := sqlite.Open(cfg.Path, sqlite.Options{})
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown review store driver %q", cfg.Driver)
	}
}
