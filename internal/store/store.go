package store

import (
	"context"
	"errors"

	"moviehub/pkg/models"
)

var (
	// ErrNotFound reports that a referenced document does not exist.
	ErrNotFound = errors.New("store: not found")
	// ErrUnavailable reports a transient backend failure.
	ErrUnavailable = errors.New("store: unavailable")
)

// Store is the document-store boundary. Implementations decode into
// typed models here; nothing above this interface sees raw document
// payloads. Constructed once at startup and passed into handlers.
type Store interface {
	// Catalog reads. Movies filters by category membership when a
	// category is given; results keep the backend's natural order.
	Categories(ctx context.Context) ([]models.Category, error)
	Movies(ctx context.Context, category string) ([]models.Movie, error)

	// MoviesByID is one batched id-membership lookup. Ids with no
	// matching document are absent from the result, not an error.
	MoviesByID(ctx context.Context, ids []string) ([]models.Movie, error)

	// SampleMovies returns up to n arbitrary catalog movies.
	SampleMovies(ctx context.Context, n int) ([]models.Movie, error)

	WatchlistEntries(ctx context.Context, uid string) ([]models.WatchlistEntry, error)
	AddWatchlistEntry(ctx context.Context, uid string, entry models.WatchlistEntry) (string, error)
	// UpdateBookmark mutates only the bookmark of an existing entry
	// and returns ErrNotFound for an unknown entry id.
	UpdateBookmark(ctx context.Context, uid, entryID string, bookmark int) error
	// DeleteWatchlistEntry is idempotent: deleting an absent id
	// succeeds.
	DeleteWatchlistEntry(ctx context.Context, uid, entryID string) error

	// SeedWatchlist writes the entries plus the user's root record as
	// a single atomic batch.
	SeedWatchlist(ctx context.Context, uid string, entries []models.WatchlistEntry) error
	// PurgeUserData removes all of the user's watchlist entries and
	// the root record atomically.
	PurgeUserData(ctx context.Context, uid string) error

	Ping(ctx context.Context) error
	Close() error
}
