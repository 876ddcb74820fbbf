// Package lifecycle reacts to identity-provider user events: seeding a
// starter watchlist on creation and purging all per-user data on
// deletion. Failures are logged and swallowed; the provider is never
// asked to retry.
package lifecycle

import (
	"context"

	"github.com/rs/zerolog"

	"moviehub/pkg/models"
)

// Store is the slice of the document store the hooks need.
type Store interface {
	SampleMovies(ctx context.Context, n int) ([]models.Movie, error)
	SeedWatchlist(ctx context.Context, uid string, entries []models.WatchlistEntry) error
	PurgeUserData(ctx context.Context, uid string) error
}

// seedCount is how many catalog movies a new user starts with.
const seedCount = 2

type Hooks struct {
	Store Store
	Log   zerolog.Logger
}

func NewHooks(store Store, log zerolog.Logger) *Hooks {
	return &Hooks{Store: store, Log: log}
}

// OnUserCreated seeds up to seedCount watchlist entries for the new
// user in a single atomic batch.
func (h *Hooks) OnUserCreated(ctx context.Context, user models.AuthUser) {
	movies, err := h.Store.SampleMovies(ctx, seedCount)
	if err != nil {
		h.Log.Error().Err(err).Str("uid", user.UID).Msg("seed watchlist: sampling movies failed")
		return
	}
	if len(movies) == 0 {
		h.Log.Warn().Str("uid", user.UID).Msg("seed watchlist: catalog is empty, nothing to seed")
		return
	}

	entries := make([]models.WatchlistEntry, 0, len(movies))
	for _, m := range movies {
		entries = append(entries, models.WatchlistEntry{Bookmark: 0, MovieID: m.ID})
	}

	if err := h.Store.SeedWatchlist(ctx, user.UID, entries); err != nil {
		h.Log.Error().Err(err).Str("uid", user.UID).Msg("seed watchlist failed")
		return
	}
	h.Log.Info().Str("uid", user.UID).Int("entries", len(entries)).Msg("seeded watchlist for new user")
}

// OnUserDeleted removes the user's watchlist entries and root data
// record atomically.
func (h *Hooks) OnUserDeleted(ctx context.Context, user models.AuthUser) {
	if err := h.Store.PurgeUserData(ctx, user.UID); err != nil {
		h.Log.Error().Err(err).Str("uid", user.UID).Msg("purge user data failed")
		return
	}
	h.Log.Info().Str("uid", user.UID).Msg("purged user data")
}
