package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moviehub/internal/store"
	"moviehub/pkg/database"
	"moviehub/pkg/models"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	db, err := database.Open(database.Config{Path: filepath.Join(t.TempDir(), "test.db")})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db))
	return New(db)
}

func seedCatalog(t *testing.T, db *sql.DB) {
	t.Helper()
	for _, q := range []struct {
		query string
		args  []any
	}{
		{`INSERT INTO categories (title, filter) VALUES (?, ?)`, []any{"Animation", "animation"}},
		{`INSERT INTO categories (title, filter) VALUES (?, ?)`, []any{"Short Films", "short"}},
		{`INSERT INTO movies (id, title, categories) VALUES (?, ?, ?)`,
			[]any{"m1", "Big Buck Bunny", `["animation","short"]`}},
		{`INSERT INTO movies (id, title, categories) VALUES (?, ?, ?)`,
			[]any{"m2", "Sintel", `["animation"]`}},
		{`INSERT INTO movies (id, title, categories) VALUES (?, ?, ?)`,
			[]any{"m3", "Elephants Dream", `[]`}},
	} {
		_, err := db.Exec(q.query, q.args...)
		require.NoError(t, err)
	}
}

func TestCategories(t *testing.T) {
	s := testStore(t)
	seedCatalog(t, s.DB)

	cats, err := s.Categories(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, []models.Category{
		{Title: "Animation", Filter: "animation"},
		{Title: "Short Films", Filter: "short"},
	}, cats)
}

func TestMoviesCategoryFilter(t *testing.T) {
	s := testStore(t)
	seedCatalog(t, s.DB)
	ctx := context.Background()

	all, err := s.Movies(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	animated, err := s.Movies(ctx, "animation")
	require.NoError(t, err)
	require.Len(t, animated, 2)
	for _, m := range animated {
		assert.Contains(t, m.Categories, "animation")
	}

	none, err := s.Movies(ctx, "documentary")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestMoviesByID(t *testing.T) {
	s := testStore(t)
	seedCatalog(t, s.DB)

	movies, err := s.MoviesByID(context.Background(), []string{"m2", "gone", "m1"})
	require.NoError(t, err)
	require.Len(t, movies, 2, "unknown ids are skipped")

	empty, err := s.MoviesByID(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestSampleMovies(t *testing.T) {
	s := testStore(t)
	seedCatalog(t, s.DB)

	sample, err := s.SampleMovies(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, sample, 2)

	more, err := s.SampleMovies(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, more, 3, "capped at catalog size")
}

func TestWatchlistCRUD(t *testing.T) {
	s := testStore(t)
	seedCatalog(t, s.DB)
	ctx := context.Background()

	id, err := s.AddWatchlistEntry(ctx, "alice", models.WatchlistEntry{Bookmark: 1500, MovieID: "m1"})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	entries, err := s.WatchlistEntries(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, id, entries[0].ID)
	assert.Equal(t, 1500, entries[0].Bookmark)
	assert.Equal(t, "m1", entries[0].MovieID)

	require.NoError(t, s.UpdateBookmark(ctx, "alice", id, 90))
	entries, err = s.WatchlistEntries(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 90, entries[0].Bookmark)

	require.NoError(t, s.DeleteWatchlistEntry(ctx, "alice", id))
	entries, err = s.WatchlistEntries(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestWatchlistScopedToUser(t *testing.T) {
	s := testStore(t)
	seedCatalog(t, s.DB)
	ctx := context.Background()

	aliceID, err := s.AddWatchlistEntry(ctx, "alice", models.WatchlistEntry{Bookmark: 10, MovieID: "m1"})
	require.NoError(t, err)
	_, err = s.AddWatchlistEntry(ctx, "bob", models.WatchlistEntry{Bookmark: 20, MovieID: "m2"})
	require.NoError(t, err)

	entries, err := s.WatchlistEntries(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "m1", entries[0].MovieID)

	// bob cannot touch alice's entry
	err = s.UpdateBookmark(ctx, "bob", aliceID, 999)
	assert.ErrorIs(t, err, store.ErrNotFound)
	require.NoError(t, s.DeleteWatchlistEntry(ctx, "bob", aliceID))

	entries, err = s.WatchlistEntries(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, entries, 1, "cross-user delete is a no-op")
}

func TestUpdateBookmarkUnknownEntry(t *testing.T) {
	s := testStore(t)

	err := s.UpdateBookmark(context.Background(), "alice", "nope", 10)
	assert.True(t, errors.Is(err, store.ErrNotFound))
}

func TestDeleteUnknownEntryIsNoError(t *testing.T) {
	s := testStore(t)
	assert.NoError(t, s.DeleteWatchlistEntry(context.Background(), "alice", "nope"))
}

func TestSeedAndPurge(t *testing.T) {
	s := testStore(t)
	seedCatalog(t, s.DB)
	ctx := context.Background()

	err := s.SeedWatchlist(ctx, "alice", []models.WatchlistEntry{
		{Bookmark: 0, MovieID: "m1"},
		{Bookmark: 0, MovieID: "m2"},
	})
	require.NoError(t, err)

	entries, err := s.WatchlistEntries(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	var userdata int
	require.NoError(t, s.DB.QueryRow(`SELECT COUNT(*) FROM userdata WHERE uid = ?`, "alice").Scan(&userdata))
	assert.Equal(t, 1, userdata)

	require.NoError(t, s.PurgeUserData(ctx, "alice"))

	entries, err = s.WatchlistEntries(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, entries)
	require.NoError(t, s.DB.QueryRow(`SELECT COUNT(*) FROM userdata WHERE uid = ?`, "alice").Scan(&userdata))
	assert.Zero(t, userdata)
}

func TestSeedTwiceKeepsUserdataRow(t *testing.T) {
	s := testStore(t)
	seedCatalog(t, s.DB)
	ctx := context.Background()

	require.NoError(t, s.SeedWatchlist(ctx, "alice", []models.WatchlistEntry{{MovieID: "m1"}}))
	require.NoError(t, s.SeedWatchlist(ctx, "alice", []models.WatchlistEntry{{MovieID: "m2"}}))

	entries, err := s.WatchlistEntries(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestPing(t *testing.T) {
	s := testStore(t)
	assert.NoError(t, s.Ping(context.Background()))
}
