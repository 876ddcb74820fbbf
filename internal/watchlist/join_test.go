package watchlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moviehub/pkg/models"
)

func TestJoinMovies(t *testing.T) {
	entries := []models.WatchlistEntry{
		{ID: "e1", Bookmark: 1500, MovieID: "m2"},
		{ID: "e2", Bookmark: 0, MovieID: "m1"},
		{ID: "e3", Bookmark: 42, MovieID: "gone"},
	}
	movies := []models.Movie{
		{ID: "m1", Title: "Sintel"},
		{ID: "m2", Title: "Big Buck Bunny"},
	}

	items, missing := joinMovies(entries, movies)

	require.Len(t, items, 2)
	assert.Equal(t, "e1", items[0].ID, "entry order is preserved")
	assert.Equal(t, 1500, items[0].Bookmark)
	assert.Equal(t, "Big Buck Bunny", items[0].Movie.Title)
	assert.Equal(t, "e2", items[1].ID)
	assert.Equal(t, "Sintel", items[1].Movie.Title)

	require.Len(t, missing, 1)
	assert.Equal(t, "e3", missing[0].ID)
}

func TestJoinMoviesTrimsReference(t *testing.T) {
	items, missing := joinMovies(
		[]models.WatchlistEntry{{ID: "e1", MovieID: " m1 "}},
		[]models.Movie{{ID: "m1", Title: "Sintel"}},
	)

	require.Len(t, items, 1)
	assert.Empty(t, missing)
}

func TestJoinMoviesAllUnresolved(t *testing.T) {
	entries := []models.WatchlistEntry{{ID: "e1", MovieID: "gone"}}

	items, missing := joinMovies(entries, nil)

	assert.NotNil(t, items)
	assert.Empty(t, items)
	assert.Len(t, missing, 1)
}

func TestMovieIDs(t *testing.T) {
	ids := movieIDs([]models.WatchlistEntry{
		{MovieID: "m2"},
		{MovieID: " m1 "},
		{MovieID: "m2"},
		{MovieID: "  "},
	})

	assert.Equal(t, []string{"m2", "m1"}, ids)
}
