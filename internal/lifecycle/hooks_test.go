package lifecycle

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moviehub/pkg/models"
)

type fakeStore struct {
	samples   []models.Movie
	sampleErr error
	seedErr   error
	purgeErr  error

	gotSampleN  int
	seededUID   string
	seeded      []models.WatchlistEntry
	purgedUID   string
	purgeCalled bool
}

func (f *fakeStore) SampleMovies(_ context.Context, n int) ([]models.Movie, error) {
	f.gotSampleN = n
	return f.samples, f.sampleErr
}

func (f *fakeStore) SeedWatchlist(_ context.Context, uid string, entries []models.WatchlistEntry) error {
	f.seededUID = uid
	f.seeded = entries
	return f.seedErr
}

func (f *fakeStore) PurgeUserData(_ context.Context, uid string) error {
	f.purgedUID = uid
	f.purgeCalled = true
	return f.purgeErr
}

func TestOnUserCreatedSeedsWatchlist(t *testing.T) {
	st := &fakeStore{samples: []models.Movie{{ID: "m1"}, {ID: "m2"}}}
	NewHooks(st, zerolog.Nop()).OnUserCreated(context.Background(), models.AuthUser{UID: "u1"})

	assert.Equal(t, seedCount, st.gotSampleN)
	assert.Equal(t, "u1", st.seededUID)
	require.Len(t, st.seeded, 2)
	for _, e := range st.seeded {
		assert.Zero(t, e.Bookmark, "seeded entries start unwatched")
	}
	assert.Equal(t, "m1", st.seeded[0].MovieID)
	assert.Equal(t, "m2", st.seeded[1].MovieID)
}

func TestOnUserCreatedSmallCatalog(t *testing.T) {
	st := &fakeStore{samples: []models.Movie{{ID: "m1"}}}
	NewHooks(st, zerolog.Nop()).OnUserCreated(context.Background(), models.AuthUser{UID: "u1"})

	assert.Len(t, st.seeded, 1, "seeds whatever the catalog has")
}

func TestOnUserCreatedEmptyCatalog(t *testing.T) {
	st := &fakeStore{}
	NewHooks(st, zerolog.Nop()).OnUserCreated(context.Background(), models.AuthUser{UID: "u1"})

	assert.Empty(t, st.seededUID, "no seed write for an empty catalog")
}

func TestOnUserCreatedSwallowsErrors(t *testing.T) {
	st := &fakeStore{sampleErr: errors.New("backend down")}
	// must not panic or propagate
	NewHooks(st, zerolog.Nop()).OnUserCreated(context.Background(), models.AuthUser{UID: "u1"})
	assert.Empty(t, st.seededUID)

	st = &fakeStore{samples: []models.Movie{{ID: "m1"}}, seedErr: errors.New("backend down")}
	NewHooks(st, zerolog.Nop()).OnUserCreated(context.Background(), models.AuthUser{UID: "u1"})
}

func TestOnUserDeletedPurges(t *testing.T) {
	st := &fakeStore{}
	NewHooks(st, zerolog.Nop()).OnUserDeleted(context.Background(), models.AuthUser{UID: "u1"})

	assert.Equal(t, "u1", st.purgedUID)
}

func TestOnUserDeletedSwallowsErrors(t *testing.T) {
	st := &fakeStore{purgeErr: errors.New("backend down")}
	NewHooks(st, zerolog.Nop()).OnUserDeleted(context.Background(), models.AuthUser{UID: "u1"})

	assert.True(t, st.purgeCalled)
}
