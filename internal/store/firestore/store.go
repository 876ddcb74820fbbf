// Package firestore backs the document store with Google Cloud
// Firestore. Collections: categories, movies, userdata/{uid}/watchlist.
package firestore

import (
	"context"
	"fmt"

	fs "cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"moviehub/internal/store"
	"moviehub/pkg/models"
)

type Store struct {
	client *fs.Client
}

// New wraps an already-constructed Firestore client. The client is a
// handle built once at process start and injected here; this package
// holds no global state.
func New(client *fs.Client) *Store {
	return &Store{client: client}
}

func (s *Store) Categories(ctx context.Context) ([]models.Category, error) {
	iter := s.client.Collection("categories").Documents(ctx)
	defer iter.Stop()

	out := make([]models.Category, 0, 8)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, mapErr("list categories", err)
		}
		var c models.Category
		if err := doc.DataTo(&c); err != nil {
			return nil, fmt.Errorf("decode category %s: %w", doc.Ref.ID, err)
		}
		out = append(out, c)
	}
	return out, nil
}

func (s *Store) Movies(ctx context.Context, category string) ([]models.Movie, error) {
	q := s.client.Collection("movies").Query
	if category != "" {
		q = q.Where("categories", "array-contains", category)
	}

	iter := q.Documents(ctx)
	defer iter.Stop()

	out := make([]models.Movie, 0, 16)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, mapErr("list movies", err)
		}
		m, err := decodeMovie(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func (s *Store) MoviesByID(ctx context.Context, ids []string) ([]models.Movie, error) {
	if len(ids) == 0 {
		return []models.Movie{}, nil
	}

	refs := make([]*fs.DocumentRef, 0, len(ids))
	for _, id := range ids {
		refs = append(refs, s.client.Collection("movies").Doc(id))
	}

	snaps, err := s.client.GetAll(ctx, refs)
	if err != nil {
		return nil, mapErr("movies by id", err)
	}

	out := make([]models.Movie, 0, len(snaps))
	for _, snap := range snaps {
		// absent documents are skipped, not an error
		if !snap.Exists() {
			continue
		}
		m, err := decodeMovie(snap)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func (s *Store) SampleMovies(ctx context.Context, n int) ([]models.Movie, error) {
	if n <= 0 {
		return []models.Movie{}, nil
	}

	iter := s.client.Collection("movies").Limit(n).Documents(ctx)
	defer iter.Stop()

	out := make([]models.Movie, 0, n)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, mapErr("sample movies", err)
		}
		m, err := decodeMovie(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func (s *Store) WatchlistEntries(ctx context.Context, uid string) ([]models.WatchlistEntry, error) {
	iter := s.watchlist(uid).Documents(ctx)
	defer iter.Stop()

	out := make([]models.WatchlistEntry, 0, 8)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, mapErr("list watchlist", err)
		}
		var e models.WatchlistEntry
		if err := doc.DataTo(&e); err != nil {
			return nil, fmt.Errorf("decode watchlist entry %s: %w", doc.Ref.ID, err)
		}
		e.ID = doc.Ref.ID
		out = append(out, e)
	}
	return out, nil
}

func (s *Store) AddWatchlistEntry(ctx context.Context, uid string, entry models.WatchlistEntry) (string, error) {
	ref := s.watchlist(uid).NewDoc()
	if _, err := ref.Create(ctx, entry); err != nil {
		return "", mapErr("add watchlist entry", err)
	}
	return ref.ID, nil
}

func (s *Store) UpdateBookmark(ctx context.Context, uid, entryID string, bookmark int) error {
	_, err := s.watchlist(uid).Doc(entryID).Update(ctx, []fs.Update{
		{Path: "bookmark", Value: bookmark},
	})
	if err != nil {
		return mapErr("update bookmark", err)
	}
	return nil
}

func (s *Store) DeleteWatchlistEntry(ctx context.Context, uid, entryID string) error {
	// Firestore deletes are idempotent: removing an absent document
	// succeeds.
	if _, err := s.watchlist(uid).Doc(entryID).Delete(ctx); err != nil {
		return mapErr("delete watchlist entry", err)
	}
	return nil
}

func (s *Store) SeedWatchlist(ctx context.Context, uid string, entries []models.WatchlistEntry) error {
	batch := s.client.Batch()
	batch.Set(s.userDoc(uid), map[string]any{
		"created_at": fs.ServerTimestamp,
	}, fs.MergeAll)
	for _, e := range entries {
		batch.Create(s.watchlist(uid).NewDoc(), e)
	}
	if _, err := batch.Commit(ctx); err != nil {
		return mapErr("seed watchlist", err)
	}
	return nil
}

func (s *Store) PurgeUserData(ctx context.Context, uid string) error {
	iter := s.watchlist(uid).Documents(ctx)
	defer iter.Stop()

	batch := s.client.Batch()
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return mapErr("purge user data: list entries", err)
		}
		batch.Delete(doc.Ref)
	}
	batch.Delete(s.userDoc(uid))

	if _, err := batch.Commit(ctx); err != nil {
		return mapErr("purge user data", err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	if _, err := s.client.Collection("categories").Limit(1).Documents(ctx).GetAll(); err != nil {
		return mapErr("ping", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) userDoc(uid string) *fs.DocumentRef {
	return s.client.Collection("userdata").Doc(uid)
}

func (s *Store) watchlist(uid string) *fs.CollectionRef {
	return s.userDoc(uid).Collection("watchlist")
}

func decodeMovie(doc *fs.DocumentSnapshot) (models.Movie, error) {
	var m models.Movie
	if err := doc.DataTo(&m); err != nil {
		return models.Movie{}, fmt.Errorf("decode movie %s: %w", doc.Ref.ID, err)
	}
	m.ID = doc.Ref.ID
	return m, nil
}

func mapErr(op string, err error) error {
	switch status.Code(err) {
	case codes.NotFound:
		return fmt.Errorf("%s: %w", op, store.ErrNotFound)
	case codes.Unavailable, codes.DeadlineExceeded, codes.ResourceExhausted:
		return fmt.Errorf("%s: %w", op, store.ErrUnavailable)
	}
	return fmt.Errorf("%s: %w", op, err)
}
