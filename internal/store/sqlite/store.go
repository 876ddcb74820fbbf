// Package sqlite backs the document store with a local SQLite file.
// It is the development and test store; production runs on Firestore.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"moviehub/internal/store"
	"moviehub/pkg/models"
)

type Store struct {
	DB *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{DB: db}
}

func (s *Store) Categories(ctx context.Context) ([]models.Category, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT title, filter FROM categories
	`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	out := make([]models.Category, 0, 8)
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.Title, &c.Filter); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}

func (s *Store) Movies(ctx context.Context, category string) ([]models.Movie, error) {
	query := `
		SELECT id, title, description, image, video, categories
		FROM movies
	`
	var args []any
	if category != "" {
		// categories is stored as a JSON array of strings
		query += `
		WHERE EXISTS (
			SELECT 1 FROM json_each(movies.categories) WHERE json_each.value = ?
		)`
		args = append(args, category)
	}

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	defer rows.Close()

	return scanMovies(rows)
}

func (s *Store) MoviesByID(ctx context.Context, ids []string) ([]models.Movie, error) {
	if len(ids) == 0 {
		return []models.Movie{}, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, 0, len(ids))
	for _, id := range ids {
		args = append(args, id)
	}

	rows, err := s.DB.QueryContext(ctx, `
		SELECT id, title, description, image, video, categories
		FROM movies
		WHERE id IN (`+placeholders+`)
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("movies by id: %w", err)
	}
	defer rows.Close()

	return scanMovies(rows)
}

func (s *Store) SampleMovies(ctx context.Context, n int) ([]models.Movie, error) {
	if n <= 0 {
		return []models.Movie{}, nil
	}

	rows, err := s.DB.QueryContext(ctx, `
		SELECT id, title, description, image, video, categories
		FROM movies
		LIMIT ?
	`, n)
	if err != nil {
		return nil, fmt.Errorf("sample movies: %w", err)
	}
	defer rows.Close()

	return scanMovies(rows)
}

func (s *Store) WatchlistEntries(ctx context.Context, uid string) ([]models.WatchlistEntry, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT id, bookmark, movie_id
		FROM watchlist
		WHERE user_id = ?
	`, uid)
	if err != nil {
		return nil, fmt.Errorf("list watchlist: %w", err)
	}
	defer rows.Close()

	out := make([]models.WatchlistEntry, 0, 8)
	for rows.Next() {
		var e models.WatchlistEntry
		if err := rows.Scan(&e.ID, &e.Bookmark, &e.MovieID); err != nil {
			return nil, fmt.Errorf("scan watchlist entry: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}

func (s *Store) AddWatchlistEntry(ctx context.Context, uid string, entry models.WatchlistEntry) (string, error) {
	id := uuid.NewString()
	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO watchlist (id, user_id, bookmark, movie_id)
		VALUES (?, ?, ?, ?)
	`, id, uid, entry.Bookmark, entry.MovieID)
	if err != nil {
		return "", fmt.Errorf("add watchlist entry: %w", err)
	}
	return id, nil
}

func (s *Store) UpdateBookmark(ctx context.Context, uid, entryID string, bookmark int) error {
	res, err := s.DB.ExecContext(ctx, `
		UPDATE watchlist
		SET bookmark = ?
		WHERE id = ? AND user_id = ?
	`, bookmark, entryID, uid)
	if err != nil {
		return fmt.Errorf("update bookmark: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update bookmark rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("update bookmark %s: %w", entryID, store.ErrNotFound)
	}
	return nil
}

func (s *Store) DeleteWatchlistEntry(ctx context.Context, uid, entryID string) error {
	// deleting an absent id is not an error
	_, err := s.DB.ExecContext(ctx, `
		DELETE FROM watchlist
		WHERE id = ? AND user_id = ?
	`, entryID, uid)
	if err != nil {
		return fmt.Errorf("delete watchlist entry: %w", err)
	}
	return nil
}

func (s *Store) SeedWatchlist(ctx context.Context, uid string, entries []models.WatchlistEntry) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed watchlist: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `
		INSERT OR IGNORE INTO userdata (uid) VALUES (?)
	`, uid); err != nil {
		return fmt.Errorf("seed userdata: %w", err)
	}

	for _, e := range entries {
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO watchlist (id, user_id, bookmark, movie_id)
			VALUES (?, ?, ?, ?)
		`, uuid.NewString(), uid, e.Bookmark, e.MovieID); err != nil {
			return fmt.Errorf("seed watchlist entry: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit seed watchlist: %w", err)
	}
	return nil
}

func (s *Store) PurgeUserData(ctx context.Context, uid string) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin purge user data: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `
		DELETE FROM watchlist WHERE user_id = ?
	`, uid); err != nil {
		return fmt.Errorf("purge watchlist: %w", err)
	}
	if _, err = tx.ExecContext(ctx, `
		DELETE FROM userdata WHERE uid = ?
	`, uid); err != nil {
		return fmt.Errorf("purge userdata: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit purge user data: %w", err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.DB.PingContext(ctx)
}

func (s *Store) Close() error {
	return s.DB.Close()
}

func scanMovies(rows *sql.Rows) ([]models.Movie, error) {
	out := make([]models.Movie, 0, 16)
	for rows.Next() {
		var (
			m              models.Movie
			categoriesJSON string
		)
		if err := rows.Scan(&m.ID, &m.Title, &m.Description, &m.Image, &m.Video, &categoriesJSON); err != nil {
			return nil, fmt.Errorf("scan movie: %w", err)
		}
		if err := json.Unmarshal([]byte(categoriesJSON), &m.Categories); err != nil {
			return nil, fmt.Errorf("decode movie %s categories: %w", m.ID, err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}
