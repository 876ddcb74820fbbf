package watchlist

import (
	"strings"

	"moviehub/pkg/models"
)

// joinMovies resolves each entry's movie reference against the batch
// of fetched movies, keyed by document id. Entry order is preserved.
// Entries whose movie is missing are returned separately; callers
// decide how to report them.
func joinMovies(entries []models.WatchlistEntry, movies []models.Movie) (items []models.WatchlistItem, missing []models.WatchlistEntry) {
	byID := make(map[string]models.Movie, len(movies))
	for _, m := range movies {
		byID[m.ID] = m
	}

	items = make([]models.WatchlistItem, 0, len(entries))
	for _, e := range entries {
		m, ok := byID[strings.TrimSpace(e.MovieID)]
		if !ok {
			missing = append(missing, e)
			continue
		}
		items = append(items, models.WatchlistItem{
			ID:       e.ID,
			Bookmark: e.Bookmark,
			Movie:    m,
		})
	}
	return items, missing
}

// movieIDs collects the distinct trimmed movie ids of the entries,
// keeping first-seen order.
func movieIDs(entries []models.WatchlistEntry) []string {
	seen := make(map[string]struct{}, len(entries))
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		id := strings.TrimSpace(e.MovieID)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}
