package models

// WatchlistEntry is the persisted shape of a saved item: a movie
// reference plus a playback bookmark, scoped to one user.
type WatchlistEntry struct {
	ID       string `json:"id" firestore:"-"`
	Bookmark int    `json:"bookmark" firestore:"bookmark"`
	MovieID  string `json:"movie_id" firestore:"movie_id"`
}

// WatchlistItem is an entry joined with its resolved movie. Built
// per-request; never persisted in this shape.
type WatchlistItem struct {
	ID       string `json:"id"`
	Bookmark int    `json:"bookmark"`
	Movie    Movie  `json:"movie"`
}
