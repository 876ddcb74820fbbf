package sync

import "time"

type WatchlistEvent struct {
	Type     string    `json:"type"` // "watchlist.add", "watchlist.update" or "watchlist.delete"
	UserID   string    `json:"user_id"`
	EntryID  string    `json:"entry_id,omitempty"`
	MovieID  string    `json:"movie_id,omitempty"`
	Bookmark int       `json:"bookmark,omitempty"`
	At       time.Time `json:"at"`
}
