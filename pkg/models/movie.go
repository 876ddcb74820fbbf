package models

// Movie is a catalog entry. The catalog is read-only from this
// service's perspective; identity is the document id.
type Movie struct {
	ID          string   `json:"id" firestore:"-"`
	Title       string   `json:"title" firestore:"title"`
	Description string   `json:"description,omitempty" firestore:"description"`
	Image       string   `json:"image,omitempty" firestore:"image"`
	Video       string   `json:"video,omitempty" firestore:"video"`
	Categories  []string `json:"categories,omitempty" firestore:"categories"`
}

// Category is a named catalog filter, matched against a movie's
// categories array.
type Category struct {
	Title  string `json:"title" firestore:"title"`
	Filter string `json:"filter" firestore:"filter"`
}
