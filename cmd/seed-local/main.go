// Command seed-local fills the local SQLite store with a small sample
// catalog and a development user, so the API is usable in local auth
// mode without a Firebase project.
package main

import (
	"encoding/json"
	"flag"
	"log"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"moviehub/pkg/database"
	"moviehub/pkg/models"
)

var sampleCategories = []models.Category{
	{Title: "Action", Filter: "action"},
	{Title: "Drama", Filter: "drama"},
	{Title: "Documentary", Filter: "documentary"},
}

var sampleMovies = []models.Movie{
	{
		ID:          "big-buck-bunny",
		Title:       "Big Buck Bunny",
		Description: "A giant rabbit takes revenge on three rodents.",
		Image:       "https://example.com/posters/big-buck-bunny.jpg",
		Video:       "https://example.com/streams/big-buck-bunny.mp4",
		Categories:  []string{"action"},
	},
	{
		ID:          "sintel",
		Title:       "Sintel",
		Description: "A girl searches for a dragon she once befriended.",
		Image:       "https://example.com/posters/sintel.jpg",
		Video:       "https://example.com/streams/sintel.mp4",
		Categories:  []string{"drama", "action"},
	},
	{
		ID:          "elephants-dream",
		Title:       "Elephants Dream",
		Description: "Two characters explore a strange mechanical world.",
		Image:       "https://example.com/posters/elephants-dream.jpg",
		Video:       "https://example.com/streams/elephants-dream.mp4",
		Categories:  []string{"documentary"},
	},
}

func main() {
	dbPath := flag.String("db", database.DefaultConfig().Path, "sqlite database path")
	email := flag.String("email", "dev@example.com", "dev user email")
	password := flag.String("password", "password123", "dev user password")
	flag.Parse()

	db := database.MustOpen(database.Config{Path: *dbPath})
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	for _, cat := range sampleCategories {
		if _, err := db.Exec(`
			INSERT OR IGNORE INTO categories (title, filter) VALUES (?, ?)
		`, cat.Title, cat.Filter); err != nil {
			log.Fatalf("seed category %q: %v", cat.Title, err)
		}
	}

	for _, m := range sampleMovies {
		cats, err := json.Marshal(m.Categories)
		if err != nil {
			log.Fatalf("encode categories for %q: %v", m.ID, err)
		}
		if _, err := db.Exec(`
			INSERT OR IGNORE INTO movies (id, title, description, image, video, categories)
			VALUES (?, ?, ?, ?, ?, ?)
		`, m.ID, m.Title, m.Description, m.Image, m.Video, string(cats)); err != nil {
			log.Fatalf("seed movie %q: %v", m.ID, err)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}
	if _, err := db.Exec(`
		INSERT OR IGNORE INTO users (id, email, password_hash) VALUES (?, ?, ?)
	`, uuid.NewString(), *email, string(hash)); err != nil {
		log.Fatalf("seed user: %v", err)
	}

	log.Printf("seeded %s: %d categories, %d movies, dev user %s",
		*dbPath, len(sampleCategories), len(sampleMovies), *email)
}
