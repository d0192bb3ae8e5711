package repositories

import (
	"database/sql"
	"time"
)

// Event is the storage model of a listing. Tags are kept as a JSON array
// in a text column; nullable columns map to sql.Null* types.
type Event struct {
	ID        string         `db:"id"`
	Title     string         `db:"title"`
	StartDate sql.NullString `db:"start_date"`
	EndDate   sql.NullString `db:"end_date"`
	Location  string         `db:"location"`
	URL       string         `db:"url"`
	ImageURL  sql.NullString `db:"image_url"`
	Source    string         `db:"source"`
	Tags      string         `db:"tags"`
	ScrapedAt time.Time      `db:"scraped_at"`
	CreatedAt time.Time      `db:"created_at"`
}

type SourceCount struct {
	Source string `db:"source"`
	Count  int    `db:"count"`
}
