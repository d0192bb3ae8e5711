package domain

import "time"

// Event - canonical model of one cultural listing. Adapters produce it,
// the event store persists it.
//
// StartDate and EndDate hold calendar dates in "YYYY-MM-DD" form; an empty
// string means the date is unknown. EndDate is not validated against
// StartDate here, producers own date sanity.
type Event struct {
	ID        string
	Title     string
	StartDate string
	EndDate   string
	Location  string
	URL       string
	ImageURL  string
	Source    string
	Tags      []string
	ScrapedAt time.Time
	CreatedAt time.Time
}

// StoreStats summarises the content of the event store.
type StoreStats struct {
	TotalEvents  int
	BySource     map[string]int
	FutureEvents int
}
