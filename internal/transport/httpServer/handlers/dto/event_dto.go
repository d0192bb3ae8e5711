package dto

import (
	"time"

	"agendaveiro/internal/models/domain"
)

type EventResponse struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	StartDate *string  `json:"start_date"`
	EndDate   *string  `json:"end_date"`
	Location  string   `json:"location"`
	URL       string   `json:"url"`
	ImageURL  *string  `json:"image_url"`
	Source    string   `json:"source"`
	Tags      []string `json:"tags"`
	ScrapedAt string   `json:"scraped_at"`
}

type EventListResponse struct {
	TotalEvents int             `json:"total_events"`
	Events      []EventResponse `json:"events"`
}

type StatsResponse struct {
	TotalEvents  int            `json:"total_events"`
	BySource     map[string]int `json:"by_source"`
	FutureEvents int            `json:"future_events"`
}

func MapDomainToEventResponse(e domain.Event) EventResponse {
	return EventResponse{
		ID:        e.ID,
		Title:     e.Title,
		StartDate: optional(e.StartDate),
		EndDate:   optional(e.EndDate),
		Location:  e.Location,
		URL:       e.URL,
		ImageURL:  optional(e.ImageURL),
		Source:    e.Source,
		Tags:      e.Tags,
		ScrapedAt: e.ScrapedAt.Format(time.RFC3339),
	}
}

func MapDomainToEventListResponse(events []domain.Event) EventListResponse {
	response := EventListResponse{
		TotalEvents: len(events),
		Events:      make([]EventResponse, len(events)),
	}
	for i, e := range events {
		response.Events[i] = MapDomainToEventResponse(e)
	}
	return response
}

func MapStatsToResponse(s domain.StoreStats) StatsResponse {
	return StatsResponse{
		TotalEvents:  s.TotalEvents,
		BySource:     s.BySource,
		FutureEvents: s.FutureEvents,
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
