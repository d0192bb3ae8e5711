package sites

import (
	"context"
	"log/slog"

	"agendaveiro/internal/models/domain"
)

// Fetcher is the rendered-page session an adapter scrapes through.
type Fetcher interface {
	FetchRendered(ctx context.Context, url string) (string, error)
}

// Store is the part of the event store adapters write to.
type Store interface {
	Upsert(ctx context.Context, event domain.Event) (bool, error)
}

// ScrapeFunc extracts the events from one site's listing page at url and
// upserts them into the store, returning the count of records it
// successfully wrote.
type ScrapeFunc func(ctx context.Context, logger *slog.Logger, fetcher Fetcher, store Store, url string) (int, error)

// Registry returns the statically registered site adapters, keyed by the
// name used in the scraper config.
func Registry() map[string]ScrapeFunc {
	return map[string]ScrapeFunc{
		"teatro_aveirense": ScrapeTeatroAveirense,
		"aveiroon":         ScrapeAveiroOn,
		"gretua":           ScrapeGretua,
	}
}
