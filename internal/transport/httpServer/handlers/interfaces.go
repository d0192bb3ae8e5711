package handlers

import (
	"context"

	"agendaveiro/internal/models/domain"
)

// EventRepository is the read surface the HTTP API exposes.
type EventRepository interface {
	FutureEvents(ctx context.Context) ([]domain.Event, error)
	Stats(ctx context.Context) (domain.StoreStats, error)
}
