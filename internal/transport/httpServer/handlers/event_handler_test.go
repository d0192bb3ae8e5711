package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"agendaveiro/internal/models/domain"
	"agendaveiro/internal/transport/httpServer/handlers/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepository struct {
	events []domain.Event
	stats  domain.StoreStats
	err    error
}

func (f *fakeRepository) FutureEvents(ctx context.Context) ([]domain.Event, error) {
	return f.events, f.err
}

func (f *fakeRepository) Stats(ctx context.Context) (domain.StoreStats, error) {
	return f.stats, f.err
}

func TestGetEvents(t *testing.T) {
	repo := &fakeRepository{
		events: []domain.Event{
			{
				ID:        "a1b2c3d4e5f60718",
				Title:     "Concerto",
				StartDate: "2026-09-14",
				Location:  "Teatro Aveirense",
				URL:       "https://example.com/concerto",
				Source:    "Teatro Aveirense",
				Tags:      []string{"Teatro Aveirense", "Música"},
				ScrapedAt: time.Date(2026, 8, 28, 3, 0, 0, 0, time.UTC),
			},
			{
				ID:     "ffeeddccbbaa0099",
				Title:  "Sem Data",
				URL:    "https://example.com/sem-data",
				Source: "GrETUA",
				Tags:   []string{"GrETUA"},
			},
		},
	}
	h := NewEventHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), repo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/events", nil)
	rec := httptest.NewRecorder()

	h.GetEvents(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var response dto.EventListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))

	assert.Equal(t, 2, response.TotalEvents)
	require.Len(t, response.Events, 2)

	first := response.Events[0]
	require.NotNil(t, first.StartDate)
	assert.Equal(t, "2026-09-14", *first.StartDate)
	assert.Nil(t, first.EndDate)
	assert.Equal(t, []string{"Teatro Aveirense", "Música"}, first.Tags)

	// Absent dates serialize as null, not empty strings.
	assert.Nil(t, response.Events[1].StartDate)
}

func TestGetEventsRepositoryError(t *testing.T) {
	repo := &fakeRepository{err: errors.New("database gone")}
	h := NewEventHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), repo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/events", nil)
	rec := httptest.NewRecorder()

	h.GetEvents(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestGetStats(t *testing.T) {
	repo := &fakeRepository{
		stats: domain.StoreStats{
			TotalEvents:  12,
			BySource:     map[string]int{"GrETUA": 5, "AveiroOn": 7},
			FutureEvents: 9,
		},
	}
	h := NewEventHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), repo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil)
	rec := httptest.NewRecorder()

	h.GetStats(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var response dto.StatsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))

	assert.Equal(t, 12, response.TotalEvents)
	assert.Equal(t, 9, response.FutureEvents)
	assert.Equal(t, map[string]int{"GrETUA": 5, "AveiroOn": 7}, response.BySource)
}
