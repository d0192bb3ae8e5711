package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"agendaveiro/internal/models/domain"
)

// Snapshot is the JSON document handed to the frontend. It always carries
// the future-events view, never the full table.
type Snapshot struct {
	LastUpdated string          `json:"last_updated"`
	TotalEvents int             `json:"total_events"`
	Events      []SnapshotEvent `json:"events"`
}

type SnapshotEvent struct {
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

// ExportSnapshot materializes the future-events view into the configured
// snapshot file and returns its path. The write goes through a temp file
// in the same directory followed by a rename, so readers either see the
// previous complete document or the new one, never a truncated file.
func (r *Repository) ExportSnapshot(ctx context.Context) (string, error) {
	op := "repositories.ExportSnapshot()"
	log := r.logger.With(
		slog.String("op", op),
	)

	outputPath := r.cfg.Store.SnapshotPath
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return "", fmt.Errorf("%s: create output dir: %w", op, err)
	}

	events, err := r.FutureEvents(ctx)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	snapshot := Snapshot{
		LastUpdated: time.Now().UTC().Format(time.RFC3339),
		TotalEvents: len(events),
		Events:      make([]SnapshotEvent, len(events)),
	}
	for i, e := range events {
		snapshot.Events[i] = mapToSnapshot(e)
	}

	payload, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("%s: marshal: %w", op, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(outputPath), ".events-*.json")
	if err != nil {
		return "", fmt.Errorf("%s: create temp file: %w", op, err)
	}

	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("%s: write: %w", op, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("%s: close: %w", op, err)
	}

	if err := os.Rename(tmp.Name(), outputPath); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("%s: rename: %w", op, err)
	}

	log.Info("snapshot exported",
		slog.String("path", outputPath),
		slog.Int("events", len(events)),
	)

	return outputPath, nil
}

func mapToSnapshot(e domain.Event) SnapshotEvent {
	return SnapshotEvent{
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

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
