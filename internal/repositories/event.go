package repositories

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"agendaveiro/internal/dates"
	"agendaveiro/internal/metrics"
	"agendaveiro/internal/models/domain"
	"agendaveiro/internal/models/repositories"
	"agendaveiro/internal/utils/logger/sl"

	"github.com/mattn/go-sqlite3"
)

// DeriveEventID returns the stable identifier for an event URL: the first
// 16 hex characters of its SHA-256 digest. Collision probability is
// negligible at the expected dataset size (thousands of events).
func DeriveEventID(url string) string {
	sum := sha256.Sum256([]byte(url))
	return hex.EncodeToString(sum[:])[:16]
}

// Upsert inserts the event or, when a row with the same URL already
// exists, replaces its mutable fields (title, start_date, end_date,
// location, image_url, scraped_at). id, url, source, tags and created_at
// are fixed at first insert; keeping source and tags at their first-seen
// values is deliberate, see DESIGN.md.
//
// The returned bool reports whether a row was physically written. An
// unresolved uniqueness conflict is logged and reported as (false, nil) —
// a skipped record, not an error. Any other storage failure rolls back
// and is returned for the caller to log; one bad record must never abort
// the batch.
func (r *Repository) Upsert(ctx context.Context, event domain.Event) (bool, error) {
	op := "repositories.Upsert()"
	log := r.logger.With(
		slog.String("op", op),
	)

	if strings.TrimSpace(event.URL) == "" {
		return false, fmt.Errorf("%s: event has empty url (title: %q)", op, event.Title)
	}

	repoEvent := mapToRepo(event)
	repoEvent.ID = DeriveEventID(event.URL)
	repoEvent.ScrapedAt = time.Now().UTC()
	repoEvent.CreatedAt = repoEvent.ScrapedAt

	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("%s: begin tx: %w", op, err)
	}

	upsertQuery := `INSERT INTO events (
		id, title, start_date, end_date, location, url, image_url, source, tags, scraped_at, created_at
	) VALUES (
		:id, :title, :start_date, :end_date, :location, :url, :image_url, :source, :tags, :scraped_at, :created_at
	)
	ON CONFLICT(url) DO UPDATE SET
		title = excluded.title,
		start_date = excluded.start_date,
		end_date = excluded.end_date,
		location = excluded.location,
		image_url = excluded.image_url,
		scraped_at = excluded.scraped_at`

	result, err := tx.NamedExecContext(ctx, upsertQuery, repoEvent)
	if err != nil {
		tx.Rollback()

		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
			log.Warn("duplicate event skipped",
				slog.String("url", event.URL),
				sl.Err(err),
			)
			return false, nil
		}

		return false, fmt.Errorf("%s: upsert %q: %w", op, event.URL, err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("%s: commit %q: %w", op, event.URL, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s: rows affected: %w", op, err)
	}

	if rowsAffected == 0 {
		return false, nil
	}

	metrics.EventsUpserted.WithLabelValues(event.Source).Inc()
	log.Debug("event upserted", slog.String("title", event.Title))

	return true, nil
}

// FutureEvents returns events whose start date is today or later, plus
// events with no date at all. The result is ordered by start date
// ascending with dateless events sorted last (explicit tie-break, not
// engine null-ordering), and is a fresh materialization on every call.
func (r *Repository) FutureEvents(ctx context.Context) ([]domain.Event, error) {
	op := "repositories.FutureEvents()"

	today := time.Now().UTC().Format(dates.ISODate)

	query := `SELECT id, title, start_date, end_date, location, url, image_url, source, tags, scraped_at, created_at
	          FROM events
	          WHERE start_date IS NULL OR start_date >= ?
	          ORDER BY start_date IS NULL, start_date ASC`

	var repoEvents []repositories.Event
	if err := r.DB.SelectContext(ctx, &repoEvents, query, today); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := make([]domain.Event, len(repoEvents))
	for i, e := range repoEvents {
		result[i] = r.mapToDomain(e)
	}

	return result, nil
}

// Stats aggregates row counts over the full table plus the size of the
// future-events view.
func (r *Repository) Stats(ctx context.Context) (domain.StoreStats, error) {
	op := "repositories.Stats()"

	var total int
	if err := r.DB.GetContext(ctx, &total, `SELECT COUNT(*) FROM events`); err != nil {
		return domain.StoreStats{}, fmt.Errorf("%s: total: %w", op, err)
	}

	var counts []repositories.SourceCount
	query := `SELECT source, COUNT(*) AS count FROM events GROUP BY source`
	if err := r.DB.SelectContext(ctx, &counts, query); err != nil {
		return domain.StoreStats{}, fmt.Errorf("%s: by source: %w", op, err)
	}

	bySource := make(map[string]int, len(counts))
	for _, c := range counts {
		bySource[c.Source] = c.Count
	}

	future, err := r.FutureEvents(ctx)
	if err != nil {
		return domain.StoreStats{}, fmt.Errorf("%s: %w", op, err)
	}

	return domain.StoreStats{
		TotalEvents:  total,
		BySource:     bySource,
		FutureEvents: len(future),
	}, nil
}

func mapToRepo(e domain.Event) repositories.Event {
	tags := e.Tags
	if tags == nil {
		tags = []string{}
	}
	// Marshalling a string slice cannot fail.
	serialized, _ := json.Marshal(tags)

	return repositories.Event{
		ID:        e.ID,
		Title:     e.Title,
		StartDate: nullString(e.StartDate),
		EndDate:   nullString(e.EndDate),
		Location:  e.Location,
		URL:       e.URL,
		ImageURL:  nullString(e.ImageURL),
		Source:    e.Source,
		Tags:      string(serialized),
		ScrapedAt: e.ScrapedAt,
		CreatedAt: e.CreatedAt,
	}
}

func (r *Repository) mapToDomain(e repositories.Event) domain.Event {
	var tags []string
	if e.Tags != "" {
		if err := json.Unmarshal([]byte(e.Tags), &tags); err != nil {
			// Unparsable tag payloads decode to an empty list rather
			// than failing the read.
			r.logger.Warn("unparsable tags column",
				slog.String("op", "repositories.mapToDomain()"),
				slog.String("id", e.ID),
				sl.Err(err),
			)
			tags = nil
		}
	}
	if tags == nil {
		tags = []string{}
	}

	return domain.Event{
		ID:        e.ID,
		Title:     e.Title,
		StartDate: e.StartDate.String,
		EndDate:   e.EndDate.String,
		Location:  e.Location,
		URL:       e.URL,
		ImageURL:  e.ImageURL.String,
		Source:    e.Source,
		Tags:      tags,
		ScrapedAt: e.ScrapedAt,
		CreatedAt: e.CreatedAt,
	}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
