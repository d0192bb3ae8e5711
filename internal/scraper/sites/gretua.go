package sites

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"agendaveiro/internal/dates"
	"agendaveiro/internal/models/domain"
	"agendaveiro/internal/utils/logger/sl"

	"github.com/PuerkitoBio/goquery"
)

const (
	gretuaSourceName = "GrETUA"
	gretuaBaseURL    = "https://www.viralagenda.com"
)

// ScrapeGretua scrapes GrETUA's Viral Agenda page. The listing carries
// machine-readable ISO timestamps in data attributes, so the natural
// language normalizer is bypassed entirely. Iteration stops at the
// past-events marker; ad items are skipped.
func ScrapeGretua(ctx context.Context, logger *slog.Logger, fetcher Fetcher, store Store, url string) (int, error) {
	op := "sites.ScrapeGretua()"
	log := logger.With(
		slog.String("op", op),
	)

	html, err := fetcher.FetchRendered(ctx, url)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return 0, fmt.Errorf("%s: parse page: %w", op, err)
	}

	list := doc.Find("ul#viral-events").First()
	if list.Length() == 0 {
		return 0, fmt.Errorf("%s: events list not found", op)
	}

	items := list.ChildrenFiltered("li")
	log.Info("found list items", slog.Int("count", items.Length()))

	count := 0
	items.EachWithBreak(func(i int, item *goquery.Selection) bool {
		if item.HasClass("viral-event-past") {
			log.Info("past-events marker reached, stopping")
			return false
		}
		if item.HasClass("viral-item-ads") || !item.HasClass("viral-event") {
			return true
		}

		event, ok := parseGretuaItem(item)
		if !ok {
			return true
		}

		if _, err := store.Upsert(ctx, event); err != nil {
			log.Error("failed to upsert event",
				slog.String("title", event.Title),
				sl.Err(err),
			)
			return true
		}
		count++

		return true
	})

	log.Info("scrape completed", slog.Int("eventsCount", count))

	return count, nil
}

func parseGretuaItem(item *goquery.Selection) (domain.Event, bool) {
	startDate := ""
	if iso, ok := item.Attr("data-date-start"); ok {
		startDate = dates.FromISO(iso)
	}

	title := strings.TrimSpace(item.Find("div.viral-event-title").First().Text())
	if title == "" || startDate == "" {
		return domain.Event{}, false
	}

	url := gretuaBaseURL
	if rel, ok := item.Attr("data-url"); ok && rel != "" {
		url = absoluteURL(gretuaBaseURL, rel)
	}

	imageURL, _ := item.Find("div.viral-event-image").First().Attr("data-img")

	tags := []string{gretuaSourceName}
	if cat := strings.TrimSpace(item.Find("div.viral-event-box-cat a").First().Text()); cat != "" {
		tags = append(tags, cat)
	}

	location := gretuaSourceName
	if place := strings.TrimSpace(item.Find("a.viral-event-place").First().Text()); place != "" {
		location = place
	}

	return domain.Event{
		Title:     title,
		StartDate: startDate,
		Location:  location,
		URL:       url,
		ImageURL:  imageURL,
		Source:    gretuaSourceName,
		Tags:      tags,
	}, true
}
