package sites

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"agendaveiro/internal/dates"
	"agendaveiro/internal/models/domain"
	"agendaveiro/internal/utils/logger/sl"

	"github.com/PuerkitoBio/goquery"
)

const (
	aveiroOnSourceName = "AveiroOn"
	aveiroOnBaseURL    = "https://aveiroon.cm-aveiro.pt"
)

// The site mixes English and Portuguese month abbreviations depending on
// the visitor's locale.
var aveiroOnMonths = dates.Lexicon{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
	"fev": time.February, "abr": time.April, "mai": time.May,
	"ago": time.August, "set": time.September, "out": time.October,
	"dez": time.December,
}

// ScrapeAveiroOn scrapes the municipal agenda carousel. The page renders
// two copies of the listing; only the desktop container (class "intro")
// is parsed to avoid duplicates. Items without a parseable date are
// skipped, the carousel mixes in teaser blocks that carry none.
func ScrapeAveiroOn(ctx context.Context, logger *slog.Logger, fetcher Fetcher, store Store, url string) (int, error) {
	op := "sites.ScrapeAveiroOn()"
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

	container := doc.Find(".display-today-events.intro").First()
	if container.Length() == 0 {
		return 0, fmt.Errorf("%s: desktop events container not found", op)
	}

	norm := dates.New(logger, aveiroOnMonths)

	items := container.Find("div.today-event")
	log.Info("found event items", slog.Int("count", items.Length()))

	count := 0
	items.Each(func(i int, item *goquery.Selection) {
		event, ok := parseAveiroOnItem(item, norm)
		if !ok {
			return
		}

		if _, err := store.Upsert(ctx, event); err != nil {
			log.Error("failed to upsert event",
				slog.String("title", event.Title),
				sl.Err(err),
			)
			return
		}
		count++
	})

	log.Info("scrape completed", slog.Int("eventsCount", count))

	return count, nil
}

func parseAveiroOnItem(item *goquery.Selection, norm *dates.Normalizer) (domain.Event, bool) {
	title := strings.TrimSpace(item.Find("p.title-today-event").First().Text())
	if title == "" {
		return domain.Event{}, false
	}

	startDate := ""
	if dateText := strings.TrimSpace(item.Find("div.date-today-event p").First().Text()); dateText != "" {
		startDate, _ = norm.Parse(dateText)
	}
	if startDate == "" {
		return domain.Event{}, false
	}

	url := aveiroOnBaseURL
	if href, ok := item.Find("a.today-event-link[href]").First().Attr("href"); ok {
		url = absoluteURL(aveiroOnBaseURL, href)
	}

	imageURL := ""
	img := item.Find("div.image-today-event img").First()
	src, ok := img.Attr("data-lazy-src")
	if !ok {
		src, _ = img.Attr("src")
	}
	if src != "" && !strings.Contains(src, "data:image") {
		imageURL = absoluteURL(aveiroOnBaseURL, src)
	}

	tags := []string{aveiroOnSourceName}
	if cat := strings.TrimSpace(item.Find("a.category-today-event span").First().Text()); cat != "" {
		tags = append(tags, cat)
	}

	return domain.Event{
		Title:     title,
		StartDate: startDate,
		Location:  "Aveiro",
		URL:       url,
		ImageURL:  imageURL,
		Source:    aveiroOnSourceName,
		Tags:      tags,
	}, true
}
