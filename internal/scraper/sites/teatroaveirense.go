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
	teatroSourceName = "Teatro Aveirense"
	teatroBaseURL    = "https://www.teatroaveirense.pt"
)

// ScrapeTeatroAveirense scrapes the /programacao listing of Teatro
// Aveirense. Items are div.programa_item blocks with a Portuguese
// natural-language date div, which may describe a single day or a
// multi-day range.
func ScrapeTeatroAveirense(ctx context.Context, logger *slog.Logger, fetcher Fetcher, store Store, url string) (int, error) {
	op := "sites.ScrapeTeatroAveirense()"
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

	norm := dates.New(logger, dates.Portuguese)

	items := doc.Find("div.programa_item")
	log.Info("found event items", slog.Int("count", items.Length()))

	count := 0
	items.Each(func(i int, item *goquery.Selection) {
		event, ok := parseTeatroItem(item, norm)
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

func parseTeatroItem(item *goquery.Selection, norm *dates.Normalizer) (domain.Event, bool) {
	h2 := item.Find("h2").First()
	if h2.Length() == 0 {
		return domain.Event{}, false
	}

	// The h2 carries the title with an optional subtitle span inside it.
	h2 = h2.Clone()
	subtitle := strings.TrimSpace(h2.Find("span").Text())
	h2.Find("span").Remove()
	title := strings.TrimSpace(h2.Text())
	if subtitle != "" {
		title = title + " - " + subtitle
	}
	if title == "" {
		return domain.Event{}, false
	}

	startDate, endDate := "", ""
	if dateText := strings.TrimSpace(item.Find("div.data").Text()); dateText != "" {
		startDate, endDate = norm.Parse(dateText)
	}

	url := teatroBaseURL
	if href, ok := item.Find("a[href]").First().Attr("href"); ok {
		url = absoluteURL(teatroBaseURL, href)
	}

	imageURL := ""
	if src, ok := item.Find("img[src]").First().Attr("src"); ok {
		imageURL = absoluteURL(teatroBaseURL, src)
	}

	tags := []string{teatroSourceName}
	item.Find("div.categoria span").Each(func(i int, span *goquery.Selection) {
		txt := strings.TrimSpace(span.Text())
		if txt != "" && !strings.Contains(txt, "Categoria") {
			tags = append(tags, txt)
		}
	})

	return domain.Event{
		Title:     title,
		StartDate: startDate,
		EndDate:   endDate,
		Location:  "Teatro Aveirense",
		URL:       url,
		ImageURL:  imageURL,
		Source:    teatroSourceName,
		Tags:      tags,
	}, true
}

// absoluteURL resolves site-relative hrefs against the site's base URL.
func absoluteURL(base, ref string) string {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	if strings.HasPrefix(ref, "/") {
		return base + ref
	}
	return ref
}
