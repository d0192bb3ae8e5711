package sites

import (
	"context"
	"fmt"
	"testing"
	"time"

	"agendaveiro/internal/dates"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const aveiroOnPageHTML = `
<html><body>
<div class="display-today-events intro">
  <div class="today-event">
    <a class="today-event-link" href="/eventos/feira-de-marco">
      <div class="image-today-event"><img data-lazy-src="https://aveiroon.cm-aveiro.pt/media/feira.jpg" src="data:image/gif;base64,R0lGOD"></div>
      <div class="date-today-event"><p>25 — Set</p></div>
      <p class="title-today-event">Feira de Setembro</p>
    </a>
    <a class="category-today-event"><span>Feiras</span></a>
  </div>
  <div class="today-event">
    <div class="date-today-event"><p>em breve</p></div>
    <p class="title-today-event">Sem Data Válida</p>
  </div>
</div>
<div class="display-today-events mobile">
  <div class="today-event">
    <div class="date-today-event"><p>25 — Set</p></div>
    <p class="title-today-event">Duplicado Mobile</p>
  </div>
</div>
</body></html>`

func TestScrapeAveiroOn(t *testing.T) {
	fetcher := &fakeFetcher{html: aveiroOnPageHTML}
	store := &fakeStore{}

	count, err := ScrapeAveiroOn(context.Background(), testLogger(), fetcher, store, "https://aveiroon.cm-aveiro.pt/eventos/")
	require.NoError(t, err)

	// Only the desktop container is parsed and dateless items are
	// dropped, so exactly one event survives.
	assert.Equal(t, 1, count)
	require.Len(t, store.events, 1)

	event := store.events[0]
	assert.Equal(t, "Feira de Setembro", event.Title)
	assert.Equal(t, fmt.Sprintf("%d-09-25", time.Now().Year()), event.StartDate)
	assert.Equal(t, "https://aveiroon.cm-aveiro.pt/eventos/feira-de-marco", event.URL)
	assert.Equal(t, "https://aveiroon.cm-aveiro.pt/media/feira.jpg", event.ImageURL)
	assert.Equal(t, "Aveiro", event.Location)
	assert.Equal(t, aveiroOnSourceName, event.Source)
	assert.Equal(t, []string{aveiroOnSourceName, "Feiras"}, event.Tags)
}

func TestScrapeAveiroOnMissingContainer(t *testing.T) {
	fetcher := &fakeFetcher{html: "<html><body><div class=\"display-today-events mobile\"></div></body></html>"}
	store := &fakeStore{}

	count, err := ScrapeAveiroOn(context.Background(), testLogger(), fetcher, store, "https://aveiroon.cm-aveiro.pt/eventos/")

	assert.Error(t, err)
	assert.Zero(t, count)
}

func TestParseAveiroOnItemImageFallback(t *testing.T) {
	html := `<div class="today-event">
	  <div class="image-today-event"><img src="/media/plain.jpg"></div>
	  <div class="date-today-event"><p>03 out</p></div>
	  <p class="title-today-event">Evento Simples</p>
	</div>`

	norm := dates.New(testLogger(), aveiroOnMonths)
	item := mustSelection(t, html, "div.today-event")

	event, ok := parseAveiroOnItem(item, norm)
	require.True(t, ok)

	assert.Equal(t, "https://aveiroon.cm-aveiro.pt/media/plain.jpg", event.ImageURL)
}
