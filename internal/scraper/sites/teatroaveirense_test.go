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

const teatroItemHTML = `
<div class="programa_item">
  <a href="/pt/programacao/concerto-de-ano-novo"><h2>Concerto de Ano Novo <span>Orquestra Filarmonia</span></h2></a>
  <div class="data">13-14 março</div>
  <div class="categoria"><span>Categoria:</span><span>Música</span></div>
  <img src="/media/concerto.jpg" alt="">
</div>`

const teatroDatelessItemHTML = `
<div class="programa_item">
  <a href="https://www.teatroaveirense.pt/pt/programacao/em-breve"><h2>Espetáculo Surpresa</h2></a>
  <div class="data">em breve</div>
</div>`

func TestParseTeatroItem(t *testing.T) {
	norm := dates.New(testLogger(), dates.Portuguese)
	year := time.Now().Year()

	item := mustSelection(t, teatroItemHTML, "div.programa_item")

	event, ok := parseTeatroItem(item, norm)
	require.True(t, ok)

	assert.Equal(t, "Concerto de Ano Novo - Orquestra Filarmonia", event.Title)
	assert.Equal(t, fmt.Sprintf("%d-03-13", year), event.StartDate)
	assert.Equal(t, fmt.Sprintf("%d-03-14", year), event.EndDate)
	assert.Equal(t, "Teatro Aveirense", event.Location)
	assert.Equal(t, "https://www.teatroaveirense.pt/pt/programacao/concerto-de-ano-novo", event.URL)
	assert.Equal(t, "https://www.teatroaveirense.pt/media/concerto.jpg", event.ImageURL)
	assert.Equal(t, teatroSourceName, event.Source)
	// Source tag first, then category labels; the "Categoria:" label
	// itself is noise.
	assert.Equal(t, []string{teatroSourceName, "Música"}, event.Tags)
}

func TestParseTeatroItemWithoutDate(t *testing.T) {
	norm := dates.New(testLogger(), dates.Portuguese)

	item := mustSelection(t, teatroDatelessItemHTML, "div.programa_item")

	event, ok := parseTeatroItem(item, norm)
	require.True(t, ok)

	// Unrecognized date text yields a dateless event, still stored.
	assert.Equal(t, "Espetáculo Surpresa", event.Title)
	assert.Empty(t, event.StartDate)
	assert.Empty(t, event.EndDate)
}

func TestScrapeTeatroAveirense(t *testing.T) {
	page := "<html><body>" + teatroItemHTML + teatroDatelessItemHTML + "<div class=\"programa_item\"><p>no title here</p></div></body></html>"

	fetcher := &fakeFetcher{html: page}
	store := &fakeStore{}

	count, err := ScrapeTeatroAveirense(context.Background(), testLogger(), fetcher, store, "https://www.teatroaveirense.pt/pt/programacao/")
	require.NoError(t, err)

	assert.Equal(t, 2, count)
	require.Len(t, store.events, 2)
	assert.Equal(t, "Concerto de Ano Novo - Orquestra Filarmonia", store.events[0].Title)
	assert.Equal(t, "Espetáculo Surpresa", store.events[1].Title)
}

func TestScrapeTeatroAveirenseFetchError(t *testing.T) {
	fetcher := &fakeFetcher{err: assert.AnError}
	store := &fakeStore{}

	count, err := ScrapeTeatroAveirense(context.Background(), testLogger(), fetcher, store, "https://www.teatroaveirense.pt/pt/programacao/")

	assert.Error(t, err)
	assert.Zero(t, count)
	assert.Empty(t, store.events)
}
