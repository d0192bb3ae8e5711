package sites

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"agendaveiro/internal/models/domain"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

// fakeFetcher serves canned markup instead of a browser session.
type fakeFetcher struct {
	html string
	err  error
}

func (f *fakeFetcher) FetchRendered(ctx context.Context, url string) (string, error) {
	return f.html, f.err
}

// fakeStore records upserted events in order.
type fakeStore struct {
	events []domain.Event
	err    error
}

func (s *fakeStore) Upsert(ctx context.Context, event domain.Event) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	s.events = append(s.events, event)
	return true, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func mustSelection(t *testing.T, html, selector string) *goquery.Selection {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)

	sel := doc.Find(selector).First()
	require.Equal(t, 1, sel.Length(), "selector %q not found in fixture", selector)
	return sel
}
