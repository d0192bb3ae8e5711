package dates

import (
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestNormalizer(t *testing.T, now time.Time) *Normalizer {
	t.Helper()

	n := New(slog.New(slog.NewTextHandler(io.Discard, nil)), Portuguese)
	n.now = func() time.Time { return now }
	return n
}

func TestParse(t *testing.T) {
	// Mid-year clock: no rollover in play.
	now := time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)
	year := now.Year()

	tests := []struct {
		name      string
		text      string
		wantStart string
		wantEnd   string
	}{
		{
			name:      "cross-month range",
			text:      "26 abril - 03 maio",
			wantStart: fmt.Sprintf("%d-04-26", year),
			wantEnd:   fmt.Sprintf("%d-05-03", year),
		},
		{
			name:      "same-month range",
			text:      "13-14 março",
			wantStart: fmt.Sprintf("%d-03-13", year),
			wantEnd:   fmt.Sprintf("%d-03-14", year),
		},
		{
			name:      "single date",
			text:      "02 fevereiro",
			wantStart: fmt.Sprintf("%d-02-02", year),
		},
		{
			name:      "single date with abbreviation and dot",
			text:      "04 out.",
			wantStart: fmt.Sprintf("%d-10-04", year),
		},
		{
			name:      "single date with em-dash noise",
			text:      "15 — mar",
			wantStart: fmt.Sprintf("%d-03-15", year),
		},
		{
			name:      "range with en-dash",
			text:      "13–14 março",
			wantStart: fmt.Sprintf("%d-03-13", year),
			wantEnd:   fmt.Sprintf("%d-03-14", year),
		},
		{
			name: "unrecognized text",
			text: "em breve",
		},
		{
			name: "empty input",
			text: "  ",
		},
		{
			name: "unknown month token",
			text: "12 frobnar",
		},
		{
			name: "malformed day for month",
			text: "31 fevereiro",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := newTestNormalizer(t, now)

			start, end := n.Parse(tt.text)

			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

func TestParseYearRollover(t *testing.T) {
	december := time.Date(2026, time.December, 20, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "january rolls forward", text: "05 janeiro", want: "2027-01-05"},
		{name: "february rolls forward", text: "28 fevereiro", want: "2027-02-28"},
		{name: "march stays in current year", text: "10 março", want: "2026-03-10"},
		{name: "december stays in current year", text: "31 dezembro", want: "2026-12-31"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := newTestNormalizer(t, december)

			start, end := n.Parse(tt.text)

			assert.Equal(t, tt.want, start)
			assert.Empty(t, end)
		})
	}
}

func TestParseNoRolloverOutsideDecember(t *testing.T) {
	november := time.Date(2026, time.November, 30, 10, 0, 0, 0, time.UTC)
	n := newTestNormalizer(t, november)

	start, _ := n.Parse("05 janeiro")

	assert.Equal(t, "2026-01-05", start)
}

func TestFromISO(t *testing.T) {
	tests := []struct {
		name      string
		timestamp string
		want      string
	}{
		{name: "full timestamp with offset", timestamp: "2026-02-02T21:00:00+00:00", want: "2026-02-02"},
		{name: "bare date", timestamp: "2026-09-14", want: "2026-09-14"},
		{name: "leading whitespace", timestamp: " 2026-09-14T10:00:00Z", want: "2026-09-14"},
		{name: "garbage", timestamp: "next friday"},
		{name: "empty", timestamp: ""},
		{name: "impossible calendar date", timestamp: "2026-02-31T00:00:00Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FromISO(tt.timestamp))
		})
	}
}
