// Package dates normalizes the loosely-structured date strings found on
// event listing pages into canonical "YYYY-MM-DD" calendar dates.
package dates

import (
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ISODate is the canonical calendar date layout used across the project.
const ISODate = "2006-01-02"

// Lexicon maps lowercase month-name tokens (full names and abbreviations,
// in the source's language) to month numbers.
type Lexicon map[string]time.Month

// Portuguese covers the month spellings used by Teatro Aveirense.
var Portuguese = Lexicon{
	"janeiro": time.January, "fevereiro": time.February, "março": time.March,
	"abril": time.April, "maio": time.May, "junho": time.June,
	"julho": time.July, "agosto": time.August, "setembro": time.September,
	"outubro": time.October, "novembro": time.November, "dezembro": time.December,
	"jan": time.January, "fev": time.February, "mar": time.March,
	"abr": time.April, "mai": time.May, "jun": time.June,
	"jul": time.July, "ago": time.August, "set": time.September,
	"out": time.October, "nov": time.November, "dez": time.December,
}

var (
	// Matching precedence, first match wins:
	// cross-month range "26 abril - 03 maio",
	reRangeCrossMonth = regexp.MustCompile(`^(\d+)\s+([a-zç]+)\s*-\s*(\d+)\s+([a-zç]+)`)
	// same-month range "13-14 março",
	reRangeSameMonth = regexp.MustCompile(`^(\d+)\s*-\s*(\d+)\s+([a-zç]+)`)
	// single date "02 fevereiro", tolerating stray dashes, punctuation and
	// leading words ("seg 15 — mar"). Unanchored on purpose.
	reSingle = regexp.MustCompile(`(\d+)\s*[^0-9a-zç]*\s*([a-zç]+)`)

	reISODatePart = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

	dashCleaner = strings.NewReplacer("–", "-", "—", "-", "−", "-", ".", " ")
)

// Normalizer parses source-specific date text against one lexicon.
type Normalizer struct {
	logger  *slog.Logger
	lexicon Lexicon
	now     func() time.Time
}

func New(logger *slog.Logger, lexicon Lexicon) *Normalizer {
	return &Normalizer{
		logger:  logger,
		lexicon: lexicon,
		now:     time.Now,
	}
}

// Parse converts raw date text into zero, one or two canonical dates.
// It returns (start, end) for a multi-day range, (start, "") for a single
// day and ("", "") when no recognizable pattern matches. Malformed
// day/month combinations are logged and yield empty values rather than an
// error: a bad date must never abort the surrounding scrape.
func (n *Normalizer) Parse(text string) (start, end string) {
	op := "dates.Normalizer.Parse()"

	cleaned := strings.TrimSpace(dashCleaner.Replace(strings.ToLower(text)))
	if cleaned == "" {
		return "", ""
	}

	if m := reRangeCrossMonth.FindStringSubmatch(cleaned); m != nil {
		return n.makeDate(m[1], m[2]), n.makeDate(m[3], m[4])
	}

	if m := reRangeSameMonth.FindStringSubmatch(cleaned); m != nil {
		return n.makeDate(m[1], m[3]), n.makeDate(m[2], m[3])
	}

	if m := reSingle.FindStringSubmatch(cleaned); m != nil {
		if d := n.makeDate(m[1], m[2]); d != "" {
			return d, ""
		}
	}

	n.logger.Debug("no recognizable date pattern",
		slog.String("op", op),
		slog.String("text", cleaned),
	)

	return "", ""
}

// makeDate builds a canonical date from a day number and a month token,
// inferring the year. Listings almost never carry one, so the current year
// is assumed; when the run happens in December and the month parses to
// January or February the year rolls forward by one. The heuristic can
// misattribute ambiguous cases, accepted limitation.
func (n *Normalizer) makeDate(dayToken, monthToken string) string {
	op := "dates.Normalizer.makeDate()"

	month, ok := n.lexicon[monthToken]
	if !ok {
		n.logger.Debug("unknown month token",
			slog.String("op", op),
			slog.String("month", monthToken),
		)
		return ""
	}

	day, err := strconv.Atoi(dayToken)
	if err != nil {
		return ""
	}

	now := n.now()
	year := now.Year()
	if now.Month() == time.December && month < time.March {
		year++
	}

	dt := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes out-of-range values (Feb 31 -> Mar 3); reject
	// instead of silently shifting.
	if dt.Day() != day || dt.Month() != month {
		n.logger.Warn("malformed day/month combination",
			slog.String("op", op),
			slog.String("date", fmt.Sprintf("%d %s", day, monthToken)),
		)
		return ""
	}

	return dt.Format(ISODate)
}

// FromISO extracts the calendar-date part of a machine-readable ISO-8601
// timestamp ("2026-02-02T21:00:00+00:00" -> "2026-02-02"). No year
// inference applies; the source already states it. Returns "" when the
// input does not start with a well-formed date.
func FromISO(timestamp string) string {
	datePart, _, _ := strings.Cut(strings.TrimSpace(timestamp), "T")
	if !reISODatePart.MatchString(datePart) {
		return ""
	}
	if _, err := time.Parse(ISODate, datePart); err != nil {
		return ""
	}
	return datePart
}
