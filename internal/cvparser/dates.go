package cvparser

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	dateparser "github.com/markusmobius/go-dateparser"
	"github.com/markusmobius/go-dateparser/date"
)

var (
	openEndedRe  = regexp.MustCompile(`(?i)\b(present|current|ongoing|now)\b`)
	rangeSplitRe = regexp.MustCompile(`(?i)\s*(?:–|—|-|\bto\b|\buntil\b)\s*`)
)

// dpConfig pins the parser to English; CV date ranges in scope are
// English-language ("September 2023", "June 2021", ...).
var dpConfig = &dateparser.Configuration{Languages: []string{"en"}}

// dateRange is the outcome of natural-language date-range parsing. Open
// means the range ends in "present"/"current"/"ongoing"/"now".
type dateRange struct {
	Start date.Date
	End   date.Date
	Open  bool
}

// parseDateRange splits the text on dash variants and "to"/"until" and
// parses each fragment: the first recognized date is the start, the second
// the end. Fragments the parser rejects fall back to a bare 4-digit year.
func parseDateRange(text string) dateRange {
	r := dateRange{Open: openEndedRe.MatchString(text)}
	for _, piece := range rangeSplitRe.Split(text, -1) {
		piece = strings.TrimSpace(piece)
		if piece == "" || openEndedRe.MatchString(piece) {
			continue
		}
		d, ok := parseSingleDate(piece)
		if !ok {
			continue
		}
		switch {
		case r.Start.Time.IsZero():
			r.Start = d
		case r.End.Time.IsZero():
			r.End = d
		}
		if !r.End.Time.IsZero() {
			break
		}
	}
	return r
}

func parseSingleDate(s string) (date.Date, bool) {
	if d, err := dateparser.Parse(dpConfig, s); err == nil && !d.Time.IsZero() {
		return d, true
	}
	// Year-only fallback for fragments like "2025 (expected)".
	if y := yearRe.FindString(s); y != "" {
		year, _ := strconv.Atoi(y)
		return date.Date{
			Time:   time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
			Period: date.Year,
		}, true
	}
	return date.Date{}, false
}

// startDateString renders the range start as an ISO-style date string at
// the precision the source text carried.
func (r dateRange) startDateString() string {
	return formatDate(r.Start)
}

// endDateString renders the range end; an open-ended range resolves to the
// current date.
func (r dateRange) endDateString(now time.Time) string {
	if !r.End.Time.IsZero() {
		return formatDate(r.End)
	}
	if r.Open {
		return now.Format("2006-01-02")
	}
	return ""
}

func formatDate(d date.Date) string {
	if d.Time.IsZero() {
		return ""
	}
	switch d.Period {
	case date.Year:
		return d.Time.Format("2006")
	case date.Month:
		return d.Time.Format("2006-01")
	default:
		return d.Time.Format("2006-01-02")
	}
}

// yearOf returns the 4-digit year of a parsed date, used for graduation
// year back-fill.
func yearOf(d date.Date) string {
	if d.Time.IsZero() {
		return ""
	}
	return d.Time.Format("2006")
}
