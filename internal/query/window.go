package query

import (
	"strings"
	"time"
)

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01",
	"2006/01/02",
	"01/02/2006",
	"Jan 2 2006",
	"January 2, 2006",
}

// ParseDate parses the free-form dates accepted by the API, in UTC.
func ParseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// referenceDate resolves a window endpoint: absent means now, unparseable
// means no valid date.
func referenceDate(raw string, now time.Time) (time.Time, bool) {
	if strings.TrimSpace(raw) == "" {
		return now.UTC(), true
	}
	return ParseDate(raw)
}

// ListingWindow computes the listing date range. The lower bound is always
// 1 February of startDate's year; the month of startDate is ignored. The
// upper bound is the first day of the month after endDate's month.
func ListingWindow(startDate, endDate string, now time.Time) DateRange {
	start, okStart := referenceDate(startDate, now)
	end, okEnd := referenceDate(endDate, now)
	if !okStart || !okEnd {
		return DateRange{}
	}

	return DateRange{
		From:  time.Date(start.Year(), time.February, 1, 0, 0, 0, 0, time.UTC),
		To:    time.Date(end.Year(), end.Month()+1, 1, 0, 0, 0, 0, time.UTC),
		Valid: true,
	}
}

// ReportWindowStart is month index -1 of the current year, normalized:
// 1 December of the previous year.
func ReportWindowStart(now time.Time) time.Time {
	now = now.UTC()
	return time.Date(now.Year(), 0, 1, 0, 0, 0, 0, time.UTC)
}
