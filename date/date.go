// Package date normalizes free-form date strings to partial ISO-8601 form.
// It accepts full dates, year-month and bare years, in both ISO and common
// loose layouts, and never fails: malformed input yields the empty string.
package date

import (
	"strings"
	"time"
)

// layouts maps accepted input layouts to the partial ISO layout the
// normalized value is rendered with. Probed in order; first parse wins.
var layouts = []struct {
	in  string
	out string
}{
	{"2006-01-02", "2006-01-02"},
	{"2006-1-2", "2006-01-02"},
	{"2006/01/02", "2006-01-02"},
	{"02.01.2006", "2006-01-02"},
	{"January 2, 2006", "2006-01-02"},
	{"Jan 2, 2006", "2006-01-02"},
	{"2 January 2006", "2006-01-02"},
	{"2 Jan 2006", "2006-01-02"},
	{"2006-01", "2006-01"},
	{"2006-1", "2006-01"},
	{"January 2006", "2006-01"},
	{"Jan 2006", "2006-01"},
	{"2006", "2006"},
}

// Normalize converts a free-form date string to "YYYY", "YYYY-MM" or
// "YYYY-MM-DD", keeping only the precision present in the input. It returns
// "" when the input is empty or not recognizable as a date.
func Normalize(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	for _, l := range layouts {
		t, err := time.Parse(l.in, s)
		if err != nil {
			continue
		}
		// Reject degenerate years such as "0" that time.Parse accepts.
		if t.Year() < 1000 || t.Year() > 2200 {
			return ""
		}
		return t.Format(l.out)
	}
	return ""
}
