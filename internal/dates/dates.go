// internal/dates/dates.go
package dates

import (
	"regexp"
	"strings"
	"time"
)

// Layouts tried when parsing feed pubDate strings: RFC-822 variants with and
// without zone, then ISO forms.
var pubDateLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05 MST",
	"Mon, 02 Jan 2006 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

var textDateRE = regexp.MustCompile(`(\d{4})[./\-](\d{1,2})[./\-](\d{1,2})`)

// ParsePubDate parses a feed pubDate through the known layout list.
func ParsePubDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range pubDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseISO parses an ISO-8601 datetime attribute, normalizing a trailing Z.
func ParseISO(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if strings.HasSuffix(s, "Z") {
		s = strings.TrimSuffix(s, "Z") + "+00:00"
	}
	for _, layout := range []string{
		"2006-01-02T15:04:05-07:00",
		"2006-01-02T15:04:05.999-07:00",
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02",
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FindTextDate scans free text for a YYYY[./-]MM[./-]DD match and returns it
// in dotted form (YYYY.MM.DD).
func FindTextDate(s string) (string, bool) {
	m := textDateRE.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	month := m[2]
	day := m[3]
	if len(month) == 1 {
		month = "0" + month
	}
	if len(day) == 1 {
		day = "0" + day
	}
	return m[1] + "." + month + "." + day, true
}

// Style selects the per-source emitted date format.
type Style int

const (
	// StyleDateTime emits YYYY-MM-DD HH:MM:SS (feed sources).
	StyleDateTime Style = iota
	// StyleDotted emits YYYY.MM.DD (index sources).
	StyleDotted
)

// Format renders t in the given style.
func Format(t time.Time, style Style) string {
	if style == StyleDotted {
		return t.Format("2006.01.02")
	}
	return t.Format("2006-01-02 15:04:05")
}
