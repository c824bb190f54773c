// ABOUTME: Date parsing for the loosely formatted timestamps found in feeds
// ABOUTME: Used when gofeed could not parse an item's published date itself

package feedtime

import (
	"regexp"
	"strings"
	"time"
)

// layouts are tried in order. The first one that parses wins.
var layouts = []string{
	time.RFC3339,
	time.RFC3339Nano,
	time.RFC1123Z,
	time.RFC1123,
	time.RFC822Z,
	time.RFC822,
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05 MST",
	"Mon, 02 Jan 2006 15:04 -0700",
	"2 Jan 2006 15:04:05 -0700",
	"02 Jan 2006 15:04:05 MST",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"January 2, 2006",
}

// trailing "(UTC)" or "(Eastern Standard Time)" annotations
var zoneComment = regexp.MustCompile(`\s*\([^)]*\)\s*$`)

// Parse attempts to parse s using the common feed layouts.
// The boolean is false when no layout matched.
func Parse(s string) (time.Time, bool) {
	s = strings.TrimSpace(zoneComment.ReplaceAllString(s, ""))
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// ParseOr returns the parsed time or fallback
func ParseOr(s string, fallback time.Time) time.Time {
	if t, ok := Parse(s); ok {
		return t
	}
	return fallback
}
