// ABOUTME: Feed domain model represents a user-configured RSS/Atom source
// ABOUTME: Provides validation and category normalization for feed preferences

package domain

import (
	"errors"
	"net/url"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultCategory is used for feeds saved without a category
const DefaultCategory = "General"

// Feed represents an RSS or Atom source the reader is subscribed to
type Feed struct {
	// ID is the unique identifier for the feed
	ID string `json:"id"`

	// Name is the human-readable name shown for the source
	Name string `json:"name"`

	// URL is the feed's source URL (the actual RSS/Atom URL)
	URL string `json:"url"`

	// Category groups feeds together (e.g. "Technology")
	Category string `json:"category"`

	// Enabled controls whether the feed takes part in refreshes
	Enabled bool `json:"enabled"`

	// AddedAt is when the feed was first saved
	AddedAt time.Time `json:"added_at"`
}

// Validate checks if the feed has valid required fields
func (f *Feed) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return errors.New("feed name cannot be empty")
	}

	if f.URL == "" {
		return errors.New("feed URL cannot be empty")
	}

	parsed, err := url.Parse(f.URL)
	if err != nil || parsed.Host == "" {
		return errors.New("feed URL is not valid format")
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return errors.New("feed URL must use http or https")
	}

	return nil
}

// NormalizeURL returns the form of a feed URL used for duplicate detection
func NormalizeURL(raw string) string {
	return strings.TrimRight(strings.ToLower(strings.TrimSpace(raw)), "/")
}

// NormalizeCategory trims and title-cases a category, defaulting to "General"
func NormalizeCategory(category string) string {
	words := strings.Fields(category)
	if len(words) == 0 {
		return DefaultCategory
	}
	return cases.Title(language.Und).String(strings.Join(words, " "))
}
