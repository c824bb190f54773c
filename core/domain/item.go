// ABOUTME: NewsItem domain model represents a single article derived from a feed
// ABOUTME: Provides the content hash used to de-duplicate articles across feeds

package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// NewsItem represents an individual article with its bookmark state
type NewsItem struct {
	// ID is the content hash of the article (see ContentHash)
	ID string `json:"id"`

	// FeedID and FeedName identify the source the item was read from
	FeedID   string `json:"feed_id"`
	FeedName string `json:"feed_name"`
	Category string `json:"category"`

	Title       string    `json:"title"`
	Description string    `json:"description"` // Plain text teaser
	Content     string    `json:"content"`     // Plain text body
	Link        string    `json:"link"`
	ImageURL    string    `json:"image_url,omitempty"`
	Author      string    `json:"author,omitempty"`
	Published   time.Time `json:"published"`

	Bookmarked bool   `json:"bookmarked"`
	Summary    string `json:"summary,omitempty"`
}

// IsValid checks if the item has a title and something to read
func (n *NewsItem) IsValid() bool {
	if strings.TrimSpace(n.Title) == "" {
		return false
	}

	return n.Link != "" || n.Content != ""
}

// BestText returns the longest textual body available for the item
func (n *NewsItem) BestText() string {
	if len(n.Content) >= len(n.Description) {
		return n.Content
	}
	return n.Description
}

// ContentHash derives a stable article ID from its title and link.
// Both parts are NFC-normalized, lowercased and trimmed before hashing.
func ContentHash(title, link string) string {
	clean := func(s string) string {
		return strings.ToLower(strings.TrimSpace(norm.NFC.String(s)))
	}

	sum := sha256.Sum256([]byte(clean(link) + "\n" + clean(title)))
	return hex.EncodeToString(sum[:16])
}
