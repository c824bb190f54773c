// ABOUTME: Default feed set seeded on first use and restored by reset
// ABOUTME: IDs are fixed so bookmarks and caches stay valid across resets

package preferences

import "newsdesk-api/core/domain"

// DefaultFeeds returns a fresh copy of the built-in feed list
func DefaultFeeds() []domain.Feed {
	return []domain.Feed{
		{ID: "default-bbc-world", Name: "BBC News - World", URL: "https://feeds.bbci.co.uk/news/world/rss.xml", Category: "World", Enabled: true},
		{ID: "default-npr-news", Name: "NPR News", URL: "https://feeds.npr.org/1001/rss.xml", Category: "World", Enabled: true},
		{ID: "default-verge", Name: "The Verge", URL: "https://www.theverge.com/rss/index.xml", Category: "Technology", Enabled: true},
		{ID: "default-ars-technica", Name: "Ars Technica", URL: "https://feeds.arstechnica.com/arstechnica/index", Category: "Technology", Enabled: true},
		{ID: "default-hacker-news", Name: "Hacker News", URL: "https://hnrss.org/frontpage", Category: "Technology", Enabled: false},
		{ID: "default-nasa", Name: "NASA Breaking News", URL: "https://www.nasa.gov/news-release/feed/", Category: "Science", Enabled: true},
	}
}
