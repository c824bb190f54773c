package news

import (
	"strings"
	"testing"
	"time"

	"newsdesk-api/core/domain"

	"github.com/mmcdole/gofeed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testFeed = domain.Feed{ID: "tech", Name: "Tech Daily", URL: "https://tech.example.com/rss", Category: "technology"}

func parse(t *testing.T, doc string) *gofeed.Feed {
	t.Helper()
	parsed, err := gofeed.NewParser().ParseString(doc)
	require.NoError(t, err)
	return parsed
}

func TestConvertFeed_Fields(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	doc := rss("https://tech.example.com",
		rssItem{
			title:       "Chips &amp; <b>Salsa</b>",
			link:        "/2024/chips",
			description: "<p>Short <em>teaser</em></p>",
			content:     "<p>Full body.</p><script>alert(1)</script>",
			pubDate:     "Mon, 03 Jun 2024 10:00:00 +0000",
			extra:       `<author>ed@example.com (Ed Itor)</author>`,
		},
	)

	items := convertFeed(testFeed, parse(t, doc), 50, now)
	require.Len(t, items, 1)
	item := items[0]

	assert.Equal(t, "Chips & Salsa", item.Title)
	assert.Equal(t, "https://tech.example.com/2024/chips", item.Link)
	assert.Equal(t, "Short teaser", item.Description)
	assert.Equal(t, "Full body.", item.Content)
	assert.Equal(t, "tech", item.FeedID)
	assert.Equal(t, "Tech Daily", item.FeedName)
	assert.Equal(t, "Technology", item.Category)
	assert.Equal(t, time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC), item.Published)
	assert.Equal(t, domain.ContentHash(item.Title, item.Link), item.ID)
	assert.NotEmpty(t, item.Author)
}

func TestConvertFeed_ImageSources(t *testing.T) {
	doc := rss("https://tech.example.com",
		rssItem{title: "Media", link: "https://tech.example.com/a",
			extra: `<media:content url="https://img.example.com/media.jpg" medium="image"/>`},
		rssItem{title: "Enclosure", link: "https://tech.example.com/b",
			extra: `<enclosure url="https://img.example.com/enc.png" type="image/png" length="10"/>`},
		rssItem{title: "Inline", link: "https://tech.example.com/c",
			content: `<p>Look</p><img src="/inline.gif">`},
		rssItem{title: "Audio only", link: "https://tech.example.com/d",
			extra: `<enclosure url="https://img.example.com/ep.mp3" type="audio/mpeg" length="10"/>`},
	)

	items := convertFeed(testFeed, parse(t, doc), 50, time.Now())
	require.Len(t, items, 4)

	assert.Equal(t, "https://img.example.com/media.jpg", items[0].ImageURL)
	assert.Equal(t, "https://img.example.com/enc.png", items[1].ImageURL)
	assert.Equal(t, "https://tech.example.com/inline.gif", items[2].ImageURL)
	assert.Equal(t, "", items[3].ImageURL)
}

func TestConvertFeed_SkipsInvalidAndCaps(t *testing.T) {
	doc := rss("https://tech.example.com",
		rssItem{title: "", link: "https://tech.example.com/untitled"},
		rssItem{title: "No link or content"},
		rssItem{title: "One", link: "https://tech.example.com/1"},
		rssItem{title: "Two", link: "https://tech.example.com/2"},
		rssItem{title: "Three", link: "https://tech.example.com/3"},
	)

	items := convertFeed(testFeed, parse(t, doc), 2, time.Now())
	require.Len(t, items, 2)
	assert.Equal(t, "One", items[0].Title)
	assert.Equal(t, "Two", items[1].Title)
}

func TestConvertFeed_ContentOnlyItemIsKept(t *testing.T) {
	doc := rss("https://tech.example.com", rssItem{title: "Note", content: "<p>Body without a link</p>"})

	items := convertFeed(testFeed, parse(t, doc), 50, time.Now())
	require.Len(t, items, 1)
	assert.Equal(t, "", items[0].Link)
}

func TestConvertFeed_PublishedFallbacks(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	doc := rss("https://tech.example.com",
		rssItem{title: "Loose date", link: "https://tech.example.com/1", pubDate: "2024-05-20 08:30:00"},
		rssItem{title: "No date", link: "https://tech.example.com/2", pubDate: "sometime soon"},
	)

	items := convertFeed(testFeed, parse(t, doc), 50, now)
	require.Len(t, items, 2)
	assert.Equal(t, 2024, items[0].Published.Year())
	assert.Equal(t, time.May, items[0].Published.Month())
	assert.Equal(t, now, items[1].Published)
}

func TestPublishedAt_RawUpdatedDate(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	got := publishedAt(&gofeed.Item{Published: "not a date", Updated: "2024-05-20 08:30:00"}, now)
	assert.Equal(t, time.Date(2024, 5, 20, 8, 30, 0, 0, time.UTC), got)

	assert.Equal(t, now, publishedAt(&gofeed.Item{}, now))
}

func TestFirstImage(t *testing.T) {
	assert.Equal(t, "a.jpg", firstImage(`<div><img src="a.jpg"><img src="b.jpg"></div>`))
	assert.Equal(t, "lazy.jpg", firstImage(`<img src="data:image/gif;base64,R0lGOD" data-src="lazy.jpg">`))
	assert.Equal(t, "", firstImage("no markup"))
}

func TestResolve(t *testing.T) {
	base := baseURL("", "https://example.com/news/")
	assert.Equal(t, "https://example.com/news/a", resolve(base, "a"))
	assert.Equal(t, "https://other.com/x", resolve(base, " https://other.com/x "))
	assert.Equal(t, "", resolve(base, ""))
	assert.True(t, strings.HasPrefix(resolve(nil, "relative"), "relative"))
}
