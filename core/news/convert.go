// ABOUTME: Conversion from parsed RSS/Atom entries to reader news items
// ABOUTME: Handles text cleanup, link resolution, image discovery and publish times

package news

import (
	"net/url"
	"strings"
	"time"

	"newsdesk-api/core/domain"
	"newsdesk-api/pkg/utils/feedtime"
	htmlutil "newsdesk-api/pkg/utils/html"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
	ext "github.com/mmcdole/gofeed/extensions"
)

// convertFeed turns a parsed feed into at most max valid items.
// now stamps items that carry no usable date.
func convertFeed(source domain.Feed, parsed *gofeed.Feed, max int, now time.Time) []domain.NewsItem {
	base := baseURL(parsed.Link, source.URL)
	category := domain.NormalizeCategory(source.Category)

	items := make([]domain.NewsItem, 0, len(parsed.Items))
	for _, entry := range parsed.Items {
		if max > 0 && len(items) >= max {
			break
		}
		if entry == nil {
			continue
		}

		item := domain.NewsItem{
			FeedID:      source.ID,
			FeedName:    source.Name,
			Category:    category,
			Title:       htmlutil.StripHTML(entry.Title),
			Description: htmlutil.StripHTML(entry.Description),
			Content:     htmlutil.StripHTML(entry.Content),
			Link:        resolve(base, entry.Link),
			Author:      authorOf(entry),
			Published:   publishedAt(entry, now),
		}
		item.ImageURL = resolve(base, findImage(entry, parsed))

		// Some feeds only put a GUID permalink
		if item.Link == "" && isPermalink(entry.GUID) {
			item.Link = entry.GUID
		}

		if !item.IsValid() {
			continue
		}
		item.ID = domain.ContentHash(item.Title, item.Link)
		items = append(items, item)
	}

	return items
}

// findImage finds an item image from various sources
func findImage(item *gofeed.Item, feed *gofeed.Feed) string {
	// 1. media:content / media:thumbnail
	if img := mediaImage(item.Extensions); img != "" {
		return img
	}

	// 2. Image enclosures
	for _, enc := range item.Enclosures {
		if enc != nil && enc.URL != "" && strings.HasPrefix(enc.Type, "image/") {
			return enc.URL
		}
	}

	// 3. Item image
	if item.Image != nil && item.Image.URL != "" {
		return item.Image.URL
	}

	// 4. iTunes extension image
	if item.ITunesExt != nil && item.ITunesExt.Image != "" {
		return item.ITunesExt.Image
	}

	// 5. First <img> in the markup
	for _, markup := range []string{item.Content, item.Description} {
		if img := firstImage(markup); img != "" {
			return img
		}
	}

	return ""
}

// mediaImage reads Media RSS extensions
func mediaImage(extensions ext.Extensions) string {
	media, ok := extensions["media"]
	if !ok {
		return ""
	}

	for _, name := range []string{"content", "thumbnail"} {
		for _, e := range media[name] {
			u := e.Attrs["url"]
			if u == "" {
				continue
			}
			medium := e.Attrs["medium"]
			typ := e.Attrs["type"]
			if name == "thumbnail" || medium == "image" || strings.HasPrefix(typ, "image/") || (medium == "" && typ == "") {
				return u
			}
		}
	}

	for _, group := range media["group"] {
		for _, child := range group.Children["content"] {
			if u := child.Attrs["url"]; u != "" && (child.Attrs["medium"] == "image" || strings.HasPrefix(child.Attrs["type"], "image/")) {
				return u
			}
		}
		for _, child := range group.Children["thumbnail"] {
			if u := child.Attrs["url"]; u != "" {
				return u
			}
		}
	}

	return ""
}

// firstImage returns the src of the first <img> in an HTML fragment
func firstImage(markup string) string {
	if !strings.Contains(markup, "<img") {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return ""
	}

	var src string
	doc.Find("img").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		for _, attr := range []string{"src", "data-src"} {
			if v := strings.TrimSpace(sel.AttrOr(attr, "")); v != "" && !strings.HasPrefix(v, "data:") {
				src = v
				return false
			}
		}
		return true
	})
	return src
}

func authorOf(item *gofeed.Item) string {
	if item.Author != nil && item.Author.Name != "" {
		return strings.TrimSpace(item.Author.Name)
	}
	for _, a := range item.Authors {
		if a != nil && a.Name != "" {
			return strings.TrimSpace(a.Name)
		}
	}
	if item.DublinCoreExt != nil && len(item.DublinCoreExt.Creator) > 0 {
		return strings.TrimSpace(item.DublinCoreExt.Creator[0])
	}
	if item.ITunesExt != nil && item.ITunesExt.Author != "" {
		return item.ITunesExt.Author
	}
	return ""
}

// publishedAt prefers the parsed date, then a flexible parse of the raw one
func publishedAt(item *gofeed.Item, now time.Time) time.Time {
	if item.PublishedParsed != nil {
		return item.PublishedParsed.UTC()
	}
	if item.UpdatedParsed != nil {
		return item.UpdatedParsed.UTC()
	}
	return feedtime.ParseOr(item.Published, feedtime.ParseOr(item.Updated, now)).UTC()
}

func baseURL(candidates ...string) *url.URL {
	for _, c := range candidates {
		if u, err := url.Parse(strings.TrimSpace(c)); err == nil && u.IsAbs() {
			return u
		}
	}
	return nil
}

// resolve makes ref absolute against base when possible
func resolve(base *url.URL, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	if u.IsAbs() || base == nil {
		return u.String()
	}
	return base.ResolveReference(u).String()
}

func isPermalink(guid string) bool {
	return strings.HasPrefix(guid, "http://") || strings.HasPrefix(guid, "https://")
}
