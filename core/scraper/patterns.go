// ABOUTME: Pattern-based article extraction used when readability comes up short
// ABOUTME: Picks the first matching content container and strips page chrome from it

package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"newsdesk-api/core/domain"
	htmlutil "newsdesk-api/pkg/utils/html"
)

// contentPatterns are tried in order; the first with enough text wins
var contentPatterns = []string{
	"article",
	"[itemprop=articleBody]",
	".article-body",
	".post-content",
	".entry-content",
	".story-body",
	"main",
	"#content",
}

const noiseSelector = "script, style, noscript, iframe, nav, aside, form, " +
	"[class*=share], [class*=related], [id*=share], [id*=related]"

// minParagraphChars drops bylines, captions and button labels
const minParagraphChars = 40

func extractPatterns(page string) (domain.Article, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return domain.Article{}, false
	}

	for _, pattern := range contentPatterns {
		node := doc.Find(pattern).First()
		if node.Length() == 0 {
			continue
		}

		node.Find(noiseSelector).Remove()
		node.Find("p").Each(func(_ int, p *goquery.Selection) {
			if len([]rune(strings.TrimSpace(p.Text()))) < minParagraphChars {
				p.Remove()
			}
		})

		text := htmlutil.CollapseWhitespace(node.Text())
		if len(text) < minReadableChars {
			continue
		}

		content, err := node.Html()
		if err != nil {
			continue
		}

		return domain.Article{
			Title:       pageTitle(doc),
			Byline:      metaContent(doc, "author", "article:author"),
			SiteName:    metaContent(doc, "og:site_name"),
			Image:       metaContent(doc, "og:image", "twitter:image"),
			Content:     strings.TrimSpace(content),
			TextContent: text,
			Method:      domain.ExtractionPatterns,
			Status:      statusOK,
		}, true
	}

	return domain.Article{}, false
}

func pageTitle(doc *goquery.Document) string {
	if title := metaContent(doc, "og:title"); title != "" {
		return title
	}
	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		return title
	}
	return strings.TrimSpace(doc.Find("h1").First().Text())
}

// metaContent returns the first non-empty <meta> value among names,
// matched against both the name and property attributes.
func metaContent(doc *goquery.Document, names ...string) string {
	for _, name := range names {
		for _, attr := range []string{"property", "name"} {
			sel := doc.Find(`meta[` + attr + `="` + name + `"]`).First()
			if v, ok := sel.Attr("content"); ok && strings.TrimSpace(v) != "" {
				return strings.TrimSpace(v)
			}
		}
	}
	return ""
}
