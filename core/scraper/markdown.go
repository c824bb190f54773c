// ABOUTME: Markdown rendering for extracted articles
// ABOUTME: Converts article HTML with html-to-markdown and prepends a metadata header

package scraper

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"

	"newsdesk-api/core/domain"
)

var (
	excessNewlines = regexp.MustCompile(`\n{3,}`)
	trailingSpaces = regexp.MustCompile(`[ \t]+\n`)
	headingSpacing = regexp.MustCompile(`([^\n])\n(#{1,6} )`)
)

// toMarkdown renders the article body. Relative links resolve against pageURL.
func toMarkdown(article domain.Article, pageURL *url.URL) string {
	if strings.TrimSpace(article.Content) == "" {
		return ""
	}

	base := ""
	if pageURL != nil {
		base = pageURL.Scheme + "://" + pageURL.Host
	}

	converter := md.NewConverter(base, true, nil)
	body, err := converter.ConvertString(article.Content)
	if err != nil {
		return ""
	}

	var b strings.Builder
	if article.Title != "" {
		b.WriteString("# ")
		b.WriteString(article.Title)
		b.WriteString("\n\n")
	}

	var meta []string
	if article.Byline != "" {
		meta = append(meta, fmt.Sprintf("**Author:** %s", article.Byline))
	}
	if article.SiteName != "" {
		meta = append(meta, fmt.Sprintf("**Source:** %s", article.SiteName))
	}
	if len(meta) > 0 {
		b.WriteString(strings.Join(meta, " | "))
		b.WriteString("\n\n---\n\n")
	}

	b.WriteString(cleanMarkdown(body))
	return b.String()
}

func cleanMarkdown(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = trailingSpaces.ReplaceAllString(s, "\n")
	s = headingSpacing.ReplaceAllString(s, "$1\n\n$2")
	s = excessNewlines.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
