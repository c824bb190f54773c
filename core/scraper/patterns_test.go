package scraper

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsdesk-api/core/domain"
)

func TestExtractPatterns_StripsNoise(t *testing.T) {
	extra := `<script>track()</script>
		<p>Share this story</p>
		<div class="share-buttons"><p>Share on every network you can think of right now please</p></div>
		<aside><p>Advertisement text that is long enough to survive the paragraph filter</p></aside>
		<section class="related-stories"><p>Another story that readers might also enjoy reading today</p></section>
		<form><input name="email"></form>`
	page := strings.Replace(articlePage("Tram network to grow", extra),
		"<head>", `<head><meta name="author" content="Jo Reporter"><meta property="og:image" content="https://img.example.com/t.jpg">`, 1)

	article, ok := extractPatterns(page)
	require.True(t, ok)

	assert.Equal(t, domain.ExtractionPatterns, article.Method)
	assert.Equal(t, "Tram network to grow", article.Title)
	assert.Equal(t, "Jo Reporter", article.Byline)
	assert.Equal(t, "City Post", article.SiteName)
	assert.Equal(t, "https://img.example.com/t.jpg", article.Image)

	assert.Contains(t, article.TextContent, "sweeping plan")
	for _, noise := range []string{"track()", "Share this story", "Share on every", "Advertisement", "Another story", "Home"} {
		assert.NotContains(t, article.TextContent, noise)
	}
	assert.NotContains(t, article.Content, "<form")
}

func TestExtractPatterns_FallsThroughToLaterPattern(t *testing.T) {
	var b strings.Builder
	b.WriteString(`<html><body><article><p>Too short to count</p></article><div class="entry-content">`)
	for _, p := range paragraphs {
		b.WriteString("<p>" + p + "</p>")
	}
	b.WriteString("</div></body></html>")

	article, ok := extractPatterns(b.String())
	require.True(t, ok)
	assert.Contains(t, article.TextContent, "first phase")
	assert.NotContains(t, article.TextContent, "Too short")
}

func TestExtractPatterns_NoContent(t *testing.T) {
	_, ok := extractPatterns("<html><body><div>Nothing here</div></body></html>")
	assert.False(t, ok)
}

func TestCleanMarkdown(t *testing.T) {
	in := "Intro  \r\n\n\n\nBody\n## Heading\nText"
	assert.Equal(t, "Intro\n\nBody\n\n## Heading\nText", cleanMarkdown(in))
}
