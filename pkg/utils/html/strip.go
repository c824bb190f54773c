// ABOUTME: HTML utilities for turning feed markup into plain reader text
// ABOUTME: Uses bluemonday to strip tags before decoding entities

package html

import (
	stdhtml "html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var stripPolicy = func() *bluemonday.Policy {
	p := bluemonday.StrictPolicy()
	p.AddSpaceWhenStrippingTag(true)
	return p
}()

// StripHTML removes all markup from s, decodes entities and collapses whitespace.
// Script and style bodies are dropped along with their tags.
func StripHTML(s string) string {
	if s == "" {
		return ""
	}

	text := stripPolicy.Sanitize(s)
	text = stdhtml.UnescapeString(text)

	return CollapseWhitespace(text)
}

// CollapseWhitespace replaces runs of whitespace with a single space
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Truncate shortens s to at most max runes, cutting at a word boundary
// and appending "..." when anything was removed.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if max <= 0 || len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}

	cut := string(runes[:max-3])
	if i := strings.LastIndex(cut, " "); i > len(cut)/2 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,;:") + "..."
}
