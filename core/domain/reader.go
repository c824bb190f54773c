// ABOUTME: Domain models for full article extraction
// ABOUTME: Defines the structure for content scraped from an article page

package domain

// Extraction methods reported on an Article
const (
	ExtractionReadability = "readability"
	ExtractionPatterns    = "patterns"
)

// Article represents extracted article content from a webpage
type Article struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Byline      string `json:"byline,omitempty"`
	SiteName    string `json:"siteName,omitempty"`
	Image       string `json:"image,omitempty"`
	Content     string `json:"content"`     // HTML content
	TextContent string `json:"textContent"` // Plain text content
	Markdown    string `json:"markdown"`    // Markdown content
	Method      string `json:"method,omitempty"`
	Status      string `json:"status"`
	Error       string `json:"error,omitempty"`
}
