// ABOUTME: Service interfaces for the core business logic
// ABOUTME: Defines contracts for services used throughout the application

package interfaces

import "context"

// MetadataResult contains extracted metadata from a webpage
type MetadataResult struct {
	Title       string
	Description string
	Thumbnail   string // Primary image URL
	Images      []string
	Domain      string
	Favicon     string
}

// MetadataService extracts metadata from web pages
type MetadataService interface {
	ExtractMetadata(ctx context.Context, url string) (*MetadataResult, error)
	ExtractMetadataBatch(ctx context.Context, urls []string) map[string]*MetadataResult
}
