package interfaces

import (
	"context"
	"io"
)

// HTTPClient defines the interface for making outbound HTTP requests to feed
// hosts and article pages. Tests substitute a mock so that no network access
// is needed.
type HTTPClient interface {
	// Get performs an HTTP GET request to the specified URL.
	// A non-2xx status is not an error; callers inspect StatusCode.
	Get(ctx context.Context, url string) (Response, error)
}

// Response defines the interface for HTTP responses.
type Response interface {
	// StatusCode returns the HTTP status code of the response.
	StatusCode() int

	// Body returns the response body as an io.ReadCloser.
	// The caller is responsible for closing the body when done.
	Body() io.ReadCloser

	// Header returns the value of the specified header.
	// Returns an empty string if the header is not present.
	// Header names are case-insensitive.
	Header(key string) string
}
