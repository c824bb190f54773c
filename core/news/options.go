// ABOUTME: Functional options controlling the news service's fetch and cache behavior
// ABOUTME: Defaults match the configuration defaults in pkg/config

package news

import (
	"context"
	"time"
)

// Cache keys
const (
	snapshotKey    = "news:snapshot"
	feedKeyPrefix  = "news:feed:"
	staleKeyPrefix = "news:stale:"
)

// ThumbnailQueue finds images for article links in the background.
// done is called with link -> image URL once the lookups finish.
type ThumbnailQueue interface {
	Enqueue(ctx context.Context, links []string, done func(images map[string]string)) error
}

// Options controls refresh behavior
type Options struct {
	// FeedTTL is how long a fetched feed is served from cache
	FeedTTL time.Duration

	// StaleTTL is how long the fallback copy of a feed is kept
	StaleTTL time.Duration

	// MaxItemsPerFeed caps the items kept per feed
	MaxItemsPerFeed int

	// Concurrency limits parallel feed fetches
	Concurrency int

	// MaxFeedBytes limits the size of a feed document
	MaxFeedBytes int64

	// Thumbnails enables background image discovery when set
	Thumbnails ThumbnailQueue
}

// DefaultOptions returns the default refresh options
func DefaultOptions() Options {
	return Options{
		FeedTTL:         15 * time.Minute,
		StaleTTL:        7 * 24 * time.Hour,
		MaxItemsPerFeed: 50,
		Concurrency:     8,
		MaxFeedBytes:    10 * 1024 * 1024,
	}
}

// Option is a functional option for configuring the service
type Option func(*Options)

// WithFeedTTL sets the fresh-cache lifetime of a feed
func WithFeedTTL(ttl time.Duration) Option {
	return func(o *Options) {
		if ttl > 0 {
			o.FeedTTL = ttl
		}
	}
}

// WithMaxItemsPerFeed caps the number of items kept from one feed
func WithMaxItemsPerFeed(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.MaxItemsPerFeed = n
		}
	}
}

// WithConcurrency limits parallel feed fetches
func WithConcurrency(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.Concurrency = n
		}
	}
}

// WithThumbnails enables background thumbnail discovery
func WithThumbnails(q ThumbnailQueue) Option {
	return func(o *Options) {
		o.Thumbnails = q
	}
}
