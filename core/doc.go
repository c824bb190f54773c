// Package core contains the business logic for the Newsdesk API.
// It does not depend on the HTTP layer and can be used on its own.
//
// The core package is organized into several sub-packages:
//
// - domain: Feed, NewsItem, Article and Summary models
// - preferences: feed list, bookmarks and last-refresh time over a PreferenceStore
// - news: feed fetching, merging, de-duplication and the cached reader state
// - summary: extractive and remote summarizers chained by priority
// - scraper: full-article extraction to markdown
// - scheduler: periodic background refresh
// - services, workers: og:image lookup for items without a thumbnail
// - errors: typed errors mapped to HTTP status codes by the api package
// - interfaces: contracts for cache, HTTP, logging and preference storage
//
// # Usage Example
//
//	deps := interfaces.Dependencies{
//	    Cache:      myCache,      // implements interfaces.Cache
//	    HTTPClient: myHTTPClient, // implements interfaces.HTTPClient
//	    Logger:     myLogger,     // implements interfaces.Logger
//	}
//
//	repo := preferences.NewRepository(myStore, myLogger)
//	svc := news.NewService(deps, repo)
//
//	state, err := svc.Refresh(ctx, false)
package core
