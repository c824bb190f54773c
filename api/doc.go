// Package api provides the HTTP API layer for the Newsdesk service.
// It uses the Huma framework on a chi router for OpenAPI documentation,
// request validation and a uniform handler signature.
//
// # Architecture
//
// - server.go: Huma API configuration and middleware setup
// - handlers/: feeds, news, bookmarks, summaries, articles and health
// - dto/: request and response shapes plus domain mappers
// - middleware/: request IDs, logging and per-client rate limiting
//
// # OpenAPI
//
// The OpenAPI document is served at /openapi.json and interactive docs at /docs.
//
// # Usage Example
//
//	humaAPI, router := api.NewAPIWithMiddleware(api.APIConfig{
//	    Logger:      logger,
//	    RateLimiter: middleware.NewRateLimiter(120, time.Minute),
//	})
//
//	api.Register(humaAPI,
//	    handlers.NewFeedHandler(repo),
//	    handlers.NewNewsHandler(newsService, repo, summaryService),
//	)
//
//	http.ListenAndServe(":8000", router)
//
// # Error Handling
//
// Errors use the RFC 7807 problem format:
//
//	{
//	    "status": 404,
//	    "title": "Not Found",
//	    "detail": "feed not found: abc"
//	}
//
// Domain errors from core/errors are mapped to matching status codes.
package api
