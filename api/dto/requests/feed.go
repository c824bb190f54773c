// ABOUTME: Request DTOs for feed-related API endpoints
// ABOUTME: Huma struct tags describe validation and documentation for incoming bodies

package requests

import "newsdesk-api/core/preferences"

// CreateFeedRequest is the body of POST /feeds
type CreateFeedRequest struct {
	Name     string `json:"name" minLength:"1" maxLength:"200" doc:"Display name of the source"`
	URL      string `json:"url" format:"uri" doc:"RSS or Atom feed URL"`
	Category string `json:"category,omitempty" maxLength:"100" doc:"Category used to group feeds (default General)"`
	Enabled  *bool  `json:"enabled,omitempty" doc:"Whether the feed takes part in refreshes (default true)"`
}

// ToNewFeed converts the request to repository input
func (r CreateFeedRequest) ToNewFeed() preferences.NewFeed {
	return preferences.NewFeed{
		Name:     r.Name,
		URL:      r.URL,
		Category: r.Category,
		Enabled:  r.Enabled,
	}
}

// UpdateFeedRequest is the body of PATCH /feeds/{id}. Omitted fields are unchanged.
type UpdateFeedRequest struct {
	Name     *string `json:"name,omitempty" maxLength:"200" doc:"New display name"`
	URL      *string `json:"url,omitempty" doc:"New feed URL"`
	Category *string `json:"category,omitempty" maxLength:"100" doc:"New category"`
	Enabled  *bool   `json:"enabled,omitempty" doc:"Enable or disable the feed"`
}

// ToPatch converts the request to a repository patch
func (r UpdateFeedRequest) ToPatch() preferences.FeedPatch {
	return preferences.FeedPatch{
		Name:     r.Name,
		URL:      r.URL,
		Category: r.Category,
		Enabled:  r.Enabled,
	}
}

// IsEmpty reports whether the request changes nothing
func (r UpdateFeedRequest) IsEmpty() bool {
	return r.Name == nil && r.URL == nil && r.Category == nil && r.Enabled == nil
}
