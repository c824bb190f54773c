package responses

import "time"

// NewsItemResponse is one article
type NewsItemResponse struct {
	ID          string    `json:"id"`
	FeedID      string    `json:"feed_id"`
	FeedName    string    `json:"feed_name"`
	Category    string    `json:"category"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Content     string    `json:"content,omitempty"`
	Link        string    `json:"link"`
	ImageURL    string    `json:"image_url,omitempty"`
	Author      string    `json:"author,omitempty"`
	Published   time.Time `json:"published"`
	Bookmarked  bool      `json:"bookmarked"`
	Summary     string    `json:"summary,omitempty"`
}

// NewsPageResponse is one page of queried items
type NewsPageResponse struct {
	Items      []NewsItemResponse `json:"items"`
	Total      int                `json:"total"`
	Page       int                `json:"page"`
	PerPage    int                `json:"per_page"`
	TotalPages int                `json:"total_pages"`
	Refreshing bool               `json:"refreshing"`
}

// RefreshResponse reports the outcome of a refresh
type RefreshResponse struct {
	Total       int               `json:"total" doc:"Number of items after the refresh"`
	RefreshedAt time.Time         `json:"refreshed_at"`
	FeedErrors  map[string]string `json:"feed_errors,omitempty" doc:"Feed ID to error for feeds that failed"`
}

// BookmarkResponse is the bookmark state after a toggle
type BookmarkResponse struct {
	ID         string `json:"id"`
	Bookmarked bool   `json:"bookmarked"`
}

// BookmarksResponse lists bookmarked items, newest first
type BookmarksResponse struct {
	Items []NewsItemResponse `json:"items"`
	Total int                `json:"total"`
}

// SummaryResponse is a generated item summary
type SummaryResponse struct {
	ItemID    string    `json:"item_id"`
	Text      string    `json:"text"`
	Sentences int       `json:"sentences"`
	Method    string    `json:"method" doc:"Summarizer that produced the text" example:"lead"`
	CreatedAt time.Time `json:"created_at"`
}
