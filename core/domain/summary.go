package domain

import "time"

// Summary is a short digest of a news item
type Summary struct {
	ItemID    string    `json:"item_id"`
	Text      string    `json:"text"`
	Sentences int       `json:"sentences"`
	Method    string    `json:"method"`
	CreatedAt time.Time `json:"created_at"`
}
