package responses

import "newsdesk-api/core/domain"

// ExtractArticlesResponse holds one result per requested URL, in request order
type ExtractArticlesResponse struct {
	Articles []domain.Article `json:"articles"`
}
