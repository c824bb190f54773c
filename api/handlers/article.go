// ABOUTME: Article extraction handler for the Huma API
// ABOUTME: Returns full article text for a batch of URLs

package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"newsdesk-api/api/dto/requests"
	"newsdesk-api/api/dto/responses"
	"newsdesk-api/core/domain"
)

// ArticleExtractor extracts articles, one result per URL in input order
type ArticleExtractor interface {
	ExtractBatch(ctx context.Context, urls []string) []domain.Article
}

// ArticleHandler handles article extraction requests
type ArticleHandler struct {
	extractor ArticleExtractor
}

// NewArticleHandler creates a new article handler
func NewArticleHandler(extractor ArticleExtractor) *ArticleHandler {
	return &ArticleHandler{extractor: extractor}
}

// RegisterRoutes registers the extraction route
func (h *ArticleHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "extractArticles",
		Method:      http.MethodPost,
		Path:        "/articles/extract",
		Summary:     "Extract full article text",
		Description: "Fetches each URL and extracts the article body as HTML, text and markdown. Failures are reported per URL.",
		Tags:        []string{"Articles"},
	}, h.ExtractArticles)
}

// ExtractArticlesInput defines the body for ExtractArticles
type ExtractArticlesInput struct {
	Body requests.ExtractArticlesRequest
}

// ExtractArticlesOutput wraps the per-URL results
type ExtractArticlesOutput struct {
	Body responses.ExtractArticlesResponse
}

// ExtractArticles handles POST /articles/extract
func (h *ArticleHandler) ExtractArticles(ctx context.Context, input *ExtractArticlesInput) (*ExtractArticlesOutput, error) {
	urls := input.Body.URLs
	if len(urls) == 0 {
		return nil, huma.Error400BadRequest("No URLs provided")
	}
	if len(urls) > requests.MaxExtractURLs {
		return nil, huma.Error400BadRequest("Too many URLs")
	}

	articles := h.extractor.ExtractBatch(ctx, urls)
	return &ExtractArticlesOutput{Body: responses.ExtractArticlesResponse{Articles: articles}}, nil
}
