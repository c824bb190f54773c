package requests

// MaxExtractURLs bounds one article extraction request
const MaxExtractURLs = 20

// ExtractArticlesRequest is the body of POST /articles/extract
type ExtractArticlesRequest struct {
	URLs []string `json:"urls" minItems:"1" maxItems:"20" doc:"Article URLs to extract"`
}
