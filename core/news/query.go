// ABOUTME: Filtering and pagination over the current article list
// ABOUTME: Powers the category, feed, bookmark and free-text views

package news

import (
	"context"
	"strings"

	"newsdesk-api/core/domain"
	coreerrors "newsdesk-api/core/errors"
)

// Pagination limits
const (
	DefaultPerPage = 20
	MaxPerPage     = 100
	MaxPage        = 10000
)

// Filter selects items from the current list. Zero values match everything.
type Filter struct {
	Category       string
	FeedID         string
	BookmarkedOnly bool
	Search         string
	Page           int
	PerPage        int
}

// Page is one page of query results
type Page struct {
	Items      []domain.NewsItem `json:"items"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	PerPage    int               `json:"per_page"`
	TotalPages int               `json:"total_pages"`
}

// Query filters and paginates the current items
func (s *Service) Query(ctx context.Context, filter Filter) (*Page, error) {
	if err := normalizeFilter(&filter); err != nil {
		return nil, err
	}

	state, err := s.State(ctx)
	if err != nil && state == nil {
		return nil, err
	}

	matched := FilterItems(state.Items, filter)
	total := len(matched)

	return &Page{
		Items:      PaginateItems(matched, filter.Page, filter.PerPage),
		Total:      total,
		Page:       filter.Page,
		PerPage:    filter.PerPage,
		TotalPages: (total + filter.PerPage - 1) / filter.PerPage,
	}, nil
}

func normalizeFilter(f *Filter) error {
	if f.Page == 0 {
		f.Page = 1
	}
	if f.PerPage == 0 {
		f.PerPage = DefaultPerPage
	}
	if f.Page < 1 || f.Page > MaxPage {
		return &coreerrors.ValidationError{Field: "page", Message: "must be between 1 and 10000"}
	}
	if f.PerPage < 1 || f.PerPage > MaxPerPage {
		return &coreerrors.ValidationError{Field: "per_page", Message: "must be between 1 and 100"}
	}
	return nil
}

// FilterItems returns the items that match every set criterion
func FilterItems(items []domain.NewsItem, f Filter) []domain.NewsItem {
	category := ""
	if strings.TrimSpace(f.Category) != "" {
		category = domain.NormalizeCategory(f.Category)
	}
	needle := strings.ToLower(strings.TrimSpace(f.Search))

	out := make([]domain.NewsItem, 0, len(items))
	for _, item := range items {
		if category != "" && !strings.EqualFold(item.Category, category) {
			continue
		}
		if f.FeedID != "" && item.FeedID != f.FeedID {
			continue
		}
		if f.BookmarkedOnly && !item.Bookmarked {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(item.Title), needle) &&
			!strings.Contains(strings.ToLower(item.Description), needle) {
			continue
		}
		out = append(out, item)
	}
	return out
}

// PaginateItems returns a paginated slice of items
func PaginateItems(items []domain.NewsItem, page, perPage int) []domain.NewsItem {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}

	// Compare before multiplying so huge pages cannot overflow
	if page-1 >= (len(items)+perPage-1)/perPage {
		return []domain.NewsItem{}
	}

	start := (page - 1) * perPage

	end := start + perPage
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
