// ABOUTME: Merge, de-duplication and bookmark reconciliation of refreshed items
// ABOUTME: Produces the single ordered article list shown to readers

package news

import (
	"sort"

	"newsdesk-api/core/domain"
)

// mergeItems flattens per-feed results and drops duplicate articles.
// Of two copies the one with the longer text wins; ties keep the earlier feed.
func mergeItems(perFeed [][]domain.NewsItem) []domain.NewsItem {
	total := 0
	for _, items := range perFeed {
		total += len(items)
	}

	merged := make([]domain.NewsItem, 0, total)
	index := make(map[string]int, total)

	for _, items := range perFeed {
		for _, item := range items {
			if i, ok := index[item.ID]; ok {
				if len(item.BestText()) > len(merged[i].BestText()) {
					merged[i] = item
				}
				continue
			}
			index[item.ID] = len(merged)
			merged = append(merged, item)
		}
	}

	return merged
}

// carryOver keeps enrichment from the previous list for articles that are still present
func carryOver(items, previous []domain.NewsItem) {
	if len(previous) == 0 {
		return
	}

	byID := make(map[string]*domain.NewsItem, len(previous))
	for i := range previous {
		byID[previous[i].ID] = &previous[i]
	}

	for i := range items {
		old, ok := byID[items[i].ID]
		if !ok {
			continue
		}
		if items[i].ImageURL == "" {
			items[i].ImageURL = old.ImageURL
		}
		if items[i].Summary == "" {
			items[i].Summary = old.Summary
		}
	}
}

// reconcileBookmarks marks bookmarked items and retains bookmarks that dropped
// out of the feeds. It returns the list and the refreshed bookmark snapshots.
func reconcileBookmarks(items []domain.NewsItem, marks map[string]domain.NewsItem) ([]domain.NewsItem, []domain.NewsItem) {
	refreshed := make([]domain.NewsItem, 0)
	present := make(map[string]bool, len(items))

	for i := range items {
		present[items[i].ID] = true
		if _, ok := marks[items[i].ID]; ok {
			items[i].Bookmarked = true
			refreshed = append(refreshed, items[i])
		} else {
			items[i].Bookmarked = false
		}
	}

	for id, mark := range marks {
		if present[id] {
			continue
		}
		mark.Bookmarked = true
		items = append(items, mark)
	}

	return items, refreshed
}

// sortItems orders by publish time, newest first, then by ID
func sortItems(items []domain.NewsItem) {
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].Published.Equal(items[j].Published) {
			return items[i].Published.After(items[j].Published)
		}
		return items[i].ID < items[j].ID
	})
}
