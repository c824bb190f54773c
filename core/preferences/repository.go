// ABOUTME: Feed-preferences repository persisting feeds, bookmarks and refresh time
// ABOUTME: Stores JSON documents in a shared-preferences style key/value store

package preferences

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"newsdesk-api/core/domain"
	coreerrors "newsdesk-api/core/errors"
	"newsdesk-api/core/interfaces"

	"github.com/google/uuid"
)

// Preference keys
const (
	KeyFeeds       = "feeds"
	KeyBookmarks   = "bookmarks"
	KeyLastRefresh = "last_refresh"
)

// FeedPatch carries a partial feed update. Nil fields are left unchanged.
type FeedPatch struct {
	Name     *string
	URL      *string
	Category *string
	Enabled  *bool
}

// NewFeed carries the fields a caller supplies when subscribing to a feed.
// A nil Enabled means enabled.
type NewFeed struct {
	Name     string
	URL      string
	Category string
	Enabled  *bool
}

// Repository manages the reader's feed list and bookmarks
type Repository struct {
	store  interfaces.PreferenceStore
	logger interfaces.Logger

	// mu serializes read-modify-write cycles
	mu sync.Mutex

	now   func() time.Time
	newID func() string
}

// NewRepository creates a repository on top of store
func NewRepository(store interfaces.PreferenceStore, logger interfaces.Logger) *Repository {
	return &Repository{
		store:  store,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// ListFeeds returns all feeds in insertion order, seeding defaults on first use
func (r *Repository) ListFeeds(ctx context.Context) ([]domain.Feed, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.loadFeeds(ctx)
}

// EnabledFeeds returns only the feeds that take part in refreshes
func (r *Repository) EnabledFeeds(ctx context.Context) ([]domain.Feed, error) {
	feeds, err := r.ListFeeds(ctx)
	if err != nil {
		return nil, err
	}

	enabled := make([]domain.Feed, 0, len(feeds))
	for _, f := range feeds {
		if f.Enabled {
			enabled = append(enabled, f)
		}
	}
	return enabled, nil
}

// GetFeed returns one feed by ID
func (r *Repository) GetFeed(ctx context.Context, id string) (*domain.Feed, error) {
	feeds, err := r.ListFeeds(ctx)
	if err != nil {
		return nil, err
	}

	for i := range feeds {
		if feeds[i].ID == id {
			return &feeds[i], nil
		}
	}
	return nil, &coreerrors.NotFoundError{Resource: "feed", ID: id}
}

// AddFeed validates and stores a new feed
func (r *Repository) AddFeed(ctx context.Context, input NewFeed) (*domain.Feed, error) {
	feed := domain.Feed{
		Name:     strings.TrimSpace(input.Name),
		URL:      strings.TrimSpace(input.URL),
		Category: input.Category,
		Enabled:  true,
	}
	if input.Enabled != nil {
		feed.Enabled = *input.Enabled
	}

	if err := feed.Validate(); err != nil {
		return nil, &coreerrors.ValidationError{Field: "feed", Message: err.Error()}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	feeds, err := r.loadFeeds(ctx)
	if err != nil {
		return nil, err
	}

	if dup := findByURL(feeds, feed.URL, ""); dup != nil {
		return nil, &coreerrors.ConflictError{Resource: "feed", Key: feed.URL}
	}

	feed.ID = r.newID()
	feed.Category = domain.NormalizeCategory(feed.Category)
	feed.AddedAt = r.now().UTC()

	feeds = append(feeds, feed)
	if err := r.saveFeeds(ctx, feeds); err != nil {
		return nil, err
	}

	r.logger.Info("Feed added", map[string]interface{}{
		"feed_id": feed.ID,
		"url":     feed.URL,
	})
	return &feed, nil
}

// UpdateFeed applies patch to the feed with the given ID
func (r *Repository) UpdateFeed(ctx context.Context, id string, patch FeedPatch) (*domain.Feed, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	feeds, err := r.loadFeeds(ctx)
	if err != nil {
		return nil, err
	}

	idx := indexOf(feeds, id)
	if idx < 0 {
		return nil, &coreerrors.NotFoundError{Resource: "feed", ID: id}
	}

	updated := feeds[idx]
	if patch.Name != nil {
		updated.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.URL != nil {
		updated.URL = strings.TrimSpace(*patch.URL)
	}
	if patch.Category != nil {
		updated.Category = domain.NormalizeCategory(*patch.Category)
	}
	if patch.Enabled != nil {
		updated.Enabled = *patch.Enabled
	}

	if err := updated.Validate(); err != nil {
		return nil, &coreerrors.ValidationError{Field: "feed", Message: err.Error()}
	}
	if dup := findByURL(feeds, updated.URL, id); dup != nil {
		return nil, &coreerrors.ConflictError{Resource: "feed", Key: updated.URL}
	}

	feeds[idx] = updated
	if err := r.saveFeeds(ctx, feeds); err != nil {
		return nil, err
	}
	return &updated, nil
}

// SetFeedEnabled toggles whether a feed takes part in refreshes
func (r *Repository) SetFeedEnabled(ctx context.Context, id string, enabled bool) (*domain.Feed, error) {
	return r.UpdateFeed(ctx, id, FeedPatch{Enabled: &enabled})
}

// RemoveFeed deletes a feed. Bookmarked items from it are kept.
func (r *Repository) RemoveFeed(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	feeds, err := r.loadFeeds(ctx)
	if err != nil {
		return err
	}

	idx := indexOf(feeds, id)
	if idx < 0 {
		return &coreerrors.NotFoundError{Resource: "feed", ID: id}
	}

	feeds = append(feeds[:idx], feeds[idx+1:]...)
	if err := r.saveFeeds(ctx, feeds); err != nil {
		return err
	}

	r.logger.Info("Feed removed", map[string]interface{}{"feed_id": id})
	return nil
}

// ResetFeeds replaces the feed list with the defaults
func (r *Repository) ResetFeeds(ctx context.Context) ([]domain.Feed, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	feeds := r.seed()
	if err := r.saveFeeds(ctx, feeds); err != nil {
		return nil, err
	}
	return feeds, nil
}

// Categories returns the distinct feed categories, sorted
func (r *Repository) Categories(ctx context.Context) ([]string, error) {
	feeds, err := r.ListFeeds(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	categories := make([]string, 0)
	for _, f := range feeds {
		c := domain.NormalizeCategory(f.Category)
		if !seen[c] {
			seen[c] = true
			categories = append(categories, c)
		}
	}
	sort.Strings(categories)
	return categories, nil
}

// Bookmarks returns the bookmarked items, newest first
func (r *Repository) Bookmarks(ctx context.Context) ([]domain.NewsItem, error) {
	r.mu.Lock()
	marks, err := r.loadBookmarks(ctx)
	r.mu.Unlock()
	if err != nil {
		return nil, err
	}

	items := make([]domain.NewsItem, 0, len(marks))
	for _, item := range marks {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		if !items[i].Published.Equal(items[j].Published) {
			return items[i].Published.After(items[j].Published)
		}
		return items[i].ID < items[j].ID
	})
	return items, nil
}

// BookmarkSet returns bookmarked items keyed by item ID
func (r *Repository) BookmarkSet(ctx context.Context) (map[string]domain.NewsItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.loadBookmarks(ctx)
}

// IsBookmarked reports whether the item is bookmarked
func (r *Repository) IsBookmarked(ctx context.Context, id string) (bool, error) {
	marks, err := r.BookmarkSet(ctx)
	if err != nil {
		return false, err
	}
	_, ok := marks[id]
	return ok, nil
}

// SaveBookmark stores a snapshot of item as bookmarked
func (r *Repository) SaveBookmark(ctx context.Context, item domain.NewsItem) error {
	if item.ID == "" {
		return &coreerrors.ValidationError{Field: "id", Message: "bookmarked item must have an ID"}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	marks, err := r.loadBookmarks(ctx)
	if err != nil {
		return err
	}

	item.Bookmarked = true
	marks[item.ID] = item
	return r.saveJSON(ctx, KeyBookmarks, marks)
}

// SaveBookmarks refreshes several bookmark snapshots in one write
func (r *Repository) SaveBookmarks(ctx context.Context, items []domain.NewsItem) error {
	if len(items) == 0 {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	marks, err := r.loadBookmarks(ctx)
	if err != nil {
		return err
	}
	for _, item := range items {
		item.Bookmarked = true
		marks[item.ID] = item
	}
	return r.saveJSON(ctx, KeyBookmarks, marks)
}

// RemoveBookmark unbookmarks an item. Removing a missing bookmark is a no-op.
func (r *Repository) RemoveBookmark(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	marks, err := r.loadBookmarks(ctx)
	if err != nil {
		return err
	}
	if _, ok := marks[id]; !ok {
		return nil
	}

	delete(marks, id)
	return r.saveJSON(ctx, KeyBookmarks, marks)
}

// ToggleBookmark flips the bookmark on item and returns the new state.
// The read and the write happen under one lock.
func (r *Repository) ToggleBookmark(ctx context.Context, item domain.NewsItem) (bool, error) {
	if item.ID == "" {
		return false, &coreerrors.ValidationError{Field: "id", Message: "bookmarked item must have an ID"}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	marks, err := r.loadBookmarks(ctx)
	if err != nil {
		return false, err
	}

	_, marked := marks[item.ID]
	if marked {
		delete(marks, item.ID)
	} else {
		item.Bookmarked = true
		marks[item.ID] = item
	}
	if err := r.saveJSON(ctx, KeyBookmarks, marks); err != nil {
		return false, err
	}
	return !marked, nil
}

// LastRefresh returns the time of the last completed refresh, zero if never
func (r *Repository) LastRefresh(ctx context.Context) (time.Time, error) {
	raw, err := r.store.GetString(ctx, KeyLastRefresh)
	if errors.Is(err, interfaces.ErrPreferenceNotFound) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}

	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		r.logger.Warn("Ignoring unreadable last refresh time", map[string]interface{}{
			"value": raw,
			"error": err.Error(),
		})
		return time.Time{}, nil
	}
	return t, nil
}

// SetLastRefresh records the time of a completed refresh
func (r *Repository) SetLastRefresh(ctx context.Context, t time.Time) error {
	return r.store.PutString(ctx, KeyLastRefresh, t.UTC().Format(time.RFC3339))
}

// loadFeeds reads the feed list. Caller holds r.mu.
func (r *Repository) loadFeeds(ctx context.Context) ([]domain.Feed, error) {
	raw, err := r.store.GetString(ctx, KeyFeeds)
	if errors.Is(err, interfaces.ErrPreferenceNotFound) {
		feeds := r.seed()
		if err := r.saveFeeds(ctx, feeds); err != nil {
			return nil, err
		}
		r.logger.Info("Seeded default feeds", map[string]interface{}{"count": len(feeds)})
		return feeds, nil
	}
	if err != nil {
		return nil, coreerrors.WrapError(err, "failed to read feeds")
	}

	var feeds []domain.Feed
	if err := json.Unmarshal([]byte(raw), &feeds); err != nil {
		return nil, fmt.Errorf("stored feeds are corrupt: %w", err)
	}
	return feeds, nil
}

func (r *Repository) saveFeeds(ctx context.Context, feeds []domain.Feed) error {
	if feeds == nil {
		feeds = []domain.Feed{}
	}
	return r.saveJSON(ctx, KeyFeeds, feeds)
}

// loadBookmarks reads the bookmark map. Caller holds r.mu.
func (r *Repository) loadBookmarks(ctx context.Context) (map[string]domain.NewsItem, error) {
	marks := make(map[string]domain.NewsItem)

	raw, err := r.store.GetString(ctx, KeyBookmarks)
	if errors.Is(err, interfaces.ErrPreferenceNotFound) {
		return marks, nil
	}
	if err != nil {
		return nil, coreerrors.WrapError(err, "failed to read bookmarks")
	}

	if err := json.Unmarshal([]byte(raw), &marks); err != nil {
		return nil, fmt.Errorf("stored bookmarks are corrupt: %w", err)
	}
	return marks, nil
}

func (r *Repository) saveJSON(ctx context.Context, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := r.store.PutString(ctx, key, string(data)); err != nil {
		return coreerrors.WrapError(err, "failed to save "+key)
	}
	return nil
}

func (r *Repository) seed() []domain.Feed {
	feeds := DefaultFeeds()
	now := r.now().UTC()
	for i := range feeds {
		feeds[i].AddedAt = now
	}
	return feeds
}

func indexOf(feeds []domain.Feed, id string) int {
	for i, f := range feeds {
		if f.ID == id {
			return i
		}
	}
	return -1
}

// findByURL returns the feed whose normalized URL matches, ignoring exceptID
func findByURL(feeds []domain.Feed, rawURL, exceptID string) *domain.Feed {
	target := domain.NormalizeURL(rawURL)
	for i := range feeds {
		if feeds[i].ID != exceptID && domain.NormalizeURL(feeds[i].URL) == target {
			return &feeds[i]
		}
	}
	return nil
}
