// ABOUTME: News service fetches enabled feeds, merges them and holds the reader state
// ABOUTME: Provides cached, de-duplicated and bookmark-aware article lists

package news

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"newsdesk-api/core/domain"
	coreerrors "newsdesk-api/core/errors"
	"newsdesk-api/core/interfaces"

	"github.com/mmcdole/gofeed"
)

// Preferences is the subset of the preferences repository the service needs
type Preferences interface {
	EnabledFeeds(ctx context.Context) ([]domain.Feed, error)
	BookmarkSet(ctx context.Context) (map[string]domain.NewsItem, error)
	SaveBookmarks(ctx context.Context, items []domain.NewsItem) error
	ToggleBookmark(ctx context.Context, item domain.NewsItem) (bool, error)
	SetLastRefresh(ctx context.Context, t time.Time) error
}

// State is the reader state exposed to clients
type State struct {
	Items       []domain.NewsItem `json:"items"`
	RefreshedAt time.Time         `json:"refreshed_at"`
	Refreshing  bool              `json:"refreshing"`

	// FeedErrors maps feed ID to the error of its last failed fetch
	FeedErrors map[string]string `json:"feed_errors,omitempty"`
}

// refreshCall is an in-flight refresh that later callers wait on
type refreshCall struct {
	done  chan struct{}
	state *State
	err   error
}

// Service handles feed refreshes and the merged article list
type Service struct {
	deps  interfaces.Dependencies
	prefs Preferences
	opts  Options
	now   func() time.Time

	// mu guards state and loaded
	mu     sync.RWMutex
	state  State
	loaded bool

	flightMu sync.Mutex
	flight   *refreshCall

	bookmarkMu sync.Mutex
}

// NewService creates a new news service instance
func NewService(deps interfaces.Dependencies, prefs Preferences, opts ...Option) *Service {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &Service{
		deps:  deps,
		prefs: prefs,
		opts:  o,
		now:   time.Now,
	}
}

// FetchFeed returns the items of one feed, from cache while fresh
func (s *Service) FetchFeed(ctx context.Context, feed domain.Feed) ([]domain.NewsItem, error) {
	return s.fetchFeed(ctx, feed, false)
}

func (s *Service) fetchFeed(ctx context.Context, feed domain.Feed, force bool) ([]domain.NewsItem, error) {
	if !force {
		if items, ok := s.cachedItems(ctx, feedKeyPrefix+feed.ID); ok {
			return items, nil
		}
	}

	items, err := s.download(ctx, feed)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if stale, ok := s.cachedItems(ctx, staleKeyPrefix+feed.ID); ok {
			s.deps.Logger.Warn("Serving stale feed", map[string]interface{}{
				"feed_id": feed.ID,
				"url":     feed.URL,
				"error":   err.Error(),
				"items":   len(stale),
			})
			return stale, nil
		}
		return nil, err
	}

	s.cacheItems(ctx, feedKeyPrefix+feed.ID, items, s.opts.FeedTTL)
	s.cacheItems(ctx, staleKeyPrefix+feed.ID, items, s.opts.StaleTTL)

	return items, nil
}

// download fetches and parses a feed
func (s *Service) download(ctx context.Context, feed domain.Feed) ([]domain.NewsItem, error) {
	if s.deps.HTTPClient == nil {
		return nil, errors.New("HTTP client not configured")
	}

	resp, err := s.deps.HTTPClient.Get(ctx, feed.URL)
	if err != nil {
		return nil, coreerrors.WrapError(err, "failed to fetch feed")
	}
	defer resp.Body().Close()

	if resp.StatusCode() != 200 {
		return nil, &coreerrors.ExternalAPIError{
			StatusCode: resp.StatusCode(),
			Message:    "feed returned non-200 status code",
			API:        feed.URL,
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body(), s.opts.MaxFeedBytes))
	if err != nil {
		return nil, coreerrors.WrapError(err, "failed to read feed")
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, errors.New("empty feed content")
	}

	parsed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed %s: %w", feed.URL, err)
	}

	items := convertFeed(feed, parsed, s.opts.MaxItemsPerFeed, s.now())
	s.deps.Logger.Debug("Feed fetched", map[string]interface{}{
		"feed_id": feed.ID,
		"items":   len(items),
	})
	return items, nil
}

// Refresh fetches all enabled feeds and rebuilds the article list.
// Concurrent calls share a single in-flight refresh.
func (s *Service) Refresh(ctx context.Context, force bool) (*State, error) {
	s.flightMu.Lock()
	if call := s.flight; call != nil {
		s.flightMu.Unlock()
		select {
		case <-call.done:
			return call.state, call.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	call := &refreshCall{done: make(chan struct{})}
	s.flight = call
	s.flightMu.Unlock()

	call.state, call.err = s.refresh(ctx, force)

	s.flightMu.Lock()
	s.flight = nil
	s.flightMu.Unlock()
	close(call.done)

	return call.state, call.err
}

func (s *Service) refresh(ctx context.Context, force bool) (*State, error) {
	start := s.now()

	feeds, err := s.prefs.EnabledFeeds(ctx)
	if err != nil {
		return nil, coreerrors.WrapError(err, "failed to load feeds")
	}

	results := s.fetchAll(ctx, feeds, force)

	feedErrors := make(map[string]string)
	perFeed := make([][]domain.NewsItem, len(results))
	for i, r := range results {
		if r.err != nil {
			feedErrors[feeds[i].ID] = r.err.Error()
			s.deps.Logger.Error("Failed to refresh feed", map[string]interface{}{
				"feed_id": feeds[i].ID,
				"url":     feeds[i].URL,
				"error":   r.err.Error(),
			})
			continue
		}
		perFeed[i] = r.items
	}

	items := mergeItems(perFeed)

	marks, err := s.prefs.BookmarkSet(ctx)
	if err != nil {
		return nil, coreerrors.WrapError(err, "failed to load bookmarks")
	}

	s.mu.RLock()
	previous := s.state.Items
	s.mu.RUnlock()
	carryOver(items, previous)

	items, refreshed := reconcileBookmarks(items, marks)
	sortItems(items)

	state := &State{
		Items:       items,
		RefreshedAt: s.now().UTC(),
		FeedErrors:  feedErrors,
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return state, ctxErr
	}

	if err := s.prefs.SaveBookmarks(ctx, refreshed); err != nil {
		s.deps.Logger.Warn("Failed to refresh bookmark snapshots", map[string]interface{}{
			"error": err.Error(),
		})
	}
	if err := s.prefs.SetLastRefresh(ctx, state.RefreshedAt); err != nil {
		s.deps.Logger.Warn("Failed to record refresh time", map[string]interface{}{
			"error": err.Error(),
		})
	}

	s.mu.Lock()
	s.state = *state
	s.loaded = true
	s.mu.Unlock()
	s.saveSnapshot(ctx, state)

	s.deps.Logger.Info("Refresh complete", map[string]interface{}{
		"feeds":       len(feeds),
		"failed":      len(feedErrors),
		"items":       len(items),
		"force":       force,
		"duration_ms": s.now().Sub(start).Milliseconds(),
	})

	s.enqueueThumbnails(ctx, items)

	return state, nil
}

type fetchResult struct {
	items []domain.NewsItem
	err   error
}

// fetchAll fetches feeds concurrently; results are in feed order
func (s *Service) fetchAll(ctx context.Context, feeds []domain.Feed, force bool) []fetchResult {
	results := make([]fetchResult, len(feeds))

	// Use semaphore to limit concurrent fetches
	semaphore := make(chan struct{}, s.opts.Concurrency)
	var wg sync.WaitGroup

	for i, feed := range feeds {
		wg.Add(1)
		go func(i int, feed domain.Feed) {
			defer wg.Done()

			select {
			case semaphore <- struct{}{}:
				defer func() { <-semaphore }()
			case <-ctx.Done():
				results[i] = fetchResult{err: ctx.Err()}
				return
			}

			items, err := s.fetchFeed(ctx, feed, force)
			results[i] = fetchResult{items: items, err: err}
		}(i, feed)
	}

	wg.Wait()
	return results
}

// State returns the current reader state, refreshing on first use
func (s *Service) State(ctx context.Context) (*State, error) {
	if state, ok := s.current(); ok {
		return state, nil
	}

	if snapshot, ok := s.loadSnapshot(ctx); ok {
		s.mu.Lock()
		if !s.loaded {
			s.state = *snapshot
			s.loaded = true
		}
		s.mu.Unlock()
		state, _ := s.current()
		return state, nil
	}

	return s.Refresh(ctx, false)
}

// current returns a copy of the in-memory state
func (s *Service) current() (*State, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.loaded {
		return nil, false
	}

	state := State{
		Items:       append([]domain.NewsItem(nil), s.state.Items...),
		RefreshedAt: s.state.RefreshedAt,
		Refreshing:  s.IsRefreshing(),
	}
	if len(s.state.FeedErrors) > 0 {
		state.FeedErrors = make(map[string]string, len(s.state.FeedErrors))
		for k, v := range s.state.FeedErrors {
			state.FeedErrors[k] = v
		}
	}
	return &state, true
}

// IsRefreshing reports whether a refresh is in flight
func (s *Service) IsRefreshing() bool {
	s.flightMu.Lock()
	defer s.flightMu.Unlock()
	return s.flight != nil
}

// GetItem looks an item up in the current list, then in the bookmarks
func (s *Service) GetItem(ctx context.Context, id string) (*domain.NewsItem, error) {
	state, err := s.State(ctx)
	if err != nil && state == nil {
		return nil, err
	}
	if state != nil {
		for i := range state.Items {
			if state.Items[i].ID == id {
				return &state.Items[i], nil
			}
		}
	}

	marks, err := s.prefs.BookmarkSet(ctx)
	if err != nil {
		return nil, err
	}
	if item, ok := marks[id]; ok {
		return &item, nil
	}

	return nil, &coreerrors.NotFoundError{Resource: "news item", ID: id}
}

// ToggleBookmark flips an item's bookmark and returns the new state
func (s *Service) ToggleBookmark(ctx context.Context, id string) (bool, error) {
	item, err := s.GetItem(ctx, id)
	if err != nil {
		return false, err
	}

	// Held across the store and list updates so the list matches the last toggle
	s.bookmarkMu.Lock()
	defer s.bookmarkMu.Unlock()

	bookmarked, err := s.prefs.ToggleBookmark(ctx, *item)
	if err != nil {
		return false, err
	}

	s.updateItems(ctx, func(it *domain.NewsItem) bool {
		if it.ID != id {
			return false
		}
		it.Bookmarked = bookmarked
		return true
	})

	return bookmarked, nil
}

// AttachSummary stores a generated summary on the item in the current list
func (s *Service) AttachSummary(ctx context.Context, id, summary string) {
	s.updateItems(ctx, func(it *domain.NewsItem) bool {
		if it.ID != id || it.Summary == summary {
			return false
		}
		it.Summary = summary
		return true
	})
}

// updateItems applies fn to every loaded item and persists the snapshot if any changed
func (s *Service) updateItems(ctx context.Context, fn func(*domain.NewsItem) bool) {
	s.mu.Lock()
	if !s.loaded {
		s.mu.Unlock()
		return
	}

	changed := false
	for i := range s.state.Items {
		if fn(&s.state.Items[i]) {
			changed = true
		}
	}
	var snapshot State
	if changed {
		snapshot = s.state
		snapshot.Items = append([]domain.NewsItem(nil), s.state.Items...)
	}
	s.mu.Unlock()

	if changed {
		s.saveSnapshot(ctx, &snapshot)
	}
}

// enqueueThumbnails asks the thumbnail queue for images of items that lack one
func (s *Service) enqueueThumbnails(ctx context.Context, items []domain.NewsItem) {
	if s.opts.Thumbnails == nil {
		return
	}

	links := make([]string, 0)
	seen := make(map[string]bool)
	for _, item := range items {
		if item.ImageURL == "" && item.Link != "" && !seen[item.Link] {
			seen[item.Link] = true
			links = append(links, item.Link)
		}
	}
	if len(links) == 0 {
		return
	}

	err := s.opts.Thumbnails.Enqueue(ctx, links, func(images map[string]string) {
		s.applyThumbnails(images)
	})
	if err != nil {
		s.deps.Logger.Warn("Thumbnail lookup not queued", map[string]interface{}{
			"links": len(links),
			"error": err.Error(),
		})
	}
}

// applyThumbnails fills in images found in the background
func (s *Service) applyThumbnails(images map[string]string) {
	if len(images) == 0 {
		return
	}

	// The job outlives the refresh request
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s.updateItems(ctx, func(it *domain.NewsItem) bool {
		if it.ImageURL != "" {
			return false
		}
		img, ok := images[it.Link]
		if !ok {
			return false
		}
		it.ImageURL = img
		return true
	})
}

func (s *Service) cachedItems(ctx context.Context, key string) ([]domain.NewsItem, bool) {
	if s.deps.Cache == nil {
		return nil, false
	}

	data, err := s.deps.Cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, interfaces.ErrCacheMiss) {
			s.deps.Logger.Warn("Cache read failed", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
		}
		return nil, false
	}

	var items []domain.NewsItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, false
	}
	return items, true
}

func (s *Service) cacheItems(ctx context.Context, key string, items []domain.NewsItem, ttl time.Duration) {
	if s.deps.Cache == nil {
		return
	}

	data, err := json.Marshal(items)
	if err != nil {
		return
	}
	if err := s.deps.Cache.Set(ctx, key, data, ttl); err != nil {
		s.deps.Logger.Warn("Cache write failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
}

func (s *Service) loadSnapshot(ctx context.Context) (*State, bool) {
	if s.deps.Cache == nil {
		return nil, false
	}

	data, err := s.deps.Cache.Get(ctx, snapshotKey)
	if err != nil {
		return nil, false
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		s.deps.Logger.Warn("Discarding unreadable snapshot", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, false
	}
	state.Refreshing = false
	return &state, true
}

func (s *Service) saveSnapshot(ctx context.Context, state *State) {
	if s.deps.Cache == nil {
		return
	}

	data, err := json.Marshal(state)
	if err != nil {
		return
	}
	if err := s.deps.Cache.Set(ctx, snapshotKey, data, 0); err != nil {
		s.deps.Logger.Warn("Failed to store snapshot", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
