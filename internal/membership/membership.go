// Package membership mirrors the default playlist's contents on the client side.
package membership

import (
	"context"
	"errors"
	"sync"
	"ytdeck/internal/domain/logger"
	"ytdeck/internal/models"
)

// State is the cache's load state.
type State int

// Load states. Loaded and LoadedEmptyOnError are terminal.
const (
	Unloaded State = iota
	Loading
	Loaded
	LoadedEmptyOnError
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case Unloaded:
		return "unloaded"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case LoadedEmptyOnError:
		return "loaded-empty-on-error"
	default:
		return "unknown"
	}
}

// DefaultPlaylist is the default playlist's ID and current members.
type DefaultPlaylist struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	VideoIDs []string `json:"videoIds"`
}

// API is the server surface the cache needs.
type API interface {
	DefaultPlaylist(ctx context.Context) (DefaultPlaylist, error)
	AddItem(ctx context.Context, playlistID string, item models.ContentItem) error
	RemoveItem(ctx context.Context, playlistID, videoID string) error
}

// Cache tracks which videos are in the default playlist.
//
// The first EnsureLoaded triggers a single load shared by all callers. A
// failed load leaves the cache empty for the rest of its lifetime.
type Cache struct {
	api API

	// toggleMu serializes Toggle so a read-then-write on one item never interleaves.
	toggleMu sync.Mutex

	mu         sync.RWMutex
	state      State
	done       chan struct{}
	playlistID string
	members    map[string]struct{}
}

// New returns an unloaded cache.
func New(api API) *Cache {
	return &Cache{
		api:     api,
		members: make(map[string]struct{}),
	}
}

// State returns the current load state.
func (c *Cache) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// EnsureLoaded loads the cache once. Concurrent callers wait on the same load.
//
// Load failures are logged, not returned. A cancelled ctx stops this caller
// waiting but does not cancel the shared load.
func (c *Cache) EnsureLoaded(ctx context.Context) {
	c.mu.Lock()
	switch c.state {
	case Loaded, LoadedEmptyOnError:
		c.mu.Unlock()
		return
	case Loading:
		done := c.done
		c.mu.Unlock()
		select {
		case <-done:
		case <-ctx.Done():
		}
		return
	}
	c.state = Loading
	c.done = make(chan struct{})
	done := c.done
	c.mu.Unlock()

	go c.load(context.WithoutCancel(ctx), done)

	select {
	case <-done:
	case <-ctx.Done():
	}
}

// load fetches the default playlist and settles the terminal state.
func (c *Cache) load(ctx context.Context, done chan struct{}) {
	defer close(done)

	pl, err := c.api.DefaultPlaylist(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		logger.Pl.W("Could not load default playlist, bookmarks will show as empty: %v", err)
		c.state = LoadedEmptyOnError
		return
	}
	c.playlistID = pl.ID
	for _, id := range pl.VideoIDs {
		c.members[id] = struct{}{}
	}
	c.state = Loaded
}

// IsMember reports whether videoID is in the default playlist.
//
// Always false before loading completes. Never blocks on I/O.
func (c *Cache) IsMember(videoID string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.members[videoID]
	return ok
}

// Toggle adds or removes the item and returns the new membership.
//
// The cache changes only after the server confirms. On error the cache is untouched.
// Concurrent toggles run one at a time; IsMember does not wait on them.
func (c *Cache) Toggle(ctx context.Context, item models.ContentItem) (bool, error) {
	if item.ID == "" {
		return false, errors.New("cannot toggle an item without an ID")
	}

	c.toggleMu.Lock()
	defer c.toggleMu.Unlock()

	playlistID, err := c.resolvePlaylistID(ctx)
	if err != nil {
		return c.IsMember(item.ID), err
	}

	if c.IsMember(item.ID) {
		if err := c.api.RemoveItem(ctx, playlistID, item.ID); err != nil {
			return true, err
		}
		c.mu.Lock()
		delete(c.members, item.ID)
		c.mu.Unlock()
		return false, nil
	}

	if err := c.api.AddItem(ctx, playlistID, item); err != nil {
		return false, err
	}
	c.mu.Lock()
	c.members[item.ID] = struct{}{}
	c.mu.Unlock()
	return true, nil
}

// resolvePlaylistID returns the default playlist ID, fetching it if the load failed or never ran.
func (c *Cache) resolvePlaylistID(ctx context.Context) (string, error) {
	c.mu.RLock()
	id := c.playlistID
	c.mu.RUnlock()
	if id != "" {
		return id, nil
	}

	pl, err := c.api.DefaultPlaylist(ctx)
	if err != nil {
		return "", err
	}
	c.mu.Lock()
	if c.playlistID == "" {
		c.playlistID = pl.ID
	}
	id = c.playlistID
	c.mu.Unlock()
	return id, nil
}
