// Package metacache is a small bbolt-backed TTL cache for single-video metadata.
package metacache

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
	"ytdeck/internal/domain/consts"
	"ytdeck/internal/domain/logger"
	"ytdeck/internal/models"

	bolt "go.etcd.io/bbolt"
)

var bucketVideos = []byte("videos")

// entry is the stored form of one cached video.
type entry struct {
	Item      models.ContentItem `json:"item"`
	ExpiresAt time.Time          `json:"expiresAt"`
}

// Cache holds video metadata until it expires. A nil or disabled Cache misses every lookup.
type Cache struct {
	db  *bolt.DB
	ttl time.Duration
	now func() time.Time
}

// Open opens or creates the cache file at path. A ttl of zero or less returns a disabled cache.
func Open(path string, ttl time.Duration) (*Cache, error) {
	if ttl <= 0 {
		logger.Pl.D(1, "Metadata cache disabled")
		return &Cache{}, nil
	}

	db, err := bolt.Open(path, consts.PermsCacheFile, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open metadata cache %q: %w", path, err)
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketVideos)
		return err
	}); err != nil {
		return nil, errors.Join(fmt.Errorf("create cache bucket: %w", err), db.Close())
	}
	return &Cache{db: db, ttl: ttl, now: time.Now}, nil
}

// Enabled reports whether lookups can ever hit.
func (c *Cache) Enabled() bool {
	return c != nil && c.db != nil
}

// Get returns the cached item for videoID if present and fresh.
func (c *Cache) Get(videoID string) (models.ContentItem, bool) {
	if !c.Enabled() {
		return models.ContentItem{}, false
	}

	var data []byte
	if err := c.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucketVideos).Get([]byte(videoID)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	}); err != nil || data == nil {
		return models.ContentItem{}, false
	}

	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		logger.Pl.D(1, "Dropping unreadable cache entry for %q: %v", videoID, err)
		c.delete(videoID)
		return models.ContentItem{}, false
	}
	if !c.now().Before(e.ExpiresAt) {
		return models.ContentItem{}, false
	}
	return e.Item, true
}

// Put stores item under its ID.
func (c *Cache) Put(item models.ContentItem) error {
	if !c.Enabled() || item.ID == "" {
		return nil
	}
	data, err := json.Marshal(entry{Item: item, ExpiresAt: c.now().Add(c.ttl)})
	if err != nil {
		return err
	}
	return c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketVideos).Put([]byte(item.ID), data)
	})
}

// Purge removes expired entries and returns how many were dropped.
func (c *Cache) Purge() (int, error) {
	if !c.Enabled() {
		return 0, nil
	}
	now := c.now()
	removed := 0
	err := c.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketVideos)
		var stale [][]byte
		if err := b.ForEach(func(k, v []byte) error {
			var e entry
			if json.Unmarshal(v, &e) != nil || !now.Before(e.ExpiresAt) {
				stale = append(stale, append([]byte(nil), k...))
			}
			return nil
		}); err != nil {
			return err
		}
		for _, k := range stale {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		removed = len(stale)
		return nil
	})
	return removed, err
}

// Close closes the cache file.
func (c *Cache) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.db.Close()
}

func (c *Cache) delete(videoID string) {
	if err := c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketVideos).Delete([]byte(videoID))
	}); err != nil {
		logger.Pl.D(1, "Failed to delete cache entry %q: %v", videoID, err)
	}
}
