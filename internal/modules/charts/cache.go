package charts

import (
	"sync"
	"time"
)

const imageCacheTTL = 60 * time.Second

type cacheEntry struct {
	createdAt time.Time
	image     []byte
}

// imageCache is a small TTL cache so repeated renders of the same run
// (results page reloads) skip rasterization.
type imageCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
}

func newImageCache() *imageCache {
	return &imageCache{entries: map[string]cacheEntry{}}
}

func (c *imageCache) get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if entry, ok := c.entries[key]; ok {
		if time.Now().Before(entry.createdAt.Add(imageCacheTTL)) {
			img := make([]byte, len(entry.image))
			copy(img, entry.image)
			return img, true
		}
		delete(c.entries, key)
	}
	return nil, false
}

func (c *imageCache) set(key string, img []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Keys carry run IDs, so an expired entry is never requested again
	// and lazy expiry in get alone would leak. Sweep on write.
	now := time.Now()
	for k, entry := range c.entries {
		if !now.Before(entry.createdAt.Add(imageCacheTTL)) {
			delete(c.entries, k)
		}
	}
	c.entries[key] = cacheEntry{createdAt: now, image: img}
}
