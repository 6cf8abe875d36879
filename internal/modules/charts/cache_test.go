package charts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageCacheRoundTrip(t *testing.T) {
	c := newImageCache()

	c.set("run-1", []byte{1, 2, 3})
	img, ok := c.get("run-1")
	require.True(t, ok)
	assert.Equal(t, []byte{1, 2, 3}, img)

	// Returned bytes are a copy, not an alias of the cached entry.
	img[0] = 99
	again, ok := c.get("run-1")
	require.True(t, ok)
	assert.Equal(t, []byte{1, 2, 3}, again)
}

func TestImageCacheExpiry(t *testing.T) {
	c := newImageCache()
	c.entries["stale"] = cacheEntry{
		createdAt: time.Now().Add(-2 * imageCacheTTL),
		image:     []byte{1},
	}

	_, ok := c.get("stale")
	assert.False(t, ok)
	assert.NotContains(t, c.entries, "stale")
}

func TestImageCacheSweepsOnWrite(t *testing.T) {
	c := newImageCache()

	// Each run caches under fresh keys, so expired entries from earlier
	// runs must not survive a later write.
	for _, key := range []string{"frontier-old", "pie-old-a", "pie-old-b"} {
		c.entries[key] = cacheEntry{
			createdAt: time.Now().Add(-2 * imageCacheTTL),
			image:     []byte{1},
		}
	}

	c.set("frontier-new", []byte{2})

	assert.Len(t, c.entries, 1)
	assert.Contains(t, c.entries, "frontier-new")
}
