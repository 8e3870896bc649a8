package ebitensink

import (
	"image"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
)

// Cache size constants - proactive limits prevent GC spikes from bulk eviction
const (
	imageCacheMaxSize    = 256
	imageCacheTargetSize = 192 // Target after eviction (75% of max)
)

// ImageCache maps CPU-side source images to their GPU copies. Textures,
// sprite frames and the sky are long-lived, so each is uploaded once.
// Keys compare by identity: callers must not mutate a source after use.
type ImageCache struct {
	cache      map[image.Image]*ebiten.Image
	mutex      sync.RWMutex
	cacheOrder []image.Image // insertion order for eviction
}

// NewImageCache creates an empty cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		cache:      make(map[image.Image]*ebiten.Image, imageCacheMaxSize),
		cacheOrder: make([]image.Image, 0, imageCacheMaxSize),
	}
}

// GetOrCreate returns the cached copy of src, creating it with createFunc on
// a miss.
func (c *ImageCache) GetOrCreate(src image.Image, createFunc func(image.Image) *ebiten.Image) *ebiten.Image {
	// First attempt: read lock allows concurrent lookups
	c.mutex.RLock()
	if cached, exists := c.cache[src]; exists {
		c.mutex.RUnlock()
		return cached
	}
	c.mutex.RUnlock()

	created := createFunc(src)

	c.mutex.Lock()
	defer c.mutex.Unlock()

	// Check again in case another goroutine added it while we were creating
	if cached, exists := c.cache[src]; exists {
		return cached
	}

	// Proactive eviction: evict before we exceed max size to avoid large batch deletions
	if len(c.cache) >= imageCacheMaxSize {
		evictCount := len(c.cacheOrder) - imageCacheTargetSize
		if evictCount > 0 && evictCount <= len(c.cacheOrder) {
			for i := 0; i < evictCount; i++ {
				delete(c.cache, c.cacheOrder[i])
			}
			c.cacheOrder = c.cacheOrder[evictCount:]
		}
	}

	c.cache[src] = created
	c.cacheOrder = append(c.cacheOrder, src)
	return created
}

// Len returns the number of cached images.
func (c *ImageCache) Len() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.cache)
}
