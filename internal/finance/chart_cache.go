package finance

import (
	"sync"
	"time"
)

// imageCache keeps rendered PNGs for a short while so a repeated command
// does not redraw the same chart.
type imageCache struct {
	ttl     time.Duration
	mu      sync.Mutex
	entries map[string]cachedImage
	now     func() time.Time
}

type cachedImage struct {
	expires time.Time
	png     []byte
}

func newImageCache(ttl time.Duration) *imageCache {
	return &imageCache{ttl: ttl, entries: map[string]cachedImage{}, now: time.Now}
}

var chartImages = newImageCache(60 * time.Second)

// get returns a copy of the cached image; callers may modify it.
func (c *imageCache) get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if !c.now().Before(e.expires) {
		delete(c.entries, key)
		return nil, false
	}
	return append([]byte(nil), e.png...), true
}

// put stores img and drops whatever has expired.
func (c *imageCache) put(key string, img []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	for k, e := range c.entries {
		if !now.Before(e.expires) {
			delete(c.entries, k)
		}
	}
	c.entries[key] = cachedImage{expires: now.Add(c.ttl), png: append([]byte(nil), img...)}
}
