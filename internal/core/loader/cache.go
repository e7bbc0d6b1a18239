package loader

import (
	"sync"

	"github.com/cespare/xxhash/v2"

	"github.com/zeusync/behave/internal/core/bt"
)

// Cache memoizes parsed descriptors by content hash, so many agents built from
// the same source text share one parse. Returned descriptors must be treated
// as read-only.
type Cache struct {
	mu      sync.RWMutex
	entries map[uint64]*bt.Descriptor
}

func NewCache() *Cache {
	return &Cache{entries: make(map[uint64]*bt.Descriptor)}
}

func cacheKey(format string, src []byte) uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(format)
	_, _ = d.Write([]byte{0})
	_, _ = d.Write(src)
	return d.Sum64()
}

// Parse returns the cached descriptor for (f, src), parsing on a miss.
// Failed parses are not cached.
func (c *Cache) Parse(f Format, src []byte) (*bt.Descriptor, error) {
	key := cacheKey(f.Name(), src)

	c.mu.RLock()
	desc, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		return desc, nil
	}

	desc, err := f.Parse(src)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.entries[key] = desc
	c.mu.Unlock()
	return desc, nil
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Parser adapts the cache to bt.Parser for a fixed format.
func (c *Cache) Parser(f Format) bt.Parser {
	return cachedParser{cache: c, format: f}
}

type cachedParser struct {
	cache  *Cache
	format Format
}

func (p cachedParser) Parse(src []byte) (*bt.Descriptor, error) {
	return p.cache.Parse(p.format, src)
}
