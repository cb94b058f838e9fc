// Package memory provides an in-process plan cache.
package memory

import (
	"container/list"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/felixgeelhaar/goap-go/domain/cache"
)

// item is one cached plan. A zero deadline never expires.
type item struct {
	key       string
	value     []byte
	deadline time.Time
}

func (e *item) expired(now time.Time) bool {
	if e.deadline.IsZero() {
		return false
	}
	return now.After(e.deadline)
}

// Cache keeps encoded plans in process memory. Entries expire lazily on
// access and the least recently used entry is evicted once MaxSize is
// reached.
type Cache struct {
	entries   map[string]*list.Element
	order     *list.List // front is most recently used
	maxSize   int
	now       func() time.Time
	mu        sync.Mutex
	hits      int64
	misses    int64
	evictions int64
}

type CacheOption func(*Cache)

// WithMaxSize sets the maximum number of entries. Zero means unlimited.
func WithMaxSize(size int) CacheOption {
	return func(c *Cache) {
		c.maxSize = size
	}
}

// WithClock sets the time source used for expiration.
func WithClock(now func() time.Time) CacheOption {
	return func(c *Cache) {
		if now != nil {
			c.now = now
		}
	}
}

// NewCache returns a cache bounded to 1000 entries unless WithMaxSize says
// otherwise.
func NewCache(opts ...CacheOption) *Cache {
	c := &Cache{
		entries: make(map[string]*list.Element),
		order:   list.New(),
		maxSize: 1000,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns a copy of the stored bytes and marks the entry recently used.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[key]
	if !ok {
		c.misses++
		return nil, false, nil
	}

	entry := elem.Value.(*item)
	if entry.expired(c.now()) {
		c.remove(elem)
		c.misses++
		return nil, false, nil
	}

	c.order.MoveToFront(elem)
	c.hits++

	return slices.Clone(entry.value), true, nil
}

// Set stores a value in the cache, evicting the least recently used entry
// when at capacity.
func (c *Cache) Set(ctx context.Context, key string, value []byte, opts cache.SetOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if key == "" {
		return cache.ErrInvalidKey
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	var deadline time.Time
	if opts.TTL > 0 {
		deadline = c.now().Add(opts.TTL)
	}

	if elem, ok := c.entries[key]; ok {
		entry := elem.Value.(*item)
		entry.value = slices.Clone(value)
		entry.deadline = deadline
		c.order.MoveToFront(elem)
		return nil
	}

	for c.maxSize > 0 && len(c.entries) >= c.maxSize {
		c.evictOldest()
	}

	c.entries[key] = c.order.PushFront(&item{
		key:       key,
		value:     slices.Clone(value),
		deadline: deadline,
	})
	return nil
}

func (c *Cache) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		c.remove(elem)
	}
	return nil
}

// Exists checks if a live key exists in the cache. It does not affect
// recency.
func (c *Cache) Exists(ctx context.Context, key string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	return !elem.Value.(*item).expired(c.now()), nil
}

func (c *Cache) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*list.Element)
	c.order.Init()
	return nil
}

func (c *Cache) Stats() cache.Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return cache.Stats{
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
		Size:      int64(len(c.entries)),
		MaxSize:   int64(c.maxSize),
	}
}

// Cleanup removes expired entries and returns how many were removed.
func (c *Cache) Cleanup() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for elem := c.order.Front(); elem != nil; {
		next := elem.Next()
		if elem.Value.(*item).expired(now) {
			c.remove(elem)
			removed++
		}
		elem = next
	}
	return removed
}

// Size counts entries, including expired ones not yet collected.
func (c *Cache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// evictOldest drops the least recently used entry. c.mu must be held.
func (c *Cache) evictOldest() {
	if back := c.order.Back(); back != nil {
		c.remove(back)
		c.evictions++
	}
}

// remove unlinks elem from the map and the recency list. c.mu must be held.
func (c *Cache) remove(elem *list.Element) {
	c.order.Remove(elem)
	delete(c.entries, elem.Value.(*item).key)
}

var (
	_ cache.Cache         = (*Cache)(nil)
	_ cache.StatsProvider = (*Cache)(nil)
)
