package service

import (
	"container/list"
	"sync"
	"sync/atomic"
	"time"

	"github.com/guttosm/pos-checkout-service/internal/metrics"
	"github.com/guttosm/pos-checkout-service/internal/service/cache"
)

// ttlCache is a thread-safe LRU cache with TTL expiration, used for
// UOM price lists and batch/serial option lists. Entries expire either
// by age or by LRU eviction at capacity; a background janitor sweeps
// expired entries when the cache fills up.
type ttlCache[V any] struct {
	mu        sync.Mutex
	capacity  int
	ttl       time.Duration
	items     map[string]*list.Element
	order     *list.List // front = most recently used
	stopCh    chan struct{}
	stopOnce  sync.Once
	hits      int64
	misses    int64
	evictions int64
}

type ttlEntry[V any] struct {
	key       string
	value     V
	expiresAt time.Time
}

// newTTLCache creates a cache with the given capacity and TTL and
// starts its cleanup goroutine.
func newTTLCache[V any](capacity int, ttl time.Duration) *ttlCache[V] {
	if capacity < 1 {
		capacity = 1
	}
	c := &ttlCache[V]{
		capacity: capacity,
		ttl:      ttl,
		items:    make(map[string]*list.Element, capacity),
		order:    list.New(),
		stopCh:   make(chan struct{}),
	}
	go c.janitor()
	return c
}

// Get returns the cached value if present and unexpired.
func (c *ttlCache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	el, ok := c.items[key]
	if !ok {
		atomic.AddInt64(&c.misses, 1)
		metrics.RecordCacheOperation("get", "miss")
		return zero, false
	}

	entry := el.Value.(*ttlEntry[V])
	if time.Now().After(entry.expiresAt) {
		c.removeElement(el)
		atomic.AddInt64(&c.misses, 1)
		metrics.RecordCacheOperation("get", "expired")
		return zero, false
	}

	c.order.MoveToFront(el)
	atomic.AddInt64(&c.hits, 1)
	metrics.RecordCacheOperation("get", "hit")
	return entry.value, true
}

// Set stores a value, evicting the least recently used entry when the
// cache is at capacity.
func (c *ttlCache[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		entry := el.Value.(*ttlEntry[V])
		entry.value = value
		entry.expiresAt = time.Now().Add(c.ttl)
		c.order.MoveToFront(el)
		metrics.RecordCacheOperation("set", "update")
		return
	}

	el := c.order.PushFront(&ttlEntry[V]{
		key:       key,
		value:     value,
		expiresAt: time.Now().Add(c.ttl),
	})
	c.items[key] = el

	if len(c.items) > c.capacity {
		if oldest := c.order.Back(); oldest != nil {
			c.removeElement(oldest)
			atomic.AddInt64(&c.evictions, 1)
			metrics.RecordCacheOperation("evict", "capacity")
		}
	}
	metrics.RecordCacheOperation("set", "insert")
}

// Invalidate removes one key.
func (c *ttlCache[V]) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		c.removeElement(el)
		metrics.RecordCacheOperation("invalidate", "success")
	}
}

// Clear drops all entries and resets counters.
func (c *ttlCache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*list.Element, c.capacity)
	c.order.Init()
	atomic.StoreInt64(&c.hits, 0)
	atomic.StoreInt64(&c.misses, 0)
	atomic.StoreInt64(&c.evictions, 0)
}

// Stop shuts down the cleanup goroutine.
func (c *ttlCache[V]) Stop() {
	c.stopOnce.Do(func() { close(c.stopCh) })
}

// Metrics returns current cache counters.
func (c *ttlCache[V]) Metrics() cache.Metrics {
	c.mu.Lock()
	defer c.mu.Unlock()

	return cache.Metrics{
		Hits:      atomic.LoadInt64(&c.hits),
		Misses:    atomic.LoadInt64(&c.misses),
		Evictions: atomic.LoadInt64(&c.evictions),
		Size:      len(c.items),
		Capacity:  c.capacity,
	}
}

// removeElement must be called with the lock held.
func (c *ttlCache[V]) removeElement(el *list.Element) {
	entry := el.Value.(*ttlEntry[V])
	delete(c.items, entry.key)
	c.order.Remove(el)
}

func (c *ttlCache[V]) janitor() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.sweep()
		case <-c.stopCh:
			return
		}
	}
}

// sweep drops expired entries, but only bothers when the cache is more
// than 80% full.
func (c *ttlCache[V]) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.items) <= c.capacity*80/100 {
		return
	}

	now := time.Now()
	for el := c.order.Back(); el != nil; {
		prev := el.Prev()
		if entry := el.Value.(*ttlEntry[V]); now.After(entry.expiresAt) {
			c.removeElement(el)
		}
		el = prev
	}
}
