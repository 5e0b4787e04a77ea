// Package listcache memoizes parameterized list responses for a bounded
// time window. One slot per resource: only the most recent parameter set
// is kept, so changing params always forces a refetch. Any mutation on a
// resource invalidates its slot unconditionally. This is a deliberate
// simplification, not a general keyed LRU; a keyed variant would turn the
// slot field into a map and nothing else.
package listcache

import (
	"reflect"
	"sync"
	"time"
)

// DefaultTTL bounds how long a cached list stays fresh.
const DefaultTTL = 5 * time.Minute

type slot struct {
	params    any
	value     any
	fetchedAt time.Time
}

// Cache is a per-resource, single-slot, time-boxed response cache. Safe
// for concurrent use.
type Cache struct {
	mu    sync.Mutex
	ttl   time.Duration
	now   func() time.Time
	slots map[string]slot
}

// New constructs a Cache with the given TTL; ttl <= 0 falls back to
// DefaultTTL.
func New(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{ttl: ttl, now: time.Now, slots: map[string]slot{}}
}

// Get returns the cached value for the resource when the stored params
// deep-equal the requested ones and the entry is still inside the TTL
// window.
func (c *Cache) Get(resource string, params any) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.slots[resource]
	if !ok {
		return nil, false
	}
	if c.now().Sub(s.fetchedAt) >= c.ttl {
		delete(c.slots, resource)
		return nil, false
	}
	if !reflect.DeepEqual(s.params, params) {
		return nil, false
	}
	return s.value, true
}

// Put stores a fresh entry for the resource, overwriting any prior slot.
func (c *Cache) Put(resource string, params, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.slots[resource] = slot{params: params, value: value, fetchedAt: c.now()}
}

// Invalidate drops the resource's slot regardless of age. Called after
// every successful create/update/delete on the resource.
func (c *Cache) Invalidate(resource string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.slots, resource)
}
