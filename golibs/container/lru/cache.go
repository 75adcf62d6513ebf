// Copyright 2023 The acquirecloud Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package lru

import (
	"fmt"
	"sync"

	"github.com/solarisdb/lrucache/golibs/errors"
	"github.com/solarisdb/lrucache/golibs/logging"
)

type (
	// Cache implements container with limited size capacity and LRU (Least Recently Used)
	// pull out discipline. All the methods are safe for concurrent use.
	//
	// The eviction hook (see WithOnEvict) is called with the cache lock held. The hook
	// must be fast and it must never call the same Cache, otherwise it will deadlock.
	Cache[K comparable, V any] struct {
		lock     sync.Mutex
		maxSize  int
		index    map[K]int
		items    recencyList[K, V]
		onEvictF OnEvictF[V]
		log      logging.Logger
		stats    Stats
	}

	// OnEvictF is called for every value pulled out of the cache because of the capacity
	// limit. It is never called for the values dropped by Clear or Remove.
	OnEvictF[V any] func(v V)

	// Option allows to tune the Cache in NewCache
	Option[K comparable, V any] func(c *Cache[K, V])
)

// DefaultCacheSize is the capacity used by NewDefaultCache
const DefaultCacheSize = 4096

// WithOnEvict sets the eviction hook. nil hook is allowed and means no notification.
func WithOnEvict[K comparable, V any](f OnEvictF[V]) Option[K, V] {
	return func(c *Cache[K, V]) {
		c.onEvictF = f
	}
}

// WithLogger sets the logger for the cache
func WithLogger[K comparable, V any](log logging.Logger) Option[K, V] {
	return func(c *Cache[K, V]) {
		if log != nil {
			c.log = log
		}
	}
}

// NewCache creates new Cache object which keeps up to maxSize entries. The maxSize must be
// positive, otherwise errors.ErrInvalid is returned.
func NewCache[K comparable, V any](maxSize int, opts ...Option[K, V]) (*Cache[K, V], error) {
	if maxSize < 1 {
		return nil, fmt.Errorf("NewCache(): the maxSize=%d, but it cannot be less than 1: %w", maxSize, errors.ErrInvalid)
	}
	c := new(Cache[K, V])
	c.maxSize = maxSize
	c.index = make(map[K]int, min(maxSize, DefaultCacheSize))
	c.items = newRecencyList[K, V](min(maxSize, DefaultCacheSize))
	c.log = logging.NewLogger("lru.Cache")
	for _, opt := range opts {
		opt(c)
	}
	c.log.Debugf("new cache created, maxSize=%d", maxSize)
	return c, nil
}

// NewDefaultCache creates the Cache with DefaultCacheSize capacity
func NewDefaultCache[K comparable, V any](opts ...Option[K, V]) *Cache[K, V] {
	c, _ := NewCache[K, V](DefaultCacheSize, opts...)
	return c
}

// Lookup returns the value for the key k and makes it the most recently used one.
// The second result is false if the key is not in the cache, the order is not
// changed this case.
func (c *Cache[K, V]) Lookup(k K) (V, bool) {
	c.lock.Lock()
	defer c.lock.Unlock()

	idx, ok := c.index[k]
	if !ok {
		c.stats.Misses++
		return *new(V), false
	}
	c.stats.Hits++
	c.items.moveToFront(idx)
	return c.items.get(idx).val, true
}

// Peek returns the value for the key k without touching it
func (c *Cache[K, V]) Peek(k K) (V, bool) {
	c.lock.Lock()
	defer c.lock.Unlock()

	if idx, ok := c.index[k]; ok {
		return c.items.get(idx).val, true
	}
	return *new(V), false
}

// Replace adds or replaces the value for the key k. If the key was in the cache, its value is
// replaced, the key becomes the most recently used and the previous value is returned with true.
// For the new key, the least recently used entries are evicted until there is room for
// one more, then the key is added as the most recently used one.
//
// If the eviction hook panics, the panic is propagated to the caller. The evicted entry
// is already removed this case, but the new one is not added.
func (c *Cache[K, V]) Replace(k K, v V) (V, bool) {
	c.lock.Lock()
	defer c.lock.Unlock()

	if idx, ok := c.index[k]; ok {
		n := c.items.get(idx)
		old := n.val
		n.val = v
		c.items.moveToFront(idx)
		c.stats.Updates++
		return old, true
	}

	c.evictIfNeeded()
	c.index[k] = c.items.pushFront(k, v)
	c.stats.Inserts++
	return *new(V), false
}

// Add adds or replaces the value for the key k. See Replace.
func (c *Cache[K, V]) Add(k K, v V) {
	c.Replace(k, v)
}

// Remove deletes the key k from the cache and returns its value. The eviction hook
// is not called for the removed value.
func (c *Cache[K, V]) Remove(k K) (V, bool) {
	c.lock.Lock()
	defer c.lock.Unlock()

	idx, ok := c.index[k]
	if !ok {
		return *new(V), false
	}
	delete(c.index, k)
	_, v := c.items.remove(idx)
	c.stats.Removes++
	return v, true
}

// Count returns the number of entries in the cache
func (c *Cache[K, V]) Count() int {
	c.lock.Lock()
	defer c.lock.Unlock()
	return len(c.index)
}

// Cap returns the maximum number of entries the cache may keep
func (c *Cache[K, V]) Cap() int {
	return c.maxSize
}

// Keys returns the cache keys ordered from the most recently used to the least recently used
func (c *Cache[K, V]) Keys() []K {
	c.lock.Lock()
	defer c.lock.Unlock()

	res := make([]K, 0, c.items.len())
	c.items.forEach(func(n *node[K, V]) bool {
		res = append(res, n.key)
		return true
	})
	return res
}

// Clear drops all the entries. It is not an eviction, so the eviction hook is not called.
func (c *Cache[K, V]) Clear() {
	c.lock.Lock()
	defer c.lock.Unlock()

	n := len(c.index)
	clear(c.index)
	c.items.reset()
	c.stats.Clears++
	c.log.Debugf("cleared %d entries", n)
}

// Stats returns the cache counters snapshot
func (c *Cache[K, V]) Stats() Stats {
	c.lock.Lock()
	defer c.lock.Unlock()
	s := c.stats
	s.Items = len(c.index)
	return s
}

func (c *Cache[K, V]) String() string {
	return fmt.Sprintf("{maxSize=%d, %s}", c.maxSize, c.Stats())
}

// evictIfNeeded must be called with the lock held. The entry is detached from the list
// and the index before the hook is called, so the hook never sees it in the cache.
func (c *Cache[K, V]) evictIfNeeded() {
	for len(c.index) >= c.maxSize {
		k, v := c.items.remove(c.items.back())
		delete(c.index, k)
		c.stats.Evictions++
		if c.onEvictF != nil {
			c.onEvictF(v)
		}
	}
}
