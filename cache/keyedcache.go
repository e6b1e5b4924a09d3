// cache/keyedcache.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package cache

import (
	"github.com/hashicorp/golang-lru/v2/simplelru"
	"github.com/skychart/mapquery/math"
)

type keyedEntry[V any] struct {
	value V
	cost  int
}

// KeyedCache is a least-recently-used cache bounded by the total cost of
// its entries. It is not safe for concurrent use.
type KeyedCache[K comparable, V any] struct {
	lru       *simplelru.LRU[K, keyedEntry[V]]
	maxCost   int
	totalCost int
}

func NewKeyedCache[K comparable, V any](maxCost int) *KeyedCache[K, V] {
	c := &KeyedCache[K, V]{maxCost: math.Max(maxCost, 1)}
	// Every entry costs at least 1, so the LRU never holds more than
	// maxCost entries.
	c.lru, _ = simplelru.NewLRU[K, keyedEntry[V]](c.maxCost, func(_ K, e keyedEntry[V]) {
		c.totalCost -= e.cost
	})
	return c
}

// Get returns the value for key, calling load and caching its result if
// key isn't present. Errors from load are returned and nothing is cached.
func (c *KeyedCache[K, V]) Get(key K, load func(K) (V, error)) (V, error) {
	if e, ok := c.lru.Get(key); ok {
		return e.value, nil
	}

	v, err := load(key)
	if err != nil {
		var zero V
		return zero, err
	}
	c.Insert(key, v, 1)
	return v, nil
}

// Insert adds or replaces the value for key. Least recently used entries
// are evicted until the total cost is within the limit; a cost above the
// limit is treated as the limit.
func (c *KeyedCache[K, V]) Insert(key K, v V, cost int) {
	cost = math.Clamp(cost, 1, c.maxCost)
	if old, ok := c.lru.Peek(key); ok {
		c.totalCost -= old.cost
	}
	c.lru.Add(key, keyedEntry[V]{value: v, cost: cost})
	c.totalCost += cost
	c.evict()
}

func (c *KeyedCache[K, V]) evict() {
	for c.totalCost > c.maxCost {
		if _, _, ok := c.lru.RemoveOldest(); !ok {
			break
		}
	}
}

// Peek returns the value for key without updating its recency.
func (c *KeyedCache[K, V]) Peek(key K) (V, bool) {
	e, ok := c.lru.Peek(key)
	return e.value, ok
}

func (c *KeyedCache[K, V]) Contains(key K) bool { return c.lru.Contains(key) }

// Keys returns the keys from the least to the most recently used.
func (c *KeyedCache[K, V]) Keys() []K { return c.lru.Keys() }

func (c *KeyedCache[K, V]) Len() int       { return c.lru.Len() }
func (c *KeyedCache[K, V]) TotalCost() int { return c.totalCost }
func (c *KeyedCache[K, V]) MaxCost() int   { return c.maxCost }

func (c *KeyedCache[K, V]) SetMaxCost(maxCost int) {
	c.maxCost = math.Max(maxCost, 1)
	c.lru.Resize(c.maxCost)
	c.evict()
}

func (c *KeyedCache[K, V]) Remove(key K) bool { return c.lru.Remove(key) }

func (c *KeyedCache[K, V]) Purge() {
	c.lru.Purge()
	c.totalCost = 0
}
