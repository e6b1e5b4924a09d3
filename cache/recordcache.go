// cache/recordcache.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package cache

type CacheState int

const (
	NotCached CacheState = iota
	CheckedEmpty
	Present
)

func (s CacheState) String() string {
	return [...]string{"not cached", "checked empty", "present"}[s]
}

type recordEntry[V any] struct {
	value   V
	present bool
}

// RecordCache is a KeyedCache for single lookups that may find nothing;
// a lookup that found nothing is remembered so it isn't repeated.
type RecordCache[K comparable, V any] struct {
	kc *KeyedCache[K, recordEntry[V]]
}

func NewRecordCache[K comparable, V any](maxCost int) *RecordCache[K, V] {
	return &RecordCache[K, V]{kc: NewKeyedCache[K, recordEntry[V]](maxCost)}
}

func (c *RecordCache[K, V]) State(key K) CacheState {
	e, ok := c.kc.Peek(key)
	switch {
	case !ok:
		return NotCached
	case e.present:
		return Present
	default:
		return CheckedEmpty
	}
}

// Get returns the cached value for key, calling load if the key hasn't
// been looked up yet. load returns false if there is no value for key.
func (c *RecordCache[K, V]) Get(key K, load func(K) (V, bool, error)) (V, bool, error) {
	e, err := c.kc.Get(key, func(k K) (recordEntry[V], error) {
		v, ok, err := load(k)
		return recordEntry[V]{value: v, present: ok}, err
	})
	return e.value, e.present, err
}

func (c *RecordCache[K, V]) Len() int { return c.kc.Len() }

func (c *RecordCache[K, V]) Purge() { c.kc.Purge() }
