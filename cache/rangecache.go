// cache/rangecache.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package cache provides the caches that sit between the map display and
// the scenery database: a cache for the objects in a geographic region
// and a bounded cache for objects looked up by id.
package cache

import (
	"github.com/skychart/mapquery/layer"
	"github.com/skychart/mapquery/math"
)

// SameLayerFunc reports whether two layers result in the same query for
// one kind of object.
type SameLayerFunc func(a, b layer.Layer) bool

// LoadFunc queries all objects in the given box.
type LoadFunc[T any] func(box math.LatLonBox) ([]T, error)

// RangeCache holds the objects of one kind inside the most recently
// queried region. The cached region is larger than the requested one so
// that small pans and zooms don't require a new query.
type RangeCache[T any] struct {
	items []T
	box   math.LatLonBox
	layer layer.Layer
	valid bool

	same   SameLayerFunc
	factor float64
}

// NewRangeCache returns an empty cache; factor is the fraction of the
// requested box's width and height by which the cached region is
// inflated on each side.
func NewRangeCache[T any](same SameLayerFunc, factor float64) *RangeCache[T] {
	return &RangeCache[T]{same: same, factor: factor}
}

// IsValid reports whether a request for box at layer l can be answered
// from the cache. The stored region never extends past the query limits,
// so the request is clamped to them as well.
func (c *RangeCache[T]) IsValid(box math.LatLonBox, l layer.Layer) bool {
	return c.valid && c.box.Contains(box.ClampToQueryLimits()) && c.same(c.layer, l)
}

// Fetch returns the objects for the given box and layer. On a miss with
// lazy set, the current contents are returned with stale set and load is
// not called; otherwise load replaces the cache contents. If load fails,
// the cache is left empty and the error is returned.
func (c *RangeCache[T]) Fetch(box math.LatLonBox, l layer.Layer, lazy bool, load LoadFunc[T]) (items []T, stale bool, err error) {
	if c.IsValid(box, l) {
		return c.items, false, nil
	}
	if lazy {
		return c.items, true, nil
	}

	c.Clear()
	if items, err = load(box); err != nil {
		return nil, false, err
	}

	c.items = items
	c.box = box.Inflate(box.Width()*c.factor, box.Height()*c.factor)
	c.layer = l
	c.valid = true
	return c.items, false, nil
}

// Items returns the current contents without checking validity.
func (c *RangeCache[T]) Items() []T { return c.items }

// Box returns the region the cache was last filled for.
func (c *RangeCache[T]) Box() math.LatLonBox { return c.box }

// Invalidate forces the next non-lazy Fetch to reload; until then lazy
// requests still get the current contents.
func (c *RangeCache[T]) Invalidate() { c.valid = false }

func (c *RangeCache[T]) Clear() {
	c.items = nil
	c.box = math.LatLonBox{}
	c.valid = false
}

// FilteredRangeCache is a RangeCache whose contents also depend on a
// filter value; changing the filter empties the cache regardless of the
// region.
type FilteredRangeCache[T any, F comparable] struct {
	RangeCache[T]
	filter F
}

func NewFilteredRangeCache[T any, F comparable](same SameLayerFunc, factor float64) *FilteredRangeCache[T, F] {
	return &FilteredRangeCache[T, F]{RangeCache: RangeCache[T]{same: same, factor: factor}}
}

func (c *FilteredRangeCache[T, F]) Fetch(box math.LatLonBox, l layer.Layer, filter F, lazy bool,
	load LoadFunc[T]) ([]T, bool, error) {
	if filter != c.filter {
		c.Clear()
		c.filter = filter
	}
	return c.RangeCache.Fetch(box, l, lazy, load)
}
