// mapquery/nearest.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package mapquery

import (
	"github.com/skychart/mapquery/aviation"
	"github.com/skychart/mapquery/layer"
	"github.com/skychart/mapquery/math"
	"github.com/skychart/mapquery/util"
)

// CoordinateConverter projects positions to the screen; visible is false
// for positions outside of the current view.
type CoordinateConverter interface {
	WorldToScreen(p math.Point2LL) (x, y int, visible bool)
}

var _ CoordinateConverter = math.ViewportProjection{}

// hits collects objects of one kind ordered by screen distance; objects
// at the same distance stay in the order they were found.
type hits[T any] struct {
	items []hit[T]
}

type hit[T any] struct {
	v    T
	dist int
}

func (h *hits[T]) add(v T, dist int) {
	h.items = util.InsertSorted(h.items, hit[T]{v: v, dist: dist}, func(a, b hit[T]) bool { return a.dist < b.dist })
}

func (h *hits[T]) values() []T {
	return util.MapSlice(h.items, func(h hit[T]) T { return h.v })
}

// screenDistance returns the Manhattan distance between p's screen
// position and (x, y) and whether it is visible and within maxDistance.
func screenDistance(conv CoordinateConverter, p math.Point2LL, x, y, maxDistance int) (int, bool) {
	sx, sy, visible := conv.WorldToScreen(p)
	if !visible {
		return 0, false
	}
	d := math.ManhattanDistance(sx, sy, x, y)
	return d, d < maxDistance
}

// nearest tests the items from last to first, which is the reverse of the
// drawing order so that objects drawn on top are found first.
func nearest[T any](conv CoordinateConverter, items []T, position func(T) math.Point2LL, accept func(T) bool,
	x, y, maxDistance int) []T {
	var h hits[T]
	for i := len(items) - 1; i >= 0; i-- {
		v := items[i]
		if d, ok := screenDistance(conv, position(v), x, y, maxDistance); ok && accept(v) {
			h.add(v, d)
		}
	}
	return h.values()
}

// NearestObjects returns the cached objects that are shown at the layer
// and have a screen position within maxDistance pixels of (x, y), the
// closest ones first. types selects the kinds of objects; with
// airportDiagram set, towers, parking spots and helipads of all cached
// airports are considered as well. The database is never queried.
func (mq *MapQuery) NearestObjects(conv CoordinateConverter, l layer.Layer, airportDiagram bool, types aviation.ObjectTypes,
	x, y, maxDistance int) *aviation.SearchResult {
	r := aviation.NewSearchResult()

	if l.Airport && types&aviation.TypeAirport != 0 {
		airports := mq.airportCache.Items()
		r.Airports = nearest(conv, airports, func(a aviation.Airport) math.Point2LL { return a.Position },
			func(a aviation.Airport) bool { return a.IsVisible(types) && r.AddAirportID(a.ID) }, x, y, maxDistance)

		if airportDiagram {
			r.Towers = nearest(conv, airports, func(a aviation.Airport) math.Point2LL { return a.TowerPosition },
				func(a aviation.Airport) bool { return !a.TowerPosition.IsZero() && a.IsVisible(types) }, x, y, maxDistance)
		}
	}

	if l.Vor && types&aviation.TypeVor != 0 {
		r.Vors = nearest(conv, mq.vorCache.Items(), func(v aviation.Vor) math.Point2LL { return v.Position },
			func(v aviation.Vor) bool { return r.AddVorID(v.ID) }, x, y, maxDistance)
	}

	if l.Ndb && types&aviation.TypeNdb != 0 {
		r.Ndbs = nearest(conv, mq.ndbCache.Items(), func(n aviation.Ndb) math.Point2LL { return n.Position },
			func(n aviation.Ndb) bool { return r.AddNdbID(n.ID) }, x, y, maxDistance)
	}

	showWaypoint := func(w aviation.Waypoint) bool {
		if l.Waypoint && types&aviation.TypeWaypoint != 0 {
			return true
		}
		return l.AirwayWaypoint &&
			((types&aviation.TypeAirwayV != 0 && w.HasVictorAirways()) ||
				(types&aviation.TypeAirwayJ != 0 && w.HasJetAirways()))
	}
	r.Waypoints = nearest(conv, mq.waypointCache.Items(), func(w aviation.Waypoint) math.Point2LL { return w.Position },
		func(w aviation.Waypoint) bool { return showWaypoint(w) && r.AddWaypointID(w.ID) }, x, y, maxDistance)

	if l.Marker && types&aviation.TypeMarker != 0 {
		r.Markers = nearest(conv, mq.markerCache.Items(), func(m aviation.Marker) math.Point2LL { return m.Position },
			func(aviation.Marker) bool { return true }, x, y, maxDistance)
	}

	if l.Ils && types&aviation.TypeIls != 0 {
		r.Ils = nearest(conv, mq.ilsCache.Items(), func(i aviation.Ils) math.Point2LL { return i.Position },
			func(aviation.Ils) bool { return true }, x, y, maxDistance)
	}

	if airportDiagram {
		if types&aviation.TypeParking != 0 {
			var h hits[aviation.Parking]
			for _, id := range mq.parkingCache.Keys() {
				parkings, _ := mq.parkingCache.Peek(id)
				for i := len(parkings) - 1; i >= 0; i-- {
					if d, ok := screenDistance(conv, parkings[i].Position, x, y, maxDistance); ok {
						h.add(parkings[i], d)
					}
				}
			}
			r.Parkings = h.values()
		}

		if types&aviation.TypeHelipad != 0 {
			var h hits[aviation.Helipad]
			for _, id := range mq.helipadCache.Keys() {
				helipads, _ := mq.helipadCache.Peek(id)
				for i := len(helipads) - 1; i >= 0; i-- {
					if d, ok := screenDistance(conv, helipads[i].Position, x, y, maxDistance); ok {
						h.add(helipads[i], d)
					}
				}
			}
			r.Helipads = h.values()
		}
	}

	return r
}
