// mapquery/range.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package mapquery

import (
	"log/slog"

	"github.com/skychart/mapquery/aviation"
	"github.com/skychart/mapquery/cache"
	"github.com/skychart/mapquery/layer"
	"github.com/skychart/mapquery/math"
	"github.com/skychart/mapquery/util"
)

// All region fetches share the same contract: if the cache can answer
// the request it is returned directly. Otherwise, with lazy set, the
// cached objects are returned as they are with stale set, so that a
// redraw during a drag doesn't wait for the database; without lazy, the
// database is queried and the cache refilled.

func fetchRange[T any](mq *MapQuery, kind string, c *cache.RangeCache[T], box math.LatLonBox, l layer.Layer,
	lazy bool, load cache.LoadFunc[T]) ([]T, bool, error) {
	items, stale, err := c.Fetch(box, l, lazy, func(box math.LatLonBox) ([]T, error) {
		if err := mq.checkInit(); err != nil {
			return nil, err
		}
		items, err := load(box)
		if err != nil {
			return nil, mq.storageError(kind, err)
		}
		mq.lg.Debug("range cache refilled", slog.String("kind", kind), slog.String("box", box.String()),
			slog.Int("count", len(items)))
		return items, nil
	})
	return items, stale, err
}

// Airports returns the airports for the box. With the full data source,
// airports with runways shorter than the layer's minimum are omitted and
// the most important airports come last so that they are drawn on top.
func (mq *MapQuery) Airports(box math.LatLonBox, l layer.Layer, lazy bool) ([]aviation.Airport, bool, error) {
	return fetchRange(mq, "airport", mq.airportCache, box, l, lazy, func(box math.LatLonBox) ([]aviation.Airport, error) {
		if !l.Airport {
			return nil, nil
		}

		switch l.AirportSource {
		case layer.SourceMedium:
			return queryRect(mq, mq.q.airportMediumByRect, box, mq.fill.FillAirportForOverview)
		case layer.SourceLarge:
			return queryRect(mq, mq.q.airportLargeByRect, box, mq.fill.FillAirportForOverview)
		default:
			mq.q.airportByRect.Bind("minlength", l.MinRunwayLength)
			ap, err := queryRect(mq, mq.q.airportByRect, box, mq.fill.FillAirport)
			if err != nil {
				return nil, err
			}
			// Rows come most important first.
			return util.ReverseSlice(ap), nil
		}
	})
}

func (mq *MapQuery) Vors(box math.LatLonBox, l layer.Layer, lazy bool) ([]aviation.Vor, bool, error) {
	return fetchRange(mq, "vor", mq.vorCache, box, l, lazy, func(box math.LatLonBox) ([]aviation.Vor, error) {
		if !l.Vor {
			return nil, nil
		}
		return queryRect(mq, mq.q.vorsByRect, box, mq.fill.FillVor)
	})
}

func (mq *MapQuery) Ndbs(box math.LatLonBox, l layer.Layer, lazy bool) ([]aviation.Ndb, bool, error) {
	return fetchRange(mq, "ndb", mq.ndbCache, box, l, lazy, func(box math.LatLonBox) ([]aviation.Ndb, error) {
		if !l.Ndb {
			return nil, nil
		}
		return queryRect(mq, mq.q.ndbsByRect, box, mq.fill.FillNdb)
	})
}

// Waypoints returns all waypoints in the box if the layer shows either
// waypoints or airway waypoints; deciding which of them to draw is up to
// the caller.
func (mq *MapQuery) Waypoints(box math.LatLonBox, l layer.Layer, lazy bool) ([]aviation.Waypoint, bool, error) {
	return fetchRange(mq, "waypoint", mq.waypointCache, box, l, lazy, func(box math.LatLonBox) ([]aviation.Waypoint, error) {
		if !l.Waypoint && !l.AirwayWaypoint {
			return nil, nil
		}
		return queryRect(mq, mq.q.waypointsByRect, box, mq.fill.FillWaypoint)
	})
}

func (mq *MapQuery) Markers(box math.LatLonBox, l layer.Layer, lazy bool) ([]aviation.Marker, bool, error) {
	return fetchRange(mq, "marker", mq.markerCache, box, l, lazy, func(box math.LatLonBox) ([]aviation.Marker, error) {
		if !l.Marker {
			return nil, nil
		}
		return queryRect(mq, mq.q.markersByRect, box, mq.fill.FillMarker)
	})
}

func (mq *MapQuery) Ils(box math.LatLonBox, l layer.Layer, lazy bool) ([]aviation.Ils, bool, error) {
	return fetchRange(mq, "ils", mq.ilsCache, box, l, lazy, func(box math.LatLonBox) ([]aviation.Ils, error) {
		if !l.Ils {
			return nil, nil
		}
		return queryRect(mq, mq.q.ilsByRect, box, mq.fill.FillIls)
	})
}

func (mq *MapQuery) Airways(box math.LatLonBox, l layer.Layer, lazy bool) ([]aviation.Airway, bool, error) {
	return fetchRange(mq, "airway", mq.airwayCache, box, l, lazy, func(box math.LatLonBox) ([]aviation.Airway, error) {
		if !l.Airway {
			return nil, nil
		}
		return queryRect(mq, mq.q.airwaysByRect, box, mq.fill.FillAirway)
	})
}

// Airspaces returns the airspaces for the box that match the filter,
// sorted so that they can be drawn in order. A change of the filter
// empties the cache, even for lazy requests.
func (mq *MapQuery) Airspaces(box math.LatLonBox, l layer.Layer, filter aviation.AirspaceFilter,
	lazy bool) ([]aviation.Airspace, bool, error) {
	filter = filter.Normalized()
	items, stale, err := mq.airspaceCache.Fetch(box, l, filter, lazy, func(box math.LatLonBox) ([]aviation.Airspace, error) {
		if err := mq.checkInit(); err != nil {
			return nil, err
		}
		if !l.Airspace {
			return nil, nil
		}

		shape, alt := filter.QueryShape()
		q := mq.q.airspaceByRect[shape]

		var airspaces []aviation.Airspace
		for _, typ := range filter.Types.DatabaseStrings() {
			q.Bind("type", typ)
			if shape != aviation.AirspaceQueryAll {
				q.Bind("alt", alt)
			}
			as, err := queryRect(mq, q, box, mq.fill.FillAirspace)
			if err != nil {
				return nil, mq.storageError("airspace", err)
			}
			airspaces = append(airspaces, as...)
		}
		aviation.SortAirspaces(airspaces)

		mq.lg.Debug("range cache refilled", slog.String("kind", "airspace"), slog.String("box", box.String()),
			slog.String("types", filter.Types.String()), slog.Int("count", len(airspaces)))
		return airspaces, nil
	})
	return items, stale, err
}

// AirspaceGeometry returns the boundary of an airspace. An unknown id
// gives an empty line, which is cached as well.
func (mq *MapQuery) AirspaceGeometry(id int) (math.LineString, error) {
	return mq.airspaceLineCache.Get(id, func(id int) (math.LineString, error) {
		if err := mq.checkInit(); err != nil {
			return nil, err
		}
		mq.q.airspaceLinesByID.Bind("id", id)
		rec, ok, err := queryOne(mq.q.airspaceLinesByID, record)
		if err != nil {
			return nil, mq.storageError("airspace geometry", err)
		}
		if !ok {
			return math.LineString{}, nil
		}
		return math.DecodeLineString(rec.Bytes("geometry")), nil
	})
}

// Cached returns the contents of all region caches without any checks or
// database access.
func (mq *MapQuery) Cached() *aviation.SearchResult {
	r := aviation.NewSearchResult()
	r.Airports = mq.airportCache.Items()
	r.Vors = mq.vorCache.Items()
	r.Ndbs = mq.ndbCache.Items()
	r.Waypoints = mq.waypointCache.Items()
	r.Markers = mq.markerCache.Items()
	r.Ils = mq.ilsCache.Items()
	r.Airways = mq.airwayCache.Items()
	r.Airspaces = mq.airspaceCache.Items()
	return r
}
