// aviation/search.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"github.com/RoaringBitmap/roaring/v2"
)

// SearchResult aggregates map objects of all kinds. The id sets are used
// to avoid adding the same airport or navaid more than once.
type SearchResult struct {
	Airports   []Airport
	Towers     []Airport
	RunwayEnds []RunwayEnd
	Parkings   []Parking
	Helipads   []Helipad
	Vors       []Vor
	Ndbs       []Ndb
	Waypoints  []Waypoint
	Markers    []Marker
	Ils        []Ils
	Airways    []Airway
	Airspaces  []Airspace

	AirportIDs  *roaring.Bitmap `msgpack:"-"`
	VorIDs      *roaring.Bitmap `msgpack:"-"`
	NdbIDs      *roaring.Bitmap `msgpack:"-"`
	WaypointIDs *roaring.Bitmap `msgpack:"-"`
}

func NewSearchResult() *SearchResult {
	return &SearchResult{
		AirportIDs:  roaring.New(),
		VorIDs:      roaring.New(),
		NdbIDs:      roaring.New(),
		WaypointIDs: roaring.New(),
	}
}

// checkedAdd adds id to the set, allocating it if needed, and returns
// true if it wasn't already present.
func checkedAdd(set **roaring.Bitmap, id int) bool {
	if *set == nil {
		*set = roaring.New()
	}
	return (*set).CheckedAdd(uint32(id))
}

func (r *SearchResult) AddAirportID(id int) bool  { return checkedAdd(&r.AirportIDs, id) }
func (r *SearchResult) AddVorID(id int) bool      { return checkedAdd(&r.VorIDs, id) }
func (r *SearchResult) AddNdbID(id int) bool      { return checkedAdd(&r.NdbIDs, id) }
func (r *SearchResult) AddWaypointID(id int) bool { return checkedAdd(&r.WaypointIDs, id) }

func (r *SearchResult) Size() int {
	return len(r.Airports) + len(r.Towers) + len(r.RunwayEnds) + len(r.Parkings) + len(r.Helipads) +
		len(r.Vors) + len(r.Ndbs) + len(r.Waypoints) + len(r.Markers) + len(r.Ils) +
		len(r.Airways) + len(r.Airspaces)
}

func (r *SearchResult) IsEmpty() bool { return r.Size() == 0 }

// Types returns the kinds of objects present in the result.
func (r *SearchResult) Types() ObjectTypes {
	var t ObjectTypes
	add := func(n int, ot ObjectTypes) {
		if n > 0 {
			t |= ot
		}
	}
	add(len(r.Airports)+len(r.Towers), TypeAirport)
	add(len(r.RunwayEnds), TypeRunwayEnd)
	add(len(r.Parkings), TypeParking)
	add(len(r.Helipads), TypeHelipad)
	add(len(r.Vors), TypeVor)
	add(len(r.Ndbs), TypeNdb)
	add(len(r.Waypoints), TypeWaypoint)
	add(len(r.Markers), TypeMarker)
	add(len(r.Ils), TypeIls)
	add(len(r.Airways), TypeAirway)
	add(len(r.Airspaces), TypeAirspace)
	return t
}
