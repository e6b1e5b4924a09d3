// mapquery/lookup.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package mapquery

import (
	"fmt"
	"slices"
	"strings"

	"github.com/skychart/mapquery/aviation"
	"github.com/skychart/mapquery/math"
	"github.com/skychart/mapquery/sqldb"
	"github.com/skychart/mapquery/util"
)

// byID runs q with the id bound and returns the object for the first
// row; the zero value is returned if there is none.
func byID[T any](mq *MapQuery, kind string, q *sqldb.Query, fill func(sqldb.Record) T, id int) (T, error) {
	if err := mq.checkInit(); err != nil {
		var zero T
		return zero, err
	}
	(*q).Bind("id", id)
	v, _, err := queryOne(*q, fill)
	return v, mq.storageError(kind, err)
}

func (mq *MapQuery) AirportByID(id int) (aviation.Airport, error) {
	return byID(mq, "airport by id", &mq.q.airportByID, mq.fill.FillAirport, id)
}

func (mq *MapQuery) VorByID(id int) (aviation.Vor, error) {
	return byID(mq, "vor by id", &mq.q.vorByID, mq.fill.FillVor, id)
}

func (mq *MapQuery) NdbByID(id int) (aviation.Ndb, error) {
	return byID(mq, "ndb by id", &mq.q.ndbByID, mq.fill.FillNdb, id)
}

func (mq *MapQuery) WaypointByID(id int) (aviation.Waypoint, error) {
	return byID(mq, "waypoint by id", &mq.q.waypointByID, mq.fill.FillWaypoint, id)
}

func (mq *MapQuery) IlsByID(id int) (aviation.Ils, error) {
	return byID(mq, "ils by id", &mq.q.ilsByID, mq.fill.FillIls, id)
}

func (mq *MapQuery) RunwayEndByID(id int) (aviation.RunwayEnd, error) {
	return byID(mq, "runway end by id", &mq.q.runwayEndByID, mq.fill.FillRunwayEnd, id)
}

func (mq *MapQuery) AirwayByID(id int) (aviation.Airway, error) {
	return byID(mq, "airway by id", &mq.q.airwayByID, mq.fill.FillAirway, id)
}

func (mq *MapQuery) AirspaceByID(id int) (aviation.Airspace, error) {
	return byID(mq, "airspace by id", &mq.q.airspaceByID, mq.fill.FillAirspace, id)
}

// VorForWaypoint returns the VOR a VOR waypoint is located at.
func (mq *MapQuery) VorForWaypoint(waypointID int) (aviation.Vor, error) {
	return byID(mq, "vor for waypoint", &mq.q.vorByWaypointID, mq.fill.FillVor, waypointID)
}

// NdbForWaypoint returns the NDB an NDB waypoint is located at.
func (mq *MapQuery) NdbForWaypoint(waypointID int) (aviation.Ndb, error) {
	return byID(mq, "ndb for waypoint", &mq.q.ndbByWaypointID, mq.fill.FillNdb, waypointID)
}

func bindPos(q sqldb.Query, p math.Point2LL) {
	q.Bind("lonx", p.Longitude())
	q.Bind("laty", p.Latitude())
}

// VorNearest returns the VOR closest to p, measured in degrees.
func (mq *MapQuery) VorNearest(p math.Point2LL) (aviation.Vor, error) {
	if err := mq.checkInit(); err != nil {
		return aviation.Vor{}, err
	}
	bindPos(mq.q.vorNearest, p)
	v, _, err := queryOne(mq.q.vorNearest, mq.fill.FillVor)
	return v, mq.storageError("nearest vor", err)
}

// NdbNearest returns the NDB closest to p, measured in degrees.
func (mq *MapQuery) NdbNearest(p math.Point2LL) (aviation.Ndb, error) {
	if err := mq.checkInit(); err != nil {
		return aviation.Ndb{}, err
	}
	bindPos(mq.q.ndbNearest, p)
	n, _, err := queryOne(mq.q.ndbNearest, mq.fill.FillNdb)
	return n, mq.storageError("nearest ndb", err)
}

// AirportByIdent returns the airport with the given ident; the result
// is invalid if there is none.
func (mq *MapQuery) AirportByIdent(ident string) (aviation.Airport, error) {
	if err := mq.checkInit(); err != nil {
		return aviation.Airport{}, err
	}
	mq.q.airportByIdent.Bind("ident", ident)
	a, _, err := queryOne(mq.q.airportByIdent, mq.fill.FillAirport)
	return a, mq.storageError("airport by ident", err)
}

///////////////////////////////////////////////////////////////////////////
// Airways

func (mq *MapQuery) AirwaysForWaypoint(waypointID int) ([]aviation.Airway, error) {
	if err := mq.checkInit(); err != nil {
		return nil, err
	}
	mq.q.airwayByWaypointID.Bind("id", waypointID)
	aw, err := query(mq.q.airwayByWaypointID, mq.fill.FillAirway)
	return aw, mq.storageError("airways for waypoint", err)
}

// WaypointsForAirway returns the waypoints named waypointIdent on the
// named airway. Empty arguments match everything.
func (mq *MapQuery) WaypointsForAirway(airwayName, waypointIdent string) ([]aviation.Waypoint, error) {
	if err := mq.checkInit(); err != nil {
		return nil, err
	}
	q := mq.q.airwayWaypointByIdent
	q.Bind("airway", airwayName)
	q.Bind("waypoint", waypointIdent)
	wps, err := query(q, mq.fill.FillWaypoint)
	return wps, mq.storageError("waypoints for airway", err)
}

// WaypointListForAirwayName returns all waypoints of an airway in order.
// Each segment contributes its start waypoint and the last segment of
// each fragment its end waypoint as well.
func (mq *MapQuery) WaypointListForAirwayName(airwayName string) ([]aviation.AirwayWaypoint, error) {
	if err := mq.checkInit(); err != nil {
		return nil, err
	}
	mq.q.airwayWaypoints.Bind("name", airwayName)
	segments, err := query(mq.q.airwayWaypoints, record)
	if err != nil {
		return nil, mq.storageError("airway waypoints", err)
	}

	var wps []aviation.AirwayWaypoint
	add := func(seg sqldb.Record, col string) error {
		wp, err := mq.WaypointByID(seg.Int(col))
		if err != nil {
			return err
		}
		wps = append(wps, aviation.AirwayWaypoint{
			Waypoint: wp,
			AirwayID: seg.Int("airway_id"),
			Fragment: seg.Int("airway_fragment_no"),
			Sequence: seg.Int("sequence_no"),
		})
		return nil
	}

	for i, seg := range segments {
		if err := add(seg, "from_waypoint_id"); err != nil {
			return nil, err
		}
		last := i == len(segments)-1 ||
			segments[i+1].Int("airway_fragment_no") != seg.Int("airway_fragment_no")
		if last {
			if err := add(seg, "to_waypoint_id"); err != nil {
				return nil, err
			}
		}
	}
	return wps, nil
}

// AirwayByNameAndWaypoint returns the segment of the named airway that
// connects the two waypoints, in either direction. Nothing is queried if
// any argument is empty.
func (mq *MapQuery) AirwayByNameAndWaypoint(airwayName, waypoint1, waypoint2 string) (aviation.Airway, bool, error) {
	if airwayName == "" || waypoint1 == "" || waypoint2 == "" {
		return aviation.Airway{}, false, nil
	}
	if err := mq.checkInit(); err != nil {
		return aviation.Airway{}, false, err
	}
	q := mq.q.airwayByNameAndWaypoint
	q.Bind("airway", airwayName)
	q.Bind("ident1", waypoint1)
	q.Bind("ident2", waypoint2)
	aw, ok, err := queryOne(q, mq.fill.FillAirway)
	return aw, ok, mq.storageError("airway by name and waypoint", err)
}

///////////////////////////////////////////////////////////////////////////
// Generic object access

// MapObjectByID adds the object of the given kind with the given id to
// result; nothing is added if there is no such object.
func (mq *MapQuery) MapObjectByID(result *aviation.SearchResult, typ aviation.ObjectTypes, id int) error {
	switch {
	case typ&aviation.TypeAirport != 0:
		a, err := mq.AirportByID(id)
		return appendValid(&result.Airports, a, a.IsValid(), err)
	case typ&aviation.TypeRunwayEnd != 0:
		e, err := mq.RunwayEndByID(id)
		return appendValid(&result.RunwayEnds, e, e.IsValid(), err)
	case typ&aviation.TypeVor != 0:
		v, err := mq.VorByID(id)
		return appendValid(&result.Vors, v, v.IsValid(), err)
	case typ&aviation.TypeNdb != 0:
		n, err := mq.NdbByID(id)
		return appendValid(&result.Ndbs, n, n.IsValid(), err)
	case typ&aviation.TypeWaypoint != 0:
		w, err := mq.WaypointByID(id)
		return appendValid(&result.Waypoints, w, w.IsValid(), err)
	case typ&aviation.TypeIls != 0:
		i, err := mq.IlsByID(id)
		return appendValid(&result.Ils, i, i.IsValid(), err)
	case typ&aviation.TypeAirway != 0:
		a, err := mq.AirwayByID(id)
		return appendValid(&result.Airways, a, a.IsValid(), err)
	case typ&aviation.TypeAirspace != 0:
		a, err := mq.AirspaceByID(id)
		return appendValid(&result.Airspaces, a, a.IsValid(), err)
	default:
		return fmt.Errorf("%s: %w", typ, ErrUnknownObjectType)
	}
}

func appendValid[T any](list *[]T, v T, valid bool, err error) error {
	if err == nil && valid {
		*list = append(*list, v)
	}
	return err
}

// MapObjectByIdent adds all objects of the kinds in types with the given
// ident to result. Region restricts navaids and waypoints and airport
// restricts runway ends and ILS; either may be empty. If sortPos is set,
// each kind's objects are sorted by distance from it and, if maxDistance
// is positive, objects further away than maxDistance meters are dropped.
func (mq *MapQuery) MapObjectByIdent(result *aviation.SearchResult, types aviation.ObjectTypes, ident, region, airport string,
	sortPos math.Point2LL, maxDistance float32) error {
	if err := mq.checkInit(); err != nil {
		return err
	}
	ident = normalizeIdent(ident)

	identQuery := func(q sqldb.Query) sqldb.Query {
		q.Bind("ident", ident)
		q.Bind("region", wildcard(region))
		return q
	}

	if types&aviation.TypeAirport != 0 {
		q := mq.q.airportByIdent
		q.Bind("ident", ident)
		ap, err := query(q, mq.fill.FillAirport)
		if err != nil {
			return mq.storageError("airport by ident", err)
		}
		for _, a := range ap {
			if result.AddAirportID(a.ID) {
				result.Airports = append(result.Airports, a)
			}
		}
		result.Airports = sortByDistance(result.Airports, func(a aviation.Airport) math.Point2LL { return a.Position },
			sortPos, maxDistance)
	}

	if types&aviation.TypeRunwayEnd != 0 && airport != "" {
		q := mq.q.runwayEndByName
		q.Bind("name", aviation.NormalizeRunwayName(ident))
		q.Bind("airport", airport)
		ends, err := query(q, mq.fill.FillRunwayEnd)
		if err != nil {
			return mq.storageError("runway end by name", err)
		}
		result.RunwayEnds = append(result.RunwayEnds, ends...)
	}

	if types&aviation.TypeVor != 0 {
		vors, err := query(identQuery(mq.q.vorByIdent), mq.fill.FillVor)
		if err != nil {
			return mq.storageError("vor by ident", err)
		}
		for _, v := range vors {
			if result.AddVorID(v.ID) {
				result.Vors = append(result.Vors, v)
			}
		}
		result.Vors = sortByDistance(result.Vors, func(v aviation.Vor) math.Point2LL { return v.Position },
			sortPos, maxDistance)
	}

	if types&aviation.TypeNdb != 0 {
		ndbs, err := query(identQuery(mq.q.ndbByIdent), mq.fill.FillNdb)
		if err != nil {
			return mq.storageError("ndb by ident", err)
		}
		for _, n := range ndbs {
			if result.AddNdbID(n.ID) {
				result.Ndbs = append(result.Ndbs, n)
			}
		}
		result.Ndbs = sortByDistance(result.Ndbs, func(n aviation.Ndb) math.Point2LL { return n.Position },
			sortPos, maxDistance)
	}

	if types&aviation.TypeWaypoint != 0 {
		wps, err := query(identQuery(mq.q.waypointByIdent), mq.fill.FillWaypoint)
		if err != nil {
			return mq.storageError("waypoint by ident", err)
		}
		for _, w := range wps {
			if result.AddWaypointID(w.ID) {
				result.Waypoints = append(result.Waypoints, w)
			}
		}
		result.Waypoints = sortByDistance(result.Waypoints, func(w aviation.Waypoint) math.Point2LL { return w.Position },
			sortPos, maxDistance)
	}

	if types&aviation.TypeIls != 0 {
		q := mq.q.ilsByIdent
		q.Bind("ident", ident)
		q.Bind("airport", wildcard(airport))
		ils, err := query(q, mq.fill.FillIls)
		if err != nil {
			return mq.storageError("ils by ident", err)
		}
		result.Ils = sortByDistance(append(result.Ils, ils...), func(i aviation.Ils) math.Point2LL { return i.Position },
			sortPos, maxDistance)
	}

	if types&aviation.TypeAirway != 0 {
		q := mq.q.airwayByName
		q.Bind("name", ident)
		aw, err := query(q, mq.fill.FillAirway)
		if err != nil {
			return mq.storageError("airway by name", err)
		}
		result.Airways = append(result.Airways, util.FilterSlice(aw, func(a aviation.Airway) bool {
			return airwayMatches(a.Type, types)
		})...)
	}

	return nil
}

func airwayMatches(t aviation.AirwayType, types aviation.ObjectTypes) bool {
	switch t {
	case aviation.AirwayVictor:
		return types&aviation.TypeAirwayV != 0
	case aviation.AirwayJet:
		return types&aviation.TypeAirwayJ != 0
	default:
		return true
	}
}

// sortByDistance stably sorts items by distance from pos and drops those
// further than maxDistance meters. Nothing is done if pos is zero.
func sortByDistance[T any](items []T, position func(T) math.Point2LL, pos math.Point2LL, maxDistance float32) []T {
	if pos.IsZero() || len(items) == 0 {
		return items
	}

	dist := func(v T) float32 { return math.DistanceMeters(position(v), pos) }
	slices.SortStableFunc(items, func(a, b T) int {
		da, db := dist(a), dist(b)
		switch {
		case da < db:
			return -1
		case da > db:
			return 1
		default:
			return 0
		}
	})

	if maxDistance > 0 {
		if i := slices.IndexFunc(items, func(v T) bool { return dist(v) > maxDistance }); i >= 0 {
			items = items[:i]
		}
	}
	return items
}

// normalizeIdent upper-cases user input for ident lookups.
func normalizeIdent(s string) string { return strings.ToUpper(strings.TrimSpace(s)) }
