// layer/layer.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package layer describes what the map shows at a given zoom distance
// and which of those settings affect database queries.
package layer

import "fmt"

// DataSource selects the airport table used for queries.
type DataSource int

const (
	SourceAll DataSource = iota
	SourceMedium
	SourceLarge
)

func (s DataSource) String() string {
	switch s {
	case SourceAll:
		return "all"
	case SourceMedium:
		return "medium"
	case SourceLarge:
		return "large"
	default:
		return fmt.Sprintf("DataSource(%d)", int(s))
	}
}

func ParseDataSource(s string) (DataSource, error) {
	switch s {
	case "all", "":
		return SourceAll, nil
	case "medium":
		return SourceMedium, nil
	case "large":
		return SourceLarge, nil
	default:
		return SourceAll, fmt.Errorf("%s: unknown airport data source", s)
	}
}

type Layer struct {
	// Maximum zoom distance in km for this layer.
	MaxRange float32

	Airport               bool
	AirportSource         DataSource
	MinRunwayLength       int // feet
	AirportDiagram        bool
	AirportOverviewRunway bool

	Vor            bool
	Ndb            bool
	Waypoint       bool
	AirwayWaypoint bool
	Marker         bool
	Ils            bool
	Airway         bool
	Airspace       bool

	// Rendering only.
	AirportSymbolSize  int
	VorSymbolSize      int
	NdbSymbolSize      int
	WaypointSymbolSize int
	AirportIdent       bool
	AirportName        bool
	VorIdent           bool
	NdbIdent           bool
	WaypointName       bool
}

// New returns a layer that shows everything at full detail.
func New(maxRange float32) Layer {
	return Layer{
		MaxRange:           maxRange,
		Airport:            true,
		AirportSource:      SourceAll,
		Vor:                true,
		Ndb:                true,
		Waypoint:           true,
		Marker:             true,
		Ils:                true,
		Airway:             true,
		Airspace:           true,
		AirportSymbolSize:  10,
		VorSymbolSize:      10,
		NdbSymbolSize:      10,
		WaypointSymbolSize: 8,
		AirportIdent:       true,
	}
}

// Equivalence predicates used by the range caches: two layers are
// equivalent for a kind if a query for that kind would return the same
// rows.

func SameQueryParametersAirport(a, b Layer) bool {
	return a.Airport == b.Airport && a.AirportSource == b.AirportSource &&
		a.MinRunwayLength == b.MinRunwayLength
}

func SameQueryParametersVor(a, b Layer) bool { return a.Vor == b.Vor }

func SameQueryParametersNdb(a, b Layer) bool { return a.Ndb == b.Ndb }

func SameQueryParametersWaypoint(a, b Layer) bool {
	return a.Waypoint == b.Waypoint && a.AirwayWaypoint == b.AirwayWaypoint
}

func SameQueryParametersMarker(a, b Layer) bool { return a.Marker == b.Marker }

func SameQueryParametersIls(a, b Layer) bool { return a.Ils == b.Ils }

func SameQueryParametersAirway(a, b Layer) bool { return a.Airway == b.Airway }

func SameQueryParametersAirspace(a, b Layer) bool { return a.Airspace == b.Airspace }
