// aviation/airspace.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"fmt"
	"math/bits"
	"slices"
	"strings"

	"github.com/skychart/mapquery/math"
)

// AirspaceType is both a single airspace type and a set of them; the
// high bits carry altitude filter flags.
type AirspaceType uint32

const (
	AirspaceCenter AirspaceType = 1 << iota
	AirspaceClassA
	AirspaceClassB
	AirspaceClassC
	AirspaceClassD
	AirspaceClassE
	AirspaceClassF
	AirspaceClassG
	AirspaceTower
	AirspaceClearance
	AirspaceGround
	AirspaceDeparture
	AirspaceApproach
	AirspaceMOA
	AirspaceRestricted
	AirspaceProhibited
	AirspaceWarning
	AirspaceAlert
	AirspaceDanger
	AirspaceNationalPark
	AirspaceModeC
	AirspaceRadar
	AirspaceTraining
	AirspaceGlider
)

const (
	AirspaceBelow10000 AirspaceType = 1 << (26 + iota)
	AirspaceBelow18000
	AirspaceAbove10000
	AirspaceAbove18000
	AirspaceAtFlightplan
	AirspaceAtAltitude
)

const (
	AirspaceNone     AirspaceType = 0
	AirspaceTypeMask              = AirspaceGlider<<1 - 1
	AirspaceFlagMask              = AirspaceBelow10000 | AirspaceBelow18000 | AirspaceAbove10000 |
		AirspaceAbove18000 | AirspaceAtFlightplan | AirspaceAtAltitude
	AirspaceAll = AirspaceTypeMask
)

type airspaceTypeInfo struct {
	t     AirspaceType
	db    string
	name  string
	order int
}

// Ordered by bit; order is the drawing priority, lower values are drawn
// first and end up underneath.
var airspaceTypes = []airspaceTypeInfo{
	{AirspaceCenter, "C", "Center", 1},
	{AirspaceClassA, "CA", "Class A", 11},
	{AirspaceClassB, "CB", "Class B", 10},
	{AirspaceClassC, "CC", "Class C", 9},
	{AirspaceClassD, "CD", "Class D", 8},
	{AirspaceClassE, "CE", "Class E", 6},
	{AirspaceClassF, "CF", "Class F", 5},
	{AirspaceClassG, "CG", "Class G", 4},
	{AirspaceTower, "T", "Tower", 12},
	{AirspaceClearance, "CL", "Clearance", 12},
	{AirspaceGround, "G", "Ground", 12},
	{AirspaceDeparture, "D", "Departure", 7},
	{AirspaceApproach, "A", "Approach", 7},
	{AirspaceMOA, "M", "MOA", 14},
	{AirspaceRestricted, "R", "Restricted", 17},
	{AirspaceProhibited, "P", "Prohibited", 18},
	{AirspaceWarning, "W", "Warning", 15},
	{AirspaceAlert, "AL", "Alert", 15},
	{AirspaceDanger, "DA", "Danger", 16},
	{AirspaceNationalPark, "NP", "National Park", 15},
	{AirspaceModeC, "MD", "Mode-C", 3},
	{AirspaceRadar, "RD", "Radar", 2},
	{AirspaceTraining, "TR", "Training", 13},
	{AirspaceGlider, "GP", "Glider", 13},
}

func (t AirspaceType) info() (airspaceTypeInfo, bool) {
	t &= AirspaceTypeMask
	if bits.OnesCount32(uint32(t)) != 1 {
		return airspaceTypeInfo{}, false
	}
	return airspaceTypes[bits.TrailingZeros32(uint32(t))], true
}

func (t AirspaceType) String() string {
	if info, ok := t.info(); ok {
		return info.name
	}
	var s []string
	for _, info := range airspaceTypes {
		if t&info.t != 0 {
			s = append(s, info.name)
		}
	}
	return strings.Join(s, ",")
}

// DatabaseString returns the single type code used in the boundary
// table.
func (t AirspaceType) DatabaseString() string {
	if info, ok := t.info(); ok {
		return info.db
	}
	return ""
}

// ParseAirspaceType converts a boundary table type code.
func ParseAirspaceType(db string) (AirspaceType, error) {
	for _, info := range airspaceTypes {
		if info.db == db {
			return info.t, nil
		}
	}
	return AirspaceNone, fmt.Errorf("%s: %w", db, ErrUnknownAirspaceType)
}

// DatabaseStrings expands the type bits into the type codes to query
// for; if all types are selected, a single "%" wildcard is returned.
func (t AirspaceType) DatabaseStrings() []string {
	t &= AirspaceTypeMask
	if t == AirspaceAll {
		return []string{"%"}
	}
	var s []string
	for _, info := range airspaceTypes {
		if t&info.t != 0 {
			s = append(s, info.db)
		}
	}
	return s
}

// AirspaceDrawingOrder returns the drawing priority for a single
// airspace type.
func AirspaceDrawingOrder(t AirspaceType) int {
	if info, ok := t.info(); ok {
		return info.order
	}
	return 0
}

// SortAirspaces sorts airspaces so they can be drawn in order; the
// relative order of airspaces with the same priority is kept.
func SortAirspaces(as []Airspace) {
	slices.SortStableFunc(as, func(a, b Airspace) int {
		return AirspaceDrawingOrder(a.Type) - AirspaceDrawingOrder(b.Type)
	})
}

// AirspaceFilter selects which airspaces are loaded: Types holds type
// bits and altitude flags, Altitude is the reference altitude in feet
// used with AirspaceAtFlightplan and AirspaceAtAltitude.
type AirspaceFilter struct {
	Types    AirspaceType
	Altitude float32
}

// AirspaceQueryShape identifies which altitude restricted query to run.
type AirspaceQueryShape int

const (
	AirspaceQueryAll AirspaceQueryShape = iota
	AirspaceQueryBelow
	AirspaceQueryAbove
	AirspaceQuerySpanning
	AirspaceQueryAtAltitude
)

// QueryShape returns the query shape and the altitude to bind for it.
func (f AirspaceFilter) QueryShape() (AirspaceQueryShape, int) {
	switch {
	case f.Types&AirspaceAtFlightplan != 0:
		return AirspaceQuerySpanning, int(math.Round(f.Altitude))
	case f.Types&AirspaceAtAltitude != 0:
		return AirspaceQueryAtAltitude, int(math.Round(f.Altitude))
	case f.Types&AirspaceBelow10000 != 0:
		return AirspaceQueryBelow, 10000
	case f.Types&AirspaceBelow18000 != 0:
		return AirspaceQueryBelow, 18000
	case f.Types&AirspaceAbove10000 != 0:
		return AirspaceQueryAbove, 10000
	case f.Types&AirspaceAbove18000 != 0:
		return AirspaceQueryAbove, 18000
	default:
		return AirspaceQueryAll, 0
	}
}

// Normalized returns the filter as the database sees it: the altitude is
// rounded to the bound value, or zero if the query doesn't use it. Two
// filters that normalize equal give the same airspaces.
func (f AirspaceFilter) Normalized() AirspaceFilter {
	switch shape, alt := f.QueryShape(); shape {
	case AirspaceQuerySpanning, AirspaceQueryAtAltitude:
		f.Altitude = float32(alt)
	default:
		f.Altitude = 0
	}
	return f
}

type Airspace struct {
	ID              int
	Type            AirspaceType
	Name            string
	ComType         string
	ComName         string
	ComFrequency    Frequency
	MinAltitudeType string
	MaxAltitudeType string
	MinAltitude     int // feet
	MaxAltitude     int
	Bounding        math.LatLonBox
}

func (a Airspace) IsValid() bool { return a.ID > 0 }

// Position returns the center of the airspace's bounding box.
func (a Airspace) Position() math.Point2LL {
	return math.Point2LL{float32((a.Bounding.West + a.Bounding.East) / 2),
		float32((a.Bounding.North + a.Bounding.South) / 2)}
}
