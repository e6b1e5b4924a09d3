// aviation/nav.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"github.com/skychart/mapquery/math"
)

type Vor struct {
	ID        int
	Ident     string
	Region    string
	Name      string
	Type      string
	Frequency Frequency
	Channel   string
	Range     int // nm
	DmeOnly   bool
	HasDme    bool
	Tacan     bool
	MagVar    float32
	Altitude  float32
	Position  math.Point2LL
}

func (v Vor) IsValid() bool { return v.ID > 0 }

type Ndb struct {
	ID        int
	Ident     string
	Region    string
	Name      string
	Type      string
	Frequency Frequency
	Range     int
	MagVar    float32
	Altitude  float32
	Position  math.Point2LL
}

func (n Ndb) IsValid() bool { return n.ID > 0 }

type Waypoint struct {
	ID              int
	Ident           string
	Region          string
	Type            string
	NumVictorAirway int
	NumJetAirway    int
	MagVar          float32
	Position        math.Point2LL
}

func (w Waypoint) IsValid() bool          { return w.ID > 0 }
func (w Waypoint) HasVictorAirways() bool { return w.NumVictorAirway > 0 }
func (w Waypoint) HasJetAirways() bool    { return w.NumJetAirway > 0 }

type Marker struct {
	ID       int
	Ident    string
	Type     string
	Heading  float32
	Position math.Point2LL
}

type Ils struct {
	ID            int
	Ident         string
	Name          string
	Region        string
	Frequency     Frequency
	Range         int
	DmeRange      int
	HasDme        bool
	HasGlideslope bool
	Slope         float32
	Heading       float32
	Width         float32
	MagVar        float32
	Altitude      float32

	Position math.Point2LL
	// Endpoints of the feather.
	Pos1, Pos2, PosMid math.Point2LL
	Bounding           math.LatLonBox
}

func (i Ils) IsValid() bool { return i.ID > 0 }

type AirwayType int

const (
	AirwayNone AirwayType = iota
	AirwayVictor
	AirwayJet
	AirwayBoth
)

func ParseAirwayType(s string) AirwayType {
	switch s {
	case "V":
		return AirwayVictor
	case "J":
		return AirwayJet
	case "B":
		return AirwayBoth
	default:
		return AirwayNone
	}
}

func (t AirwayType) String() string {
	return [...]string{"none", "victor", "jet", "both"}[t]
}

type Airway struct {
	ID             int
	Name           string
	Type           AirwayType
	Fragment       int
	Sequence       int
	FromWaypointID int
	ToWaypointID   int
	MinAltitude    int // feet
	From, To       math.Point2LL
	Bounding       math.LatLonBox
}

func (a Airway) IsValid() bool { return a.ID > 0 }

// AirwayWaypoint is a waypoint in the context of one airway segment
// list.
type AirwayWaypoint struct {
	Waypoint Waypoint
	AirwayID int
	Fragment int
	Sequence int
}
