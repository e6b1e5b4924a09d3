// aviation/airport.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"github.com/skychart/mapquery/math"
)

type AirportFlags uint32

const (
	AirportFlagScenery AirportFlags = 1 << iota // has aprons, taxiways or parking
	AirportFlagAddon
	AirportFlagClosed
	AirportFlagMilitary
	AirportFlagTower
	AirportFlagTowerObject
	AirportFlagAvgas
	AirportFlagJetfuel
	AirportFlagHard
	AirportFlagSoft
	AirportFlagWater
	AirportFlagLighting
	AirportFlagApproach
	AirportFlagIls
	AirportFlagVasi
	AirportFlagAls
	AirportFlagFence
	AirportFlagHelipad
	AirportFlagApron
	AirportFlagTaxiway
	AirportFlagParking

	AirportFlagNone AirportFlags = 0
)

type Airport struct {
	ID     int
	Ident  string
	Name   string
	Region string
	Flags  AirportFlags

	TowerFrequency  Frequency
	AtisFrequency   Frequency
	AwosFrequency   Frequency
	AsosFrequency   Frequency
	UnicomFrequency Frequency

	LongestRunwayLength  int // feet
	LongestRunwayHeading float32
	LongestRunwaySurface string
	Rating               int
	MagVar               float32
	Altitude             float32 // feet

	Position      math.Point2LL
	TowerPosition math.Point2LL
	Bounding      math.LatLonBox

	// Overview is set when only the subset of fields needed for small
	// scale rendering was loaded.
	Overview bool
}

func (a Airport) IsValid() bool { return a.ID > 0 }

func (a Airport) Has(f AirportFlags) bool { return a.Flags&f != 0 }

func (a Airport) Closed() bool  { return a.Has(AirportFlagClosed) }
func (a Airport) Addon() bool   { return a.Has(AirportFlagAddon) }
func (a Airport) Hard() bool    { return a.Has(AirportFlagHard) }
func (a Airport) Soft() bool    { return a.Has(AirportFlagSoft) }
func (a Airport) Water() bool   { return a.Has(AirportFlagWater) }
func (a Airport) Scenery() bool { return a.Has(AirportFlagScenery) }

// Empty airports have no rating; they have neither scenery elements nor
// any services of note.
func (a Airport) Empty() bool { return a.Rating == 0 }

// IsVisible reports whether the airport should be shown given the
// airport filter bits in types.
func (a Airport) IsVisible(types ObjectTypes) bool {
	if a.Addon() && types&TypeAirportAddon != 0 {
		return true
	}
	if a.Empty() && types&TypeAirportEmpty == 0 {
		return false
	}
	if a.Hard() {
		return types&TypeAirportHard != 0
	}
	return types&TypeAirportSoft != 0
}

// AirportAdminNames holds the administrative region an airport is in.
type AirportAdminNames struct {
	City    string
	State   string
	Country string
}

type Parking struct {
	ID           int
	AirportID    int
	Type         string
	Name         string
	AirlineCodes string
	Number       int
	Radius       float32 // feet
	Heading      float32
	Jetway       bool
	Position     math.Point2LL
}

type Start struct {
	ID         int
	AirportID  int
	Type       string // "R" runway, "H" helipad, "W" water
	RunwayName string
	Number     int
	Heading    float32
	Position   math.Point2LL
}

func (s Start) IsValid() bool { return s.ID > 0 }

type Helipad struct {
	ID          int
	StartID     int // -1 if there is no start position
	StartNumber int
	Type        string
	Surface     string
	Width       int
	Length      int
	Heading     float32
	Transparent bool
	Closed      bool
	Position    math.Point2LL
}

type Apron struct {
	Surface     string
	DrawSurface bool
	Vertices    math.LineString
}

type TaxiPath struct {
	Type        string
	Name        string
	Surface     string
	Width       int
	Closed      bool
	DrawSurface bool
	Start       math.Point2LL
	End         math.Point2LL
}
