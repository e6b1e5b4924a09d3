// math/latlong.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	"fmt"

	"github.com/golang/geo/s2"
)

const EarthRadiusMeters = 6371000

const MetersToFeet = 3.28084
const FeetToMeters = 1 / MetersToFeet

// Point2LL represents a 2D point on the Earth in latitude-longitude.
// Important: 0 (x) is longitude, 1 (y) is latitude
type Point2LL [2]float32

func (p Point2LL) Longitude() float32 {
	return p[0]
}

func (p Point2LL) Latitude() float32 {
	return p[1]
}

func (p Point2LL) IsZero() bool {
	return p[0] == 0 && p[1] == 0
}

// DDString returns the position in decimal degrees, e.g.:
// (39.860901, -75.274864)
func (p Point2LL) DDString() string {
	return fmt.Sprintf("(%f, %f)", p[1], p[0]) // latitude, longitude
}

func (p Point2LL) latLng() s2.LatLng {
	return s2.LatLngFromDegrees(float64(p[1]), float64(p[0]))
}

// DistanceMeters returns the great circle distance between two points.
func DistanceMeters(a, b Point2LL) float32 {
	return float32(a.latLng().Distance(b.latLng()).Radians() * EarthRadiusMeters)
}

// NMDistance2LL returns the distance in nautical miles between two
// provided lat-long coordinates.
func NMDistance2LL(a, b Point2LL) float32 {
	return DistanceMeters(a, b) * 0.000539957
}
