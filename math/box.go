// math/box.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import "fmt"

// Queries never reach further towards the poles or the anti-meridian
// than these.
const (
	MaxQueryLatitude  = 89
	MaxQueryLongitude = 179
)

// LatLonBox is a geographic bounding box in degrees. If East < West, the
// box crosses the anti-meridian.
type LatLonBox struct {
	West, East   float64
	North, South float64
}

func NewLatLonBox(west, south, east, north float64) LatLonBox {
	return LatLonBox{West: west, East: east, North: north, South: south}
}

func (b LatLonBox) String() string {
	return fmt.Sprintf("[w %.4f s %.4f e %.4f n %.4f]", b.West, b.South, b.East, b.North)
}

func (b LatLonBox) IsEmpty() bool {
	return b.North < b.South || (b.North == b.South && b.West == b.East)
}

func (b LatLonBox) CrossesDateLine() bool {
	return b.East < b.West
}

// unwrappedEast returns the east edge shifted so that it is never less
// than the west edge.
func (b LatLonBox) unwrappedEast() float64 {
	if b.CrossesDateLine() {
		return b.East + 360
	}
	return b.East
}

func (b LatLonBox) Width() float64 {
	return b.unwrappedEast() - b.West
}

func (b LatLonBox) Height() float64 {
	return b.North - b.South
}

// Contains reports whether o lies entirely within b, taking anti-meridian
// crossing of either box into account.
func (b LatLonBox) Contains(o LatLonBox) bool {
	if b.IsEmpty() || o.South < b.South || o.North > b.North {
		return false
	}

	w, e := b.West, b.unwrappedEast()
	ow, oe := o.West, o.unwrappedEast()
	if ow < w {
		ow += 360
		oe += 360
	}
	return ow >= w && oe <= e
}

func (b LatLonBox) ContainsPoint(p Point2LL) bool {
	lon, lat := float64(p[0]), float64(p[1])
	if lat < b.South || lat > b.North {
		return false
	}
	if lon < b.West {
		lon += 360
	}
	return lon >= b.West && lon <= b.unwrappedEast()
}

// Inflate grows the box by width degrees east and west and height degrees
// north and south, clamping to the query limits.
func (b LatLonBox) Inflate(width, height float64) LatLonBox {
	if b.Width()+2*width >= 2*MaxQueryLongitude {
		b.West, b.East = -MaxQueryLongitude, MaxQueryLongitude
	} else {
		b.West = Max(b.West-width, -MaxQueryLongitude)
		b.East = Min(b.East+width, MaxQueryLongitude)
	}
	b.North = Min(b.North+height, MaxQueryLatitude)
	b.South = Max(b.South-height, -MaxQueryLatitude)
	return b
}

// ClampToQueryLimits returns the part of the box that a query can cover.
func (b LatLonBox) ClampToQueryLimits() LatLonBox {
	return b.Inflate(0, 0)
}

// SplitAtAntiMeridian inflates the box by factor*extent+increment along
// each axis and returns one box, or two boxes if the inflated box crosses
// the anti-meridian. Neither returned box crosses.
func (b LatLonBox) SplitAtAntiMeridian(factor, increment float64) []LatLonBox {
	r := b.Inflate(b.Width()*factor+increment, b.Height()*factor+increment)
	if !r.CrossesDateLine() {
		return []LatLonBox{r}
	}
	return []LatLonBox{
		{West: r.West, East: 180, North: r.North, South: r.South},
		{West: -180, East: r.East, North: r.North, South: r.South},
	}
}
