// math/linestring.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	"encoding/binary"
	gomath "math"
)

// LineString is an ordered sequence of positions, e.g. an airspace
// boundary or an apron outline.
type LineString []Point2LL

// DecodeLineString decodes a little-endian uint32 point count followed by
// that many (float32 longitude, float32 latitude) pairs. If the buffer
// ends early, the points decoded so far are returned.
func DecodeLineString(b []byte) LineString {
	if len(b) < 4 {
		return LineString{}
	}
	n := int(binary.LittleEndian.Uint32(b))
	b = b[4:]

	ls := make(LineString, 0, Min(n, len(b)/8))
	for i := 0; i < n && len(b) >= 8; i++ {
		lon := gomath.Float32frombits(binary.LittleEndian.Uint32(b))
		lat := gomath.Float32frombits(binary.LittleEndian.Uint32(b[4:]))
		ls = append(ls, Point2LL{lon, lat})
		b = b[8:]
	}
	return ls
}

// Encode returns the binary form read by DecodeLineString.
func (ls LineString) Encode() []byte {
	b := make([]byte, 4, 4+8*len(ls))
	binary.LittleEndian.PutUint32(b, uint32(len(ls)))
	for _, p := range ls {
		b = binary.LittleEndian.AppendUint32(b, gomath.Float32bits(p[0]))
		b = binary.LittleEndian.AppendUint32(b, gomath.Float32bits(p[1]))
	}
	return b
}

func (ls LineString) Bounds() LatLonBox {
	if len(ls) == 0 {
		return LatLonBox{}
	}
	b := LatLonBox{West: 180, East: -180, North: -90, South: 90}
	for _, p := range ls {
		lon, lat := float64(p[0]), float64(p[1])
		b.West, b.East = Min(b.West, lon), Max(b.East, lon)
		b.South, b.North = Min(b.South, lat), Max(b.North, lat)
	}
	return b
}
