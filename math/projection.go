// math/projection.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

// ViewportProjection is an equirectangular projection of Box onto a
// Width x Height pixel viewport with the origin at the upper left.
type ViewportProjection struct {
	Box           LatLonBox
	Width, Height int
}

func (v ViewportProjection) WorldToScreen(p Point2LL) (x, y int, visible bool) {
	w, h := v.Box.Width(), v.Box.Height()
	if w <= 0 || h <= 0 {
		return 0, 0, false
	}

	lon := float64(p[0])
	if lon < v.Box.West {
		lon += 360
	}
	fx := (lon - v.Box.West) / w * float64(v.Width)
	fy := (v.Box.North - float64(p[1])) / h * float64(v.Height)

	x, y = int(Round(float32(fx))), int(Round(float32(fy)))
	return x, y, v.Box.ContainsPoint(p)
}

// ScreenToWorld is the inverse of WorldToScreen.
func (v ViewportProjection) ScreenToWorld(x, y int) Point2LL {
	lon := v.Box.West + float64(x)/float64(v.Width)*v.Box.Width()
	if lon > 180 {
		lon -= 360
	}
	lat := v.Box.North - float64(y)/float64(v.Height)*v.Box.Height()
	return Point2LL{float32(lon), float32(lat)}
}
