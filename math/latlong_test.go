// math/latlong_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import "testing"

func TestDistanceMeters(t *testing.T) {
	// One degree of latitude is ~111.2km.
	d := DistanceMeters(Point2LL{10, 45}, Point2LL{10, 46})
	if d < 111000 || d > 111400 {
		t.Errorf("got %f meters for one degree of latitude", d)
	}

	if d := DistanceMeters(Point2LL{-73.77, 40.63}, Point2LL{-73.77, 40.63}); d != 0 {
		t.Errorf("got %f for identical points", d)
	}

	// Across the anti-meridian is short, not halfway around the world.
	if d := NMDistance2LL(Point2LL{179.9, 0}, Point2LL{-179.9, 0}); d > 13 {
		t.Errorf("got %f nm across the anti-meridian", d)
	}
}

func TestViewportProjection(t *testing.T) {
	v := ViewportProjection{Box: NewLatLonBox(0, 0, 10, 10), Width: 1000, Height: 1000}

	x, y, vis := v.WorldToScreen(Point2LL{5, 5})
	if x != 500 || y != 500 || !vis {
		t.Errorf("center: got %d,%d visible %v", x, y, vis)
	}
	if _, _, vis := v.WorldToScreen(Point2LL{11, 5}); vis {
		t.Errorf("expected point outside viewport to be invisible")
	}

	p := v.ScreenToWorld(250, 750)
	if p[0] != 2.5 || p[1] != 2.5 {
		t.Errorf("inverse: got %v", p)
	}

	c := ViewportProjection{Box: LatLonBox{West: 170, East: -170, North: 10, South: -10}, Width: 200, Height: 200}
	if x, _, vis := c.WorldToScreen(Point2LL{-175, 0}); x != 150 || !vis {
		t.Errorf("crossing viewport: got x %d visible %v", x, vis)
	}
}
