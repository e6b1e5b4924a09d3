// aviation/aviation.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"fmt"
	"strings"
)

// Frequencies are scaled by 1000 and then stored in integers.
type Frequency int

func NewFrequency(f float32) Frequency {
	// 0.5 is key for handling rounding!
	return Frequency(f*1000 + 0.5)
}

func (f Frequency) String() string {
	s := fmt.Sprintf("%03d.%03d", f/1000, f%1000)
	for len(s) < 7 {
		s += "0"
	}
	return s
}

// ObjectTypes is a set of map object kinds. It's used both to say what
// a caller is interested in and to tag search results.
type ObjectTypes uint32

const (
	TypeAirport ObjectTypes = 1 << iota
	TypeAirportHard
	TypeAirportSoft
	TypeAirportEmpty
	TypeAirportAddon
	TypeRunwayEnd
	TypeVor
	TypeNdb
	TypeIls
	TypeMarker
	TypeWaypoint
	TypeAirwayV
	TypeAirwayJ
	TypeAirspace
	TypeParking
	TypeHelipad
	TypeStart

	TypeNone ObjectTypes = 0

	// TypeAirportAll includes all airports regardless of runway surface.
	TypeAirportAll = TypeAirport | TypeAirportHard | TypeAirportSoft | TypeAirportEmpty | TypeAirportAddon
	TypeAirway     = TypeAirwayV | TypeAirwayJ
	TypeNavAll     = TypeVor | TypeNdb | TypeWaypoint | TypeMarker | TypeIls | TypeAirway
	TypeAll        = TypeAirportAll | TypeRunwayEnd | TypeNavAll | TypeAirspace | TypeParking | TypeHelipad | TypeStart
)

var objectTypeNames = []struct {
	t    ObjectTypes
	name string
}{
	{TypeAirport, "airport"}, {TypeAirportHard, "hard"}, {TypeAirportSoft, "soft"}, {TypeAirportEmpty, "empty"},
	{TypeAirportAddon, "addon"}, {TypeRunwayEnd, "runwayend"}, {TypeVor, "vor"}, {TypeNdb, "ndb"}, {TypeIls, "ils"},
	{TypeMarker, "marker"}, {TypeWaypoint, "waypoint"}, {TypeAirwayV, "victor"}, {TypeAirwayJ, "jet"},
	{TypeAirspace, "airspace"}, {TypeParking, "parking"}, {TypeHelipad, "helipad"}, {TypeStart, "start"},
}

func (t ObjectTypes) String() string {
	var s []string
	for _, n := range objectTypeNames {
		if t&n.t != 0 {
			s = append(s, n.name)
		}
	}
	if len(s) == 0 {
		return "none"
	}
	return strings.Join(s, "|")
}

// ParseObjectTypes parses a comma or pipe separated list of the names
// returned by ObjectTypes.String.
func ParseObjectTypes(s string) (ObjectTypes, error) {
	var t ObjectTypes
	for _, f := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == '|' }) {
		f = strings.ToLower(strings.TrimSpace(f))
		switch f {
		case "all":
			t |= TypeAll
			continue
		case "airway":
			t |= TypeAirway
			continue
		}

		found := false
		for _, n := range objectTypeNames {
			if n.name == f {
				t |= n.t
				found = true
				break
			}
		}
		if !found {
			return TypeNone, fmt.Errorf("%s: %w", f, ErrUnknownObjectType)
		}
	}
	return t, nil
}
