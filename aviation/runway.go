// aviation/runway.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/skychart/mapquery/math"
)

type Runway struct {
	ID        int
	AirportID int
	Length    int // feet
	Width     int // feet
	Heading   float32
	Surface   string
	EdgeLight string

	PrimaryName     string
	SecondaryName   string
	PrimaryEndID    int
	SecondaryEndID  int
	PrimaryOffset   int // displaced threshold, feet
	SecondaryOffset int
	PrimaryClosed   bool
	SecondaryClosed bool

	Position          math.Point2LL
	PrimaryPosition   math.Point2LL
	SecondaryPosition math.Point2LL
}

func (r Runway) IsHard() bool  { return IsHardSurface(r.Surface) }
func (r Runway) IsSoft() bool  { return IsSoftSurface(r.Surface) }
func (r Runway) IsWater() bool { return IsWaterSurface(r.Surface) }

type RunwayEnd struct {
	ID        int
	Name      string
	Heading   float32
	Secondary bool
	Position  math.Point2LL
}

func (e RunwayEnd) IsValid() bool { return e.ID > 0 }

// Surface codes as stored in the scenery database.
var surfaceQuality = map[string]int{
	"C": 5, "A": 5, "B": 5, "T": 5,
	"M": 4, "BR": 4, "CE": 4,
	"CL": 3, "SH": 3, "OT": 3, "SM": 3, "PL": 3,
	"GR": 2, "CR": 2, "D": 2, "S": 2,
	"G": 1, "SN": 1, "I": 1,
	"W": 0, "TR": 0, "UNKNOWN": 0, "INVALID": 0,
}

// SurfaceQuality ranks a runway surface; higher is better and unknown
// surfaces rank lowest.
func SurfaceQuality(surface string) int {
	return surfaceQuality[surface]
}

func IsHardSurface(surface string) bool {
	return surface == "C" || surface == "A" || surface == "B" || surface == "T"
}

func IsWaterSurface(surface string) bool {
	return surface == "W"
}

func IsSoftSurface(surface string) bool {
	return !IsHardSurface(surface) && !IsWaterSurface(surface) && SurfaceQuality(surface) > 0
}

// SortRunways sorts runways so that poor surfaces come first and, within
// the same surface quality, shorter runways come first; renderers then
// draw the most significant runways on top.
func SortRunways(rw []Runway) {
	slices.SortStableFunc(rw, func(a, b Runway) int {
		if qa, qb := SurfaceQuality(a.Surface), SurfaceQuality(b.Surface); qa != qb {
			return qa - qb
		}
		return a.Length - b.Length
	})
}

// RunwayNameSplit splits a runway name like "RW09L", "9L" or "27" into
// its number and designator.
func RunwayNameSplit(name string) (number int, designator string, ok bool) {
	name = strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(name)), "RW")

	i := 0
	for i < len(name) && name[i] >= '0' && name[i] <= '9' {
		i++
	}
	if i == 0 || i > 2 {
		return 0, "", false
	}

	number, err := strconv.Atoi(name[:i])
	if err != nil || number > 36 {
		return 0, "", false
	}

	designator = name[i:]
	switch designator {
	case "", "L", "R", "C", "W", "A", "B", "T":
		return number, designator, true
	default:
		return 0, "", false
	}
}

// NormalizeRunwayName returns the runway name with a two digit number
// and no "RW" prefix, e.g. "9L" -> "09L". Names that don't parse are
// returned unchanged.
func NormalizeRunwayName(name string) string {
	if number, designator, ok := RunwayNameSplit(name); ok {
		return fmt.Sprintf("%02d%s", number, designator)
	}
	return name
}
