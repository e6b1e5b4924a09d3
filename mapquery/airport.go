// mapquery/airport.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package mapquery

import (
	"strconv"
	"strings"

	"github.com/skychart/mapquery/aviation"
	"github.com/skychart/mapquery/cache"
	"github.com/skychart/mapquery/math"
	"github.com/skychart/mapquery/sqldb"
)

// fetchKeyed runs q bound to the airport id through the keyed cache c.
func fetchKeyed[T any](mq *MapQuery, kind string, c *cache.KeyedCache[int, []T], q *sqldb.Query,
	fill func(sqldb.Record) T, airportID int) ([]T, error) {
	return c.Get(airportID, func(id int) ([]T, error) {
		if err := mq.checkInit(); err != nil {
			return nil, err
		}
		(*q).Bind("airportId", id)
		items, err := query(*q, fill)
		return items, mq.storageError(kind, err)
	})
}

// Runways returns the runways of an airport, ordered so that the best
// runway is drawn last: by surface quality and then by length.
func (mq *MapQuery) Runways(airportID int) ([]aviation.Runway, error) {
	return mq.runwayCache.Get(airportID, func(id int) ([]aviation.Runway, error) {
		if err := mq.checkInit(); err != nil {
			return nil, err
		}
		mq.q.runways.Bind("airportId", id)
		rw, err := query(mq.q.runways, mq.fill.FillRunway)
		if err != nil {
			return nil, mq.storageError("runways", err)
		}
		aviation.SortRunways(rw)
		return rw, nil
	})
}

// RunwaysForOverview returns the runways longer than 4000 ft, which are
// drawn at small scales.
func (mq *MapQuery) RunwaysForOverview(airportID int) ([]aviation.Runway, error) {
	return fetchKeyed(mq, "runway overview", mq.runwayOverviewCache, &mq.q.runwaysOverview, mq.fill.FillRunway, airportID)
}

func (mq *MapQuery) Aprons(airportID int) ([]aviation.Apron, error) {
	return fetchKeyed(mq, "aprons", mq.apronCache, &mq.q.aprons, mq.fill.FillApron, airportID)
}

func (mq *MapQuery) Parkings(airportID int) ([]aviation.Parking, error) {
	return fetchKeyed(mq, "parking", mq.parkingCache, &mq.q.parkings, mq.fill.FillParking, airportID)
}

func (mq *MapQuery) StartPositions(airportID int) ([]aviation.Start, error) {
	return fetchKeyed(mq, "start", mq.startCache, &mq.q.starts, mq.fill.FillStart, airportID)
}

func (mq *MapQuery) Helipads(airportID int) ([]aviation.Helipad, error) {
	return fetchKeyed(mq, "helipads", mq.helipadCache, &mq.q.helipads, mq.fill.FillHelipad, airportID)
}

func (mq *MapQuery) TaxiPaths(airportID int) ([]aviation.TaxiPath, error) {
	return fetchKeyed(mq, "taxi paths", mq.taxipathCache, &mq.q.taxiPaths, mq.fill.FillTaxiPath, airportID)
}

// RunwayNames returns the names of both ends of all runways of an
// airport. It is not cached.
func (mq *MapQuery) RunwayNames(airportID int) ([]string, error) {
	if err := mq.checkInit(); err != nil {
		return nil, err
	}
	mq.q.runwayNames.Bind("airportId", airportID)
	recs, err := query(mq.q.runwayNames, record)
	if err != nil {
		return nil, mq.storageError("runway names", err)
	}

	var names []string
	for _, r := range recs {
		names = append(names, r.String("primary_name"), r.String("secondary_name"))
	}
	return names, nil
}

// ParkingByNameAndNumber returns the parking spots of an airport with the
// given name prefix and number; an empty name matches all.
func (mq *MapQuery) ParkingByNameAndNumber(airportID int, name string, number int) ([]aviation.Parking, error) {
	if err := mq.checkInit(); err != nil {
		return nil, err
	}
	q := mq.q.parkingTypeAndNumber
	q.Bind("airportId", airportID)
	q.Bind("name", wildcard(name))
	q.Bind("number", number)
	p, err := query(q, mq.fill.FillParking)
	return p, mq.storageError("parking by name", err)
}

// BestStartPositionForAirport returns the start position at the longest
// runway with the best surface; a hard surfaced runway always wins. The
// result is invalid if the airport has no start positions.
func (mq *MapQuery) BestStartPositionForAirport(airportID int) (aviation.Start, error) {
	if err := mq.checkInit(); err != nil {
		return aviation.Start{}, err
	}
	mq.q.bestStart.Bind("airportId", airportID)
	recs, err := query(mq.q.bestStart, record)
	if err != nil {
		return aviation.Start{}, mq.storageError("best start", err)
	}

	// Rows are ordered by runway length, descending.
	var best aviation.Start
	bestQuality := -1
	for _, r := range recs {
		surface := r.String("surface")
		if q := aviation.SurfaceQuality(surface); q > bestQuality {
			best, bestQuality = mq.fill.FillStart(r), q
		}
		if aviation.IsHardSurface(surface) {
			break
		}
	}
	return best, nil
}

// StartByNameAndPos returns the start position of an airport that is
// either a runway start with the given runway name or a helipad or water
// start with the given number. If several match, the one closest to pos
// is returned.
func (mq *MapQuery) StartByNameAndPos(airportID int, name string, pos math.Point2LL) (aviation.Start, error) {
	if err := mq.checkInit(); err != nil {
		return aviation.Start{}, err
	}

	number, err := strconv.Atoi(strings.TrimSpace(name))
	if err != nil {
		number = -1
	}
	runway := aviation.NormalizeRunwayName(name)

	q := mq.q.startByName
	q.Bind("airportId", airportID)
	q.Bind("number", number)
	q.Bind("name", runway)
	starts, err := query(q, mq.fill.FillStart)
	if err != nil {
		return aviation.Start{}, mq.storageError("start by name", err)
	}

	var best aviation.Start
	bestDist := float32(-1)
	for _, s := range starts {
		if d := math.DistanceMeters(s.Position, pos); bestDist < 0 || d < bestDist {
			best, bestDist = s, d
		}
	}
	return best, nil
}

func (mq *MapQuery) AirportAdminNames(airportID int) (aviation.AirportAdminNames, error) {
	if err := mq.checkInit(); err != nil {
		return aviation.AirportAdminNames{}, err
	}
	mq.q.airportAdminByID.Bind("id", airportID)
	n, _, err := queryOne(mq.q.airportAdminByID, mq.fill.FillAirportAdminNames)
	return n, mq.storageError("airport admin names", err)
}

func wildcard(s string) string {
	if s == "" {
		return "%"
	}
	return s
}
