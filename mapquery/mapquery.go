// mapquery/mapquery.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package mapquery answers the map display's questions about the scenery
// database: which objects are inside a region at a detail level, what
// belongs to an airport, which object has an id or ident, and what is
// under the mouse. Region queries go through range caches and per-airport
// lookups through keyed caches so that redraws rarely touch the database.
package mapquery

import (
	"fmt"
	"log/slog"

	"github.com/skychart/mapquery/aviation"
	"github.com/skychart/mapquery/cache"
	"github.com/skychart/mapquery/config"
	"github.com/skychart/mapquery/layer"
	"github.com/skychart/mapquery/log"
	"github.com/skychart/mapquery/math"
	"github.com/skychart/mapquery/sqldb"
)

// MapQuery is used by the map display goroutine only; none of its
// methods may be called concurrently.
type MapQuery struct {
	db          sqldb.Database
	cfg         config.MapQuery
	lg          *log.Logger
	fill        TypesFactory
	text        queryText
	q           queries
	initialized bool

	// Info holds the detail record queries; it shares the database and
	// lifecycle.
	Info *InfoQuery

	airportCache  *cache.RangeCache[aviation.Airport]
	vorCache      *cache.RangeCache[aviation.Vor]
	ndbCache      *cache.RangeCache[aviation.Ndb]
	waypointCache *cache.RangeCache[aviation.Waypoint]
	markerCache   *cache.RangeCache[aviation.Marker]
	ilsCache      *cache.RangeCache[aviation.Ils]
	airwayCache   *cache.RangeCache[aviation.Airway]
	airspaceCache *cache.FilteredRangeCache[aviation.Airspace, aviation.AirspaceFilter]

	airspaceLineCache   *cache.KeyedCache[int, math.LineString]
	runwayCache         *cache.KeyedCache[int, []aviation.Runway]
	runwayOverviewCache *cache.KeyedCache[int, []aviation.Runway]
	apronCache          *cache.KeyedCache[int, []aviation.Apron]
	taxipathCache       *cache.KeyedCache[int, []aviation.TaxiPath]
	parkingCache        *cache.KeyedCache[int, []aviation.Parking]
	startCache          *cache.KeyedCache[int, []aviation.Start]
	helipadCache        *cache.KeyedCache[int, []aviation.Helipad]
}

type queries struct {
	airportByRect, airportMediumByRect, airportLargeByRect sqldb.Query
	vorsByRect, ndbsByRect, waypointsByRect                sqldb.Query
	markersByRect, ilsByRect, airwaysByRect                sqldb.Query
	airspaceByRect                                         [5]sqldb.Query

	airspaceLinesByID sqldb.Query

	runways, runwaysOverview, runwayNames sqldb.Query
	aprons, parkings, starts, helipads   sqldb.Query
	taxiPaths                            sqldb.Query

	parkingTypeAndNumber, startByName, bestStart sqldb.Query

	airportByID, airportAdminByID, airportByIdent sqldb.Query
	vorByID, vorByIdent, vorByWaypointID, vorNearest sqldb.Query
	ndbByID, ndbByIdent, ndbByWaypointID, ndbNearest sqldb.Query
	waypointByID, waypointByIdent                    sqldb.Query
	ilsByID, ilsByIdent                              sqldb.Query
	runwayEndByID, runwayEndByName                   sqldb.Query
	airwayByID, airwayByName, airwayByWaypointID     sqldb.Query
	airwayByNameAndWaypoint, airwayWaypointByIdent   sqldb.Query
	airwayWaypoints                                  sqldb.Query
	airspaceByID                                     sqldb.Query
}

type statement struct {
	query *sqldb.Query
	text  string
}

func (mq *MapQuery) statements() []statement {
	q, t := &mq.q, &mq.text
	s := []statement{
		{&q.airportByRect, t.airportByRect},
		{&q.airportMediumByRect, t.airportMediumByRect},
		{&q.airportLargeByRect, t.airportLargeByRect},
		{&q.vorsByRect, t.vorsByRect},
		{&q.ndbsByRect, t.ndbsByRect},
		{&q.waypointsByRect, t.waypointsByRect},
		{&q.markersByRect, t.markersByRect},
		{&q.ilsByRect, t.ilsByRect},
		{&q.airwaysByRect, t.airwaysByRect},
		{&q.airspaceLinesByID, t.airspaceLinesByID},
		{&q.runways, t.runways},
		{&q.runwaysOverview, t.runwaysOverview},
		{&q.runwayNames, t.runwayNames},
		{&q.aprons, t.aprons},
		{&q.parkings, t.parkings},
		{&q.starts, t.starts},
		{&q.helipads, t.helipads},
		{&q.taxiPaths, t.taxiPaths},
		{&q.parkingTypeAndNumber, t.parkingTypeAndNumber},
		{&q.startByName, t.startByName},
		{&q.bestStart, t.bestStart},
		{&q.airportByID, t.airportByID},
		{&q.airportAdminByID, t.airportAdminByID},
		{&q.airportByIdent, t.airportByIdent},
		{&q.vorByID, t.vorByID},
		{&q.vorByIdent, t.vorByIdent},
		{&q.vorByWaypointID, t.vorByWaypointID},
		{&q.vorNearest, t.vorNearest},
		{&q.ndbByID, t.ndbByID},
		{&q.ndbByIdent, t.ndbByIdent},
		{&q.ndbByWaypointID, t.ndbByWaypointID},
		{&q.ndbNearest, t.ndbNearest},
		{&q.waypointByID, t.waypointByID},
		{&q.waypointByIdent, t.waypointByIdent},
		{&q.ilsByID, t.ilsByID},
		{&q.ilsByIdent, t.ilsByIdent},
		{&q.runwayEndByID, t.runwayEndByID},
		{&q.runwayEndByName, t.runwayEndByName},
		{&q.airwayByID, t.airwayByID},
		{&q.airwayByName, t.airwayByName},
		{&q.airwayByWaypointID, t.airwayByWaypointID},
		{&q.airwayByNameAndWaypoint, t.airwayByNameAndWaypoint},
		{&q.airwayWaypointByIdent, t.airwayWaypointByIdent},
		{&q.airwayWaypoints, t.airwayWaypoints},
		{&q.airspaceByID, t.airspaceByID},
	}
	for i := range q.airspaceByRect {
		s = append(s, statement{&q.airspaceByRect[i], t.airspaceByRect[i]})
	}
	return s
}

// New returns a MapQuery for db; InitQueries must be called before it
// can be used. db may be nil, in which case SetDatabase must be called
// later.
func New(db sqldb.Database, cfg config.MapQuery, lg *log.Logger) *MapQuery {
	if cfg.QueryRowLimit <= 0 {
		cfg.QueryRowLimit = config.DefaultMapQuery().QueryRowLimit
	}
	f := cfg.QueryRectInflationFactor

	return &MapQuery{
		db:   db,
		cfg:  cfg,
		lg:   lg,
		text: makeQueryText(cfg.QueryRowLimit),
		Info: NewInfoQuery(cfg, lg),

		airportCache:  cache.NewRangeCache[aviation.Airport](layer.SameQueryParametersAirport, f),
		vorCache:      cache.NewRangeCache[aviation.Vor](layer.SameQueryParametersVor, f),
		ndbCache:      cache.NewRangeCache[aviation.Ndb](layer.SameQueryParametersNdb, f),
		waypointCache: cache.NewRangeCache[aviation.Waypoint](layer.SameQueryParametersWaypoint, f),
		markerCache:   cache.NewRangeCache[aviation.Marker](layer.SameQueryParametersMarker, f),
		ilsCache:      cache.NewRangeCache[aviation.Ils](layer.SameQueryParametersIls, f),
		airwayCache:   cache.NewRangeCache[aviation.Airway](layer.SameQueryParametersAirway, f),
		airspaceCache: cache.NewFilteredRangeCache[aviation.Airspace, aviation.AirspaceFilter](
			layer.SameQueryParametersAirspace, f),

		airspaceLineCache:   cache.NewKeyedCache[int, math.LineString](cfg.AirspaceLineCache),
		runwayCache:         cache.NewKeyedCache[int, []aviation.Runway](cfg.RunwayCache),
		runwayOverviewCache: cache.NewKeyedCache[int, []aviation.Runway](cfg.RunwayOverviewCache),
		apronCache:          cache.NewKeyedCache[int, []aviation.Apron](cfg.ApronCache),
		taxipathCache:       cache.NewKeyedCache[int, []aviation.TaxiPath](cfg.TaxipathCache),
		parkingCache:        cache.NewKeyedCache[int, []aviation.Parking](cfg.ParkingCache),
		startCache:          cache.NewKeyedCache[int, []aviation.Start](cfg.StartCache),
		helipadCache:        cache.NewKeyedCache[int, []aviation.Helipad](cfg.HelipadCache),
	}
}

// InitQueries prepares all queries. Any previously prepared queries are
// closed and all caches are cleared first.
func (mq *MapQuery) InitQueries() error {
	if mq.db == nil {
		return ErrNoDatabase
	}
	mq.DeInitQueries()

	stmts := mq.statements()
	for _, s := range stmts {
		q, err := mq.db.Prepare(s.text)
		if err != nil {
			mq.DeInitQueries()
			return mq.storageError("prepare", err)
		}
		*s.query = q
	}
	if err := mq.Info.InitQueries(mq.db); err != nil {
		mq.DeInitQueries()
		return mq.storageError("prepare info", err)
	}

	mq.initialized = true
	mq.lg.Debug("map queries prepared", slog.Int("statements", len(stmts)))
	return nil
}

// DeInitQueries clears all caches and closes all queries.
func (mq *MapQuery) DeInitQueries() {
	mq.ClearCaches()
	for _, s := range mq.statements() {
		if *s.query != nil {
			if err := (*s.query).Close(); err != nil {
				mq.lg.Warnf("closing query: %v", err)
			}
			*s.query = nil
		}
	}
	mq.Info.DeInitQueries()
	mq.initialized = false
}

// SetDatabase switches to a new database, e.g. after the scenery library
// was reloaded. Nothing may be in flight when this is called.
func (mq *MapQuery) SetDatabase(db sqldb.Database) error {
	mq.lg.Info("switching map query database")
	mq.DeInitQueries()
	mq.db = db
	return mq.InitQueries()
}

func (mq *MapQuery) Initialized() bool { return mq.initialized }

func (mq *MapQuery) ClearCaches() {
	mq.airportCache.Clear()
	mq.vorCache.Clear()
	mq.ndbCache.Clear()
	mq.waypointCache.Clear()
	mq.markerCache.Clear()
	mq.ilsCache.Clear()
	mq.airwayCache.Clear()
	mq.airspaceCache.Clear()

	mq.airspaceLineCache.Purge()
	mq.runwayCache.Purge()
	mq.runwayOverviewCache.Purge()
	mq.apronCache.Purge()
	mq.taxipathCache.Purge()
	mq.parkingCache.Purge()
	mq.startCache.Purge()
	mq.helipadCache.Purge()
}

func (mq *MapQuery) checkInit() error {
	if !mq.initialized {
		return ErrQueriesNotInitialized
	}
	return nil
}

func (mq *MapQuery) storageError(what string, err error) error {
	if err == nil {
		return nil
	}
	mq.lg.Error("map query failed", slog.String("query", what), slog.Any("error", err))
	return fmt.Errorf("%s: %w", what, err)
}

///////////////////////////////////////////////////////////////////////////
// Query execution

// query executes q and fills one object per row. The result cursor is
// released before returning so that other queries can be executed.
func query[T any](q sqldb.Query, fill func(sqldb.Record) T) ([]T, error) {
	if err := q.Exec(); err != nil {
		return nil, err
	}
	defer q.Finish()

	var items []T
	for q.Next() {
		items = append(items, fill(q.Record()))
	}
	return items, q.Err()
}

// queryOne returns the object for the first row, if any.
func queryOne[T any](q sqldb.Query, fill func(sqldb.Record) T) (T, bool, error) {
	items, err := query(q, fill)
	if err != nil || len(items) == 0 {
		var zero T
		return zero, false, err
	}
	return items[0], true, nil
}

func record(r sqldb.Record) sqldb.Record { return r }

func bindRect(q sqldb.Query, box math.LatLonBox) {
	q.Bind("leftx", box.West)
	q.Bind("rightx", box.East)
	q.Bind("bottomy", box.South)
	q.Bind("topy", box.North)
}

// queryRect runs q for the box inflated for querying and split at the
// anti-meridian, returning the rows of all parts in order.
func queryRect[T any](mq *MapQuery, q sqldb.Query, box math.LatLonBox, fill func(sqldb.Record) T) ([]T, error) {
	var items []T
	for _, b := range box.SplitAtAntiMeridian(mq.cfg.QueryRectInflationFactor, mq.cfg.QueryRectInflationIncrement) {
		bindRect(q, b)
		r, err := query(q, fill)
		if err != nil {
			return nil, err
		}
		items = append(items, r...)
	}
	return items, nil
}
