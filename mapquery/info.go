// mapquery/info.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package mapquery

import (
	"fmt"
	"log/slog"

	"github.com/skychart/mapquery/cache"
	"github.com/skychart/mapquery/config"
	"github.com/skychart/mapquery/log"
	"github.com/skychart/mapquery/sqldb"
)

// Provenance columns added to airport, navaid and waypoint records.
const provenanceColumns = "f.filepath, f.filename, s.title as scenery_title, " +
	"s.local_path as scenery_local_path, s.layer as scenery_layer"

func provenanceQuery(table, alias, idColumn string) string {
	return fmt.Sprintf("select %s.*, %s from %s %s "+
		"join bgl_file f on %s.file_id = f.bgl_file_id "+
		"join scenery_area s on f.scenery_area_id = s.scenery_area_id "+
		"where %s.%s = :id", alias, provenanceColumns, table, alias, alias, alias, idColumn)
}

// InfoQuery returns the complete database records for objects shown in
// information dialogs. Lookups that found nothing are cached as well.
type InfoQuery struct {
	lg *log.Logger

	airportQuery, comQuery, runwayQuery, runwayEndQuery sqldb.Query
	vorQuery, ndbQuery, waypointQuery, airwayQuery      sqldb.Query

	airportCache   *cache.RecordCache[int, sqldb.Record]
	comCache       *cache.RecordCache[int, []sqldb.Record]
	runwayCache    *cache.RecordCache[int, []sqldb.Record]
	runwayEndCache *cache.RecordCache[int, sqldb.Record]
	vorCache       *cache.RecordCache[int, sqldb.Record]
	ndbCache       *cache.RecordCache[int, sqldb.Record]
	waypointCache  *cache.RecordCache[int, sqldb.Record]
	airwayCache    *cache.RecordCache[int, sqldb.Record]
}

func NewInfoQuery(cfg config.MapQuery, lg *log.Logger) *InfoQuery {
	n := cfg.InfoCache
	return &InfoQuery{
		lg:             lg,
		airportCache:   cache.NewRecordCache[int, sqldb.Record](n),
		comCache:       cache.NewRecordCache[int, []sqldb.Record](n),
		runwayCache:    cache.NewRecordCache[int, []sqldb.Record](n),
		runwayEndCache: cache.NewRecordCache[int, sqldb.Record](n),
		vorCache:       cache.NewRecordCache[int, sqldb.Record](n),
		ndbCache:       cache.NewRecordCache[int, sqldb.Record](n),
		waypointCache:  cache.NewRecordCache[int, sqldb.Record](n),
		airwayCache:    cache.NewRecordCache[int, sqldb.Record](n),
	}
}

func (iq *InfoQuery) statements() []statement {
	return []statement{
		{&iq.airportQuery, provenanceQuery("airport", "a", "airport_id")},
		{&iq.comQuery, "select * from com where airport_id = :id order by type, frequency"},
		{&iq.runwayQuery, "select * from runway where airport_id = :id order by heading"},
		{&iq.runwayEndQuery, "select * from runway_end where runway_end_id = :id"},
		{&iq.vorQuery, provenanceQuery("vor", "v", "vor_id")},
		{&iq.ndbQuery, provenanceQuery("ndb", "n", "ndb_id")},
		{&iq.waypointQuery, provenanceQuery("waypoint", "w", "waypoint_id")},
		{&iq.airwayQuery, "select * from airway where airway_id = :id"},
	}
}

func (iq *InfoQuery) InitQueries(db sqldb.Database) error {
	iq.DeInitQueries()
	for _, s := range iq.statements() {
		q, err := db.Prepare(s.text)
		if err != nil {
			iq.DeInitQueries()
			return err
		}
		*s.query = q
	}
	return nil
}

func (iq *InfoQuery) DeInitQueries() {
	iq.ClearCaches()
	for _, s := range iq.statements() {
		if *s.query != nil {
			(*s.query).Close()
			*s.query = nil
		}
	}
}

func (iq *InfoQuery) ClearCaches() {
	iq.airportCache.Purge()
	iq.comCache.Purge()
	iq.runwayCache.Purge()
	iq.runwayEndCache.Purge()
	iq.vorCache.Purge()
	iq.ndbCache.Purge()
	iq.waypointCache.Purge()
	iq.airwayCache.Purge()
}

func (iq *InfoQuery) record(kind string, c *cache.RecordCache[int, sqldb.Record], q *sqldb.Query, id int) (sqldb.Record, bool, error) {
	return c.Get(id, func(id int) (sqldb.Record, bool, error) {
		if *q == nil {
			return sqldb.Record{}, false, ErrQueriesNotInitialized
		}
		(*q).Bind("id", id)
		rec, ok, err := queryOne(*q, record)
		if err != nil {
			iq.lg.Error("info query failed", slog.String("query", kind), slog.Any("error", err))
			return sqldb.Record{}, false, fmt.Errorf("%s info: %w", kind, err)
		}
		return rec, ok, nil
	})
}

func (iq *InfoQuery) records(kind string, c *cache.RecordCache[int, []sqldb.Record], q *sqldb.Query, id int) ([]sqldb.Record, bool, error) {
	return c.Get(id, func(id int) ([]sqldb.Record, bool, error) {
		if *q == nil {
			return nil, false, ErrQueriesNotInitialized
		}
		(*q).Bind("id", id)
		recs, err := query(*q, record)
		if err != nil {
			iq.lg.Error("info query failed", slog.String("query", kind), slog.Any("error", err))
			return nil, false, fmt.Errorf("%s info: %w", kind, err)
		}
		return recs, len(recs) > 0, nil
	})
}

// AirportInformation returns the airport record together with the scenery
// file and area it was loaded from.
func (iq *InfoQuery) AirportInformation(airportID int) (sqldb.Record, bool, error) {
	return iq.record("airport", iq.airportCache, &iq.airportQuery, airportID)
}

// ComInformation returns the airport's communication frequencies.
func (iq *InfoQuery) ComInformation(airportID int) ([]sqldb.Record, bool, error) {
	return iq.records("com", iq.comCache, &iq.comQuery, airportID)
}

func (iq *InfoQuery) RunwayInformation(airportID int) ([]sqldb.Record, bool, error) {
	return iq.records("runway", iq.runwayCache, &iq.runwayQuery, airportID)
}

func (iq *InfoQuery) RunwayEndInformation(runwayEndID int) (sqldb.Record, bool, error) {
	return iq.record("runway end", iq.runwayEndCache, &iq.runwayEndQuery, runwayEndID)
}

func (iq *InfoQuery) VorInformation(vorID int) (sqldb.Record, bool, error) {
	return iq.record("vor", iq.vorCache, &iq.vorQuery, vorID)
}

func (iq *InfoQuery) NdbInformation(ndbID int) (sqldb.Record, bool, error) {
	return iq.record("ndb", iq.ndbCache, &iq.ndbQuery, ndbID)
}

func (iq *InfoQuery) WaypointInformation(waypointID int) (sqldb.Record, bool, error) {
	return iq.record("waypoint", iq.waypointCache, &iq.waypointQuery, waypointID)
}

func (iq *InfoQuery) AirwayInformation(airwayID int) (sqldb.Record, bool, error) {
	return iq.record("airway", iq.airwayCache, &iq.airwayQuery, airwayID)
}
