// mapquery/queries.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package mapquery

import (
	"fmt"
	"strings"
)

const (
	whereRect = "lonx between :leftx and :rightx and laty between :bottomy and :topy"

	whereIdentRegion = "ident = :ident and region like :region"
	// An empty argument matches all.
	whereWaypointAirway = "(:waypoint = '' or w.ident = :waypoint) and (:airway = '' or a.airway_name = :airway)"

	// Objects with a bounding rectangle overlapping the query box.
	whereAirwayRect = "not (right_lonx < :leftx or left_lonx > :rightx or " +
		"bottom_laty > :topy or top_laty < :bottomy)"
	whereAirspaceRect = "not (max_lonx < :leftx or min_lonx > :rightx or " +
		"min_laty > :topy or max_laty < :bottomy)"
)

var airportOverviewColumns = []string{
	"airport_id", "ident", "name", "rating",
	"is_closed", "is_military", "is_addon",
	"num_runway_hard", "num_runway_soft", "num_runway_water",
	"longest_runway_length", "longest_runway_heading", "mag_var",
	"lonx", "laty", "left_lonx", "top_laty", "right_lonx", "bottom_laty",
}

var airportColumns = append(append([]string{}, airportOverviewColumns...),
	"region", "has_avgas", "has_jetfuel", "has_tower_object",
	"tower_frequency", "atis_frequency", "awos_frequency", "asos_frequency", "unicom_frequency",
	"num_apron", "num_taxi_path", "num_parking_gate", "num_parking_ga_ramp", "num_parking_cargo",
	"num_parking_mil_cargo", "num_parking_mil_combat", "num_runway_light", "num_runway_end_ils",
	"num_runway_end_vasi", "num_runway_end_als", "num_boundary_fence", "num_approach", "num_helipad",
	"longest_runway_surface", "altitude", "tower_lonx", "tower_laty",
)

const airspaceColumns = "boundary_id, type, name, com_type, com_frequency, com_name, " +
	"min_altitude_type, max_altitude_type, max_altitude, min_altitude, " +
	"max_lonx, max_laty, min_lonx, min_laty"

const runwayColumns = "r.runway_id, r.airport_id, r.length, r.heading, r.width, r.surface, r.edge_light, " +
	"r.lonx, r.laty, r.primary_lonx, r.primary_laty, r.secondary_lonx, r.secondary_laty, " +
	"r.primary_end_id, r.secondary_end_id, p.name as primary_name, s.name as secondary_name, " +
	"p.offset_threshold as primary_offset_threshold, s.offset_threshold as secondary_offset_threshold, " +
	"p.has_closed_markings as primary_closed_markings, s.has_closed_markings as secondary_closed_markings"

const runwayJoin = "runway r join runway_end p on r.primary_end_id = p.runway_end_id " +
	"join runway_end s on r.secondary_end_id = s.runway_end_id"

const runwayEndColumns = "e.runway_end_id, e.name, e.heading, e.end_type, e.lonx, e.laty"

const startColumns = "start_id, airport_id, type, heading, number, runway_name, lonx, laty"

func columns(prefix string, cols []string) string {
	if prefix == "" {
		return strings.Join(cols, ", ")
	}
	p := make([]string, len(cols))
	for i, c := range cols {
		p[i] = prefix + "." + c
	}
	return strings.Join(p, ", ")
}

// queryText holds the text of all prepared queries; the row limit is
// applied to all queries by region.
type queryText struct {
	airportByRect, airportMediumByRect, airportLargeByRect string
	vorsByRect, ndbsByRect, waypointsByRect                string
	markersByRect, ilsByRect, airwaysByRect                string
	airspaceByRect                                         [5]string

	airspaceLinesByID string

	runways, runwaysOverview, runwayNames string
	aprons, parkings, starts, helipads   string
	taxiPaths                            string

	parkingTypeAndNumber, startByName, bestStart string

	airportByID, airportAdminByID, airportByIdent string
	vorByID, vorByIdent, vorByWaypointID, vorNearest string
	ndbByID, ndbByIdent, ndbByWaypointID, ndbNearest string
	waypointByID, waypointByIdent                    string
	ilsByID, ilsByIdent                              string
	runwayEndByID, runwayEndByName                   string
	airwayByID, airwayByName, airwayByWaypointID     string
	airwayByNameAndWaypoint, airwayWaypointByIdent   string
	airwayWaypoints                                  string
	airspaceByID                                     string
}

func makeQueryText(rowLimit int) queryText {
	limit := fmt.Sprintf(" limit %d", rowLimit)
	airportCols := columns("", airportColumns)
	airportOverviewCols := columns("", airportOverviewColumns)

	var t queryText
	t.airportByRect = "select " + airportCols + " from airport where " + whereRect +
		" and longest_runway_length >= :minlength order by rating desc, longest_runway_length desc" + limit
	t.airportMediumByRect = "select " + airportOverviewCols + " from airport_medium where " + whereRect +
		" order by longest_runway_length" + limit
	t.airportLargeByRect = "select " + airportOverviewCols + " from airport_large where " + whereRect +
		" order by longest_runway_length" + limit

	t.vorsByRect = "select * from vor where " + whereRect + limit
	t.ndbsByRect = "select * from ndb where " + whereRect + limit
	t.waypointsByRect = "select * from waypoint where " + whereRect + limit
	t.markersByRect = "select * from marker where " + whereRect + limit
	t.ilsByRect = "select * from ils where " + whereRect + limit
	t.airwaysByRect = "select * from airway where " + whereAirwayRect + limit

	airspace := "select " + airspaceColumns + " from boundary where " + whereAirspaceRect + " and type like :type"
	t.airspaceByRect = [5]string{
		airspace + limit,
		airspace + " and min_altitude < :alt" + limit,
		airspace + " and max_altitude > :alt" + limit,
		airspace + " and min_altitude <= :alt and max_altitude >= :alt" + limit,
		airspace + " and :alt between min_altitude and max_altitude" + limit,
	}

	t.airspaceLinesByID = "select geometry from boundary where boundary_id = :id"

	t.runways = "select " + runwayColumns + " from " + runwayJoin + " where r.airport_id = :airportId"
	t.runwaysOverview = "select runway_id, airport_id, length, heading, width, surface, lonx, laty, " +
		"primary_lonx, primary_laty, secondary_lonx, secondary_laty from runway " +
		"where airport_id = :airportId and length > 4000"
	t.runwayNames = "select p.name as primary_name, s.name as secondary_name from " + runwayJoin +
		" where r.airport_id = :airportId"
	t.aprons = "select apron_id, surface, is_draw_surface, vertices from apron where airport_id = :airportId"
	t.parkings = "select * from parking where airport_id = :airportId"
	t.starts = "select " + startColumns + " from start where airport_id = :airportId"
	t.helipads = "select h.helipad_id, h.airport_id, h.start_id, h.surface, h.type, h.length, h.width, " +
		"h.heading, h.is_transparent, h.is_closed, h.lonx, h.laty, s.number as start_number " +
		"from helipad h left outer join start s on h.start_id = s.start_id where h.airport_id = :airportId"
	t.taxiPaths = "select * from taxi_path where airport_id = :airportId"

	t.parkingTypeAndNumber = "select * from parking where airport_id = :airportId and " +
		"name like :name and number = :number"
	t.startByName = "select " + startColumns + " from start where airport_id = :airportId and number = :number " +
		"union select " + startColumns + " from start where airport_id = :airportId and runway_name = :name"
	t.bestStart = "select s.start_id, s.airport_id, s.type, s.heading, s.number, s.runway_name, " +
		"s.lonx, s.laty, r.surface from start s " +
		"left outer join runway_end e on s.runway_end_id = e.runway_end_id " +
		"left outer join runway r on (r.primary_end_id = e.runway_end_id or r.secondary_end_id = e.runway_end_id) " +
		"where s.airport_id = :airportId order by r.length desc"

	t.airportByID = "select " + airportCols + " from airport where airport_id = :id"
	t.airportAdminByID = "select city, state, country from airport where airport_id = :id"
	t.airportByIdent = "select " + airportCols + " from airport where ident = :ident"

	nearest := " order by (abs(lonx - :lonx) + abs(laty - :laty)) limit 1"
	t.vorByID = "select * from vor where vor_id = :id"
	t.vorByIdent = "select * from vor where " + whereIdentRegion
	t.vorByWaypointID = "select v.* from vor v join waypoint w on v.vor_id = w.nav_id " +
		"where w.type = 'V' and w.waypoint_id = :id"
	t.vorNearest = "select * from vor" + nearest
	t.ndbByID = "select * from ndb where ndb_id = :id"
	t.ndbByIdent = "select * from ndb where " + whereIdentRegion
	t.ndbByWaypointID = "select n.* from ndb n join waypoint w on n.ndb_id = w.nav_id " +
		"where w.type = 'N' and w.waypoint_id = :id"
	t.ndbNearest = "select * from ndb" + nearest

	t.waypointByID = "select * from waypoint where waypoint_id = :id"
	t.waypointByIdent = "select * from waypoint where " + whereIdentRegion
	t.ilsByID = "select * from ils where ils_id = :id"
	t.ilsByIdent = "select * from ils where ident = :ident and loc_airport_ident like :airport"

	t.runwayEndByID = "select " + runwayEndColumns + " from runway_end e where e.runway_end_id = :id"
	t.runwayEndByName = "select " + runwayEndColumns + " from runway_end e " +
		"join runway r on (r.primary_end_id = e.runway_end_id or r.secondary_end_id = e.runway_end_id) " +
		"join airport a on r.airport_id = a.airport_id where e.name = :name and a.ident = :airport"

	t.airwayByID = "select * from airway where airway_id = :id"
	t.airwayByName = "select * from airway where airway_name = :name"
	t.airwayByWaypointID = "select * from airway where from_waypoint_id = :id or to_waypoint_id = :id"
	t.airwayByNameAndWaypoint = "select a.* from airway a " +
		"join waypoint wf on a.from_waypoint_id = wf.waypoint_id " +
		"join waypoint wt on a.to_waypoint_id = wt.waypoint_id " +
		"where a.airway_name = :airway and " +
		"((wf.ident = :ident1 and wt.ident = :ident2) or (wf.ident = :ident2 and wt.ident = :ident1))"
	t.airwayWaypointByIdent = "select w.* from waypoint w join airway a on w.waypoint_id = a.from_waypoint_id " +
		"where " + whereWaypointAirway + " union select w.* from waypoint w join airway a on w.waypoint_id = a.to_waypoint_id " +
		"where " + whereWaypointAirway
	t.airwayWaypoints = "select airway_id, airway_fragment_no, sequence_no, from_waypoint_id, to_waypoint_id " +
		"from airway where airway_name = :name order by airway_fragment_no, sequence_no"

	t.airspaceByID = "select " + airspaceColumns + " from boundary where boundary_id = :id"

	return t
}
