// mapquery/fill.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package mapquery

import (
	"strings"

	"github.com/skychart/mapquery/aviation"
	"github.com/skychart/mapquery/math"
	"github.com/skychart/mapquery/sqldb"
)

// TypesFactory creates map objects from database records. Columns that
// are missing from a record leave the corresponding fields zero.
type TypesFactory struct{}

func position(rec sqldb.Record, lon, lat string) math.Point2LL {
	return math.Point2LL{rec.Float(lon), rec.Float(lat)}
}

func frequency(rec sqldb.Record, col string) aviation.Frequency {
	return aviation.Frequency(rec.Int(col))
}

func (TypesFactory) FillAirport(rec sqldb.Record) aviation.Airport {
	a := fillAirportOverview(rec)
	a.Overview = false
	a.Region = rec.String("region")
	a.TowerFrequency = frequency(rec, "tower_frequency")
	a.AtisFrequency = frequency(rec, "atis_frequency")
	a.AwosFrequency = frequency(rec, "awos_frequency")
	a.AsosFrequency = frequency(rec, "asos_frequency")
	a.UnicomFrequency = frequency(rec, "unicom_frequency")
	a.LongestRunwaySurface = rec.String("longest_runway_surface")
	a.Altitude = rec.Float("altitude")
	if !rec.IsNull("tower_lonx") {
		a.TowerPosition = position(rec, "tower_lonx", "tower_laty")
	}
	a.Flags |= airportFlags(rec)
	return a
}

// FillAirportForOverview fills the subset of fields that the overview
// tables have.
func (TypesFactory) FillAirportForOverview(rec sqldb.Record) aviation.Airport {
	return fillAirportOverview(rec)
}

func fillAirportOverview(rec sqldb.Record) aviation.Airport {
	return aviation.Airport{
		ID:                   rec.Int("airport_id"),
		Ident:                rec.String("ident"),
		Name:                 rec.String("name"),
		Rating:               rec.Int("rating"),
		LongestRunwayLength:  rec.Int("longest_runway_length"),
		LongestRunwayHeading: rec.Float("longest_runway_heading"),
		MagVar:               rec.Float("mag_var"),
		Position:             position(rec, "lonx", "laty"),
		Bounding: math.LatLonBox{
			West:  rec.Float64("left_lonx"),
			East:  rec.Float64("right_lonx"),
			North: rec.Float64("top_laty"),
			South: rec.Float64("bottom_laty"),
		},
		Flags:    airportFlags(rec),
		Overview: true,
	}
}

func airportFlags(rec sqldb.Record) aviation.AirportFlags {
	var f aviation.AirportFlags
	flag := func(set bool, v aviation.AirportFlags) {
		if set {
			f |= v
		}
	}
	count := func(cols ...string) int {
		n := 0
		for _, c := range cols {
			n += rec.Int(c)
		}
		return n
	}

	flag(rec.Bool("is_closed"), aviation.AirportFlagClosed)
	flag(rec.Bool("is_military"), aviation.AirportFlagMilitary)
	flag(rec.Bool("is_addon"), aviation.AirportFlagAddon)
	flag(rec.Bool("has_avgas"), aviation.AirportFlagAvgas)
	flag(rec.Bool("has_jetfuel"), aviation.AirportFlagJetfuel)
	flag(rec.Bool("has_tower_object"), aviation.AirportFlagTowerObject)
	flag(rec.Int("tower_frequency") > 0, aviation.AirportFlagTower)

	flag(count("num_runway_hard") > 0, aviation.AirportFlagHard)
	flag(count("num_runway_soft") > 0, aviation.AirportFlagSoft)
	flag(count("num_runway_water") > 0, aviation.AirportFlagWater)
	flag(count("num_runway_light") > 0, aviation.AirportFlagLighting)
	flag(count("num_approach") > 0, aviation.AirportFlagApproach)
	flag(count("num_runway_end_ils") > 0, aviation.AirportFlagIls)
	flag(count("num_runway_end_vasi") > 0, aviation.AirportFlagVasi)
	flag(count("num_runway_end_als") > 0, aviation.AirportFlagAls)
	flag(count("num_boundary_fence") > 0, aviation.AirportFlagFence)
	flag(count("num_helipad") > 0, aviation.AirportFlagHelipad)

	aprons, taxi := count("num_apron"), count("num_taxi_path")
	parking := count("num_parking_gate", "num_parking_ga_ramp", "num_parking_cargo",
		"num_parking_mil_cargo", "num_parking_mil_combat")
	flag(aprons > 0, aviation.AirportFlagApron)
	flag(taxi > 0, aviation.AirportFlagTaxiway)
	flag(parking > 0, aviation.AirportFlagParking)
	flag(aprons+taxi+parking > 0, aviation.AirportFlagScenery)

	return f
}

func (TypesFactory) FillAirportAdminNames(rec sqldb.Record) aviation.AirportAdminNames {
	return aviation.AirportAdminNames{
		City:    rec.String("city"),
		State:   rec.String("state"),
		Country: rec.String("country"),
	}
}

func (TypesFactory) FillVor(rec sqldb.Record) aviation.Vor {
	typ := rec.String("type")
	return aviation.Vor{
		ID:        rec.Int("vor_id"),
		Ident:     rec.String("ident"),
		Region:    rec.String("region"),
		Name:      rec.String("name"),
		Type:      typ,
		Frequency: frequency(rec, "frequency"),
		Channel:   rec.String("channel"),
		Range:     rec.Int("range"),
		DmeOnly:   rec.Bool("dme_only"),
		HasDme:    !rec.IsNull("dme_altitude"),
		Tacan:     strings.HasPrefix(typ, "TC"),
		MagVar:    rec.Float("mag_var"),
		Altitude:  rec.Float("altitude"),
		Position:  position(rec, "lonx", "laty"),
	}
}

func (TypesFactory) FillNdb(rec sqldb.Record) aviation.Ndb {
	return aviation.Ndb{
		ID:        rec.Int("ndb_id"),
		Ident:     rec.String("ident"),
		Region:    rec.String("region"),
		Name:      rec.String("name"),
		Type:      rec.String("type"),
		Frequency: frequency(rec, "frequency"),
		Range:     rec.Int("range"),
		MagVar:    rec.Float("mag_var"),
		Altitude:  rec.Float("altitude"),
		Position:  position(rec, "lonx", "laty"),
	}
}

func (TypesFactory) FillWaypoint(rec sqldb.Record) aviation.Waypoint {
	return aviation.Waypoint{
		ID:              rec.Int("waypoint_id"),
		Ident:           rec.String("ident"),
		Region:          rec.String("region"),
		Type:            rec.String("type"),
		NumVictorAirway: rec.Int("num_victor_airway"),
		NumJetAirway:    rec.Int("num_jet_airway"),
		MagVar:          rec.Float("mag_var"),
		Position:        position(rec, "lonx", "laty"),
	}
}

func (TypesFactory) FillMarker(rec sqldb.Record) aviation.Marker {
	return aviation.Marker{
		ID:       rec.Int("marker_id"),
		Ident:    rec.String("ident"),
		Type:     rec.String("type"),
		Heading:  rec.Float("heading"),
		Position: position(rec, "lonx", "laty"),
	}
}

func (TypesFactory) FillIls(rec sqldb.Record) aviation.Ils {
	ils := aviation.Ils{
		ID:            rec.Int("ils_id"),
		Ident:         rec.String("ident"),
		Name:          rec.String("name"),
		Region:        rec.String("region"),
		Frequency:     frequency(rec, "frequency"),
		Range:         rec.Int("range"),
		DmeRange:      rec.Int("dme_range"),
		HasDme:        rec.Int("dme_range") > 0,
		HasGlideslope: !rec.IsNull("gs_pitch"),
		Slope:         rec.Float("gs_pitch"),
		Heading:       rec.Float("loc_heading"),
		Width:         rec.Float("loc_width"),
		MagVar:        rec.Float("mag_var"),
		Altitude:      rec.Float("altitude"),
		Position:      position(rec, "lonx", "laty"),
		Pos1:          position(rec, "end1_lonx", "end1_laty"),
		Pos2:          position(rec, "end2_lonx", "end2_laty"),
		PosMid:        position(rec, "end_mid_lonx", "end_mid_laty"),
	}
	ils.Bounding = math.LineString{ils.Position, ils.Pos1, ils.Pos2}.Bounds()
	return ils
}

func (TypesFactory) FillAirway(rec sqldb.Record) aviation.Airway {
	return aviation.Airway{
		ID:             rec.Int("airway_id"),
		Name:           rec.String("airway_name"),
		Type:           aviation.ParseAirwayType(rec.String("airway_type")),
		Fragment:       rec.Int("airway_fragment_no"),
		Sequence:       rec.Int("sequence_no"),
		FromWaypointID: rec.Int("from_waypoint_id"),
		ToWaypointID:   rec.Int("to_waypoint_id"),
		MinAltitude:    rec.Int("minimum_altitude"),
		From:           position(rec, "from_lonx", "from_laty"),
		To:             position(rec, "to_lonx", "to_laty"),
		Bounding: math.LatLonBox{
			West:  rec.Float64("left_lonx"),
			East:  rec.Float64("right_lonx"),
			North: rec.Float64("top_laty"),
			South: rec.Float64("bottom_laty"),
		},
	}
}

// FillAirspace leaves the type zero for type codes it doesn't know.
func (TypesFactory) FillAirspace(rec sqldb.Record) aviation.Airspace {
	typ, _ := aviation.ParseAirspaceType(rec.String("type"))
	return aviation.Airspace{
		ID:              rec.Int("boundary_id"),
		Type:            typ,
		Name:            rec.String("name"),
		ComType:         rec.String("com_type"),
		ComName:         rec.String("com_name"),
		ComFrequency:    frequency(rec, "com_frequency"),
		MinAltitudeType: rec.String("min_altitude_type"),
		MaxAltitudeType: rec.String("max_altitude_type"),
		MinAltitude:     rec.Int("min_altitude"),
		MaxAltitude:     rec.Int("max_altitude"),
		Bounding: math.LatLonBox{
			West:  rec.Float64("min_lonx"),
			East:  rec.Float64("max_lonx"),
			North: rec.Float64("max_laty"),
			South: rec.Float64("min_laty"),
		},
	}
}

func (TypesFactory) FillRunway(rec sqldb.Record) aviation.Runway {
	return aviation.Runway{
		ID:                rec.Int("runway_id"),
		AirportID:         rec.Int("airport_id"),
		Length:            rec.Int("length"),
		Width:             rec.Int("width"),
		Heading:           rec.Float("heading"),
		Surface:           rec.String("surface"),
		EdgeLight:         rec.String("edge_light"),
		PrimaryName:       rec.String("primary_name"),
		SecondaryName:     rec.String("secondary_name"),
		PrimaryEndID:      rec.Int("primary_end_id"),
		SecondaryEndID:    rec.Int("secondary_end_id"),
		PrimaryOffset:     rec.Int("primary_offset_threshold"),
		SecondaryOffset:   rec.Int("secondary_offset_threshold"),
		PrimaryClosed:     rec.Bool("primary_closed_markings"),
		SecondaryClosed:   rec.Bool("secondary_closed_markings"),
		Position:          position(rec, "lonx", "laty"),
		PrimaryPosition:   position(rec, "primary_lonx", "primary_laty"),
		SecondaryPosition: position(rec, "secondary_lonx", "secondary_laty"),
	}
}

func (TypesFactory) FillRunwayEnd(rec sqldb.Record) aviation.RunwayEnd {
	return aviation.RunwayEnd{
		ID:        rec.Int("runway_end_id"),
		Name:      rec.String("name"),
		Heading:   rec.Float("heading"),
		Secondary: rec.String("end_type") == "S",
		Position:  position(rec, "lonx", "laty"),
	}
}

func (TypesFactory) FillParking(rec sqldb.Record) aviation.Parking {
	return aviation.Parking{
		ID:           rec.Int("parking_id"),
		AirportID:    rec.Int("airport_id"),
		Type:         rec.String("type"),
		Name:         rec.String("name"),
		AirlineCodes: rec.String("airline_codes"),
		Number:       rec.Int("number"),
		Radius:       rec.Float("radius"),
		Heading:      rec.Float("heading"),
		Jetway:       rec.Bool("has_jetway"),
		Position:     position(rec, "lonx", "laty"),
	}
}

func (TypesFactory) FillStart(rec sqldb.Record) aviation.Start {
	return aviation.Start{
		ID:         rec.Int("start_id"),
		AirportID:  rec.Int("airport_id"),
		Type:       rec.String("type"),
		RunwayName: rec.String("runway_name"),
		Number:     rec.Int("number"),
		Heading:    rec.Float("heading"),
		Position:   position(rec, "lonx", "laty"),
	}
}

func (TypesFactory) FillHelipad(rec sqldb.Record) aviation.Helipad {
	h := aviation.Helipad{
		ID:          rec.Int("helipad_id"),
		StartID:     -1,
		StartNumber: rec.Int("start_number"),
		Type:        rec.String("type"),
		Surface:     rec.String("surface"),
		Width:       rec.Int("width"),
		Length:      rec.Int("length"),
		Heading:     rec.Float("heading"),
		Transparent: rec.Bool("is_transparent"),
		Closed:      rec.Bool("is_closed"),
		Position:    position(rec, "lonx", "laty"),
	}
	if !rec.IsNull("start_id") {
		h.StartID = rec.Int("start_id")
	}
	return h
}

func (TypesFactory) FillTaxiPath(rec sqldb.Record) aviation.TaxiPath {
	typ := rec.String("type")
	return aviation.TaxiPath{
		Type:        typ,
		Name:        rec.String("name"),
		Surface:     rec.String("surface"),
		Width:       rec.Int("width"),
		Closed:      typ == "C",
		DrawSurface: rec.Bool("is_draw_surface"),
		Start:       position(rec, "start_lonx", "start_laty"),
		End:         position(rec, "end_lonx", "end_laty"),
	}
}

func (TypesFactory) FillApron(rec sqldb.Record) aviation.Apron {
	return aviation.Apron{
		Surface:     rec.String("surface"),
		DrawSurface: rec.Bool("is_draw_surface"),
		Vertices:    math.DecodeLineString(rec.Bytes("vertices")),
	}
}
