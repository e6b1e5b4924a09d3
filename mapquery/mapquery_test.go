// mapquery/mapquery_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package mapquery

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/skychart/mapquery/aviation"
	"github.com/skychart/mapquery/config"
	"github.com/skychart/mapquery/layer"
	"github.com/skychart/mapquery/math"
	"github.com/skychart/mapquery/sqldb"
)

var airspaceOutline = math.LineString{{-74.5, 40.2}, {-73.0, 40.2}, {-73.0, 41.2}, {-74.5, 41.2}}

// openTestDatabase returns an in-memory scenery database with the
// fixture from testdata/schema.sql.
func openTestDatabase(t *testing.T) *sqldb.CountingDatabase {
	t.Helper()

	db, err := sqldb.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	schema, err := os.ReadFile(filepath.Join("testdata", "schema.sql"))
	if err != nil {
		t.Fatal(err)
	}
	for _, stmt := range strings.Split(string(schema), ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if err := db.Exec(stmt); err != nil {
			t.Fatalf("%s: %v", stmt, err)
		}
	}

	// Binary columns.
	truncated := slices.Concat(airspaceOutline, math.LineString{{-74.5, 40.2}}).Encode()[:4+2*8]
	for _, row := range [][]any{
		{1, "CB", "NEW YORK CLASS B", 0, 7000, airspaceOutline.Encode()},
		{2, "C", "NEW YORK CENTER", 18000, 60000, truncated},
		{3, "R", "R-4001", 0, 3000, nil},
		{4, "CE", "NEW YORK CLASS E", 1200, 18000, nil},
	} {
		if err := db.Exec(`insert into boundary (boundary_id, type, name, min_altitude, max_altitude,
			max_lonx, max_laty, min_lonx, min_laty, geometry) values (?, ?, ?, ?, ?, -73.0, 41.2, -74.5, 40.2, ?)`,
			row...); err != nil {
			t.Fatalf("boundary: %v", err)
		}
	}
	apron := math.LineString{{-80.003, 30.0}, {-80.001, 30.0}, {-80.001, 30.002}, {-80.003, 30.002}}
	if err := db.Exec("insert into apron (apron_id, airport_id, surface, vertices) values (1, 10, 'A', ?)",
		apron.Encode()); err != nil {
		t.Fatalf("apron: %v", err)
	}

	return &sqldb.CountingDatabase{Database: db}
}

func newTestMapQuery(t *testing.T) (*MapQuery, *sqldb.CountingDatabase) {
	t.Helper()
	db := openTestDatabase(t)
	mq := New(db, config.DefaultMapQuery(), nil)
	if err := mq.InitQueries(); err != nil {
		t.Fatalf("init: %v", err)
	}
	t.Cleanup(mq.DeInitQueries)
	return mq, db
}

var newYork = math.NewLatLonBox(-74.0, 40.4, -73.4, 41.0)

func idents[T any](items []T, ident func(T) string) []string {
	var s []string
	for _, it := range items {
		s = append(s, ident(it))
	}
	return s
}

func airportIdents(ap []aviation.Airport) []string {
	return idents(ap, func(a aviation.Airport) string { return a.Ident })
}

func TestAirportsIdempotentHit(t *testing.T) {
	mq, db := newTestMapQuery(t)
	l := layer.New(100)

	a, stale, err := mq.Airports(newYork, l, false)
	if err != nil || stale {
		t.Fatalf("unexpected stale %v err %v", stale, err)
	}
	execs := db.Execs
	if execs != 1 {
		t.Errorf("got %d queries, expected 1", execs)
	}

	b, _, _ := mq.Airports(newYork, l, false)
	c, _, _ := mq.Airports(math.NewLatLonBox(-73.9, 40.5, -73.5, 40.9), l, false)
	if db.Execs != execs {
		t.Errorf("repeated requests queried the database")
	}
	if !slices.Equal(airportIdents(a), airportIdents(b)) || !slices.Equal(airportIdents(a), airportIdents(c)) {
		t.Errorf("got %v, %v and %v", airportIdents(a), airportIdents(b), airportIdents(c))
	}
}

func TestAirportsDrawingOrder(t *testing.T) {
	mq, _ := newTestMapQuery(t)
	l := layer.New(100)

	ap, _, err := mq.Airports(newYork, l, false)
	if err != nil {
		t.Fatal(err)
	}
	if got, expected := airportIdents(ap), []string{"EMP", "N00", "KLGA", "KJFK"}; !slices.Equal(got, expected) {
		t.Errorf("got %v, expected %v", got, expected)
	}
	if ap[3].Overview || !ap[3].Scenery() || !ap[3].Has(aviation.AirportFlagTower) || ap[3].TowerPosition.IsZero() {
		t.Errorf("KJFK not filled completely: %+v", ap[3])
	}

	l.MinRunwayLength = 5000
	ap, _, _ = mq.Airports(newYork, l, false)
	if got, expected := airportIdents(ap), []string{"KLGA", "KJFK"}; !slices.Equal(got, expected) {
		t.Errorf("minimum runway length: got %v, expected %v", got, expected)
	}
}

func TestAirportsDataSource(t *testing.T) {
	mq, _ := newTestMapQuery(t)
	l := layer.New(1000)
	l.AirportSource = layer.SourceLarge

	ap, _, err := mq.Airports(newYork, l, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(ap) != 1 || ap[0].Ident != "KJFK" || !ap[0].Overview {
		t.Errorf("got %+v", ap)
	}

	l.AirportSource = layer.SourceMedium
	ap, _, _ = mq.Airports(newYork, l, false)
	if got := airportIdents(ap); !slices.Equal(got, []string{"KLGA", "KJFK"}) {
		t.Errorf("medium: got %v", got)
	}
}

func TestAirportsAntiMeridian(t *testing.T) {
	mq, db := newTestMapQuery(t)

	box := math.NewLatLonBox(170, -20, -170, -10)
	ap, _, err := mq.Airports(box, layer.New(1000), false)
	if err != nil {
		t.Fatal(err)
	}
	got := airportIdents(ap)
	slices.Sort(got)
	if !slices.Equal(got, []string{"NFFN", "NSFA"}) {
		t.Errorf("got %v", got)
	}
	if db.Execs != 2 {
		t.Errorf("got %d queries, expected one per side", db.Execs)
	}

	vors, _, _ := mq.Vors(box, layer.New(1000), false)
	if len(vors) != 1 || vors[0].Ident != "NAN" {
		t.Errorf("got vors %+v", vors)
	}
}

func TestLazyFetch(t *testing.T) {
	mq, db := newTestMapQuery(t)
	l := layer.New(100)

	vors, stale, err := mq.Vors(newYork, l, true)
	if err != nil || !stale || len(vors) != 0 || db.Execs != 0 {
		t.Errorf("empty cache: got %d vors stale %v err %v queries %d", len(vors), stale, err, db.Execs)
	}

	if vors, _, _ = mq.Vors(newYork, l, false); len(vors) != 2 {
		t.Fatalf("got %d vors, expected 2", len(vors))
	}
	execs := db.Execs

	vors, stale, _ = mq.Vors(math.NewLatLonBox(0, 50, 2, 52), l, true)
	if !stale || len(vors) != 2 || db.Execs != execs {
		t.Errorf("stale: got %d vors stale %v", len(vors), stale)
	}
}

func TestHiddenKindIsNotQueried(t *testing.T) {
	mq, db := newTestMapQuery(t)
	l := layer.New(100)
	l.Ndb = false

	ndbs, _, err := mq.Ndbs(newYork, l, false)
	if err != nil || len(ndbs) != 0 || db.Execs != 0 {
		t.Errorf("got %v err %v queries %d", ndbs, err, db.Execs)
	}
}

func airspaceIDs(as []aviation.Airspace) []int {
	var ids []int
	for _, a := range as {
		ids = append(ids, a.ID)
	}
	return ids
}

func TestAirspaces(t *testing.T) {
	mq, db := newTestMapQuery(t)
	l := layer.New(100)

	for _, test := range []struct {
		filter   aviation.AirspaceFilter
		expected []int
		queries  int
	}{
		// Center, Class E, Class B, Restricted
		{aviation.AirspaceFilter{Types: aviation.AirspaceAll}, []int{2, 4, 1, 3}, 1},
		{aviation.AirspaceFilter{Types: aviation.AirspaceAll | aviation.AirspaceBelow10000}, []int{4, 1, 3}, 1},
		{aviation.AirspaceFilter{Types: aviation.AirspaceAll | aviation.AirspaceAbove18000}, []int{2}, 1},
		{aviation.AirspaceFilter{Types: aviation.AirspaceAll | aviation.AirspaceAtAltitude, Altitude: 5000}, []int{4, 1}, 1},
		{aviation.AirspaceFilter{Types: aviation.AirspaceAll | aviation.AirspaceAtFlightplan, Altitude: 20000}, []int{2}, 1},
		// Floor and ceiling count as inside.
		{aviation.AirspaceFilter{Types: aviation.AirspaceAll | aviation.AirspaceAtFlightplan, Altitude: 7000}, []int{4, 1}, 1},
		// Same altitude after rounding is the same filter.
		{aviation.AirspaceFilter{Types: aviation.AirspaceAll | aviation.AirspaceAtFlightplan, Altitude: 7000.2}, []int{4, 1}, 0},
		{aviation.AirspaceFilter{Types: aviation.AirspaceAll | aviation.AirspaceAtFlightplan, Altitude: 18000}, []int{2, 4}, 1},
		{aviation.AirspaceFilter{Types: aviation.AirspaceClassB | aviation.AirspaceRestricted}, []int{1, 3}, 2},
		{aviation.AirspaceFilter{Types: aviation.AirspaceNone}, nil, 0},
	} {
		execs := db.Execs
		as, _, err := mq.Airspaces(newYork, l, test.filter, false)
		if err != nil {
			t.Fatal(err)
		}
		if got := airspaceIDs(as); !slices.Equal(got, test.expected) {
			t.Errorf("%s: got %v, expected %v", test.filter.Types, got, test.expected)
		}
		if n := db.Execs - execs; n != test.queries {
			t.Errorf("%s: got %d queries, expected %d", test.filter.Types, n, test.queries)
		}
	}

	// Changing the filter clears the cache even for lazy requests.
	filter := aviation.AirspaceFilter{Types: aviation.AirspaceAll}
	mq.Airspaces(newYork, l, filter, false)
	filter.Types |= aviation.AirspaceBelow18000
	if as, stale, _ := mq.Airspaces(newYork, l, filter, true); len(as) != 0 || !stale {
		t.Errorf("filter change: got %v stale %v", airspaceIDs(as), stale)
	}
}

func TestAirspaceGeometry(t *testing.T) {
	mq, db := newTestMapQuery(t)

	ls, err := mq.AirspaceGeometry(1)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(ls, airspaceOutline) {
		t.Errorf("got %v", ls)
	}

	if ls, _ = mq.AirspaceGeometry(2); len(ls) != 2 {
		t.Errorf("truncated geometry: got %d points, expected 2", len(ls))
	}

	ls, err = mq.AirspaceGeometry(99)
	if err != nil || ls == nil || len(ls) != 0 {
		t.Errorf("unknown id: got %v err %v", ls, err)
	}
	execs := db.Execs
	mq.AirspaceGeometry(99)
	mq.AirspaceGeometry(1)
	if db.Execs != execs {
		t.Errorf("cached geometry was queried again")
	}
}

func TestRunways(t *testing.T) {
	mq, db := newTestMapQuery(t)

	rw, err := mq.Runways(10)
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, r := range rw {
		got = append(got, r.Surface+"-"+r.PrimaryName)
	}
	// grass 3000, asphalt 2000, asphalt 5000
	if expected := []string{"GR-09", "A-13", "A-04"}; !slices.Equal(got, expected) {
		t.Errorf("got %v, expected %v", got, expected)
	}
	if rw[0].SecondaryName != "27" || rw[0].Length != 3000 {
		t.Errorf("runway not filled: %+v", rw[0])
	}

	execs := db.Execs
	mq.Runways(10)
	if db.Execs != execs {
		t.Errorf("cached runways were queried again")
	}

	if ov, _ := mq.RunwaysForOverview(10); len(ov) != 1 || ov[0].Length != 5000 {
		t.Errorf("overview: got %+v", ov)
	}
	if names, _ := mq.RunwayNames(10); len(names) != 6 {
		t.Errorf("names: got %v", names)
	}
	if rw, err := mq.Runways(1234); err != nil || len(rw) != 0 {
		t.Errorf("unknown airport: got %v %v", rw, err)
	}
}

func TestAirportElements(t *testing.T) {
	mq, _ := newTestMapQuery(t)

	aprons, err := mq.Aprons(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(aprons) != 1 || len(aprons[0].Vertices) != 4 {
		t.Errorf("aprons: got %+v", aprons)
	}

	paths, _ := mq.TaxiPaths(10)
	if len(paths) != 2 || paths[0].Closed || !paths[1].Closed {
		t.Errorf("taxi paths: got %+v", paths)
	}

	helipads, _ := mq.Helipads(10)
	if len(helipads) != 2 || helipads[0].StartID != 103 || helipads[0].StartNumber != 1 || helipads[1].StartID != -1 {
		t.Errorf("helipads: got %+v", helipads)
	}

	if starts, _ := mq.StartPositions(10); len(starts) != 3 {
		t.Errorf("starts: got %+v", starts)
	}

	if p, _ := mq.ParkingByNameAndNumber(10, "RAMP", 2); len(p) != 1 || p[0].ID != 3 {
		t.Errorf("parking by name: got %+v", p)
	}
	if p, _ := mq.ParkingByNameAndNumber(10, "", 1); len(p) != 2 {
		t.Errorf("parking by number: got %+v", p)
	}

	names, err := mq.AirportAdminNames(1)
	if err != nil || names.City != "New York" || names.Country != "United States" {
		t.Errorf("admin names: got %+v %v", names, err)
	}
}

func TestStartByNameAndPos(t *testing.T) {
	mq, _ := newTestMapQuery(t)
	pos := math.Point2LL{-80.0, 30.0}

	for _, name := range []string{"9", "09", "RW09"} {
		s, err := mq.StartByNameAndPos(10, name, pos)
		if err != nil {
			t.Fatal(err)
		}
		// 102 is 50m away, 101 200m.
		if s.ID != 102 {
			t.Errorf("%s: got start %d, expected 102", name, s.ID)
		}
	}

	if s, _ := mq.StartByNameAndPos(10, "1", pos); s.ID != 103 || s.Type != "H" {
		t.Errorf("helipad start: got %+v", s)
	}
	if s, _ := mq.StartByNameAndPos(10, "18", pos); s.IsValid() {
		t.Errorf("expected no start, got %+v", s)
	}
}

func TestBestStartPosition(t *testing.T) {
	mq, _ := newTestMapQuery(t)

	// The longest runway is grass; the shorter asphalt one is preferred.
	s, err := mq.BestStartPositionForAirport(11)
	if err != nil {
		t.Fatal(err)
	}
	if s.ID != 112 {
		t.Errorf("got start %d, expected 112", s.ID)
	}

	if s, _ = mq.BestStartPositionForAirport(10); s.ID != 101 {
		t.Errorf("got start %d, expected 101", s.ID)
	}
	if s, _ = mq.BestStartPositionForAirport(1); s.IsValid() {
		t.Errorf("expected no start, got %+v", s)
	}
}

func TestMapObjectByIdent(t *testing.T) {
	mq, _ := newTestMapQuery(t)

	vorIDs := func(r *aviation.SearchResult) []int {
		var ids []int
		for _, v := range r.Vors {
			ids = append(ids, v.ID)
		}
		return ids
	}

	r := aviation.NewSearchResult()
	if err := mq.MapObjectByIdent(r, aviation.TypeVor, "jfk", "", "", math.Point2LL{}, 0); err != nil {
		t.Fatal(err)
	}
	if got := vorIDs(r); !slices.Equal(got, []int{1, 3}) {
		t.Errorf("unsorted: got %v", got)
	}

	r = aviation.NewSearchResult()
	mq.MapObjectByIdent(r, aviation.TypeVor, "JFK", "", "", math.Point2LL{1.0, 51.0}, 0)
	if got := vorIDs(r); !slices.Equal(got, []int{3, 1}) {
		t.Errorf("sorted: got %v", got)
	}

	r = aviation.NewSearchResult()
	mq.MapObjectByIdent(r, aviation.TypeVor, "JFK", "", "", math.Point2LL{1.0, 51.0}, 100000)
	if got := vorIDs(r); !slices.Equal(got, []int{3}) {
		t.Errorf("trimmed: got %v", got)
	}

	r = aviation.NewSearchResult()
	mq.MapObjectByIdent(r, aviation.TypeVor|aviation.TypeNdb, "JFK", "K6", "", math.Point2LL{}, 0)
	if got := vorIDs(r); !slices.Equal(got, []int{1}) || len(r.Ndbs) != 0 {
		t.Errorf("region: got %v", got)
	}

	r = aviation.NewSearchResult()
	mq.MapObjectByIdent(r, aviation.TypeAirport|aviation.TypeRunwayEnd, "KJFK", "", "", math.Point2LL{}, 0)
	if len(r.Airports) != 1 || len(r.RunwayEnds) != 0 {
		t.Errorf("airport: got %+v", r)
	}

	r = aviation.NewSearchResult()
	mq.MapObjectByIdent(r, aviation.TypeRunwayEnd, "RW09", "", "TEST", math.Point2LL{}, 0)
	if len(r.RunwayEnds) != 1 || r.RunwayEnds[0].ID != 21 {
		t.Errorf("runway end: got %+v", r.RunwayEnds)
	}

	r = aviation.NewSearchResult()
	mq.MapObjectByIdent(r, aviation.TypeIls, "IJFK", "", "", math.Point2LL{}, 0)
	if len(r.Ils) != 1 || !r.Ils[0].HasGlideslope {
		t.Errorf("ils: got %+v", r.Ils)
	}

	r = aviation.NewSearchResult()
	mq.MapObjectByIdent(r, aviation.TypeAirwayJ, "V1", "", "", math.Point2LL{}, 0)
	if len(r.Airways) != 0 {
		t.Errorf("jet filter: got %+v", r.Airways)
	}
	mq.MapObjectByIdent(r, aviation.TypeAirwayV, "V1", "", "", math.Point2LL{}, 0)
	if len(r.Airways) != 3 {
		t.Errorf("victor: got %d segments", len(r.Airways))
	}
}

func TestMapObjectByID(t *testing.T) {
	mq, _ := newTestMapQuery(t)

	r := aviation.NewSearchResult()
	for _, obj := range []struct {
		t  aviation.ObjectTypes
		id int
	}{
		{aviation.TypeAirport, 1}, {aviation.TypeVor, 2}, {aviation.TypeNdb, 1}, {aviation.TypeWaypoint, 4},
		{aviation.TypeIls, 1}, {aviation.TypeRunwayEnd, 22}, {aviation.TypeAirwayV, 1}, {aviation.TypeAirspace, 3},
		{aviation.TypeVor, 999},
	} {
		if err := mq.MapObjectByID(r, obj.t, obj.id); err != nil {
			t.Fatal(err)
		}
	}
	if r.Size() != 8 {
		t.Errorf("got %d objects, expected 8", r.Size())
	}
	if r.Waypoints[0].Ident != "ALPHA" || r.RunwayEnds[0].Name != "27" || !r.RunwayEnds[0].Secondary {
		t.Errorf("got %+v", r)
	}

	if err := mq.MapObjectByID(r, aviation.TypeParking, 1); !errors.Is(err, ErrUnknownObjectType) {
		t.Errorf("expected ErrUnknownObjectType, got %v", err)
	}
}

func TestNavaidRelations(t *testing.T) {
	mq, _ := newTestMapQuery(t)

	if v, _ := mq.VorForWaypoint(3); v.ID != 1 {
		t.Errorf("vor for waypoint: got %+v", v)
	}
	if v, _ := mq.VorForWaypoint(1); v.IsValid() {
		t.Errorf("expected no vor, got %+v", v)
	}
	if n, _ := mq.NdbForWaypoint(6); n.ID != 1 {
		t.Errorf("ndb for waypoint: got %+v", n)
	}
	if v, _ := mq.VorNearest(math.Point2LL{1.0, 51.0}); v.ID != 3 {
		t.Errorf("nearest vor: got %+v", v)
	}
	if n, _ := mq.NdbNearest(math.Point2LL{1.0, 51.1}); n.ID != 2 {
		t.Errorf("nearest ndb: got %+v", n)
	}
	if a, _ := mq.AirportByIdent("KLGA"); a.ID != 2 {
		t.Errorf("airport by ident: got %+v", a)
	}
}

func TestAirwayWaypoints(t *testing.T) {
	mq, db := newTestMapQuery(t)

	wps, err := mq.WaypointListForAirwayName("V1")
	if err != nil {
		t.Fatal(err)
	}
	got := idents(wps, func(w aviation.AirwayWaypoint) string { return w.Waypoint.Ident })
	if expected := []string{"MERIT", "GREKI", "ALPHA", "BRAVO", "JFK"}; !slices.Equal(got, expected) {
		t.Errorf("got %v, expected %v", got, expected)
	}
	if wps[3].Fragment != 2 || wps[4].Fragment != 2 || wps[2].AirwayID != 2 {
		t.Errorf("got %+v", wps)
	}

	aw, ok, err := mq.AirwayByNameAndWaypoint("V1", "ALPHA", "GREKI")
	if err != nil || !ok || aw.ID != 2 {
		t.Errorf("segment: got %+v %v %v", aw, ok, err)
	}
	execs := db.Execs
	if _, ok, _ := mq.AirwayByNameAndWaypoint("V1", "", "GREKI"); ok || db.Execs != execs {
		t.Errorf("empty waypoint was queried")
	}

	w, _ := mq.WaypointsForAirway("", "GREKI")
	if len(w) != 1 || w[0].ID != 2 {
		t.Errorf("waypoints for any airway: got %+v", w)
	}
	if w, _ = mq.WaypointsForAirway("J5", "JFK"); len(w) != 0 {
		t.Errorf("expected no waypoints, got %+v", w)
	}
	if w, _ = mq.WaypointsForAirway("V1", "GREKI"); len(w) != 1 {
		t.Errorf("exact airway: got %+v", w)
	}
	// Names are matched exactly, not as patterns.
	if w, _ = mq.WaypointsForAirway("V_", "GREKI"); len(w) != 0 {
		t.Errorf("pattern airway name: got %+v", w)
	}
	if w, _ = mq.WaypointsForAirway("", "GR%"); len(w) != 0 {
		t.Errorf("pattern waypoint ident: got %+v", w)
	}

	if aw, _ := mq.AirwaysForWaypoint(2); len(aw) != 3 {
		t.Errorf("airways for waypoint: got %+v", aw)
	}
}

func TestNearestObjects(t *testing.T) {
	mq, db := newTestMapQuery(t)
	l := layer.New(100)

	for _, fetch := range []func() error{
		func() error { _, _, err := mq.Airports(newYork, l, false); return err },
		func() error { _, _, err := mq.Vors(newYork, l, false); return err },
		func() error { _, _, err := mq.Waypoints(newYork, l, false); return err },
		func() error { _, _, err := mq.Ils(newYork, l, false); return err },
	} {
		if err := fetch(); err != nil {
			t.Fatal(err)
		}
	}
	execs := db.Execs

	// 1000 pixels per degree: the JFK VOR is at (200, 400).
	proj := math.ViewportProjection{Box: newYork, Width: 600, Height: 600}

	r := mq.NearestObjects(proj, l, false, aviation.TypeAll, 200, 400, 50)
	if len(r.Vors) != 1 || r.Vors[0].Ident != "JFK" || len(r.Waypoints) != 1 || len(r.Ils) != 1 {
		t.Errorf("got %+v", r)
	}
	if len(r.Airports) != 0 {
		t.Errorf("KJFK is 60 pixels away, got %v", airportIdents(r.Airports))
	}
	if !r.VorIDs.Contains(1) {
		t.Errorf("vor id not recorded")
	}

	r = mq.NearestObjects(proj, l, true, aviation.TypeAll, 200, 400, 100)
	if got := airportIdents(r.Airports); !slices.Equal(got, []string{"KJFK"}) || len(r.Towers) != 1 {
		t.Errorf("got airports %v towers %d", got, len(r.Towers))
	}

	r = mq.NearestObjects(proj, l, false, aviation.TypeAirport|aviation.TypeAirportSoft, 200, 400, 100)
	if len(r.Airports) != 0 || len(r.Vors) != 0 {
		t.Errorf("hard surfaced airport shown for soft filter: %+v", r)
	}

	// Airway waypoints only.
	l.Waypoint, l.AirwayWaypoint = false, true
	r = mq.NearestObjects(proj, l, false, aviation.TypeAirwayJ, 200, 400, 50)
	if len(r.Waypoints) != 0 {
		t.Errorf("JFK has no jet airways, got %+v", r.Waypoints)
	}
	r = mq.NearestObjects(proj, l, false, aviation.TypeAirwayV, 200, 400, 50)
	if len(r.Waypoints) != 1 {
		t.Errorf("JFK has victor airways, got %+v", r.Waypoints)
	}

	if db.Execs != execs {
		t.Errorf("hit test queried the database")
	}
}

func TestNearestParking(t *testing.T) {
	mq, _ := newTestMapQuery(t)
	if _, err := mq.Parkings(10); err != nil {
		t.Fatal(err)
	}

	// 10000 pixels per degree.
	proj := math.ViewportProjection{Box: math.NewLatLonBox(-80.01, 29.99, -79.99, 30.01), Width: 200, Height: 200}
	l := layer.New(1)

	r := mq.NearestObjects(proj, l, true, aviation.TypeParking, 45, 90, 50)
	var got []int
	for _, p := range r.Parkings {
		got = append(got, p.ID)
	}
	if !slices.Equal(got, []int{3, 2, 1}) {
		t.Errorf("got parking %v, expected [3 2 1]", got)
	}

	if r = mq.NearestObjects(proj, l, false, aviation.TypeParking, 45, 90, 50); len(r.Parkings) != 0 {
		t.Errorf("parking found outside of airport diagram")
	}
}

func TestInfoQuery(t *testing.T) {
	mq, db := newTestMapQuery(t)

	rec, ok, err := mq.Info.AirportInformation(1)
	if err != nil || !ok {
		t.Fatalf("got %v %v", ok, err)
	}
	if rec.String("ident") != "KJFK" || rec.String("filename") != "apx.bgl" || rec.String("scenery_title") != "Default Terrain" {
		t.Errorf("got %v", rec)
	}

	if _, ok, err = mq.Info.AirportInformation(999); ok || err != nil {
		t.Errorf("unknown airport: got %v %v", ok, err)
	}
	execs := db.Execs
	mq.Info.AirportInformation(999)
	mq.Info.AirportInformation(1)
	if db.Execs != execs {
		t.Errorf("cached records were queried again")
	}

	coms, ok, _ := mq.Info.ComInformation(1)
	if !ok || len(coms) != 2 || coms[0].String("type") != "ATIS" {
		t.Errorf("com: got %v", coms)
	}
	if rec, ok, _ := mq.Info.VorInformation(1); !ok || rec.String("filepath") == "" {
		t.Errorf("vor: got %v", rec)
	}
	if rec, ok, _ := mq.Info.RunwayEndInformation(21); !ok || rec.String("name") != "09" {
		t.Errorf("runway end: got %v", rec)
	}
	if rws, ok, _ := mq.Info.RunwayInformation(10); !ok || len(rws) != 3 {
		t.Errorf("runways: got %v", rws)
	}
}

func TestQueriesNotInitialized(t *testing.T) {
	db := openTestDatabase(t)
	mq := New(db, config.DefaultMapQuery(), nil)

	if _, _, err := mq.Vors(newYork, layer.New(100), false); !errors.Is(err, ErrQueriesNotInitialized) {
		t.Errorf("got %v", err)
	}
	if _, err := mq.Runways(10); !errors.Is(err, ErrQueriesNotInitialized) {
		t.Errorf("got %v", err)
	}
	if _, _, err := mq.Info.AirportInformation(1); !errors.Is(err, ErrQueriesNotInitialized) {
		t.Errorf("got %v", err)
	}
	// Lazy requests never fail.
	if _, stale, err := mq.Vors(newYork, layer.New(100), true); err != nil || !stale {
		t.Errorf("lazy: got %v %v", stale, err)
	}

	if err := New(nil, config.DefaultMapQuery(), nil).InitQueries(); !errors.Is(err, ErrNoDatabase) {
		t.Errorf("got %v", err)
	}
}

func TestSetDatabase(t *testing.T) {
	mq, db := newTestMapQuery(t)
	l := layer.New(100)

	mq.Vors(newYork, l, false)
	mq.Runways(10)
	if len(mq.Cached().Vors) == 0 {
		t.Fatalf("expected cached vors")
	}

	if err := mq.SetDatabase(db); err != nil {
		t.Fatal(err)
	}
	if len(mq.Cached().Vors) != 0 || mq.runwayCache.Len() != 0 {
		t.Errorf("caches not cleared")
	}

	execs := db.Execs
	if vors, _, err := mq.Vors(newYork, l, false); err != nil || len(vors) != 2 || db.Execs != execs+1 {
		t.Errorf("got %d vors err %v", len(vors), err)
	}
}
