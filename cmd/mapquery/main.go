// cmd/mapquery/main.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// mapquery runs viewport and identifier queries against a scenery
// database from the command line.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/skychart/mapquery/aviation"
	"github.com/skychart/mapquery/config"
	"github.com/skychart/mapquery/layer"
	"github.com/skychart/mapquery/log"
	"github.com/skychart/mapquery/mapquery"
	"github.com/skychart/mapquery/math"
	"github.com/skychart/mapquery/sqldb"
	"github.com/skychart/mapquery/util"
)

var (
	configPath  = flag.String("config", "", "Config file (default: user config directory)")
	envFile     = flag.String("env", "", "Additional .env file with MAPQUERY_* overrides")
	driver      = flag.String("driver", "", "Database driver: sqlite or postgres (overrides config)")
	dsn         = flag.String("db", "", "Database file or connection string (overrides config)")
	logLevel    = flag.String("loglevel", "", "Logging level: debug, info, warn, error (overrides config)")
	writeConfig = flag.Bool("writeconfig", false, "Write the effective config back to the config file")

	boxFlag   = flag.String("box", "", "Viewport as west,south,east,north in degrees")
	source    = flag.String("source", "all", "Airport data source: all, medium or large")
	minRunway = flag.Int("minrunway", 0, "Minimum longest runway length in feet")
	maxRange  = flag.Float64("range", 100, "Layer range in km; below 5 airport diagrams are loaded")
	airspaces = flag.String("airspaces", "", "Airspace type codes to load, comma separated, or \"all\"")
	altitude  = flag.Float64("altitude", 0, "Altitude for \"at altitude\" airspace filtering")

	hit    = flag.String("hit", "", "Screen position x,y to hit-test against the loaded objects")
	width  = flag.Int("width", 1024, "Viewport width in pixels for -hit")
	height = flag.Int("height", 768, "Viewport height in pixels for -hit")
	radius = flag.Int("radius", 10, "Hit-test radius in pixels")

	ident   = flag.String("ident", "", "Identifier to look up")
	region  = flag.String("region", "", "Region filter for -ident")
	airport = flag.String("airport", "", "Airport ident for runway end and ILS lookups")
	types   = flag.String("types", "all", "Object types for -hit and -ident, e.g. airport,vor,ndb")

	export = flag.String("export", "", "Write the loaded objects to the given file")
	dump   = flag.Bool("dump", false, "Dump complete objects instead of a summary")
)

func main() {
	flag.Parse()

	bootstrap := log.NewWriter(os.Stderr, "warn")
	if *envFile != "" {
		if err := config.LoadEnvFile(*envFile); err != nil {
			fatalf("%s: %v", *envFile, err)
		}
	}
	path := *configPath
	if path == "" {
		path = config.DefaultPath(bootstrap)
	}
	cfg, err := config.Load(path, bootstrap)
	if err != nil {
		fatalf("%v", err)
	}
	if *driver != "" {
		cfg.Database.Driver = *driver
	}
	if *dsn != "" {
		cfg.Database.DSN = *dsn
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *writeConfig {
		if err := cfg.Save(path, bootstrap); err != nil {
			fatalf("%s: %v", path, err)
		}
	}

	lg := log.New(cfg.LogLevel, cfg.LogDir)

	db, err := sqldb.Open(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		fatalf("%v", err)
	}
	cdb := &sqldb.CountingDatabase{Database: db}
	defer cdb.Close()

	mq := mapquery.New(cdb, cfg.MapQuery, lg)
	if err := mq.InitQueries(); err != nil {
		fatalf("%v", err)
	}
	defer mq.DeInitQueries()

	objTypes, err := aviation.ParseObjectTypes(*types)
	if err != nil {
		fatalf("-types: %v", err)
	}

	if *boxFlag != "" {
		box, err := parseBox(*boxFlag)
		if err != nil {
			fatalf("-box: %v", err)
		}
		l, filter, err := makeLayer()
		if err != nil {
			fatalf("%v", err)
		}
		if err := loadViewport(mq, box, l, filter); err != nil {
			fatalf("%v", err)
		}

		if *hit != "" {
			x, y, err := parsePair(*hit)
			if err != nil {
				fatalf("-hit: %v", err)
			}
			proj := math.ViewportProjection{Box: box, Width: *width, Height: *height}
			report("hit", mq.NearestObjects(proj, l, l.AirportDiagram, objTypes, x, y, *radius))
		}
	}

	if *ident != "" {
		r := aviation.NewSearchResult()
		if err := mq.MapObjectByIdent(r, objTypes, *ident, *region, *airport, math.Point2LL{}, 0); err != nil {
			fatalf("%v", err)
		}
		report(*ident, r)
	}

	if *export != "" {
		if err := util.StoreObject(*export, mq.Cached()); err != nil {
			fatalf("%s: %v", *export, err)
		}
	}

	lg.Info("done", "queries", cdb.Execs)
	fmt.Printf("%d database queries\n", cdb.Execs)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func parseFloats(s string, n int) ([]float64, error) {
	f := strings.Split(s, ",")
	if len(f) != n {
		return nil, fmt.Errorf("%s: expected %d comma separated values", s, n)
	}
	v := make([]float64, n)
	for i := range f {
		var err error
		if v[i], err = strconv.ParseFloat(strings.TrimSpace(f[i]), 64); err != nil {
			return nil, err
		}
	}
	return v, nil
}

func parseBox(s string) (math.LatLonBox, error) {
	v, err := parseFloats(s, 4)
	if err != nil {
		return math.LatLonBox{}, err
	}
	return math.NewLatLonBox(v[0], v[1], v[2], v[3]), nil
}

func parsePair(s string) (int, int, error) {
	v, err := parseFloats(s, 2)
	if err != nil {
		return 0, 0, err
	}
	return int(v[0]), int(v[1]), nil
}

func makeLayer() (layer.Layer, aviation.AirspaceFilter, error) {
	l := layer.New(float32(*maxRange))
	var err error
	if l.AirportSource, err = layer.ParseDataSource(*source); err != nil {
		return l, aviation.AirspaceFilter{}, err
	}
	l.MinRunwayLength = *minRunway
	l.AirportDiagram = *maxRange < 5

	filter := aviation.AirspaceFilter{Altitude: float32(*altitude)}
	switch *airspaces {
	case "":
		l.Airspace = false
	case "all":
		filter.Types = aviation.AirspaceAll
	default:
		for _, code := range strings.Split(*airspaces, ",") {
			t, err := aviation.ParseAirspaceType(strings.ToUpper(strings.TrimSpace(code)))
			if err != nil {
				return l, filter, err
			}
			filter.Types |= t
		}
	}
	if *altitude != 0 {
		filter.Types |= aviation.AirspaceAtAltitude
	}
	return l, filter, nil
}

func loadViewport(mq *mapquery.MapQuery, box math.LatLonBox, l layer.Layer, filter aviation.AirspaceFilter) error {
	ap, _, err := mq.Airports(box, l, false)
	if err != nil {
		return err
	}
	if l.AirportDiagram {
		for _, a := range ap {
			if _, err := mq.Parkings(a.ID); err != nil {
				return err
			}
			if _, err := mq.Helipads(a.ID); err != nil {
				return err
			}
		}
	}
	if _, _, err := mq.Vors(box, l, false); err != nil {
		return err
	}
	if _, _, err := mq.Ndbs(box, l, false); err != nil {
		return err
	}
	if _, _, err := mq.Waypoints(box, l, false); err != nil {
		return err
	}
	if _, _, err := mq.Markers(box, l, false); err != nil {
		return err
	}
	if _, _, err := mq.Ils(box, l, false); err != nil {
		return err
	}
	if _, _, err := mq.Airways(box, l, false); err != nil {
		return err
	}
	if l.Airspace {
		if _, _, err := mq.Airspaces(box, l, filter, false); err != nil {
			return err
		}
	}

	report("viewport "+box.String(), mq.Cached())
	return nil
}

func report(title string, r *aviation.SearchResult) {
	if *dump {
		fmt.Println(title)
		spew.Dump(r)
		return
	}

	fmt.Printf("%s: %d objects (%s)\n", title, r.Size(), r.Types())
	for _, a := range r.Airports {
		fmt.Printf("  airport  %-6s %s\n", a.Ident, a.Name)
	}
	for _, v := range r.Vors {
		fmt.Printf("  vor      %-6s %s %s\n", v.Ident, v.Region, v.Frequency)
	}
	for _, n := range r.Ndbs {
		fmt.Printf("  ndb      %-6s %s %s\n", n.Ident, n.Region, n.Frequency)
	}
	for _, w := range r.Waypoints {
		fmt.Printf("  waypoint %-6s %s\n", w.Ident, w.Region)
	}
	for _, i := range r.Ils {
		fmt.Printf("  ils      %-6s %s\n", i.Ident, i.Name)
	}
	for _, e := range r.RunwayEnds {
		fmt.Printf("  runway   %s\n", e.Name)
	}
	for _, a := range r.Airways {
		fmt.Printf("  airway   %s %d/%d\n", a.Name, a.Fragment, a.Sequence)
	}
	for _, a := range r.Airspaces {
		fmt.Printf("  airspace %s %s\n", a.Type, a.Name)
	}
	for _, p := range r.Parkings {
		fmt.Printf("  parking  %s %d\n", p.Name, p.Number)
	}
}
