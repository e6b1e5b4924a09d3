// config/config.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/skychart/mapquery/log"
)

const CurrentVersion = 1

// Environment variables that override values from the config file.
const (
	EnvDatabaseDriver = "MAPQUERY_DB_DRIVER"
	EnvDatabaseDSN    = "MAPQUERY_DB_DSN"
	EnvLogLevel       = "MAPQUERY_LOG_LEVEL"
	EnvRowLimit       = "MAPQUERY_ROW_LIMIT"
)

type Config struct {
	Version  int      `json:"version"`
	LogLevel string   `json:"log_level"`
	LogDir   string   `json:"log_dir,omitempty"`
	Database Database `json:"database"`
	MapQuery MapQuery `json:"map_query"`
}

type Database struct {
	Driver string `json:"driver"`
	DSN    string `json:"dsn"`
}

// MapQuery holds the tuning values for the query engine: capacities of
// the keyed caches and how far viewport queries over-fetch.
type MapQuery struct {
	RunwayCache         int `json:"runway_cache"`
	RunwayOverviewCache int `json:"runway_overview_cache"`
	ApronCache          int `json:"apron_cache"`
	TaxipathCache       int `json:"taxipath_cache"`
	ParkingCache        int `json:"parking_cache"`
	StartCache          int `json:"start_cache"`
	HelipadCache        int `json:"helipad_cache"`
	AirspaceLineCache   int `json:"airspace_line_cache"`
	InfoCache           int `json:"info_cache"`

	QueryRectInflationFactor    float64 `json:"query_rect_inflation_factor"`
	QueryRectInflationIncrement float64 `json:"query_rect_inflation_increment"`
	QueryRowLimit               int     `json:"query_row_limit"`
}

func DefaultMapQuery() MapQuery {
	return MapQuery{
		RunwayCache:                 2000,
		RunwayOverviewCache:         1000,
		ApronCache:                  1000,
		TaxipathCache:               1000,
		ParkingCache:                1000,
		StartCache:                  1000,
		HelipadCache:                1000,
		AirspaceLineCache:           10000,
		InfoCache:                   100,
		QueryRectInflationFactor:    0.3,
		QueryRectInflationIncrement: 0.1,
		QueryRowLimit:               5000,
	}
}

func Default() *Config {
	return &Config{
		Version:  CurrentVersion,
		LogLevel: "info",
		Database: Database{Driver: "sqlite"},
		MapQuery: DefaultMapQuery(),
	}
}

// fillDefaults replaces zero values, which come from fields missing in
// older config files, with the defaults.
func (c *Config) fillDefaults() {
	d := Default()
	set := func(v *int, def int) {
		if *v <= 0 {
			*v = def
		}
	}
	setf := func(v *float64, def float64) {
		if *v <= 0 {
			*v = def
		}
	}

	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	if c.Database.Driver == "" {
		c.Database.Driver = d.Database.Driver
	}

	m, dm := &c.MapQuery, d.MapQuery
	set(&m.RunwayCache, dm.RunwayCache)
	set(&m.RunwayOverviewCache, dm.RunwayOverviewCache)
	set(&m.ApronCache, dm.ApronCache)
	set(&m.TaxipathCache, dm.TaxipathCache)
	set(&m.ParkingCache, dm.ParkingCache)
	set(&m.StartCache, dm.StartCache)
	set(&m.HelipadCache, dm.HelipadCache)
	set(&m.AirspaceLineCache, dm.AirspaceLineCache)
	set(&m.InfoCache, dm.InfoCache)
	setf(&m.QueryRectInflationFactor, dm.QueryRectInflationFactor)
	setf(&m.QueryRectInflationIncrement, dm.QueryRectInflationIncrement)
	set(&m.QueryRowLimit, dm.QueryRowLimit)

	c.Version = CurrentVersion
}

// DefaultPath returns the location of the config file in the user's
// config directory.
func DefaultPath(lg *log.Logger) string {
	dir, err := os.UserConfigDir()
	if err != nil {
		lg.Errorf("Unable to find user config dir: %v", err)
		dir = "."
	}
	return filepath.Join(dir, "MapQuery", "config.json")
}

// Load reads the config file at path; if it doesn't exist, the defaults
// are returned. Fields missing from the file get default values and the
// environment, including an optional .env file in the working directory,
// overrides the result.
func Load(path string, lg *log.Logger) (*Config, error) {
	c := Default()

	if contents, err := os.ReadFile(path); err == nil {
		lg.Infof("Loading config from: %s", path)
		c = &Config{}
		if err := json.NewDecoder(bytes.NewReader(contents)).Decode(c); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		c.fillDefaults()
	} else if !os.IsNotExist(err) {
		return nil, err
	} else {
		lg.Infof("%s: no config file, using defaults", path)
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		lg.Warnf(".env: %v", err)
	}
	if err := c.ApplyEnvironment(os.Getenv); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadEnvFile adds the variables in the given .env file to the process
// environment; variables that are already set are not overridden.
func LoadEnvFile(path string) error {
	return godotenv.Load(path)
}

// ApplyEnvironment overrides config values with any of the MAPQUERY_*
// variables returned by getenv.
func (c *Config) ApplyEnvironment(getenv func(string) string) error {
	if v := getenv(EnvDatabaseDriver); v != "" {
		c.Database.Driver = v
	}
	if v := getenv(EnvDatabaseDSN); v != "" {
		c.Database.DSN = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	if v := getenv(EnvRowLimit); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return fmt.Errorf("%s: invalid %s", v, EnvRowLimit)
		}
		c.MapQuery.QueryRowLimit = n
	}
	return nil
}

func (c *Config) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	return enc.Encode(c)
}

// Save writes the config, including any defaults that were filled in,
// to path.
func (c *Config) Save(path string, lg *log.Logger) error {
	lg.Infof("Saving config to: %s", path)
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := c.Encode(f); err != nil {
		return err
	}
	return f.Close()
}
