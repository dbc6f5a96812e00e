package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/couchcryptid/bridge-inspection/internal/domain"
	"github.com/couchcryptid/bridge-inspection/internal/planner"
	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Output formats for command results.
const (
	OutputAuto  = "auto"
	OutputJSON  = "json"
	OutputTable = "table"
)

// Config holds all tool settings, populated from environment variables.
type Config struct {
	DataFile   string
	HeaderRows int

	Inspectors      []domain.Location
	MaxPerInspector int
	Thresholds      planner.Thresholds

	LogLevel     string
	LogFormat    string
	OutputFormat string

	// Optional outputs; empty disables them.
	MetricsTextfile string
	ShapefileOut    string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	headerRows, err := parseInt("BRIDGE_HEADER_ROWS", 2)
	if err != nil {
		return nil, err
	}
	if headerRows < 0 {
		return nil, errors.New("BRIDGE_HEADER_ROWS must not be negative")
	}

	maxPer, err := parseInt("MAX_BRIDGES_PER_INSPECTOR", 10)
	if err != nil {
		return nil, err
	}
	if maxPer < 0 {
		return nil, errors.New("MAX_BRIDGES_PER_INSPECTOR must not be negative")
	}

	inspectors, err := ParseInspectors(sharedcfg.EnvOrDefault("INSPECTORS", ""))
	if err != nil {
		return nil, fmt.Errorf("invalid INSPECTORS: %w", err)
	}

	th, err := loadThresholds()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		DataFile:        sharedcfg.EnvOrDefault("BRIDGE_DATA_FILE", "bridges.csv"),
		HeaderRows:      headerRows,
		Inspectors:      inspectors,
		MaxPerInspector: maxPer,
		Thresholds:      th,
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "text"),
		OutputFormat:    sharedcfg.EnvOrDefault("OUTPUT_FORMAT", OutputAuto),
		MetricsTextfile: sharedcfg.EnvOrDefault("METRICS_TEXTFILE", ""),
		ShapefileOut:    sharedcfg.EnvOrDefault("ASSIGNMENT_SHAPEFILE", ""),
	}

	if cfg.DataFile == "" {
		return nil, errors.New("BRIDGE_DATA_FILE is required")
	}
	switch cfg.OutputFormat {
	case OutputAuto, OutputJSON, OutputTable:
	default:
		return nil, fmt.Errorf("invalid OUTPUT_FORMAT %q", cfg.OutputFormat)
	}

	return cfg, nil
}

func loadThresholds() (planner.Thresholds, error) {
	def := planner.DefaultThresholds()
	th := def

	for _, v := range []struct {
		key  string
		def  float64
		dest *float64
	}{
		{"HIGH_PRIORITY_BCI", def.HighBCI, &th.HighBCI},
		{"MEDIUM_PRIORITY_BCI", def.MediumBCI, &th.MediumBCI},
		{"LOW_PRIORITY_BCI", def.LowBCI, &th.LowBCI},
		{"HIGH_PRIORITY_RADIUS_KM", def.HighRadiusKm, &th.HighRadiusKm},
		{"MEDIUM_PRIORITY_RADIUS_KM", def.MediumRadiusKm, &th.MediumRadiusKm},
		{"LOW_PRIORITY_RADIUS_KM", def.LowRadiusKm, &th.LowRadiusKm},
	} {
		f, err := parseFloat(v.key, v.def)
		if err != nil {
			return planner.Thresholds{}, err
		}
		*v.dest = f
	}

	if err := th.Validate(); err != nil {
		return planner.Thresholds{}, err
	}
	return th, nil
}

// ParseInspectors parses "lat,lon;lat,lon" into locations. Blank entries are
// ignored, so an empty string yields no inspectors.
func ParseInspectors(s string) ([]domain.Location, error) {
	var out []domain.Location
	for _, pair := range strings.Split(s, ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		latStr, lonStr, ok := strings.Cut(pair, ",")
		if !ok {
			return nil, fmt.Errorf("%q: want lat,lon", pair)
		}
		lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
		if err != nil {
			return nil, fmt.Errorf("%q: latitude: %w", pair, err)
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(lonStr), 64)
		if err != nil {
			return nil, fmt.Errorf("%q: longitude: %w", pair, err)
		}
		if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
			return nil, fmt.Errorf("%q: coordinate out of range", pair)
		}
		out = append(out, domain.Location{Lat: lat, Lon: lon})
	}
	return out, nil
}

func parseInt(key string, def int) (int, error) {
	s := sharedcfg.EnvOrDefault(key, strconv.Itoa(def))
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func parseFloat(key string, def float64) (float64, error) {
	s := sharedcfg.EnvOrDefault(key, strconv.FormatFloat(def, 'f', -1, 64))
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}
