package heizkurve

import (
	"fmt"
	"sort"
	"time"

	"github.com/synaptecltd/heizkurve/noise"
)

// Building holds the heating curve settings typical for a building class.
// Slopes and flow temperature limits follow common German controller
// defaults (DIN EN 12831, VDI 6030 and manufacturer settings).
type Building struct {
	Slope       float64
	FlowMin     float64
	FlowMax     float64
	Description string
}

var buildingPresets = map[string]Building{
	"heat_pump_floor_heating": {
		Slope:       0.3,
		FlowMin:     25,
		FlowMax:     55,
		Description: "Modern, well-insulated building with floor heating; low-temperature system optimized for heat pump efficiency.",
	},
	"radiators_good_insulation": {
		Slope:       1.0,
		FlowMin:     25,
		FlowMax:     65,
		Description: "Renovated building with improved insulation and modern radiators; suitable for condensing boilers.",
	},
	"radiators_poor_insulation": {
		Slope:       1.4,
		FlowMin:     25,
		FlowMax:     75,
		Description: "Older building with original insulation and radiators; common factory default for heating controllers.",
	},
	"historic_building": {
		Slope:       1.6,
		FlowMin:     25,
		FlowMax:     80,
		Description: "Unrenovated historic building with high heat loss; requires high flow temperatures.",
	},
}

// Noise model presets covering the data quality scenarios used to test
// extraction robustness, from near-ideal sensors to badly degraded ones.
var noisePresets = map[string]noise.Params{
	"clean": {
		GaussianSigma: 1.5,
		Seed:          42,
	},
	"moderate": {
		GaussianSigma:      3.5,
		SpikeProbability:   0.02,
		SpikeMagnitude:     12,
		OutlierProbability: 0.005,
		Seed:               42,
	},
	"noisy": {
		GaussianSigma:      5.0,
		SpikeProbability:   0.03,
		SpikeMagnitude:     15,
		OutlierProbability: 0.015,
		MissingProbability: 0.05,
		StuckProbability:   0.01,
		Seed:               42,
	},
}

// Location is a weather fetch target.
type Location struct {
	Name      string
	Latitude  float64
	Longitude float64
}

var locationPresets = map[string]Location{
	"berlin":    {Name: "Berlin", Latitude: 52.52, Longitude: 13.41},
	"munich":    {Name: "Munich", Latitude: 48.14, Longitude: 11.58},
	"hamburg":   {Name: "Hamburg", Latitude: 53.55, Longitude: 9.99},
	"frankfurt": {Name: "Frankfurt", Latitude: 50.11, Longitude: 8.68},
	"cologne":   {Name: "Cologne", Latitude: 50.94, Longitude: 6.96},
	"stuttgart": {Name: "Stuttgart", Latitude: 48.78, Longitude: 9.18},
	"dresden":   {Name: "Dresden", Latitude: 51.05, Longitude: 13.74},
	"freiburg":  {Name: "Freiburg", Latitude: 47.99, Longitude: 7.85},
}

// Winter is a heating season date range for weather fetches.
type Winter struct {
	Start time.Time
	End   time.Time
}

var winterPresets = map[string]Winter{
	"winter_2021_22": {
		Start: time.Date(2021, time.November, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2022, time.March, 31, 0, 0, 0, 0, time.UTC),
	},
	"winter_2022_23": {
		Start: time.Date(2022, time.November, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2023, time.March, 31, 0, 0, 0, 0, time.UTC),
	},
	"winter_2023_24": {
		Start: time.Date(2023, time.November, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC),
	},
}

// BuildingPreset returns the default configuration adjusted for a building
// class. Unknown names are rejected with the available preset names.
func BuildingPreset(name string) (Config, error) {
	preset, ok := buildingPresets[name]
	if !ok {
		return Config{}, fmt.Errorf("unknown building preset %q, available: %v", name, presetNames(buildingPresets))
	}

	cfg := DefaultConfig()
	cfg.Slope = preset.Slope
	cfg.FlowMin = preset.FlowMin
	cfg.FlowMax = preset.FlowMax
	return cfg, nil
}

// NoisePreset returns the noise parameters of a named data quality scenario.
func NoisePreset(name string) (noise.Params, error) {
	params, ok := noisePresets[name]
	if !ok {
		return noise.Params{}, fmt.Errorf("unknown noise preset %q, available: %v", name, presetNames(noisePresets))
	}
	return params, nil
}

// LocationPreset returns the coordinates of a named city.
func LocationPreset(name string) (Location, error) {
	loc, ok := locationPresets[name]
	if !ok {
		return Location{}, fmt.Errorf("unknown location preset %q, available: %v", name, presetNames(locationPresets))
	}
	return loc, nil
}

// WinterPreset returns the date range of a named heating season.
func WinterPreset(name string) (Winter, error) {
	winter, ok := winterPresets[name]
	if !ok {
		return Winter{}, fmt.Errorf("unknown winter preset %q, available: %v", name, presetNames(winterPresets))
	}
	return winter, nil
}

func presetNames[T any](presets map[string]T) []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
