// Command heizkurve simulates heating curve datasets and extracts heating
// curve parameters from recorded data.
//
// Simulate a winter season for Berlin with the factory default curve and a
// moderate noise model, then recover the parameters from the noisy data:
//
//	heizkurve -m simulate -c config.yaml -o data.csv
//	heizkurve -m extract -i data.csv --labels
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/pborman/getopt/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v2"

	"github.com/synaptecltd/heizkurve"
	"github.com/synaptecltd/heizkurve/analysis"
	"github.com/synaptecltd/heizkurve/weather"
)

func main() {
	mode := getopt.StringLong("mode", 'm', "simulate", "simulate or extract")
	configFile := getopt.StringLong("config", 'c', "", "heating curve config file (yaml)")
	inFile := getopt.StringLong("in", 'i', "", "input CSV (outdoor series for simulate, dataset for extract)")
	outFile := getopt.StringLong("out", 'o', "", "output CSV for simulate")
	location := getopt.StringLong("location", 0, "berlin", "location preset for weather fetch")
	startDate := getopt.StringLong("start", 0, "2023-11-01", "weather fetch start date (YYYY-MM-DD)")
	endDate := getopt.StringLong("end", 0, "2024-03-31", "weather fetch end date (YYYY-MM-DD)")
	winter := getopt.StringLong("winter", 0, "", "heating season preset overriding --start/--end")
	useLabels := getopt.BoolLong("labels", 0, "use the is_night column instead of unsupervised mode separation")
	logLevel := getopt.StringLong("log-level", 'l', "info", "log levels: debug, info, warn, error")
	getopt.Parse()

	log, err := newLogger(*logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	switch *mode {
	case "simulate":
		err = runSimulate(log, *configFile, *inFile, *outFile, *location, *startDate, *endDate, *winter)
	case "extract":
		err = runExtract(log, *configFile, *inFile, *useLabels)
	default:
		err = errors.Errorf("unknown mode %q, expected simulate or extract", *mode)
	}
	if err != nil {
		log.Fatalf("%v", err)
	}
}

func newLogger(level string) (*zap.SugaredLogger, error) {
	var lvl zapcore.Level
	if err := lvl.Set(level); err != nil {
		return nil, errors.Wrapf(err, "invalid log level %q", level)
	}

	cfg := zap.Config{
		Level:             zap.NewAtomicLevelAt(lvl),
		Encoding:          "console",
		EncoderConfig:     zap.NewDevelopmentEncoderConfig(),
		OutputPaths:       []string{"stderr"},
		ErrorOutputPaths:  []string{"stderr"},
		DisableStacktrace: true,
	}
	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}

func loadConfig(path string) (heizkurve.Config, error) {
	if path == "" {
		return heizkurve.DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return heizkurve.Config{}, errors.Wrap(err, "reading config file")
	}

	// Unmarshalling applies defaults and validates
	var cfg heizkurve.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return heizkurve.Config{}, errors.Wrap(err, "parsing config file")
	}
	return cfg, nil
}

func runSimulate(log *zap.SugaredLogger, configFile, inFile, outFile, location, startDate, endDate, winter string) error {
	cfg, err := loadConfig(configFile)
	if err != nil {
		return err
	}
	if outFile == "" {
		return errors.New("simulate requires --out")
	}

	var outdoor []heizkurve.Sample
	if inFile != "" {
		outdoor, err = readOutdoorCSV(inFile)
		if err != nil {
			return err
		}
		log.Infof("read %d outdoor samples from %s", len(outdoor), inFile)
	} else {
		if winter != "" {
			season, err := heizkurve.WinterPreset(winter)
			if err != nil {
				return err
			}
			startDate = season.Start.Format("2006-01-02")
			endDate = season.End.Format("2006-01-02")
		}
		outdoor, err = fetchOutdoor(log, location, startDate, endDate)
		if err != nil {
			return err
		}
	}

	synth, err := heizkurve.NewSynthesizer(cfg)
	if err != nil {
		return err
	}
	dataset, err := synth.Generate(outdoor)
	if err != nil {
		return err
	}
	log.Infof("generated dataset %s with %d records (noisy=%v)", dataset.ID, len(dataset.Records), dataset.Noisy)

	if err := writeDatasetCSV(outFile, dataset); err != nil {
		return err
	}
	log.Infof("wrote %s", outFile)
	return nil
}

func fetchOutdoor(log *zap.SugaredLogger, location, startDate, endDate string) ([]heizkurve.Sample, error) {
	loc, err := heizkurve.LocationPreset(location)
	if err != nil {
		return nil, err
	}
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return nil, errors.Wrap(err, "parsing start date")
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return nil, errors.Wrap(err, "parsing end date")
	}

	log.Infof("fetching weather for %s (%.2f, %.2f) %s..%s", loc.Name, loc.Latitude, loc.Longitude, startDate, endDate)
	hourly, err := weather.NewClient().Fetch(context.Background(), loc.Latitude, loc.Longitude, start, end)
	if err != nil {
		return nil, err
	}

	return weather.Resample(hourly, weather.DefaultStep)
}

func runExtract(log *zap.SugaredLogger, configFile, inFile string, useLabels bool) error {
	if inFile == "" {
		return errors.New("extract requires --in")
	}

	outdoor, flow, night, err := readDatasetCSV(inFile)
	if err != nil {
		return err
	}
	log.Infof("read %d samples from %s", len(flow), inFile)

	opts := analysis.Options{}
	if useLabels {
		if night == nil {
			return errors.New("--labels requested but the input has no is_night column")
		}
		opts.NightLabels = night
	}

	result, err := analysis.Extract(outdoor, flow, opts)
	if err != nil {
		return err
	}

	var truth *analysis.GroundTruth
	if configFile != "" {
		cfg, err := loadConfig(configFile)
		if err != nil {
			return err
		}
		truth = &analysis.GroundTruth{
			Slope:           cfg.Slope,
			RoomTargetDay:   cfg.RoomTargetDay,
			RoomTargetNight: cfg.RoomTargetNight,
		}
	}

	fmt.Print(analysis.FormatReport(result, truth))
	return nil
}
