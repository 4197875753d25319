package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/synaptecltd/heizkurve"
)

const timestampLayout = time.RFC3339

// writeDatasetCSV writes a dataset row per record. Missing values are empty
// cells.
func writeDatasetCSV(path string, dataset *heizkurve.Dataset) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating output file")
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{"timestamp", "outdoor", "hour", "is_night", "room_target", "flow_ideal"}
	if dataset.Noisy {
		header = append(header, "flow_noisy")
	}
	if err := w.Write(header); err != nil {
		return errors.Wrap(err, "writing header")
	}

	for _, rec := range dataset.Records {
		row := []string{
			rec.Timestamp.Format(timestampLayout),
			formatValue(rec.Outdoor),
			strconv.Itoa(rec.Hour),
			strconv.FormatBool(rec.Night),
			formatValue(rec.RoomTarget),
			formatValue(rec.IdealFlow),
		}
		if dataset.Noisy {
			row = append(row, formatValue(rec.NoisyFlow))
		}
		if err := w.Write(row); err != nil {
			return errors.Wrap(err, "writing record")
		}
	}

	w.Flush()
	return errors.Wrap(w.Error(), "flushing output")
}

// readOutdoorCSV reads a (timestamp, outdoor) series.
func readOutdoorCSV(path string) ([]heizkurve.Sample, error) {
	rows, columns, err := readCSV(path)
	if err != nil {
		return nil, err
	}

	tsCol, ok := columns["timestamp"]
	if !ok {
		return nil, errors.New("input is missing a timestamp column")
	}
	outdoorCol, ok := columns["outdoor"]
	if !ok {
		return nil, errors.New("input is missing an outdoor column")
	}

	samples := make([]heizkurve.Sample, len(rows))
	for i, row := range rows {
		ts, err := time.Parse(timestampLayout, row[tsCol])
		if err != nil {
			return nil, errors.Wrapf(err, "row %d: parsing timestamp", i+2)
		}
		value, err := parseValue(row[outdoorCol])
		if err != nil {
			return nil, errors.Wrapf(err, "row %d: parsing outdoor", i+2)
		}
		samples[i] = heizkurve.Sample{Timestamp: ts, Outdoor: value}
	}
	return samples, nil
}

// readDatasetCSV reads the columns extraction needs: outdoor, a flow column
// (flow_noisy preferred, flow_ideal or flow otherwise) and the optional
// is_night labels.
func readDatasetCSV(path string) (outdoor, flow []float64, night []bool, err error) {
	rows, columns, err := readCSV(path)
	if err != nil {
		return nil, nil, nil, err
	}

	outdoorCol, ok := columns["outdoor"]
	if !ok {
		return nil, nil, nil, errors.New("input is missing an outdoor column")
	}
	flowCol, ok := columns["flow_noisy"]
	if !ok {
		if flowCol, ok = columns["flow_ideal"]; !ok {
			if flowCol, ok = columns["flow"]; !ok {
				return nil, nil, nil, errors.New("input is missing a flow column")
			}
		}
	}
	nightCol, hasNight := columns["is_night"]

	outdoor = make([]float64, len(rows))
	flow = make([]float64, len(rows))
	if hasNight {
		night = make([]bool, len(rows))
	}

	for i, row := range rows {
		if outdoor[i], err = parseValue(row[outdoorCol]); err != nil {
			return nil, nil, nil, errors.Wrapf(err, "row %d: parsing outdoor", i+2)
		}
		if flow[i], err = parseValue(row[flowCol]); err != nil {
			return nil, nil, nil, errors.Wrapf(err, "row %d: parsing flow", i+2)
		}
		if hasNight {
			if night[i], err = strconv.ParseBool(row[nightCol]); err != nil {
				return nil, nil, nil, errors.Wrapf(err, "row %d: parsing is_night", i+2)
			}
		}
	}
	return outdoor, flow, night, nil
}

func readCSV(path string) ([][]string, map[string]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Wrap(err, "opening input file")
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, nil, errors.Wrap(err, "reading csv")
	}
	if len(records) == 0 {
		return nil, nil, errors.New("input file is empty")
	}

	columns := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		columns[name] = i
	}
	return records[1:], columns, nil
}

func formatValue(v float64) string {
	if heizkurve.IsMissing(v) {
		return ""
	}
	return fmt.Sprintf("%.3f", v)
}

func parseValue(s string) (float64, error) {
	if s == "" {
		return heizkurve.Missing(), nil
	}
	return strconv.ParseFloat(s, 64)
}
