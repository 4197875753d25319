package analysis

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// GroundTruth carries the known configuration a synthetic dataset was
// generated from.
type GroundTruth struct {
	Slope           float64
	RoomTargetDay   float64
	RoomTargetNight float64
}

// Errors are the absolute deviations of extracted parameters from ground
// truth. RoomTargetNight is nil when the extraction produced no night
// estimate.
type Errors struct {
	K               float64
	RoomTargetDay   float64
	RoomTargetNight *float64
}

// Compare scores the extracted parameters of each algorithm against ground
// truth. Algorithms without back-calculated parameters are omitted.
func Compare(result *Result, truth GroundTruth) map[Algorithm]Errors {
	comparison := make(map[Algorithm]Errors)

	for algo, ar := range result.Algorithms {
		if ar == nil || ar.Parameters == nil {
			continue
		}
		p := ar.Parameters

		errs := Errors{
			K:             math.Abs(p.K - truth.Slope),
			RoomTargetDay: math.Abs(p.RoomTargetDay - truth.RoomTargetDay),
		}
		if p.RoomTargetNight != nil {
			nightErr := math.Abs(*p.RoomTargetNight - truth.RoomTargetNight)
			errs.RoomTargetNight = &nightErr
		}
		comparison[algo] = errs
	}

	return comparison
}

// FormatReport renders an extraction result as a plain text table. Pass a
// ground truth to append error columns.
func FormatReport(result *Result, truth *GroundTruth) string {
	var b strings.Builder

	rule := strings.Repeat("=", 78)
	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b, "HEATING CURVE EXTRACTION")
	fmt.Fprintln(&b, rule)

	fmt.Fprintf(&b, "detected upper limit: %s\n", formatOptional(result.Limits.Upper, "not detected"))
	fmt.Fprintf(&b, "detected lower limit: %s\n", formatOptional(result.Limits.Lower, "not detected"))
	fmt.Fprintf(&b, "mode separation:      %s\n", formatOptional(result.ModeSeparation, "labels supplied"))
	fmt.Fprintln(&b)

	header := fmt.Sprintf("%-10s %-10s %-12s %-14s", "algorithm", "K", "T_day (°C)", "T_night (°C)")
	if truth != nil {
		header += fmt.Sprintf(" %-10s %-12s %-12s", "K err", "T_day err", "T_night err")
	}
	fmt.Fprintln(&b, header)
	fmt.Fprintln(&b, strings.Repeat("-", len(header)))

	for _, algo := range sortedAlgorithms(result) {
		ar := result.Algorithms[algo]
		if ar == nil || ar.Parameters == nil {
			fmt.Fprintf(&b, "%-10s insufficient data\n", algo)
			continue
		}
		p := ar.Parameters

		line := fmt.Sprintf("%-10s %-10.4f %-12.2f %-14s", algo, p.K, p.RoomTargetDay,
			formatOptional(p.RoomTargetNight, "unavailable"))
		if truth != nil {
			line += fmt.Sprintf(" %-10.4f %-12.2f", math.Abs(p.K-truth.Slope),
				math.Abs(p.RoomTargetDay-truth.RoomTargetDay))
			if p.RoomTargetNight != nil {
				line += fmt.Sprintf(" %-12.2f", math.Abs(*p.RoomTargetNight-truth.RoomTargetNight))
			} else {
				line += fmt.Sprintf(" %-12s", "-")
			}
		}
		fmt.Fprintln(&b, line)
	}

	return b.String()
}

func formatOptional(v *float64, absent string) string {
	if v == nil {
		return absent
	}
	return fmt.Sprintf("%.2f", *v)
}

func sortedAlgorithms(result *Result) []Algorithm {
	algos := make([]Algorithm, 0, len(result.Algorithms))
	for algo := range result.Algorithms {
		algos = append(algos, algo)
	}
	sort.Slice(algos, func(i, j int) bool { return algos[i] < algos[j] })
	return algos
}
