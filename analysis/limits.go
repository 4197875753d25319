// Package analysis recovers heating curve parameters from noisy flow
// temperature data: it detects saturation limits from the empirical
// distribution, separates day and night operating regimes without labels,
// and fits plain and outlier-robust regressions whose coefficients are
// back-calculated into the physical slope and room target temperatures.
package analysis

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// DefaultTailFraction is the share of the sorted flow distribution examined
// at each end when looking for clamp plateaus.
const DefaultTailFraction = 0.01

// Limits holds the flow temperature clamps inferred from data. A nil field
// means that limit was not detected, which is not the same as a limit of
// zero.
type Limits struct {
	Upper *float64
	Lower *float64
}

// DetectLimits infers the upper and lower flow temperature clamps from the
// distribution of flow readings alone. The top and bottom tailFraction of
// the sorted defined values are inspected: a clamped region is flat, so a
// tail whose standard deviation is below a third of the overall standard
// deviation is declared a limit at the tail mean. Naturally extreme but
// still weather-driven readings keep tail variance high and yield no limit.
//
// Pass tailFraction <= 0 to use DefaultTailFraction.
func DetectLimits(flow []float64, tailFraction float64) (Limits, error) {
	if tailFraction <= 0 {
		tailFraction = DefaultTailFraction
	}
	if tailFraction >= 0.5 {
		return Limits{}, fmt.Errorf("tail fraction must be below 0.5, got %g", tailFraction)
	}

	values := defined(flow)
	if len(values) == 0 {
		return Limits{}, nil
	}
	sort.Float64s(values)

	n := len(values)
	overallStd := stat.PopStdDev(values, nil)

	topStart := int((1 - tailFraction) * float64(n))
	bottomEnd := int(tailFraction * float64(n))

	var limits Limits
	if top := values[topStart:]; len(top) > 0 {
		if stat.PopStdDev(top, nil) < overallStd/3 {
			mean := stat.Mean(top, nil)
			limits.Upper = &mean
		}
	}
	if bottom := values[:bottomEnd]; len(bottom) > 0 {
		if stat.PopStdDev(bottom, nil) < overallStd/3 {
			mean := stat.Mean(bottom, nil)
			limits.Lower = &mean
		}
	}

	return limits, nil
}

// defined returns the non-NaN values of a series.
func defined(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}
