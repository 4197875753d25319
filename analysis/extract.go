package analysis

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
)

// Algorithm names a regression strategy used during extraction.
type Algorithm string

const (
	OLS    Algorithm = "OLS"
	RANSAC Algorithm = "RANSAC"
)

// Options tunes the extraction pipeline. The zero value selects the
// defaults: 1% tails, 20 °C assumed base temperature, both algorithms and
// unsupervised mode separation.
type Options struct {
	// TailFraction is passed to DetectLimits; <= 0 selects
	// DefaultTailFraction.
	TailFraction float64

	// BaseTemperature is the assumed base flow temperature used to
	// back-calculate room targets from regression intercepts. Zero selects
	// 20 °C, the standard indoor design temperature.
	BaseTemperature float64

	// Algorithms to run; empty selects OLS and RANSAC.
	Algorithms []Algorithm

	// MinInlierFraction for consensus fits; <= 0 selects
	// DefaultMinInlierFraction.
	MinInlierFraction float64

	// NightLabels assigns each input sample to a regime. When nil the
	// regimes are recovered with SeparateModes instead.
	NightLabels []bool

	// Seed for the consensus fit subset selection.
	Seed uint64
}

// Parameters are the physical heating curve values back-calculated from a
// regression fit. RoomTargetNight is nil when the night regime had no usable
// fit.
type Parameters struct {
	K               float64
	RoomTargetDay   float64
	RoomTargetNight *float64
}

// AlgorithmResult holds the per-regime fits of one algorithm. A nil fit
// means the regime had insufficient or degenerate data; callers must check
// before use, the fields are never zero-filled. Parameters is nil when the
// day fit is absent or the slope back-calculates to a K of zero.
type AlgorithmResult struct {
	Day        *Fit
	Night      *Fit
	Parameters *Parameters
}

// Result is the outcome of one extraction run.
type Result struct {
	Limits         Limits
	ModeSeparation *float64 // set only when regimes were recovered unsupervised
	Algorithms     map[Algorithm]*AlgorithmResult
}

// Extract recovers heating curve parameters from raw (outdoor, flow) data.
//
// The pipeline runs the limit detector first; when both clamps are found the
// samples strictly more than 1 °C inside each limit form the linear region
// used for fitting, excluding near-clamp distortion. Regimes come from
// opts.NightLabels when supplied, otherwise from unsupervised mode
// separation. Per regime, an ordinary least squares fit is always attempted
// and a consensus fit only above MinRANSACSamples samples; regimes without a
// usable fit are omitted from the result rather than zero-filled, so a
// failure on one regime does not suppress the other.
//
// The heating curve T_flow = base + K*(T_room - T_outdoor) expands to
// T_flow = (base + K*T_room) - K*T_outdoor, so the fitted slope is -K and
// room targets are recovered as (intercept - base)/K. The day-derived K is
// reused for the night regime: the physical model assumes a single shared
// slope, only the room target intercepts differ.
func Extract(outdoor, flow []float64, opts Options) (*Result, error) {
	if len(outdoor) != len(flow) {
		return nil, errors.New("outdoor and flow series must have equal length")
	}
	if opts.NightLabels != nil && len(opts.NightLabels) != len(flow) {
		return nil, errors.New("night labels must match the series length")
	}
	if opts.BaseTemperature == 0 {
		opts.BaseTemperature = 20.0
	}
	algorithms := opts.Algorithms
	if len(algorithms) == 0 {
		algorithms = []Algorithm{OLS, RANSAC}
	}

	result := &Result{Algorithms: make(map[Algorithm]*AlgorithmResult, len(algorithms))}

	limits, err := DetectLimits(flow, opts.TailFraction)
	if err != nil {
		return nil, err
	}
	result.Limits = limits

	subOutdoor, subFlow, subNight := linearRegion(outdoor, flow, opts.NightLabels, limits)

	var dayIdx, nightIdx []int
	if opts.NightLabels != nil {
		for i, night := range subNight {
			if night {
				nightIdx = append(nightIdx, i)
			} else {
				dayIdx = append(dayIdx, i)
			}
		}
	} else {
		labels, separation, err := SeparateModes(subOutdoor, subFlow)
		if err != nil {
			return nil, fmt.Errorf("mode separation failed: %w", err)
		}
		result.ModeSeparation = &separation
		for i, label := range labels {
			if label == Night {
				nightIdx = append(nightIdx, i)
			} else {
				dayIdx = append(dayIdx, i)
			}
		}
	}

	dayX, dayY := gather(subOutdoor, subFlow, dayIdx)
	nightX, nightY := gather(subOutdoor, subFlow, nightIdx)

	for _, algo := range algorithms {
		ar := &AlgorithmResult{}
		switch algo {
		case OLS:
			ar.Day = fitRegimeOLS(dayX, dayY)
			ar.Night = fitRegimeOLS(nightX, nightY)
		case RANSAC:
			ar.Day = fitRegimeRANSAC(dayX, dayY, opts)
			ar.Night = fitRegimeRANSAC(nightX, nightY, opts)
		default:
			return nil, fmt.Errorf("unknown algorithm %q", algo)
		}

		ar.Parameters = backCalculate(ar.Day, ar.Night, opts.BaseTemperature)
		result.Algorithms[algo] = ar
	}

	return result, nil
}

// linearRegion drops samples with a missing outdoor or flow reading and,
// when both clamps were detected, the samples within 1 °C of either clamp.
func linearRegion(outdoor, flow []float64, night []bool, limits Limits) ([]float64, []float64, []bool) {
	clamped := limits.Upper != nil && limits.Lower != nil

	var keptOutdoor, keptFlow []float64
	var keptNight []bool
	for i := range flow {
		if math.IsNaN(flow[i]) || math.IsNaN(outdoor[i]) {
			continue
		}
		if clamped && (flow[i] >= *limits.Upper-1.0 || flow[i] <= *limits.Lower+1.0) {
			continue
		}
		keptOutdoor = append(keptOutdoor, outdoor[i])
		keptFlow = append(keptFlow, flow[i])
		if night != nil {
			keptNight = append(keptNight, night[i])
		}
	}
	return keptOutdoor, keptFlow, keptNight
}

func gather(x, y []float64, idx []int) ([]float64, []float64) {
	gx := make([]float64, len(idx))
	gy := make([]float64, len(idx))
	for i, j := range idx {
		gx[i] = x[j]
		gy[i] = y[j]
	}
	return gx, gy
}

// fitRegimeOLS returns nil on insufficient or degenerate data.
func fitRegimeOLS(x, y []float64) *Fit {
	fit, err := FitOLS(x, y)
	if err != nil {
		return nil
	}
	return fit
}

// fitRegimeRANSAC gates on the minimum sample count and returns nil when the
// regime is too small or the consensus search fails.
func fitRegimeRANSAC(x, y []float64, opts Options) *Fit {
	if len(x) <= MinRANSACSamples {
		return nil
	}
	r := rand.New(rand.NewPCG(opts.Seed, 0))
	fit, err := FitRANSAC(x, y, opts.MinInlierFraction, r)
	if err != nil {
		return nil
	}
	return fit
}

// backCalculate inverts the fitted coefficients into physical parameters.
// Valid only in the unclamped linear region, which is what the fits were
// restricted to. A zero K is a numeric degeneracy: the division is not
// performed and no parameters are reported.
func backCalculate(day, night *Fit, base float64) *Parameters {
	if day == nil {
		return nil
	}

	k := -day.Slope
	if k == 0 {
		return nil
	}

	params := &Parameters{
		K:             k,
		RoomTargetDay: (day.Intercept - base) / k,
	}
	if night != nil {
		roomNight := (night.Intercept - base) / k
		params.RoomTargetNight = &roomNight
	}
	return params
}
