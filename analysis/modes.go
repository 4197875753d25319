package analysis

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/stat"
)

// Regime identifies the day or night operating mode of a sample.
type Regime uint8

const (
	Day Regime = iota
	Night
)

func (r Regime) String() string {
	if r == Night {
		return "night"
	}
	return "day"
}

// The number of Lloyd iterations after which the residual clustering is cut
// off; one-dimensional 2-means converges long before this in practice.
const maxClusterIterations = 100

// SeparateModes assigns each sample to the day or night regime without
// ground truth labels. A single least squares line flow ~ outdoor is fitted
// over all samples and its residuals are clustered into two groups; the
// cluster with the higher mean residual is labelled day, since day targets
// run systematically hotter than the night setback for the same outdoor
// temperature.
//
// The returned separation is the absolute difference of the two cluster mean
// residuals. It measures how distinguishable the regimes are, not whether
// the day/night assignment is correct: with weak separation the labels are
// no better than a guess and callers should treat them accordingly.
//
// Clustering is initialised from the extreme residuals, so the procedure is
// deterministic. outdoor and flow must be fully defined and equally long.
func SeparateModes(outdoor, flow []float64) ([]Regime, float64, error) {
	if len(outdoor) != len(flow) {
		return nil, 0, errors.New("outdoor and flow series must have equal length")
	}
	if len(outdoor) < 2 {
		return nil, 0, errors.New("mode separation needs at least 2 samples")
	}

	alpha, beta := stat.LinearRegression(outdoor, flow, nil, false)
	if math.IsNaN(alpha) || math.IsNaN(beta) {
		return nil, 0, errors.New("mode separation regression is degenerate")
	}

	residuals := make([]float64, len(flow))
	for i := range flow {
		residuals[i] = flow[i] - (alpha + beta*outdoor[i])
	}

	assignment, means := cluster2(residuals)

	// Higher mean residual cluster is day
	dayCluster := 0
	if means[1] > means[0] {
		dayCluster = 1
	}

	labels := make([]Regime, len(residuals))
	for i, c := range assignment {
		if c == dayCluster {
			labels[i] = Day
		} else {
			labels[i] = Night
		}
	}

	separation := math.Abs(means[0] - means[1])
	return labels, separation, nil
}

// cluster2 runs 2-means on one-dimensional values. Centroids start at the
// minimum and maximum value, which makes the result reproducible across
// runs.
func cluster2(values []float64) ([]int, [2]float64) {
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	centroids := [2]float64{lo, hi}

	assignment := make([]int, len(values))
	for iter := 0; iter < maxClusterIterations; iter++ {
		changed := false
		for i, v := range values {
			c := 0
			if math.Abs(v-centroids[1]) < math.Abs(v-centroids[0]) {
				c = 1
			}
			if assignment[i] != c {
				assignment[i] = c
				changed = true
			}
		}
		if !changed && iter > 0 {
			break
		}

		var sums, counts [2]float64
		for i, v := range values {
			sums[assignment[i]] += v
			counts[assignment[i]]++
		}
		for c := range centroids {
			if counts[c] > 0 {
				centroids[c] = sums[c] / counts[c]
			}
		}
	}

	return assignment, centroids
}
