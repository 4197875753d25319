package analysis

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Fit is one fitted line flow = Intercept + Slope*outdoor. InlierRatio is
// populated for consensus fits only; for those, R2 is scored on the inliers.
type Fit struct {
	Slope     float64
	Intercept float64
	R2        float64

	InlierRatio *float64
}

// DefaultMinInlierFraction is the share of samples each RANSAC candidate
// model is fitted on.
const DefaultMinInlierFraction = 0.8

// MinRANSACSamples is the sample count a regime must exceed before a
// consensus fit is attempted. Below it the fit is omitted entirely rather
// than reported as zero.
const MinRANSACSamples = 10

const ransacTrials = 100

// FitOLS fits an ordinary least squares line through (x, y). Degenerate
// inputs (fewer than two samples, or no variance in x) are reported as an
// error instead of NaN coefficients.
func FitOLS(x, y []float64) (*Fit, error) {
	if len(x) != len(y) {
		return nil, errors.New("x and y must have equal length")
	}
	if len(x) < 2 {
		return nil, fmt.Errorf("least squares needs at least 2 samples, got %d", len(x))
	}
	if stat.Variance(x, nil) == 0 {
		return nil, errors.New("least squares input has no variance in x")
	}

	alpha, beta := stat.LinearRegression(x, y, nil, false)
	r2 := stat.RSquared(x, y, nil, alpha, beta)

	return &Fit{Slope: beta, Intercept: alpha, R2: r2}, nil
}

// FitRANSAC fits an outlier-robust consensus line through (x, y). Candidate
// models are least squares fits on random subsets of minInlierFraction of
// the samples; samples within the inlier threshold (the median absolute
// deviation of y) vote for a candidate, and the winning consensus set is
// refitted to produce the final line. R2 is scored on the inliers only.
//
// The generator drives subset selection; pass one seeded by the caller so
// repeated extractions are reproducible. Pass minInlierFraction <= 0 to use
// DefaultMinInlierFraction.
func FitRANSAC(x, y []float64, minInlierFraction float64, r *rand.Rand) (*Fit, error) {
	if len(x) != len(y) {
		return nil, errors.New("x and y must have equal length")
	}
	if minInlierFraction <= 0 {
		minInlierFraction = DefaultMinInlierFraction
	}
	if minInlierFraction > 1 {
		return nil, fmt.Errorf("min inlier fraction must be at most 1, got %g", minInlierFraction)
	}

	n := len(x)
	subsetSize := int(math.Ceil(minInlierFraction * float64(n)))
	if subsetSize < 2 || n < 3 {
		return nil, fmt.Errorf("consensus fit needs at least 3 samples, got %d", n)
	}

	threshold := medianAbsoluteDeviation(y)
	if threshold == 0 {
		return nil, errors.New("consensus fit input has no spread in y")
	}

	var bestInliers []int
	for trial := 0; trial < ransacTrials; trial++ {
		subset := r.Perm(n)[:subsetSize]
		sx := make([]float64, subsetSize)
		sy := make([]float64, subsetSize)
		for i, idx := range subset {
			sx[i] = x[idx]
			sy[i] = y[idx]
		}
		if stat.Variance(sx, nil) == 0 {
			continue
		}

		alpha, beta := stat.LinearRegression(sx, sy, nil, false)

		var inliers []int
		for i := range x {
			if math.Abs(y[i]-(alpha+beta*x[i])) <= threshold {
				inliers = append(inliers, i)
			}
		}
		if len(inliers) > len(bestInliers) {
			bestInliers = inliers
		}
	}

	if len(bestInliers) < 2 {
		return nil, errors.New("consensus fit found no usable inlier set")
	}

	ix := make([]float64, len(bestInliers))
	iy := make([]float64, len(bestInliers))
	for i, idx := range bestInliers {
		ix[i] = x[idx]
		iy[i] = y[idx]
	}

	fit, err := FitOLS(ix, iy)
	if err != nil {
		return nil, err
	}

	ratio := float64(len(bestInliers)) / float64(n)
	fit.InlierRatio = &ratio
	return fit, nil
}

// medianAbsoluteDeviation returns median(|y - median(y)|), the customary
// inlier threshold for consensus regression.
func medianAbsoluteDeviation(values []float64) float64 {
	med := median(values)
	dev := make([]float64, len(values))
	for i, v := range values {
		dev[i] = math.Abs(v - med)
	}
	return median(dev)
}

func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return stat.Quantile(0.5, stat.Empirical, sorted, nil)
}
