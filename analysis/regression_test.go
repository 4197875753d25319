package analysis_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synaptecltd/heizkurve/analysis"
)

func line(n int, slope, intercept float64) (x, y []float64) {
	for i := 0; i < n; i++ {
		xi := -10.0 + 25.0*float64(i)/float64(n-1)
		x = append(x, xi)
		y = append(y, intercept+slope*xi)
	}
	return x, y
}

func TestFitOLSRecoversExactLine(t *testing.T) {
	x, y := line(100, -1.4, 48)

	fit, err := analysis.FitOLS(x, y)
	require.NoError(t, err)

	assert.InDelta(t, -1.4, fit.Slope, 1e-9)
	assert.InDelta(t, 48.0, fit.Intercept, 1e-9)
	assert.InDelta(t, 1.0, fit.R2, 1e-9)
	assert.Nil(t, fit.InlierRatio)
}

func TestFitOLSRejectsDegenerateInput(t *testing.T) {
	_, err := analysis.FitOLS([]float64{1}, []float64{2})
	assert.Error(t, err, "single sample")

	_, err = analysis.FitOLS([]float64{3, 3, 3}, []float64{1, 2, 3})
	assert.Error(t, err, "no variance in x")

	_, err = analysis.FitOLS([]float64{1, 2}, []float64{1, 2, 3})
	assert.Error(t, err, "length mismatch")
}

func TestFitRANSACResistsOutliers(t *testing.T) {
	x, y := line(100, -1.4, 48)
	// Push every tenth sample far off the line
	for i := 0; i < len(y); i += 10 {
		y[i] += 30
	}

	r := rand.New(rand.NewPCG(42, 0))
	fit, err := analysis.FitRANSAC(x, y, 0.8, r)
	require.NoError(t, err)

	assert.InDelta(t, -1.4, fit.Slope, 0.01)
	assert.InDelta(t, 48.0, fit.Intercept, 0.1)
	require.NotNil(t, fit.InlierRatio)
	assert.InDelta(t, 0.9, *fit.InlierRatio, 0.05)
	assert.Greater(t, fit.R2, 0.999)
}

func TestFitRANSACIsReproducible(t *testing.T) {
	x, y := line(50, -1.0, 40)
	for i := 0; i < len(y); i += 7 {
		y[i] -= 25
	}

	first, err := analysis.FitRANSAC(x, y, 0.8, rand.New(rand.NewPCG(7, 0)))
	require.NoError(t, err)
	second, err := analysis.FitRANSAC(x, y, 0.8, rand.New(rand.NewPCG(7, 0)))
	require.NoError(t, err)

	assert.Equal(t, first.Slope, second.Slope)
	assert.Equal(t, first.Intercept, second.Intercept)
	assert.Equal(t, *first.InlierRatio, *second.InlierRatio)
}

func TestFitRANSACRejectsTinyInput(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 0))
	_, err := analysis.FitRANSAC([]float64{1, 2}, []float64{1, 2}, 0.8, r)
	assert.Error(t, err)
}
