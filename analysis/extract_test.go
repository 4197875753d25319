package analysis_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synaptecltd/heizkurve"
	"github.com/synaptecltd/heizkurve/analysis"
)

// syntheticDataset generates a noise-free default-config dataset over an
// outdoor ramp, the reference scenario for parameter recovery.
func syntheticDataset(t *testing.T, n int, lo, hi float64) *heizkurve.Dataset {
	t.Helper()

	synth, err := heizkurve.NewSynthesizer(heizkurve.DefaultConfig())
	require.NoError(t, err)

	start := time.Date(2023, time.November, 1, 0, 0, 0, 0, time.UTC)
	samples := make([]heizkurve.Sample, n)
	for i := range samples {
		samples[i] = heizkurve.Sample{
			Timestamp: start.Add(time.Duration(i) * 15 * time.Minute),
			Outdoor:   lo + (hi-lo)*float64(i)/float64(n-1),
		}
	}

	dataset, err := synth.Generate(samples)
	require.NoError(t, err)
	return dataset
}

func TestExtractRecoversParametersWithLabels(t *testing.T) {
	dataset := syntheticDataset(t, 2000, -10, 10)

	result, err := analysis.Extract(dataset.OutdoorValues(), dataset.FlowValues(), analysis.Options{
		NightLabels: dataset.NightLabels(),
	})
	require.NoError(t, err)

	assert.Nil(t, result.ModeSeparation, "labels were supplied, no unsupervised separation ran")

	for _, algo := range []analysis.Algorithm{analysis.OLS, analysis.RANSAC} {
		ar := result.Algorithms[algo]
		require.NotNil(t, ar, "%s", algo)
		require.NotNil(t, ar.Parameters, "%s", algo)

		assert.InDelta(t, 1.4, ar.Parameters.K, 1e-6, "%s", algo)
		assert.InDelta(t, 20.0, ar.Parameters.RoomTargetDay, 1e-6, "%s", algo)
		require.NotNil(t, ar.Parameters.RoomTargetNight, "%s", algo)
		assert.InDelta(t, 16.0, *ar.Parameters.RoomTargetNight, 1e-6, "%s", algo)
	}
}

func TestExtractRecoversParametersUnsupervised(t *testing.T) {
	dataset := syntheticDataset(t, 2000, -10, 10)

	result, err := analysis.Extract(dataset.OutdoorValues(), dataset.FlowValues(), analysis.Options{
		Algorithms: []analysis.Algorithm{analysis.OLS},
	})
	require.NoError(t, err)

	require.NotNil(t, result.ModeSeparation)
	// Day and night intercepts differ by K * 4 °C of setback
	assert.InDelta(t, 5.6, *result.ModeSeparation, 0.3)

	params := result.Algorithms[analysis.OLS].Parameters
	require.NotNil(t, params)
	assert.InDelta(t, 1.4, params.K, 0.05)
	assert.InDelta(t, 20.0, params.RoomTargetDay, 0.3)
	require.NotNil(t, params.RoomTargetNight)
	assert.InDelta(t, 16.0, *params.RoomTargetNight, 0.3)
}

func TestExtractDropsSummerSamples(t *testing.T) {
	// Outdoor up to 20 °C: samples above the cutoff have a missing ideal
	// flow and must not disturb the fits.
	dataset := syntheticDataset(t, 2000, -10, 20)

	result, err := analysis.Extract(dataset.OutdoorValues(), dataset.FlowValues(), analysis.Options{
		NightLabels: dataset.NightLabels(),
		Algorithms:  []analysis.Algorithm{analysis.OLS},
	})
	require.NoError(t, err)

	params := result.Algorithms[analysis.OLS].Parameters
	require.NotNil(t, params)
	assert.InDelta(t, 1.4, params.K, 0.05)
	assert.InDelta(t, 20.0, params.RoomTargetDay, 0.3)
}

func TestExtractOmitsRANSACForSmallRegime(t *testing.T) {
	// 50 day samples, 5 night samples: the night regime is below the
	// consensus fit gate and its fit must be absent, not zero-filled.
	var outdoor, flow []float64
	var night []bool
	for i := 0; i < 50; i++ {
		x := -10.0 + 20.0*float64(i)/49.0
		outdoor = append(outdoor, x)
		flow = append(flow, 48.0-1.4*x)
		night = append(night, false)
	}
	for i := 0; i < 5; i++ {
		x := -8.0 + 4.0*float64(i)
		outdoor = append(outdoor, x)
		flow = append(flow, 42.4-1.4*x)
		night = append(night, true)
	}

	result, err := analysis.Extract(outdoor, flow, analysis.Options{NightLabels: night})
	require.NoError(t, err)

	ransac := result.Algorithms[analysis.RANSAC]
	require.NotNil(t, ransac)
	require.NotNil(t, ransac.Day)
	assert.Nil(t, ransac.Night, "5 night samples are below the consensus gate")
	require.NotNil(t, ransac.Parameters)
	assert.Nil(t, ransac.Parameters.RoomTargetNight)

	ols := result.Algorithms[analysis.OLS]
	require.NotNil(t, ols.Night, "ordinary least squares still fits the small regime")
	require.NotNil(t, ols.Parameters.RoomTargetNight)
	assert.InDelta(t, 16.0, *ols.Parameters.RoomTargetNight, 1e-6)
}

func TestExtractZeroSlopeYieldsNoParameters(t *testing.T) {
	// A flat flow temperature back-calculates to K = 0; the division must
	// not happen and no parameters are reported.
	var outdoor, flow []float64
	var night []bool
	for i := 0; i < 40; i++ {
		outdoor = append(outdoor, float64(i))
		flow = append(flow, 50.0)
		night = append(night, i%4 == 0)
	}

	result, err := analysis.Extract(outdoor, flow, analysis.Options{
		NightLabels: night,
		Algorithms:  []analysis.Algorithm{analysis.OLS},
	})
	require.NoError(t, err)

	ar := result.Algorithms[analysis.OLS]
	require.NotNil(t, ar.Day)
	assert.Nil(t, ar.Parameters)
}

func TestExtractInputValidation(t *testing.T) {
	_, err := analysis.Extract([]float64{1, 2}, []float64{1}, analysis.Options{})
	assert.Error(t, err)

	_, err = analysis.Extract([]float64{1, 2}, []float64{1, 2}, analysis.Options{
		NightLabels: []bool{true},
	})
	assert.Error(t, err)

	_, err = analysis.Extract([]float64{1, 2}, []float64{1, 2}, analysis.Options{
		Algorithms: []analysis.Algorithm{"LASSO"},
	})
	assert.Error(t, err)
}

func TestCompareScoresAgainstGroundTruth(t *testing.T) {
	dataset := syntheticDataset(t, 2000, -10, 10)

	result, err := analysis.Extract(dataset.OutdoorValues(), dataset.FlowValues(), analysis.Options{
		NightLabels: dataset.NightLabels(),
		Algorithms:  []analysis.Algorithm{analysis.OLS},
	})
	require.NoError(t, err)

	truth := analysis.GroundTruth{Slope: 1.4, RoomTargetDay: 20, RoomTargetNight: 16}
	comparison := analysis.Compare(result, truth)

	errs, ok := comparison[analysis.OLS]
	require.True(t, ok)
	assert.InDelta(t, 0.0, errs.K, 1e-6)
	assert.InDelta(t, 0.0, errs.RoomTargetDay, 1e-6)
	require.NotNil(t, errs.RoomTargetNight)
	assert.InDelta(t, 0.0, *errs.RoomTargetNight, 1e-6)
}

func TestFormatReportMentionsMissingFits(t *testing.T) {
	dataset := syntheticDataset(t, 2000, -10, 10)

	result, err := analysis.Extract(dataset.OutdoorValues(), dataset.FlowValues(), analysis.Options{
		NightLabels: dataset.NightLabels(),
	})
	require.NoError(t, err)

	truth := analysis.GroundTruth{Slope: 1.4, RoomTargetDay: 20, RoomTargetNight: 16}
	report := analysis.FormatReport(result, &truth)

	assert.Contains(t, report, "OLS")
	assert.Contains(t, report, "RANSAC")
	assert.Contains(t, report, "1.4000")
}
