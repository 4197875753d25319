package noise

import (
	"math"
	"math/rand/v2"
)

// OutlierMagnitude is the absolute size of injected outliers in °C. The sign
// of each outlier is drawn uniformly at random.
const OutlierMagnitude = 20.0

// Plausible sensor range in °C. Every corrupted series is clamped to it as a
// final stage, mimicking the saturation of the sensor electronics.
const (
	SensorMin = 0.0
	SensorMax = 100.0
)

// Corrupt applies the noise pipeline to an ideal flow temperature series and
// returns a new slice; the input is not modified. Missing values are NaN, both
// on input (summer shutoff) and on output (injected dropouts).
//
// The stages run in fixed order, each reading the output of the one before:
// Gaussian noise, hot water spikes, outliers, dropouts, stuck sensor, final
// clamp to [SensorMin, SensorMax]. A stage with zero rate is skipped entirely
// so it does not advance the random stream.
//
// Two calls with the same input and seed produce bit-identical output: the
// generator is created fresh per call from the profile seed.
func (p *Profile) Corrupt(ideal []float64) []float64 {
	out := make([]float64, len(ideal))
	copy(out, ideal)

	r := rand.New(rand.NewPCG(p.seed, 0))

	if p.gaussianSigma > 0 {
		p.addGaussianNoise(r, out)
	}
	if p.spikeProbability > 0 {
		p.addSpikes(r, out)
	}
	if p.outlierProbability > 0 {
		p.addOutliers(r, out)
	}
	if p.missingProbability > 0 {
		p.dropReadings(r, out)
	}
	if p.stuckProbability > 0 {
		p.stickReadings(r, out)
	}

	clampToSensorRange(out)

	return out
}

// Additive zero-mean measurement noise on every sample.
func (p *Profile) addGaussianNoise(r *rand.Rand, values []float64) {
	for i := range values {
		values[i] += r.NormFloat64() * p.gaussianSigma
	}
}

// Transient domestic hot water draws show up as positive spikes on the flow
// sensor.
func (p *Profile) addSpikes(r *rand.Rand, values []float64) {
	for i := range values {
		if r.Float64() < p.spikeProbability {
			values[i] += p.spikeMagnitude
		}
	}
}

// Gross sensor faults of ±OutlierMagnitude with uniformly random sign.
func (p *Profile) addOutliers(r *rand.Rand, values []float64) {
	for i := range values {
		if r.Float64() < p.outlierProbability {
			values[i] += randomSign(r) * OutlierMagnitude
		}
	}
}

// Dropouts. Applied after the additive stages so any earlier corruption of
// the sample is discarded along with the reading.
func (p *Profile) dropReadings(r *rand.Rand, values []float64) {
	for i := range values {
		if r.Float64() < p.missingProbability {
			values[i] = math.NaN()
		}
	}
}

// A stuck sensor repeats its previous reading. Walked in time order so a
// stuck value can itself be copied forward, modeling a sensor frozen for
// several consecutive intervals. A sample never copies a missing reading.
func (p *Profile) stickReadings(r *rand.Rand, values []float64) {
	for i := 1; i < len(values); i++ {
		if r.Float64() < p.stuckProbability && !math.IsNaN(values[i-1]) {
			values[i] = values[i-1]
		}
	}
}

func clampToSensorRange(values []float64) {
	for i, v := range values {
		if math.IsNaN(v) {
			continue
		}
		if v < SensorMin {
			values[i] = SensorMin
		} else if v > SensorMax {
			values[i] = SensorMax
		}
	}
}

func randomSign(r *rand.Rand) float64 {
	if r.Float64() < 0.5 {
		return -1.0
	}
	return 1.0
}
