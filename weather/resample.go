package weather

import (
	"time"

	"github.com/pkg/errors"

	"github.com/synaptecltd/heizkurve"
)

// DefaultStep is the resampling interval matching typical heating controller
// logging.
const DefaultStep = 15 * time.Minute

// Resample linearly interpolates an irregular or coarser series onto a fixed
// grid from the first to the last timestamp. Grid points before the first or
// after the last defined reading stay Missing; gaps between defined readings
// are filled by interpolating across them. The input must be sorted by
// timestamp.
func Resample(samples []heizkurve.Sample, step time.Duration) ([]heizkurve.Sample, error) {
	if step <= 0 {
		return nil, errors.New("resample step must be positive")
	}
	if len(samples) == 0 {
		return nil, nil
	}
	for i := 1; i < len(samples); i++ {
		if samples[i].Timestamp.Before(samples[i-1].Timestamp) {
			return nil, errors.Errorf("samples out of order at index %d", i)
		}
	}

	// Interpolation knots are the defined readings only
	type knot struct {
		t time.Time
		v float64
	}
	var knots []knot
	for _, s := range samples {
		if !heizkurve.IsMissing(s.Outdoor) {
			knots = append(knots, knot{t: s.Timestamp, v: s.Outdoor})
		}
	}

	start := samples[0].Timestamp
	end := samples[len(samples)-1].Timestamp

	var out []heizkurve.Sample
	k := 0
	for t := start; !t.After(end); t = t.Add(step) {
		value := heizkurve.Missing()

		for k+1 < len(knots) && knots[k+1].t.Before(t) {
			k++
		}
		if len(knots) > 0 {
			switch {
			case t.Before(knots[0].t) || t.After(knots[len(knots)-1].t):
				// outside the defined range
			case !knots[k].t.After(t) && k+1 < len(knots):
				value = interpolate(knots[k].t, knots[k].v, knots[k+1].t, knots[k+1].v, t)
			case knots[k].t.Equal(t) || (k+1 == len(knots) && knots[len(knots)-1].t.Equal(t)):
				value = knots[k].v
			}
		}

		out = append(out, heizkurve.Sample{Timestamp: t, Outdoor: value})
	}

	return out, nil
}

func interpolate(t0 time.Time, v0 float64, t1 time.Time, v1 float64, t time.Time) float64 {
	span := t1.Sub(t0).Seconds()
	if span == 0 {
		return v0
	}
	frac := t.Sub(t0).Seconds() / span
	return v0 + (v1-v0)*frac
}
