package heizkurve

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// Missing returns the marker for a measurement gap: an outdoor or flow
// reading that is not available, or a flow temperature while the heating is
// off in summer mode. Measurement gaps are NaN so they propagate through
// arithmetic; use IsMissing to test for them.
func Missing() float64 {
	return math.NaN()
}

// IsMissing reports whether v marks a measurement gap.
func IsMissing(v float64) bool {
	return math.IsNaN(v)
}

// Sample is one time-stamped outdoor temperature observation. The outdoor
// value may be Missing().
type Sample struct {
	Timestamp time.Time
	Outdoor   float64 // °C
}

// Record is one fully derived row of a simulation dataset.
type Record struct {
	Timestamp  time.Time
	Outdoor    float64 // °C, Missing() if the reading was unavailable
	Hour       int     // 0-23
	Weekday    time.Weekday
	Month      time.Month
	Weekend    bool
	Night      bool    // night setback active at this hour
	RoomTarget float64 // °C
	IdealFlow  float64 // °C, Missing() during summer shutoff
	NoisyFlow  float64 // °C, Missing() unless a noise profile was applied
}

// Dataset is the labelled output of one synthesizer run. Truth keeps the
// configuration that generated the data so extraction results can be scored
// against it later.
type Dataset struct {
	ID      uuid.UUID
	Truth   Config
	Noisy   bool // whether the NoisyFlow column is populated
	Records []Record
}

// OutdoorValues returns the outdoor temperature column.
func (d *Dataset) OutdoorValues() []float64 {
	out := make([]float64, len(d.Records))
	for i, rec := range d.Records {
		out[i] = rec.Outdoor
	}
	return out
}

// FlowValues returns the flow temperature column an analyser would see:
// the noisy column when noise was applied, the ideal column otherwise.
func (d *Dataset) FlowValues() []float64 {
	out := make([]float64, len(d.Records))
	for i, rec := range d.Records {
		if d.Noisy {
			out[i] = rec.NoisyFlow
		} else {
			out[i] = rec.IdealFlow
		}
	}
	return out
}

// NightLabels returns the ground-truth night flags.
func (d *Dataset) NightLabels() []bool {
	out := make([]bool, len(d.Records))
	for i, rec := range d.Records {
		out[i] = rec.Night
	}
	return out
}
