// Package heizkurve simulates heating curve (Heizkennlinie) behaviour of
// residential heating systems and, together with the analysis subpackage,
// recovers the control law parameters from noisy flow temperature data.
package heizkurve

import (
	"time"

	"github.com/google/uuid"

	"github.com/synaptecltd/heizkurve/noise"
)

// Synthesizer turns an outdoor temperature series into a labelled dataset:
// per-sample room targets and ideal flow temperatures, plus a corrupted flow
// column when the configuration carries a noise profile.
type Synthesizer struct {
	cfg     Config
	profile *noise.Profile
}

// NewSynthesizer validates the configuration and builds the noise profile if
// one is configured.
func NewSynthesizer(cfg Config) (*Synthesizer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Synthesizer{cfg: cfg}
	if cfg.Noise != nil {
		profile, err := noise.New(*cfg.Noise)
		if err != nil {
			return nil, err
		}
		s.profile = profile
	}
	return s, nil
}

// Config returns the configuration the synthesizer was built with.
func (s *Synthesizer) Config() Config {
	return s.cfg
}

// Generate derives the full simulation dataset for an outdoor temperature
// series. The input is not modified; each call produces a fresh dataset with
// its own run ID. With a noise profile configured the output is still
// deterministic because the corruption stream is seeded from the profile.
func (s *Synthesizer) Generate(outdoor []Sample) (*Dataset, error) {
	ds := &Dataset{
		ID:      uuid.New(),
		Truth:   s.cfg,
		Noisy:   s.profile != nil,
		Records: make([]Record, len(outdoor)),
	}

	ideal := make([]float64, len(outdoor))
	for i, sample := range outdoor {
		rec := newRecord(sample)
		rec.Night = s.cfg.IsNightHour(rec.Hour)
		rec.RoomTarget = s.cfg.RoomTarget(rec.Hour)
		rec.IdealFlow = s.cfg.FlowTemperature(sample.Outdoor, rec.RoomTarget)
		rec.NoisyFlow = Missing()

		ideal[i] = rec.IdealFlow
		ds.Records[i] = rec
	}

	if s.profile != nil {
		noisy := s.profile.Corrupt(ideal)
		for i := range ds.Records {
			ds.Records[i].NoisyFlow = noisy[i]
		}
	}

	return ds, nil
}

// newRecord fills the calendar features derived from the sample timestamp.
func newRecord(sample Sample) Record {
	weekday := sample.Timestamp.Weekday()
	return Record{
		Timestamp: sample.Timestamp,
		Outdoor:   sample.Outdoor,
		Hour:      sample.Timestamp.Hour(),
		Weekday:   weekday,
		Month:     sample.Timestamp.Month(),
		Weekend:   weekday == time.Saturday || weekday == time.Sunday,
	}
}
