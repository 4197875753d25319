// Package noise corrupts ideal flow temperature series the way an imperfect
// sensor installation would: Gaussian measurement noise, domestic hot water
// spikes, gross outliers, dropouts and stuck readings. Corruption is
// deterministic for a given seed so synthetic datasets are reproducible.
package noise

import (
	"errors"
	"fmt"
)

// Params are the user-facing corruption intensities. They map onto the
// private fields of Profile, which are validated by New.
type Params struct {
	GaussianSigma      float64 `yaml:"gaussian_sigma" mapstructure:"gaussian_sigma"`           // std dev of additive measurement noise in °C, default 0
	SpikeProbability   float64 `yaml:"spike_probability" mapstructure:"spike_probability"`     // per-sample probability of a hot water spike, default 0
	SpikeMagnitude     float64 `yaml:"spike_magnitude" mapstructure:"spike_magnitude"`         // additive magnitude of hot water spikes in °C, default 0
	OutlierProbability float64 `yaml:"outlier_probability" mapstructure:"outlier_probability"` // per-sample probability of a ±20 °C outlier, default 0
	MissingProbability float64 `yaml:"missing_probability" mapstructure:"missing_probability"` // per-sample probability of a dropout, default 0
	StuckProbability   float64 `yaml:"stuck_probability" mapstructure:"stuck_probability"`     // per-sample probability of repeating the previous reading, default 0
	Seed               uint64  `yaml:"seed" mapstructure:"seed"`                               // seed for the corruption random stream
}

// Profile is a validated noise configuration. Construct with New; the zero
// value corrupts nothing.
type Profile struct {
	// Private fields have setters for invalid value checking

	gaussianSigma      float64
	spikeProbability   float64
	spikeMagnitude     float64
	outlierProbability float64
	missingProbability float64
	stuckProbability   float64
	seed               uint64
}

// New returns a Profile with the requested parameters, checking for invalid
// values.
func New(params Params) (*Profile, error) {
	p := &Profile{}

	// Invalid values checked by setters
	if err := p.SetGaussianSigma(params.GaussianSigma); err != nil {
		return nil, err
	}
	if err := p.SetSpikeProbability(params.SpikeProbability); err != nil {
		return nil, err
	}
	if err := p.SetOutlierProbability(params.OutlierProbability); err != nil {
		return nil, err
	}
	if err := p.SetMissingProbability(params.MissingProbability); err != nil {
		return nil, err
	}
	if err := p.SetStuckProbability(params.StuckProbability); err != nil {
		return nil, err
	}

	// Fields that can never be invalid set directly
	p.spikeMagnitude = params.SpikeMagnitude
	p.seed = params.Seed

	return p, nil
}

// Initialise the fields of Profile when it is unmarshalled from yaml.
func (p *Profile) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var params Params
	if err := unmarshal(&params); err != nil {
		return err
	}

	// This performs checking for invalid values
	profile, err := New(params)
	if err != nil {
		return err
	}

	*p = *profile
	return nil
}

// Params returns the parameters the profile was built from.
func (p *Profile) Params() Params {
	return Params{
		GaussianSigma:      p.gaussianSigma,
		SpikeProbability:   p.spikeProbability,
		SpikeMagnitude:     p.spikeMagnitude,
		OutlierProbability: p.outlierProbability,
		MissingProbability: p.missingProbability,
		StuckProbability:   p.stuckProbability,
		Seed:               p.seed,
	}
}

// Setters

// SetGaussianSigma sets the measurement noise standard deviation if sigma >= 0.
func (p *Profile) SetGaussianSigma(sigma float64) error {
	if sigma < 0 {
		return errors.New("gaussian sigma must be greater than or equal to 0")
	}
	p.gaussianSigma = sigma
	return nil
}

// SetSpikeProbability sets the hot water spike probability if it is in [0, 1].
func (p *Profile) SetSpikeProbability(probability float64) error {
	if err := checkProbability("spike", probability); err != nil {
		return err
	}
	p.spikeProbability = probability
	return nil
}

// SetOutlierProbability sets the outlier probability if it is in [0, 1].
func (p *Profile) SetOutlierProbability(probability float64) error {
	if err := checkProbability("outlier", probability); err != nil {
		return err
	}
	p.outlierProbability = probability
	return nil
}

// SetMissingProbability sets the dropout probability if it is in [0, 1].
func (p *Profile) SetMissingProbability(probability float64) error {
	if err := checkProbability("missing", probability); err != nil {
		return err
	}
	p.missingProbability = probability
	return nil
}

// SetStuckProbability sets the stuck sensor probability if it is in [0, 1].
func (p *Profile) SetStuckProbability(probability float64) error {
	if err := checkProbability("stuck", probability); err != nil {
		return err
	}
	p.stuckProbability = probability
	return nil
}

// SetSeed sets the seed of the corruption random stream.
func (p *Profile) SetSeed(seed uint64) {
	p.seed = seed
}

func checkProbability(name string, probability float64) error {
	if probability < 0 || probability > 1 {
		return fmt.Errorf("%s probability must be between 0 and 1", name)
	}
	return nil
}

// Getters

func (p *Profile) GetGaussianSigma() float64 {
	return p.gaussianSigma
}

func (p *Profile) GetSpikeProbability() float64 {
	return p.spikeProbability
}

func (p *Profile) GetSpikeMagnitude() float64 {
	return p.spikeMagnitude
}

func (p *Profile) GetOutlierProbability() float64 {
	return p.outlierProbability
}

func (p *Profile) GetMissingProbability() float64 {
	return p.missingProbability
}

func (p *Profile) GetStuckProbability() float64 {
	return p.stuckProbability
}

func (p *Profile) GetSeed() uint64 {
	return p.seed
}
