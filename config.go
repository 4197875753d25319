package heizkurve

import (
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/synaptecltd/heizkurve/noise"
)

// Config holds the heating curve parameters of one installation. All scalar
// fields are required; Noise is optional and its absence means no corruption
// is applied during synthesis.
type Config struct {
	Slope           float64 `yaml:"slope" mapstructure:"slope"`                         // heating curve gain K, typically 0.2-2.0
	BaseTemperature float64 `yaml:"base_temperature" mapstructure:"base_temperature"`   // °C
	RoomTargetDay   float64 `yaml:"room_target_day" mapstructure:"room_target_day"`     // °C
	RoomTargetNight float64 `yaml:"room_target_night" mapstructure:"room_target_night"` // °C
	FlowMin         float64 `yaml:"flow_min" mapstructure:"flow_min"`                   // °C, lower clamp of the flow temperature
	FlowMax         float64 `yaml:"flow_max" mapstructure:"flow_max"`                   // °C, upper clamp of the flow temperature
	SummerCutoff    float64 `yaml:"summer_cutoff" mapstructure:"summer_cutoff"`         // °C, outdoor temperature above which heating is off
	NightStartHour  int     `yaml:"night_start_hour" mapstructure:"night_start_hour"`   // 0-23
	NightEndHour    int     `yaml:"night_end_hour" mapstructure:"night_end_hour"`       // 0-23

	Noise *noise.Params `yaml:"noise,omitempty" mapstructure:"noise,omitempty"`
}

// DefaultConfig returns the common factory default of residential heating
// controllers: slope 1.4, 20/16 °C day/night targets and a 22:00-06:00 night
// setback window.
func DefaultConfig() Config {
	return Config{
		Slope:           1.4,
		BaseTemperature: 20.0,
		RoomTargetDay:   20.0,
		RoomTargetNight: 16.0,
		FlowMin:         25.0,
		FlowMax:         75.0,
		SummerCutoff:    15.0,
		NightStartHour:  22,
		NightEndHour:    6,
	}
}

// Validate rejects configurations that violate the model invariants. A slope
// of zero or below is physically meaningless but deliberately not rejected
// here; extraction treats it as a degeneracy instead.
func (c *Config) Validate() error {
	if c.FlowMin > c.FlowMax {
		return fmt.Errorf("flow_min (%.1f) must not exceed flow_max (%.1f)", c.FlowMin, c.FlowMax)
	}
	if err := checkHour("night_start_hour", c.NightStartHour); err != nil {
		return err
	}
	if err := checkHour("night_end_hour", c.NightEndHour); err != nil {
		return err
	}
	if c.Noise != nil {
		// Run the noise params through the validating constructor
		if _, err := noise.New(*c.Noise); err != nil {
			return err
		}
	}
	return nil
}

func checkHour(name string, hour int) error {
	if hour < 0 || hour > 23 {
		return fmt.Errorf("%s must be between 0 and 23, got %d", name, hour)
	}
	return nil
}

// UnmarshalYAML fills a config from yaml on top of the defaults and
// validates the result, so partial files stay usable but invalid ones are
// rejected at load time.
func (c *Config) UnmarshalYAML(unmarshal func(interface{}) error) error {
	type plain Config
	cfg := plain(DefaultConfig())
	if err := unmarshal(&cfg); err != nil {
		return err
	}

	out := Config(cfg)
	if err := out.Validate(); err != nil {
		return err
	}

	*c = out
	return nil
}

// ConfigFromMap builds a validated Config from a loosely typed map, for
// callers that receive configuration as generic key/value data. Unknown keys
// are rejected rather than silently dropped.
func ConfigFromMap(m map[string]interface{}) (Config, error) {
	cfg := DefaultConfig()

	decoderConfig := &mapstructure.DecoderConfig{
		DecodeHook:  noise.DecodeHook(),
		ErrorUnused: true,
		Result:      &cfg,
	}
	decoder, err := mapstructure.NewDecoder(decoderConfig)
	if err != nil {
		return Config{}, err
	}
	if err := decoder.Decode(m); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
