package noise

import (
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"
)

// DecodeHook returns a mapstructure decode hook that decodes a loosely typed
// map into Params and runs it through the validating constructor, so invalid
// noise settings are rejected at decode time. This supports configuration
// solutions that use mapstructure to unmarshal generic maps.
func DecodeHook() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if t != reflect.TypeOf(Params{}) {
			// If the target type is not Params, return the data unchanged
			return data, nil
		}

		params, err := decodeParams(data)
		if err != nil {
			return nil, err
		}

		// Use the constructor for its error checking only; the decoded
		// params are returned unchanged.
		if _, err := New(params); err != nil {
			return nil, err
		}

		return params, nil
	}
}

// Use mapstructure to unmarshal a loose map into Params, rejecting unknown
// keys so typos are not silently defaulted.
func decodeParams(data interface{}) (Params, error) {
	var params Params

	m, ok := data.(map[string]interface{})
	if !ok {
		return params, fmt.Errorf("expected map[string]interface{}, got %T", data)
	}

	decoderConfig := &mapstructure.DecoderConfig{
		ErrorUnused: true,
		Result:      &params,
	}
	decoder, err := mapstructure.NewDecoder(decoderConfig)
	if err != nil {
		return params, err
	}
	if err := decoder.Decode(m); err != nil {
		return params, err
	}

	return params, nil
}
