package model

import (
	"encoding/json"
	"fmt"
)

// MergeDefaults overlays a stored, possibly-partial entity document onto the
// collection's canonical default: every default attribute is present in the
// result, stored attributes win over defaults, and attributes the default
// does not know about survive. The overlay is shallow, matching how the
// documents were historically written.
func (c Collection) MergeDefaults(raw Entity) (Entity, error) {
	def, err := toObject(c.Default())
	if err != nil {
		return nil, err
	}

	var stored map[string]json.RawMessage
	if err := json.Unmarshal(raw, &stored); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEntity, err)
	}

	for k, v := range stored {
		def[k] = v
	}

	merged, err := json.Marshal(def)
	if err != nil {
		return nil, err
	}
	return merged, nil
}

func toObject(v any) (map[string]json.RawMessage, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, err
	}
	return obj, nil
}

// decodeWithDefaults unmarshals a stored document over a pre-populated
// default value, so absent fields keep their defaults.
func decodeWithDefaults[T any](def T, raw Entity) (T, error) {
	if err := json.Unmarshal(raw, &def); err != nil {
		var zero T
		return zero, fmt.Errorf("%w: %v", ErrInvalidEntity, err)
	}
	return def, nil
}
