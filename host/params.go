package host

import (
	"encoding/json"
	"fmt"
)

// StringParameter reads a string parameter, falling back to def when the
// parameter is unset or not a string.
func StringParameter(exec Execution, name string, itemIndex int, def string) string {
	v, ok := exec.Parameter(name, itemIndex)
	if !ok {
		return def
	}
	s, ok := v.(string)
	if !ok {
		return def
	}
	return s
}

// BoolParameter reads a boolean parameter with a default.
func BoolParameter(exec Execution, name string, itemIndex int, def bool) bool {
	v, ok := exec.Parameter(name, itemIndex)
	if !ok {
		return def
	}
	b, ok := v.(bool)
	if !ok {
		return def
	}
	return b
}

// IntParameter reads a numeric parameter with a default. JSON-decoded
// parameter maps carry numbers as float64, so both forms are accepted.
func IntParameter(exec Execution, name string, itemIndex int, def int) int {
	v, ok := exec.Parameter(name, itemIndex)
	if !ok {
		return def
	}
	switch n := v.(type) {
	case int:
		return n
	case float64:
		return int(n)
	default:
		return def
	}
}

// ObjectParameter reads a parameter holding either a JSON object or a JSON
// string encoding one, and returns the decoded map. Unset parameters yield
// an empty map; a string that fails to decode is an error carrying the
// parse message.
func ObjectParameter(exec Execution, name string, itemIndex int) (map[string]any, error) {
	v, ok := exec.Parameter(name, itemIndex)
	if !ok {
		return map[string]any{}, nil
	}
	switch value := v.(type) {
	case map[string]any:
		return value, nil
	case string:
		if value == "" {
			return map[string]any{}, nil
		}
		var decoded map[string]any
		if err := json.Unmarshal([]byte(value), &decoded); err != nil {
			return nil, fmt.Errorf("parameter %q is not valid JSON: %w", name, err)
		}
		return decoded, nil
	default:
		return nil, fmt.Errorf("parameter %q is not an object", name)
	}
}
