package node

import "encoding/json"

// String extracts a string field. Missing or mistyped values report false.
func (in Inputs) String(key string) (string, bool) {
	if in == nil {
		return "", false
	}
	if value, ok := in[key]; ok {
		if s, ok := value.(string); ok {
			return s, true
		}
	}
	return "", false
}

// Float extracts a numeric field as float64, accepting the numeric types a
// JSON decoder or a Go caller may supply.
func (in Inputs) Float(key string) (float64, bool) {
	if in == nil {
		return 0, false
	}
	if value, ok := in[key]; ok {
		switch v := value.(type) {
		case float64:
			return v, true
		case float32:
			return float64(v), true
		case int:
			return float64(v), true
		case int64:
			return float64(v), true
		case json.Number:
			if f, err := v.Float64(); err == nil {
				return f, true
			}
		}
	}
	return 0, false
}

// Int extracts a numeric field as int.
func (in Inputs) Int(key string) (int, bool) {
	if in == nil {
		return 0, false
	}
	if value, ok := in[key]; ok {
		switch v := value.(type) {
		case int:
			return v, true
		case int64:
			return int(v), true
		case float64:
			return int(v), true
		case json.Number:
			if i, err := v.Int64(); err == nil {
				return int(i), true
			}
		}
	}
	return 0, false
}

// ClampFloat bounds v to the closed range [min, max].
func ClampFloat(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// ClampInt bounds v to the closed range [min, max].
func ClampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
