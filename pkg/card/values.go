package card

import (
	"math"
	"strconv"
	"strings"
)

// IntValue coerces loosely-typed numeric input (JSON float64, YAML int,
// numeric strings) into an int. Fractional values are rejected.
func IntValue(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int8:
		return int(v), true
	case int16:
		return int(v), true
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	case uint:
		return int(v), true
	case uint8:
		return int(v), true
	case uint16:
		return int(v), true
	case uint32:
		return int(v), true
	case uint64:
		return int(v), true
	case float64:
		if v == math.Trunc(v) {
			return int(v), true
		}
	case float32:
		if float64(v) == math.Trunc(float64(v)) {
			return int(v), true
		}
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return 0, false
		}
		value, err := strconv.Atoi(trimmed)
		if err == nil {
			return value, true
		}
	}
	return 0, false
}

// FloatValue coerces numeric input into a float64. Strings are not numbers.
func FloatValue(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	}
	if n, ok := IntValue(value); ok {
		if _, isString := value.(string); !isString {
			return float64(n), true
		}
	}
	return 0, false
}

// StringValue returns trimmed string input; other types report false.
func StringValue(value any) (string, bool) {
	s, ok := value.(string)
	if !ok {
		return "", false
	}
	s = strings.TrimSpace(s)
	return s, s != ""
}

// BoolValue accepts booleans and the strings "true"/"false".
func BoolValue(value any) (bool, bool) {
	switch v := value.(type) {
	case bool:
		return v, true
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err == nil {
			return b, true
		}
	}
	return false, false
}

// MapValue returns object input with string keys. YAML documents decoded into
// map[any]any are converted.
func MapValue(value any) (map[string]any, bool) {
	switch v := value.(type) {
	case map[string]any:
		return v, true
	case map[any]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[strings.TrimSpace(toKey(key))] = item
		}
		return out, true
	}
	return nil, false
}

// SliceValue returns array input.
func SliceValue(value any) ([]any, bool) {
	switch v := value.(type) {
	case []any:
		return v, true
	case []map[string]any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = item
		}
		return out, true
	}
	return nil, false
}

// SizeValue reads a size token: strings pass through, bare numbers become
// pixel lengths.
func SizeValue(value any) (string, bool) {
	if s, ok := StringValue(value); ok {
		return s, true
	}
	if n, ok := IntValue(value); ok {
		if _, isString := value.(string); !isString {
			return strconv.Itoa(n) + "px", true
		}
	}
	return "", false
}

func toKey(key any) string {
	switch k := key.(type) {
	case string:
		return k
	case int:
		return strconv.Itoa(k)
	case bool:
		return strconv.FormatBool(k)
	default:
		return ""
	}
}
