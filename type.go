// File: yamlhandler/type.go
package yamlhandler

import (
	"fmt"
	"reflect"
	"strconv"
)

// Typed accessors with permissive conversion. Unlike Get and friends, these
// convenience methods report absence as an error, since there is no zero
// value that can stand in for "no node".

// String retrieves a string value at the path.
// Attempts conversion from common types if the stored value isn't already a string.
func (s *Section) String(path string) (string, error) {
	val, found := s.Get(path)
	if !found {
		return "", fmt.Errorf("no value at path: %s", path)
	}

	if strVal, ok := val.(string); ok {
		return strVal, nil
	}

	// Attempt conversion for common types
	switch v := val.(type) {
	case fmt.Stringer:
		return v.String(), nil
	case []byte:
		return string(v), nil
	case int, int8, int16, int32, int64:
		return strconv.FormatInt(reflect.ValueOf(val).Int(), 10), nil
	case uint, uint8, uint16, uint32, uint64:
		return strconv.FormatUint(reflect.ValueOf(val).Uint(), 10), nil
	case float32, float64:
		return strconv.FormatFloat(reflect.ValueOf(val).Float(), 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(v), nil
	case error:
		return v.Error(), nil
	default:
		return "", fmt.Errorf("cannot convert type %T to string for path %s", val, path)
	}
}

// Int64 retrieves an int64 value at the path.
// Attempts conversion from numeric types, parsable strings, and booleans.
func (s *Section) Int64(path string) (int64, error) {
	val, found := s.Get(path)
	if !found {
		return 0, fmt.Errorf("no value at path: %s", path)
	}

	v := reflect.ValueOf(val)
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := v.Uint()
		maxInt64 := int64(^uint64(0) >> 1)
		if u > uint64(maxInt64) {
			return 0, fmt.Errorf("cannot convert unsigned integer %d to int64 for path %s: overflow", u, path)
		}
		return int64(u), nil
	case reflect.Float32, reflect.Float64:
		// Truncate float to int
		return int64(v.Float()), nil
	case reflect.String:
		str := v.String()
		if i, err := strconv.ParseInt(str, 0, 64); err == nil { // Base 0 for auto-detection (e.g., "0xFF")
			return i, nil
		} else {
			if f, ferr := strconv.ParseFloat(str, 64); ferr == nil {
				return int64(f), nil // Truncate
			}
			return 0, fmt.Errorf("cannot convert string %q to int64 for path %s: %w", str, path, err)
		}
	case reflect.Bool:
		if v.Bool() {
			return 1, nil
		}
		return 0, nil
	}

	return 0, fmt.Errorf("cannot convert type %T to int64 for path %s", val, path)
}

// Float64 retrieves a float64 value at the path.
// Attempts conversion from numeric types, parsable strings, and booleans.
func (s *Section) Float64(path string) (float64, error) {
	val, found := s.Get(path)
	if !found {
		return 0.0, fmt.Errorf("no value at path: %s", path)
	}

	v := reflect.ValueOf(val)
	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		return v.Float(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint()), nil
	case reflect.String:
		str := v.String()
		if f, err := strconv.ParseFloat(str, 64); err == nil {
			return f, nil
		} else {
			return 0.0, fmt.Errorf("cannot convert string %q to float64 for path %s: %w", str, path, err)
		}
	case reflect.Bool:
		if v.Bool() {
			return 1.0, nil
		}
		return 0.0, nil
	}

	return 0.0, fmt.Errorf("cannot convert type %T to float64 for path %s", val, path)
}

// Bool retrieves a boolean value at the path.
// Attempts conversion from numeric types (0=false, non-zero=true) and parsable strings.
func (s *Section) Bool(path string) (bool, error) {
	val, found := s.Get(path)
	if !found {
		return false, fmt.Errorf("no value at path: %s", path)
	}

	v := reflect.ValueOf(val)
	switch v.Kind() {
	case reflect.Bool:
		return v.Bool(), nil
	case reflect.String:
		str := v.String()
		if b, err := strconv.ParseBool(str); err == nil {
			return b, nil
		} else {
			return false, fmt.Errorf("cannot convert string %q to bool for path %s: %w", str, path, err)
		}
	// Numeric interpretation: 0 is false, non-zero is true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() != 0, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() != 0, nil
	case reflect.Float32, reflect.Float64:
		return v.Float() != 0, nil
	}

	return false, fmt.Errorf("cannot convert type %T to bool for path %s", val, path)
}

// Slice retrieves the slice at the path, or an empty slice when the path does
// not resolve to one.
func (s *Section) Slice(path string) []any {
	val, found := s.Get(path)
	if !found {
		return []any{}
	}
	if slice, ok := val.([]any); ok {
		return slice
	}
	return []any{}
}

// GetSection returns the section at the path, or nil when the path does not
// resolve to a section.
func (s *Section) GetSection(path string) *Section {
	val, found := s.Get(path)
	if !found {
		return nil
	}
	if section, ok := val.(*Section); ok {
		return section
	}
	return nil
}
