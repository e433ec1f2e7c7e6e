package utils

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// TimeLayouts are the timestamp layouts ToTime accepts, tried in order.
var TimeLayouts = []string{time.RFC3339Nano, time.DateTime, time.DateOnly}

// ToInt converts values decoded from loosely typed sources to int. Numbers
// are truncated, strings are parsed after trimming. Anything else yields 0.
func ToInt(val any) int {
	switch v := val.(type) {
	case nil:
		return 0
	case string:
		return atoi(v)
	case []byte:
		return atoi(string(v))
	}

	rv := reflect.ValueOf(val)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return int(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return int(rv.Float())
	}
	return atoi(fmt.Sprint(val))
}

func atoi(s string) int {
	s = strings.TrimSpace(s)
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	// Exports sometimes write integral ids as "7.0".
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return 0
}

// ToString converts various types to string.
func ToString(val any) string {
	switch v := val.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// ToBool converts various types to bool.
// Numbers equal to 1 and the strings "1" and "true" are true.
func ToBool(val any) bool {
	switch v := val.(type) {
	case bool:
		return v
	case string:
		return isTrue(v)
	case []byte:
		return isTrue(string(v))
	case nil:
		return false
	}

	switch reflect.ValueOf(val).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return ToInt(val) == 1
	}
	return false
}

func isTrue(s string) bool {
	s = strings.TrimSpace(s)
	return s == "1" || strings.EqualFold(s, "true")
}

// ToTime converts a decoded timestamp. nil and "" give the zero time, strings
// are parsed with TimeLayouts.
func ToTime(val any) (time.Time, error) {
	switch v := val.(type) {
	case nil:
		return time.Time{}, nil
	case time.Time:
		return v, nil
	case string:
		if strings.TrimSpace(v) == "" {
			return time.Time{}, nil
		}
		for _, layout := range TimeLayouts {
			if t, err := time.Parse(layout, strings.TrimSpace(v)); err == nil {
				return t, nil
			}
		}
		return time.Time{}, fmt.Errorf("unrecognised timestamp %q", v)
	default:
		return time.Time{}, fmt.Errorf("unsupported timestamp type %T", v)
	}
}
