package convert

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/thrasher-corp/mudrex/encoding/json"
)

var errUnhandledType = errors.New("unhandled type")

// IntFromString format
func IntFromString(raw any) (int, error) {
	str, ok := raw.(string)
	if !ok {
		return 0, fmt.Errorf("unable to parse, value not string: %T", raw)
	}
	n, err := strconv.Atoi(str)
	if err != nil {
		return 0, fmt.Errorf("unable to parse as int: %T", raw)
	}
	return n, nil
}

// IntFromAny converts decoded JSON scalars into an int
func IntFromAny(raw any) (int, error) {
	switch v := raw.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			f, fErr := v.Float64()
			if fErr != nil {
				return 0, fmt.Errorf("unable to parse as int: %s", v)
			}
			return int(f), nil
		}
		return int(n), nil
	case string:
		return IntFromString(v)
	}
	return 0, fmt.Errorf("%w: %T", errUnhandledType, raw)
}

// BoolFromAny converts decoded JSON scalars into a bool. Strings are parsed
// with strconv.ParseBool and numbers are true when non-zero.
func BoolFromAny(raw any) (bool, error) {
	switch v := raw.(type) {
	case bool:
		return v, nil
	case string:
		return strconv.ParseBool(strings.TrimSpace(v))
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return false, err
		}
		return f != 0, nil
	case float64:
		return v != 0, nil
	case int:
		return v != 0, nil
	case int64:
		return v != 0, nil
	}
	return false, fmt.Errorf("%w: %T", errUnhandledType, raw)
}

// StringFromAny renders decoded JSON scalars as their text form. nil becomes
// the empty string.
func StringFromAny(raw any) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	case fmt.Stringer:
		return v.String()
	}
	return fmt.Sprint(raw)
}

// DurationFromSeconds converts a fractional seconds value to a time.Duration
func DurationFromSeconds(secs float64) time.Duration {
	return time.Duration(secs * float64(time.Second))
}

// BoolPtr takes in boolen condition and returns pointer version of it
func BoolPtr(condition bool) *bool {
	b := condition
	return &b
}
