package types

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/thrasher-corp/mudrex/encoding/json"
)

// millisecondThreshold is the magnitude above which a numeric timestamp is
// treated as Unix milliseconds instead of Unix seconds.
const millisecondThreshold = 1e12

// isoLayouts are tried in order when a timestamp arrives as text. Layouts
// without an offset are interpreted as UTC.
var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// Time represents a time.Time object that can be unmarshalled from a Unix
// timestamp in seconds or milliseconds, or from an ISO-8601 string.
// Anything that cannot be interpreted decodes to the zero Time, which reports
// IsZero as true and stands for an absent timestamp.
// MarshalJSON serializes the time to JSON using RFC 3339 format.
type Time time.Time

// ParseTime converts a loosely typed wire value into a Time. It never fails;
// unparsable input yields the zero Time.
func ParseTime(v any) Time {
	switch val := v.(type) {
	case nil:
		return Time{}
	case Time:
		return val
	case time.Time:
		return Time(val)
	case *time.Time:
		if val == nil {
			return Time{}
		}
		return Time(*val)
	case json.Number:
		return parseTimeString(string(val))
	case string:
		return parseTimeString(val)
	case float64:
		return fromUnixFloat(val)
	case float32:
		return fromUnixFloat(float64(val))
	case int:
		return fromUnixInt(int64(val))
	case int32:
		return fromUnixInt(int64(val))
	case int64:
		return fromUnixInt(val)
	case uint32:
		return fromUnixInt(int64(val))
	case uint64:
		if val > math.MaxInt64 {
			return Time{}
		}
		return fromUnixInt(int64(val))
	}
	return Time{}
}

func parseTimeString(s string) Time {
	s = strings.TrimSpace(s)
	switch s {
	case "", "0", "null":
		return Time{}
	}

	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return fromUnixInt(n)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return fromUnixFloat(f)
	}

	if strings.HasSuffix(s, "Z") {
		s = s[:len(s)-1] + "+00:00"
	}
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Time(t.UTC())
		}
	}
	return Time{}
}

func fromUnixInt(n int64) Time {
	if n == 0 {
		return Time{}
	}
	if n > millisecondThreshold || n < -millisecondThreshold {
		return Time(time.UnixMilli(n).UTC())
	}
	return Time(time.Unix(n, 0).UTC())
}

func fromUnixFloat(f float64) Time {
	if f == 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return Time{}
	}
	if math.Abs(f) > millisecondThreshold {
		f /= 1000
	}
	sec, frac := math.Modf(f)
	return Time(time.Unix(int64(sec), int64(math.Round(frac*1e9))).UTC())
}

// UnmarshalJSON deserializes json, and timestamp information.
func (t *Time) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		*t = Time{}
		return nil
	}
	if len(s) >= 2 && s[0] == '"' {
		unquoted, err := strconv.Unquote(s)
		if err != nil {
			*t = Time{}
			return nil //nolint:nilerr // unparsable timestamps decode as absent
		}
		*t = parseTimeString(unquoted)
		return nil
	}
	*t = parseTimeString(s)
	return nil
}

// Time represents a time instance.
func (t Time) Time() time.Time { return time.Time(t) }

// IsZero reports whether the timestamp was absent or unparsable.
func (t Time) IsZero() bool { return time.Time(t).IsZero() }

// String returns a string representation of the time.
func (t Time) String() string {
	return t.Time().String()
}

// MarshalJSON serializes the time to json.
func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return t.Time().MarshalJSON()
}
