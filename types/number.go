package types

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/thrasher-corp/mudrex/encoding/json"
)

var errUnsupportedNumberType = errors.New("unsupported number type")

// Number represents an exact decimal amount carried as its wire text. Values
// are never routed through float64 on decode so "1000.50" stays "1000.50".
type Number string

// NumberFrom coerces a loosely typed wire value into a Number. Strings and
// json.Number keep their literal text; native numeric types are formatted in
// their shortest exact form.
func NumberFrom(v any) (Number, error) {
	switch val := v.(type) {
	case Number:
		return val, nil
	case string:
		return Number(val), nil
	case json.Number:
		return Number(val.String()), nil
	case decimal.Decimal:
		return Number(val.String()), nil
	case float64:
		return Number(strconv.FormatFloat(val, 'f', -1, 64)), nil
	case float32:
		return Number(strconv.FormatFloat(float64(val), 'f', -1, 32)), nil
	case int:
		return Number(strconv.Itoa(val)), nil
	case int32:
		return Number(strconv.FormatInt(int64(val), 10)), nil
	case int64:
		return Number(strconv.FormatInt(val, 10)), nil
	case uint:
		return Number(strconv.FormatUint(uint64(val), 10)), nil
	case uint32:
		return Number(strconv.FormatUint(uint64(val), 10)), nil
	case uint64:
		return Number(strconv.FormatUint(val, 10)), nil
	case bool:
		return Number(strconv.FormatBool(val)), nil
	}
	return "", fmt.Errorf("%w: %T", errUnsupportedNumberType, v)
}

// String returns the exact wire text
func (n Number) String() string { return string(n) }

// IsSet reports whether the value carries any text
func (n Number) IsSet() bool { return n != "" }

// Decimal parses the value for arithmetic
func (n Number) Decimal() (decimal.Decimal, error) {
	return decimal.NewFromString(string(n))
}

// Float64 returns the value as a float64, or zero if it is not numeric.
// Intended for display and heuristics only.
func (n Number) Float64() float64 {
	d, err := n.Decimal()
	if err != nil {
		return 0
	}
	f, _ := d.Float64()
	return f
}

// UnmarshalJSON accepts both quoted and bare numeric literals
func (n *Number) UnmarshalJSON(data []byte) error {
	s := string(data)
	switch {
	case s == "null":
		*n = ""
		return nil
	case len(s) >= 2 && s[0] == '"':
		unquoted, err := strconv.Unquote(s)
		if err != nil {
			return err
		}
		*n = Number(unquoted)
		return nil
	}
	if _, err := strconv.ParseFloat(s, 64); err != nil {
		return fmt.Errorf("cannot unmarshal %s into Number: %w", s, err)
	}
	*n = Number(s)
	return nil
}

// MarshalJSON always emits the value as a JSON string to preserve precision
func (n Number) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(string(n))), nil
}
