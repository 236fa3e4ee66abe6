package convert

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thrasher-corp/mudrex/encoding/json"
)

func TestIntFromString(t *testing.T) {
	t.Parallel()
	testString := "1337"
	actualOutput, err := IntFromString(testString)
	if expectedOutput := 1337; actualOutput != expectedOutput || err != nil {
		t.Errorf("Common IntFromString. Expected '%v'. Actual '%v'. Error: %s",
			expectedOutput, actualOutput, err)
	}

	var testByte []byte
	_, err = IntFromString(testByte)
	if err == nil {
		t.Error("Common IntFromString. Converted non-string.")
	}

	testString = "1.41421356237"
	_, err = IntFromString(testString)
	if err == nil {
		t.Error("Common IntFromString. Converted invalid syntax.")
	}
}

func TestIntFromAny(t *testing.T) {
	t.Parallel()
	for in, exp := range map[any]int{
		7:                   7,
		int64(8):            8,
		float64(9):          9,
		json.Number("10"):   10,
		json.Number("11.0"): 11,
		"12":                12,
	} {
		n, err := IntFromAny(in)
		require.NoErrorf(t, err, "%T %v", in, in)
		assert.Equal(t, exp, n)
	}
	_, err := IntFromAny(nil)
	assert.ErrorIs(t, err, errUnhandledType)
	_, err = IntFromAny(json.Number("abc"))
	assert.Error(t, err)
}

func TestBoolFromAny(t *testing.T) {
	t.Parallel()
	for in, exp := range map[any]bool{
		true:             true,
		"false":          false,
		" true ":         true,
		json.Number("1"): true,
		json.Number("0"): false,
		float64(0):       false,
		1:                true,
	} {
		b, err := BoolFromAny(in)
		require.NoErrorf(t, err, "%T %v", in, in)
		assert.Equalf(t, exp, b, "%T %v", in, in)
	}
	_, err := BoolFromAny("nope")
	assert.Error(t, err)
	_, err = BoolFromAny([]int{})
	assert.ErrorIs(t, err, errUnhandledType)
}

func TestStringFromAny(t *testing.T) {
	t.Parallel()
	assert.Empty(t, StringFromAny(nil))
	assert.Equal(t, "ord_1", StringFromAny("ord_1"))
	assert.Equal(t, "12345678901234567890", StringFromAny(json.Number("12345678901234567890")))
	assert.Equal(t, "1.5", StringFromAny(1.5))
	assert.Equal(t, "42", StringFromAny(42))
	assert.Equal(t, "true", StringFromAny(true))
}

func TestDurationFromSeconds(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 1500*time.Millisecond, DurationFromSeconds(1.5))
	assert.Equal(t, time.Duration(0), DurationFromSeconds(0))
}

func TestBoolPtr(t *testing.T) {
	t.Parallel()
	y := BoolPtr(true)
	if !*y {
		t.Fatal("true expected received false")
	}
	z := BoolPtr(false)
	if *z {
		t.Fatal("false expected received true")
	}
}
