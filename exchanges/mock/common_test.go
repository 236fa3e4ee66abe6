package mock

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thrasher-corp/mudrex/encoding/json"
)

func TestMatchURLVals(t *testing.T) {
	t.Parallel()
	testVal, testVal2, testVal3, emptyVal := url.Values{}, url.Values{}, url.Values{}, url.Values{}
	testVal.Add("test", "test")
	testVal2.Add("test2", "test2")
	testVal3.Add("test", "diferentValString")

	tests := []struct {
		a   url.Values
		b   url.Values
		exp bool
	}{
		{testVal, emptyVal, false},
		{emptyVal, testVal, false},
		{testVal, testVal2, false},
		{testVal2, testVal, false},
		{testVal, testVal3, false},
		{emptyVal, emptyVal, true},
		{nil, emptyVal, true},
		{testVal, testVal, true},
	}
	for _, tc := range tests {
		got := MatchURLVals(tc.a, tc.b)
		assert.Equalf(t, tc.exp, got, "MatchURLVals should return correctly for (%q, %q)", tc.a, tc.b)
	}
}

func TestDeriveURLValsFromJSONMap(t *testing.T) {
	t.Parallel()
	values, err := DeriveURLValsFromJSONMap(nil)
	require.NoError(t, err)
	assert.Empty(t, values)

	payload, err := json.Marshal(map[string]any{
		"leverage":      "5",
		"quantity":      0.00000001,
		"is_stoploss":   true,
		"reduce_only":   false,
		"trigger_price": nil,
		"tags":          []string{"a"},
	})
	require.NoError(t, err, "Marshal must not error")

	values, err = DeriveURLValsFromJSONMap(payload)
	require.NoError(t, err, "DeriveURLValsFromJSONMap must not error")
	assert.Len(t, values, 6)
	assert.Equal(t, "5", values.Get("leverage"))
	assert.Equal(t, "1e-08", values.Get("quantity"), "numbers must keep their literal text")
	assert.Equal(t, "true", values.Get("is_stoploss"))
	assert.Equal(t, "false", values.Get("reduce_only"))
	assert.Equal(t, "<nil>", values.Get("trigger_price"))
	assert.Equal(t, "[a]", values.Get("tags"))

	_, err = DeriveURLValsFromJSONMap([]byte(`[1,2]`))
	assert.Error(t, err, "non object payloads must error")
}
