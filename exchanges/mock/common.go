package mock

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/thrasher-corp/mudrex/encoding/json"
)

var errUnhandledConversionType = errors.New("unhandled conversion type, please add as needed")

// MatchURLVals matches url.Value query strings
func MatchURLVals(v1, v2 url.Values) bool {
	if len(v1) != len(v2) {
		return false
	}

	for key, val := range v1 {
		if val2, ok := v2[key]; ok {
			if strings.Join(val2, "") == strings.Join(val, "") {
				continue
			}
		}
		return false
	}
	return true
}

// DeriveURLValsFromJSONMap gets url vals from a JSON object body. Numbers are
// kept as their literal text.
func DeriveURLValsFromJSONMap(payload []byte) (url.Values, error) {
	vals := url.Values{}
	if len(bytes.TrimSpace(payload)) == 0 {
		return vals, nil
	}
	intermediary := make(map[string]any)
	d := json.NewDecoder(bytes.NewReader(payload))
	d.UseNumber()
	if err := d.Decode(&intermediary); err != nil {
		return vals, err
	}

	for k, v := range intermediary {
		switch val := v.(type) {
		case string:
			vals.Add(k, val)
		case bool:
			vals.Add(k, strconv.FormatBool(val))
		case json.Number:
			vals.Add(k, val.String())
		case map[string]any, []any, nil:
			vals.Add(k, fmt.Sprintf("%v", val))
		default:
			return vals, fmt.Errorf("%w: %T", errUnhandledConversionType, val)
		}
	}

	return vals, nil
}
