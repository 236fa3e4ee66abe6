package mudrex

import (
	"bytes"

	"github.com/buger/jsonparser"
	"github.com/thrasher-corp/mudrex/encoding/json"
)

// Envelope is the outer wrapper of every response
type Envelope struct {
	// Success is the classification outcome of the success key. An absent
	// key counts as success.
	Success   bool
	Message   string
	Code      string
	RequestID string
	// Data is the data member when present and not null
	Data json.RawMessage
	// Raw is the body as received
	Raw json.RawMessage

	successSet bool
}

// ParseEnvelope decodes a response body. A body that is not JSON, or is a
// JSON scalar, becomes a failure envelope carrying the raw text as message. A
// top level array is treated as a successful bare list payload.
func ParseEnvelope(body []byte) *Envelope {
	trimmed := bytes.TrimSpace(body)
	if !json.Valid(trimmed) {
		return invalidEnvelope(body)
	}

	_, dataType, _, err := jsonparser.Get(trimmed)
	if err != nil {
		return invalidEnvelope(body)
	}
	switch dataType {
	case jsonparser.Array:
		return &Envelope{Success: true, Data: trimmed, Raw: trimmed}
	case jsonparser.Object:
	default:
		return invalidEnvelope(body)
	}

	env := &Envelope{Success: true, Raw: trimmed}
	if v, t, _, err := jsonparser.Get(trimmed, "success"); err == nil {
		env.successSet = true
		env.Success = truthy(v, t)
	}
	env.Message = stringMember(trimmed, "message")
	env.Code = stringMember(trimmed, "code")
	env.RequestID = stringMember(trimmed, "requestId")
	if v, t, _, err := jsonparser.Get(trimmed, "data"); err == nil && t != jsonparser.Null {
		env.Data = rawValue(v, t)
	}
	return env
}

func invalidEnvelope(body []byte) *Envelope {
	return &Envelope{Message: string(body), Raw: body, successSet: true}
}

// Payload returns the data member, falling back to the whole body when the
// envelope carries no data
func (e *Envelope) Payload() json.RawMessage {
	if e.Data != nil {
		return e.Data
	}
	return e.Raw
}

// DataOrEmpty returns the data member or an empty object
func (e *Envelope) DataOrEmpty() json.RawMessage {
	if e.Data != nil {
		return e.Data
	}
	return json.RawMessage("{}")
}

// Acknowledged reports whether the service explicitly confirmed the action.
// Unlike Success, an absent success key is not an acknowledgement.
func (e *Envelope) Acknowledged() bool {
	return e.successSet && e.Success
}

// truthy evaluates a JSON value the way loosely typed clients do: false, null,
// zero, and empty strings or containers are false
func truthy(v []byte, t jsonparser.ValueType) bool {
	switch t {
	case jsonparser.Boolean:
		b, err := jsonparser.ParseBoolean(v)
		return err == nil && b
	case jsonparser.Number:
		f, err := jsonparser.ParseFloat(v)
		return err == nil && f != 0
	case jsonparser.String:
		return len(v) > 0
	case jsonparser.Array:
		empty := true
		_, _ = jsonparser.ArrayEach(v, func([]byte, jsonparser.ValueType, int, error) {
			empty = false
		})
		return !empty
	case jsonparser.Object:
		empty := true
		_ = jsonparser.ObjectEach(v, func([]byte, []byte, jsonparser.ValueType, int) error {
			empty = false
			return nil
		})
		return !empty
	default:
		return false
	}
}

// stringMember returns a member as text. Strings are unescaped, other non
// null values keep their JSON text.
func stringMember(data []byte, key string) string {
	v, t, _, err := jsonparser.Get(data, key)
	if err != nil {
		return ""
	}
	switch t {
	case jsonparser.Null:
		return ""
	case jsonparser.String:
		s, err := jsonparser.ParseString(v)
		if err != nil {
			return string(v)
		}
		return s
	default:
		return string(v)
	}
}

// rawValue restores the quotes jsonparser strips from string values
func rawValue(v []byte, t jsonparser.ValueType) json.RawMessage {
	if t != jsonparser.String {
		return v
	}
	return json.RawMessage(`"` + string(v) + `"`)
}
