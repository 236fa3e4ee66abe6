// Package json routes all JSON encoding through one place so the codec can be
// swapped without touching callers
package json

import "encoding/json"

// Codec functions
var (
	Marshal       = json.Marshal
	MarshalIndent = json.MarshalIndent
	Unmarshal     = json.Unmarshal
	NewDecoder    = json.NewDecoder
	NewEncoder    = json.NewEncoder
	Valid         = json.Valid
)

// Codec types
type (
	Decoder     = json.Decoder
	Encoder     = json.Encoder
	Marshaler   = json.Marshaler
	Number      = json.Number
	RawMessage  = json.RawMessage
	Unmarshaler = json.Unmarshaler
)
