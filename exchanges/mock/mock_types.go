package mock

import "github.com/thrasher-corp/mudrex/encoding/json"

// VCRMock defines the recorded routes served by a mock server. Routes are
// keyed by URL path and then by HTTP method.
type VCRMock struct {
	Routes map[string]map[string][]HTTPResponse `json:"routes"`
}

// HTTPResponse defines one recorded response and the request parameters it
// answers. QueryString and BodyParams are url encoded; an empty value only
// matches requests without parameters.
type HTTPResponse struct {
	Data        json.RawMessage     `json:"data"`
	QueryString string              `json:"queryString"`
	BodyParams  string              `json:"bodyParams"`
	StatusCode  int                 `json:"statusCode,omitempty"`
	Headers     map[string][]string `json:"headers,omitempty"`
}
