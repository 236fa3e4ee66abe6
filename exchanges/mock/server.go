package mock

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"

	"github.com/thrasher-corp/mudrex/encoding/json"
	"github.com/thrasher-corp/mudrex/log"
)

var (
	errMockFilePathEmpty = errors.New("mock file path empty")
	errNoRoutes          = errors.New("mock file contains no routes")
)

// NewVCRServer starts a mock server replaying the recorded responses in the
// file at path. It returns the server URL and a client configured for it.
func NewVCRServer(path string) (string, *http.Client, error) {
	if path == "" {
		return "", nil, errMockFilePathEmpty
	}
	contents, err := os.ReadFile(path)
	if err != nil {
		return "", nil, err
	}

	var m VCRMock
	if err = json.Unmarshal(contents, &m); err != nil {
		return "", nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(m.Routes) == 0 {
		return "", nil, fmt.Errorf("%s: %w", path, errNoRoutes)
	}

	mux := http.NewServeMux()
	for pattern, methods := range m.Routes {
		mux.HandleFunc(pattern, newRouteHandler(pattern, methods))
	}

	s := httptest.NewServer(mux)
	return s.URL, s.Client(), nil
}

func newRouteHandler(pattern string, methods map[string][]HTTPResponse) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != pattern {
			http.NotFound(w, r)
			return
		}
		responses, ok := methods[r.Method]
		if !ok {
			http.Error(w, "mock: method not recorded for "+pattern, http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		bodyVals, err := DeriveURLValsFromJSONMap(body)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		resp, err := matchResponse(responses, r.URL.Query(), bodyVals)
		if err != nil {
			log.Warnf(log.Global, "mock %s %s: %v", r.Method, r.URL, err)
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}

		for k, v := range resp.Headers {
			for i := range v {
				w.Header().Add(k, v[i])
			}
		}
		if w.Header().Get("Content-Type") == "" {
			w.Header().Set("Content-Type", "application/json")
		}
		if resp.StatusCode != 0 {
			w.WriteHeader(resp.StatusCode)
		}
		if _, err := w.Write(resp.Data); err != nil {
			log.Errorf(log.Global, "mock write failure: %v", err)
		}
	}
}

var errNoMatchingResponse = errors.New("no matching recorded response")

func matchResponse(responses []HTTPResponse, query, body url.Values) (*HTTPResponse, error) {
	for i := range responses {
		q, err := url.ParseQuery(responses[i].QueryString)
		if err != nil {
			return nil, err
		}
		b, err := url.ParseQuery(responses[i].BodyParams)
		if err != nil {
			return nil, err
		}
		if MatchURLVals(q, query) && MatchURLVals(b, body) {
			return &responses[i], nil
		}
	}
	return nil, fmt.Errorf("%w: query %q body %q", errNoMatchingResponse, query.Encode(), body.Encode())
}
