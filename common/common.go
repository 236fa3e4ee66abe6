package common

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Public common errors
var (
	ErrNilPointer         = errors.New("nil pointer")
	ErrParameterEmpty     = errors.New("parameter empty")
	ErrTypeAssertFailure  = errors.New("type assert failure")
	errInvalidBaseURL     = errors.New("invalid base URL")
	errBaseURLSchemeUnset = errors.New("base URL scheme must be http or https")
)

// NewHTTPClientWithTimeout initialises a new HTTP client and its underlying
// transport IdleConnTimeout with the specified timeout duration
func NewHTTPClientWithTimeout(t time.Duration) *http.Client {
	tr := &http.Transport{
		// Added IdleConnTimeout to reduce the time of idle connections which
		// could potentially slow macOS reconnection when there is a sudden
		// network disconnection/issue
		IdleConnTimeout: t,
		Proxy:           http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   t,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout: 10 * time.Second,
		MaxIdleConnsPerHost: 4,
	}
	return &http.Client{
		Transport: tr,
		Timeout:   t,
	}
}

// EncodeURLValues concatenates url values onto a url string and returns a
// string
func EncodeURLValues(urlPath string, values url.Values) string {
	if len(values) == 0 {
		return urlPath
	}
	return urlPath + "?" + values.Encode()
}

// NormaliseBaseURL validates a service root and strips any trailing slash so
// that root + "/" + path never doubles up separators
func NormaliseBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("%w: %w", errInvalidBaseURL, ErrParameterEmpty)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %w", errInvalidBaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("%w: %q", errBaseURLSchemeUnset, raw)
	}
	return strings.TrimRight(raw, "/"), nil
}

// JoinPath appends an endpoint path to a normalised root, ensuring exactly
// one separator between them
func JoinPath(root, endpoint string) string {
	return root + "/" + strings.TrimLeft(endpoint, "/")
}
