package request

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/gofrs/uuid"
)

// Const vars for rate limiter
const (
	DefaultMaxRetries = 3
	DefaultRetryAfter = time.Second

	drainBodyLimit = 8192
	userAgent      = "User-Agent"
)

// Requester struct for the request client
type Requester struct {
	HTTPClient *http.Client
	Name       string
	UserAgent  string
	limiter    *Limiter
	clock      Clock
	classify   Classifier
	maxRetries int
}

// RequesterOption is a function option that can be applied to configure a
// Requester when creating it
type RequesterOption func(*Requester)

// Classifier inspects a completed response and returns a typed error when the
// service reports a failure. It is called once per request, after any rate
// limit retries have been spent.
type Classifier func(*Response) error

// Item is a temporary item for a request. Body is kept as raw bytes so it can
// be replayed on every retry attempt.
type Item struct {
	Method        string
	Path          string
	Query         url.Values
	Headers       map[string]string
	Body          []byte
	Verbose       bool
	HTTPDebugging bool
}

// Response holds the outcome of the final attempt of a request
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	// RetryAfter is the delay the service asked for on a 429, otherwise zero
	RetryAfter time.Duration
	Attempts   int
	// LocalID correlates log lines for one request across its attempts
	LocalID uuid.UUID
}

// Clock abstracts time so that throttling and retry delays can be driven by a
// simulated clock in tests
type Clock interface {
	Now() time.Time
	Sleep(ctx context.Context, d time.Duration) error
}
