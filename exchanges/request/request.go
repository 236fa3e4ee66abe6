package request

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"

	"github.com/gofrs/uuid"
	"github.com/thrasher-corp/mudrex/common"
	"github.com/thrasher-corp/mudrex/log"
)

// Public request errors
var (
	ErrTransport          = errors.New("transport failure")
	ErrMaxRetriesExceeded = errors.New("max retries exceeded")
	ErrUnsuccessfulStatus = errors.New("unsuccessful HTTP status code")
)

var (
	errRequestSystemIsNil = errors.New("request system is nil")
	errRequestItemNil     = errors.New("request item is nil")
	errInvalidPath        = errors.New("invalid path")
	errHTTPClientIsNil    = errors.New("http client is nil")
)

// New returns a new Requester
func New(name string, httpRequester *http.Client, opts ...RequesterOption) (*Requester, error) {
	if httpRequester == nil {
		return nil, errHTTPClientIsNil
	}
	r := &Requester{
		HTTPClient: httpRequester,
		Name:       name,
		clock:      SystemClock{},
		classify:   DefaultClassifier,
		maxRetries: DefaultMaxRetries,
	}

	for _, o := range opts {
		o(r)
	}

	return r, nil
}

// WithLimiter sets the throttle applied before every attempt. A nil limiter
// disables local throttling.
func WithLimiter(l *Limiter) RequesterOption {
	return func(r *Requester) {
		r.limiter = l
	}
}

// WithClock sets the clock used for retry delays
func WithClock(c Clock) RequesterOption {
	return func(r *Requester) {
		if c != nil {
			r.clock = c
		}
	}
}

// WithMaxRetries sets how many times a rate limited request is retried.
// Negative values are treated as zero.
func WithMaxRetries(n int) RequesterOption {
	return func(r *Requester) {
		r.maxRetries = max(n, 0)
	}
}

// WithClassifier sets the function converting final responses into errors
func WithClassifier(c Classifier) RequesterOption {
	return func(r *Requester) {
		if c != nil {
			r.classify = c
		}
	}
}

// WithUserAgent sets the User-Agent header applied when an item does not
// carry its own
func WithUserAgent(ua string) RequesterOption {
	return func(r *Requester) {
		r.UserAgent = ua
	}
}

// DefaultClassifier treats any non 2xx status as a failure
func DefaultClassifier(resp *Response) error {
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("%w: %d raw response: %s", ErrUnsuccessfulStatus, resp.StatusCode, resp.Body)
	}
	return nil
}

// MaxRetries returns the configured retry count
func (r *Requester) MaxRetries() int {
	return r.maxRetries
}

// SendPayload sends the item, throttling every attempt through the limiter
// and retrying rate limit rejections up to the configured retry count. The
// wait between retries honours Retry-After and always runs to completion.
// Transport failures are returned immediately wrapped in ErrTransport.
func (r *Requester) SendPayload(ctx context.Context, item *Item) (*Response, error) {
	if r == nil {
		return nil, errRequestSystemIsNil
	}
	if item == nil {
		return nil, errRequestItemNil
	}
	if item.Path == "" {
		return nil, errInvalidPath
	}

	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}

	verbose := IsVerbose(ctx, item.Verbose)
	maxRetries := r.maxRetries
	if hasRetryNotAllowed(ctx) {
		maxRetries = 0
	}

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if err := r.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		req, err := item.newRequest(ctx, r)
		if err != nil {
			return nil, err
		}

		if verbose {
			log.Debugf(log.RequestSys, "%s [%s] attempt %d %s %s", r.Name, id, attempt+1, item.Method, req.URL)
			if item.Body != nil {
				log.Debugf(log.RequestSys, "%s [%s] request body: %s", r.Name, id, item.Body)
			}
		}

		resp, err := r.HTTPClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("%s %s %s: %w: %w", r.Name, item.Method, item.Path, ErrTransport, err)
		}

		if shouldRetry(resp) && attempt < maxRetries {
			delay := RetryAfter(resp, r.clock.Now())
			// If the body isn't fully read, the connection cannot be re-used
			r.drainBody(resp.Body)
			if verbose {
				log.Warnf(log.RequestSys, "%s [%s] rate limited, retrying in %s (attempt %d of %d)",
					r.Name, id, delay, attempt+1, maxRetries+1)
			}
			_ = r.clock.Sleep(context.WithoutCancel(ctx), delay)
			continue
		}

		out, err := r.readResponse(resp, item, id, attempt+1, verbose)
		if err != nil {
			return nil, err
		}
		if err := r.classify(out); err != nil {
			return out, err
		}
		if out.StatusCode == http.StatusTooManyRequests {
			return out, fmt.Errorf("%s: %w", r.Name, ErrMaxRetriesExceeded)
		}
		return out, nil
	}
	return nil, fmt.Errorf("%s: %w", r.Name, ErrMaxRetriesExceeded)
}

// newRequest builds the HTTP request for one attempt
func (i *Item) newRequest(ctx context.Context, r *Requester) (*http.Request, error) {
	var body io.Reader
	if i.Body != nil {
		body = bytes.NewReader(i.Body)
	}
	req, err := http.NewRequestWithContext(ctx, i.Method, common.EncodeURLValues(i.Path, i.Query), body)
	if err != nil {
		return nil, err
	}

	for k, v := range i.Headers {
		req.Header.Set(k, v)
	}

	if r.UserAgent != "" && req.Header.Get(userAgent) == "" {
		req.Header.Set(userAgent, r.UserAgent)
	}

	if i.HTTPDebugging {
		dump, err := httputil.DumpRequestOut(req, true)
		if err != nil {
			log.Errorf(log.RequestSys, "%s DumpRequest invalid request: %v", r.Name, err)
		} else {
			log.Debugf(log.RequestSys, "%s DumpRequest:\n%s", r.Name, dump)
		}
	}

	return req, nil
}

func (r *Requester) readResponse(resp *http.Response, item *Item, id uuid.UUID, attempts int, verbose bool) (*Response, error) {
	defer resp.Body.Close()
	contents, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s %s %s: %w: %w", r.Name, item.Method, item.Path, ErrTransport, err)
	}

	if item.HTTPDebugging {
		dump, err := httputil.DumpResponse(resp, false)
		if err != nil {
			log.Errorf(log.RequestSys, "%s DumpResponse invalid response: %v", r.Name, err)
		}
		log.Debugf(log.RequestSys, "%s DumpResponse Headers (%v):\n%s", r.Name, item.Path, dump)
	}

	if verbose {
		log.Debugf(log.RequestSys, "%s [%s] HTTP status: %s, Code: %v", r.Name, id, resp.Status, resp.StatusCode)
		log.Debugf(log.RequestSys, "%s [%s] raw response: %s", r.Name, id, contents)
	}

	out := &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       contents,
		Attempts:   attempts,
		LocalID:    id,
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		out.RetryAfter = RetryAfter(resp, r.clock.Now())
	}
	return out, nil
}

func (r *Requester) drainBody(body io.ReadCloser) {
	defer body.Close()
	if _, err := io.Copy(io.Discard, io.LimitReader(body, drainBodyLimit)); err != nil {
		log.Errorf(log.RequestSys,
			"%s failed to drain request body %s",
			r.Name,
			err)
	}
}
