package request

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

// rateLimitedServer rejects the first rejections calls with 429 and then
// answers with a success envelope
func rateLimitedServer(t *testing.T, rejections int32, retryAfter string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		n := calls.Add(1)
		if rejections < 0 || n <= rejections {
			if retryAfter != "" {
				w.Header().Set("Retry-After", retryAfter)
			}
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = io.WriteString(w, `{"success":false,"code":"RATE_LIMIT_EXCEEDED"}`)
			return
		}
		_, _ = io.WriteString(w, `{"success":true,"data":{}}`)
	}))
	t.Cleanup(s.Close)
	return s, &calls
}

func TestNew(t *testing.T) {
	t.Parallel()
	_, err := New("test", nil)
	assert.ErrorIs(t, err, errHTTPClientIsNil)

	r, err := New("test", new(http.Client), WithMaxRetries(-2), WithClock(nil), WithClassifier(nil))
	require.NoError(t, err)
	assert.Zero(t, r.MaxRetries())
	assert.IsType(t, SystemClock{}, r.clock)
	assert.NotNil(t, r.classify)
	assert.Nil(t, r.limiter)
}

func TestSendPayloadValidation(t *testing.T) {
	t.Parallel()
	var r *Requester
	_, err := r.SendPayload(t.Context(), &Item{})
	assert.ErrorIs(t, err, errRequestSystemIsNil)

	r, err = New("test", new(http.Client))
	require.NoError(t, err)
	_, err = r.SendPayload(t.Context(), nil)
	assert.ErrorIs(t, err, errRequestItemNil)
	_, err = r.SendPayload(t.Context(), &Item{Method: http.MethodGet})
	assert.ErrorIs(t, err, errInvalidPath)
}

func TestSendPayload(t *testing.T) {
	t.Parallel()
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, http.MethodPost, req.Method)
		assert.Equal(t, "/futures/BTCUSDT/order", req.URL.Path)
		assert.Equal(t, "2", req.URL.Query().Get("page"))
		assert.Equal(t, "secret", req.Header.Get("X-Authentication"))
		assert.Equal(t, "mudrex-go-test", req.Header.Get("User-Agent"))
		body, err := io.ReadAll(req.Body)
		assert.NoError(t, err)
		assert.JSONEq(t, `{"quantity":"0.001"}`, string(body))
		_, _ = io.WriteString(w, `{"success":true,"data":{"order_id":"1"}}`)
	}))
	defer s.Close()

	r, err := New("test", s.Client(), WithUserAgent("mudrex-go-test"))
	require.NoError(t, err)
	resp, err := r.SendPayload(WithVerbose(t.Context()), &Item{
		Method:  http.MethodPost,
		Path:    s.URL + "/futures/BTCUSDT/order",
		Query:   url.Values{"page": {"2"}},
		Headers: map[string]string{"X-Authentication": "secret"},
		Body:    []byte(`{"quantity":"0.001"}`),
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, resp.Attempts)
	assert.False(t, resp.LocalID.IsNil(), "each request must carry a correlation id")
	assert.JSONEq(t, `{"success":true,"data":{"order_id":"1"}}`, string(resp.Body))
}

func TestSendPayloadRetriesRateLimit(t *testing.T) {
	t.Parallel()
	s, calls := rateLimitedServer(t, 2, "0.25")
	clk := newSimClock()
	r, err := New("test", s.Client(), WithClock(clk), WithMaxRetries(3))
	require.NoError(t, err)

	resp, err := r.SendPayload(t.Context(), &Item{Method: http.MethodGet, Path: s.URL})
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load(), "two rejections then success must take three transport calls")
	assert.Equal(t, 3, resp.Attempts)
	assert.Equal(t, []time.Duration{250 * time.Millisecond, 250 * time.Millisecond}, clk.Sleeps())
}

func TestSendPayloadRetryExhaustion(t *testing.T) {
	t.Parallel()
	s, calls := rateLimitedServer(t, -1, "")
	clk := newSimClock()
	r, err := New("test", s.Client(), WithClock(clk), WithMaxRetries(2))
	require.NoError(t, err)

	resp, err := r.SendPayload(t.Context(), &Item{Method: http.MethodGet, Path: s.URL})
	assert.ErrorIs(t, err, ErrUnsuccessfulStatus)
	require.NotNil(t, resp, "the final response must be handed to the classifier")
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, DefaultRetryAfter, resp.RetryAfter)
	assert.Equal(t, int32(3), calls.Load())
	assert.Equal(t, []time.Duration{time.Second, time.Second}, clk.Sleeps(), "missing Retry-After must default to one second")
}

func TestSendPayloadClassifier(t *testing.T) {
	t.Parallel()
	s, calls := rateLimitedServer(t, -1, "1.5")
	errClassified := errors.New("classified")
	var seen *Response
	r, err := New("test", s.Client(), WithClock(newSimClock()), WithMaxRetries(1), WithClassifier(func(resp *Response) error {
		seen = resp
		return errClassified
	}))
	require.NoError(t, err)
	_, err = r.SendPayload(t.Context(), &Item{Method: http.MethodGet, Path: s.URL})
	assert.ErrorIs(t, err, errClassified)
	assert.Equal(t, int32(2), calls.Load())
	require.NotNil(t, seen)
	assert.Equal(t, 1500*time.Millisecond, seen.RetryAfter)

	r, err = New("test", s.Client(), WithClock(newSimClock()), WithMaxRetries(0), WithClassifier(func(*Response) error { return nil }))
	require.NoError(t, err)
	_, err = r.SendPayload(t.Context(), &Item{Method: http.MethodGet, Path: s.URL})
	assert.ErrorIs(t, err, ErrMaxRetriesExceeded)
}

func TestSendPayloadRetryNotAllowed(t *testing.T) {
	t.Parallel()
	s, calls := rateLimitedServer(t, -1, "")
	clk := newSimClock()
	r, err := New("test", s.Client(), WithClock(clk))
	require.NoError(t, err)
	_, err = r.SendPayload(WithRetryNotAllowed(t.Context()), &Item{Method: http.MethodGet, Path: s.URL})
	assert.ErrorIs(t, err, ErrUnsuccessfulStatus)
	assert.Equal(t, int32(1), calls.Load())
	assert.Empty(t, clk.Sleeps())
}

// cancellingClock cancels the request context as soon as a retry sleep
// begins and records what the sleep observed
type cancellingClock struct {
	*simClock
	cancel   context.CancelFunc
	sleepErr error
}

func (c *cancellingClock) Sleep(ctx context.Context, d time.Duration) error {
	c.cancel()
	c.sleepErr = ctx.Err()
	return c.simClock.Sleep(ctx, d)
}

func TestSendPayloadRetrySleepIgnoresCancel(t *testing.T) {
	t.Parallel()
	s, calls := rateLimitedServer(t, 1, "2")
	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()
	clk := &cancellingClock{simClock: newSimClock(), cancel: cancel}
	r, err := New("test", s.Client(), WithClock(clk), WithMaxRetries(1))
	require.NoError(t, err)

	_, err = r.SendPayload(ctx, &Item{Method: http.MethodGet, Path: s.URL})
	require.NoError(t, clk.sleepErr, "retry sleep must not observe cancellation")
	assert.Equal(t, []time.Duration{2 * time.Second}, clk.Sleeps())
	assert.ErrorIs(t, err, context.Canceled, "the next attempt must observe cancellation")
	assert.Equal(t, int32(1), calls.Load())
}

func TestSendPayloadTransportErrorNotRetried(t *testing.T) {
	t.Parallel()
	var calls atomic.Int32
	errDial := errors.New("connection refused")
	c := &http.Client{Transport: roundTripperFunc(func(*http.Request) (*http.Response, error) {
		calls.Add(1)
		return nil, errDial
	})}
	r, err := New("test", c, WithClock(newSimClock()), WithMaxRetries(3))
	require.NoError(t, err)
	_, err = r.SendPayload(t.Context(), &Item{Method: http.MethodGet, Path: "http://localhost/wallet/funds"})
	assert.ErrorIs(t, err, ErrTransport)
	assert.ErrorIs(t, err, errDial)
	assert.Equal(t, int32(1), calls.Load(), "transport failures must not be retried")
}

func TestSendPayloadThrottlesEveryAttempt(t *testing.T) {
	t.Parallel()
	s, calls := rateLimitedServer(t, 1, "0")
	clk := newSimClock()
	r, err := New("test", s.Client(), WithClock(clk), WithLimiter(NewLimiter(DefaultRequestsPerSecond, clk)))
	require.NoError(t, err)

	_, err = r.SendPayload(t.Context(), &Item{Method: http.MethodGet, Path: s.URL})
	require.NoError(t, err)
	_, err = r.SendPayload(t.Context(), &Item{Method: http.MethodGet, Path: s.URL})
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
	// zero Retry-After, then the limiter spaces the retry and the next call
	assert.Equal(t, []time.Duration{0, 500 * time.Millisecond, 500 * time.Millisecond}, clk.Sleeps())
}

func TestSendPayloadLimiterContext(t *testing.T) {
	t.Parallel()
	r, err := New("test", new(http.Client), WithLimiter(NewLimiter(1, nil)))
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	_, err = r.SendPayload(ctx, &Item{Method: http.MethodGet, Path: "http://localhost"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDefaultClassifier(t *testing.T) {
	t.Parallel()
	assert.NoError(t, DefaultClassifier(&Response{StatusCode: http.StatusOK}))
	assert.NoError(t, DefaultClassifier(&Response{StatusCode: http.StatusAccepted}))
	assert.ErrorIs(t, DefaultClassifier(&Response{StatusCode: http.StatusBadRequest}), ErrUnsuccessfulStatus)
	assert.ErrorIs(t, DefaultClassifier(&Response{StatusCode: http.StatusMultipleChoices}), ErrUnsuccessfulStatus)
}
