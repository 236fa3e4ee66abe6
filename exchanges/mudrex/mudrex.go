package mudrex

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"sync/atomic"

	"github.com/thrasher-corp/mudrex/common"
	"github.com/thrasher-corp/mudrex/config"
	"github.com/thrasher-corp/mudrex/encoding/json"
	"github.com/thrasher-corp/mudrex/exchanges/request"
	"github.com/thrasher-corp/mudrex/log"
)

const (
	exchangeName = "Mudrex"

	mudrexAuthHeader = "X-Authentication"

	// Wallet
	mudrexWalletFunds    = "/wallet/funds"
	mudrexFuturesFunds   = "/futures/funds"
	mudrexWalletTransfer = "/wallet/futures/transfer"

	// Assets and leverage
	mudrexAssets   = "/futures"
	mudrexAsset    = "/futures/%s"
	mudrexLeverage = "/futures/%s/leverage"

	// Orders
	mudrexCreateOrder  = "/futures/%s/order"
	mudrexOrders       = "/futures/orders"
	mudrexOrder        = "/futures/orders/%s"
	mudrexOrderHistory = "/futures/orders/history"

	// Positions
	mudrexPositions            = "/futures/positions"
	mudrexPosition             = "/futures/positions/%s"
	mudrexPositionClose        = "/futures/positions/%s/close"
	mudrexPositionClosePartial = "/futures/positions/%s/close/partial"
	mudrexPositionReverse      = "/futures/positions/%s/reverse"
	mudrexPositionRiskOrder    = "/futures/positions/%s/riskorder"
	mudrexPositionHistory      = "/futures/positions/history"

	// Fees
	mudrexFeeHistory = "/futures/fee/history"
)

var errClientClosed = errors.New("client is closed")

// Client is the overarching type across the mudrex package. A Client owns
// its HTTP connections and must be closed once no longer used.
type Client struct {
	Name          string
	Verbose       bool
	HTTPDebugging bool

	baseURL    string
	apiSecret  string
	requester  *request.Requester
	httpClient *http.Client

	closeOnce sync.Once
	closed    atomic.Bool
}

// Option configures optional Client collaborators
type Option func(*clientOptions)

type clientOptions struct {
	httpClient *http.Client
	clock      request.Clock
}

// WithHTTPClient sets the HTTP client used for every request. The client
// timeout is left as supplied.
func WithHTTPClient(c *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = c
	}
}

// WithClock sets the clock driving throttling and retry delays
func WithClock(c request.Clock) Option {
	return func(o *clientOptions) {
		o.clock = c
	}
}

// New returns a Client for the supplied config. The config is checked and
// any unset values are filled with their defaults.
func New(cfg *config.Config, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: config", common.ErrNilPointer)
	}
	if err := cfg.CheckConfig(); err != nil {
		return nil, err
	}

	var o clientOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.httpClient == nil {
		o.httpClient = common.NewHTTPClientWithTimeout(cfg.Timeout)
	}

	var limiter *request.Limiter
	if cfg.IsRateLimited() {
		limiter = request.NewLimiter(cfg.RequestsPerSecond, o.clock)
	}

	r, err := request.New(exchangeName, o.httpClient,
		request.WithLimiter(limiter),
		request.WithClock(o.clock),
		request.WithMaxRetries(cfg.MaxRetries),
		request.WithClassifier(classify),
		request.WithUserAgent(cfg.UserAgent),
	)
	if err != nil {
		return nil, err
	}

	if cfg.Verbose {
		log.Debugf(log.ExchangeSys, "%s client using %s, rate limited: %v, max retries: %d",
			exchangeName, cfg.BaseURL, cfg.IsRateLimited(), cfg.MaxRetries)
	}

	return &Client{
		Name:          exchangeName,
		Verbose:       cfg.Verbose,
		HTTPDebugging: cfg.HTTPDebugging,
		baseURL:       cfg.BaseURL,
		apiSecret:     cfg.APISecret,
		requester:     r,
		httpClient:    o.httpClient,
	}, nil
}

// Close releases the client's idle connections. It is safe to call more
// than once; requests made after Close fail.
func (c *Client) Close() error {
	if c == nil {
		return common.ErrNilPointer
	}
	c.closeOnce.Do(func() {
		c.closed.Store(true)
		c.httpClient.CloseIdleConnections()
		if c.Verbose {
			log.Debugf(log.ExchangeSys, "%s client closed", c.Name)
		}
	})
	return nil
}

// SendHTTPRequest sends an authenticated request and returns its envelope.
// Body, when not nil, is sent as JSON. Every failure is returned as an
// *APIError.
func (c *Client) SendHTTPRequest(ctx context.Context, method, path string, params url.Values, body any) (*Envelope, error) {
	if c == nil {
		return nil, common.ErrNilPointer
	}
	if c.closed.Load() {
		return nil, transportError(errClientClosed)
	}

	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return nil, validationError(err)
		}
	}

	resp, err := c.requester.SendPayload(ctx, &request.Item{
		Method:        method,
		Path:          common.JoinPath(c.baseURL, path),
		Query:         params,
		Headers:       c.headers(),
		Body:          payload,
		Verbose:       c.Verbose,
		HTTPDebugging: c.HTTPDebugging,
	})
	if err != nil {
		return nil, transportError(err)
	}
	return ParseEnvelope(resp.Body), nil
}

func (c *Client) headers() map[string]string {
	return map[string]string{
		mudrexAuthHeader: c.apiSecret,
		"Content-Type":   "application/json",
		"Accept":         "application/json",
	}
}

// endpoint fills a path template with escaped identifiers
func endpoint(template string, ids ...string) string {
	args := make([]any, len(ids))
	for i := range ids {
		args[i] = url.PathEscape(ids[i])
	}
	return fmt.Sprintf(template, args...)
}
