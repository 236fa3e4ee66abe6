package mudrex

import (
	"context"
	"maps"
	"net/url"
	"strconv"

	"github.com/thrasher-corp/mudrex/encoding/json"
)

const (
	defaultPage    = 1
	defaultPerPage = 50
)

// resource binds the client to one entity type so every facade shares the
// same send, unwrap and decode steps
type resource[T decodable] struct {
	c *Client
}

func newResource[T decodable](c *Client) resource[T] {
	return resource[T]{c: c}
}

// one decodes the envelope payload into a single entity, overriding decoded
// keys with the supplied values
func (r resource[T]) one(ctx context.Context, method, path string, params url.Values, body any, overrides map[string]any) (*T, error) {
	env, err := r.c.SendHTTPRequest(ctx, method, path, params, body)
	if err != nil {
		return nil, err
	}
	return r.decode(env.Payload(), overrides)
}

// many decodes the envelope payload into a list of entities
func (r resource[T]) many(ctx context.Context, method, path string, params url.Values) ([]T, error) {
	env, err := r.c.SendHTTPRequest(ctx, method, path, params, nil)
	if err != nil {
		return nil, err
	}
	return DecodeList[T](env.Payload())
}

// page decodes the envelope payload into a page of entities
func (r resource[T]) page(ctx context.Context, method, path string, params url.Values) (*PaginatedResponse[T], error) {
	env, err := r.c.SendHTTPRequest(ctx, method, path, params, nil)
	if err != nil {
		return nil, err
	}
	return DecodePage[T](env.Payload())
}

// ack sends the request and reports whether the service acknowledged it
func (r resource[T]) ack(ctx context.Context, method, path string, body any) (bool, error) {
	env, err := r.c.SendHTTPRequest(ctx, method, path, nil, body)
	if err != nil {
		return false, err
	}
	return env.Acknowledged(), nil
}

func (r resource[T]) decode(payload json.RawMessage, overrides map[string]any) (*T, error) {
	m, err := unmarshalObject(payload)
	if err != nil {
		return nil, err
	}
	maps.Copy(m, overrides)
	v, err := DecodeMap[T](m)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// values encodes pagination parameters, applying defaults to zero values
func (p ListParams) values() url.Values {
	page, perPage := p.Page, p.PerPage
	if page <= 0 {
		page = defaultPage
	}
	if perPage <= 0 {
		perPage = defaultPerPage
	}
	return url.Values{
		"page":     {strconv.Itoa(page)},
		"per_page": {strconv.Itoa(perPage)},
	}
}
