package mudrex

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

const (
	defaultSortOrder = "asc"
	searchPerPage    = 100
)

// ListAssets returns the tradable futures contracts on one page of the
// listing. A nil params selects the first page of fifty.
func (c *Client) ListAssets(ctx context.Context, params *AssetListParams) ([]Asset, error) {
	return newResource[Asset](c).many(ctx, http.MethodGet, mudrexAssets, params.values())
}

// ListAssetsPaginated returns one page of the listing with its pagination
// metadata
func (c *Client) ListAssetsPaginated(ctx context.Context, params *AssetListParams) (*PaginatedResponse[Asset], error) {
	return newResource[Asset](c).page(ctx, http.MethodGet, mudrexAssets, params.values())
}

// GetAsset returns the contract details of a single asset, e.g. "BTCUSDT"
func (c *Client) GetAsset(ctx context.Context, assetID string) (*Asset, error) {
	if assetID == "" {
		return nil, validationError(errAssetIDEmpty)
	}
	return newResource[Asset](c).one(ctx, http.MethodGet, endpoint(mudrexAsset, assetID), nil, nil, nil)
}

// SearchAssets filters the first hundred listed assets to those whose symbol
// contains query, ignoring case
func (c *Client) SearchAssets(ctx context.Context, query string) ([]Asset, error) {
	assets, err := c.ListAssets(ctx, &AssetListParams{ListParams: ListParams{PerPage: searchPerPage}})
	if err != nil {
		return nil, err
	}
	query = strings.ToUpper(query)
	matches := make([]Asset, 0, len(assets))
	for i := range assets {
		if strings.Contains(strings.ToUpper(assets[i].Symbol), query) {
			matches = append(matches, assets[i])
		}
	}
	return matches, nil
}

func (p *AssetListParams) values() url.Values {
	if p == nil {
		return ListParams{}.values()
	}
	v := p.ListParams.values()
	if p.SortBy != "" {
		v.Set("sort_by", p.SortBy)
		order := p.SortOrder
		if order == "" {
			order = defaultSortOrder
		}
		v.Set("sort_order", order)
	}
	return v
}
