package mudrex

import (
	"context"
	"net/http"
)

// GetFeeHistory returns one page of trading fee charges
func (c *Client) GetFeeHistory(ctx context.Context, params ListParams) ([]FeeRecord, error) {
	return newResource[FeeRecord](c).many(ctx, http.MethodGet, mudrexFeeHistory, params.values())
}
