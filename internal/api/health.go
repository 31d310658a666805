package api

import (
	"context"
	"net/http"
)

// Health probes the backend without authenticating.
func (c *Client) Health(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, "/health", nil, nil)
	return err
}
