package api

import (
	"context"
	"net/http"

	"github.com/jharder01/Huntarr.io/internal/models"
)

type statsResponse struct {
	Success bool         `json:"success"`
	Stats   models.Stats `json:"stats"`
}

// Stats fetches the hunted/upgraded counters of every app.
func (c *Client) Stats(ctx context.Context) (models.Stats, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/stats", nil, nil)
	if err != nil {
		return nil, err
	}
	if err := rejected(body); err != nil {
		return nil, err
	}
	var resp statsResponse
	if err := decode("/api/stats", body, &resp); err != nil {
		return nil, err
	}
	if resp.Stats == nil {
		resp.Stats = models.Stats{}
	}
	return resp.Stats, nil
}

// ResetStats zeroes the counters of one app, or all apps when app is
// empty or "all".
func (c *Client) ResetStats(ctx context.Context, app models.Source) error {
	payload := map[string]any{}
	if app != "" && app != models.SourceAll {
		payload["app_type"] = app
	}
	body, err := c.do(ctx, http.MethodPost, "/api/stats/reset", nil, payload)
	if err != nil {
		return err
	}
	return rejected(body)
}
