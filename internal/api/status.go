package api

import (
	"context"

	"github.com/jharder01/Huntarr.io/internal/models"
)

// Status fetches an application's configuration and connection status.
func (c *Client) Status(ctx context.Context, app models.Source) (*models.AppStatus, error) {
	var st models.AppStatus
	if err := c.get(ctx, appPath(app, "/status"), nil, &st); err != nil {
		return nil, err
	}
	return &st, nil
}
