package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jharder01/Huntarr.io/internal/models"
)

// History fetches one page of processed-media history.
func (c *Client) History(ctx context.Context, q models.HistoryQuery) (*models.HistoryPage, error) {
	app := q.App
	if app == "" {
		app = models.SourceAll
	}
	page := q.Page
	if page < 1 {
		page = 1
	}

	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("page_size", strconv.Itoa(models.ClampHistoryPageSize(q.PageSize)))
	if q.Search != "" {
		query.Set("search", q.Search)
	}

	var result models.HistoryPage
	if err := c.get(ctx, "/api/history/"+url.PathEscape(string(app)), query, &result); err != nil {
		return nil, err
	}
	if result.Page == 0 {
		result.Page = page
	}
	return &result, nil
}

// ClearHistory deletes the history of one app, or every app for "all".
func (c *Client) ClearHistory(ctx context.Context, app models.Source) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/history/"+url.PathEscape(string(app)), nil, nil)
	return err
}
