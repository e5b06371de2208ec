package api

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/jharder01/Huntarr.io/internal/models"
)

// LogQuery filters stored log lines.
type LogQuery struct {
	Level  string
	Limit  int
	Offset int
	Search string
}

type logsResponse struct {
	Success bool     `json:"success"`
	Logs    []string `json:"logs"`
	Total   int      `json:"total"`
	Offset  int      `json:"offset"`
	Limit   int      `json:"limit"`
}

// Logs fetches stored log lines for one app, or every app for "all".
func (c *Client) Logs(ctx context.Context, app models.Source, q LogQuery) (*models.LogPage, error) {
	query := url.Values{}
	if q.Level != "" {
		query.Set("level", q.Level)
	}
	if q.Limit > 0 {
		query.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Offset > 0 {
		query.Set("offset", strconv.Itoa(q.Offset))
	}
	if q.Search != "" {
		query.Set("search", q.Search)
	}

	var resp logsResponse
	if err := c.get(ctx, logsPath(app, ""), query, &resp); err != nil {
		return nil, err
	}

	page := &models.LogPage{
		Lines:  make([]models.LogLine, 0, len(resp.Logs)),
		Total:  resp.Total,
		Offset: resp.Offset,
		Limit:  resp.Limit,
	}
	for _, raw := range resp.Logs {
		page.Lines = append(page.Lines, ParseLogLine(raw))
	}
	return page, nil
}

// ClearLogs deletes the stored logs of one app and returns how many lines
// were removed.
func (c *Client) ClearLogs(ctx context.Context, app models.Source) (int, error) {
	var resp struct {
		DeletedCount int `json:"deleted_count"`
	}
	if err := c.post(ctx, logsPath(app, "/clear"), struct{}{}, &resp); err != nil {
		return 0, err
	}
	return resp.DeletedCount, nil
}

// ParseLogLine splits a stored "timestamp|level|app|message" line. Lines
// with fewer fields keep the remainder in Message.
func ParseLogLine(raw string) models.LogLine {
	parts := strings.SplitN(raw, "|", 4)
	if len(parts) < 4 {
		return models.LogLine{Message: raw}
	}
	return models.LogLine{
		Timestamp: parts[0],
		Level:     parts[1],
		App:       parts[2],
		Message:   parts[3],
	}
}

func logsPath(app models.Source, suffix string) string {
	return "/api/logs/" + url.PathEscape(string(app)) + suffix
}
