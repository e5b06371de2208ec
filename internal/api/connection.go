package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"strings"

	"github.com/jharder01/Huntarr.io/internal/models"
)

// ValidateConnection checks a connection test's inputs before anything is
// sent and returns the URL with a scheme added when it was missing.
func ValidateConnection(rawURL, apiKey string) (string, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return "", ErrMissingURL
	}
	if strings.TrimSpace(apiKey) == "" {
		return "", ErrMissingAPIKey
	}
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		rawURL = "http://" + rawURL
	}
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return "", ErrInvalidURL
	}
	return rawURL, nil
}

// TestConnection asks the server to reach an application instance. A
// failed test is reported in the result, not as an error; errors are
// reserved for validation and transport failures.
func (c *Client) TestConnection(ctx context.Context, app models.Source, in models.ConnectionTest) (*models.ConnectionResult, error) {
	normalized, err := ValidateConnection(in.URL, in.APIKey)
	if err != nil {
		return nil, err
	}
	in.URL = normalized

	var result models.ConnectionResult
	err = c.post(ctx, appPath(app, "/test-connection"), in, &result)
	if err == nil {
		return &result, nil
	}

	var apiErr *Error
	if errors.As(err, &apiErr) && json.Unmarshal(apiErr.Body, &result) == nil && result.Message != "" {
		return &result, nil
	}
	return nil, err
}
