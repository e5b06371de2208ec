// Package api is the HTTP client for the Huntarr server's REST endpoints.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/jharder01/Huntarr.io/internal/buildinfo"
	"github.com/jharder01/Huntarr.io/internal/config"
	"github.com/jharder01/Huntarr.io/internal/models"
)

const (
	defaultTimeout = 10 * time.Second

	// RequestIDHeader carries a per-request id so client and server logs can
	// be correlated.
	RequestIDHeader = "X-Request-ID"

	apiKeyHeader = "X-Api-Key"
)

// Observer is told about every completed request. status is 0 when the
// request failed before a response arrived.
type Observer func(method, endpoint string, status int)

// Client talks to one Huntarr server.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	observer   Observer
}

// Option configures a Client.
type Option func(*Client)

// WithAPIKey sends key with every request.
func WithAPIKey(key string) Option {
	return func(c *Client) {
		c.apiKey = key
	}
}

// WithTimeout sets the timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithObserver registers a request observer.
func WithObserver(o Observer) Option {
	return func(c *Client) {
		c.observer = o
	}
}

// New creates a client for the server at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FromConfig creates a client for the configured server. opts are applied
// after the configured key and timeout.
func FromConfig(cfg *config.Config, opts ...Option) (*Client, error) {
	base, err := config.NormalizeServerURL(cfg.Server.URL)
	if err != nil {
		return nil, err
	}
	opts = append([]Option{WithAPIKey(cfg.Server.APIKey), WithTimeout(cfg.Server.Timeout)}, opts...)
	return New(base, opts...), nil
}

// BaseURL returns the server address.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// APIKey returns the key sent with each request, if any.
func (c *Client) APIKey() string {
	return c.apiKey
}

// StreamURL returns the live log stream address for the given filter.
func (c *Client) StreamURL(path string, source models.Source) string {
	q := url.Values{}
	q.Set("app", string(source))
	return c.baseURL + "/" + strings.TrimLeft(path, "/") + "?" + q.Encode()
}

// get issues a GET and decodes the JSON response into out.
func (c *Client) get(ctx context.Context, endpoint string, query url.Values, out any) error {
	body, err := c.do(ctx, http.MethodGet, endpoint, query, nil)
	if err != nil {
		return err
	}
	return decode(endpoint, body, out)
}

// post issues a POST with a JSON body and decodes the response into out
// (when out is non-nil).
func (c *Client) post(ctx context.Context, endpoint string, in, out any) error {
	body, err := c.do(ctx, http.MethodPost, endpoint, nil, in)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return decode(endpoint, body, out)
}

func (c *Client) do(ctx context.Context, method, endpoint string, query url.Values, in any) ([]byte, error) {
	target := c.baseURL + endpoint
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reqBody io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request for %s: %w", endpoint, err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", endpoint, err)
	}
	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", buildinfo.UserAgent())
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set(apiKeyHeader, c.apiKey)
	}

	entry := log.WithFields(log.Fields{
		"method":     method,
		"endpoint":   endpoint,
		"request_id": requestID,
	})

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(method, endpoint, 0)
		entry.WithError(err).Warn("Request failed")
		return nil, fmt.Errorf("%s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	c.observe(method, endpoint, resp.StatusCode)
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %s: %w", endpoint, err)
	}

	entry.WithFields(log.Fields{
		"status":   resp.StatusCode,
		"duration": time.Since(start).String(),
	}).Debug("Request completed")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return body, newError(method, endpoint, resp.StatusCode, body)
	}
	return body, nil
}

func (c *Client) observe(method, endpoint string, status int) {
	if c.observer != nil {
		c.observer(method, endpoint, status)
	}
}

func decode(endpoint string, body []byte, out any) error {
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", endpoint, err)
	}
	return nil
}

func appPath(app models.Source, suffix string) string {
	return "/api/" + url.PathEscape(string(app)) + suffix
}
