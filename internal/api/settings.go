package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/tidwall/gjson"

	"github.com/jharder01/Huntarr.io/internal/models"
)

// Settings fetches the configuration of every section.
func (c *Client) Settings(ctx context.Context) (models.AllSettings, error) {
	var all models.AllSettings
	if err := c.get(ctx, "/api/settings", nil, &all); err != nil {
		return nil, err
	}
	return all, nil
}

// Section fetches one section's configuration.
func (c *Client) Section(ctx context.Context, key models.SectionKey) (models.SectionConfig, error) {
	var cfg models.SectionConfig
	if err := c.get(ctx, sectionPath(key), nil, &cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveSection posts a section and returns the configuration the server
// stored, which may differ from what was sent (the server normalizes and
// fills defaults).
func (c *Client) SaveSection(ctx context.Context, key models.SectionKey, cfg models.SectionConfig) (models.SectionConfig, error) {
	endpoint := sectionPath(key)
	body, err := c.do(ctx, http.MethodPost, endpoint, nil, cfg)
	if err != nil {
		return nil, err
	}
	if err := rejected(body); err != nil {
		return nil, err
	}

	raw := authoritativeSection(body, key)
	var saved models.SectionConfig
	if err := json.Unmarshal([]byte(raw), &saved); err != nil {
		return nil, fmt.Errorf("failed to decode response from %s: %w", endpoint, err)
	}
	delete(saved, "success")
	return saved, nil
}

// authoritativeSection finds the section inside a save response. The
// server answers with the full settings map, a {"settings": ...} wrapper or
// the bare section depending on the route.
func authoritativeSection(body []byte, key models.SectionKey) string {
	root := gjson.ParseBytes(body)
	if wrapped := root.Get("settings"); wrapped.IsObject() {
		root = wrapped
	}
	if section := root.Get(gjson.Escape(string(key))); section.IsObject() {
		return section.Raw
	}
	return root.Raw
}

func sectionPath(key models.SectionKey) string {
	return "/api/settings/" + url.PathEscape(string(key))
}
