// Package updater checks GitHub Releases for a newer client version.
package updater

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/jharder01/Huntarr.io/internal/buildinfo"
)

// ReleasesURL is the latest-release endpoint of the project.
const ReleasesURL = "https://api.github.com/repos/plexguide/Huntarr.io/releases/latest"

// UpdateResult contains the result of an update check.
type UpdateResult struct {
	Available      bool
	CurrentVersion string
	LatestVersion  string
	ReleaseURL     string
}

// Checker queries a releases endpoint.
type Checker struct {
	url        string
	current    string
	httpClient *http.Client
}

// NewChecker returns a checker for url comparing against current. An
// empty url uses ReleasesURL.
func NewChecker(url, current string) *Checker {
	if url == "" {
		url = ReleasesURL
	}
	return &Checker{
		url:        url,
		current:    current,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// CheckForUpdate checks the project's releases against the running build.
func CheckForUpdate(ctx context.Context) (*UpdateResult, error) {
	return NewChecker(ReleasesURL, buildinfo.Version).Check(ctx)
}

// Check queries the releases endpoint for a newer version.
func (c *Checker) Check(ctx context.Context) (*UpdateResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", buildinfo.UserAgent())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch releases: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		// No releases yet
		return &UpdateResult{CurrentVersion: c.current}, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GitHub API returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read release: %w", err)
	}
	tag := gjson.GetBytes(body, "tag_name")
	if !tag.Exists() {
		return nil, fmt.Errorf("release response has no tag_name")
	}

	result := &UpdateResult{
		CurrentVersion: c.current,
		LatestVersion:  strings.TrimPrefix(tag.String(), "v"),
		ReleaseURL:     gjson.GetBytes(body, "html_url").String(),
	}

	current, err := ParseSemver(c.current)
	if err != nil {
		// If current version is "dev" or unparseable, treat as older
		result.Available = true
		return result, nil
	}
	latest, err := ParseSemver(result.LatestVersion)
	if err != nil {
		return nil, fmt.Errorf("parse latest version %q: %w", result.LatestVersion, err)
	}
	result.Available = current.LessThan(latest)
	return result, nil
}
