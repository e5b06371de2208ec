// Package models holds the data shapes shared between the API client, the
// stream manager, the settings tracker and the TUI.
package models

import (
	"fmt"
	"strings"
)

// Source identifies the managed application a log line or setting belongs to.
type Source string

// Known sources.
const (
	SourceSonarr   Source = "sonarr"
	SourceRadarr   Source = "radarr"
	SourceLidarr   Source = "lidarr"
	SourceReadarr  Source = "readarr"
	SourceWhisparr Source = "whisparr"
	SourceEros     Source = "eros"
	SourceSwaparr  Source = "swaparr"
	SourceSystem   Source = "system"

	// SourceAll is a filter value only; no entry is ever classified as "all".
	SourceAll Source = "all"
)

// Apps lists the managed applications in display order.
var Apps = []Source{
	SourceSonarr,
	SourceRadarr,
	SourceLidarr,
	SourceReadarr,
	SourceWhisparr,
	SourceEros,
	SourceSwaparr,
}

// Filters lists every value a live-stream filter can take, "all" first.
var Filters = append(append([]Source{SourceAll}, Apps...), SourceSystem)

// MonitorSource is the application whose lines feed the specialised
// counters when it is the selected filter.
const MonitorSource = SourceSwaparr

// ParseSource resolves a user supplied name (case-insensitive) to a Source.
func ParseSource(s string) (Source, error) {
	name := Source(strings.ToLower(strings.TrimSpace(s)))
	if name == SourceAll || name == SourceSystem {
		return name, nil
	}
	for _, app := range Apps {
		if app == name {
			return app, nil
		}
	}
	return "", fmt.Errorf("unknown source %q", s)
}

// IsApp reports whether s is one of the managed applications.
func (s Source) IsApp() bool {
	for _, app := range Apps {
		if app == s {
			return true
		}
	}
	return false
}

// Label returns the display name ("Sonarr", "System", ...).
func (s Source) Label() string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}

// Matches reports whether an entry classified as entry is visible under
// the filter s.
func (s Source) Matches(entry Source) bool {
	return s == SourceAll || s == entry
}
