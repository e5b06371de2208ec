package models

import "fmt"

// AppStatus is the per-application status reported by /api/{app}/status.
// ConnectedCount and TotalConfigured are only sent by apps that support
// multiple instances.
type AppStatus struct {
	Configured      bool `json:"configured"`
	Connected       bool `json:"connected"`
	ConnectedCount  *int `json:"connected_count,omitempty"`
	TotalConfigured *int `json:"total_configured,omitempty"`
}

// Summary renders the status as "connected 2/3", "connected",
// "disconnected" or "not configured".
func (s AppStatus) Summary() string {
	if !s.Configured {
		return "not configured"
	}
	if s.ConnectedCount != nil && s.TotalConfigured != nil {
		state := "disconnected"
		if *s.ConnectedCount > 0 {
			state = "connected"
		}
		return fmt.Sprintf("%s %d/%d", state, *s.ConnectedCount, *s.TotalConfigured)
	}
	if s.Connected {
		return "connected"
	}
	return "disconnected"
}

// ConnectionTest is the body of a connection-test request.
type ConnectionTest struct {
	URL    string `json:"api_url"`
	APIKey string `json:"api_key"`
}

// ConnectionResult is the connection-test response.
type ConnectionResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Version string `json:"version,omitempty"`
}
