package models

// SectionKey identifies a settings section ("general", "sonarr", ...).
type SectionKey string

// GeneralSection holds server-wide settings.
const GeneralSection SectionKey = "general"

// SectionConfig is the opaque key/value configuration of one section as
// the server returns it.
type SectionConfig map[string]any

// AllSettings maps every section to its configuration (GET /api/settings).
type AllSettings map[SectionKey]SectionConfig

// Instance is one configured connection to an external application.
type Instance struct {
	Name    string `json:"name"`
	URL     string `json:"api_url"`
	APIKey  string `json:"api_key"`
	Enabled bool   `json:"enabled"`
}
