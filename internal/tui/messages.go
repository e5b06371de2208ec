package tui

import (
	"github.com/jharder01/Huntarr.io/internal/config"
	"github.com/jharder01/Huntarr.io/internal/models"
	"github.com/jharder01/Huntarr.io/internal/stream"
)

// StreamEventMsg carries a live stream event back into the update loop.
// Gen identifies the stream manager that produced it; the manager is
// replaced when the server configuration changes.
type StreamEventMsg struct {
	Gen   int
	Event stream.Event
}

// StatusLoadedMsg carries one application's status.
type StatusLoadedMsg struct {
	App    models.Source
	Status *models.AppStatus
}

// StatsLoadedMsg carries the hunt counters.
type StatsLoadedMsg struct {
	Stats models.Stats
}

// StatsResetMsg reports the outcome of a reset. Stats is the server's view
// afterwards and may be nil.
type StatsResetMsg struct {
	App   models.Source
	Stats models.Stats
	Err   error
}

// SettingsLoadedMsg carries every settings section.
type SettingsLoadedMsg struct {
	Settings models.AllSettings
}

// SettingsSavedMsg carries the configuration the server kept for a section.
type SettingsSavedMsg struct {
	Section models.SectionKey
	Saved   models.SectionConfig
}

// SettingsSaveFailedMsg reports a rejected or failed save.
type SettingsSaveFailedMsg struct {
	Section models.SectionKey
	Err     error
}

// HistoryLoadedMsg carries one page of history.
type HistoryLoadedMsg struct {
	Query models.HistoryQuery
	Page  *models.HistoryPage
}

// HistoryClearedMsg signals the history of an app was deleted.
type HistoryClearedMsg struct {
	App models.Source
}

// LogsClearedMsg signals the stored logs of an app were deleted.
type LogsClearedMsg struct {
	App     models.Source
	Deleted int
}

// ConnectionTestedMsg carries a connection test result.
type ConnectionTestedMsg struct {
	App    models.Source
	Result *models.ConnectionResult
}

// ConfigChangedMsg carries a reloaded client configuration, or the error
// that prevented reloading it.
type ConfigChangedMsg struct {
	Config *config.Config
	Err    error
}

// ErrorMsg carries an error to display.
type ErrorMsg struct {
	Err error
}

// NoticeMsg carries a short informational message.
type NoticeMsg struct {
	Text string
}

// TickMsg is a periodic tick for polling.
type TickMsg struct{}

// ClearErrorMsg clears the error display.
type ClearErrorMsg struct{}

// ClearSavedMsg clears the "Saved" indicator.
type ClearSavedMsg struct{}

// ClearNoticeMsg clears the notice.
type ClearNoticeMsg struct{}
