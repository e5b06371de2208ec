package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jharder01/Huntarr.io/internal/api"
	"github.com/jharder01/Huntarr.io/internal/config"
	"github.com/jharder01/Huntarr.io/internal/models"
)

const requestTimeout = 10 * time.Second

func loadStatusCmd(client *api.Client, app models.Source) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		st, err := client.Status(ctx, app)
		if err != nil {
			return ErrorMsg{Err: fmt.Errorf("failed to load %s status: %w", app, err)}
		}
		return StatusLoadedMsg{App: app, Status: st}
	}
}

func loadAllStatusCmd(client *api.Client) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(models.Apps))
	for _, app := range models.Apps {
		cmds = append(cmds, loadStatusCmd(client, app))
	}
	return tea.Batch(cmds...)
}

func loadStatsCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		s, err := client.Stats(ctx)
		if err != nil {
			return ErrorMsg{Err: fmt.Errorf("failed to load stats: %w", err)}
		}
		return StatsLoadedMsg{Stats: s}
	}
}

// resetStatsCmd asks the server to reset and then fetches the counters it
// ended up with, so the optimistic projection can be reconciled.
func resetStatsCmd(client *api.Client, app models.Source) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if err := client.ResetStats(ctx, app); err != nil {
			return StatsResetMsg{App: app, Err: err}
		}
		s, err := client.Stats(ctx)
		if err != nil {
			return StatsResetMsg{App: app}
		}
		return StatsResetMsg{App: app, Stats: s}
	}
}

func loadSettingsCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		all, err := client.Settings(ctx)
		if err != nil {
			return ErrorMsg{Err: fmt.Errorf("failed to load settings: %w", err)}
		}
		return SettingsLoadedMsg{Settings: all}
	}
}

func saveSectionCmd(client *api.Client, key models.SectionKey, cfg models.SectionConfig) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		saved, err := client.SaveSection(ctx, key, cfg)
		if err != nil {
			return SettingsSaveFailedMsg{Section: key, Err: err}
		}
		return SettingsSavedMsg{Section: key, Saved: saved}
	}
}

func loadHistoryCmd(client *api.Client, q models.HistoryQuery) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		page, err := client.History(ctx, q)
		if err != nil {
			return ErrorMsg{Err: fmt.Errorf("failed to load history: %w", err)}
		}
		return HistoryLoadedMsg{Query: q, Page: page}
	}
}

func clearHistoryCmd(client *api.Client, app models.Source) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if err := client.ClearHistory(ctx, app); err != nil {
			return ErrorMsg{Err: fmt.Errorf("failed to clear %s history: %w", app, err)}
		}
		return HistoryClearedMsg{App: app}
	}
}

func clearLogsCmd(client *api.Client, app models.Source) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		n, err := client.ClearLogs(ctx, app)
		if err != nil {
			return ErrorMsg{Err: fmt.Errorf("failed to clear %s logs: %w", app, err)}
		}
		return LogsClearedMsg{App: app, Deleted: n}
	}
}

func testConnectionCmd(client *api.Client, app models.Source, in models.ConnectionTest) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		res, err := client.TestConnection(ctx, app, in)
		if err != nil {
			return ErrorMsg{Err: fmt.Errorf("connection test failed: %w", err)}
		}
		return ConnectionTestedMsg{App: app, Result: res}
	}
}

// waitConfigChangeCmd blocks until the config file changes and returns the
// reloaded configuration. It must be re-issued after every change.
func waitConfigChangeCmd(w *config.Watcher, path string) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-w.Changes(); !ok {
			return nil
		}
		cfg, err := config.LoadFrom(path)
		if err != nil {
			return ConfigChangedMsg{Err: fmt.Errorf("config reload failed: %w", err)}
		}
		return ConfigChangedMsg{Config: cfg}
	}
}

func pollTick() tea.Cmd {
	return tea.Tick(30*time.Second, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

func clearErrorAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(_ time.Time) tea.Msg {
		return ClearErrorMsg{}
	})
}

func clearSavedAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(_ time.Time) tea.Msg {
		return ClearSavedMsg{}
	})
}

func clearNoticeAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(_ time.Time) tea.Msg {
		return ClearNoticeMsg{}
	})
}
