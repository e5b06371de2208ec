package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// confirmMode values.
const (
	confirmNone         = 0
	confirmQuit         = 1
	confirmLeaveSection = 2
	confirmClearLogs    = 3
	confirmClearHistory = 4
	confirmResetStats   = 5
)

func renderStatusBar(m *Model, width int) string {
	switch m.confirmMode {
	case confirmQuit:
		return renderConfirmBar("Unsaved settings changes. Quit anyway? (y/n)", width)
	case confirmLeaveSection:
		return renderConfirmBar(
			fmt.Sprintf("Unsaved changes in %s. Leave without saving? (y/n)", sectionLabel(m.tracker.Active())),
			width,
		)
	case confirmClearLogs:
		return renderConfirmBar(fmt.Sprintf("Clear stored %s logs on the server? (y/n)", m.pendingApp.Label()), width)
	case confirmClearHistory:
		return renderConfirmBar(fmt.Sprintf("Clear %s history? (y/n)", m.pendingApp.Label()), width)
	case confirmResetStats:
		target := m.pendingApp.Label()
		if m.pendingApp == "" {
			target = "all"
		}
		return renderConfirmBar(fmt.Sprintf("Reset %s statistics? (y/n)", target), width)
	}

	if m.err != nil {
		return renderErrorBar(m.err.Error(), width)
	}
	if m.showSaved {
		return renderSavedBar(width)
	}
	if m.notice != "" {
		return renderNoticeBar(m.notice, width)
	}

	left := " " + getKeyHints(m)

	right := ""
	if m.saving {
		right = lipgloss.NewStyle().Foreground(colorYellow).Render("Saving...") + " "
	} else if m.view == ViewLogs {
		right = dimStyle.Render(fmt.Sprintf("%d lines", m.liveLog.Len())) + " "
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}

	return statusBarStyle.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}

func getKeyHints(m *Model) string {
	if m.activeOverlay != overlayNone {
		return keyHint("Esc", "close")
	}

	base := keyHint("Ctrl+q", "quit") + "  " + keyHint("?", "help") + "  " + keyHint("Tab", "switch")

	if m.focusedPanel == 0 {
		return base + "  " + keyHint("j/k", "select") + "  " + keyHint("1-4", "views")
	}

	switch m.view {
	case ViewHome:
		return base + "  " + keyHint("r", "refresh") + "  " + keyHint("z", "reset") + "  " +
			keyHint("Z", "reset all")
	case ViewLogs:
		return base + "  " + keyHint("f", "follow") + "  " + keyHint("c", "clear") + "  " +
			keyHint("C", "clear server") + "  " + keyHint("r", "reconnect")
	case ViewHistory:
		if m.history.Searching() {
			return keyHint("Enter", "search") + "  " + keyHint("Esc", "cancel")
		}
		return base + "  " + keyHint("/", "search") + "  " + keyHint("n/p", "page") + "  " +
			keyHint("s", "size") + "  " + keyHint("C", "clear")
	case ViewSettings:
		if m.settingsForm.IsEditing() {
			return keyHint("Enter", "apply") + "  " + keyHint("Esc", "cancel")
		}
		hints := base + "  " + keyHint("Enter", "edit") + "  " + keyHint("Space", "toggle") + "  " +
			keyHint("Ctrl+s", "save") + "  " + keyHint("u", "undo")
		if m.settingsForm.HasInstances() {
			hints += "  " + keyHint("a", "add") + "  " + keyHint("x", "remove")
		}
		if m.settingsForm.CanTest() {
			hints += "  " + keyHint("t", "test")
		}
		return hints
	}
	return base
}

func keyHint(k, desc string) string {
	if k == "" {
		return hintStyle.Render(desc)
	}
	return keyStyle.Render(k) + " " + hintStyle.Render(desc)
}

func renderConfirmBar(msg string, width int) string {
	return statusBarStyle.
		Background(colorYellow).
		Foreground(lipgloss.AdaptiveColor{Light: "0", Dark: "0"}).
		Width(width).
		Render(" " + msg)
}

func renderErrorBar(msg string, width int) string {
	return statusBarStyle.
		Background(colorRed).
		Width(width).
		Render(" " + msg)
}

func renderSavedBar(width int) string {
	return statusBarStyle.
		Width(width).
		Render(" " + lipgloss.NewStyle().Foreground(colorGreen).Render("Saved"))
}

func renderNoticeBar(msg string, width int) string {
	return statusBarStyle.
		Width(width).
		Render(" " + lipgloss.NewStyle().Foreground(colorCyan).Render(msg))
}
