package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type helpSection struct {
	title string
	keys  []helpKey
}

type helpKey struct {
	key  string
	desc string
}

var helpSections = []helpSection{
	{
		title: "Global",
		keys: []helpKey{
			{"Ctrl+q", "Quit (asks when settings are unsaved)"},
			{"?", "Toggle help"},
			{"Tab", "Switch panel focus"},
			{"1/2/3/4", "Home, Logs, History, Settings"},
			{"[ / ]", "Previous / next view"},
		},
	},
	{
		title: "Home",
		keys: []helpKey{
			{"j/k", "Select application"},
			{"r", "Refresh status and stats"},
			{"z", "Reset stats of selected app"},
			{"Z", "Reset all stats"},
		},
	},
	{
		title: "Logs",
		keys: []helpKey{
			{"j/k", "Change source filter"},
			{"↑/↓ PgUp/PgDn", "Scroll"},
			{"f", "Follow newest lines"},
			{"c", "Clear the view"},
			{"C", "Clear stored logs on server"},
			{"r", "Reconnect now"},
		},
	},
	{
		title: "History",
		keys: []helpKey{
			{"j/k", "Select application"},
			{"/", "Search"},
			{"n/p", "Next / previous page"},
			{"s", "Cycle page size"},
			{"C", "Clear history"},
		},
	},
	{
		title: "Settings",
		keys: []helpKey{
			{"j/k", "Select section / field"},
			{"Enter", "Edit field"},
			{"Space", "Toggle or cycle"},
			{"Ctrl+s", "Save section"},
			{"u", "Undo unsaved changes"},
			{"d", "Show pending changes"},
			{"a / x", "Add / remove instance"},
			{"t", "Test connection"},
		},
	},
}

// renderHelp renders the help overlay content.
func renderHelp(width int) string {
	maxWidth := 60
	if width-4 < maxWidth {
		maxWidth = width - 4
	}
	if maxWidth < 30 {
		maxWidth = 30
	}

	title := overlayTitleStyle.Render("Keyboard Shortcuts")
	sections := make([]string, 0, len(helpSections)*4+3)
	sections = append(sections, title)

	for _, sec := range helpSections {
		header := lipgloss.NewStyle().Bold(true).Foreground(colorCyan).Render(sec.title)
		sections = append(sections, "", header)

		for _, k := range sec.keys {
			keyCol := lipgloss.NewStyle().
				Width(16).
				Foreground(colorWhite).
				Bold(true).
				Render(k.key)
			descCol := lipgloss.NewStyle().
				Foreground(colorDim).
				Render(k.desc)
			sections = append(sections, "  "+keyCol+descCol)
		}
	}

	sections = append(sections, "", lipgloss.NewStyle().Foreground(colorDim).Render("Press Esc or ? to close"))

	content := strings.Join(sections, "\n")
	return overlayStyle.Width(maxWidth).Render(content)
}
