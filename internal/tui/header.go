package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jharder01/Huntarr.io/internal/stream"
)

func renderHeader(view View, state stream.State, server string, unsaved bool, width int) string {
	dot := lipgloss.NewStyle().Foreground(colorOrange).Render("●")
	name := lipgloss.NewStyle().Bold(true).Render("Huntarr")

	tabs := renderTabs(viewNames, int(view))
	if unsaved {
		tabs += " " + dirtyStyle.Render("*")
	}

	badge := renderStreamBadge(state)
	host := dimStyle.Render(server)

	left := fmt.Sprintf(" %s %s  %s", dot, name, tabs)
	right := fmt.Sprintf("%s  %s ", host, badge)

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}

	return headerStyle.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}

func renderTabs(tabs []string, active int) string {
	var parts []string
	for i, tab := range tabs {
		if i == active {
			parts = append(parts, activeTabStyle.Render(tab))
		} else {
			parts = append(parts, inactiveTabStyle.Render(tab))
		}
	}
	return strings.Join(parts, tabSepStyle.Render(" | "))
}

func renderStreamBadge(state stream.State) string {
	switch state {
	case stream.Connected:
		return badgeConnectedStyle.Render("● Live")
	case stream.Connecting:
		return badgeConnectingStyle.Render("● Connecting")
	case stream.Error:
		return badgeErrorStyle.Render("⚠ Stream error")
	default:
		return badgeIdleStyle.Render("● Idle")
	}
}
