package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jharder01/Huntarr.io/internal/models"
)

// renderHome renders the per-app status and hunt counters.
func renderHome(statuses map[models.Source]*models.AppStatus, counters models.Stats, selected models.Source, width int) string {
	lines := []string{panelTitle("Dashboard", width)}

	cell := func(s string, w int) string {
		return lipgloss.NewStyle().Width(w).Render(s)
	}
	const (
		appCol    = 12
		statusCol = 24
		numCol    = 10
	)
	lines = append(lines, dimStyle.Render(
		cell("App", appCol)+cell("Status", statusCol)+cell("Hunted", numCol)+cell("Upgraded", numCol),
	))

	var hunted, upgraded int
	for _, app := range models.Apps {
		st := counters[app]
		hunted += st.Hunted
		upgraded += st.Upgraded

		line := cell(sourceStyle(app).Render(app.Label()), appCol) +
			cell(renderAppStatus(statuses[app]), statusCol) +
			cell(fmt.Sprintf("%d", st.Hunted), numCol) +
			cell(fmt.Sprintf("%d", st.Upgraded), numCol)
		if app == selected {
			line = selectedItemStyle.Width(width).Render(line)
		}
		lines = append(lines, line)
	}

	lines = append(lines,
		dimStyle.Render(strings.Repeat("─", appCol+statusCol+2*numCol)),
		cell(sectionHeaderStyle.Render("Total"), appCol)+cell("", statusCol)+
			cell(fmt.Sprintf("%d", hunted), numCol)+cell(fmt.Sprintf("%d", upgraded), numCol),
	)
	return strings.Join(lines, "\n")
}

func renderAppStatus(st *models.AppStatus) string {
	if st == nil {
		return dimStyle.Render("…")
	}
	summary := st.Summary()
	switch {
	case !st.Configured:
		return dimStyle.Render(summary)
	case strings.HasPrefix(summary, "connected"):
		return lipgloss.NewStyle().Foreground(colorGreen).Render("● " + summary)
	default:
		return lipgloss.NewStyle().Foreground(colorRed).Render("● " + summary)
	}
}

// statusDot is the sidebar badge for an app.
func statusDot(st *models.AppStatus) string {
	switch {
	case st == nil || !st.Configured:
		return dimStyle.Render("○")
	case strings.HasPrefix(st.Summary(), "connected"):
		return lipgloss.NewStyle().Foreground(colorGreen).Render("●")
	default:
		return lipgloss.NewStyle().Foreground(colorRed).Render("●")
	}
}
