package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jharder01/Huntarr.io/internal/settings"
)

// Overlay constants.
const (
	overlayNone = 0
	overlayHelp = 1
	overlayDiff = 2
)

// renderOverlay renders an overlay centered on top of the base view.
func renderOverlay(base, overlayContent string, width, height int) string {
	baseLines := strings.Split(base, "\n")
	for i, line := range baseLines {
		baseLines[i] = overlayDimStyle.Render(line)
	}
	dimmed := strings.Join(baseLines, "\n")

	overlayLines := strings.Split(overlayContent, "\n")
	overlayHeight := len(overlayLines)
	overlayWidth := 0
	for _, l := range overlayLines {
		if w := lipgloss.Width(l); w > overlayWidth {
			overlayWidth = w
		}
	}

	top := (height - overlayHeight) / 2
	left := (width - overlayWidth) / 2
	if top < 1 {
		top = 1
	}
	if left < 1 {
		left = 1
	}

	result := strings.Split(dimmed, "\n")
	for i, line := range overlayLines {
		row := top + i
		if row >= len(result) {
			continue
		}
		bg := result[row]
		bgWidth := lipgloss.Width(bg)

		leftPart := ansi.Truncate(bg, left, "")

		rightPart := ""
		rightStart := left + lipgloss.Width(line)
		if rightStart < bgWidth {
			rightPart = ansi.Cut(bg, rightStart, bgWidth)
		}

		result[row] = leftPart + "\033[0m" + line + "\033[0m" + rightPart
	}

	return strings.Join(result, "\n")
}

// renderDiff lists the pending changes of a settings section.
func renderDiff(title string, changes []settings.FieldChange, width int) string {
	maxWidth := 70
	if width-4 < maxWidth {
		maxWidth = width - 4
	}
	if maxWidth < 30 {
		maxWidth = 30
	}

	lines := []string{overlayTitleStyle.Render(title)}
	if len(changes) == 0 {
		lines = append(lines, dimStyle.Render("No changes."))
	}
	for _, c := range changes {
		name := lipgloss.NewStyle().Width(24).Bold(true).Render(c.Field)
		lines = append(lines, name+
			lipgloss.NewStyle().Foreground(colorRed).Render(orEmpty(c.Old))+
			dimStyle.Render(" → ")+
			lipgloss.NewStyle().Foreground(colorGreen).Render(orEmpty(c.New)))
	}
	lines = append(lines, "", dimStyle.Render("Press Esc to close"))

	return overlayStyle.Width(maxWidth).Render(strings.Join(lines, "\n"))
}

func orEmpty(s string) string {
	if s == "" {
		return "(empty)"
	}
	return s
}
