package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// panelLayout holds computed dimensions for the sidebar/content layout.
type panelLayout struct {
	leftWidth     int
	rightWidth    int
	contentHeight int
	innerHeight   int
}

const (
	sidebarRatio    = 0.22
	minSidebarWidth = 18
	maxSidebarWidth = 30
)

func computeLayout(width, height int) panelLayout {
	// header and status bar take one line each
	contentHeight := height - 2
	if contentHeight < 3 {
		contentHeight = 3
	}

	leftWidth := int(float64(width) * sidebarRatio)
	if leftWidth < minSidebarWidth {
		leftWidth = minSidebarWidth
	}
	if leftWidth > maxSidebarWidth {
		leftWidth = maxSidebarWidth
	}
	rightWidth := width - leftWidth
	if rightWidth < 10 {
		rightWidth = 10
	}

	return panelLayout{
		leftWidth:     leftWidth,
		rightWidth:    rightWidth,
		contentHeight: contentHeight,
		innerHeight:   contentHeight - 2,
	}
}

// inner returns the usable width and height inside the bordered panels.
func (l panelLayout) inner() (left, right, height int) {
	left, right, height = l.leftWidth-2, l.rightWidth-2, l.innerHeight
	if left < 1 {
		left = 1
	}
	if right < 1 {
		right = 1
	}
	if height < 1 {
		height = 1
	}
	return left, right, height
}

func renderPanels(leftContent, rightContent string, layout panelLayout, focusedPanel int) string {
	leftStyle := unfocusedBorderStyle
	rightStyle := unfocusedBorderStyle
	if focusedPanel == 0 {
		leftStyle = focusedBorderStyle
	} else {
		rightStyle = focusedBorderStyle
	}

	leftInner, rightInner, innerHeight := layout.inner()

	left := leftStyle.
		Width(leftInner).
		Height(innerHeight).
		Render(truncateContent(leftContent, leftInner, innerHeight))

	right := rightStyle.
		Width(rightInner).
		Height(innerHeight).
		Render(truncateContent(rightContent, rightInner, innerHeight))

	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

// panelTitle renders a bold title line followed by a rule.
func panelTitle(title string, width int) string {
	return sectionHeaderStyle.Render(title) + "\n" + dimStyle.Render(strings.Repeat("─", max(width, 0)))
}

// truncateContent ensures content fits within the given dimensions.
func truncateContent(content string, width, height int) string {
	lines := strings.Split(content, "\n")

	if len(lines) > height {
		lines = lines[:height]
	}

	for i, line := range lines {
		if lipgloss.Width(line) > width {
			lines[i] = ansi.Truncate(line, width, "")
		}
	}

	return strings.Join(lines, "\n")
}
