package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jharder01/Huntarr.io/internal/models"
)

// Colors using AdaptiveColor for light/dark terminal support.
var (
	colorWhite   = lipgloss.AdaptiveColor{Light: "0", Dark: "15"}
	colorDim     = lipgloss.AdaptiveColor{Light: "242", Dark: "240"}
	colorGreen   = lipgloss.AdaptiveColor{Light: "28", Dark: "40"}
	colorRed     = lipgloss.AdaptiveColor{Light: "160", Dark: "196"}
	colorYellow  = lipgloss.AdaptiveColor{Light: "136", Dark: "220"}
	colorOrange  = lipgloss.AdaptiveColor{Light: "166", Dark: "208"}
	colorCyan    = lipgloss.AdaptiveColor{Light: "30", Dark: "45"}
	colorBlue    = lipgloss.AdaptiveColor{Light: "25", Dark: "39"}
	colorMagenta = lipgloss.AdaptiveColor{Light: "127", Dark: "170"}
	colorPurple  = lipgloss.AdaptiveColor{Light: "55", Dark: "141"}
)

// Layout styles.
var (
	headerStyle = lipgloss.NewStyle().
			Bold(true)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(colorWhite).
			Background(lipgloss.AdaptiveColor{Light: "235", Dark: "236"})

	focusedBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorWhite)

	unfocusedBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorDim)
)

// Tab styles.
var (
	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Underline(true).
			Foreground(colorWhite)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(colorDim)

	tabSepStyle = lipgloss.NewStyle().
			Foreground(colorDim)
)

// List styles.
var (
	sectionHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorWhite)

	selectedItemStyle = lipgloss.NewStyle().
				Background(lipgloss.AdaptiveColor{Light: "254", Dark: "237"})

	dimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// Connection badge styles.
var (
	badgeIdleStyle       = lipgloss.NewStyle().Foreground(colorDim)
	badgeConnectedStyle  = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
	badgeConnectingStyle = lipgloss.NewStyle().Foreground(colorYellow).Bold(true)
	badgeErrorStyle      = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
)

// Overlay styles.
var (
	overlayStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorWhite).
			Padding(1, 2)

	overlayTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorWhite).
				MarginBottom(1)

	overlayDimStyle = lipgloss.NewStyle().
			Foreground(colorDim)
)

// Key hint styles for status bar.
var (
	keyStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorWhite)
	hintStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// Settings form styles.
var (
	settingsLabelStyle = lipgloss.NewStyle().
				Width(28).
				Foreground(colorDim)

	settingsValueStyle = lipgloss.NewStyle().
				Foreground(colorWhite)

	settingsToggleOn = lipgloss.NewStyle().
				Foreground(colorGreen).
				Bold(true)

	settingsToggleOff = lipgloss.NewStyle().
				Foreground(colorRed)

	settingsCursorStyle = lipgloss.NewStyle().
				Background(lipgloss.AdaptiveColor{Light: "254", Dark: "237"})

	dirtyStyle = lipgloss.NewStyle().Foreground(colorOrange).Bold(true)
)

var sourceColors = map[models.Source]lipgloss.AdaptiveColor{
	models.SourceSonarr:   colorCyan,
	models.SourceRadarr:   colorYellow,
	models.SourceLidarr:   colorGreen,
	models.SourceReadarr:  colorOrange,
	models.SourceWhisparr: colorMagenta,
	models.SourceEros:     colorPurple,
	models.SourceSwaparr:  colorBlue,
}

func sourceStyle(s models.Source) lipgloss.Style {
	if c, ok := sourceColors[s]; ok {
		return lipgloss.NewStyle().Foreground(c).Bold(true)
	}
	return lipgloss.NewStyle().Foreground(colorDim).Bold(true)
}

func levelStyle(level string) lipgloss.Style {
	switch level {
	case "ERROR", "CRITICAL":
		return lipgloss.NewStyle().Foreground(colorRed)
	case "WARNING", "WARN":
		return lipgloss.NewStyle().Foreground(colorYellow)
	case "DEBUG":
		return lipgloss.NewStyle().Foreground(colorDim)
	default:
		return lipgloss.NewStyle().Foreground(colorWhite)
	}
}
