package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Adaptive colors matching the TUI palette.
var (
	colorWhite  = lipgloss.AdaptiveColor{Light: "0", Dark: "15"}
	colorDim    = lipgloss.AdaptiveColor{Light: "242", Dark: "240"}
	colorGreen  = lipgloss.AdaptiveColor{Light: "28", Dark: "40"}
	colorRed    = lipgloss.AdaptiveColor{Light: "160", Dark: "196"}
	colorYellow = lipgloss.AdaptiveColor{Light: "136", Dark: "220"}
	colorCyan   = lipgloss.AdaptiveColor{Light: "30", Dark: "45"}
)

// Semantic styles for CLI output.
var (
	styleBrand   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleVersion = lipgloss.NewStyle().Foreground(colorGreen)
	styleLabel   = lipgloss.NewStyle().Foreground(colorDim)
	styleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	styleSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleWarning = lipgloss.NewStyle().Bold(true).Foreground(colorYellow)
	styleError   = lipgloss.NewStyle().Bold(true).Foreground(colorRed)
	styleHint    = lipgloss.NewStyle().Foreground(colorDim)
	styleHeader  = lipgloss.NewStyle().Bold(true).Foreground(colorWhite)
)

// Log level styles for printed log lines.
var levelStyles = map[string]lipgloss.Style{
	"DEBUG":    lipgloss.NewStyle().Foreground(colorDim),
	"INFO":     lipgloss.NewStyle().Foreground(colorCyan),
	"WARNING":  lipgloss.NewStyle().Foreground(colorYellow),
	"ERROR":    lipgloss.NewStyle().Foreground(colorRed),
	"CRITICAL": lipgloss.NewStyle().Bold(true).Foreground(colorRed),
}

func levelStyle(level string) lipgloss.Style {
	if s, ok := levelStyles[level]; ok {
		return s
	}
	return styleValue
}

// printField prints an aligned "label: value" line.
func printField(label, value string) {
	fmt.Printf("  %s %s\n", styleLabel.Render(fmt.Sprintf("%-18s", label+":")), styleValue.Render(value))
}
