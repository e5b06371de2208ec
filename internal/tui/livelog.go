package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jharder01/Huntarr.io/internal/models"
	"github.com/jharder01/Huntarr.io/internal/stats"
	"github.com/jharder01/Huntarr.io/internal/stream"
)

// LiveLog shows the classified lines of the live stream, newest last.
// It keeps at most limit lines.
type LiveLog struct {
	entries  []models.StreamEntry
	lines    []string
	limit    int
	viewport viewport.Model
	spinner  spinner.Model
	spinning bool
	follow   bool
	source   models.Source
	monitor  *stats.MonitorCounters
	width    int
	height   int
}

// NewLiveLog creates a live log view keeping limit lines.
func NewLiveLog(limit int, monitor *stats.MonitorCounters) *LiveLog {
	if limit < 1 {
		limit = 1
	}
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = badgeConnectingStyle
	return &LiveLog{
		limit:    limit,
		viewport: viewport.New(80, 20),
		spinner:  sp,
		follow:   true,
		source:   models.SourceAll,
		monitor:  monitor,
	}
}

// SetSize updates dimensions.
func (l *LiveLog) SetSize(width, height int) {
	l.width = width
	l.height = height
	l.resizeViewport()
}

func (l *LiveLog) headerLines() int {
	if l.source == models.MonitorSource && l.monitor != nil {
		return 3
	}
	return 2
}

func (l *LiveLog) resizeViewport() {
	h := l.height - l.headerLines()
	if h < 1 {
		h = 1
	}
	l.viewport.Width = l.width
	l.viewport.Height = h
	if l.follow {
		l.viewport.GotoBottom()
	}
}

// SetSource switches the filter shown in the header and drops the lines
// of the previous filter.
func (l *LiveLog) SetSource(src models.Source) {
	l.source = src
	l.Clear()
	l.resizeViewport()
}

// SetLimit changes how many lines are kept.
func (l *LiveLog) SetLimit(limit int) {
	if limit < 1 {
		limit = 1
	}
	l.limit = limit
	l.trim()
	l.refresh()
}

// Append adds an entry, dropping the oldest when over the limit.
func (l *LiveLog) Append(e models.StreamEntry) {
	l.entries = append(l.entries, e)
	l.lines = append(l.lines, formatEntry(e))
	l.trim()
	l.refresh()
}

func (l *LiveLog) trim() {
	if over := len(l.entries) - l.limit; over > 0 {
		l.entries = append([]models.StreamEntry(nil), l.entries[over:]...)
		l.lines = append([]string(nil), l.lines[over:]...)
	}
}

// Clear empties the view. The stream itself is unaffected.
func (l *LiveLog) Clear() {
	l.entries = nil
	l.lines = nil
	l.follow = true
	l.refresh()
}

// Len returns the number of lines held.
func (l *LiveLog) Len() int {
	return len(l.entries)
}

// Entries returns the lines held, oldest first.
func (l *LiveLog) Entries() []models.StreamEntry {
	return append([]models.StreamEntry(nil), l.entries...)
}

// Following reports whether new lines scroll into view.
func (l *LiveLog) Following() bool {
	return l.follow
}

// ToggleFollow switches follow mode; turning it on jumps to the newest line.
func (l *LiveLog) ToggleFollow() {
	l.follow = !l.follow
	if l.follow {
		l.viewport.GotoBottom()
	}
}

// LineUp scrolls up and stops following.
func (l *LiveLog) LineUp() {
	l.viewport.LineUp(1)
	l.follow = false
}

// LineDown scrolls down, following again once the bottom is reached.
func (l *LiveLog) LineDown() {
	l.viewport.LineDown(1)
	l.follow = l.viewport.AtBottom()
}

// PageUp scrolls half a page up.
func (l *LiveLog) PageUp() {
	l.viewport.HalfViewUp()
	l.follow = false
}

// PageDown scrolls half a page down.
func (l *LiveLog) PageDown() {
	l.viewport.HalfViewDown()
	l.follow = l.viewport.AtBottom()
}

// StartSpinner starts the connecting animation unless it already runs.
func (l *LiveLog) StartSpinner() tea.Cmd {
	if l.spinning {
		return nil
	}
	l.spinning = true
	return l.spinner.Tick
}

// UpdateSpinner advances the animation while connecting is true.
func (l *LiveLog) UpdateSpinner(msg spinner.TickMsg, connecting bool) tea.Cmd {
	if !connecting {
		l.spinning = false
		return nil
	}
	var cmd tea.Cmd
	l.spinner, cmd = l.spinner.Update(msg)
	return cmd
}

func (l *LiveLog) refresh() {
	l.viewport.SetContent(strings.Join(l.lines, "\n"))
	if l.follow {
		l.viewport.GotoBottom()
	}
}

// View renders the header and the visible lines.
func (l *LiveLog) View(state stream.State) string {
	title := "Live logs · " + sourceStyle(l.source).Render(l.source.Label())
	status := renderStreamBadge(state)
	if state == stream.Connecting {
		status = l.spinner.View() + " " + status
	}
	if !l.follow {
		status += "  " + dimStyle.Render("(paused)")
	}

	gap := l.width - lipgloss.Width(title) - lipgloss.Width(status)
	if gap < 1 {
		gap = 1
	}
	header := sectionHeaderStyle.Render(title) + strings.Repeat(" ", gap) + status

	var parts []string
	parts = append(parts, header)
	if l.source == models.MonitorSource && l.monitor != nil {
		parts = append(parts, renderMonitorCounters(l.monitor))
	}
	parts = append(parts, dimStyle.Render(strings.Repeat("─", l.width)))

	if len(l.entries) == 0 {
		msg := "Waiting for log lines..."
		if state == stream.Error {
			msg = "Stream interrupted, reconnecting shortly."
		}
		parts = append(parts, dimStyle.Render(msg))
		return strings.Join(parts, "\n")
	}

	parts = append(parts, l.viewport.View())
	return strings.Join(parts, "\n")
}

func renderMonitorCounters(c *stats.MonitorCounters) string {
	item := func(label string, n int, color lipgloss.AdaptiveColor) string {
		return dimStyle.Render(label+" ") + lipgloss.NewStyle().Foreground(color).Bold(true).Render(fmt.Sprintf("%d", n))
	}
	return strings.Join([]string{
		item("processed", c.Processed, colorWhite),
		item("strikes", c.Strikes, colorYellow),
		item("removals", c.Removals, colorRed),
		item("ignored", c.Ignored, colorDim),
	}, dimStyle.Render(" · "))
}

// formatEntry renders "time LEVEL [Source] message" for structured lines
// and "[Source] raw" otherwise.
func formatEntry(e models.StreamEntry) string {
	badge := sourceStyle(e.Source).Render("[" + e.Source.Label() + "]")
	if !e.Structured() {
		return badge + " " + e.Raw
	}

	ts := e.Timestamp
	if i := strings.IndexByte(ts, ' '); i >= 0 && len(ts) > i+1 {
		ts = ts[i+1:]
	}
	level := levelStyle(e.Level).Render(fmt.Sprintf("%-7s", e.Level))
	return dimStyle.Render(ts) + " " + level + " " + badge + " " + levelStyle(e.Level).Render(e.Message)
}
