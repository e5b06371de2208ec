package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Sidebar is the selectable list in the left panel: log filters, history
// apps or settings sections depending on the view.
type Sidebar struct {
	items        []sidebarItem
	cursor       int
	scrollOffset int
	height       int
}

type sidebarItem struct {
	key      string
	label    string
	badge    string
	style    lipgloss.Style
	isHeader bool
}

// NewSidebar creates an empty sidebar.
func NewSidebar() *Sidebar {
	return &Sidebar{}
}

// SetItems replaces the list. The cursor stays on the same key when it is
// still present.
func (s *Sidebar) SetItems(items []sidebarItem) {
	current := s.Selected()
	s.items = items
	s.cursor = 0
	if current != "" {
		s.Select(current)
	}
	s.skipHeaders(1)
	s.ensureVisible()
}

// SetHeight sets the visible height.
func (s *Sidebar) SetHeight(h int) {
	s.height = h
}

// Selected returns the key under the cursor, or "".
func (s *Sidebar) Selected() string {
	if s.cursor < 0 || s.cursor >= len(s.items) || s.items[s.cursor].isHeader {
		return ""
	}
	return s.items[s.cursor].key
}

// Select moves the cursor to key.
func (s *Sidebar) Select(key string) {
	for i, item := range s.items {
		if !item.isHeader && item.key == key {
			s.cursor = i
			s.ensureVisible()
			return
		}
	}
}

// Peek returns the key one step up or down from the cursor without moving.
func (s *Sidebar) Peek(direction int) string {
	for i := s.cursor + direction; i >= 0 && i < len(s.items); i += direction {
		if !s.items[i].isHeader {
			return s.items[i].key
		}
	}
	return ""
}

// MoveUp moves the cursor up, skipping headers.
func (s *Sidebar) MoveUp() {
	if key := s.Peek(-1); key != "" {
		s.Select(key)
	}
}

// MoveDown moves the cursor down, skipping headers.
func (s *Sidebar) MoveDown() {
	if key := s.Peek(1); key != "" {
		s.Select(key)
	}
}

func (s *Sidebar) skipHeaders(direction int) {
	for s.cursor >= 0 && s.cursor < len(s.items) && s.items[s.cursor].isHeader {
		s.cursor += direction
	}
	if s.cursor >= len(s.items) {
		s.cursor = len(s.items) - 1
	}
	if s.cursor < 0 {
		s.cursor = 0
	}
}

func (s *Sidebar) ensureVisible() {
	if s.height <= 0 {
		return
	}
	if s.cursor < s.scrollOffset {
		s.scrollOffset = s.cursor
	}
	if s.cursor >= s.scrollOffset+s.height {
		s.scrollOffset = s.cursor - s.height + 1
	}
}

// View renders the list.
func (s *Sidebar) View(width int) string {
	if len(s.items) == 0 {
		return dimStyle.Render("Loading...")
	}

	end := len(s.items)
	if s.height > 0 && s.scrollOffset+s.height < end {
		end = s.scrollOffset + s.height
	}

	var lines []string
	for i := s.scrollOffset; i < end; i++ {
		item := s.items[i]
		if item.isHeader {
			lines = append(lines, sectionHeaderStyle.Render(item.label))
			continue
		}

		label := item.style.Render(item.label)
		line := "  " + label
		if item.badge != "" {
			gap := width - lipgloss.Width(line) - lipgloss.Width(item.badge) - 1
			if gap < 1 {
				gap = 1
			}
			line += strings.Repeat(" ", gap) + item.badge
		}
		line = ansi.Truncate(line, width, "…")

		if i == s.cursor {
			line = selectedItemStyle.Width(width).Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
