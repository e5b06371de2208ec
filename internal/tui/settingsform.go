package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"github.com/jharder01/Huntarr.io/internal/models"
	"github.com/jharder01/Huntarr.io/internal/settings"
)

// editFunc is an edit to apply to the active form through the tracker.
type editFunc func(*settings.Form) error

// formRow is one line of the settings form: a section field, an instance
// attribute, or an instance heading.
type formRow struct {
	label    string
	kind     settings.Kind
	field    settings.Field
	instance int // -1 for section fields
	attr     string
	header   bool
}

var instanceAttrs = []struct {
	name  string
	label string
	kind  settings.Kind
}{
	{"name", "Name", settings.KindText},
	{"api_url", "URL", settings.KindText},
	{"api_key", "API key", settings.KindSecret},
	{"enabled", "Enabled", settings.KindBool},
}

// SettingsForm renders and edits the active section's form.
type SettingsForm struct {
	form         *settings.Form
	rows         []formRow
	cursor       int
	scrollOffset int
	editing      bool
	input        textinput.Model
	width        int
	height       int
}

// NewSettingsForm creates an empty settings form.
func NewSettingsForm() *SettingsForm {
	ti := textinput.New()
	ti.CharLimit = 256
	return &SettingsForm{
		input: ti,
	}
}

// SetForm shows f, keeping the cursor position where possible.
func (s *SettingsForm) SetForm(f *settings.Form) {
	if s.form != nil && f != nil && s.form.Schema().Key != f.Schema().Key {
		s.cursor = 0
		s.scrollOffset = 0
	}
	s.form = f
	s.CancelEdit()
	s.Rebuild()
}

// Rebuild recomputes the rows, e.g. after instances were added or removed.
func (s *SettingsForm) Rebuild() {
	s.rows = nil
	if s.form == nil {
		return
	}
	schema := s.form.Schema()
	for _, f := range schema.Fields {
		s.rows = append(s.rows, formRow{label: f.Label, kind: f.Kind, field: f, instance: -1})
	}
	if schema.Instances == settings.MultiInstance {
		for i, inst := range s.form.Instances() {
			title := inst.Name
			if title == "" {
				title = fmt.Sprintf("Instance %d", i+1)
			}
			s.rows = append(s.rows, formRow{label: title, instance: i, header: true})
			for _, a := range instanceAttrs {
				s.rows = append(s.rows, formRow{label: a.label, kind: a.kind, instance: i, attr: a.name})
			}
		}
	}
	if s.cursor >= len(s.rows) {
		s.cursor = len(s.rows) - 1
	}
	if s.cursor < 0 {
		s.cursor = 0
	}
	if len(s.rows) > 0 && s.rows[s.cursor].header {
		s.cursor++
	}
	s.ensureVisible()
}

// SetSize updates dimensions.
func (s *SettingsForm) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.input.Width = width - 32
	s.ensureVisible()
}

// MoveUp moves cursor up.
func (s *SettingsForm) MoveUp() {
	if s.editing {
		return
	}
	for i := s.cursor - 1; i >= 0; i-- {
		if !s.rows[i].header {
			s.cursor = i
			break
		}
	}
	s.ensureVisible()
}

// MoveDown moves cursor down.
func (s *SettingsForm) MoveDown() {
	if s.editing {
		return
	}
	for i := s.cursor + 1; i < len(s.rows); i++ {
		if !s.rows[i].header {
			s.cursor = i
			break
		}
	}
	s.ensureVisible()
}

func (s *SettingsForm) ensureVisible() {
	// title and rule take two lines
	visible := s.height - 2
	if visible < 1 {
		return
	}
	if s.cursor < s.scrollOffset {
		s.scrollOffset = s.cursor
		if s.scrollOffset > 0 && s.rows[s.scrollOffset-1].header {
			s.scrollOffset--
		}
	}
	if s.cursor >= s.scrollOffset+visible {
		s.scrollOffset = s.cursor - visible + 1
	}
}

func (s *SettingsForm) current() (formRow, bool) {
	if s.form == nil || s.cursor < 0 || s.cursor >= len(s.rows) {
		return formRow{}, false
	}
	return s.rows[s.cursor], true
}

func (s *SettingsForm) text(r formRow) string {
	if r.instance < 0 {
		return s.form.Text(r.field.Name)
	}
	insts := s.form.Instances()
	if r.instance >= len(insts) {
		return ""
	}
	inst := insts[r.instance]
	switch r.attr {
	case "name":
		return inst.Name
	case "api_url":
		return inst.URL
	case "api_key":
		return inst.APIKey
	case "enabled":
		return strconv.FormatBool(inst.Enabled)
	}
	return ""
}

func setRow(r formRow, text string) editFunc {
	if r.instance < 0 {
		return func(f *settings.Form) error { return f.Set(r.field.Name, text) }
	}
	return func(f *settings.Form) error { return f.SetInstanceField(r.instance, r.attr, text) }
}

// Toggle returns the edit for Space on the current row: flip a switch or
// move a choice to its next option. It returns nil for other rows.
func (s *SettingsForm) Toggle() editFunc {
	r, ok := s.current()
	if !ok || s.editing {
		return nil
	}
	switch r.kind {
	case settings.KindBool:
		b, _ := strconv.ParseBool(s.text(r))
		return setRow(r, strconv.FormatBool(!b))
	case settings.KindSelect:
		return setRow(r, nextOption(r.field.Options, s.text(r)))
	}
	return nil
}

func nextOption(options []string, current string) string {
	if len(options) == 0 {
		return current
	}
	for i, opt := range options {
		if opt == current {
			return options[(i+1)%len(options)]
		}
	}
	return options[0]
}

// StartEdit begins inline editing of the current text row. It returns
// false for switches and choices.
func (s *SettingsForm) StartEdit() bool {
	r, ok := s.current()
	if !ok {
		return false
	}
	switch r.kind {
	case settings.KindText, settings.KindSecret, settings.KindInt:
	default:
		return false
	}
	s.editing = true
	s.input.EchoMode = textinput.EchoNormal
	if r.kind == settings.KindSecret {
		s.input.EchoMode = textinput.EchoPassword
	}
	s.input.SetValue(s.text(r))
	s.input.CursorEnd()
	s.input.Focus()
	return true
}

// FinishEdit ends editing and returns the edit to apply, or nil when the
// value did not change.
func (s *SettingsForm) FinishEdit() editFunc {
	if !s.editing {
		return nil
	}
	s.editing = false
	s.input.Blur()

	r, ok := s.current()
	if !ok {
		return nil
	}
	val := s.input.Value()
	if val == s.text(r) {
		return nil
	}
	return setRow(r, val)
}

// CancelEdit cancels the current edit.
func (s *SettingsForm) CancelEdit() {
	s.editing = false
	s.input.Blur()
}

// IsEditing returns whether a field is being edited.
func (s *SettingsForm) IsEditing() bool {
	return s.editing
}

// InputModel returns the text input model for Update forwarding.
func (s *SettingsForm) InputModel() *textinput.Model {
	return &s.input
}

// HasInstances reports whether the section keeps an instance list.
func (s *SettingsForm) HasInstances() bool {
	return s.form != nil && s.form.Schema().Instances == settings.MultiInstance
}

// CurrentInstance returns the instance under the cursor, or -1.
func (s *SettingsForm) CurrentInstance() int {
	r, ok := s.current()
	if !ok {
		return -1
	}
	return r.instance
}

// CanTest reports whether the cursor is on something a connection test
// can run against.
func (s *SettingsForm) CanTest() bool {
	_, ok := s.TestTarget()
	return ok
}

// TestTarget returns the URL and key of the instance under the cursor, or
// of the section itself when it has a single implicit instance.
func (s *SettingsForm) TestTarget() (models.ConnectionTest, bool) {
	if s.form == nil {
		return models.ConnectionTest{}, false
	}
	switch s.form.Schema().Instances {
	case settings.SingleInstance:
		return models.ConnectionTest{URL: s.form.Text("api_url"), APIKey: s.form.Text("api_key")}, true
	case settings.MultiInstance:
		i := s.CurrentInstance()
		insts := s.form.Instances()
		if i < 0 || i >= len(insts) {
			return models.ConnectionTest{}, false
		}
		return models.ConnectionTest{URL: insts[i].URL, APIKey: insts[i].APIKey}, true
	}
	return models.ConnectionTest{}, false
}

// View renders the form. dirty adds the unsaved marker to the title.
func (s *SettingsForm) View(dirty bool) string {
	if s.form == nil || len(s.rows) == 0 {
		return lipgloss.NewStyle().Foreground(colorDim).Render("Loading settings...")
	}

	title := s.form.Schema().Label + " settings"
	if dirty {
		title += " " + dirtyStyle.Render("● unsaved")
	}
	lines := []string{panelTitle(title, s.width)}

	end := len(s.rows)
	if visible := s.height - 2; visible > 0 && s.scrollOffset+visible < end {
		end = s.scrollOffset + visible
	}

	for i := s.scrollOffset; i < end; i++ {
		r := s.rows[i]
		if r.header {
			lines = append(lines, sectionHeaderStyle.Foreground(colorCyan).Render(r.label))
			continue
		}

		indent := ""
		if r.instance >= 0 {
			indent = "  "
		}
		label := settingsLabelStyle.Render(indent + r.label + ":")

		var val string
		switch {
		case s.editing && i == s.cursor:
			val = s.input.View()
		case r.kind == settings.KindBool:
			if b, _ := strconv.ParseBool(s.text(r)); b {
				val = settingsToggleOn.Render("[ON]")
			} else {
				val = settingsToggleOff.Render("[OFF]")
			}
		case r.kind == settings.KindSelect:
			val = settingsValueStyle.Render("‹ "+s.text(r)+" ›") + " " +
				dimStyle.Render(strings.Join(r.field.Options, "/"))
		default:
			val = renderFieldValue(r.kind, s.text(r))
		}

		line := label + " " + val
		if i == s.cursor {
			line = settingsCursorStyle.Width(s.width).Render(line)
		}
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}

func renderFieldValue(kind settings.Kind, text string) string {
	if text == "" {
		return dimStyle.Render("(empty)")
	}
	if kind == settings.KindSecret {
		return settingsValueStyle.Render(strings.Repeat("•", min(len(text), 12)))
	}
	return settingsValueStyle.Render(text)
}
