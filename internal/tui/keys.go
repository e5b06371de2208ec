package tui

import "github.com/charmbracelet/bubbles/key"

// GlobalKeys are always active.
type GlobalKeys struct {
	Quit     key.Binding
	Help     key.Binding
	Tab      key.Binding
	NextView key.Binding
	PrevView key.Binding
}

var globalKeys = GlobalKeys{
	Quit: key.NewBinding(
		key.WithKeys("ctrl+q", "ctrl+c"),
		key.WithHelp("Ctrl+q", "quit"),
	),
	Help: key.NewBinding(
		key.WithKeys("ctrl+h", "?"),
		key.WithHelp("?", "help"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("Tab", "switch panel"),
	),
	NextView: key.NewBinding(
		key.WithKeys("]"),
		key.WithHelp("]", "next view"),
	),
	PrevView: key.NewBinding(
		key.WithKeys("["),
		key.WithHelp("[", "previous view"),
	),
}

// ViewSwitchKeys jump straight to a view.
type ViewSwitchKeys struct {
	Home     key.Binding
	Logs     key.Binding
	History  key.Binding
	Settings key.Binding
}

var viewSwitchKeys = ViewSwitchKeys{
	Home: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "Home"),
	),
	Logs: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "Logs"),
	),
	History: key.NewBinding(
		key.WithKeys("3"),
		key.WithHelp("3", "History"),
	),
	Settings: key.NewBinding(
		key.WithKeys("4"),
		key.WithHelp("4", "Settings"),
	),
}

// ListKeys drive the sidebar.
type ListKeys struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
}

var listKeys = ListKeys{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("j/k", "navigate"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("j/k", "navigate"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "select"),
	),
}

// HomeKeys are active on the home view.
type HomeKeys struct {
	Refresh  key.Binding
	Reset    key.Binding
	ResetAll key.Binding
}

var homeKeys = HomeKeys{
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	Reset: key.NewBinding(
		key.WithKeys("z"),
		key.WithHelp("z", "reset app stats"),
	),
	ResetAll: key.NewBinding(
		key.WithKeys("Z"),
		key.WithHelp("Z", "reset all stats"),
	),
}

// LogKeys are active on the live log view.
type LogKeys struct {
	Up          key.Binding
	Down        key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
	Follow      key.Binding
	Clear       key.Binding
	ClearServer key.Binding
	Reconnect   key.Binding
}

var logKeys = LogKeys{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("pgup"),
		key.WithHelp("PgUp/PgDn", "scroll"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("pgdown"),
	),
	Follow: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "follow"),
	),
	Clear: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "clear view"),
	),
	ClearServer: key.NewBinding(
		key.WithKeys("C"),
		key.WithHelp("C", "clear server logs"),
	),
	Reconnect: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reconnect"),
	),
}

// HistoryKeys are active on the history view.
type HistoryKeys struct {
	Up       key.Binding
	Down     key.Binding
	Search   key.Binding
	NextPage key.Binding
	PrevPage key.Binding
	PageSize key.Binding
	Refresh  key.Binding
	Clear    key.Binding
}

var historyKeys = HistoryKeys{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("n", "right"),
		key.WithHelp("n/p", "page"),
	),
	PrevPage: key.NewBinding(
		key.WithKeys("p", "left"),
	),
	PageSize: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "page size"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	Clear: key.NewBinding(
		key.WithKeys("C"),
		key.WithHelp("C", "clear history"),
	),
}

// SettingsKeys are active when the settings form is focused.
type SettingsKeys struct {
	Up             key.Binding
	Down           key.Binding
	Toggle         key.Binding
	Enter          key.Binding
	Save           key.Binding
	Discard        key.Binding
	AddInstance    key.Binding
	RemoveInstance key.Binding
	Test           key.Binding
	Diff           key.Binding
}

var settingsKeys = SettingsKeys{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("j/k", "navigate"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("j/k", "navigate"),
	),
	Toggle: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("Space", "toggle"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "edit"),
	),
	Save: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("Ctrl+s", "save"),
	),
	Discard: key.NewBinding(
		key.WithKeys("u"),
		key.WithHelp("u", "undo changes"),
	),
	AddInstance: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "add instance"),
	),
	RemoveInstance: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "remove instance"),
	),
	Test: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "test connection"),
	),
	Diff: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "pending changes"),
	),
}

// OverlayKeys are active when an overlay is shown.
type OverlayKeys struct {
	Cancel key.Binding
}

var overlayKeys = OverlayKeys{
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "close"),
	),
}

// ConfirmKeys for inline confirmation prompts.
type ConfirmKeys struct {
	Yes    key.Binding
	No     key.Binding
	Cancel key.Binding
}

var confirmKeys = ConfirmKeys{
	Yes: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "confirm"),
	),
	No: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "cancel"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "cancel"),
	),
}
