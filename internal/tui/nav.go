package tui

// View is the screen shown in the main area.
type View int

const (
	ViewHome View = iota
	ViewLogs
	ViewHistory
	ViewSettings
)

var viewNames = []string{"Home", "Logs", "History", "Settings"}

func (v View) String() string {
	if int(v) < len(viewNames) {
		return viewNames[v]
	}
	return "?"
}

// navEvent is a request to change view.
type navEvent int

const (
	navNext navEvent = iota
	navPrev
	navHome
	navLogs
	navHistory
	navSettings
)

// transition returns the view that ev leads to from v. Guards (unsaved
// settings) are applied by the caller before the result is installed.
func transition(v View, ev navEvent) View {
	switch ev {
	case navNext:
		return View((int(v) + 1) % len(viewNames))
	case navPrev:
		return View((int(v) + len(viewNames) - 1) % len(viewNames))
	case navHome:
		return ViewHome
	case navLogs:
		return ViewLogs
	case navHistory:
		return ViewHistory
	case navSettings:
		return ViewSettings
	}
	return v
}
