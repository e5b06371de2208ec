package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	log "github.com/sirupsen/logrus"

	"github.com/jharder01/Huntarr.io/internal/api"
	"github.com/jharder01/Huntarr.io/internal/config"
	"github.com/jharder01/Huntarr.io/internal/models"
	"github.com/jharder01/Huntarr.io/internal/settings"
	"github.com/jharder01/Huntarr.io/internal/stats"
	"github.com/jharder01/Huntarr.io/internal/stream"
)

// Model is the root Bubbletea model for the dashboard.
type Model struct {
	cfg     *config.Config
	cfgPath string
	client  *api.Client
	watcher *config.Watcher

	// Live stream. streamGen changes whenever the manager is rebuilt so
	// events of a previous manager can be told apart.
	stream    *stream.Manager
	streamGen int

	tracker  *settings.Tracker
	board    *stats.Board
	resets   map[models.Source]stats.Reset
	monitor  *stats.MonitorCounters
	statuses map[models.Source]*models.AppStatus

	// UI state
	view          View
	focusedPanel  int // 0=sidebar, 1=content
	activeOverlay int
	width         int
	height        int

	// Confirm mode
	confirmMode    int
	pendingView    View
	pendingSection models.SectionKey
	pendingApp     models.Source

	// Status display
	err            error
	showSaved      bool
	notice         string
	saving         bool
	settingsLoaded bool

	// Child components
	homeList     *Sidebar
	filterList   *Sidebar
	historyList  *Sidebar
	sectionList  *Sidebar
	liveLog      *LiveLog
	history      *HistoryView
	settingsForm *SettingsForm
	diff         []settings.FieldChange

	// Program reference for goroutine Send()
	program *programRef
}

// NewModel creates the initial dashboard model. watcher may be nil.
func NewModel(cfg *config.Config, cfgPath string, client *api.Client, watcher *config.Watcher, program *programRef) Model {
	monitor := &stats.MonitorCounters{}
	m := Model{
		cfg:          cfg,
		cfgPath:      cfgPath,
		client:       client,
		watcher:      watcher,
		tracker:      settings.NewTracker(),
		board:        stats.NewBoard(),
		resets:       make(map[models.Source]stats.Reset),
		monitor:      monitor,
		statuses:     make(map[models.Source]*models.AppStatus),
		view:         ViewHome,
		homeList:     NewSidebar(),
		filterList:   NewSidebar(),
		historyList:  NewSidebar(),
		sectionList:  NewSidebar(),
		liveLog:      NewLiveLog(cfg.Stream.Buffer, monitor),
		history:      NewHistoryView(cfg.UI.HistoryPageSize),
		settingsForm: NewSettingsForm(),
		program:      program,
	}

	m.filterList.SetItems(sourceItems(models.Filters))
	m.filterList.Select(string(cfg.DefaultSource()))
	m.liveLog.SetSource(cfg.DefaultSource())
	m.historyList.SetItems(sourceItems(append([]models.Source{models.SourceAll}, models.Apps...)))

	m.newStream()
	m.refreshSidebars()
	m.activateSection(models.GeneralSection)
	return m
}

// newStream (re)builds the stream manager for the current client and
// config. Events of the previous manager are ignored from then on.
func (m *Model) newStream() {
	m.streamGen++
	gen := m.streamGen
	ref := m.program
	client := m.client
	path := m.cfg.Stream.Path

	m.stream = stream.NewManager(
		stream.NewSSEDialer(client.APIKey()),
		func(src models.Source) string { return client.StreamURL(path, src) },
		func(ev stream.Event) { ref.Send(StreamEventMsg{Gen: gen, Event: ev}) },
		stream.WithRetryDelay(m.cfg.Stream.RetryDelay),
		stream.OnEntry(m.liveLog.Append),
		stream.OnMonitor(m.monitor.Observe),
	)
}

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		loadAllStatusCmd(m.client),
		loadStatsCmd(m.client),
		loadSettingsCmd(m.client),
		waitConfigChangeCmd(m.watcher, m.cfgPath),
		pollTick(),
	)
}

// Update processes messages and returns an updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.update(msg)
	m.refreshSidebars()
	return m, cmd
}

func (m *Model) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {

	// ── Window resize ──────────────────────────────────────────────
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateDimensions()
		return nil

	// ── Input ──────────────────────────────────────────────────────
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	// ── Live stream ────────────────────────────────────────────────
	case StreamEventMsg:
		if msg.Gen != m.streamGen {
			return nil
		}
		m.stream.Handle(msg.Event)
		if m.stream.State() == stream.Connecting {
			return m.liveLog.StartSpinner()
		}
		return nil

	case spinner.TickMsg:
		return m.liveLog.UpdateSpinner(msg, m.stream.State() == stream.Connecting)

	// ── Home ───────────────────────────────────────────────────────
	case StatusLoadedMsg:
		m.statuses[msg.App] = msg.Status
		return nil

	case StatsLoadedMsg:
		// a reset in flight owns the counters until it settles
		if len(m.resets) == 0 {
			m.board.Update(msg.Stats)
		}
		return nil

	case StatsResetMsg:
		r, ok := m.resets[msg.App]
		if !ok {
			return nil
		}
		delete(m.resets, msg.App)
		if msg.Err != nil {
			m.board.RollbackReset(r)
			return m.showError(fmt.Errorf("failed to reset stats: %w", msg.Err))
		}
		m.board.CommitReset(r, msg.Stats)
		return m.showNotice("Statistics reset")

	// ── Settings ───────────────────────────────────────────────────
	case SettingsLoadedMsg:
		m.tracker.Load(msg.Settings)
		m.settingsLoaded = true
		m.activateSection(m.tracker.Active())
		return nil

	case SettingsSavedMsg:
		return m.handleSaved(msg)

	case SettingsSaveFailedMsg:
		m.saving = false
		return m.showError(fmt.Errorf("failed to save %s settings: %w", msg.Section, msg.Err))

	case ConnectionTestedMsg:
		if msg.Result.Success {
			text := fmt.Sprintf("%s connection OK", msg.App.Label())
			if msg.Result.Version != "" {
				text += " (v" + msg.Result.Version + ")"
			}
			return m.showNotice(text)
		}
		return m.showError(fmt.Errorf("%s connection failed: %s", msg.App.Label(), msg.Result.Message))

	// ── History and logs ───────────────────────────────────────────
	case HistoryLoadedMsg:
		m.history.SetPage(msg.Query, msg.Page)
		return nil

	case HistoryClearedMsg:
		m.history.Loading()
		return tea.Batch(
			m.showNotice(msg.App.Label()+" history cleared"),
			loadHistoryCmd(m.client, m.history.Query()),
		)

	case LogsClearedMsg:
		return m.showNotice(fmt.Sprintf("Cleared %d stored %s log lines", msg.Deleted, msg.App.Label()))

	// ── Config reload ──────────────────────────────────────────────
	case ConfigChangedMsg:
		return m.handleConfigChanged(msg)

	// ── Polling tick ───────────────────────────────────────────────
	case TickMsg:
		cmds := []tea.Cmd{pollTick()}
		if m.view == ViewHome {
			cmds = append(cmds, loadAllStatusCmd(m.client), loadStatsCmd(m.client))
		}
		return tea.Batch(cmds...)

	// ── Status bar ─────────────────────────────────────────────────
	case ErrorMsg:
		return m.showError(msg.Err)

	case NoticeMsg:
		return m.showNotice(msg.Text)

	case ClearErrorMsg:
		m.err = nil
		return nil

	case ClearSavedMsg:
		m.showSaved = false
		return nil

	case ClearNoticeMsg:
		m.notice = ""
		return nil
	}

	return nil
}

func (m *Model) showError(err error) tea.Cmd {
	log.WithError(err).Warn("Dashboard error")
	m.err = err
	return clearErrorAfter(5 * time.Second)
}

func (m *Model) showNotice(text string) tea.Cmd {
	m.notice = text
	return clearNoticeAfter(3 * time.Second)
}

// ── Navigation ───────────────────────────────────────────────────

// navigate applies ev, asking first when the settings view is left with
// unsaved changes in the active section.
func (m *Model) navigate(ev navEvent) tea.Cmd {
	target := transition(m.view, ev)
	if target == m.view {
		return nil
	}
	if m.view == ViewSettings && m.tracker.CheckLeave() == settings.LeaveNeedsConfirm {
		m.confirmMode = confirmLeaveSection
		m.pendingView = target
		m.pendingSection = ""
		return nil
	}
	return m.enterView(target)
}

func (m *Model) enterView(v View) tea.Cmd {
	prev := m.view
	m.view = v
	m.focusedPanel = 0
	log.WithFields(log.Fields{"from": prev, "to": v}).Debug("View changed")

	if prev == ViewLogs && v != ViewLogs {
		m.stream.SetActive(false)
		m.stream.DisconnectAll()
	}

	switch v {
	case ViewHome:
		return tea.Batch(loadAllStatusCmd(m.client), loadStatsCmd(m.client))
	case ViewLogs:
		m.stream.SetActive(true)
		m.stream.Connect(m.currentFilter())
		return m.liveLog.StartSpinner()
	case ViewHistory:
		m.history.Loading()
		return loadHistoryCmd(m.client, m.history.Query())
	case ViewSettings:
		if !m.settingsLoaded {
			return loadSettingsCmd(m.client)
		}
	}
	return nil
}

func (m *Model) currentFilter() models.Source {
	src, err := models.ParseSource(m.filterList.Selected())
	if err != nil {
		return models.SourceAll
	}
	return src
}

// selectFilter scopes the live stream to src and reconnects.
func (m *Model) selectFilter(src models.Source) tea.Cmd {
	m.filterList.Select(string(src))
	m.liveLog.SetSource(src)
	if src == models.MonitorSource {
		m.monitor.Reset()
	}
	if m.view != ViewLogs {
		return nil
	}
	m.stream.Connect(src)
	return m.liveLog.StartSpinner()
}

// switchSection makes key the active settings section, asking first when
// the current one has unsaved changes.
func (m *Model) switchSection(key models.SectionKey) tea.Cmd {
	if key == "" || key == m.tracker.Active() {
		return nil
	}
	if m.tracker.CheckLeave() == settings.LeaveNeedsConfirm {
		m.confirmMode = confirmLeaveSection
		m.pendingSection = key
		m.pendingView = m.view
		return nil
	}
	m.activateSection(key)
	return nil
}

func (m *Model) activateSection(key models.SectionKey) {
	if err := m.tracker.SetActive(key); err != nil {
		log.WithError(err).Warn("Cannot activate settings section")
		return
	}
	m.sectionList.Select(string(key))
	if form, err := m.tracker.Form(key); err == nil {
		m.settingsForm.SetForm(form)
	}
}

// refreshForm reloads the form component after the tracker replaced the
// active form.
func (m *Model) refreshForm() {
	if form, err := m.tracker.Form(m.tracker.Active()); err == nil {
		m.settingsForm.SetForm(form)
	}
}

// ── Key handling ─────────────────────────────────────────────────

// handleKey processes key events.
func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	// Confirm mode captures everything
	if m.confirmMode != confirmNone {
		return m.handleConfirmKey(msg)
	}

	if m.activeOverlay != overlayNone {
		return m.handleOverlayKey(msg)
	}

	// Text inputs capture everything too
	if m.view == ViewSettings && m.settingsForm.IsEditing() {
		return m.handleSettingsKey(msg)
	}
	if m.view == ViewHistory && m.history.Searching() {
		return m.handleHistoryKey(msg)
	}

	switch {
	case key.Matches(msg, globalKeys.Quit):
		if m.tracker.HasUnsavedChanges() {
			m.confirmMode = confirmQuit
			return nil
		}
		return m.doQuit()

	case key.Matches(msg, globalKeys.Help):
		m.activeOverlay = overlayHelp
		return nil

	case key.Matches(msg, globalKeys.Tab):
		m.focusedPanel = 1 - m.focusedPanel
		return nil

	case key.Matches(msg, globalKeys.NextView):
		return m.navigate(navNext)
	case key.Matches(msg, globalKeys.PrevView):
		return m.navigate(navPrev)
	case key.Matches(msg, viewSwitchKeys.Home):
		return m.navigate(navHome)
	case key.Matches(msg, viewSwitchKeys.Logs):
		return m.navigate(navLogs)
	case key.Matches(msg, viewSwitchKeys.History):
		return m.navigate(navHistory)
	case key.Matches(msg, viewSwitchKeys.Settings):
		return m.navigate(navSettings)
	}

	if m.focusedPanel == 0 {
		return m.handleSidebarKey(msg)
	}

	switch m.view {
	case ViewHome:
		return m.handleHomeKey(msg)
	case ViewLogs:
		return m.handleLogKey(msg)
	case ViewHistory:
		return m.handleHistoryKey(msg)
	case ViewSettings:
		return m.handleSettingsKey(msg)
	}
	return nil
}

func (m *Model) sidebar() *Sidebar {
	switch m.view {
	case ViewLogs:
		return m.filterList
	case ViewHistory:
		return m.historyList
	case ViewSettings:
		return m.sectionList
	default:
		return m.homeList
	}
}

func (m *Model) handleSidebarKey(msg tea.KeyMsg) tea.Cmd {
	var dir int
	switch {
	case key.Matches(msg, listKeys.Up):
		dir = -1
	case key.Matches(msg, listKeys.Down):
		dir = 1
	case key.Matches(msg, listKeys.Select):
		m.focusedPanel = 1
		return nil
	default:
		// content keys still work from the sidebar
		switch m.view {
		case ViewHome:
			return m.handleHomeKey(msg)
		case ViewSettings:
			if key.Matches(msg, settingsKeys.Save) {
				return m.saveActiveSection()
			}
		}
		return nil
	}

	target := m.sidebar().Peek(dir)
	if target == "" {
		return nil
	}

	switch m.view {
	case ViewLogs:
		src, err := models.ParseSource(target)
		if err != nil {
			return nil
		}
		return m.selectFilter(src)
	case ViewHistory:
		m.historyList.Select(target)
		m.history.SetApp(models.Source(target))
		return loadHistoryCmd(m.client, m.history.Query())
	case ViewSettings:
		return m.switchSection(models.SectionKey(target))
	default:
		m.homeList.Select(target)
	}
	return nil
}

func (m *Model) handleHomeKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, homeKeys.Refresh):
		return tea.Batch(loadAllStatusCmd(m.client), loadStatsCmd(m.client))
	case key.Matches(msg, homeKeys.Reset):
		if app := models.Source(m.homeList.Selected()); app != "" {
			m.pendingApp = app
			m.confirmMode = confirmResetStats
		}
	case key.Matches(msg, homeKeys.ResetAll):
		m.pendingApp = ""
		m.confirmMode = confirmResetStats
	}
	return nil
}

func (m *Model) handleLogKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, logKeys.Up):
		m.liveLog.LineUp()
	case key.Matches(msg, logKeys.Down):
		m.liveLog.LineDown()
	case key.Matches(msg, logKeys.PageUp):
		m.liveLog.PageUp()
	case key.Matches(msg, logKeys.PageDown):
		m.liveLog.PageDown()
	case key.Matches(msg, logKeys.Follow):
		m.liveLog.ToggleFollow()
	case key.Matches(msg, logKeys.Clear):
		m.liveLog.Clear()
		if m.currentFilter() == models.MonitorSource {
			m.monitor.Reset()
		}
	case key.Matches(msg, logKeys.ClearServer):
		m.pendingApp = m.currentFilter()
		m.confirmMode = confirmClearLogs
	case key.Matches(msg, logKeys.Reconnect):
		m.stream.Connect(m.currentFilter())
		return m.liveLog.StartSpinner()
	}
	return nil
}

func (m *Model) handleHistoryKey(msg tea.KeyMsg) tea.Cmd {
	if m.history.Searching() {
		switch msg.Type {
		case tea.KeyEnter:
			m.history.FinishSearch()
			return loadHistoryCmd(m.client, m.history.Query())
		case tea.KeyEscape:
			m.history.CancelSearch()
		default:
			ti := m.history.SearchInput()
			newTI, _ := ti.Update(msg)
			*ti = newTI
		}
		return nil
	}

	switch {
	case key.Matches(msg, historyKeys.Up):
		m.history.MoveUp()
	case key.Matches(msg, historyKeys.Down):
		m.history.MoveDown()
	case key.Matches(msg, historyKeys.Search):
		m.history.StartSearch()
	case key.Matches(msg, historyKeys.NextPage):
		if m.history.NextPage() {
			return loadHistoryCmd(m.client, m.history.Query())
		}
	case key.Matches(msg, historyKeys.PrevPage):
		if m.history.PrevPage() {
			return loadHistoryCmd(m.client, m.history.Query())
		}
	case key.Matches(msg, historyKeys.PageSize):
		m.history.CyclePageSize()
		return loadHistoryCmd(m.client, m.history.Query())
	case key.Matches(msg, historyKeys.Refresh):
		m.history.Loading()
		return loadHistoryCmd(m.client, m.history.Query())
	case key.Matches(msg, historyKeys.Clear):
		m.pendingApp = m.history.Query().App
		m.confirmMode = confirmClearHistory
	}
	return nil
}

func (m *Model) handleSettingsKey(msg tea.KeyMsg) tea.Cmd {
	if !m.settingsLoaded {
		return nil
	}

	if m.settingsForm.IsEditing() {
		switch msg.Type {
		case tea.KeyEnter:
			return m.applyEdit(m.settingsForm.FinishEdit())
		case tea.KeyEscape:
			m.settingsForm.CancelEdit()
		default:
			ti := m.settingsForm.InputModel()
			newTI, _ := ti.Update(msg)
			*ti = newTI
		}
		return nil
	}

	switch {
	case key.Matches(msg, settingsKeys.Up):
		m.settingsForm.MoveUp()
		return nil
	case key.Matches(msg, settingsKeys.Down):
		m.settingsForm.MoveDown()
		return nil
	case key.Matches(msg, settingsKeys.Save):
		return m.saveActiveSection()
	case key.Matches(msg, settingsKeys.Diff):
		m.diff, _ = m.tracker.Diff(m.tracker.Active())
		m.activeOverlay = overlayDiff
		return nil
	case key.Matches(msg, settingsKeys.Test):
		return m.testConnection()
	}

	// everything below edits the form
	if m.saving {
		return nil
	}

	switch {
	case key.Matches(msg, settingsKeys.Toggle):
		return m.applyEdit(m.settingsForm.Toggle())
	case key.Matches(msg, settingsKeys.Enter):
		if m.settingsForm.StartEdit() {
			return nil
		}
		return m.applyEdit(m.settingsForm.Toggle())
	case key.Matches(msg, settingsKeys.Discard):
		if err := m.tracker.Discard(m.tracker.Active()); err != nil {
			return m.showError(err)
		}
		m.refreshForm()
		return m.showNotice("Changes discarded")
	case key.Matches(msg, settingsKeys.AddInstance):
		if m.settingsForm.HasInstances() {
			return m.applyEdit(func(f *settings.Form) error { return f.AddInstance() })
		}
	case key.Matches(msg, settingsKeys.RemoveInstance):
		if i := m.settingsForm.CurrentInstance(); i >= 0 {
			return m.applyEdit(func(f *settings.Form) error { return f.RemoveInstance(i) })
		}
	}
	return nil
}

// applyEdit runs fn on the active form through the tracker, which marks
// the section changed.
func (m *Model) applyEdit(fn editFunc) tea.Cmd {
	if fn == nil {
		return nil
	}
	if err := m.tracker.Edit(fn); err != nil {
		return m.showError(err)
	}
	m.settingsForm.Rebuild()
	return nil
}

// saveActiveSection sends the active section. A second save while one is
// in flight is ignored.
func (m *Model) saveActiveSection() tea.Cmd {
	if m.saving || !m.settingsLoaded {
		return nil
	}
	key := m.tracker.Active()
	payload, err := m.tracker.Payload(key)
	if err != nil {
		return m.showError(err)
	}
	m.saving = true
	return saveSectionCmd(m.client, key, payload)
}

func (m *Model) handleSaved(msg SettingsSavedMsg) tea.Cmd {
	m.saving = false
	res, err := m.tracker.ApplySaved(msg.Section, msg.Saved)
	if err != nil {
		return m.showError(err)
	}
	if msg.Section == m.tracker.Active() {
		m.refreshForm()
	}

	m.showSaved = true
	cmds := []tea.Cmd{clearSavedAfter(3 * time.Second)}
	switch {
	case res.ReloadRequired:
		cmds = append(cmds, loadSettingsCmd(m.client), loadAllStatusCmd(m.client))
	case models.Source(msg.Section).IsApp():
		cmds = append(cmds, loadStatusCmd(m.client, models.Source(msg.Section)))
	}
	return tea.Batch(cmds...)
}

func (m *Model) testConnection() tea.Cmd {
	target, ok := m.settingsForm.TestTarget()
	if !ok {
		return nil
	}
	if _, err := api.ValidateConnection(target.URL, target.APIKey); err != nil {
		return m.showError(err)
	}
	app := models.Source(m.tracker.Active())
	return tea.Batch(
		m.showNotice("Testing "+app.Label()+" connection..."),
		testConnectionCmd(m.client, app, target),
	)
}

func (m *Model) handleConfirmKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, confirmKeys.Yes):
		mode := m.confirmMode
		m.confirmMode = confirmNone
		switch mode {
		case confirmQuit:
			return m.doQuit()
		case confirmLeaveSection:
			m.tracker.ResolveLeave(true)
			if m.pendingSection != "" {
				m.activateSection(m.pendingSection)
				m.pendingSection = ""
				return nil
			}
			return m.enterView(m.pendingView)
		case confirmClearLogs:
			m.liveLog.Clear()
			return clearLogsCmd(m.client, m.pendingApp)
		case confirmClearHistory:
			return clearHistoryCmd(m.client, m.pendingApp)
		case confirmResetStats:
			m.resets[m.pendingApp] = m.board.BeginReset(m.pendingApp)
			return resetStatsCmd(m.client, m.pendingApp)
		}

	case key.Matches(msg, confirmKeys.No), key.Matches(msg, confirmKeys.Cancel):
		if m.confirmMode == confirmLeaveSection {
			m.tracker.ResolveLeave(false)
			m.pendingSection = ""
		}
		m.confirmMode = confirmNone
	}
	return nil
}

func (m *Model) handleOverlayKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, overlayKeys.Cancel) || key.Matches(msg, globalKeys.Help) {
		m.activeOverlay = overlayNone
		m.diff = nil
	}
	return nil
}

// doQuit performs clean shutdown: close the stream, clear program ref, quit.
func (m *Model) doQuit() tea.Cmd {
	m.stream.SetActive(false)
	m.stream.DisconnectAll()
	m.program.Clear()
	return tea.Quit
}

// ── Config reload ────────────────────────────────────────────────

func (m *Model) handleConfigChanged(msg ConfigChangedMsg) tea.Cmd {
	cmds := []tea.Cmd{waitConfigChangeCmd(m.watcher, m.cfgPath)}
	if msg.Err != nil {
		return tea.Batch(append(cmds, m.showError(msg.Err))...)
	}

	client, err := api.FromConfig(msg.Config)
	if err != nil {
		return tea.Batch(append(cmds, m.showError(err))...)
	}
	serverChanged := client.BaseURL() != m.client.BaseURL() || client.APIKey() != m.client.APIKey()

	m.cfg = msg.Config
	m.client = client
	m.liveLog.SetLimit(msg.Config.Stream.Buffer)

	m.stream.SetActive(false)
	m.stream.DisconnectAll()
	m.newStream()
	if m.view == ViewLogs {
		m.stream.SetActive(true)
		m.stream.Connect(m.currentFilter())
		cmds = append(cmds, m.liveLog.StartSpinner())
	}

	log.WithFields(log.Fields{
		"server":         client.BaseURL(),
		"server_changed": serverChanged,
	}).Info("Config reloaded")

	if serverChanged {
		m.settingsLoaded = false
		cmds = append(cmds,
			loadSettingsCmd(m.client),
			loadAllStatusCmd(m.client),
			loadStatsCmd(m.client),
			m.showNotice("Server changed, reloading"),
		)
	}
	return tea.Batch(cmds...)
}

// ── Mouse handling ───────────────────────────────────────────────

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Action != tea.MouseActionPress {
		return nil
	}
	layout := computeLayout(m.width, m.height)

	switch msg.Button {
	case tea.MouseButtonLeft:
		if msg.Y > 0 {
			if msg.X < layout.leftWidth {
				m.focusedPanel = 0
			} else {
				m.focusedPanel = 1
			}
		}
	case tea.MouseButtonWheelUp:
		if m.view == ViewLogs {
			for i := 0; i < 3; i++ {
				m.liveLog.LineUp()
			}
		}
	case tea.MouseButtonWheelDown:
		if m.view == ViewLogs {
			for i := 0; i < 3; i++ {
				m.liveLog.LineDown()
			}
		}
	}
	return nil
}

// ── Dimension helpers ────────────────────────────────────────────

func (m *Model) updateDimensions() {
	layout := computeLayout(m.width, m.height)
	_, rightInner, innerHeight := layout.inner()

	listHeight := innerHeight - 2
	for _, s := range []*Sidebar{m.homeList, m.filterList, m.historyList, m.sectionList} {
		s.SetHeight(listHeight)
	}
	m.liveLog.SetSize(rightInner, innerHeight)
	m.history.SetSize(rightInner, innerHeight)
	m.settingsForm.SetSize(rightInner, innerHeight)
}

func (m *Model) refreshSidebars() {
	home := make([]sidebarItem, 0, len(models.Apps))
	for _, app := range models.Apps {
		home = append(home, sidebarItem{
			key:   string(app),
			label: app.Label(),
			badge: statusDot(m.statuses[app]),
			style: sourceStyle(app),
		})
	}
	m.homeList.SetItems(home)

	var sections []sidebarItem
	for _, key := range m.tracker.Sections() {
		item := sidebarItem{key: string(key), label: sectionLabel(key), style: settingsValueStyle}
		if m.tracker.IsDirty(key) {
			item.badge = dirtyStyle.Render("●")
		}
		sections = append(sections, item)
	}
	m.sectionList.SetItems(sections)
}

func sourceItems(sources []models.Source) []sidebarItem {
	items := make([]sidebarItem, 0, len(sources))
	for _, src := range sources {
		items = append(items, sidebarItem{key: string(src), label: src.Label(), style: sourceStyle(src)})
	}
	return items
}

func sectionLabel(key models.SectionKey) string {
	if schema, err := settings.SchemaFor(key); err == nil {
		return schema.Label
	}
	return string(key)
}

// ── View ─────────────────────────────────────────────────────────

// View renders the TUI.
func (m Model) View() string {
	if m.width < 80 || m.height < 20 {
		sizeStr := fmt.Sprintf("%dx%d", m.width, m.height)
		return lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(colorYellow).
			Render(lipgloss.JoinVertical(lipgloss.Center,
				"Terminal too small",
				lipgloss.NewStyle().Foreground(colorDim).Render(
					"Need 80x20, have "+lipgloss.NewStyle().Bold(true).Render(sizeStr),
				),
			))
	}

	layout := computeLayout(m.width, m.height)
	leftInner, rightInner, _ := layout.inner()

	header := renderHeader(m.view, m.stream.State(), m.client.BaseURL(), m.tracker.HasUnsavedChanges(), m.width)
	left := m.renderSidebar(leftInner)
	right := m.renderContent(rightInner)
	panels := renderPanels(left, right, layout, m.focusedPanel)
	statusBar := renderStatusBar(&m, m.width)

	view := lipgloss.JoinVertical(lipgloss.Left, header, panels, statusBar)

	switch m.activeOverlay {
	case overlayHelp:
		view = renderOverlay(view, renderHelp(m.width), m.width, m.height)
	case overlayDiff:
		title := "Pending changes · " + sectionLabel(m.tracker.Active())
		view = renderOverlay(view, renderDiff(title, m.diff, m.width), m.width, m.height)
	}
	return view
}

func (m Model) renderSidebar(width int) string {
	titles := map[View]string{
		ViewHome:     "Applications",
		ViewLogs:     "Sources",
		ViewHistory:  "Applications",
		ViewSettings: "Sections",
	}
	return panelTitle(titles[m.view], width) + "\n" + m.sidebar().View(width)
}

func (m Model) renderContent(width int) string {
	switch m.view {
	case ViewHome:
		return renderHome(m.statuses, m.board.Stats(), models.Source(m.homeList.Selected()), width)
	case ViewLogs:
		return m.liveLog.View(m.stream.State())
	case ViewHistory:
		return m.history.View()
	case ViewSettings:
		if !m.settingsLoaded {
			return dimStyle.Render("Loading settings...")
		}
		return m.settingsForm.View(m.tracker.IsDirty(m.tracker.Active()))
	}
	return ""
}
