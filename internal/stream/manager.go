// Package stream manages the live log stream: one server-push connection
// at a time, per-line classification and filtering, and a single delayed
// reconnect after a failure.
//
// A Manager is not safe for concurrent use. All of its methods, including
// Handle, must be called from one event loop (the TUI's Update or the
// headless loop in the logs command). Transport goroutines never touch
// Manager state; they post Events through the dispatch function instead.
package stream

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/jharder01/Huntarr.io/internal/metrics"
	"github.com/jharder01/Huntarr.io/internal/models"
)

// DefaultRetryDelay is how long a failed stream waits before its single
// reconnect attempt.
const DefaultRetryDelay = 5 * time.Second

// State is the connection state of the subscription.
type State int

const (
	Disconnected State = iota
	Connecting
	Connected
	Error
)

func (s State) String() string {
	switch s {
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	case Error:
		return "error"
	default:
		return "disconnected"
	}
}

// Dialer opens a stream at url and blocks until it ends or ctx is
// cancelled. onOpen is called once the server accepted the request and
// onLine for every line in arrival order. Returning while ctx is still
// live counts as a transport failure, whatever the error.
type Dialer interface {
	Dial(ctx context.Context, url string, onOpen func(), onLine func(string)) error
}

// DialerFunc adapts a function to Dialer.
type DialerFunc func(ctx context.Context, url string, onOpen func(), onLine func(string)) error

func (f DialerFunc) Dial(ctx context.Context, url string, onOpen func(), onLine func(string)) error {
	return f(ctx, url, onOpen, onLine)
}

// Scheduler delivers ev after d. The default uses time.AfterFunc and the
// manager's dispatch function.
type Scheduler func(d time.Duration, ev Event)

// Manager owns the live stream subscription.
type Manager struct {
	dialer   Dialer
	urlFor   func(models.Source) string
	dispatch func(Event)
	schedule Scheduler

	retryDelay time.Duration
	onEntry    func(models.StreamEntry)
	onMonitor  func(models.StreamEntry)
	onState    func(State)
	lines      metrics.Counter
	reconnects metrics.Counter

	selected models.Source
	state    State
	active   bool

	// seq identifies the newest connection attempt; events from older
	// attempts are dropped.
	seq   uint64
	conns map[uint64]context.CancelFunc

	// retryFor is the attempt whose reconnect is pending, 0 when none.
	retryFor uint64
}

// Option configures a Manager.
type Option func(*Manager)

// WithRetryDelay overrides DefaultRetryDelay.
func WithRetryDelay(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.retryDelay = d
		}
	}
}

// WithScheduler replaces the reconnect timer, mainly for tests.
func WithScheduler(s Scheduler) Option {
	return func(m *Manager) {
		m.schedule = s
	}
}

// OnEntry is called for every entry visible under the selected filter.
func OnEntry(fn func(models.StreamEntry)) Option {
	return func(m *Manager) {
		m.onEntry = fn
	}
}

// OnMonitor is called for entries of the monitoring application while that
// application is the selected filter.
func OnMonitor(fn func(models.StreamEntry)) Option {
	return func(m *Manager) {
		m.onMonitor = fn
	}
}

// OnState is called whenever the connection state changes.
func OnState(fn func(State)) Option {
	return func(m *Manager) {
		m.onState = fn
	}
}

// WithMetrics counts received lines and reconnects.
func WithMetrics(c *metrics.Counters) Option {
	return func(m *Manager) {
		if c != nil {
			m.lines = c.StreamLines
			m.reconnects = c.Reconnects
		}
	}
}

// NewManager creates a manager that opens streams with dialer at the
// address urlFor returns. dispatch must hand events back to the goroutine
// that owns the manager, which then passes them to Handle.
func NewManager(dialer Dialer, urlFor func(models.Source) string, dispatch func(Event), opts ...Option) *Manager {
	m := &Manager{
		dialer:     dialer,
		urlFor:     urlFor,
		dispatch:   dispatch,
		retryDelay: DefaultRetryDelay,
		lines:      metrics.Discard,
		reconnects: metrics.Discard,
		selected:   models.SourceAll,
		conns:      make(map[uint64]context.CancelFunc),
	}
	m.schedule = func(d time.Duration, ev Event) {
		time.AfterFunc(d, func() { m.dispatch(ev) })
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Selected returns the current filter.
func (m *Manager) Selected() models.Source {
	return m.selected
}

// State returns the connection state.
func (m *Manager) State() State {
	return m.state
}

// Active reports whether the live view is showing.
func (m *Manager) Active() bool {
	return m.active
}

// OpenConnections returns how many connections are tracked. It is never
// more than one.
func (m *Manager) OpenConnections() int {
	return len(m.conns)
}

// SetActive records whether the live view is showing. A pending reconnect
// checks this when its timer fires.
func (m *Manager) SetActive(active bool) {
	m.active = active
}

// Connect closes any open connection and opens a new one scoped to source.
// The previous connection is cancelled before the new one is dialed.
func (m *Manager) Connect(source models.Source) {
	m.closeAll()

	m.seq++
	seq := m.seq
	m.selected = source
	m.retryFor = 0
	m.setState(Connecting)

	ctx, cancel := context.WithCancel(context.Background())
	m.conns[seq] = cancel

	url := m.urlFor(source)
	log.WithFields(log.Fields{"source": source, "seq": seq}).Info("Connecting to log stream")

	go func() {
		err := m.dialer.Dial(ctx, url,
			func() { m.dispatch(Opened{Seq: seq}) },
			func(line string) { m.dispatch(Line{Seq: seq, Text: line}) },
		)
		if ctx.Err() != nil {
			return
		}
		m.dispatch(Failed{Seq: seq, Err: err})
	}()
}

// DisconnectAll closes every tracked connection. The state becomes
// Disconnected unless the live view is still showing.
func (m *Manager) DisconnectAll() {
	m.closeAll()
	m.retryFor = 0
	if !m.active {
		m.setState(Disconnected)
	}
}

// Handle applies an event posted by a transport goroutine or the
// reconnect timer.
func (m *Manager) Handle(ev Event) {
	switch ev := ev.(type) {
	case Opened:
		if m.stale(ev.Seq) {
			return
		}
		log.WithField("source", m.selected).Info("Log stream connected")
		m.setState(Connected)

	case Line:
		if m.stale(ev.Seq) {
			return
		}
		m.receive(ev.Text)

	case Failed:
		if m.stale(ev.Seq) {
			return
		}
		m.fail(ev.Seq, ev.Err)

	case Retry:
		m.retry(ev.Seq)
	}
}

func (m *Manager) stale(seq uint64) bool {
	if seq != m.seq {
		return true
	}
	_, ok := m.conns[seq]
	return !ok
}

func (m *Manager) receive(raw string) {
	entry := Classify(raw)
	m.lines.Inc(string(entry.Source))

	if !m.selected.Matches(entry.Source) {
		return
	}
	if m.onEntry != nil {
		m.onEntry(entry)
	}
	if entry.Source == models.MonitorSource && m.selected == models.MonitorSource && m.onMonitor != nil {
		m.onMonitor(entry)
	}
}

func (m *Manager) fail(seq uint64, err error) {
	fields := log.Fields{"source": m.selected, "seq": seq}
	if err != nil {
		fields["error"] = err.Error()
	}

	m.setState(Error)
	if cancel, ok := m.conns[seq]; ok {
		cancel()
		delete(m.conns, seq)
	}

	if !m.active {
		log.WithFields(fields).Warn("Log stream failed, view inactive so not reconnecting")
		return
	}
	if m.retryFor != 0 {
		log.WithFields(fields).Debug("Log stream failed, reconnect already pending")
		return
	}

	m.retryFor = seq
	log.WithFields(fields).WithField("delay", m.retryDelay.String()).Warn("Log stream failed, scheduling reconnect")
	m.schedule(m.retryDelay, Retry{Seq: seq})
}

func (m *Manager) retry(seq uint64) {
	if m.retryFor == seq {
		m.retryFor = 0
	}

	fields := log.Fields{"source": m.selected, "seq": seq}
	switch {
	case seq != m.seq:
		log.WithFields(fields).Debug("Skipping superseded reconnect")
		return
	case !m.active:
		log.WithFields(fields).Info("Skipping reconnect, view no longer active")
		return
	case len(m.conns) > 0:
		log.WithFields(fields).Debug("Skipping reconnect, stream already open")
		return
	}

	m.reconnects.Inc(string(m.selected))
	m.Connect(m.selected)
}

func (m *Manager) closeAll() {
	for seq, cancel := range m.conns {
		cancel()
		delete(m.conns, seq)
	}
}

func (m *Manager) setState(s State) {
	if m.state == s {
		return
	}
	m.state = s
	if m.onState != nil {
		m.onState(s)
	}
}
