package stream

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jharder01/Huntarr.io/internal/metrics"
	"github.com/jharder01/Huntarr.io/internal/models"
)

const waitTimeout = 2 * time.Second

type fakeDial struct {
	ctx    context.Context
	url    string
	onOpen func()
	onLine func(string)
	end    chan error
}

type fakeDialer struct {
	dials chan *fakeDial
}

func (f *fakeDialer) Dial(ctx context.Context, url string, onOpen func(), onLine func(string)) error {
	d := &fakeDial{ctx: ctx, url: url, onOpen: onOpen, onLine: onLine, end: make(chan error, 1)}
	f.dials <- d
	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-d.end:
		return err
	}
}

type countingCounter struct {
	mu     sync.Mutex
	counts map[string]int
}

func (c *countingCounter) Inc(labels ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts[strings.Join(labels, ",")]++
}

type harness struct {
	t          *testing.T
	m          *Manager
	dialer     *fakeDialer
	events     chan Event
	scheduled  []Event
	entries    []models.StreamEntry
	monitored  []models.StreamEntry
	states     []State
	lines      *countingCounter
	reconnects *countingCounter
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		t:          t,
		dialer:     &fakeDialer{dials: make(chan *fakeDial, 8)},
		events:     make(chan Event, 64),
		lines:      &countingCounter{counts: map[string]int{}},
		reconnects: &countingCounter{counts: map[string]int{}},
	}
	h.m = NewManager(h.dialer,
		func(s models.Source) string { return "http://huntarr.test/logs?app=" + string(s) },
		func(ev Event) { h.events <- ev },
		WithScheduler(func(d time.Duration, ev Event) {
			assert.Equal(t, 3*time.Second, d)
			h.scheduled = append(h.scheduled, ev)
		}),
		WithRetryDelay(3*time.Second),
		OnEntry(func(e models.StreamEntry) { h.entries = append(h.entries, e) }),
		OnMonitor(func(e models.StreamEntry) { h.monitored = append(h.monitored, e) }),
		OnState(func(s State) { h.states = append(h.states, s) }),
		WithMetrics(&metrics.Counters{StreamLines: h.lines, Reconnects: h.reconnects}),
	)
	return h
}

func (h *harness) nextDial() *fakeDial {
	h.t.Helper()
	select {
	case d := <-h.dialer.dials:
		return d
	case <-time.After(waitTimeout):
		require.FailNow(h.t, "expected a dial")
		return nil
	}
}

func (h *harness) noDial() {
	h.t.Helper()
	select {
	case d := <-h.dialer.dials:
		require.FailNowf(h.t, "unexpected dial", "url %s", d.url)
	case <-time.After(50 * time.Millisecond):
	}
}

// pump hands the next posted event to the manager, like the event loop does.
func (h *harness) pump() Event {
	h.t.Helper()
	select {
	case ev := <-h.events:
		h.m.Handle(ev)
		return ev
	case <-time.After(waitTimeout):
		require.FailNow(h.t, "expected an event")
		return nil
	}
}

const sonarrLine = "[SONARR] 2024-01-01 12:00:00 - huntarr.sonarr - INFO - Episode found"

func TestManager_ConnectAndRender(t *testing.T) {
	h := newHarness(t)
	h.m.SetActive(true)

	h.m.Connect(models.SourceSonarr)
	assert.Equal(t, Connecting, h.m.State())
	d := h.nextDial()
	assert.Equal(t, "http://huntarr.test/logs?app=sonarr", d.url)

	d.onOpen()
	h.pump()
	assert.Equal(t, Connected, h.m.State())

	d.onLine(sonarrLine)
	h.pump()
	require.Len(t, h.entries, 1)
	assert.Equal(t, models.SourceSonarr, h.entries[0].Source)
	assert.Equal(t, "Episode found", h.entries[0].Message)
	assert.Equal(t, []State{Connecting, Connected}, h.states)
}

func TestManager_FilterHidesOtherSources(t *testing.T) {
	h := newHarness(t)
	h.m.SetActive(true)

	h.m.Connect(models.SourceRadarr)
	d := h.nextDial()
	d.onOpen()
	h.pump()

	d.onLine(sonarrLine)
	d.onLine("System scan found a movie file")
	h.pump()
	h.pump()

	require.Len(t, h.entries, 1)
	assert.Equal(t, models.SourceRadarr, h.entries[0].Source)
	assert.Equal(t, 1, h.lines.counts["sonarr"])
	assert.Equal(t, 1, h.lines.counts["radarr"])
}

func TestManager_ConnectClosesPrevious(t *testing.T) {
	h := newHarness(t)
	h.m.SetActive(true)

	h.m.Connect(models.SourceSonarr)
	first := h.nextDial()
	assert.Equal(t, 1, h.m.OpenConnections())

	h.m.Connect(models.SourceRadarr)
	require.Error(t, first.ctx.Err(), "previous stream must be cancelled before the next dial")
	assert.Equal(t, 1, h.m.OpenConnections())

	second := h.nextDial()
	assert.NoError(t, second.ctx.Err())
	assert.Contains(t, second.url, "app=radarr")

	// Late traffic from the first stream is ignored.
	first.onOpen()
	first.onLine(sonarrLine)
	h.pump()
	h.pump()
	assert.Empty(t, h.entries)
	assert.Equal(t, Connecting, h.m.State())

	h.m.Connect(models.SourceAll)
	h.nextDial()
	assert.Equal(t, 1, h.m.OpenConnections())
}

func TestManager_FailureSchedulesSingleRetry(t *testing.T) {
	h := newHarness(t)
	h.m.SetActive(true)

	h.m.Connect(models.SourceLidarr)
	d := h.nextDial()
	d.onOpen()
	h.pump()

	d.end <- errors.New("connection reset")
	ev := h.pump()
	require.IsType(t, Failed{}, ev)
	assert.Equal(t, Error, h.m.State())
	assert.Equal(t, 0, h.m.OpenConnections())
	require.Len(t, h.scheduled, 1)

	// A duplicate failure for the same attempt is stale.
	h.m.Handle(Failed{Seq: ev.(Failed).Seq})
	assert.Len(t, h.scheduled, 1)

	h.m.Handle(h.scheduled[0])
	again := h.nextDial()
	assert.Contains(t, again.url, "app=lidarr")
	assert.Equal(t, Connecting, h.m.State())
	assert.Equal(t, 1, h.reconnects.counts["lidarr"])
}

func TestManager_NoRetryWhenInactive(t *testing.T) {
	h := newHarness(t)
	h.m.SetActive(true)
	h.m.Connect(models.SourceAll)
	d := h.nextDial()

	h.m.SetActive(false)
	d.end <- errors.New("eof")
	h.pump()

	assert.Equal(t, Error, h.m.State())
	assert.Empty(t, h.scheduled)
}

func TestManager_RetrySkippedWhenViewLeftBeforeFire(t *testing.T) {
	h := newHarness(t)
	h.m.SetActive(true)
	h.m.Connect(models.SourceAll)
	d := h.nextDial()

	d.end <- errors.New("eof")
	h.pump()
	require.Len(t, h.scheduled, 1)

	h.m.SetActive(false)
	h.m.Handle(h.scheduled[0])
	h.noDial()
	assert.Equal(t, 0, h.m.OpenConnections())
	assert.Empty(t, h.reconnects.counts)
}

func TestManager_SupersededRetryDoesNotFire(t *testing.T) {
	h := newHarness(t)
	h.m.SetActive(true)
	h.m.Connect(models.SourceSonarr)
	first := h.nextDial()

	first.end <- errors.New("eof")
	h.pump()
	require.Len(t, h.scheduled, 1)

	// The user picks another filter before the retry fires.
	h.m.Connect(models.SourceRadarr)
	second := h.nextDial()
	second.onOpen()
	h.pump()

	h.m.Handle(h.scheduled[0])
	h.noDial()
	assert.Equal(t, Connected, h.m.State())
	assert.Equal(t, 1, h.m.OpenConnections())
	assert.Equal(t, models.SourceRadarr, h.m.Selected())

	// The newer attempt can still schedule its own retry.
	second.end <- errors.New("eof")
	h.pump()
	require.Len(t, h.scheduled, 2)
	h.m.Handle(h.scheduled[1])
	assert.Contains(t, h.nextDial().url, "app=radarr")
}

func TestManager_MonitorNotification(t *testing.T) {
	const strike = "[SWAPARR] 2024-01-01 12:00:00 - huntarr.swaparr - INFO - Added strike (1/3) to Some.Download"

	t.Run("fires when monitor app selected", func(t *testing.T) {
		h := newHarness(t)
		h.m.SetActive(true)
		h.m.Connect(models.SourceSwaparr)
		d := h.nextDial()

		d.onLine(strike)
		h.pump()
		assert.Len(t, h.entries, 1)
		assert.Len(t, h.monitored, 1)
	})

	t.Run("silent under all", func(t *testing.T) {
		h := newHarness(t)
		h.m.SetActive(true)
		h.m.Connect(models.SourceAll)
		d := h.nextDial()

		d.onLine(strike)
		h.pump()
		assert.Len(t, h.entries, 1)
		assert.Empty(t, h.monitored)
	})
}

func TestManager_DisconnectAll(t *testing.T) {
	h := newHarness(t)
	h.m.SetActive(true)
	h.m.Connect(models.SourceEros)
	d := h.nextDial()
	d.onOpen()
	h.pump()

	h.m.SetActive(false)
	h.m.DisconnectAll()

	assert.Error(t, d.ctx.Err())
	assert.Equal(t, 0, h.m.OpenConnections())
	assert.Equal(t, Disconnected, h.m.State())

	// Nothing posted after the cancel reaches the handlers.
	d.onLine("[EROS] 2024-01-01 12:00:00 - huntarr.eros - INFO - x")
	h.pump()
	assert.Empty(t, h.entries)
}

func TestManager_DisconnectAllKeepsStateWhileActive(t *testing.T) {
	h := newHarness(t)
	h.m.SetActive(true)
	h.m.Connect(models.SourceAll)
	h.nextDial()

	h.m.DisconnectAll()
	assert.Equal(t, 0, h.m.OpenConnections())
	assert.Equal(t, Connecting, h.m.State())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "disconnected", Disconnected.String())
	assert.Equal(t, "connecting", Connecting.String())
	assert.Equal(t, "connected", Connected.String())
	assert.Equal(t, "error", Error.String())
}
