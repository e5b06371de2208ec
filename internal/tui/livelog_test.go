package tui

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jharder01/Huntarr.io/internal/models"
	"github.com/jharder01/Huntarr.io/internal/stats"
	"github.com/jharder01/Huntarr.io/internal/stream"
)

func TestLiveLog_KeepsNewestLines(t *testing.T) {
	l := NewLiveLog(3, nil)
	l.SetSize(80, 10)
	for i := 0; i < 5; i++ {
		l.Append(models.StreamEntry{Raw: fmt.Sprintf("line %d", i), Source: models.SourceSystem})
	}

	entries := l.Entries()
	assert.Len(t, entries, 3)
	assert.Equal(t, "line 2", entries[0].Raw)
	assert.Equal(t, "line 4", entries[2].Raw)

	l.SetLimit(1)
	assert.Equal(t, 1, l.Len())
	assert.Equal(t, "line 4", l.Entries()[0].Raw)
}

func TestLiveLog_SourceSwitchClears(t *testing.T) {
	l := NewLiveLog(10, nil)
	l.Append(models.StreamEntry{Raw: "x", Source: models.SourceSonarr})
	l.SetSource(models.SourceRadarr)
	assert.Equal(t, 0, l.Len())
	assert.True(t, l.Following())
}

func TestLiveLog_ScrollingPausesFollow(t *testing.T) {
	l := NewLiveLog(100, nil)
	l.SetSize(80, 5)
	for i := 0; i < 20; i++ {
		l.Append(models.StreamEntry{Raw: fmt.Sprintf("line %d", i), Source: models.SourceSystem})
	}
	assert.True(t, l.Following())

	l.LineUp()
	assert.False(t, l.Following())
	assert.Contains(t, l.View(stream.Connected), "(paused)")

	l.ToggleFollow()
	assert.True(t, l.Following())
}

func TestLiveLog_ViewShowsMonitorCounters(t *testing.T) {
	counters := &stats.MonitorCounters{Strikes: 2, Removals: 1}
	l := NewLiveLog(10, counters)
	l.SetSize(100, 10)
	l.SetSource(models.SourceSwaparr)

	out := l.View(stream.Connected)
	assert.Contains(t, out, "strikes 2")
	assert.Contains(t, out, "removals 1")
	assert.Contains(t, out, "Waiting for log lines")

	l.SetSource(models.SourceSonarr)
	assert.NotContains(t, l.View(stream.Connected), "strikes")
}

func TestFormatEntry(t *testing.T) {
	structured := stream.Classify("2025-03-01 10:11:12 - huntarr.sonarr - INFO - Looking for missing episodes")
	out := formatEntry(structured)
	assert.Contains(t, out, "10:11:12")
	assert.Contains(t, out, "[Sonarr]")
	assert.Contains(t, out, "Looking for missing episodes")

	plain := formatEntry(models.StreamEntry{Raw: "plain text", Source: models.SourceSystem})
	assert.Equal(t, "[System] plain text", plain)
}
