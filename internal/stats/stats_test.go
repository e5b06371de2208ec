package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jharder01/Huntarr.io/internal/models"
)

func seeded() *Board {
	b := NewBoard()
	b.Update(models.Stats{
		models.SourceSonarr: {Hunted: 10, Upgraded: 2},
		models.SourceRadarr: {Hunted: 7, Upgraded: 1},
	})
	return b
}

func TestBoard_ResetOneApp(t *testing.T) {
	b := seeded()

	r := b.BeginReset(models.SourceSonarr)
	assert.Equal(t, models.AppStats{}, b.Get(models.SourceSonarr))
	assert.Equal(t, 7, b.Get(models.SourceRadarr).Hunted)

	// The server reports a hunt that happened in between.
	b.CommitReset(r, models.Stats{
		models.SourceSonarr: {Hunted: 1},
		models.SourceRadarr: {Hunted: 7, Upgraded: 1},
	})
	assert.Equal(t, 1, b.Get(models.SourceSonarr).Hunted)
}

func TestBoard_ResetAllRollback(t *testing.T) {
	b := seeded()

	r := b.BeginReset(models.SourceAll)
	for _, s := range b.Stats() {
		assert.Equal(t, models.AppStats{}, s)
	}

	b.RollbackReset(r)
	assert.Equal(t, 10, b.Get(models.SourceSonarr).Hunted)
	assert.Equal(t, 1, b.Get(models.SourceRadarr).Upgraded)
}

func TestBoard_RollbackOneAppKeepsOthers(t *testing.T) {
	b := seeded()

	r := b.BeginReset(models.SourceRadarr)
	b.Update(models.Stats{
		models.SourceSonarr: {Hunted: 11, Upgraded: 2},
		models.SourceRadarr: {},
	})
	b.RollbackReset(r)

	assert.Equal(t, 11, b.Get(models.SourceSonarr).Hunted)
	assert.Equal(t, 7, b.Get(models.SourceRadarr).Hunted)
}

func TestBoard_CommitWithoutSnapshotKeepsProjection(t *testing.T) {
	b := seeded()
	r := b.BeginReset(models.SourceSonarr)
	b.CommitReset(r, nil)
	assert.Equal(t, models.AppStats{}, b.Get(models.SourceSonarr))
}

func TestBoard_StatsIsCopy(t *testing.T) {
	b := seeded()
	s := b.Stats()
	s[models.SourceSonarr] = models.AppStats{}
	assert.Equal(t, 10, b.Get(models.SourceSonarr).Hunted)
}

func TestMonitorCounters(t *testing.T) {
	var c MonitorCounters
	for _, msg := range []string{
		"Added strike (1/3) to Some.Download",
		"Added strike (2/3) to Some.Download",
		"Max strikes reached, removing Some.Download",
		"Ignoring Big.Download above size limit",
		"Processing 4 downloads",
		"Nothing to do",
	} {
		c.Observe(models.StreamEntry{Source: models.SourceSwaparr, Message: msg})
	}

	assert.Equal(t, MonitorCounters{Processed: 1, Strikes: 2, Removals: 1, Ignored: 1}, c)

	c.Reset()
	assert.Equal(t, MonitorCounters{}, c)
}
