// Package stats keeps the dashboard's hunt counters and the Swaparr
// counters derived from the live log stream.
package stats

import (
	log "github.com/sirupsen/logrus"

	"github.com/jharder01/Huntarr.io/internal/models"
)

// Board holds the last known per-app counters. Resets are two-phase: the
// zeros are shown immediately and later reconciled with the server.
type Board struct {
	stats models.Stats
}

// Reset is an optimistic reset in flight.
type Reset struct {
	App    models.Source
	before models.Stats
}

func NewBoard() *Board {
	return &Board{stats: models.Stats{}}
}

// Stats returns a copy of the counters.
func (b *Board) Stats() models.Stats {
	return b.stats.Clone()
}

// Get returns one app's counters.
func (b *Board) Get(app models.Source) models.AppStats {
	return b.stats[app]
}

// Update replaces the counters with a server snapshot.
func (b *Board) Update(s models.Stats) {
	if s == nil {
		s = models.Stats{}
	}
	b.stats = s.Clone()
}

// BeginReset zeroes the counters of app (every app for "all" or empty)
// before the server has confirmed anything.
func (b *Board) BeginReset(app models.Source) Reset {
	r := Reset{App: app, before: b.stats.Clone()}
	if app == "" || app == models.SourceAll {
		for k := range b.stats {
			b.stats[k] = models.AppStats{}
		}
	} else {
		b.stats[app] = models.AppStats{}
	}
	log.WithField("app", app).Debug("Stats reset projected")
	return r
}

// CommitReset reconciles a confirmed reset with the counters the server
// reports afterwards. A nil snapshot keeps the projection.
func (b *Board) CommitReset(r Reset, server models.Stats) {
	if server != nil {
		b.Update(server)
	}
	log.WithField("app", r.App).Info("Stats reset confirmed")
}

// RollbackReset restores what BeginReset zeroed after the server refused
// the reset.
func (b *Board) RollbackReset(r Reset) {
	if r.App == "" || r.App == models.SourceAll {
		b.stats = r.before.Clone()
	} else if prev, ok := r.before[r.App]; ok {
		b.stats[r.App] = prev
	} else {
		delete(b.stats, r.App)
	}
	log.WithField("app", r.App).Warn("Stats reset rolled back")
}
