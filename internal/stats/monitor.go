package stats

import (
	"strings"

	"github.com/jharder01/Huntarr.io/internal/models"
)

// MonitorCounters tallies Swaparr activity seen on the live stream while
// Swaparr is the selected filter.
type MonitorCounters struct {
	Processed int
	Strikes   int
	Removals  int
	Ignored   int
}

// Observe counts one Swaparr entry. The first matching category wins, so a
// removal that mentions the strike limit counts only as a removal.
func (c *MonitorCounters) Observe(e models.StreamEntry) {
	msg := strings.ToLower(e.Message)
	switch {
	case strings.Contains(msg, "remov"):
		c.Removals++
	case strings.Contains(msg, "strike"):
		c.Strikes++
	case strings.Contains(msg, "ignor"):
		c.Ignored++
	case strings.Contains(msg, "process"):
		c.Processed++
	}
}

// Reset zeroes every counter.
func (c *MonitorCounters) Reset() {
	*c = MonitorCounters{}
}
