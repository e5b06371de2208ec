package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransition(t *testing.T) {
	tests := []struct {
		name string
		from View
		ev   navEvent
		want View
	}{
		{"next from home", ViewHome, navNext, ViewLogs},
		{"next wraps", ViewSettings, navNext, ViewHome},
		{"prev wraps", ViewHome, navPrev, ViewSettings},
		{"prev from history", ViewHistory, navPrev, ViewLogs},
		{"direct logs", ViewSettings, navLogs, ViewLogs},
		{"direct history", ViewHome, navHistory, ViewHistory},
		{"direct settings", ViewLogs, navSettings, ViewSettings},
		{"direct home", ViewHistory, navHome, ViewHome},
		{"same view", ViewLogs, navLogs, ViewLogs},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, transition(tt.from, tt.ev))
		})
	}
}

func TestViewString(t *testing.T) {
	assert.Equal(t, "Settings", ViewSettings.String())
	assert.Equal(t, "?", View(42).String())
}
