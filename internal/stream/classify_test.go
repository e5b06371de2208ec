package stream

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jharder01/Huntarr.io/internal/models"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		line string
		want models.Source
	}{
		{name: "tag wins", line: "[SONARR] 2024-01-01 12:00:00 - huntarr.sonarr - INFO - Episode found", want: models.SourceSonarr},
		{name: "tag beats keywords", line: "[RADARR] 2024-01-01 12:00:00 - huntarr - INFO - Episode of a movie", want: models.SourceRadarr},
		{name: "tag beats logger", line: "[Lidarr] 2024-01-01 12:00:00 - huntarr.sonarr - INFO - x", want: models.SourceLidarr},
		{name: "logger segment", line: "2024-01-01 12:00:00 - huntarr.readarr.missing - DEBUG - Checking queue", want: models.SourceReadarr},
		{name: "logger without app falls to keywords", line: "2024-01-01 12:00:00 - huntarr.core - INFO - Searching album", want: models.SourceLidarr},
		{name: "keyword movie", line: "System scan found a movie file", want: models.SourceRadarr},
		{name: "keyword is case insensitive", line: "New SEASON pack", want: models.SourceSonarr},
		{name: "first app wins", line: "series tie-in book", want: models.SourceSonarr},
		{name: "swaparr strike", line: "Added strike 2/3 to download abc", want: models.SourceSwaparr},
		{name: "plural keyword", line: "Found 3 missing episodes", want: models.SourceSonarr},
		{name: "no match", line: "Web server listening on 9705", want: models.SourceSystem},
		{name: "keyword inside a longer word", line: "Authorization failed for user admin", want: models.SourceSystem},
		{name: "track inside tracker", line: "Cycle tracker reset", want: models.SourceSystem},
		{name: "scene inside a word", line: "Obscene amount of retries, backing off", want: models.SourceSystem},
		{name: "strike inside a word", line: "Strikethrough formatting disabled", want: models.SourceSystem},
		{name: "empty", line: "", want: models.SourceSystem},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.line).Source)
		})
	}
}

func TestClassify_TagEqualsSource(t *testing.T) {
	for _, tag := range []string{"SONARR", "radarr", "Whisparr", "EROS", "SWAPARR", "SYSTEM"} {
		entry := Classify("[" + tag + "] 2024-06-30 23:59:59 - huntarr.web - WARNING - anything at all")
		assert.Equal(t, tag, entry.Tag)
		assert.Equal(t, models.Source(strings.ToLower(tag)), entry.Source)
	}
}

func TestClassify_Fields(t *testing.T) {
	entry := Classify("[SONARR] 2024-01-01 12:00:00 - huntarr.sonarr - INFO - Episode found")

	assert.True(t, entry.Structured())
	assert.Equal(t, "2024-01-01 12:00:00", entry.Timestamp)
	assert.Equal(t, "huntarr.sonarr", entry.Logger)
	assert.Equal(t, "INFO", entry.Level)
	assert.Equal(t, "Episode found", entry.Message)

	plain := Classify("not structured at all")
	assert.False(t, plain.Structured())
	assert.Equal(t, "not structured at all", plain.Message)
	assert.Equal(t, "not structured at all", plain.Raw)
}
