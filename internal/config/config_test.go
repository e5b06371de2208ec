package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jharder01/Huntarr.io/internal/models"
)

func TestLoadFrom_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9705", cfg.Server.URL)
	assert.Equal(t, 10*time.Second, cfg.Server.Timeout)
	assert.Equal(t, "/logs", cfg.Stream.Path)
	assert.Equal(t, 5*time.Second, cfg.Stream.RetryDelay)
	assert.Equal(t, 1000, cfg.Stream.Buffer)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, models.SourceAll, cfg.DefaultSource())
}

func TestLoadFrom_FileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `server:
  url: http://media.lan:9705
  timeout: 3s
stream:
  retry_delay: 2s
ui:
  default_source: sonarr
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	t.Setenv("HUNTARR_LOG_LEVEL", "debug")

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "http://media.lan:9705", cfg.Server.URL)
	assert.Equal(t, 3*time.Second, cfg.Server.Timeout)
	assert.Equal(t, 2*time.Second, cfg.Stream.RetryDelay)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, models.SourceSonarr, cfg.DefaultSource())
}

func TestLoadFrom_InvalidSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ui:\n  default_source: plex\n"), 0644))

	_, err := LoadFrom(path)
	assert.Error(t, err)
}

func TestSaveYAML_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	cfg.Server.URL = "http://other:9705"

	require.NoError(t, SaveYAML(path, cfg))
	loaded, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "http://other:9705", loaded.Server.URL)
	assert.Equal(t, cfg.Stream.RetryDelay, loaded.Stream.RetryDelay)
}

func TestNormalizeServerURL(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "adds scheme", in: "localhost:9705", want: "http://localhost:9705"},
		{name: "keeps https", in: "https://huntarr.example.com/", want: "https://huntarr.example.com"},
		{name: "trims space", in: "  http://10.0.0.5:9705  ", want: "http://10.0.0.5:9705"},
		{name: "empty", in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeServerURL(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWatch_ReportsWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  url: a:1\n"), 0644))

	w, err := Watch(path, 10*time.Millisecond)
	require.NoError(t, err)
	defer w.Stop()

	require.NoError(t, os.WriteFile(path, []byte("server:\n  url: b:1\n"), 0644))

	select {
	case <-w.Changes():
	case <-time.After(2 * time.Second):
		t.Fatal("expected a change notification")
	}
}
