package cli

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"github.com/spf13/cobra"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jharder01/Huntarr.io/internal/models"
	"github.com/jharder01/Huntarr.io/internal/settings"
)

func TestParseAssignment(t *testing.T) {
	tests := []struct {
		arg     string
		want    assignment
		wantErr bool
	}{
		{arg: "sleep_duration=600", want: assignment{field: "sleep_duration", instance: -1, value: "600"}},
		{arg: "timezone=", want: assignment{field: "timezone", instance: -1, value: ""}},
		{arg: "api_key=a=b", want: assignment{field: "api_key", instance: -1, value: "a=b"}},
		{arg: "instances.1.api_url=http://sonarr:8989", want: assignment{field: "api_url", instance: 1, value: "http://sonarr:8989"}},
		{arg: "sleep_duration", wantErr: true},
		{arg: "=1", wantErr: true},
		{arg: "instances.x.name=a", wantErr: true},
		{arg: "instances.-1.name=a", wantErr: true},
		{arg: "instances.0=a", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			got, err := parseAssignment(tt.arg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAssignment_Apply(t *testing.T) {
	schema, err := settings.SchemaFor("sonarr")
	require.NoError(t, err)
	form := settings.NewForm(schema, models.SectionConfig{
		"instances": []any{map[string]any{"name": "Main", "api_url": "http://a", "api_key": "k", "enabled": true}},
	})

	require.NoError(t, assignment{field: "sleep_duration", instance: -1, value: "600"}.apply(form))
	assert.Equal(t, 600, form.Value("sleep_duration"))

	// the index after the last instance appends one
	require.NoError(t, assignment{field: "name", instance: 1, value: "4K"}.apply(form))
	insts := form.Instances()
	require.Len(t, insts, 2)
	assert.Equal(t, "4K", insts[1].Name)
	assert.True(t, insts[1].Enabled)

	assert.Error(t, assignment{field: "name", instance: 5, value: "x"}.apply(form))
	assert.ErrorIs(t, assignment{field: "nope", instance: -1, value: "x"}.apply(form), settings.ErrUnknownField)
}

func TestYAMLAssignments(t *testing.T) {
	doc := []byte(`
sleep_duration: 600
monitored_only: false
instances:
  - name: Main
    api_url: http://sonarr:8989
    api_key: secret
  - name: 4K
    enabled: false
`)

	got, err := yamlAssignments(doc)
	require.NoError(t, err)
	assert.Equal(t, []assignment{
		{field: "name", instance: 0, value: "Main"},
		{field: "api_url", instance: 0, value: "http://sonarr:8989"},
		{field: "api_key", instance: 0, value: "secret"},
		{field: "name", instance: 1, value: "4K"},
		{field: "enabled", instance: 1, value: "false"},
		{field: "monitored_only", instance: -1, value: "false"},
		{field: "sleep_duration", instance: -1, value: "600"},
	}, got)
}

func TestYAMLAssignments_Invalid(t *testing.T) {
	_, err := yamlAssignments([]byte("instances: nope"))
	assert.Error(t, err)

	_, err = yamlAssignments([]byte("instances:\n  - plain"))
	assert.Error(t, err)

	_, err = yamlAssignments([]byte("sleep_duration: [600"))
	assert.Error(t, err)
}

func TestRunSettingsShow_FetchesOneSection(t *testing.T) {
	var (
		mu    sync.Mutex
		paths []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		paths = append(paths, r.Method+" "+r.URL.Path)
		mu.Unlock()
		_, _ = io.WriteString(w, `{"sleep_duration":900,"instances":[]}`)
	}))
	t.Cleanup(srv.Close)

	prevConfig, prevServer := configPath, serverURL
	t.Cleanup(func() { configPath, serverURL = prevConfig, prevServer })
	configPath = filepath.Join(t.TempDir(), "none.yaml")
	serverURL = srv.URL

	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	require.NoError(t, runSettingsShow(cmd, []string{"Sonarr"}))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"GET /api/settings/sonarr"}, paths)
}

func TestRunSettingsShow_UnknownSection(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	assert.ErrorIs(t, runSettingsShow(cmd, []string{"plex"}), settings.ErrUnknownSection)
}
