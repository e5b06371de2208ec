package settings

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jharder01/Huntarr.io/internal/models"
)

func mustSchema(t *testing.T, key models.SectionKey) *Schema {
	t.Helper()
	s, err := SchemaFor(key)
	require.NoError(t, err)
	return s
}

func TestForm_RemoveLastInstanceRejected(t *testing.T) {
	f := NewForm(mustSchema(t, "radarr"), models.SectionConfig{
		"instances": []any{map[string]any{"name": "Only", "api_url": "http://radarr:7878", "api_key": "k", "enabled": true}},
	})

	err := f.RemoveInstance(0)
	assert.ErrorIs(t, err, ErrLastInstance)
	assert.Len(t, f.Instances(), 1)
}

func TestForm_InstanceLimit(t *testing.T) {
	f := NewForm(mustSchema(t, "lidarr"), nil)
	for i := 0; i < MaxInstances; i++ {
		require.NoError(t, f.AddInstance())
	}
	require.Len(t, f.Instances(), MaxInstances)

	err := f.AddInstance()
	assert.ErrorIs(t, err, ErrInstanceLimit)
	assert.Len(t, f.Instances(), MaxInstances)
}

func TestForm_AddInstanceDefaults(t *testing.T) {
	f := NewForm(mustSchema(t, "readarr"), nil)
	require.NoError(t, f.AddInstance())
	require.NoError(t, f.AddInstance())

	insts := f.Instances()
	assert.Equal(t, "Instance 1", insts[0].Name)
	assert.Equal(t, "Instance 2", insts[1].Name)
	assert.True(t, insts[1].Enabled)

	require.NoError(t, f.RemoveInstance(0))
	assert.Equal(t, "Instance 2", f.Instances()[0].Name)
}

func TestForm_SerializeInstances(t *testing.T) {
	f := NewForm(mustSchema(t, "sonarr"), models.SectionConfig{
		"instances": []any{
			map[string]any{"name": "", "api_url": "http://a", "api_key": "1", "enabled": false, "legacy": "dropped"},
			map[string]any{"name": "Second", "api_url": "http://b", "api_key": "2"},
		},
	})

	got := f.Serialize()["instances"]
	assert.Equal(t, []any{
		map[string]any{"name": "Instance 1", "api_url": "http://a", "api_key": "1", "enabled": false},
		map[string]any{"name": "Second", "api_url": "http://b", "api_key": "2", "enabled": true},
	}, got)
}

func TestForm_SingleInstanceSection(t *testing.T) {
	f := NewForm(mustSchema(t, "whisparr"), models.SectionConfig{"api_url": "http://whisparr:6969", "api_key": "xyz"})

	assert.ErrorIs(t, f.AddInstance(), ErrNoInstances)
	assert.ErrorIs(t, f.RemoveInstance(0), ErrNoInstances)

	cfg := f.Serialize()
	assert.Equal(t, "http://whisparr:6969", cfg["api_url"])
	assert.NotContains(t, cfg, "instances")
}

func TestForm_KeepsUnknownKeys(t *testing.T) {
	f := NewForm(mustSchema(t, "swaparr"), models.SectionConfig{"enabled": true, "future_option": "x"})

	cfg := f.Serialize()
	assert.Equal(t, "x", cfg["future_option"])
	assert.Equal(t, true, cfg["enabled"])
	assert.Equal(t, 3, cfg["max_strikes"])
}

func TestField_Parse(t *testing.T) {
	general := mustSchema(t, models.GeneralSection)
	sonarr := mustSchema(t, "sonarr")

	tests := []struct {
		schema  *Schema
		field   string
		input   string
		want    any
		wantErr bool
	}{
		{schema: general, field: "ssl_verify", input: "false", want: false},
		{schema: general, field: "debug_mode", input: "on", want: true},
		{schema: general, field: "debug_mode", input: "maybe", wantErr: true},
		{schema: general, field: "api_timeout", input: " 60 ", want: 60},
		{schema: general, field: "api_timeout", input: "5", wantErr: true},
		{schema: general, field: "minimum_download_queue_size", input: "-1", want: -1},
		{schema: general, field: "minimum_download_queue_size", input: "-2", wantErr: true},
		{schema: general, field: "timezone", input: "America/New_York", want: "America/New_York"},
		{schema: sonarr, field: "hunt_missing_mode", input: "EPISODES", want: "episodes"},
		{schema: sonarr, field: "hunt_missing_mode", input: "movies", wantErr: true},
		{schema: sonarr, field: "sleep_duration", input: "ten", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%s=%s", tt.schema.Key, tt.field, tt.input), func(t *testing.T) {
			field, ok := tt.schema.Field(tt.field)
			require.True(t, ok)

			got, err := field.Parse(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestForm_SetUnknownField(t *testing.T) {
	f := NewForm(mustSchema(t, models.GeneralSection), nil)
	assert.ErrorIs(t, f.Set("nope", "1"), ErrUnknownField)
	assert.ErrorIs(t, f.Toggle("timezone"), ErrUnknownField)
}

func TestSchemas(t *testing.T) {
	seen := map[models.SectionKey]bool{}
	for _, s := range Schemas() {
		assert.False(t, seen[s.Key], "duplicate section %s", s.Key)
		seen[s.Key] = true
		assert.NotEmpty(t, s.Fields, s.Key)
	}
	for _, app := range models.Apps {
		assert.True(t, seen[models.SectionKey(app)], "missing schema for %s", app)
	}
	assert.True(t, seen[models.GeneralSection])

	_, err := SchemaFor("plex")
	assert.ErrorIs(t, err, ErrUnknownSection)
}
