package settings

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jharder01/Huntarr.io/internal/models"
)

type fakeSaver struct {
	sent     models.SectionConfig
	response models.SectionConfig
	err      error
}

func (f *fakeSaver) SaveSection(_ context.Context, _ models.SectionKey, cfg models.SectionConfig) (models.SectionConfig, error) {
	f.sent = cfg
	if f.err != nil {
		return nil, f.err
	}
	if f.response != nil {
		return f.response, nil
	}
	return cfg, nil
}

func sonarrBaseline() models.SectionConfig {
	return models.SectionConfig{
		"hunt_missing_items":   float64(1),
		"hunt_upgrade_items":   float64(0),
		"hunt_missing_mode":    "seasons_packs",
		"skip_future_episodes": true,
		"sleep_duration":       float64(900),
		"monitored_only":       true,
		"hourly_cap":           float64(20),
		"instances": []any{
			map[string]any{"name": "Main", "api_url": "http://sonarr:8989", "api_key": "abc", "enabled": true},
		},
	}
}

func loadedTracker(t *testing.T) *Tracker {
	t.Helper()
	tr := NewTracker()
	tr.Load(models.AllSettings{
		"general": {"timezone": "Europe/Berlin", ReloadField: false},
		"sonarr":  sonarrBaseline(),
	})
	return tr
}

func TestTracker_LoadIsClean(t *testing.T) {
	tr := loadedTracker(t)

	for _, key := range tr.Sections() {
		assert.False(t, tr.IsDirty(key), key)
		assert.False(t, tr.HasFormChanges(key), key)
	}
	assert.False(t, tr.HasUnsavedChanges())
}

func TestTracker_MarkChangedIsIdempotent(t *testing.T) {
	tr := loadedTracker(t)
	require.NoError(t, tr.SetActive("sonarr"))

	tr.MarkChanged()
	tr.MarkChanged()

	assert.True(t, tr.IsDirty("sonarr"))
	assert.False(t, tr.IsDirty(models.GeneralSection))
	assert.True(t, tr.HasUnsavedChanges())
	assert.Equal(t, []models.SectionKey{"sonarr"}, tr.DirtySections())
}

func TestTracker_HasFormChanges(t *testing.T) {
	tr := loadedTracker(t)
	require.NoError(t, tr.SetActive("sonarr"))

	require.NoError(t, tr.Edit(func(f *Form) error { return f.Set("sleep_duration", "1800") }))
	assert.True(t, tr.HasFormChanges("sonarr"))

	// Editing back to the baseline value is not a change, although the
	// dirty flag stays set.
	require.NoError(t, tr.Edit(func(f *Form) error { return f.Set("sleep_duration", "900") }))
	assert.False(t, tr.HasFormChanges("sonarr"))
	assert.True(t, tr.IsDirty("sonarr"))

	require.NoError(t, tr.Edit(func(f *Form) error { return f.SetInstanceField(0, "api_key", "changed") }))
	assert.True(t, tr.HasFormChanges("sonarr"))
}

func TestTracker_EditErrorDoesNotMark(t *testing.T) {
	tr := loadedTracker(t)
	require.NoError(t, tr.SetActive("sonarr"))

	err := tr.Edit(func(f *Form) error { return f.Set("sleep_duration", "soon") })
	require.Error(t, err)
	assert.False(t, tr.IsDirty("sonarr"))
}

func TestTracker_SaveInstallsServerResponse(t *testing.T) {
	tr := loadedTracker(t)
	require.NoError(t, tr.SetActive("sonarr"))
	require.NoError(t, tr.Edit(func(f *Form) error { return f.Set("hourly_cap", "50") }))

	// The server normalizes the cap and adds a field of its own.
	response := sonarrBaseline()
	response["hourly_cap"] = float64(40)
	response["api_timeout"] = float64(120)
	saver := &fakeSaver{response: response}

	result, err := tr.Save(context.Background(), "sonarr", saver)
	require.NoError(t, err)
	assert.False(t, result.ReloadRequired)
	assert.Equal(t, 50, saver.sent["hourly_cap"])

	assert.False(t, tr.IsDirty("sonarr"))
	assert.False(t, tr.HasFormChanges("sonarr"))

	form, err := tr.Form("sonarr")
	require.NoError(t, err)
	assert.Equal(t, 40, form.Value("hourly_cap"))
	assert.Equal(t, float64(120), form.Serialize()["api_timeout"])
}

func TestTracker_SaveFailureKeepsDirty(t *testing.T) {
	tr := loadedTracker(t)
	require.NoError(t, tr.SetActive("sonarr"))
	require.NoError(t, tr.Edit(func(f *Form) error { return f.Set("hourly_cap", "50") }))

	_, err := tr.Save(context.Background(), "sonarr", &fakeSaver{err: errors.New("boom")})
	require.Error(t, err)
	assert.True(t, tr.IsDirty("sonarr"))
	assert.True(t, tr.HasFormChanges("sonarr"))

	form, _ := tr.Form("sonarr")
	assert.Equal(t, 50, form.Value("hourly_cap"))
}

func TestTracker_GeneralReload(t *testing.T) {
	tests := []struct {
		name       string
		edit       func(*Form) error
		wantReload bool
	}{
		{name: "bypass changed", edit: func(f *Form) error { return f.Toggle(ReloadField) }, wantReload: true},
		{name: "other field", edit: func(f *Form) error { return f.Set("timezone", "UTC") }, wantReload: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := loadedTracker(t)
			require.NoError(t, tr.Edit(tt.edit))

			result, err := tr.Save(context.Background(), models.GeneralSection, &fakeSaver{})
			require.NoError(t, err)
			assert.Equal(t, tt.wantReload, result.ReloadRequired)
			assert.False(t, tr.HasFormChanges(models.GeneralSection))
		})
	}
}

func TestTracker_LeaveGuard(t *testing.T) {
	t.Run("clean section leaves freely", func(t *testing.T) {
		tr := loadedTracker(t)
		assert.Equal(t, LeaveAllowed, tr.CheckLeave())
	})

	t.Run("dirty without real change leaves freely", func(t *testing.T) {
		tr := loadedTracker(t)
		tr.MarkChanged()
		assert.Equal(t, LeaveAllowed, tr.CheckLeave())
	})

	t.Run("cancel keeps dirty", func(t *testing.T) {
		tr := loadedTracker(t)
		require.NoError(t, tr.Edit(func(f *Form) error { return f.Set("timezone", "UTC") }))
		require.Equal(t, LeaveNeedsConfirm, tr.CheckLeave())

		assert.False(t, tr.ResolveLeave(false))
		assert.True(t, tr.IsDirty(models.GeneralSection))
	})

	t.Run("confirm clears dirty but keeps the edit", func(t *testing.T) {
		tr := loadedTracker(t)
		require.NoError(t, tr.Edit(func(f *Form) error { return f.Set("timezone", "UTC") }))
		require.Equal(t, LeaveNeedsConfirm, tr.CheckLeave())

		assert.True(t, tr.ResolveLeave(true))
		assert.False(t, tr.IsDirty(models.GeneralSection))
		assert.True(t, tr.HasFormChanges(models.GeneralSection))
		assert.False(t, tr.HasUnsavedChanges())
	})
}

func TestTracker_Discard(t *testing.T) {
	tr := loadedTracker(t)
	require.NoError(t, tr.Edit(func(f *Form) error { return f.Set("timezone", "UTC") }))

	require.NoError(t, tr.Discard(models.GeneralSection))
	assert.False(t, tr.IsDirty(models.GeneralSection))
	assert.False(t, tr.HasFormChanges(models.GeneralSection))
	form, _ := tr.Form(models.GeneralSection)
	assert.Equal(t, "Europe/Berlin", form.Value("timezone"))
}

func TestTracker_Diff(t *testing.T) {
	tr := loadedTracker(t)
	require.NoError(t, tr.SetActive("sonarr"))
	require.NoError(t, tr.Edit(func(f *Form) error {
		if err := f.Set("monitored_only", "false"); err != nil {
			return err
		}
		return f.AddInstance()
	}))

	changes, err := tr.Diff("sonarr")
	require.NoError(t, err)
	require.Len(t, changes, 2)
	assert.Equal(t, FieldChange{Field: "monitored_only", Old: "true", New: "false"}, changes[0])
	assert.Equal(t, InstancesKey, changes[1].Field)
}

func TestTracker_UnknownSection(t *testing.T) {
	tr := NewTracker()
	assert.ErrorIs(t, tr.SetActive("plex"), ErrUnknownSection)
	_, err := tr.Form("plex")
	assert.ErrorIs(t, err, ErrUnknownSection)
	assert.False(t, tr.HasFormChanges("plex"))
}
