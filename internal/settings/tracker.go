// Package settings tracks edits to the server's settings sections against
// the last configuration the server confirmed, and decides when leaving a
// section needs the user's confirmation.
package settings

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/jharder01/Huntarr.io/internal/models"
)

// Saver stores a section and returns the configuration the server kept.
type Saver interface {
	SaveSection(ctx context.Context, key models.SectionKey, cfg models.SectionConfig) (models.SectionConfig, error)
}

// SaveResult describes what the caller must do after a successful save.
type SaveResult struct {
	Section models.SectionKey
	// ReloadRequired is set when a change affects how the client reaches
	// the server, so everything should be fetched again instead of
	// refreshing one form.
	ReloadRequired bool
}

// LeaveDecision is the outcome of checking whether the active section can
// be left.
type LeaveDecision int

const (
	LeaveAllowed LeaveDecision = iota
	LeaveNeedsConfirm
)

type section struct {
	schema   *Schema
	baseline models.SectionConfig
	form     *Form
	dirty    bool
}

// Tracker holds the baseline, form and dirty flag of every section.
type Tracker struct {
	sections map[models.SectionKey]*section
	order    []models.SectionKey
	active   models.SectionKey
}

// NewTracker creates a tracker with an empty baseline for every known
// section. The general section starts active.
func NewTracker() *Tracker {
	t := &Tracker{sections: make(map[models.SectionKey]*section)}
	for _, schema := range Schemas() {
		t.sections[schema.Key] = &section{
			schema:   schema,
			baseline: models.SectionConfig{},
			form:     NewForm(schema, nil),
		}
		t.order = append(t.order, schema.Key)
	}
	t.active = models.GeneralSection
	return t
}

// Load replaces every baseline with the server's configuration and drops
// all local edits.
func (t *Tracker) Load(all models.AllSettings) {
	for _, key := range t.order {
		t.reset(key, all[key])
	}
	log.WithField("sections", len(all)).Debug("Settings baseline loaded")
}

// SetBaseline replaces one section's baseline and reloads its form.
func (t *Tracker) SetBaseline(key models.SectionKey, cfg models.SectionConfig) error {
	if _, err := t.section(key); err != nil {
		return err
	}
	t.reset(key, cfg)
	return nil
}

func (t *Tracker) reset(key models.SectionKey, cfg models.SectionConfig) {
	s := t.sections[key]
	s.baseline = canonicalConfig(cfg)
	s.form = NewForm(s.schema, s.baseline)
	s.dirty = false
}

// Sections lists the section keys in display order.
func (t *Tracker) Sections() []models.SectionKey {
	return append([]models.SectionKey(nil), t.order...)
}

// Active returns the section being edited.
func (t *Tracker) Active() models.SectionKey {
	return t.active
}

// SetActive switches the section being edited. It does not consult the
// leave guard; callers run CheckLeave first.
func (t *Tracker) SetActive(key models.SectionKey) error {
	if _, err := t.section(key); err != nil {
		return err
	}
	t.active = key
	return nil
}

// Form returns the live form of a section.
func (t *Tracker) Form(key models.SectionKey) (*Form, error) {
	s, err := t.section(key)
	if err != nil {
		return nil, err
	}
	return s.form, nil
}

// Baseline returns a copy of a section's last confirmed configuration.
func (t *Tracker) Baseline(key models.SectionKey) (models.SectionConfig, error) {
	s, err := t.section(key)
	if err != nil {
		return nil, err
	}
	return canonicalConfig(s.baseline), nil
}

// MarkChanged flags the active section as edited. Repeated calls are
// no-ops apart from the log line.
func (t *Tracker) MarkChanged() {
	s := t.sections[t.active]
	entry := log.WithField("section", t.active)
	if s.dirty {
		entry.Debug("Settings already marked changed")
		return
	}
	s.dirty = true
	entry.Info("Settings marked changed")
}

// Edit applies fn to the active form and marks the section changed when
// fn succeeds.
func (t *Tracker) Edit(fn func(*Form) error) error {
	if err := fn(t.sections[t.active].form); err != nil {
		return err
	}
	t.MarkChanged()
	return nil
}

// IsDirty reports a section's dirty flag.
func (t *Tracker) IsDirty(key models.SectionKey) bool {
	s, ok := t.sections[key]
	return ok && s.dirty
}

// HasUnsavedChanges reports whether any section is dirty.
func (t *Tracker) HasUnsavedChanges() bool {
	for _, s := range t.sections {
		if s.dirty {
			return true
		}
	}
	return false
}

// DirtySections lists the dirty sections in display order.
func (t *Tracker) DirtySections() []models.SectionKey {
	var out []models.SectionKey
	for _, key := range t.order {
		if t.sections[key].dirty {
			out = append(out, key)
		}
	}
	return out
}

// HasFormChanges compares the serialized form with the baseline.
func (t *Tracker) HasFormChanges(key models.SectionKey) bool {
	s, ok := t.sections[key]
	if !ok {
		return false
	}
	return !equalConfig(s.form.Serialize(), NewForm(s.schema, s.baseline).Serialize())
}

// Payload is the configuration to send when saving a section.
func (t *Tracker) Payload(key models.SectionKey) (models.SectionConfig, error) {
	s, err := t.section(key)
	if err != nil {
		return nil, err
	}
	return s.form.Serialize(), nil
}

// ApplySaved installs the server's response to a save as the new baseline,
// clears the dirty flag and reloads the form from it. An empty response
// keeps the payload that was sent.
func (t *Tracker) ApplySaved(key models.SectionKey, saved models.SectionConfig) (SaveResult, error) {
	s, err := t.section(key)
	if err != nil {
		return SaveResult{}, err
	}
	if len(saved) == 0 {
		saved = s.form.Serialize()
	}

	before := NewForm(s.schema, s.baseline)
	t.reset(key, saved)

	result := SaveResult{Section: key}
	if key == models.GeneralSection {
		result.ReloadRequired = before.Value(ReloadField) != s.form.Value(ReloadField)
	}

	log.WithFields(log.Fields{
		"section":         key,
		"reload_required": result.ReloadRequired,
	}).Info("Settings saved")
	return result, nil
}

// Save sends a section to the server. On failure the section stays dirty
// so the user can retry.
func (t *Tracker) Save(ctx context.Context, key models.SectionKey, saver Saver) (SaveResult, error) {
	payload, err := t.Payload(key)
	if err != nil {
		return SaveResult{}, err
	}
	saved, err := saver.SaveSection(ctx, key, payload)
	if err != nil {
		log.WithField("section", key).WithError(err).Warn("Settings save failed")
		return SaveResult{}, fmt.Errorf("failed to save %s settings: %w", key, err)
	}
	return t.ApplySaved(key, saved)
}

// Discard reloads a section's form from its baseline.
func (t *Tracker) Discard(key models.SectionKey) error {
	s, err := t.section(key)
	if err != nil {
		return err
	}
	t.reset(key, s.baseline)
	log.WithField("section", key).Info("Settings changes discarded")
	return nil
}

// CheckLeave decides whether leaving the active section needs
// confirmation: only when it is dirty and the form really differs.
func (t *Tracker) CheckLeave() LeaveDecision {
	if t.IsDirty(t.active) && t.HasFormChanges(t.active) {
		log.WithField("section", t.active).Debug("Leaving section with unsaved changes")
		return LeaveNeedsConfirm
	}
	return LeaveAllowed
}

// ResolveLeave records the user's answer to the leave prompt and reports
// whether navigation may proceed. Confirming clears the dirty flag even
// though the form keeps its edits; cancelling leaves everything as is.
func (t *Tracker) ResolveLeave(confirmed bool) bool {
	entry := log.WithField("section", t.active)
	if !confirmed {
		entry.Info("Navigation cancelled, keeping unsaved changes")
		return false
	}
	t.sections[t.active].dirty = false
	entry.Info("Navigation confirmed, unsaved changes abandoned")
	return true
}

// FieldChange is one difference between a form and its baseline.
type FieldChange struct {
	Field string
	Old   string
	New   string
}

// Diff lists the fields of a section whose form value differs from the
// baseline. Instance lists are reported as a single entry.
func (t *Tracker) Diff(key models.SectionKey) ([]FieldChange, error) {
	s, err := t.section(key)
	if err != nil {
		return nil, err
	}
	base := NewForm(s.schema, s.baseline)

	var changes []FieldChange
	for _, field := range s.schema.Fields {
		oldText, newText := base.Text(field.Name), s.form.Text(field.Name)
		if oldText == newText {
			continue
		}
		if field.Kind == KindSecret {
			oldText, newText = mask(oldText), mask(newText)
		}
		changes = append(changes, FieldChange{Field: field.Name, Old: oldText, New: newText})
	}
	if s.schema.Instances == MultiInstance {
		oldList := base.Serialize()[InstancesKey]
		newList := s.form.Serialize()[InstancesKey]
		if !equalConfig(models.SectionConfig{"v": oldList}, models.SectionConfig{"v": newList}) {
			changes = append(changes, FieldChange{
				Field: InstancesKey,
				Old:   fmt.Sprintf("%d configured", len(base.instances)),
				New:   fmt.Sprintf("%d configured (edited)", len(s.form.instances)),
			})
		}
	}
	return changes, nil
}

func (t *Tracker) section(key models.SectionKey) (*section, error) {
	s, ok := t.sections[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSection, key)
	}
	return s, nil
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	return "********"
}
