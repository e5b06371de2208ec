package settings

import (
	"fmt"
	"strconv"

	"github.com/jharder01/Huntarr.io/internal/models"
)

// Form is the editable state of one section.
type Form struct {
	schema    *Schema
	values    map[string]any
	instances []models.Instance

	// extra holds keys the schema does not know about so they survive a
	// round trip to the server untouched.
	extra map[string]any
}

// NewForm fills a form from a section configuration. Missing or mistyped
// fields take their defaults.
func NewForm(schema *Schema, cfg models.SectionConfig) *Form {
	cfg = canonicalConfig(cfg)
	f := &Form{
		schema: schema,
		values: make(map[string]any, len(schema.Fields)),
		extra:  make(map[string]any),
	}
	for _, field := range schema.Fields {
		if v, ok := cfg[field.Name]; ok {
			f.values[field.Name] = field.coerce(v)
		} else {
			f.values[field.Name] = field.Default
		}
	}
	for k, v := range cfg {
		if _, known := schema.Field(k); known {
			continue
		}
		if k == InstancesKey && schema.Instances == MultiInstance {
			continue
		}
		f.extra[k] = v
	}
	if schema.Instances == MultiInstance {
		f.instances = decodeInstances(cfg[InstancesKey])
	}
	return f
}

// Schema returns the section's schema.
func (f *Form) Schema() *Schema {
	return f.schema
}

// Value returns a field's current value.
func (f *Form) Value(name string) any {
	return f.values[name]
}

// Text returns a field's current value formatted for editing.
func (f *Form) Text(name string) string {
	field, ok := f.schema.Field(name)
	if !ok {
		return ""
	}
	return field.Format(f.values[name])
}

// Set parses text into the named field.
func (f *Form) Set(name, text string) error {
	field, ok := f.schema.Field(name)
	if !ok {
		return fmt.Errorf("%w: %s.%s", ErrUnknownField, f.schema.Key, name)
	}
	v, err := field.Parse(text)
	if err != nil {
		return err
	}
	f.values[name] = v
	return nil
}

// Toggle flips a boolean field.
func (f *Form) Toggle(name string) error {
	field, ok := f.schema.Field(name)
	if !ok || field.Kind != KindBool {
		return fmt.Errorf("%w: %s.%s is not a switch", ErrUnknownField, f.schema.Key, name)
	}
	b, _ := f.values[name].(bool)
	f.values[name] = !b
	return nil
}

// Instances returns a copy of the instance list.
func (f *Form) Instances() []models.Instance {
	return append([]models.Instance(nil), f.instances...)
}

// AddInstance appends an enabled instance named "Instance N".
func (f *Form) AddInstance() error {
	if f.schema.Instances != MultiInstance {
		return fmt.Errorf("%w: %s", ErrNoInstances, f.schema.Key)
	}
	if len(f.instances) >= MaxInstances {
		return fmt.Errorf("%w: %s already has %d", ErrInstanceLimit, f.schema.Key, MaxInstances)
	}
	f.instances = append(f.instances, models.Instance{
		Name:    defaultInstanceName(len(f.instances)),
		Enabled: true,
	})
	return nil
}

// RemoveInstance deletes instance i. The last instance cannot be removed.
func (f *Form) RemoveInstance(i int) error {
	if f.schema.Instances != MultiInstance {
		return fmt.Errorf("%w: %s", ErrNoInstances, f.schema.Key)
	}
	if i < 0 || i >= len(f.instances) {
		return fmt.Errorf("%w: %d", ErrInstanceIndex, i)
	}
	if len(f.instances) <= 1 {
		return ErrLastInstance
	}
	f.instances = append(f.instances[:i], f.instances[i+1:]...)
	return nil
}

// SetInstanceField edits one attribute of instance i. name is one of
// "name", "api_url", "api_key" or "enabled".
func (f *Form) SetInstanceField(i int, name, text string) error {
	if f.schema.Instances != MultiInstance {
		return fmt.Errorf("%w: %s", ErrNoInstances, f.schema.Key)
	}
	if i < 0 || i >= len(f.instances) {
		return fmt.Errorf("%w: %d", ErrInstanceIndex, i)
	}
	inst := &f.instances[i]
	switch name {
	case "name":
		inst.Name = text
	case "api_url":
		inst.URL = text
	case "api_key":
		inst.APIKey = text
	case "enabled":
		b, err := strconv.ParseBool(text)
		if err != nil {
			return fmt.Errorf("enabled: %q is not true or false", text)
		}
		inst.Enabled = b
	default:
		return fmt.Errorf("%w: instance field %s", ErrUnknownField, name)
	}
	return nil
}

// Serialize produces the canonical configuration for the form: every
// schema field, unknown keys carried over, and for instance lists one
// {name, api_url, api_key, enabled} object per instance.
func (f *Form) Serialize() models.SectionConfig {
	cfg := make(models.SectionConfig, len(f.values)+len(f.extra)+1)
	for k, v := range f.extra {
		cfg[k] = v
	}
	for k, v := range f.values {
		cfg[k] = v
	}
	if f.schema.Instances == MultiInstance {
		list := make([]any, 0, len(f.instances))
		for i, inst := range f.instances {
			name := inst.Name
			if name == "" {
				name = defaultInstanceName(i)
			}
			list = append(list, map[string]any{
				"name":    name,
				"api_url": inst.URL,
				"api_key": inst.APIKey,
				"enabled": inst.Enabled,
			})
		}
		cfg[InstancesKey] = list
	}
	return cfg
}

func defaultInstanceName(i int) string {
	return fmt.Sprintf("Instance %d", i+1)
}

func decodeInstances(v any) []models.Instance {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]models.Instance, 0, len(list))
	for _, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		inst := models.Instance{Enabled: true}
		inst.Name, _ = m["name"].(string)
		inst.URL, _ = m["api_url"].(string)
		inst.APIKey, _ = m["api_key"].(string)
		if enabled, ok := m["enabled"].(bool); ok {
			inst.Enabled = enabled
		}
		out = append(out, inst)
	}
	return out
}
