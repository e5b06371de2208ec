package settings

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jharder01/Huntarr.io/internal/models"
)

// Kind is the value type of a settings field.
type Kind int

const (
	KindText Kind = iota
	KindSecret
	KindBool
	KindInt
	KindSelect
)

// InstanceMode says how a section stores its application connections.
type InstanceMode int

const (
	// NoInstances sections have no connection fields.
	NoInstances InstanceMode = iota
	// SingleInstance sections keep one implicit connection in the top-level
	// api_url and api_key fields.
	SingleInstance
	// MultiInstance sections keep a list of named instances.
	MultiInstance
)

// MaxInstances is the most instances a MultiInstance section may hold.
const MaxInstances = 9

// InstancesKey is the section key holding the instance list.
const InstancesKey = "instances"

// ReloadField is the general setting whose change requires reloading
// everything from the server after a save.
const ReloadField = "local_access_bypass"

// Field describes one setting.
type Field struct {
	Name    string
	Label   string
	Kind    Kind
	Default any
	Options []string
	Min     *int
	Max     *int
}

// Schema is the field layout of one section.
type Schema struct {
	Key       models.SectionKey
	Label     string
	Fields    []Field
	Instances InstanceMode
}

// Field returns the field called name.
func (s *Schema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Parse converts user text to the field's value type and validates it.
func (f Field) Parse(text string) (any, error) {
	text = strings.TrimSpace(text)
	switch f.Kind {
	case KindBool:
		b, err := strconv.ParseBool(text)
		if err != nil {
			switch strings.ToLower(text) {
			case "yes", "on", "y":
				return true, nil
			case "no", "off", "n":
				return false, nil
			}
			return nil, fmt.Errorf("%s: %q is not true or false", f.Name, text)
		}
		return b, nil

	case KindInt:
		n, err := strconv.Atoi(text)
		if err != nil {
			return nil, fmt.Errorf("%s: %q is not a whole number", f.Name, text)
		}
		if f.Min != nil && n < *f.Min {
			return nil, fmt.Errorf("%s: must be at least %d", f.Name, *f.Min)
		}
		if f.Max != nil && n > *f.Max {
			return nil, fmt.Errorf("%s: must be at most %d", f.Name, *f.Max)
		}
		return n, nil

	case KindSelect:
		for _, opt := range f.Options {
			if strings.EqualFold(opt, text) {
				return opt, nil
			}
		}
		return nil, fmt.Errorf("%s: %q is not one of %s", f.Name, text, strings.Join(f.Options, ", "))

	default:
		return text, nil
	}
}

// Format renders a value for display and editing.
func (f Field) Format(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}

// coerce converts a value decoded from JSON to the field's Go type. Values
// of the wrong type fall back to the default.
func (f Field) coerce(v any) any {
	switch f.Kind {
	case KindBool:
		switch x := v.(type) {
		case bool:
			return x
		case string:
			if b, err := strconv.ParseBool(x); err == nil {
				return b
			}
		}
	case KindInt:
		switch x := v.(type) {
		case int:
			return x
		case float64:
			return int(x)
		case string:
			if n, err := strconv.Atoi(x); err == nil {
				return n
			}
		}
	default:
		if s, ok := v.(string); ok {
			return s
		}
	}
	return f.Default
}

func intp(n int) *int { return &n }

func textField(name, label, def string) Field {
	return Field{Name: name, Label: label, Kind: KindText, Default: def}
}

func secretField(name, label string) Field {
	return Field{Name: name, Label: label, Kind: KindSecret, Default: ""}
}

func boolField(name, label string, def bool) Field {
	return Field{Name: name, Label: label, Kind: KindBool, Default: def}
}

func intField(name, label string, def, lo int) Field {
	return Field{Name: name, Label: label, Kind: KindInt, Default: def, Min: intp(lo)}
}

func selectField(name, label, def string, options ...string) Field {
	return Field{Name: name, Label: label, Kind: KindSelect, Default: def, Options: options}
}

func huntFields(missing, upgrade string) []Field {
	return []Field{
		intField(missing, "Missing items to search", 1, 0),
		intField(upgrade, "Upgrade items to search", 0, 0),
	}
}

func cycleFields(extra ...Field) []Field {
	fields := append([]Field{}, extra...)
	return append(fields,
		intField("sleep_duration", "Sleep duration (s)", 900, 60),
		boolField("monitored_only", "Monitored only", true),
		intField("hourly_cap", "API cap per hour", 20, 1),
	)
}

var schemas = []*Schema{
	{
		Key:   models.GeneralSection,
		Label: "General",
		Fields: []Field{
			textField("timezone", "Timezone", "UTC"),
			intField("api_timeout", "API timeout (s)", 120, 10),
			intField("command_wait_delay", "Command wait delay (s)", 1, 1),
			intField("command_wait_attempts", "Command wait attempts", 600, 0),
			{Name: "minimum_download_queue_size", Label: "Max download queue size", Kind: KindInt, Default: -1, Min: intp(-1)},
			boolField("ssl_verify", "Verify SSL", true),
			boolField("debug_mode", "Debug mode", false),
			boolField(ReloadField, "Local network auth bypass", false),
			boolField("proxy_auth_bypass", "Proxy auth bypass", false),
		},
	},
	{
		Key:       "sonarr",
		Label:     "Sonarr",
		Instances: MultiInstance,
		Fields: cycleFields(append(huntFields("hunt_missing_items", "hunt_upgrade_items"),
			selectField("hunt_missing_mode", "Missing search mode", "seasons_packs", "seasons_packs", "shows", "episodes"),
			boolField("skip_future_episodes", "Skip future episodes", true),
		)...),
	},
	{
		Key:       "radarr",
		Label:     "Radarr",
		Instances: MultiInstance,
		Fields: cycleFields(append(huntFields("hunt_missing_movies", "hunt_upgrade_movies"),
			boolField("skip_future_releases", "Skip future releases", true),
		)...),
	},
	{
		Key:       "lidarr",
		Label:     "Lidarr",
		Instances: MultiInstance,
		Fields: cycleFields(append(huntFields("hunt_missing_items", "hunt_upgrade_items"),
			selectField("hunt_missing_mode", "Missing search mode", "album", "album"),
		)...),
	},
	{
		Key:       "readarr",
		Label:     "Readarr",
		Instances: MultiInstance,
		Fields: cycleFields(append(huntFields("hunt_missing_books", "hunt_upgrade_books"),
			boolField("skip_future_releases", "Skip future releases", true),
		)...),
	},
	{
		Key:       "whisparr",
		Label:     "Whisparr",
		Instances: SingleInstance,
		Fields: cycleFields(append([]Field{
			textField("api_url", "URL", ""),
			secretField("api_key", "API key"),
		}, huntFields("hunt_missing_items", "hunt_upgrade_items")...)...),
	},
	{
		Key:       "eros",
		Label:     "Eros",
		Instances: MultiInstance,
		Fields: cycleFields(append(huntFields("hunt_missing_items", "hunt_upgrade_items"),
			selectField("search_mode", "Search mode", "movie", "movie", "scene"),
		)...),
	},
	{
		Key:   "swaparr",
		Label: "Swaparr",
		Fields: []Field{
			boolField("enabled", "Enabled", false),
			intField("max_strikes", "Max strikes", 3, 1),
			textField("max_download_time", "Max download time", "2h"),
			textField("ignore_above_size", "Ignore above size", "25GB"),
			boolField("remove_from_client", "Remove from client", true),
			boolField("dry_run", "Dry run", false),
		},
	},
}

// Schemas returns every section schema in display order.
func Schemas() []*Schema {
	return schemas
}

// SchemaFor returns the schema of section key.
func SchemaFor(key models.SectionKey) (*Schema, error) {
	for _, s := range schemas {
		if s.Key == key {
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownSection, key)
}
