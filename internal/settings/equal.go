package settings

import (
	"encoding/json"
	"reflect"

	"github.com/jharder01/Huntarr.io/internal/models"
)

// canonical round-trips v through JSON so values built in Go (int, typed
// slices, structs) compare equal to the same values decoded from the wire.
func canonical(v any) any {
	data, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return v
	}
	return out
}

func canonicalConfig(cfg models.SectionConfig) models.SectionConfig {
	out, ok := canonical(cfg).(map[string]any)
	if !ok {
		return models.SectionConfig{}
	}
	return out
}

// equalConfig compares two configurations structurally.
func equalConfig(a, b models.SectionConfig) bool {
	return reflect.DeepEqual(canonical(a), canonical(b))
}
