package models

// AppStats are the per-application counters kept by the server.
type AppStats struct {
	Hunted   int `json:"hunted"`
	Upgraded int `json:"upgraded"`
}

// Stats maps an application to its counters.
type Stats map[Source]AppStats

// Clone returns a copy that can be mutated independently.
func (s Stats) Clone() Stats {
	out := make(Stats, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}
