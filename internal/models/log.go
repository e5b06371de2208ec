package models

// StreamEntry is one line from the live log stream after classification.
// Only Raw, Source and Message are always set; the other fields are filled
// when the line matched the structured log format.
type StreamEntry struct {
	Raw       string
	Source    Source
	Tag       string
	Timestamp string
	Logger    string
	Level     string
	Message   string
}

// Structured reports whether the line matched the structured log format.
func (e StreamEntry) Structured() bool {
	return e.Timestamp != ""
}

// LogPage is one page of stored log lines returned by /api/logs/{app}.
type LogPage struct {
	Lines  []LogLine
	Total  int
	Offset int
	Limit  int
}

// LogLine is a stored log line ("timestamp|level|app|message" on the wire).
type LogLine struct {
	Timestamp string
	Level     string
	App       string
	Message   string
}
