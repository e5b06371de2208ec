package stream

import (
	"regexp"
	"strings"

	"github.com/jharder01/Huntarr.io/internal/models"
)

// structuredLine matches "[TAG] 2024-01-01 12:00:00 - logger.name - LEVEL - message"
// with the tag optional.
var structuredLine = regexp.MustCompile(`^(?:\[(\w+)\]\s+)?(\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2})\s+-\s+([\w.\-]+)\s+-\s+(\w+)\s+-\s+(.*)$`)

type keywordRule struct {
	source  models.Source
	pattern *regexp.Regexp
}

// keywordRule matches whole words only, with an optional plural "s", so
// "author" does not match "Authorization".
func newKeywordRule(source models.Source, keywords ...string) keywordRule {
	quoted := make([]string, len(keywords))
	for i, kw := range keywords {
		quoted[i] = regexp.QuoteMeta(kw)
	}
	return keywordRule{
		source:  source,
		pattern: regexp.MustCompile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)s?\b`),
	}
}

// keywordRules are tried in order; the first application with a keyword
// present in the line wins.
var keywordRules = []keywordRule{
	newKeywordRule(models.SourceSonarr, "episode", "series", "season", "sonarr"),
	newKeywordRule(models.SourceRadarr, "movie", "film", "radarr"),
	newKeywordRule(models.SourceLidarr, "album", "artist", "track", "music", "lidarr"),
	newKeywordRule(models.SourceReadarr, "book", "author", "readarr"),
	newKeywordRule(models.SourceWhisparr, "whisparr", "scene"),
	newKeywordRule(models.SourceEros, "eros"),
	newKeywordRule(models.SourceSwaparr, "swaparr", "stalled", "strike"),
}

// Classify parses a raw stream line and decides which application it
// belongs to. It never fails: a line that does not parse keeps its text as
// the message and falls back to keyword matching, then to "system".
func Classify(raw string) models.StreamEntry {
	entry := models.StreamEntry{
		Raw:     raw,
		Source:  models.SourceSystem,
		Message: raw,
	}

	if m := structuredLine.FindStringSubmatch(raw); m != nil {
		entry.Tag = m[1]
		entry.Timestamp = m[2]
		entry.Logger = m[3]
		entry.Level = m[4]
		entry.Message = m[5]

		if entry.Tag != "" {
			entry.Source = models.Source(strings.ToLower(entry.Tag))
			return entry
		}
		if app, ok := loggerSource(entry.Logger); ok {
			entry.Source = app
			return entry
		}
	}

	if app, ok := keywordSource(raw); ok {
		entry.Source = app
	}
	return entry
}

// loggerSource looks for a known application among the dotted segments of
// a logger name ("huntarr.radarr.missing" -> radarr).
func loggerSource(logger string) (models.Source, bool) {
	for _, segment := range strings.Split(strings.ToLower(logger), ".") {
		if s := models.Source(segment); s.IsApp() {
			return s, true
		}
	}
	return "", false
}

func keywordSource(raw string) (models.Source, bool) {
	for _, rule := range keywordRules {
		if rule.pattern.MatchString(raw) {
			return rule.source, true
		}
	}
	return "", false
}
