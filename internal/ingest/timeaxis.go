package ingest

import (
	"strings"
)

// Headers containing any of these substrings (case-insensitive) qualify as
// a chronological axis. Substring match, not whole-word: "Created_At" and
// "Zeitstempel" both qualify.
var axisKeywords = []string{"datum", "date", "zeit", "time", "timestamp", "created", "index"}

// DetectTimeAxis scans headers in order and returns the first one whose
// lower-cased form contains an axis keyword. ok is false when no header
// qualifies; choosing a display default is then a presentation concern.
func DetectTimeAxis(headers []string) (string, bool) {
	for _, header := range headers {
		lower := strings.ToLower(header)
		for _, keyword := range axisKeywords {
			if strings.Contains(lower, keyword) {
				return header, true
			}
		}
	}
	return "", false
}
