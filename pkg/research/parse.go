package research

import (
	"regexp"
	"strings"
)

// listMarker matches leading numbering ("1.", "2)") and bullet markers
// ("-", "*", "•") that models tend to prepend despite instructions.
var listMarker = regexp.MustCompile(`^\s*(?:\d+[.)]\s*|[-*•]\s*)`)

// parseList extracts usable lines from a newline-separated model response.
// Markers are stripped, lines shorter than minLen runes are discarded, and
// the result is capped at max entries.
func parseList(raw string, minLen, max int) []string {
	var items []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(listMarker.ReplaceAllString(line, ""))
		if len([]rune(line)) < minLen {
			continue
		}
		items = append(items, line)
		if len(items) >= max {
			break
		}
	}
	return items
}
