package research

import "strings"

const titleKeyLen = 30

// Dedupe merges incoming results into existing, dropping near-duplicates.
// The composite key is the URL concatenated with the lowercased title
// truncated to its first 30 characters, which collapses exact URL repeats
// as well as re-indexed copies of the same page. Order is preserved and the
// first occurrence wins.
func Dedupe(existing, incoming []SearchResult) []SearchResult {
	merged := make([]SearchResult, 0, len(existing)+len(incoming))
	seen := make(map[string]bool, len(existing)+len(incoming))

	for _, r := range existing {
		key := dedupeKey(r)
		if seen[key] {
			continue
		}
		seen[key] = true
		merged = append(merged, r)
	}
	for _, r := range incoming {
		key := dedupeKey(r)
		if seen[key] {
			continue
		}
		seen[key] = true
		merged = append(merged, r)
	}
	return merged
}

func dedupeKey(r SearchResult) string {
	title := strings.ToLower(r.Title)
	if runes := []rune(title); len(runes) > titleKeyLen {
		title = string(runes[:titleKeyLen])
	}
	return r.URL + "::" + title
}
