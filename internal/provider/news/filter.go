package news

import (
	"sort"
	"strings"
	"time"

	"github.com/abelbrown/scroll/internal/content"
)

// wirePrefixes are stripped before comparing titles, so "Breaking: X" and
// "X" count as the same story.
var wirePrefixes = []string{
	"breaking:",
	"breaking news:",
	"update:",
	"updated:",
	"exclusive:",
	"watch:",
	"live:",
	"opinion:",
	"analysis:",
}

func normalizeTitle(title string) string {
	normalized := strings.ToLower(strings.TrimSpace(title))
	for _, prefix := range wirePrefixes {
		if strings.HasPrefix(normalized, prefix) {
			normalized = strings.TrimSpace(strings.TrimPrefix(normalized, prefix))
			break // Only remove one prefix
		}
	}
	return normalized
}

// dedupStories drops repeated URLs and near-identical titles across
// sources. First occurrence wins.
func dedupStories(items []content.Item) []content.Item {
	seenURLs := make(map[string]bool)
	seenTitles := make(map[string]bool)
	out := make([]content.Item, 0, len(items))

	for _, item := range items {
		if item.URL != "" && seenURLs[item.URL] {
			continue
		}
		title := normalizeTitle(item.Title)
		if title != "" && seenTitles[title] {
			continue
		}
		if item.URL != "" {
			seenURLs[item.URL] = true
		}
		if title != "" {
			seenTitles[title] = true
		}
		out = append(out, item)
	}
	return out
}

// byAge removes headlines published before now-maxAge. A zero maxAge keeps
// everything.
func byAge(items []content.Item, maxAge time.Duration, now time.Time) []content.Item {
	if maxAge <= 0 {
		return items
	}
	cutoff := now.Add(-maxAge)
	out := make([]content.Item, 0, len(items))
	for _, item := range items {
		if item.PublishedAt.After(cutoff) {
			out = append(out, item)
		}
	}
	return out
}

// newestFirst sorts by PublishedAt DESC. Stable so ties keep source order.
func newestFirst(items []content.Item) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].PublishedAt.After(items[j].PublishedAt)
	})
}

// capSource keeps a source's newest items so a chatty feed cannot crowd
// out the rest. Zero maxPerSource means no cap. Sorts items in place.
func capSource(items []content.Item, maxPerSource int) []content.Item {
	newestFirst(items)
	if maxPerSource > 0 && len(items) > maxPerSource {
		items = items[:maxPerSource]
	}
	return items
}
