package content

import "strings"

// PlaceholderMarker marks a stand-in image URL. Items carrying it never
// reach the caller.
const PlaceholderMarker = "placeholder"

// HasRealImage reports whether the item has an image that is not a placeholder.
func HasRealImage(item Item) bool {
	img := strings.TrimSpace(item.Image)
	if img == "" {
		return false
	}
	return !strings.Contains(strings.ToLower(img), PlaceholderMarker)
}

// DropPlaceholders removes items without a real image. Order is preserved.
func DropPlaceholders(items []Item) []Item {
	result := make([]Item, 0, len(items))
	for _, item := range items {
		if HasRealImage(item) {
			result = append(result, item)
		}
	}
	return result
}

// Dedup removes repeated items by Key. First occurrence wins.
func Dedup(items []Item) []Item {
	seen := make(map[string]bool, len(items))
	result := make([]Item, 0, len(items))
	for _, item := range items {
		k := item.Key()
		if seen[k] {
			continue
		}
		seen[k] = true
		result = append(result, item)
	}
	return result
}

// CountKind returns how many items have the given kind.
func CountKind(items []Item, kind Kind) int {
	n := 0
	for _, item := range items {
		if item.Kind == kind {
			n++
		}
	}
	return n
}

// Matches reports whether every whitespace-separated term of query appears
// in the item's title, body, category or tags. Case-insensitive.
func Matches(item Item, query string) bool {
	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 {
		return false
	}
	hay := strings.ToLower(item.Title + " " + item.Body + " " + item.Category + " " + strings.Join(item.Tags, " "))
	for _, term := range terms {
		if !strings.Contains(hay, term) {
			return false
		}
	}
	return true
}
