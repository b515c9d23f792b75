package news

import (
	"testing"
	"time"

	"github.com/abelbrown/scroll/internal/content"
)

func headline(id, title, url string) content.Item {
	return content.Item{ID: id, Kind: content.KindNews, Title: title, URL: url}
}

func ids(items []content.Item) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.ID
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Storm Hits Coast", "storm hits coast"},
		{"  BREAKING: Storm hits coast ", "storm hits coast"},
		{"Update: Breaking: Storm", "breaking: storm"},
		{"Analysis:Markets", "markets"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := normalizeTitle(tt.in); got != tt.want {
			t.Errorf("normalizeTitle(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDedupStories(t *testing.T) {
	items := []content.Item{
		headline("1", "Storm hits coast", "https://a.example/storm"),
		headline("2", "Breaking: Storm hits coast", "https://b.example/storm"),
		headline("3", "Different story", "https://a.example/storm"),
		headline("4", "Markets rally", ""),
		headline("5", "", ""),
		headline("6", "", ""),
	}
	got := ids(dedupStories(items))
	want := []string{"1", "4", "5", "6"}
	if !equalIDs(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestByAge(t *testing.T) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	items := []content.Item{
		{ID: "fresh", PublishedAt: now.Add(-time.Hour)},
		{ID: "stale", PublishedAt: now.Add(-72 * time.Hour)},
		{ID: "edge", PublishedAt: now.Add(-48 * time.Hour)},
	}

	if got := ids(byAge(items, 48*time.Hour, now)); !equalIDs(got, []string{"fresh"}) {
		t.Errorf("unexpected survivors %v", got)
	}
	if got := byAge(items, 0, now); len(got) != 3 {
		t.Errorf("zero max age should keep everything, got %d", len(got))
	}
}

func TestCapSource(t *testing.T) {
	base := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	items := func() []content.Item {
		return []content.Item{
			{ID: "old", PublishedAt: base.Add(-3 * time.Hour)},
			{ID: "new", PublishedAt: base},
			{ID: "mid", PublishedAt: base.Add(-time.Hour)},
		}
	}

	tests := []struct {
		name string
		max  int
		want []string
	}{
		{"no cap", 0, []string{"new", "mid", "old"}},
		{"cap two", 2, []string{"new", "mid"}},
		{"cap above size", 10, []string{"new", "mid", "old"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(capSource(items(), tt.max))
			if !equalIDs(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}
