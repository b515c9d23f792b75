// Package curated holds the built-in datasets: filler content for every
// short-form kind plus offline stand-ins for Wikipedia and news.
package curated

import (
	"fmt"

	"github.com/abelbrown/scroll/internal/content"
	"github.com/abelbrown/scroll/internal/provider"
)

const commons = "https://upload.wikimedia.org/wikipedia/commons/thumb/"

// Fillers returns one static provider per filler kind, named after the kind.
func Fillers(rng content.Rand) []*provider.Static {
	out := make([]*provider.Static, 0, len(content.FillerKinds))
	for _, kind := range content.FillerKinds {
		out = append(out, provider.NewStatic(string(kind), Dataset(kind), rng))
	}
	return out
}

// Wiki returns the offline article set used when Wikipedia is unreachable.
func Wiki(rng content.Rand) *provider.Static {
	return provider.NewStatic("wiki-static", Dataset(content.KindWiki), rng)
}

// News returns the offline headline set.
func News(rng content.Rand) *provider.Static {
	return provider.NewStatic("news-static", Dataset(content.KindNews), rng)
}

// Dataset returns a copy of the built-in items for kind.
func Dataset(kind content.Kind) []content.Item {
	src := datasets[kind]
	out := make([]content.Item, len(src))
	for i, item := range src {
		item.Kind = kind
		if item.ID == "" {
			item.ID = fmt.Sprintf("%s-%d", kind, i+1)
		}
		if len(item.Attrs) > 0 {
			attrs := make(map[string]string, len(item.Attrs))
			for k, v := range item.Attrs {
				attrs[k] = v
			}
			item.Attrs = attrs
		}
		out[i] = item
	}
	return out
}

func attrs(kv ...string) map[string]string {
	m := make(map[string]string, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		m[kv[i]] = kv[i+1]
	}
	return m
}
