// Package content defines the unit of feed content shared by every stage of
// the composition pipeline.
package content

import (
	"strings"
	"time"
)

// Kind identifies which content variant an Item is.
type Kind string

const (
	KindNews    Kind = "news"
	KindWiki    Kind = "wiki"
	KindFact    Kind = "fact"
	KindQuote   Kind = "quote"
	KindMovie   Kind = "movie"
	KindTVShow  Kind = "tvshow"
	KindSong    Kind = "song"
	KindAlbum   Kind = "album"
	KindStock   Kind = "stock"
	KindWeather Kind = "weather"
	KindHistory Kind = "history"
	KindPicture Kind = "picture"
)

// FillerKinds are the short-form kinds sprinkled between articles.
var FillerKinds = []Kind{
	KindFact, KindQuote, KindMovie, KindTVShow, KindSong,
	KindAlbum, KindStock, KindWeather, KindHistory, KindPicture,
}

// ParseKind maps a user-supplied name onto a Kind.
// Plural and legacy names ("facts", "article") are accepted.
func ParseKind(s string) (Kind, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "article", "articles", "wikipedia", "regular":
		return KindWiki, true
	case "tv", "tvshows", "show", "shows":
		return KindTVShow, true
	case "music", "songs":
		return KindSong, true
	case "stocks":
		return KindStock, true
	case "pictures", "featured-picture", "featured_picture":
		return KindPicture, true
	}
	s = strings.TrimSuffix(s, "s")
	for _, k := range append([]Kind{KindNews, KindWiki}, FillerKinds...) {
		if string(k) == s || string(k) == s+"s" {
			return k, true
		}
	}
	return "", false
}

// Item is one unit of feed content. Kind decides which of the optional
// fields are meaningful; the common fields are always set by providers.
type Item struct {
	ID       string `json:"id"` // unique within Kind only
	Kind     Kind   `json:"kind"`
	Title    string `json:"title"`
	Body     string `json:"body,omitempty"`
	Image    string `json:"image,omitempty"`
	URL      string `json:"url,omitempty"`
	Category string `json:"category,omitempty"`

	// news
	PublishedAt time.Time `json:"published_at,omitempty"`
	Source      string    `json:"source,omitempty"`
	IsBreaking  bool      `json:"is_breaking,omitempty"`

	// wiki
	Views     int      `json:"views,omitempty"`
	ReadTime  int      `json:"read_time,omitempty"` // minutes
	Tags      []string `json:"tags,omitempty"`
	Citations int      `json:"citations,omitempty"`

	// Attrs carries filler-specific fields, e.g. stock symbol/price/change.
	Attrs map[string]string `json:"attrs,omitempty"`
}

// Key returns the identity of the item across kinds.
func (i Item) Key() string {
	return string(i.Kind) + ":" + i.ID
}

// Attr returns a filler attribute or "".
func (i Item) Attr(name string) string {
	if i.Attrs == nil {
		return ""
	}
	return i.Attrs[name]
}
