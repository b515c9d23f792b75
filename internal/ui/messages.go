// Package ui provides the Bubble Tea scroller for the mixed feed.
package ui

import (
	"github.com/abelbrown/scroll/internal/content"
	"github.com/abelbrown/scroll/internal/signals"
)

// BatchLoaded is sent when a feed batch comes back. An empty batch means
// the feed has nothing more right now.
type BatchLoaded struct {
	Items []content.Item
}

// SearchLoaded is sent when a search finishes.
type SearchLoaded struct {
	Query string
	Items []content.Item
}

// ActionRecorded is sent once a reaction has been handed to the feed.
type ActionRecorded struct {
	Key    string
	Action signals.Action
}
