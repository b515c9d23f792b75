// Package otel records structured pipeline events for scroll.
//
// Events are serialized as JSONL lines by an async Logger. An optional
// RingBuffer keeps the most recent events in memory for the viewer's
// status line.
package otel

import (
	"time"

	json "github.com/goccy/go-json"
)

// Level defines event severity for filtering.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// EventKind identifies the category of an event.
// Dot-delimited: "<subsystem>.<action>".
type EventKind string

const (
	// Composition
	KindPlan       EventKind = "feed.plan"
	KindFetch      EventKind = "feed.fetch"
	KindFetchError EventKind = "feed.fetch_error"
	KindCompose    EventKind = "feed.compose"
	KindFallback   EventKind = "feed.fallback"
	KindAction     EventKind = "feed.action"

	// Search
	KindSearchStart    EventKind = "search.start"
	KindSearchComplete EventKind = "search.complete"
	KindSearchSkip     EventKind = "search.skip"

	// Background source refresh
	KindRefresh      EventKind = "source.refresh"
	KindRefreshError EventKind = "source.refresh_error"

	// Store
	KindStoreError EventKind = "store.error"

	// Viewer
	KindKeyPress EventKind = "ui.key"

	// System
	KindStartup  EventKind = "sys.startup"
	KindShutdown EventKind = "sys.shutdown"
	KindError    EventKind = "sys.error"

	// Emitted only when TraceEnabled.
	KindMsgReceived EventKind = "trace.msg_received"
)

// Event is one pipeline record. Every field except Kind and Time is
// optional. Serialized as a single JSONL line.
type Event struct {
	Time     time.Time      `json:"t"`
	Level    Level          `json:"level,omitempty"`
	Kind     EventKind      `json:"kind"`
	Comp     string         `json:"comp,omitempty"` // "feed", "ui", "main"
	RunID    string         `json:"run_id,omitempty"`
	Session  string         `json:"session,omitempty"` // feed.Session ID
	User     string         `json:"user,omitempty"`
	Mode     string         `json:"mode,omitempty"` // "mixed", "algorithmic", "search"
	Position int            `json:"pos,omitempty"`
	Dur      time.Duration  `json:"-"`
	DurMs    float64        `json:"dur_ms,omitempty"` // computed from Dur at marshal time
	Count    int            `json:"count,omitempty"`
	Source   string         `json:"source,omitempty"` // provider name
	Query    string         `json:"query,omitempty"`
	Err      string         `json:"err,omitempty"`
	Msg      string         `json:"msg,omitempty"`
	Extra    map[string]any `json:"extra,omitempty"`
}

// MarshalJSON converts Dur to DurMs.
func (e Event) MarshalJSON() ([]byte, error) {
	type alias Event
	a := alias(e)
	if e.Dur > 0 {
		a.DurMs = float64(e.Dur) / float64(time.Millisecond)
	}
	return json.Marshal(a)
}
