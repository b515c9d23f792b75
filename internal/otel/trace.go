package otel

import (
	"os"
	"strings"
	"sync/atomic"
)

// TraceEnvVar turns on per-message tracing in the viewer. Any value other
// than empty, "0", "false" or "off" enables it.
const TraceEnvVar = "SCROLL_TRACE"

var traceEnabled atomic.Bool

func init() {
	traceEnabled.Store(parseTrace(os.Getenv(TraceEnvVar)))
}

func parseTrace(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "0", "false", "off":
		return false
	}
	return true
}

// TraceEnabled reports whether trace.msg_received events should be emitted.
func TraceEnabled() bool {
	return traceEnabled.Load()
}

func setTraceEnabled(v bool) {
	traceEnabled.Store(v)
}
