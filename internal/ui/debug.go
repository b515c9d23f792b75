package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/abelbrown/scroll/internal/otel"
)

// debugPanelChrome is the number of lines DebugPanel's border and padding
// take. Must be updated if DebugPanel style changes.
const debugPanelChrome = 4

// debugOverlay renders feed stats and recent events. Returns "" for a nil ring.
func debugOverlay(ring *otel.RingBuffer, width, height int) string {
	if ring == nil {
		return ""
	}

	stats := ring.Stats()
	var lines []string
	lines = append(lines, DebugHeaderStyle.Render("Feed Stats"))
	lines = append(lines, fmt.Sprintf("  Batches:    %d composed, %d fallback",
		stats[otel.KindCompose], stats[otel.KindFallback]))
	lines = append(lines, fmt.Sprintf("  Fetches:    %d ok, %d errors",
		stats[otel.KindFetch], stats[otel.KindFetchError]))
	lines = append(lines, fmt.Sprintf("  Searches:   %d started, %d complete, %d skipped",
		stats[otel.KindSearchStart], stats[otel.KindSearchComplete], stats[otel.KindSearchSkip]))
	lines = append(lines, fmt.Sprintf("  Actions:    %d", stats[otel.KindAction]))
	lines = append(lines, fmt.Sprintf("  Buffer:     %d / %d events", ring.Len(), ring.Cap()))
	lines = append(lines, "")

	lines = append(lines, DebugHeaderStyle.Render("Recent Events"))
	for _, e := range ring.Last(20) {
		line := fmt.Sprintf("  %6s  %-18s", formatAge(time.Since(e.Time)), string(e.Kind))
		if e.Source != "" {
			line += "  " + truncateRunes(e.Source, 12)
		}
		if e.Count > 0 {
			line += fmt.Sprintf("  n=%d", e.Count)
		}
		if e.Msg != "" {
			line += "  " + truncateRunes(e.Msg, 30)
		}
		if e.Err != "" {
			line += "  ERR:" + truncateRunes(e.Err, 30)
		}
		lines = append(lines, line)
	}

	maxHeight := max(1, height-debugPanelChrome)
	if len(lines) > maxHeight {
		lines = lines[:maxHeight]
	}
	panelWidth := max(20, min(76, width-4))
	return DebugPanel.Width(panelWidth).Render(strings.Join(lines, "\n"))
}

// formatAge formats a duration compactly. Negative durations from clock
// skew clamp to "0ms".
func formatAge(d time.Duration) string {
	if d < 0 {
		return "0ms"
	}
	switch {
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	default:
		return fmt.Sprintf("%.0fm", d.Minutes())
	}
}

// feedStatus summarizes the newest batch or reaction for the status bar.
func feedStatus(ring *otel.RingBuffer) string {
	if ring == nil {
		return ""
	}
	var e otel.Event
	found := false
	for _, kind := range []otel.EventKind{otel.KindCompose, otel.KindAction} {
		if ev, ok := ring.Latest(string(kind)); ok && (!found || ev.Time.After(e.Time)) {
			e, found = ev, true
		}
	}
	if !found {
		return ""
	}
	if e.Kind == otel.KindAction {
		if e.Err != "" {
			return "could not save " + e.Msg
		}
		return "saved " + e.Msg
	}
	return fmt.Sprintf("%s batch: %d items (%s) in %s", e.Mode, e.Count, e.Msg, e.Dur.Round(time.Millisecond))
}
