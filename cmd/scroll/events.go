package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

var (
	eventsTail    int
	eventsFollow  bool
	eventsKind    string
	eventsLevel   string
	eventsComp    string
	eventsSession string
	eventsDate    string
	eventsJSON    bool
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Show the JSONL pipeline event log",
	Long: `Show recent pipeline events from events-YYYY-MM-DD.jsonl in the log
directory. Events are written while log.events is enabled (SCROLL_LOG_EVENTS=true)
or always by the viewer.

Examples:
  # Last 50 events
  scroll events

  # Follow fetch failures
  scroll events -f --kind feed.fetch_error

  # Warnings and errors from yesterday
  scroll events --level warn --date 2026-10-18`,
	Args: cobra.NoArgs,
	RunE: runEvents,
}

func init() {
	f := eventsCmd.Flags()
	f.IntVar(&eventsTail, "tail", 50, "number of recent lines to show")
	f.BoolVarP(&eventsFollow, "follow", "f", false, "follow mode (like tail -f)")
	f.StringVar(&eventsKind, "kind", "", "filter by event kind prefix (e.g. 'search')")
	f.StringVar(&eventsLevel, "level", "", "minimum level: debug, info, warn, error")
	f.StringVar(&eventsComp, "comp", "", "filter by component name")
	f.StringVar(&eventsSession, "session", "", "filter by feed session ID")
	f.StringVar(&eventsDate, "date", "", "log date YYYY-MM-DD (default today)")
	f.BoolVar(&eventsJSON, "json", false, "output raw JSON lines")
}

// eventRecord mirrors otel.Event for decoding. Decoding from JSONL instead
// of importing otel keeps old logs readable as the schema grows.
type eventRecord struct {
	Time    time.Time      `json:"t"`
	Level   string         `json:"level"`
	Kind    string         `json:"kind"`
	Comp    string         `json:"comp"`
	Session string         `json:"session"`
	User    string         `json:"user"`
	Mode    string         `json:"mode"`
	Pos     int            `json:"pos"`
	DurMs   float64        `json:"dur_ms"`
	Count   int            `json:"count"`
	Source  string         `json:"source"`
	Query   string         `json:"query"`
	Err     string         `json:"err"`
	Msg     string         `json:"msg"`
	Extra   map[string]any `json:"extra"`
}

// eventFilter selects which records are printed.
type eventFilter struct {
	kind    string
	level   string
	comp    string
	session string
}

func (f eventFilter) match(ev eventRecord) bool {
	if f.kind != "" && !strings.HasPrefix(ev.Kind, f.kind) {
		return false
	}
	if f.level != "" && levelRank(ev.Level) < levelRank(f.level) {
		return false
	}
	if f.comp != "" && ev.Comp != f.comp {
		return false
	}
	if f.session != "" && ev.Session != f.session {
		return false
	}
	return true
}

// levelRank returns a numeric rank for filtering (higher = more severe).
func levelRank(level string) int {
	switch level {
	case "info":
		return 1
	case "warn":
		return 2
	case "error":
		return 3
	default:
		return 0
	}
}

// eventLogPath returns the event log for date, or today when date is empty.
func eventLogPath(dir, date string) (string, error) {
	if date == "" {
		date = time.Now().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		return "", fmt.Errorf("invalid date %q: want YYYY-MM-DD", date)
	}
	return filepath.Join(dir, fmt.Sprintf("events-%s.jsonl", date)), nil
}

func runEvents(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logPath, err := eventLogPath(cfg.Log.Dir, eventsDate)
	if err != nil {
		return err
	}

	f, err := os.Open(logPath)
	if err != nil {
		return fmt.Errorf("event log not found at %s (run the viewer or enable log.events first): %w", logPath, err)
	}
	defer f.Close()

	out := cmd.OutOrStdout()
	filter := eventFilter{kind: eventsKind, level: eventsLevel, comp: eventsComp, session: eventsSession}
	format := formatEvent
	if eventsJSON {
		format = func(_ eventRecord, raw []byte) string { return string(raw) }
	}

	for _, l := range readTailLines(f, eventsTail, filter.match) {
		fmt.Fprintln(out, format(l.ev, l.raw))
	}
	if !eventsFollow {
		return nil
	}

	// Poll for new lines until interrupted.
	ctx := cmd.Context()
	reader := bufio.NewReader(f)
	for {
		line, err := reader.ReadBytes('\n')
		if err != nil {
			if err != io.EOF {
				return err
			}
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(100 * time.Millisecond):
			}
			continue
		}
		line = trimLine(line)
		if len(line) == 0 {
			continue
		}
		var ev eventRecord
		if json.Unmarshal(line, &ev) != nil {
			continue
		}
		if filter.match(ev) {
			fmt.Fprintln(out, format(ev, line))
		}
	}
}

// formatEvent renders one record as a single human-readable line.
func formatEvent(ev eventRecord, _ []byte) string {
	ts := ev.Time.Local().Format("15:04:05.000")
	lvl := strings.ToUpper(ev.Level)
	if lvl == "" {
		lvl = "?"
	}

	parts := []string{fmt.Sprintf("%s %-5s [%-5s] %-22s", ts, lvl, ev.Comp, ev.Kind)}

	if ev.Msg != "" {
		parts = append(parts, "- "+ev.Msg)
	}
	if ev.Mode != "" {
		parts = append(parts, "mode="+ev.Mode)
	}
	if ev.Pos > 0 {
		parts = append(parts, fmt.Sprintf("pos=%d", ev.Pos))
	}
	if ev.DurMs > 0 {
		parts = append(parts, fmt.Sprintf("(%.*fms)", durPrecision(ev.DurMs), ev.DurMs))
	}
	if ev.Count > 0 {
		parts = append(parts, fmt.Sprintf("n=%d", ev.Count))
	}
	if ev.Source != "" {
		parts = append(parts, "src="+ev.Source)
	}
	if ev.User != "" {
		parts = append(parts, "user="+ev.User)
	}
	if ev.Query != "" {
		parts = append(parts, fmt.Sprintf("q=%q", ev.Query))
	}
	if ev.Err != "" {
		parts = append(parts, "err="+ev.Err)
	}

	return strings.Join(parts, " ")
}

type parsedLine struct {
	ev  eventRecord
	raw []byte
}

// readTailLines reads r to the end and returns the last n lines matching
// the filter. Malformed lines are skipped.
func readTailLines(r io.Reader, n int, match func(eventRecord) bool) []parsedLine {
	if n <= 0 {
		return nil
	}
	scanner := bufio.NewScanner(r)
	// Allow large lines (some events may have big Extra maps)
	scanner.Buffer(make([]byte, 0, 64*1024), 256*1024)

	ring := make([]parsedLine, 0, n)
	for scanner.Scan() {
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		var ev eventRecord
		if json.Unmarshal(raw, &ev) != nil {
			continue
		}
		if !match(ev) {
			continue
		}
		// scanner reuses its buffer
		rawCopy := make([]byte, len(raw))
		copy(rawCopy, raw)

		if len(ring) < n {
			ring = append(ring, parsedLine{ev: ev, raw: rawCopy})
		} else {
			copy(ring, ring[1:])
			ring[n-1] = parsedLine{ev: ev, raw: rawCopy}
		}
	}
	return ring
}

func trimLine(b []byte) []byte {
	for len(b) > 0 && (b[len(b)-1] == '\n' || b[len(b)-1] == '\r') {
		b = b[:len(b)-1]
	}
	return b
}

func durPrecision(ms float64) int {
	if ms >= 100 {
		return 0
	}
	if ms >= 1 {
		return 1
	}
	return 2
}
