package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/abelbrown/scroll/internal/content"
	"github.com/abelbrown/scroll/internal/otel"
	"github.com/abelbrown/scroll/internal/signals"
)

// loadAhead is how close to the end the cursor may get before the next
// batch is requested.
const loadAhead = 2

// Commands are the side effects the App can trigger. Any may be nil.
type Commands struct {
	Load   func() tea.Cmd
	Record func(item content.Item, action signals.Action) tea.Cmd
	Search func(query string) tea.Cmd
}

// App is the root Bubble Tea model.
// IMPORTANT: App does NOT hold the feed. It receives items via messages.
type App struct {
	cmds   Commands
	events *otel.Logger
	ring   *otel.RingBuffer

	items     []content.Item
	reactions map[string]signals.Action
	shown     map[string]bool // items already recorded as viewed
	cursor    int
	width     int
	height    int
	ready     bool
	loading   bool
	exhausted bool // last batch was empty; stop auto-loading until 'r'
	expanded  bool
	debug     bool
	notice    string

	input      textinput.Model
	typing     bool
	inResults  bool
	query      string
	feedItems  []content.Item
	feedCursor int

	spinner spinner.Model
}

// NewApp creates an App. events and ring may be nil.
func NewApp(cmds Commands, events *otel.Logger, ring *otel.RingBuffer) App {
	ti := textinput.New()
	ti.Placeholder = "Search articles and news..."
	ti.Prompt = "/ "
	ti.PromptStyle = StatusBarKey
	ti.CharLimit = 80

	s := spinner.New()
	s.Spinner = spinner.Dot

	return App{
		cmds:      cmds,
		events:    events,
		ring:      ring,
		reactions: make(map[string]signals.Action),
		shown:     make(map[string]bool),
		input:     ti,
		spinner:   s,
	}
}

// Init requests the first batch.
func (a App) Init() tea.Cmd {
	if a.cmds.Load == nil {
		return nil
	}
	return tea.Batch(a.cmds.Load(), a.spinner.Tick)
}

// Update handles messages and returns the updated model and any commands.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if otel.TraceEnabled() {
		a.events.Emit(otel.Event{Level: otel.LevelDebug, Kind: otel.KindMsgReceived, Comp: "ui", Msg: fmt.Sprintf("%T", msg)})
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if a.typing {
			return a.handleInput(msg)
		}
		return a.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.input.Width = max(10, msg.Width-10)
		a.ready = true
		return a, nil

	case BatchLoaded:
		a.loading = false
		fresh := a.appendFresh(msg.Items)
		if fresh == 0 {
			a.exhausted = true
			a.notice = "No more content right now. Press 'r' to try again."
			return a, nil
		}
		a.notice = ""
		// The cursor may already sit inside the new lookahead window.
		return a, tea.Batch(a.markShown(), a.maybeLoadMore())

	case SearchLoaded:
		if !a.inResults || msg.Query != a.query {
			return a, nil
		}
		a.loading = false
		a.items = msg.Items
		a.cursor = 0
		a.notice = ""
		if len(msg.Items) == 0 {
			a.notice = "No results for \"" + msg.Query + "\""
		}
		return a, a.markShown()

	case ActionRecorded:
		if msg.Action != signals.ActionView {
			a.reactions[msg.Key] = msg.Action
		}
		return a, nil

	case spinner.TickMsg:
		if !a.loading {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd
	}

	return a, nil
}

// appendFresh adds items not already in the feed and returns how many were
// added. While search results are shown the feed list is extended instead.
func (a *App) appendFresh(items []content.Item) int {
	target := &a.items
	if a.inResults {
		target = &a.feedItems
	}
	seen := make(map[string]bool, len(*target))
	for _, item := range *target {
		seen[item.Key()] = true
	}
	n := 0
	for _, item := range items {
		if seen[item.Key()] {
			continue
		}
		seen[item.Key()] = true
		*target = append(*target, item)
		n++
	}
	return n
}

// markShown records a view the first time an item sits under the cursor.
func (a *App) markShown() tea.Cmd {
	if a.cmds.Record == nil || a.cursor >= len(a.items) {
		return nil
	}
	item := a.items[a.cursor]
	if a.shown[item.Key()] {
		return nil
	}
	a.shown[item.Key()] = true
	return a.cmds.Record(item, signals.ActionView)
}

// maybeLoadMore requests the next batch when the cursor nears the end and
// no load is in flight.
func (a *App) maybeLoadMore() tea.Cmd {
	if a.cmds.Load == nil || a.loading || a.exhausted || a.inResults {
		return nil
	}
	if a.cursor < len(a.items)-1-loadAhead {
		return nil
	}
	a.loading = true
	return tea.Batch(a.cmds.Load(), a.spinner.Tick)
}

func (a App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	a.events.Emit(otel.Event{Level: otel.LevelDebug, Kind: otel.KindKeyPress, Comp: "ui", Msg: key, Position: a.cursor})

	switch key {
	case "q", "ctrl+c":
		return a, tea.Quit

	case "j", "down":
		if a.cursor < len(a.items)-1 {
			a.cursor++
			a.expanded = false
		}
		return a, tea.Batch(a.markShown(), a.maybeLoadMore())

	case "k", "up":
		if a.cursor > 0 {
			a.cursor--
			a.expanded = false
		}
		return a, a.markShown()

	case "g", "home":
		a.cursor = 0
		return a, a.markShown()

	case "G", "end":
		if len(a.items) > 0 {
			a.cursor = len(a.items) - 1
		}
		return a, tea.Batch(a.markShown(), a.maybeLoadMore())

	case "enter":
		a.expanded = !a.expanded && len(a.items) > 0
		return a, nil

	case "l":
		return a.react(signals.ActionLike)
	case "s":
		return a.react(signals.ActionSave)
	case "d":
		return a.react(signals.ActionDislike)
	case "x":
		return a.react(signals.ActionNeverShow)

	case "r":
		a.exhausted = false
		a.notice = ""
		if a.inResults || a.cmds.Load == nil || a.loading {
			return a, nil
		}
		a.loading = true
		return a, tea.Batch(a.cmds.Load(), a.spinner.Tick)

	case "/":
		a.typing = true
		a.input.SetValue("")
		a.input.Focus()
		return a, textinput.Blink

	case "esc":
		if a.inResults {
			a.leaveResults()
		}
		return a, nil

	case "?":
		a.debug = !a.debug
		return a, nil
	}

	return a, nil
}

// react records action on the selected item. Never-show also hides the
// remaining items of that kind below the cursor.
func (a App) react(action signals.Action) (tea.Model, tea.Cmd) {
	if a.cursor >= len(a.items) {
		return a, nil
	}
	item := a.items[a.cursor]
	if action == signals.ActionNeverShow {
		kept := a.items[:a.cursor+1:a.cursor+1]
		for _, it := range a.items[a.cursor+1:] {
			if it.Kind != item.Kind {
				kept = append(kept, it)
			}
		}
		a.items = kept
	}
	if a.cmds.Record == nil {
		a.reactions[item.Key()] = action
		return a, nil
	}
	return a, a.cmds.Record(item, action)
}

func (a App) handleInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.typing = false
		a.input.Blur()
		return a, nil

	case "enter":
		a.typing = false
		a.input.Blur()
		query := strings.TrimSpace(a.input.Value())
		if query == "" || a.cmds.Search == nil {
			return a, nil
		}
		if !a.inResults {
			a.feedItems, a.feedCursor = a.items, a.cursor
			a.inResults = true
		}
		a.query = query
		a.items, a.cursor, a.expanded = nil, 0, false
		a.loading = true
		return a, tea.Batch(a.cmds.Search(query), a.spinner.Tick)
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// leaveResults restores the feed as it was before searching.
func (a *App) leaveResults() {
	a.items, a.cursor = a.feedItems, a.feedCursor
	a.feedItems, a.feedCursor = nil, 0
	a.inResults = false
	a.query = ""
	a.loading = false
	a.expanded = false
	a.notice = ""
}

// View renders the UI.
func (a App) View() string {
	if !a.ready {
		return "Loading..."
	}

	status := RenderStatusBar(a.cursor, len(a.items), a.width, a.activity(), feedStatus(a.ring))
	if a.debug {
		return debugOverlay(a.ring, a.width, a.height-1) + "\n" + status
	}

	var top, bottom string
	switch {
	case a.typing:
		top = SearchBar.Width(a.width).Render(a.input.View()) + "\n"
	case a.inResults:
		top = SearchBar.Width(a.width).Render("Results for \""+a.query+"\"  (esc to return)") + "\n"
	}
	if a.expanded && a.cursor < len(a.items) {
		bottom = RenderDetail(a.items[a.cursor], a.width) + "\n"
	}
	if a.notice != "" {
		bottom += ErrorStyle.Width(a.width).Render(a.notice) + "\n"
	}

	streamHeight := a.height - 1 - strings.Count(top, "\n") - strings.Count(bottom, "\n")
	stream := RenderStream(a.items, a.cursor, a.width, streamHeight, a.reactions)
	return top + stream + bottom + status
}

func (a App) activity() string {
	switch {
	case a.typing:
		return "search"
	case a.loading:
		return a.spinner.View() + " loading"
	}
	return ""
}

// Cursor returns the current cursor position (for testing).
func (a App) Cursor() int {
	return a.cursor
}

// Items returns the current items (for testing).
func (a App) Items() []content.Item {
	return a.items
}

// Loading reports whether a batch or search is in flight.
func (a App) Loading() bool {
	return a.loading
}
