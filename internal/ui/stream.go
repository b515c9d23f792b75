package ui

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/abelbrown/scroll/internal/content"
	"github.com/abelbrown/scroll/internal/signals"
)

// badgeWidth is the fixed column the kind badge occupies.
const badgeWidth = 9

// RenderStream renders the visible window of items, keeping the cursor in view.
func RenderStream(items []content.Item, cursor, width, height int, reactions map[string]signals.Action) string {
	if len(items) == 0 {
		return HelpStyle.Render("Nothing to show yet. Press 'r' to load more.")
	}
	if height < 1 {
		height = 1
	}

	offset := calcScrollOffset(len(items), cursor, height)
	var b strings.Builder
	for i := offset; i < len(items) && i < offset+height; i++ {
		b.WriteString(renderItemLine(items[i], i == cursor, width, reactions[items[i].Key()]))
		b.WriteString("\n")
	}
	return b.String()
}

// calcScrollOffset returns the first visible index so the cursor is on screen.
func calcScrollOffset(total, cursor, height int) int {
	if total == 0 || cursor < 0 {
		return 0
	}
	cursor = min(cursor, total-1)
	if cursor >= height {
		return cursor - height + 1
	}
	return 0
}

func renderItemLine(item content.Item, selected bool, width int, reaction signals.Action) string {
	badge := KindBadge.Foreground(kindColor(item.Kind)).Render(padRunes(string(item.Kind), badgeWidth-2))

	mark := "  "
	if reaction != "" {
		mark = ReactionMark.Render(reactionGlyph(reaction)) + " "
	}

	meta := itemMeta(item)
	titleWidth := max(20, width-lipgloss.Width(badge)-utf8.RuneCountInString(meta)-6)
	title := truncateRunes(item.Title, titleWidth)

	style := NormalItem
	switch {
	case selected:
		style = SelectedItem
	case reaction != "":
		style = ReactedItem
	}
	line := badge + mark + style.Render(title)
	if meta != "" {
		line += " " + MetaItem.Render(meta)
	}
	return line
}

// itemMeta is the short trailing detail for each kind.
func itemMeta(item content.Item) string {
	switch item.Kind {
	case content.KindNews:
		parts := make([]string, 0, 3)
		if item.IsBreaking {
			parts = append(parts, "BREAKING")
		}
		if item.Source != "" {
			parts = append(parts, item.Source)
		}
		if !item.PublishedAt.IsZero() {
			parts = append(parts, formatAgeShort(item.PublishedAt))
		}
		return strings.Join(parts, " · ")
	case content.KindWiki:
		if item.ReadTime > 0 {
			return fmt.Sprintf("%d min read", item.ReadTime)
		}
	case content.KindStock:
		if sym := item.Attr("symbol"); sym != "" {
			return strings.TrimSpace(sym + " " + item.Attr("price") + " " + item.Attr("change"))
		}
	}
	return item.Category
}

// RenderDetail renders the body of the selected item.
func RenderDetail(item content.Item, width int) string {
	var lines []string
	lines = append(lines, lipgloss.NewStyle().Bold(true).Render(item.Title))
	if item.Body != "" {
		lines = append(lines, item.Body)
	}
	if item.URL != "" {
		lines = append(lines, MetaItem.Render(item.URL))
	}
	w := max(20, width-4)
	return DetailPanel.Width(w).Render(strings.Join(lines, "\n"))
}

func reactionGlyph(a signals.Action) string {
	switch a {
	case signals.ActionLike:
		return "♥"
	case signals.ActionSave:
		return "★"
	case signals.ActionDislike:
		return "↓"
	case signals.ActionNeverShow:
		return "⊘"
	}
	return "·"
}

func formatAgeShort(published time.Time) string {
	age := time.Since(published)
	switch {
	case age < time.Minute:
		return "just now"
	case age < time.Hour:
		return fmt.Sprintf("%dm ago", int(age.Minutes()))
	case age < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(age.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(age.Hours()/24))
	}
}

// truncateRunes shortens s to at most n runes, ending in "...".
func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	if n <= 3 {
		return string([]rune(s)[:n])
	}
	return string([]rune(s)[:n-3]) + "..."
}

func padRunes(s string, n int) string {
	s = truncateRunes(s, n)
	return s + strings.Repeat(" ", n-utf8.RuneCountInString(s))
}

// RenderStatusBar renders the bottom bar: position or activity on the left,
// the latest feed status in the middle and key hints on the right.
func RenderStatusBar(cursor, total, width int, activity, status string) string {
	left := fmt.Sprintf(" %d/%d ", min(cursor+1, total), total)
	if activity != "" {
		left = " " + activity + " "
	}

	keys := []string{
		StatusBarKey.Render("j/k") + StatusBarText.Render(":nav"),
		StatusBarKey.Render("l/s/d/x") + StatusBarText.Render(":react"),
		StatusBarKey.Render("/") + StatusBarText.Render(":search"),
		StatusBarKey.Render("?") + StatusBarText.Render(":debug"),
		StatusBarKey.Render("q") + StatusBarText.Render(":quit"),
	}
	hints := strings.Join(keys, " ")

	mid := ""
	room := width - lipgloss.Width(left) - lipgloss.Width(hints) - 4
	if status != "" && room > 10 {
		mid = StatusBarText.Render(truncateRunes(status, room))
	}
	padding := max(0, width-lipgloss.Width(left)-lipgloss.Width(mid)-lipgloss.Width(hints)-2)
	return StatusBar.Width(width).Render(left + mid + strings.Repeat(" ", padding) + hints)
}
