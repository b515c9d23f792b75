package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/abelbrown/scroll/internal/content"
)

var (
	colorPrimary   = lipgloss.Color("62")  // Purple
	colorSecondary = lipgloss.Color("241") // Gray
	colorMuted     = lipgloss.Color("240") // Darker gray
	colorHighlight = lipgloss.Color("212") // Pink
	colorSuccess   = lipgloss.Color("78")  // Green
	colorDanger    = lipgloss.Color("196")
)

// SelectedItem style for the currently highlighted item.
var SelectedItem = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255")).
	Background(colorPrimary).
	Padding(0, 1)

// NormalItem style for unselected items.
var NormalItem = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Padding(0, 1)

// ReactedItem style for items the user already reacted to.
var ReactedItem = lipgloss.NewStyle().
	Foreground(colorSecondary).
	Padding(0, 1)

// KindBadge style for the content kind column.
var KindBadge = lipgloss.NewStyle().
	Background(lipgloss.Color("236")).
	Padding(0, 1).
	MarginRight(1)

// MetaItem style for secondary details such as source and age.
var MetaItem = lipgloss.NewStyle().
	Foreground(colorMuted)

// DetailPanel frames the expanded body of the selected item.
var DetailPanel = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorSecondary).
	Padding(0, 1)

// StatusBar style for the bottom status bar.
var StatusBar = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Background(lipgloss.Color("236")).
	Padding(0, 1)

// StatusBarKey style for key hints in status bar.
var StatusBarKey = lipgloss.NewStyle().
	Foreground(colorHighlight).
	Bold(true)

// StatusBarText style for descriptive text in status bar.
var StatusBarText = lipgloss.NewStyle().
	Foreground(colorSecondary)

// ErrorStyle for warnings shown above the status bar.
var ErrorStyle = lipgloss.NewStyle().
	Foreground(colorDanger).
	Bold(true).
	Padding(0, 1)

// HelpStyle for help text.
var HelpStyle = lipgloss.NewStyle().
	Foreground(colorMuted).
	Padding(1, 2)

// SearchBar style for the search input bar.
var SearchBar = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Background(lipgloss.Color("240")).
	Padding(0, 1)

// ReactionMark style for the like/save/dislike marker.
var ReactionMark = lipgloss.NewStyle().
	Foreground(colorSuccess).
	Bold(true)

// DebugPanel frames the event overlay.
var DebugPanel = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorPrimary).
	Padding(1, 2)

// DebugHeaderStyle for section headers inside the overlay.
var DebugHeaderStyle = lipgloss.NewStyle().
	Foreground(colorHighlight).
	Bold(true)

// kindColors gives every kind a stable badge color.
var kindColors = map[content.Kind]lipgloss.Color{
	content.KindNews:    lipgloss.Color("208"),
	content.KindWiki:    lipgloss.Color("75"),
	content.KindFact:    lipgloss.Color("141"),
	content.KindQuote:   lipgloss.Color("180"),
	content.KindMovie:   lipgloss.Color("203"),
	content.KindTVShow:  lipgloss.Color("170"),
	content.KindSong:    lipgloss.Color("39"),
	content.KindAlbum:   lipgloss.Color("69"),
	content.KindStock:   lipgloss.Color("78"),
	content.KindWeather: lipgloss.Color("117"),
	content.KindHistory: lipgloss.Color("137"),
	content.KindPicture: lipgloss.Color("212"),
}

func kindColor(k content.Kind) lipgloss.Color {
	if c, ok := kindColors[k]; ok {
		return c
	}
	return colorSecondary
}
