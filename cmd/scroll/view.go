package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/abelbrown/scroll/internal/content"
	"github.com/abelbrown/scroll/internal/feed"
	"github.com/abelbrown/scroll/internal/logging"
	"github.com/abelbrown/scroll/internal/signals"
	"github.com/abelbrown/scroll/internal/ui"
)

// viewBatchSize is how many items the viewer requests per load.
const viewBatchSize = 20

func runView(cmd *cobra.Command, args []string) error {
	rt, err := setup(true)
	if err != nil {
		return err
	}
	defer rt.Close()

	// Setup context for graceful shutdown
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	warmer := rt.startWarmer(ctx)

	app := ui.NewApp(viewerCommands(ctx, rt.feed, feed.NewSession(), userID, algorithmic), rt.events, rt.ring)
	program := tea.NewProgram(app, tea.WithAltScreen())

	// Run UI (blocks until quit)
	_, runErr := program.Run()

	cancel()
	if warmer != nil {
		warmer.Wait()
	}
	if runErr != nil {
		logging.Error("viewer exited", "error", runErr)
		return fmt.Errorf("run viewer: %w", runErr)
	}
	return nil
}

// viewerCommands adapts the feed to the viewer's side effects.
func viewerCommands(ctx context.Context, f *feed.Feed, sess *feed.Session, user string, ranked bool) ui.Commands {
	compose := f.GetMixedContent
	if ranked {
		compose = f.GetAlgorithmicContent
	}
	return ui.Commands{
		Load: func() tea.Cmd {
			return func() tea.Msg {
				return ui.BatchLoaded{Items: compose(ctx, sess, viewBatchSize, user)}
			}
		},
		Record: func(item content.Item, action signals.Action) tea.Cmd {
			return func() tea.Msg {
				f.RecordAction(user, item.Kind, action, item.ID, item.Title)
				return ui.ActionRecorded{Key: item.Key(), Action: action}
			}
		},
		Search: func(query string) tea.Cmd {
			return func() tea.Msg {
				return ui.SearchLoaded{Query: query, Items: f.SearchMixedContent(ctx, query)}
			}
		},
	}
}
