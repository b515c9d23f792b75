// Command scroll is an infinite, personalized scroller mixing Wikipedia
// articles, headlines and short curated content in the terminal.
//
// Usage:
//
//	scroll                   Terminal viewer
//	scroll batch -n 20       Print one composed batch
//	scroll search <query>    Print mixed search results
//	scroll act ...           Record a reaction
//	scroll interest ...      Follow a topic
//	scroll block <kind>      Hide a content kind
//	scroll events            JSONL event log viewer
//	scroll stats             Popular content and user signals
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	configPath  string
	dbPath      string
	userID      string
	logLevel    string
	metricsAddr string
	offline     bool
	algorithmic bool

	version = "dev"
)

func main() {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "scroll",
	Short: "Infinite scroll over Wikipedia, news and curated snippets",
	Long: `scroll composes an endless feed of Wikipedia articles, headlines and short
curated content (facts, quotes, poems, recipes and more), adapting to what
you like, save and hide.

Run without a subcommand to open the terminal viewer.`,
	Version:      version,
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	RunE:         runView,
}

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Open the terminal viewer",
	Long: `Open the terminal viewer.

Keys:
  j/k, g/G   move          enter   expand
  l s d x    like, save, dislike, never show this kind
  /          search        esc     back to the feed
  r          retry loading ?       debug overlay
  q          quit`,
	Args: cobra.NoArgs,
	RunE: runView,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "config file (default ~/.scroll/config.yaml)")
	pf.StringVar(&dbPath, "db", "", "signal database path (overrides store.path)")
	pf.StringVarP(&userID, "user", "u", "", "user ID for personalization (empty for anonymous)")
	pf.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address (e.g. :9108)")
	pf.BoolVar(&offline, "offline", false, "use built-in content only")
	pf.BoolVar(&algorithmic, "algorithmic", false, "rank each bucket before mixing")

	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(actCmd)
	rootCmd.AddCommand(interestCmd)
	rootCmd.AddCommand(blockCmd)
	rootCmd.AddCommand(unblockCmd)
	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(statsCmd)
}
