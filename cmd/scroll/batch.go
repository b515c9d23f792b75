package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/abelbrown/scroll/internal/content"
	"github.com/abelbrown/scroll/internal/feed"
)

var (
	batchCount int
	batchPages int
	jsonOutput bool
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Print composed batches",
	Long: `Compose one or more consecutive batches and print them.

Examples:
  # One batch of 20
  scroll batch -n 20

  # Three pages for a user, ranked
  scroll batch -n 10 --pages 3 --user alice --algorithmic

  # Machine-readable output
  scroll batch --json --offline`,
	Args: cobra.NoArgs,
	RunE: runBatch,
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Print mixed Wikipedia and news search results",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearch,
}

func init() {
	batchCmd.Flags().IntVarP(&batchCount, "count", "n", 20, "items per batch")
	batchCmd.Flags().IntVar(&batchPages, "pages", 1, "number of consecutive batches")
	batchCmd.Flags().BoolVar(&jsonOutput, "json", false, "print items as JSON")
	searchCmd.Flags().BoolVar(&jsonOutput, "json", false, "print items as JSON")
}

func runBatch(cmd *cobra.Command, args []string) error {
	if batchCount <= 0 || batchPages <= 0 {
		return fmt.Errorf("count and pages must be positive")
	}
	rt, err := setup(false)
	if err != nil {
		return err
	}
	defer rt.Close()

	ctx := cmd.Context()
	sess := feed.NewSession()
	compose := rt.feed.GetMixedContent
	if algorithmic {
		compose = rt.feed.GetAlgorithmicContent
	}

	var all []content.Item
	for page := range batchPages {
		start := sess.Position()
		items := compose(ctx, sess, batchCount, userID)
		if jsonOutput {
			all = append(all, items...)
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "── batch %d · position %d · %d items ──\n", page+1, start, len(items))
		printItems(cmd.OutOrStdout(), items, start)
	}
	if jsonOutput {
		return writeJSON(cmd.OutOrStdout(), all)
	}
	return nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	rt, err := setup(false)
	if err != nil {
		return err
	}
	defer rt.Close()

	query := strings.Join(args, " ")
	items := rt.feed.SearchMixedContent(cmd.Context(), query)
	if jsonOutput {
		return writeJSON(cmd.OutOrStdout(), items)
	}
	if len(items) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No results for %q (queries need at least 3 characters)\n", query)
		return nil
	}
	printItems(cmd.OutOrStdout(), items, 0)
	return nil
}

func writeJSON(w io.Writer, items []content.Item) error {
	if items == nil {
		items = []content.Item{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(items)
}

// printItems writes one line per item, numbered from offset.
func printItems(w io.Writer, items []content.Item, offset int) {
	for i, item := range items {
		fmt.Fprintf(w, "%4d  %-8s %s", offset+i, item.Kind, truncate(item.Title, 70))
		if meta := itemMeta(item); meta != "" {
			fmt.Fprintf(w, "  (%s)", meta)
		}
		fmt.Fprintln(w)
	}
}

func itemMeta(item content.Item) string {
	switch item.Kind {
	case content.KindNews:
		parts := []string{}
		if item.IsBreaking {
			parts = append(parts, "BREAKING")
		}
		if item.Source != "" {
			parts = append(parts, item.Source)
		}
		if !item.PublishedAt.IsZero() {
			parts = append(parts, item.PublishedAt.Local().Format(time.Kitchen))
		}
		return strings.Join(parts, " · ")
	case content.KindWiki:
		if item.ReadTime > 0 {
			return fmt.Sprintf("%d min read", item.ReadTime)
		}
		return ""
	}
	return item.Category
}

// truncate shortens a string to max runes, appending "..." if truncated.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
