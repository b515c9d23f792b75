package main

import (
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"github.com/abelbrown/scroll/internal/content"
	"github.com/abelbrown/scroll/internal/signals"
	"github.com/abelbrown/scroll/internal/store"
)

var statsLimit int

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show popular content and a user's signals",
	Long: `Show the most engaged-with content per kind. With --user, also show
that user's interests, blocked kinds and positive reactions per kind.`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().IntVar(&statsLimit, "limit", 5, "popular items per kind")
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st, err := store.Open(cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "=== Popular ===")
	kinds := append([]content.Kind{content.KindWiki, content.KindNews}, content.FillerKinds...)
	shown := 0
	for _, kind := range kinds {
		items, err := st.PopularContent(ctx, kind, statsLimit)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			continue
		}
		shown++
		fmt.Fprintf(out, "%s:\n", kind)
		for _, item := range items {
			title := item.Title
			if title == "" {
				title = item.ID
			}
			fmt.Fprintf(out, "  %s\n", truncate(title, 60))
		}
	}
	if shown == 0 {
		fmt.Fprintln(out, "  (no engagement recorded yet)")
	}

	if userID == "" {
		return nil
	}

	set := &signals.Set{}
	if set.Interests, err = st.Interests(ctx, userID); err != nil {
		return err
	}
	if set.Preferences, err = st.Preferences(ctx, userID); err != nil {
		return err
	}
	if set.Filters, err = st.ContentFilters(ctx, userID); err != nil {
		return err
	}
	if set.Views, err = st.ViewCounts(ctx, userID); err != nil {
		return err
	}
	printUserSignals(out, userID, set)
	return nil
}

func printUserSignals(out io.Writer, user string, set *signals.Set) {
	fmt.Fprintf(out, "\n=== %s ===\n", user)
	if set.Empty() {
		fmt.Fprintln(out, "  (no signals; feed uses the default mix)")
		return
	}

	fmt.Fprintf(out, "Actions recorded:      %d\n", len(set.Preferences))
	views := 0
	for _, n := range set.Views {
		views += n
	}
	fmt.Fprintf(out, "Items viewed:          %d\n", views)
	if topic := set.TopInterest(); topic != "" {
		fmt.Fprintf(out, "Top interest:          %s\n", topic)
	}
	if title := set.LastLiked(); title != "" {
		fmt.Fprintf(out, "Last liked article:    %s\n", truncate(title, 50))
	}

	if len(set.Interests) > 0 {
		fmt.Fprintf(out, "\nInterests (%d):\n", len(set.Interests))
		for _, in := range set.Interests {
			fmt.Fprintf(out, "  %-30s %.1f\n", in.Topic, in.Weight)
		}
	}

	if blocked := set.Blocked(); len(blocked) > 0 {
		fmt.Fprintf(out, "\nBlocked (%d):\n", len(blocked))
		for _, kind := range sortedKinds(blocked) {
			fmt.Fprintf(out, "  %-12s %s\n", kind, blocked[kind])
		}
	}

	if counts := set.PositiveCounts(); len(counts) > 0 {
		fmt.Fprintln(out, "\nLikes and saves:")
		for _, kind := range sortedKinds(counts) {
			fmt.Fprintf(out, "  %-12s %d\n", kind, counts[kind])
		}
	}
}

func sortedKinds[V any](m map[content.Kind]V) []content.Kind {
	kinds := make([]content.Kind, 0, len(m))
	for k := range m {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)
	return kinds
}
