package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abelbrown/scroll/internal/content"
	"github.com/abelbrown/scroll/internal/signals"
)

var blockReason string

var actCmd = &cobra.Command{
	Use:   "act <user> <kind> <action> <id> [title]",
	Short: "Record a reaction to a content item",
	Long: `Record a reaction to a content item.

Actions: view, like, save, share, dislike, never_show (alias: block).
An empty user ("") only counts toward popularity.

Examples:
  scroll act alice wiki like 12345 "Octopus"
  scroll act alice stock never_show stock-3`,
	Args: cobra.RangeArgs(4, 5),
	RunE: runAct,
}

var interestCmd = &cobra.Command{
	Use:   "interest <user> <topic> [weight]",
	Short: "Follow a topic (or reweight it)",
	Args:  cobra.RangeArgs(2, 3),
	RunE:  runInterest,
}

var blockCmd = &cobra.Command{
	Use:   "block <user> <kind>",
	Short: "Never show a content kind to a user",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setFilter(cmd, args, true)
	},
}

var unblockCmd = &cobra.Command{
	Use:   "unblock <user> <kind>",
	Short: "Lift a content kind filter",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setFilter(cmd, args, false)
	},
}

func init() {
	blockCmd.Flags().StringVar(&blockReason, "reason", "", "why the kind is hidden")
}

func parseKind(s string) (content.Kind, error) {
	kind, ok := content.ParseKind(s)
	if !ok {
		return "", fmt.Errorf("unknown content kind %q (known: %s)", s, knownKinds())
	}
	return kind, nil
}

func knownKinds() string {
	kinds := []string{string(content.KindWiki), string(content.KindNews)}
	for _, k := range content.FillerKinds {
		kinds = append(kinds, string(k))
	}
	return strings.Join(kinds, ", ")
}

func runAct(cmd *cobra.Command, args []string) error {
	kind, err := parseKind(args[1])
	if err != nil {
		return err
	}
	action, ok := signals.ParseAction(args[2])
	if !ok {
		return fmt.Errorf("unknown action %q", args[2])
	}
	var title string
	if len(args) == 5 {
		title = args[4]
	}

	rt, err := setup(false)
	if err != nil {
		return err
	}
	defer rt.Close()

	// Close flushes the background write.
	rt.feed.RecordAction(args[0], kind, action, args[3], title)
	fmt.Fprintf(cmd.OutOrStdout(), "Recorded %s on %s:%s\n", action, kind, args[3])
	return nil
}

func runInterest(cmd *cobra.Command, args []string) error {
	weight := 1.0
	if len(args) == 3 {
		w, err := strconv.ParseFloat(args[2], 64)
		if err != nil || w <= 0 {
			return fmt.Errorf("weight must be a positive number, got %q", args[2])
		}
		weight = w
	}
	user, topic := args[0], strings.TrimSpace(args[1])
	if user == "" || topic == "" {
		return fmt.Errorf("user and topic are required")
	}

	rt, err := setup(false)
	if err != nil {
		return err
	}
	defer rt.Close()

	if err := rt.store.SetInterest(cmd.Context(), user, topic, weight); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s now follows %q (weight %.1f)\n", user, topic, weight)
	return nil
}

func setFilter(cmd *cobra.Command, args []string, blocked bool) error {
	kind, err := parseKind(args[1])
	if err != nil {
		return err
	}
	if args[0] == "" {
		return fmt.Errorf("user is required")
	}

	rt, err := setup(false)
	if err != nil {
		return err
	}
	defer rt.Close()

	if err := rt.store.SetFilter(cmd.Context(), args[0], kind, blocked, blockReason); err != nil {
		return err
	}
	verb := "unblocked"
	if blocked {
		verb = "blocked"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s for %s\n", verb, kind, args[0])
	return nil
}
