package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var flagScoresLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores [level]",
	Short: "Show best solves",
	Long: `Without a level, show a summary of every level. With a level
(number or ID), show its fastest solves by move count.

Examples:
  watersort scores
  watersort scores 2
  watersort scores lvl03 --limit 20`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of solves to show")
}

func runScores(_ *cobra.Command, args []string) error {
	logger, err := stderrLogger("scores")
	if err != nil {
		return err
	}
	catalog, err := loadCatalog(logger)
	if err != nil {
		return err
	}

	// Open progress storage
	store, err := openStore()
	if err != nil {
		return fmt.Errorf("opening progress database: %w", err)
	}
	defer store.Close()

	if len(args) == 0 {
		stats, err := store.AllLevelStats()
		if err != nil {
			return fmt.Errorf("retrieving stats: %w", err)
		}

		fmt.Println("Best Solves")
		fmt.Println()
		fmt.Printf("  %-3s  %-20s  %-6s  %-5s  %-7s  %s\n", "#", "Level", "Solves", "Best", "Average", "Fastest")
		fmt.Printf("  %-3s  %-20s  %-6s  %-5s  %-7s  %s\n", "-", "-----", "------", "----", "-------", "-------")
		for i, lvl := range catalog.Levels() {
			st, ok := stats[lvl.ID]
			if !ok {
				fmt.Printf("  %-3d  %-20s  %-6s\n", i+1, lvl.Title(), "-")
				continue
			}
			fmt.Printf("  %-3d  %-20s  %-6d  %-5d  %-7.1f  %s\n",
				i+1, lvl.Title(), st.Solves, st.BestMoves, st.AvgMoves, formatClock(st.BestTime.Seconds()))
		}
		return nil
	}

	index, err := findLevel(catalog, args[0])
	if err != nil {
		return err
	}
	lvl, _ := catalog.At(index)

	results, err := store.TopResults(lvl.ID, flagScoresLimit)
	if err != nil {
		return fmt.Errorf("retrieving solves: %w", err)
	}

	fmt.Printf("Best Solves - %d. %s\n", index+1, lvl.Title())
	fmt.Println()

	if len(results) == 0 {
		fmt.Println("No solves recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'watersort play %d' to set the first record!\n", index+1)
		return nil
	}

	// Print header
	fmt.Printf("  %-4s  %-12s  %-5s  %-6s  %s\n", "Rank", "Player", "Moves", "Time", "Date")
	fmt.Printf("  %-4s  %-12s  %-5s  %-6s  %s\n", "----", "------", "-----", "----", "----")

	for i, r := range results {
		fmt.Printf("  %-4d  %-12s  %-5d  %-6s  %s\n",
			i+1, r.Player, r.Moves, formatClock(r.Duration.Seconds()), r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

// formatClock renders seconds as m:ss.
func formatClock(seconds float64) string {
	s := int(seconds + 0.5)
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}
