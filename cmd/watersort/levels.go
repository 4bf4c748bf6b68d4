package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List all available levels",
	Long:  `Shows the levels built into the game, plus those found in --levels.`,
	Args:  cobra.NoArgs,
	RunE:  runLevels,
}

func runLevels(_ *cobra.Command, _ []string) error {
	logger, err := stderrLogger("levels")
	if err != nil {
		return err
	}
	catalog, err := loadCatalog(logger)
	if err != nil {
		return err
	}

	list := catalog.Levels()
	if len(list) == 0 {
		fmt.Println("No levels available.")
		return nil
	}

	var unlocked int
	if store, err := openStore(); err == nil {
		unlocked, _ = store.Profile(flagPlayer).UnlockedLevels()
		store.Close()
	}

	fmt.Println("Available levels:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, l := range list {
		maxIDLen = max(maxIDLen, len(l.ID))
	}

	// Print header
	fmt.Printf("  %-3s  %-*s  %-7s  %-6s  %s\n", "#", maxIDLen, "ID", "Bottles", "Colors", "Title")
	fmt.Printf("  %-3s  %-*s  %-7s  %-6s  %s\n", "-", maxIDLen, "--", "-------", "------", "-----")

	for i, l := range list {
		title := l.Title()
		if unlocked > 0 && i >= unlocked {
			title += " (locked)"
		}
		fmt.Printf("  %-3d  %-*s  %-7d  %-6d  %s\n", i+1, maxIDLen, l.ID, len(l.Bottles), l.ColorCount(), title)
	}

	fmt.Println()
	fmt.Println("Run 'watersort play <#|id>' to play a level.")
	return nil
}
