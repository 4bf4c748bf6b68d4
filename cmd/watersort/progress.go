package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var flagResetResults bool

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show or change saved progress",
	Long: `Show how far a player has come, or change their saved progress.

Examples:
  watersort progress
  watersort progress show --player alice
  watersort progress reset
  watersort progress reset --results
  watersort progress unlock-all`,
	RunE: runProgressShow,
}

var progressShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show unlocked levels and best solves",
	Args:  cobra.NoArgs,
	RunE:  runProgressShow,
}

var progressResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Lock every level except the first",
	Args:  cobra.NoArgs,
	RunE:  runProgressReset,
}

var progressUnlockCmd = &cobra.Command{
	Use:   "unlock-all",
	Short: "Unlock every level",
	Args:  cobra.NoArgs,
	RunE:  runProgressUnlockAll,
}

func init() {
	progressResetCmd.Flags().BoolVar(&flagResetResults, "results", false, "Also delete recorded solves")

	progressCmd.AddCommand(progressShowCmd)
	progressCmd.AddCommand(progressResetCmd)
	progressCmd.AddCommand(progressUnlockCmd)
}

func runProgressShow(_ *cobra.Command, _ []string) error {
	logger, err := stderrLogger("progress")
	if err != nil {
		return err
	}
	catalog, err := loadCatalog(logger)
	if err != nil {
		return err
	}
	store, err := openStore()
	if err != nil {
		return fmt.Errorf("opening progress database: %w", err)
	}
	defer store.Close()

	profile := store.Profile(flagPlayer)
	unlocked, err := profile.UnlockedLevels()
	if err != nil {
		return err
	}

	fmt.Printf("Progress - %s\n\n", playerName())
	fmt.Printf("Unlocked: %d of %d levels\n\n", min(unlocked, catalog.Len()), catalog.Len())

	for i, lvl := range catalog.Levels() {
		status := "locked"
		if i < unlocked {
			status = "open"
			best, err := profile.Best(lvl.ID)
			if err != nil {
				return err
			}
			if best != nil {
				status = fmt.Sprintf("solved, best %d moves in %s", best.Moves, best.Duration.Round(time.Second))
			}
		}
		fmt.Printf("  %3d. %-20s  %s\n", i+1, lvl.Title(), status)
	}
	return nil
}

func runProgressReset(_ *cobra.Command, _ []string) error {
	store, err := openStore()
	if err != nil {
		return fmt.Errorf("opening progress database: %w", err)
	}
	defer store.Close()

	if err := store.Profile(flagPlayer).ResetProgress(flagResetResults); err != nil {
		return err
	}
	if flagResetResults {
		fmt.Printf("Progress and solves of %s deleted.\n", playerName())
	} else {
		fmt.Printf("Progress of %s reset. Solves are kept.\n", playerName())
	}
	return nil
}

func runProgressUnlockAll(_ *cobra.Command, _ []string) error {
	logger, err := stderrLogger("progress")
	if err != nil {
		return err
	}
	catalog, err := loadCatalog(logger)
	if err != nil {
		return err
	}
	store, err := openStore()
	if err != nil {
		return fmt.Errorf("opening progress database: %w", err)
	}
	defer store.Close()

	if err := store.Profile(flagPlayer).UnlockAll(catalog.Len()); err != nil {
		return err
	}
	fmt.Printf("All %d levels unlocked for %s.\n", catalog.Len(), playerName())
	return nil
}
