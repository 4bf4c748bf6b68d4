package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/watersort/internal/platform/tui"
	"github.com/vovakirdan/watersort/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the level picker",
	Long: `Start Water Sort in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to play a level.
After leaving a level you return to the picker.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Play level
  M            - Toggle music
  S/F          - Toggle sound effects
  Tab          - Best solves
  Q            - Quit

Examples:
  watersort menu
  watersort menu --theme mono
  watersort menu --db ./watersort.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	logger, closer, err := newLogger()
	if err != nil {
		return err
	}
	defer closer.Close()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	catalog, err := loadCatalog(logger)
	if err != nil {
		return err
	}
	theme, err := tui.ThemeByName(flagTheme)
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open progress database: %v\n", err)
		store = nil
	}

	runErr := tui.RunSession(tui.SessionOptions{
		Config:   cfg,
		Catalog:  catalog,
		Store:    store,
		Player:   flagPlayer,
		Logger:   logger,
		AudioOut: os.Stdout,
		Runtime:  runtimeConfig(),
		Theme:    &theme,
	})

	// Close store before reporting
	if store != nil {
		store.Close()
	}
	return runErr
}

// playerName returns --player or the default local player.
func playerName() string {
	if flagPlayer == "" {
		return storage.DefaultPlayer
	}
	return flagPlayer
}
