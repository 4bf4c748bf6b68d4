package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/watersort/internal/games/watersort"
	"github.com/vovakirdan/watersort/internal/platform/tui"
	"github.com/vovakirdan/watersort/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play Water Sort",
	Long: `Start playing from the given level (number or ID), or from the
newest unlocked level when none is given.

Controls:
  1-9          - Pick a bottle
  Arrows/WASD  - Move the cursor
  Space/Enter  - Pick the bottle under the cursor
  Esc/X        - Drop the selection
  U/Z          - Undo
  H/?          - Show a hint
  R            - Restart level
  N            - Next level (after solving)
  P            - Pause
  Q/Ctrl+C     - Quit

Examples:
  watersort play
  watersort play 4
  watersort play lvl02 --speed fast`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
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
	if catalog.Len() == 0 {
		return watersort.ErrNoLevels
	}

	// Open progress storage
	var progress watersort.Progress
	var profile *storage.Profile
	store, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open progress database: %v\n", err)
		// Continue without storage - progress is kept for this run only
		store = nil
	} else {
		defer store.Close()
		profile = store.Profile(flagPlayer)
		progress = profile
	}

	start := catalog.Len() - 1
	if len(args) == 1 {
		if start, err = findLevel(catalog, args[0]); err != nil {
			return err
		}
		if err := checkUnlocked(progress, start); err != nil {
			return err
		}
	}

	settings := watersort.AudioSettings{Music: cfg.Audio.Music, SFX: cfg.Audio.SFX}
	if profile != nil {
		if settings.Music, settings.SFX, err = profile.AudioSettings(settings.Music, settings.SFX); err != nil {
			logger.Warn("cannot read audio settings", "err", err)
		}
	}

	game := watersort.New(watersort.Options{
		Config:     cfg,
		Catalog:    catalog,
		Progress:   progress,
		Audio:      watersort.NewBellPlayer(os.Stdout, settings),
		Logger:     logger,
		StartLevel: start,
	})
	return tui.Run(game, runtimeConfig())
}

// checkUnlocked fails when the level at start is locked. Without a
// progress store only the first level is open. A failed read is left to
// the game, which logs it and opens the newest level it knows is unlocked.
func checkUnlocked(progress watersort.Progress, start int) error {
	unlocked := 1
	if progress != nil {
		n, err := progress.UnlockedLevels()
		if err != nil {
			return nil
		}
		unlocked = n
	}
	if start < unlocked {
		return nil
	}
	if progress == nil {
		return fmt.Errorf("%w: level %d (progress database unavailable, only level 1 is open)",
			watersort.ErrLevelLocked, start+1)
	}
	return fmt.Errorf("%w: level %d (unlocked %d)", watersort.ErrLevelLocked, start+1, unlocked)
}
