package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/watersort/internal/config"
	"github.com/vovakirdan/watersort/internal/core"
	"github.com/vovakirdan/watersort/internal/games/watersort/levels"
	"github.com/vovakirdan/watersort/internal/storage"
)

// expandHome replaces a leading ~ with the home directory.
func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// openStore opens the progress database named by --db.
func openStore() (*storage.Store, error) {
	return storage.Open(expandHome(flagDBPath))
}

// newLogger returns a logger for interactive commands. The terminal belongs
// to the game, so records go to ~/.watersort/watersort.log.
// The returned closer must be called on exit.
func newLogger() (*log.Logger, io.Closer, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	dir := config.DataDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(filepath.Join(dir, "watersort.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, err
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Level:           level,
	})
	return logger, f, nil
}

// stderrLogger returns a logger for commands that do not take over the terminal.
func stderrLogger(prefix string) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Level:           level,
		Prefix:          prefix,
	}), nil
}

// loadConfig loads the game config and applies --speed.
func loadConfig() (config.WaterSortConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.WaterSortConfig{}, err
	}
	preset, err := config.ParseSpeedPreset(flagSpeed)
	if err != nil {
		return config.WaterSortConfig{}, err
	}
	config.ApplySpeedPreset(&cfg, preset)
	return cfg, nil
}

// loadCatalog loads the embedded levels plus those in --levels.
func loadCatalog(logger *log.Logger) (*levels.Catalog, error) {
	return levels.Load(flagLevelsDir, logger)
}

// findLevel resolves a 1-based level number or a level ID to a catalog index.
func findLevel(catalog *levels.Catalog, arg string) (int, error) {
	if n, err := strconv.Atoi(arg); err == nil {
		if n < 1 || n > catalog.Len() {
			return 0, fmt.Errorf("level %d out of range (1-%d)", n, catalog.Len())
		}
		return n - 1, nil
	}
	if i := catalog.Index(arg); i >= 0 {
		return i, nil
	}
	return 0, fmt.Errorf("%w: %q", levels.ErrLevelNotFound, arg)
}

// runtimeConfig sizes the game to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
	}
}
