// watersort is a terminal Water Sort puzzle: pour colored liquid between
// bottles until every bottle holds a single color.
//
// Usage:
//
//	watersort                  - Start the level picker
//	watersort play [level]     - Play from a level (number or ID)
//	watersort levels           - List the available levels
//	watersort solve <level>    - Print a shortest solution
//	watersort validate [dir]   - Check level files
//	watersort progress         - Show or reset saved progress
//	watersort scores [level]   - Show best solves
//	watersort serve            - Start the SSH server for remote play
//
// Global flags:
//
//	--fps <rate>      - Set tick rate (default: 60)
//	--db <path>       - Set database path (default: ~/.watersort/watersort.db)
//	--levels <dir>    - Load extra levels from a directory
//	--config <path>   - Use a custom config YAML
//	--speed <preset>  - Pour speed: relaxed, normal, fast, instant
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS       int
	flagDBPath    string
	flagLevelsDir string
	flagConfig    string
	flagLogLevel  string
	flagSpeed     string
	flagPlayer    string
	flagTheme     string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "watersort",
	Short: "Water Sort - a color sorting puzzle for your terminal",
	Long: `Water Sort is a terminal puzzle. Pour liquid between bottles until
every bottle is empty or filled with a single color.

Liquid can only be poured onto the same color or into an empty bottle,
and a bottle holds four layers.

Available commands:
  play      - Play from a level directly
  menu      - Interactive level picker (default)
  levels    - List the available levels
  solve     - Print a shortest solution for a level
  validate  - Check level files for mistakes
  progress  - Show or reset saved progress
  scores    - View best solves
  serve     - Start SSH server for remote play

Examples:
  watersort
  watersort play 3
  watersort solve lvl04
  watersort validate ./my-levels
  watersort serve --port 2222`,
	SilenceUsage: true,
	RunE:         runMenu,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.watersort/watersort.db", "Path to progress database")
	rootCmd.PersistentFlags().StringVar(&flagLevelsDir, "levels", "", "Directory with extra level files")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagSpeed, "speed", "", "Pour speed preset: relaxed, normal, fast, instant")
	rootCmd.PersistentFlags().StringVar(&flagPlayer, "player", "", "Player name for saved progress (default: local)")
	rootCmd.PersistentFlags().StringVar(&flagTheme, "theme", "", "Menu theme: default, mono")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}
