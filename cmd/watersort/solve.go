package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/watersort/internal/games/watersort/core"
)

var flagSolveLimit int

var solveCmd = &cobra.Command{
	Use:   "solve <level>",
	Short: "Print a shortest solution for a level",
	Long: `Search for the fewest pours that complete a level and print them.
Bottles are numbered from 1, left to right.

Examples:
  watersort solve 1
  watersort solve lvl05 --limit 1000000`,
	Args: cobra.ExactArgs(1),
	RunE: runSolve,
}

func init() {
	solveCmd.Flags().IntVar(&flagSolveLimit, "limit", core.DefaultSearchLimit, "Maximum positions to explore")
}

func runSolve(_ *cobra.Command, args []string) error {
	logger, err := stderrLogger("solve")
	if err != nil {
		return err
	}
	catalog, err := loadCatalog(logger)
	if err != nil {
		return err
	}
	index, err := findLevel(catalog, args[0])
	if err != nil {
		return err
	}
	lvl, _ := catalog.At(index)

	board := lvl.NewBoard()
	fmt.Printf("%d. %s\n\n%s\n\n", index+1, lvl.Title(), board)

	sol, err := core.Solve(board, flagSolveLimit)
	if err != nil {
		return err
	}
	if len(sol.Moves) == 0 {
		fmt.Println("Already solved.")
		return nil
	}

	var engine core.TransferEngine
	for i, mv := range sol.Moves {
		out := engine.Apply(board, mv)
		fmt.Printf("  %3d. %-6s  %d x %s\n", i+1, mv, out.Amount, out.Color)
	}
	fmt.Printf("\n%d moves (%d positions explored)\n", len(sol.Moves), sol.Explored)
	return nil
}
